package web

import (
	"errors"
	"net/http"
	"strconv"

	"tunelens/internal/shared"
	"tunelens/internal/spotify"
)

// ErrorResponse is the JSON error payload. Details and Hint are only present
// on playlist-build failures, where they attribute the failing step.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// TopTracksResponse echoes the validated query parameters alongside the
// shaped tracks. Message is set when the listening history is empty.
type TopTracksResponse struct {
	Tracks    []spotify.TopTrack `json:"tracks"`
	TimeRange string             `json:"timeRange"`
	Limit     int                `json:"limit"`
	Message   string             `json:"message,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

// parseLimit reads the limit query parameter, falling back to def when absent.
// Range checking is left to the spotify package so the constraint lives in
// one place.
func parseLimit(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	return limit, nil
}

func (s *Server) handleNowPlaying(w http.ResponseWriter, r *http.Request) {
	np, err := s.client.NowPlaying(r.Context())
	if err != nil {
		s.logger.Error("now-playing fetch failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, np)
}

// handleProfile always answers 200. A failed upstream call degrades to the
// default profile so the widget never renders an error state; the failure is
// only visible in server logs.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.client.Profile(r.Context())
	if err != nil {
		s.logger.Error("profile fetch failed, degrading to defaults", "error", err)
		s.writeJSON(w, http.StatusOK, spotify.DefaultProfile())
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleRecentlyPlayed(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, 20)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := spotify.ValidateLimit(limit); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	recent, err := s.client.RecentlyPlayed(r.Context(), limit, q.Get("before"), q.Get("after"))
	if err != nil {
		s.logger.Error("recently-played fetch failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, recent)
}

func (s *Server) handleTopTracks(w http.ResponseWriter, r *http.Request) {
	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = "medium_term"
	}
	limit, err := parseLimit(r, 20)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Both parameters are rejected here, before any upstream traffic.
	if err := spotify.ValidateTimeRange(timeRange); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := spotify.ValidateLimit(limit); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tracks, err := s.client.TopTracks(r.Context(), timeRange, limit)
	if err != nil {
		s.logger.Error("top-tracks fetch failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := TopTracksResponse{Tracks: tracks, TimeRange: timeRange, Limit: limit}
	if len(tracks) == 0 {
		resp.Tracks = []spotify.TopTrack{}
		resp.Message = "No listening history for this time range yet"
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWidget(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.client.Widget(r.Context()))
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = "medium_term"
	}
	limit, err := parseLimit(r, 20)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := spotify.ValidateTimeRange(timeRange); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := spotify.ValidateLimit(limit); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.client.CreateFromTopTracks(r.Context(), timeRange, limit)
	if err != nil {
		var step *spotify.StepError
		switch {
		case errors.Is(err, shared.ErrNoResults):
			s.writeError(w, http.StatusNotFound, err.Error())
		case errors.As(err, &step):
			s.logger.Error("playlist build failed", "step", step.Step.String(), "error", step.Err)
			s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "playlist creation failed",
				Details: step.Err.Error(),
				Hint:    step.Hint,
			})
		default:
			s.logger.Error("playlist build failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.writeJSON(w, http.StatusCreated, result)
}
