// Package web serves the JSON endpoints the portfolio front end calls for its
// listening widget. Every handler is request-scoped: no shared cache, no
// cross-request state, one token exchange per inbound request.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
	"tunelens/internal/server"
	"tunelens/internal/shared"
	"tunelens/internal/spotify"
)

// Server wires the proxy handlers into a [server.BasicRouter] and manages the
// http.Server lifecycle.
type Server struct {
	client *spotify.Client
	logger *log.Logger
	router *server.BasicRouter
	srv    *http.Server
}

// NewServer creates the proxy server for the given Spotify client.
func NewServer(client *spotify.Client, cfg shared.ServerConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Server{client: client, logger: logger}

	router := server.NewBasicRouter()
	router.Use(
		server.RequestID(),
		server.CORS(),
		server.RateLimit(rate.NewLimiter(rate.Limit(5), 10)),
		server.Logging(logger),
	)

	router.Handle(http.MethodGet, "/health", http.HandlerFunc(s.handleHealth))
	router.Handle(http.MethodGet, "/now-playing", http.HandlerFunc(s.handleNowPlaying))
	router.Handle(http.MethodGet, "/profile", http.HandlerFunc(s.handleProfile))
	router.Handle(http.MethodGet, "/recently-played", http.HandlerFunc(s.handleRecentlyPlayed))
	router.Handle(http.MethodGet, "/top-tracks", http.HandlerFunc(s.handleTopTracks))
	router.Handle(http.MethodGet, "/widget", http.HandlerFunc(s.handleWidget))
	router.Handle(http.MethodPost, "/create-playlist", http.HandlerFunc(s.handleCreatePlaylist))

	s.router = router
	s.srv = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: router,
	}

	return s
}

// Router exposes the underlying router, mostly for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start blocks serving HTTP until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting listening proxy", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}
