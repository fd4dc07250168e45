package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"tunelens/internal/shared"
)

const (
	playlistName        = "My Top Tracks Playlist"
	playlistDescription = "Generated from my most played tracks"
)

// BuildStep identifies which upstream call a playlist-build failure came from.
type BuildStep int

const (
	StepFetchTracks BuildStep = iota
	StepResolveUser
	StepCreatePlaylist
	StepPopulatePlaylist
)

func (s BuildStep) String() string {
	switch s {
	case StepFetchTracks:
		return "fetch top tracks"
	case StepResolveUser:
		return "resolve user"
	case StepCreatePlaylist:
		return "create playlist"
	case StepPopulatePlaylist:
		return "add tracks"
	default:
		return "unknown"
	}
}

// StepError wraps a playlist-build failure with the step that produced it and
// a remediation hint for the operator.
type StepError struct {
	Step BuildStep
	Hint string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("playlist build failed at step %q: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// PlaylistResult is the outcome of a successful playlist build.
type PlaylistResult struct {
	PlaylistID  string `json:"playlistId"`
	PlaylistURL string `json:"playlistUrl"`
	Name        string `json:"name"`
	TrackCount  int    `json:"trackCount"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

// CreateFromTopTracks chains fetch-top-tracks, resolve-user, create-playlist,
// and add-tracks into a private playlist of the user's most played songs.
//
// The chain is strictly sequential: each step consumes the previous step's
// output, and the first failure aborts the rest, tagged with its step for
// attribution. Zero top tracks is a distinguished no-results condition, not
// a failure.
func (c *Client) CreateFromTopTracks(ctx context.Context, timeRange string, limit int) (*PlaylistResult, error) {
	tracks, err := c.TopTracks(ctx, timeRange, limit)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidArgument) {
			return nil, err
		}
		return nil, &StepError{Step: StepFetchTracks, Hint: "check the user-top-read scope", Err: err}
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no top tracks found for %s", shared.ErrNoResults, timeRange)
	}

	uris := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.URI != "" {
			uris = append(uris, t.URI)
		}
	}
	if len(uris) == 0 {
		return nil, fmt.Errorf("%w: top tracks carried no playable URIs", shared.ErrNoResults)
	}

	user, err := c.Me(ctx)
	if err != nil {
		return nil, &StepError{Step: StepResolveUser, Hint: "check the user-read-private scope", Err: err}
	}
	if user.ID == "" {
		return nil, &StepError{Step: StepResolveUser, Hint: "check the user-read-private scope",
			Err: fmt.Errorf("%w: profile response had no id", shared.ErrMalformedReply)}
	}

	var playlist PlaylistObject
	body := createPlaylistRequest{Name: playlistName, Description: playlistDescription, Public: false}
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(user.ID))
	if err := c.call(ctx, http.MethodPost, endpoint, body, &playlist); err != nil {
		return nil, &StepError{Step: StepCreatePlaylist, Hint: "check the playlist-modify-private scope", Err: err}
	}
	if playlist.ID == "" {
		return nil, &StepError{Step: StepCreatePlaylist, Hint: "check the playlist-modify-private scope",
			Err: fmt.Errorf("%w: playlist response had no id", shared.ErrMalformedReply)}
	}

	// URIs go up as one comma-joined batch. Spotify caps a single add at 100
	// items; the 50-track limit keeps this chain under it.
	addEndpoint := fmt.Sprintf("/playlists/%s/tracks?uris=%s", playlist.ID, url.QueryEscape(strings.Join(uris, ",")))
	if err := c.call(ctx, http.MethodPost, addEndpoint, nil, nil); err != nil {
		return nil, &StepError{Step: StepPopulatePlaylist, Hint: "check the playlist-modify-private scope", Err: err}
	}

	return &PlaylistResult{
		PlaylistID:  playlist.ID,
		PlaylistURL: playlist.ExternalURLs.Spotify,
		Name:        playlist.Name,
		TrackCount:  len(uris),
	}, nil
}
