package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tunelens/internal/shared"
	tu "tunelens/internal/testing"
)

func newServerClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(shared.SpotifyConfig{AccessToken: "static_token"}, ClientOpts{
		BaseURL: server.URL,
		Logger:  shared.NewLogger(io.Discard),
	})
	return client, server
}

func TestNowPlaying(t *testing.T) {
	t.Run("No Active Device", func(t *testing.T) {
		client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		np, err := client.NowPlaying(context.Background())
		if err != nil {
			t.Fatalf("a 204 is not an error, got %v", err)
		}
		if np.IsPlaying {
			t.Error("expected not playing")
		}
		if np.Title != "" || np.Artist != "" {
			t.Errorf("not-playing snapshot should carry no track fields, got %+v", np)
		}
	})

	t.Run("Active Track", func(t *testing.T) {
		client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me/player/currently-playing" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(CurrentlyPlaying{
				IsPlaying:  true,
				ProgressMS: 1000,
				Item:       &Track{Name: "Song", Artists: []Artist{{Name: "Artist"}}, DurationMS: 2000},
			})
		}))

		np, err := client.NowPlaying(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !np.IsPlaying || np.Title != "Song" {
			t.Errorf("expected playing Song, got %+v", np)
		}
	})
}

func TestTopTracks(t *testing.T) {
	t.Run("Invalid Time Range Short-Circuits", func(t *testing.T) {
		transport := tu.NewScriptedTransport()
		client := newTestClient(shared.SpotifyConfig{AccessToken: "static_token"}, transport)

		_, err := client.TopTracks(context.Background(), "yearly", 20)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if transport.Calls() != 0 {
			t.Errorf("validation must reject before any upstream traffic, got %d calls", transport.Calls())
		}
	})

	t.Run("Invalid Limit Short-Circuits", func(t *testing.T) {
		transport := tu.NewScriptedTransport()
		client := newTestClient(shared.SpotifyConfig{AccessToken: "static_token"}, transport)

		for _, limit := range []int{0, 51} {
			_, err := client.TopTracks(context.Background(), "short_term", limit)
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument for limit %d, got %v", limit, err)
			}
		}
		if transport.Calls() != 0 {
			t.Errorf("validation must reject before any upstream traffic, got %d calls", transport.Calls())
		}
	})

	t.Run("Forwards Parameters And Preserves Order", func(t *testing.T) {
		var gotQuery string
		client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			json.NewEncoder(w).Encode(TopTracksPage{Items: []Track{
				{Name: "First", URI: "spotify:track:1"},
				{Name: "Second", URI: "spotify:track:2"},
				{Name: "Third", URI: "spotify:track:3"},
			}})
		}))

		tracks, err := client.TopTracks(context.Background(), "long_term", 20)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(gotQuery, "time_range=long_term") || !strings.Contains(gotQuery, "limit=20") {
			t.Errorf("expected forwarded query parameters, got %s", gotQuery)
		}
		if len(tracks) != 3 || len(tracks) > 20 {
			t.Fatalf("expected 3 tracks within limit, got %d", len(tracks))
		}
		if tracks[0].Title != "First" || tracks[2].Title != "Third" {
			t.Error("track order must match the upstream response")
		}
	})
}

func TestRecentlyPlayed(t *testing.T) {
	t.Run("Forwards Cursors", func(t *testing.T) {
		var gotQuery string
		client, _ := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			json.NewEncoder(w).Encode(RecentlyPlayedPage{Cursors: &Cursors{Before: "111", After: "222"}})
		}))

		recent, err := client.RecentlyPlayed(context.Background(), 10, "999", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(gotQuery, "before=999") {
			t.Errorf("expected before cursor forwarded, got %s", gotQuery)
		}
		if strings.Contains(gotQuery, "after=") {
			t.Errorf("empty after cursor should be omitted, got %s", gotQuery)
		}
		if recent.Cursors == nil || recent.Cursors.Before != "111" {
			t.Errorf("expected upstream cursors passed through, got %+v", recent.Cursors)
		}
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		transport := tu.NewScriptedTransport()
		client := newTestClient(shared.SpotifyConfig{AccessToken: "static_token"}, transport)

		_, err := client.RecentlyPlayed(context.Background(), 0, "", "")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if transport.Calls() != 0 {
			t.Errorf("expected no upstream calls, got %d", transport.Calls())
		}
	})
}

func widgetHandler(profileStatus int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/me/player/currently-playing", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CurrentlyPlaying{IsPlaying: true, Item: &Track{Name: "Song"}})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if profileStatus != http.StatusOK {
			w.WriteHeader(profileStatus)
			return
		}
		json.NewEncoder(w).Encode(User{ID: "u1", DisplayName: "Listener", Product: "premium"})
	})
	mux.HandleFunc("/me/player/recently-played", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RecentlyPlayedPage{Items: []PlayedItem{{Track: Track{Name: "Old Song"}}}})
	})
	return mux
}

func TestWidget(t *testing.T) {
	t.Run("Combines All Three Reads", func(t *testing.T) {
		client, _ := newServerClient(t, widgetHandler(http.StatusOK))

		snapshot := client.Widget(context.Background())
		if !snapshot.NowPlaying.IsPlaying || snapshot.NowPlaying.Title != "Song" {
			t.Errorf("expected now playing Song, got %+v", snapshot.NowPlaying)
		}
		if snapshot.Profile.DisplayName == nil || *snapshot.Profile.DisplayName != "Listener" {
			t.Errorf("expected profile Listener, got %+v", snapshot.Profile)
		}
		if len(snapshot.RecentlyPlayed.Tracks) != 1 {
			t.Errorf("expected one recent track, got %d", len(snapshot.RecentlyPlayed.Tracks))
		}
	})

	t.Run("Individual Failure Degrades To Default", func(t *testing.T) {
		client, _ := newServerClient(t, widgetHandler(http.StatusInternalServerError))

		snapshot := client.Widget(context.Background())
		if snapshot.Profile.Product != "free" || snapshot.Profile.DisplayName != nil {
			t.Errorf("failed profile read should degrade to the default, got %+v", snapshot.Profile)
		}
		if !snapshot.NowPlaying.IsPlaying {
			t.Error("the other reads should still succeed")
		}
	})
}
