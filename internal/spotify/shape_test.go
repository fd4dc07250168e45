package spotify

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"tunelens/internal/shared"
)

func TestValidation(t *testing.T) {
	t.Run("ValidateTimeRange", func(t *testing.T) {
		for _, tr := range TimeRanges {
			if err := ValidateTimeRange(tr); err != nil {
				t.Errorf("expected %s to be valid, got %v", tr, err)
			}
		}

		for _, tr := range []string{"", "yearly", "SHORT_TERM", "short"} {
			err := ValidateTimeRange(tr)
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument for %q, got %v", tr, err)
			}
		}
	})

	t.Run("ValidateLimit", func(t *testing.T) {
		for _, limit := range []int{1, 20, 50} {
			if err := ValidateLimit(limit); err != nil {
				t.Errorf("expected %d to be valid, got %v", limit, err)
			}
		}

		for _, limit := range []int{0, -1, 51, 100} {
			err := ValidateLimit(limit)
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument for %d, got %v", limit, err)
			}
		}
	})
}

func TestAlbumArt(t *testing.T) {
	t.Run("Prefers 640 Width", func(t *testing.T) {
		images := []Image{
			{URL: "huge", Width: 1000},
			{URL: "medium", Width: 640},
			{URL: "small", Width: 300},
			{URL: "tiny", Width: 64},
		}
		if got := albumArt(images); got != "medium" {
			t.Errorf("expected medium, got %s", got)
		}
	})

	t.Run("Falls Back To 300", func(t *testing.T) {
		images := []Image{
			{URL: "huge", Width: 1000},
			{URL: "small", Width: 300},
		}
		if got := albumArt(images); got != "small" {
			t.Errorf("expected small, got %s", got)
		}
	})

	t.Run("Falls Back To First", func(t *testing.T) {
		images := []Image{
			{URL: "huge", Width: 1000},
			{URL: "tiny", Width: 64},
		}
		if got := albumArt(images); got != "huge" {
			t.Errorf("expected huge, got %s", got)
		}
	})

	t.Run("No Images", func(t *testing.T) {
		if got := albumArt(nil); got != "" {
			t.Errorf("expected empty string, got %s", got)
		}
	})
}

func TestShapeNowPlaying(t *testing.T) {
	t.Run("Not Playing Serializes To Single Field", func(t *testing.T) {
		shaped := ShapeNowPlaying(CurrentlyPlaying{})

		data, err := json.Marshal(shaped)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if string(data) != `{"isPlaying":false}` {
			t.Errorf("expected bare isPlaying payload, got %s", string(data))
		}
	})

	t.Run("Playing Without Item Is Not Playing", func(t *testing.T) {
		shaped := ShapeNowPlaying(CurrentlyPlaying{IsPlaying: true, Item: nil})
		if shaped.IsPlaying {
			t.Error("a playing response with no item should shape to not playing")
		}
	})

	t.Run("Maps Track Fields", func(t *testing.T) {
		raw := CurrentlyPlaying{
			IsPlaying:  true,
			ProgressMS: 61000,
			Item: &Track{
				Name:         "Test Song",
				Artists:      []Artist{{Name: "First"}, {Name: "Second"}},
				Album:        Album{Name: "Test Album", Images: []Image{{URL: "art", Width: 640}}},
				DurationMS:   180000,
				ExternalURLs: externalURLs{Spotify: "https://open.spotify.com/track/x"},
			},
		}

		shaped := ShapeNowPlaying(raw)
		if !shaped.IsPlaying {
			t.Fatal("expected playing")
		}
		if shaped.Title != "Test Song" {
			t.Errorf("expected title Test Song, got %s", shaped.Title)
		}
		if shaped.Artist != "First, Second" {
			t.Errorf("artists should join in upstream order, got %s", shaped.Artist)
		}
		if shaped.AlbumArt != "art" {
			t.Errorf("expected album art, got %s", shaped.AlbumArt)
		}
		if shaped.Progress != 61000 || shaped.Duration != 180000 {
			t.Errorf("expected progress/duration 61000/180000, got %d/%d", shaped.Progress, shaped.Duration)
		}
	})
}

func TestShapeRecentlyPlayed(t *testing.T) {
	t.Run("Cursors Pass Through Verbatim", func(t *testing.T) {
		next := "https://api.spotify.com/v1/me/player/recently-played?before=123"
		raw := RecentlyPlayedPage{
			Items:   []PlayedItem{{Track: Track{Name: "A"}, PlayedAt: "2026-08-29T10:00:00Z"}},
			Next:    &next,
			Cursors: &Cursors{Before: "123", After: "456"},
		}

		shaped := ShapeRecentlyPlayed(raw)
		if shaped.Next == nil || *shaped.Next != next {
			t.Errorf("next cursor should pass through untouched, got %v", shaped.Next)
		}
		if shaped.Cursors == nil || shaped.Cursors.Before != "123" || shaped.Cursors.After != "456" {
			t.Errorf("cursors should pass through untouched, got %+v", shaped.Cursors)
		}
		if shaped.Tracks[0].PlayedAt != "2026-08-29T10:00:00Z" {
			t.Errorf("played_at should carry over, got %s", shaped.Tracks[0].PlayedAt)
		}
	})

	t.Run("Nil Cursors Stay Nil", func(t *testing.T) {
		shaped := ShapeRecentlyPlayed(RecentlyPlayedPage{})
		if shaped.Next != nil || shaped.Cursors != nil {
			t.Errorf("expected nil pagination on final page, got %v %v", shaped.Next, shaped.Cursors)
		}
	})
}

func TestShapeProfile(t *testing.T) {
	t.Run("Empty Optional Fields Serialize As Null", func(t *testing.T) {
		shaped := ShapeProfile(User{ID: "u1", Product: "premium"})

		data, err := json.Marshal(shaped)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		payload := string(data)
		if !strings.Contains(payload, `"displayName":null`) {
			t.Errorf("expected null displayName, got %s", payload)
		}
		if !strings.Contains(payload, `"spotifyUrl":null`) {
			t.Errorf("expected null spotifyUrl, got %s", payload)
		}
		if !strings.Contains(payload, `"images":[]`) {
			t.Errorf("images should be an empty array, not null, got %s", payload)
		}
	})

	t.Run("Defaults Product To Free", func(t *testing.T) {
		shaped := ShapeProfile(User{})
		if shaped.Product != "free" {
			t.Errorf("expected product free, got %s", shaped.Product)
		}
	})

	t.Run("Maps Populated Fields", func(t *testing.T) {
		raw := User{
			ID:           "u1",
			DisplayName:  "Listener",
			Product:      "premium",
			Followers:    followers{Total: 42},
			ExternalURLs: externalURLs{Spotify: "https://open.spotify.com/user/u1"},
		}

		shaped := ShapeProfile(raw)
		if shaped.DisplayName == nil || *shaped.DisplayName != "Listener" {
			t.Errorf("expected display name Listener, got %v", shaped.DisplayName)
		}
		if shaped.Followers != 42 {
			t.Errorf("expected 42 followers, got %d", shaped.Followers)
		}
		if shaped.SpotifyURL == nil || *shaped.SpotifyURL != "https://open.spotify.com/user/u1" {
			t.Errorf("expected profile URL, got %v", shaped.SpotifyURL)
		}
	})

	t.Run("DefaultProfile", func(t *testing.T) {
		profile := DefaultProfile()
		if profile.Product != "free" {
			t.Errorf("expected product free, got %s", profile.Product)
		}
		if profile.Images == nil {
			t.Error("expected empty images slice, got nil")
		}
		if profile.DisplayName != nil || profile.SpotifyURL != nil {
			t.Error("default profile should have null display name and URL")
		}
	})
}
