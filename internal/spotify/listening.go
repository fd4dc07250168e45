package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// NowPlaying fetches the currently-playing snapshot. A 204 from the player
// endpoint (no active device) shapes to the not-playing value.
func (c *Client) NowPlaying(ctx context.Context) (NowPlaying, error) {
	var raw CurrentlyPlaying
	if err := c.call(ctx, http.MethodGet, "/me/player/currently-playing", nil, &raw); err != nil {
		return NowPlaying{}, err
	}
	return ShapeNowPlaying(raw), nil
}

// TopTracks fetches the user's top tracks for a listening-history window.
// Parameters are validated before any network traffic happens.
func (c *Client) TopTracks(ctx context.Context, timeRange string, limit int) ([]TopTrack, error) {
	if err := ValidateTimeRange(timeRange); err != nil {
		return nil, err
	}
	if err := ValidateLimit(limit); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/me/top/tracks?time_range=%s&limit=%d", timeRange, limit)

	var raw TopTracksPage
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &raw); err != nil {
		return nil, err
	}
	return ShapeTopTracks(raw), nil
}

// RecentlyPlayed fetches the play history, most recent first. The before and
// after cursors are opaque upstream tokens and forwarded untouched.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int, before, after string) (RecentlyPlayed, error) {
	if err := ValidateLimit(limit); err != nil {
		return RecentlyPlayed{}, err
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if before != "" {
		params.Set("before", before)
	}
	if after != "" {
		params.Set("after", after)
	}

	var raw RecentlyPlayedPage
	if err := c.call(ctx, http.MethodGet, "/me/player/recently-played?"+params.Encode(), nil, &raw); err != nil {
		return RecentlyPlayed{}, err
	}
	return ShapeRecentlyPlayed(raw), nil
}

// Profile fetches the user profile in its widget shape.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	user, err := c.Me(ctx)
	if err != nil {
		return Profile{}, err
	}
	return ShapeProfile(*user), nil
}

// WidgetSnapshot bundles the three independent reads the listening widget
// renders from.
type WidgetSnapshot struct {
	NowPlaying     NowPlaying     `json:"nowPlaying"`
	Profile        Profile        `json:"profile"`
	RecentlyPlayed RecentlyPlayed `json:"recentlyPlayed"`
}

// Widget fetches now-playing, profile, and recently-played concurrently.
// The three reads are unrelated, so they are issued together and each
// failure degrades to its default instead of failing the snapshot.
func (c *Client) Widget(ctx context.Context) WidgetSnapshot {
	snapshot := WidgetSnapshot{
		Profile:        DefaultProfile(),
		RecentlyPlayed: RecentlyPlayed{Tracks: []RecentTrack{}},
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		if np, err := c.NowPlaying(ctx); err != nil {
			c.logger.Error("widget: now-playing fetch failed", "error", err)
		} else {
			snapshot.NowPlaying = np
		}
	}()

	go func() {
		defer wg.Done()
		if p, err := c.Profile(ctx); err != nil {
			c.logger.Error("widget: profile fetch failed", "error", err)
		} else {
			snapshot.Profile = p
		}
	}()

	go func() {
		defer wg.Done()
		if rp, err := c.RecentlyPlayed(ctx, 10, "", ""); err != nil {
			c.logger.Error("widget: recently-played fetch failed", "error", err)
		} else {
			snapshot.RecentlyPlayed = rp
		}
	}()

	wg.Wait()
	return snapshot
}
