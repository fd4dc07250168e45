package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"tunelens/internal/shared"
	"tunelens/internal/spotify"
)

// SpotifyNowPlaying prints the currently playing track. Output is shaped JSON
// unless --json=false asks for plain text.
func (r *Runner) SpotifyNowPlaying(ctx context.Context, cmd *cli.Command) error {
	np, err := r.client.NowPlaying(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !cmd.Bool("json") {
		if !np.IsPlaying {
			return r.writePlain("Nothing playing right now\n")
		}
		return r.writePlain("%s - %s (%s)\n", np.Title, np.Artist, np.Album)
	}

	return r.writeJSON(np, cmd.Bool("pretty"))
}

// SpotifyTopTracks prints the user's top tracks for a time range.
func (r *Runner) SpotifyTopTracks(ctx context.Context, cmd *cli.Command) error {
	timeRange := cmd.String("time-range")
	limit := int(cmd.Int("limit"))

	tracks, err := r.client.TopTracks(ctx, timeRange, limit)
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		return r.writePlain("No listening history for the %s time range yet\n", timeRange)
	}

	if !cmd.Bool("json") {
		for i, track := range tracks {
			if err := r.writePlain("%2d. %s - %s\n", i+1, track.Title, track.Artist); err != nil {
				return err
			}
		}
		return nil
	}

	return r.writeJSON(tracks, cmd.Bool("pretty"))
}

// SpotifyRecentlyPlayed prints the user's listening history.
func (r *Runner) SpotifyRecentlyPlayed(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))

	recent, err := r.client.RecentlyPlayed(ctx, limit, cmd.String("before"), cmd.String("after"))
	if err != nil {
		return err
	}

	if !cmd.Bool("json") {
		if len(recent.Tracks) == 0 {
			return r.writePlain("No recently played tracks\n")
		}
		for _, track := range recent.Tracks {
			if err := r.writePlain("%s - %s (played %s)\n", track.Title, track.Artist, track.PlayedAt); err != nil {
				return err
			}
		}
		return nil
	}

	return r.writeJSON(recent, cmd.Bool("pretty"))
}

// SpotifyProfile prints the authenticated user's shaped profile.
func (r *Runner) SpotifyProfile(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.client.Profile(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !cmd.Bool("json") {
		return r.writeProfilePlain(profile)
	}

	return r.writeJSON(profile, cmd.Bool("pretty"))
}

func (r *Runner) writeProfilePlain(profile spotify.Profile) error {
	name := "(no display name)"
	if profile.DisplayName != nil {
		name = *profile.DisplayName
	}
	if err := r.writePlain("Name:      %s\n", name); err != nil {
		return err
	}
	if err := r.writePlain("Followers: %d\n", profile.Followers); err != nil {
		return err
	}
	if err := r.writePlain("Plan:      %s\n", profile.Product); err != nil {
		return err
	}
	if profile.SpotifyURL != nil {
		return r.writePlain("URL:       %s\n", *profile.SpotifyURL)
	}
	return nil
}

// SpotifyCreatePlaylist builds a private playlist from the user's top tracks.
func (r *Runner) SpotifyCreatePlaylist(ctx context.Context, cmd *cli.Command) error {
	timeRange := cmd.String("time-range")
	limit := int(cmd.Int("limit"))

	r.logger.Infof("building playlist from top %d tracks (%s)", limit, timeRange)

	result, err := r.client.CreateFromTopTracks(ctx, timeRange, limit)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Playlist created")
	r.writePlain("Name:   %s\n", result.Name)
	r.writePlain("Tracks: %d\n", result.TrackCount)
	if result.PlaylistURL != "" {
		r.writePlain("URL:    %s\n", result.PlaylistURL)
	}

	return nil
}
