package spotify

import (
	"fmt"
	"strings"

	"tunelens/internal/shared"
)

// TimeRanges enumerates the listening-history windows the Web API accepts.
var TimeRanges = []string{"short_term", "medium_term", "long_term"}

// ValidateTimeRange checks a time_range parameter against the allowed enum.
func ValidateTimeRange(timeRange string) error {
	for _, tr := range TimeRanges {
		if timeRange == tr {
			return nil
		}
	}
	return fmt.Errorf("%w: time_range must be one of %s", shared.ErrInvalidArgument, strings.Join(TimeRanges, ", "))
}

// ValidateLimit checks a limit parameter against the 1-50 bound.
func ValidateLimit(limit int) error {
	if limit < 1 || limit > 50 {
		return fmt.Errorf("%w: limit must be between 1 and 50", shared.ErrInvalidArgument)
	}
	return nil
}

// NowPlaying is the simplified shape of the currently-playing snapshot.
// When nothing is playing only IsPlaying is populated; all other fields
// are omitted from the serialized form.
type NowPlaying struct {
	IsPlaying bool   `json:"isPlaying"`
	Title     string `json:"title,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Album     string `json:"album,omitempty"`
	AlbumArt  string `json:"albumArt,omitempty"`
	TrackURL  string `json:"trackUrl,omitempty"`
	Progress  int    `json:"progress,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

// TopTrack is the simplified shape of a listening-history track.
type TopTrack struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	AlbumArt   string `json:"albumArt"`
	TrackURL   string `json:"trackUrl"`
	Duration   int    `json:"duration"`
	Popularity int    `json:"popularity"`
	URI        string `json:"uri"`
}

// RecentTrack is a played track plus its play timestamp.
type RecentTrack struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	AlbumArt string `json:"albumArt"`
	TrackURL string `json:"trackUrl"`
	Duration int    `json:"duration"`
	PlayedAt string `json:"playedAt"`
}

// RecentlyPlayed is the simplified recently-played page. Next and Cursors are
// forwarded from the upstream response byte-for-byte.
type RecentlyPlayed struct {
	Tracks  []RecentTrack `json:"tracks"`
	Next    *string       `json:"next"`
	Cursors *Cursors      `json:"cursors"`
}

// Profile is the simplified user profile. DisplayName and SpotifyURL are
// pointers so the degraded default serializes them as null.
type Profile struct {
	ID          string  `json:"id,omitempty"`
	DisplayName *string `json:"displayName"`
	Email       string  `json:"email,omitempty"`
	Country     string  `json:"country,omitempty"`
	Images      []Image `json:"images"`
	Followers   int     `json:"followers"`
	Product     string  `json:"product"`
	SpotifyURL  *string `json:"spotifyUrl"`
}

// DefaultProfile is the degrade-to-defaults payload served when the upstream
// profile call fails. Failure stays invisible to the UI layer: the widget
// renders an anonymous free-tier profile instead of an error state.
func DefaultProfile() Profile {
	return Profile{Images: []Image{}, Product: "free"}
}

// albumArt picks album art by exact width preference: 640, then 300, then
// whatever comes first. No images yields an empty string.
func albumArt(images []Image) string {
	for _, want := range []int{640, 300} {
		for _, img := range images {
			if img.Width == want {
				return img.URL
			}
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

// artistNames joins the track's artist names in their upstream order.
func artistNames(artists []Artist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// ShapeNowPlaying maps the raw player response to the widget shape.
func ShapeNowPlaying(raw CurrentlyPlaying) NowPlaying {
	if !raw.IsPlaying || raw.Item == nil {
		return NowPlaying{IsPlaying: false}
	}

	return NowPlaying{
		IsPlaying: true,
		Title:     raw.Item.Name,
		Artist:    artistNames(raw.Item.Artists),
		Album:     raw.Item.Album.Name,
		AlbumArt:  albumArt(raw.Item.Album.Images),
		TrackURL:  raw.Item.ExternalURLs.Spotify,
		Progress:  raw.ProgressMS,
		Duration:  raw.Item.DurationMS,
	}
}

// ShapeTopTracks maps the raw top-tracks page to the widget shape, preserving order.
func ShapeTopTracks(raw TopTracksPage) []TopTrack {
	tracks := make([]TopTrack, len(raw.Items))
	for i, item := range raw.Items {
		tracks[i] = TopTrack{
			Title:      item.Name,
			Artist:     artistNames(item.Artists),
			Album:      item.Album.Name,
			AlbumArt:   albumArt(item.Album.Images),
			TrackURL:   item.ExternalURLs.Spotify,
			Duration:   item.DurationMS,
			Popularity: item.Popularity,
			URI:        item.URI,
		}
	}
	return tracks
}

// ShapeRecentlyPlayed maps the raw history page 1:1, keeping the API's
// reverse-chronological order and passing pagination cursors through verbatim.
func ShapeRecentlyPlayed(raw RecentlyPlayedPage) RecentlyPlayed {
	tracks := make([]RecentTrack, len(raw.Items))
	for i, item := range raw.Items {
		tracks[i] = RecentTrack{
			Title:    item.Track.Name,
			Artist:   artistNames(item.Track.Artists),
			Album:    item.Track.Album.Name,
			AlbumArt: albumArt(item.Track.Album.Images),
			TrackURL: item.Track.ExternalURLs.Spotify,
			Duration: item.Track.DurationMS,
			PlayedAt: item.PlayedAt,
		}
	}

	return RecentlyPlayed{Tracks: tracks, Next: raw.Next, Cursors: raw.Cursors}
}

// ShapeProfile maps the raw user object to the widget shape.
func ShapeProfile(raw User) Profile {
	p := Profile{
		ID:        raw.ID,
		Email:     raw.Email,
		Country:   raw.Country,
		Images:    raw.Images,
		Followers: raw.Followers.Total,
		Product:   raw.Product,
	}
	if p.Images == nil {
		p.Images = []Image{}
	}
	if p.Product == "" {
		p.Product = "free"
	}
	if raw.DisplayName != "" {
		name := raw.DisplayName
		p.DisplayName = &name
	}
	if raw.ExternalURLs.Spotify != "" {
		u := raw.ExternalURLs.Spotify
		p.SpotifyURL = &u
	}
	return p
}
