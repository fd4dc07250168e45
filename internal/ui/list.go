package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"tunelens/internal/spotify"
)

var (
	_ list.Item = topTrackItem{}
	_ list.Item = recentTrackItem{}
)

// topTrackItem wraps [spotify.TopTrack] to implement [list.Item].
type topTrackItem struct {
	track spotify.TopTrack
	rank  int
}

func (i topTrackItem) FilterValue() string { return i.track.Title }
func (i topTrackItem) Title() string {
	return fmt.Sprintf("%d. %s", i.rank, i.track.Title)
}
func (i topTrackItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return desc
}

// recentTrackItem wraps [spotify.RecentTrack] to implement [list.Item].
type recentTrackItem struct {
	track spotify.RecentTrack
}

func (i recentTrackItem) FilterValue() string { return i.track.Title }
func (i recentTrackItem) Title() string       { return i.track.Title }
func (i recentTrackItem) Description() string {
	desc := i.track.Artist
	if played, err := time.Parse(time.RFC3339, i.track.PlayedAt); err == nil {
		desc = fmt.Sprintf("%s • %s", desc, played.Local().Format("Jan 2 15:04"))
	}
	return desc
}
