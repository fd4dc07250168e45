package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"tunelens/internal/spotify"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	WidgetView ViewState = iota
	TopTracksView
)

// pollInterval is how often the widget view re-fetches the currently playing track.
const pollInterval = 5 * time.Second

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	client    *spotify.Client
	width     int
	height    int
	trackList list.Model
	listReady bool
	snapshot  spotify.WidgetSnapshot
	loaded    bool
	timeRange string
	err       error
	help      help.Model
	keys      keyMap
}

type widgetFetchedMsg struct {
	snapshot spotify.WidgetSnapshot
}

type topTracksFetchedMsg struct {
	timeRange string
	tracks    []spotify.TopTrack
	err       error
}

type pollMsg time.Time

// NewModel creates a new TUI model backed by the given Spotify client.
func NewModel(ctx context.Context, client *spotify.Client) *Model {
	return &Model{
		ctx:       ctx,
		view:      WidgetView,
		client:    client,
		timeRange: "medium_term",
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init kicks off the initial fetches and the now-playing poll loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchWidget(), m.fetchTopTracks(m.timeRange), m.poll())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.view == WidgetView {
				m.view = TopTracksView
			} else {
				m.view = WidgetView
			}
			return m, nil
		case "r":
			return m, tea.Batch(m.fetchWidget(), m.fetchTopTracks(m.timeRange))
		case "1", "2", "3":
			m.timeRange = spotify.TimeRanges[int(msg.String()[0]-'1')]
			return m, m.fetchTopTracks(m.timeRange)
		}

		if m.view == TopTracksView && m.listReady {
			var cmd tea.Cmd
			m.trackList, cmd = m.trackList.Update(msg)
			return m, cmd
		}
		return m, nil

	case widgetFetchedMsg:
		m.snapshot = msg.snapshot
		m.loaded = true
		return m, nil

	case topTracksFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = topTrackItem{track: track, rank: i + 1}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Top Tracks (%s)", msg.timeRange)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.listReady = true
		return m, nil

	case pollMsg:
		return m, tea.Batch(m.fetchWidget(), m.poll())
	}

	if m.view == TopTracksView && m.listReady {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case WidgetView:
		return m.renderWidget()
	case TopTracksView:
		return m.renderTopTracks()
	default:
		return ""
	}
}

func (m *Model) fetchWidget() tea.Cmd {
	return func() tea.Msg {
		return widgetFetchedMsg{snapshot: m.client.Widget(m.ctx)}
	}
}

func (m *Model) fetchTopTracks(timeRange string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.client.TopTracks(m.ctx, timeRange, 20)
		return topTracksFetchedMsg{timeRange: timeRange, tracks: tracks, err: err}
	}
}

func (m *Model) poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (m *Model) renderWidget() string {
	if !m.loaded {
		return styles.help.Render("Loading...")
	}

	var b strings.Builder

	np := m.snapshot.NowPlaying
	if np.IsPlaying {
		b.WriteString(styles.title.Render("♪ Now Playing"))
		b.WriteString(fmt.Sprintf("\n%s\n%s", styles.ok.Render(np.Title), np.Artist))
		if np.Album != "" {
			b.WriteString(fmt.Sprintf(" • %s", np.Album))
		}
		b.WriteString(fmt.Sprintf("\n%s / %s\n", clock(np.Progress), clock(np.Duration)))
	} else {
		b.WriteString(styles.title.Render("♪ Nothing Playing"))
		b.WriteString("\n" + styles.help.Render("Silence for now") + "\n")
	}

	profile := m.snapshot.Profile
	name := "—"
	if profile.DisplayName != nil {
		name = *profile.DisplayName
	}
	b.WriteString(fmt.Sprintf("\n%s %s (%d followers, %s)\n", styles.warn.Render("Listener:"), name, profile.Followers, profile.Product))

	if len(m.snapshot.RecentlyPlayed.Tracks) > 0 {
		b.WriteString("\n" + styles.warn.Render("Recently played:") + "\n")
		for i, track := range m.snapshot.RecentlyPlayed.Tracks {
			if i >= 5 {
				break
			}
			item := recentTrackItem{track: track}
			b.WriteString(fmt.Sprintf("  %s — %s\n", item.Title(), item.Description()))
		}
	}

	b.WriteString("\n" + m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) renderTopTracks() string {
	if !m.listReady {
		return styles.help.Render("Loading top tracks...")
	}
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), m.help.ShortHelpView(m.keys.ShortHelp()))
}

func clock(ms int) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
