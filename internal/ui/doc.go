// Package ui implements an interactive terminal listening widget using bubbletea's Elm architecture.
//
// The TUI mirrors the JSON widget the portfolio front end renders:
//  1. [WidgetView] : Now playing, profile, and recent listening history
//  2. [TopTracksView] : Browse top tracks per time range
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// The widget view re-polls the currently playing track on a fixed interval so
// the display tracks playback without any user input.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, 1/2/3, r, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
