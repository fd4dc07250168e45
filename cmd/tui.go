package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"tunelens/internal/shared"
	"tunelens/internal/spotify"
	"tunelens/internal/ui"
)

// TUI launches the interactive terminal listening widget.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if missing := r.config.Credentials.Spotify.MissingCredentials(); len(missing) > 0 {
		return fmt.Errorf("%w: %v", shared.ErrMissingCredentials, missing)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tunelens-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.logger = fileLogger
	r.client = spotify.NewClient(r.config.Credentials.Spotify, spotify.ClientOpts{Logger: fileLogger})

	model := ui.NewModel(ctx, r.client)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
