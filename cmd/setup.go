package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"tunelens/internal/shared"
)

// SetupConfig writes a starter config.toml from the embedded example.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.writePlain("✓ Config file created at %s\n", path)
	r.writePlain("Fill in [credentials.spotify], or set SPOTIFY_* environment variables instead\n")

	return nil
}
