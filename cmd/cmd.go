// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// serveCommand starts the HTTP proxy that the portfolio front end calls.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the listening proxy HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles configuration scaffolding.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Run the one-time OAuth flow to mint a refresh token",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check that the configured credentials can mint an access token",
				Action: r.AuthStatus,
			},
		},
	}
}

// spotifyCommand exposes the proxy's read operations on the command line.
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify listening data operations",
		Commands: []*cli.Command{
			{
				Name:   "now-playing",
				Usage:  "Show the currently playing track",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.SpotifyNowPlaying,
			},
			{
				Name:  "top-tracks",
				Usage: "List top tracks for a time range",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "time-range",
						Usage: "One of short_term, medium_term, long_term",
						Value: "medium_term",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of tracks to return (1-50)",
						Value: 20,
					},
					jsonFlag(),
					prettyFlag(),
				},
				Action: r.SpotifyTopTracks,
			},
			{
				Name:  "recently-played",
				Usage: "List recently played tracks",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of tracks to return (1-50)",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "before",
						Usage: "Cursor: only items played before this timestamp",
					},
					&cli.StringFlag{
						Name:  "after",
						Usage: "Cursor: only items played after this timestamp",
					},
					jsonFlag(),
					prettyFlag(),
				},
				Action: r.SpotifyRecentlyPlayed,
			},
			{
				Name:   "profile",
				Usage:  "Show the authenticated user's public profile",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.SpotifyProfile,
			},
			{
				Name:  "create-playlist",
				Usage: "Create a private playlist from your top tracks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "time-range",
						Usage: "One of short_term, medium_term, long_term",
						Value: "medium_term",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of tracks to include (1-50)",
						Value: 20,
					},
					prettyFlag(),
				},
				Action: r.SpotifyCreatePlaylist,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the terminal listening widget.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal listening widget",
		Action:  r.TUI,
	}
}

func prettyFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "pretty",
		Usage: "Pretty-print output",
		Value: true,
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output JSON (disable for plain text)",
		Value: true,
	}
}
