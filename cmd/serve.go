package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"tunelens/internal/shared"
	"tunelens/internal/web"
)

// Serve starts the HTTP proxy and blocks until the process is interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = int(port)
	}

	if missing := r.config.Credentials.Spotify.MissingCredentials(); len(missing) > 0 {
		r.logger.Warnf("missing credentials %v, every request will fail until they are set", missing)
	}
	if r.config.Credentials.Spotify.AccessToken != "" {
		r.logger.Warn("using a static access token; it expires upstream with no renewal")
	}

	srv := web.NewServer(r.client, cfg, shared.WithLogger(r.logger, "component", "web"))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigChan:
		r.logger.Infof("received %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
