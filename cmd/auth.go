package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"tunelens/internal/server"
	"tunelens/internal/shared"
	"tunelens/internal/spotify"
)

const defaultRedirectURI = "http://127.0.0.1:8912/callback"

// AuthLogin runs the one-time OAuth2 authorization-code flow.
//
// Starts a local HTTP server for the callback, opens the browser for user
// authorization, and prints the minted refresh token. The token is never
// written anywhere; the operator copies it into SPOTIFY_REFRESH_TOKEN.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.Spotify
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set", shared.ErrMissingCredentials)
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = defaultRedirectURI
	}

	redirect, err := url.Parse(redirectURI)
	if err != nil {
		return fmt.Errorf("%w: invalid redirect URI %q: %v", shared.ErrInvalidConfig, redirectURI, err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       spotify.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotify.AuthURL(),
			TokenURL: spotify.TokenURL(),
		},
	}

	state := shared.GenerateID()
	handler := server.NewOAuthHandler(oauthConfig, state)

	router := server.NewBasicRouter()
	router.Handler(handler)

	srv := &http.Server{Addr: redirect.Host, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			handler.Send(server.OAuthResult{})
			r.logger.Errorf("callback server failed: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := oauthConfig.AuthCodeURL(state)
	r.writePlain("Visit the following URL to authorize access:\n\n%s\n\n", authURL)

	if !cmd.Bool("no-browser") {
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser: %v", err)
		}
	}

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		if result.Token == nil {
			return fmt.Errorf("%w: callback server stopped before authorization completed", shared.ErrAuthFailed)
		}
		if result.Token.RefreshToken == "" {
			return fmt.Errorf("%w: authorization succeeded but no refresh token was returned", shared.ErrAuthFailed)
		}

		r.writePlainln("✓ Authorization successful")
		r.writePlain("Set this in your environment (or .env):\n\n")
		r.writePlain("  SPOTIFY_REFRESH_TOKEN=%s\n", result.Token.RefreshToken)
		return nil
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("%w: timed out waiting for authorization", shared.ErrAuthFailed)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AuthStatus checks that the configured credentials can mint an access token.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if missing := r.config.Credentials.Spotify.MissingCredentials(); len(missing) > 0 {
		r.writePlain("✗ Missing credentials:\n")
		for _, name := range missing {
			r.writePlain("  %s\n", name)
		}
		return fmt.Errorf("%w: %d credential(s) unset", shared.ErrMissingCredentials, len(missing))
	}

	if _, err := r.client.AccessToken(ctx); err != nil {
		r.writePlain("✗ Token exchange failed\n")
		return err
	}

	return r.writePlain("✓ Credentials are valid, access token minted\n")
}
