// Package spotify wraps the subset of the Spotify Web API that powers the
// listening widget: now playing, top tracks, recently played, profile, and
// playlist creation.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"tunelens/internal/shared"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// AuthURL returns the Spotify authorization endpoint.
func AuthURL() string { return spotifyAuthURL }

// TokenURL returns the Spotify token endpoint.
func TokenURL() string { return spotifyTokenURL }

// Scopes lists the permissions the proxy needs for every endpoint it serves.
var Scopes = []string{
	"user-read-currently-playing",
	"user-read-recently-played",
	"user-top-read",
	"user-read-private",
	"user-read-email",
	"playlist-modify-private",
}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Album represents a Spotify album.
type Album struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Images []Image `json:"images"`
	URI    string  `json:"uri"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// Track represents a Spotify track.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        Album        `json:"album"`
	DurationMS   int          `json:"duration_ms"`
	Explicit     bool         `json:"explicit"`
	Popularity   int          `json:"popularity"`
	ExternalURLs externalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

type followers struct {
	Total int `json:"total"`
}

// User represents a Spotify user profile.
type User struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	Email        string       `json:"email"`
	Country      string       `json:"country"`
	Product      string       `json:"product"` // premium, free, etc.
	Followers    followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// CurrentlyPlaying represents the player's currently-playing response.
// Spotify answers 204 with an empty body when nothing is active, which
// decodes to the zero value here.
type CurrentlyPlaying struct {
	IsPlaying  bool   `json:"is_playing"`
	ProgressMS int    `json:"progress_ms"`
	Item       *Track `json:"item"`
}

// TopTracksPage represents the listening-history top tracks response.
type TopTracksPage struct {
	Items []Track `json:"items"`
}

// PlayedItem represents a single entry in the recently-played history.
type PlayedItem struct {
	Track    Track  `json:"track"`
	PlayedAt string `json:"played_at"`
}

// Cursors are opaque pagination tokens, forwarded to callers verbatim.
type Cursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// RecentlyPlayedPage represents the recently-played history response.
type RecentlyPlayedPage struct {
	Items   []PlayedItem `json:"items"`
	Next    *string      `json:"next"`
	Cursors *Cursors     `json:"cursors"`
}

// PlaylistObject represents a created playlist.
type PlaylistObject struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`
}

// Client issues authenticated requests to the Spotify Web API. Every call
// resolves a fresh access token first; nothing is cached between requests,
// so the client carries no cross-request state beyond its credentials.
type Client struct {
	creds      shared.SpotifyConfig
	httpClient *http.Client
	logger     *log.Logger
	tokenURL   string
	baseURL    string
}

// ClientOpts contains optional overrides for creating a Client.
type ClientOpts struct {
	HTTPClient *http.Client
	Logger     *log.Logger
	TokenURL   string
	BaseURL    string
}

// NewClient creates a Spotify client from the given credentials.
func NewClient(creds shared.SpotifyConfig, opts ClientOpts) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}

	return &Client{
		creds:      creds,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		tokenURL:   opts.TokenURL,
		baseURL:    opts.BaseURL,
	}
}

// AccessToken resolves a usable bearer token.
//
// A static override token from configuration is returned as-is. Otherwise the
// long-lived refresh token is exchanged for a short-lived access token at the
// token endpoint, authenticated with HTTP Basic auth. The exchange happens on
// every call; tokens are never cached.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.creds.AccessToken != "" {
		return c.creds.AccessToken, nil
	}

	if missing := c.creds.MissingCredentials(); len(missing) > 0 {
		return "", fmt.Errorf("%w: set %s", shared.ErrMissingCredentials, strings.Join(missing, ", "))
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.creds.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read token response: %v", shared.ErrRefreshFailed, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return "", fmt.Errorf("%w: status %d: %s (regenerate the refresh token with `tunelens auth login`)",
			shared.ErrAuthFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: status %d: %s", shared.ErrRefreshFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("%w: %s", shared.ErrMalformedReply, strings.TrimSpace(string(body)))
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: token endpoint returned no access_token", shared.ErrRefreshFailed)
	}

	// Spotify occasionally rotates the refresh token. The stored credential
	// is never rewritten at runtime, so surface it for the operator.
	if token.RefreshToken != "" && token.RefreshToken != c.creds.RefreshToken {
		c.logger.Warn("token endpoint issued a new refresh token; update your configuration")
	}

	return token.AccessToken, nil
}

// call performs an authenticated request against the Web API.
//
// The response body is read as text first and only then parsed, so a parse
// failure still carries the raw payload for diagnostics. Non-2xx is always an
// error. One attempt per call: no retry, no backoff.
func (c *Client) call(ctx context.Context, method, endpoint string, body, out any) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: failed to read response: %v", shared.ErrAPIRequest, method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d %s: %s",
			shared.ErrAPIRequest, method, endpoint, resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(text)))
	}

	// 204 or an empty body leaves out at its zero value.
	if out == nil || len(text) == 0 || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(text, out); err != nil {
		return fmt.Errorf("%w: %s %s: %s", shared.ErrMalformedReply, method, endpoint, strings.TrimSpace(string(text)))
	}

	return nil
}

// Me retrieves the authenticated user's raw profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.call(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
