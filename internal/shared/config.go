package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file
// with environment variable overrides applied on top.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
//
// AccessToken, when set, is a static override that bypasses the refresh
// flow entirely. It expires in real time with no renewal and exists for
// short-lived manual testing.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	AccessToken  string `toml:"access_token"`
	RedirectURI  string `toml:"redirect_uri"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidConfig)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays environment variables on the config. Environment values
// always win so deployments can run without a config file at all.
func (c *Config) ApplyEnv() {
	s := &c.Credentials.Spotify
	s.ClientID = Env("SPOTIFY_CLIENT_ID", s.ClientID)
	s.ClientSecret = Env("SPOTIFY_CLIENT_SECRET", s.ClientSecret)
	s.RefreshToken = Env("SPOTIFY_REFRESH_TOKEN", s.RefreshToken)
	s.AccessToken = Env("SPOTIFY_ACCESS_TOKEN", s.AccessToken)
	s.RedirectURI = Env("SPOTIFY_REDIRECT_URI", s.RedirectURI)

	c.Server.Host = Env("HOST", c.Server.Host)
	if port := Env("PORT", ""); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
}

// MissingCredentials returns the environment variable names of any credential
// required for the refresh flow that is absent. A static access token
// satisfies all of them.
func (s SpotifyConfig) MissingCredentials() []string {
	if s.AccessToken != "" {
		return nil
	}

	var missing []string
	if s.ClientID == "" {
		missing = append(missing, "SPOTIFY_CLIENT_ID")
	}
	if s.ClientSecret == "" {
		missing = append(missing, "SPOTIFY_CLIENT_SECRET")
	}
	if s.RefreshToken == "" {
		missing = append(missing, "SPOTIFY_REFRESH_TOKEN")
	}
	return missing
}
