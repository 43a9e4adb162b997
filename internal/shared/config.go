package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Search      SearchConfig      `toml:"search"`
	Genres      GenresConfig      `toml:"genres"`
	Output      OutputConfig      `toml:"output"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API client credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id" env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `toml:"client_secret" env:"SPOTIFY_CLIENT_SECRET"`
}

// Map returns the credentials in the form accepted by the services package.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
	}
}

// CatalogConfig contains catalog API endpoints and request pacing.
type CatalogConfig struct {
	BaseURL           string  `toml:"base_url" env:"MOODLISTS_BASE_URL"`
	TokenURL          string  `toml:"token_url" env:"MOODLISTS_TOKEN_URL"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"MOODLISTS_REQUESTS_PER_SECOND"`
	TimeoutSeconds    int     `toml:"timeout_seconds" env:"MOODLISTS_TIMEOUT_SECONDS"`
}

// Timeout returns the per-request timeout, or zero for none.
func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchConfig contains playlist discovery thresholds.
type SearchConfig struct {
	Limit        int    `toml:"limit" env:"MOODLISTS_SEARCH_LIMIT"`
	MinTracks    int    `toml:"min_tracks" env:"MOODLISTS_MIN_TRACKS"`
	MinFollowers int    `toml:"min_followers" env:"MOODLISTS_MIN_FOLLOWERS"`
	CuratorID    string `toml:"curator_id" env:"MOODLISTS_CURATOR_ID"`
}

// GenresConfig contains rate-limit handling for bulk artist lookups. Durations are in seconds.
type GenresConfig struct {
	DefaultRetryAfter int `toml:"default_retry_after" env:"MOODLISTS_DEFAULT_RETRY_AFTER"`
	MaxRetryAfter     int `toml:"max_retry_after" env:"MOODLISTS_MAX_RETRY_AFTER"`
	MaxRetries        int `toml:"max_retries" env:"MOODLISTS_MAX_RETRIES"`
}

// OutputConfig contains defaults for saved results.
type OutputConfig struct {
	Dir    string `toml:"dir" env:"MOODLISTS_OUTPUT_DIR"`
	Format string `toml:"format" env:"MOODLISTS_OUTPUT_FORMAT"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" env:"MOODLISTS_LOG_LEVEL"`
}

// Configured reports whether both credentials are set to something other than the template placeholders.
func (s SpotifyConfig) Configured() bool {
	for _, v := range []string{s.ClientID, s.ClientSecret} {
		if v == "" || strings.HasPrefix(v, "your_") {
			return false
		}
	}
	return true
}

// Validate reports whether the configuration can be used to reach the catalog.
func (c *Config) Validate() error {
	if !c.Credentials.Spotify.Configured() {
		return fmt.Errorf("%w: spotify client_id and client_secret are required", ErrMissingCredentials)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog base_url is empty", ErrInvalidConfig)
	}
	if c.Search.MinTracks < 0 || c.Search.MinFollowers < 0 {
		return fmt.Errorf("%w: search thresholds must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults. A missing file is reported as [ErrMissingConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overlays environment variables onto config.
//
// Variables from dotenvPath are loaded first when the file exists; variables already set in the process win.
func ApplyEnv(config *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			if err := godotenv.Load(dotenvPath); err != nil {
				return fmt.Errorf("failed to load %s: %w", dotenvPath, err)
			}
		}
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to path as TOML, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
