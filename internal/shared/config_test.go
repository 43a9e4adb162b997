package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Catalog.BaseURL != "https://api.spotify.com/v1" {
			t.Errorf("expected catalog base URL https://api.spotify.com/v1, got %s", config.Catalog.BaseURL)
		}

		if config.Search.Limit != 10 {
			t.Errorf("expected search limit 10, got %d", config.Search.Limit)
		}

		if config.Search.MinTracks != 10 || config.Search.MinFollowers != 50 {
			t.Errorf("expected thresholds 10/50, got %d/%d", config.Search.MinTracks, config.Search.MinFollowers)
		}

		if config.Search.CuratorID != "spotify" {
			t.Errorf("expected curator spotify, got %s", config.Search.CuratorID)
		}

		if config.Genres.DefaultRetryAfter != 60 {
			t.Errorf("expected default retry-after 60, got %d", config.Genres.DefaultRetryAfter)
		}

		if config.Output.Dir != "data/raw" {
			t.Errorf("expected output dir data/raw, got %s", config.Output.Dir)
		}

		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Catalog.BaseURL != defaultConfig.Catalog.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[search]
limit = 20
min_followers = 500

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Search.Limit != 20 {
			t.Errorf("expected search limit 20, got %d", config.Search.Limit)
		}

		if config.Search.MinFollowers != 500 {
			t.Errorf("expected min followers 500, got %d", config.Search.MinFollowers)
		}

		if config.Search.MinTracks != 10 {
			t.Errorf("expected min tracks to keep default 10, got %d", config.Search.MinTracks)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[search\nlimit = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Search.CuratorID = "someone"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Search.CuratorID != "someone" {
			t.Errorf("expected curator someone, got %s", loaded.Search.CuratorID)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tt := []struct {
			name    string
			mutate  func(c *Config)
			wantErr error
		}{
			{
				name: "valid",
				mutate: func(c *Config) {
					c.Credentials.Spotify.ClientID = "id"
					c.Credentials.Spotify.ClientSecret = "secret"
				},
			},
			{
				name:    "template placeholders",
				mutate:  func(c *Config) {},
				wantErr: ErrMissingCredentials,
			},
			{
				name:    "missing client id",
				mutate:  func(c *Config) { c.Credentials.Spotify.ClientID = "" },
				wantErr: ErrMissingCredentials,
			},
			{
				name:    "missing client secret",
				mutate:  func(c *Config) { c.Credentials.Spotify.ClientSecret = "" },
				wantErr: ErrMissingCredentials,
			},
			{
				name: "empty base url",
				mutate: func(c *Config) {
					c.Credentials.Spotify = SpotifyConfig{ClientID: "id", ClientSecret: "secret"}
					c.Catalog.BaseURL = ""
				},
				wantErr: ErrInvalidConfig,
			},
			{
				name: "negative threshold",
				mutate: func(c *Config) {
					c.Credentials.Spotify = SpotifyConfig{ClientID: "id", ClientSecret: "secret"}
					c.Search.MinFollowers = -1
				},
				wantErr: ErrInvalidConfig,
			},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				config := DefaultConfig()
				tc.mutate(config)

				err := config.Validate()
				if tc.wantErr == nil && err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			})
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("Overrides From Environment", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_client")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "env_secret")
		t.Setenv("MOODLISTS_MIN_FOLLOWERS", "250")

		config := DefaultConfig()
		if err := ApplyEnv(config, ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "env_client" {
			t.Errorf("expected env_client, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "env_secret" {
			t.Errorf("expected env_secret, got %s", config.Credentials.Spotify.ClientSecret)
		}
		if config.Search.MinFollowers != 250 {
			t.Errorf("expected min followers 250, got %d", config.Search.MinFollowers)
		}
		if config.Search.MinTracks != 10 {
			t.Errorf("expected unset variable to keep default, got %d", config.Search.MinTracks)
		}
	})

	t.Run("Loads Dotenv File", func(t *testing.T) {
		// Register cleanup for the variable, then clear it so the dotenv file is not shadowed.
		t.Setenv("MOODLISTS_CURATOR_ID", "")
		os.Unsetenv("MOODLISTS_CURATOR_ID")

		dotenv := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(dotenv, []byte("MOODLISTS_CURATOR_ID=dotenv_curator\n"), 0644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}

		config := DefaultConfig()
		if err := ApplyEnv(config, dotenv); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Search.CuratorID != "dotenv_curator" {
			t.Errorf("expected dotenv_curator, got %s", config.Search.CuratorID)
		}
	})

	t.Run("Missing Dotenv File Is Ignored", func(t *testing.T) {
		config := DefaultConfig()
		if err := ApplyEnv(config, filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Invalid Value", func(t *testing.T) {
		t.Setenv("MOODLISTS_MIN_TRACKS", "many")

		err := ApplyEnv(DefaultConfig(), "")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
