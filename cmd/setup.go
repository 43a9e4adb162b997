package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/moodlists/internal/services"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a config.toml template and verifies the configured credentials.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	_, statErr := os.Stat(configPath)
	switch {
	case statErr == nil && !cmd.Bool("force"):
		r.logger.Info("config file already exists", "path", configPath)
	default:
		if statErr == nil {
			if err := os.Remove(configPath); err != nil {
				return fmt.Errorf("failed to replace config: %w", err)
			}
		}
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		r.logger.Info("config file created from template", "path", configPath)
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if id, secret := cmd.String("client-id"), cmd.String("client-secret"); id != "" || secret != "" {
		if id != "" {
			config.Credentials.Spotify.ClientID = id
		}
		if secret != "" {
			config.Credentials.Spotify.ClientSecret = secret
		}
		if err := shared.SaveConfig(configPath, config); err != nil {
			return err
		}
		r.logger.Info("credentials saved", "path", configPath)
	}
	if err := shared.ApplyEnv(config, ".env"); err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		if errors.Is(err, shared.ErrMissingCredentials) {
			r.writePlain("✗ Spotify credentials are not set\n")
			r.writePlainln("Next steps:")
			r.writePlain("1. Create an app at https://developer.spotify.com/dashboard\n")
			r.writePlain("2. Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET in .env or %s\n", configPath)
			return nil
		}
		return err
	}

	creds, err := services.NewClientCredentials(config.Credentials.Spotify.Map(), config.Catalog.TokenURL)
	if err != nil {
		return err
	}
	if _, err := creds.Token(ctx); err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}

	r.writePlain("✓ Spotify credentials verified\n")
	r.writePlain("Config: %s\n", configPath)
	r.writePlainln("Try: moodlists discover morning")
	return nil
}
