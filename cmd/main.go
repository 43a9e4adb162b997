package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlists/internal/services"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config, err := shared.LoadConfig("config.toml")
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		config = shared.DefaultConfig()
	case err != nil:
		logger.Warn("failed to load config, using defaults", "error", err)
		config = shared.DefaultConfig()
	}

	if err := shared.ApplyEnv(config, ".env"); err != nil {
		logger.Fatalf("configuration error: %v", err)
	}

	if level, err := shared.ParseLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, level)
	} else {
		logger.Warn("ignoring log level", "error", err)
	}

	catalog, err := newCatalog(config, logger)
	if err != nil {
		logger.Debug("catalog unavailable", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "moodlists",
		Usage:    "Discover mood playlists on Spotify and resolve their genres",
		Version:  "0.1.0",
		Flags:    runner.globalFlags(),
		Before:   runner.before,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newCatalog builds the Spotify catalog client from client credentials.
//
// A nil catalog is returned when credentials are missing so that commands which
// do not reach the catalog (setup) still work.
func newCatalog(config *shared.Config, logger *log.Logger) (services.Catalog, error) {
	if !config.Credentials.Spotify.Configured() {
		return nil, fmt.Errorf("%w: spotify client credentials are not set", shared.ErrMissingCredentials)
	}

	creds, err := services.NewClientCredentials(config.Credentials.Spotify.Map(), config.Catalog.TokenURL)
	if err != nil {
		return nil, err
	}

	return services.NewSpotifyService(services.SpotifyOpts{
		BaseURL:           config.Catalog.BaseURL,
		HTTPClient:        creds.Client(context.Background()),
		RequestsPerSecond: config.Catalog.RequestsPerSecond,
		Timeout:           config.Catalog.Timeout(),
		Logger:            logger,
	}), nil
}
