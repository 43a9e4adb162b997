package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/desertthunder/moodlists/internal/formatter"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/desertthunder/moodlists/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Genres resolves the genres of every track in a playlist.
func (r *Runner) Genres(ctx context.Context, cmd *cli.Command) error {
	playlistID := strings.TrimSpace(cmd.String("id"))
	if playlistID == "" {
		return fmt.Errorf("%w: --id", shared.ErrMissingArgument)
	}
	if err := r.requireEngine(); err != nil {
		return err
	}

	formatName := cmd.String("format")
	if formatName == "" {
		formatName = r.config.Output.Format
	}
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	var result *tasks.GenreResult
	resolve := func(ctx context.Context) error {
		var err error
		result, err = r.engine.ResolveGenres(ctx, playlistID, nil)
		return err
	}

	if cmd.Bool("no-spinner") || cmd.Bool("json") {
		err = resolve(ctx)
	} else {
		err = spinner.New().Title("Resolving genres...").Context(ctx).ActionWithErr(resolve).Run()
	}
	if err != nil {
		return fmt.Errorf("genre resolution failed: %w", err)
	}

	if cmd.Bool("save") {
		filename := fmt.Sprintf("%s_genres.%s", playlistID, format.Extension())
		path, err := formatter.WriteGenreExport(result, format, filepath.Join(r.outputDir(cmd), filename))
		if err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		r.logger.Info("results saved", "path", path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Genres for %s", playlistID))
	if len(result.Genres) == 0 {
		r.writePlain("No tracks found.\n")
	}
	for _, track := range result.Genres.TrackNames() {
		genres := result.Genres[track]
		if len(genres) == 0 {
			r.writePlain("%s: (none)\n", track)
			continue
		}
		r.writePlain("%s: %s\n", track, strings.Join(genres, ", "))
	}

	var failed int
	for _, batch := range result.Batches {
		if batch.State == tasks.BatchFailed {
			failed++
		}
	}
	if failed > 0 || result.NullArtists > 0 {
		r.writePlainln("%d of %d batches failed, %d artists unresolved", failed, len(result.Batches), result.NullArtists)
	}
	return nil
}
