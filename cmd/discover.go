package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/desertthunder/moodlists/internal/formatter"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/desertthunder/moodlists/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Discover searches for playlists matching the query and prints them ranked by followers.
func (r *Runner) Discover(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: a query such as \"morning\" is required", shared.ErrMissingArgument)
	}
	if err := r.requireEngine(); err != nil {
		return err
	}

	opts := r.discoverOpts(cmd)
	r.logger.Infof("discovering playlists for %q", query)

	report, err := r.engine.Discover(ctx, query, opts, nil)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if cmd.Bool("save") {
		filename := fmt.Sprintf("%s_%s.json", slug(query), report.RunID)
		path, err := formatter.SaveJSON(report, filename, r.outputDir(cmd))
		if err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		r.logger.Info("results saved", "path", path)
	}

	if cmd.Bool("json") {
		if cmd.Bool("report") {
			return r.writeJSON(report, cmd.Bool("pretty"))
		}
		return r.writeJSON(map[string]any{
			"run_id":       report.RunID,
			"query":        report.Query,
			"playlist_ids": report.PlaylistIDs,
			"playlists":    report.Playlists,
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Playlists for %q", query))
	if len(report.Playlists) == 0 {
		r.writePlain("No playlists matched.\n")
	}
	for i, playlist := range report.Playlists {
		r.writePlain("%d. %s\n", i+1, playlist)
		r.writePlain("   %s\n", shared.PlaylistURL(playlist.ID))
	}

	if cmd.Bool("report") {
		r.writeSkipSummary(report)
	}
	return nil
}

func (r *Runner) discoverOpts(cmd *cli.Command) tasks.DiscoverOpts {
	opts := tasks.DiscoverOpts{
		Limit:        r.config.Search.Limit,
		MinTracks:    r.config.Search.MinTracks,
		MinFollowers: r.config.Search.MinFollowers,
		CuratorID:    r.config.Search.CuratorID,
	}
	if cmd.IsSet("limit") {
		opts.Limit = cmd.Int("limit")
	}
	if cmd.IsSet("min-tracks") {
		opts.MinTracks = cmd.Int("min-tracks")
	}
	if cmd.IsSet("min-followers") {
		opts.MinFollowers = cmd.Int("min-followers")
	}
	if cmd.IsSet("curator") {
		opts.CuratorID = cmd.String("curator")
	}
	return opts
}

func (r *Runner) writeSkipSummary(report *tasks.DiscoveryReport) {
	counts := report.SkipCounts()
	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	r.writePlainln("Skipped %d of %d records", len(report.Outcomes)-len(report.PlaylistIDs), len(report.Outcomes))
	for _, reason := range reasons {
		r.writePlain("  %-20s %d\n", reason, counts[tasks.SkipReason(reason)])
	}
}

// outputDir resolves --output-dir, then the configured directory.
func (r *Runner) outputDir(cmd *cli.Command) string {
	if dir := cmd.String("output-dir"); dir != "" {
		return dir
	}
	if r.config.Output.Dir != "" {
		return r.config.Output.Dir
	}
	return formatter.DefaultFolder
}

// slug turns a query into a file-name friendly string.
func slug(query string) string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(c rune) bool {
		return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
	})
	if len(fields) == 0 {
		return "query"
	}
	return strings.Join(fields, "_")
}
