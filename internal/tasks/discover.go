package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/moodlists/internal/models"
	"github.com/desertthunder/moodlists/internal/shared"
)

// DefaultSearchLimit is the number of search items requested per variant.
const DefaultSearchLimit = 10

// DiscoverOpts configures a discovery run.
//
// Thresholds are used as given, so zero accepts every playlist; start from [DefaultDiscoverOpts] for the
// usual values. An empty Limit or CuratorID takes the package default.
type DiscoverOpts struct {
	Limit        int
	MinTracks    int
	MinFollowers int
	CuratorID    string
}

// DefaultDiscoverOpts returns the options used when nothing is configured.
func DefaultDiscoverOpts() DiscoverOpts {
	return DiscoverOpts{
		Limit:        DefaultSearchLimit,
		MinTracks:    DefaultMinTracks,
		MinFollowers: DefaultMinFollowers,
		CuratorID:    DefaultCuratorID,
	}
}

func (o DiscoverOpts) withDefaults() DiscoverOpts {
	if o.Limit <= 0 {
		o.Limit = DefaultSearchLimit
	}
	o.MinTracks = max(o.MinTracks, 0)
	o.MinFollowers = max(o.MinFollowers, 0)
	if o.CuratorID == "" {
		o.CuratorID = DefaultCuratorID
	}
	return o
}

// RecordOutcome is what happened to one search item.
type RecordOutcome struct {
	Variant    string     `json:"variant"`
	PlaylistID string     `json:"playlist_id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Followers  *int       `json:"followers,omitempty"`
	TrackCount int        `json:"track_count"`
	Reason     SkipReason `json:"reason,omitempty"`
}

// Skipped reports whether the record was dropped.
func (o RecordOutcome) Skipped() bool {
	return o.Reason != SkipNone
}

// DiscoveryReport is the result of [Engine.Discover].
type DiscoveryReport struct {
	RunID         string                  `json:"run_id"`
	Query         string                  `json:"query"`
	Variants      []string                `json:"variants"`
	ExcludedTerms []string                `json:"excluded_terms"`
	PlaylistIDs   []string                `json:"playlist_ids"`
	Playlists     []models.PlaylistRecord `json:"playlists"`
	Outcomes      []RecordOutcome         `json:"outcomes"`
	StartedAt     time.Time               `json:"started_at"`
	FinishedAt    time.Time               `json:"finished_at"`
}

// Accepted returns the outcomes that reached the ranking, in ranked order.
func (r *DiscoveryReport) Accepted() []RecordOutcome {
	byID := make(map[string]RecordOutcome)
	for _, o := range r.Outcomes {
		if !o.Skipped() {
			byID[o.PlaylistID] = o
		}
	}

	accepted := make([]RecordOutcome, 0, len(r.PlaylistIDs))
	for _, id := range r.PlaylistIDs {
		if o, ok := byID[id]; ok {
			accepted = append(accepted, o)
		}
	}
	return accepted
}

// SkipCounts tallies skipped outcomes by reason.
func (r *DiscoveryReport) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int)
	for _, o := range r.Outcomes {
		if o.Skipped() {
			counts[o.Reason]++
		}
	}
	return counts
}

// Discover searches every variant of query, filters and enriches the results, and ranks the survivors
// by follower count.
//
// Search failures abort the run. Individual records that are malformed, filtered out, or fail enrichment
// are recorded as skipped outcomes and never abort the run.
func (e *Engine) Discover(ctx context.Context, query string, opts DiscoverOpts, progress chan<- ProgressUpdate) (*DiscoveryReport, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	plan := NewSearchPlan(query)
	report := &DiscoveryReport{
		RunID:         shared.GenerateID(),
		Query:         plan.Query,
		Variants:      plan.Variants,
		ExcludedTerms: plan.ExcludedTerms,
		PlaylistIDs:   []string{},
		Outcomes:      []RecordOutcome{},
		StartedAt:     time.Now(),
	}
	logger := shared.WithLogger(e.logger, "run", report.RunID)
	e.sendProgress(progress, expandQueryUpdate(query, plan.Variants))

	filter := NewFilter(plan.ExcludedTerms, opts.MinTracks, opts.CuratorID, logger)
	enricher := NewEnricher(e.catalog, opts.MinFollowers, logger)
	seen := make(SeenSet)
	var accepted []models.PlaylistRecord

	for i, variant := range plan.Variants {
		e.sendProgress(progress, searchVariantUpdate(i+1, len(plan.Variants), variant))

		resp, err := e.catalog.SearchPlaylists(ctx, variant, opts.Limit)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", variant, err)
		}
		if resp == nil || resp.Playlists == nil || resp.Playlists.Items == nil {
			logger.Warn("search returned no playlists", "variant", variant)
			continue
		}

		items := resp.Playlists.Items
		for j, item := range items {
			outcome := RecordOutcome{Variant: variant}
			reason := filter.Evaluate(item)
			if item != nil {
				outcome.PlaylistID = item.ID
				if reason != SkipEvaluationError {
					record := item.Record()
					outcome.Name = record.Name
					outcome.TrackCount = record.TrackCount
				}
			}
			if reason != SkipNone {
				logger.Debug("skipping playlist", "variant", variant, "id", outcome.PlaylistID, "reason", reason)
				outcome.Reason = reason
				report.Outcomes = append(report.Outcomes, outcome)
				continue
			}

			e.sendProgress(progress, enrichUpdate(j+1, len(items), outcome.Name))
			enriched, reason, err := enricher.Enrich(ctx, seen, item.Record())
			if err != nil {
				return nil, err
			}
			outcome.Followers = enriched.FollowerCount
			outcome.Reason = reason
			report.Outcomes = append(report.Outcomes, outcome)

			if reason != SkipNone {
				logger.Debug("skipping playlist", "variant", variant, "id", outcome.PlaylistID, "reason", reason)
				continue
			}
			accepted = append(accepted, enriched)
		}
	}

	report.Playlists = SortByFollowers(accepted)
	report.PlaylistIDs = RankPlaylists(accepted, logger)
	report.FinishedAt = time.Now()
	e.sendProgress(progress, rankUpdate(len(report.PlaylistIDs)))

	logger.Info("discovery complete", "query", query, "ranked", len(report.PlaylistIDs), "seen", len(report.Outcomes))
	return report, nil
}
