package tasks

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlists/internal/models"
	"github.com/desertthunder/moodlists/internal/services"
)

// SeenSet tracks playlist IDs whose enrichment has already been attempted during one discovery run.
type SeenSet map[string]struct{}

// Has reports whether id has been seen.
func (s SeenSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks id as seen.
func (s SeenSet) Add(id string) {
	s[id] = struct{}{}
}

// Enricher attaches follower counts to candidates and drops unpopular ones.
type Enricher struct {
	catalog      services.Catalog
	minFollowers int
	logger       *log.Logger
}

func NewEnricher(catalog services.Catalog, minFollowers int, logger *log.Logger) *Enricher {
	return &Enricher{catalog: catalog, minFollowers: minFollowers, logger: logger}
}

// Enrich fetches the detail of candidate and returns it with its follower count.
//
// IDs already in seen are skipped as [SkipDuplicate] without a request. Fetch failures are reported as
// [SkipDetailUnavailable]; only context cancellation is returned as an error.
func (e *Enricher) Enrich(ctx context.Context, seen SeenSet, candidate models.PlaylistRecord) (models.PlaylistRecord, SkipReason, error) {
	if seen.Has(candidate.ID) {
		return candidate, SkipDuplicate, nil
	}
	seen.Add(candidate.ID)

	detail, err := e.catalog.PlaylistDetail(ctx, candidate.ID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return candidate, SkipNone, err
		}
		e.logger.Warn("playlist detail unavailable", "id", candidate.ID, "error", err)
		return candidate, SkipDetailUnavailable, nil
	}

	if detail.Followers == nil {
		e.logger.Debug("playlist has no followers field", "id", candidate.ID)
		return candidate, SkipMissingFollowers, nil
	}

	enriched := candidate.WithFollowers(detail.Followers.Total)
	if detail.Followers.Total < e.minFollowers {
		return enriched, SkipTooFewFollowers, nil
	}
	return enriched, SkipNone, nil
}
