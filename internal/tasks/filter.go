package tasks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlists/internal/services"
)

// SkipReason explains why a playlist record did not reach the ranking.
type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipNullRecord        SkipReason = "null_record"
	SkipMissingFields     SkipReason = "missing_fields"
	SkipCuratorOwned      SkipReason = "curator_owned"
	SkipExcludedTerm      SkipReason = "excluded_term"
	SkipTooFewTracks      SkipReason = "too_few_tracks"
	SkipSetlist           SkipReason = "setlist"
	SkipDuplicate         SkipReason = "duplicate"
	SkipDetailUnavailable SkipReason = "detail_unavailable"
	SkipMissingFollowers  SkipReason = "missing_followers"
	SkipTooFewFollowers   SkipReason = "too_few_followers"
	SkipEvaluationError   SkipReason = "evaluation_error"
)

const (
	DefaultMinTracks    = 10
	DefaultMinFollowers = 50
	DefaultCuratorID    = "spotify"
)

// Filter decides whether a search item is a candidate for enrichment.
type Filter struct {
	ExcludedTerms []string
	MinTracks     int
	CuratorID     string

	patterns []*regexp.Regexp
	logger   *log.Logger
}

// NewFilter compiles a whole-word pattern per excluded term.
func NewFilter(excluded []string, minTracks int, curatorID string, logger *log.Logger) *Filter {
	patterns := make([]*regexp.Regexp, 0, len(excluded))
	for _, term := range excluded {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return &Filter{
		ExcludedTerms: excluded,
		MinTracks:     minTracks,
		CuratorID:     curatorID,
		patterns:      patterns,
		logger:        logger,
	}
}

// Evaluate applies the rules in order and returns the first one that fails, or [SkipNone].
//
// A panic while evaluating the item is recovered and reported as [SkipEvaluationError].
func (f *Filter) Evaluate(item *services.SearchPlaylist) (reason SkipReason) {
	defer func() {
		if r := recover(); r != nil {
			if f.logger != nil {
				f.logger.Error("playlist evaluation failed", "error", fmt.Sprint(r))
			}
			reason = SkipEvaluationError
		}
	}()

	if item == nil {
		return SkipNullRecord
	}
	if item.Name == nil || item.Tracks == nil {
		return SkipMissingFields
	}
	if f.CuratorID != "" && item.OwnerID() == f.CuratorID {
		return SkipCuratorOwned
	}

	name := *item.Name
	for _, pattern := range f.patterns {
		if pattern.MatchString(name) {
			return SkipExcludedTerm
		}
	}
	if item.TrackTotal() < f.MinTracks {
		return SkipTooFewTracks
	}
	if strings.Contains(strings.ToLower(name), "setlist") {
		return SkipSetlist
	}
	return SkipNone
}

// Accept reports whether item passes every rule.
func (f *Filter) Accept(item *services.SearchPlaylist) bool {
	return f.Evaluate(item) == SkipNone
}
