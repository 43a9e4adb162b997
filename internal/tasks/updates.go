package tasks

import (
	"fmt"
	"time"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ExpandQueryPhase Phase = iota
	SearchVariant
	EnrichCandidates
	RankResults
	FetchTracks
	ResolveArtists
	RateLimited
)

func (p Phase) String() string {
	switch p {
	case ExpandQueryPhase:
		return "expand_query"
	case SearchVariant:
		return "search_variant"
	case EnrichCandidates:
		return "enrich_candidates"
	case RankResults:
		return "rank_results"
	case FetchTracks:
		return "fetch_tracks"
	case ResolveArtists:
		return "resolve_artists"
	case RateLimited:
		return "rate_limited"
	default:
		return ""
	}
}

func expandQueryUpdate(query string, variants []string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExpandQueryPhase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Expanded %q into %d searches", query, len(variants)),
		Data:    variants,
	}
}

func searchVariantUpdate(step, total int, variant string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchVariant,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Searching %q...", step, total, variant),
	}
}

func enrichUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnrichCandidates,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Checking followers: %s", step, total, name),
	}
}

func rankUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RankResults,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Ranked %d playlists", count),
	}
}

func fetchTracksUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching tracks for %s...", playlistID),
	}
}

func resolveBatchUpdate(step, total, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveArtists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving %d artists...", step, total, size),
	}
}

func rateLimitedUpdate(step, total int, delay time.Duration) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RateLimited,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Rate limited, retrying in %s", step, total, delay),
		Data:    delay,
	}
}
