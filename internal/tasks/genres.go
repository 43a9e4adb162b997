package tasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlists/internal/models"
	"github.com/desertthunder/moodlists/internal/services"
	"github.com/desertthunder/moodlists/internal/shared"
)

const (
	// MaxPlaylistTracks is the number of leading playlist tracks considered for genre resolution.
	MaxPlaylistTracks = 200

	// MaxArtistBatch is the most artists resolved per bulk lookup.
	MaxArtistBatch = services.MaxArtistIDs
)

// BatchState is the lifecycle of one bulk artist lookup.
type BatchState int

const (
	BatchPending BatchState = iota
	BatchFetching
	BatchRateLimited
	BatchResolved
	BatchFailed
)

func (s BatchState) String() string {
	switch s {
	case BatchPending:
		return "pending"
	case BatchFetching:
		return "fetching"
	case BatchRateLimited:
		return "rate_limited"
	case BatchResolved:
		return "resolved"
	case BatchFailed:
		return "failed"
	default:
		return ""
	}
}

// MarshalText encodes the state by name.
func (s BatchState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BatchOutcome records how one batch was resolved.
type BatchOutcome struct {
	Index    int        `json:"index"`
	Size     int        `json:"size"`
	Attempts int        `json:"attempts"`
	State    BatchState `json:"state"`
	Status   int        `json:"status,omitempty"`
}

// GenreResult is the result of [Engine.ResolveGenres].
type GenreResult struct {
	PlaylistID  string          `json:"playlist_id"`
	Genres      models.GenreMap `json:"genres"`
	Batches     []BatchOutcome  `json:"batches"`
	ArtistCount int             `json:"artist_count"`
	NullArtists int             `json:"null_artists"`
}

// ExtractArtists returns one [models.ArtistRef] per artist with an ID on the first [MaxPlaylistTracks] tracks.
// Null tracks are skipped.
func ExtractArtists(tracks *services.PlaylistTracks) []models.ArtistRef {
	if tracks == nil {
		return nil
	}

	items := tracks.Items
	if len(items) > MaxPlaylistTracks {
		items = items[:MaxPlaylistTracks]
	}

	var refs []models.ArtistRef
	for _, item := range items {
		if item.Track == nil {
			continue
		}
		for _, artist := range item.Track.Artists {
			if artist.ID == "" {
				continue
			}
			refs = append(refs, models.ArtistRef{
				ID:        artist.ID,
				Name:      artist.Name,
				TrackName: item.Track.Name,
			})
		}
	}
	return refs
}

// BatchArtists splits refs into consecutive batches of at most size entries.
func BatchArtists(refs []models.ArtistRef, size int) [][]models.ArtistRef {
	if size <= 0 || size > MaxArtistBatch {
		size = MaxArtistBatch
	}

	var batches [][]models.ArtistRef
	for start := 0; start < len(refs); start += size {
		end := min(start+size, len(refs))
		batches = append(batches, refs[start:end])
	}
	return batches
}

// ResolveGenres maps the tracks of a playlist to the genres of their artists.
//
// A failed track fetch aborts. An empty playlist yields an empty map. Rate-limited batches are retried
// according to the engine's [BackoffPolicy] and exhausting it aborts with [shared.ErrRateLimited].
// Batches rejected with any other status are marked failed and skipped.
func (e *Engine) ResolveGenres(ctx context.Context, playlistID string, progress chan<- ProgressUpdate) (*GenreResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	logger := shared.WithLogger(e.logger, "playlist", playlistID)
	result := &GenreResult{
		PlaylistID: playlistID,
		Genres:     models.GenreMap{},
		Batches:    []BatchOutcome{},
	}

	e.sendProgress(progress, fetchTracksUpdate(playlistID))
	tracks, err := e.catalog.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("fetch tracks for %s: %w", playlistID, err)
	}
	if tracks == nil || len(tracks.Items) == 0 {
		logger.Warn("playlist has no tracks")
		return result, nil
	}

	refs := ExtractArtists(tracks)
	result.ArtistCount = len(refs)
	batches := BatchArtists(refs, MaxArtistBatch)
	for i, batch := range batches {
		result.Batches = append(result.Batches, BatchOutcome{Index: i, Size: len(batch), State: BatchPending})
	}

	for i, batch := range batches {
		e.sendProgress(progress, resolveBatchUpdate(i+1, len(batches), len(batch)))
		if err := e.resolveBatch(ctx, logger, batch, &result.Batches[i], result, len(batches), progress); err != nil {
			return result, err
		}
	}

	logger.Info("genres resolved", "tracks", len(result.Genres), "artists", result.ArtistCount, "batches", len(batches))
	return result, nil
}

func (e *Engine) resolveBatch(ctx context.Context, logger *log.Logger, batch []models.ArtistRef, outcome *BatchOutcome, result *GenreResult, total int, progress chan<- ProgressUpdate) error {
	ids := make([]string, len(batch))
	tracksByArtist := make(map[string][]string)
	for i, ref := range batch {
		ids[i] = ref.ID
		tracksByArtist[ref.ID] = append(tracksByArtist[ref.ID], ref.TrackName)
	}

	retries := 0
	for {
		outcome.State = BatchFetching
		outcome.Attempts++

		resp, err := e.catalog.SeveralArtists(ctx, ids)
		if err == nil {
			outcome.State = BatchResolved
			outcome.Status = http.StatusOK
			assignGenres(logger, resp, tracksByArtist, result)
			return nil
		}

		var apiErr *services.APIError
		if !errors.As(err, &apiErr) {
			outcome.State = BatchFailed
			return fmt.Errorf("resolve artists %s: %w", strings.Join(ids, ","), err)
		}
		outcome.Status = apiErr.StatusCode

		if apiErr.StatusCode != http.StatusTooManyRequests {
			outcome.State = BatchFailed
			logger.Warn("skipping artist batch", "batch", outcome.Index, "status", apiErr.StatusCode)
			return nil
		}

		if retries >= e.backoff.MaxRetries {
			outcome.State = BatchFailed
			return fmt.Errorf("%w: batch %d still limited after %d retries", shared.ErrRateLimited, outcome.Index, retries)
		}

		delay := e.backoff.Delay(apiErr.RetryAfter, apiErr.HasRetryAfter)
		outcome.State = BatchRateLimited
		logger.Warn("rate limited", "batch", outcome.Index, "retry_in", delay)
		e.sendProgress(progress, rateLimitedUpdate(outcome.Index+1, total, delay))

		if err := e.backoff.Sleep(ctx, delay); err != nil {
			return err
		}
		retries++
	}
}

func assignGenres(logger *log.Logger, resp *services.SeveralArtists, tracksByArtist map[string][]string, result *GenreResult) {
	if resp == nil {
		return
	}
	for _, artist := range resp.Artists {
		if artist == nil {
			logger.Warn("bulk lookup returned a null artist")
			result.NullArtists++
			continue
		}

		genres := artist.Genres
		if genres == nil {
			genres = []string{}
		}
		for _, track := range tracksByArtist[artist.ID] {
			result.Genres[track] = genres
		}
	}
}
