// package services defines interface Catalog for the Spotify Web API calls used by the pipelines
package services

import (
	"context"
)

// Catalog defines the raw catalog operations consumed by playlist discovery and genre resolution.
type Catalog interface {
	// SearchPlaylists runs a playlist search and returns at most limit items.
	SearchPlaylists(ctx context.Context, query string, limit int) (*SearchResponse, error)

	// PlaylistDetail retrieves full playlist metadata, including followers.
	PlaylistDetail(ctx context.Context, playlistID string) (*PlaylistDetail, error)

	// PlaylistTracks retrieves the first page of a playlist's tracks.
	PlaylistTracks(ctx context.Context, playlistID string) (*PlaylistTracks, error)

	// SeveralArtists resolves up to [MaxArtistIDs] artists in one request.
	// A rate-limited response is returned as an [*APIError] with status 429.
	SeveralArtists(ctx context.Context, artistIDs []string) (*SeveralArtists, error)
}
