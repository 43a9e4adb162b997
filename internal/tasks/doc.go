// Package tasks runs the playlist discovery and genre resolution pipelines with real-time progress reporting.
//
// # Core Operations
//
// [Engine] exposes two operations:
//
//  1. [Engine.Discover] : mood playlist discovery
//     - Expands the query into four search variants ([ExpandQuery])
//     - Evaluates every search item against [Filter]
//     - Enriches candidates with follower counts ([Enricher]), once per playlist ID
//     - Ranks survivors by followers ([RankPlaylists])
//     - Returns a [DiscoveryReport] with an outcome per record seen
//
//  2. [Engine.ResolveGenres] : per-track genre lookup
//     - Extracts artists from the first [MaxPlaylistTracks] tracks
//     - Resolves them in batches of at most [MaxArtistBatch]
//     - Waits out rate limits according to [BackoffPolicy]
//     - Returns a [GenreResult] with per-batch state
//
// # Progress Reporting
//
// Both operations accept an optional channel of [ProgressUpdate] values.
// Updates use select with default so a slow or absent reader never blocks a pipeline.
//
// # Implementation
//
// Pipelines run sequentially on the caller's goroutine. The only suspension points are
// the catalog's request pacer and the rate-limit wait, both of which honor context cancellation.
package tasks
