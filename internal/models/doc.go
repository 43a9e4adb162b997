// Package models defines the domain values shared by the discovery and genre pipelines.
//
//   - [PlaylistRecord] : a playlist seen in search results, enriched once with a follower count
//   - [SearchPlan] : the search variants and excluded time-of-day terms derived from one query
//   - [ArtistRef] : join key routing an artist lookup back to the track it came from
//   - [GenreMap] : track name to genres, in catalog order
//
// Nothing here is persisted; values live for one pipeline run.
package models
