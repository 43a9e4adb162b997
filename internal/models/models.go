// package models defines the data model for playlist discovery and genre resolution
package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SearchPlan holds the concrete search strings derived from a single query.
type SearchPlan struct {
	Query         string   `json:"query"`
	Variants      []string `json:"variants"`
	ExcludedTerms []string `json:"excluded_terms"`
}

// PlaylistRecord is a playlist found through search.
//
// FollowerCount is nil until the record is enriched.
type PlaylistRecord struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	OwnerID       string          `json:"owner_id"`
	TrackCount    int             `json:"track_count"`
	FollowerCount *int            `json:"follower_count,omitempty"`
	Raw           json.RawMessage `json:"-"`
}

// Enriched reports whether a follower count has been attached.
func (p PlaylistRecord) Enriched() bool {
	return p.FollowerCount != nil
}

// Followers returns the follower count, or 0 when the record is not enriched.
func (p PlaylistRecord) Followers() int {
	if p.FollowerCount == nil {
		return 0
	}
	return *p.FollowerCount
}

// WithFollowers returns a copy of p with the follower count set.
func (p PlaylistRecord) WithFollowers(n int) PlaylistRecord {
	p.FollowerCount = &n
	return p
}

func (p PlaylistRecord) String() string {
	return fmt.Sprintf("%s - Followers: %d - Tracks: %d", p.Name, p.Followers(), p.TrackCount)
}

// ArtistRef ties an artist to the name of the track it was found on.
type ArtistRef struct {
	ID        string
	Name      string
	TrackName string
}

// GenreMap maps a track name to the genres of its artist.
type GenreMap map[string][]string

// TrackNames returns the keys in lexical order.
func (g GenreMap) TrackNames() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
