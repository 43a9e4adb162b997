package models

import (
	"reflect"
	"testing"
)

func TestPlaylistRecord(t *testing.T) {
	t.Run("WithFollowers", func(t *testing.T) {
		p := PlaylistRecord{ID: "p1", Name: "Sunrise", TrackCount: 12}
		if p.Enriched() {
			t.Fatal("expected fresh record to be unenriched")
		}

		enriched := p.WithFollowers(120)
		if !enriched.Enriched() || enriched.Followers() != 120 {
			t.Errorf("expected 120 followers, got %d", enriched.Followers())
		}
		if p.Enriched() {
			t.Error("expected original record to stay unenriched")
		}
	})

	t.Run("String", func(t *testing.T) {
		p := PlaylistRecord{Name: "Sunrise", TrackCount: 12}.WithFollowers(7)
		if got := p.String(); got != "Sunrise - Followers: 7 - Tracks: 12" {
			t.Errorf("unexpected String() %q", got)
		}
	})
}

func TestGenreMapTrackNames(t *testing.T) {
	g := GenreMap{"b": nil, "a": {"pop"}, "c": {}}
	if got := g.TrackNames(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("unexpected order %v", got)
	}
}
