package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/moodlists/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = genreItem{}
)

// playlistItem wraps [models.PlaylistRecord] to implement [list.Item].
type playlistItem struct {
	rank     int
	playlist models.PlaylistRecord
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return fmt.Sprintf("%d. %s", i.rank, i.playlist.Name) }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d followers • %d tracks", i.playlist.Followers(), i.playlist.TrackCount)
}

// genreItem pairs a track name with its artist's genres to implement [list.Item].
type genreItem struct {
	track  string
	genres []string
}

func (i genreItem) FilterValue() string { return i.track + " " + strings.Join(i.genres, " ") }
func (i genreItem) Title() string       { return i.track }
func (i genreItem) Description() string {
	if len(i.genres) == 0 {
		return "no genres"
	}
	return strings.Join(i.genres, ", ")
}

func playlistItems(records []models.PlaylistRecord) []list.Item {
	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = playlistItem{rank: i + 1, playlist: record}
	}
	return items
}

func genreItems(genres models.GenreMap) []list.Item {
	names := genres.TrackNames()
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = genreItem{track: name, genres: genres[name]}
	}
	return items
}
