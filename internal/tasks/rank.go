package tasks

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlists/internal/models"
)

// SortByFollowers orders records by follower count, highest first. Ties keep their relative order.
func SortByFollowers(records []models.PlaylistRecord) []models.PlaylistRecord {
	sorted := make([]models.PlaylistRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Followers() > sorted[j].Followers()
	})
	return sorted
}

// RankPlaylists sorts records by follower count and returns their IDs.
func RankPlaylists(records []models.PlaylistRecord, logger *log.Logger) []string {
	sorted := SortByFollowers(records)
	ids := make([]string, 0, len(sorted))
	for _, record := range sorted {
		if logger != nil {
			logger.Debug(record.String())
		}
		ids = append(ids, record.ID)
	}
	return ids
}
