// package formatter provides functions to persist discovery reports and export genre maps to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/moodlists/internal/models"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/desertthunder/moodlists/internal/tasks"
)

// DefaultFolder is where [SaveJSON] writes when no folder is given.
const DefaultFolder = "data/raw"

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// ParseFormat validates a format name. "md" and "text" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (use json, csv, markdown or txt)", shared.ErrInvalidFlag, name)
	}
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case "":
		return "json"
	default:
		return string(f)
	}
}

// SaveJSON writes data as indented JSON to folder/filename and returns the path.
//
// The folder defaults to [DefaultFolder] and is created if missing.
func SaveJSON(data any, filename, folder string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: empty filename", shared.ErrInvalidArgument)
	}
	if folder == "" {
		folder = DefaultFolder
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := shared.MarshalJSON(data, true)
	if err != nil {
		return "", err
	}

	path := filepath.Join(folder, filename)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return path, nil
}

// ExportGenresCSV converts a genre map to CSV with columns: Track, Genres. Genres are joined with "; ".
func ExportGenresCSV(genres models.GenreMap) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Track", "Genres"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range genres.TrackNames() {
		if err := writer.Write([]string{track, strings.Join(genres[track], "; ")}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportGenresMarkdown renders a genre map as a Markdown table.
func ExportGenresMarkdown(playlistID string, genres models.GenreMap) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Genres for %s\n\n", playlistID)
	fmt.Fprintf(&buf, "**Playlist**: %s\n", shared.PlaylistURL(playlistID))
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(genres))

	buf.WriteString("| Track | Genres |\n")
	buf.WriteString("|-------|--------|\n")
	for _, track := range genres.TrackNames() {
		fmt.Fprintf(&buf, "| %s | %s |\n", escapeCell(track), escapeCell(genreList(genres[track])))
	}

	return buf.Bytes(), nil
}

// ExportGenresText renders one "track: genres" line per track.
func ExportGenresText(playlistID string, genres models.GenreMap) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", playlistID)
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(genres))

	for _, track := range genres.TrackNames() {
		fmt.Fprintf(&buf, "%s: %s\n", track, genreList(genres[track]))
	}

	return buf.Bytes(), nil
}

// WriteGenreExport writes result in the given format and returns the path written.
//
// Defaults to {playlistID}_genres.{ext} as the filename.
func WriteGenreExport(result *tasks.GenreResult, format Format, path string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("%w: no genre result", shared.ErrInvalidArgument)
	}
	if path == "" {
		path = fmt.Sprintf("%s_genres.%s", result.PlaylistID, format.Extension())
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON, "":
		data, err = shared.MarshalJSON(result, true)
	case FormatCSV:
		data, err = ExportGenresCSV(result.Genres)
	case FormatMarkdown:
		data, err = ExportGenresMarkdown(result.PlaylistID, result.Genres)
	case FormatText:
		data, err = ExportGenresText(result.PlaylistID, result.Genres)
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return path, nil
}

func genreList(genres []string) string {
	if len(genres) == 0 {
		return "(none)"
	}
	return strings.Join(genres, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
