package formatter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/moodlists/internal/models"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/desertthunder/moodlists/internal/tasks"
	th "github.com/desertthunder/moodlists/internal/testing"
)

func testGenres() models.GenreMap {
	return models.GenreMap{
		"Walking on Sunshine": {"pop", "new wave"},
		"Coffee | Cream":      {"jazz"},
		"Ambient Intro":       {},
	}
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "", want: FormatJSON},
		{name: "JSON", want: FormatJSON},
		{name: "csv", want: FormatCSV},
		{name: "md", want: FormatMarkdown},
		{name: "markdown", want: FormatMarkdown},
		{name: "text", want: FormatText},
		{name: "txt", want: FormatText},
		{name: "xml", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidFlag) {
					t.Errorf("expected ErrInvalidFlag, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("expected %s, got %s (%v)", tt.want, got, err)
			}
		})
	}

	t.Run("Extension", func(t *testing.T) {
		if FormatMarkdown.Extension() != "md" || FormatText.Extension() != "txt" || Format("").Extension() != "json" {
			t.Error("unexpected extensions")
		}
	})
}

func TestExporters(t *testing.T) {
	t.Run("ExportGenresCSV", func(t *testing.T) {
		data, err := ExportGenresCSV(testGenres())
		if err != nil {
			t.Fatalf("ExportGenresCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected 4 lines, got %d: %s", len(lines), data)
		}
		if lines[0] != "Track,Genres" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != "Ambient Intro," {
			t.Errorf("expected rows sorted by track name, got: %s", lines[1])
		}
		if lines[3] != "Walking on Sunshine,pop; new wave" {
			t.Errorf("unexpected row: %s", lines[3])
		}
	})

	t.Run("ExportGenresMarkdown", func(t *testing.T) {
		data, err := ExportGenresMarkdown("p1", testGenres())
		if err != nil {
			t.Fatalf("ExportGenresMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Genres for p1") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "https://open.spotify.com/playlist/p1") {
			t.Errorf("Markdown missing playlist link")
		}
		if !strings.Contains(output, `| Coffee \| Cream | jazz |`) {
			t.Errorf("Markdown should escape pipes, got: %s", output)
		}
		if !strings.Contains(output, "| Ambient Intro | (none) |") {
			t.Errorf("Markdown should mark tracks without genres")
		}
	})

	t.Run("ExportGenresText", func(t *testing.T) {
		data, err := ExportGenresText("p1", testGenres())
		if err != nil {
			t.Fatalf("ExportGenresText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Tracks: 3") {
			t.Errorf("Text missing track count")
		}
		if !strings.Contains(output, "Walking on Sunshine: pop, new wave") {
			t.Errorf("Text missing genre line, got: %s", output)
		}
	})

	t.Run("Empty Map", func(t *testing.T) {
		data, err := ExportGenresCSV(models.GenreMap{})
		if err != nil {
			t.Fatalf("ExportGenresCSV failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "Track,Genres" {
			t.Errorf("expected header only, got %s", data)
		}
	})
}

func TestSaveJSON(t *testing.T) {
	t.Run("Creates Folder", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data", "raw")

		path, err := SaveJSON(map[string]any{"playlist_ids": []string{"a", "b"}}, "morning.json", dir)
		if err != nil {
			t.Fatalf("SaveJSON failed: %v", err)
		}

		th.AssertDirExists(t, dir)
		th.AssertFileExists(t, path)

		var decoded map[string][]string
		if err := json.Unmarshal([]byte(th.MustReadFile(t, path)), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded["playlist_ids"]) != 2 {
			t.Errorf("unexpected content %v", decoded)
		}
	})

	t.Run("Default Folder", func(t *testing.T) {
		tmp := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tmp)
		defer th.MustChdir(t, originalDir)

		path, err := SaveJSON([]int{1}, "out.json", "")
		if err != nil {
			t.Fatalf("SaveJSON failed: %v", err)
		}
		if path != filepath.Join("data", "raw", "out.json") {
			t.Errorf("unexpected path %s", path)
		}
		th.AssertFileExists(t, filepath.Join(tmp, path))
	})

	t.Run("Empty Filename", func(t *testing.T) {
		if _, err := SaveJSON(1, "", t.TempDir()); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Unmarshalable Data", func(t *testing.T) {
		if _, err := SaveJSON(make(chan int), "bad.json", t.TempDir()); err == nil {
			t.Error("expected marshal error")
		}
	})
}

func TestWriters(t *testing.T) {
	result := &tasks.GenreResult{
		PlaylistID: "p1",
		Genres:     testGenres(),
		Batches:    []tasks.BatchOutcome{{Index: 0, Size: 3, Attempts: 1, State: tasks.BatchResolved, Status: 200}},
	}

	t.Run("All Formats", func(t *testing.T) {
		dir := t.TempDir()
		tc := []struct {
			format Format
			want   string
		}{
			{format: FormatJSON, want: `"state": "resolved"`},
			{format: FormatCSV, want: "Track,Genres"},
			{format: FormatMarkdown, want: "| Track | Genres |"},
			{format: FormatText, want: "Playlist: p1"},
		}

		for _, tt := range tc {
			t.Run(string(tt.format), func(t *testing.T) {
				path, err := WriteGenreExport(result, tt.format, filepath.Join(dir, "out", "genres."+tt.format.Extension()))
				if err != nil {
					t.Fatalf("WriteGenreExport failed: %v", err)
				}
				if content := th.MustReadFile(t, path); !strings.Contains(content, tt.want) {
					t.Errorf("expected %q in output, got: %s", tt.want, content)
				}
			})
		}
	})

	t.Run("Default Path", func(t *testing.T) {
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, t.TempDir())
		defer th.MustChdir(t, originalDir)

		path, err := WriteGenreExport(result, FormatCSV, "")
		if err != nil {
			t.Fatalf("WriteGenreExport failed: %v", err)
		}
		if path != "p1_genres.csv" {
			t.Errorf("unexpected path %s", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		if _, err := WriteGenreExport(result, Format("xml"), filepath.Join(t.TempDir(), "x")); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("Nil Result", func(t *testing.T) {
		if _, err := WriteGenreExport(nil, FormatJSON, ""); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Unwritable Path", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := WriteGenreExport(result, FormatText, filepath.Join(blocker, "out.txt")); err == nil {
			t.Error("expected error writing beneath a regular file")
		}
	})
}
