// Package ui implements an interactive terminal picker using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for mood playlist discovery:
//  1. [DiscoveringView] : Monitor search and enrichment progress
//  2. [PlaylistListView] : Browse ranked playlists
//  3. [ResolvingView] : Monitor genre resolution for the selected playlist
//  4. [GenreListView] : Browse per-track genres
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the [tasks.Engine], providing non-blocking status reporting while pipelines run.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, o, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
