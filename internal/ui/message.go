package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodlists/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgDiscoveryComplete MsgKind = iota
	MsgGenresResolved
	MsgProgressUpdate
	MsgBrowserOpened
)

type discoveryResult struct {
	report *tasks.DiscoveryReport
	err    error
}

type genresResult struct {
	result *tasks.GenreResult
	err    error
}

// discoveryCompleteMsg is the constructor for [MsgDiscoveryComplete]
func discoveryCompleteMsg(report *tasks.DiscoveryReport, err error) Msg {
	return Msg{kind: MsgDiscoveryComplete, data: discoveryResult{report, err}}
}

// genresResolvedMsg is the constructor for [MsgGenresResolved]
func genresResolvedMsg(result *tasks.GenreResult, err error) Msg {
	return Msg{kind: MsgGenresResolved, data: genresResult{result, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}
