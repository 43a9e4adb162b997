package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/desertthunder/moodlists/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DiscoveringView ViewState = iota
	PlaylistListView
	ResolvingView
	GenreListView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.Engine
	query        string
	opts         tasks.DiscoverOpts
	openURL      func(string) error
	width        int
	height       int
	playlistList list.Model
	genreList    list.Model
	report       *tasks.DiscoveryReport
	selectedID   string
	genres       *tasks.GenreResult
	progressChan chan tasks.ProgressUpdate
	doneChan     chan Msg
	progress     tasks.ProgressUpdate
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model that discovers playlists for query when started.
func NewModel(ctx context.Context, engine *tasks.Engine, query string, opts tasks.DiscoverOpts) *Model {
	return &Model{
		ctx:          ctx,
		view:         DiscoveringView,
		engine:       engine,
		query:        query,
		opts:         opts,
		openURL:      shared.OpenBrowser,
		playlistList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		genreList:    list.New(nil, list.NewDefaultDelegate(), 0, 0),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init starts discovery.
func (m *Model) Init() tea.Cmd {
	return m.startDiscovery()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		m.genreList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case GenreListView:
			return m.handleGenreListKeys(msg)
		default:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgDiscoveryComplete:
		data := msg.data.(discoveryResult)
		m.progressChan = nil
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.report = data.report
		m.playlistList = list.New(playlistItems(data.report.Playlists), list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = fmt.Sprintf("Playlists for %q", m.query)
		m.playlistList.SetSize(m.width-4, m.height-8)
		m.view = PlaylistListView
		return m, nil

	case MsgGenresResolved:
		data := msg.data.(genresResult)
		m.progressChan = nil
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Genre lookup failed: %v", data.err))
			m.view = PlaylistListView
			return m, nil
		}
		m.genres = data.result
		m.genreList = list.New(genreItems(data.result.Genres), list.NewDefaultDelegate(), 0, 0)
		m.genreList.Title = fmt.Sprintf("Genres (%d tracks)", len(data.result.Genres))
		m.genreList.SetSize(m.width-4, m.height-8)
		m.view = GenreListView
		return m, nil

	case MsgBrowserOpened:
		if err, ok := msg.data.(error); ok && err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not open browser: %v", err))
		} else {
			m.status = styles.ok.Render("Opened in browser")
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case DiscoveringView:
		return m.renderProgress(fmt.Sprintf("Discovering playlists for %q", m.query))
	case PlaylistListView:
		return m.renderPlaylistList()
	case ResolvingView:
		return m.renderProgress("Resolving genres")
	case GenreListView:
		return m.renderGenreList()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if id := m.selectedPlaylistID(); id != "" {
			m.selectedID = id
			m.status = ""
			m.view = ResolvingView
			return m, m.startResolve(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		if id := m.selectedPlaylistID(); id != "" {
			return m, m.openPlaylist(id)
		}
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleGenreListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.genreList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		m.genres = nil
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.open):
		return m, m.openPlaylist(m.selectedID)
	}

	return m.updateLists(msg)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case GenreListView:
		m.genreList, cmd = m.genreList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedPlaylistID() string {
	if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
		return item.playlist.ID
	}
	return ""
}

func (m *Model) openPlaylist(id string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg(m.openURL(shared.PlaylistURL(id)))
	}
}

// run starts job on its own goroutine, streaming its progress until it finishes.
func (m *Model) run(job func(progress chan<- tasks.ProgressUpdate) Msg) tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan Msg, 1)
	m.progressChan = progress
	m.doneChan = done
	m.progress = tasks.ProgressUpdate{}

	go func() {
		msg := job(progress)
		close(progress)
		done <- msg
	}()

	return m.waitForProgress()
}

func (m *Model) startDiscovery() tea.Cmd {
	return m.run(func(progress chan<- tasks.ProgressUpdate) Msg {
		report, err := m.engine.Discover(m.ctx, m.query, m.opts, progress)
		return discoveryCompleteMsg(report, err)
	})
}

func (m *Model) startResolve(playlistID string) tea.Cmd {
	return m.run(func(progress chan<- tasks.ProgressUpdate) Msg {
		result, err := m.engine.ResolveGenres(m.ctx, playlistID, progress)
		return genresResolvedMsg(result, err)
	})
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.doneChan
	return func() tea.Msg {
		if progress == nil {
			return nil
		}
		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderProgress(heading string) string {
	title := styles.title.Render(heading)
	line := "Starting..."
	if m.progress.Message != "" {
		line = m.progress.Message
	}
	body := phaseStyle(m.progress.Phase == tasks.RateLimited).Render(line)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderPlaylistList() string {
	if len(m.playlistList.Items()) == 0 {
		title := styles.title.Render(fmt.Sprintf("No playlists found for %q", m.query))
		return fmt.Sprintf("%s\n%s", title, m.help.ShortHelpView([]key.Binding{m.keys.quit}))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.open, m.keys.quit}
	view := fmt.Sprintf("%s\n\n%s", m.playlistList.View(), m.help.ShortHelpView(helpKeys))
	if m.status != "" {
		view = fmt.Sprintf("%s\n%s", view, m.status)
	}
	return view
}

func (m *Model) renderGenreList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.open, m.keys.quit}
	view := fmt.Sprintf("%s\n\n%s", m.genreList.View(), m.help.ShortHelpView(helpKeys))

	if m.genres != nil && m.genres.NullArtists > 0 {
		view = fmt.Sprintf("%s\n%s", view, styles.warn.Render(fmt.Sprintf("%d artists could not be resolved", m.genres.NullArtists)))
	}
	if m.status != "" {
		view = fmt.Sprintf("%s\n%s", view, m.status)
	}
	return view
}
