package main

import (
	"fmt"

	"abandon/internal/descriptor"
	"abandon/internal/git"
	"abandon/internal/launcher"
	"abandon/internal/navigator"
	"abandon/internal/ui"
	"abandon/internal/ui/components"
	"abandon/internal/watcher"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Screen represents what currently owns the keyboard
type Screen int

const (
	ScreenBrowse  Screen = iota
	ScreenRunning        // A launched program has not returned yet
	ScreenOutput         // Captured output popup
	ScreenPreview        // Descriptor preview popup
	ScreenHelp
)

// Model is the main application model
type Model struct {
	nav      *navigator.Navigator
	launcher *launcher.Launcher
	watcher  *watcher.Watcher
	repo     *git.Repo
	logger   *zap.Logger

	// UI Components
	list    *components.ItemList
	popup   *components.Popup
	spinner spinner.Model
	help    help.Model
	keys    ui.KeyMap

	// State
	screen        Screen
	status        string
	revision      string
	pendingRescan bool // The catalog changed while a program was running
	width         int
	height        int
}

// Messages
type launchDoneMsg struct {
	entry *descriptor.Descriptor
	lines []string
}

type dirChangedMsg struct{}

// NewModel builds the shell around an already scanned navigator. The
// watcher and repo may be nil.
func NewModel(nav *navigator.Navigator, l *launcher.Launcher, w *watcher.Watcher, repo *git.Repo, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.ProgressStyle

	m := &Model{
		nav:      nav,
		launcher: l,
		watcher:  w,
		repo:     repo,
		logger:   logger,
		list:     components.NewItemList(),
		popup:    components.NewPopup(),
		spinner:  s,
		help:     help.New(),
		keys:     ui.DefaultKeyMap(),
		screen:   ScreenBrowse,
		width:    80,
		height:   24,
	}

	m.refreshRevision()
	m.showListing(navigator.Location{})
	m.status = fmt.Sprintf("%d entries", len(nav.Items()))
	m.watchCurrent()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForChange())
}

// waitForChange blocks until the watcher reports the browsed directory
// changed
func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dirChangedMsg{}
	}
}

// launch runs d off the UI goroutine
func (m *Model) launch(d *descriptor.Descriptor) tea.Cmd {
	l := m.launcher
	return func() tea.Msg {
		return launchDoneMsg{entry: d, lines: l.Activate(d)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.screen == ScreenOutput || m.screen == ScreenPreview {
			var cmd tea.Cmd
			m.popup, cmd = m.popup.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case launchDoneMsg:
		return m.handleLaunchDone(msg)

	case dirChangedMsg:
		if m.nav.Busy() {
			m.pendingRescan = true
		} else {
			m.rescan("Catalog changed")
		}
		return m, m.waitForChange()
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenRunning:
		// The launched program owns the terminal until it returns
		return m, nil
	case ScreenOutput, ScreenPreview:
		if key.Matches(msg, m.keys.Enter, m.keys.Escape, m.keys.Quit) {
			m.popup.Hide()
			m.screen = ScreenBrowse
			return m, nil
		}
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	case ScreenHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.screen = ScreenBrowse
		}
		return m, nil
	}

	return m.handleBrowseKeys(msg)
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.screen = ScreenHelp

	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.list.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.list.GoToLast()

	case key.Matches(msg, m.keys.Enter):
		return m.activate()

	case key.Matches(msg, m.keys.Back, m.keys.Escape):
		m.goBack()

	case key.Matches(msg, m.keys.Preview):
		m.preview()

	case key.Matches(msg, m.keys.Refresh):
		m.rescan("Rescanned")
	}

	return m, nil
}

// activate performs the action of the row under the cursor
func (m *Model) activate() (tea.Model, tea.Cmd) {
	row := m.list.Current()
	if row == nil {
		return m, nil
	}

	switch row.Kind {
	case components.RowCategory:
		if err := m.nav.Push(row.Entry); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.showListing(navigator.Location{})
		m.watchCurrent()
		m.status = fmt.Sprintf("%d entries", len(m.nav.Items()))

	case components.RowGame:
		if err := m.nav.BeginLaunch(row.Entry); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.screen = ScreenRunning
		m.status = "Running " + row.Entry.Name
		return m, tea.Batch(m.spinner.Tick, m.launch(row.Entry))

	case components.RowError:
		m.status = row.Label

	case components.RowBack:
		m.goBack()

	case components.RowQuit:
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleLaunchDone(msg launchDoneMsg) (tea.Model, tea.Cmd) {
	m.nav.EndLaunch()
	m.screen = ScreenBrowse
	m.status = "✓ " + msg.entry.Name + " finished"

	if len(msg.lines) > 0 {
		m.popup.SetSize(m.width, m.height)
		m.popup.ShowLines(msg.entry.Name, msg.lines)
		m.screen = ScreenOutput
	}

	if m.pendingRescan {
		m.pendingRescan = false
		m.rescan("Catalog changed")
	}
	return m, nil
}

func (m *Model) goBack() {
	from, ok, err := m.nav.Pop()
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	if !ok {
		return
	}
	m.showListing(from)
	m.watchCurrent()
	m.status = fmt.Sprintf("%d entries", len(m.nav.Items()))
}

func (m *Model) preview() {
	row := m.list.Current()
	if row == nil || row.Entry == nil {
		return
	}
	m.popup.SetSize(m.width, m.height)
	if err := m.popup.ShowFile(row.Entry.Path); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	m.screen = ScreenPreview
}

// rescan re-reads the current directory keeping the cursor in place
func (m *Model) rescan(label string) {
	_, changes, err := m.nav.Rescan()
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	m.refreshRevision()
	m.list.KeepCursor(m.rows())
	m.status = label + ": " + changes.String()
	m.logger.Debug("rescanned",
		zap.String("dir", m.nav.CurrentDir()),
		zap.Strings("added", changes.Added),
		zap.Strings("removed", changes.Removed),
	)
}

func (m *Model) rows() []components.Row {
	return components.BuildRows(m.nav.Items(), m.nav.ScanErrors(), m.nav.Depth() > 0)
}

// showListing rebuilds the list with the cursor on from, if it is listed.
// Entries come first in the rows, so item and row indexes agree.
func (m *Model) showListing(from navigator.Location) {
	m.list.SetRows(m.rows(), from.IndexIn(m.nav.Items()))
}

func (m *Model) watchCurrent() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Watch(m.nav.CurrentDir()); err != nil {
		m.logger.Warn("cannot watch directory", zap.String("dir", m.nav.CurrentDir()), zap.Error(err))
	}
}

func (m *Model) refreshRevision() {
	m.revision = ""
	if m.repo == nil || !m.repo.IsRepo() {
		return
	}
	rev, err := m.repo.Revision()
	if err != nil {
		m.logger.Debug("no catalog revision", zap.Error(err))
		return
	}
	m.revision = rev.String()
}

func (m *Model) updateSizes() {
	// Header, status bar and help bar
	m.list.Width = max(20, m.width-4)
	m.list.Height = max(5, m.height-7)
	m.popup.SetSize(m.width, m.height)
	m.help.Width = m.width
}
