package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"abandon/internal/descriptor"
	"abandon/internal/launcher"
	"abandon/internal/navigator"
	"abandon/internal/ui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls  []launcher.Command
	result launcher.Result
}

func (f *fakeRunner) Run(cmd launcher.Command) (launcher.Result, error) {
	f.calls = append(f.calls, cmd)
	return f.result, nil
}

func writeEntry(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, descriptor.FileName), []byte(content), 0644))
}

// testCatalog lists as: Adventure, DOS, Zork, Error in broken, Quit...
func testCatalog(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "adv"), "cat: Adventure\n")
	writeEntry(t, filepath.Join(root, "dos"), "cat: DOS\n")
	writeEntry(t, filepath.Join(root, "dos", "keen"), "name: Commander Keen\ntype: dos\n")
	writeEntry(t, filepath.Join(root, "zork"), "name: Zork\ntype: frotz\nrom: zork1.z5\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "zork", "zork1.z5"), []byte("z"), 0644))
	writeEntry(t, filepath.Join(root, "broken"), "type: dos\n")
	return root
}

func newTestModel(t *testing.T, root string, runner *fakeRunner) *Model {
	t.Helper()
	nav, err := navigator.New(root, "[Abandonware]", nil)
	require.NoError(t, err)
	l := launcher.New(launcher.Options{TerminalGeometry: "120x50"}, runner, nil)
	return NewModel(nav, l, nil, nil, nil)
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnd   = tea.KeyMsg{Type: tea.KeyEnd}
)

// collect runs cmd and any batched commands, returning their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func launchDone(t *testing.T, cmd tea.Cmd) launchDoneMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if done, ok := msg.(launchDoneMsg); ok {
			return done
		}
	}
	t.Fatal("no launchDoneMsg produced")
	return launchDoneMsg{}
}

func labels(rows []components.Row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Label)
	}
	return out
}

func TestModel_InitialRows(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})

	got := labels(m.list.Rows)
	require.Len(t, got, 5)
	assert.Equal(t, []string{"Adventure", "DOS", "Zork"}, got[:3])
	assert.True(t, strings.HasPrefix(got[3], "Error in broken: "))
	assert.Equal(t, "Quit...", got[4])
	assert.Equal(t, 0, m.list.Cursor)
}

func TestModel_EnterCategoryAndBack(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})

	press(m, keyDown)
	press(m, keyEnter)

	assert.Equal(t, []string{"[Abandonware]", "DOS"}, m.nav.Breadcrumbs())
	assert.Equal(t, []string{"Commander Keen", "Back...", "Quit..."}, labels(m.list.Rows))

	press(m, runes("b"))

	assert.Equal(t, []string{"[Abandonware]"}, m.nav.Breadcrumbs())
	require.NotNil(t, m.list.Current())
	assert.Equal(t, "DOS", m.list.Current().Label, "cursor returns to the category just left")
}

func TestModel_BackRow(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})

	press(m, keyDown)
	press(m, keyEnter)
	press(m, keyDown)
	require.Equal(t, components.RowBack, m.list.Current().Kind)
	press(m, keyEnter)

	assert.Equal(t, 0, m.nav.Depth())
}

func TestModel_BackAtRootIsNoop(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})
	press(m, keyDown)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, 0, m.nav.Depth())
	assert.Equal(t, 1, m.list.Cursor)
}

func TestModel_LaunchBlocksInputUntilDone(t *testing.T) {
	runner := &fakeRunner{result: launcher.Result{Stdout: "Welcome to Zork\n"}}
	m := newTestModel(t, testCatalog(t), runner)

	press(m, keyDown)
	press(m, keyDown)
	cmd := press(m, keyEnter)

	assert.Equal(t, ScreenRunning, m.screen)
	assert.True(t, m.nav.Busy())
	assert.Contains(t, m.View(), "Running Zork")

	// Ignored while running
	press(m, keyDown)
	press(m, runes("q"))
	assert.Equal(t, 2, m.list.Cursor)
	assert.Equal(t, ScreenRunning, m.screen)

	done := launchDone(t, cmd)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, filepath.Join(m.nav.CurrentDir(), "zork"), runner.calls[0].Dir)
	assert.Equal(t, []string{"Output:", "", "Welcome to Zork"}, done.lines)

	m.Update(done)
	assert.False(t, m.nav.Busy())
	assert.Equal(t, ScreenOutput, m.screen)
	assert.True(t, m.popup.Visible)

	press(m, keyEnter)
	assert.Equal(t, ScreenBrowse, m.screen)
	assert.False(t, m.popup.Visible)
}

func TestModel_SilentLaunchReturnsToList(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})

	press(m, keyDown)
	press(m, keyDown)
	m.Update(launchDone(t, press(m, keyEnter)))

	assert.Equal(t, ScreenBrowse, m.screen)
	assert.Equal(t, "✓ Zork finished", m.status)
}

func TestModel_ChangeDuringLaunchRescansAfter(t *testing.T) {
	root := testCatalog(t)
	m := newTestModel(t, root, &fakeRunner{})

	press(m, keyDown)
	press(m, keyDown)
	cmd := press(m, keyEnter)

	writeEntry(t, filepath.Join(root, "tetris"), "name: Tetris\ntype: dos\n")
	m.Update(dirChangedMsg{})
	assert.True(t, m.pendingRescan)
	assert.NotContains(t, labels(m.list.Rows), "Tetris")

	m.Update(launchDone(t, cmd))

	assert.False(t, m.pendingRescan)
	assert.Contains(t, labels(m.list.Rows), "Tetris")
	assert.Equal(t, "Zork", m.list.Current().Label)
	assert.Equal(t, "Catalog changed: 1 added", m.status)
}

func TestModel_Refresh(t *testing.T) {
	root := testCatalog(t)
	m := newTestModel(t, root, &fakeRunner{})

	require.NoError(t, os.RemoveAll(filepath.Join(root, "adv")))
	press(m, runes("r"))

	assert.NotContains(t, labels(m.list.Rows), "Adventure")
	assert.Equal(t, "Rescanned: 1 removed", m.status)
}

func TestModel_Preview(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})

	press(m, keyDown)
	press(m, keyDown)
	press(m, runes("p"))

	assert.Equal(t, ScreenPreview, m.screen)
	assert.Contains(t, m.View(), "zork1.z5")

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenBrowse, m.screen)
}

func TestModel_QuitRow(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})

	press(m, keyEnd)
	cmd := press(m, keyEnter)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ErrorRowShowsMessage(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})

	for m.list.Current().Kind != components.RowError {
		press(m, keyDown)
	}
	press(m, keyEnter)

	assert.True(t, strings.HasPrefix(m.status, "Error in broken: "))
	assert.Equal(t, 0, m.nav.Depth())
}

func TestModel_ViewShowsBreadcrumbs(t *testing.T) {
	m := newTestModel(t, testCatalog(t), &fakeRunner{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	press(m, keyDown)
	press(m, keyEnter)

	view := m.View()
	assert.Contains(t, view, "[Abandonware] > DOS")
	assert.Contains(t, view, "Commander Keen")
}
