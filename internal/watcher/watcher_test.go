package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitForChange(t *testing.T, w *Watcher) bool {
	t.Helper()
	select {
	case <-w.Changes():
		return true
	case <-time.After(3 * time.Second):
		return false
	}
}

func TestWatcher_NotifiesOnNewEntry(t *testing.T) {
	dir := t.TempDir()
	w, err := New(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(dir))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "newgame"), 0755))

	assert.True(t, waitForChange(t, w), "expected a change notification")
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := New(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(dir))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f"+string(rune('a'+i))), []byte("x"), 0644))
	}

	require.True(t, waitForChange(t, w))
	select {
	case <-w.Changes():
		t.Error("burst should produce a single notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_SwitchDirectory(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	w, err := New(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Watch(second))
	require.NoError(t, w.Watch(second), "watching the same dir again is a no-op")

	require.NoError(t, os.Mkdir(filepath.Join(first, "ignored"), 0755))
	select {
	case <-w.Changes():
		t.Error("old directory should no longer be watched")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.Mkdir(filepath.Join(second, "seen"), 0755))
	assert.True(t, waitForChange(t, w))
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := New(DefaultDebounce, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "gone")))
}
