package state_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/internal/selection"
	"github.com/Paintersrp/dictcheck/internal/state"
)

func newTestState(t *testing.T) (*state.State, string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	notices, err := os.CreateTemp(t.TempDir(), "notices")
	require.NoError(t, err)
	t.Cleanup(func() { notices.Close() })

	s, err := state.NewState(state.Options{Stderr: &bytes.Buffer{}, Notices: notices})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, notices.Name()
}

func TestNewStateCreatesConfig(t *testing.T) {
	s, _ := newTestState(t)

	assert.Equal(t, config.GetConfigPath(s.Home), s.ConfigPath)
	_, err := os.Stat(s.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, config.DispatchAuto, s.Config.DispatchMode)
}

func TestCheckerFindsEntryInVault(t *testing.T) {
	s, noticesPath := newTestState(t)

	vault := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vault, "dict.md"), []byte("foo: [cat] noun\n"), 0o644))
	require.NoError(t, s.Config.Set(config.FieldVaultDir, vault))
	require.NoError(t, s.Config.Set(config.FieldFilePath, "dict.md"))
	require.NoError(t, s.Config.Set(config.FieldPrefixSymbol, "["))
	require.NoError(t, s.Config.Set(config.FieldSuffixSymbol, "]"))
	s.SettingsChanged()

	outcome, err := s.Checker().Run(context.Background(), s.Config.Settings, selection.NewStatic("  cat "))
	require.NoError(t, err)
	assert.True(t, outcome.Result.Found)
	assert.Equal(t, "foo: [cat] noun", outcome.Result.Line)

	notices, err := os.ReadFile(noticesPath)
	require.NoError(t, err)
	assert.Contains(t, string(notices), "foo: [cat] noun")
}

func TestReloadPicksUpExternalEdits(t *testing.T) {
	s, _ := newTestState(t)

	held := s.Config

	other := config.New(s.ConfigPath)
	require.NoError(t, other.Set(config.FieldPrefixSymbol, "<"))

	require.NoError(t, s.Reload())
	assert.Equal(t, "<", s.Config.PrefixSymbol)
	assert.Equal(t, "<", held.PrefixSymbol, "reload updates the config callers already hold")
}

func TestReferenceStatus(t *testing.T) {
	s, _ := newTestState(t)

	assert.Equal(t, "no reference document configured", s.ReferenceStatus(context.Background()).String())

	vault := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vault, "dict.md"), []byte("- a\n- b\n- c"), 0o644))
	require.NoError(t, s.Config.Set(config.FieldVaultDir, vault))
	require.NoError(t, s.Config.Set(config.FieldFilePath, "dict.md"))
	s.SettingsChanged()

	status := s.ReferenceStatus(context.Background())
	assert.True(t, status.Found)
	assert.Equal(t, 3, status.Stats.Entries)
}

func TestWatchReferenceSkipsUnsetPath(t *testing.T) {
	s, _ := newTestState(t)

	w, err := s.WatchReference()
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestWatchReferenceForgetsClosedWatcher(t *testing.T) {
	s, _ := newTestState(t)

	vault := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vault, "dict.md"), []byte("- a"), 0o644))
	require.NoError(t, s.Config.Set(config.FieldVaultDir, vault))
	require.NoError(t, s.Config.Set(config.FieldFilePath, "dict.md"))
	s.SettingsChanged()

	first, err := s.WatchReference()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := s.WatchReference()
	require.NoError(t, err)
	assert.Same(t, second, s.Watcher, "closing the replaced watcher must not drop its successor")

	require.NoError(t, second.Close())
	assert.Nil(t, s.Watcher)
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()

	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()

	select {
	case msg := <-out:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return nil
	}
}

func TestReferenceWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dict.md")
	require.NoError(t, os.WriteFile(target, []byte("one"), 0o644))

	w, err := state.NewReferenceWatcher(target)
	require.NoError(t, err)
	defer w.Close()

	var changed []string
	w.OnChange(func(p string) { changed = append(changed, p) })

	cmd := w.Start()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("two"), 0o644))

	msg := runCmd(t, cmd)
	changedMsg, ok := msg.(state.ReferenceChangedMsg)
	require.True(t, ok, "unexpected message %T", msg)
	assert.Equal(t, w.Path(), changedMsg.Path)
	assert.Equal(t, []string{w.Path()}, changed)
}

func TestReferenceWatcherCloseStopsStart(t *testing.T) {
	target := filepath.Join(t.TempDir(), "dict.md")

	w, err := state.NewReferenceWatcher(target)
	require.NoError(t, err)

	closed := 0
	w.OnClose(func() { closed++ })

	cmd := w.Start()
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Nil(t, runCmd(t, cmd))
	assert.Equal(t, 1, closed)
}

func TestNewReferenceWatcherRejectsEmptyPath(t *testing.T) {
	_, err := state.NewReferenceWatcher("  ")
	assert.Error(t, err)
}
