package settings

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/internal/document"
	"github.com/Paintersrp/dictcheck/internal/state"
)

type fakeEnv struct {
	changed int
	reloads int
	reload  func() error
	status  document.Status
}

func (f *fakeEnv) SettingsChanged() { f.changed++ }

func (f *fakeEnv) Reload() error {
	f.reloads++
	if f.reload != nil {
		return f.reload()
	}
	return nil
}

func (f *fakeEnv) ReferenceStatus(context.Context) document.Status { return f.status }

func (f *fakeEnv) WatchReference() (*state.ReferenceWatcher, error) { return nil, nil }

func newTestModel(t *testing.T) (Model, *config.Config, *fakeEnv) {
	t.Helper()
	cfg := config.New(filepath.Join(t.TempDir(), "cfg.yaml"))
	env := &fakeEnv{}
	return NewModel(cfg, env), cfg, env
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestModelListsEveryField(t *testing.T) {
	m, _, _ := newTestModel(t)

	items := m.Items()
	require.Len(t, items, len(config.Fields))
	for i, field := range config.Fields {
		assert.Equal(t, field, items[i].Field())
		assert.NotEmpty(t, items[i].Title())
	}
	assert.Equal(t, "(not set)", items[0].Description())
}

func TestItemDescriptionQuotesSurroundingSpace(t *testing.T) {
	assert.Equal(t, `" - "`, ListItem{field: config.FieldPrefixSymbol, value: " - "}.Description())
	assert.Equal(t, "[", ListItem{field: config.FieldPrefixSymbol, value: "["}.Description())
}

func TestEditingFieldSavesImmediately(t *testing.T) {
	m, cfg, env := newTestModel(t)
	m.Select(config.FieldPrefixSymbol)

	m = press(t, m, enter)
	require.True(t, m.inputActive)
	assert.Contains(t, m.View(), "Prefix symbol")

	m = press(t, m, keyRunes("["), enter)
	assert.False(t, m.inputActive)
	assert.Equal(t, "[", cfg.PrefixSymbol)
	assert.Equal(t, 1, env.changed)

	reloaded, err := config.LoadFile(cfg.Path())
	require.NoError(t, err)
	assert.Equal(t, "[", reloaded.PrefixSymbol)
}

func TestEscapeDiscardsEdit(t *testing.T) {
	m, cfg, env := newTestModel(t)
	m.Select(config.FieldSuffixSymbol)

	m = press(t, m, enter, keyRunes("]"), tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.inputActive)
	assert.Empty(t, cfg.SuffixSymbol)
	assert.Zero(t, env.changed)
}

func TestInvalidDurationIsNotSaved(t *testing.T) {
	m, cfg, env := newTestModel(t)
	m.Select(config.FieldNoticeDuration)
	before := cfg.NoticeDuration

	m = press(t, m, enter)
	m.input.Input.SetValue("soon")
	m = press(t, m, enter)

	assert.Equal(t, before, cfg.NoticeDuration)
	assert.Zero(t, env.changed)
}

func TestCaptureWritesHotkey(t *testing.T) {
	m, cfg, _ := newTestModel(t)
	m.Select(config.FieldNotFoundHotkey)

	m = press(t, m, keyRunes("c"))
	require.True(t, m.Capturing())
	assert.Contains(t, m.View(), "Press the hotkey")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.False(t, m.Capturing())
	assert.Equal(t, "Ctrl+X", cfg.NotFoundHotkey)

	reloaded, err := config.LoadFile(cfg.Path())
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+X", reloaded.NotFoundHotkey)
}

func TestCaptureUsesFunctionKeyNames(t *testing.T) {
	m, cfg, _ := newTestModel(t)
	m.Select(config.FieldNotFoundHotkey)

	m = press(t, m, keyRunes("c"), tea.KeyMsg{Type: tea.KeyF4, Alt: true})
	assert.Equal(t, "Alt+F4", cfg.NotFoundHotkey)
}

func TestCaptureCancelledByEscape(t *testing.T) {
	m, cfg, _ := newTestModel(t)
	m.Select(config.FieldNotFoundHotkey)

	m = press(t, m, keyRunes("c"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Capturing())
	assert.Empty(t, cfg.NotFoundHotkey)
}

func TestCaptureOnlyFromHotkeyField(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Select(config.FieldPrefixSymbol)

	m = press(t, m, keyRunes("c"))
	assert.False(t, m.Capturing())
}

func TestClearResetsField(t *testing.T) {
	m, cfg, _ := newTestModel(t)
	require.NoError(t, cfg.Set(config.FieldNotFoundHotkey, "Ctrl+Shift+X"))
	m = NewModel(cfg, &fakeEnv{})
	m.Select(config.FieldNotFoundHotkey)

	m = press(t, m, keyRunes("D"))
	assert.Empty(t, cfg.NotFoundHotkey)
	assert.Equal(t, "(not set)", m.Items()[3].Description())
}

func TestReloadShowsValuesWrittenElsewhere(t *testing.T) {
	m, cfg, env := newTestModel(t)
	env.reload = func() error {
		cfg.PrefixSymbol = "<"
		return nil
	}

	m = press(t, m, keyRunes("R"))
	assert.Equal(t, 1, env.reloads)
	assert.Equal(t, "<", m.Items()[1].Description())
}

func TestReloadFailureKeepsRows(t *testing.T) {
	m, _, env := newTestModel(t)
	env.reload = func() error { return errors.New("bad yaml") }

	m = press(t, m, keyRunes("R"))
	assert.Equal(t, 1, env.reloads)
	assert.Equal(t, "(not set)", m.Items()[1].Description())
}

func TestDispatchModeOpensSelector(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Init()
	m.Select(config.FieldDispatchMode)

	m = press(t, m, enter)
	assert.True(t, m.modeSelectActive)
	assert.False(t, m.inputActive)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.modeSelectActive)
}

func TestFilePathChangeRefreshesStatus(t *testing.T) {
	m, _, env := newTestModel(t)
	env.status = document.Status{Path: "dict.md", Found: true, Stats: document.Stats{Lines: 4, Entries: 2}}
	m.Select(config.FieldFilePath)

	m = press(t, m, enter, keyRunes("dict.md"))
	next, cmd := m.Update(enter)
	m = next.(Model)
	require.NotNil(t, cmd)

	m = press(t, m, statusMsg{status: env.ReferenceStatus(context.Background())})
	view := m.View()
	assert.True(t, strings.Contains(view, "dict.md: 4 lines, 2 entries"), view)
}

func TestReferenceChangeWithoutWatcher(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(state.ReferenceChangedMsg{Path: "dict.md"})
	assert.NotNil(t, cmd)
}
