package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/dictcheck/internal/config"
)

func writeConfig(t *testing.T, home string, data map[string]any) string {
	t.Helper()

	configPath := config.GetConfigPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))

	raw, err := yaml.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, raw, 0o644))

	return configPath
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	configPath := config.GetConfigPath(home)
	require.NoError(t, config.EnsureConfigExists(configPath))

	cfg, err := config.Load(home)
	require.NoError(t, err)

	assert.Empty(t, cfg.FilePath)
	assert.Empty(t, cfg.PrefixSymbol)
	assert.Empty(t, cfg.SuffixSymbol)
	assert.Empty(t, cfg.NotFoundHotkey)
	assert.Equal(t, 5*time.Second, cfg.NoticeDuration.Duration)
	assert.Equal(t, 100*time.Millisecond, cfg.UnregisterDelay.Duration)
	assert.Equal(t, config.DispatchAuto, cfg.DispatchMode)
	assert.NotNil(t, cfg.Bindings)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"file_path":     "dict.md",
		"prefix_symbol": "[",
		"suffix_symbol": "]",
	})

	cfg, err := config.Load(home)
	require.NoError(t, err)

	assert.Equal(t, "dict.md", cfg.FilePath)
	assert.Equal(t, "[", cfg.PrefixSymbol)
	assert.Equal(t, "]", cfg.SuffixSymbol)
	assert.Empty(t, cfg.NotFoundHotkey)
	assert.Equal(t, 5*time.Second, cfg.NoticeDuration.Duration)
}

func TestLoadParsesDurations(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"notice_duration":  "2s",
		"unregister_delay": 250,
	})

	cfg, err := config.Load(home)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.NoticeDuration.Duration)
	assert.Equal(t, 250*time.Millisecond, cfg.UnregisterDelay.Duration)
}

func TestLoadRejectsUnknownDispatchMode(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{"dispatch_mode": "telepathy"})

	_, err := config.Load(home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dispatch mode")
}

func TestSetPersistsEachChange(t *testing.T) {
	home := t.TempDir()
	configPath := config.GetConfigPath(home)
	require.NoError(t, config.EnsureConfigExists(configPath))

	cfg, err := config.Load(home)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("filePath", "words/dict.md"))
	require.NoError(t, cfg.Set("prefix", " ["))
	require.NoError(t, cfg.Set("suffix_symbol", "]"))
	require.NoError(t, cfg.Set("notFoundHotkey", "Ctrl+Shift+X"))
	require.NoError(t, cfg.Set("notice-duration", "3s"))

	reloaded, err := config.Load(home)
	require.NoError(t, err)

	assert.Equal(t, "words/dict.md", reloaded.FilePath)
	assert.Equal(t, " [", reloaded.PrefixSymbol, "prefix whitespace is preserved")
	assert.Equal(t, "]", reloaded.SuffixSymbol)
	assert.Equal(t, "Ctrl+Shift+X", reloaded.NotFoundHotkey)
	assert.Equal(t, 3*time.Second, reloaded.NoticeDuration.Duration)
}

func TestSetUnknownFieldFails(t *testing.T) {
	cfg := config.New(filepath.Join(t.TempDir(), "cfg.yaml"))

	err := cfg.Set("colour", "blue")

	var unknown *config.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "colour", unknown.Field)
}

func TestSetRejectsInvalidValues(t *testing.T) {
	cfg := config.New(filepath.Join(t.TempDir(), "cfg.yaml"))

	assert.Error(t, cfg.Set("dispatch_mode", "sometimes"))
	assert.Error(t, cfg.Set("notice_duration", "soon"))
	assert.Error(t, cfg.Set("unregister_delay", "-5"))
}

func TestGetReturnsDisplayValues(t *testing.T) {
	cfg := config.New(filepath.Join(t.TempDir(), "cfg.yaml"))
	cfg.PrefixSymbol = "["

	value, err := cfg.Get("prefix")
	require.NoError(t, err)
	assert.Equal(t, "[", value)

	value, err = cfg.Get("notice_duration")
	require.NoError(t, err)
	assert.Equal(t, "5s", value)
}

func TestSaveRoundTripsBindingsAndStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yaml")
	cfg := config.New(path)
	wait := false
	cfg.Bindings["Alt+D"] = config.CommandTemplate{Exec: "notify-send", Args: []string{"{selection}"}, Wait: &wait}
	cfg.Storage.S3.Region = "eu-west-1"

	require.NoError(t, cfg.Save())

	reloaded, err := config.LoadFile(path)
	require.NoError(t, err)

	tmpl, ok := reloaded.Bindings["Alt+D"]
	require.True(t, ok)
	assert.Equal(t, []string{"{selection}"}, tmpl.Args)
	require.NotNil(t, tmpl.Wait)
	assert.False(t, *tmpl.Wait)
	assert.Equal(t, "eu-west-1", reloaded.Storage.S3.Region)
}
