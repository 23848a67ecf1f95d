package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/pkg/shared/factory"
)

func TestPickStoresVaultRelativePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	vault := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(vault, "words"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "words", "dict.md"), []byte("- [cat]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "todo.md"), []byte("- [ ] x"), 0o644))

	cfg := config.New(config.GetConfigPath(home))
	require.NoError(t, cfg.Set(config.FieldVaultDir, vault))

	var gotQuery bool
	prev := findFile
	findFile = func(slice interface{}, _ func(int) string, opts ...fuzzyfinder.Option) (int, error) {
		gotQuery = len(opts) == 3
		for i, f := range slice.([]string) {
			if strings.HasSuffix(f, "dict.md") {
				return i, nil
			}
		}
		return -1, fuzzyfinder.ErrAbort
	}
	t.Cleanup(func() { findFile = prev })

	notices, err := os.CreateTemp(t.TempDir(), "notices")
	require.NoError(t, err)
	defer notices.Close()

	out := &bytes.Buffer{}
	f := &factory.Factory{In: strings.NewReader(""), Out: out, ErrOut: &bytes.Buffer{}}
	f.Options.Notices = notices
	defer f.Close()

	cmd := NewCmdPick(f)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"dict"})
	require.NoError(t, cmd.Execute())

	assert.True(t, gotQuery)
	assert.Equal(t, "Reference document set to words/dict.md\n", out.String())

	reloaded, err := config.Load(home)
	require.NoError(t, err)
	assert.Equal(t, "words/dict.md", reloaded.FilePath)
}

func TestPickRequiresVault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	notices, err := os.CreateTemp(t.TempDir(), "notices")
	require.NoError(t, err)
	defer notices.Close()

	f := &factory.Factory{In: strings.NewReader(""), Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}}
	f.Options.Notices = notices
	defer f.Close()

	cmd := NewCmdPick(f)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
