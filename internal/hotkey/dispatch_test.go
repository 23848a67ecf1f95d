package hotkey_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/internal/hotkey"
)

func TestSyntheticDispatcherInvokesXdotool(t *testing.T) {
	var gotName string
	var gotArgs []string
	d := hotkey.NewSyntheticDispatcher(nil).WithRunner(func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), hotkey.Parse("Ctrl+Shift+X").Event()))

	assert.Equal(t, "xdotool", gotName)
	assert.Equal(t, []string{"key", "--clearmodifiers", "ctrl+shift+x"}, gotArgs)
}

func TestSyntheticDispatcherWrapsFailures(t *testing.T) {
	d := hotkey.NewSyntheticDispatcher(nil).WithRunner(func(context.Context, string, ...string) error {
		return errors.New("exit status 1")
	})

	err := d.Dispatch(context.Background(), hotkey.Parse("Q").Event())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthetic keydown q failed")
}

func TestCommandDispatcherReportsUnbound(t *testing.T) {
	d := hotkey.NewCommandDispatcher(hotkey.Bindings{}, nil)

	err := d.Dispatch(context.Background(), hotkey.Parse("Alt+F4").Event())
	assert.ErrorIs(t, err, hotkey.ErrUnbound)
}

func TestCommandDispatcherRunsBoundCommandWithPlaceholders(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	out := filepath.Join(t.TempDir(), "out.txt")
	bindings := hotkey.Bindings{
		"Ctrl+Shift+X": {
			Exec: "/bin/sh",
			Args: []string{"-c", `printf '%s|%s' "$1" "$2" > "$3"`, "sh", "{hotkey}", "{selection}", out},
		},
	}
	d := hotkey.NewCommandDispatcher(bindings, nil)

	ctx := hotkey.WithValues(context.Background(), hotkey.Values{Selection: "bird"})
	require.NoError(t, d.Dispatch(ctx, hotkey.Parse("ctrl+shift+x").Event()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Shift+X|bird", string(data))
}

func TestBindingsMatchCanonicalDescriptor(t *testing.T) {
	bindings := hotkey.Bindings{
		"Shift+Ctrl+X": {Exec: "reordered"},
		"control+k":    {Exec: "alias"},
		"alt+f4":       {Exec: "lowercase"},
		"Cmd+Enter":    {Exec: "meta"},
	}

	cases := []struct {
		descriptor string
		want       string
	}{
		{"Ctrl+Shift+X", "reordered"},
		{"ctrl+shift+x", "reordered"},
		{"Ctrl+K", "alias"},
		{"Alt+F4", "lowercase"},
		{"Meta+Enter", "meta"},
	}

	for _, tc := range cases {
		t.Run(tc.descriptor, func(t *testing.T) {
			tmpl, ok := bindings.Binding(tc.descriptor)
			require.True(t, ok)
			assert.Equal(t, tc.want, tmpl.Exec)
		})
	}

	_, ok := bindings.Binding("Ctrl+X")
	assert.False(t, ok, "a missing modifier is a different hotkey")
	_, ok = bindings.Binding("")
	assert.False(t, ok)
}

func TestCommandDispatcherFindsReorderedBinding(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	out := filepath.Join(t.TempDir(), "out.txt")
	bindings := hotkey.Bindings{
		"Shift+Control+X": {
			Exec: "/bin/sh",
			Args: []string{"-c", `printf '%s' "$1" > "$2"`, "sh", "{hotkey}", out},
		},
	}
	d := hotkey.NewCommandDispatcher(bindings, nil)

	require.NoError(t, d.Dispatch(context.Background(), hotkey.Parse("Ctrl+Shift+X").Event()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Shift+X", string(data))
}

func TestChainFallsThroughUnbound(t *testing.T) {
	var calls []string
	first := hotkey.DispatcherFunc(func(context.Context, hotkey.KeyEvent) error {
		calls = append(calls, "first")
		return hotkey.ErrUnbound
	})
	second := hotkey.DispatcherFunc(func(context.Context, hotkey.KeyEvent) error {
		calls = append(calls, "second")
		return nil
	})
	third := hotkey.DispatcherFunc(func(context.Context, hotkey.KeyEvent) error {
		calls = append(calls, "third")
		return nil
	})

	require.NoError(t, hotkey.Chain{first, second, third}.Dispatch(context.Background(), hotkey.KeyEvent{Key: "Q"}))
	assert.Equal(t, []string{"first", "second"}, calls)

	assert.ErrorIs(t, hotkey.Chain{}.Dispatch(context.Background(), hotkey.KeyEvent{Key: "Q"}), hotkey.ErrUnbound)
}

func TestNewDispatcherHonoursMode(t *testing.T) {
	assert.IsType(t, &hotkey.CommandDispatcher{}, hotkey.NewDispatcher(config.DispatchCommand, hotkey.Bindings{}, nil))
	assert.IsType(t, &hotkey.SyntheticDispatcher{}, hotkey.NewDispatcher(config.DispatchSynthetic, hotkey.Bindings{}, nil))
	assert.Equal(t, hotkey.Chain{}, hotkey.NewDispatcher(config.DispatchNone, hotkey.Bindings{}, nil))
	assert.Len(t, hotkey.NewDispatcher(config.DispatchAuto, hotkey.Bindings{}, nil), 2)
}
