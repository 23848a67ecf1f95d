package hotkey

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Paintersrp/dictcheck/internal/config"
)

// ErrUnbound is returned by a Dispatcher that has nothing to deliver the
// event to. Chain moves on to the next dispatcher when it sees it.
var ErrUnbound = errors.New("no command bound to hotkey")

// Dispatcher delivers a synthetic key event.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev KeyEvent) error
}

// DispatcherFunc adapts a plain function to Dispatcher.
type DispatcherFunc func(ctx context.Context, ev KeyEvent) error

func (f DispatcherFunc) Dispatch(ctx context.Context, ev KeyEvent) error {
	return f(ctx, ev)
}

// Values carries the lookup context into bound commands as placeholders.
type Values struct {
	Selection string
	File      string
	Vault     string
}

type valuesKey struct{}

// WithValues attaches placeholder values to ctx for CommandDispatcher.
func WithValues(ctx context.Context, v Values) context.Context {
	return context.WithValue(ctx, valuesKey{}, v)
}

// ValuesFrom returns the placeholder values attached with WithValues.
func ValuesFrom(ctx context.Context) Values {
	v, _ := ctx.Value(valuesKey{}).(Values)
	return v
}

// BindingSource resolves a descriptor to the command bound to it.
type BindingSource interface {
	Binding(descriptor string) (config.CommandTemplate, bool)
}

// Bindings is a descriptor-keyed command table as written in the config
// file. Keys are matched by their parsed form, so "Shift+Ctrl+X" and
// "control+shift+x" both answer for Ctrl+Shift+X.
type Bindings map[string]config.CommandTemplate

func (b Bindings) Binding(descriptor string) (config.CommandTemplate, bool) {
	want := Parse(descriptor).String()
	if want == "" {
		return config.CommandTemplate{}, false
	}
	if tmpl, ok := b[descriptor]; ok {
		return tmpl, true
	}

	keys := make([]string, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.EqualFold(Parse(key).String(), want) {
			return b[key], true
		}
	}
	return config.CommandTemplate{}, false
}

// CommandDispatcher invokes the command bound to a hotkey directly instead
// of simulating the key press.
type CommandDispatcher struct {
	bindings BindingSource
	logger   *slog.Logger
}

func NewCommandDispatcher(bindings BindingSource, logger *slog.Logger) *CommandDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandDispatcher{bindings: bindings, logger: logger}
}

func (d *CommandDispatcher) Dispatch(ctx context.Context, ev KeyEvent) error {
	descriptor := ev.Hotkey().String()
	if d.bindings == nil {
		return ErrUnbound
	}
	tmpl, ok := d.bindings.Binding(descriptor)
	if !ok {
		return ErrUnbound
	}

	cmd, wait, name := buildCommand(ctx, tmpl, descriptor, ValuesFrom(ctx))
	if cmd == nil {
		return ErrUnbound
	}

	d.logger.Debug("running bound command", "hotkey", descriptor, "exec", name)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("command for %s %q failed to start: %w", descriptor, name, err)
	}

	if wait {
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("command for %s %q failed: %w", descriptor, name, err)
		}
		return nil
	}

	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("command for %s %q release failed: %w", descriptor, name, err)
	}
	return nil
}

func buildCommand(ctx context.Context, tmpl config.CommandTemplate, descriptor string, v Values) (*exec.Cmd, bool, string) {
	replacements := map[string]string{
		"{hotkey}":    descriptor,
		"{selection}": v.Selection,
		"{file}":      v.File,
		"{vault}":     v.Vault,
	}
	apply := func(value string) string {
		for placeholder, replacement := range replacements {
			value = strings.ReplaceAll(value, placeholder, replacement)
		}
		return value
	}

	execName := strings.TrimSpace(apply(tmpl.Exec))
	if execName == "" {
		return nil, false, ""
	}

	args := make([]string, 0, len(tmpl.Args))
	for _, arg := range tmpl.Args {
		args = append(args, apply(arg))
	}

	wait := true
	if tmpl.Wait != nil {
		wait = *tmpl.Wait
	}

	var cmd *exec.Cmd
	if wait {
		cmd = exec.CommandContext(ctx, execName, args...)
	} else {
		// Detached commands must outlive the check command's context.
		cmd = exec.Command(execName, args...)
	}

	if tmpl.Silence != nil && *tmpl.Silence {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}

	return cmd, wait, execName
}

// RunFunc executes an external program.
type RunFunc func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// SyntheticDispatcher emits the key press into the focused desktop window
// through xdotool, for shortcuts owned by applications dictcheck cannot
// call directly.
type SyntheticDispatcher struct {
	Program string
	run     RunFunc
	logger  *slog.Logger
}

func NewSyntheticDispatcher(logger *slog.Logger) *SyntheticDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyntheticDispatcher{Program: "xdotool", run: runCommand, logger: logger}
}

// WithRunner swaps the process runner, mainly for tests.
func (d *SyntheticDispatcher) WithRunner(run RunFunc) *SyntheticDispatcher {
	d.run = run
	return d
}

func (d *SyntheticDispatcher) Dispatch(ctx context.Context, ev KeyEvent) error {
	if ev.Key == "" {
		return ErrUnbound
	}

	accel := Keysym(ev)
	args := []string{"key", "--clearmodifiers", accel}
	d.logger.Debug("dispatching synthetic keydown", "program", d.Program, "keysym", accel)

	if err := d.run(ctx, d.Program, args...); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return fmt.Errorf("%s is required for synthetic hotkeys: %w", d.Program, err)
		}
		return fmt.Errorf("synthetic keydown %s failed: %w", accel, err)
	}
	return nil
}

var keysyms = map[string]string{
	"enter":      "Return",
	"escape":     "Escape",
	"esc":        "Escape",
	"tab":        "Tab",
	"space":      "space",
	"backspace":  "BackSpace",
	"delete":     "Delete",
	"insert":     "Insert",
	"home":       "Home",
	"end":        "End",
	"pageup":     "Prior",
	"pagedown":   "Next",
	"arrowup":    "Up",
	"arrowdown":  "Down",
	"arrowleft":  "Left",
	"arrowright": "Right",
	"up":         "Up",
	"down":       "Down",
	"left":       "Left",
	"right":      "Right",
	"+":          "plus",
	"-":          "minus",
}

// Keysym renders ev as an X keysym chord, e.g. "ctrl+shift+x".
func Keysym(ev KeyEvent) string {
	var parts []string
	if ev.CtrlKey {
		parts = append(parts, "ctrl")
	}
	if ev.ShiftKey {
		parts = append(parts, "shift")
	}
	if ev.AltKey {
		parts = append(parts, "alt")
	}
	if ev.MetaKey {
		parts = append(parts, "super")
	}

	key := ev.Key
	if sym, ok := keysyms[strings.ToLower(key)]; ok {
		key = sym
	} else if utf8.RuneCountInString(key) == 1 {
		key = strings.ToLower(key)
	} else if isFunctionKey(key) {
		key = "F" + key[1:]
	}

	return strings.Join(append(parts, key), "+")
}

func isFunctionKey(key string) bool {
	if len(key) < 2 || (key[0] != 'f' && key[0] != 'F') {
		return false
	}
	_, err := strconv.Atoi(key[1:])
	return err == nil
}

// Chain tries each dispatcher in turn until one handles the event.
type Chain []Dispatcher

func (c Chain) Dispatch(ctx context.Context, ev KeyEvent) error {
	for _, d := range c {
		err := d.Dispatch(ctx, ev)
		if errors.Is(err, ErrUnbound) {
			continue
		}
		return err
	}
	return ErrUnbound
}

// NewDispatcher assembles the dispatcher for a configured dispatch mode.
// "auto" prefers a bound command and falls back to a synthetic key press.
func NewDispatcher(mode string, bindings BindingSource, logger *slog.Logger) Dispatcher {
	switch mode {
	case config.DispatchCommand:
		return NewCommandDispatcher(bindings, logger)
	case config.DispatchSynthetic:
		return NewSyntheticDispatcher(logger)
	case config.DispatchNone:
		return Chain{}
	default:
		return Chain{
			NewCommandDispatcher(bindings, logger),
			NewSyntheticDispatcher(logger),
		}
	}
}
