// Package notify shows transient notices in the terminal.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notice is one message. Duration is how long it stays up; zero means the
// notifier's default. Markdown bodies are rendered before display.
type Notice struct {
	Title    string
	Body     string
	Level    Level
	Duration time.Duration
	Markdown bool
}

// Text joins title and body the way a plain log line would show them.
func (n Notice) Text() string {
	switch {
	case n.Title == "":
		return n.Body
	case n.Body == "":
		return n.Title
	default:
		return n.Title + "\n" + n.Body
	}
}

// Notifier displays notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	levelColors = map[Level]lipgloss.AdaptiveColor{
		LevelInfo:    {Light: "#0A6EBD", Dark: "#0AF"},
		LevelSuccess: {Light: "#04B575", Dark: "#04B575"},
		LevelError:   {Light: "#D0312D", Dark: "#FF5F57"},
	}
)

func boxStyle(level Level) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(levelColors[level]).
		Padding(0, 1)
}

// render lays a notice out as a bordered box.
func render(n Notice, width int) string {
	body := n.Body
	if n.Markdown && body != "" {
		body = renderMarkdown(body, width)
	}

	var parts []string
	if n.Title != "" {
		parts = append(parts, titleStyle.Foreground(levelColors[n.Level]).Render(n.Title))
	}
	if body != "" {
		parts = append(parts, body)
	}

	return boxStyle(n.Level).Render(strings.Join(parts, "\n"))
}

func renderMarkdown(source string, width int) string {
	if width <= 0 {
		width = 80
	}

	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return source
	}

	out, err := r.Render(source)
	if err != nil {
		return source
	}
	return strings.Trim(out, "\n ")
}

// WriterNotifier prints notices and returns immediately.
type WriterNotifier struct {
	out   io.Writer
	width int
	plain bool
}

func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out, width: 80}
}

// NewPlainNotifier prints notices without borders or colour, for pipes.
func NewPlainNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out, plain: true}
}

func (w *WriterNotifier) Notify(_ context.Context, n Notice) error {
	if w.plain {
		_, err := fmt.Fprintln(w.out, n.Text())
		return err
	}
	_, err := fmt.Fprintln(w.out, render(n, w.width))
	return err
}

// New picks the toast when out is an interactive terminal and plain text
// otherwise.
func New(out io.Writer, defaultDuration time.Duration) Notifier {
	if out == nil {
		return NewPlainNotifier(io.Discard)
	}
	if isTerminal(out) {
		return NewToastNotifier(out, defaultDuration)
	}
	return NewPlainNotifier(out)
}

// Destination chooses where notices go. They share stdout only with an
// interactive terminal; when stdout is piped they move to stderr so the
// command's own output stays clean.
func Destination(stdout, stderr io.Writer) io.Writer {
	if isTerminal(stdout) {
		return stdout
	}
	return stderr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
