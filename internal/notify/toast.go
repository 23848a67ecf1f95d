package notify

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type dismissMsg struct{}

// toastModel shows a notice until its timer runs out or a key is pressed.
type toastModel struct {
	notice   Notice
	duration time.Duration
	width    int
	done     bool
}

func newToastModel(n Notice, duration time.Duration) toastModel {
	return toastModel{notice: n, duration: duration, width: 80}
}

func (m toastModel) Init() tea.Cmd {
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return dismissMsg{}
	})
}

func (m toastModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dismissMsg, tea.KeyMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.width = msg.Width - 4
		}
	}
	return m, nil
}

func (m toastModel) View() string {
	if m.done {
		return ""
	}
	return render(m.notice, m.width) + "\n"
}

// ToastNotifier displays each notice inline and blocks until it is
// dismissed, either by its timer or by a key press.
type ToastNotifier struct {
	out             io.Writer
	defaultDuration time.Duration
	opts            []tea.ProgramOption
}

func NewToastNotifier(out io.Writer, defaultDuration time.Duration) *ToastNotifier {
	return &ToastNotifier{out: out, defaultDuration: defaultDuration}
}

// WithProgramOptions appends bubbletea options, e.g. custom input for tests.
func (t *ToastNotifier) WithProgramOptions(opts ...tea.ProgramOption) *ToastNotifier {
	t.opts = append(t.opts, opts...)
	return t
}

func (t *ToastNotifier) Notify(ctx context.Context, n Notice) error {
	duration := n.Duration
	if duration <= 0 {
		duration = t.defaultDuration
	}

	opts := append([]tea.ProgramOption{
		tea.WithOutput(t.out),
		tea.WithContext(ctx),
	}, t.opts...)

	_, err := tea.NewProgram(newToastModel(n, duration), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
