// Package settings is the interactive panel for the lookup settings. Every
// change is written to the config file as soon as it is made.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/erikgeiser/promptkit/selection"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/internal/document"
	"github.com/Paintersrp/dictcheck/internal/hotkey"
	"github.com/Paintersrp/dictcheck/internal/state"
)

// Environment is what the panel needs beyond the config itself.
type Environment interface {
	// SettingsChanged is called after every saved change.
	SettingsChanged()
	// Reload re-reads the config file into the config the panel edits.
	Reload() error
	ReferenceStatus(ctx context.Context) document.Status
	WatchReference() (*state.ReferenceWatcher, error)
}

type statusMsg struct {
	status document.Status
}

type Model struct {
	list             list.Model
	keys             *listKeyMap
	delegateKeys     *delegateKeyMap
	config           *config.Config
	env              Environment
	input            fieldInput
	inputActive      bool
	capturing        bool
	modeSelect       *selection.Model[string]
	modeSelectActive bool
	watcher          *state.ReferenceWatcher
	reference        document.Status
	watchErr         error
}

func NewModel(cfg *config.Config, env Environment) Model {
	delegateKeys := newDelegateKeyMap()
	listKeys := newListKeyMap()

	delegate := newItemDelegate(delegateKeys, listKeys)
	configList := list.New(configItems(cfg), delegate, 0, 0)
	configList.Title = "Check Inclusion Settings"
	configList.Styles.Title = titleStyle
	configList.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			listKeys.toggleStatusBar,
			listKeys.toggleHelpMenu,
			listKeys.reload,
		}
	}

	return Model{
		list:         configList,
		keys:         listKeys,
		delegateKeys: delegateKeys,
		config:       cfg,
		env:          env,
		input:        newFieldInput(),
		modeSelect:   newModeSelect(),
	}
}

func newModeSelect() *selection.Model[string] {
	sel := selection.New(
		"How should the fallback hotkey be delivered?",
		config.DispatchModeNames,
	)
	sel.Filter = nil
	return selection.NewModel(sel)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.modeSelect.Init(), m.refreshStatus(), m.rewatch())
}

func (m Model) refreshStatus() tea.Cmd {
	if m.env == nil {
		return nil
	}
	env := m.env
	return func() tea.Msg {
		return statusMsg{status: env.ReferenceStatus(context.Background())}
	}
}

type watcherMsg struct {
	watcher *state.ReferenceWatcher
	err     error
}

// rewatch points the watcher at the currently configured document.
func (m Model) rewatch() tea.Cmd {
	if m.env == nil {
		return nil
	}
	env := m.env
	return func() tea.Msg {
		w, err := env.WatchReference()
		return watcherMsg{watcher: w, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-1)
		return m, nil

	case statusMsg:
		m.reference = msg.status
		return m, nil

	case watcherMsg:
		m.watcher = msg.watcher
		m.watchErr = msg.err
		if m.watcher == nil {
			return m, nil
		}
		return m, m.watcher.Start()

	case state.ReferenceChangedMsg:
		return m, tea.Batch(m.refreshStatus(), m.watcher.Start())

	case state.ReferenceWatcherErrMsg:
		m.watchErr = msg.Err
		return m, m.watcher.Start()

	case tea.KeyMsg:
		if m.capturing {
			return m.capture(msg)
		}

		// Don't match any of the keys below if we're actively filtering.
		if m.list.FilterState() == list.Filtering {
			break
		}

		if m.modeSelectActive {
			return m.updateModeSelect(msg)
		}

		if m.inputActive {
			return m.updateInput(msg)
		}

		item, ok := m.list.SelectedItem().(ListItem)

		switch {
		case key.Matches(msg, m.keys.editItem):
			if !ok {
				return m, nil
			}
			if item.Field() == config.FieldDispatchMode {
				m.modeSelectActive = true
				return m, nil
			}

			m.inputActive = true
			m.input.Title = item.Title()
			m.input.Input.SetValue(item.Value())
			m.input.Input.CursorEnd()
			return m, m.input.Input.Focus()

		case key.Matches(msg, m.delegateKeys.capture):
			if !ok || item.Field() != config.FieldNotFoundHotkey {
				return m, nil
			}
			m.capturing = true
			return m, nil

		case key.Matches(msg, m.delegateKeys.clear):
			if !ok || item.Field() == config.FieldDispatchMode {
				return m, nil
			}
			return m.save(item.Field(), "")

		case key.Matches(msg, m.keys.toggleStatusBar):
			m.list.SetShowStatusBar(!m.list.ShowStatusBar())
			return m, nil

		case key.Matches(msg, m.keys.toggleHelpMenu):
			m.list.SetShowHelp(!m.list.ShowHelp())
			return m, nil

		case key.Matches(msg, m.keys.reload):
			return m.reload()
		}
	}

	newListModel, cmd := m.list.Update(msg)
	m.list = newListModel
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// capture turns the next key press into the fallback hotkey. Escape
// cancels; presses with no usable key keep waiting.
func (m Model) capture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.capturing = false
		return m, m.list.NewStatusMessage(statusMessageStyle("Capture cancelled"))
	}

	hk, ok := hotkey.FromKeyMsg(msg)
	if !ok {
		return m, nil
	}

	m.capturing = false
	return m.save(config.FieldNotFoundHotkey, hk.String())
}

func (m Model) updateModeSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.exitInputMode) {
		m.modeSelectActive = false
		m.modeSelect = newModeSelect()
		return m, m.modeSelect.Init()
	}

	_, cmd := m.modeSelect.Update(msg)

	if !key.Matches(msg, m.keys.editItem) {
		return m, cmd
	}

	mode, err := m.modeSelect.Value()
	m.modeSelectActive = false
	m.modeSelect = newModeSelect()
	if err != nil {
		return m, m.modeSelect.Init()
	}

	initCmd := m.modeSelect.Init()
	next, saveCmd := m.save(config.FieldDispatchMode, mode)
	return next, tea.Batch(saveCmd, initCmd)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.exitInputMode) {
		m.input.Input.Reset()
		m.input.Input.Blur()
		m.inputActive = false
		return m, nil
	}

	if !key.Matches(msg, m.keys.editItem) {
		var cmd tea.Cmd
		m.input.Input, cmd = m.input.Input.Update(msg)
		return m, cmd
	}

	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return m, nil
	}

	value := m.input.Input.Value()
	m.input.Input.Reset()
	m.input.Input.Blur()
	m.inputActive = false

	return m.save(item.Field(), value)
}

// save writes one field through the config, refreshes its row and reports
// the result in the list status bar.
func (m Model) save(field, value string) (tea.Model, tea.Cmd) {
	label := fieldLabels[field]
	if err := m.config.Set(field, value); err != nil {
		return m, m.list.NewStatusMessage(errorMessageStyle(fmt.Sprintf("%s not saved: %v", label, err)))
	}

	m.list.SetItems(configItems(m.config))

	cmds := []tea.Cmd{m.list.NewStatusMessage(statusMessageStyle("Updated and Saved: " + label))}
	if m.env != nil {
		m.env.SettingsChanged()
		if field == config.FieldFilePath || field == config.FieldVaultDir {
			cmds = append(cmds, m.refreshStatus(), m.rewatch())
		}
	}

	return m, tea.Batch(cmds...)
}

// reload picks up edits made to the config file outside the panel, such as
// a concurrent "settings set".
func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.env == nil {
		return m, nil
	}
	if err := m.env.Reload(); err != nil {
		return m, m.list.NewStatusMessage(errorMessageStyle(fmt.Sprintf("Reload failed: %v", err)))
	}

	m.list.SetItems(configItems(m.config))
	return m, tea.Batch(
		m.list.NewStatusMessage(statusMessageStyle("Reloaded from disk")),
		m.refreshStatus(),
		m.rewatch(),
	)
}

func (m Model) referenceLine() string {
	line := "Reference: " + m.reference.String()
	if m.watchErr != nil && !errors.Is(m.watchErr, context.Canceled) {
		line += fmt.Sprintf(" (not watching: %v)", m.watchErr)
	}
	return referenceStyle.Render(line)
}

func (m Model) View() string {
	switch {
	case m.capturing:
		return appStyle.Render(captureStyle.Render(
			"Press the hotkey to use when a selection is not found\n(esc to cancel)",
		))
	case m.inputActive:
		return appStyle.Render(inputStyle.Render(m.input.View()))
	case m.modeSelectActive:
		return appStyle.Render(m.modeSelect.View())
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.referenceLine()))
}

// Capturing reports whether the panel is waiting for a hotkey press.
func (m Model) Capturing() bool { return m.capturing }

// Items returns the rows currently shown.
func (m Model) Items() []ListItem {
	items := m.list.Items()
	out := make([]ListItem, 0, len(items))
	for _, it := range items {
		if li, ok := it.(ListItem); ok {
			out = append(out, li)
		}
	}
	return out
}

// Close stops the reference watcher, if any.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

// Select moves the cursor to field.
func (m *Model) Select(field string) {
	for i, it := range m.Items() {
		if it.Field() == field {
			m.list.Select(i)
			return
		}
	}
}

func Run(cfg *config.Config, env Environment, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(NewModel(cfg, env), opts...).Run()
	if m, ok := final.(Model); ok {
		_ = m.Close()
	}
	if err != nil {
		return fmt.Errorf("error running settings panel: %w", err)
	}
	return nil
}
