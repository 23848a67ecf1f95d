package settings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
)

type fieldInput struct {
	Title string
	Input textinput.Model
}

func newFieldInput() fieldInput {
	t := textinput.New()
	t.Cursor.Style = cursorStyle
	t.PromptStyle = focusedStyle
	t.TextStyle = focusedStyle

	return fieldInput{Input: t}
}

func (m fieldInput) View() string {
	return textStyle.Render(fmt.Sprintf("Editing: %s\n%s\n\n(enter to save, esc to cancel)",
		m.Title,
		m.Input.View(),
	))
}
