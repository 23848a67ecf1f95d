package hotkey

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

var namedKeys = map[string]string{
	"enter":     "Enter",
	"tab":       "Tab",
	"esc":       "Escape",
	"escape":    "Escape",
	"backspace": "Backspace",
	"delete":    "Delete",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	" ":         "Space",
	"space":     "Space",
}

// FromKeyMsg derives a descriptor from a terminal key press using the same
// modifier naming as Parse. It reports false for presses that carry no usable
// key, such as a bare modifier.
func FromKeyMsg(msg tea.KeyMsg) (Hotkey, bool) {
	raw := msg.String()
	if raw == "" {
		return Hotkey{}, false
	}

	var hk Hotkey
	tokens := strings.Split(raw, "+")
	key := tokens[len(tokens)-1]
	if key == "" && len(tokens) > 1 {
		// "ctrl++" style: the key itself is a plus sign.
		key = "+"
		tokens = tokens[:len(tokens)-1]
	}

	for _, token := range tokens[:len(tokens)-1] {
		switch token {
		case "ctrl":
			hk.Ctrl = true
		case "shift":
			hk.Shift = true
		case "alt":
			hk.Alt = true
		}
	}
	if msg.Alt {
		hk.Alt = true
	}

	if IsModifier(key) {
		return Hotkey{}, false
	}

	if name, ok := namedKeys[strings.ToLower(key)]; ok {
		hk.Key = name
		return hk, true
	}

	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		if unicode.IsUpper(r) {
			hk.Shift = true
		}
		hk.Key = strings.ToUpper(key)
		return hk, true
	}

	// Function keys and anything else multi-character: "f4" -> "F4".
	hk.Key = strings.ToUpper(key[:1]) + key[1:]
	return hk, true
}
