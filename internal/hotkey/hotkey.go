// Package hotkey parses "Modifier+...+Key" descriptors and delivers them as
// synthetic key presses so that whatever is bound to the shortcut runs.
package hotkey

import (
	"strings"
	"unicode/utf8"
)

// Hotkey is a parsed descriptor. Key keeps the spelling it was given with;
// modifiers are matched case-insensitively.
type Hotkey struct {
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

var modifierNames = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"alt":     "alt",
	"option":  "alt",
	"meta":    "meta",
	"cmd":     "meta",
	"command": "meta",
	"super":   "meta",
}

// IsModifier reports whether name is one of the recognised modifier names.
func IsModifier(name string) bool {
	_, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Parse splits descriptor on "+". The last token is the key and every token
// before it must name a modifier; a trailing "++" is the plus key. Anything
// that does not fit that shape is taken whole as the key with no modifiers.
// Parse never fails.
func Parse(descriptor string) Hotkey {
	raw := strings.TrimSpace(descriptor)
	if raw == "" {
		return Hotkey{}
	}

	tokens := strings.Split(raw, "+")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	key := tokens[len(tokens)-1]
	mods := tokens[:len(tokens)-1]
	if key == "" {
		// "Alt++": a trailing "++" names the plus key itself.
		if len(tokens) < 2 || tokens[len(tokens)-2] != "" {
			return Hotkey{Key: raw}
		}
		key = "+"
		mods = tokens[:len(tokens)-2]
	}

	var hk Hotkey
	for _, token := range mods {
		switch modifierNames[strings.ToLower(token)] {
		case "ctrl":
			hk.Ctrl = true
		case "shift":
			hk.Shift = true
		case "alt":
			hk.Alt = true
		case "meta":
			hk.Meta = true
		default:
			return Hotkey{Key: raw}
		}
	}

	hk.Key = key
	return hk
}

// IsZero reports whether the hotkey carries no key at all.
func (h Hotkey) IsZero() bool {
	return h.Key == ""
}

// Modifiers lists the active modifier names in canonical order.
func (h Hotkey) Modifiers() []string {
	var mods []string
	if h.Ctrl {
		mods = append(mods, "Ctrl")
	}
	if h.Shift {
		mods = append(mods, "Shift")
	}
	if h.Alt {
		mods = append(mods, "Alt")
	}
	if h.Meta {
		mods = append(mods, "Meta")
	}
	return mods
}

// String renders the canonical descriptor, e.g. "Ctrl+Shift+X".
func (h Hotkey) String() string {
	if h.IsZero() {
		return ""
	}
	return strings.Join(append(h.Modifiers(), displayKey(h.Key)), "+")
}

func displayKey(key string) string {
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToUpper(key)
	}
	return key
}

// KeyEvent mirrors a DOM-style keydown event.
type KeyEvent struct {
	Type       string
	Key        string
	CtrlKey    bool
	ShiftKey   bool
	AltKey     bool
	MetaKey    bool
	Bubbles    bool
	Cancelable bool
}

// Event builds the single bubbling, cancelable keydown dispatched for h.
func (h Hotkey) Event() KeyEvent {
	return KeyEvent{
		Type:       "keydown",
		Key:        h.Key,
		CtrlKey:    h.Ctrl,
		ShiftKey:   h.Shift,
		AltKey:     h.Alt,
		MetaKey:    h.Meta,
		Bubbles:    true,
		Cancelable: true,
	}
}

// Hotkey converts the event back into its descriptor form.
func (e KeyEvent) Hotkey() Hotkey {
	return Hotkey{Key: e.Key, Ctrl: e.CtrlKey, Shift: e.ShiftKey, Alt: e.AltKey, Meta: e.MetaKey}
}
