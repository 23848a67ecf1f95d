package settings

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Paintersrp/dictcheck/internal/config"
)

var fieldLabels = map[string]string{
	config.FieldFilePath:        "Reference document",
	config.FieldPrefixSymbol:    "Prefix symbol",
	config.FieldSuffixSymbol:    "Suffix symbol",
	config.FieldNotFoundHotkey:  "Hotkey when not found",
	config.FieldVaultDir:        "Vault directory",
	config.FieldNoticeDuration:  "Notice duration",
	config.FieldUnregisterDelay: "Hotkey release delay",
	config.FieldDispatchMode:    "Dispatch mode",
}

type ListItem struct {
	field string
	value string
}

func (i ListItem) Field() string { return i.field }
func (i ListItem) Value() string { return i.value }
func (i ListItem) Title() string { return fieldLabels[i.field] }

func (i ListItem) Description() string {
	switch {
	case i.value == "":
		return "(not set)"
	case strings.TrimSpace(i.value) != i.value:
		// Surrounding spaces matter for prefixes and suffixes.
		return strconv.Quote(i.value)
	default:
		return i.value
	}
}

func (i ListItem) FilterValue() string { return i.Title() }

func configItems(cfg *config.Config) []list.Item {
	items := make([]list.Item, 0, len(config.Fields))
	for _, field := range config.Fields {
		value, _ := cfg.Get(field)
		items = append(items, ListItem{field: field, value: value})
	}
	return items
}
