package arg

import "strings"

// HandleText joins positional arguments back into the selected text. Shell
// quoting collapses runs of whitespace, so the original spacing is only kept
// when the text is passed as a single quoted argument.
func HandleText(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return strings.Join(args, " ")
}

// HandleDescriptor returns the first argument or fallback when none is given.
func HandleDescriptor(args []string, fallback string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	return fallback
}
