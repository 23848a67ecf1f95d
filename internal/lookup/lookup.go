// Package lookup checks whether a selected phrase is already recorded in a
// reference document.
//
// Everything here is pure: the caller reads the document and decides what to
// do with the Result.
package lookup

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result describes the outcome of a lookup. Number is 1-based and zero when
// nothing matched.
type Result struct {
	Found  bool
	Line   string
	Number int
	Needle string
}

// NotFound reports whether the lookup came back empty.
func (r Result) NotFound() bool {
	return !r.Found
}

// TrimQuery strips leading and trailing whitespace from a selection and
// reports how many runes were dropped on each side, so the caller can narrow
// the editor selection to the same span.
func TrimQuery(text string) (query string, lead, trail int) {
	left := strings.TrimLeftFunc(text, unicode.IsSpace)
	lead = utf8.RuneCountInString(text) - utf8.RuneCountInString(left)

	query = strings.TrimRightFunc(left, unicode.IsSpace)
	trail = utf8.RuneCountInString(left) - utf8.RuneCountInString(query)

	return query, lead, trail
}

// Needle composes the search string. No normalisation is applied.
func Needle(prefix, query, suffix string) string {
	return prefix + query + suffix
}

// Lines splits document content on "\n". Carriage returns are kept so that
// matching stays byte-exact.
func Lines(content string) []string {
	return strings.Split(content, "\n")
}

// Find returns the first line, in document order, that contains needle as a
// case-sensitive substring.
func Find(lines []string, needle string) Result {
	for i, line := range lines {
		if strings.Contains(line, needle) {
			return Result{Found: true, Line: line, Number: i + 1, Needle: needle}
		}
	}
	return Result{Needle: needle}
}

// Lookup trims query, wraps it in prefix and suffix and scans lines for the
// first match. Callers are expected to reject an empty trimmed query before
// getting here.
func Lookup(query string, lines []string, prefix, suffix string) Result {
	trimmed, _, _ := TrimQuery(query)
	return Find(lines, Needle(prefix, trimmed, suffix))
}
