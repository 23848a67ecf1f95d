package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Paintersrp/dictcheck/internal/lookup"
)

// Stats summarises a reference document for the status command.
type Stats struct {
	Lines    int
	Entries  int
	Headings int
}

// Summarize counts lines the way lookups see them, plus the Markdown list
// items and headings that usually make up a dictionary note.
func Summarize(content string) Stats {
	stats := Stats{Lines: len(lookup.Lines(content))}

	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.ListItem:
			stats.Entries++
		case *ast.Heading:
			stats.Headings++
		}
		return ast.WalkContinue, nil
	})

	return stats
}

// Status describes the reference document as the settings panel and the
// status command report it.
type Status struct {
	Path  string
	Found bool
	Stats Stats
	Err   error
}

// Inspect reads path through r and summarises it. Read failures other than
// ErrNotFound are kept on the status rather than returned.
func Inspect(ctx context.Context, r Reader, path string) Status {
	status := Status{Path: path}
	if path == "" {
		return status
	}

	content, err := r.Read(ctx, path)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			status.Err = err
		}
		return status
	}

	status.Found = true
	status.Stats = Summarize(content)
	return status
}

func (s Status) String() string {
	switch {
	case s.Path == "":
		return "no reference document configured"
	case s.Err != nil:
		return fmt.Sprintf("%s: %v", s.Path, s.Err)
	case !s.Found:
		return fmt.Sprintf("%s: not found", s.Path)
	default:
		return fmt.Sprintf("%s: %d lines, %d entries", s.Path, s.Stats.Lines, s.Stats.Entries)
	}
}
