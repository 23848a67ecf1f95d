// Package selection provides the text a check runs against and lets the
// check narrow it once surrounding whitespace has been trimmed.
package selection

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/atotto/clipboard"
)

// Selection is a span of text. Start and End are rune offsets into the
// source the text was taken from.
type Selection struct {
	Text  string
	Start int
	End   int
}

// New returns a selection spanning all of text.
func New(text string) Selection {
	return Selection{Text: text, Start: 0, End: utf8.RuneCountInString(text)}
}

// Narrow drops lead runes from the front and trail runes from the back.
func (s Selection) Narrow(lead, trail int) Selection {
	runes := []rune(s.Text)
	if lead+trail >= len(runes) {
		return Selection{Start: s.Start + lead, End: s.Start + lead}
	}
	return Selection{
		Text:  string(runes[lead : len(runes)-trail]),
		Start: s.Start + lead,
		End:   s.End - trail,
	}
}

// Editor exposes the current selection and accepts adjusted bounds.
type Editor interface {
	Selection(ctx context.Context) (Selection, error)
	SetSelection(ctx context.Context, sel Selection) error
}

// Static serves a fixed piece of text, such as command arguments.
type Static struct {
	current Selection
}

func NewStatic(text string) *Static {
	return &Static{current: New(text)}
}

func (s *Static) Selection(context.Context) (Selection, error) {
	return s.current, nil
}

func (s *Static) SetSelection(_ context.Context, sel Selection) error {
	s.current = sel
	return nil
}

// Reader takes its selection from a stream, read once on first use.
type Reader struct {
	r       io.Reader
	read    bool
	current Selection
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (s *Reader) Selection(context.Context) (Selection, error) {
	if !s.read {
		data, err := io.ReadAll(s.r)
		if err != nil {
			return Selection{}, fmt.Errorf("failed to read selection: %w", err)
		}
		s.current = New(string(data))
		s.read = true
	}
	return s.current, nil
}

func (s *Reader) SetSelection(_ context.Context, sel Selection) error {
	s.current = sel
	return nil
}

var (
	readClipboard  = clipboard.ReadAll
	writeClipboard = clipboard.WriteAll
)

// Clipboard uses the system clipboard as the selection. Narrowing writes the
// trimmed text back so the next paste matches what was checked.
type Clipboard struct{}

func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (Clipboard) Selection(context.Context) (Selection, error) {
	text, err := readClipboard()
	if err != nil {
		return Selection{}, fmt.Errorf("read clipboard: %w", err)
	}
	return New(text), nil
}

func (Clipboard) SetSelection(_ context.Context, sel Selection) error {
	current, err := readClipboard()
	if err == nil && current == sel.Text {
		return nil
	}
	if err := writeClipboard(sel.Text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
