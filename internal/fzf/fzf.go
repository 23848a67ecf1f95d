package fzf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/dictcheck/internal/document"
	"github.com/Paintersrp/dictcheck/internal/pathutil"
)

// ErrNoSelection is returned when the picker is dismissed.
var ErrNoSelection = errors.New("no file selected")

var documentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// FindFunc matches fuzzyfinder.Find so tests can stand in for the terminal UI.
type FindFunc func(
	slice interface{},
	itemFunc func(i int) string,
	opts ...fuzzyfinder.Option,
) (int, error)

// FuzzyFinder picks a reference document from the vault.
type FuzzyFinder struct {
	vaultDir string
	Header   string
	files    []string
	find     FindFunc
}

func NewFuzzyFinder(vaultDir, header string) *FuzzyFinder {
	return &FuzzyFinder{vaultDir: vaultDir, Header: header, find: fuzzyfinder.Find}
}

// WithFind swaps the interactive finder.
func (f *FuzzyFinder) WithFind(find FindFunc) *FuzzyFinder {
	f.find = find
	return f
}

func (f *FuzzyFinder) Run() (string, error) {
	return f.RunWithQuery("")
}

// RunWithQuery opens the picker prefilled with query and returns the chosen
// document relative to the vault.
func (f *FuzzyFinder) RunWithQuery(query string) (string, error) {
	files, err := f.Files()
	if err != nil {
		return "", fmt.Errorf("error listing files: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no documents found in %s", f.vaultDir)
	}
	f.files = files

	idx, err := f.fuzzySelectFile(query)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("error selecting file: %w", err)
	}
	if idx < 0 || idx >= len(f.files) {
		return "", ErrNoSelection
	}

	return pathutil.VaultRelative(f.vaultDir, f.files[idx])
}

// Files lists candidate documents under the vault, skipping hidden
// directories such as .git and .obsidian.
func (f *FuzzyFinder) Files() ([]string, error) {
	if f.vaultDir == "" {
		return nil, errors.New("vault directory is not configured")
	}

	var files []string
	err := filepath.WalkDir(f.vaultDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != f.vaultDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if documentExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (f *FuzzyFinder) fuzzySelectFile(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	labels := make([]string, len(f.files))
	for i, file := range f.files {
		labels[i] = f.label(file)
	}

	return f.find(f.files, func(i int) string {
		return labels[i]
	}, options...)
}

// label shows the vault-relative path with the entry count, which is what
// tells dictionaries apart from ordinary notes, plus any front matter title
// and tags.
func (f *FuzzyFinder) label(file string) string {
	rel, err := pathutil.VaultRelative(f.vaultDir, file)
	if err != nil {
		rel = filepath.Base(file)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return rel
	}

	stats := document.Summarize(string(content))
	label := fmt.Sprintf("%s [%d entries, %d lines]", rel, stats.Entries, stats.Lines)

	title, tags := document.FrontMatter(content)
	if title != "" {
		label = title + " | " + label
	}
	if len(tags) > 0 {
		label += fmt.Sprintf(" [Tags: %s]", strings.Join(tags, ", "))
	}
	return label
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	content, err := os.ReadFile(f.files[i])
	if err != nil {
		return "Error reading file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(w),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}
