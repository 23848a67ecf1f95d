// Package check implements the "Check Inclusion" flow: take the current
// selection, look it up in the reference document and either show the
// matching line or fire the fallback hotkey.
package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Paintersrp/dictcheck/internal/config"
	"github.com/Paintersrp/dictcheck/internal/constants"
	"github.com/Paintersrp/dictcheck/internal/document"
	"github.com/Paintersrp/dictcheck/internal/hotkey"
	"github.com/Paintersrp/dictcheck/internal/lookup"
	"github.com/Paintersrp/dictcheck/internal/notify"
	"github.com/Paintersrp/dictcheck/internal/selection"
)

// DocumentReader fetches the reference document. It is called once per run.
type DocumentReader interface {
	Read(ctx context.Context, path string) (string, error)
}

// SelectionEditor provides the selection and takes back its trimmed bounds.
type SelectionEditor = selection.Editor

// Notifier shows transient notices.
type Notifier interface {
	Notify(ctx context.Context, n notify.Notice) error
}

// Trigger fires a fallback hotkey descriptor.
type Trigger interface {
	Trigger(ctx context.Context, descriptor string) error
}

const (
	msgEmptySelection = "Please select some text first."
	msgMissingPath    = "Please set the reference file path in the settings."
	msgFileNotFound   = "File %s not found."
)

// Outcome reports what a run did.
type Outcome struct {
	Query     string
	Selection selection.Selection
	Result    lookup.Result
	Triggered bool
}

type Checker struct {
	documents DocumentReader
	notifier  Notifier
	trigger   Trigger
	logger    *slog.Logger

	configPath string
}

func New(documents DocumentReader, notifier Notifier, trigger Trigger, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		documents: documents,
		notifier:  notifier,
		trigger:   trigger,
		logger:    logger,
	}
}

// WithConfigPath records where settings live so configuration errors can
// point at the file.
func (c *Checker) WithConfigPath(path string) *Checker {
	c.configPath = path
	return c
}

// Run executes one check against settings. Every terminal failure is shown
// as a notice and returned; none are retried.
func (c *Checker) Run(ctx context.Context, settings config.Settings, editor SelectionEditor) (Outcome, error) {
	current, err := editor.Selection(ctx)
	if err != nil {
		return Outcome{}, err
	}

	query, lead, trail := lookup.TrimQuery(current.Text)
	if query == "" {
		c.notice(ctx, notify.Notice{Title: msgEmptySelection, Level: notify.LevelError})
		return Outcome{}, ErrEmptySelection
	}

	narrowed := current.Narrow(lead, trail)
	if lead > 0 || trail > 0 {
		if err := editor.SetSelection(ctx, narrowed); err != nil {
			c.logger.Warn("could not narrow selection", "err", err)
		}
	}

	out := Outcome{Query: query, Selection: narrowed}

	if settings.FilePath == "" {
		c.notice(ctx, notify.Notice{Title: msgMissingPath, Level: notify.LevelError})
		return out, &MissingConfigurationError{ConfigPath: c.configPath}
	}

	content, err := c.documents.Read(ctx, settings.FilePath)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			c.notice(ctx, notify.Notice{
				Title: fmt.Sprintf(msgFileNotFound, settings.FilePath),
				Level: notify.LevelError,
			})
			return out, &ReferenceFileNotFoundError{Path: settings.FilePath, Err: err}
		}
		return out, err
	}

	out.Result = lookup.Lookup(query, lookup.Lines(content), settings.PrefixSymbol, settings.SuffixSymbol)
	c.logger.Debug("lookup finished",
		"needle", out.Result.Needle,
		"found", out.Result.Found,
		"line", out.Result.Number,
	)

	if out.Result.Found {
		c.notice(ctx, notify.Notice{
			Title:    constants.MatchNoticeTitle,
			Body:     out.Result.Line,
			Level:    notify.LevelSuccess,
			Duration: settings.NoticeDuration.Duration,
			Markdown: true,
		})
		return out, nil
	}

	if settings.NotFoundHotkey == "" || c.trigger == nil {
		return out, nil
	}

	triggerCtx := hotkey.WithValues(ctx, hotkey.Values{
		Selection: query,
		File:      settings.FilePath,
		Vault:     settings.VaultDir,
	})
	if err := c.trigger.Trigger(triggerCtx, settings.NotFoundHotkey); err != nil {
		return out, fmt.Errorf("fallback hotkey %s: %w", settings.NotFoundHotkey, err)
	}
	out.Triggered = true
	return out, nil
}

func (c *Checker) notice(ctx context.Context, n notify.Notice) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.Warn("notice failed", "title", n.Title, "err", err)
	}
}
