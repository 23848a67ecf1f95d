package state

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/dictcheck/internal/pathutil"
)

type ReferenceChangedMsg struct {
	Path string
}

type ReferenceWatcherErrMsg struct {
	Err error
}

// ReferenceWatcher reports edits to the reference document. It watches the
// document's directory so that editors which save by rename are still seen.
type ReferenceWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	done     chan struct{}
	once     sync.Once
	onChange func(string)
	onClose  func()
}

func NewReferenceWatcher(path string) (*ReferenceWatcher, error) {
	normalized := pathutil.NormalizePath(strings.TrimSpace(path))
	if normalized == "" {
		return nil, errors.New("reference document path cannot be empty")
	}

	abs, err := filepath.Abs(normalized)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &ReferenceWatcher{
		watcher: w,
		path:    abs,
		done:    make(chan struct{}),
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Path is the absolute path being watched.
func (w *ReferenceWatcher) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// Start returns a command that blocks until the next relevant event. The
// receiving model re-issues it after handling each message.
func (w *ReferenceWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if !w.isRelevant(event) {
					continue
				}

				if w.onChange != nil {
					w.onChange(w.path)
				}

				return ReferenceChangedMsg{Path: w.path}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return ReferenceWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *ReferenceWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		if w.onClose != nil {
			w.onClose()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives the document path whenever
// the watcher detects a relevant change.
func (w *ReferenceWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.onChange = fn
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *ReferenceWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.onClose = fn
}

func (w *ReferenceWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	return filepath.Clean(event.Name) == w.path
}
