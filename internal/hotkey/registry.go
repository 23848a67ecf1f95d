package hotkey

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrAlreadyRegistered is returned when an accelerator is registered twice
// without being released in between.
var ErrAlreadyRegistered = errors.New("hotkey already registered")

// Registry is a string-keyed table of global shortcuts.
type Registry interface {
	Register(accelerator string, handler func()) error
	Unregister(accelerator string)
	Fire(accelerator string) bool
}

// ShortcutRegistry is the in-process shortcut table. Registrations are
// transient: the simulator holds one only around a synthetic dispatch.
type ShortcutRegistry struct {
	mu       sync.Mutex
	handlers map[string]func()
	logger   *slog.Logger
}

func NewShortcutRegistry(logger *slog.Logger) *ShortcutRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShortcutRegistry{
		handlers: make(map[string]func()),
		logger:   logger,
	}
}

func (r *ShortcutRegistry) Register(accelerator string, handler func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[accelerator]; exists {
		return ErrAlreadyRegistered
	}
	r.handlers[accelerator] = handler
	r.logger.Debug("hotkey registered", "accelerator", accelerator)
	return nil
}

func (r *ShortcutRegistry) Unregister(accelerator string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[accelerator]; !exists {
		return
	}
	delete(r.handlers, accelerator)
	r.logger.Debug("hotkey unregistered", "accelerator", accelerator)
}

// Registered reports whether accelerator currently holds a registration.
func (r *ShortcutRegistry) Registered(accelerator string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.handlers[accelerator]
	return exists
}

// Fire invokes the handler registered for accelerator, if any.
func (r *ShortcutRegistry) Fire(accelerator string) bool {
	r.mu.Lock()
	handler, exists := r.handlers[accelerator]
	r.mu.Unlock()

	if !exists {
		return false
	}
	if handler != nil {
		handler()
	}
	return true
}
