package hotkey

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Paintersrp/dictcheck/internal/constants"
)

// Simulator fires a fallback hotkey: it registers the accelerator as a
// transient global shortcut, dispatches a single keydown and releases the
// registration after Delay.
//
// The release is purely time based. A receiver that takes longer than Delay
// to react may observe the shortcut already unregistered; this is a known
// limitation and is not guarded against.
type Simulator struct {
	registry   Registry
	dispatcher Dispatcher
	delay      time.Duration
	logger     *slog.Logger

	pending sync.WaitGroup
}

func NewSimulator(registry Registry, dispatcher Dispatcher, delay time.Duration, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	if dispatcher == nil {
		dispatcher = Chain{}
	}
	if delay <= 0 {
		delay = constants.DefaultUnregisterDelay
	}
	return &Simulator{
		registry:   registry,
		dispatcher: dispatcher,
		delay:      delay,
		logger:     logger,
	}
}

// Trigger parses descriptor and delivers it. An empty descriptor is a no-op.
// When the dispatcher chain has nothing to deliver to, the keydown goes to
// the transient registration's own handler instead.
func (s *Simulator) Trigger(ctx context.Context, descriptor string) error {
	hk := Parse(descriptor)
	if hk.IsZero() {
		return nil
	}

	accelerator := hk.String()
	registered := false
	if s.registry != nil {
		err := s.registry.Register(accelerator, func() {
			s.logger.Info("hotkey triggered", "hotkey", accelerator)
		})
		switch {
		case err == nil:
			registered = true
		case errors.Is(err, ErrAlreadyRegistered):
			// A previous trigger still holds it; its timer releases it.
		default:
			s.logger.Warn("hotkey registration failed", "hotkey", accelerator, "err", err)
		}
	}

	err := s.dispatcher.Dispatch(ctx, hk.Event())

	if registered {
		s.pending.Add(1)
		time.AfterFunc(s.delay, func() {
			defer s.pending.Done()
			s.registry.Unregister(accelerator)
		})
	}

	if errors.Is(err, ErrUnbound) {
		// Nothing outside the process took the keydown; deliver it to the
		// shortcut held for it, if the registration succeeded.
		if registered && s.registry.Fire(accelerator) {
			return nil
		}
		s.logger.Info("fallback hotkey had no receiver", "hotkey", accelerator)
		return nil
	}
	return err
}

// Wait blocks until every scheduled unregistration has run. Short-lived
// processes call it before exiting.
func (s *Simulator) Wait() {
	s.pending.Wait()
}
