// Package factory hands commands their dependencies. State is built on first
// use so that persistent flags are parsed before the config is loaded.
package factory

import (
	"io"
	"os"

	"github.com/Paintersrp/dictcheck/internal/notify"
	"github.com/Paintersrp/dictcheck/internal/state"
)

type Factory struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// Options is filled from the persistent flags before State is called.
	Options state.Options

	state *state.State
}

func New() *Factory {
	return &Factory{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

func (f *Factory) State() (*state.State, error) {
	if f.state != nil {
		return f.state, nil
	}

	opts := f.Options
	if opts.Stderr == nil {
		opts.Stderr = f.ErrOut
	}
	if opts.Notices == nil {
		opts.Notices = notify.Destination(f.Out, f.ErrOut)
	}

	s, err := state.NewState(opts)
	if err != nil {
		return nil, err
	}
	f.state = s
	return s, nil
}

// Close releases the state if it was built.
func (f *Factory) Close() error {
	if f.state == nil {
		return nil
	}
	return f.state.Close()
}
