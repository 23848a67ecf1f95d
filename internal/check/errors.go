package check

import (
	"errors"
	"fmt"
)

// ErrEmptySelection is returned when the selection is empty or whitespace.
var ErrEmptySelection = errors.New("no text selected")

// MissingConfigurationError is returned when no reference document path is
// configured. ConfigPath names the settings file to fix.
type MissingConfigurationError struct {
	ConfigPath string
}

func (e *MissingConfigurationError) Error() string {
	if e.ConfigPath == "" {
		return "reference document path is not configured"
	}
	return fmt.Sprintf("reference document path is not configured (%s)", e.ConfigPath)
}

// ReferenceFileNotFoundError is returned when the configured path does not
// resolve to a document.
type ReferenceFileNotFoundError struct {
	Path string
	Err  error
}

func (e *ReferenceFileNotFoundError) Error() string {
	return fmt.Sprintf("reference document %s not found", e.Path)
}

func (e *ReferenceFileNotFoundError) Unwrap() error {
	return e.Err
}
