package sheetvrt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSource indicates no input file is open.
var ErrNoSource = errors.New("please select an input file")

// ErrNoSheet indicates no sheet is selected.
var ErrNoSheet = errors.New("please select a sheet")

// ErrNoXField indicates geometry without an x field.
var ErrNoXField = errors.New("please select an x field")

// ErrNoYField indicates geometry without a y field.
var ErrNoYField = errors.New("please select a y field")

// ErrDescriptorExists indicates a different descriptor is already on disk.
var ErrDescriptorExists = errors.New("descriptor already exists")

// ValidationError aggregates the failed validation rules of one build.
type ValidationError struct {
	Problems []error
	// Outcomes holds every rule that ran, passed or failed.
	Outcomes []Outcome
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes each problem to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// IOError represents a failed read or write of a source or descriptor file.
type IOError struct {
	Op   string // "open", "read", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
