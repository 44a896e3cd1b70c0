// Package core implements the traversal engine: path validation, filter
// compilation, the parallel directory walker, metadata extraction, and the
// Count/Walk/Scandir drivers sharing one lifecycle state machine.
package core

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// NotFoundError reports that the configured root path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("scandir: path not found: %s", e.Path)
}

// InvalidInputError reports a malformed glob pattern or an invalid
// return_type value supplied at construction time.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("scandir: invalid input (%s): %s", e.Field, e.Message)
}

// RuntimeError reports lifecycle misuse: starting an already-running driver,
// joining or stopping one that never started, or clearing one that is busy.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("scandir: %s", e.Message)
}

var (
	// ErrThreadNotRunning is returned by join/stop when no worker was started.
	ErrThreadNotRunning = &RuntimeError{Message: "Thread not running"}
	// ErrThreadAlreadyRunning is returned by start when a worker is already running.
	ErrThreadAlreadyRunning = &RuntimeError{Message: "Thread already running"}
	// ErrBusy is returned by clear when the driver is still running.
	ErrBusy = &RuntimeError{Message: "Busy"}
)

// GenericError wraps any other I/O failure encountered during traversal.
type GenericError struct {
	Err error
}

func (e *GenericError) Error() string {
	return fmt.Sprintf("scandir: %v", e.Err)
}

func (e *GenericError) Unwrap() error {
	return e.Err
}

// combineErrors folds a driver's accumulated textual traversal errors (§7
// class 2) into a single multierr-joined error, letting callers use
// errors.Is/As across the whole batch instead of re-parsing strings. Used by
// each driver's Err() convenience method.
func combineErrors(messages []string) error {
	var combined error
	for _, m := range messages {
		combined = multierr.Append(combined, &GenericError{Err: errors.New(m)})
	}
	return combined
}

// isInvalidInput reports whether err (or something it wraps) is an
// InvalidInputError. Used by the scoped enter/exit helper, which swallows
// exactly this error kind on exit.
func isInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
