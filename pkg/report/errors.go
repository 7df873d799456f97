package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// Common errors returned by the report package.
var (
	// ErrInvalidArgument is returned when a column position is negative or a
	// required label or field selector is empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeMismatch is returned when a column is compared with something
	// that is not a column.
	ErrTypeMismatch = errors.New("type mismatch in comparison")

	// ErrReportIO is returned when the report sink cannot be opened, written or closed.
	ErrReportIO = errors.New("report i/o failure")

	// ErrReportAborted is the cause carried by an IOError when a row is
	// requested from a report that already failed.
	ErrReportAborted = errors.New("report was aborted")
)

// TypeMismatchError reports a comparison between a column and a foreign value.
type TypeMismatchError struct {
	This  string
	Other string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("both objects must be of the same type: this=%s other=%s", e.This, e.Other)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// IOError wraps a failure of the report sink with the stage at which it
// happened and the file that was being written.
type IOError struct {
	Kind     string
	Stage    Stage
	FileName string
	Err      error
}

func (e *IOError) Error() string {
	target := e.FileName
	if target == "" {
		target = "standard output"
	}
	return fmt.Sprintf("%s failure while %s on %s: %v", e.Kind, e.Stage, target, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrReportIO, e.Err}
}

// AsIOError returns the IOError in err's chain, if any.
func AsIOError(err error) (*IOError, bool) {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr, true
	}
	return nil, false
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// faultKind classifies err into a short category name. Faults that match
// no known category are named after the stage they happened in.
func faultKind(err error, stage Stage) string {
	var (
		errno   syscall.Errno
		pathErr *fs.PathError
	)
	switch {
	case errors.Is(err, ErrReportAborted):
		return "aborted"
	case errors.Is(err, fs.ErrPermission):
		return "permission"
	case errors.Is(err, fs.ErrNotExist):
		return "not-exist"
	case errors.Is(err, fs.ErrClosed), errors.Is(err, os.ErrClosed):
		return "closed"
	case errors.As(err, &errno) && errno == syscall.ENOSPC:
		return "no-space"
	case errors.As(err, &errno) && errno == syscall.EIO:
		return "io"
	case errors.As(err, &pathErr) && pathErr.Op != "":
		return pathErr.Op
	}

	switch stage {
	case StageOpening:
		return "open"
	case StageClosing:
		return "close"
	default:
		return "write"
	}
}
