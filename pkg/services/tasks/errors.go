package tasks

import (
	"errors"

	"github.com/de-tools/tzlab/pkg/services/cases"
	"github.com/de-tools/tzlab/pkg/zones"
)

var (
	ErrInvalidTask = errors.New("the specified task is invalid")
	// ErrUnimplementedTask is returned for Task values outside the defined
	// set, which callers can build by converting an int.
	ErrUnimplementedTask = errors.New("the specified task is not implemented")
	ErrMissingZoneID     = errors.New("a time zone id is required")
)

// Process exit codes.
const (
	ExitSuccess = iota
	ExitRuntime
	ExitInvalidTask
	ExitUnimplementedTask
	ExitCaseFileNameMissing
	ExitCaseFileNotFound
	ExitMissingZoneID
	ExitInvalidZoneID
)

// ExitCode maps err to the exit status of the process.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidTask):
		return ExitInvalidTask
	case errors.Is(err, ErrUnimplementedTask):
		return ExitUnimplementedTask
	case errors.Is(err, cases.ErrInputFileMissing):
		return ExitCaseFileNameMissing
	case errors.Is(err, cases.ErrInputFileNotFound):
		return ExitCaseFileNotFound
	case errors.Is(err, ErrMissingZoneID):
		return ExitMissingZoneID
	case errors.Is(err, zones.ErrZoneNotFound):
		return ExitInvalidZoneID
	default:
		return ExitRuntime
	}
}
