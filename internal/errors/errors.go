package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, privilege).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions on output paths).
	ExitSystem = 2
)

// Wrapping helpers re-exported from cockroachdb/errors.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Unwrap = crdb.Unwrap
)

// Sentinel errors for the fatal failure conditions of a run.
var (
	// ErrInvalidConfig indicates configuration or flag validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrNotPrivileged indicates the run requires root and was started without it.
	ErrNotPrivileged = crdb.New("root privileges required")

	// ErrInterrupted indicates the run was cancelled between collector steps.
	ErrInterrupted = crdb.New("run interrupted")

	// ErrPersist indicates the report or log artifact could not be written.
	ErrPersist = crdb.New("persist failed")

	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = crdb.New("not found")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
// The underlying error is marked with ErrInvalidConfig.
func NewConfigError(err error) *ExitError {
	if err != nil {
		err = crdb.Mark(err, ErrInvalidConfig)
	}
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: sysmaint config",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// PersistError reports a failed write of a run artifact (report or log).
type PersistError struct {
	// Path is the destination that could not be written.
	Path string

	// Err is the underlying I/O error.
	Err error
}

// NewPersistError wraps err as a PersistError for path.
func NewPersistError(path string, err error) *PersistError {
	return &PersistError{Path: path, Err: err}
}

func (e *PersistError) Error() string {
	if e.Err == nil {
		return "persisting " + e.Path
	}
	return "persisting " + e.Path + ": " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPersist) match any PersistError.
func (e *PersistError) Is(target error) bool {
	return target == ErrPersist
}

// ExitCode returns the process exit code for err.
// nil maps to ExitSuccess, an ExitError to its Code, a PersistError to
// ExitSystem and anything else to ExitUser.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	var persistErr *PersistError
	if crdb.As(err, &persistErr) {
		return ExitSystem
	}
	return ExitUser
}
