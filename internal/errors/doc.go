// Package errors provides error handling conventions for the sysmaint CLI.
//
// This package defines sentinel errors for the fatal failure classes of a
// maintenance run, an ExitError type for CLI exit code handling, a
// PersistError type for report and log write failures, and re-exports the
// wrapping helpers from [github.com/cockroachdb/errors] so call sites only
// import one errors package.
//
// # Failure classes
//
// Collector failures and parse degradations never reach this package; they
// are contained inside the section that produced them. Only two classes are
// fatal to a run:
//
//   - configuration errors ([ErrInvalidConfig], [NewConfigError]), raised
//     before any collector runs
//   - persistence errors ([PersistError]), raised when the report or the
//     run log cannot be written
//
// # Exit Codes
//
//   - ExitSuccess (0): run completed and the report was written
//   - ExitUser (1): invalid flags or configuration, missing privilege,
//     interrupted run
//   - ExitSystem (2): the report or log could not be persisted
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrNotPrivileged, "re-run with sudo")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
