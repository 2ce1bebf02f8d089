package cli

import (
	"errors"
	"fmt"

	"github.com/rshade/coalcarbon/internal/auth"
	"github.com/rshade/coalcarbon/internal/emissions"
	"github.com/rshade/coalcarbon/internal/export"
)

// Process exit codes.
const (
	ExitCodeOK         = 0
	ExitCodeGeneric    = 1
	ExitCodeValidation = 2
	ExitCodeAuth       = 3
)

// errNotLoggedIn is returned by commands that need a session.
var errNotLoggedIn = errors.New("not logged in: run 'coalcarbon login' first")

// ExitError carries an explicit process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func validationError(err error) error {
	return &ExitError{Code: ExitCodeValidation, Err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
// An explicit ExitError wins; otherwise the sentinel errors decide.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, emissions.ErrValidation), errors.Is(err, export.ErrUnsupportedFormat):
		return ExitCodeValidation
	case errors.Is(err, auth.ErrAuthentication), errors.Is(err, errNotLoggedIn):
		return ExitCodeAuth
	default:
		return ExitCodeGeneric
	}
}
