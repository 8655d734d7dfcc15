package cli

import (
	"errors"
	"fmt"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested record was not found.
	// Use for: Unknown product, case or cycle ids, or an unknown user.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty or overlong names, suites from another product.
	ExitValidation = 5
)

// ExitCodeError carries the process exit status of a failed command whose
// error was already reported to the user
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// Exit tags err with an exit code
func Exit(code int, err error) error {
	return &ExitCodeError{Code: code, Err: err}
}

// ExitCode returns the exit status for the error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

// Reported reports whether err was already shown to the user
func Reported(err error) bool {
	var exitErr *ExitCodeError
	return errors.As(err, &exitErr)
}
