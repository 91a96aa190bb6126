package cli

import (
	"errors"
	"strconv"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/runner"
)

// Exit codes for gobiome.
const (
	// ExitSuccess indicates that no diagnostic reached the threshold.
	ExitSuccess = 0

	// ExitDiagnostics indicates diagnostics at or above the threshold, or
	// files that could not be processed.
	ExitDiagnostics = 1

	// ExitConfigError indicates a configuration or invocation error.
	ExitConfigError = 2
)

var (
	// ErrDiagnosticsFound is returned when the run emitted diagnostics at or
	// above the threshold. The reporter has already described them.
	ErrDiagnosticsFound = errors.New("some errors were emitted while running checks")

	// ErrNoFilesMatched is returned when no file was selected for processing.
	ErrNoFilesMatched = errors.New("no files were processed in the specified paths")
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// usageError wraps err as a configuration or invocation error.
func usageError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
// Errors that carry no code are invocation errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitConfigError
}

// ExitCodeFromResult determines the exit code of a run. Errors always fail
// the run; warnings fail it only when errorOnWarnings is set. Diagnostics
// hidden by --diagnostic-level still count.
func ExitCodeFromResult(result *runner.Result, errorOnWarnings bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitDiagnostics
	}
	if errorOnWarnings && result.Count(diagnostic.SeverityWarning) > 0 {
		return ExitDiagnostics
	}
	return ExitSuccess
}
