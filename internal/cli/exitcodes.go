package cli

import (
	"errors"

	"github.com/thenoetrevino/pilar/internal/scenario"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: terminal errors, unreadable configuration, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: unknown flags, invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: an unknown scenario name.
	ExitNotFound = 3

	// ExitValidation indicates a structural edit was rejected.
	// Use for: a scenario step whose column command refused to run.
	ExitValidation = 5
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, scenario.ErrUnknownScenario):
		return ExitNotFound
	case errors.Is(err, scenario.ErrScenarioFailed):
		return ExitValidation
	default:
		return ExitError
	}
}

// ErrUsage marks errors caused by how a command was invoked.
var ErrUsage = errors.New("invalid usage")
