package cli

import (
	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/runner"
)

// Exit codes for gomdtables.
const (
	// ExitSuccess indicates no issues were found.
	ExitSuccess = 0

	// ExitIssues indicates the check found error-severity issues or a
	// file failed to process.
	ExitIssues = 1

	// ExitWarnings indicates warnings were found under --strict.
	ExitWarnings = 2

	// ExitConfigError indicates configuration problems.
	ExitConfigError = 65

	// ExitInternalError indicates an internal failure.
	ExitInternalError = 70
)

// ExitCodeFromResult maps a run result to an exit code.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.Stats.FilesErrored > 0 ||
		result.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0 {
		return ExitIssues
	}
	if strict && result.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)] > 0 {
		return ExitWarnings
	}
	return ExitSuccess
}
