package runner

import (
	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/lint"
)

// FileOutcome is the per-file result of a run.
type FileOutcome struct {
	// Path is the file that was processed.
	Path string

	// Result is the pipeline result, nil when Error is set.
	Result *lint.PipelineResult

	// Error is set when the file could not be processed.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered       int
	FilesProcessed        int
	FilesSkipped          int
	FilesErrored          int
	FilesWithIssues       int
	FilesFixed            int
	DiagnosticsTotal      int
	DiagnosticsFixable    int
	DiagnosticsBySeverity map[string]int
}

// Result is the overall outcome of a run, with files in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file failed or any error-severity
// diagnostic was produced.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

// accumulate folds one outcome into the result.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}
	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Written {
		r.Stats.FilesFixed++
	}

	if outcome.Result.FileResult == nil {
		return
	}
	count := len(outcome.Result.Diagnostics)
	r.Stats.DiagnosticsTotal += count
	r.Stats.DiagnosticsFixable += outcome.Result.FixableCount()
	if count > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range outcome.Result.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
