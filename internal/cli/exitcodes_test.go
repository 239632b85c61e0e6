package cli

import (
	"testing"

	"github.com/yaklabco/gomdtables/pkg/runner"
)

func statsResult(errored int, bySeverity map[string]int) *runner.Result {
	return &runner.Result{
		Stats: runner.Stats{
			FilesErrored:          errored,
			DiagnosticsBySeverity: bySeverity,
		},
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{
			name:   "nil result",
			result: nil,
			want:   ExitSuccess,
		},
		{
			name:   "clean run",
			result: statsResult(0, map[string]int{}),
			want:   ExitSuccess,
		},
		{
			name:   "warnings without strict",
			result: statsResult(0, map[string]int{"warning": 3}),
			want:   ExitSuccess,
		},
		{
			name:   "warnings with strict",
			result: statsResult(0, map[string]int{"warning": 3}),
			strict: true,
			want:   ExitWarnings,
		},
		{
			name:   "error severity diagnostics",
			result: statsResult(0, map[string]int{"error": 1, "warning": 2}),
			want:   ExitIssues,
		},
		{
			name:   "errored files",
			result: statsResult(1, map[string]int{}),
			want:   ExitIssues,
		},
		{
			name:   "errors outrank strict warnings",
			result: statsResult(0, map[string]int{"error": 1, "warning": 1}),
			strict: true,
			want:   ExitIssues,
		},
		{
			name:   "info only with strict",
			result: statsResult(0, map[string]int{"info": 5}),
			strict: true,
			want:   ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFromResult(tt.result, tt.strict); got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}
}
