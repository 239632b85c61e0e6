// Package reporter renders runner results as styled text or JSON.
package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Color controls colorized output: "auto", "always", or "never".
	Color string

	// ShowContext includes the offending source line under each
	// diagnostic.
	ShowContext bool

	// ShowSummary appends aggregate statistics after results.
	ShowSummary bool

	// ShowDiffs prints dry-run diffs after each file's diagnostics.
	ShowDiffs bool

	// Compact minifies JSON output.
	Compact bool

	// WorkingDir makes reported paths relative when set.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		ShowDiffs:   true,
	}
}
