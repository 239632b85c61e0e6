package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/runner"
)

// Reporter renders a runner result. Report returns the number of
// diagnostics written.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the reporter for the given format.
func New(format config.OutputFormat, opts Options) (Reporter, error) {
	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatText, "":
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
