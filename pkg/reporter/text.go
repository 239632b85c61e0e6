package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/lint"
	"github.com/yaklabco/gomdtables/pkg/runner"
	"github.com/yaklabco/gomdtables/pkg/textwidth"
)

// TextReporter formats results as styled terminal output, grouped by
// file.
type TextReporter struct {
	opts      Options
	styles    *Styles
	bw        *bufio.Writer
	termWidth int
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:      opts,
		styles:    NewStyles(IsColorEnabled(opts.Color, opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
		termWidth: terminalWidth(opts.Writer),
	}
}

// terminalWidth returns the writer's terminal width, or 0 when the
// writer is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		diags := file.Result.Diagnostics
		if len(diags) > 0 {
			fmt.Fprintf(r.bw, "%s %s\n",
				r.styles.FilePath.Render(r.displayPath(file.Path)),
				r.styles.Dim.Render(fmt.Sprintf("(%d issues)", len(diags))))
			for i := range diags {
				r.writeDiagnostic(&diags[i], file.Result.Snapshot)
				total++
			}
			fmt.Fprintln(r.bw)
		}

		if r.opts.ShowDiffs && file.Result.Diff != "" {
			r.writeDiff(file.Result.Diff)
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		r.writeSummary(result.Stats)
	}
	return total, nil
}

func (r *TextReporter) writeDiagnostic(d *lint.Diagnostic, snapshot *lint.FileSnapshot) {
	fmt.Fprintf(r.bw, "  %s %s %s %s\n",
		r.styles.Location.Render(fmt.Sprintf("%d:", d.Line)),
		r.severityStyle(d.Severity).Render(string(d.Severity)),
		r.styles.RuleID.Render(d.RuleName),
		d.Message)

	if r.opts.ShowContext && snapshot != nil {
		if line := snapshot.LineContent(d.Line); line != nil {
			text := string(line)
			if r.termWidth > 8 {
				text = textwidth.Truncate(text, r.termWidth-4, "…")
			}
			fmt.Fprintf(r.bw, "    %s\n", r.styles.SourceLine.Render(text))
		}
	}
	if d.Suggestion != "" {
		fmt.Fprintf(r.bw, "    %s\n", r.styles.Suggestion.Render(d.Suggestion))
	}
}

func (r *TextReporter) writeDiff(diff string) {
	for line := range strings.Lines(diff) {
		line = strings.TrimSuffix(line, "\n")
		var styled string
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			styled = r.styles.DiffHeader.Render(line)
		case strings.HasPrefix(line, "@@"):
			styled = r.styles.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			styled = r.styles.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			styled = r.styles.DiffRemove.Render(line)
		default:
			styled = r.styles.Dim.Render(line)
		}
		fmt.Fprintln(r.bw, styled)
	}
}

func (r *TextReporter) writeSummary(stats runner.Stats) {
	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render(
			fmt.Sprintf("%d files checked, no issues found", stats.FilesProcessed)))
		return
	}

	parts := []string{
		fmt.Sprintf("%d files checked", stats.FilesProcessed),
		fmt.Sprintf("%d issues in %d files", stats.DiagnosticsTotal, stats.FilesWithIssues),
	}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, fmt.Sprintf("%d fixable", stats.DiagnosticsFixable))
	}
	if stats.FilesFixed > 0 {
		parts = append(parts, fmt.Sprintf("%d fixed", stats.FilesFixed))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, fmt.Sprintf("%d errored", stats.FilesErrored))
	}
	fmt.Fprintln(r.bw, r.styles.Bold.Render(strings.Join(parts, ", ")))
}

func (r *TextReporter) severityStyle(s config.Severity) lipgloss.Style {
	switch s {
	case config.SeverityError:
		return r.styles.Error
	case config.SeverityInfo:
		return r.styles.Info
	default:
		return r.styles.Warning
	}
}

func (r *TextReporter) displayPath(path string) string {
	if r.opts.WorkingDir == "" {
		return path
	}
	if rel, err := filepath.Rel(r.opts.WorkingDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
