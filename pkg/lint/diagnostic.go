// Package lint provides the rule engine, diagnostics, and registry
// for gomdtables.
package lint

import (
	"github.com/yaklabco/gomdtables/pkg/config"
	"github.com/yaklabco/gomdtables/pkg/fix"
)

// Diagnostic is a single issue found in a file.
type Diagnostic struct {
	// RuleID identifies the rule that produced this diagnostic.
	RuleID string

	// RuleName is the rule's human-readable name.
	RuleName string

	// Message describes the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the file containing the issue.
	FilePath string

	// Line and Column are the 1-based position of the issue. Column is
	// 0 when the diagnostic concerns a whole line.
	Line   int
	Column int

	// Suggestion is an optional human-readable fix hint.
	Suggestion string

	// FixEdits holds the text edits that repair the issue, if any.
	FixEdits []fix.TextEdit
}

// HasFix reports whether this diagnostic carries fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// DiagnosticBuilder constructs Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts building a diagnostic at a position.
func NewDiagnosticAt(ruleID, filePath string, line, column int, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:   ruleID,
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  message,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix hint.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithEdit attaches a fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
