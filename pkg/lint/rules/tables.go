// Package rules contains the built-in table rules.
package rules

import (
	"fmt"

	"github.com/yaklabco/gomdtables/pkg/fix"
	"github.com/yaklabco/gomdtables/pkg/lint"
	"github.com/yaklabco/gomdtables/pkg/tables"
)

// TableFormatRule checks cell padding, pipe alignment, and separator
// shape against the canonical display-width layout. It owns the fix:
// one whole-block replacement per misformatted table.
type TableFormatRule struct {
	lint.BaseRule
}

// NewTableFormatRule creates the table format rule.
func NewTableFormatRule() *TableFormatRule {
	return &TableFormatRule{
		BaseRule: lint.NewBaseRule(
			"MD060",
			"table-format",
			"Table cells should be padded so pipes align by display width",
			[]string{"table"},
			true,
		),
	}
}

// isFormatKind reports whether a violation kind belongs to this rule.
// Structural and style kinds belong to the other table rules.
func isFormatKind(k tables.ViolationKind) bool {
	switch k {
	case tables.MissingSpaceLeft, tables.MissingSpaceRight,
		tables.ExtraSpaceLeft, tables.ExtraSpaceRight,
		tables.MisalignedPipe, tables.MalformedSeparator:
		return true
	}
	return false
}

// Apply reports format violations and attaches the block replacement
// edit. Blocks that differ from canonical form without any per-cell
// finding (trailing line whitespace, pipe style drift) still get an
// edit, carried by a single block-level diagnostic.
func (r *TableFormatRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	blocks, err := ctx.Blocks()
	if err != nil {
		return nil, err
	}

	var diags []lint.Diagnostic
	for _, b := range blocks {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		var blockDiags []lint.Diagnostic
		for _, v := range ctx.Violations(b) {
			if !isFormatKind(v.Kind) {
				continue
			}
			blockDiags = append(blockDiags,
				lint.NewDiagnosticAt(r.ID(), ctx.File.Path, v.Line, 0,
					fmt.Sprintf("%s: %s", v.Kind, v.Message)).
					WithSuggestion("run with --fix to realign the table").
					Build())
		}

		rep, changed := tables.Fix(b)
		if changed {
			if edit, ok := blockEdit(ctx.File, rep); ok {
				if len(blockDiags) == 0 {
					blockDiags = append(blockDiags,
						lint.NewDiagnosticAt(r.ID(), ctx.File.Path, b.StartLine, 0,
							"table layout is not canonical").
							WithSuggestion("run with --fix to realign the table").
							Build())
				}
				blockDiags[0].FixEdits = append(blockDiags[0].FixEdits, edit)
			}
		}
		diags = append(diags, blockDiags...)
	}
	return diags, nil
}

// blockEdit converts a block replacement into a byte-offset edit.
func blockEdit(file *lint.FileSnapshot, rep tables.Replacement) (fix.TextEdit, bool) {
	start, end, ok := file.LineRangeOffsets(rep.StartLine, rep.EndLine)
	if !ok {
		return fix.TextEdit{}, false
	}
	return fix.TextEdit{StartOffset: start, EndOffset: end, NewText: rep.Text}, true
}

// TableColumnCountRule reports data rows whose cell count differs from
// the header. Never auto-fixed: inventing or discarding cells would
// change content.
type TableColumnCountRule struct {
	lint.BaseRule
}

// NewTableColumnCountRule creates the column count rule.
func NewTableColumnCountRule() *TableColumnCountRule {
	return &TableColumnCountRule{
		BaseRule: lint.NewBaseRule(
			"MD056",
			"table-column-count",
			"Table rows should have the same cell count as the header",
			[]string{"table"},
			false,
		),
	}
}

// Apply reports column count mismatches.
func (r *TableColumnCountRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	return kindDiagnostics(ctx, r.ID(), tables.ColumnCountMismatch,
		"add or remove cells to match the header")
}

// TablePipeStyleRule reports rows whose leading/trailing pipe style
// differs from the header row. The format rule's block rewrite
// normalizes style as a side effect, so this rule carries no edit of
// its own.
type TablePipeStyleRule struct {
	lint.BaseRule
}

// NewTablePipeStyleRule creates the pipe style rule.
func NewTablePipeStyleRule() *TablePipeStyleRule {
	return &TablePipeStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD055",
			"table-pipe-style",
			"Table rows should use the header row's pipe style",
			[]string{"table"},
			false,
		),
	}
}

// Apply reports pipe style mismatches.
func (r *TablePipeStyleRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	return kindDiagnostics(ctx, r.ID(), tables.PipeStyleMismatch,
		"match the header row's pipe style")
}

// kindDiagnostics collects violations of a single kind across all
// blocks in the file.
func kindDiagnostics(ctx *lint.RuleContext, ruleID string, kind tables.ViolationKind, suggestion string) ([]lint.Diagnostic, error) {
	blocks, err := ctx.Blocks()
	if err != nil {
		return nil, err
	}

	var diags []lint.Diagnostic
	for _, b := range blocks {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		for _, v := range ctx.Violations(b) {
			if v.Kind != kind {
				continue
			}
			diags = append(diags,
				lint.NewDiagnosticAt(ruleID, ctx.File.Path, v.Line, 0, v.Message).
					WithSuggestion(suggestion).
					Build())
		}
	}
	return diags, nil
}
