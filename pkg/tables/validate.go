package tables

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdtables/pkg/textwidth"
)

// Validate inspects a block and returns its formatting violations in
// document order: header line first, then the separator, then each
// data row. Within a row, checks run in a fixed order (pipe style,
// cell count, then per-cell checks left to right), so output ordering
// is stable. The checks are independent; one row can trigger several.
//
// A block rendered by Fix revalidates clean, except that rows with a
// written cell count differing from the header keep reporting their
// mismatch: the fixer repairs padding only and never resolves counts.
func Validate(b *Block) []Violation {
	targets := b.TargetWidths()

	var out []Violation
	out = append(out, validateRow(b, b.Header, HeaderRow, targets)...)
	out = append(out, validateSeparator(b, targets)...)
	for i, row := range b.Rows {
		out = append(out, validateRow(b, row, i+1, targets)...)
	}
	return out
}

// validateRow checks one header or data row. Cell checks compare the
// row as written against its canonical rendering under the row's own
// pipe style; style drift itself is reported once, separately, so a
// row with the wrong style does not drown in cascading cell noise.
func validateRow(b *Block, row Row, idx int, targets []int) []Violation {
	var out []Violation

	if idx != HeaderRow && (row.Leading != b.Header.Leading || row.Trailing != b.Header.Trailing) {
		out = append(out, Violation{
			Kind: PipeStyleMismatch,
			Row:  idx,
			Line: row.Line,
			Message: fmt.Sprintf("row pipe style %q does not match header style %q",
				pipeStyleName(row.Leading, row.Trailing),
				pipeStyleName(b.Header.Leading, b.Header.Trailing)),
		})
	}

	if idx != HeaderRow && row.WrittenCells != b.Columns() {
		out = append(out, Violation{
			Kind: ColumnCountMismatch,
			Row:  idx,
			Line: row.Line,
			Message: fmt.Sprintf("row has %d cells, header has %d columns",
				row.WrittenCells, b.Columns()),
		})
	}

	// Cells appended by arity normalization were never written, so
	// only cells up to WrittenCells get per-cell checks.
	canon := parseRow(renderRowLine(row, b.Alignments, targets, row.Leading, row.Trailing), row.Line)
	for i := 0; i < row.WrittenCells && i < len(canon.Cells); i++ {
		out = append(out, validateCell(row, i, canon.Cells[i], targets, idx)...)
	}
	return out
}

// validateCell compares one cell as written against its canonical
// raw form and classifies the differences.
func validateCell(row Row, i int, canon Cell, targets []int, idx int) []Violation {
	raw := row.Cells[i].Raw()
	canonRaw := canon.Raw()
	if raw == canonRaw {
		return nil
	}

	var out []Violation
	col := i + 1
	content := row.Cells[i].Content()
	last := i == row.WrittenCells-1

	report := func(kind ViolationKind, msg string) {
		out = append(out, Violation{Kind: kind, Row: idx, Column: col, Line: row.Line, Message: msg})
	}

	if content != "" {
		if !strings.HasPrefix(raw, " ") && (i > 0 || row.Leading) {
			report(MissingSpaceLeft, fmt.Sprintf("column %d: no space after pipe", col))
		}
		if !strings.HasSuffix(raw, " ") && (!last || row.Trailing) {
			report(MissingSpaceRight, fmt.Sprintf("column %d: no space before pipe", col))
		}
	}
	if leadingSpaces(raw) > leadingSpaces(canonRaw) {
		report(ExtraSpaceLeft, fmt.Sprintf("column %d: extra leading padding", col))
	}
	if trailingSpaces(raw) > trailingSpaces(canonRaw) {
		report(ExtraSpaceRight, fmt.Sprintf("column %d: extra trailing padding", col))
	}
	if textwidth.Width(raw) != textwidth.Width(canonRaw) {
		want := textwidth.Width(canonRaw)
		if i < len(targets) {
			want = targets[i] + 2
		}
		report(MisalignedPipe, fmt.Sprintf("column %d: cell spans %d display columns, want %d",
			col, textwidth.Width(raw), want))
	}
	return out
}

// validateSeparator checks the delimiter row's pipe style and each
// group's dash run and colon placement against the column target.
func validateSeparator(b *Block, targets []int) []Violation {
	var out []Violation
	sep := b.Separator

	if sep.Leading != b.Header.Leading || sep.Trailing != b.Header.Trailing {
		out = append(out, Violation{
			Kind: PipeStyleMismatch,
			Row:  SeparatorRowIndex,
			Line: sep.Line,
			Message: fmt.Sprintf("separator pipe style %q does not match header style %q",
				pipeStyleName(sep.Leading, sep.Trailing),
				pipeStyleName(b.Header.Leading, b.Header.Trailing)),
		})
	}

	canonLine := renderSeparatorLine(b.Alignments, targets, sep.Leading, sep.Trailing)
	canon, ok := parseSeparator(canonLine, sep.Line)
	if !ok {
		return out
	}
	for i := 0; i < len(sep.RawCells) && i < len(canon.RawCells); i++ {
		if sep.RawCells[i] == canon.RawCells[i] {
			continue
		}
		out = append(out, Violation{
			Kind:   MalformedSeparator,
			Row:    SeparatorRowIndex,
			Column: i + 1,
			Line:   sep.Line,
			Message: fmt.Sprintf("column %d: separator is %q, want %q (%s, width %d)",
				i+1, strings.TrimSpace(sep.RawCells[i]), strings.TrimSpace(canon.RawCells[i]),
				b.Alignments[i], targets[i]),
		})
	}
	return out
}

func pipeStyleName(leading, trailing bool) string {
	switch {
	case leading && trailing:
		return "leading and trailing"
	case leading:
		return "leading only"
	case trailing:
		return "trailing only"
	default:
		return "no leading or trailing"
	}
}

func leadingSpaces(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

func trailingSpaces(s string) int {
	return len(s) - len(strings.TrimRight(s, " "))
}
