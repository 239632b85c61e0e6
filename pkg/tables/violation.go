package tables

// ViolationKind is the closed set of formatting violations the
// validator can report.
type ViolationKind int

const (
	// MissingSpaceLeft: no space between a pipe and the cell content
	// to its right.
	MissingSpaceLeft ViolationKind = iota

	// MissingSpaceRight: no space between cell content and the pipe
	// to its right.
	MissingSpaceRight

	// ExtraSpaceLeft: more leading padding than the column's
	// alignment calls for.
	ExtraSpaceLeft

	// ExtraSpaceRight: more trailing padding than the column's
	// alignment calls for.
	ExtraSpaceRight

	// MisalignedPipe: the pipe closing a cell does not land on the
	// output column shared by the rest of the table.
	MisalignedPipe

	// MalformedSeparator: a delimiter group's dash run or colon
	// placement does not match the column's target width and
	// declared alignment.
	MalformedSeparator

	// ColumnCountMismatch: a data row's written cell count disagrees
	// with the header. Reported, never auto-repaired.
	ColumnCountMismatch

	// PipeStyleMismatch: a row's leading/trailing pipe style differs
	// from the header row's.
	PipeStyleMismatch
)

// String returns a stable identifier for the kind.
func (k ViolationKind) String() string {
	switch k {
	case MissingSpaceLeft:
		return "missing-space-left"
	case MissingSpaceRight:
		return "missing-space-right"
	case ExtraSpaceLeft:
		return "extra-space-left"
	case ExtraSpaceRight:
		return "extra-space-right"
	case MisalignedPipe:
		return "misaligned-pipe"
	case MalformedSeparator:
		return "malformed-separator"
	case ColumnCountMismatch:
		return "column-count-mismatch"
	case PipeStyleMismatch:
		return "pipe-style-mismatch"
	default:
		return "unknown"
	}
}

// Row index sentinels used by Violation.Row.
const (
	// HeaderRow identifies the header row in a violation.
	HeaderRow = 0
	// SeparatorRowIndex identifies the separator row in a violation.
	SeparatorRowIndex = -1
)

// Violation is a single formatting problem found in a block.
// Violations are plain data; rendering them is the caller's concern.
type Violation struct {
	// Kind identifies the rule that was broken.
	Kind ViolationKind

	// Row is the row within the block: 0 for the header, -1 for the
	// separator, 1..n for data rows.
	Row int

	// Column is the 1-based column the violation applies to, or 0
	// when it concerns the whole row.
	Column int

	// Line is the absolute 1-indexed document line.
	Line int

	// Message is a human-readable description.
	Message string
}
