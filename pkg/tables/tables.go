// Package tables parses, validates, and reformats pipe-delimited
// Markdown tables.
//
// The package is pure: it performs no I/O, holds no shared state, and
// every operation is a total function from input text to structured
// results. Parse extracts table blocks from document text, Validate
// reports formatting violations for a block, and Fix produces the
// canonical replacement text for a block's line range. Callers splice
// replacements back into the document; text outside a block's line
// range is never touched.
package tables

import (
	"strings"

	"github.com/yaklabco/gomdtables/pkg/textwidth"
)

// Alignment of a table column, declared by the separator row's colons.
type Alignment int

const (
	// AlignNone leaves the column with default (left) rendering.
	AlignNone Alignment = iota
	// AlignLeft is declared by a leading colon (":---").
	AlignLeft
	// AlignRight is declared by a trailing colon ("---:").
	AlignRight
	// AlignCenter is declared by colons on both sides (":---:").
	AlignCenter
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "none"
	}
}

// Cell is a single table cell. Cells are immutable once constructed;
// the fixer emits new text rather than mutating cells.
type Cell struct {
	raw     string
	content string
	width   int
}

// NewCell constructs a cell from the raw text found between pipes.
// The display width of the trimmed content is computed once and cached.
func NewCell(raw string) Cell {
	content := strings.TrimSpace(raw)
	return Cell{
		raw:     raw,
		content: content,
		width:   textwidth.Width(content),
	}
}

// Raw returns the cell text as written, including surrounding spaces.
func (c Cell) Raw() string { return c.raw }

// Content returns the trimmed cell text.
func (c Cell) Content() string { return c.content }

// Width returns the display width of the trimmed content.
func (c Cell) Width() int { return c.width }

// IsEmpty reports whether the trimmed content is empty.
func (c Cell) IsEmpty() bool { return c.content == "" }

// Row is an ordered sequence of cells from a header or data line.
type Row struct {
	// Cells holds the row's cells, padded with empty cells when the
	// line had fewer cells than the header.
	Cells []Cell

	// Line is the absolute 1-indexed document line the row came from.
	Line int

	// WrittenCells is the cell count before arity normalization. A
	// value differing from the block's column count is a structural
	// violation; the cells themselves are never dropped or invented
	// beyond empty padding.
	WrittenCells int

	// Leading and Trailing record the pipe style the line used.
	Leading  bool
	Trailing bool
}

// SeparatorRow is the parsed delimiter line between header and data.
// It is not stored as a data row: its cells carry no content, only the
// per-column alignment declaration and the raw text for validation.
type SeparatorRow struct {
	// RawCells holds the raw text of each delimiter group.
	RawCells []string

	// Line is the absolute 1-indexed document line.
	Line int

	Leading  bool
	Trailing bool
}

// Block is a contiguous pipe table: header, separator, and zero or
// more data rows. Constructed once by Parse, read by Validate, and
// consumed by Fix; never mutated.
type Block struct {
	// Header is the column header row.
	Header Row

	// Separator is the parsed delimiter row.
	Separator SeparatorRow

	// Alignments has one entry per column, derived from Separator.
	Alignments []Alignment

	// Rows holds the data rows in document order. A table with zero
	// data rows is valid.
	Rows []Row

	// StartLine and EndLine are the 1-indexed inclusive document line
	// range the block occupies, exact and exclusive of surrounding
	// blank lines.
	StartLine int
	EndLine   int

	// Raw is the block's original text with lines joined by "\n"
	// regardless of the source terminator, used for exact no-op
	// detection when fixing.
	Raw string

	// LineEnding is the source document's terminator, "\n" or "\r\n".
	// Fix restores it in replacement text so fixing a CRLF document
	// never converts its line endings.
	LineEnding string
}

// Columns returns the number of columns, fixed by the header.
func (b *Block) Columns() int { return len(b.Alignments) }

// TargetWidths returns the display width each column's content area
// must occupy: the maximum display width of any trimmed cell in the
// column across header and data rows, floored at the minimum
// separator dash count of 3. Cells beyond the header's column count
// do not contribute.
func (b *Block) TargetWidths() []int {
	widths := make([]int, b.Columns())
	for col := range widths {
		widths[col] = minColumnWidth
		if col < len(b.Header.Cells) && b.Header.Cells[col].Width() > widths[col] {
			widths[col] = b.Header.Cells[col].Width()
		}
	}
	for _, row := range b.Rows {
		for col := 0; col < b.Columns() && col < len(row.Cells); col++ {
			if row.Cells[col].Width() > widths[col] {
				widths[col] = row.Cells[col].Width()
			}
		}
	}
	return widths
}

// minColumnWidth matches the conventional minimum of three separator
// dashes.
const minColumnWidth = 3
