package tables

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEncoding reports input that is not valid UTF-8. It is the
// only hard failure Parse can return; malformed tables are simply not
// emitted as blocks.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// Parse scans document text and returns the pipe-table blocks it
// contains, in document order with exact, non-overlapping line ranges.
// Text between blocks is left for the caller to preserve untouched.
// CRLF terminators are accepted: carriage returns are stripped before
// cell parsing and the document's ending is recorded on each block.
func Parse(content []byte) ([]*Block, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("parse document: %w", ErrInvalidEncoding)
	}

	ending := "\n"
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		if stripped, found := strings.CutSuffix(line, "\r"); found {
			lines[i] = stripped
			ending = "\r\n"
		}
	}
	var blocks []*Block

	for i := 0; i+1 < len(lines); {
		if !isRowLine(lines[i]) {
			i++
			continue
		}

		sep, ok := parseSeparator(lines[i+1], i+2)
		if !ok {
			i++
			continue
		}

		header := parseRow(lines[i], i+1)
		if header.WrittenCells != len(sep.RawCells) {
			// Group count disagrees with the header: not a table.
			// The header line stays ordinary text and scanning
			// resumes at the separator candidate.
			i++
			continue
		}

		block := &Block{
			Header:     header,
			Separator:  sep,
			Alignments: separatorAlignments(sep),
			StartLine:  i + 1,
			LineEnding: ending,
		}

		// Consume data rows until a blank or pipe-free line.
		j := i + 2
		for j < len(lines) && isRowLine(lines[j]) {
			row := parseRow(lines[j], j+1)
			normalizeArity(&row, block.Columns())
			block.Rows = append(block.Rows, row)
			j++
		}

		block.EndLine = j
		block.Raw = strings.Join(lines[i:j], "\n")
		blocks = append(blocks, block)
		i = j
	}

	return blocks, nil
}

// isRowLine reports whether a line can belong to a table: non-blank
// and containing at least one unescaped pipe outside an inline code
// span.
func isRowLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return len(pipePositions(line)) > 0
}

// parseRow splits a header or data line into cells.
func parseRow(line string, lineNum int) Row {
	trimmed := strings.TrimSpace(line)
	fields := splitUnescaped(trimmed)

	row := Row{Line: lineNum}
	row.Leading = strings.HasPrefix(trimmed, "|") && len(fields) > 0 && fields[0] == ""
	if row.Leading {
		fields = fields[1:]
	}
	if len(fields) > 0 && fields[len(fields)-1] == "" && strings.HasSuffix(trimmed, "|") {
		row.Trailing = true
		fields = fields[:len(fields)-1]
	}

	row.Cells = make([]Cell, len(fields))
	for i, f := range fields {
		row.Cells[i] = NewCell(f)
	}
	row.WrittenCells = len(fields)
	return row
}

// normalizeArity pads a short row with empty cells so every row spans
// the full column count. Rows with extra cells keep them: truncation
// would lose content, and keeping them lets the validator report the
// mismatch.
func normalizeArity(row *Row, columns int) {
	for len(row.Cells) < columns {
		row.Cells = append(row.Cells, NewCell(""))
	}
}

// parseSeparator recognizes a delimiter line: pipe-separated groups
// of one or more dashes, each optionally wrapped in colons, with
// nothing else but whitespace.
func parseSeparator(line string, lineNum int) (SeparatorRow, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.ContainsRune(trimmed, '|') || !strings.ContainsRune(trimmed, '-') {
		return SeparatorRow{}, false
	}
	for _, r := range trimmed {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return SeparatorRow{}, false
		}
	}

	fields := strings.Split(trimmed, "|")
	sep := SeparatorRow{Line: lineNum}
	if len(fields) > 0 && strings.TrimSpace(fields[0]) == "" && strings.HasPrefix(trimmed, "|") {
		sep.Leading = true
		fields = fields[1:]
	}
	if len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" && strings.HasSuffix(trimmed, "|") {
		sep.Trailing = true
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 {
		return SeparatorRow{}, false
	}

	for _, f := range fields {
		if !isSeparatorGroup(strings.TrimSpace(f)) {
			return SeparatorRow{}, false
		}
	}
	sep.RawCells = fields
	return sep, true
}

// isSeparatorGroup matches ":?-+:?" with at least one dash.
func isSeparatorGroup(group string) bool {
	group = strings.TrimPrefix(group, ":")
	group = strings.TrimSuffix(group, ":")
	if group == "" {
		return false
	}
	for _, r := range group {
		if r != '-' {
			return false
		}
	}
	return true
}

// separatorAlignments maps each delimiter group to its declared
// alignment: leading colon only is left, trailing only is right, both
// is center, neither is none.
func separatorAlignments(sep SeparatorRow) []Alignment {
	aligns := make([]Alignment, len(sep.RawCells))
	for i, raw := range sep.RawCells {
		group := strings.TrimSpace(raw)
		leading := strings.HasPrefix(group, ":")
		trailing := strings.HasSuffix(group, ":")
		switch {
		case leading && trailing:
			aligns[i] = AlignCenter
		case leading:
			aligns[i] = AlignLeft
		case trailing:
			aligns[i] = AlignRight
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns
}

// splitUnescaped splits a line on pipes that act as cell separators.
// A pipe preceded by an odd number of backslashes is escaped content,
// and pipes inside backtick-delimited inline code spans stay in their
// cell. The HTML entity form &#124; never splits because it contains
// no pipe character at all.
func splitUnescaped(line string) []string {
	if line == "" {
		return nil
	}

	positions := pipePositions(line)
	fields := make([]string, 0, len(positions)+1)
	prev := 0
	for _, pos := range positions {
		fields = append(fields, line[prev:pos])
		prev = pos + 1
	}
	fields = append(fields, line[prev:])
	return fields
}

// pipePositions returns the byte offsets of every pipe in line that
// acts as a separator.
func pipePositions(line string) []int {
	var positions []int
	backslashes := 0

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			backslashes++
			continue
		case '`':
			if end, ok := codeSpanEnd(line, i); ok {
				i = end
				backslashes = 0
				continue
			}
		case '|':
			if backslashes%2 == 0 {
				positions = append(positions, i)
			}
		}
		backslashes = 0
	}
	return positions
}

// codeSpanEnd finds the end of an inline code span opened by the
// backtick run starting at start. Per CommonMark, the span closes at
// the next backtick run of equal length; if none exists the backticks
// are literal and no span is entered. Returns the index of the last
// closing backtick.
func codeSpanEnd(line string, start int) (int, bool) {
	runLen := 0
	for start+runLen < len(line) && line[start+runLen] == '`' {
		runLen++
	}

	i := start + runLen
	for i < len(line) {
		if line[i] != '`' {
			i++
			continue
		}
		closeLen := 0
		for i+closeLen < len(line) && line[i+closeLen] == '`' {
			closeLen++
		}
		if closeLen == runLen {
			return i + closeLen - 1, true
		}
		i += closeLen
	}
	return 0, false
}
