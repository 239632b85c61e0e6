package tables

import (
	"strings"

	"github.com/yaklabco/gomdtables/pkg/textwidth"
)

// Replacement is the fixer's output for one block: the exact line
// range to splice and the text to put there.
type Replacement struct {
	// StartLine and EndLine are 1-indexed inclusive document lines.
	StartLine int
	EndLine   int

	// Text is the canonical block text, without a trailing newline.
	Text string
}

// Fix renders the canonical form of a block and reports whether it
// differs from the original. Blocks already in canonical form return
// ok=false: no-op detection is byte-exact, not approximate.
//
// Fix never alters cell content, row order, or column order. Rows
// whose written cell count disagrees with the header keep their cells
// as-is and only have their padding repaired.
func Fix(b *Block) (Replacement, bool) {
	text := Render(b)
	if text == b.Raw {
		return Replacement{}, false
	}
	if b.LineEnding == "\r\n" {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return Replacement{StartLine: b.StartLine, EndLine: b.EndLine, Text: text}, true
}

// Render returns the canonical text for a block: every cell padded by
// display width to the column's target, one space between pipes and
// content, the separator sized to match, and the header row's pipe
// style applied to every line. Render is idempotent: parsing its
// output and rendering again yields the same bytes.
func Render(b *Block) string {
	targets := b.TargetWidths()
	leading, trailing := b.Header.Leading, b.Header.Trailing

	lines := make([]string, 0, 2+len(b.Rows))
	lines = append(lines, renderRowLine(b.Header, b.Alignments, targets, leading, trailing))
	lines = append(lines, renderSeparatorLine(b.Alignments, targets, leading, trailing))
	for _, row := range b.Rows {
		lines = append(lines, renderRowLine(row, b.Alignments, targets, leading, trailing))
	}
	return strings.Join(lines, "\n")
}

// renderRowLine renders a header or data row. Cells beyond the column
// count are structural violations: they are kept verbatim with
// minimal single-space padding rather than resolved.
func renderRowLine(row Row, aligns []Alignment, targets []int, leading, trailing bool) string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		if i < len(targets) {
			cells[i] = padCell(c.Content(), aligns[i], targets[i])
		} else {
			cells[i] = c.Content()
		}
	}
	return joinCells(cells, leading, trailing)
}

// renderSeparatorLine renders the delimiter row. Colon markers take
// the place of dashes so the printed group width still equals the
// column target.
func renderSeparatorLine(aligns []Alignment, targets []int, leading, trailing bool) string {
	cells := make([]string, len(aligns))
	for i, a := range aligns {
		cells[i] = separatorCell(a, targets[i])
	}
	return joinCells(cells, leading, trailing)
}

func separatorCell(a Alignment, target int) string {
	switch a {
	case AlignLeft:
		return ":" + strings.Repeat("-", target-1)
	case AlignRight:
		return strings.Repeat("-", target-1) + ":"
	case AlignCenter:
		return ":" + strings.Repeat("-", target-2) + ":"
	default:
		return strings.Repeat("-", target)
	}
}

// padCell pads trimmed content to the target display width. Padding
// counts terminal columns via textwidth, never characters or bytes.
func padCell(content string, a Alignment, target int) string {
	gap := target - textwidth.Width(content)
	if gap < 0 {
		gap = 0
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", gap) + content
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + content + strings.Repeat(" ", gap-left)
	default:
		return content + strings.Repeat(" ", gap)
	}
}

// joinCells assembles a line from rendered cells, applying the pipe
// style. Lines without a trailing pipe do not carry trailing padding.
func joinCells(cells []string, leading, trailing bool) string {
	line := strings.Join(cells, " | ")
	if leading {
		line = "| " + line
	}
	if trailing {
		line += " |"
	} else {
		line = strings.TrimRight(line, " ")
	}
	return line
}
