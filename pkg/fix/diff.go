package fix

import (
	"fmt"
	"strings"
)

// UnifiedDiff renders a unified diff between two contents with the
// given context line count. Returns "" when the contents are equal.
func UnifiedDiff(fromName, toName string, before, after []byte, context int) string {
	if string(before) == string(after) {
		return ""
	}
	if context < 0 {
		context = 0
	}

	a := splitLines(string(before))
	b := splitLines(string(after))
	ops := diffLines(a, b)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", fromName)
	fmt.Fprintf(&sb, "+++ %s\n", toName)

	for _, h := range hunks(ops, context) {
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n",
			hunkRange(h.aStart, h.aLen), hunkRange(h.bStart, h.bLen))
		for _, op := range h.ops {
			switch op.kind {
			case opEqual:
				sb.WriteString(" " + op.line + "\n")
			case opDelete:
				sb.WriteString("-" + op.line + "\n")
			case opInsert:
				sb.WriteString("+" + op.line + "\n")
			}
		}
	}
	return sb.String()
}

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type diffOp struct {
	kind opKind
	line string
}

// diffLines computes a line-level edit script via the classic LCS
// table. Table files are small; quadratic space is acceptable here.
func diffLines(a, b []string) []diffOp {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			ops = append(ops, diffOp{opEqual, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, diffOp{opDelete, a[i]})
			i++
		default:
			ops = append(ops, diffOp{opInsert, b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, diffOp{opDelete, a[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, diffOp{opInsert, b[j]})
	}
	return ops
}

type hunk struct {
	aStart, aLen int
	bStart, bLen int
	ops          []diffOp
}

// hunks groups an edit script into unified-diff hunks, keeping at most
// context equal lines on either side of each change run.
func hunks(ops []diffOp, context int) []hunk {
	var out []hunk
	aLine, bLine := 1, 1

	i := 0
	for i < len(ops) {
		if ops[i].kind == opEqual {
			aLine++
			bLine++
			i++
			continue
		}

		// Back up into the preceding equal run for leading context.
		start := i
		lead := 0
		for start > 0 && lead < context && ops[start-1].kind == opEqual {
			start--
			lead++
		}

		h := hunk{aStart: aLine - lead, bStart: bLine - lead}

		// Extend through changes, folding in equal runs short enough
		// to bridge to the next change.
		end := i
		for end < len(ops) {
			if ops[end].kind != opEqual {
				end++
				continue
			}
			run := 0
			for end+run < len(ops) && ops[end+run].kind == opEqual {
				run++
			}
			if end+run < len(ops) && run <= 2*context {
				end += run
				continue
			}
			if run > context {
				run = context
			}
			end += run
			break
		}

		h.ops = ops[start:end]
		for _, op := range h.ops {
			switch op.kind {
			case opEqual:
				h.aLen++
				h.bLen++
			case opDelete:
				h.aLen++
			case opInsert:
				h.bLen++
			}
		}
		out = append(out, h)

		for ; i < end; i++ {
			switch ops[i].kind {
			case opEqual:
				aLine++
				bLine++
			case opDelete:
				aLine++
			case opInsert:
				bLine++
			}
		}
	}
	return out
}

func hunkRange(start, length int) string {
	if length == 1 {
		return fmt.Sprintf("%d", start)
	}
	if length == 0 && start > 0 {
		start--
	}
	return fmt.Sprintf("%d,%d", start, length)
}

// splitLines splits content into lines without their terminators. A
// trailing newline does not produce an extra empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
