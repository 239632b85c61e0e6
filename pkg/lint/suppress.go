package lint

import "regexp"

// Inline markdownlint-style comments toggle rules over line ranges:
// "<!-- markdownlint-disable MD060 -->" suppresses the listed rules
// from the comment's own line onward, and a matching enable comment
// re-enables them starting at its own line. Disables are cumulative
// across comments. Only the first comment on a line is read, and a
// comment naming no rules toggles nothing.
var (
	htmlCommentPattern = regexp.MustCompile(`<!--(.*?)-->`)
	directivePattern   = regexp.MustCompile(`\bmarkdownlint-(disable|enable)(-[a-z-]+)?\b`)
	ruleIDPattern      = regexp.MustCompile(`\bMD\d{2,}\b`)
)

// lineSpan is an inclusive range of disabled lines. End is 0 while
// the disable comment has no matching enable.
type lineSpan struct {
	Start int
	End   int
}

// Suppressions records which rules are disabled on which lines of a
// file, built once per file from its inline comments.
type Suppressions struct {
	spans map[string][]lineSpan
}

// ParseSuppressions scans a file's lines for markdownlint disable and
// enable comments.
func ParseSuppressions(file *FileSnapshot) *Suppressions {
	s := &Suppressions{spans: make(map[string][]lineSpan)}
	open := make(map[string]int)

	for line := 1; line <= file.LineCount(); line++ {
		comment := htmlCommentPattern.FindSubmatch(file.LineContent(line))
		if comment == nil {
			continue
		}
		directive := directivePattern.FindSubmatch(comment[1])
		if directive == nil || len(directive[2]) != 0 {
			continue
		}

		ids := ruleIDPattern.FindAll(comment[1], -1)
		switch string(directive[1]) {
		case "disable":
			for _, id := range ids {
				ruleID := string(id)
				if _, already := open[ruleID]; already {
					continue
				}
				s.spans[ruleID] = append(s.spans[ruleID], lineSpan{Start: line})
				open[ruleID] = len(s.spans[ruleID]) - 1
			}
		case "enable":
			for _, id := range ids {
				ruleID := string(id)
				idx, ok := open[ruleID]
				if !ok {
					continue
				}
				s.spans[ruleID][idx].End = line - 1
				delete(open, ruleID)
			}
		}
	}
	return s
}

// Disabled reports whether the rule is suppressed at the given 1-based
// line.
func (s *Suppressions) Disabled(ruleID string, line int) bool {
	for _, sp := range s.spans[ruleID] {
		if line < sp.Start {
			continue
		}
		if sp.End == 0 || line <= sp.End {
			return true
		}
	}
	return false
}

// Empty reports whether the file contains no disable comments.
func (s *Suppressions) Empty() bool {
	return len(s.spans) == 0
}
