package lint

// LineInfo records the byte extents of one line. NewlineStart is where
// the line terminator begins (LF or CRLF); for the last line without a
// terminator it equals EndOffset.
type LineInfo struct {
	StartOffset  int
	NewlineStart int
	EndOffset    int
}

// FileSnapshot is an immutable view of one file's content with a line
// index, shared by every rule run against the file.
type FileSnapshot struct {
	Path    string
	Content []byte
	Lines   []LineInfo
}

// NewSnapshot builds a snapshot and its line index. Both LF and CRLF
// terminators are handled.
func NewSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   buildLines(content),
	}
}

func buildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return nil
	}

	var lines []LineInfo
	lineStart := 0
	for idx, ch := range content {
		if ch != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}
	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}
	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineContent returns a 1-based line without its terminator, or nil
// when out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	li := f.Lines[line-1]
	return f.Content[li.StartOffset:li.NewlineStart]
}

// LineRangeOffsets returns the byte range covering the 1-based
// inclusive line span [startLine, endLine], excluding the final line's
// terminator. This is the splice range for block replacements, whose
// text never carries a trailing newline.
func (f *FileSnapshot) LineRangeOffsets(startLine, endLine int) (int, int, bool) {
	if startLine < 1 || endLine < startLine || endLine > len(f.Lines) {
		return 0, 0, false
	}
	return f.Lines[startLine-1].StartOffset, f.Lines[endLine-1].NewlineStart, true
}
