// Package fix provides byte-offset text edits and their application,
// plus unified diff generation for dry-run output.
package fix

// TextEdit replaces the byte range [StartOffset, EndOffset) with
// NewText. An insertion has StartOffset == EndOffset; a deletion has
// empty NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// EditBuilder accumulates edits for a single file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit replacing bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// Insert adds an edit inserting text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit removing bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
