// Package fix provides byte-level text edits over a source document, their
// validation and application, and unified diffs of the result. Tree-level
// edits from the mutation package are lowered to these for reporting.
package fix

import "github.com/yaklabco/gobiome/pkg/text"

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Replace returns the edit replacing r with newText.
func Replace(r text.Range, newText string) TextEdit {
	return TextEdit{StartOffset: r.Start, EndOffset: r.End, NewText: newText}
}

// Insert returns the edit inserting newText at offset.
func Insert(offset int, newText string) TextEdit {
	return TextEdit{StartOffset: offset, EndOffset: offset, NewText: newText}
}

// Delete returns the edit removing r.
func Delete(r text.Range) TextEdit {
	return TextEdit{StartOffset: r.Start, EndOffset: r.End}
}

// Range returns the replaced range.
func (e TextEdit) Range() text.Range {
	return text.NewRange(e.StartOffset, e.EndOffset)
}

// Delta returns the change in document length caused by the edit.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.EndOffset - e.StartOffset)
}
