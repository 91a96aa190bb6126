package text

import "sort"

// LineInfo holds offsets for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins.
	// Equals EndOffset for a final line without terminator.
	NewlineStart int

	// EndOffset is the byte index just after the line terminator.
	EndOffset int
}

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if both coordinates are positive.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// LineIndex maps byte offsets to line/column positions.
type LineIndex struct {
	src   string
	lines []LineInfo
}

// NewLineIndex builds the line table for src. LF, CRLF and lone CR terminate lines.
func NewLineIndex(src string) *LineIndex {
	idx := &LineIndex{src: src}
	lineStart := 0

	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			nl := i
			if i > 0 && src[i-1] == '\r' {
				nl = i - 1
			}
			idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: nl, EndOffset: i + 1})
			lineStart = i + 1
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: i, EndOffset: i + 1})
			lineStart = i + 1
		}
	}

	idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: len(src), EndOffset: len(src)})
	return idx
}

// LineCount returns the number of lines. An empty source has one empty line.
func (idx *LineIndex) LineCount() int {
	return len(idx.lines)
}

// Line returns the metadata for a 1-based line number.
func (idx *LineIndex) Line(n int) (LineInfo, bool) {
	if n < 1 || n > len(idx.lines) {
		return LineInfo{}, false
	}
	return idx.lines[n-1], true
}

// Position converts a byte offset to a 1-based line and column.
func (idx *LineIndex) Position(offset int) Position {
	if offset < 0 {
		return Position{}
	}
	if offset > len(idx.src) {
		offset = len(idx.src)
	}

	lineIdx := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})
	if lineIdx >= len(idx.lines) {
		lineIdx = len(idx.lines) - 1
	}

	info := idx.lines[lineIdx]
	return Position{Line: lineIdx + 1, Column: offset - info.StartOffset + 1}
}

// Offset converts a 1-based position back to a byte offset.
func (idx *LineIndex) Offset(pos Position) (int, bool) {
	info, ok := idx.Line(pos.Line)
	if !ok || pos.Column < 1 {
		return 0, false
	}
	off := info.StartOffset + pos.Column - 1
	if off > info.EndOffset {
		return 0, false
	}
	return off, true
}

// LineContent returns the text of a 1-based line without its terminator.
func (idx *LineIndex) LineContent(n int) string {
	info, ok := idx.Line(n)
	if !ok {
		return ""
	}
	return idx.src[info.StartOffset:info.NewlineStart]
}

// HasNewlineBetween reports whether src contains a line terminator in [start, end).
func HasNewlineBetween(src string, start, end int) bool {
	for i := max(0, start); i < end && i < len(src); i++ {
		if src[i] == '\n' || src[i] == '\r' {
			return true
		}
	}
	return false
}
