// Package text provides byte ranges and line indexing over immutable source text.
package text

import "fmt"

// Range is a half-open byte range [Start, End) into a source file.
type Range struct {
	Start int
	End   int
}

// NewRange returns the range [start, end).
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// At returns the empty range positioned at offset.
func At(offset int) Range {
	return Range{Start: offset, End: offset}
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset lies in [Start, End).
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsInclusive returns true if offset lies in [Start, End].
func (r Range) ContainsInclusive(offset int) bool {
	return offset >= r.Start && offset <= r.End
}

// ContainsRange returns true if other lies entirely within r.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Intersects returns true if the two ranges overlap.
// An empty range intersects a range only when strictly inside it.
func (r Range) Intersects(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Cover returns the smallest range containing both r and other.
func (r Range) Cover(other Range) Range {
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Shift returns the range moved by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Slice returns the bytes of src covered by the range, clamped to src.
func (r Range) Slice(src string) string {
	start := max(0, min(r.Start, len(src)))
	end := max(start, min(r.End, len(src)))
	return src[start:end]
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
