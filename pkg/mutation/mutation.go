// Package mutation applies batches of tree edits to a syntax tree and
// produces a new green root. A batch commits atomically: either every edit
// applies or the original tree is kept and an error is returned.
package mutation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gobiome/pkg/fix"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// Sentinel errors.
var (
	// ErrForeignElement is returned when an edit targets an element that
	// does not belong to the batch root.
	ErrForeignElement = errors.New("element does not belong to the batch root")

	// ErrNotAList is returned when an insertion targets a fixed-slot node.
	ErrNotAList = errors.New("insertion requires a list parent")
)

// OpKind is the kind of a tree edit.
type OpKind uint8

// Edit kinds.
const (
	OpReplace OpKind = iota
	OpInsertBefore
	OpInsertAfter
	OpRemove
)

func (k OpKind) String() string {
	switch k {
	case OpReplace:
		return "replace"
	case OpInsertBefore:
		return "insert-before"
	case OpInsertAfter:
		return "insert-after"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Edit is one pending tree edit.
type Edit struct {
	Op     OpKind
	Target syntax.Element
	// Elements is the replacement or the inserted elements. It is empty for
	// removals.
	Elements []syntax.GreenElement
}

// Range returns the source range the edit rewrites, trivia included.
// Insertions occupy the empty range at their anchor.
func (e Edit) Range() text.Range {
	r := e.Target.Range()
	switch e.Op {
	case OpInsertBefore:
		return text.At(r.Start)
	case OpInsertAfter:
		return text.At(r.End)
	default:
		return r
	}
}

// NewText returns the text the edit writes.
func (e Edit) NewText() string {
	var sb strings.Builder
	for _, el := range e.Elements {
		if !syntax.IsEmptySlot(el) {
			sb.WriteString(greenText(el))
		}
	}
	return sb.String()
}

func greenText(el syntax.GreenElement) string {
	switch g := el.(type) {
	case *syntax.GreenNode:
		return g.Text()
	case *syntax.GreenToken:
		return g.FullText()
	default:
		return ""
	}
}

// Conflict is a pair of overlapping edits.
type Conflict struct {
	First  Edit
	Second Edit
}

// ConflictError lists every pair of overlapping edits in a batch.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		a, b := c.First.Range(), c.Second.Range()
		parts = append(parts, fmt.Sprintf("%s [%d:%d] and %s [%d:%d]",
			c.First.Op, a.Start, a.End, c.Second.Op, b.Start, b.End))
	}
	return "conflicting edits: " + strings.Join(parts, ", ")
}

// Batch collects edits against one tree.
type Batch struct {
	root  *syntax.Node
	edits []Edit
}

// NewBatch starts a batch against the tree of root.
func NewBatch(root *syntax.Node) *Batch {
	return &Batch{root: root.Root()}
}

// Root returns the tree the batch edits.
func (b *Batch) Root() *syntax.Node { return b.root }

// Edits returns the pending edits in the order they were added.
func (b *Batch) Edits() []Edit { return b.edits }

// IsEmpty reports whether the batch has no edits.
func (b *Batch) IsEmpty() bool { return b == nil || len(b.edits) == 0 }

// ReplaceNode replaces old with replacement.
func (b *Batch) ReplaceNode(old *syntax.Node, replacement *syntax.GreenNode) {
	b.edits = append(b.edits, Edit{Op: OpReplace, Target: old, Elements: []syntax.GreenElement{replacement}})
}

// ReplaceToken replaces old with replacement.
func (b *Batch) ReplaceToken(old *syntax.Token, replacement *syntax.GreenToken) {
	b.edits = append(b.edits, Edit{Op: OpReplace, Target: old, Elements: []syntax.GreenElement{replacement}})
}

// ReplaceElement replaces a node or token with any green element.
func (b *Batch) ReplaceElement(old syntax.Element, replacement syntax.GreenElement) {
	b.edits = append(b.edits, Edit{Op: OpReplace, Target: old, Elements: []syntax.GreenElement{replacement}})
}

// InsertBefore inserts elements before anchor in its parent list.
func (b *Batch) InsertBefore(anchor syntax.Element, elements ...syntax.GreenElement) {
	b.edits = append(b.edits, Edit{Op: OpInsertBefore, Target: anchor, Elements: elements})
}

// InsertAfter inserts elements after anchor in its parent list.
func (b *Batch) InsertAfter(anchor syntax.Element, elements ...syntax.GreenElement) {
	b.edits = append(b.edits, Edit{Op: OpInsertAfter, Target: anchor, Elements: elements})
}

// Remove removes a node. List elements are spliced out; a node in a fixed
// slot leaves the slot empty.
func (b *Batch) Remove(n *syntax.Node) {
	b.edits = append(b.edits, Edit{Op: OpRemove, Target: n})
}

// RemoveToken removes a token, such as a list separator.
func (b *Batch) RemoveToken(t *syntax.Token) {
	b.edits = append(b.edits, Edit{Op: OpRemove, Target: t})
}

// Merge appends the edits of other. Both batches must edit the same tree.
func (b *Batch) Merge(other *Batch) {
	if other != nil {
		b.edits = append(b.edits, other.edits...)
	}
}

// sorted returns the edits ordered by range start, then end.
func (b *Batch) sorted() []Edit {
	edits := slices.Clone(b.edits)
	slices.SortStableFunc(edits, func(x, y Edit) int {
		rx, ry := x.Range(), y.Range()
		if rx.Start != ry.Start {
			return rx.Start - ry.Start
		}
		return rx.End - ry.End
	})
	return edits
}

// Conflicts returns the overlapping pairs among the pending edits.
// Two edits overlap when their ranges intersect or when one targets an
// ancestor of the other's target. Insertions conflict only with an edit
// that rewrites a range strictly around the insertion point.
func (b *Batch) Conflicts() []Conflict {
	edits := b.sorted()
	var out []Conflict
	for i := range edits {
		ri := edits[i].Range()
		for j := i + 1; j < len(edits); j++ {
			rj := edits[j].Range()
			if rj.Start > ri.End || (rj.Start == ri.End && !ri.IsEmpty()) {
				break
			}
			if overlaps(edits[i], edits[j]) {
				out = append(out, Conflict{First: edits[i], Second: edits[j]})
			}
		}
	}
	return out
}

func overlaps(a, b Edit) bool {
	ra, rb := a.Range(), b.Range()
	if a.Op == OpInsertBefore || a.Op == OpInsertAfter || b.Op == OpInsertBefore || b.Op == OpInsertAfter {
		return ra.Intersects(rb) || rb.Intersects(ra)
	}
	if ra.Intersects(rb) {
		return true
	}
	// Empty elements share offsets with their neighbours; compare identity.
	return sameElement(a.Target, b.Target)
}

func sameElement(a, b syntax.Element) bool {
	if a.Range() != b.Range() || a.Parent() == nil || b.Parent() == nil {
		return false
	}
	return a.Index() == b.Index() && a.Parent().Same(b.Parent())
}

// ToTextEdits converts the batch into text edits against the source of the
// root, for reporting and diffs.
func (b *Batch) ToTextEdits() []fix.TextEdit {
	edits := b.sorted()
	out := make([]fix.TextEdit, 0, len(edits))
	for _, e := range edits {
		r := e.Range()
		out = append(out, fix.TextEdit{StartOffset: r.Start, EndOffset: r.End, NewText: e.NewText()})
	}
	return out
}
