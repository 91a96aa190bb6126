package syntax

import (
	"hash/maphash"
	"strings"
)

// GreenElement is an immutable, position-independent tree element.
// A green tree can be shared between many red trees and between files.
type GreenElement interface {
	Kind() Kind
	TextLen() int
	writeTo(sb *strings.Builder)
	hashValue() uint64
}

// GreenToken is a token with its leading and trailing trivia.
// Text holds the full source slice: leading trivia, token text, trailing trivia.
type GreenToken struct {
	kind     Kind
	text     string
	leading  []TriviaPiece
	trailing []TriviaPiece
	hash     uint64
}

//nolint:gochecknoglobals // Process-wide hash seed shared by all green elements
var hashSeed = maphash.MakeSeed()

// NewGreenToken creates a token. The trivia lengths must fit within text.
func NewGreenToken(kind Kind, text string, leading, trailing []TriviaPiece) *GreenToken {
	tok := &GreenToken{kind: kind, text: text, leading: leading, trailing: trailing}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(kind))
	h.WriteByte(byte(kind >> 8))
	h.WriteString(text)
	for _, p := range leading {
		h.WriteByte(byte(p.Kind))
	}
	h.WriteByte(0xff)
	for _, p := range trailing {
		h.WriteByte(byte(p.Kind))
	}
	tok.hash = h.Sum64()
	return tok
}

// Kind returns the token kind.
func (t *GreenToken) Kind() Kind { return t.kind }

// TextLen returns the full length including trivia.
func (t *GreenToken) TextLen() int { return len(t.text) }

// FullText returns the token text including trivia.
func (t *GreenToken) FullText() string { return t.text }

// Text returns the token text without trivia.
func (t *GreenToken) Text() string {
	return t.text[t.LeadingLen() : len(t.text)-t.TrailingLen()]
}

// LeadingLen returns the byte length of the leading trivia.
func (t *GreenToken) LeadingLen() int { return triviaLen(t.leading) }

// TrailingLen returns the byte length of the trailing trivia.
func (t *GreenToken) TrailingLen() int { return triviaLen(t.trailing) }

// Leading returns the leading trivia pieces.
func (t *GreenToken) Leading() []TriviaPiece { return t.leading }

// Trailing returns the trailing trivia pieces.
func (t *GreenToken) Trailing() []TriviaPiece { return t.trailing }

func (t *GreenToken) writeTo(sb *strings.Builder) { sb.WriteString(t.text) }

func (t *GreenToken) hashValue() uint64 { return t.hash }

func (t *GreenToken) equal(other *GreenToken) bool {
	if t == other {
		return true
	}
	if t.kind != other.kind || t.text != other.text ||
		len(t.leading) != len(other.leading) || len(t.trailing) != len(other.trailing) {
		return false
	}
	for i := range t.leading {
		if t.leading[i] != other.leading[i] {
			return false
		}
	}
	for i := range t.trailing {
		if t.trailing[i] != other.trailing[i] {
			return false
		}
	}
	return true
}

// GreenNode is an interior tree element. A nil child is an empty slot:
// an optional or missing child at a fixed position.
type GreenNode struct {
	kind     Kind
	textLen  int
	children []GreenElement
	hash     uint64
}

// NewGreenNode creates a node from its children. Nil children are kept as empty slots.
func NewGreenNode(kind Kind, children []GreenElement) *GreenNode {
	n := &GreenNode{kind: kind, children: children}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(kind))
	h.WriteByte(byte(kind >> 8))
	var buf [8]byte
	for i, c := range children {
		var v uint64
		if IsEmptySlot(c) {
			children[i] = nil
		} else {
			n.textLen += c.TextLen()
			v = c.hashValue()
		}
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	n.hash = h.Sum64()
	return n
}

// Kind returns the node kind.
func (n *GreenNode) Kind() Kind { return n.kind }

// TextLen returns the length of the node text including all trivia.
func (n *GreenNode) TextLen() int { return n.textLen }

// SlotCount returns the number of child slots, including empty ones.
func (n *GreenNode) SlotCount() int { return len(n.children) }

// Slot returns the child in slot i, or nil if the slot is empty.
func (n *GreenNode) Slot(i int) GreenElement {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Slots returns the children slice. Callers must not modify it.
func (n *GreenNode) Slots() []GreenElement { return n.children }

// Text returns the node text including trivia.
func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(n.textLen)
	n.writeTo(&sb)
	return sb.String()
}

// ReplaceSlot returns a copy of n with slot i replaced.
func (n *GreenNode) ReplaceSlot(i int, child GreenElement) *GreenNode {
	children := make([]GreenElement, len(n.children))
	copy(children, n.children)
	children[i] = child
	return NewGreenNode(n.kind, children)
}

// WithSlots returns a node of the same kind with new children.
func (n *GreenNode) WithSlots(children []GreenElement) *GreenNode {
	return NewGreenNode(n.kind, children)
}

// SpliceSlots returns a copy of n with count slots starting at start
// replaced by insert. List nodes use it to drop or add elements.
func (n *GreenNode) SpliceSlots(start, count int, insert ...GreenElement) *GreenNode {
	children := make([]GreenElement, 0, len(n.children)-count+len(insert))
	children = append(children, n.children[:start]...)
	children = append(children, insert...)
	children = append(children, n.children[start+count:]...)
	return NewGreenNode(n.kind, children)
}

// Equal reports structural equality of two green nodes.
func (n *GreenNode) Equal(other *GreenNode) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil || n.hash != other.hash || n.kind != other.kind ||
		n.textLen != other.textLen || len(n.children) != len(other.children) {
		return false
	}
	for i, c := range n.children {
		switch a := c.(type) {
		case nil:
			if other.children[i] != nil {
				return false
			}
		case *GreenToken:
			b, ok := other.children[i].(*GreenToken)
			if !ok || !a.equal(b) {
				return false
			}
		case *GreenNode:
			b, ok := other.children[i].(*GreenNode)
			if !ok || !a.Equal(b) {
				return false
			}
		}
	}
	return true
}

func (n *GreenNode) writeTo(sb *strings.Builder) {
	for _, c := range n.children {
		if c != nil {
			c.writeTo(sb)
		}
	}
}

func (n *GreenNode) hashValue() uint64 { return n.hash }

// IsEmptySlot reports whether e is an empty slot. It handles typed nil pointers.
func IsEmptySlot(e GreenElement) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *GreenNode:
		return v == nil
	case *GreenToken:
		return v == nil
	default:
		return false
	}
}
