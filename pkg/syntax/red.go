package syntax

import (
	"iter"

	"github.com/yaklabco/gobiome/pkg/text"
)

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	// Range is the full range including trivia.
	Range() text.Range
	// TextRange is the range without leading trivia of the first token
	// and trailing trivia of the last token.
	TextRange() text.Range
	Parent() *Node
	// Index is the slot index in the parent.
	Index() int
	GreenElement() GreenElement
}

// Node is a positioned view over a green node. Red nodes are created on
// demand and hold a reference to their parent, so upward navigation works
// without the green tree knowing about positions.
type Node struct {
	green  *GreenNode
	parent *Node
	offset int
	index  int
}

// NewRoot creates the root red node for a green tree.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green}
}

// Green returns the underlying green node.
func (n *Node) Green() *GreenNode { return n.green }

// GreenElement implements Element.
func (n *Node) GreenElement() GreenElement { return n.green }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.green.kind }

// Parent returns the parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Index returns the slot index within the parent.
func (n *Node) Index() int { return n.index }

// Offset returns the absolute start offset including leading trivia.
func (n *Node) Offset() int { return n.offset }

// Range returns the full range.
func (n *Node) Range() text.Range {
	return text.NewRange(n.offset, n.offset+n.green.textLen)
}

// TextRange returns the range trimmed of outer trivia. A zero-width last
// token, such as an inserted semicolon, does not extend the range over the
// trivia before it.
func (n *Node) TextRange() text.Range {
	first := n.FirstToken()
	if first == nil {
		return text.At(n.offset)
	}
	last := n.lastTextToken()
	if last == nil || last.TextRange().End < first.TextRange().Start {
		last = n.LastToken()
	}
	return text.NewRange(first.TextRange().Start, last.TextRange().End)
}

// Text returns the full text including trivia.
func (n *Node) Text() string { return n.green.Text() }

// TrimmedText returns the text without outer trivia.
func (n *Node) TrimmedText() string {
	full := n.green.Text()
	r := n.TextRange()
	return full[r.Start-n.offset : r.End-n.offset]
}

// Root returns the root of the tree containing n.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Same reports whether n and other denote the same position in the same tree.
func (n *Node) Same(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.green == other.green && n.offset == other.offset && n.Root().green == other.Root().green
}

// SlotCount returns the number of slots, including empty ones.
func (n *Node) SlotCount() int { return len(n.green.children) }

// Slot returns the child in slot i, or nil for an empty slot.
func (n *Node) Slot(i int) Element {
	if i < 0 || i >= len(n.green.children) {
		return nil
	}
	off := n.offset
	for j := range i {
		if c := n.green.children[j]; c != nil {
			off += c.TextLen()
		}
	}
	return n.makeChild(i, off)
}

func (n *Node) makeChild(i, off int) Element {
	switch c := n.green.children[i].(type) {
	case *GreenNode:
		return &Node{green: c, parent: n, offset: off, index: i}
	case *GreenToken:
		return &Token{green: c, parent: n, offset: off, index: i}
	default:
		return nil
	}
}

// Children returns the non-empty children in order.
func (n *Node) Children() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		off := n.offset
		for i, c := range n.green.children {
			if c == nil {
				continue
			}
			if !yield(n.makeChild(i, off)) {
				return
			}
			off += c.TextLen()
		}
	}
}

// ChildNodes returns the child nodes in order.
func (n *Node) ChildNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for el := range n.Children() {
			if child, ok := el.(*Node); ok {
				if !yield(child) {
					return
				}
			}
		}
	}
}

// ChildNodeList returns the child nodes as a slice.
func (n *Node) ChildNodeList() []*Node {
	var out []*Node
	for c := range n.ChildNodes() {
		out = append(out, c)
	}
	return out
}

// FindNode returns the first child node with the given kind.
func (n *Node) FindNode(kinds ...Kind) *Node {
	set := KindSetOf(kinds...)
	for c := range n.ChildNodes() {
		if set.Has(c.Kind()) {
			return c
		}
	}
	return nil
}

// FindToken returns the first direct child token with the given kind.
func (n *Node) FindToken(kinds ...Kind) *Token {
	set := KindSetOf(kinds...)
	for el := range n.Children() {
		if tok, ok := el.(*Token); ok && set.Has(tok.Kind()) {
			return tok
		}
	}
	return nil
}

// NodeAt returns the child node in slot i, or nil if the slot is empty or holds a token.
func (n *Node) NodeAt(i int) *Node {
	child, _ := n.Slot(i).(*Node)
	return child
}

// TokenAt returns the child token in slot i, or nil.
func (n *Node) TokenAt(i int) *Token {
	tok, _ := n.Slot(i).(*Token)
	return tok
}

// FirstToken returns the first token in the subtree.
func (n *Node) FirstToken() *Token {
	for el := range n.Children() {
		switch c := el.(type) {
		case *Token:
			return c
		case *Node:
			if tok := c.FirstToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// lastTextToken returns the last token in the subtree with non-empty text.
func (n *Node) lastTextToken() *Token {
	off := n.offset + n.green.textLen
	for i := len(n.green.children) - 1; i >= 0; i-- {
		c := n.green.children[i]
		if c == nil {
			continue
		}
		off -= c.TextLen()
		switch el := n.makeChild(i, off).(type) {
		case *Token:
			if el.green.Text() != "" {
				return el
			}
		case *Node:
			if tok := el.lastTextToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// LastToken returns the last token in the subtree.
func (n *Node) LastToken() *Token {
	off := n.offset + n.green.textLen
	for i := len(n.green.children) - 1; i >= 0; i-- {
		c := n.green.children[i]
		if c == nil {
			continue
		}
		off -= c.TextLen()
		switch el := n.makeChild(i, off).(type) {
		case *Token:
			return el
		case *Node:
			if tok := el.LastToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// Descendants yields n and every node below it in preorder.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.descend(yield)
	}
}

func (n *Node) descend(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := range n.ChildNodes() {
		if !c.descend(yield) {
			return false
		}
	}
	return true
}

// Tokens yields every token in the subtree in source order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.tokens(yield)
	}
}

func (n *Node) tokens(yield func(*Token) bool) bool {
	for el := range n.Children() {
		switch c := el.(type) {
		case *Token:
			if !yield(c) {
				return false
			}
		case *Node:
			if !c.tokens(yield) {
				return false
			}
		}
	}
	return true
}

// Ancestors yields the parent chain, nearest first, excluding n.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// NextSibling returns the next non-empty sibling element.
func (n *Node) NextSibling() Element { return nextSibling(n.parent, n.index) }

// PrevSibling returns the previous non-empty sibling element.
func (n *Node) PrevSibling() Element { return prevSibling(n.parent, n.index) }

func nextSibling(parent *Node, index int) Element {
	if parent == nil {
		return nil
	}
	for i := index + 1; i < parent.SlotCount(); i++ {
		if el := parent.Slot(i); el != nil {
			return el
		}
	}
	return nil
}

func prevSibling(parent *Node, index int) Element {
	if parent == nil {
		return nil
	}
	for i := index - 1; i >= 0; i-- {
		if el := parent.Slot(i); el != nil {
			return el
		}
	}
	return nil
}

// TokenAtOffset returns the token whose full range contains offset.
// At the end of input it returns the last token.
func (n *Node) TokenAtOffset(offset int) *Token {
	cur := n
	for {
		var next Element
		for el := range cur.Children() {
			r := el.Range()
			if r.Start <= offset && offset < r.End {
				next = el
				break
			}
		}
		switch c := next.(type) {
		case *Token:
			return c
		case *Node:
			cur = c
		default:
			return cur.LastToken()
		}
	}
}

// CoveringNode returns the smallest node whose text range covers r.
func (n *Node) CoveringNode(r text.Range) *Node {
	cur := n
	for {
		var next *Node
		for c := range cur.ChildNodes() {
			if c.TextRange().ContainsRange(r) {
				next = c
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

// Token is a positioned view over a green token.
type Token struct {
	green  *GreenToken
	parent *Node
	offset int
	index  int
}

// Green returns the underlying green token.
func (t *Token) Green() *GreenToken { return t.green }

// GreenElement implements Element.
func (t *Token) GreenElement() GreenElement { return t.green }

// Kind returns the token kind.
func (t *Token) Kind() Kind { return t.green.kind }

// Parent returns the containing node.
func (t *Token) Parent() *Node { return t.parent }

// Index returns the slot index within the parent.
func (t *Token) Index() int { return t.index }

// Range returns the full range including trivia.
func (t *Token) Range() text.Range {
	return text.NewRange(t.offset, t.offset+len(t.green.text))
}

// TextRange returns the range of the token text alone.
func (t *Token) TextRange() text.Range {
	return text.NewRange(t.offset+t.green.LeadingLen(), t.offset+len(t.green.text)-t.green.TrailingLen())
}

// Text returns the token text without trivia.
func (t *Token) Text() string { return t.green.Text() }

// FullText returns the token text including trivia.
func (t *Token) FullText() string { return t.green.text }

// LeadingTrivia returns the resolved leading trivia.
func (t *Token) LeadingTrivia() []SyntaxTrivia {
	return resolveTrivia(t.green.text, t.green.leading, 0, t.offset)
}

// TrailingTrivia returns the resolved trailing trivia.
func (t *Token) TrailingTrivia() []SyntaxTrivia {
	start := len(t.green.text) - t.green.TrailingLen()
	return resolveTrivia(t.green.text, t.green.trailing, start, t.offset)
}

func resolveTrivia(full string, pieces []TriviaPiece, start, base int) []SyntaxTrivia {
	if len(pieces) == 0 {
		return nil
	}
	out := make([]SyntaxTrivia, 0, len(pieces))
	pos := start
	for _, p := range pieces {
		out = append(out, SyntaxTrivia{Kind: p.Kind, Text: full[pos : pos+p.Len], Offset: base + pos})
		pos += p.Len
	}
	return out
}

// HasLeadingComments reports whether any leading trivia is a comment.
func (t *Token) HasLeadingComments() bool {
	for _, p := range t.green.leading {
		if p.Kind.IsComment() {
			return true
		}
	}
	return false
}

// HasTrailingComments reports whether any trailing trivia is a comment.
func (t *Token) HasTrailingComments() bool {
	for _, p := range t.green.trailing {
		if p.Kind.IsComment() {
			return true
		}
	}
	return false
}

// HasLeadingNewline reports whether the leading trivia contains a line break.
func (t *Token) HasLeadingNewline() bool {
	for _, p := range t.green.leading {
		if p.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// NextSibling returns the next non-empty sibling element.
func (t *Token) NextSibling() Element { return nextSibling(t.parent, t.index) }

// PrevSibling returns the previous non-empty sibling element.
func (t *Token) PrevSibling() Element { return prevSibling(t.parent, t.index) }

// NextToken returns the following token in the whole tree.
func (t *Token) NextToken() *Token {
	var el Element = t
	for el.Parent() != nil {
		for sib := nextSibling(el.Parent(), el.Index()); sib != nil; sib = nextSibling(sib.Parent(), sib.Index()) {
			switch s := sib.(type) {
			case *Token:
				return s
			case *Node:
				if tok := s.FirstToken(); tok != nil {
					return tok
				}
			}
		}
		el = el.Parent()
	}
	return nil
}

// PrevToken returns the preceding token in the whole tree.
func (t *Token) PrevToken() *Token {
	var el Element = t
	for el.Parent() != nil {
		for sib := prevSibling(el.Parent(), el.Index()); sib != nil; sib = prevSibling(sib.Parent(), sib.Index()) {
			switch s := sib.(type) {
			case *Token:
				return s
			case *Node:
				if tok := s.LastToken(); tok != nil {
					return tok
				}
			}
		}
		el = el.Parent()
	}
	return nil
}

// Ancestors yields the parent chain, nearest first.
func (t *Token) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := t.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}
