package mutation

import "github.com/yaklabco/gobiome/pkg/syntax"

// Token builds a green token without trivia.
func Token(kind syntax.Kind, text string) *syntax.GreenToken {
	return syntax.NewGreenToken(kind, text, nil, nil)
}

// Node builds a green node.
func Node(kind syntax.Kind, children ...syntax.GreenElement) *syntax.GreenNode {
	return syntax.NewGreenNode(kind, children)
}

func splitTrivia(tok *syntax.GreenToken) (string, string) {
	full := tok.FullText()
	return full[:tok.LeadingLen()], full[len(full)-tok.TrailingLen():]
}

// Retext returns tok with its lexeme replaced and its trivia kept.
func Retext(tok *syntax.GreenToken, lexeme string) *syntax.GreenToken {
	lead, trail := splitTrivia(tok)
	return syntax.NewGreenToken(tok.Kind(), lead+lexeme+trail, tok.Leading(), tok.Trailing())
}

// WithLeadingTrivia returns tok carrying the leading trivia of donor.
func WithLeadingTrivia(tok, donor *syntax.GreenToken) *syntax.GreenToken {
	lead, _ := splitTrivia(donor)
	_, trail := splitTrivia(tok)
	return syntax.NewGreenToken(tok.Kind(), lead+tok.Text()+trail, donor.Leading(), tok.Trailing())
}

// WithTrailingTrivia returns tok carrying the trailing trivia of donor.
func WithTrailingTrivia(tok, donor *syntax.GreenToken) *syntax.GreenToken {
	lead, _ := splitTrivia(tok)
	_, trail := splitTrivia(donor)
	return syntax.NewGreenToken(tok.Kind(), lead+tok.Text()+trail, tok.Leading(), donor.Trailing())
}

// StripTrivia returns tok without leading and trailing trivia.
func StripTrivia(tok *syntax.GreenToken) *syntax.GreenToken {
	return syntax.NewGreenToken(tok.Kind(), tok.Text(), nil, nil)
}

// FirstToken returns the first token of a green subtree, or nil.
func FirstToken(el syntax.GreenElement) *syntax.GreenToken {
	switch g := el.(type) {
	case *syntax.GreenToken:
		return g
	case *syntax.GreenNode:
		if g == nil {
			return nil
		}
		for _, c := range g.Slots() {
			if syntax.IsEmptySlot(c) {
				continue
			}
			if tok := FirstToken(c); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// LastToken returns the last token of a green subtree, or nil.
func LastToken(el syntax.GreenElement) *syntax.GreenToken {
	switch g := el.(type) {
	case *syntax.GreenToken:
		return g
	case *syntax.GreenNode:
		if g == nil {
			return nil
		}
		slots := g.Slots()
		for i := len(slots) - 1; i >= 0; i-- {
			if syntax.IsEmptySlot(slots[i]) {
				continue
			}
			if tok := LastToken(slots[i]); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// MapFirstToken rebuilds n with fn applied to its first token.
func MapFirstToken(n *syntax.GreenNode, fn func(*syntax.GreenToken) *syntax.GreenToken) *syntax.GreenNode {
	out, _ := mapEdgeToken(n, fn, false)
	return out
}

// MapLastToken rebuilds n with fn applied to its last token.
func MapLastToken(n *syntax.GreenNode, fn func(*syntax.GreenToken) *syntax.GreenToken) *syntax.GreenNode {
	out, _ := mapEdgeToken(n, fn, true)
	return out
}

func mapEdgeToken(n *syntax.GreenNode, fn func(*syntax.GreenToken) *syntax.GreenToken, last bool) (*syntax.GreenNode, bool) {
	slots := n.Slots()
	for k := range slots {
		i := k
		if last {
			i = len(slots) - 1 - k
		}
		switch c := slots[i].(type) {
		case *syntax.GreenToken:
			if c == nil {
				continue
			}
			return n.ReplaceSlot(i, fn(c)), true
		case *syntax.GreenNode:
			if c == nil {
				continue
			}
			if updated, ok := mapEdgeToken(c, fn, last); ok {
				return n.ReplaceSlot(i, updated), true
			}
		}
	}
	return n, false
}

// MapEdge applies fn to the first token of el, or to its last token when
// last is set. el may be a node or a token.
func MapEdge(el syntax.GreenElement, fn func(*syntax.GreenToken) *syntax.GreenToken, last bool) syntax.GreenElement {
	switch g := el.(type) {
	case *syntax.GreenToken:
		return fn(g)
	case *syntax.GreenNode:
		out, _ := mapEdgeToken(g, fn, last)
		return out
	default:
		return el
	}
}
