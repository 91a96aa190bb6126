package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// ErrCommentDropped is returned when a lowering did not print a comment.
var ErrCommentDropped = errors.New("comment would be dropped")

// Placement is where a comment prints relative to the token it is
// attached to.
type Placement uint8

const (
	// PlacementTrailing comments follow their token on the same line.
	PlacementTrailing Placement = iota
	// PlacementLeading comments precede their token.
	PlacementLeading
	// PlacementDangling comments precede a closing delimiter or the end of
	// the file and print after the last element of the enclosing list.
	PlacementDangling
)

// Comment is a comment attached to a token.
type Comment struct {
	Text      string
	Kind      syntax.TriviaKind
	Range     text.Range
	Placement Placement
	// LinesBefore counts the line breaks between the previous token or
	// comment and this comment.
	LinesBefore int
	// LinesAfter counts the line breaks between this comment and the next
	// comment or token.
	LinesAfter int
}

// IsLine reports whether c runs to the end of the line.
func (c Comment) IsLine() bool {
	return c.Kind == syntax.TriviaSingleLineComment
}

type tokenKey struct {
	start int
	kind  syntax.Kind
}

func keyOf(tok *syntax.Token) tokenKey {
	return tokenKey{start: tok.TextRange().Start, kind: tok.Kind()}
}

// CommentMap attaches every comment of a tree to exactly one token.
//
// A comment on the same line after a token trails that token, unless the
// token is a comma followed by more on that line. Any other comment leads
// the next token, except before a closing delimiter where it
// dangles after the preceding element. Lowerings take comments as they
// print them so that Check can prove none was lost.
type CommentMap struct {
	leading  map[tokenKey][]Comment
	trailing map[tokenKey][]Comment
	taken    map[text.Range]bool
	total    int
}

// closingKinds end lists; comments before them have nothing to lead.
//
//nolint:gochecknoglobals // Static kind set
var closingKinds = syntax.KindSetOf(syntax.RBrace, syntax.RBrack, syntax.RParen, syntax.EOF)

// BuildComments collects the comments of root.
func BuildComments(root *syntax.Node) *CommentMap {
	m := &CommentMap{
		leading:  make(map[tokenKey][]Comment),
		trailing: make(map[tokenKey][]Comment),
		taken:    make(map[text.Range]bool),
	}
	var toks []*syntax.Token
	for tok := range root.Tokens() {
		toks = append(toks, tok)
	}
	for i, tok := range toks {
		key := keyOf(tok)
		trailing := collect(tok.TrailingTrivia())
		if i+1 < len(toks) && leadsNext(tok, toks[i+1], trailing) {
			next := keyOf(toks[i+1])
			for _, c := range trailing {
				c.Placement = PlacementLeading
				m.leading[next] = append(m.leading[next], c)
				m.total++
			}
			trailing = nil
		}
		for _, c := range trailing {
			c.Placement = PlacementTrailing
			m.trailing[key] = append(m.trailing[key], c)
			m.total++
		}
		placement := PlacementLeading
		if closingKinds.Has(tok.Kind()) {
			placement = PlacementDangling
		}
		for _, c := range collect(tok.LeadingTrivia()) {
			c.Placement = placement
			m.leading[key] = append(m.leading[key], c)
			m.total++
		}
	}
	return m
}

// leadsNext reports whether the comments after a comma belong to the
// element that follows on the same line, as in `a, /* b */ c`.
func leadsNext(tok, next *syntax.Token, comments []Comment) bool {
	if tok.Kind() != syntax.Comma || len(comments) == 0 || closingKinds.Has(next.Kind()) || next.HasLeadingNewline() {
		return false
	}
	for _, c := range comments {
		if c.IsLine() {
			return false
		}
	}
	return true
}

// collect extracts the comments of a trivia run with their surrounding
// line counts.
func collect(trivia []syntax.SyntaxTrivia) []Comment {
	var out []Comment
	lines := 0
	for _, t := range trivia {
		switch {
		case t.Kind == syntax.TriviaNewline:
			lines++
			if len(out) > 0 {
				out[len(out)-1].LinesAfter++
			}
		case t.Kind.IsComment():
			out = append(out, Comment{
				Text:        strings.TrimRight(t.Text, " \t\r"),
				Kind:        t.Kind,
				Range:       text.NewRange(t.Offset, t.End()),
				LinesBefore: lines,
			})
			lines = 0
		}
	}
	return out
}

func (m *CommentMap) take(comments []Comment) []Comment {
	var out []Comment
	for _, c := range comments {
		if m.taken[c.Range] {
			continue
		}
		m.taken[c.Range] = true
		out = append(out, c)
	}
	return out
}

// Leading returns the comments before tok without taking them.
func (m *CommentMap) Leading(tok *syntax.Token) []Comment {
	if m == nil || tok == nil {
		return nil
	}
	return m.leading[keyOf(tok)]
}

// Trailing returns the comments after tok without taking them.
func (m *CommentMap) Trailing(tok *syntax.Token) []Comment {
	if m == nil || tok == nil {
		return nil
	}
	return m.trailing[keyOf(tok)]
}

// TakeLeading returns the comments before tok that were not printed yet
// and marks them printed.
func (m *CommentMap) TakeLeading(tok *syntax.Token) []Comment {
	return m.take(m.Leading(tok))
}

// TakeTrailing returns the comments after tok that were not printed yet
// and marks them printed.
func (m *CommentMap) TakeTrailing(tok *syntax.Token) []Comment {
	return m.take(m.Trailing(tok))
}

// TakeNode marks every comment inside n printed, for nodes copied
// verbatim. The leading comments of the first token and the trailing
// comments of the last token are left to the caller.
func (m *CommentMap) TakeNode(n *syntax.Node) {
	first, last := n.FirstToken(), n.LastToken()
	for tok := range n.Tokens() {
		if first == nil || keyOf(tok) != keyOf(first) {
			m.take(m.Leading(tok))
		}
		if last == nil || keyOf(tok) != keyOf(last) {
			m.take(m.Trailing(tok))
		}
	}
}

// HasComments reports whether any token of n carries a comment.
func (m *CommentMap) HasComments(n *syntax.Node) bool {
	for tok := range n.Tokens() {
		if m.TokenHasComments(tok) {
			return true
		}
	}
	return false
}

// TokenHasComments reports whether tok carries a comment.
func (m *CommentMap) TokenHasComments(tok *syntax.Token) bool {
	return len(m.Leading(tok)) > 0 || len(m.Trailing(tok)) > 0
}

// Check returns an error naming the first comment no lowering printed.
func (m *CommentMap) Check() error {
	if m == nil || len(m.taken) == m.total {
		return nil
	}
	for _, group := range []map[tokenKey][]Comment{m.leading, m.trailing} {
		for _, comments := range group {
			for _, c := range comments {
				if !m.taken[c.Range] {
					return fmt.Errorf("%w: %q at %d", ErrCommentDropped, c.Text, c.Range.Start)
				}
			}
		}
	}
	return nil
}

// BlankLineBefore reports whether tok is preceded by an empty line before
// its first leading comment.
func BlankLineBefore(tok *syntax.Token) bool {
	lines := 0
	for _, t := range tok.LeadingTrivia() {
		switch {
		case t.Kind == syntax.TriviaNewline:
			lines++
		case t.Kind.IsComment():
			return lines > 1
		}
	}
	return lines > 1
}

// LeadingComments lowers comments printed before a token.
func LeadingComments(comments []Comment) List {
	var out List
	for _, c := range comments {
		out = append(out, Str(c.Text))
		switch {
		case c.LinesAfter > 1:
			out = append(out, EmptyLine)
		case c.IsLine() || c.LinesAfter > 0:
			out = append(out, HardLine)
		default:
			out = append(out, Space{})
		}
	}
	return out
}

// TrailingComments lowers comments printed after a token. Line comments
// are deferred to the end of the line.
func TrailingComments(comments []Comment) List {
	var out List
	for _, c := range comments {
		if c.IsLine() {
			out = append(out, LineSuffix{Contents: List{Space{}, Str(c.Text)}})
			continue
		}
		out = append(out, Space{}, Str(c.Text))
	}
	return out
}

// DanglingComments lowers comments left before a closing token, each on
// its own line, keeping at most one blank line before each. The caller
// places the result inside the indented body and trims the first line
// break when nothing precedes the comments.
func DanglingComments(comments []Comment) List {
	var out List
	for _, c := range comments {
		switch {
		case c.LinesBefore > 1:
			out = append(out, EmptyLine)
		case c.LinesBefore == 1:
			out = append(out, HardLine)
		default:
			out = append(out, Space{})
		}
		out = append(out, Str(c.Text))
	}
	return out
}

// TrimLeadingSeparator drops a leading line or space from l.
func TrimLeadingSeparator(l List) List {
	if len(l) == 0 {
		return l
	}
	switch l[0].(type) {
	case Line, Space:
		return l[1:]
	}
	return l
}
