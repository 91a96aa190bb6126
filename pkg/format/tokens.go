package format

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/syntax"
)

// TokenPrinter prints tokens together with the comments attached to them.
// Lowerings that need no layout beyond statements and lists use it
// directly.
type TokenPrinter struct {
	Ctx *Context
}

// Tok prints t with its comments. A nil token prints nothing.
func (p TokenPrinter) Tok(t *syntax.Token) Element {
	if t == nil {
		return nil
	}
	return p.TokText(t, t.Text())
}

// TokText prints s in place of t, keeping the comments of t. A missing
// token prints s alone.
func (p TokenPrinter) TokText(t *syntax.Token, s string) Element {
	if t == nil {
		return Str(s)
	}
	return Concat(LeadingComments(p.Ctx.Comments.TakeLeading(t)), Token{Value: s, Source: t.TextRange()},
		TrailingComments(p.Ctx.Comments.TakeTrailing(t)))
}

// CommentsOf prints only the comments of a dropped token.
func (p TokenPrinter) CommentsOf(t *syntax.Token) List {
	if t == nil {
		return nil
	}
	return Concat(LeadingComments(p.Ctx.Comments.TakeLeading(t)), TrailingComments(p.Ctx.Comments.TakeTrailing(t)))
}

// Dangling prints the comments before a closing token.
func (p TokenPrinter) Dangling(close *syntax.Token, afterContent bool) List {
	if close == nil {
		return nil
	}
	out := DanglingComments(p.Ctx.Comments.TakeLeading(close))
	if !afterContent {
		out = TrimLeadingSeparator(out)
	}
	return out
}

// Verbatim copies n from the source with its outer comments.
func (p TokenPrinter) Verbatim(n *syntax.Node) Element {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return nil
	}
	p.Ctx.Comments.TakeNode(n)
	return Concat(LeadingComments(p.Ctx.Comments.TakeLeading(first)), p.Ctx.Verbatim(n),
		TrailingComments(p.Ctx.Comments.TakeTrailing(last)))
}

// Separated reports whether the source has trivia between t and the token
// before it.
func Separated(t *syntax.Token) bool {
	if t == nil {
		return false
	}
	if len(t.LeadingTrivia()) > 0 {
		return true
	}
	prev := t.PrevToken()
	return prev != nil && len(prev.TrailingTrivia()) > 0
}

// QuoteString requotes a string literal with preferred unless that needs
// more escapes than the alternative quote. Escapes of the quote not used
// are dropped.
func QuoteString(raw string, preferred byte) string {
	if len(raw) < 2 {
		return raw
	}
	content := raw[1 : len(raw)-1]
	alternate := byte('\'')
	if preferred == '\'' {
		alternate = '"'
	}
	quote := preferred
	if strings.Count(content, string(preferred)) > strings.Count(content, string(alternate)) {
		quote = alternate
	}

	var b strings.Builder
	b.Grow(len(raw) + 2)
	b.WriteByte(quote)
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c == '\\' && i+1 < len(content) {
			next := content[i+1]
			if (next == '"' || next == '\'') && next != quote {
				b.WriteByte(next)
			} else {
				b.WriteByte(c)
				b.WriteByte(next)
			}
			i++
			continue
		}
		if c == quote {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(quote)
	return b.String()
}
