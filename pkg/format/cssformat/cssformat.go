// Package cssformat lowers stylesheets into format IR.
//
// Rules print their selectors one per line and their declarations one per
// line. Selector and value tokens are respaced: whitespace runs collapse to
// a single space, combinators and commas get their conventional spacing.
package cssformat

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func init() {
	format.Register("css", format.LowerFunc(Lower))
}

// Lower lowers a CssRoot tree.
func Lower(ctx *format.Context, root *syntax.Node) (format.Element, error) {
	f := &formatter{TokenPrinter: format.TokenPrinter{Ctx: ctx}}
	rules := f.items(root.FindNode(syntax.CssRuleList))
	dangling := f.Dangling(root.FindToken(syntax.EOF), len(rules) > 0)
	if len(rules) == 0 && len(dangling) == 0 {
		return format.List{}, nil
	}
	doc := format.Concat(rules, dangling, format.HardLine)
	if err := ctx.Comments.Check(); err != nil {
		return nil, err
	}
	return doc, nil
}

type formatter struct {
	format.TokenPrinter
}

// items prints the rules or declarations of a list one per line, keeping
// single blank lines. Stray semicolons are dropped.
func (f *formatter) items(list *syntax.Node) format.List {
	if list == nil {
		return nil
	}
	var out format.List
	var pending format.List
	for el := range list.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			pending = append(pending, f.CommentsOf(c))
		case *syntax.Node:
			if len(out) > 0 {
				if format.BlankLineBefore(c.FirstToken()) {
					out = append(out, format.EmptyLine)
				} else {
					out = append(out, format.HardLine)
				}
			}
			out = append(out, pending, f.item(c))
			pending = nil
		}
	}
	if len(pending) > 0 {
		out = append(out, pending)
	}
	return out
}

func (f *formatter) item(n *syntax.Node) format.Element {
	if f.Ctx.Suppressed(n) {
		return f.Verbatim(n)
	}
	switch n.Kind() {
	case syntax.CssQualifiedRule:
		return format.Concat(f.selectors(n.FindNode(syntax.CssSelectorList)), format.Space{},
			f.block(n.FindNode(syntax.CssDeclarationBlock)))
	case syntax.CssAtRule:
		return f.atRule(n)
	case syntax.CssDeclaration:
		return f.declaration(n)
	}
	return f.Verbatim(n)
}

// selectors prints a selector list with one complex selector per line.
func (f *formatter) selectors(n *syntax.Node) format.Element {
	if n == nil {
		return nil
	}
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			out = append(out, f.Tok(c), format.HardLine)
		case *syntax.Node:
			out = append(out, f.selector(c))
		}
	}
	return out
}

//nolint:gochecknoglobals // Static kind sets
var (
	combinators = syntax.KindSetOf(syntax.Gt, syntax.Plus, syntax.Tilde)
	openers     = syntax.KindSetOf(syntax.LParen, syntax.LBrack)
	closers     = syntax.KindSetOf(syntax.RParen, syntax.RBrack)
)

// selector respaces a complex selector. Combinators outside brackets are
// surrounded by single spaces and attribute selectors lose inner spaces.
func (f *formatter) selector(n *syntax.Node) format.Element {
	var out format.List
	depth, brackets := 0, 0
	var prev *syntax.Token
	for t := range n.Tokens() {
		space := false
		switch {
		case prev == nil:
		case openers.Has(prev.Kind()) || closers.Has(t.Kind()):
		case depth == 0 && (combinators.Has(t.Kind()) || combinators.Has(prev.Kind())):
			space = true
		case brackets > 0:
		default:
			space = format.Separated(t)
		}
		if space {
			out = append(out, format.Space{})
		}
		out = append(out, f.Tok(t))

		switch t.Kind() {
		case syntax.LParen:
			depth++
		case syntax.LBrack:
			depth++
			brackets++
		case syntax.RParen:
			depth = max(depth-1, 0)
		case syntax.RBrack:
			depth = max(depth-1, 0)
			brackets = max(brackets-1, 0)
		}
		prev = t
	}
	return out
}

// block prints `{ items }`. An empty block keeps its braces on separate
// lines.
func (f *formatter) block(n *syntax.Node) format.Element {
	if n == nil {
		return nil
	}
	body := f.items(n.FindNode(syntax.CssDeclarationList))
	close := n.FindToken(syntax.RBrace)
	dangling := f.Dangling(close, len(body) > 0)
	if len(body) == 0 && len(dangling) == 0 {
		return format.Concat(f.Tok(n.FindToken(syntax.LBrace)), format.HardLine, f.Tok(close))
	}
	return format.Concat(f.Tok(n.FindToken(syntax.LBrace)), format.Indent{Contents: format.Concat(format.HardLine, body, dangling)},
		format.HardLine, f.Tok(close))
}

func (f *formatter) atRule(n *syntax.Node) format.Element {
	kw := n.FindToken(syntax.CssAtKeyword)
	out := format.Concat(f.TokText(kw, strings.ToLower(kw.Text())))
	if prelude := n.FindNode(syntax.CssAtRulePrelude); prelude != nil && prelude.FirstToken() != nil {
		out = append(out, format.Space{}, f.values(prelude, true))
	}
	if block := n.FindNode(syntax.CssDeclarationBlock); block != nil {
		return format.Concat(out, format.Space{}, f.block(block))
	}
	return format.Concat(out, f.TokText(n.FindToken(syntax.Semicolon), ";"))
}

// declaration prints `name: value !important;`. Property names are
// lowercased except custom properties.
func (f *formatter) declaration(n *syntax.Node) format.Element {
	name := n.FindNode(syntax.CssPropertyName).FirstToken()
	text := name.Text()
	if !strings.HasPrefix(text, "--") {
		text = strings.ToLower(text)
	}
	out := format.Concat(f.TokText(name, text), f.Tok(n.FindToken(syntax.Colon)))

	if custom := n.FindNode(syntax.CssCustomPropertyValue); custom != nil {
		if custom.FirstToken() != nil {
			out = append(out, format.Space{}, f.Verbatim(custom))
		}
	} else if values := n.FindNode(syntax.CssComponentValueList); values != nil {
		out = append(out, format.Space{}, f.values(values, false))
	}
	if imp := n.FindNode(syntax.CssImportant); imp != nil {
		out = append(out, format.Space{}, f.Tok(imp.FindToken(syntax.Bang)))
		for t := range imp.Tokens() {
			if t.Kind() != syntax.Bang {
				out = append(out, f.TokText(t, strings.ToLower(t.Text())))
			}
		}
	}
	return format.Concat(out, f.TokText(n.FindToken(syntax.Semicolon), ";"))
}

// values respaces component values: one space where the source had
// whitespace, a space after commas and none inside parentheses. In
// at-rule preludes such as media queries a colon is followed by a space.
func (f *formatter) values(n *syntax.Node, prelude bool) format.Element {
	var out format.List
	var prev *syntax.Token
	for t := range n.Tokens() {
		space := false
		switch {
		case prev == nil:
		case t.Kind() == syntax.Comma || openers.Has(prev.Kind()) || closers.Has(t.Kind()):
		case prev.Kind() == syntax.Comma, prelude && prev.Kind() == syntax.Colon:
			space = true
		default:
			space = format.Separated(t)
		}
		if space {
			out = append(out, format.Space{})
		}
		out = append(out, f.value(t))
		prev = t
	}
	return out
}

func (f *formatter) value(t *syntax.Token) format.Element {
	switch t.Kind() {
	case syntax.StringLit:
		return f.TokText(t, format.QuoteString(t.Text(), f.quote()))
	case syntax.NumberLit, syntax.CssDimension, syntax.CssPercentage:
		return f.TokText(t, normalizeNumeric(t.Text()))
	}
	return f.Tok(t)
}

func (f *formatter) quote() byte {
	if f.Ctx.Options.QuoteStyle == format.QuoteSingle {
		return '\''
	}
	return '"'
}

// normalizeNumeric adds a leading zero before a dot, drops trailing
// fraction zeros and lowercases the exponent of a number with an optional
// unit.
func normalizeNumeric(raw string) string {
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	for end < len(raw) && (raw[end] >= '0' && raw[end] <= '9' || raw[end] == '.') {
		end++
	}
	if end < len(raw) && (raw[end] == 'e' || raw[end] == 'E') && end+1 < len(raw) &&
		(raw[end+1] >= '0' && raw[end+1] <= '9' || raw[end+1] == '-' || raw[end+1] == '+') {
		end += 2
		for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
			end++
		}
	}
	number, unit := raw[:end], raw[end:]

	sign := ""
	if number != "" && (number[0] == '+' || number[0] == '-') {
		sign, number = number[:1], number[1:]
	}
	mantissa, exponent, hasExp := strings.Cut(strings.ToLower(number), "e")
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if whole, frac, ok := strings.Cut(mantissa, "."); ok {
		frac = strings.TrimRight(frac, "0")
		mantissa = whole
		if frac != "" {
			mantissa += "." + frac
		}
	}
	if hasExp {
		mantissa += "e" + strings.TrimPrefix(exponent, "+")
	}
	return sign + mantissa + unit
}
