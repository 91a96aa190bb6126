package jsformat

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// JSX text is significant whitespace and is printed as written. Tags,
// attributes and expression children are normalized around it.

func (f *formatter) jsxTag(n *syntax.Node) format.Element {
	if n.Kind() == syntax.JsxTagExpression {
		n = firstChildNode(n)
		if n == nil {
			return nil
		}
	}
	switch n.Kind() {
	case syntax.JsxElement:
		return format.Concat(f.jsxOpening(n.FindNode(syntax.JsxOpeningElement)),
			f.jsxChildren(n.FindNode(syntax.JsxChildList)), f.jsxClosing(n.FindNode(syntax.JsxClosingElement)))
	case syntax.JsxSelfClosingElement:
		return f.jsxOpening(n)
	case syntax.JsxFragment:
		return format.Concat(f.tokens(n.FindNode(syntax.JsxOpeningFragment)),
			f.jsxChildren(n.FindNode(syntax.JsxChildList)), f.tokens(n.FindNode(syntax.JsxClosingFragment)))
	}
	return f.verbatim(n)
}

// jsxOpening prints `<name attrs>` or `<name attrs />`. Attributes that do
// not fit go one per line.
func (f *formatter) jsxOpening(n *syntax.Node) format.Element {
	if n == nil {
		return nil
	}
	var open, end *syntax.Token
	var name format.List
	var attrs []format.Element
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			if c.Kind() == syntax.Lt {
				open = c
			} else {
				end = c
			}
		case *syntax.Node:
			switch c.Kind() {
			case syntax.JsxAttributeList:
				for _, a := range c.ChildNodeList() {
					attrs = append(attrs, f.jsxAttribute(a))
				}
			case syntax.TsTypeArguments:
				name = append(name, f.typeList(c))
			default:
				name = append(name, f.tokens(c))
			}
		}
	}
	selfClosing := end != nil && end.Kind() == syntax.SlashGt
	if len(attrs) == 0 {
		if selfClosing {
			return format.Concat(f.tok(open), name, format.Space{}, f.tok(end))
		}
		return format.Concat(f.tok(open), name, f.tok(end))
	}
	var body format.List
	for _, a := range attrs {
		body = append(body, format.SoftLineOrSpace, a)
	}
	closing := format.SoftLine
	if selfClosing {
		closing = format.SoftLineOrSpace
	}
	return &format.Group{Contents: format.Concat(f.tok(open), name, format.Indent{Contents: body}, closing, f.tok(end))}
}

func (f *formatter) jsxClosing(n *syntax.Node) format.Element {
	if n == nil {
		return nil
	}
	return f.tokens(n)
}

func (f *formatter) jsxAttribute(n *syntax.Node) format.Element {
	switch n.Kind() {
	case syntax.JsxAttribute:
		out := format.Concat(f.tokens(n.FindNode(syntax.JsxName)))
		init := n.FindNode(syntax.JsxAttributeInitializerClause)
		if init == nil {
			return out
		}
		out = append(out, f.tok(init.FindToken(syntax.Eq)))
		value := firstChildNode(init)
		if value == nil {
			return out
		}
		switch value.Kind() {
		case syntax.JsxString:
			out = append(out, f.jsxString(value.FirstToken()))
		case syntax.JsxExpressionAttributeValue:
			out = append(out, f.tok(value.FindToken(syntax.LBrace)), f.node(firstExpr(value)),
				f.tok(value.FindToken(syntax.RBrace)))
		default:
			out = append(out, f.node(value))
		}
		return out
	case syntax.JsxSpreadAttribute:
		return f.jsxBraced(n)
	}
	return f.verbatim(n)
}

// jsxString prints an attribute string in double quotes unless its text
// contains one. JSX strings have no escapes.
func (f *formatter) jsxString(t *syntax.Token) format.Element {
	raw := t.Text()
	if len(raw) < 2 {
		return f.tok(t)
	}
	inner := raw[1 : len(raw)-1]
	if strings.Contains(inner, `"`) {
		return f.tok(t)
	}
	return f.tokText(t, `"`+inner+`"`)
}

// jsxBraced prints `{expr}`, `{...expr}` and the empty `{}` child, which
// may hold only comments.
func (f *formatter) jsxBraced(n *syntax.Node) format.Element {
	open, close := n.FindToken(syntax.LBrace), n.FindToken(syntax.RBrace)
	expr := firstExpr(n)
	if expr == nil {
		return format.Concat(f.tok(open), f.dangling(close, false), f.tok(close))
	}
	return format.Concat(f.tok(open), f.tok(n.FindToken(syntax.DotDotDot)), f.node(expr), f.tok(close))
}

func (f *formatter) jsxChildren(list *syntax.Node) format.Element {
	if list == nil {
		return nil
	}
	var out format.List
	for _, c := range list.ChildNodeList() {
		switch c.Kind() {
		case syntax.JsxText:
			out = append(out, f.tokens(c))
		case syntax.JsxExpressionChild:
			out = append(out, f.jsxBraced(c))
		case syntax.JsxElement, syntax.JsxSelfClosingElement, syntax.JsxFragment:
			out = append(out, f.jsxTag(c))
		default:
			out = append(out, f.verbatim(c))
		}
	}
	return out
}
