// Package jsonformat lowers JSON and JSONC documents into format IR.
//
// Non-empty objects print one member per line. Arrays stay on one line
// when they fit. Trailing commas are printed only for JSONC documents
// whose options ask for them.
package jsonformat

import (
	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func init() {
	format.Register("json", format.LowerFunc(Lower))
}

// Lower lowers a JsonRoot tree.
func Lower(ctx *format.Context, root *syntax.Node) (format.Element, error) {
	f := &formatter{
		TokenPrinter: format.TokenPrinter{Ctx: ctx},
		trailing:     ctx.Language == lang.JSONC && ctx.Options.TrailingCommas != format.TrailingNone,
	}

	var body format.List
	for c := range root.ChildNodes() {
		body = append(body, f.value(c))
	}
	dangling := f.Dangling(root.FindToken(syntax.EOF), len(body) > 0)
	if len(body) == 0 && len(dangling) == 0 {
		return format.List{}, nil
	}
	doc := format.Concat(body, dangling, format.HardLine)
	if err := ctx.Comments.Check(); err != nil {
		return nil, err
	}
	return doc, nil
}

type formatter struct {
	format.TokenPrinter
	trailing bool
}

func (f *formatter) value(n *syntax.Node) format.Element {
	if f.Ctx.Suppressed(n) {
		return f.Verbatim(n)
	}
	switch n.Kind() {
	case syntax.JsonStringValue, syntax.JsonNumberValue, syntax.JsonBooleanValue, syntax.JsonNullValue:
		return f.Tok(n.FirstToken())
	case syntax.JsonObjectValue:
		return f.object(n)
	case syntax.JsonArrayValue:
		return f.array(n)
	}
	return f.Verbatim(n)
}

func (f *formatter) member(n *syntax.Node) format.Element {
	if n.Kind() != syntax.JsonMember || f.Ctx.Suppressed(n) {
		return f.Verbatim(n)
	}
	var out format.List
	if name := n.FindNode(syntax.JsonMemberName); name != nil {
		out = append(out, f.Tok(name.FirstToken()))
	}
	out = append(out, f.Tok(n.FindToken(syntax.Colon)))
	for c := range n.ChildNodes() {
		if c.Kind() != syntax.JsonMemberName {
			out = append(out, format.Space{}, f.value(c))
		}
	}
	return out
}

// elements prints the elements of a separated list, each followed by the
// comments of its comma.
func (f *formatter) elements(list *syntax.Node, lower func(*syntax.Node) format.Element) []format.Element {
	if list == nil {
		return nil
	}
	var out []format.Element
	for el := range list.Children() {
		switch c := el.(type) {
		case *syntax.Node:
			out = append(out, lower(c))
		case *syntax.Token:
			if len(out) > 0 {
				out[len(out)-1] = format.Concat(out[len(out)-1], f.CommentsOf(c))
			} else {
				out = append(out, f.CommentsOf(c))
			}
		}
	}
	return out
}

func (f *formatter) object(n *syntax.Node) format.Element {
	members := f.elements(n.FindNode(syntax.JsonMemberList), f.member)
	return f.delimited(n.FindToken(syntax.LBrace), members, n.FindToken(syntax.RBrace), true)
}

func (f *formatter) array(n *syntax.Node) format.Element {
	elements := f.elements(n.FindNode(syntax.JsonArrayElementList), f.value)
	return f.delimited(n.FindToken(syntax.LBrack), elements, n.FindToken(syntax.RBrack), false)
}

func (f *formatter) delimited(open *syntax.Token, elems []format.Element, close *syntax.Token, expand bool) format.Element {
	dangling := f.Dangling(close, len(elems) > 0)
	if len(elems) == 0 && len(dangling) == 0 {
		return format.Concat(f.Tok(open), f.Tok(close))
	}
	if len(elems) == 0 {
		return format.Concat(f.Tok(open), format.Indent{Contents: format.Concat(format.HardLine, dangling)},
			format.HardLine, f.Tok(close))
	}

	body := format.Join(format.Concat(format.Str(","), format.SoftLineOrSpace), elems)
	if f.trailing {
		body = append(body, format.IfBreak{Break: format.List{format.Str(",")}})
	}
	return &format.Group{
		Contents: format.Concat(f.Tok(open), format.Indent{Contents: format.Concat(format.SoftLine, body, dangling)},
			format.SoftLine, f.Tok(close)),
		Break: expand || len(dangling) > 0,
	}
}
