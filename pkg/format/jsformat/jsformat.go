// Package jsformat lowers JavaScript and TypeScript syntax trees into
// format IR.
//
// Every token is printed through the formatter so that its comments are
// taken exactly once. Template literals and JSX text are copied verbatim.
package jsformat

import (
	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func init() {
	format.Register("javascript", format.LowerFunc(Lower))
}

// Lower lowers a JsModule tree.
func Lower(ctx *format.Context, root *syntax.Node) (format.Element, error) {
	f := &formatter{ctx: ctx, opts: ctx.Options, comments: ctx.Comments}
	var doc format.Element
	if root.Kind() == syntax.JsModule {
		doc = f.module(root)
	} else {
		doc = format.Concat(f.verbatim(root), format.HardLine)
	}
	if err := ctx.Comments.Check(); err != nil {
		return nil, err
	}
	return doc, nil
}

type formatter struct {
	ctx      *format.Context
	opts     format.Options
	comments *format.CommentMap
}

// tok prints t with its comments.
func (f *formatter) tok(t *syntax.Token) format.Element {
	if t == nil {
		return nil
	}
	return f.tokText(t, t.Text())
}

// tokText prints s in place of t, keeping the comments of t. A missing
// token prints s alone.
func (f *formatter) tokText(t *syntax.Token, s string) format.Element {
	if t == nil {
		return format.Str(s)
	}
	return format.Concat(f.leading(t), format.Token{Value: s, Source: t.TextRange()}, f.trailing(t))
}

// commentsOf prints only the comments of a token whose text is dropped
// or printed elsewhere.
func (f *formatter) commentsOf(t *syntax.Token) format.List {
	if t == nil {
		return nil
	}
	return format.Concat(f.leading(t), f.trailing(t))
}

func (f *formatter) leading(t *syntax.Token) format.List {
	return format.LeadingComments(f.comments.TakeLeading(t))
}

func (f *formatter) trailing(t *syntax.Token) format.List {
	return format.TrailingComments(f.comments.TakeTrailing(t))
}

// dangling prints the comments before a closing token. With nothing
// before them the leading separator is dropped.
func (f *formatter) dangling(close *syntax.Token, afterContent bool) format.List {
	out := format.DanglingComments(f.comments.TakeLeading(close))
	if !afterContent {
		out = format.TrimLeadingSeparator(out)
	}
	return out
}

// verbatim copies n from the source, printing the outer comments through
// the comment map.
func (f *formatter) verbatim(n *syntax.Node) format.Element {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return nil
	}
	f.comments.TakeNode(n)
	return format.Concat(f.leading(first), f.ctx.Verbatim(n), f.trailing(last))
}

// node prints any node, honoring format suppressions.
func (f *formatter) node(n *syntax.Node) format.Element {
	if n == nil {
		return nil
	}
	if f.ctx.Suppressed(n) {
		return f.verbatim(n)
	}
	if isStatement(n.Kind()) {
		return f.statement(n)
	}
	return f.expression(n)
}

// spaced prints the children of n separated by single spaces, with no
// space around punctuation that binds tightly. It serves constructs made
// of keywords and simple operands.
func (f *formatter) spaced(n *syntax.Node) format.List {
	var out format.List
	var prev syntax.Kind
	first := true
	for el := range n.Children() {
		var kind syntax.Kind
		var printed format.Element
		switch c := el.(type) {
		case *syntax.Token:
			if c.Kind() == syntax.Semicolon {
				out = append(out, f.semicolon(c))
				continue
			}
			kind = c.Kind()
			printed = f.tok(c)
		case *syntax.Node:
			if c.FirstToken() == nil {
				continue
			}
			kind = c.FirstToken().Kind()
			printed = f.node(c)
		}
		if !first && !noSpaceAfter.Has(prev) && !noSpaceBefore.Has(kind) {
			out = append(out, format.Space{})
		}
		out = append(out, printed)
		prev = lastKind(el)
		first = false
	}
	return out
}

//nolint:gochecknoglobals // Static kind sets
var (
	noSpaceBefore = syntax.KindSetOf(syntax.Comma, syntax.RParen, syntax.RBrack, syntax.Dot,
		syntax.QuestionDot, syntax.Colon, syntax.Bang)
	noSpaceAfter = syntax.KindSetOf(syntax.LParen, syntax.LBrack, syntax.Dot, syntax.QuestionDot,
		syntax.DotDotDot, syntax.At, syntax.Hash)
)

func lastKind(el syntax.Element) syntax.Kind {
	switch c := el.(type) {
	case *syntax.Token:
		return c.Kind()
	case *syntax.Node:
		if last := c.LastToken(); last != nil {
			return last.Kind()
		}
	}
	return syntax.Tombstone
}

// semicolon prints a statement terminator. Virtual terminators are made
// explicit unless semicolons are printed as needed.
func (f *formatter) semicolon(t *syntax.Token) format.Element {
	if f.opts.Semicolons == format.SemicolonsAsNeeded {
		return f.commentsOf(t)
	}
	return f.tokText(t, ";")
}

// listItem is an element of a separated list and the comma after it.
type listItem struct {
	node  *syntax.Node
	comma *syntax.Token
}

func items(list *syntax.Node) []listItem {
	if list == nil {
		return nil
	}
	var out []listItem
	for el := range list.Children() {
		switch c := el.(type) {
		case *syntax.Node:
			out = append(out, listItem{node: c})
		case *syntax.Token:
			if c.Kind() == syntax.Comma && len(out) > 0 {
				out[len(out)-1].comma = c
			}
		}
	}
	return out
}

// printItems prints each element of a list followed by the comments of
// its separator.
func (f *formatter) printItems(list []listItem, print func(*syntax.Node) format.Element) []format.Element {
	out := make([]format.Element, 0, len(list))
	for _, it := range list {
		out = append(out, format.Concat(print(it.node), f.commentsOf(it.comma)))
	}
	return out
}

// delimitedOptions configure a bracketed, comma separated list.
type delimitedOptions struct {
	// spaced uses a space inside the brackets in flat mode.
	spaced bool
	// trailing prints a comma after the last element when broken.
	trailing bool
	// forceTrailing always prints the comma after the last element.
	forceTrailing bool
	// expand breaks the list regardless of width.
	expand bool
	// fill packs elements into as few lines as possible.
	fill bool
	// separator replaces the comma, as in object types.
	separator string
}

func (f *formatter) delimited(open *syntax.Token, elems []format.Element, close *syntax.Token, o delimitedOptions) format.Element {
	dangling := f.dangling(close, len(elems) > 0)
	if len(elems) == 0 && len(dangling) == 0 {
		return format.Concat(f.tok(open), f.tok(close))
	}
	if len(elems) == 0 {
		return format.Concat(f.tok(open), format.Indent{Contents: format.Concat(format.HardLine, dangling)},
			format.HardLine, f.tok(close))
	}

	line := format.SoftLine
	if o.spaced {
		line = format.SoftLineOrSpace
	}
	sep := o.separator
	if sep == "" {
		sep = ","
	}
	var body format.List
	if o.fill {
		filled := make(format.List, len(elems))
		for i, el := range elems {
			if i < len(elems)-1 {
				el = format.Concat(el, format.Str(sep))
			}
			filled[i] = el
		}
		body = format.List{&format.Fill{Items: filled, Separator: format.SoftLineOrSpace}}
	} else {
		body = format.Join(format.Concat(format.Str(sep), format.SoftLineOrSpace), elems)
	}
	switch {
	case o.forceTrailing:
		body = append(body, format.Str(sep))
	case o.trailing:
		body = append(body, format.IfBreak{Break: format.List{format.Str(sep)}})
	}
	return &format.Group{
		Contents: format.Concat(f.tok(open), format.Indent{Contents: format.Concat(line, body, dangling)},
			line, f.tok(close)),
		Break: o.expand || len(dangling) > 0,
	}
}

// trailingComma reports whether broken lists of the given sort take a
// trailing comma. Function parameters and arguments need "all".
func (f *formatter) trailingComma(es5 bool) bool {
	switch f.opts.TrailingCommas {
	case format.TrailingAll:
		return true
	case format.TrailingES5:
		return es5
	}
	return false
}

// module prints the top level statement list.
func (f *formatter) module(n *syntax.Node) format.Element {
	body := f.statements(n.FindNode(syntax.JsModuleItemList))
	eof := n.FindToken(syntax.EOF)
	dangling := f.dangling(eof, len(body) > 0)
	if len(body) == 0 && len(dangling) == 0 {
		return format.List{}
	}
	return format.Concat(body, dangling, format.HardLine)
}
