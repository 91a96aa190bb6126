package jsformat

import (
	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// function prints function declarations and expressions, methods,
// accessors and constructors.
//
//nolint:gocyclo,cyclop // Child dispatch
func (f *formatter) function(n *syntax.Node) format.Element {
	method := n.Kind() != syntax.JsFunctionDeclaration && n.Kind() != syntax.JsFunctionExpression
	var out format.List
	space := false
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.Star:
				if space && method {
					out = append(out, format.Space{})
				}
				out = append(out, f.tok(c))
				space = !method
			case syntax.Semicolon:
				out = append(out, f.semicolon(c))
			case syntax.Question, syntax.LParen, syntax.RParen:
				out = append(out, f.tok(c))
				space = false
			default:
				if space {
					out = append(out, format.Space{})
				}
				out = append(out, f.tok(c))
				space = true
			}
		case *syntax.Node:
			switch c.Kind() {
			case syntax.JsModifierList:
				for t := range c.Tokens() {
					out = append(out, f.tok(t), format.Space{})
				}
				continue
			case syntax.JsParameters:
				if space && !method {
					out = append(out, format.Space{})
				}
				out = append(out, f.parameters(c))
			case syntax.TsTypeParameters:
				out = append(out, f.typeNode(c))
			case syntax.TsReturnTypeAnnotation:
				out = append(out, f.typeAnnotation(c))
			case syntax.JsFunctionBody:
				out = append(out, format.Space{}, f.block(c))
			default:
				if space {
					out = append(out, format.Space{})
				}
				out = append(out, f.node(c))
			}
			space = false
		}
	}
	return out
}

// arrow prints an arrow function. Parameters are always parenthesized.
func (f *formatter) arrow(n *syntax.Node) format.Element {
	var out format.List
	var body *syntax.Node
	afterArrow := false
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.AsyncKw:
				out = append(out, f.tok(c), format.Space{})
			case syntax.FatArrow:
				out = append(out, format.Space{}, f.tok(c))
				afterArrow = true
			default:
				out = append(out, f.tok(c))
			}
		case *syntax.Node:
			switch {
			case afterArrow:
				body = c
			case c.Kind() == syntax.JsIdentifierBinding:
				out = append(out, format.Str("("), f.node(c), format.Str(")"))
			case c.Kind() == syntax.JsParameters:
				out = append(out, f.parameters(c))
			case c.Kind() == syntax.TsReturnTypeAnnotation:
				out = append(out, f.typeAnnotation(c))
			default:
				out = append(out, f.typeNode(c))
			}
		}
	}
	if body == nil {
		return out
	}
	switch body.Kind() {
	case syntax.JsFunctionBody:
		return format.Concat(out, format.Space{}, f.block(body))
	case syntax.JsObjectExpression, syntax.JsArrayExpression, syntax.JsTemplateExpression,
		syntax.JsArrowFunctionExpression, syntax.JsxTagExpression:
		return format.Concat(out, format.Space{}, f.node(body))
	case syntax.JsParenthesizedExpression:
		if inner := firstExpr(body); inner != nil && inner.Kind() == syntax.JsObjectExpression {
			return format.Concat(out, format.Space{}, f.node(body))
		}
	}
	return format.Concat(out, format.NewGroup(format.Indent{Contents: format.Concat(format.SoftLineOrSpace, f.node(body))}))
}

// class prints class declarations and expressions.
func (f *formatter) class(n *syntax.Node) format.Element {
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.LBrace, syntax.RBrace:
				continue
			}
			if len(out) > 0 {
				out = append(out, format.Space{})
			}
			out = append(out, f.tok(c))
		case *syntax.Node:
			switch c.Kind() {
			case syntax.JsClassMemberList:
				continue
			case syntax.TsTypeParameters:
				out = append(out, f.typeNode(c))
				continue
			case syntax.JsExtendsClause:
				out = append(out, format.Space{}, f.extends(c))
				continue
			}
			out = append(out, format.Space{}, f.node(c))
		}
	}
	return format.Concat(out, format.Space{}, f.classBody(n))
}

func (f *formatter) extends(n *syntax.Node) format.Element {
	return format.Concat(f.tok(n.FindToken(syntax.ExtendsKw)), format.Space{}, f.node(firstExpr(n)),
		f.typeNode(n.FindNode(syntax.TsTypeArguments)))
}

func (f *formatter) classBody(n *syntax.Node) format.Element {
	var body format.List
	if list := n.FindNode(syntax.JsClassMemberList); list != nil {
		for _, m := range list.ChildNodeList() {
			if m.Kind() == syntax.JsEmptyClassMember && !f.comments.HasComments(m) {
				continue
			}
			if len(body) > 0 {
				if format.BlankLineBefore(m.FirstToken()) {
					body = append(body, format.EmptyLine)
				} else {
					body = append(body, format.HardLine)
				}
			}
			body = append(body, f.node(m))
		}
	}
	return f.braced(n.FindToken(syntax.LBrace), body, n.FindToken(syntax.RBrace))
}

// classProperty prints a class field. Its terminator is always printed
// so that a following computed member cannot be read as an index.
func (f *formatter) classProperty(n *syntax.Node) format.Element {
	var left format.List
	var op *syntax.Token
	var right *syntax.Node
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			if c.Kind() != syntax.Semicolon {
				left = append(left, f.tok(c))
			}
		case *syntax.Node:
			switch c.Kind() {
			case syntax.JsModifierList:
				for t := range c.Tokens() {
					left = append(left, f.tok(t), format.Space{})
				}
			case syntax.TsTypeAnnotation:
				left = append(left, f.typeAnnotation(c))
			case syntax.JsInitializerClause:
				op = c.FindToken(syntax.Eq)
				right = firstExpr(c)
			default:
				left = append(left, f.node(c))
			}
		}
	}
	return format.Concat(f.assignment(n, left, op, right), f.tokText(n.FindToken(syntax.Semicolon), ";"))
}

// variableDeclaration prints `let a = 1, b`. When any declarator has an
// initializer, each following declarator goes on its own line.
func (f *formatter) variableDeclaration(n *syntax.Node) format.Element {
	kw := n.FirstToken()
	var its []listItem
	if n.Kind() == syntax.JsForVariableDeclaration {
		if d := n.FindNode(syntax.JsVariableDeclarator); d != nil {
			its = []listItem{{node: d}}
		}
	} else {
		its = items(n.FindNode(syntax.JsVariableDeclaratorList))
	}
	printed := f.printItems(its, f.node)
	if len(printed) == 0 {
		return f.tok(kw)
	}
	if len(printed) == 1 {
		return format.Concat(f.tok(kw), format.Space{}, printed[0])
	}

	hasInit := false
	for _, it := range its {
		if it.node.FindNode(syntax.JsInitializerClause) != nil {
			hasInit = true
		}
	}
	sep := format.SoftLineOrSpace
	if hasInit {
		sep = format.HardLine
	}
	var rest format.List
	for _, p := range printed[1:] {
		rest = append(rest, format.Str(","), sep, p)
	}
	return format.NewGroup(f.tok(kw), format.Space{}, printed[0], format.Indent{Contents: rest})
}

// binding prints a catch or loop binding.
func (f *formatter) binding(n *syntax.Node) format.Element {
	return f.node(n)
}

func (f *formatter) importDeclaration(n *syntax.Node) format.Element {
	return f.moduleClause(n)
}

func (f *formatter) export(n *syntax.Node) format.Element {
	return f.moduleClause(n)
}

// moduleClause prints import and export declarations and their clauses:
// keywords and operands separated by spaces, named specifiers in braces.
func (f *formatter) moduleClause(n *syntax.Node) format.Element {
	var kids []syntax.Element
	for el := range n.Children() {
		kids = append(kids, el)
	}
	var out format.List
	for i := 0; i < len(kids); i++ {
		var printed format.Element
		comma := false
		switch c := kids[i].(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.Semicolon:
				out = append(out, f.semicolon(c))
				continue
			case syntax.LBrace:
				// Export clauses hold their braces directly.
				var list *syntax.Node
				var close *syntax.Token
				for j := i + 1; j < len(kids); j++ {
					if t, ok := kids[j].(*syntax.Token); ok && t.Kind() == syntax.RBrace {
						close = t
						i = j
						break
					}
					if l, ok := kids[j].(*syntax.Node); ok {
						list = l
					}
				}
				printed = f.specifiers(c, list, close)
			case syntax.Comma:
				comma = true
				printed = f.tok(c)
			default:
				printed = f.tok(c)
			}
		case *syntax.Node:
			if c.FirstToken() == nil {
				continue
			}
			if c.Kind() == syntax.JsNamedImportSpecifiers {
				printed = f.specifiers(c.FindToken(syntax.LBrace), c.FindNode(syntax.JsNamedImportSpecifierList),
					c.FindToken(syntax.RBrace))
			} else {
				printed = f.node(c)
			}
		}
		if len(out) > 0 && !comma {
			out = append(out, format.Space{})
		}
		out = append(out, printed)
	}
	return out
}

func (f *formatter) specifiers(open *syntax.Token, list *syntax.Node, close *syntax.Token) format.Element {
	printed := f.printItems(items(list), f.node)
	return f.delimited(open, printed, close, delimitedOptions{
		spaced:   f.opts.BracketSpacing,
		trailing: f.trailingComma(true),
	})
}
