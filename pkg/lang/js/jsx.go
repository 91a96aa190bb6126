package js

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// JSX switches lexing context at every tag boundary: names and attributes
// are lexed in the tag context, children in the child context, and the
// token after the outermost closing `>` in the regular context.

func (p *jsParser) parseJsxTagExpression() parser.CompletedMarker {
	m := p.Start()
	p.parseJsxAnyElement(false)
	return m.Complete(p.Parser, syntax.JsxTagExpression)
}

// afterTag is the context for the token following a tag's final `>`.
func afterTag(nested bool) parser.LexContext {
	if nested {
		return contextJsxChild
	}
	return contextRegular
}

func (p *jsParser) parseJsxAnyElement(nested bool) {
	m := p.Start()
	p.BumpWithContext(syntax.Lt, contextJsxTag)

	if p.At(syntax.Gt) {
		p.BumpWithContext(syntax.Gt, contextJsxChild)
		opening := m.Complete(p.Parser, syntax.JsxOpeningFragment)
		fragment := opening.Precede(p.Parser)
		p.parseJsxChildren()
		c := p.Start()
		if p.At(syntax.LtSlash) {
			p.BumpWithContext(syntax.LtSlash, contextJsxTag)
			if !p.At(syntax.Gt) {
				p.ErrorExpected("`>` closing the fragment")
			}
			p.expectJsxTagEnd(nested)
		} else {
			p.ErrorExpected("a closing fragment `</>`")
			p.Missing()
		}
		c.Complete(p.Parser, syntax.JsxClosingFragment)
		fragment.Complete(p.Parser, syntax.JsxFragment)
		return
	}

	name := p.parseJsxElementName()
	if p.At(syntax.Lt) && p.opts.TypeScript {
		p.parseTypeArguments()
	}
	p.parseJsxAttributes()

	if p.At(syntax.SlashGt) {
		p.BumpWithContext(syntax.SlashGt, afterTag(nested))
		m.Complete(p.Parser, syntax.JsxSelfClosingElement)
		return
	}
	if p.At(syntax.Gt) {
		p.BumpWithContext(syntax.Gt, contextJsxChild)
	} else {
		p.ErrorExpected("`>` or `/>`")
		p.Missing()
		m.Complete(p.Parser, syntax.JsxSelfClosingElement)
		return
	}
	opening := m.Complete(p.Parser, syntax.JsxOpeningElement)
	element := opening.Precede(p.Parser)
	p.parseJsxChildren()

	c := p.Start()
	if p.At(syntax.LtSlash) {
		closeStart := p.CurRange().Start
		p.BumpWithContext(syntax.LtSlash, contextJsxTag)
		closing := ""
		if !p.At(syntax.Gt) {
			closing = p.parseJsxElementName()
		}
		if closing != name {
			p.Error("expected corresponding closing tag for `"+name+"`", rangeFrom(p, closeStart))
		}
		p.expectJsxTagEnd(nested)
	} else {
		p.ErrorExpected("a closing tag for `" + name + "`")
		p.Missing()
	}
	c.Complete(p.Parser, syntax.JsxClosingElement)
	element.Complete(p.Parser, syntax.JsxElement)
}

func (p *jsParser) expectJsxTagEnd(nested bool) {
	if p.At(syntax.Gt) {
		p.BumpWithContext(syntax.Gt, afterTag(nested))
		return
	}
	p.ErrorExpected("`>`")
	p.Missing()
}

// parseJsxElementName parses `div`, `svg:path` or `Foo.Bar` and returns the
// name text for matching the closing tag.
func (p *jsParser) parseJsxElementName() string {
	if !p.At(syntax.Ident) {
		p.ErrorExpected("an element name")
		p.Missing()
		return ""
	}
	start := p.CurRange().Start
	n := p.Start()
	p.BumpWithContext(syntax.Ident, contextJsxTag)
	if p.At(syntax.Colon) {
		p.BumpWithContext(syntax.Colon, contextJsxTag)
		if p.At(syntax.Ident) {
			p.BumpWithContext(syntax.Ident, contextJsxTag)
		} else {
			p.ErrorExpected("a namespaced name")
		}
	}
	name := n.Complete(p.Parser, syntax.JsxName)
	for p.At(syntax.Dot) {
		mm := name.Precede(p.Parser)
		p.BumpWithContext(syntax.Dot, contextJsxTag)
		member := p.Start()
		if p.At(syntax.Ident) {
			p.BumpWithContext(syntax.Ident, contextJsxTag)
		} else {
			p.ErrorExpected("a member name")
		}
		member.Complete(p.Parser, syntax.JsxName)
		name = mm.Complete(p.Parser, syntax.JsxMemberName)
	}
	return p.Source().Source()[start:p.LastTokenEnd()]
}

func (p *jsParser) parseJsxAttributes() {
	list := p.Start()
	for !p.At(syntax.Gt) && !p.At(syntax.SlashGt) && !p.At(syntax.EOF) {
		switch {
		case p.At(syntax.LBrace) && p.NthAt(1, syntax.DotDotDot):
			m := p.Start()
			p.Bump(syntax.LBrace)
			p.Bump(syntax.DotDotDot)
			p.expectAssignment()
			p.expectJsxBrace(contextJsxTag)
			m.Complete(p.Parser, syntax.JsxSpreadAttribute)
		case p.At(syntax.Ident):
			p.parseJsxAttribute()
		default:
			p.ErrorExpected("a JSX attribute")
			b := p.Start()
			p.BumpWithContext(p.Cur(), contextJsxTag)
			b.Complete(p.Parser, syntax.JsBogus)
		}
	}
	list.Complete(p.Parser, syntax.JsxAttributeList)
}

func (p *jsParser) parseJsxAttribute() {
	m := p.Start()
	n := p.Start()
	p.BumpWithContext(syntax.Ident, contextJsxTag)
	if p.At(syntax.Colon) {
		p.BumpWithContext(syntax.Colon, contextJsxTag)
		if p.At(syntax.Ident) {
			p.BumpWithContext(syntax.Ident, contextJsxTag)
		}
	}
	n.Complete(p.Parser, syntax.JsxName)

	if p.At(syntax.Eq) {
		init := p.Start()
		p.BumpWithContext(syntax.Eq, contextJsxTag)
		switch {
		case p.At(syntax.JsxStringLit):
			s := p.Start()
			p.BumpWithContext(syntax.JsxStringLit, contextJsxTag)
			s.Complete(p.Parser, syntax.JsxString)
		case p.At(syntax.LBrace):
			v := p.Start()
			p.Bump(syntax.LBrace)
			p.expectAssignment()
			p.expectJsxBrace(contextJsxTag)
			v.Complete(p.Parser, syntax.JsxExpressionAttributeValue)
		case p.At(syntax.Lt):
			t := p.Start()
			p.parseJsxAnyElementInTag()
			t.Complete(p.Parser, syntax.JsxTagExpression)
		default:
			p.ErrorExpected("an attribute value")
			p.Missing()
		}
		init.Complete(p.Parser, syntax.JsxAttributeInitializerClause)
	}
	m.Complete(p.Parser, syntax.JsxAttribute)
}

// parseJsxAnyElementInTag parses an element used as an attribute value; the
// token after it belongs to the enclosing tag.
func (p *jsParser) parseJsxAnyElementInTag() {
	p.parseJsxAnyElement(false)
	if !p.At(syntax.EOF) {
		p.Relex(contextJsxTag)
	}
}

func (p *jsParser) expectJsxBrace(next parser.LexContext) {
	if p.At(syntax.RBrace) {
		p.BumpWithContext(syntax.RBrace, next)
		return
	}
	p.ErrorExpected("`}`")
	p.Missing()
}

func (p *jsParser) parseJsxChildren() {
	list := p.Start()
	p.withState(func(s *state) { s.inJsxChildren = true }, func() {
		for {
			switch p.Cur() {
			case syntax.JsxTextLit:
				m := p.Start()
				p.BumpWithContext(syntax.JsxTextLit, contextJsxChild)
				m.Complete(p.Parser, syntax.JsxText)
			case syntax.LBrace:
				m := p.Start()
				p.Bump(syntax.LBrace)
				if !p.At(syntax.RBrace) {
					if p.At(syntax.DotDotDot) {
						p.Bump(syntax.DotDotDot)
					}
					p.expectExpression()
				}
				p.expectJsxBrace(contextJsxChild)
				m.Complete(p.Parser, syntax.JsxExpressionChild)
			case syntax.Lt:
				p.parseJsxAnyElement(true)
			case syntax.EOF, syntax.LtSlash:
				return
			default:
				// A child expression that ended early leaves a regular token.
				p.Relex(contextJsxChild)
				if p.At(syntax.JsxTextLit) || p.At(syntax.LBrace) || p.At(syntax.Lt) || p.At(syntax.LtSlash) {
					continue
				}
				b := p.Start()
				p.BumpWithContext(p.Cur(), contextJsxChild)
				b.Complete(p.Parser, syntax.JsBogus)
			}
		}
	})
	list.Complete(p.Parser, syntax.JsxChildList)
}
