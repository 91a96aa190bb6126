package js

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// parseTemplateBody parses the backtick-delimited part of a template
// literal. Chunks are lexed in the template context; substitutions switch
// back to the regular context until their closing brace.
func (p *jsParser) parseTemplateBody() {
	p.BumpWithContext(syntax.Backtick, contextTemplate)
	list := p.Start()
	for {
		switch p.Cur() {
		case syntax.TemplateChunk:
			m := p.Start()
			p.BumpWithContext(syntax.TemplateChunk, contextTemplate)
			m.Complete(p.Parser, syntax.JsTemplateChunkElement)
			continue
		case syntax.DollarCurly:
			m := p.Start()
			p.Bump(syntax.DollarCurly)
			p.withState(func(s *state) { s.noIn = false }, p.expectExpression)
			if p.At(syntax.RBrace) {
				p.BumpWithContext(syntax.RBrace, contextTemplate)
			} else {
				p.ErrorExpected("`}`")
				p.Missing()
			}
			m.Complete(p.Parser, syntax.JsTemplateElement)
			continue
		}
		break
	}
	list.Complete(p.Parser, syntax.JsTemplateElementList)
	if p.At(syntax.Backtick) {
		p.Bump(syntax.Backtick)
	} else {
		p.ErrorHere("unterminated template literal")
		p.Missing()
	}
}

func (p *jsParser) parseArray() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.LBrack)
	list := p.Start()
	p.withState(func(s *state) { s.noIn = false }, func() {
		for !p.At(syntax.RBrack) && !p.At(syntax.EOF) {
			switch {
			case p.At(syntax.Comma):
				h := p.Start()
				h.Complete(p.Parser, syntax.JsArrayHole)
			case p.At(syntax.DotDotDot):
				p.parseSpread()
			default:
				if _, ok := p.parseAssignment(); !ok {
					p.ErrorExpected("an expression")
					recovery := parser.NewRecovery(syntax.JsBogusExpression,
						syntax.KindSetOf(syntax.Comma, syntax.RBrack, syntax.Semicolon))
					if _, err := recovery.Recover(p.Parser); err != nil {
						return
					}
				}
			}
			if p.At(syntax.RBrack) {
				break
			}
			if !p.Expect(syntax.Comma) && !p.atExpressionStart() {
				return
			}
		}
	})
	list.Complete(p.Parser, syntax.JsArrayElementList)
	p.Expect(syntax.RBrack)
	return m.Complete(p.Parser, syntax.JsArrayExpression)
}

func (p *jsParser) parseObject() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.LBrace)
	list := p.Start()
	p.withState(func(s *state) { s.noIn = false }, func() {
		for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
			if !p.parseObjectMember() {
				p.ErrorExpected("a property, a method or a spread")
				recovery := parser.NewRecovery(syntax.JsBogusMember, memberRecovery)
				if _, err := recovery.Recover(p.Parser); err != nil && !p.At(syntax.Comma) {
					return
				}
			}
			if p.At(syntax.RBrace) {
				break
			}
			if !p.Expect(syntax.Comma) && !p.atIdentifierName() && !p.At(syntax.LBrack) {
				return
			}
		}
	})
	list.Complete(p.Parser, syntax.JsObjectMemberList)
	p.Expect(syntax.RBrace)
	return m.Complete(p.Parser, syntax.JsObjectExpression)
}

// atPropertyNameAfter reports whether a property name starts at lookahead n.
func (p *jsParser) atPropertyNameAfter(n int) bool {
	k := p.Nth(n)
	return k == syntax.Ident || k.IsKeyword() || k == syntax.StringLit || k == syntax.NumberLit ||
		k == syntax.LBrack || k == syntax.Hash || k == syntax.BigintLit
}

//nolint:gocyclo,cyclop // Object member dispatch
func (p *jsParser) parseObjectMember() bool {
	if p.At(syntax.DotDotDot) {
		p.parseSpread()
		return true
	}
	m := p.Start()

	if (p.atContextual("get") || p.atContextual("set")) && p.atPropertyNameAfter(1) {
		kind := syntax.JsGetterObjectMember
		kw := syntax.GetKw
		if p.CurText() == "set" {
			kind, kw = syntax.JsSetterObjectMember, syntax.SetKw
		}
		p.bumpContextual(kw)
		p.parsePropertyName()
		p.parseAccessorRest(kind == syntax.JsSetterObjectMember)
		m.Complete(p.Parser, kind)
		return true
	}

	async := false
	if p.atContextual("async") && !p.NthHasPrecedingLineBreak(1) &&
		(p.atPropertyNameAfter(1) || p.NthAt(1, syntax.Star)) {
		p.bumpContextual(syntax.AsyncKw)
		async = true
	}
	generator := p.Eat(syntax.Star)
	if async || generator {
		p.parsePropertyName()
		p.parseMethodRest(async, generator)
		m.Complete(p.Parser, syntax.JsMethodObjectMember)
		return true
	}

	if p.At(syntax.Ident) && (p.NthAt(1, syntax.Comma) || p.NthAt(1, syntax.RBrace) || p.NthAt(1, syntax.Eq)) {
		r := p.Start()
		p.BumpAny()
		r.Complete(p.Parser, syntax.JsReferenceIdentifier)
		if p.At(syntax.Eq) {
			// Only valid as an assignment pattern: `({ a = 1 } = obj)`.
			p.parseInitializer()
		}
		m.Complete(p.Parser, syntax.JsShorthandPropertyObjectMember)
		return true
	}

	if !p.parsePropertyName() {
		m.Abandon(p.Parser)
		return false
	}
	switch {
	case p.At(syntax.LParen) || p.At(syntax.Lt):
		p.parseMethodRest(false, false)
		m.Complete(p.Parser, syntax.JsMethodObjectMember)
	default:
		p.Expect(syntax.Colon)
		p.expectAssignment()
		m.Complete(p.Parser, syntax.JsPropertyObjectMember)
	}
	return true
}

// parsePropertyName parses a literal, computed or private member name.
func (p *jsParser) parsePropertyName() bool {
	switch {
	case p.At(syntax.LBrack):
		m := p.Start()
		p.Bump(syntax.LBrack)
		p.withState(func(s *state) { s.noIn = false }, p.expectAssignment)
		p.Expect(syntax.RBrack)
		m.Complete(p.Parser, syntax.JsComputedMemberName)
	case p.At(syntax.Hash):
		p.parsePrivateName()
	case p.atIdentifierName():
		m := p.Start()
		p.BumpRemap(syntax.Ident)
		m.Complete(p.Parser, syntax.JsLiteralMemberName)
	case p.At(syntax.StringLit) || p.At(syntax.NumberLit) || p.At(syntax.BigintLit):
		m := p.Start()
		p.BumpAny()
		m.Complete(p.Parser, syntax.JsLiteralMemberName)
	default:
		return false
	}
	return true
}
