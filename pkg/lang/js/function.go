package js

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// parseFunction parses a function declaration or expression, including the
// optional `async` prefix and generator star.
func (p *jsParser) parseFunction(kind syntax.Kind, isExpr bool) parser.CompletedMarker {
	m := p.Start()
	async := false
	if p.atContextual("async") {
		p.bumpContextual(syntax.AsyncKw)
		async = true
	}
	p.Bump(syntax.FunctionKw)
	generator := p.Eat(syntax.Star)

	switch {
	case p.atBindingIdentifier() || (p.At(syntax.Ident) && isExpr):
		b := p.Start()
		p.BumpRemap(syntax.Ident)
		b.Complete(p.Parser, syntax.JsIdentifierBinding)
	case !isExpr && !p.inExportDefault():
		p.ErrorExpected("a function name")
		p.Missing()
	default:
		p.Missing()
	}

	p.parseFunctionSignatureAndBody(async, generator)
	return m.Complete(p.Parser, kind)
}

// inExportDefault is set while parsing `export default function () {}`.
func (p *jsParser) inExportDefault() bool { return p.exportDefault }

func (p *jsParser) parseFunctionSignatureAndBody(async, generator bool) {
	p.withState(func(s *state) {
		s.inFunction = true
		s.inAsync = async
		s.inGenerator = generator
	}, func() {
		if p.At(syntax.Lt) {
			p.parseTypeParameters()
		}
		p.expectParameters()
		if p.At(syntax.Colon) {
			p.parseTypeAnnotation(syntax.TsReturnTypeAnnotation)
		}
		if p.At(syntax.LBrace) {
			p.parseFunctionBody()
		} else if p.opts.TypeScript && (p.At(syntax.Semicolon) || p.HasPrecedingLineBreak()) {
			// Overload signature.
			p.semicolon()
		} else {
			p.ErrorExpected("a function body")
			p.Missing()
		}
	})
}

func (p *jsParser) parseFunctionBody() {
	m := p.Start()
	p.Bump(syntax.LBrace)
	p.withState(func(s *state) { s.inFunction = true; s.noIn = false }, func() {
		p.parseStatementList(false, true)
	})
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.JsFunctionBody)
}

func (p *jsParser) expectParameters() {
	if p.At(syntax.LParen) {
		p.parseParameters()
		return
	}
	p.ErrorExpected("a parameter list")
	p.Missing()
}

func (p *jsParser) parseParameters() {
	m := p.Start()
	p.Bump(syntax.LParen)
	list := p.Start()
	p.withState(func(s *state) { s.noIn = false }, func() {
		for !p.At(syntax.RParen) && !p.At(syntax.EOF) {
			if !p.parseParameter() {
				p.ErrorExpected("a parameter")
				recovery := parser.NewRecovery(syntax.JsBogusParameter, parameterRecovery)
				if _, err := recovery.Recover(p.Parser); err != nil {
					return
				}
			}
			if p.At(syntax.RParen) {
				break
			}
			if !p.Expect(syntax.Comma) {
				return
			}
		}
	})
	list.Complete(p.Parser, syntax.JsParameterList)
	p.Expect(syntax.RParen)
	m.Complete(p.Parser, syntax.JsParameters)
}

//nolint:gochecknoglobals // Static modifier table
var parameterModifiers = map[string]syntax.Kind{
	"public":    syntax.PublicKw,
	"private":   syntax.PrivateKw,
	"protected": syntax.ProtectedKw,
	"readonly":  syntax.ReadonlyKw,
	"override":  syntax.OverrideKw,
}

func (p *jsParser) parseParameter() bool {
	if p.At(syntax.DotDotDot) {
		m := p.Start()
		p.Bump(syntax.DotDotDot)
		if !p.parseBinding() {
			p.Missing()
		}
		if p.At(syntax.Colon) {
			p.parseTypeAnnotation(syntax.TsTypeAnnotation)
		}
		m.Complete(p.Parser, syntax.JsRestParameter)
		return true
	}

	m := p.Start()
	if p.At(syntax.Ident) {
		if kw, ok := parameterModifiers[p.CurText()]; ok && (p.NthAt(1, syntax.Ident) || p.NthAt(1, syntax.LBrace) || p.NthAt(1, syntax.LBrack)) {
			mods := p.Start()
			for p.At(syntax.Ident) {
				kw, ok = parameterModifiers[p.CurText()]
				if !ok || !(p.NthAt(1, syntax.Ident) || p.NthAt(1, syntax.LBrace) || p.NthAt(1, syntax.LBrack)) {
					break
				}
				start := p.CurRange().Start
				p.bumpContextual(kw)
				p.tsOnly("parameter properties", start)
			}
			mods.Complete(p.Parser, syntax.JsModifierList)
		}
	}
	if p.At(syntax.ThisKw) && p.opts.TypeScript {
		b := p.Start()
		p.BumpRemap(syntax.Ident)
		b.Complete(p.Parser, syntax.JsIdentifierBinding)
	} else if !p.parseBinding() {
		m.Abandon(p.Parser)
		return false
	}
	if p.At(syntax.Question) {
		start := p.CurRange().Start
		p.Bump(syntax.Question)
		p.tsOnly("optional parameters", start)
	}
	if p.At(syntax.Colon) {
		p.parseTypeAnnotation(syntax.TsTypeAnnotation)
	}
	if p.At(syntax.Eq) {
		p.parseInitializer()
	}
	m.Complete(p.Parser, syntax.JsFormalParameter)
	return true
}

// parseBinding parses an identifier, array or object binding pattern.
func (p *jsParser) parseBinding() bool {
	switch {
	case p.atBindingIdentifier():
		m := p.Start()
		p.BumpAny()
		m.Complete(p.Parser, syntax.JsIdentifierBinding)
	case p.At(syntax.LBrack):
		p.parseArrayBindingPattern()
	case p.At(syntax.LBrace):
		p.parseObjectBindingPattern()
	case p.Cur().IsKeyword() && syntax.ReservedKeyword(p.Cur()):
		p.ErrorHere("`" + p.CurText() + "` is a reserved word and cannot be used as an identifier")
		m := p.Start()
		p.BumpAny()
		m.Complete(p.Parser, syntax.JsBogusBinding)
	default:
		return false
	}
	return true
}

func (p *jsParser) expectBinding() {
	if !p.parseBinding() {
		p.ErrorExpected("an identifier, an array pattern or an object pattern")
		p.Missing()
	}
}

func (p *jsParser) parseArrayBindingPattern() {
	m := p.Start()
	p.Bump(syntax.LBrack)
	list := p.Start()
	for !p.At(syntax.RBrack) && !p.At(syntax.EOF) {
		switch {
		case p.At(syntax.Comma):
			h := p.Start()
			h.Complete(p.Parser, syntax.JsArrayHole)
		case p.At(syntax.DotDotDot):
			r := p.Start()
			p.Bump(syntax.DotDotDot)
			p.expectBinding()
			r.Complete(p.Parser, syntax.JsBindingPatternRest)
		default:
			e := p.Start()
			if !p.parseBinding() {
				e.Abandon(p.Parser)
				p.ErrorExpected("a binding")
				recovery := parser.NewRecovery(syntax.JsBogusBinding, bindingRecovery)
				if _, err := recovery.Recover(p.Parser); err != nil {
					list.Complete(p.Parser, syntax.JsArrayBindingPatternElementList)
					p.Expect(syntax.RBrack)
					m.Complete(p.Parser, syntax.JsArrayBindingPattern)
					return
				}
				break
			}
			if p.At(syntax.Eq) {
				p.parseInitializer()
			}
			e.Complete(p.Parser, syntax.JsArrayBindingPatternElement)
		}
		if p.At(syntax.RBrack) || !p.Expect(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.JsArrayBindingPatternElementList)
	p.Expect(syntax.RBrack)
	m.Complete(p.Parser, syntax.JsArrayBindingPattern)
}

func (p *jsParser) parseObjectBindingPattern() {
	m := p.Start()
	p.Bump(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		e := p.Start()
		switch {
		case p.At(syntax.DotDotDot):
			p.Bump(syntax.DotDotDot)
			p.expectBinding()
			e.Complete(p.Parser, syntax.JsBindingPatternRest)
		case p.At(syntax.Ident) && !p.NthAt(1, syntax.Colon):
			b := p.Start()
			p.BumpAny()
			b.Complete(p.Parser, syntax.JsIdentifierBinding)
			if p.At(syntax.Eq) {
				p.parseInitializer()
			}
			e.Complete(p.Parser, syntax.JsObjectBindingPatternShorthandProperty)
		default:
			if !p.parsePropertyName() {
				e.Abandon(p.Parser)
				p.ErrorExpected("a property name")
				recovery := parser.NewRecovery(syntax.JsBogusBinding, bindingRecovery)
				if _, err := recovery.Recover(p.Parser); err != nil {
					list.Complete(p.Parser, syntax.JsObjectBindingPatternPropertyList)
					p.Expect(syntax.RBrace)
					m.Complete(p.Parser, syntax.JsObjectBindingPattern)
					return
				}
				break
			}
			p.Expect(syntax.Colon)
			p.expectBinding()
			if p.At(syntax.Eq) {
				p.parseInitializer()
			}
			e.Complete(p.Parser, syntax.JsObjectBindingPatternProperty)
		}
		if p.At(syntax.RBrace) || !p.Expect(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.JsObjectBindingPatternPropertyList)
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.JsObjectBindingPattern)
}

// parseMethodRest parses the parameters, return type and body of a method.
func (p *jsParser) parseMethodRest(async, generator bool) {
	if p.At(syntax.Question) && p.opts.TypeScript {
		p.Bump(syntax.Question)
	}
	p.parseFunctionSignatureAndBody(async, generator)
}

// parseAccessorRest parses `()` or `(value)` and the body of a getter or setter.
func (p *jsParser) parseAccessorRest(setter bool) {
	p.withState(func(s *state) {
		s.inFunction = true
		s.inAsync = false
		s.inGenerator = false
	}, func() {
		if setter {
			p.expectParameters()
		} else {
			p.Expect(syntax.LParen)
			p.Expect(syntax.RParen)
		}
		if p.At(syntax.Colon) {
			p.parseTypeAnnotation(syntax.TsReturnTypeAnnotation)
		}
		if p.At(syntax.LBrace) {
			p.parseFunctionBody()
		} else if p.opts.TypeScript {
			p.semicolon()
		} else {
			p.ErrorExpected("a function body")
			p.Missing()
		}
	})
}
