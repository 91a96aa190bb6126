package js

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func (p *jsParser) parseClass(kind syntax.Kind, isExpr bool) parser.CompletedMarker {
	m := p.Start()
	if p.atContextual("abstract") {
		start := p.CurRange().Start
		p.bumpContextual(syntax.AbstractKw)
		p.tsOnly("abstract classes", start)
	}
	p.Bump(syntax.ClassKw)

	switch {
	case p.At(syntax.Ident) && !(p.CurText() == "implements" && isExpr):
		b := p.Start()
		p.BumpAny()
		b.Complete(p.Parser, syntax.JsIdentifierBinding)
	case !isExpr && !p.exportDefault:
		p.ErrorExpected("a class name")
		p.Missing()
	default:
		p.Missing()
	}

	if p.At(syntax.Lt) {
		p.parseTypeParameters()
	}
	if p.At(syntax.ExtendsKw) {
		e := p.Start()
		p.Bump(syntax.ExtendsKw)
		if _, ok := p.parseLeftHandSide(); !ok {
			p.ErrorExpected("an expression")
			p.Missing()
		}
		if p.At(syntax.Lt) && p.opts.TypeScript {
			p.parseTypeArguments()
		}
		e.Complete(p.Parser, syntax.JsExtendsClause)
	}
	if p.atContextual("implements") {
		i := p.Start()
		start := p.CurRange().Start
		p.bumpContextual(syntax.ImplementsKw)
		p.tsOnly("implements clauses", start)
		p.parseTypeList()
		i.Complete(p.Parser, syntax.TsImplementsClause)
	}

	p.Expect(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		if !p.parseClassMember() {
			p.ErrorExpected("a class member")
			recovery := parser.NewRecovery(syntax.JsBogusMember, syntax.KindSetOf(syntax.Semicolon, syntax.RBrace)).WithLineBreak()
			if _, err := recovery.Recover(p.Parser); err != nil {
				b := p.Start()
				p.BumpAny()
				b.Complete(p.Parser, syntax.JsBogusMember)
			}
		}
	}
	list.Complete(p.Parser, syntax.JsClassMemberList)
	p.Expect(syntax.RBrace)
	return m.Complete(p.Parser, kind)
}

//nolint:gochecknoglobals // Static modifier table
var classModifiers = map[string]syntax.Kind{
	"static":    syntax.StaticKw,
	"public":    syntax.PublicKw,
	"private":   syntax.PrivateKw,
	"protected": syntax.ProtectedKw,
	"readonly":  syntax.ReadonlyKw,
	"abstract":  syntax.AbstractKw,
	"declare":   syntax.DeclareKw,
	"override":  syntax.OverrideKw,
}

// atModifier reports whether the current identifier is a modifier rather
// than a member named like one (`static() {}`, `readonly = 1`).
func (p *jsParser) atModifier() bool {
	if !p.At(syntax.Ident) {
		return false
	}
	if _, ok := classModifiers[p.CurText()]; !ok {
		return false
	}
	if p.NthHasPrecedingLineBreak(1) {
		return false
	}
	return p.atPropertyNameAfter(1) || p.NthAt(1, syntax.Star)
}

//nolint:gocyclo,cyclop,funlen // Class member dispatch
func (p *jsParser) parseClassMember() bool {
	if p.At(syntax.Semicolon) {
		m := p.Start()
		p.Bump(syntax.Semicolon)
		m.Complete(p.Parser, syntax.JsEmptyClassMember)
		return true
	}

	m := p.Start()
	mods := p.Start()
	for p.atModifier() {
		kw := classModifiers[p.CurText()]
		start := p.CurRange().Start
		p.bumpContextual(kw)
		if kw != syntax.StaticKw {
			p.tsOnly("accessibility modifiers", start)
		}
	}
	mods.Complete(p.Parser, syntax.JsModifierList)

	if (p.atContextual("get") || p.atContextual("set")) && p.atPropertyNameAfter(1) && !p.NthHasPrecedingLineBreak(1) {
		kind := syntax.JsGetterClassMember
		kw := syntax.GetKw
		if p.CurText() == "set" {
			kind, kw = syntax.JsSetterClassMember, syntax.SetKw
		}
		p.bumpContextual(kw)
		p.parsePropertyName()
		p.parseAccessorRest(kind == syntax.JsSetterClassMember)
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

	isConstructor := p.atContextual("constructor") ||
		(p.At(syntax.StringLit) && strings.Trim(p.CurText(), `"'`) == "constructor")
	if !p.parsePropertyName() {
		if async || generator {
			p.ErrorExpected("a method name")
			p.Missing()
			p.parseMethodRest(async, generator)
			m.Complete(p.Parser, syntax.JsMethodClassMember)
			return true
		}
		m.Abandon(p.Parser)
		return false
	}

	if p.At(syntax.LParen) || p.At(syntax.Lt) || (p.At(syntax.Question) && p.NthAt(1, syntax.LParen)) {
		if isConstructor && !async && !generator {
			p.parseFunctionSignatureAndBody(false, false)
			m.Complete(p.Parser, syntax.JsConstructorClassMember)
			return true
		}
		p.parseMethodRest(async, generator)
		m.Complete(p.Parser, syntax.JsMethodClassMember)
		return true
	}

	// Property.
	if p.At(syntax.Question) || p.At(syntax.Bang) {
		start := p.CurRange().Start
		p.BumpAny()
		p.tsOnly("optional and definite properties", start)
	}
	if p.At(syntax.Colon) {
		p.parseTypeAnnotation(syntax.TsTypeAnnotation)
	}
	if p.At(syntax.Eq) {
		p.withState(func(s *state) {
			s.inFunction = true
			s.inAsync = false
			s.inGenerator = false
		}, p.parseInitializer)
	}
	p.semicolon()
	m.Complete(p.Parser, syntax.JsPropertyClassMember)
	return true
}
