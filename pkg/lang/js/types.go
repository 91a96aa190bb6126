package js

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

//nolint:gochecknoglobals // Static keyword table
var predefinedTypes = map[string]syntax.Kind{
	"any":       syntax.AnyKw,
	"unknown":   syntax.UnknownKw,
	"number":    syntax.NumberKw,
	"string":    syntax.StringKw,
	"boolean":   syntax.BooleanKw,
	"bigint":    syntax.BigintKw,
	"symbol":    syntax.SymbolKw,
	"never":     syntax.NeverKw,
	"object":    syntax.ObjectKw,
	"undefined": syntax.UndefinedKw,
}

//nolint:gochecknoglobals // Static recovery set
var typeMemberRecovery = syntax.KindSetOf(syntax.Semicolon, syntax.Comma, syntax.RBrace)

// parseTypeAnnotation parses `: Type` as a node of the given kind.
func (p *jsParser) parseTypeAnnotation(kind syntax.Kind) {
	m := p.Start()
	start := p.CurRange().Start
	p.Bump(syntax.Colon)
	if kind == syntax.TsReturnTypeAnnotation && p.atContextual("asserts") && p.NthAt(1, syntax.Ident) {
		p.BumpAny()
	}
	p.expectType()
	if kind == syntax.TsReturnTypeAnnotation && p.atContextual("is") && !p.HasPrecedingLineBreak() {
		p.bumpContextual(syntax.IsKw)
		p.expectType()
	}
	p.tsOnly("type annotations", start)
	m.Complete(p.Parser, kind)
}

func (p *jsParser) expectType() {
	if !p.parseType() {
		p.ErrorExpected("a type")
		b := p.Start()
		if !p.At(syntax.EOF) && !p.AtSet(bindingRecovery) && !p.At(syntax.LBrace) && !p.At(syntax.FatArrow) {
			p.BumpAny()
			b.Complete(p.Parser, syntax.TsBogusType)
			return
		}
		b.Abandon(p.Parser)
		p.Missing()
	}
}

// parseType parses a full type including conditional and function types.
func (p *jsParser) parseType() bool {
	if p.At(syntax.NewKw) || p.At(syntax.Lt) || (p.At(syntax.LParen) && p.atFunctionType()) {
		return p.parseFunctionType()
	}
	check, ok := p.parseUnionType()
	if !ok {
		return false
	}
	if p.At(syntax.ExtendsKw) && !p.HasPrecedingLineBreak() {
		m := check.Precede(p.Parser)
		p.Bump(syntax.ExtendsKw)
		if _, ok := p.parseUnionType(); !ok {
			p.ErrorExpected("a type")
			p.Missing()
		}
		p.Expect(syntax.Question)
		p.expectType()
		p.Expect(syntax.Colon)
		p.expectType()
		m.Complete(p.Parser, syntax.TsConditionalType)
	}
	return true
}

// atFunctionType decides whether `(` starts a function type rather than a
// parenthesized type.
func (p *jsParser) atFunctionType() bool {
	switch p.Nth(1) {
	case syntax.RParen, syntax.DotDotDot, syntax.LBrace, syntax.LBrack:
		return true
	case syntax.Ident, syntax.ThisKw:
		switch p.Nth(2) {
		case syntax.Colon, syntax.Comma, syntax.Question, syntax.Eq:
			return true
		case syntax.RParen:
			return p.NthAt(3, syntax.FatArrow)
		}
	}
	return false
}

func (p *jsParser) parseFunctionType() bool {
	m := p.Start()
	p.Eat(syntax.NewKw)
	if p.At(syntax.Lt) {
		p.parseTypeParameters()
	}
	p.expectParameters()
	p.Expect(syntax.FatArrow)
	p.expectType()
	m.Complete(p.Parser, syntax.TsFunctionType)
	return true
}

func (p *jsParser) parseUnionType() (parser.CompletedMarker, bool) {
	return p.parseSeparatedType(syntax.Pipe, syntax.TsUnionType, syntax.TsUnionTypeVariantList, p.parseIntersectionType)
}

func (p *jsParser) parseIntersectionType() (parser.CompletedMarker, bool) {
	return p.parseSeparatedType(syntax.Amp, syntax.TsIntersectionType, syntax.TsIntersectionTypeElementList, p.parseTypeOperator)
}

// parseSeparatedType parses `A | B | C` (or `&`) with an optional leading
// separator. A single operand without a leading separator is returned as is.
func (p *jsParser) parseSeparatedType(
	sep, kind, listKind syntax.Kind,
	operand func() (parser.CompletedMarker, bool),
) (parser.CompletedMarker, bool) {
	m := p.Start()
	leading := p.Eat(sep)
	first, ok := operand()
	if !ok {
		if !leading {
			m.Abandon(p.Parser)
			return parser.CompletedMarker{}, false
		}
		p.ErrorExpected("a type")
		p.Missing()
	}
	if !leading && !p.At(sep) {
		m.Abandon(p.Parser)
		return first, true
	}

	var list parser.Marker
	if ok {
		list = first.Precede(p.Parser)
	} else {
		list = p.Start()
	}
	for p.Eat(sep) {
		if _, ok := operand(); !ok {
			p.ErrorExpected("a type")
			p.Missing()
			break
		}
	}
	list.Complete(p.Parser, listKind)
	return m.Complete(p.Parser, kind), true
}

func (p *jsParser) parseTypeOperator() (parser.CompletedMarker, bool) {
	var kw syntax.Kind
	switch {
	case p.atContextual("keyof"):
		kw = syntax.KeyofKw
	case p.atContextual("unique"):
		kw = syntax.UniqueKw
	case p.atContextual("readonly"):
		kw = syntax.ReadonlyKw
	case p.atContextual("infer"):
		kw = syntax.Ident
	default:
		return p.parsePostfixType()
	}
	m := p.Start()
	p.BumpRemap(kw)
	if _, ok := p.parseTypeOperator(); !ok {
		p.ErrorExpected("a type")
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.TsTypeOperatorType), true
}

func (p *jsParser) parsePostfixType() (parser.CompletedMarker, bool) {
	ty, ok := p.parsePrimaryType()
	if !ok {
		return ty, false
	}
	for p.At(syntax.LBrack) && !p.HasPrecedingLineBreak() {
		m := ty.Precede(p.Parser)
		p.Bump(syntax.LBrack)
		if p.Eat(syntax.RBrack) {
			ty = m.Complete(p.Parser, syntax.TsArrayType)
			continue
		}
		p.expectType()
		p.Expect(syntax.RBrack)
		ty = m.Complete(p.Parser, syntax.TsIndexedAccessType)
	}
	return ty, true
}

//nolint:gocyclo,cyclop,funlen // Primary type dispatch
func (p *jsParser) parsePrimaryType() (parser.CompletedMarker, bool) {
	m := p.Start()
	switch p.Cur() {
	case syntax.Ident:
		if kw, ok := predefinedTypes[p.CurText()]; ok && !p.NthAt(1, syntax.Dot) {
			p.BumpRemap(kw)
			return m.Complete(p.Parser, syntax.TsPredefinedType), true
		}
		p.parseTypeName()
		if p.At(syntax.Lt) && !p.HasPrecedingLineBreak() {
			p.parseTypeArguments()
		}
		return m.Complete(p.Parser, syntax.TsReferenceType), true
	case syntax.VoidKw, syntax.ThisKw:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.TsPredefinedType), true
	case syntax.NullKw, syntax.TrueKw, syntax.FalseKw, syntax.StringLit, syntax.NumberLit, syntax.BigintLit:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.TsLiteralType), true
	case syntax.Minus:
		if p.NthAt(1, syntax.NumberLit) || p.NthAt(1, syntax.BigintLit) {
			p.Bump(syntax.Minus)
			p.BumpAny()
			return m.Complete(p.Parser, syntax.TsLiteralType), true
		}
	case syntax.Backtick:
		p.parseTemplateBody()
		return m.Complete(p.Parser, syntax.TsLiteralType), true
	case syntax.TypeofKw:
		p.Bump(syntax.TypeofKw)
		if p.At(syntax.ImportKw) {
			p.BumpRemap(syntax.Ident)
		}
		p.parseTypeName()
		if p.At(syntax.Lt) && !p.HasPrecedingLineBreak() {
			p.parseTypeArguments()
		}
		return m.Complete(p.Parser, syntax.TsTypeofType), true
	case syntax.LParen:
		p.Bump(syntax.LParen)
		p.expectType()
		p.Expect(syntax.RParen)
		return m.Complete(p.Parser, syntax.TsParenthesizedType), true
	case syntax.LBrace:
		m.Abandon(p.Parser)
		return p.parseObjectType(), true
	case syntax.LBrack:
		p.Bump(syntax.LBrack)
		list := p.Start()
		for !p.At(syntax.RBrack) && !p.At(syntax.EOF) {
			if p.At(syntax.DotDotDot) {
				r := p.Start()
				p.Bump(syntax.DotDotDot)
				p.expectType()
				r.Complete(p.Parser, syntax.TsTypeOperatorType)
			} else if !p.parseType() {
				p.ErrorExpected("a type")
				break
			}
			p.Eat(syntax.Question)
			if p.At(syntax.RBrack) || !p.Expect(syntax.Comma) {
				break
			}
		}
		list.Complete(p.Parser, syntax.TsTupleTypeElementList)
		p.Expect(syntax.RBrack)
		return m.Complete(p.Parser, syntax.TsTupleType), true
	}
	m.Abandon(p.Parser)
	return parser.CompletedMarker{}, false
}

// parseTypeName parses `A` or a qualified name `A.B.C`.
func (p *jsParser) parseTypeName() {
	r := p.Start()
	if p.atIdentifierName() {
		p.BumpRemap(syntax.Ident)
	} else {
		p.ErrorExpected("a type name")
		p.Missing()
	}
	name := r.Complete(p.Parser, syntax.JsReferenceIdentifier)
	for p.At(syntax.Dot) {
		q := name.Precede(p.Parser)
		p.Bump(syntax.Dot)
		n := p.Start()
		if p.atIdentifierName() {
			p.BumpRemap(syntax.Ident)
		} else {
			p.ErrorExpected("an identifier")
		}
		n.Complete(p.Parser, syntax.JsName)
		name = q.Complete(p.Parser, syntax.TsQualifiedName)
	}
}

func (p *jsParser) parseObjectType() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.LBrace)
	p.parseTypeMembers()
	p.Expect(syntax.RBrace)
	return m.Complete(p.Parser, syntax.TsObjectType)
}

func (p *jsParser) parseTypeMembers() {
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		if !p.parseTypeMember() {
			p.ErrorExpected("a type member")
			recovery := parser.NewRecovery(syntax.JsBogusMember, typeMemberRecovery)
			if _, err := recovery.Recover(p.Parser); err != nil {
				b := p.Start()
				p.BumpAny()
				b.Complete(p.Parser, syntax.JsBogusMember)
			}
			p.Eat(syntax.Semicolon)
			p.Eat(syntax.Comma)
		}
	}
	list.Complete(p.Parser, syntax.TsTypeMemberList)
}

func (p *jsParser) parseTypeMemberSeparator() {
	if p.Eat(syntax.Semicolon) || p.Eat(syntax.Comma) {
		return
	}
	if !p.At(syntax.RBrace) && !p.HasPrecedingLineBreak() {
		p.ErrorExpected("`,` or `;`")
	}
}

//nolint:gocyclo,cyclop // Type member dispatch
func (p *jsParser) parseTypeMember() bool {
	m := p.Start()
	if p.atContextual("readonly") && p.atPropertyNameAfter(1) {
		p.bumpContextual(syntax.ReadonlyKw)
	}

	// Index signature: `[key: string]: T`.
	if p.At(syntax.LBrack) && p.NthAt(1, syntax.Ident) && p.NthAt(2, syntax.Colon) {
		p.Bump(syntax.LBrack)
		param := p.Start()
		b := p.Start()
		p.BumpAny()
		b.Complete(p.Parser, syntax.JsIdentifierBinding)
		p.parseTypeAnnotation(syntax.TsTypeAnnotation)
		param.Complete(p.Parser, syntax.TsIndexSignatureParameter)
		p.Expect(syntax.RBrack)
		if p.At(syntax.Colon) {
			p.parseTypeAnnotation(syntax.TsTypeAnnotation)
		} else {
			p.ErrorExpected("a type annotation")
			p.Missing()
		}
		p.parseTypeMemberSeparator()
		m.Complete(p.Parser, syntax.TsIndexSignatureTypeMember)
		return true
	}

	// Call and construct signatures.
	if p.At(syntax.LParen) || p.At(syntax.Lt) || (p.At(syntax.NewKw) && (p.NthAt(1, syntax.LParen) || p.NthAt(1, syntax.Lt))) {
		p.Eat(syntax.NewKw)
		p.parseSignatureRest()
		m.Complete(p.Parser, syntax.TsMethodSignatureTypeMember)
		return true
	}

	if p.atContextual("get") && p.atPropertyNameAfter(1) {
		p.bumpContextual(syntax.GetKw)
	} else if p.atContextual("set") && p.atPropertyNameAfter(1) {
		p.bumpContextual(syntax.SetKw)
	}
	if !p.parsePropertyName() {
		m.Abandon(p.Parser)
		return false
	}
	p.Eat(syntax.Question)
	if p.At(syntax.LParen) || p.At(syntax.Lt) {
		p.parseSignatureRest()
		m.Complete(p.Parser, syntax.TsMethodSignatureTypeMember)
		return true
	}
	if p.At(syntax.Colon) {
		p.parseTypeAnnotation(syntax.TsTypeAnnotation)
	}
	p.parseTypeMemberSeparator()
	m.Complete(p.Parser, syntax.TsPropertySignatureTypeMember)
	return true
}

func (p *jsParser) parseSignatureRest() {
	if p.At(syntax.Lt) {
		p.parseTypeParameters()
	}
	p.expectParameters()
	if p.At(syntax.Colon) {
		p.parseTypeAnnotation(syntax.TsReturnTypeAnnotation)
	}
	p.parseTypeMemberSeparator()
}

// parseTypeParameters parses `<T extends U = D, ...>`.
func (p *jsParser) parseTypeParameters() {
	m := p.Start()
	start := p.CurRange().Start
	p.Bump(syntax.Lt)
	list := p.Start()
	for !p.atTypeClose() && !p.At(syntax.EOF) {
		tp := p.Start()
		for p.atContextual("in") || p.atContextual("out") || p.At(syntax.ConstKw) || p.At(syntax.InKw) {
			p.BumpAny()
		}
		if p.At(syntax.Ident) {
			b := p.Start()
			p.BumpAny()
			b.Complete(p.Parser, syntax.JsIdentifierBinding)
		} else {
			p.ErrorExpected("a type parameter")
			tp.Abandon(p.Parser)
			break
		}
		if p.At(syntax.ExtendsKw) {
			e := p.Start()
			p.Bump(syntax.ExtendsKw)
			p.expectType()
			e.Complete(p.Parser, syntax.TsExtendsClause)
		}
		if p.Eat(syntax.Eq) {
			p.expectType()
		}
		tp.Complete(p.Parser, syntax.TsTypeParameter)
		if p.atTypeClose() || !p.Expect(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.TsTypeParameterList)
	p.expectTypeClose()
	p.tsOnly("type parameters", start)
	m.Complete(p.Parser, syntax.TsTypeParameters)
}

// parseTypeArguments parses `<A, B>`, splitting `>>` where nested arguments close.
func (p *jsParser) parseTypeArguments() {
	m := p.Start()
	start := p.CurRange().Start
	p.Bump(syntax.Lt)
	list := p.Start()
	for !p.atTypeClose() && !p.At(syntax.EOF) {
		if !p.parseType() {
			p.ErrorExpected("a type")
			break
		}
		if p.atTypeClose() || !p.Expect(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.TsTypeArgumentList)
	p.expectTypeClose()
	p.tsOnly("type arguments", start)
	m.Complete(p.Parser, syntax.TsTypeArguments)
}

func (p *jsParser) atTypeClose() bool {
	switch p.Cur() {
	case syntax.Gt, syntax.Shr, syntax.UShr, syntax.GtEq, syntax.ShrEq, syntax.UShrEq:
		return true
	}
	return false
}

func (p *jsParser) expectTypeClose() {
	if p.atTypeClose() && !p.At(syntax.Gt) {
		p.Relex(contextTypeArgs)
	}
	p.Expect(syntax.Gt)
}

// parseTypeList parses comma separated type references, as in
// `implements A, B` and `extends A, B`.
func (p *jsParser) parseTypeList() {
	list := p.Start()
	for {
		if !p.At(syntax.Ident) {
			p.ErrorExpected("a type reference")
			p.Missing()
			break
		}
		r := p.Start()
		p.parseTypeName()
		if p.At(syntax.Lt) {
			p.parseTypeArguments()
		}
		r.Complete(p.Parser, syntax.TsReferenceType)
		if !p.Eat(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.TsTypeList)
}

// parseTypeAlias parses `type Name<T> = Type;`.
func (p *jsParser) parseTypeAlias() {
	m := p.Start()
	start := p.CurRange().Start
	p.bumpContextual(syntax.TypeKw)
	b := p.Start()
	p.BumpAny()
	b.Complete(p.Parser, syntax.JsIdentifierBinding)
	if p.At(syntax.Lt) {
		p.parseTypeParameters()
	}
	p.Expect(syntax.Eq)
	p.expectType()
	p.semicolon()
	p.tsOnly("type aliases", start)
	m.Complete(p.Parser, syntax.TsTypeAliasDeclaration)
}

// parseInterface parses `interface Name<T> extends A, B { members }`.
func (p *jsParser) parseInterface() {
	m := p.Start()
	start := p.CurRange().Start
	p.bumpContextual(syntax.InterfaceKw)
	b := p.Start()
	p.BumpAny()
	b.Complete(p.Parser, syntax.JsIdentifierBinding)
	if p.At(syntax.Lt) {
		p.parseTypeParameters()
	}
	if p.At(syntax.ExtendsKw) {
		e := p.Start()
		p.Bump(syntax.ExtendsKw)
		p.parseTypeList()
		e.Complete(p.Parser, syntax.TsExtendsClause)
	}
	p.tsOnly("interfaces", start)
	if !p.Expect(syntax.LBrace) {
		m.Complete(p.Parser, syntax.TsInterfaceDeclaration)
		return
	}
	p.parseTypeMembers()
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.TsInterfaceDeclaration)
}

// parseEnum parses `[const] enum Name { A, B = 1 }`.
func (p *jsParser) parseEnum() {
	m := p.Start()
	start := p.CurRange().Start
	p.Eat(syntax.ConstKw)
	p.Expect(syntax.EnumKw)
	p.tsOnly("enums", start)
	if p.At(syntax.Ident) {
		b := p.Start()
		p.BumpAny()
		b.Complete(p.Parser, syntax.JsIdentifierBinding)
	} else {
		p.ErrorExpected("an enum name")
		p.Missing()
	}
	p.Expect(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		em := p.Start()
		if !p.parsePropertyName() {
			em.Abandon(p.Parser)
			p.ErrorExpected("an enum member")
			recovery := parser.NewRecovery(syntax.JsBogusMember, memberRecovery)
			if _, err := recovery.Recover(p.Parser); err != nil {
				break
			}
		} else {
			if p.At(syntax.Eq) {
				p.parseInitializer()
			}
			em.Complete(p.Parser, syntax.TsEnumMember)
		}
		if p.At(syntax.RBrace) || !p.Expect(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.TsEnumMemberList)
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.TsEnumDeclaration)
}
