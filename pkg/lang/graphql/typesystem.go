package graphql

import (
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func (p *gqlParser) parseDescription() {
	if !p.At(syntax.StringLit) && !p.At(syntax.GraphqlBlockString) {
		return
	}
	m := p.Start()
	p.BumpAny()
	m.Complete(p.Parser, syntax.GraphqlDescription)
}

// parseTypeSystemDefinition parses schema, type, interface, union, enum,
// input, scalar and directive definitions and their extensions into one
// generic node shape.
func (p *gqlParser) parseTypeSystemDefinition() {
	m := p.Start()
	p.parseDescription()
	if p.atName("extend") {
		p.BumpRemap(syntax.GraphqlExtendKw)
	}
	kw, ok := typeSystemKeywords[p.CurText()]
	if !p.At(syntax.Ident) || !ok {
		p.ErrorExpected("a type system definition")
		p.recoverMember()
		m.Complete(p.Parser, syntax.GraphqlBogusDefinition)
		return
	}
	p.BumpRemap(kw)

	switch kw {
	case syntax.GraphqlSchemaKw:
		p.parseDirectives()
		if p.At(syntax.LBrace) {
			p.parseFieldsDefinition(false)
		}
	case syntax.GraphqlDirectiveKw:
		p.parseDirectiveDefinition()
	default:
		p.expectName("a type name")
		if kw == syntax.TypeKw || kw == syntax.InterfaceKw {
			p.parseImplementsInterfaces()
		}
		p.parseDirectives()
		switch kw {
		case syntax.TypeKw, syntax.InterfaceKw:
			if p.At(syntax.LBrace) {
				p.parseFieldsDefinition(false)
			}
		case syntax.GraphqlInputKw:
			if p.At(syntax.LBrace) {
				p.parseFieldsDefinition(true)
			}
		case syntax.EnumKw:
			if p.At(syntax.LBrace) {
				p.parseEnumValues()
			}
		case syntax.GraphqlUnionKw:
			if p.At(syntax.Eq) {
				p.parseUnionMembers()
			}
		}
	}
	m.Complete(p.Parser, syntax.GraphqlTypeSystemDefinition)
}

func (p *gqlParser) expectName(what string) {
	if p.At(syntax.Ident) {
		p.BumpAny()
		return
	}
	p.ErrorExpected(what)
	p.Missing()
}

func (p *gqlParser) parseImplementsInterfaces() {
	if !p.atName("implements") {
		return
	}
	m := p.Start()
	p.BumpRemap(syntax.GraphqlImplementsKw)
	p.parseSeparatedNames(syntax.Amp, syntax.GraphqlNameList)
	m.Complete(p.Parser, syntax.GraphqlImplementsInterfaces)
}

// parseSeparatedNames parses `A sep B sep C` with an optional leading sep.
func (p *gqlParser) parseSeparatedNames(sep, listKind syntax.Kind) {
	list := p.Start()
	p.Eat(sep)
	p.expectNamedType()
	for p.Eat(sep) {
		p.expectNamedType()
	}
	list.Complete(p.Parser, listKind)
}

func (p *gqlParser) parseUnionMembers() {
	m := p.Start()
	p.Bump(syntax.Eq)
	p.parseSeparatedNames(syntax.Pipe, syntax.GraphqlUnionMemberTypeList)
	m.Complete(p.Parser, syntax.GraphqlUnionMemberTypes)
}

func (p *gqlParser) parseFieldsDefinition(input bool) {
	m := p.Start()
	p.Bump(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		if p.Eat(syntax.Comma) {
			continue
		}
		if !p.At(syntax.Ident) && !p.At(syntax.StringLit) && !p.At(syntax.GraphqlBlockString) {
			p.ErrorExpected("a field definition")
			p.recoverMember()
			continue
		}
		if input {
			p.parseInputValueDefinition()
		} else {
			p.parseFieldDefinition()
		}
	}
	if input {
		list.Complete(p.Parser, syntax.GraphqlInputValueDefinitionList)
	} else {
		list.Complete(p.Parser, syntax.GraphqlFieldDefinitionList)
	}
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.GraphqlFieldsDefinition)
}

func (p *gqlParser) parseFieldDefinition() {
	m := p.Start()
	p.parseDescription()
	p.expectName("a field name")
	if p.At(syntax.LParen) {
		p.parseArgumentsDefinition()
	}
	p.Expect(syntax.Colon)
	p.expectType()
	p.parseDirectives()
	m.Complete(p.Parser, syntax.GraphqlFieldDefinition)
}

func (p *gqlParser) parseArgumentsDefinition() {
	m := p.Start()
	p.Bump(syntax.LParen)
	list := p.Start()
	for !p.At(syntax.RParen) && !p.At(syntax.EOF) && !p.At(syntax.RBrace) {
		if p.Eat(syntax.Comma) {
			continue
		}
		if !p.At(syntax.Ident) && !p.At(syntax.StringLit) && !p.At(syntax.GraphqlBlockString) {
			p.ErrorExpected("an argument definition")
			p.recoverMember()
			continue
		}
		p.parseInputValueDefinition()
	}
	list.Complete(p.Parser, syntax.GraphqlInputValueDefinitionList)
	p.Expect(syntax.RParen)
	m.Complete(p.Parser, syntax.GraphqlArgumentsDefinition)
}

func (p *gqlParser) parseInputValueDefinition() {
	m := p.Start()
	p.parseDescription()
	p.expectName("a name")
	p.Expect(syntax.Colon)
	p.expectType()
	p.parseDefaultValue()
	p.parseDirectives()
	m.Complete(p.Parser, syntax.GraphqlInputValueDefinition)
}

func (p *gqlParser) parseEnumValues() {
	m := p.Start()
	p.Bump(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		if p.Eat(syntax.Comma) {
			continue
		}
		if !p.At(syntax.Ident) && !p.At(syntax.StringLit) && !p.At(syntax.GraphqlBlockString) {
			p.ErrorExpected("an enum value")
			p.recoverMember()
			continue
		}
		value := p.Start()
		p.parseDescription()
		if p.At(syntax.Ident) {
			switch p.CurText() {
			case "true", "false", "null":
				p.ErrorHere("`" + p.CurText() + "` is not allowed as an enum value")
			}
		}
		p.expectName("an enum value")
		p.parseDirectives()
		value.Complete(p.Parser, syntax.GraphqlEnumValue)
	}
	list.Complete(p.Parser, syntax.GraphqlEnumValueList)
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.GraphqlEnumValuesDefinition)
}

func (p *gqlParser) parseDirectiveDefinition() {
	p.Expect(syntax.At)
	p.expectName("a directive name")
	if p.At(syntax.LParen) {
		p.parseArgumentsDefinition()
	}
	if p.atName("repeatable") {
		p.BumpRemap(syntax.GraphqlRepeatableKw)
	}
	if !p.atName("on") {
		p.ErrorExpected("`on`")
		p.Missing()
		return
	}
	p.BumpRemap(syntax.GraphqlOnKw)
	list := p.Start()
	p.Eat(syntax.Pipe)
	p.expectName("a directive location")
	for p.Eat(syntax.Pipe) {
		p.expectName("a directive location")
	}
	list.Complete(p.Parser, syntax.GraphqlDirectiveLocationList)
}
