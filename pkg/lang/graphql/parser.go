// Package graphql parses GraphQL executable and type system documents into
// the shared lossless syntax tree.
package graphql

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Options configure GraphQL parsing. There are no dialects yet.
type Options struct{}

//nolint:gochecknoglobals // Static lookup table
var operationKeywords = map[string]syntax.Kind{
	"query":        syntax.GraphqlQueryKw,
	"mutation":     syntax.GraphqlMutationKw,
	"subscription": syntax.GraphqlSubscriptionKw,
}

//nolint:gochecknoglobals // Static lookup table
var typeSystemKeywords = map[string]syntax.Kind{
	"schema":    syntax.GraphqlSchemaKw,
	"scalar":    syntax.GraphqlScalarKw,
	"type":      syntax.TypeKw,
	"interface": syntax.InterfaceKw,
	"union":     syntax.GraphqlUnionKw,
	"enum":      syntax.EnumKw,
	"input":     syntax.GraphqlInputKw,
	"directive": syntax.GraphqlDirectiveKw,
}

//nolint:gochecknoglobals // Static recovery sets
var (
	definitionRecovery = syntax.KindSetOf(syntax.LBrace, syntax.StringLit, syntax.GraphqlBlockString)
	selectionRecovery  = syntax.KindSetOf(syntax.RBrace, syntax.Ident, syntax.DotDotDot)
	memberRecovery     = syntax.KindSetOf(syntax.RBrace, syntax.RParen, syntax.Ident, syntax.StringLit, syntax.GraphqlBlockString)
)

type gqlParser struct {
	*parser.Parser
}

// Parse parses a GraphQL document. A tree is always produced.
func Parse(src string, _ Options) *parser.Parse {
	p := &gqlParser{Parser: parser.New(src, lexer{})}
	m := p.Start()
	list := p.Start()
	for !p.At(syntax.EOF) {
		p.parseDefinition()
	}
	list.Complete(p.Parser, syntax.GraphqlDefinitionList)
	p.Bump(syntax.EOF)
	m.Complete(p.Parser, syntax.GraphqlRoot)
	return p.Finish(syntax.DefaultCache())
}

func (p *gqlParser) atName(name string) bool {
	return p.At(syntax.Ident) && p.CurText() == name
}

func (p *gqlParser) parseDefinition() {
	switch {
	case p.At(syntax.LBrace):
		m := p.Start()
		p.parseSelectionSet()
		m.Complete(p.Parser, syntax.GraphqlOperationDefinition)
	case p.At(syntax.Ident) && operationKeywords[p.CurText()] != 0:
		p.parseOperation()
	case p.atName("fragment"):
		p.parseFragmentDefinition()
	case p.At(syntax.StringLit), p.At(syntax.GraphqlBlockString), p.atName("extend"),
		p.At(syntax.Ident) && typeSystemKeywords[p.CurText()] != 0:
		p.parseTypeSystemDefinition()
	default:
		p.ErrorExpected("a definition")
		recovery := parser.NewRecovery(syntax.GraphqlBogusDefinition, definitionRecovery).WithLineBreak()
		if _, err := recovery.Recover(p.Parser); err != nil {
			b := p.Start()
			p.BumpAny()
			b.Complete(p.Parser, syntax.GraphqlBogusDefinition)
		}
	}
}

func (p *gqlParser) parseOperation() {
	m := p.Start()
	p.BumpRemap(operationKeywords[p.CurText()])
	if p.At(syntax.Ident) {
		p.BumpAny()
	}
	if p.At(syntax.LParen) {
		p.parseVariableDefinitions()
	}
	p.parseDirectives()
	p.expectSelectionSet()
	m.Complete(p.Parser, syntax.GraphqlOperationDefinition)
}

func (p *gqlParser) parseFragmentDefinition() {
	m := p.Start()
	p.BumpRemap(syntax.GraphqlFragmentKw)
	switch {
	case p.atName("on"):
		p.ErrorHere("`on` is not allowed as a fragment name")
		p.BumpAny()
	case p.At(syntax.Ident):
		p.BumpAny()
	default:
		p.ErrorExpected("a fragment name")
		p.Missing()
	}
	p.expectTypeCondition()
	p.parseDirectives()
	p.expectSelectionSet()
	m.Complete(p.Parser, syntax.GraphqlFragmentDefinition)
}

func (p *gqlParser) expectTypeCondition() {
	if !p.atName("on") {
		p.ErrorExpected("`on`")
		p.Missing()
		return
	}
	m := p.Start()
	p.BumpRemap(syntax.GraphqlOnKw)
	p.expectNamedType()
	m.Complete(p.Parser, syntax.GraphqlTypeCondition)
}

func (p *gqlParser) expectNamedType() {
	if !p.At(syntax.Ident) {
		p.ErrorExpected("a type name")
		p.Missing()
		return
	}
	m := p.Start()
	p.BumpAny()
	m.Complete(p.Parser, syntax.GraphqlNamedType)
}

func (p *gqlParser) expectSelectionSet() {
	if p.At(syntax.LBrace) {
		p.parseSelectionSet()
		return
	}
	p.ErrorExpected("a selection set")
	p.Missing()
}

func (p *gqlParser) parseSelectionSet() {
	m := p.Start()
	p.Bump(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		switch {
		case p.At(syntax.Ident):
			p.parseField()
		case p.At(syntax.DotDotDot):
			p.parseFragmentSelection()
		case p.At(syntax.Comma):
			p.BumpAny()
		default:
			p.ErrorExpected("a selection")
			b := p.Start()
			p.BumpAny()
			for !p.AtSet(selectionRecovery) && !p.At(syntax.EOF) {
				p.BumpAny()
			}
			b.Complete(p.Parser, syntax.GraphqlBogusSelection)
		}
	}
	list.Complete(p.Parser, syntax.GraphqlSelectionList)
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.GraphqlSelectionSet)
}

func (p *gqlParser) parseField() {
	m := p.Start()
	if p.NthAt(1, syntax.Colon) {
		alias := p.Start()
		p.BumpAny()
		p.Bump(syntax.Colon)
		alias.Complete(p.Parser, syntax.GraphqlAlias)
		if !p.At(syntax.Ident) {
			p.ErrorExpected("a field name")
			p.Missing()
		} else {
			p.BumpAny()
		}
	} else {
		p.BumpAny()
	}
	if p.At(syntax.LParen) {
		p.parseArguments()
	}
	p.parseDirectives()
	if p.At(syntax.LBrace) {
		p.parseSelectionSet()
	}
	m.Complete(p.Parser, syntax.GraphqlField)
}

func (p *gqlParser) parseFragmentSelection() {
	m := p.Start()
	p.Bump(syntax.DotDotDot)
	if p.At(syntax.Ident) && !p.atName("on") {
		p.BumpAny()
		p.parseDirectives()
		m.Complete(p.Parser, syntax.GraphqlFragmentSpread)
		return
	}
	if p.atName("on") {
		cond := p.Start()
		p.BumpRemap(syntax.GraphqlOnKw)
		p.expectNamedType()
		cond.Complete(p.Parser, syntax.GraphqlTypeCondition)
	}
	p.parseDirectives()
	p.expectSelectionSet()
	m.Complete(p.Parser, syntax.GraphqlInlineFragment)
}

func (p *gqlParser) parseArguments() {
	m := p.Start()
	p.Bump(syntax.LParen)
	list := p.Start()
	for !p.At(syntax.RParen) && !p.At(syntax.EOF) && !p.At(syntax.RBrace) {
		if p.Eat(syntax.Comma) {
			continue
		}
		if !p.At(syntax.Ident) {
			p.ErrorExpected("an argument")
			p.recoverMember()
			continue
		}
		arg := p.Start()
		p.BumpAny()
		p.Expect(syntax.Colon)
		p.expectValue()
		arg.Complete(p.Parser, syntax.GraphqlArgument)
	}
	list.Complete(p.Parser, syntax.GraphqlArgumentList)
	p.Expect(syntax.RParen)
	m.Complete(p.Parser, syntax.GraphqlArguments)
}

func (p *gqlParser) recoverMember() {
	b := p.Start()
	p.BumpAny()
	for !p.AtSet(memberRecovery) && !p.At(syntax.EOF) {
		p.BumpAny()
	}
	b.Complete(p.Parser, syntax.GraphqlBogus)
}

func (p *gqlParser) parseDirectives() {
	list := p.Start()
	for p.At(syntax.At) {
		m := p.Start()
		p.Bump(syntax.At)
		if p.At(syntax.Ident) {
			p.BumpAny()
		} else {
			p.ErrorExpected("a directive name")
			p.Missing()
		}
		if p.At(syntax.LParen) {
			p.parseArguments()
		}
		m.Complete(p.Parser, syntax.GraphqlDirective)
	}
	list.Complete(p.Parser, syntax.GraphqlDirectiveList)
}

func (p *gqlParser) parseVariableDefinitions() {
	m := p.Start()
	p.Bump(syntax.LParen)
	list := p.Start()
	for !p.At(syntax.RParen) && !p.At(syntax.EOF) && !p.At(syntax.LBrace) {
		if p.Eat(syntax.Comma) {
			continue
		}
		if !p.At(syntax.Dollar) {
			p.ErrorExpected("a variable definition")
			p.recoverMember()
			continue
		}
		def := p.Start()
		p.parseVariable()
		p.Expect(syntax.Colon)
		p.expectType()
		p.parseDefaultValue()
		p.parseDirectives()
		def.Complete(p.Parser, syntax.GraphqlVariableDefinition)
	}
	list.Complete(p.Parser, syntax.GraphqlVariableDefinitionList)
	p.Expect(syntax.RParen)
	m.Complete(p.Parser, syntax.GraphqlVariableDefinitions)
}

func (p *gqlParser) parseVariable() {
	m := p.Start()
	p.Bump(syntax.Dollar)
	if p.At(syntax.Ident) {
		p.BumpAny()
	} else {
		p.ErrorExpected("a variable name")
		p.Missing()
	}
	m.Complete(p.Parser, syntax.GraphqlVariable)
}

func (p *gqlParser) parseDefaultValue() {
	if !p.At(syntax.Eq) {
		return
	}
	m := p.Start()
	p.Bump(syntax.Eq)
	p.expectValue()
	m.Complete(p.Parser, syntax.GraphqlDefaultValue)
}

func (p *gqlParser) expectType() {
	var lhs parser.CompletedMarker
	switch {
	case p.At(syntax.Ident):
		m := p.Start()
		p.BumpAny()
		lhs = m.Complete(p.Parser, syntax.GraphqlNamedType)
	case p.At(syntax.LBrack):
		m := p.Start()
		p.Bump(syntax.LBrack)
		p.expectType()
		p.Expect(syntax.RBrack)
		lhs = m.Complete(p.Parser, syntax.GraphqlListType)
	default:
		p.ErrorExpected("a type")
		p.Missing()
		return
	}
	if p.At(syntax.Bang) {
		m := lhs.Precede(p.Parser)
		p.Bump(syntax.Bang)
		m.Complete(p.Parser, syntax.GraphqlNonNullType)
	}
}

func (p *gqlParser) expectValue() {
	if p.parseValue() {
		return
	}
	p.ErrorExpected("a value")
	p.Missing()
}

func (p *gqlParser) parseValue() bool {
	m := p.Start()
	switch p.Cur() {
	case syntax.Dollar:
		m.Abandon(p.Parser)
		p.parseVariable()
	case syntax.NumberLit:
		p.BumpAny()
		m.Complete(p.Parser, syntax.GraphqlNumberValue)
	case syntax.StringLit, syntax.GraphqlBlockString:
		p.BumpAny()
		m.Complete(p.Parser, syntax.GraphqlStringValue)
	case syntax.Ident:
		switch p.CurText() {
		case "true":
			p.BumpRemap(syntax.TrueKw)
			m.Complete(p.Parser, syntax.GraphqlBooleanValue)
		case "false":
			p.BumpRemap(syntax.FalseKw)
			m.Complete(p.Parser, syntax.GraphqlBooleanValue)
		case "null":
			p.BumpRemap(syntax.NullKw)
			m.Complete(p.Parser, syntax.GraphqlNullValue)
		default:
			p.BumpAny()
			m.Complete(p.Parser, syntax.GraphqlEnumValue)
		}
	case syntax.LBrack:
		p.Bump(syntax.LBrack)
		list := p.Start()
		for !p.At(syntax.RBrack) && !p.At(syntax.EOF) {
			if p.Eat(syntax.Comma) {
				continue
			}
			if !p.parseValue() {
				p.ErrorExpected("a value")
				break
			}
		}
		list.Complete(p.Parser, syntax.GraphqlListValueElementList)
		p.Expect(syntax.RBrack)
		m.Complete(p.Parser, syntax.GraphqlListValue)
	case syntax.LBrace:
		p.Bump(syntax.LBrace)
		list := p.Start()
		for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
			if p.Eat(syntax.Comma) {
				continue
			}
			if !p.At(syntax.Ident) {
				p.ErrorExpected("an object field")
				break
			}
			field := p.Start()
			p.BumpAny()
			p.Expect(syntax.Colon)
			p.expectValue()
			field.Complete(p.Parser, syntax.GraphqlObjectField)
		}
		list.Complete(p.Parser, syntax.GraphqlObjectFieldList)
		p.Expect(syntax.RBrace)
		m.Complete(p.Parser, syntax.GraphqlObjectValue)
	default:
		m.Abandon(p.Parser)
		return false
	}
	return true
}
