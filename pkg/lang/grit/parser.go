// Package grit parses the Grit structural search language: code snippet
// patterns with metavariables, rewrites, where clauses and the pattern
// combinators used to build queries.
package grit

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Options configure Grit parsing. There are no dialects yet.
type Options struct{}

//nolint:gochecknoglobals // Static recovery sets
var (
	patternRecovery   = syntax.KindSetOf(syntax.Comma, syntax.RBrace, syntax.RParen, syntax.GritWhereKw, syntax.FatArrow)
	predicateRecovery = syntax.KindSetOf(syntax.Comma, syntax.RBrace)
)

type gritParser struct {
	*parser.Parser
}

// Parse parses a Grit query. A tree is always produced.
func Parse(src string, _ Options) *parser.Parse {
	p := &gritParser{Parser: parser.New(src, lexer{})}
	m := p.Start()
	list := p.Start()
	for !p.At(syntax.EOF) {
		if p.atPatternDefinition() {
			p.parsePatternDefinition()
			continue
		}
		if !p.parsePattern() {
			p.ErrorExpected("a pattern")
			p.recover(patternRecovery, syntax.GritBogusPattern)
		}
		p.Eat(syntax.Semicolon)
	}
	list.Complete(p.Parser, syntax.GritPatternList)
	p.Bump(syntax.EOF)
	m.Complete(p.Parser, syntax.GritRoot)
	return p.Finish(syntax.DefaultCache())
}

// recover wraps skipped tokens in bogus. It always consumes at least one
// token unless at the end of input.
func (p *gritParser) recover(set syntax.KindSet, bogus syntax.Kind) {
	if p.At(syntax.EOF) {
		return
	}
	m := p.Start()
	p.BumpAny()
	for !p.AtSet(set) && !p.At(syntax.EOF) {
		p.BumpAny()
	}
	m.Complete(p.Parser, bogus)
}

func (p *gritParser) atPatternDefinition() bool {
	return p.At(syntax.Ident) && p.CurText() == "pattern" && p.NthAt(1, syntax.Ident)
}

// parsePatternDefinition parses `pattern name($a, $b) { body }`.
func (p *gritParser) parsePatternDefinition() {
	m := p.Start()
	p.Bump(syntax.Ident)
	p.Bump(syntax.Ident)
	if p.Expect(syntax.LParen) {
		p.parseVariableList(syntax.RParen)
		p.Expect(syntax.RParen)
	}
	if p.Expect(syntax.LBrace) {
		if !p.parsePattern() {
			p.ErrorExpected("a pattern")
			p.Missing()
		}
		p.Expect(syntax.RBrace)
	}
	m.Complete(p.Parser, syntax.GritPatternDefinition)
}

func (p *gritParser) parseVariableList(closing syntax.Kind) {
	list := p.Start()
	for !p.At(closing) && !p.At(syntax.EOF) {
		if !p.At(syntax.GritVariableToken) {
			p.ErrorExpected("a variable")
			p.recover(syntax.KindSetOf(syntax.Comma, closing), syntax.GritBogus)
		} else {
			v := p.Start()
			p.BumpAny()
			v.Complete(p.Parser, syntax.GritVariable)
		}
		if !p.Eat(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.GritVariableList)
}

// parsePattern parses a pattern with an optional rewrite and where clause.
func (p *gritParser) parsePattern() bool {
	lhs, ok := p.parseRewrite()
	if !ok {
		return false
	}
	if p.At(syntax.GritWhereKw) {
		m := lhs.Precede(p.Parser)
		p.Bump(syntax.GritWhereKw)
		p.parsePredicateBlock()
		m.Complete(p.Parser, syntax.GritWhere)
	}
	return true
}

func (p *gritParser) parseRewrite() (parser.CompletedMarker, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return lhs, false
	}
	if !p.At(syntax.FatArrow) {
		return lhs, true
	}
	m := lhs.Precede(p.Parser)
	p.Bump(syntax.FatArrow)
	if _, ok := p.parseUnary(); !ok {
		p.ErrorExpected("a rewrite pattern")
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.GritRewrite), true
}

func (p *gritParser) expectUnary() {
	if _, ok := p.parseUnary(); !ok {
		p.ErrorExpected("a pattern")
		p.Missing()
	}
}

func (p *gritParser) parseUnary() (parser.CompletedMarker, bool) {
	m := p.Start()
	switch p.Cur() {
	case syntax.GritNotKw, syntax.Bang:
		p.BumpAny()
		p.expectUnary()
		return m.Complete(p.Parser, syntax.GritNot), true
	case syntax.GritMaybeKw:
		p.BumpAny()
		p.expectUnary()
		return m.Complete(p.Parser, syntax.GritMaybe), true
	case syntax.GritContainsKw:
		p.BumpAny()
		p.expectUnary()
		return m.Complete(p.Parser, syntax.GritContains), true
	case syntax.GritWithinKw:
		p.BumpAny()
		p.expectUnary()
		return m.Complete(p.Parser, syntax.GritWithin), true
	case syntax.GritBubbleKw:
		p.BumpAny()
		if p.Eat(syntax.LParen) {
			p.parseVariableList(syntax.RParen)
			p.Expect(syntax.RParen)
		}
		p.expectUnary()
		return m.Complete(p.Parser, syntax.GritBubble), true
	case syntax.GritOrKw:
		p.BumpAny()
		p.parsePatternBlock()
		return m.Complete(p.Parser, syntax.GritOr), true
	case syntax.GritAndKw:
		p.BumpAny()
		p.parsePatternBlock()
		return m.Complete(p.Parser, syntax.GritAnd), true
	case syntax.GritSnippet:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.GritCodeSnippet), true
	case syntax.GritVariableToken:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.GritVariable), true
	case syntax.StringLit:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.GritStringLiteral), true
	case syntax.NumberLit:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.GritIntLiteral), true
	case syntax.Ident:
		if p.CurText() == "undefined" {
			p.BumpAny()
			return m.Complete(p.Parser, syntax.GritUndefined), true
		}
		p.BumpAny()
		if p.At(syntax.LParen) {
			p.parseNamedArgs()
		}
		return m.Complete(p.Parser, syntax.GritNodeLike), true
	}
	m.Abandon(p.Parser)
	return parser.CompletedMarker{}, false
}

// parsePatternBlock parses `{ p1, p2, ... }` for `or` and `and`.
func (p *gritParser) parsePatternBlock() {
	if !p.Expect(syntax.LBrace) {
		return
	}
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		if !p.parsePattern() {
			p.ErrorExpected("a pattern")
			p.recover(patternRecovery, syntax.GritBogusPattern)
		}
		if !p.Eat(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.GritPatternList)
	p.Expect(syntax.RBrace)
}

func (p *gritParser) parseNamedArgs() {
	p.Bump(syntax.LParen)
	list := p.Start()
	for !p.At(syntax.RParen) && !p.At(syntax.EOF) {
		if p.At(syntax.Ident) && p.NthAt(1, syntax.Eq) {
			arg := p.Start()
			p.BumpAny()
			p.Bump(syntax.Eq)
			if !p.parsePattern() {
				p.ErrorExpected("a pattern")
				p.Missing()
			}
			arg.Complete(p.Parser, syntax.GritNamedArg)
		} else if !p.parsePattern() {
			p.ErrorExpected("an argument")
			p.recover(syntax.KindSetOf(syntax.Comma, syntax.RParen), syntax.GritBogus)
		}
		if !p.Eat(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.GritNamedArgList)
	p.Expect(syntax.RParen)
}

// parsePredicateBlock parses `{ pred, pred, ... }`.
func (p *gritParser) parsePredicateBlock() {
	if !p.Expect(syntax.LBrace) {
		return
	}
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		if !p.parsePredicate() {
			p.ErrorExpected("a predicate")
			p.recover(predicateRecovery, syntax.GritBogus)
		}
		if !p.Eat(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.GritPredicateList)
	p.Expect(syntax.RBrace)
}

func (p *gritParser) parsePredicate() bool {
	m := p.Start()
	switch p.Cur() {
	case syntax.GritNotKw, syntax.Bang:
		p.BumpAny()
		if !p.parsePredicate() {
			p.ErrorExpected("a predicate")
			p.Missing()
		}
		m.Complete(p.Parser, syntax.GritNot)
	case syntax.GritMaybeKw:
		p.BumpAny()
		if !p.parsePredicate() {
			p.ErrorExpected("a predicate")
			p.Missing()
		}
		m.Complete(p.Parser, syntax.GritMaybe)
	case syntax.GritOrKw:
		p.BumpAny()
		p.parsePredicateBlock()
		m.Complete(p.Parser, syntax.GritOr)
	case syntax.GritAndKw:
		p.BumpAny()
		p.parsePredicateBlock()
		m.Complete(p.Parser, syntax.GritAnd)
	case syntax.GritVariableToken:
		v := p.Start()
		p.BumpAny()
		v.Complete(p.Parser, syntax.GritVariable)
		switch p.Cur() {
		case syntax.Match:
			p.BumpAny()
			if !p.parsePattern() {
				p.ErrorExpected("a pattern")
				p.Missing()
			}
			m.Complete(p.Parser, syntax.GritPredicateMatch)
		case syntax.Eq, syntax.PlusEq:
			p.BumpAny()
			if !p.parsePattern() {
				p.ErrorExpected("a pattern")
				p.Missing()
			}
			m.Complete(p.Parser, syntax.GritPredicateAssignment)
		case syntax.FatArrow:
			p.BumpAny()
			p.expectUnary()
			m.Complete(p.Parser, syntax.GritRewrite)
		default:
			p.ErrorExpected("`<:`, `=` or `=>`")
			m.Complete(p.Parser, syntax.GritBogus)
		}
	default:
		m.Abandon(p.Parser)
		return false
	}
	return true
}
