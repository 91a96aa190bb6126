// Package css parses stylesheets into the shared lossless syntax tree.
//
// Selectors and at-rule preludes are kept as token runs; the tree records
// the rule, block and declaration structure that the analyzer and the
// formatter need.
package css

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Options configure CSS parsing.
type Options struct {
	// AllowWrongLineComments lexes `//` line comments as trivia. Browsers
	// do not support them but preprocessor sources often contain them.
	AllowWrongLineComments bool
}

type cssParser struct {
	*parser.Parser
}

// lookaheadLimit bounds the scan that decides between a nested rule and a
// declaration.
const lookaheadLimit = 256

// Parse parses a stylesheet. A tree is always produced.
func Parse(src string, opts Options) *parser.Parse {
	p := &cssParser{Parser: parser.New(src, lexer{lineComments: opts.AllowWrongLineComments})}
	m := p.Start()
	list := p.Start()
	for !p.At(syntax.EOF) {
		p.parseTopLevel()
	}
	list.Complete(p.Parser, syntax.CssRuleList)
	p.Bump(syntax.EOF)
	m.Complete(p.Parser, syntax.CssRoot)
	return p.Finish(syntax.DefaultCache())
}

func (p *cssParser) parseTopLevel() {
	switch p.Cur() {
	case syntax.CssAtKeyword:
		p.parseAtRule()
	case syntax.Semicolon, syntax.RBrace:
		p.ErrorHere("unexpected `" + p.CurText() + "`")
		b := p.Start()
		p.BumpAny()
		b.Complete(p.Parser, syntax.CssBogusRule)
	default:
		p.parseQualifiedRule()
	}
}

func (p *cssParser) parseQualifiedRule() {
	m := p.Start()
	p.parseSelectorList()
	if p.At(syntax.LBrace) {
		p.parseBlock()
		m.Complete(p.Parser, syntax.CssQualifiedRule)
		return
	}
	p.ErrorExpected("`{`")
	for !p.At(syntax.EOF) && !p.At(syntax.RBrace) && !p.At(syntax.Semicolon) && !p.At(syntax.LBrace) {
		p.BumpAny()
	}
	if p.At(syntax.LBrace) {
		p.parseBlock()
	}
	m.Complete(p.Parser, syntax.CssBogusRule)
}

func (p *cssParser) parseSelectorList() {
	list := p.Start()
	for {
		sel := p.Start()
		depth := 0
		consumed := false
	scan:
		for !p.At(syntax.EOF) {
			switch p.Cur() {
			case syntax.LParen, syntax.LBrack:
				depth++
			case syntax.RParen, syntax.RBrack:
				if depth > 0 {
					depth--
				}
			case syntax.Comma:
				if depth == 0 {
					break scan
				}
			case syntax.LBrace, syntax.RBrace, syntax.Semicolon:
				break scan
			}
			p.BumpAny()
			consumed = true
		}
		if !consumed {
			sel.Abandon(p.Parser)
			p.ErrorExpected("a selector")
		} else {
			sel.Complete(p.Parser, syntax.CssComplexSelector)
		}
		if !p.Eat(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.CssSelectorList)
}

// parseBlock parses `{ ... }` holding declarations, nested rules and
// at-rules.
func (p *cssParser) parseBlock() {
	m := p.Start()
	p.Bump(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		switch {
		case p.At(syntax.Semicolon):
			p.BumpAny()
		case p.At(syntax.CssAtKeyword):
			p.parseAtRule()
		case p.atDeclaration():
			p.parseDeclaration()
		default:
			p.parseQualifiedRule()
		}
	}
	list.Complete(p.Parser, syntax.CssDeclarationList)
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.CssDeclarationBlock)
}

// atDeclaration reports whether the tokens ahead form `name: value` ending
// at `;` or `}` rather than a nested rule ending at `{`.
func (p *cssParser) atDeclaration() bool {
	if !p.At(syntax.Ident) || !p.NthAt(1, syntax.Colon) {
		return false
	}
	if strings.HasPrefix(p.CurText(), "--") {
		return true
	}
	depth := 0
	for n := 2; n < lookaheadLimit; n++ {
		switch p.Nth(n) {
		case syntax.LParen, syntax.LBrack:
			depth++
		case syntax.RParen, syntax.RBrack:
			depth--
		case syntax.Semicolon, syntax.RBrace, syntax.EOF:
			return true
		case syntax.LBrace:
			if depth <= 0 {
				return false
			}
		}
	}
	return true
}

func (p *cssParser) parseDeclaration() {
	m := p.Start()
	name := p.Start()
	custom := strings.HasPrefix(p.CurText(), "--")
	p.Bump(syntax.Ident)
	name.Complete(p.Parser, syntax.CssPropertyName)
	p.Bump(syntax.Colon)

	values := p.Start()
	if custom {
		p.parseComponentValues(true)
		values.Complete(p.Parser, syntax.CssCustomPropertyValue)
	} else {
		if !p.parseComponentValues(false) {
			p.ErrorExpected("a value")
		}
		values.Complete(p.Parser, syntax.CssComponentValueList)
	}

	if p.At(syntax.Bang) {
		imp := p.Start()
		p.Bump(syntax.Bang)
		if p.At(syntax.Ident) && strings.EqualFold(p.CurText(), "important") {
			p.BumpAny()
		} else {
			p.ErrorExpected("`important`")
		}
		imp.Complete(p.Parser, syntax.CssImportant)
	}

	switch {
	case p.Eat(syntax.Semicolon), p.At(syntax.RBrace), p.At(syntax.EOF):
		m.Complete(p.Parser, syntax.CssDeclaration)
	default:
		p.ErrorExpected("`;`")
		for !p.At(syntax.Semicolon) && !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
			p.BumpAny()
		}
		p.Eat(syntax.Semicolon)
		m.Complete(p.Parser, syntax.CssBogusDeclaration)
	}
}

// parseComponentValues parses values up to `;`, `}`, `!` or the end of
// input and reports whether any value was parsed. Custom properties accept
// arbitrary blocks.
func (p *cssParser) parseComponentValues(custom bool) bool {
	parsed := false
	for {
		switch p.Cur() {
		case syntax.Semicolon, syntax.RBrace, syntax.EOF, syntax.Bang:
			return parsed
		case syntax.LBrace:
			if !custom {
				return parsed
			}
		}
		p.parseComponentValue()
		parsed = true
	}
}

func (p *cssParser) parseComponentValue() {
	switch {
	case p.At(syntax.Ident) && p.NthAt(1, syntax.LParen) && !p.Source().Nth(1).NewlineBefore &&
		p.Source().Nth(1).Start == p.CurRange().End:
		p.parseFunction()
	case p.At(syntax.LParen):
		p.parseSimpleBlock(syntax.LParen, syntax.RParen, syntax.CssParenthesizedValue)
	case p.At(syntax.LBrack):
		p.parseSimpleBlock(syntax.LBrack, syntax.RBrack, syntax.CssSimpleBlock)
	case p.At(syntax.LBrace):
		p.parseSimpleBlock(syntax.LBrace, syntax.RBrace, syntax.CssSimpleBlock)
	default:
		p.BumpAny()
	}
}

func (p *cssParser) parseFunction() {
	m := p.Start()
	p.Bump(syntax.Ident)
	p.Bump(syntax.LParen)
	args := p.Start()
	for !p.At(syntax.RParen) && !p.At(syntax.EOF) && !p.At(syntax.Semicolon) && !p.At(syntax.RBrace) {
		p.parseComponentValue()
	}
	args.Complete(p.Parser, syntax.CssFunctionArgumentList)
	p.Expect(syntax.RParen)
	m.Complete(p.Parser, syntax.CssFunction)
}

func (p *cssParser) parseSimpleBlock(open, closing, kind syntax.Kind) {
	m := p.Start()
	p.Bump(open)
	list := p.Start()
	for !p.At(closing) && !p.At(syntax.EOF) && !(closing != syntax.RBrace && p.At(syntax.RBrace)) {
		p.parseComponentValue()
	}
	list.Complete(p.Parser, syntax.CssComponentValueList)
	p.Expect(closing)
	m.Complete(p.Parser, kind)
}

func (p *cssParser) parseAtRule() {
	m := p.Start()
	p.Bump(syntax.CssAtKeyword)
	prelude := p.Start()
	for !p.At(syntax.LBrace) && !p.At(syntax.Semicolon) && !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		p.parseComponentValue()
	}
	prelude.Complete(p.Parser, syntax.CssAtRulePrelude)
	switch {
	case p.At(syntax.LBrace):
		p.parseBlock()
	case p.Eat(syntax.Semicolon):
	case p.At(syntax.RBrace), p.At(syntax.EOF):
		p.ErrorExpected("`;` or `{`")
	}
	m.Complete(p.Parser, syntax.CssAtRule)
}
