// Package tailwind parses Tailwind CSS class lists: whitespace separated
// candidates made of variants, an optional important marker, a static,
// functional or arbitrary utility and an optional modifier.
package tailwind

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Options configure class list parsing. There are no dialects yet.
type Options struct{}

type twParser struct {
	*parser.Parser
}

// Parse parses a class list. A tree is always produced.
func Parse(src string, _ Options) *parser.Parse {
	p := &twParser{Parser: parser.New(src, lexer{})}
	m := p.Start()
	list := p.Start()
	for !p.At(syntax.EOF) {
		p.parseCandidate()
	}
	list.Complete(p.Parser, syntax.TwCandidateList)
	p.Bump(syntax.EOF)
	m.Complete(p.Parser, syntax.TwRoot)
	return p.Finish(syntax.DefaultCache())
}

// candidateExtent returns the end offset of the candidate starting at the
// current token and the number of variants it carries.
func (p *twParser) candidateExtent() (int, int) {
	src := p.Source().Source()
	depth, variants := 0, 0
	var quote byte
	i := p.CurRange().Start
	for ; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case depth > 0 && (c == '\'' || c == '"'):
			quote = c
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == ':' && depth == 0:
			variants++
		case isSpace(c):
			return i, variants
		}
	}
	return i, variants
}

func (p *twParser) parseCandidate() {
	end, variants := p.candidateExtent()
	m := p.Start()

	list := p.Start()
	for range variants {
		v := p.Start()
		if !p.parseUtility(true) {
			p.ErrorExpected("a variant")
		}
		p.Expect(syntax.Colon)
		v.Complete(p.Parser, syntax.TwVariant)
	}
	list.Complete(p.Parser, syntax.TwVariantList)

	p.Eat(syntax.Bang)
	ok := p.parseUtility(false)
	p.Eat(syntax.Bang)

	switch {
	case p.CurRange().Start < end && !p.At(syntax.EOF):
		p.ErrorHere("unexpected `" + p.CurText() + "` in class name")
		b := p.Start()
		for p.CurRange().Start < end && !p.At(syntax.EOF) {
			p.BumpAny()
		}
		b.Complete(p.Parser, syntax.TwBogus)
		ok = false
	case !ok:
		p.ErrorExpected("a utility")
	}
	if ok {
		m.Complete(p.Parser, syntax.TwFullCandidate)
	} else {
		m.Complete(p.Parser, syntax.TwBogusCandidate)
	}
}

// parseUtility parses a static, functional or arbitrary utility. Variants
// use the same shapes without the negative prefix.
func (p *twParser) parseUtility(variant bool) bool {
	if p.At(syntax.LBrack) {
		m := p.Start()
		p.parseBracketed()
		m.Complete(p.Parser, syntax.TwArbitraryCandidate)
		return true
	}

	m := p.Start()
	if !variant && p.At(syntax.Minus) {
		p.Bump(syntax.Minus)
	}
	if !p.At(syntax.TwBase) {
		m.Abandon(p.Parser)
		return false
	}
	p.Bump(syntax.TwBase)
	kind := syntax.TwStatic
	if p.At(syntax.Minus) {
		kind = syntax.TwFunctional
		p.BumpWithContext(syntax.Minus, contextValue)
		switch {
		case p.At(syntax.TwValue):
			p.Bump(syntax.TwValue)
		case p.At(syntax.LBrack):
			v := p.Start()
			p.parseBracketed()
			v.Complete(p.Parser, syntax.TwArbitraryValue)
		default:
			p.ErrorExpected("a value")
			p.Missing()
		}
	}
	if p.At(syntax.Slash) {
		p.parseModifier()
	}
	m.Complete(p.Parser, kind)
	return true
}

func (p *twParser) parseBracketed() {
	p.BumpWithContext(syntax.LBrack, contextArbitrary)
	if p.At(syntax.TwValue) {
		p.Bump(syntax.TwValue)
	} else {
		p.ErrorExpected("an arbitrary value")
		p.Missing()
	}
	p.Expect(syntax.RBrack)
}

func (p *twParser) parseModifier() {
	m := p.Start()
	p.BumpWithContext(syntax.Slash, contextValue)
	switch {
	case p.At(syntax.TwValue):
		p.Bump(syntax.TwValue)
	case p.At(syntax.LBrack):
		v := p.Start()
		p.parseBracketed()
		v.Complete(p.Parser, syntax.TwArbitraryValue)
	default:
		p.ErrorExpected("a modifier")
		p.Missing()
	}
	m.Complete(p.Parser, syntax.TwModifier)
}
