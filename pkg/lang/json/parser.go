// Package json parses JSON and JSONC into the shared lossless syntax tree
// and converts trees back into strict JSON for decoding.
package json

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// Options select the JSON dialect.
type Options struct {
	AllowComments       bool
	AllowTrailingCommas bool
}

// JSONC is the dialect accepting comments and trailing commas.
//
//nolint:gochecknoglobals // Dialect preset
var JSONC = Options{AllowComments: true, AllowTrailingCommas: true}

//nolint:gochecknoglobals // Well-known JSONC file names
var jsoncNames = map[string]bool{
	"tsconfig.json":      true,
	"jsconfig.json":      true,
	"biome.json":         true,
	".eslintrc.json":     true,
	".eslintrc":          true,
	".babelrc":           true,
	".babelrc.json":      true,
	"devcontainer.json":  true,
	"settings.json":      true,
	"extensions.json":    true,
	"launch.json":        true,
	"tasks.json":         true,
	"keybindings.json":   true,
	"typedoc.json":       true,
	"api-extractor.json": true,
}

// OptionsForPath returns JSONC options for .jsonc files and well-known
// configuration files, and strict JSON otherwise.
func OptionsForPath(path string) Options {
	base := strings.ToLower(filepath.Base(path))
	if filepath.Ext(base) == ".jsonc" || jsoncNames[base] || strings.HasPrefix(base, "tsconfig.") {
		return JSONC
	}
	return Options{}
}

type jsonParser struct {
	*parser.Parser
	opts Options
}

//nolint:gochecknoglobals // Static recovery set
var valueRecovery = syntax.KindSetOf(syntax.Comma, syntax.RBrace, syntax.RBrack, syntax.Colon)

// Parse parses a JSON document. A tree is always produced.
func Parse(src string, opts Options) *parser.Parse {
	p := &jsonParser{Parser: parser.New(src, lexer{}), opts: opts}
	m := p.Start()
	if p.At(syntax.EOF) {
		p.Missing()
	} else {
		p.parseValueOrRecover()
	}
	for !p.At(syntax.EOF) {
		p.ErrorHere("end of file expected")
		b := p.Start()
		for !p.At(syntax.EOF) {
			p.BumpAny()
		}
		b.Complete(p.Parser, syntax.JsonBogus)
	}
	p.Bump(syntax.EOF)
	m.Complete(p.Parser, syntax.JsonRoot)

	if !opts.AllowComments {
		for _, tr := range p.Source().Trivia() {
			if tr.Kind.IsComment() {
				p.Error("JSON standard does not allow comments", text.NewRange(tr.Start, tr.End))
			}
		}
	}
	return p.Finish(syntax.DefaultCache())
}

func (p *jsonParser) parseValueOrRecover() {
	if p.parseValue() {
		return
	}
	p.ErrorExpected("an array, an object, or a literal")
	recovery := parser.NewRecovery(syntax.JsonBogusValue, valueRecovery)
	if _, err := recovery.Recover(p.Parser); err != nil {
		p.Missing()
	}
}

func (p *jsonParser) parseValue() bool {
	m := p.Start()
	switch p.Cur() {
	case syntax.StringLit:
		p.BumpAny()
		m.Complete(p.Parser, syntax.JsonStringValue)
	case syntax.NumberLit:
		p.BumpAny()
		m.Complete(p.Parser, syntax.JsonNumberValue)
	case syntax.TrueKw, syntax.FalseKw:
		p.BumpAny()
		m.Complete(p.Parser, syntax.JsonBooleanValue)
	case syntax.NullKw:
		p.BumpAny()
		m.Complete(p.Parser, syntax.JsonNullValue)
	case syntax.LBrace:
		p.parseObject(m)
	case syntax.LBrack:
		p.parseArray(m)
	default:
		m.Abandon(p.Parser)
		return false
	}
	return true
}

func (p *jsonParser) parseObject(m parser.Marker) {
	p.Bump(syntax.LBrace)
	list := p.Start()
	p.parseSeparated(syntax.RBrace, func() bool {
		if !p.At(syntax.StringLit) && !p.At(syntax.Ident) {
			return false
		}
		member := p.Start()
		name := p.Start()
		if p.At(syntax.Ident) {
			p.ErrorHere("property names must be double quoted strings")
		}
		p.BumpAny()
		name.Complete(p.Parser, syntax.JsonMemberName)
		p.Expect(syntax.Colon)
		p.parseValueOrRecover()
		member.Complete(p.Parser, syntax.JsonMember)
		return true
	}, "a property")
	list.Complete(p.Parser, syntax.JsonMemberList)
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.JsonObjectValue)
}

func (p *jsonParser) parseArray(m parser.Marker) {
	p.Bump(syntax.LBrack)
	list := p.Start()
	p.parseSeparated(syntax.RBrack, p.parseValue, "an array element")
	list.Complete(p.Parser, syntax.JsonArrayElementList)
	p.Expect(syntax.RBrack)
	m.Complete(p.Parser, syntax.JsonArrayValue)
}

// parseSeparated parses comma separated elements up to closing.
func (p *jsonParser) parseSeparated(closing syntax.Kind, element func() bool, what string) {
	for !p.At(closing) && !p.At(syntax.EOF) {
		if !element() {
			p.ErrorExpected(what)
			recovery := parser.NewRecovery(syntax.JsonBogusValue, syntax.KindSetOf(syntax.Comma, closing))
			if _, err := recovery.Recover(p.Parser); err != nil && !p.At(syntax.Comma) {
				return
			}
		}
		if p.At(closing) {
			return
		}
		commaStart := p.CurRange().Start
		if !p.Eat(syntax.Comma) {
			if p.At(syntax.EOF) {
				return
			}
			p.ErrorExpected("`,`")
			continue
		}
		if p.At(closing) && !p.opts.AllowTrailingCommas {
			p.Error("trailing commas are not allowed in JSON", text.NewRange(commaStart, commaStart+1))
		}
	}
}
