// Package js implements the lexer, the error-recovering parser and the typed
// views of JavaScript, TypeScript and JSX.
package js

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Options select the dialect accepted by the parser.
type Options struct {
	TypeScript bool
	JSX        bool
}

// OptionsForPath derives the dialect from a file extension.
func OptionsForPath(path string) Options {
	name := strings.ToLower(filepath.Base(path))
	switch filepath.Ext(name) {
	case ".ts", ".mts", ".cts":
		return Options{TypeScript: true}
	case ".tsx":
		return Options{TypeScript: true, JSX: true}
	case ".jsx":
		return Options{JSX: true}
	default:
		return Options{JSX: true}
	}
}

type state struct {
	inFunction  bool
	inAsync     bool
	inGenerator bool
	// noIn disables `in` as a binary operator inside for-statement heads.
	noIn bool
	// inJsxChildren is set while parsing the children of a JSX element.
	inJsxChildren bool
}

type jsParser struct {
	*parser.Parser
	opts  Options
	state state
	// exportDefault allows anonymous function and class declarations.
	exportDefault bool
}

// Parse parses a module. The result always contains a tree.
func Parse(src string, opts Options) *parser.Parse {
	return ParseWithCache(src, opts, syntax.DefaultCache())
}

// ParseWithCache parses a module interning green nodes through cache.
func ParseWithCache(src string, opts Options, cache *syntax.NodeCache) *parser.Parse {
	p := newParser(src, opts)
	m := p.Start()
	list := p.Start()
	p.parseModuleItems()
	list.Complete(p.Parser, syntax.JsModuleItemList)
	p.Bump(syntax.EOF)
	m.Complete(p.Parser, syntax.JsModule)
	return p.Finish(cache)
}

// ParseExpression parses a single expression, as used for template
// substitutions and other embedded snippets.
func ParseExpression(src string, opts Options) *parser.Parse {
	p := newParser(src, opts)
	m := p.Start()
	if !p.parseExpressionOrRecover() {
		p.Missing()
	}
	for !p.At(syntax.EOF) {
		p.ErrorHere("expected the end of the expression")
		b := p.Start()
		for !p.At(syntax.EOF) {
			p.BumpAny()
		}
		b.Complete(p.Parser, syntax.JsBogus)
	}
	p.Bump(syntax.EOF)
	m.Complete(p.Parser, syntax.JsExpressionSnippet)
	return p.Finish(syntax.DefaultCache())
}

func newParser(src string, opts Options) *jsParser {
	return &jsParser{Parser: parser.New(src, lexer{}), opts: opts}
}

// withState runs fn with a modified parser state and restores it afterwards.
func (p *jsParser) withState(modify func(*state), fn func()) {
	saved := p.state
	modify(&p.state)
	fn()
	p.state = saved
}

// semicolon consumes a statement terminator, inserting a virtual one where
// automatic semicolon insertion applies.
func (p *jsParser) semicolon() {
	if p.Eat(syntax.Semicolon) {
		return
	}
	if p.At(syntax.RBrace) || p.At(syntax.EOF) || p.HasPrecedingLineBreak() {
		p.VirtualToken(syntax.Semicolon)
		return
	}
	p.ErrorExpected("`;`")
	p.Missing()
}

// atContextual reports whether the current token is the identifier text kw.
func (p *jsParser) atContextual(kw string) bool {
	return p.At(syntax.Ident) && p.CurText() == kw
}

func (p *jsParser) nthContextual(n int, kw string) bool {
	return p.NthAt(n, syntax.Ident) && p.NthText(n) == kw
}

// bumpContextual consumes an identifier as the given contextual keyword kind.
func (p *jsParser) bumpContextual(kind syntax.Kind) {
	p.BumpRemap(kind)
}

// atIdentifierName reports whether the current token can be used as a
// property name: any identifier or keyword.
func (p *jsParser) atIdentifierName() bool {
	return p.At(syntax.Ident) || p.Cur().IsKeyword()
}

// atBindingIdentifier reports whether the current token can name a binding.
func (p *jsParser) atBindingIdentifier() bool {
	if p.At(syntax.Ident) {
		text := p.CurText()
		if text == "await" && p.state.inAsync {
			return false
		}
		if text == "yield" && p.state.inGenerator {
			return false
		}
		return true
	}
	return false
}

func (p *jsParser) tsOnly(what string, start int) {
	if !p.opts.TypeScript {
		p.Error(what+" are a TypeScript only feature", rangeFrom(p, start))
	}
}

//nolint:gochecknoglobals // Static recovery sets
var (
	statementRecovery = syntax.KindSetOf(
		syntax.Semicolon, syntax.LBrace, syntax.RBrace, syntax.VarKw, syntax.FunctionKw, syntax.ClassKw,
		syntax.IfKw, syntax.ForKw, syntax.WhileKw, syntax.DoKw, syntax.SwitchKw, syntax.TryKw,
		syntax.ReturnKw, syntax.ThrowKw, syntax.BreakKw, syntax.ContinueKw, syntax.DebuggerKw,
		syntax.ImportKw, syntax.ExportKw, syntax.ConstKw, syntax.WithKw,
	)
	memberRecovery    = syntax.KindSetOf(syntax.Semicolon, syntax.RBrace, syntax.Comma)
	parameterRecovery = syntax.KindSetOf(syntax.Comma, syntax.RParen, syntax.LBrace, syntax.FatArrow)
	bindingRecovery   = syntax.KindSetOf(
		syntax.Comma, syntax.RParen, syntax.RBrack, syntax.RBrace, syntax.Eq, syntax.Semicolon,
	)
	assignmentOperators = syntax.KindSetOf(
		syntax.Eq, syntax.PlusEq, syntax.MinusEq, syntax.StarEq, syntax.SlashEq, syntax.PercentEq,
		syntax.Star2Eq, syntax.ShlEq, syntax.ShrEq, syntax.UShrEq, syntax.AmpEq, syntax.PipeEq,
		syntax.CaretEq, syntax.Amp2Eq, syntax.Pipe2Eq, syntax.QuestionQuestionEq,
	)
)
