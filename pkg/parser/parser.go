// Package parser provides the language-independent machinery shared by the
// hand-written recursive-descent parsers: a token source over a stateless
// lexer, an event list with markers, checkpoints for bounded speculation,
// error recovery into bogus nodes and the tree sink that folds events into
// a lossless green tree.
package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// CategoryParse is the diagnostic category of syntax errors.
const CategoryParse = "parse"

// Parser holds the event list and diagnostics of one parse.
type Parser struct {
	source *TokenSource
	events []Event
	diags  []diagnostic.Diagnostic
	// speculating counts nested speculative parses; diagnostics are still
	// recorded and dropped on rewind.
	speculating int
	// journal records rewrites of existing events so Rewind can undo those
	// that touched events older than the checkpoint.
	journal []eventWrite
	// frozen is the highest event count captured by a checkpoint. Events
	// below it are never truncated by Abandon.
	frozen int
}

type eventWrite struct {
	index int
	prev  Event
}

// setEvent overwrites the event at i. Events a checkpoint may restore are
// journaled first; newer ones are truncated by any Rewind anyway.
func (p *Parser) setEvent(i int, ev Event) {
	if i < p.frozen {
		p.journal = append(p.journal, eventWrite{index: i, prev: p.events[i]})
	}
	p.events[i] = ev
}

// New creates a parser over src.
func New(src string, lexer Lexer) *Parser {
	return &Parser{source: NewTokenSource(src, lexer)}
}

// Source returns the token source.
func (p *Parser) Source() *TokenSource { return p.source }

// Cur returns the current token kind.
func (p *Parser) Cur() syntax.Kind { return p.source.Kind() }

// CurRange returns the range of the current token.
func (p *Parser) CurRange() text.Range { return p.source.Range() }

// CurText returns the text of the current token.
func (p *Parser) CurText() string { return p.source.Text() }

// At reports whether the current token has the given kind.
func (p *Parser) At(kind syntax.Kind) bool { return p.source.Kind() == kind }

// AtSet reports whether the current token is in set.
func (p *Parser) AtSet(set syntax.KindSet) bool { return set.Has(p.source.Kind()) }

// AtText reports whether the current token text equals s. Used for contextual keywords.
func (p *Parser) AtText(s string) bool { return p.source.Text() == s }

// Nth returns the kind of the n-th token after the current one.
func (p *Parser) Nth(n int) syntax.Kind { return p.source.Nth(n).Kind }

// NthAt reports whether the n-th token has the given kind.
func (p *Parser) NthAt(n int, kind syntax.Kind) bool { return p.source.Nth(n).Kind == kind }

// NthText returns the text of the n-th token after the current one.
func (p *Parser) NthText(n int) string {
	la := p.source.Nth(n)
	return p.source.src[la.Start:la.End]
}

// NthHasPrecedingLineBreak reports a line break before the n-th token.
func (p *Parser) NthHasPrecedingLineBreak(n int) bool { return p.source.Nth(n).NewlineBefore }

// HasPrecedingLineBreak reports a line break before the current token.
func (p *Parser) HasPrecedingLineBreak() bool { return p.source.HasPrecedingLineBreak() }

// Bump consumes the current token, which must have the given kind.
func (p *Parser) Bump(kind syntax.Kind) {
	if p.Cur() != kind {
		panic(fmt.Sprintf("parser: bump %s but current token is %s", kind, p.Cur()))
	}
	p.bump(kind, ContextRegular)
}

// BumpAny consumes the current token whatever its kind.
func (p *Parser) BumpAny() {
	p.bump(p.Cur(), ContextRegular)
}

// BumpRemap consumes the current token, recording it as kind.
func (p *Parser) BumpRemap(kind syntax.Kind) {
	p.bump(kind, ContextRegular)
}

// BumpWithContext consumes the current token and lexes the next one under ctx.
func (p *Parser) BumpWithContext(kind syntax.Kind, ctx LexContext) {
	p.bump(kind, ctx)
}

func (p *Parser) bump(kind syntax.Kind, ctx LexContext) {
	if p.Cur() == syntax.EOF && kind != syntax.EOF {
		return
	}
	r := p.source.Range()
	if msg := p.source.Message(); msg != "" {
		p.diags = append(p.diags, diagnostic.New(CategoryParse, diagnostic.SeverityError, r, msg))
	}
	p.events = append(p.events, Event{Kind: EventToken, NodeKind: kind, Start: r.Start, End: r.End})
	p.source.Bump(ctx)
}

// VirtualToken inserts a zero-length token at the end of the previous token.
// Automatic semicolon insertion uses it so that the tree shape is uniform
// while the source round-trips unchanged.
func (p *Parser) VirtualToken(kind syntax.Kind) {
	pos := p.LastTokenEnd()
	p.events = append(p.events, Event{Kind: EventToken, NodeKind: kind, Start: pos, End: pos, Virtual: true})
}

// LastTokenEnd returns the end offset of the most recently consumed token.
func (p *Parser) LastTokenEnd() int {
	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i].Kind == EventToken {
			return p.events[i].End
		}
	}
	return 0
}

// Missing records an empty slot.
func (p *Parser) Missing() {
	p.events = append(p.events, Event{Kind: EventMissing})
}

// Eat consumes the current token if it has the given kind.
func (p *Parser) Eat(kind syntax.Kind) bool {
	if !p.At(kind) {
		return false
	}
	p.Bump(kind)
	return true
}

// Expect consumes kind or reports an error and records an empty slot.
func (p *Parser) Expect(kind syntax.Kind) bool {
	if p.Eat(kind) {
		return true
	}
	p.ErrorExpected(Describe(kind))
	p.Missing()
	return false
}

// Relex re-scans the current token under ctx.
func (p *Parser) Relex(ctx LexContext) syntax.Kind {
	return p.source.Relex(ctx)
}

// Error records a syntax error at r. A second error at the same start offset is dropped.
func (p *Parser) Error(message string, r text.Range) {
	if n := len(p.diags); n > 0 && p.diags[n-1].Location.Range.Start == r.Start {
		return
	}
	p.diags = append(p.diags, diagnostic.New(CategoryParse, diagnostic.SeverityError, r, message))
}

// ErrorHere records a syntax error at the current token.
func (p *Parser) ErrorHere(message string) {
	p.Error(message, p.CurRange())
}

// ErrorExpected reports that what was expected but something else was found.
func (p *Parser) ErrorExpected(what string) {
	p.ErrorHere(fmt.Sprintf("expected %s but instead found %s", what, p.describeCur()))
}

func (p *Parser) describeCur() string {
	if p.At(syntax.EOF) {
		return "the end of the file"
	}
	return "`" + p.CurText() + "`"
}

// Describe renders a kind for "expected ..." messages.
func Describe(kind syntax.Kind) string {
	if t := kind.Text(); t != "" {
		return "`" + t + "`"
	}
	name := kind.String()
	switch kind {
	case syntax.Ident:
		return "an identifier"
	case syntax.StringLit:
		return "a string literal"
	case syntax.NumberLit:
		return "a number literal"
	case syntax.EOF:
		return "the end of the file"
	}
	return "a " + strings.ToLower(name)
}

// Diagnostics returns the diagnostics recorded so far.
func (p *Parser) Diagnostics() []diagnostic.Diagnostic { return p.diags }

// Checkpoint captures the parser state for speculation.
type Checkpoint struct {
	source     sourceCheckpoint
	eventsLen  int
	diagsLen   int
	journalLen int
}

// Checkpoint returns the current state.
func (p *Parser) Checkpoint() Checkpoint {
	p.frozen = max(p.frozen, len(p.events))
	return Checkpoint{
		source:     p.source.checkpoint(),
		eventsLen:  len(p.events),
		diagsLen:   len(p.diags),
		journalLen: len(p.journal),
	}
}

// Rewind restores a checkpoint, discarding events and diagnostics recorded
// after it. Rewrites of older events since the checkpoint, such as the
// forward parent set by Precede, are undone as well.
func (p *Parser) Rewind(cp Checkpoint) {
	p.source.rewind(cp.source)
	p.events = p.events[:cp.eventsLen]
	for i := len(p.journal) - 1; i >= cp.journalLen; i-- {
		if w := p.journal[i]; w.index < cp.eventsLen {
			p.events[w.index] = w.prev
		}
	}
	p.journal = p.journal[:cp.journalLen]
	p.diags = p.diags[:cp.diagsLen]
}

// HasErrorsSince reports whether diagnostics were recorded after cp.
func (p *Parser) HasErrorsSince(cp Checkpoint) bool {
	return len(p.diags) > cp.diagsLen
}

// Speculate runs fn and rewinds unless it returns true.
func (p *Parser) Speculate(fn func() bool) bool {
	cp := p.Checkpoint()
	p.speculating++
	ok := fn()
	p.speculating--
	if !ok {
		p.Rewind(cp)
	}
	return ok
}

// IsSpeculating reports whether a Speculate call is in progress.
func (p *Parser) IsSpeculating() bool { return p.speculating > 0 }

// Finish folds the events into a green tree interned through cache.
func (p *Parser) Finish(cache *syntax.NodeCache) *Parse {
	green := buildTree(p.source.src, p.events, p.source.trivia, cache)
	for _, tr := range p.source.trivia {
		if tr.Message != "" {
			p.diags = append(p.diags, diagnostic.New(CategoryParse, diagnostic.SeverityError, text.NewRange(tr.Start, tr.End), tr.Message))
		}
	}
	slices.SortStableFunc(p.diags, func(a, b diagnostic.Diagnostic) int {
		return a.Location.Range.Start - b.Location.Range.Start
	})
	return &Parse{Green: green, Diagnostics: p.diags}
}
