package parser

import (
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// LexContext selects how the lexer interprets the bytes at a position.
// Contexts are defined per language; zero is always the regular context.
type LexContext uint8

// ContextRegular is the default lexing context of every language.
const ContextRegular LexContext = 0

// Lexed is one token or trivia piece produced by a Lexer.
type Lexed struct {
	Kind       syntax.Kind
	Trivia     bool
	TriviaKind syntax.TriviaKind
	// End is the exclusive end offset of the lexeme.
	End int
	// Message annotates malformed lexemes such as unterminated strings.
	Message string
}

// Lexer scans a single lexeme starting at pos. Lexers are stateless: all the
// state they need is the position and the context supplied by the parser,
// which makes rewinding and relexing trivial. Lex is never called at the end
// of input and must always advance.
type Lexer interface {
	Lex(src string, pos int, ctx LexContext) Lexed
}

// Trivia is a trivia piece recorded by the token source.
type Trivia struct {
	Kind     syntax.TriviaKind
	Start    int
	End      int
	Trailing bool
	// Message annotates malformed trivia such as unterminated comments.
	Message string
}

type current struct {
	kind          syntax.Kind
	start         int
	end           int
	newlineBefore bool
	message       string
}

// Lookahead describes a token ahead of the current one.
type Lookahead struct {
	Kind          syntax.Kind
	Start         int
	End           int
	NewlineBefore bool
}

// TokenSource drives a Lexer, separating trivia from tokens.
type TokenSource struct {
	src    string
	lexer  Lexer
	cur    current
	trivia []Trivia
	ahead  []Lookahead
}

// NewTokenSource creates a source positioned at the first token.
func NewTokenSource(src string, lexer Lexer) *TokenSource {
	ts := &TokenSource{src: src, lexer: lexer}
	ts.advance(0, false, ContextRegular)
	return ts
}

// Source returns the full input.
func (ts *TokenSource) Source() string { return ts.src }

// Kind returns the current token kind.
func (ts *TokenSource) Kind() syntax.Kind { return ts.cur.kind }

// Range returns the current token range, trivia excluded.
func (ts *TokenSource) Range() text.Range { return text.NewRange(ts.cur.start, ts.cur.end) }

// Text returns the current token text.
func (ts *TokenSource) Text() string { return ts.src[ts.cur.start:ts.cur.end] }

// HasPrecedingLineBreak reports whether a newline occurs in the trivia before the current token.
func (ts *TokenSource) HasPrecedingLineBreak() bool { return ts.cur.newlineBefore }

// Trivia returns every trivia piece recorded so far.
func (ts *TokenSource) Trivia() []Trivia { return ts.trivia }

// Bump moves past the current token, lexing the next one under ctx.
func (ts *TokenSource) Bump(ctx LexContext) {
	if ts.cur.kind == syntax.EOF {
		return
	}
	ts.advance(ts.cur.end, true, ctx)
}

// Relex re-scans the current token under ctx and returns its new kind.
func (ts *TokenSource) Relex(ctx LexContext) syntax.Kind {
	if ts.cur.kind == syntax.EOF {
		return syntax.EOF
	}
	lexed := ts.lexer.Lex(ts.src, ts.cur.start, ctx)
	ts.cur.kind = lexed.Kind
	ts.cur.end = lexed.End
	ts.cur.message = lexed.Message
	ts.ahead = ts.ahead[:0]
	return ts.cur.kind
}

// Message returns the lexer annotation on the current token, if any.
func (ts *TokenSource) Message() string { return ts.cur.message }

func (ts *TokenSource) advance(pos int, afterToken bool, ctx LexContext) {
	ts.ahead = ts.ahead[:0]
	trailing := afterToken
	newline := false

	for pos < len(ts.src) {
		lexed := ts.lexer.Lex(ts.src, pos, ctx)
		if !lexed.Trivia {
			ts.cur = current{kind: lexed.Kind, start: pos, end: lexed.End, newlineBefore: newline, message: lexed.Message}
			return
		}
		if lexed.TriviaKind == syntax.TriviaNewline {
			trailing = false
			newline = true
		}
		ts.trivia = append(ts.trivia, Trivia{
			Kind: lexed.TriviaKind, Start: pos, End: lexed.End, Trailing: trailing, Message: lexed.Message,
		})
		if lexed.TriviaKind == syntax.TriviaMultiLineComment && containsNewline(ts.src[pos:lexed.End]) {
			trailing = false
			newline = true
		}
		pos = lexed.End
	}
	ts.cur = current{kind: syntax.EOF, start: len(ts.src), end: len(ts.src), newlineBefore: newline}
}

// Nth returns the n-th token after the current one (n >= 1) lexed in the regular context.
func (ts *TokenSource) Nth(n int) Lookahead {
	if n == 0 {
		return Lookahead{Kind: ts.cur.kind, Start: ts.cur.start, End: ts.cur.end, NewlineBefore: ts.cur.newlineBefore}
	}
	for len(ts.ahead) < n {
		pos, last := ts.cur.end, ts.cur.kind
		if len(ts.ahead) > 0 {
			prev := ts.ahead[len(ts.ahead)-1]
			pos, last = prev.End, prev.Kind
		}
		if last == syntax.EOF {
			ts.ahead = append(ts.ahead, Lookahead{Kind: syntax.EOF, Start: len(ts.src), End: len(ts.src)})
			continue
		}
		ts.ahead = append(ts.ahead, ts.scanAhead(pos))
	}
	return ts.ahead[n-1]
}

func (ts *TokenSource) scanAhead(pos int) Lookahead {
	newline := false
	for pos < len(ts.src) {
		lexed := ts.lexer.Lex(ts.src, pos, ContextRegular)
		if !lexed.Trivia {
			return Lookahead{Kind: lexed.Kind, Start: pos, End: lexed.End, NewlineBefore: newline}
		}
		if lexed.TriviaKind == syntax.TriviaNewline ||
			(lexed.TriviaKind == syntax.TriviaMultiLineComment && containsNewline(ts.src[pos:lexed.End])) {
			newline = true
		}
		pos = lexed.End
	}
	return Lookahead{Kind: syntax.EOF, Start: len(ts.src), End: len(ts.src), NewlineBefore: newline}
}

type sourceCheckpoint struct {
	cur       current
	triviaLen int
}

func (ts *TokenSource) checkpoint() sourceCheckpoint {
	return sourceCheckpoint{cur: ts.cur, triviaLen: len(ts.trivia)}
}

func (ts *TokenSource) rewind(cp sourceCheckpoint) {
	ts.cur = cp.cur
	ts.trivia = ts.trivia[:cp.triviaLen]
	ts.ahead = ts.ahead[:0]
}

func containsNewline(s string) bool {
	for i := range len(s) {
		if s[i] == '\n' || s[i] == '\r' {
			return true
		}
	}
	return false
}
