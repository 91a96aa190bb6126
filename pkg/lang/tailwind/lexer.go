package tailwind

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

const (
	// contextValue lexes the value of a functional utility after its `-`.
	contextValue parser.LexContext = iota + 1
	// contextArbitrary lexes the inside of `[...]` up to the balancing `]`.
	contextArbitrary
)

type lexer struct{}

// Lex implements parser.Lexer.
func (lexer) Lex(src string, pos int, ctx parser.LexContext) parser.Lexed {
	c := src[pos]
	if isSpace(c) {
		if c == '\n' {
			return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 1}
		}
		if c == '\r' {
			if pos+1 < len(src) && src[pos+1] == '\n' {
				return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 2}
			}
			return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 1}
		}
		end := pos + 1
		for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
			end++
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaWhitespace, End: end}
	}

	switch ctx {
	case contextArbitrary:
		if c != ']' {
			return lexArbitrary(src, pos)
		}
	case contextValue:
		if c != '[' {
			end := pos
			for end < len(src) && !isSpace(src[end]) && !isValueStop(src[end]) {
				end++
			}
			if end > pos {
				return parser.Lexed{Kind: syntax.TwValue, End: end}
			}
		}
	}

	switch c {
	case ':':
		return parser.Lexed{Kind: syntax.Colon, End: pos + 1}
	case '!':
		return parser.Lexed{Kind: syntax.Bang, End: pos + 1}
	case '-':
		return parser.Lexed{Kind: syntax.Minus, End: pos + 1}
	case '/':
		return parser.Lexed{Kind: syntax.Slash, End: pos + 1}
	case '[':
		return parser.Lexed{Kind: syntax.LBrack, End: pos + 1}
	case ']':
		return parser.Lexed{Kind: syntax.RBrack, End: pos + 1}
	}
	end := pos
	for end < len(src) && !isSpace(src[end]) && !isBaseStop(src[end]) {
		end++
	}
	return parser.Lexed{Kind: syntax.TwBase, End: end}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isBaseStop(c byte) bool {
	switch c {
	case ':', '!', '-', '/', '[', ']':
		return true
	}
	return false
}

func isValueStop(c byte) bool {
	switch c {
	case ':', '!', '/', '[', ']':
		return true
	}
	return false
}

// lexArbitrary scans to the `]` balancing the opening bracket. Quoted
// strings may contain brackets.
func lexArbitrary(src string, pos int) parser.Lexed {
	depth := 0
	var quote byte
	for i := pos; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			if depth == 0 {
				return parser.Lexed{Kind: syntax.TwValue, End: i}
			}
			depth--
		case isSpace(c):
			return parser.Lexed{Kind: syntax.TwValue, End: i, Message: "arbitrary values cannot contain whitespace, use `_` instead"}
		}
	}
	return parser.Lexed{Kind: syntax.TwValue, End: len(src), Message: "unterminated arbitrary value"}
}
