package graphql

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

type lexer struct{}

//nolint:gochecknoglobals // Static lookup table
var punct = map[byte]syntax.Kind{
	'!': syntax.Bang, '$': syntax.Dollar, '&': syntax.Amp, '(': syntax.LParen, ')': syntax.RParen,
	':': syntax.Colon, '=': syntax.Eq, '@': syntax.At, '[': syntax.LBrack, ']': syntax.RBrack,
	'{': syntax.LBrace, '|': syntax.Pipe, '}': syntax.RBrace, ',': syntax.Comma,
}

// Lex implements parser.Lexer. Names are always lexed as identifiers and
// keywords are remapped by the parser where the grammar expects them.
func (lexer) Lex(src string, pos int, _ parser.LexContext) parser.Lexed {
	c := src[pos]
	switch {
	case c == ' ' || c == '\t':
		end := pos + 1
		for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
			end++
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaWhitespace, End: end}
	case c == '\n':
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 1}
	case c == '\r':
		if pos+1 < len(src) && src[pos+1] == '\n' {
			return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 2}
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 1}
	case c == '#':
		end := pos + 1
		for end < len(src) && src[end] != '\n' && src[end] != '\r' {
			end++
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaSingleLineComment, End: end}
	case c == '"':
		if strings.HasPrefix(src[pos:], `"""`) {
			return lexBlockString(src, pos)
		}
		return lexString(src, pos)
	case c == '.':
		if strings.HasPrefix(src[pos:], "...") {
			return parser.Lexed{Kind: syntax.DotDotDot, End: pos + 3}
		}
		return parser.Lexed{Kind: syntax.ErrorToken, End: pos + 1, Message: "unexpected `.`, did you mean `...`?"}
	case c == '-' || isDigit(c):
		return lexNumber(src, pos)
	case isNameStart(c):
		end := pos + 1
		for end < len(src) && (isNameStart(src[end]) || isDigit(src[end])) {
			end++
		}
		return parser.Lexed{Kind: syntax.Ident, End: end}
	}
	if k, ok := punct[c]; ok {
		return parser.Lexed{Kind: k, End: pos + 1}
	}

	end := pos + 1
	for end < len(src) && src[end] >= 0x80 && src[end] < 0xC0 {
		end++
	}
	return parser.Lexed{Kind: syntax.ErrorToken, End: end, Message: "unexpected character `" + src[pos:end] + "`"}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func lexNumber(src string, pos int) parser.Lexed {
	i := pos
	if src[i] == '-' {
		i++
	}
	start := i
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	msg := ""
	switch {
	case i == start:
		msg = "expected a digit after `-`"
	case i-start > 1 && src[start] == '0':
		msg = "numbers cannot have leading zeros"
	}
	if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
		i += 2
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			i = j
			for i < len(src) && isDigit(src[i]) {
				i++
			}
		} else if msg == "" {
			msg = "missing exponent digits"
			i = j
		}
	}
	if i < len(src) && isNameStart(src[i]) && msg == "" {
		msg = "invalid number, expected a digit but found a name character"
	}
	return parser.Lexed{Kind: syntax.NumberLit, End: i, Message: msg}
}

func lexString(src string, pos int) parser.Lexed {
	for i := pos + 1; i < len(src); i++ {
		switch src[i] {
		case '"':
			return parser.Lexed{Kind: syntax.StringLit, End: i + 1}
		case '\\':
			i++
		case '\n', '\r':
			return parser.Lexed{Kind: syntax.StringLit, End: i, Message: "unterminated string"}
		}
	}
	return parser.Lexed{Kind: syntax.StringLit, End: len(src), Message: "unterminated string"}
}

func lexBlockString(src string, pos int) parser.Lexed {
	for i := pos + 3; i < len(src); i++ {
		if src[i] == '\\' && strings.HasPrefix(src[i+1:], `"""`) {
			i += 3
			continue
		}
		if strings.HasPrefix(src[i:], `"""`) {
			return parser.Lexed{Kind: syntax.GraphqlBlockString, End: i + 3}
		}
	}
	return parser.Lexed{Kind: syntax.GraphqlBlockString, End: len(src), Message: "unterminated block string"}
}
