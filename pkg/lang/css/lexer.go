package css

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

type lexer struct {
	lineComments bool
}

//nolint:gochecknoglobals // Static lookup table
var punct = map[byte]syntax.Kind{
	'{': syntax.LBrace, '}': syntax.RBrace, '(': syntax.LParen, ')': syntax.RParen,
	'[': syntax.LBrack, ']': syntax.RBrack, ':': syntax.Colon, ';': syntax.Semicolon,
	',': syntax.Comma, '.': syntax.Dot, '>': syntax.Gt, '<': syntax.Lt, '+': syntax.Plus,
	'~': syntax.Tilde, '*': syntax.Star, '=': syntax.Eq, '|': syntax.Pipe, '^': syntax.Caret,
	'$': syntax.Dollar, '!': syntax.Bang, '/': syntax.Slash, '%': syntax.Percent,
	'&': syntax.Amp, '-': syntax.Minus, '#': syntax.Hash, '@': syntax.At,
}

// Lex implements parser.Lexer.
func (l lexer) Lex(src string, pos int, _ parser.LexContext) parser.Lexed {
	c := src[pos]
	switch {
	case c == ' ' || c == '\t' || c == '\f':
		end := pos + 1
		for end < len(src) && (src[end] == ' ' || src[end] == '\t' || src[end] == '\f') {
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
	case c == '/' && pos+1 < len(src) && src[pos+1] == '*':
		if end := strings.Index(src[pos+2:], "*/"); end >= 0 {
			return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaMultiLineComment, End: pos + 2 + end + 2}
		}
		return parser.Lexed{
			Trivia: true, TriviaKind: syntax.TriviaMultiLineComment, End: len(src),
			Message: "unterminated block comment",
		}
	case c == '/' && l.lineComments && pos+1 < len(src) && src[pos+1] == '/':
		end := pos + 2
		for end < len(src) && src[end] != '\n' && src[end] != '\r' {
			end++
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaSingleLineComment, End: end}
	case c == '"' || c == '\'':
		return lexString(src, pos)
	case isDigit(c) || (c == '.' && pos+1 < len(src) && isDigit(src[pos+1])):
		return lexNumeric(src, pos)
	case (c == '+' || c == '-') && startsNumber(src, pos+1):
		return lexNumeric(src, pos)
	case c == '#' && pos+1 < len(src) && isNameByte(src[pos+1]):
		return parser.Lexed{Kind: syntax.CssHashToken, End: scanName(src, pos+1)}
	case c == '@' && startsIdent(src, pos+1):
		return parser.Lexed{Kind: syntax.CssAtKeyword, End: scanName(src, pos+1)}
	case startsIdent(src, pos):
		end := scanName(src, pos)
		if strings.EqualFold(src[pos:end], "url") && end < len(src) && src[end] == '(' {
			if url, ok := lexURL(src, end+1); ok {
				return url
			}
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
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isNameByte(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}

func startsIdent(src string, pos int) bool {
	if pos >= len(src) {
		return false
	}
	c := src[pos]
	switch {
	case isNameStart(c):
		return true
	case c == '\\':
		return pos+1 < len(src) && src[pos+1] != '\n'
	case c == '-':
		return pos+1 < len(src) && (isNameStart(src[pos+1]) || src[pos+1] == '-' || src[pos+1] == '\\')
	}
	return false
}

func startsNumber(src string, pos int) bool {
	if pos >= len(src) {
		return false
	}
	if isDigit(src[pos]) {
		return true
	}
	return src[pos] == '.' && pos+1 < len(src) && isDigit(src[pos+1])
}

func scanName(src string, pos int) int {
	for pos < len(src) {
		switch {
		case isNameByte(src[pos]):
			pos++
		case src[pos] == '\\' && pos+1 < len(src):
			pos += 2
		default:
			return pos
		}
	}
	return pos
}

func lexNumeric(src string, pos int) parser.Lexed {
	i := pos
	if src[i] == '+' || src[i] == '-' {
		i++
	}
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i+1 < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			i = j
			for i < len(src) && isDigit(src[i]) {
				i++
			}
		}
	}
	switch {
	case i < len(src) && src[i] == '%':
		return parser.Lexed{Kind: syntax.CssPercentage, End: i + 1}
	case startsIdent(src, i):
		return parser.Lexed{Kind: syntax.CssDimension, End: scanName(src, i)}
	}
	return parser.Lexed{Kind: syntax.NumberLit, End: i}
}

func lexString(src string, pos int) parser.Lexed {
	quote := src[pos]
	for i := pos + 1; i < len(src); i++ {
		switch src[i] {
		case quote:
			return parser.Lexed{Kind: syntax.StringLit, End: i + 1}
		case '\\':
			i++
		case '\n', '\r':
			return parser.Lexed{Kind: syntax.StringLit, End: i, Message: "unterminated string"}
		}
	}
	return parser.Lexed{Kind: syntax.StringLit, End: len(src), Message: "unterminated string"}
}

// lexURL scans an unquoted url(...) token. Quoted urls are left to the
// parser as a regular function.
func lexURL(src string, pos int) (parser.Lexed, bool) {
	i := pos
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i < len(src) && (src[i] == '"' || src[i] == '\'') {
		return parser.Lexed{}, false
	}
	for ; i < len(src); i++ {
		switch src[i] {
		case ')':
			return parser.Lexed{Kind: syntax.CssUrlValue, End: i + 1}, true
		case '\n', '(', '"', '\'':
			return parser.Lexed{Kind: syntax.CssUrlValue, End: i, Message: "unterminated url"}, true
		case '\\':
			i++
		}
	}
	return parser.Lexed{Kind: syntax.CssUrlValue, End: len(src), Message: "unterminated url"}, true
}
