package grit

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

type lexer struct{}

//nolint:gochecknoglobals // Static lookup table
var keywords = map[string]syntax.Kind{
	"where":    syntax.GritWhereKw,
	"or":       syntax.GritOrKw,
	"and":      syntax.GritAndKw,
	"not":      syntax.GritNotKw,
	"maybe":    syntax.GritMaybeKw,
	"contains": syntax.GritContainsKw,
	"within":   syntax.GritWithinKw,
	"bubble":   syntax.GritBubbleKw,
}

// Lex implements parser.Lexer.
func (lexer) Lex(src string, pos int, _ parser.LexContext) parser.Lexed {
	c := src[pos]
	rest := src[pos:]
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
	case strings.HasPrefix(rest, "//"):
		end := pos + 2
		for end < len(src) && src[end] != '\n' && src[end] != '\r' {
			end++
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaSingleLineComment, End: end}
	case strings.HasPrefix(rest, "/*"):
		if end := strings.Index(rest[2:], "*/"); end >= 0 {
			return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaMultiLineComment, End: pos + 2 + end + 2}
		}
		return parser.Lexed{
			Trivia: true, TriviaKind: syntax.TriviaMultiLineComment, End: len(src),
			Message: "unterminated block comment",
		}
	case c == '`':
		return lexQuoted(src, pos, '`', syntax.GritSnippet, "unterminated code snippet")
	case c == '"':
		return lexQuoted(src, pos, '"', syntax.StringLit, "unterminated string")
	case c == '$':
		if strings.HasPrefix(rest, "$...") {
			return parser.Lexed{Kind: syntax.GritVariableToken, End: pos + 4}
		}
		end := pos + 1
		for end < len(src) && isNameByte(src[end]) {
			end++
		}
		if end == pos+1 {
			return parser.Lexed{Kind: syntax.ErrorToken, End: end, Message: "expected a variable name after `$`"}
		}
		return parser.Lexed{Kind: syntax.GritVariableToken, End: end}
	case strings.HasPrefix(rest, "=>"):
		return parser.Lexed{Kind: syntax.FatArrow, End: pos + 2}
	case strings.HasPrefix(rest, "<:"):
		return parser.Lexed{Kind: syntax.Match, End: pos + 2}
	case strings.HasPrefix(rest, "+="):
		return parser.Lexed{Kind: syntax.PlusEq, End: pos + 2}
	case isDigit(c) || (c == '-' && pos+1 < len(src) && isDigit(src[pos+1])):
		end := pos + 1
		for end < len(src) && isDigit(src[end]) {
			end++
		}
		return parser.Lexed{Kind: syntax.NumberLit, End: end}
	case isNameByte(c):
		end := pos + 1
		for end < len(src) && isNameByte(src[end]) {
			end++
		}
		if kw, ok := keywords[src[pos:end]]; ok {
			return parser.Lexed{Kind: kw, End: end}
		}
		return parser.Lexed{Kind: syntax.Ident, End: end}
	}
	switch c {
	case '{':
		return parser.Lexed{Kind: syntax.LBrace, End: pos + 1}
	case '}':
		return parser.Lexed{Kind: syntax.RBrace, End: pos + 1}
	case '(':
		return parser.Lexed{Kind: syntax.LParen, End: pos + 1}
	case ')':
		return parser.Lexed{Kind: syntax.RParen, End: pos + 1}
	case '[':
		return parser.Lexed{Kind: syntax.LBrack, End: pos + 1}
	case ']':
		return parser.Lexed{Kind: syntax.RBrack, End: pos + 1}
	case ',':
		return parser.Lexed{Kind: syntax.Comma, End: pos + 1}
	case '=':
		return parser.Lexed{Kind: syntax.Eq, End: pos + 1}
	case '!':
		return parser.Lexed{Kind: syntax.Bang, End: pos + 1}
	case ';':
		return parser.Lexed{Kind: syntax.Semicolon, End: pos + 1}
	case '.':
		return parser.Lexed{Kind: syntax.Dot, End: pos + 1}
	}

	end := pos + 1
	for end < len(src) && src[end] >= 0x80 && src[end] < 0xC0 {
		end++
	}
	return parser.Lexed{Kind: syntax.ErrorToken, End: end, Message: "unexpected character `" + src[pos:end] + "`"}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || isDigit(c)
}

func lexQuoted(src string, pos int, quote byte, kind syntax.Kind, unterminated string) parser.Lexed {
	for i := pos + 1; i < len(src); i++ {
		switch src[i] {
		case quote:
			return parser.Lexed{Kind: kind, End: i + 1}
		case '\\':
			i++
		}
	}
	return parser.Lexed{Kind: kind, End: len(src), Message: unterminated}
}
