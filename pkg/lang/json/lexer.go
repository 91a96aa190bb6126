package json

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

type lexer struct{}

// Lex implements parser.Lexer. Comments are always lexed as trivia; the
// parser reports them when the dialect forbids them.
func (lexer) Lex(src string, pos int, _ parser.LexContext) parser.Lexed {
	c := src[pos]
	switch c {
	case ' ', '\t':
		end := pos + 1
		for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
			end++
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaWhitespace, End: end}
	case '\n':
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 1}
	case '\r':
		if pos+1 < len(src) && src[pos+1] == '\n' {
			return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 2}
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 1}
	case '/':
		if pos+1 < len(src) {
			switch src[pos+1] {
			case '/':
				end := pos + 2
				for end < len(src) && src[end] != '\n' && src[end] != '\r' {
					end++
				}
				return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaSingleLineComment, End: end}
			case '*':
				for end := pos + 2; end+1 < len(src); end++ {
					if src[end] == '*' && src[end+1] == '/' {
						return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaMultiLineComment, End: end + 2}
					}
				}
				return parser.Lexed{
					Trivia: true, TriviaKind: syntax.TriviaMultiLineComment, End: len(src),
					Message: "unterminated block comment",
				}
			}
		}
	case '{':
		return parser.Lexed{Kind: syntax.LBrace, End: pos + 1}
	case '}':
		return parser.Lexed{Kind: syntax.RBrace, End: pos + 1}
	case '[':
		return parser.Lexed{Kind: syntax.LBrack, End: pos + 1}
	case ']':
		return parser.Lexed{Kind: syntax.RBrack, End: pos + 1}
	case ':':
		return parser.Lexed{Kind: syntax.Colon, End: pos + 1}
	case ',':
		return parser.Lexed{Kind: syntax.Comma, End: pos + 1}
	case '"', '\'':
		return lexString(src, pos)
	}
	if c == '-' || (c >= '0' && c <= '9') {
		return lexNumber(src, pos)
	}
	if isWordByte(c) {
		end := pos + 1
		for end < len(src) && (isWordByte(src[end]) || (src[end] >= '0' && src[end] <= '9')) {
			end++
		}
		switch src[pos:end] {
		case "true":
			return parser.Lexed{Kind: syntax.TrueKw, End: end}
		case "false":
			return parser.Lexed{Kind: syntax.FalseKw, End: end}
		case "null":
			return parser.Lexed{Kind: syntax.NullKw, End: end}
		}
		return parser.Lexed{Kind: syntax.Ident, End: end}
	}

	end := pos + 1
	for end < len(src) && src[end] >= 0x80 && src[end] < 0xC0 {
		end++
	}
	return parser.Lexed{Kind: syntax.ErrorToken, End: end, Message: "unexpected character `" + src[pos:end] + "`"}
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func lexString(src string, pos int) parser.Lexed {
	quote := src[pos]
	msg := ""
	if quote == '\'' {
		msg = "JSON strings must use double quotes"
	}
	i := pos + 1
	for i < len(src) {
		switch src[i] {
		case quote:
			return parser.Lexed{Kind: syntax.StringLit, End: i + 1, Message: msg}
		case '\\':
			if i+1 < len(src) {
				switch src[i+1] {
				case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
					i += 2
					continue
				case 'u':
					if i+6 <= len(src) && isHex4(src[i+2:i+6]) {
						i += 6
						continue
					}
					if msg == "" {
						msg = "invalid unicode escape sequence"
					}
					i += 2
					continue
				}
			}
			if msg == "" {
				msg = "invalid escape sequence"
			}
			i += 2
			continue
		case '\n', '\r':
			return parser.Lexed{Kind: syntax.StringLit, End: i, Message: "unterminated string literal"}
		}
		i++
	}
	return parser.Lexed{Kind: syntax.StringLit, End: len(src), Message: "unterminated string literal"}
}

func isHex4(s string) bool {
	for i := range len(s) {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// lexNumber follows the JSON number grammar and reports malformed numbers
// while still consuming a maximal run.
func lexNumber(src string, pos int) parser.Lexed {
	i := pos
	if src[i] == '-' {
		i++
	}
	digits := func() int {
		start := i
		for i < len(src) && src[i] >= '0' && src[i] <= '9' {
			i++
		}
		return i - start
	}
	msg := ""
	intStart := i
	n := digits()
	switch {
	case n == 0:
		msg = "minus must be followed by a digit"
	case n > 1 && src[intStart] == '0':
		msg = "JSON numbers cannot have leading zeros"
	}
	if i < len(src) && src[i] == '.' {
		i++
		if digits() == 0 && msg == "" {
			msg = "missing fraction digits"
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		i++
		if i < len(src) && (src[i] == '+' || src[i] == '-') {
			i++
		}
		if digits() == 0 && msg == "" {
			msg = "missing exponent digits"
		}
	}
	return parser.Lexed{Kind: syntax.NumberLit, End: i, Message: msg}
}
