package js

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Lexing contexts. The parser switches context when a token boundary
// depends on the grammar.
const (
	contextRegular = parser.ContextRegular
	// contextRegex lexes a `/` as the start of a regular expression literal.
	contextRegex parser.LexContext = iota
	// contextTemplate lexes template literal chunks, `${` and the closing backtick.
	contextTemplate
	// contextJsxChild lexes JSX text, `{`, `<` and `</`.
	contextJsxChild
	// contextJsxTag lexes JSX names (which may contain `-`), strings without escapes, `/>` and a lone `>`.
	contextJsxTag
	// contextTypeArgs lexes a lone `>` so nested type arguments can close.
	contextTypeArgs
)

type lexer struct{}

// Lex implements parser.Lexer.
func (lexer) Lex(src string, pos int, ctx parser.LexContext) parser.Lexed {
	switch ctx {
	case contextTemplate:
		return lexTemplate(src, pos)
	case contextJsxChild:
		return lexJsxChild(src, pos)
	case contextJsxTag:
		if lexed, ok := lexJsxTag(src, pos); ok {
			return lexed
		}
	case contextRegex:
		if src[pos] == '/' {
			return lexRegex(src, pos)
		}
	case contextTypeArgs:
		if src[pos] == '>' {
			return parser.Lexed{Kind: syntax.Gt, End: pos + 1}
		}
	}
	return lexRegular(src, pos)
}

func lexRegular(src string, pos int) parser.Lexed {
	c := src[pos]

	if pos == 0 && len(src) > 1 && c == '#' && src[1] == '!' {
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaSingleLineComment, End: lineEnd(src, pos)}
	}

	switch c {
	case ' ', '\t', '\v', '\f':
		return lexWhitespace(src, pos)
	case '\n':
		return newline(pos + 1)
	case '\r':
		if pos+1 < len(src) && src[pos+1] == '\n' {
			return newline(pos + 2)
		}
		return newline(pos + 1)
	case '/':
		if pos+1 < len(src) {
			switch src[pos+1] {
			case '/':
				return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaSingleLineComment, End: lineEnd(src, pos)}
			case '*':
				return lexBlockComment(src, pos)
			}
		}
	case '"', '\'':
		return lexString(src, pos, c)
	case '`':
		return tok(syntax.Backtick, pos+1)
	}

	if isDigit(c) || (c == '.' && pos+1 < len(src) && isDigit(src[pos+1])) {
		return lexNumber(src, pos)
	}

	if c >= utf8.RuneSelf {
		r, size := utf8.DecodeRuneInString(src[pos:])
		switch {
		case r == '\u2028' || r == '\u2029':
			return newline(pos + size)
		case r == '\uFEFF' || r == '\u00A0' || unicode.Is(unicode.Zs, r):
			return lexWhitespace(src, pos)
		case isIdentStartRune(r):
			return lexIdent(src, pos)
		default:
			return lexError(src, pos)
		}
	}
	if isIdentStart(c) || c == '\\' {
		return lexIdent(src, pos)
	}

	if kind, n := lexPunct(src, pos); n > 0 {
		return tok(kind, pos+n)
	}
	return lexError(src, pos)
}

func tok(kind syntax.Kind, end int) parser.Lexed {
	return parser.Lexed{Kind: kind, End: end}
}

func newline(end int) parser.Lexed {
	return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: end}
}

func lexWhitespace(src string, pos int) parser.Lexed {
	end := pos
	for end < len(src) {
		c := src[end]
		if c == ' ' || c == '\t' || c == '\v' || c == '\f' {
			end++
			continue
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(src[end:])
			if r == '\uFEFF' || r == '\u00A0' || (r != '\u2028' && r != '\u2029' && unicode.Is(unicode.Zs, r)) {
				end += size
				continue
			}
		}
		break
	}
	return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaWhitespace, End: end}
}

func lineEnd(src string, pos int) int {
	for pos < len(src) {
		switch src[pos] {
		case '\n', '\r':
			return pos
		case 0xE2:
			// U+2028 and U+2029 are E2 80 A8 / E2 80 A9.
			if pos+2 < len(src) && src[pos+1] == 0x80 && (src[pos+2] == 0xA8 || src[pos+2] == 0xA9) {
				return pos
			}
		}
		pos++
	}
	return pos
}

func lexBlockComment(src string, pos int) parser.Lexed {
	for i := pos + 2; i+1 < len(src); i++ {
		if src[i] == '*' && src[i+1] == '/' {
			return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaMultiLineComment, End: i + 2}
		}
	}
	return parser.Lexed{
		Trivia:     true,
		TriviaKind: syntax.TriviaMultiLineComment,
		End:        len(src),
		Message:    "unterminated block comment",
	}
}

func lexString(src string, pos int, quote byte) parser.Lexed {
	i := pos + 1
	for i < len(src) {
		switch src[i] {
		case quote:
			return tok(syntax.StringLit, i+1)
		case '\\':
			i += 2
			if i > len(src) {
				i = len(src)
			}
			continue
		case '\n', '\r':
			return parser.Lexed{Kind: syntax.StringLit, End: i, Message: "unterminated string literal"}
		}
		i++
	}
	return parser.Lexed{Kind: syntax.StringLit, End: len(src), Message: "unterminated string literal"}
}

func lexNumber(src string, pos int) parser.Lexed {
	i := pos
	if src[i] == '0' && i+1 < len(src) {
		var digit func(byte) bool
		switch src[i+1] {
		case 'x', 'X':
			digit = isHexDigit
		case 'o', 'O':
			digit = func(c byte) bool { return c >= '0' && c <= '7' }
		case 'b', 'B':
			digit = func(c byte) bool { return c == '0' || c == '1' }
		}
		if digit != nil {
			i += 2
			start := i
			for i < len(src) && (digit(src[i]) || src[i] == '_') {
				i++
			}
			return finishNumber(src, i, i == start)
		}
	}

	for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
		i++
	}
	if i < len(src) && src[i] == 'n' {
		return tok(syntax.BigintLit, i+1)
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
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
			for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
				i++
			}
		}
	}
	return finishNumber(src, i, false)
}

func finishNumber(src string, end int, empty bool) parser.Lexed {
	if end < len(src) && src[end] == 'n' {
		return tok(syntax.BigintLit, end+1)
	}
	lexed := tok(syntax.NumberLit, end)
	if empty {
		lexed.Message = "expected digits after the number prefix"
	}
	if end < len(src) && (isIdentStart(src[end]) || isDigit(src[end])) {
		for end < len(src) && isIdentPart(src[end]) {
			end++
		}
		lexed.End = end
		lexed.Message = "an identifier cannot appear immediately after a numeric literal"
	}
	return lexed
}

func lexIdent(src string, pos int) parser.Lexed {
	i := pos
	for i < len(src) {
		c := src[i]
		if c < utf8.RuneSelf {
			if isIdentPart(c) {
				i++
				continue
			}
			if c == '\\' && i+1 < len(src) && src[i+1] == 'u' {
				i = skipUnicodeEscape(src, i)
				continue
			}
			break
		}
		r, size := utf8.DecodeRuneInString(src[i:])
		if !isIdentPartRune(r) {
			break
		}
		i += size
	}
	if i == pos {
		return lexError(src, pos)
	}
	if kind, ok := syntax.KeywordKind(src[pos:i]); ok && syntax.ReservedKeyword(kind) {
		return tok(kind, i)
	}
	return tok(syntax.Ident, i)
}

func skipUnicodeEscape(src string, i int) int {
	i += 2
	if i < len(src) && src[i] == '{' {
		for i < len(src) && src[i] != '}' {
			i++
		}
		return min(i+1, len(src))
	}
	for n := 0; n < 4 && i < len(src) && isHexDigit(src[i]); n++ {
		i++
	}
	return i
}

// lexError consumes a maximal run of bytes that cannot start any token.
func lexError(src string, pos int) parser.Lexed {
	_, size := utf8.DecodeRuneInString(src[pos:])
	end := pos + size
	for end < len(src) {
		c := src[end]
		if c < utf8.RuneSelf {
			if isIdentStart(c) || isDigit(c) || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
				break
			}
			if _, n := lexPunct(src, end); n > 0 || c == '"' || c == '\'' || c == '`' {
				break
			}
			end++
			continue
		}
		r, n := utf8.DecodeRuneInString(src[end:])
		if isIdentStartRune(r) || unicode.IsSpace(r) {
			break
		}
		end += n
	}
	return parser.Lexed{Kind: syntax.ErrorToken, End: end, Message: "unexpected character `" + src[pos:end] + "`"}
}

//nolint:gocyclo,cyclop,funlen // Punctuation table
func lexPunct(src string, pos int) (syntax.Kind, int) {
	at := func(i int) byte {
		if pos+i < len(src) {
			return src[pos+i]
		}
		return 0
	}
	switch src[pos] {
	case '(':
		return syntax.LParen, 1
	case ')':
		return syntax.RParen, 1
	case '{':
		return syntax.LBrace, 1
	case '}':
		return syntax.RBrace, 1
	case '[':
		return syntax.LBrack, 1
	case ']':
		return syntax.RBrack, 1
	case ';':
		return syntax.Semicolon, 1
	case ',':
		return syntax.Comma, 1
	case ':':
		return syntax.Colon, 1
	case '~':
		return syntax.Tilde, 1
	case '@':
		return syntax.At, 1
	case '#':
		return syntax.Hash, 1
	case '.':
		if at(1) == '.' && at(2) == '.' {
			return syntax.DotDotDot, 3
		}
		return syntax.Dot, 1
	case '?':
		switch {
		case at(1) == '?' && at(2) == '=':
			return syntax.QuestionQuestionEq, 3
		case at(1) == '?':
			return syntax.QuestionQuestion, 2
		case at(1) == '.' && !isDigit(at(2)):
			return syntax.QuestionDot, 2
		}
		return syntax.Question, 1
	case '=':
		switch {
		case at(1) == '=' && at(2) == '=':
			return syntax.Eq3, 3
		case at(1) == '=':
			return syntax.Eq2, 2
		case at(1) == '>':
			return syntax.FatArrow, 2
		}
		return syntax.Eq, 1
	case '!':
		switch {
		case at(1) == '=' && at(2) == '=':
			return syntax.Neq2, 3
		case at(1) == '=':
			return syntax.Neq, 2
		}
		return syntax.Bang, 1
	case '<':
		switch {
		case at(1) == '<' && at(2) == '=':
			return syntax.ShlEq, 3
		case at(1) == '<':
			return syntax.Shl, 2
		case at(1) == '=':
			return syntax.LtEq, 2
		}
		return syntax.Lt, 1
	case '>':
		switch {
		case at(1) == '>' && at(2) == '>' && at(3) == '=':
			return syntax.UShrEq, 4
		case at(1) == '>' && at(2) == '>':
			return syntax.UShr, 3
		case at(1) == '>' && at(2) == '=':
			return syntax.ShrEq, 3
		case at(1) == '>':
			return syntax.Shr, 2
		case at(1) == '=':
			return syntax.GtEq, 2
		}
		return syntax.Gt, 1
	case '+':
		switch at(1) {
		case '+':
			return syntax.Plus2, 2
		case '=':
			return syntax.PlusEq, 2
		}
		return syntax.Plus, 1
	case '-':
		switch at(1) {
		case '-':
			return syntax.Minus2, 2
		case '=':
			return syntax.MinusEq, 2
		}
		return syntax.Minus, 1
	case '*':
		switch {
		case at(1) == '*' && at(2) == '=':
			return syntax.Star2Eq, 3
		case at(1) == '*':
			return syntax.Star2, 2
		case at(1) == '=':
			return syntax.StarEq, 2
		}
		return syntax.Star, 1
	case '/':
		if at(1) == '=' {
			return syntax.SlashEq, 2
		}
		return syntax.Slash, 1
	case '%':
		if at(1) == '=' {
			return syntax.PercentEq, 2
		}
		return syntax.Percent, 1
	case '&':
		switch {
		case at(1) == '&' && at(2) == '=':
			return syntax.Amp2Eq, 3
		case at(1) == '&':
			return syntax.Amp2, 2
		case at(1) == '=':
			return syntax.AmpEq, 2
		}
		return syntax.Amp, 1
	case '|':
		switch {
		case at(1) == '|' && at(2) == '=':
			return syntax.Pipe2Eq, 3
		case at(1) == '|':
			return syntax.Pipe2, 2
		case at(1) == '=':
			return syntax.PipeEq, 2
		}
		return syntax.Pipe, 1
	case '^':
		if at(1) == '=' {
			return syntax.CaretEq, 2
		}
		return syntax.Caret, 1
	}
	return 0, 0
}

func lexRegex(src string, pos int) parser.Lexed {
	i := pos + 1
	inClass := false
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\\':
			i += 2
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			i++
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			return tok(syntax.RegexLit, i)
		case c == '\n' || c == '\r':
			return parser.Lexed{Kind: syntax.RegexLit, End: i, Message: "unterminated regex literal"}
		}
		i++
	}
	return parser.Lexed{Kind: syntax.RegexLit, End: len(src), Message: "unterminated regex literal"}
}

func lexTemplate(src string, pos int) parser.Lexed {
	if src[pos] == '`' {
		return tok(syntax.Backtick, pos+1)
	}
	if src[pos] == '$' && pos+1 < len(src) && src[pos+1] == '{' {
		return tok(syntax.DollarCurly, pos+2)
	}
	i := pos
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '`':
			return tok(syntax.TemplateChunk, i)
		case '$':
			if i+1 < len(src) && src[i+1] == '{' {
				return tok(syntax.TemplateChunk, i)
			}
		}
		i++
	}
	return parser.Lexed{Kind: syntax.TemplateChunk, End: len(src), Message: "unterminated template literal"}
}

func lexJsxChild(src string, pos int) parser.Lexed {
	switch src[pos] {
	case '{':
		return tok(syntax.LBrace, pos+1)
	case '<':
		if pos+1 < len(src) && src[pos+1] == '/' {
			return tok(syntax.LtSlash, pos+2)
		}
		return tok(syntax.Lt, pos+1)
	}
	i := pos
	for i < len(src) && src[i] != '{' && src[i] != '<' {
		i++
	}
	return tok(syntax.JsxTextLit, i)
}

func lexJsxTag(src string, pos int) (parser.Lexed, bool) {
	c := src[pos]
	switch {
	case c == '>':
		return tok(syntax.Gt, pos+1), true
	case c == '/' && pos+1 < len(src) && src[pos+1] == '>':
		return tok(syntax.SlashGt, pos+2), true
	case c == '"' || c == '\'':
		end := pos + 1
		for end < len(src) && src[end] != c {
			end++
		}
		if end == len(src) {
			return parser.Lexed{Kind: syntax.JsxStringLit, End: end, Message: "unterminated string literal"}, true
		}
		return tok(syntax.JsxStringLit, end+1), true
	case isIdentStart(c):
		end := pos + 1
		for end < len(src) && (isIdentPart(src[end]) || src[end] == '-') {
			end++
		}
		return tok(syntax.Ident, end), true
	}
	return parser.Lexed{}, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isIdentStartRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || r == '_' || r == '$'
}

func isIdentPartRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r) || r == '\u200C' || r == '\u200D'
}
