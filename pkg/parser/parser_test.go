package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// wordLexer lexes identifiers, `+`, `;`, `(`, `)`, spaces, newlines and `#` comments.
type wordLexer struct{}

func (wordLexer) Lex(src string, pos int, _ parser.LexContext) parser.Lexed {
	c := src[pos]
	switch {
	case c == ' ':
		end := pos
		for end < len(src) && src[end] == ' ' {
			end++
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaWhitespace, End: end}
	case c == '\n':
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaNewline, End: pos + 1}
	case c == '#':
		end := pos
		for end < len(src) && src[end] != '\n' {
			end++
		}
		return parser.Lexed{Trivia: true, TriviaKind: syntax.TriviaSingleLineComment, End: end}
	case c == '+':
		return parser.Lexed{Kind: syntax.Plus, End: pos + 1}
	case c == ';':
		return parser.Lexed{Kind: syntax.Semicolon, End: pos + 1}
	case c == '(':
		return parser.Lexed{Kind: syntax.LParen, End: pos + 1}
	case c == ')':
		return parser.Lexed{Kind: syntax.RParen, End: pos + 1}
	case c >= 'a' && c <= 'z':
		end := pos
		for end < len(src) && src[end] >= 'a' && src[end] <= 'z' {
			end++
		}
		return parser.Lexed{Kind: syntax.Ident, End: end}
	default:
		return parser.Lexed{Kind: syntax.ErrorToken, End: pos + 1, Message: "unexpected character"}
	}
}

// parseSum parses `ident (+ ident)* ;?` statements separated by newlines.
func parseSum(src string) *parser.Parse {
	p := parser.New(src, wordLexer{})
	root := p.Start()
	list := p.Start()
	recovery := parser.NewRecovery(syntax.JsBogusStatement, syntax.KindSetOf(syntax.Semicolon)).WithLineBreak()
	for !p.At(syntax.EOF) {
		if !p.At(syntax.Ident) {
			p.ErrorHere("expected a statement")
			if _, err := recovery.Recover(p); err != nil {
				p.BumpAny()
			}
			p.Eat(syntax.Semicolon)
			continue
		}
		stmt := p.Start()
		lhs := identifier(p)
		for p.At(syntax.Plus) {
			bin := lhs.Precede(p)
			p.Bump(syntax.Plus)
			if p.At(syntax.Ident) {
				identifier(p)
			} else {
				p.ErrorExpected("an identifier")
				p.Missing()
			}
			lhs = bin.Complete(p, syntax.JsBinaryExpression)
		}
		if !p.Eat(syntax.Semicolon) {
			p.VirtualToken(syntax.Semicolon)
		}
		stmt.Complete(p, syntax.JsExpressionStatement)
	}
	list.Complete(p, syntax.JsModuleItemList)
	p.Bump(syntax.EOF)
	root.Complete(p, syntax.JsModule)
	return p.Finish(nil)
}

func identifier(p *parser.Parser) parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.Ident)
	return m.Complete(p, syntax.JsIdentifierExpression)
}

func TestRoundTripAndPrecede(t *testing.T) {
	t.Parallel()

	src := "# head\na + b # tail\n  c;\n"
	res := parseSum(src)
	require.Empty(t, res.Diagnostics)
	root := res.Root()
	assert.Equal(t, src, root.Text())

	var binaries int
	for n := range root.Descendants() {
		if n.Kind() == syntax.JsBinaryExpression {
			binaries++
		}
	}
	assert.Equal(t, 1, binaries)
}

func TestTriviaAttachment(t *testing.T) {
	t.Parallel()

	res := parseSum("a # tail\n# lead\nb\n")
	root := res.Root()
	var toks []*syntax.Token
	for tok := range root.Tokens() {
		toks = append(toks, tok)
	}
	// a, virtual ;, b, virtual ;, EOF
	require.Len(t, toks, 5)
	assert.Equal(t, "a # tail", toks[0].FullText())
	assert.Empty(t, toks[1].FullText())
	assert.Equal(t, "\n# lead\nb", toks[2].FullText())
	assert.True(t, toks[2].HasLeadingComments())
	assert.Equal(t, "\n", toks[4].FullText())
}

func TestRecoveryProducesBogusAndKeepsBytes(t *testing.T) {
	t.Parallel()

	src := "a +\n) ) ;\nb;"
	res := parseSum(src)
	assert.True(t, res.HasErrors())
	root := res.Root()
	assert.Equal(t, src, root.Text())

	var bogus *syntax.Node
	for n := range root.Descendants() {
		if n.Kind().IsBogus() {
			bogus = n
		}
	}
	require.NotNil(t, bogus)
	assert.Equal(t, ") )", bogus.TrimmedText())
}

func TestLexerMessagesBecomeDiagnostics(t *testing.T) {
	t.Parallel()

	res := parseSum("a; ?")
	messages := make([]string, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		assert.Equal(t, parser.CategoryParse, d.Category)
		messages = append(messages, d.Message)
	}
	assert.Contains(t, messages, "unexpected character")
	assert.Equal(t, "a; ?", res.Root().Text())
}

func TestCheckpointRewind(t *testing.T) {
	t.Parallel()

	p := parser.New("a b c", wordLexer{})
	cp := p.Checkpoint()
	p.BumpAny()
	p.ErrorHere("speculative")
	assert.True(t, p.HasErrorsSince(cp))
	assert.Equal(t, "b", p.CurText())

	p.Rewind(cp)
	assert.Equal(t, "a", p.CurText())
	assert.Empty(t, p.Diagnostics())
	assert.Equal(t, syntax.Ident, p.Nth(2))
	assert.Equal(t, "c", p.NthText(2))
	assert.Equal(t, syntax.EOF, p.Nth(5))

	ok := p.Speculate(func() bool {
		p.BumpAny()
		return false
	})
	assert.False(t, ok)
	assert.Equal(t, "a", p.CurText())
}

func TestAbandonAndUndoCompletion(t *testing.T) {
	t.Parallel()

	p := parser.New("a", wordLexer{})
	root := p.Start()
	dropped := p.Start()
	dropped.Abandon(p)
	m := p.Start()
	p.Bump(syntax.Ident)
	cm := m.Complete(p, syntax.JsIdentifierExpression)
	cm.UndoCompletion(p).Complete(p, syntax.JsReferenceIdentifier)
	p.Bump(syntax.EOF)
	root.Complete(p, syntax.JsModule)

	tree := p.Finish(nil).Root()
	child := tree.FindNode(syntax.JsReferenceIdentifier)
	require.NotNil(t, child)
	assert.Nil(t, tree.FindNode(syntax.JsIdentifierExpression))
}

func TestRewindUndoesPrecedeOfOlderNode(t *testing.T) {
	t.Parallel()

	p := parser.New("a b", wordLexer{})
	root := p.Start()
	lhs := identifier(p)

	ok := p.Speculate(func() bool {
		m := lhs.Precede(p)
		p.BumpAny()
		m.Complete(p, syntax.JsCallExpression)
		return false
	})
	require.False(t, ok)

	p.BumpAny()
	p.Bump(syntax.EOF)
	root.Complete(p, syntax.JsModule)

	var tree *syntax.Node
	require.NotPanics(t, func() { tree = p.Finish(nil).Root() })
	assert.Equal(t, "a b", tree.Text())
	assert.Nil(t, tree.FindNode(syntax.JsCallExpression))
	assert.NotNil(t, tree.FindNode(syntax.JsIdentifierExpression))
}

func TestRewindRestoresRetaggedAndAbandonedMarkers(t *testing.T) {
	t.Parallel()

	p := parser.New("a b", wordLexer{})
	root := p.Start()
	outer := p.Start()
	cm := identifier(p)

	ok := p.Speculate(func() bool {
		cm.ChangeKind(p, syntax.JsReferenceIdentifier)
		outer.Abandon(p)
		return false
	})
	require.False(t, ok)

	outer.Complete(p, syntax.JsExpressionStatement)
	p.BumpAny()
	p.Bump(syntax.EOF)
	root.Complete(p, syntax.JsModule)

	tree := p.Finish(nil).Root()
	assert.Equal(t, "a b", tree.Text())
	assert.NotNil(t, tree.FindNode(syntax.JsExpressionStatement))
	assert.NotNil(t, tree.FindNode(syntax.JsIdentifierExpression))
	assert.Nil(t, tree.FindNode(syntax.JsReferenceIdentifier))
}
