package syntax_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// buildLet builds `let a = 1;` with a leading comment and trailing newline.
func buildLet(cache *syntax.NodeCache) *syntax.GreenNode {
	b := syntax.NewBuilder(cache)
	b.StartNode(syntax.JsModule)
	b.StartNode(syntax.JsModuleItemList)
	b.StartNode(syntax.JsVariableStatement)
	b.StartNode(syntax.JsVariableDeclaration)
	b.Token(syntax.LetKw, "// c\nlet ", []syntax.TriviaPiece{
		{Kind: syntax.TriviaSingleLineComment, Len: 4},
		{Kind: syntax.TriviaNewline, Len: 1},
	}, []syntax.TriviaPiece{{Kind: syntax.TriviaWhitespace, Len: 1}})
	b.StartNode(syntax.JsVariableDeclaratorList)
	b.StartNode(syntax.JsVariableDeclarator)
	b.StartNode(syntax.JsIdentifierBinding)
	b.Token(syntax.Ident, "a ", nil, []syntax.TriviaPiece{{Kind: syntax.TriviaWhitespace, Len: 1}})
	b.FinishNode()
	b.Empty()
	b.StartNode(syntax.JsInitializerClause)
	b.Token(syntax.Eq, "= ", nil, []syntax.TriviaPiece{{Kind: syntax.TriviaWhitespace, Len: 1}})
	b.StartNode(syntax.JsNumberLiteralExpression)
	b.Token(syntax.NumberLit, "1", nil, nil)
	b.FinishNode()
	b.FinishNode()
	b.FinishNode()
	b.FinishNode()
	b.FinishNode()
	b.Token(syntax.Semicolon, ";", nil, nil)
	b.FinishNode()
	b.FinishNode()
	b.Token(syntax.EOF, "\n", []syntax.TriviaPiece{{Kind: syntax.TriviaNewline, Len: 1}}, nil)
	b.FinishNode()
	return b.Finish()
}

func TestGreenTreeIsLossless(t *testing.T) {
	t.Parallel()

	green := buildLet(nil)
	assert.Equal(t, "// c\nlet a = 1;\n", green.Text())
	assert.Equal(t, len("// c\nlet a = 1;\n"), green.TextLen())
}

func TestTokenRangesAndTrivia(t *testing.T) {
	t.Parallel()

	root := syntax.NewRoot(buildLet(nil))
	var toks []*syntax.Token
	for tok := range root.Tokens() {
		toks = append(toks, tok)
	}
	require.Len(t, toks, 6)

	let := toks[0]
	assert.Equal(t, "let", let.Text())
	assert.Equal(t, text.NewRange(5, 8), let.TextRange())
	assert.True(t, let.HasLeadingComments())
	assert.True(t, let.HasLeadingNewline())

	leading := let.LeadingTrivia()
	require.Len(t, leading, 2)
	assert.Equal(t, "// c", leading[0].Text)
	assert.Equal(t, 0, leading[0].Offset)

	ident := toks[1]
	assert.Equal(t, "a", ident.Text())
	assert.Equal(t, syntax.Eq, ident.NextToken().Kind())
	assert.Equal(t, syntax.LetKw, ident.PrevToken().Kind())
	assert.Nil(t, toks[5].NextToken())

	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.FullText())
	}
	assert.Equal(t, root.Text(), sb.String())
}

func TestEmptySlotsArePreserved(t *testing.T) {
	t.Parallel()

	root := syntax.NewRoot(buildLet(nil))
	decl := findFirst(root, syntax.JsVariableDeclarator)
	require.NotNil(t, decl)
	assert.Equal(t, 3, decl.SlotCount())
	assert.Nil(t, decl.Slot(1))
	assert.NotNil(t, decl.FindNode(syntax.JsInitializerClause))
	assert.Equal(t, "a = 1", decl.TrimmedText())
}

func TestTokenAtOffsetAndCovering(t *testing.T) {
	t.Parallel()

	root := syntax.NewRoot(buildLet(nil))
	tok := root.TokenAtOffset(9)
	require.NotNil(t, tok)
	assert.Equal(t, syntax.Ident, tok.Kind())

	node := root.CoveringNode(text.NewRange(13, 14))
	assert.Equal(t, syntax.JsNumberLiteralExpression, node.Kind())
	assert.Equal(t, syntax.EOF, root.TokenAtOffset(100).Kind())
}

func TestCacheInternsIdenticalSubtrees(t *testing.T) {
	t.Parallel()

	cache := syntax.NewNodeCache()
	first := buildLet(cache)
	second := buildLet(cache)

	// Small subtrees are shared; the identifier binding has one child.
	a := syntax.NewRoot(first)
	b := syntax.NewRoot(second)
	assert.Same(t, findFirst(a, syntax.JsIdentifierBinding).Green(), findFirst(b, syntax.JsIdentifierBinding).Green())
}

func TestWalkSkipAndStop(t *testing.T) {
	t.Parallel()

	root := syntax.NewRoot(buildLet(nil))
	var entered []syntax.Kind
	syntax.Walk(root, func(ev syntax.WalkEvent) syntax.WalkAction {
		if ev.Leave {
			return syntax.WalkContinue
		}
		entered = append(entered, ev.Node.Kind())
		if ev.Node.Kind() == syntax.JsVariableDeclaratorList {
			return syntax.WalkSkip
		}
		return syntax.WalkContinue
	})
	assert.Equal(t, []syntax.Kind{
		syntax.JsModule, syntax.JsModuleItemList, syntax.JsVariableStatement,
		syntax.JsVariableDeclaration, syntax.JsVariableDeclaratorList,
	}, entered)
}

func TestReplaceElement(t *testing.T) {
	t.Parallel()

	root := syntax.NewRoot(buildLet(nil))
	num := findFirst(root, syntax.JsNumberLiteralExpression)
	replacement := syntax.NewGreenNode(syntax.JsNumberLiteralExpression, []syntax.GreenElement{
		syntax.NewGreenToken(syntax.NumberLit, "42", nil, nil),
	})
	updated := syntax.ReplaceElement(num, replacement)
	assert.Equal(t, "// c\nlet a = 42;\n", updated.Text())
	assert.Equal(t, "// c\nlet a = 1;\n", root.Text())
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.LetKw.IsKeyword())
	assert.True(t, syntax.LetKw.IsToken())
	assert.False(t, syntax.JsModule.IsToken())
	assert.True(t, syntax.JsBogusStatement.IsBogus())
	assert.True(t, syntax.JsStatementList.IsList())
	assert.Equal(t, "=>", syntax.FatArrow.Text())
	assert.Equal(t, "JsModule", syntax.JsModule.String())

	k, ok := syntax.KeywordKind("debugger")
	assert.True(t, ok)
	assert.Equal(t, syntax.DebuggerKw, k)

	set := syntax.KindSetOf(syntax.Ident, syntax.TwBogusCandidate)
	assert.True(t, set.Has(syntax.TwBogusCandidate))
	assert.False(t, set.Has(syntax.JsModule))
	assert.Equal(t, 2, set.Len())
}

func findFirst(root *syntax.Node, kind syntax.Kind) *syntax.Node {
	for n := range root.Descendants() {
		if n.Kind() == kind {
			return n
		}
	}
	return nil
}
