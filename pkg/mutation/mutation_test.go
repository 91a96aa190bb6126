package mutation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/fix"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/mutation"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func parse(t *testing.T, src string) *syntax.Node {
	t.Helper()
	p := js.Parse(src, js.Options{})
	require.False(t, p.HasErrors(), "%v", p.Diagnostics)
	return p.Root()
}

func findNode(t *testing.T, root *syntax.Node, kind syntax.Kind) *syntax.Node {
	t.Helper()
	for n := range root.Descendants() {
		if n.Kind() == kind {
			return n
		}
	}
	t.Fatalf("no %s node", kind)
	return nil
}

func findToken(t *testing.T, root *syntax.Node, text string) *syntax.Token {
	t.Helper()
	for tok := range root.Tokens() {
		if tok.Text() == text {
			return tok
		}
	}
	t.Fatalf("no token %q", text)
	return nil
}

func TestBatch_RemoveListElement(t *testing.T) {
	t.Parallel()

	root := parse(t, "let a = 4;\ndebugger;\nconsole.log(a);\n")
	batch := mutation.NewBatch(root)
	batch.Remove(findNode(t, root, syntax.JsDebuggerStatement))

	green, err := batch.Commit()
	require.NoError(t, err)
	assert.Equal(t, "let a = 4;\nconsole.log(a);\n", green.Text())
	assert.Equal(t, "let a = 4;\ndebugger;\nconsole.log(a);\n", root.Text(), "original tree is unchanged")
}

func TestBatch_ReplaceTokenKeepsTrivia(t *testing.T) {
	t.Parallel()

	root := parse(t, "let a = /* n */ 4;\n")
	tok := findToken(t, root, "4")
	batch := mutation.NewBatch(root)
	batch.ReplaceToken(tok, mutation.Retext(tok.Green(), "5"))

	green, err := batch.Commit()
	require.NoError(t, err)
	assert.Equal(t, "let a = /* n */ 5;\n", green.Text())
}

func TestBatch_SharesUnchangedSiblings(t *testing.T) {
	t.Parallel()

	root := parse(t, "first();\nsecond();\n")
	list := findNode(t, root, syntax.JsModuleItemList)
	stmts := list.ChildNodeList()
	require.Len(t, stmts, 2)

	batch := mutation.NewBatch(root)
	batch.ReplaceToken(findToken(t, root, "second"), mutation.Retext(findToken(t, root, "second").Green(), "other"))

	green, err := batch.Commit()
	require.NoError(t, err)
	newList := syntax.NewRoot(green).FindNode(syntax.JsModuleItemList)
	require.NotNil(t, newList)
	assert.Same(t, stmts[0].Green(), newList.ChildNodeList()[0].Green())
	assert.Equal(t, "first();\nother();\n", green.Text())
}

func TestBatch_InsertBeforeAndAfter(t *testing.T) {
	t.Parallel()

	root := parse(t, "b();\n")
	stmt := findNode(t, root, syntax.JsExpressionStatement)

	before := js.Parse("a();\n", js.Options{}).Root().FindNode(syntax.JsModuleItemList).ChildNodeList()[0]
	after := js.Parse("\nc();\n", js.Options{}).Root().FindNode(syntax.JsModuleItemList).ChildNodeList()[0]

	batch := mutation.NewBatch(root)
	batch.InsertBefore(stmt, before.Green())
	batch.InsertAfter(stmt, after.Green())

	green, err := batch.Commit()
	require.NoError(t, err)
	assert.Equal(t, "a();b();\nc();\n", green.Text())
}

func TestBatch_InsertIntoFixedSlot(t *testing.T) {
	t.Parallel()

	root := parse(t, "f(x);\n")
	callee := findNode(t, root, syntax.JsIdentifierExpression)

	batch := mutation.NewBatch(root)
	batch.InsertBefore(callee, mutation.Token(syntax.Ident, "g"))

	_, err := batch.Commit()
	require.ErrorIs(t, err, mutation.ErrNotAList)
}

func TestBatch_Conflict(t *testing.T) {
	t.Parallel()

	root := parse(t, "let a = 4;\n")
	stmt := findNode(t, root, syntax.JsVariableStatement)
	tok := findToken(t, root, "4")

	batch := mutation.NewBatch(root)
	batch.ReplaceToken(tok, mutation.Retext(tok.Green(), "5"))
	batch.Remove(stmt)

	green, err := batch.Commit()
	assert.Nil(t, green)

	var conflict *mutation.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, mutation.OpRemove, conflict.Conflicts[0].First.Op)
	assert.Equal(t, mutation.OpReplace, conflict.Conflicts[0].Second.Op)
	assert.Contains(t, err.Error(), "conflicting edits")
}

func TestBatch_AdjacentEditsDoNotConflict(t *testing.T) {
	t.Parallel()

	root := parse(t, "a;b;\n")
	batch := mutation.NewBatch(root)
	batch.ReplaceToken(findToken(t, root, "a"), mutation.Token(syntax.Ident, "x"))
	batch.ReplaceToken(findToken(t, root, "b"), mutation.Token(syntax.Ident, "y"))

	assert.Empty(t, batch.Conflicts())
	green, err := batch.Commit()
	require.NoError(t, err)
	assert.Equal(t, "x;y;\n", green.Text())
}

func TestBatch_EmptyCommitReturnsRoot(t *testing.T) {
	t.Parallel()

	root := parse(t, "x;\n")
	green, err := mutation.NewBatch(root).Commit()
	require.NoError(t, err)
	assert.Same(t, root.Green(), green)
}

func TestBatch_ForeignElement(t *testing.T) {
	t.Parallel()

	root := parse(t, "x;\n")
	other := parse(t, "y;\n")

	batch := mutation.NewBatch(root)
	batch.Remove(findNode(t, other, syntax.JsExpressionStatement))

	_, err := batch.Commit()
	require.ErrorIs(t, err, mutation.ErrForeignElement)
}

func TestBatch_ToTextEdits(t *testing.T) {
	t.Parallel()

	src := "let a = 4;\ndebugger;\n"
	root := parse(t, src)
	batch := mutation.NewBatch(root)
	batch.ReplaceToken(findToken(t, root, "4"), mutation.Token(syntax.NumberLit, "0"))
	batch.Remove(findNode(t, root, syntax.JsDebuggerStatement))

	edits := batch.ToTextEdits()
	require.Len(t, edits, 2)
	out := fix.ApplyEdits([]byte(src), edits)

	green, err := batch.Commit()
	require.NoError(t, err)
	assert.Equal(t, green.Text(), string(out))
}

func TestTriviaHelpers(t *testing.T) {
	t.Parallel()

	root := parse(t, "// lead\nfoo /* t */;\n")
	tok := findToken(t, root, "foo").Green()

	stripped := mutation.StripTrivia(tok)
	assert.Equal(t, "foo", stripped.FullText())

	bar := mutation.Token(syntax.Ident, "bar")
	assert.Equal(t, "// lead\nbar", mutation.WithLeadingTrivia(bar, tok).FullText())
	assert.Equal(t, "bar /* t */", mutation.WithTrailingTrivia(bar, tok).FullText())

	stmt := findNode(t, root, syntax.JsExpressionStatement).Green()
	assert.Equal(t, "foo", mutation.FirstToken(stmt).Text())
	assert.Equal(t, ";", mutation.LastToken(stmt).Text())

	mapped := mutation.MapFirstToken(stmt, mutation.StripTrivia)
	assert.Equal(t, "foo;", mapped.Text())
}
