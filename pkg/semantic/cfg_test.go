package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/semantic"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func firstFunction(t *testing.T, root *syntax.Node) *syntax.Node {
	t.Helper()
	for n := range root.Descendants() {
		if js.AnyFunction.Has(n.Kind()) {
			return n
		}
	}
	t.Fatal("no function in source")
	return nil
}

func unreachableText(g *semantic.Graph) []string {
	var out []string
	for _, n := range g.UnreachableStatements() {
		out = append(out, n.TrimmedText())
	}
	return out
}

func TestControlFlow_Unreachable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"straight line", "a(); b();", nil},
		{"after return", "return 1; foo();", []string{"foo();"}},
		{"after throw", "throw new Error(); foo();", []string{"foo();"}},
		{"both branches return", "if (c) { return 1; } else { return 2; } after();", []string{"after();"}},
		{"one branch returns", "if (c) { return 1; } after();", nil},
		{"infinite loop", "while (true) { tick(); } after();", []string{"after();"}},
		{"infinite loop with break", "while (true) { break; } after();", nil},
		{"for without test", "for (;;) {} after();", []string{"after();"}},
		{"classic for", "for (let i = 0; i < n; i++) { continue; skipped(); } after();", []string{"skipped();"}},
		{"labeled break", "outer: for (;;) { for (;;) { break outer; } } after();", nil},
		{"nested unreachable reported once", "return; if (a) { b(); }", []string{"if (a) { b(); }"}},
		{"switch all return", "switch (k) { case 1: return 1; default: return 2; } after();", []string{"after();"}},
		{"switch without default", "switch (k) { case 1: return 1; } after();", nil},
		{"do while", "do { return; } while (c); after();", []string{"after();"}},
		{"try catch", "try { a(); } catch (e) { b(); } c();", nil},
		{"try returns through finally", "try { return 1; } finally { cleanup(); } after();", []string{"after();"}},
		{"catch rescues throw", "try { throw e; } catch (err) { handle(); } after();", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parse := js.Parse("function f() { "+tt.body+" }\n", js.Options{})
			require.False(t, parse.HasErrors(), "%v", parse.Diagnostics)
			g := semantic.BuildGraph(firstFunction(t, parse.Root()))

			assert.Equal(t, tt.want, unreachableText(g))
		})
	}
}

func TestControlFlow_Edges(t *testing.T) {
	t.Parallel()

	parse := js.Parse("function f() { if (c) { a(); } return; }\n", js.Options{})
	require.False(t, parse.HasErrors())
	g := semantic.BuildGraph(firstFunction(t, parse.Root()))

	kinds := map[semantic.EdgeKind]int{}
	for _, blk := range g.Blocks {
		for _, e := range blk.Edges {
			kinds[e.Kind]++
		}
	}
	assert.Equal(t, 1, kinds[semantic.EdgeTrue])
	assert.Equal(t, 1, kinds[semantic.EdgeFalse])
	assert.Equal(t, 1, kinds[semantic.EdgeReturn])
	assert.NotEmpty(t, g.Predecessors(g.Exit))
	assert.True(t, g.Reachable()[g.Exit])
}

func TestControlFlow_LabeledContinue(t *testing.T) {
	t.Parallel()

	parse := js.Parse("function f() { outer: while (a) { while (b) { continue outer; } } }\n", js.Options{})
	require.False(t, parse.HasErrors())
	g := semantic.BuildGraph(firstFunction(t, parse.Root()))

	var found bool
	for _, blk := range g.Blocks {
		for _, e := range blk.Edges {
			if e.Kind == semantic.EdgeContinue {
				assert.Equal(t, "outer", e.Label)
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestModel_ControlFlowOfCaches(t *testing.T) {
	t.Parallel()

	parse := js.Parse("const f = () => { return 1; };\nf();\n", js.Options{})
	require.False(t, parse.HasErrors())
	m := semantic.Build(parse.Root())
	fn := firstFunction(t, parse.Root())

	g := m.ControlFlowOf(fn)
	assert.Same(t, g, m.ControlFlowOf(fn))
	assert.Empty(t, g.UnreachableStatements())

	module := m.ControlFlowOf(parse.Root())
	assert.Empty(t, module.UnreachableStatements())
}
