package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/semantic"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func build(t *testing.T, src string, opts js.Options) *semantic.Model {
	t.Helper()
	parse := js.Parse(src, opts)
	require.False(t, parse.HasErrors(), "unexpected syntax errors: %v", parse.Diagnostics)
	return semantic.Build(parse.Root())
}

func bindingNamed(t *testing.T, m *semantic.Model, name string) *semantic.Binding {
	t.Helper()
	for _, b := range m.Bindings() {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no binding %q", name)
	return nil
}

func refsNamed(m *semantic.Model, name string) []*semantic.Reference {
	var out []*semantic.Reference
	for _, r := range m.References() {
		if r.Token.Text() == name {
			out = append(out, r)
		}
	}
	return out
}

func unresolvedNames(m *semantic.Model) []string {
	var out []string
	for _, r := range m.Unresolved() {
		out = append(out, r.Token.Text())
	}
	return out
}

func TestBuild_Hoisting(t *testing.T) {
	t.Parallel()

	m := build(t, "f(x);\nfunction f(a) { return a; }\nvar x = 1;\n", js.Options{})

	assert.Empty(t, m.Unresolved())
	f := bindingNamed(t, m, "f")
	assert.Equal(t, semantic.BindingFunction, f.Kind)
	assert.Same(t, m.GlobalScope(), f.Scope)
	require.Len(t, f.References, 1)

	x := bindingNamed(t, m, "x")
	assert.Equal(t, semantic.BindingVar, x.Kind)
	assert.Len(t, x.References, 1)

	a := bindingNamed(t, m, "a")
	assert.Equal(t, semantic.BindingParameter, a.Kind)
	assert.Equal(t, semantic.ScopeFunction, a.Scope.Kind)
}

func TestBuild_VarEscapesBlocks(t *testing.T) {
	t.Parallel()

	m := build(t, "function g(c) {\n  if (c) { var v = 1; }\n  return v;\n}\n", js.Options{})

	v := bindingNamed(t, m, "v")
	assert.Equal(t, semantic.ScopeFunction, v.Scope.Kind)
	assert.Len(t, v.References, 1)
	assert.Empty(t, m.Unresolved())
}

func TestBuild_BlockScoping(t *testing.T) {
	t.Parallel()

	m := build(t, "let a = 1;\n{\n  let a = 2;\n  a;\n}\na;\n", js.Options{})

	refs := refsNamed(m, "a")
	require.Len(t, refs, 2)
	require.NotNil(t, refs[0].Binding)
	require.NotNil(t, refs[1].Binding)
	assert.NotSame(t, refs[0].Binding, refs[1].Binding)
	assert.Equal(t, semantic.ScopeBlock, refs[0].Binding.Scope.Kind)
	assert.Same(t, m.GlobalScope(), refs[1].Binding.Scope)
}

func TestBuild_Unresolved(t *testing.T) {
	t.Parallel()

	m := build(t, "const z = 1;\nconsole.log(y, z);\n", js.Options{})

	assert.Equal(t, []string{"console", "y"}, unresolvedNames(m))
}

func TestBuild_FunctionExpressionName(t *testing.T) {
	t.Parallel()

	m := build(t, "const g = function h() { return h; };\nh;\n", js.Options{})

	refs := refsNamed(m, "h")
	require.Len(t, refs, 2)
	assert.True(t, refs[0].Resolved())
	assert.False(t, refs[1].Resolved())
}

func TestBuild_Exports(t *testing.T) {
	t.Parallel()

	src := "export const a = 1;\nconst b = 2;\nconst c = 3;\nexport { b };\nexport function d() {}\nconst e = 4;\nexport default e;\n"
	m := build(t, src, js.Options{})

	for name, want := range map[string]bool{"a": true, "b": true, "c": false, "d": true, "e": true} {
		assert.Equal(t, want, m.IsExported(bindingNamed(t, m, name)), name)
	}
}

func TestBuild_ReadsAndWrites(t *testing.T) {
	t.Parallel()

	m := build(t, "let n = 0;\nn = 1;\nn += 2;\nn++;\nuse(n);\n", js.Options{})

	refs := refsNamed(m, "n")
	require.Len(t, refs, 4)
	assert.True(t, refs[0].IsWrite)
	assert.False(t, refs[0].IsRead)
	assert.True(t, refs[1].IsWrite && refs[1].IsRead)
	assert.True(t, refs[2].IsWrite && refs[2].IsRead)
	assert.True(t, refs[3].IsRead)
	assert.False(t, refs[3].IsWrite)
	assert.Len(t, bindingNamed(t, m, "n").Writes(), 3)
}

func TestBuild_DestructuringAssignment(t *testing.T) {
	t.Parallel()

	m := build(t, "let a, b;\n[a, b] = [b, a];\n", js.Options{})

	refs := refsNamed(m, "a")
	require.Len(t, refs, 2)
	assert.True(t, refs[0].IsWrite)
	assert.False(t, refs[0].IsRead)
	assert.True(t, refs[1].IsRead)
	assert.False(t, refs[1].IsWrite)
}

func TestBuild_BindingKinds(t *testing.T) {
	t.Parallel()

	src := "import def, { named as alias } from \"m\";\n" +
		"import * as ns from \"n\";\n" +
		"function f(p, { q, r: [s] }, ...rest) {}\n" +
		"class K {}\n" +
		"try {} catch (err) { err; }\n" +
		"for (const item of list) {}\n"
	m := build(t, src, js.Options{})

	tests := map[string]semantic.BindingKind{
		"def":   semantic.BindingImport,
		"alias": semantic.BindingImport,
		"ns":    semantic.BindingImport,
		"p":     semantic.BindingParameter,
		"q":     semantic.BindingParameter,
		"s":     semantic.BindingParameter,
		"rest":  semantic.BindingParameter,
		"K":     semantic.BindingClass,
		"err":   semantic.BindingCatchParameter,
		"item":  semantic.BindingConst,
	}
	for name, want := range tests {
		assert.Equal(t, want, bindingNamed(t, m, name).Kind, name)
	}
	assert.Equal(t, semantic.ScopeCatch, bindingNamed(t, m, "err").Scope.Kind)
	assert.Equal(t, semantic.ScopeFor, bindingNamed(t, m, "item").Scope.Kind)
}

func TestBuild_Captured(t *testing.T) {
	t.Parallel()

	m := build(t, "let c = 0;\nlet local = 1;\nfunction inc() { c++; }\nlocal;\n", js.Options{})

	assert.True(t, bindingNamed(t, m, "c").Captured)
	assert.False(t, bindingNamed(t, m, "local").Captured)
}

func TestBuild_Redeclaration(t *testing.T) {
	t.Parallel()

	m := build(t, "var x = 1;\nvar x = 2;\n", js.Options{})

	x := bindingNamed(t, m, "x")
	assert.Len(t, x.Redeclarations, 1)
	assert.Len(t, m.Bindings(), 1)
}

func TestBuild_TypeReferences(t *testing.T) {
	t.Parallel()

	m := build(t, "type T = string;\ninterface I { a: T }\nlet v: I;\n", js.Options{TypeScript: true})

	assert.Empty(t, m.Unresolved())
	refs := refsNamed(m, "I")
	require.Len(t, refs, 1)
	assert.True(t, refs[0].IsType)
	assert.Equal(t, semantic.BindingInterface, refs[0].Binding.Kind)
}

func TestBuild_JSXComponents(t *testing.T) {
	t.Parallel()

	m := build(t, "import Foo from \"foo\";\nconst el = <div><Foo /></div>;\n", js.Options{JSX: true})

	assert.Empty(t, m.Unresolved())
	assert.Len(t, bindingNamed(t, m, "Foo").References, 1)
}

func TestModel_ResolveAndScopeAt(t *testing.T) {
	t.Parallel()

	m := build(t, "const k = 1;\nfunction f() { return k; }\n", js.Options{})

	ref := refsNamed(m, "k")[0]
	b, ok := m.Resolve(ref.Token)
	require.True(t, ok)
	assert.Equal(t, "k", b.Name)

	decl, ok := m.Resolve(b.Token())
	require.True(t, ok)
	assert.Same(t, b, decl)

	var ret *syntax.Node
	for n := range m.Root().Descendants() {
		if n.Kind() == syntax.JsReturnStatement {
			ret = n
		}
	}
	require.NotNil(t, ret)
	assert.Equal(t, semantic.ScopeFunction, m.ScopeAt(ret).Kind)

	var names []string
	for b := range m.BindingsInScope(m.GlobalScope()) {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"k", "f"}, names)

	count := 0
	for range m.AllReferences(b) {
		count++
	}
	assert.Equal(t, 1, count)
}
