package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang"
)

func TestNoDebuggerRule(t *testing.T) {
	t.Parallel()

	src := "let a = 4;\ndebugger;\nconsole.log(a);\n"
	file, result := analyzeWith(t, ruleCase{src: src}, NewNoDebuggerRule())

	diags := lintDiagnostics(result)
	require.Len(t, diags, 1)
	assert.Equal(t, "lint/suspicious/noDebugger", diags[0].Category)
	assert.Equal(t, diagnostic.SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Tags, diagnostic.TagFixable)

	// The removal is unsafe: a safe-only pass leaves the source alone.
	assert.Equal(t, src, applyActions(t, file, result, analyzer.FixSafe))
	assert.Equal(t, "let a = 4;\nconsole.log(a);\n", applyActions(t, file, result, analyzer.FixUnsafe))
}

func TestNoDebuggerRule_FixedSlot(t *testing.T) {
	t.Parallel()

	file, result := analyzeWith(t, ruleCase{src: "if (a) debugger;\n"}, NewNoDebuggerRule())
	require.Len(t, lintDiagnostics(result), 1)
	assert.Equal(t, "if (a) ;\n", applyActions(t, file, result, analyzer.FixUnsafe))
}

func TestNoCompareNegZeroRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags int
		wantFix   string
	}{
		{name: "greater or equal", src: "(1 >= -0)\n", wantDiags: 1, wantFix: "(1 >= 0)\n"},
		{name: "strict equality on the left", src: "-0 === x;\n", wantDiags: 1, wantFix: "0 === x;\n"},
		{name: "positive zero", src: "x === 0;\n", wantDiags: 0, wantFix: "x === 0;\n"},
		{name: "negative one", src: "x < -1;\n", wantDiags: 0, wantFix: "x < -1;\n"},
		{name: "arithmetic", src: "x + -0;\n", wantDiags: 0, wantFix: "x + -0;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			file, result := analyzeWith(t, ruleCase{src: tt.src}, NewNoCompareNegZeroRule())
			assert.Len(t, lintDiagnostics(result), tt.wantDiags)
			assert.Equal(t, tt.wantFix, applyActions(t, file, result, analyzer.FixSafe))
		})
	}
}

func TestNoDoubleEqualsRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		options   map[string]any
		wantDiags int
		wantFix   string
	}{
		{name: "loose equality", src: "a == b;\n", wantDiags: 1, wantFix: "a === b;\n"},
		{name: "loose inequality", src: "a != b;\n", wantDiags: 1, wantFix: "a !== b;\n"},
		{name: "null allowed by default", src: "a == null;\n", wantDiags: 0, wantFix: "a == null;\n"},
		{
			name:      "null reported when not ignored",
			src:       "a == null;\n",
			options:   map[string]any{"ignoreNull": false},
			wantDiags: 1,
			wantFix:   "a === null;\n",
		},
		{name: "strict equality", src: "a === b;\n", wantDiags: 0, wantFix: "a === b;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			file, result := analyzeWith(t, ruleCase{src: tt.src, options: tt.options}, NewNoDoubleEqualsRule())
			assert.Len(t, lintDiagnostics(result), tt.wantDiags)
			assert.Equal(t, tt.wantFix, applyActions(t, file, result, analyzer.FixUnsafe))
		})
	}
}

func TestNoExplicitAnyRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags int
	}{
		{name: "annotation", src: "let a: any;\n", wantDiags: 1},
		{name: "generic argument", src: "let a: Array<any>;\n", wantDiags: 1},
		{name: "unknown", src: "let a: unknown;\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, result := analyzeWith(t, ruleCase{language: lang.TypeScript, src: tt.src}, NewNoExplicitAnyRule())
			assert.Len(t, lintDiagnostics(result), tt.wantDiags)
		})
	}
}

func TestNoConsoleRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		options   map[string]any
		wantDiags int
		wantFix   string
	}{
		{name: "log call", src: "foo();\nconsole.log(1);\n", wantDiags: 1, wantFix: "foo();\n"},
		{
			name:      "allowed method",
			src:       "console.error(1);\n",
			options:   map[string]any{"allow": []any{"error"}},
			wantDiags: 0,
			wantFix:   "console.error(1);\n",
		},
		{
			name:      "shadowed console",
			src:       "const console = { log() {} };\nconsole.log(1);\n",
			wantDiags: 0,
			wantFix:   "const console = { log() {} };\nconsole.log(1);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			file, result := analyzeWith(t, ruleCase{src: tt.src, options: tt.options}, NewNoConsoleRule())
			assert.Len(t, lintDiagnostics(result), tt.wantDiags)
			assert.Equal(t, tt.wantFix, applyActions(t, file, result, analyzer.FixUnsafe))
		})
	}
}

func TestNoUnreachableRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags int
	}{
		{name: "after return", src: "function f() {\n  return;\n  a();\n  b();\n}\n", wantDiags: 1},
		{name: "after throw", src: "function f() {\n  throw new Error();\n  a();\n}\n", wantDiags: 1},
		{name: "hoisted declaration", src: "function f() {\n  return g();\n  function g() {}\n}\n", wantDiags: 0},
		{name: "reachable", src: "function f(x) {\n  if (x) return;\n  a();\n}\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, result := analyzeWith(t, ruleCase{src: tt.src}, NewNoUnreachableRule())
			diags := lintDiagnostics(result)
			assert.Len(t, diags, tt.wantDiags)
			for _, d := range diags {
				assert.Contains(t, d.Tags, diagnostic.TagUnnecessary)
			}
		})
	}
}

func TestNoUnusedVariablesRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags int
	}{
		{name: "unused let", src: "let a = 1;\n", wantDiags: 1},
		{name: "used", src: "let a = 1;\nfoo(a);\n", wantDiags: 0},
		{name: "underscore prefix", src: "let _a = 1;\n", wantDiags: 0},
		{name: "exported", src: "export const a = 1;\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, result := analyzeWith(t, ruleCase{src: tt.src}, NewNoUnusedVariablesRule())
			assert.Len(t, lintDiagnostics(result), tt.wantDiags)
		})
	}
}

func TestNoUndeclaredVariablesRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags int
	}{
		{name: "undeclared call", src: "foo();\n", wantDiags: 1},
		{name: "builtin global", src: "console.log(1);\n", wantDiags: 0},
		{name: "declared", src: "const foo = 1;\nfoo;\n", wantDiags: 0},
		{name: "typeof guard", src: "typeof foo;\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, result := analyzeWith(t, ruleCase{src: tt.src}, NewNoUndeclaredVariablesRule())
			assert.Len(t, lintDiagnostics(result), tt.wantDiags)
		})
	}
}

func TestNoConstAssignRule(t *testing.T) {
	t.Parallel()

	_, result := analyzeWith(t, ruleCase{src: "const a = 1;\na = 2;\n"}, NewNoConstAssignRule())
	diags := lintDiagnostics(result)
	require.Len(t, diags, 1)
	assert.NotEmpty(t, diags[0].Labels)

	_, result = analyzeWith(t, ruleCase{src: "let a = 1;\na = 2;\n"}, NewNoConstAssignRule())
	assert.Empty(t, lintDiagnostics(result))
}

func TestNoVarRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantFix string
	}{
		{name: "never reassigned", src: "var a = 1;\n", wantFix: "const a = 1;\n"},
		{name: "reassigned", src: "var a = 1;\na = 2;\n", wantFix: "let a = 1;\na = 2;\n"},
		{name: "no initializer", src: "var a;\n", wantFix: "let a;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			file, result := analyzeWith(t, ruleCase{src: tt.src}, NewNoVarRule())
			require.Len(t, lintDiagnostics(result), 1)
			assert.Equal(t, tt.wantFix, applyActions(t, file, result, analyzer.FixUnsafe))
		})
	}
}

func TestUseConstRule(t *testing.T) {
	t.Parallel()

	file, result := analyzeWith(t, ruleCase{src: "let a = 4;\nconsole.log(a);\n"}, NewUseConstRule())
	require.Len(t, lintDiagnostics(result), 1)
	assert.Equal(t, "const a = 4;\nconsole.log(a);\n", applyActions(t, file, result, analyzer.FixSafe))

	_, result = analyzeWith(t, ruleCase{src: "let a = 4;\na++;\n"}, NewUseConstRule())
	assert.Empty(t, lintDiagnostics(result))
}

func TestUseAltTextRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags int
	}{
		{name: "img without alt", src: "<img src=\"a.png\" />;\n", wantDiags: 1},
		{name: "img with alt", src: "<img src=\"a.png\" alt=\"A\" />;\n", wantDiags: 0},
		{name: "img with undefined alt", src: "<img alt={undefined} />;\n", wantDiags: 1},
		{name: "spread attributes", src: "<img {...props} />;\n", wantDiags: 0},
		{name: "image input", src: "<input type=\"image\" />;\n", wantDiags: 1},
		{name: "text input", src: "<input type=\"text\" />;\n", wantDiags: 0},
		{name: "object with title", src: "<object title=\"x\" />;\n", wantDiags: 0},
		{name: "hidden", src: "<img aria-hidden />;\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, result := analyzeWith(t, ruleCase{language: lang.JSX, src: tt.src}, NewUseAltTextRule())
			assert.Len(t, lintDiagnostics(result), tt.wantDiags)
		})
	}
}

func TestNoImgElementRule(t *testing.T) {
	t.Parallel()

	_, result := analyzeWith(t, ruleCase{language: lang.JSX, src: "<img alt=\"a\" />;\n"}, NewNoImgElementRule())
	assert.Len(t, lintDiagnostics(result), 1)

	_, result = analyzeWith(t, ruleCase{language: lang.JSX, src: "<picture><img alt=\"a\" /></picture>;\n"}, NewNoImgElementRule())
	assert.Empty(t, lintDiagnostics(result))
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := analyzer.NewRegistry()
	RegisterAll(registry)

	for _, key := range []string{
		"suspicious/noDebugger", "suspicious/noCompareNegZero", "style/useConst",
		"nursery/noImgElement", "source/organizeImports",
	} {
		_, ok := registry.Get(key)
		assert.True(t, ok, key)
	}

	rule, ok := registry.Get("style/useConst")
	require.True(t, ok)
	assert.False(t, rule.Metadata().Recommended)

	rule, ok = registry.Get("suspicious/noDebugger")
	require.True(t, ok)
	assert.Equal(t, analyzer.FixUnsafe, rule.Metadata().Fix)
}
