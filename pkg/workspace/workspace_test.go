package workspace_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	_ "github.com/yaklabco/gobiome/pkg/analyzer/rules"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang"
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/workspace"
)

func categories(res *workspace.FileResult) []string {
	out := make([]string, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out = append(out, d.Category)
	}
	return out
}

func process(t *testing.T, path, src string, cfg *config.Config, opts workspace.Options) *workspace.FileResult {
	t.Helper()
	res, err := workspace.Process(context.Background(), path, src, cfg, opts)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestProcess_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		opts       workspace.Options
		want       string
		wantDiags  []string
		wantPasses int
	}{
		{
			name:      "formatted file is left alone",
			src:       "let a = 1;\nconsole.log(a);\n",
			opts:      workspace.Options{Mode: workspace.ModeCheck, Write: true},
			want:      "let a = 1;\nconsole.log(a);\n",
			wantDiags: []string{},
		},
		{
			name:       "safe fix then format",
			src:        "(1 >= -0)\n",
			opts:       workspace.Options{Mode: workspace.ModeCheck, Write: true},
			want:       "1 >= 0;\n",
			wantDiags:  []string{},
			wantPasses: 1,
		},
		{
			name: "report only",
			src:  "(1 >= -0)\n",
			opts: workspace.Options{Mode: workspace.ModeCheck},
			want: "(1 >= -0)\n",
			wantDiags: []string{
				workspace.CategoryFormat,
				"lint/suspicious/noCompareNegZero",
			},
		},
		{
			name:      "unsafe fix is not applied by write",
			src:       "let a = 4;\ndebugger;\nconsole.log(a);\n",
			opts:      workspace.Options{Mode: workspace.ModeCheck, Write: true},
			want:      "let a = 4;\ndebugger;\nconsole.log(a);\n",
			wantDiags: []string{"lint/suspicious/noDebugger"},
		},
		{
			name:       "unsafe fix",
			src:        "let a = 4;\ndebugger;\nconsole.log(a);\n",
			opts:       workspace.Options{Mode: workspace.ModeCheck, Unsafe: true},
			want:       "let a = 4;\nconsole.log(a);\n",
			wantDiags:  []string{},
			wantPasses: 1,
		},
		{
			name:       "organize imports",
			src:        "import * as s from \"../s\";\nimport { b, a } from \"x\";\n",
			opts:       workspace.Options{Mode: workspace.ModeCheck, Write: true},
			want:       "import { a, b } from \"x\";\nimport * as s from \"../s\";\n",
			wantDiags:  []string{},
			wantPasses: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := process(t, "a.js", tt.src, nil, tt.opts)
			assert.Equal(t, lang.JavaScript, res.Language)
			assert.Equal(t, tt.want, res.Output)
			assert.Equal(t, tt.want != tt.src, res.Changed)
			assert.ElementsMatch(t, tt.wantDiags, categories(res))
			assert.Equal(t, tt.wantPasses, res.FixPasses)
			assert.Equal(t, tt.src, res.Original)
		})
	}
}

func TestProcess_FormatDiagnosticCarriesDiff(t *testing.T) {
	t.Parallel()

	res := process(t, "a.js", "let a=1\n", nil, workspace.Options{Mode: workspace.ModeFormat})
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, workspace.CategoryFormat, d.Category)
	assert.Equal(t, "a.js", d.Location.Path)
	assert.Contains(t, d.Tags, diagnostic.TagFixable)
	require.Len(t, d.Advices, 1)
	assert.Equal(t, diagnostic.AdviceDiff, d.Advices[0].Kind)
	assert.Contains(t, d.Advices[0].Diff, "+let a = 1;")
	assert.True(t, res.Formatted)
	assert.False(t, res.Changed)
}

func TestProcess_RuleOffStillFormats(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Linter.Rules.SetLevel("suspicious", "noDebugger", config.RuleOff)

	res := process(t, "a.js", "debugger\n", cfg, workspace.Options{Mode: workspace.ModeCheck, Write: true})
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "debugger;\n", res.Output)
	assert.True(t, res.Formatted)
}

func TestProcess_Modes(t *testing.T) {
	t.Parallel()

	src := "(1 >= -0)\n"

	lint := process(t, "a.js", src, nil, workspace.Options{Mode: workspace.ModeLint, Write: true})
	assert.Equal(t, "(1 >= 0)\n", lint.Output, "lint fixes without formatting")
	assert.False(t, lint.Formatted)

	fmtOnly := process(t, "a.js", src, nil, workspace.Options{Mode: workspace.ModeFormat, Write: true})
	assert.Equal(t, "1 >= -0;\n", fmtOnly.Output, "format leaves lint problems alone")
	assert.Empty(t, fmtOnly.Diagnostics)

	imports := "import { b, a } from \"x\";\n"
	lintImports := process(t, "a.js", imports, nil, workspace.Options{Mode: workspace.ModeLint, Write: true})
	assert.Equal(t, imports, lintImports.Output, "assists only run in check")
}

// retextRule rewrites the `debugger` keyword to itself, so its safe fix is
// offered on every pass. With twice set the fix edits the keyword twice.
type retextRule struct {
	analyzer.BaseRule
	twice bool
}

func newRetextRule(name string, twice bool) *retextRule {
	return &retextRule{BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
		Name:        name,
		Group:       analyzer.GroupSuspicious,
		Language:    "javascript",
		Recommended: true,
		Severity:    diagnostic.SeverityWarning,
		Fix:         analyzer.FixSafe,
	}, analyzer.QueryKinds(syntax.JsDebuggerStatement)), twice: twice}
}

func (r *retextRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	kw := node.FindToken(syntax.DebuggerKw)
	batch := ctx.NewBatch()
	batch.ReplaceToken(kw, kw.Green())
	if r.twice {
		batch.ReplaceToken(kw, kw.Green())
	}
	return ctx.Diagnostic(node.TextRange(), "debugger").WithAction("retext", batch).Signals()
}

func TestProcess_FixConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rules      []analyzer.Rule
		wantPasses int
		wantDiags  []string
	}{
		{
			name:       "fix deferred until the pass cap",
			rules:      []analyzer.Rule{newRetextRule("retextOne", false), newRetextRule("retextTwo", false)},
			wantPasses: 3,
			wantDiags: []string{
				"lint/suspicious/retextOne", "lint/suspicious/retextTwo",
				workspace.CategoryFixDiverged, workspace.CategoryFixConflict,
			},
		},
		{
			name:       "fix that conflicts with itself",
			rules:      []analyzer.Rule{newRetextRule("retextTwice", true)},
			wantPasses: 0,
			wantDiags:  []string{"lint/suspicious/retextTwice", workspace.CategoryFixConflict},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := analyzer.NewRegistry()
			for _, r := range tt.rules {
				registry.Register(r)
			}
			src := "debugger;\n"
			res := process(t, "a.js", src, nil, workspace.Options{
				Mode:         workspace.ModeLint,
				Write:        true,
				Registry:     registry,
				MaxFixPasses: 3,
			})
			assert.Equal(t, src, res.Output)
			assert.Equal(t, tt.wantPasses, res.FixPasses)
			assert.ElementsMatch(t, tt.wantDiags, categories(res))

			for _, d := range res.Diagnostics {
				if d.Category == workspace.CategoryFixConflict {
					assert.Contains(t, d.Message, "could not be applied (conflict)")
					assert.Equal(t, diagnostic.SeverityInformation, d.Severity)
				}
			}
		})
	}
}

func TestProcess_JSON(t *testing.T) {
	t.Parallel()

	res := process(t, "data.json", `{"a":1}`, nil, workspace.Options{Mode: workspace.ModeCheck, Write: true})
	assert.Equal(t, lang.JSON, res.Language)
	assert.Equal(t, "{\n\t\"a\": 1\n}\n", res.Output)
	assert.True(t, res.Changed)
}

func TestProcess_FormatterDisabled(t *testing.T) {
	t.Parallel()

	disabled := false
	cfg := config.NewConfig()
	cfg.Formatter.Enabled = &disabled

	res := process(t, "a.js", "let a=1\n", cfg, workspace.Options{Mode: workspace.ModeCheck, Write: true})
	assert.Equal(t, "let a=1\n", res.Output)
	assert.Empty(t, res.Diagnostics)
}

func TestProcess_ParseErrorSkipsFixesAndFormatting(t *testing.T) {
	t.Parallel()

	src := "a +;\ndebugger\n"
	res := process(t, "a.js", src, nil, workspace.Options{Mode: workspace.ModeCheck, Unsafe: true})
	assert.Equal(t, src, res.Output)
	assert.False(t, res.Changed)
	require.NotEmpty(t, res.Diagnostics)
	for _, d := range res.Diagnostics {
		assert.Equal(t, parser.CategoryParse, d.Category)
		assert.Equal(t, "a.js", d.Location.Path)
	}
	assert.Equal(t, 1, res.Diagnostics[0].Location.Start.Line)
}

func TestProcess_TooLarge(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Files.MaxSize = 16

	res := process(t, "big.js", strings.Repeat("debugger;\n", 4), cfg, workspace.Options{Mode: workspace.ModeCheck})
	assert.True(t, res.Skipped)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, workspace.CategoryTooLarge, res.Diagnostics[0].Category)
	assert.Equal(t, diagnostic.SeverityWarning, res.Diagnostics[0].Severity)
	assert.Contains(t, res.Diagnostics[0].Message, "40 B")
	assert.Contains(t, res.Diagnostics[0].Message, "16 B")
}

func TestProcess_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := workspace.Process(ctx, "a.js", "debugger;\n", nil, workspace.Options{Unsafe: true})
	require.NoError(t, err)
	assert.True(t, res.Cancelled)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "debugger;\n", res.Output)
}

func TestProcess_UnknownLanguage(t *testing.T) {
	t.Parallel()

	_, err := workspace.Process(context.Background(), "notes.txt", "hello", nil, workspace.Options{})
	require.ErrorIs(t, err, workspace.ErrUnknownLanguage)
}

func TestProcess_Overrides(t *testing.T) {
	t.Parallel()

	off := config.Rules{}
	off.SetLevel("suspicious", "noDebugger", config.RuleOff)

	cfg := config.NewConfig()
	cfg.Overrides = []config.Override{{
		Includes: []string{"legacy/**"},
		Linter:   &config.Linter{Rules: off},
	}}

	opts := workspace.Options{Mode: workspace.ModeLint}
	assert.Empty(t, process(t, "legacy/a.js", "debugger;\n", cfg, opts).Diagnostics)
	assert.Len(t, process(t, "src/a.js", "debugger;\n", cfg, opts).Diagnostics, 1)
}

func TestModeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "check", workspace.ModeCheck.String())
	assert.Equal(t, "lint", workspace.ModeLint.String())
	assert.Equal(t, "format", workspace.ModeFormat.String())
}
