package grit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang/grit"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func kindsOf(root *syntax.Node) map[syntax.Kind]int {
	out := make(map[syntax.Kind]int)
	for n := range root.Descendants() {
		out[n.Kind()]++
	}
	return out
}

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		kinds []syntax.Kind
	}{
		{"snippet", "`console.log($msg)`", []syntax.Kind{syntax.GritCodeSnippet}},
		{"rewrite", "`console.log($msg)` => `logger.info($msg)`", []syntax.Kind{syntax.GritRewrite}},
		{
			"where",
			"`$fn($arg)` where { $fn <: `foo`, $arg <: not `1`, $arg => `2` }",
			[]syntax.Kind{syntax.GritWhere, syntax.GritPredicateMatch, syntax.GritNot, syntax.GritRewrite},
		},
		{"or", "or { `a`, `b`, }", []syntax.Kind{syntax.GritOr, syntax.GritPatternList}},
		{"and contains", "and { `f($x)`, contains `g()` }", []syntax.Kind{syntax.GritAnd, syntax.GritContains}},
		{"within maybe", "within `class $c {}` maybe `x`", []syntax.Kind{syntax.GritWithin}},
		{"bubble", "bubble($a) `f($a)`", []syntax.Kind{syntax.GritBubble, syntax.GritVariableList}},
		{"node like", `js_call_expression(function = "foo", $args)`, []syntax.Kind{syntax.GritNodeLike, syntax.GritNamedArg}},
		{"assignment", "`x` where { $y = `z`, or { $a <: 1, $a <: undefined } }", []syntax.Kind{syntax.GritPredicateAssignment, syntax.GritIntLiteral, syntax.GritUndefined}},
		{"definition", "pattern log($m) { `console.log($m)` }\nlog($m)", []syntax.Kind{syntax.GritPatternDefinition}},
		{"comments", "// find logs\n`console.log()` /* done */", []syntax.Kind{syntax.GritCodeSnippet}},
		{"spread", "`f($...)`", []syntax.Kind{syntax.GritCodeSnippet}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := grit.Parse(tt.src, grit.Options{})
			assert.Empty(t, parse.Diagnostics)
			assert.Equal(t, tt.src, parse.Root().Text())
			kinds := kindsOf(parse.Root())
			for _, k := range tt.kinds {
				assert.Positive(t, kinds[k], "missing %s", k)
			}
		})
	}
}

func TestParse_ErrorRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		wantSubstr string
	}{
		{"unterminated snippet", "`console.log(", "unterminated code snippet"},
		{"missing rewrite", "`a` =>", "expected a rewrite pattern"},
		{"bad predicate", "`a` where { `b` }", "expected a predicate"},
		{"bad operator", "`a` where { $x }", "expected `<:`, `=` or `=>`"},
		{"lone dollar", "$ ", "expected a variable name"},
		{"unclosed or", "or { `a`", "expected `}`"},
		{"stray token", ") `a`", "expected a pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := grit.Parse(tt.src, grit.Options{})
			assert.Equal(t, tt.src, parse.Root().Text())
			require.NotEmpty(t, parse.Diagnostics)
			var msgs []string
			for _, d := range parse.Diagnostics {
				msgs = append(msgs, d.Message)
			}
			assert.Contains(t, strings.Join(msgs, "\n"), tt.wantSubstr)
		})
	}
}

func FuzzParseRoundTrip(f *testing.F) {
	for _, seed := range []string{"`a`", "or {", "`a` where {$x <:", "$", "bubble(", "pattern p("} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, src string) {
		if got := grit.Parse(src, grit.Options{}).Root().Text(); got != src {
			t.Fatalf("round trip mismatch: %q != %q", got, src)
		}
	})
}
