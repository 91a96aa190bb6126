package css_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang/css"
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
		{"rule", "a { color: red; }", []syntax.Kind{syntax.CssQualifiedRule, syntax.CssDeclaration}},
		{"selector list", "h1, h2 > .x:hover, [data-a=\"b\"] {}", []syntax.Kind{syntax.CssComplexSelector}},
		{"important", "a{margin:0 auto!important}", []syntax.Kind{syntax.CssImportant}},
		{"function", "a { width: calc(100% - 10px); }", []syntax.Kind{syntax.CssFunction, syntax.CssFunctionArgumentList}},
		{"url", "a { background: url(img/a.png) no-repeat; }", []syntax.Kind{syntax.CssDeclaration}},
		{"media", "@media (min-width: 10px) { a { color: blue } }", []syntax.Kind{syntax.CssAtRule, syntax.CssParenthesizedValue, syntax.CssQualifiedRule}},
		{"import", "@import \"a.css\";", []syntax.Kind{syntax.CssAtRule, syntax.CssAtRulePrelude}},
		{"font face", "@font-face { font-family: x; src: url(\"a.woff\") }", []syntax.Kind{syntax.CssAtRule, syntax.CssDeclaration}},
		{"nesting", ".a { color: red; &:hover { color: blue; } .b { x: y } }", []syntax.Kind{syntax.CssQualifiedRule}},
		{"custom property", ":root { --brand: { a: b }; --x: 1px }", []syntax.Kind{syntax.CssCustomPropertyValue}},
		{"comments", "/* c */ a { /* d */ color: red; }", []syntax.Kind{syntax.CssDeclaration}},
		{"numbers", "a { line-height: 1.5; margin: -2px .5em 10%; }", []syntax.Kind{syntax.CssComponentValueList}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := css.Parse(tt.src, css.Options{})
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
		{"missing block", "a color: red; b {}", "expected `{`"},
		{"missing value", "a { color: ; }", "expected a value"},
		{"stray brace", "} a {}", "unexpected `}`"},
		{"bad important", "a { color: red !imp }", "expected `important`"},
		{"unterminated comment", "a {} /* x", "unterminated block comment"},
		{"unterminated string", "a { content: \"x\n}", "unterminated string"},
		{"empty selector", ", a {}", "expected a selector"},
		{"unclosed block", "a { color: red", "expected `}`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := css.Parse(tt.src, css.Options{})
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

func TestParse_LineComments(t *testing.T) {
	t.Parallel()

	src := "a {\n  // note\n  color: red;\n}"
	assert.NotEmpty(t, css.Parse(src, css.Options{}).Diagnostics)

	parse := css.Parse(src, css.Options{AllowWrongLineComments: true})
	assert.Empty(t, parse.Diagnostics)
	assert.Equal(t, src, parse.Root().Text())
}

func TestViews(t *testing.T) {
	t.Parallel()

	root := css.Parse("A:hover, .b { COLOR: red !important; --Var: 1 }\n@MEDIA print {}", css.Options{}).Root()
	rule := root.FindNode(syntax.CssRuleList).FindNode(syntax.CssQualifiedRule)
	require.NotNil(t, rule)
	assert.Equal(t, []string{"A:hover", ".b"}, css.Selectors(rule))

	decls := css.Declarations(rule)
	require.Len(t, decls, 2)
	assert.Equal(t, "color", css.PropertyName(decls[0]))
	assert.True(t, css.IsImportant(decls[0]))
	assert.Equal(t, "--Var", css.PropertyName(decls[1]))
	assert.False(t, css.IsImportant(decls[1]))

	at := root.FindNode(syntax.CssRuleList).FindNode(syntax.CssAtRule)
	require.NotNil(t, at)
	assert.Equal(t, "media", css.AtRuleName(at))
}

func FuzzParseRoundTrip(f *testing.F) {
	for _, seed := range []string{"a{b:c}", "@media{", "a{;;}", "}}{{", "/*", "url(", "a{b:c!}"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, src string) {
		if got := css.Parse(src, css.Options{}).Root().Text(); got != src {
			t.Fatalf("round trip mismatch: %q != %q", got, src)
		}
	})
}
