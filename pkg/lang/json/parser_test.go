package json_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang/json"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func messages(src string, opts json.Options) []string {
	parse := json.Parse(src, opts)
	var out []string
	for _, d := range parse.Diagnostics {
		out = append(out, d.Message)
	}
	return out
}

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"empty object", "{}"},
		{"nested", `{"a": [1, 2.5, -3e10], "b": {"c": null, "d": true, "e": false}}`},
		{"string escapes", `["\n\t\"\\\/é"]`},
		{"scalar root", `"hello"`},
		{"whitespace", "\n  [ ]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := json.Parse(tt.src, json.Options{})
			assert.Empty(t, parse.Diagnostics)
			assert.Equal(t, tt.src, parse.Root().Text())
			assert.Equal(t, syntax.JsonRoot, parse.Root().Kind())
		})
	}
}

func TestParse_Dialects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		opts       json.Options
		wantSubstr string
	}{
		{"comment in json", "// c\n{}", json.Options{}, "does not allow comments"},
		{"comment in jsonc", "// c\n{ /* x */ }", json.JSONC, ""},
		{"trailing comma in json", `{"a": 1,}`, json.Options{}, "trailing commas"},
		{"trailing comma in jsonc", `[1, 2,]`, json.JSONC, ""},
		{"leading zero", `01`, json.Options{}, "leading zeros"},
		{"single quotes", `'a'`, json.Options{}, "double quotes"},
		{"unquoted key", `{a: 1}`, json.Options{}, "double quoted"},
		{"missing value", `{"a": }`, json.Options{}, "expected an array, an object, or a literal"},
		{"missing comma", `[1 2]`, json.Options{}, "expected `,`"},
		{"trailing garbage", `{} {}`, json.Options{}, "end of file expected"},
		{"empty input", ``, json.Options{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := json.Parse(tt.src, tt.opts)
			assert.Equal(t, tt.src, parse.Root().Text())
			msgs := messages(tt.src, tt.opts)
			if tt.wantSubstr == "" {
				assert.Empty(t, msgs)
				return
			}
			require.NotEmpty(t, msgs)
			assert.True(t, strings.Contains(strings.Join(msgs, "\n"), tt.wantSubstr), "got %v", msgs)
		})
	}
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	src := `{
  // formatter options
  "formatter": { "lineWidth": 100, "enabled": true, },
  "files": ["a", "b",],
}`
	var got struct {
		Formatter struct {
			LineWidth int  `json:"lineWidth"`
			Enabled   bool `json:"enabled"`
		} `json:"formatter"`
		Files []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(src), json.JSONC, &got))
	assert.Equal(t, 100, got.Formatter.LineWidth)
	assert.True(t, got.Formatter.Enabled)
	assert.Equal(t, []string{"a", "b"}, got.Files)

	err := json.Unmarshal([]byte(src), json.Options{}, &got)
	require.ErrorIs(t, err, json.ErrSyntax)
}

func TestMembers(t *testing.T) {
	t.Parallel()

	root := json.Parse(`{"rules": {"no-debugger": "error"}, "x": 1}`, json.Options{}).Root()
	obj := root.FindNode(syntax.JsonObjectValue)
	require.NotNil(t, obj)

	var names []string
	for m := range json.Members(obj) {
		names = append(names, json.MemberName(m))
	}
	assert.Equal(t, []string{"rules", "x"}, names)

	rules := json.MemberValue(obj, "rules")
	require.NotNil(t, rules)
	level := json.MemberValue(rules, "no-debugger")
	require.NotNil(t, level)
	assert.Equal(t, "error", json.Unquote(level.TrimmedText()))
	assert.Nil(t, json.MemberValue(obj, "missing"))
}

func TestOptionsForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, json.JSONC, json.OptionsForPath("dir/tsconfig.json"))
	assert.Equal(t, json.JSONC, json.OptionsForPath("a.jsonc"))
	assert.Equal(t, json.JSONC, json.OptionsForPath("tsconfig.base.json"))
	assert.Equal(t, json.Options{}, json.OptionsForPath("package.json"))
}

func FuzzParseRoundTrip(f *testing.F) {
	for _, seed := range []string{`{}`, `[1,2,]`, `{"a":/*c*/1}`, `{"a`, `]]`, `'x`} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, src string) {
		parse := json.Parse(src, json.JSONC)
		if got := parse.Root().Text(); got != src {
			t.Fatalf("round trip mismatch: %q != %q", got, src)
		}
	})
}
