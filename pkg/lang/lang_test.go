package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func TestFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want lang.Language
		ok   bool
	}{
		{"src/app.js", lang.JavaScript, true},
		{"src/app.mjs", lang.JavaScript, true},
		{"src/App.jsx", lang.JSX, true},
		{"src/app.ts", lang.TypeScript, true},
		{"src/App.TSX", lang.TSX, true},
		{"package.json", lang.JSON, true},
		{"tsconfig.json", lang.JSONC, true},
		{"settings.jsonc", lang.JSONC, true},
		{"styles/main.css", lang.CSS, true},
		{"schema.graphql", lang.GraphQL, true},
		{"ops.gql", lang.GraphQL, true},
		{"rules/no-log.grit", lang.Grit, true},
		{"README.md", lang.Unknown, false},
		{"main.go", lang.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, ok := lang.FromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Content(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    lang.Language
	}{
		{"json object", `{"key": "value", "number": 123}`, lang.JSON},
		{"javascript", "const x = () => 42;\nconsole.log(x());", lang.JavaScript},
		{"typescript", "interface A { name: string }", lang.TypeScript},
		{"graphql", "query Hero { hero { name } }", lang.GraphQL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := lang.Detect("", []byte(tt.content))
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_PathWins(t *testing.T) {
	t.Parallel()

	got, ok := lang.Detect("a.css", []byte("const x = 1"))
	require.True(t, ok)
	assert.Equal(t, lang.CSS, got)

	_, ok = lang.Detect("", []byte("   \n"))
	assert.False(t, ok)
}

func TestParse_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang lang.Language
		src  string
		root syntax.Kind
	}{
		{lang.JavaScript, "let a = 1;", syntax.JsModule},
		{lang.TSX, "const a: number = <div />;", syntax.JsModule},
		{lang.JSON, `{"a": 1}`, syntax.JsonRoot},
		{lang.JSONC, "// c\n{}", syntax.JsonRoot},
		{lang.CSS, "a { b: c }", syntax.CssRoot},
		{lang.GraphQL, "{ a }", syntax.GraphqlRoot},
		{lang.Grit, "`a`", syntax.GritRoot},
		{lang.Tailwind, "flex p-4", syntax.TwRoot},
	}

	for _, tt := range tests {
		t.Run(tt.lang.String(), func(t *testing.T) {
			t.Parallel()
			parse, err := lang.Parse(tt.lang, "", tt.src)
			require.NoError(t, err)
			assert.Empty(t, parse.Diagnostics)
			assert.Equal(t, tt.root, parse.Root().Kind())
			assert.Equal(t, tt.src, parse.Root().Text())
		})
	}

	_, err := lang.Parse(lang.Unknown, "", "x")
	require.ErrorIs(t, err, lang.ErrUnsupported)
}

func TestLanguage_Family(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "javascript", lang.TSX.Family())
	assert.Equal(t, "json", lang.JSONC.Family())
	assert.Equal(t, "css", lang.CSS.Family())
	assert.True(t, lang.JSX.IsJS())
	assert.False(t, lang.JSON.IsJS())
	assert.Equal(t, "unknown", lang.Unknown.String())
}
