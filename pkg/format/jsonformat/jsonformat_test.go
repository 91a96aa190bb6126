package jsonformat_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/format"
	_ "github.com/yaklabco/gobiome/pkg/format/jsonformat"
	"github.com/yaklabco/gobiome/pkg/lang"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	long := "[" + strings.Repeat(`"value", `, 10) + `"value"]`
	longWant := "[\n" + strings.Repeat("\t\"value\",\n", 10) + "\t\"value\"\n]\n"

	tests := []struct {
		name string
		l    lang.Language
		path string
		src  string
		want string
	}{
		{name: "object", l: lang.JSON, path: "a.json", src: `{"a":1,"b":[1,2]}`, want: "{\n\t\"a\": 1,\n\t\"b\": [1, 2]\n}\n"},
		{name: "empty object", l: lang.JSON, path: "a.json", src: "{ }", want: "{}\n"},
		{name: "empty array", l: lang.JSON, path: "a.json", src: "[\n]", want: "[]\n"},
		{name: "scalar", l: lang.JSON, path: "a.json", src: " true ", want: "true\n"},
		{
			name: "nested",
			l:    lang.JSON,
			path: "a.json",
			src:  `{"a":{"b":null}}`,
			want: "{\n\t\"a\": {\n\t\t\"b\": null\n\t}\n}\n",
		},
		{
			name: "array of objects breaks",
			l:    lang.JSON,
			path: "a.json",
			src:  `[{"a":1}]`,
			want: "[\n\t{\n\t\t\"a\": 1\n\t}\n]\n",
		},
		{name: "long array", l: lang.JSON, path: "a.json", src: long, want: longWant},
		{
			name: "jsonc comments and trailing comma",
			l:    lang.JSONC,
			path: "settings.jsonc",
			src:  "{\n  // editor\n  \"a\": 1 }",
			want: "{\n\t// editor\n\t\"a\": 1,\n}\n",
		},
		{
			name: "block comment after comma leads the next member",
			l:    lang.JSONC,
			path: "settings.jsonc",
			src:  `{"a": 1, /* d */ "b": 2}`,
			want: "{\n\t\"a\": 1,\n\t/* d */ \"b\": 2,\n}\n",
		},
		{
			name: "block comment after comma in array",
			l:    lang.JSONC,
			path: "settings.jsonc",
			src:  `[1,   /* two */ 2]`,
			want: "[1, /* two */ 2]\n",
		},
		{
			name: "line comment after comma stays on its line",
			l:    lang.JSONC,
			path: "settings.jsonc",
			src:  "{\"a\": 1, // one\n\"b\": 2}",
			want: "{\n\t\"a\": 1, // one\n\t\"b\": 2,\n}\n",
		},
		{
			name: "dangling comment",
			l:    lang.JSONC,
			path: "settings.jsonc",
			src:  "{\n  /* nothing yet */\n}",
			want: "{\n\t/* nothing yet */\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := format.Format(tt.l, tt.path, tt.src, format.DefaultOptions())
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}

			again, err := format.Format(tt.l, tt.path, got, format.DefaultOptions())
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func TestFormat_TrailingCommasNone(t *testing.T) {
	t.Parallel()

	opts := format.DefaultOptions()
	opts.TrailingCommas = format.TrailingNone
	got, err := format.Format(lang.JSONC, "settings.jsonc", `{"a": 1,}`, opts)
	require.NoError(t, err)
	require.Equal(t, "{\n\t\"a\": 1\n}\n", got)
}

func TestFormat_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := format.Format(lang.JSON, "a.json", `{"a": }`, format.DefaultOptions())
	require.ErrorIs(t, err, format.ErrSyntax)

	_, err = format.Format(lang.JSON, "a.json", "// no comments\n{}", format.DefaultOptions())
	require.ErrorIs(t, err, format.ErrSyntax)
}
