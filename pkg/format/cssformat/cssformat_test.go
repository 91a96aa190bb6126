package cssformat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "declarations", src: "a{color:red;MARGIN:0 auto}", want: "a {\n\tcolor: red;\n\tmargin: 0 auto;\n}\n"},
		{name: "selector list", src: "h1,h2 , h3{x:1}", want: "h1,\nh2,\nh3 {\n\tx: 1;\n}\n"},
		{name: "combinators", src: "ul>li+li~p  a:hover{x:1}", want: "ul > li + li ~ p a:hover {\n\tx: 1;\n}\n"},
		{name: "attribute selector", src: "a[ href = 'x' ]{x:1}", want: "a[href='x'] {\n\tx: 1;\n}\n"},
		{name: "empty rule", src: "a{}", want: "a {\n}\n"},
		{name: "empty rule with space", src: ".a { }", want: ".a {\n}\n"},
		{name: "empty at rule block", src: "@media print {\n\n}", want: "@media print {\n}\n"},
		{
			name: "values",
			src:  "a{color:rgba(0,0,0,.50);font-family:Arial,'Helvetica Neue';width:calc(100% - 1.0px)}",
			want: "a {\n\tcolor: rgba(0, 0, 0, 0.5);\n\tfont-family: Arial, \"Helvetica Neue\";\n\twidth: calc(100% - 1px);\n}\n",
		},
		{name: "important", src: "a{color:red ! IMPORTANT}", want: "a {\n\tcolor: red !important;\n}\n"},
		{name: "custom property kept", src: "a{--Gap:  4px ;}", want: "a {\n\t--Gap: 4px;\n}\n"},
		{
			name: "at rules",
			src:  "@IMPORT 'base.css';@media screen and (max-width:100px){a{x:1}}",
			want: "@import \"base.css\";\n@media screen and (max-width: 100px) {\n\ta {\n\t\tx: 1;\n\t}\n}\n",
		},
		{
			name: "blank lines kept once",
			src:  "a{x:1}\n\n\n\nb{x:2}\nc{x:3}\n",
			want: "a {\n\tx: 1;\n}\n\nb {\n\tx: 2;\n}\nc {\n\tx: 3;\n}\n",
		},
		{
			name: "comments",
			src:  "/* header */\na {\n  /* lead */\n  color: red; /* trail */\n  /* end */\n}\n",
			want: "/* header */\na {\n\t/* lead */\n\tcolor: red; /* trail */\n\t/* end */\n}\n",
		},
		{name: "empty", src: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := format.Format(lang.CSS, "a.css", tt.src, format.DefaultOptions())
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}

			again, err := format.Format(lang.CSS, "a.css", got, format.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestNormalizeNumeric(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"10px":   "10px",
		".5em":   "0.5em",
		"1.50":   "1.5",
		"1.0":    "1",
		"-0.50%": "-0.5%",
		"+.5":    "+0.5",
		"1E3":    "1e3",
		"2e+3px": "2e3px",
		"2em":    "2em",
	}
	for raw, want := range tests {
		assert.Equal(t, want, normalizeNumeric(raw), raw)
	}
}
