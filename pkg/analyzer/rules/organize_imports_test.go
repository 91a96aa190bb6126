package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

func TestOrganizeImportsAssist(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags int
		want      string
	}{
		{
			name:      "packages before relative paths",
			src:       "import * as s from \"../s\";\nimport { b, a } from \"x\";\n",
			wantDiags: 1,
			want:      "import { a, b } from \"x\";\nimport * as s from \"../s\";\n",
		},
		{
			name:      "already sorted",
			src:       "import a from \"a\";\nimport b from \"./b\";\n",
			wantDiags: 0,
			want:      "import a from \"a\";\nimport b from \"./b\";\n",
		},
		{
			name:      "specifiers only",
			src:       "import { c, a, b } from \"x\";\n",
			wantDiags: 1,
			want:      "import { a, b, c } from \"x\";\n",
		},
		{
			name:      "farther relative paths first",
			src:       "import a from \"./a\";\nimport b from \"../../b\";\nimport c from \"../c\";\n",
			wantDiags: 1,
			want:      "import b from \"../../b\";\nimport c from \"../c\";\nimport a from \"./a\";\n",
		},
		{
			name:      "protocol before package",
			src:       "import react from \"react\";\nimport fs from \"node:fs\";\n",
			wantDiags: 1,
			want:      "import fs from \"node:fs\";\nimport react from \"react\";\n",
		},
		{
			name:      "blank line separates chunks",
			src:       "import b from \"b\";\n\nimport a from \"a\";\n",
			wantDiags: 0,
			want:      "import b from \"b\";\n\nimport a from \"a\";\n",
		},
		{
			name:      "side effect import is a barrier",
			src:       "import b from \"b\";\nimport \"polyfill\";\nimport a from \"a\";\n",
			wantDiags: 0,
			want:      "import b from \"b\";\nimport \"polyfill\";\nimport a from \"a\";\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			file, result := analyzeWith(t, ruleCase{src: tt.src}, NewOrganizeImportsAssist())
			diags := lintDiagnostics(result)
			require.Len(t, diags, tt.wantDiags)
			for _, d := range diags {
				assert.Equal(t, "assist/source/organizeImports", d.Category)
				assert.Equal(t, diagnostic.SeverityInformation, d.Severity)
			}
			assert.Equal(t, tt.want, applyActions(t, file, result, analyzer.FixSafe))
		})
	}
}

func TestCompareSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{a: "https://esm.sh/x", b: "node:fs", want: -1},
		{a: "node:fs", b: "react", want: -1},
		{a: "react", b: "@/lib", want: -1},
		{a: "@scope/pkg", b: "react", want: -1},
		{a: "#internal", b: "/abs", want: -1},
		{a: "/abs", b: "./rel", want: -1},
		{a: "../../a", b: "../a", want: -1},
		{a: "../a", b: "./a", want: -1},
		{a: "A", b: "a", want: -1},
		{a: "b", b: "B", want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compareSources(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
