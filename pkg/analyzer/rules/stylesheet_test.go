package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang"
)

func TestNoDuplicateObjectKeysRule(t *testing.T) {
	t.Parallel()

	_, result := analyzeWith(t, ruleCase{language: lang.JSON, src: `{"a": 1, "b": {"a": 2}, "a": 3}`},
		NewNoDuplicateObjectKeysRule())
	diags := lintDiagnostics(result)
	require.Len(t, diags, 1)
	assert.Equal(t, "lint/suspicious/noDuplicateObjectKeys", diags[0].Category)
	assert.Equal(t, "The key a was already declared.", diags[0].Message)
	require.Len(t, diags[0].Labels, 1)
	assert.Equal(t, 1, diags[0].Labels[0].Range.Start)
}

func TestCSSRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags map[string]int
	}{
		{
			name:      "duplicate property",
			src:       "a { color: red; COLOR: blue; }\n",
			wantDiags: map[string]int{"lint/suspicious/noDuplicateProperties": 1},
		},
		{
			name:      "custom properties are case sensitive",
			src:       "a { --x: 1; --X: 2; }\n",
			wantDiags: map[string]int{},
		},
		{
			name:      "nested blocks are separate",
			src:       "a { color: red; &:hover { color: blue; } }\n",
			wantDiags: map[string]int{},
		},
		{
			name:      "important in keyframe",
			src:       "@keyframes foo {\n  from { opacity: 0 !important; }\n}\n",
			wantDiags: map[string]int{"lint/suspicious/noImportantInKeyframe": 1},
		},
		{
			name:      "important outside keyframes",
			src:       "a { color: red !important; }\n",
			wantDiags: map[string]int{},
		},
		{
			name:      "empty block",
			src:       "p {}\n",
			wantDiags: map[string]int{"lint/suspicious/noEmptyBlock": 1},
		},
		{
			name:      "block with only a comment",
			src:       "p {\n  /* empty */\n}\n",
			wantDiags: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, result := analyzeWith(t, ruleCase{language: lang.CSS, src: tt.src},
				NewNoDuplicatePropertiesRule(), NewNoImportantInKeyframeRule(), NewNoEmptyBlockRule())
			got := map[string]int{}
			for _, d := range lintDiagnostics(result) {
				got[d.Category]++
			}
			assert.Equal(t, tt.wantDiags, got)
		})
	}
}

func TestUseDeprecatedReasonRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantDiags int
	}{
		{name: "missing reason", src: "query {\n  member @deprecated {\n    id\n  }\n}\n", wantDiags: 1},
		{name: "with reason", src: "query {\n  member @deprecated(reason: \"Why?\") {\n    id\n  }\n}\n", wantDiags: 0},
		{name: "other directive", src: "query {\n  member @include(if: true) {\n    id\n  }\n}\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, result := analyzeWith(t, ruleCase{language: lang.GraphQL, src: tt.src}, NewUseDeprecatedReasonRule())
			assert.Len(t, lintDiagnostics(result), tt.wantDiags)
		})
	}
}
