package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/config"
)

func TestMatchIncludes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		file     string
		want     bool
	}{
		{"empty selects all", nil, "a/b.js", true},
		{"double star", []string{"src/**/*.js"}, "src/a/b.js", true},
		{"no match", []string{"src/**/*.js"}, "lib/b.js", false},
		{"negation after include", []string{"src/**", "!src/gen/**"}, "src/gen/x.js", false},
		{"negation keeps others", []string{"src/**", "!src/gen/**"}, "src/x.js", true},
		{"only negations", []string{"!**/*.min.js"}, "a/b.js", true},
		{"only negations excluded", []string{"!**/*.min.js"}, "a/b.min.js", false},
		{"base name pattern", []string{"*.test.js"}, "deep/dir/a.test.js", true},
		{"dot slash prefix", []string{"./src/*.ts"}, "./src/a.ts", true},
		{"directory pattern", []string{"dist/**"}, "dist", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.MatchIncludes(tt.patterns, tt.file))
		})
	}
}

func TestValidatePatterns(t *testing.T) {
	t.Parallel()

	_, ok := config.ValidatePatterns([]string{"src/**", "!*.js"})
	assert.True(t, ok)

	bad, ok := config.ValidatePatterns([]string{"src/[a"})
	assert.False(t, ok)
	assert.Equal(t, "src/[a", bad)
}

func TestConfig_ForPath(t *testing.T) {
	t.Parallel()

	doc := `{
		"formatter": {"lineWidth": 80},
		"linter": {"rules": {"suspicious": {"noDebugger": "error"}}},
		"overrides": [
			{"includes": ["test/**"], "linter": {"rules": {"suspicious": {"noDebugger": "off"}}}},
			{"includes": ["**/*.json"], "formatter": {"lineWidth": 120}, "json": {"parser": {"allowTrailingCommas": true}}},
			{"includes": ["legacy/**"], "linter": {"enabled": false}, "javascript": {"globals": ["jQuery"], "formatter": {"quoteStyle": "single"}}}
		]
	}`
	cfg := config.NewConfig()
	require.NoError(t, json.Unmarshal([]byte(doc), cfg))

	test := cfg.ForPath("test/a.js")
	rc, _ := test.Linter.Rules.Rule("suspicious", "noDebugger")
	assert.Equal(t, config.RuleOff, rc.Level)

	rc, _ = cfg.Linter.Rules.Rule("suspicious", "noDebugger")
	assert.Equal(t, config.RuleError, rc.Level, "base config must not change")

	jsonCfg := cfg.ForPath("data/x.json")
	assert.Equal(t, 120, jsonCfg.LineWidth(jsonCfg.JSON.Formatter.FormatterSettings))
	assert.True(t, config.BoolOr(jsonCfg.JSON.Parser.AllowTrailingCommas, false))
	assert.Equal(t, 80, cfg.ForPath("src/a.js").Formatter.LineWidth)

	legacy := cfg.ForPath("legacy/old.js")
	assert.False(t, legacy.LinterEnabled())
	assert.Equal(t, []string{"jQuery"}, legacy.JavaScript.Globals)
	assert.Equal(t, "single", legacy.JavaScript.Formatter.QuoteStyle)
	assert.Empty(t, cfg.JavaScript.Globals)
}
