package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

func TestRuleConfiguration_Unmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    config.RuleConfiguration
		wantErr bool
	}{
		{name: "plain level", input: `"warn"`, want: config.RuleConfiguration{Level: config.RuleWarn}},
		{name: "off", input: `"off"`, want: config.RuleConfiguration{Level: config.RuleOff}},
		{
			name:  "object",
			input: `{"level": "error", "fix": "safe", "options": {"max": 3}}`,
			want: config.RuleConfiguration{
				Level:   config.RuleError,
				Fix:     config.FixSafe,
				Options: map[string]any{"max": float64(3)},
			},
		},
		{name: "object without level", input: `{"fix": "none"}`, want: config.RuleConfiguration{Level: config.RuleOn, Fix: config.FixNone}},
		{name: "unknown level", input: `"loud"`, wantErr: true},
		{name: "unknown object level", input: `{"level": "loud"}`, wantErr: true},
		{name: "wrong type", input: `3`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got config.RuleConfiguration
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleConfiguration_Marshal(t *testing.T) {
	t.Parallel()

	plain, err := json.Marshal(config.RuleConfiguration{Level: config.RuleError})
	require.NoError(t, err)
	assert.JSONEq(t, `"error"`, string(plain))

	obj, err := json.Marshal(config.RuleConfiguration{Level: config.RuleWarn, Fix: config.FixUnsafe})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"warn","fix":"unsafe"}`, string(obj))
}

func TestRules_RoundTrip(t *testing.T) {
	t.Parallel()

	input := `{
		"recommended": false,
		"suspicious": {"recommended": true, "noDebugger": "off", "noDoubleEquals": {"level": "error", "options": {"ignoreNull": true}}},
		"style": {"useConst": "warn"}
	}`

	var rules config.Rules
	require.NoError(t, json.Unmarshal([]byte(input), &rules))

	require.NotNil(t, rules.Recommended)
	assert.False(t, *rules.Recommended)
	assert.True(t, *rules.Group("suspicious").Recommended)

	rc, ok := rules.Rule("suspicious", "noDoubleEquals")
	require.True(t, ok)
	assert.Equal(t, config.RuleError, rc.Level)
	assert.Equal(t, true, rc.Options["ignoreNull"])

	_, ok = rules.Rule("style", "noDebugger")
	assert.False(t, ok)

	out, err := json.Marshal(rules)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	assert.Regexp(t, `^\{"recommended":false,"style"`, string(out))
}

func TestRules_SetLevelKeepsOptions(t *testing.T) {
	t.Parallel()

	var rules config.Rules
	rules.EnsureGroup("style").Rules["useConst"] = config.RuleConfiguration{
		Level:   config.RuleWarn,
		Options: map[string]any{"k": "v"},
	}

	rules.SetLevel("style", "useConst", config.RuleError)
	rules.SetLevel("suspicious", "noDebugger", config.RuleError)

	rc, _ := rules.Rule("style", "useConst")
	assert.Equal(t, config.RuleError, rc.Level)
	assert.Equal(t, "v", rc.Options["k"])

	rc, ok := rules.Rule("suspicious", "noDebugger")
	require.True(t, ok)
	assert.Equal(t, config.RuleError, rc.Level)
}

func TestRulePlainConfiguration_Severity(t *testing.T) {
	t.Parallel()

	sev, ok := config.RuleOn.Severity(diagnostic.SeverityWarning)
	assert.True(t, ok)
	assert.Equal(t, diagnostic.SeverityWarning, sev)

	sev, ok = config.RuleInfo.Severity(diagnostic.SeverityError)
	assert.True(t, ok)
	assert.Equal(t, diagnostic.SeverityInformation, sev)

	_, ok = config.RuleOff.Severity(diagnostic.SeverityError)
	assert.False(t, ok)

	assert.Equal(t, config.RuleWarn, config.LevelForSeverity(diagnostic.SeverityWarning))
}

func TestConfig_UnmarshalDocument(t *testing.T) {
	t.Parallel()

	doc := `{
		"$schema": "./schema.json",
		"files": {"maxSize": 2048, "includes": ["src/**", "!src/gen/**"]},
		"vcs": {"enabled": true, "clientKind": "git", "useIgnoreFile": true},
		"formatter": {"indentStyle": "space", "indentWidth": 4, "lineWidth": 100},
		"linter": {"rules": {"recommended": true}},
		"javascript": {"formatter": {"quoteStyle": "single", "lineWidth": 120}, "globals": ["$"]},
		"json": {"parser": {"allowComments": true}}
	}`

	cfg := config.NewConfig()
	require.NoError(t, json.Unmarshal([]byte(doc), cfg))

	assert.Equal(t, int64(2048), cfg.MaxFileSize())
	assert.True(t, cfg.UseIgnoreFile())
	assert.True(t, cfg.LinterEnabled())
	assert.Equal(t, config.IndentSpace, cfg.IndentStyle(cfg.JavaScript.Formatter.FormatterSettings))
	assert.Equal(t, 4, cfg.IndentWidth(cfg.JavaScript.Formatter.FormatterSettings))
	assert.Equal(t, 120, cfg.LineWidth(cfg.JavaScript.Formatter.FormatterSettings))
	assert.Equal(t, 100, cfg.LineWidth(cfg.CSS.Formatter.FormatterSettings))
	assert.Equal(t, "single", cfg.JavaScript.Formatter.QuoteStyle)
	assert.Equal(t, []string{"$"}, cfg.JavaScript.Globals)
	assert.True(t, config.BoolOr(cfg.JSON.Parser.AllowComments, false))
	assert.Equal(t, config.FormatDefault, cfg.Format)
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	settings := config.FormatterSettings{}

	assert.Equal(t, config.DefaultMaxSize, cfg.MaxFileSize())
	assert.Equal(t, config.DefaultLineWidth, cfg.LineWidth(settings))
	assert.Equal(t, config.DefaultIndentWidth, cfg.IndentWidth(settings))
	assert.Equal(t, config.IndentTab, cfg.IndentStyle(settings))
	assert.Equal(t, "lf", cfg.LineEnding(settings))
	assert.False(t, cfg.VCSEnabled())
	assert.False(t, cfg.UseIgnoreFile())
	assert.Equal(t, config.DefaultMaxDiagnostics, cfg.MaxDiagnostics)
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []config.OutputFormat{config.FormatDefault, config.FormatJSON, config.FormatJSONPretty, config.FormatSummary} {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("github").IsValid())
}
