package migrate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	_ "github.com/yaklabco/gobiome/pkg/analyzer/rules"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/migrate"
)

func TestMigrate(t *testing.T) {
	t.Parallel()

	t.Run("stable rule", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		res := migrate.Migrate(cfg, "no-debugger", config.RuleError, migrate.Options{})
		assert.True(t, res.Applied)
		assert.Equal(t, "suspicious", res.Group)
		assert.Equal(t, "noDebugger", res.Rule)

		rc, ok := cfg.Linter.Rules.Rule("suspicious", "noDebugger")
		require.True(t, ok)
		assert.Equal(t, config.RuleError, rc.Level)
	})

	t.Run("nursery rule skipped", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		res := migrate.Migrate(cfg, "@next/no-img-element", config.RuleWarn, migrate.Options{})
		assert.False(t, res.Applied)
		assert.True(t, res.Known)
		assert.True(t, cfg.Linter.Rules.IsZero())
	})

	t.Run("nursery rule included", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		res := migrate.Migrate(cfg, "@next/next/no-img-element", config.RuleWarn, migrate.Options{IncludeNursery: true})
		assert.True(t, res.Applied)
		rc, ok := cfg.Linter.Rules.Rule("nursery", "noImgElement")
		require.True(t, ok)
		assert.Equal(t, config.RuleWarn, rc.Level)
	})

	t.Run("inspired rule", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		res := migrate.Migrate(cfg, "eqeqeq", config.RuleError, migrate.Options{})
		assert.False(t, res.Applied)
		assert.True(t, res.HasInspired)
		assert.True(t, cfg.Linter.Rules.IsZero())

		res = migrate.Migrate(cfg, "eqeqeq", config.RuleError, migrate.Options{IncludeInspired: true})
		assert.True(t, res.Applied)
		assert.False(t, res.HasInspired)
	})

	t.Run("unknown rule", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		res := migrate.Migrate(cfg, "no-such-rule", config.RuleError, migrate.Options{IncludeNursery: true, IncludeInspired: true})
		assert.Equal(t, migrate.Result{}, res)
		assert.True(t, cfg.Linter.Rules.IsZero())
	})

	t.Run("keeps rule options", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Linter.Rules.EnsureGroup("suspicious").Rules["noConsole"] = config.RuleConfiguration{
			Level:   config.RuleWarn,
			Options: map[string]any{"allow": []any{"error"}},
		}
		migrate.Migrate(cfg, "no-console", config.RuleError, migrate.Options{})
		rc, _ := cfg.Linter.Rules.Rule("suspicious", "noConsole")
		assert.Equal(t, config.RuleError, rc.Level)
		assert.Contains(t, rc.Options, "allow")
	})
}

// Every foreign rule a built-in rule names as its source must map back to
// that rule.
func TestCatalogCoversRuleSources(t *testing.T) {
	t.Parallel()

	for _, rule := range analyzer.DefaultRegistry.Rules() {
		meta := rule.Metadata()
		for _, src := range meta.Sources {
			foreign := src.Plugin + "/" + src.Name
			if src.Plugin == "eslint" {
				foreign = src.Name
			}
			target, ok := migrate.Lookup(foreign)
			if assert.True(t, ok, foreign) {
				assert.Equal(t, meta.Group, target.Group, foreign)
				assert.Equal(t, meta.Name, target.Rule, foreign)
			}
		}
	}
}

func TestPlugin(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no-debugger":                        "eslint",
		"react/jsx-key":                      "react",
		"@typescript-eslint/no-explicit-any": "@typescript-eslint",
		"@next/next/no-img-element":          "@next",
	}
	for name, want := range tests {
		assert.Equal(t, want, migrate.Plugin(name), name)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		value       any
		want        config.RulePlainConfiguration
		withOptions bool
		ok          bool
	}{
		{name: "zero", value: 0, want: config.RuleOff, ok: true},
		{name: "json number", value: float64(2), want: config.RuleError, ok: true},
		{name: "warn", value: "warn", want: config.RuleWarn, ok: true},
		{name: "upper", value: "ERROR", want: config.RuleError, ok: true},
		{name: "array", value: []any{"error", "always"}, want: config.RuleError, withOptions: true, ok: true},
		{name: "array level only", value: []any{1}, want: config.RuleWarn, ok: true},
		{name: "bad number", value: 3},
		{name: "bad string", value: "loud"},
		{name: "empty array", value: []any{}},
		{name: "object", value: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			level, withOptions, ok := migrate.ParseLevel(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, level)
			assert.Equal(t, tt.withOptions, withOptions)
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFromESLintConfig_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, ".eslintrc.json", `{
  // legacy configuration
  "root": true,
  "extends": ["eslint:recommended"],
  "ignorePatterns": ["dist/", "/build/**", "!dist/keep.js"],
  "globals": {"jQuery": "readonly", "legacy": "off", "Buffer": true},
  "rules": {
    "no-debugger": "error",
    "no-var": 1,
    "eqeqeq": ["error", "always"],
    "@next/next/no-img-element": "warn",
    "no-console": ["warn", {"allow": ["error"]}],
    "no-alert": "error",
  },
  "overrides": [
    {"files": ["*.test.js"], "excludedFiles": "fixtures/**", "rules": {"no-console": "off"}}
  ],
  "customKey": 1
}`)

	m, err := migrate.FromESLintConfig(path, nil, migrate.Options{})
	require.NoError(t, err)
	assert.Equal(t, path, m.SourcePath)
	assert.Equal(t, 4, m.Applied)
	assert.Equal(t, []string{"no-alert"}, m.Unsupported)

	cfg := m.Config
	for _, want := range []struct {
		group, rule string
		level       config.RulePlainConfiguration
	}{
		{"suspicious", "noDebugger", config.RuleError},
		{"style", "noVar", config.RuleWarn},
		{"suspicious", "noConsole", config.RuleWarn},
	} {
		rc, ok := cfg.Linter.Rules.Rule(want.group, want.rule)
		require.True(t, ok, want.rule)
		assert.Equal(t, want.level, rc.Level, want.rule)
	}
	_, ok := cfg.Linter.Rules.Rule("suspicious", "noDoubleEquals")
	assert.False(t, ok)
	assert.Nil(t, cfg.Linter.Rules.Group("nursery"))

	if diff := cmp.Diff([]string{"**", "!**/dist", "!build/**", "dist/keep.js"}, cfg.Files.Includes); diff != "" {
		t.Errorf("includes mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Buffer", "jQuery"}, cfg.JavaScript.Globals)

	require.Len(t, cfg.Overrides, 1)
	assert.Equal(t, []string{"*.test.js", "!fixtures/**"}, cfg.Overrides[0].Includes)
	rc, ok := cfg.Overrides[0].Linter.Rules.Rule("suspicious", "noConsole")
	require.True(t, ok)
	assert.Equal(t, config.RuleOff, rc.Level)

	joined := m.Warnings
	assert.Contains(t, joined, `extends "eslint:recommended" is not migrated; migrate the rules of the shared configuration manually`)
	assert.Contains(t, joined, "rule no-console: options are not migrated")
	assert.Contains(t, joined, `unknown key "customKey"; skipping`)
	assert.Contains(t, joined, "rule eqeqeq maps to suspicious/noDoubleEquals which only approximates it; pass --include-inspired to migrate it")
	assert.Contains(t, joined, "rule @next/next/no-img-element maps to the nursery rule noImgElement; pass --include-nursery to migrate it")
}

func TestFromESLintConfig_YAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, ".eslintrc.yml", "rules:\n  no-debugger: 2\n  prefer-const: warn\n")

	base := &config.Config{}
	base.Linter.Rules.SetLevel("style", "noVar", config.RuleOff)
	m, err := migrate.FromESLintConfig(path, base, migrate.Options{})
	require.NoError(t, err)
	assert.Same(t, base, m.Config)
	assert.Equal(t, 2, m.Applied)

	rc, _ := base.Linter.Rules.Rule("suspicious", "noDebugger")
	assert.Equal(t, config.RuleError, rc.Level)
	rc, _ = base.Linter.Rules.Rule("style", "useConst")
	assert.Equal(t, config.RuleWarn, rc.Level)
	rc, _ = base.Linter.Rules.Rule("style", "noVar")
	assert.Equal(t, config.RuleOff, rc.Level)
}

func TestFromESLintConfig_Eslintrc(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := writeFile(t, dir, ".eslintrc", "rules:\n  no-debugger: off\n")
	m, err := migrate.FromESLintConfig(yamlPath, nil, migrate.Options{})
	require.NoError(t, err)
	rc, _ := m.Config.Linter.Rules.Rule("suspicious", "noDebugger")
	assert.Equal(t, config.RuleOff, rc.Level)

	pkgPath := writeFile(t, dir, "package.json", `{"name": "x", "eslintConfig": {"rules": {"no-var": "error"}}}`)
	m, err = migrate.FromESLintConfig(pkgPath, nil, migrate.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Applied)
}

func TestFromESLintConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsPath := writeFile(t, dir, "eslint.config.js", "export default [];\n")
	_, err := migrate.FromESLintConfig(jsPath, nil, migrate.Options{})
	require.ErrorIs(t, err, migrate.ErrJavaScriptConfig)

	pkgPath := writeFile(t, dir, "package.json", `{"name": "x"}`)
	_, err = migrate.FromESLintConfig(pkgPath, nil, migrate.Options{})
	require.ErrorIs(t, err, migrate.ErrNoESLintConfig)

	_, err = migrate.FromESLintConfig(filepath.Join(dir, "missing.json"), nil, migrate.Options{})
	require.Error(t, err)

	badPath := writeFile(t, dir, ".eslintrc.json", `{"rules": }`)
	_, err = migrate.FromESLintConfig(badPath, nil, migrate.Options{})
	require.Error(t, err)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := migrate.Discover(dir)
	require.ErrorIs(t, err, migrate.ErrNoESLintConfig)

	writeFile(t, dir, "package.json", `{"name": "x"}`)
	_, err = migrate.Discover(dir)
	require.ErrorIs(t, err, migrate.ErrNoESLintConfig)

	writeFile(t, dir, "eslint.config.mjs", "export default [];\n")
	_, err = migrate.Discover(dir)
	require.ErrorIs(t, err, migrate.ErrJavaScriptConfig)

	want := writeFile(t, dir, ".eslintrc.yml", "rules: {}\n")
	got, err := migrate.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
