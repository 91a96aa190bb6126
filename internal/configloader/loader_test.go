package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/yaklabco/gobiome/pkg/analyzer/rules" // Register rules
	"github.com/yaklabco/gobiome/pkg/config"
)

// newProject creates a directory that is its own VCS root, so that
// discovery never leaves it.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolated(dir string) LoadOptions {
	return LoadOptions{WorkingDir: dir, IgnoreUserConfig: true, IgnoreEnv: true}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProject(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	cfg := result.Config
	assert.Equal(t, config.FormatDefault, cfg.Format)
	assert.Equal(t, config.DefaultMaxDiagnostics, cfg.MaxDiagnostics)
	assert.Equal(t, config.RuleInfo, cfg.DiagnosticLevel)
	assert.True(t, cfg.LinterEnabled())
	assert.True(t, cfg.FormatterEnabled())
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfigJSONC(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	path := writeFile(t, dir, "biome.jsonc", `{
  // Project settings.
  "formatter": { "indentStyle": "space", "lineWidth": 100 },
  "linter": {
    "rules": {
      "style": { "noVar": "off" },
      "suspicious": { "noConsole": { "level": "warn", "options": { "allow": ["error"] } } },
    },
  },
}
`)
	sub := filepath.Join(dir, "src", "app")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, []string{path}, result.LoadedFrom)

	cfg := result.Config
	assert.Equal(t, config.IndentSpace, cfg.Formatter.IndentStyle)
	assert.Equal(t, 100, cfg.Formatter.LineWidth)

	rc, ok := cfg.Linter.Rules.Rule("style", "noVar")
	require.True(t, ok)
	assert.Equal(t, config.RuleOff, rc.Level)

	rc, ok = cfg.Linter.Rules.Rule("suspicious", "noConsole")
	require.True(t, ok)
	assert.Equal(t, config.RuleWarn, rc.Level)
	assert.Equal(t, []any{"error"}, rc.Options["allow"])
}

func TestLoad_PrefersBiomeJSON(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	want := writeFile(t, dir, "biome.json", `{"formatter": {"lineWidth": 90}}`)
	writeFile(t, dir, "biome.jsonc", `{"formatter": {"lineWidth": 70}}`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, want, result.Paths.Project)
	assert.Equal(t, 90, result.Config.Formatter.LineWidth)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	writeFile(t, parent, "biome.json", `{}`)
	repo := filepath.Join(parent, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	found, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLoad_SchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantLine int
		contains string
	}{
		{
			name: "wrong type",
			content: `{
  // comment
  "linter": {
    "enabled": "yes"
  }
}`,
			wantLine: 4,
			contains: "linter.enabled",
		},
		{
			name: "unknown section",
			content: `{
  "lintr": {}
}`,
			wantLine: 2,
			contains: "lintr",
		},
		{
			name: "invalid rule level",
			content: `{
  "linter": {
    "rules": {
      "style": {
        "noVar": "fatal"
      }
    }
  }
}`,
			wantLine: 5,
			contains: "noVar",
		},
		{
			name:     "line width out of range",
			content:  `{"formatter": {"lineWidth": 1000}}`,
			wantLine: 1,
			contains: "lineWidth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			path := writeFile(t, dir, "biome.json", tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %T: %v", err, err)
			assert.Equal(t, path, verr.FilePath)
			assert.Equal(t, tt.wantLine, verr.Line)
			assert.Contains(t, verr.Error(), tt.contains)
		})
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	path := writeFile(t, dir, "biome.json", "{\n  \"linter\": {\n    \"enabled\": true\n  \n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, path, verr.FilePath)
	assert.Positive(t, verr.Line)
}

func TestLoad_RuleWarnings(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, dir, "biome.json", `{
  "linter": {
    "rules": {
      "style": { "noSuchRule": "error", "noDebugger": "off" },
      "stylish": { "noVar": "off" }
    }
  },
  "assist": { "actions": { "source": { "sortEverything": "on" } } }
}`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 4)
	assert.Contains(t, result.Warnings[0], `rule "noDebugger" belongs to group "suspicious"`)
	assert.Contains(t, result.Warnings[1], `unknown rule "noSuchRule"`)
	assert.Contains(t, result.Warnings[2], `unknown rule group "stylish"`)
	assert.Contains(t, result.Warnings[3], `unknown assist action "sortEverything"`)
}

func TestLoad_Extends(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	base := writeFile(t, dir, "configs/base.json", `{
  "formatter": { "lineWidth": 120, "indentStyle": "space" },
  "linter": { "rules": { "style": { "noVar": "off", "useConst": "error" } } }
}`)
	project := writeFile(t, dir, "biome.json", `{
  "extends": ["./configs/base.json"],
  "formatter": { "indentStyle": "tab" },
  "linter": { "rules": { "style": { "noVar": "warn" } } }
}`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{base, project}, result.LoadedFrom)

	cfg := result.Config
	assert.Equal(t, 120, cfg.Formatter.LineWidth)
	assert.Equal(t, config.IndentTab, cfg.Formatter.IndentStyle)

	rc, _ := cfg.Linter.Rules.Rule("style", "noVar")
	assert.Equal(t, config.RuleWarn, rc.Level)
	rc, _ = cfg.Linter.Rules.Rule("style", "useConst")
	assert.Equal(t, config.RuleError, rc.Level)
}

func TestLoad_ExtendsCycle(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, dir, "a.json", `{"extends": ["./biome.json"]}`)
	writeFile(t, dir, "biome.json", `{"extends": ["./a.json"]}`)

	_, err := Load(context.Background(), isolated(dir))
	require.ErrorIs(t, err, ErrExtendsCycle)
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, dir, "biome.json", `{"formatter": {"lineWidth": 90}}`)
	explicit := writeFile(t, dir, "ci/biome.json", `{"formatter": {"lineWidth": 60}}`)

	opts := isolated(dir)
	opts.ExplicitPath = "ci"
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, explicit, result.Paths.Explicit)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
	assert.Equal(t, 60, result.Config.Formatter.LineWidth)

	opts.ExplicitPath = filepath.Join(dir, "missing")
	_, err = Load(context.Background(), opts)
	require.Error(t, err)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0o755))
	opts.ExplicitPath = "empty"
	_, err = Load(context.Background(), opts)
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, dir, "biome.json", `{
  "vcs": { "enabled": false, "clientKind": "git" },
  "formatter": { "lineWidth": 90 }
}`)

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Format: config.FormatJSON,
		Write:  true,
		VCS:    config.VCS{Enabled: config.Bool(true)},
		Only:   []string{"suspicious"},
	}
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.True(t, cfg.Write)
	assert.True(t, cfg.VCSEnabled())
	assert.Equal(t, "git", cfg.VCS.ClientKind)
	assert.Equal(t, 90, cfg.Formatter.LineWidth)
	assert.Equal(t, []string{"suspicious"}, cfg.Only)
}

func TestLoad_InvalidCLIValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cli  *config.Config
		want string
	}{
		{name: "reporter", cli: &config.Config{Format: "xml"}, want: "invalid reporter"},
		{name: "changed and staged", cli: &config.Config{Changed: true, Staged: true}, want: "cannot be used together"},
		{name: "unknown only", cli: &config.Config{Only: []string{"noSuchRule"}}, want: "unknown rule or group"},
		{name: "jobs", cli: &config.Config{Jobs: -2}, want: "threads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolated(newProject(t))
			opts.CLIConfig = tt.cli
			_, err := Load(context.Background(), opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_SuggestsESLintMigration(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, dir, ".eslintrc.json", `{"rules": {"no-debugger": "error"}}`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "found .eslintrc.json but no biome.json")

	writeFile(t, dir, "biome.json", `{}`)
	result, err = Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestLoad_Environment(t *testing.T) {
	dir := newProject(t)
	writeFile(t, dir, "biome.json", `{"files": {"maxSize": 1000}}`)
	explicit := writeFile(t, dir, "other/biome.json", `{"formatter": {"lineWidth": 70}}`)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BIOME_MAX_DIAGNOSTICS", "5")
	t.Setenv("BIOME_FILES_MAX_SIZE", "2MiB")
	t.Setenv("BIOME_VCS_ENABLED", "true")
	t.Setenv("BIOME_SKIP", "style, suspicious/noDebugger")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 5, cfg.MaxDiagnostics)
	assert.Equal(t, int64(2<<20), cfg.Files.MaxSize)
	assert.True(t, cfg.VCSEnabled())
	assert.Equal(t, []string{"style", "suspicious/noDebugger"}, cfg.Skip)

	// Flags win over the environment.
	result, err = Load(context.Background(), LoadOptions{
		WorkingDir: dir,
		CLIConfig:  &config.Config{MaxDiagnostics: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, result.Config.MaxDiagnostics)

	t.Setenv(EnvConfigPath, explicit)
	result, err = Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 70, result.Config.Formatter.LineWidth)
	assert.Equal(t, int64(2<<20), result.Config.Files.MaxSize)
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	user := writeFile(t, xdg, "biome/biome.json", `{"formatter": {"lineWidth": 100, "indentStyle": "space"}}`)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := newProject(t)
	project := writeFile(t, dir, "biome.json", `{"formatter": {"lineWidth": 80}}`)

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, []string{user, project}, result.LoadedFrom)
	assert.Equal(t, 80, result.Config.Formatter.LineWidth)
	assert.Equal(t, config.IndentSpace, result.Config.Formatter.IndentStyle)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "biome.json", `{"javascript": {"globals": ["jQuery"]}}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"jQuery"}, cfg.JavaScript.Globals)
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "biome.json")
	require.NoError(t, WriteConfig(config.DefaultConfig(), path))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.LinterEnabled())
	assert.Equal(t, config.SchemaURL, cfg.Schema)
	assert.Equal(t, config.RuleOn, cfg.Assist.Actions.Source["organizeImports"].Level)
}
