package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/internal/cli"
	"github.com/yaklabco/gobiome/internal/configloader"
	"github.com/yaklabco/gobiome/pkg/config"
)

var testInfo = cli.BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-01-02"}

// newProject creates a repository root holding files.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// execute runs the root command in dir with stdin as standard input.
func execute(t *testing.T, dir, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--working-directory", dir, "--color", "never"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	assert.Equal(t, "gobiome", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"check", "lint", "format", "migrate", "rules", "explain", "init", "version"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config-path", "color", "log-level", "log-kind", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	tests := []struct {
		command string
		has     []string
		lacks   []string
	}{
		{"check", []string{"write", "fix", "unsafe", "only", "skip", "reporter", "formatter-enabled", "linter-enabled"}, []string{"line-width"}},
		{"lint", []string{"write", "unsafe", "only", "skip", "stdin-file-path", "changed", "staged"}, []string{"formatter-enabled"}},
		{"format", []string{"write", "line-width", "indent-style", "formatter-enabled"}, []string{"unsafe", "only"}},
	}
	for _, tt := range tests {
		sub, _, err := cmd.Find([]string{tt.command})
		require.NoError(t, err)
		for _, name := range tt.has {
			assert.NotNil(t, sub.Flags().Lookup(name), "%s --%s", tt.command, name)
		}
		for _, name := range tt.lacks {
			assert.Nil(t, sub.Flags().Lookup(name), "%s --%s", tt.command, name)
		}
	}
}

func TestRootCommand_InvalidGlobalFlags(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": "let a = 1;\n"})
	_, _, err := execute(t, dir, "", "lint", "--log-level", "loud")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, _, err = execute(t, dir, "", "lint", "--color", "sometimes")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, _, err = execute(t, dir, "", "lint", "--log-kind", "xml")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestRootCommand_LogKind(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": "let a = 1;\nconsole.log(a);\n"})
	_, stderr, err := execute(t, dir, "", "lint", "--log-level", "debug", "--log-kind", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)), line)
	}
	assert.Contains(t, stderr, `"path":"a.js"`)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "gobiome")
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abc1234")
}

const debuggerSource = "let a = 4;\ndebugger;\nconsole.log(a);\n"

func TestLint_ReportsDiagnostics(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"src/a.js": debuggerSource})
	stdout, _, err := execute(t, dir, "", "lint")

	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrDiagnosticsFound))
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
	assert.Contains(t, stdout, "lint/suspicious/noDebugger")
	assert.Contains(t, stdout, "src/a.js")
	assert.Equal(t, debuggerSource, readFile(t, dir, "src/a.js"))
}

func TestLint_Skip(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": debuggerSource})
	stdout, _, err := execute(t, dir, "", "lint", "--skip", "suspicious/noDebugger")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "noDebugger")
}

func TestCheck_Write(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": "(1 >= -0)\n"})
	_, _, err := execute(t, dir, "", "check", "--write")
	require.NoError(t, err)
	assert.Equal(t, "1 >= 0;\n", readFile(t, dir, "a.js"))
}

func TestCheck_UnsafeFixes(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": debuggerSource})

	_, _, err := execute(t, dir, "", "check", "--write")
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
	assert.Equal(t, debuggerSource, readFile(t, dir, "a.js"))

	_, _, err = execute(t, dir, "", "check", "--write", "--unsafe")
	require.NoError(t, err)
	assert.Equal(t, "let a = 4;\nconsole.log(a);\n", readFile(t, dir, "a.js"))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": "(1 >= -0)\n"})

	stdout, _, err := execute(t, dir, "", "format")
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
	assert.Contains(t, stdout, "format")
	assert.Equal(t, "(1 >= -0)\n", readFile(t, dir, "a.js"))

	_, _, err = execute(t, dir, "", "format", "--write")
	require.NoError(t, err)
	assert.Equal(t, "1 >= -0;\n", readFile(t, dir, "a.js"))
}

func TestLint_JSONReporter(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": debuggerSource})
	stdout, _, err := execute(t, dir, "", "lint", "--reporter", "json")
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))

	var out struct {
		Command string `json:"command"`
		Summary struct {
			Errors int `json:"errors"`
		} `json:"summary"`
		Diagnostics []struct {
			Category string `json:"category"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "lint", out.Command)
	assert.Equal(t, 1, out.Summary.Errors)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "lint/suspicious/noDebugger", out.Diagnostics[0].Category)
}

func TestLint_MaxDiagnostics(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": strings.Repeat("debugger;\n", 40)})

	stdout, _, err := execute(t, dir, "", "lint", "--max-diagnostics", "10")
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
	assert.Contains(t, stdout, "30 diagnostics omitted")

	stdout, _, err = execute(t, dir, "", "lint", "--max-diagnostics", "none")
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
	assert.NotContains(t, stdout, "omitted")

	_, _, err = execute(t, dir, "", "lint", "--max-diagnostics", "many")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestLint_ErrorOnWarnings(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		"a.js":       debuggerSource,
		"biome.json": `{"linter": {"rules": {"suspicious": {"noDebugger": "warn"}}}}`,
	})

	stdout, _, err := execute(t, dir, "", "lint")
	require.NoError(t, err)
	assert.Contains(t, stdout, "noDebugger")

	_, _, err = execute(t, dir, "", "lint", "--error-on-warnings")
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))

	stdout, _, err = execute(t, dir, "", "lint", "--diagnostic-level", "error")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "lint/suspicious/noDebugger")
}

func TestLint_ExplicitConfigPath(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		"a.js":          debuggerSource,
		"ci/biome.json": `{"linter": {"rules": {"suspicious": {"noDebugger": "off"}}}}`,
		"biome.json":    `{}`,
	})
	_, _, err := execute(t, dir, "", "lint", "a.js", "--config-path", filepath.Join(dir, "ci"))
	require.NoError(t, err)
}

func TestProcess_InvocationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		args  []string
	}{
		{name: "no files matched", files: map[string]string{"README": "text"}, args: []string{"lint"}},
		{name: "invalid reporter", files: map[string]string{"a.js": "let a;\n"}, args: []string{"lint", "--reporter", "xml"}},
		{name: "invalid config", files: map[string]string{
			"a.js":       "let a;\n",
			"biome.json": `{"linter": {"enabled": "yes"}}`,
		}, args: []string{"lint"}},
		{name: "missing path", files: nil, args: []string{"lint", "missing.js"}},
		{name: "invalid size", files: map[string]string{"a.js": "let a;\n"}, args: []string{"lint", "--files-max-size", "lots"}},
		{name: "changed without vcs", files: map[string]string{"a.js": "let a;\n"}, args: []string{"lint", "--changed"}},
		{name: "changed and staged", files: map[string]string{"a.js": "let a;\n"}, args: []string{
			"lint", "--vcs-enabled", "--changed", "--staged",
		}},
		{name: "unknown rule selector", files: map[string]string{"a.js": "let a;\n"}, args: []string{"lint", "--only", "noSuchRule"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := newProject(t, tt.files)
			_, _, err := execute(t, dir, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
		})
	}
}

func TestProcess_NoErrorsOnUnmatched(t *testing.T) {
	t.Parallel()

	dir := newProject(t, nil)
	_, _, err := execute(t, dir, "", "lint")
	assert.True(t, errors.Is(err, cli.ErrNoFilesMatched))

	_, _, err = execute(t, dir, "", "lint", "--no-errors-on-unmatched")
	require.NoError(t, err)
}

func TestProcess_UnknownExplicitFile(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"notes.txt": "hello"})
	stdout, _, err := execute(t, dir, "", "lint", "notes.txt")
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
	assert.Contains(t, stdout, "notes.txt")
}

func TestProcess_FilesMaxSize(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": strings.Repeat("let a = 1;\n", 10)})
	stdout, _, err := execute(t, dir, "", "lint", "--files-max-size", "10B")
	require.NoError(t, err)
	assert.Contains(t, stdout, "files/tooLarge")
}

func TestStdin(t *testing.T) {
	t.Parallel()

	dir := newProject(t, nil)

	t.Run("format prints the formatted content", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := execute(t, dir, "(1 >= -0)\n", "format", "--stdin-file-path", "a.js")
		require.NoError(t, err)
		assert.Equal(t, "1 >= -0;\n", stdout)
	})

	t.Run("lint prints diagnostics", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := execute(t, dir, "debugger;\n", "lint", "--stdin-file-path", "a.js")
		assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
		assert.Contains(t, stdout, "lint/suspicious/noDebugger")
	})

	t.Run("check with write prints the fixed content", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := execute(t, dir, "(1 >= -0)\n", "check", "--write", "--stdin-file-path", "a.js")
		require.NoError(t, err)
		assert.Equal(t, "1 >= 0;\n", stdout)
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, dir, "hello", "format", "--stdin-file-path", "notes.unknown")
		assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	})

	t.Run("paths are rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, dir, "", "format", "--stdin-file-path", "a.js", "b.js")
		assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	})
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	dir := newProject(t, nil)

	_, _, err := execute(t, dir, "", "init")
	require.NoError(t, err)
	cfg, err := configloader.LoadFile(filepath.Join(dir, "biome.json"))
	require.NoError(t, err)
	assert.True(t, cfg.LinterEnabled())

	_, _, err = execute(t, dir, "", "init")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, _, err = execute(t, dir, "", "init", "--force", "--full")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, dir, "biome.json"), "noDebugger")

	_, _, err = execute(t, dir, "", "init", "--jsonc")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "biome.jsonc"))
}

func TestMigrateESLint(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		".eslintrc.json": `{"rules": {"no-debugger": "warn", "no-var": "error", "no-such-thing": "error"}}`,
	})

	stdout, _, err := execute(t, dir, "", "migrate", "eslint")
	require.NoError(t, err)
	assert.Contains(t, stdout, "+++")
	assert.Contains(t, stdout, "noDebugger")
	assert.NoFileExists(t, filepath.Join(dir, "biome.json"))

	_, _, err = execute(t, dir, "", "migrate", "eslint", "--write")
	require.NoError(t, err)

	cfg, err := configloader.LoadFile(filepath.Join(dir, "biome.json"))
	require.NoError(t, err)
	rule, ok := cfg.Linter.Rules.Rule("suspicious", "noDebugger")
	require.True(t, ok)
	assert.Equal(t, config.RuleWarn, rule.Level)
	rule, ok = cfg.Linter.Rules.Rule("style", "noVar")
	require.True(t, ok)
	assert.Equal(t, config.RuleError, rule.Level)
}

func TestMigrateESLint_Errors(t *testing.T) {
	t.Parallel()

	dir := newProject(t, nil)
	_, _, err := execute(t, dir, "", "migrate", "eslint")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	dir = newProject(t, map[string]string{"eslint.config.js": "export default [];\n"})
	_, _, err = execute(t, dir, "", "migrate", "eslint")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestExplainCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, t.TempDir(), "", "explain", "noDebugger")
	require.NoError(t, err)
	assert.Contains(t, stdout, "lint/suspicious/noDebugger")
	assert.Contains(t, stdout, "## Examples")
	assert.Contains(t, stdout, "    debugger;")
	assert.Contains(t, stdout, "no-debugger")

	_, _, err = execute(t, t.TempDir(), "", "explain", "noSuchRule")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestHelp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdout, _, err := execute(t, dir, "", "--help")
	require.NoError(t, err)
	for _, want := range []string{"Usage:", "Process files:", "Rules:", "Configuration:", "Other Commands:", "check", "explain", "--config-path"} {
		assert.Contains(t, stdout, want)
	}
	assert.Less(t, strings.Index(stdout, "Process files:"), strings.Index(stdout, "Rules:"))
	for _, want := range []string{"Environment:", "BIOME_CONFIG_PATH", "BIOME_LINE_WIDTH", "Fail the run on warnings"} {
		assert.Contains(t, stdout, want)
	}
	assert.Less(t, strings.Index(stdout, "BIOME_CONFIG_PATH"), strings.Index(stdout, "BIOME_THREADS"))

	stdout, _, err = execute(t, dir, "", "check", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--write")
	assert.Contains(t, stdout, `(default "default")`)
	assert.Contains(t, stdout, "Global Flags:")
	assert.NotContains(t, stdout, "working-directory")
	assert.NotContains(t, stdout, "\x1b[")
	assert.Contains(t, stdout, "[$BIOME_MAX_DIAGNOSTICS]")
	assert.Contains(t, stdout, "[$BIOME_CONFIG_PATH]")
	assert.NotContains(t, stdout, "Environment:")
}
