package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleRules = []ruleInfo{
	{
		Category:    "lint/suspicious/noDebugger",
		Group:       "suspicious",
		Name:        "noDebugger",
		Recommended: true,
		Severity:    "error",
		Fix:         "unsafe",
		Description: "Disallow the use of debugger.",
		Sources:     []string{"eslint/no-debugger"},
	},
	{
		Category:    "lint/style/noVar",
		Group:       "style",
		Name:        "noVar",
		Severity:    "warning",
		Fix:         "none",
		Description: "Disallow var.",
	},
}

func TestOutputRulesText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputRulesText(&buf, sampleRules))
	lines := strings.Split(buf.String(), "\n")

	assert.True(t, strings.HasPrefix(lines[0], "RULE"))
	assert.Contains(t, lines[1], "✓")
	assert.Contains(t, lines[1], "unsafe")
	assert.Contains(t, lines[2], "-")
	assert.NotContains(t, lines[2], "none")
	// Columns line up.
	assert.Equal(t, strings.Index(lines[0], "DESCRIPTION"), strings.Index(lines[2], "Disallow"))
	assert.Contains(t, buf.String(), "\n2 rules\n")

	buf.Reset()
	require.NoError(t, outputRulesText(&buf, nil))
	assert.Equal(t, "No rules match.\n", buf.String())
}

func TestOutputRulesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputRulesJSON(&buf, sampleRules))

	var got []ruleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(sampleRules, got); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	require.NoError(t, outputRulesJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestOutputRulesYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputRulesYAML(&buf, sampleRules))
	assert.Contains(t, buf.String(), "- category: lint/suspicious/noDebugger\n")

	var got []ruleInfo
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(sampleRules, got); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesCommand(t *testing.T) {
	t.Parallel()

	run := func(args ...string) (string, error) {
		cmd := newRulesCommand()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return buf.String(), err
	}

	out, err := run("--group", "suspicious", "--format", "json")
	require.NoError(t, err)
	var infos []ruleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.NotEmpty(t, infos)
	for _, info := range infos {
		assert.Equal(t, "suspicious", info.Group)
	}

	out, err = run("--recommended")
	require.NoError(t, err)
	assert.Contains(t, out, "lint/suspicious/noDebugger")

	out, err = run("--group", "nosuchgroup")
	require.NoError(t, err)
	assert.Equal(t, "No rules match.\n", out)

	_, err = run("--format", "xml")
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestParseMaxDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "20", want: 20},
		{value: "0", want: 0},
		{value: "none", want: 0},
		{value: "-1", wantErr: true},
		{value: "lots", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseMaxDiagnostics(tt.value)
		if tt.wantErr {
			assert.Error(t, err, tt.value)
			continue
		}
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}
}
