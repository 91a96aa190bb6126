package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/reporter"
	"github.com/yaklabco/gobiome/pkg/runner"
	"github.com/yaklabco/gobiome/pkg/text"
	"github.com/yaklabco/gobiome/pkg/workspace"
)

const debuggerCategory = "lint/suspicious/noDebugger"

// debuggerResult builds a run over one file holding n debugger statements,
// each reported as an error.
func debuggerResult(n int) *runner.Result {
	const line = "debugger;\n"
	src := strings.Repeat(line, n)

	diags := make([]diagnostic.Diagnostic, 0, n)
	for i := range n {
		start := i * len(line)
		d := diagnostic.New(debuggerCategory, diagnostic.SeverityError,
			text.NewRange(start, start+len("debugger;")),
			"This is an unexpected use of the debugger statement.").
			WithPath("a.js").
			WithTag(diagnostic.TagFixable)
		d.Location.Start = text.Position{Line: i + 1, Column: 1}
		d.Location.End = text.Position{Line: i + 1, Column: 10}
		diags = append(diags, d)
	}

	return resultOf(runner.FileOutcome{
		Path: "/work/a.js",
		Result: &workspace.FileResult{
			Path:        "a.js",
			Diagnostics: diags,
			Original:    src,
			Output:      src,
		},
	})
}

// resultOf assembles a runner.Result and its statistics from outcomes.
func resultOf(outcomes ...runner.FileOutcome) *runner.Result {
	result := &runner.Result{
		Files: outcomes,
		Stats: runner.Stats{DiagnosticsBySeverity: make(map[diagnostic.Severity]int)},
	}
	for _, o := range outcomes {
		result.Stats.FilesDiscovered++
		if o.Error != nil {
			result.Stats.FilesErrored++
			continue
		}
		result.Stats.FilesProcessed++
		if o.Result.Changed {
			result.Stats.FilesChanged++
		}
		if o.Written {
			result.Stats.FilesModified++
		}
		if len(o.Result.Diagnostics) > 0 {
			result.Stats.FilesWithIssues++
		}
		for _, d := range o.Result.Diagnostics {
			result.Stats.DiagnosticsTotal++
			if d.HasTag(diagnostic.TagFixable) {
				result.Stats.DiagnosticsFixable++
				if d.HasTag(diagnostic.TagUnsafeFix) {
					result.Stats.DiagnosticsUnsafeFixable++
				}
			}
			result.Stats.DiagnosticsBySeverity[d.Severity]++
		}
	}
	return result
}

func render(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	printed, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), printed
}

func TestTextReporter_MaxDiagnostics(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.MaxDiagnostics = 10

	out, printed := render(t, opts, debuggerResult(40))

	assert.Equal(t, 10, printed)
	assert.Equal(t, 10, strings.Count(out, debuggerCategory))
	assert.Contains(t, out, "30 diagnostics omitted (showing the first 10; use --max-diagnostics to show more)")
	assert.Contains(t, out, "Found 40 errors.")
}

func TestTextReporter_Unlimited(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.MaxDiagnostics = 0

	out, printed := render(t, opts, debuggerResult(25))

	assert.Equal(t, 25, printed)
	assert.NotContains(t, out, "omitted")
}

func TestTextReporter_SourceContext(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.DefaultOptions(), debuggerResult(1))

	assert.Contains(t, out, "a.js:1:1 "+debuggerCategory+" FIXABLE")
	assert.Contains(t, out, "> 1 │ debugger;")
	assert.Contains(t, out, "^^^^^^^^^")

	opts := reporter.DefaultOptions()
	opts.ShowContext = false
	out, _ = render(t, opts, debuggerResult(1))
	assert.NotContains(t, out, "│")
}

func TestTextReporter_Failures(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.WorkingDir = "/work"
	out, printed := render(t, opts, resultOf(runner.FileOutcome{
		Path:  "/work/src/broken.js",
		Error: errors.New("permission denied"),
	}))

	assert.Zero(t, printed)
	assert.Contains(t, out, "src/broken.js internalError/io")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "Could not process 1 file.")
}

func TestTextReporter_DiagnosticLevel(t *testing.T) {
	t.Parallel()

	warn := diagnostic.New("lint/style/noVar", diagnostic.SeverityWarning, text.NewRange(0, 3),
		"Use let or const instead of var.").WithPath("b.js")
	info := diagnostic.New("lint/suspicious/noConsole", diagnostic.SeverityInformation, text.NewRange(0, 3),
		"Don't use console.").WithPath("b.js")
	result := resultOf(runner.FileOutcome{
		Path: "/work/b.js",
		Result: &workspace.FileResult{
			Path:        "b.js",
			Diagnostics: []diagnostic.Diagnostic{warn, info},
			Original:    "var a = console.log(1);\n",
			Output:      "var a = console.log(1);\n",
		},
	})

	opts := reporter.DefaultOptions()
	opts.Level = diagnostic.SeverityWarning
	out, printed := render(t, opts, result)

	assert.Equal(t, 1, printed)
	assert.Contains(t, out, "lint/style/noVar")
	assert.NotContains(t, out, "lint/suspicious/noConsole")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = config.FormatJSON
	opts.Command = "lint"
	opts.MaxDiagnostics = 10

	out, printed := render(t, opts, debuggerResult(40))
	assert.Equal(t, 10, printed)
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact JSON is a single line")

	var doc reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "lint", doc.Command)
	want := reporter.JSONSummary{
		Unchanged:             1,
		Errors:                40,
		Fixable:               40,
		DiagnosticsNotPrinted: 30,
	}
	if diff := cmp.Diff(want, doc.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, doc.Diagnostics, 10)
	first := doc.Diagnostics[0]
	assert.Equal(t, debuggerCategory, first.Category)
	assert.Equal(t, "error", first.Severity)
	assert.Equal(t, "suspicious/noDebugger", first.Source)
	assert.Equal(t, reporter.JSONLocation{Path: "a.js", Range: [2]int{0, 9}, Line: 1, Column: 1}, first.Location)
	assert.Equal(t, []string{"fixable"}, first.Tags)
	assert.Equal(t, [2]int{10, 19}, doc.Diagnostics[1].Location.Range)
}

func TestJSONReporter_Pretty(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = config.FormatJSONPretty

	out, _ := render(t, opts, debuggerResult(1))
	assert.Contains(t, out, "\n  \"summary\": {")

	var doc reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Diagnostics, 1)
}

func TestJSONReporter_EmptyDiagnosticsArray(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = config.FormatJSON

	out, _ := render(t, opts, resultOf(runner.FileOutcome{
		Path:   "/work/c.js",
		Result: &workspace.FileResult{Path: "c.js", Original: "a;\n", Output: "a;\n"},
	}))
	assert.Contains(t, out, `"diagnostics":[]`)
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = config.FormatSARIF
	opts.Version = "1.2.3"

	out, _ := render(t, opts, debuggerResult(2))

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "gobiome", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, debuggerCategory, run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "suspicious/noDebugger", run.Tool.Driver.Rules[0].Properties["source"])

	require.Len(t, run.Results, 2)
	res := run.Results[1]
	assert.Equal(t, "error", res.Level)
	region := res.Locations[0].PhysicalLocation.Region
	assert.Equal(t, reporter.SARIFRegion{
		StartLine:   2,
		StartColumn: 1,
		EndLine:     2,
		EndColumn:   10,
		ByteOffset:  10,
		ByteLength:  9,
	}, region)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = config.FormatDiff

	out, _ := render(t, opts, resultOf(
		runner.FileOutcome{
			Path: "/work/a.js",
			Result: &workspace.FileResult{
				Path:     "a.js",
				Original: "var a = 1\n",
				Output:   "let a = 1\n",
				Changed:  true,
			},
		},
		runner.FileOutcome{
			Path:   "/work/b.js",
			Result: &workspace.FileResult{Path: "b.js", Original: "b;\n", Output: "b;\n"},
		},
	))

	assert.Contains(t, out, "diff --git a/a.js b/a.js\n--- a/a.js\n+++ b/a.js\n")
	assert.Contains(t, out, "-var a = 1\n+let a = 1\n")
	assert.NotContains(t, out, "b.js")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = config.FormatTable
	opts.MaxDiagnostics = 3

	out, printed := render(t, opts, debuggerResult(5))
	assert.Equal(t, 3, printed)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "2 diagnostics omitted")
	assert.Contains(t, out, "1 files checked | 5 errors")

	out, _ = render(t, opts, resultOf(runner.FileOutcome{
		Path:   "/work/c.js",
		Result: &workspace.FileResult{Path: "c.js", Original: "a;\n", Output: "a;\n"},
	}))
	assert.Contains(t, out, "All files passed!")
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.Format = config.FormatSummary

	out, _ := render(t, opts, debuggerResult(3))
	assert.Contains(t, out, "Categories")
	assert.Contains(t, out, debuggerCategory)
	assert.Contains(t, out, "Files")
	assert.Contains(t, out, "a.js")
	assert.Contains(t, out, "Check failed with errors")
	assert.NotContains(t, out, "debugger;")
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported reporter")
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{input: "", want: config.FormatDefault},
		{input: "text", want: config.FormatDefault},
		{input: "default", want: config.FormatDefault},
		{input: "json", want: config.FormatJSON},
		{input: "json-pretty", want: config.FormatJSONPretty},
		{input: "sarif", want: config.FormatSARIF},
		{input: "diff", want: config.FormatDiff},
		{input: "table", want: config.FormatTable},
		{input: "summary", want: config.FormatSummary},
		{input: "junit", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Format:          config.FormatJSON,
		MaxDiagnostics:  5,
		DiagnosticLevel: config.RuleWarn,
	}
	opts := reporter.OptionsFromConfig(cfg)

	assert.Equal(t, config.FormatJSON, opts.Format)
	assert.Equal(t, 5, opts.MaxDiagnostics)
	assert.Equal(t, diagnostic.SeverityWarning, opts.Level)
	assert.True(t, opts.ShowSummary)

	assert.Equal(t, reporter.DefaultOptions().MaxDiagnostics, reporter.OptionsFromConfig(nil).MaxDiagnostics)
}
