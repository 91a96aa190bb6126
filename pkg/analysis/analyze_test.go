package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/runner"
	"github.com/yaklabco/gobiome/pkg/text"
	"github.com/yaklabco/gobiome/pkg/workspace"
)

func diag(path, category string, sev diagnostic.Severity, start int) diagnostic.Diagnostic {
	return diagnostic.New(category, sev, text.NewRange(start, start+1), "msg").WithPath(path)
}

func outcome(path string, diags ...diagnostic.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path:   "/work/" + path,
		Result: &workspace.FileResult{Path: path, Diagnostics: diags},
	}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByCategory)

	assert.NotNil(t, Analyze(nil, DefaultOptions()))
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.js",
			diag("a.js", "lint/suspicious/noDebugger", diagnostic.SeverityError, 0),
			diag("a.js", "lint/suspicious/noDebugger", diagnostic.SeverityFatal, 5).WithTag(diagnostic.TagFixable),
			diag("a.js", "lint/style/noVar", diagnostic.SeverityWarning, 9),
		),
		outcome("b.js", diag("b.js", "assist/source/organizeImports", diagnostic.SeverityInformation, 0)),
		outcome("c.js"),
	}}

	report := Analyze(result, Options{})

	want := Totals{Files: 3, FilesWithIssues: 2, Issues: 4, Errors: 2, Warnings: 1, Infos: 1, Fixable: 1}
	assert.Equal(t, want, report.Totals)
	assert.Len(t, report.Diagnostics, 4)
}

func TestAnalyze_GroupsByCategoryAndFile(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.js",
			diag("a.js", "lint/suspicious/noDebugger", diagnostic.SeverityError, 0),
			diag("a.js", "lint/style/noVar", diagnostic.SeverityWarning, 3),
		),
		outcome("b.js",
			diag("b.js", "lint/style/noVar", diagnostic.SeverityWarning, 0).WithTag(diagnostic.TagFixable),
			diag("b.js", "lint/style/noVar", diagnostic.SeverityWarning, 4),
		),
	}}

	report := Analyze(result, DefaultOptions())

	wantCategories := []CategoryAnalysis{
		{Category: "lint/style/noVar", Issues: 3, Warnings: 3, Fixable: true, Files: []string{"a.js", "b.js"}},
		{Category: "lint/suspicious/noDebugger", Issues: 1, Errors: 1, Files: []string{"a.js"}},
	}
	if diff := cmp.Diff(wantCategories, report.ByCategory); diff != "" {
		t.Errorf("ByCategory mismatch (-want +got):\n%s", diff)
	}

	wantFiles := []FileAnalysis{
		{Path: "a.js", Issues: 2, Errors: 1, Warnings: 1,
			Categories: []string{"lint/style/noVar", "lint/suspicious/noDebugger"}},
		{Path: "b.js", Issues: 2, Warnings: 2, Categories: []string{"lint/style/noVar"}},
	}
	if diff := cmp.Diff(wantFiles, report.ByFile); diff != "" {
		t.Errorf("ByFile mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.js",
			diag("a.js", "lint/b", diagnostic.SeverityWarning, 0),
			diag("a.js", "lint/b", diagnostic.SeverityWarning, 1),
			diag("a.js", "lint/c", diagnostic.SeverityError, 2),
			diag("a.js", "lint/a", diagnostic.SeverityInformation, 3),
		),
	}}

	tests := []struct {
		opts Options
		want []string
	}{
		{Options{SortBy: SortByCount, SortDesc: true}, []string{"lint/b", "lint/a", "lint/c"}},
		{Options{SortBy: SortByCount}, []string{"lint/a", "lint/c", "lint/b"}},
		{Options{SortBy: SortByAlpha}, []string{"lint/a", "lint/b", "lint/c"}},
		{Options{SortBy: SortBySeverity}, []string{"lint/c", "lint/b", "lint/a"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s desc=%v", tt.opts.SortBy, tt.opts.SortDesc), func(t *testing.T) {
			t.Parallel()
			var got []string
			for _, c := range Analyze(result, tt.opts).ByCategory {
				got = append(got, c.Category)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_MaxDiagnostics(t *testing.T) {
	t.Parallel()

	var diags []diagnostic.Diagnostic
	for i := range 40 {
		diags = append(diags, diag("a.js", "lint/suspicious/noDebugger", diagnostic.SeverityError, i*10))
	}
	result := &runner.Result{Files: []runner.FileOutcome{outcome("a.js", diags...)}}

	report := Analyze(result, Options{MaxDiagnostics: 10})
	require.Len(t, report.Diagnostics, 10)
	assert.Equal(t, 30, report.Omitted)
	assert.Equal(t, 10, report.Limit)
	// Totals still count what was omitted.
	assert.Equal(t, 40, report.Totals.Issues)
	assert.Equal(t, 0, report.Diagnostics[0].Location.Range.Start)
	assert.Equal(t, 90, report.Diagnostics[9].Location.Range.Start)

	unlimited := Analyze(result, Options{})
	assert.Len(t, unlimited.Diagnostics, 40)
	assert.Zero(t, unlimited.Omitted)
}

func TestAnalyze_LevelAndVerboseFilters(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.js",
			diag("a.js", "lint/a", diagnostic.SeverityInformation, 0),
			diag("a.js", "lint/b", diagnostic.SeverityWarning, 1),
			diag("a.js", "lint/c", diagnostic.SeverityError, 2),
			diag("a.js", "lint/d", diagnostic.SeverityError, 3).WithTag(diagnostic.TagVerbose),
		),
	}}

	report := Analyze(result, Options{Level: diagnostic.SeverityWarning})
	assert.Equal(t, 2, report.Totals.Issues)
	assert.Equal(t, 2, report.Filtered)

	verbose := Analyze(result, Options{Level: diagnostic.SeverityWarning, Verbose: true})
	assert.Equal(t, 3, verbose.Totals.Issues)
	assert.Equal(t, 1, verbose.Filtered)
}

func TestAnalyze_FailuresAndChanges(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/work/src/bad.js", Error: errBoom},
		{Path: "/work/fmt.js", Written: true, Result: &workspace.FileResult{
			Path: "fmt.js", Original: "a\n", Output: "a;\n", Changed: true,
		}},
	}}

	report := Analyze(result, Options{WorkingDir: "/work"})
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "src/bad.js", report.Failures[0].Path)
	require.ErrorIs(t, report.Failures[0].Error, errBoom)
	assert.Equal(t, []Change{{Path: "fmt.js", Original: "a\n", Output: "a;\n", Written: true}}, report.Changes)
}

func TestTotals(t *testing.T) {
	t.Parallel()

	assert.False(t, Totals{}.HasIssues())
	assert.True(t, Totals{Issues: 1}.HasIssues())
	assert.False(t, Totals{Warnings: 3, Issues: 3}.HasErrors())
	assert.True(t, Totals{Errors: 1}.HasErrors())
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []SortField{SortByCount, SortByAlpha, SortBySeverity} {
		assert.True(t, f.IsValid())
	}
	assert.False(t, SortField("random").IsValid())
}
