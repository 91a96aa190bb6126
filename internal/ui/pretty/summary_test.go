package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gobiome/internal/ui/pretty"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "Checked 1 file.\nNo issues found.\n",
		},
		{
			name: "fixed",
			stats: runner.Stats{
				FilesProcessed: 3,
				FilesModified:  1,
			},
			want: "Checked 3 files. Fixed 1 file.\nNo issues found.\n",
		},
		{
			name: "mixed severities",
			stats: runner.Stats{
				FilesProcessed:     4,
				FilesSkipped:       1,
				DiagnosticsTotal:   6,
				DiagnosticsFixable: 2,
				DiagnosticsBySeverity: map[diagnostic.Severity]int{
					diagnostic.SeverityError:       2,
					diagnostic.SeverityFatal:       1,
					diagnostic.SeverityWarning:     1,
					diagnostic.SeverityInformation: 1,
					diagnostic.SeverityHint:        1,
				},
			},
			want: "Checked 4 files. Skipped 1 file.\nFound 3 errors.\nFound 1 warning.\nFound 2 infos.\n" +
				"2 fixable; run with --write to apply safe fixes.\n",
		},
		{
			name: "unsafe fixes only",
			stats: runner.Stats{
				FilesProcessed:           1,
				DiagnosticsTotal:         40,
				DiagnosticsFixable:       40,
				DiagnosticsUnsafeFixable: 40,
				DiagnosticsBySeverity:    map[diagnostic.Severity]int{diagnostic.SeverityError: 40},
			},
			want: "Checked 1 file.\nFound 40 errors.\n" +
				"40 fixable with unsafe fixes; run with --write --unsafe to apply them.\n",
		},
		{
			name: "safe and unsafe fixes",
			stats: runner.Stats{
				FilesProcessed:           1,
				DiagnosticsTotal:         3,
				DiagnosticsFixable:       3,
				DiagnosticsUnsafeFixable: 1,
				DiagnosticsBySeverity:    map[diagnostic.Severity]int{diagnostic.SeverityWarning: 3},
			},
			want: "Checked 1 file.\nFound 3 warnings.\n2 fixable; run with --write to apply safe fixes.\n" +
				"1 fixable with unsafe fixes; run with --write --unsafe to apply them.\n",
		},
		{
			name:  "errored files",
			stats: runner.Stats{FilesProcessed: 1, FilesErrored: 2},
			want:  "Checked 1 file.\nCould not process 2 files.\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatOmitted(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Empty(t, styles.FormatOmitted(0, 20))
	assert.Equal(t, "30 diagnostics omitted (showing the first 10; use --max-diagnostics to show more)\n",
		styles.FormatOmitted(30, 10))
	assert.True(t, strings.HasPrefix(styles.FormatOmitted(1, 5), "1 diagnostic omitted"))
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		stats    runner.Stats
		contains []string
		excludes []string
	}{
		{
			name: "errors",
			stats: runner.Stats{
				FilesProcessed:   10,
				FilesWithIssues:  3,
				DiagnosticsTotal: 15,
				DiagnosticsBySeverity: map[diagnostic.Severity]int{
					diagnostic.SeverityError:   5,
					diagnostic.SeverityWarning: 10,
				},
			},
			contains: []string{"Summary", "Files checked:     10", "Files with issues: 3", "Total issues:      15",
				"Errors:          5", "Warnings:        10", "Check failed with errors"},
		},
		{
			name: "warnings only",
			stats: runner.Stats{
				FilesProcessed:        2,
				DiagnosticsTotal:      5,
				DiagnosticsFixable:    5,
				DiagnosticsBySeverity: map[diagnostic.Severity]int{diagnostic.SeverityWarning: 5},
			},
			contains: []string{"Fixable:         5", "Check completed with warnings"},
			excludes: []string{"Errors:"},
		},
		{
			name:     "clean",
			stats:    runner.Stats{FilesProcessed: 5, FilesModified: 2},
			contains: []string{"Files modified:    2", "Check passed"},
			excludes: []string{"Files with issues:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := styles.FormatSummary(tt.stats)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}
