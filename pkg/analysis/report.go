// Package analysis turns runner results into the views reporters render:
// the diagnostics to print after level filtering and the --max-diagnostics
// cap, and aggregates by file and by category.
package analysis

import (
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/runner"
)

// Report contains pre-computed views of a run.
// Computed once by Analyze, used by all renderers.
type Report struct {
	// Diagnostics holds the diagnostics to print, sorted by file and range.
	Diagnostics []diagnostic.Diagnostic

	// Omitted counts diagnostics dropped by the MaxDiagnostics cap.
	Omitted int

	// Filtered counts diagnostics hidden because of their level or tags.
	Filtered int

	// Limit is the cap that was applied, zero if none.
	Limit int

	// Failures lists files that could not be read, processed or written.
	Failures []Failure

	// Changes lists files whose output differs from their content.
	Changes []Change

	// Sources maps the paths of files with visible diagnostics to the
	// content the diagnostic positions refer to. Files rewritten on disk
	// are left out because their positions predate the final output.
	Sources map[string]string

	// ByFile groups visible diagnostics by file path.
	ByFile []FileAnalysis

	// ByCategory groups visible diagnostics by category.
	ByCategory []CategoryAnalysis

	// Totals counts visible diagnostics, including omitted ones.
	Totals Totals

	// Stats are the runner statistics.
	Stats runner.Stats
}

// Failure is a file that could not be processed.
type Failure struct {
	Path  string
	Error error
}

// Change is a file whose output differs from its content.
type Change struct {
	Path     string
	Original string
	Output   string
	Written  bool
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Fixable         int `json:"fixable"`
	UnsafeFixable   int `json:"unsafeFixable"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path       string   `json:"path"`
	Issues     int      `json:"issues"`
	Errors     int      `json:"errors"`
	Warnings   int      `json:"warnings"`
	Infos      int      `json:"infos"`
	Categories []string `json:"categories,omitempty"`
}

// CategoryAnalysis contains aggregated data for a single category, which
// for lint diagnostics is a rule.
type CategoryAnalysis struct {
	Category string   `json:"category"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
