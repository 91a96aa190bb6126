package analysis

import "github.com/yaklabco/gobiome/pkg/diagnostic"

// SortField specifies how to sort the per-file and per-category views.
type SortField string

const (
	// SortByCount sorts by issue count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortBySeverity sorts by severity (errors first).
	SortBySeverity SortField = "severity"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// Level hides diagnostics less severe than it. Empty shows everything.
	Level diagnostic.Severity

	// MaxDiagnostics caps the diagnostics kept in Report.Diagnostics for the
	// whole run. Zero or less keeps all of them.
	MaxDiagnostics int

	// Verbose keeps diagnostics tagged verbose.
	Verbose bool

	// SortBy specifies how to sort ByFile and ByCategory.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory that paths of failed files are made
	// relative to. Diagnostics already carry display paths.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Level:          diagnostic.SeverityInformation,
		MaxDiagnostics: 20,
		SortBy:         SortByCount,
		SortDesc:       true,
	}
}
