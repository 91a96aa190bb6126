package runner

import (
	"slices"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/workspace"
)

// FileOutcome is what happened to one file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Result is the pipeline result. It is nil when Error is set.
	Result *workspace.FileResult

	// Written is set when the output was written back to Path.
	Written bool

	// BackupCreated is set when a backup was written before Path.
	BackupCreated bool

	// Error is set if the file could not be read, processed or written.
	Error error
}

// Summary describes the outcome in a few words.
func (o FileOutcome) Summary() string {
	switch {
	case o.Error != nil:
		return "error"
	case o.Result == nil:
		return "ok"
	case o.Result.Cancelled:
		return "cancelled"
	case o.Result.Skipped:
		return "skipped: " + o.Result.SkipReason
	case o.Written && o.BackupCreated:
		return "fixed (backup created)"
	case o.Written:
		return "fixed"
	case o.Result.Changed:
		return "changes pending"
	case len(o.Result.Diagnostics) > 0:
		return "issues found"
	default:
		return "ok"
	}
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files that went through the pipeline.
	FilesProcessed int

	// FilesSkipped counts files that were too large or changed on disk
	// while they were processed.
	FilesSkipped int

	// FilesErrored counts files that could not be read, processed or written.
	FilesErrored int

	// FilesCancelled counts files abandoned because the run was cancelled.
	FilesCancelled int

	DiagnosticsTotal   int
	DiagnosticsFixable int

	// DiagnosticsUnsafeFixable counts the fixable diagnostics whose fix is
	// unsafe. They are included in DiagnosticsFixable.
	DiagnosticsUnsafeFixable int

	// DiagnosticsBySeverity maps severities to counts.
	DiagnosticsBySeverity map[diagnostic.Severity]int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// FilesChanged counts files whose output differs from their content,
	// written or not.
	FilesChanged int

	// FilesModified counts files written back to disk.
	FilesModified int

	// FixesApplied is the number of code actions applied over all files.
	FixesApplied int
}

// Result is the overall runner result.
type Result struct {
	// Files contains one outcome per discovered file, ordered by path.
	Files []FileOutcome

	Stats Stats
}

// Count returns the number of diagnostics at sev.
func (r *Result) Count(sev diagnostic.Severity) int {
	if r == nil {
		return 0
	}
	return r.Stats.DiagnosticsBySeverity[sev]
}

// HasFailures reports whether any diagnostic is an error or worse, or any
// file errored.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 ||
		r.Count(diagnostic.SeverityError) > 0 ||
		r.Count(diagnostic.SeverityFatal) > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns the diagnostics of every file, sorted by file, range
// and category.
func (r *Result) Diagnostics() []diagnostic.Diagnostic {
	if r == nil {
		return nil
	}
	var out []diagnostic.Diagnostic
	for _, f := range r.Files {
		if f.Result != nil {
			out = append(out, f.Result.Diagnostics...)
		}
	}
	slices.SortStableFunc(out, diagnostic.Compare)
	return out
}

// NewResult builds a Result from outcomes produced outside of Run, such as
// content read from stdin.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[diagnostic.Severity]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}
	if res.Cancelled {
		r.Stats.FilesCancelled++
		return
	}

	r.Stats.FilesProcessed++
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesModified++
	}
	r.Stats.FixesApplied += res.FixesApplied

	if len(res.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, d := range res.Diagnostics {
		r.Stats.DiagnosticsTotal++
		if d.HasTag(diagnostic.TagFixable) {
			r.Stats.DiagnosticsFixable++
			if d.HasTag(diagnostic.TagUnsafeFix) {
				r.Stats.DiagnosticsUnsafeFixable++
			}
		}
		r.Stats.DiagnosticsBySeverity[d.Severity]++
	}
}
