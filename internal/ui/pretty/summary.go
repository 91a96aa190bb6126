package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatOmitted formats the notice for diagnostics hidden by the
// --max-diagnostics cap.
func (s *Styles) FormatOmitted(omitted, limit int) string {
	if omitted <= 0 {
		return ""
	}
	return s.Warning.Render(fmt.Sprintf("%d %s omitted", omitted, plural(omitted, "diagnostic", "diagnostics"))) +
		s.Dim.Render(fmt.Sprintf(" (showing the first %d; use --max-diagnostics to show more)", limit)) + "\n"
}

// FormatSummaryOneLine formats run statistics as a few short lines, for
// example "Checked 3 files. Fixed 1 file." followed by "Found 2 errors.".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Checked %d %s.", stats.FilesProcessed,
		plural(stats.FilesProcessed, wordFile, wordFiles)))
	if stats.FilesModified > 0 {
		builder.WriteString(" " + s.Success.Render(fmt.Sprintf("Fixed %d %s.", stats.FilesModified,
			plural(stats.FilesModified, wordFile, wordFiles))))
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString(" " + s.Dim.Render(fmt.Sprintf("Skipped %d %s.", stats.FilesSkipped,
			plural(stats.FilesSkipped, wordFile, wordFiles))))
	}
	builder.WriteString("\n")

	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		builder.WriteString(s.Success.Render("No issues found.") + "\n")
		return builder.String()
	}

	if n := stats.FilesErrored; n > 0 {
		builder.WriteString(s.Failure.Render(fmt.Sprintf("Could not process %d %s.", n, plural(n, wordFile, wordFiles))) + "\n")
	}
	if n := stats.DiagnosticsBySeverity[diagnostic.SeverityError] + stats.DiagnosticsBySeverity[diagnostic.SeverityFatal]; n > 0 {
		builder.WriteString(s.Error.Render(fmt.Sprintf("Found %d %s.", n, plural(n, "error", "errors"))) + "\n")
	}
	if n := stats.DiagnosticsBySeverity[diagnostic.SeverityWarning]; n > 0 {
		builder.WriteString(s.Warning.Render(fmt.Sprintf("Found %d %s.", n, plural(n, "warning", "warnings"))) + "\n")
	}
	if n := stats.DiagnosticsBySeverity[diagnostic.SeverityInformation] + stats.DiagnosticsBySeverity[diagnostic.SeverityHint]; n > 0 {
		builder.WriteString(s.Info.Render(fmt.Sprintf("Found %d %s.", n, plural(n, "info", "infos"))) + "\n")
	}
	if n := stats.DiagnosticsFixable - stats.DiagnosticsUnsafeFixable; n > 0 && stats.FilesModified == 0 {
		builder.WriteString(s.Dim.Render(fmt.Sprintf("%d fixable; run with --write to apply safe fixes.", n)) + "\n")
	}
	if n := stats.DiagnosticsUnsafeFixable; n > 0 {
		builder.WriteString(s.Dim.Render(fmt.Sprintf("%d fixable with unsafe fixes; run with --write --unsafe to apply them.",
			n)) + "\n")
	}
	return builder.String()
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}

	if stats.FilesModified > 0 {
		builder.WriteString("  Files modified:    " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	errors := stats.DiagnosticsBySeverity[diagnostic.SeverityError] + stats.DiagnosticsBySeverity[diagnostic.SeverityFatal]
	if errors > 0 {
		builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(errors)) + "\n")
	}
	warnings := stats.DiagnosticsBySeverity[diagnostic.SeverityWarning]
	if warnings > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}
	if infos := stats.DiagnosticsBySeverity[diagnostic.SeverityInformation]; infos > 0 {
		builder.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(infos)) + "\n")
	}
	if stats.DiagnosticsFixable > 0 {
		builder.WriteString("    Fixable:         " + s.Fixable.Render(strconv.Itoa(stats.DiagnosticsFixable)) + "\n")
	}
	if stats.DiagnosticsUnsafeFixable > 0 {
		builder.WriteString("    Unsafe fixes:    " + s.Fixable.Render(strconv.Itoa(stats.DiagnosticsUnsafeFixable)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case errors > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case warnings > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
