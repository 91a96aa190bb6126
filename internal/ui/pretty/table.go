package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/runner"
)

// Table formatting constants.
const (
	fixableSymbol      = "+"
	tablePadding       = 2
	tableColumnCount   = 5 // FILE, LOC, MESSAGE, CATEGORY, FIXABLE
	perFileColumnCount = 4 // LOC, MESSAGE, CATEGORY, FIXABLE
	fixableColumnWidth = 3
	minFileWidth       = 20
	minLocWidth        = 10
	minMessageWidth    = 35
	minCategoryWidth   = 8
	heavySeparator     = "="
	lightSeparator     = "-"
	defaultTermWidth   = 100
)

// TableRow represents a single row in the diagnostic table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Category string
	Severity diagnostic.Severity
	Fixable  bool
}

// NewTableRow converts a diagnostic to a table row.
func NewTableRow(diag diagnostic.Diagnostic) TableRow {
	return TableRow{
		File:     diag.Location.Path,
		Location: fmt.Sprintf("%d:%d", diag.Location.Start.Line, diag.Location.Start.Column),
		Message:  diag.Message,
		Category: diag.Category,
		Severity: diag.Severity,
		Fixable:  diag.HasTag(diagnostic.TagFixable),
	}
}

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats diagnostics, sorted by path, as a single table with
// one row group per file.
func (t *TableFormatter) FormatTable(diags []diagnostic.Diagnostic) string {
	groups := groupRows(diags)
	if len(groups) == 0 {
		return ""
	}

	colWidths := t.calculateColumnWidths(groups)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(colWidths) + "\n")
	builder.WriteString(t.formatSeparator(colWidths, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(colWidths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, colWidths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(colWidths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")
	return builder.String()
}

// FormatFileTable formats the diagnostics of one file as a standalone table
// without the FILE column.
func (t *TableFormatter) FormatFileTable(diags []diagnostic.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(diags))
	for _, diag := range diags {
		rows = append(rows, NewTableRow(diag))
	}
	colWidths := t.calculateColumnWidthsForRows(rows)

	var builder strings.Builder
	builder.WriteString(t.formatPerFileHeader(colWidths) + "\n")
	builder.WriteString(t.formatPerFileSeparator(colWidths, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatPerFileRow(row, colWidths) + "\n")
	}
	builder.WriteString(t.formatPerFileSeparator(colWidths, heavySeparator) + "\n")
	builder.WriteString(t.formatFileSummary(rows) + "\n")
	return builder.String()
}

func groupRows(diags []diagnostic.Diagnostic) [][]TableRow {
	var groups [][]TableRow
	for _, diag := range diags {
		row := NewTableRow(diag)
		if n := len(groups); n > 0 && groups[n-1][0].File == row.File {
			groups[n-1] = append(groups[n-1], row)
			continue
		}
		groups = append(groups, []TableRow{row})
	}
	return groups
}

type perFileColumnWidths struct {
	loc      int
	message  int
	category int
}

func (t *TableFormatter) calculateColumnWidthsForRows(rows []TableRow) perFileColumnWidths {
	widths := perFileColumnWidths{
		loc:      minLocWidth,
		message:  minMessageWidth,
		category: minCategoryWidth,
	}

	for _, row := range rows {
		widths.loc = max(widths.loc, len(row.Location))
		widths.message = max(widths.message, len(row.Message))
		widths.category = max(widths.category, len(row.Category))
	}

	totalWidth := widths.loc + widths.message + widths.category + (tablePadding * perFileColumnCount) + fixableColumnWidth
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.message = max(minMessageWidth, widths.message-excess)
	}

	return widths
}

func (t *TableFormatter) formatPerFileHeader(widths perFileColumnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s   ",
		widths.loc, "LOC",
		widths.message, "MESSAGE",
		widths.category, "CATEGORY",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatPerFileSeparator(widths perFileColumnWidths, char string) string {
	totalWidth := widths.loc + widths.message + widths.category + (tablePadding * perFileColumnCount) + fixableColumnWidth
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth))
}

func (t *TableFormatter) formatPerFileRow(row TableRow, widths perFileColumnWidths) string {
	fixable := " "
	if row.Fixable {
		fixable = t.styles.Fixable.Render(fixableSymbol)
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %s",
		widths.loc, truncateString(row.Location, widths.loc),
		widths.message, truncateString(row.Message, widths.message),
		widths.category, truncateString(row.Category, widths.category),
		fixable,
	)
	return t.rowStyle(row.Severity).Render(content)
}

// formatFileSummary formats a summary line for a single file.
func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	var errors, warnings, infos, fixable int
	for _, row := range rows {
		switch row.Severity {
		case diagnostic.SeverityError, diagnostic.SeverityFatal:
			errors++
		case diagnostic.SeverityWarning:
			warnings++
		default:
			infos++
		}
		if row.Fixable {
			fixable++
		}
	}

	var parts []string
	if errors > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if infos > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", infos)))
	}
	if fixable > 0 {
		parts = append(parts, t.styles.Fixable.Render(fmt.Sprintf("%d fixable", fixable)))
	}
	return " " + strings.Join(parts, " | ")
}

type columnWidths struct {
	file     int
	loc      int
	message  int
	category int
}

// calculateColumnWidths determines column widths from content, shrinking
// the message and then the file column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:     minFileWidth,
		loc:      minLocWidth,
		message:  minMessageWidth,
		category: minCategoryWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, len(row.File))
			widths.loc = max(widths.loc, len(row.Location))
			widths.message = max(widths.message, len(row.Message))
			widths.category = max(widths.category, len(row.Category))
		}
	}

	if totalWidth := t.calculateTotalWidth(widths); totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.message = max(minMessageWidth, widths.message-excess)

		if totalWidth = t.calculateTotalWidth(widths); totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s   ",
		widths.file, "FILE",
		widths.loc, "LOC",
		widths.message, "MESSAGE",
		widths.category, "CATEGORY",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.loc + widths.message + widths.category +
		(tablePadding * tableColumnCount) + fixableColumnWidth
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	fixable := " "
	if row.Fixable {
		fixable = t.styles.Fixable.Render(fixableSymbol)
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.loc, truncateString(row.Location, widths.loc),
		widths.message, truncateString(row.Message, widths.message),
		widths.category, truncateString(row.Category, widths.category),
		fixable,
	)
	return t.rowStyle(row.Severity).Render(content)
}

func (t *TableFormatter) rowStyle(severity diagnostic.Severity) lipgloss.Style {
	switch severity {
	case diagnostic.SeverityError, diagnostic.SeverityFatal:
		return t.styles.TableErrorRow
	case diagnostic.SeverityWarning:
		return t.styles.TableWarnRow
	case diagnostic.SeverityInformation:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend explains the table symbols and colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: %s = fixable", fixableSymbol),
		)
	}

	errorSample := t.styles.TableErrorRow.Render(" error ")
	warnSample := t.styles.TableWarnRow.Render(" warning ")
	fixableSample := t.styles.Fixable.Render(fixableSymbol)

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = error  %s = warning  %s = fixable",
			errorSample, warnSample, fixableSample),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d files checked", stats.FilesProcessed)}

	if n := stats.DiagnosticsBySeverity[diagnostic.SeverityError] + stats.DiagnosticsBySeverity[diagnostic.SeverityFatal]; n > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := stats.DiagnosticsBySeverity[diagnostic.SeverityWarning]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := stats.DiagnosticsBySeverity[diagnostic.SeverityInformation]; n > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", n)))
	}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, t.styles.Fixable.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a path, keeping the end rather than the beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
