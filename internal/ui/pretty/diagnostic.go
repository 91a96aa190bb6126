package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/text"
)

// FormatDiagnostic formats a single diagnostic for terminal output. When
// source is non-empty, the offending line is shown with a caret marker.
func (s *Styles) FormatDiagnostic(diag diagnostic.Diagnostic, source string) string {
	var builder strings.Builder

	loc := diag.Location
	location := s.FilePath.Render(loc.Path)
	if loc.Start.IsValid() {
		location += s.Location.Render(fmt.Sprintf(":%d:%d", loc.Start.Line, loc.Start.Column))
	}

	// Header: path:line:col category [FIXABLE]
	builder.WriteString(location + " " + s.Category.Render(diag.Category))
	if diag.HasTag(diagnostic.TagFixable) {
		builder.WriteString(" " + s.Fixable.Render("FIXABLE"))
	}
	builder.WriteString("\n\n")

	builder.WriteString("  " + s.FormatSeverity(diag.Severity) + " " + s.Message.Render(diag.Message) + "\n")

	if source != "" && loc.Start.IsValid() {
		builder.WriteString("\n")
		builder.WriteString(s.FormatSourceContext(source, loc))
	}

	for _, advice := range diag.Advices {
		builder.WriteString("\n")
		builder.WriteString(s.FormatAdvice(advice))
	}

	builder.WriteString("\n")
	return builder.String()
}

// FormatSeverity returns the styled marker for a severity.
func (s *Styles) FormatSeverity(sev diagnostic.Severity) string {
	var marker string
	switch sev {
	case diagnostic.SeverityFatal, diagnostic.SeverityError:
		marker = "×"
	case diagnostic.SeverityWarning:
		marker = "!"
	case diagnostic.SeverityInformation:
		marker = "i"
	default:
		marker = "ℹ"
	}
	return s.SeverityStyle(sev).Render(marker)
}

// FormatSourceContext formats the line containing loc.Start with a caret
// marker under the diagnostic range.
func (s *Styles) FormatSourceContext(source string, loc diagnostic.Location) string {
	idx := text.NewLineIndex(source)
	line := idx.LineContent(loc.Start.Line)

	number := strconv.Itoa(loc.Start.Line)
	gutter := strings.Repeat(" ", len(number))

	start := min(max(loc.Start.Column-1, 0), len(line))
	end := len(line)
	if loc.End.Line == loc.Start.Line {
		end = min(max(loc.End.Column-1, start), len(line))
	}
	width := max(runewidth.StringWidth(line[start:end]), 1)

	var builder strings.Builder
	builder.WriteString("  " + s.Gutter.Render("> "+number+" │ ") + s.SourceLine.Render(line) + "\n")
	builder.WriteString("    " + gutter + s.Gutter.Render(" │ ") +
		strings.Repeat(" ", runewidth.StringWidth(line[:start])) +
		s.Caret.Render(strings.Repeat("^", width)) + "\n")
	return builder.String()
}

// FormatAdvice renders an advice: a log message, a list or a unified diff.
func (s *Styles) FormatAdvice(advice diagnostic.Advice) string {
	var builder strings.Builder
	if advice.Message != "" {
		builder.WriteString("  " + s.Advice.Render("i "+advice.Message) + "\n")
	}
	switch advice.Kind {
	case diagnostic.AdviceList:
		for _, item := range advice.Items {
			builder.WriteString("    - " + item + "\n")
		}
	case diagnostic.AdviceDiff:
		for _, line := range strings.Split(strings.TrimRight(advice.Diff, "\n"), "\n") {
			if strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") {
				continue
			}
			builder.WriteString("    " + s.FormatDiffLine(line) + "\n")
		}
	}
	return builder.String()
}

// FormatDiffLine colors one line of a unified diff.
func (s *Styles) FormatDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
