package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gobiome/internal/ui/pretty"
	"github.com/yaklabco/gobiome/pkg/analysis"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableRenderer formats reports as a styled table with color-coded rows.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	out       io.Writer
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(opts.Writer)),
		out:       opts.Writer,
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.out, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for _, failure := range report.Failures {
		fmt.Fprintf(bw, "%s: %s\n", r.styles.FilePath.Render(failure.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", failure.Error)))
	}

	if len(report.Diagnostics) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("All files passed!"))
			fmt.Fprintln(bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", report.Stats.FilesProcessed)))
		}
		return nil
	}

	if r.opts.PerFile {
		r.renderPerFile(bw, report.Diagnostics)
	} else {
		fmt.Fprint(bw, r.formatter.FormatTable(report.Diagnostics))
	}

	fmt.Fprint(bw, r.styles.FormatOmitted(report.Omitted, report.Limit))

	if r.opts.ShowSummary {
		fmt.Fprintln(bw, r.formatter.FormatTableSummary(report.Stats))
		if report.Totals.Fixable > report.Totals.UnsafeFixable && report.Stats.FilesModified == 0 {
			fmt.Fprintln(bw, r.styles.Dim.Render("Run with --write to apply safe fixes"))
		}
		if report.Totals.UnsafeFixable > 0 {
			fmt.Fprintln(bw, r.styles.Dim.Render("Run with --write --unsafe to apply unsafe fixes"))
		}
	}
	return nil
}

// renderPerFile outputs a separate table for each file with diagnostics.
func (r *TableRenderer) renderPerFile(w io.Writer, diags []diagnostic.Diagnostic) {
	for start := 0; start < len(diags); {
		end := start + 1
		for end < len(diags) && diags[end].Location.Path == diags[start].Location.Path {
			end++
		}
		fmt.Fprintln(w, r.styles.Bold.Render(diags[start].Location.Path))
		fmt.Fprint(w, r.formatter.FormatFileTable(diags[start:end]))
		fmt.Fprintln(w)
		start = end
	}
}

// terminalWidth returns the width of the terminal behind writer.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
