package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gobiome/internal/ui/pretty"
	"github.com/yaklabco/gobiome/pkg/analysis"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

// TextRenderer formats reports as styled terminal output. It is the
// default reporter.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.out, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for _, failure := range report.Failures {
		fmt.Fprintf(bw, "%s %s\n\n  %s %s\n\n",
			r.styles.FilePath.Render(failure.Path),
			r.styles.Category.Render("internalError/io"),
			r.styles.FormatSeverity(diagnostic.SeverityError),
			r.styles.Error.Render(failure.Error.Error()),
		)
	}

	for _, diag := range report.Diagnostics {
		var source string
		if r.opts.ShowContext && !diag.Location.Range.IsEmpty() {
			source = report.Sources[diag.Location.Path]
		}
		fmt.Fprint(bw, r.styles.FormatDiagnostic(diag, source))
	}

	fmt.Fprint(bw, r.styles.FormatOmitted(report.Omitted, report.Limit))

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Stats))
	}
	return nil
}
