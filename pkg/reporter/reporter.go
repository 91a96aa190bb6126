// Package reporter renders the results of a run: styled terminal output,
// tables, summaries, unified diffs, JSON and SARIF.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gobiome/pkg/analysis"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of diagnostics printed and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an analysis.Report in one output format.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// reporterFacade analyzes a result and hands the report to a Renderer.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return len(report.Diagnostics), nil
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatDefault
	}

	var renderer Renderer
	switch format {
	case config.FormatDefault:
		renderer = NewTextRenderer(opts)
	case config.FormatJSON:
		renderer = NewJSONRenderer(opts, false)
	case config.FormatJSONPretty:
		renderer = NewJSONRenderer(opts, true)
	case config.FormatSARIF:
		renderer = NewSARIFRenderer(opts)
	case config.FormatDiff:
		renderer = NewDiffRenderer(opts)
	case config.FormatTable:
		renderer = NewTableRenderer(opts)
	case config.FormatSummary:
		renderer = NewSummaryRenderer(opts)
	default:
		return nil, fmt.Errorf("unsupported reporter: %s", format)
	}
	return &reporterFacade{renderer: renderer, analysisOpts: opts.analysisOptions()}, nil
}
