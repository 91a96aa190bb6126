package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gobiome/pkg/analysis"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Command     string           `json:"command,omitempty"`
	Summary     JSONSummary      `json:"summary"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Failures    []JSONFailure    `json:"failures,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Changed               int `json:"changed"`
	Unchanged             int `json:"unchanged"`
	Written               int `json:"written"`
	Skipped               int `json:"skipped"`
	Errors                int `json:"errors"`
	Warnings              int `json:"warnings"`
	Infos                 int `json:"infos"`
	Fixable               int `json:"fixable"`
	UnsafeFixable         int `json:"unsafeFixable"`
	DiagnosticsNotPrinted int `json:"diagnosticsNotPrinted"`
}

// JSONDiagnostic is the wire form of a diagnostic.
type JSONDiagnostic struct {
	Category string       `json:"category"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
	Labels   []JSONLabel  `json:"labels,omitempty"`
	Advices  []JSONAdvice `json:"advices,omitempty"`
	Tags     []string     `json:"tags,omitempty"`
	Source   string       `json:"source,omitempty"`
}

// JSONLocation locates a diagnostic. Range holds byte offsets; Line and
// Column are 1-based.
type JSONLocation struct {
	Path   string `json:"path"`
	Range  [2]int `json:"range"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// JSONLabel is a secondary range with its own message.
type JSONLabel struct {
	Range   [2]int `json:"range"`
	Message string `json:"message"`
}

// JSONAdvice is structured help attached to a diagnostic.
type JSONAdvice struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message,omitempty"`
	Diff    string   `json:"diff,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// JSONFailure is a file that could not be processed.
type JSONFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// JSONRenderer formats reports as JSON, compact or indented.
type JSONRenderer struct {
	opts   Options
	pretty bool
	out    io.Writer
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options, pretty bool) *JSONRenderer {
	return &JSONRenderer{opts: opts, pretty: pretty, out: opts.Writer}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) error {
	encoder := json.NewEncoder(r.out)
	if r.pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONRenderer) buildOutput(report *analysis.Report) *JSONOutput {
	stats := report.Stats
	output := &JSONOutput{
		Command: r.opts.Command,
		Summary: JSONSummary{
			Changed:               stats.FilesChanged,
			Unchanged:             stats.FilesProcessed - stats.FilesChanged,
			Written:               stats.FilesModified,
			Skipped:               stats.FilesSkipped,
			Errors:                report.Totals.Errors,
			Warnings:              report.Totals.Warnings,
			Infos:                 report.Totals.Infos,
			Fixable:               report.Totals.Fixable,
			UnsafeFixable:         report.Totals.UnsafeFixable,
			DiagnosticsNotPrinted: report.Omitted,
		},
		Diagnostics: make([]JSONDiagnostic, 0, len(report.Diagnostics)),
	}

	for _, d := range report.Diagnostics {
		output.Diagnostics = append(output.Diagnostics, toJSONDiagnostic(d))
	}
	for _, f := range report.Failures {
		output.Failures = append(output.Failures, JSONFailure{Path: f.Path, Error: f.Error.Error()})
	}
	return output
}

func toJSONDiagnostic(d diagnostic.Diagnostic) JSONDiagnostic {
	out := JSONDiagnostic{
		Category: d.Category,
		Severity: string(d.Severity),
		Message:  d.Message,
		Location: JSONLocation{
			Path:   d.Location.Path,
			Range:  [2]int{d.Location.Range.Start, d.Location.Range.End},
			Line:   d.Location.Start.Line,
			Column: d.Location.Start.Column,
		},
		Source: ruleSource(d.Category),
	}
	for _, l := range d.Labels {
		out.Labels = append(out.Labels, JSONLabel{Range: [2]int{l.Range.Start, l.Range.End}, Message: l.Message})
	}
	for _, a := range d.Advices {
		out.Advices = append(out.Advices, JSONAdvice{Kind: string(a.Kind), Message: a.Message, Diff: a.Diff, Items: a.Items})
	}
	for _, t := range d.Tags {
		out.Tags = append(out.Tags, string(t))
	}
	return out
}

// ruleSource returns "<group>/<rule>" for lint and assist categories and
// the empty string otherwise.
func ruleSource(category string) string {
	for _, prefix := range []string{"lint/", "assist/"} {
		if rest, ok := strings.CutPrefix(category, prefix); ok && strings.Contains(rest, "/") {
			return rest
		}
	}
	return ""
}
