// Package diagnostic defines the structured diagnostic record shared by the
// parsers, the analyzer, the workspace and the reporters.
package diagnostic

import (
	"cmp"
	"fmt"

	"github.com/yaklabco/gobiome/pkg/text"
)

// Severity represents the importance of a diagnostic.
type Severity string

const (
	SeverityHint        Severity = "hint"
	SeverityInformation Severity = "information"
	SeverityWarning     Severity = "warning"
	SeverityError       Severity = "error"
	SeverityFatal       Severity = "fatal"
)

// Rank orders severities from least to most important.
func (s Severity) Rank() int {
	switch s {
	case SeverityHint:
		return 0
	case SeverityInformation:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	case SeverityFatal:
		return 4
	default:
		return -1
	}
}

// AtLeast reports whether s is as severe as threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.Rank() >= threshold.Rank()
}

// IsValid returns true for known severities.
func (s Severity) IsValid() bool {
	return s.Rank() >= 0
}

// Tag marks properties of a diagnostic that reporters may render specially.
type Tag string

const (
	TagFixable     Tag = "fixable"
	TagUnsafeFix   Tag = "unsafeFix" // the fix is applied only with --unsafe
	TagUnnecessary Tag = "unnecessaryCode"
	TagDeprecated  Tag = "deprecatedCode"
	TagInternal    Tag = "internal"
	TagVerbose     Tag = "verbose"
)

// Label is a secondary range with its own message.
type Label struct {
	Range   text.Range `json:"range"`
	Message string     `json:"message"`
}

// AdviceKind distinguishes advice payloads.
type AdviceKind string

const (
	AdviceLog  AdviceKind = "log"
	AdviceDiff AdviceKind = "diff"
	AdviceList AdviceKind = "list"
)

// Advice is structured help attached to a diagnostic.
type Advice struct {
	Kind    AdviceKind `json:"kind"`
	Message string     `json:"message"`
	// Diff holds a unified diff for AdviceDiff.
	Diff string `json:"diff,omitempty"`
	// Items holds entries for AdviceList.
	Items []string `json:"items,omitempty"`
}

// Location is the resolved position of a diagnostic.
type Location struct {
	Path  string     `json:"path"`
	Range text.Range `json:"range"`
	// Start is the 1-based line and column of Range.Start.
	Start text.Position `json:"start"`
	// End is the 1-based line and column of Range.End.
	End text.Position `json:"end"`
}

// Diagnostic is a single finding.
type Diagnostic struct {
	// Category is the slash-separated diagnostic category, for example
	// "lint/suspicious/noDebugger" or "parse".
	Category string

	Severity Severity
	Message  string
	Location Location
	Labels   []Label
	Advices  []Advice
	Tags     []Tag
}

// New creates a diagnostic anchored at r in path.
func New(category string, severity Severity, r text.Range, message string) Diagnostic {
	return Diagnostic{
		Category: category,
		Severity: severity,
		Message:  message,
		Location: Location{Range: r},
	}
}

// WithPath returns d with its path set.
func (d Diagnostic) WithPath(path string) Diagnostic {
	d.Location.Path = path
	return d
}

// WithLabel returns d with an additional label.
func (d Diagnostic) WithLabel(r text.Range, message string) Diagnostic {
	d.Labels = append(append([]Label(nil), d.Labels...), Label{Range: r, Message: message})
	return d
}

// WithAdvice returns d with an additional log advice.
func (d Diagnostic) WithAdvice(message string) Diagnostic {
	d.Advices = append(append([]Advice(nil), d.Advices...), Advice{Kind: AdviceLog, Message: message})
	return d
}

// WithTag returns d with tag added.
func (d Diagnostic) WithTag(tag Tag) Diagnostic {
	if d.HasTag(tag) {
		return d
	}
	d.Tags = append(append([]Tag(nil), d.Tags...), tag)
	return d
}

// HasTag reports whether d carries tag.
func (d Diagnostic) HasTag(tag Tag) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Resolve fills line and column information from idx.
func (d *Diagnostic) Resolve(idx *text.LineIndex) {
	if idx == nil {
		return
	}
	d.Location.Start = idx.Position(d.Location.Range.Start)
	d.Location.End = idx.Position(d.Location.Range.End)
}

// String renders the diagnostic in "path:line:col category message" form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d %s %s", d.Location.Path, d.Location.Start.Line, d.Location.Start.Column,
		d.Category, d.Message)
}

// Compare orders diagnostics by file, range start, range end and then category.
func Compare(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Location.Path, b.Location.Path),
		cmp.Compare(a.Location.Range.Start, b.Location.Range.Start),
		cmp.Compare(a.Location.Range.End, b.Location.Range.End),
		cmp.Compare(a.Category, b.Category),
	)
}

// MaxSeverity returns the highest severity in diags, or the empty severity.
func MaxSeverity(diags []Diagnostic) Severity {
	var out Severity
	for _, d := range diags {
		if out == "" || d.Severity.Rank() > out.Rank() {
			out = d.Severity
		}
	}
	return out
}
