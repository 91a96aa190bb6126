package analyzer

import (
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/mutation"
	"github.com/yaklabco/gobiome/pkg/text"
)

// DiagnosticBuilder helps construct Signal values.
type DiagnosticBuilder struct {
	sig Signal
}

// NewDiagnostic starts building a finding at r.
func NewDiagnostic(r text.Range, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		sig: Signal{Diagnostic: diagnostic.Diagnostic{
			Message:  message,
			Location: diagnostic.Location{Range: r},
		}},
	}
}

// WithLabel adds a secondary range.
func (b *DiagnosticBuilder) WithLabel(r text.Range, message string) *DiagnosticBuilder {
	b.sig.Diagnostic = b.sig.Diagnostic.WithLabel(r, message)
	return b
}

// WithNote adds a log advice.
func (b *DiagnosticBuilder) WithNote(message string) *DiagnosticBuilder {
	b.sig.Diagnostic = b.sig.Diagnostic.WithAdvice(message)
	return b
}

// WithTag adds a tag.
func (b *DiagnosticBuilder) WithTag(tag diagnostic.Tag) *DiagnosticBuilder {
	b.sig.Diagnostic = b.sig.Diagnostic.WithTag(tag)
	return b
}

// WithAction attaches a code action. Its applicability comes from the
// resolved rule. Empty batches are ignored.
func (b *DiagnosticBuilder) WithAction(message string, batch *mutation.Batch) *DiagnosticBuilder {
	if batch.IsEmpty() {
		return b
	}
	b.sig.Action = &Action{Message: message, Mutation: batch}
	return b
}

// Build returns the constructed Signal.
func (b *DiagnosticBuilder) Build() Signal {
	return b.sig
}

// Signals returns the constructed Signal as a one-element slice.
func (b *DiagnosticBuilder) Signals() []Signal {
	return []Signal{b.sig}
}
