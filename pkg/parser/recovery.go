package parser

import (
	"errors"

	"github.com/yaklabco/gobiome/pkg/syntax"
)

// ErrRecoveryFailed is returned when there is nothing to recover: the parser
// is already at the end of input or at a token of the recovery set.
var ErrRecoveryFailed = errors.New("recovery failed")

// ParseRecovery eats tokens into a bogus node until a token of the recovery
// set, a line break (when LineBreak is set) or the end of input.
type ParseRecovery struct {
	Bogus     syntax.Kind
	Recovery  syntax.KindSet
	LineBreak bool
}

// NewRecovery creates a recovery wrapping skipped tokens in bogus.
func NewRecovery(bogus syntax.Kind, recovery syntax.KindSet) ParseRecovery {
	return ParseRecovery{Bogus: bogus, Recovery: recovery}
}

// WithLineBreak stops recovery at the first token preceded by a line break.
func (r ParseRecovery) WithLineBreak() ParseRecovery {
	r.LineBreak = true
	return r
}

func (r ParseRecovery) atRecovery(p *Parser) bool {
	if p.At(syntax.EOF) || r.Recovery.Has(p.Cur()) {
		return true
	}
	return r.LineBreak && p.HasPrecedingLineBreak()
}

// Recover wraps the skipped tokens. At least one token is consumed on success.
func (r ParseRecovery) Recover(p *Parser) (CompletedMarker, error) {
	if p.At(syntax.EOF) || r.Recovery.Has(p.Cur()) {
		return CompletedMarker{}, ErrRecoveryFailed
	}

	m := p.Start()
	for {
		p.BumpAny()
		if r.atRecovery(p) {
			break
		}
	}
	return m.Complete(p, r.Bogus), nil
}
