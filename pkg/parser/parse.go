package parser

import (
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Parse is the result of parsing one document.
type Parse struct {
	Green       *syntax.GreenNode
	Diagnostics []diagnostic.Diagnostic
}

// Root returns a fresh red root over the green tree.
func (p *Parse) Root() *syntax.Node {
	return syntax.NewRoot(p.Green)
}

// HasErrors reports whether any syntax error was recorded.
func (p *Parse) HasErrors() bool {
	for _, d := range p.Diagnostics {
		if d.Severity.AtLeast(diagnostic.SeverityError) {
			return true
		}
	}
	return false
}
