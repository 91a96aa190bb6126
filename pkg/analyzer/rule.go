// Package analyzer runs rules over parsed documents. It resolves which rules
// apply to a file, walks the tree once dispatching nodes to the rules whose
// query matches, filters the findings through inline suppressions and
// collects the code actions attached to them.
package analyzer

import (
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/mutation"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Rule groups.
const (
	GroupA11y        = "a11y"
	GroupComplexity  = "complexity"
	GroupCorrectness = "correctness"
	GroupNursery     = "nursery"
	GroupPerformance = "performance"
	GroupSecurity    = "security"
	GroupStyle       = "style"
	GroupSuspicious  = "suspicious"

	// GroupSource holds assist actions.
	GroupSource = "source"
)

// LintGroups lists the lint groups in display order.
func LintGroups() []string {
	return []string{
		GroupA11y, GroupComplexity, GroupCorrectness, GroupNursery,
		GroupPerformance, GroupSecurity, GroupStyle, GroupSuspicious,
	}
}

// IsLintGroup reports whether name is a lint group.
func IsLintGroup(name string) bool {
	for _, g := range LintGroups() {
		if g == name {
			return true
		}
	}
	return false
}

// Kind separates lint rules from assist actions.
type Kind uint8

const (
	KindLint Kind = iota
	KindAssist
)

// Prefix returns the first segment of the diagnostic category.
func (k Kind) Prefix() string {
	if k == KindAssist {
		return "assist"
	}
	return "lint"
}

// Applicability tells whether an action may be applied without asking.
type Applicability uint8

const (
	// FixNone marks a rule without actions.
	FixNone Applicability = iota
	// FixSafe actions preserve behavior and are applied by --write.
	FixSafe
	// FixUnsafe actions need --unsafe.
	FixUnsafe
)

func (a Applicability) String() string {
	switch a {
	case FixSafe:
		return "safe"
	case FixUnsafe:
		return "unsafe"
	default:
		return "none"
	}
}

// SourceKind tells how closely a rule follows a rule of another linter.
type SourceKind uint8

const (
	SourceSame SourceKind = iota
	SourceInspired
)

// RuleSource names the rule of another linter a rule was derived from.
type RuleSource struct {
	// Plugin is "eslint" for core rules or the plugin name.
	Plugin string
	Name   string
	Kind   SourceKind
}

// RuleMetadata describes a rule.
type RuleMetadata struct {
	Name  string
	Group string
	Kind  Kind
	// Language restricts the rule to a language family, for example
	// "javascript" or "css". Empty means any language; the query still decides
	// which nodes are visited.
	Language    string
	Recommended bool
	Severity    diagnostic.Severity
	Fix         Applicability
	// Semantic is set by rules that use the semantic model. They are disabled
	// for a file whose model could not be built.
	Semantic    bool
	Sources     []RuleSource
	Description string
	// Docs is the Markdown documentation shown by `explain`.
	Docs string
}

// Category returns the diagnostic category, for example
// "lint/suspicious/noDebugger".
func (m RuleMetadata) Category() string {
	return m.Kind.Prefix() + "/" + m.Group + "/" + m.Name
}

// Key returns "group/name".
func (m RuleMetadata) Key() string {
	return m.Group + "/" + m.Name
}

// Action is a named code transformation attached to a diagnostic.
type Action struct {
	Message       string
	Applicability Applicability
	Mutation      *mutation.Batch
}

// Signal is one finding of a rule.
type Signal struct {
	Diagnostic diagnostic.Diagnostic
	// Action is nil when the finding has no fix.
	Action *Action
}

// Rule is implemented by every lint rule and assist.
//
// Rules must:
//   - Only inspect the node they are given and what is reachable from it.
//   - Not depend on the findings of other rules.
//   - Build actions against ctx.Root so that they can be committed together.
type Rule interface {
	Metadata() RuleMetadata
	Query() Query
	Run(ctx *RuleContext, node *syntax.Node) []Signal
}
