package rules

import (
	"fmt"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang/json"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// NoDuplicateObjectKeysRule disallows repeated member names in a JSON object.
type NoDuplicateObjectKeysRule struct {
	analyzer.BaseRule
}

// NewNoDuplicateObjectKeysRule creates the JSON noDuplicateObjectKeys rule.
func NewNoDuplicateObjectKeysRule() *NoDuplicateObjectKeysRule {
	return &NoDuplicateObjectKeysRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noDuplicateObjectKeys",
			Group:       analyzer.GroupSuspicious,
			Language:    "json",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Description: "Disallow two keys with the same name inside objects.",
			Docs: "Disallow two keys with the same name inside objects.\n\n" +
				"Only the last value of a repeated key is kept by most parsers.\n\n" +
				"## Examples\n\n### Invalid\n\n```json\n{ \"title\": \"a\", \"title\": \"b\" }\n```\n",
		}, analyzer.QueryKinds(syntax.JsonObjectValue)),
	}
}

// Run reports every repeated key and points at its first occurrence.
func (r *NoDuplicateObjectKeysRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	first := make(map[string]*syntax.Node)
	var signals []analyzer.Signal
	for member := range json.Members(node) {
		name := json.MemberName(member)
		prev, seen := first[name]
		if !seen {
			first[name] = member
			continue
		}
		signals = append(signals,
			ctx.Diagnostic(json.MemberNameRange(member), fmt.Sprintf("The key %s was already declared.", name)).
				WithLabel(json.MemberNameRange(prev), "This is where a duplicated key was declared again.").
				WithNote("If a key is defined multiple times, only the last definition takes effect. "+
					"Previous definitions are ignored.").
				Build())
	}
	return signals
}
