package rules

import (
	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// UseDeprecatedReasonRule requires a reason on @deprecated.
type UseDeprecatedReasonRule struct {
	analyzer.BaseRule
}

// NewUseDeprecatedReasonRule creates the GraphQL useDeprecatedReason rule.
func NewUseDeprecatedReasonRule() *UseDeprecatedReasonRule {
	return &UseDeprecatedReasonRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "useDeprecatedReason",
			Group:       analyzer.GroupStyle,
			Language:    "graphql",
			Recommended: true,
			Severity:    diagnostic.SeverityWarning,
			Sources:     []analyzer.RuleSource{{Plugin: "@graphql-eslint", Name: "require-deprecation-reason"}},
			Description: "Require specifying the reason argument when using @deprecated directive.",
			Docs: "Require specifying the `reason` argument when using `@deprecated`.\n\n" +
				"## Examples\n\n### Invalid\n\n```graphql\nquery {\n  member @deprecated {\n    id\n  }\n}\n```\n\n" +
				"### Valid\n\n```graphql\nquery {\n  member @deprecated(reason: \"Why?\") {\n    id\n  }\n}\n```\n",
		}, analyzer.QueryKinds(syntax.GraphqlDirective)),
	}
}

// Run reports @deprecated without a reason argument.
func (r *UseDeprecatedReasonRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	name := node.FindToken(syntax.Ident)
	if name == nil || name.Text() != "deprecated" {
		return nil
	}
	if args := node.FindNode(syntax.GraphqlArguments); args != nil {
		if list := args.FindNode(syntax.GraphqlArgumentList); list != nil {
			for arg := range list.ChildNodes() {
				if tok := arg.FirstToken(); arg.Kind() == syntax.GraphqlArgument && tok != nil && tok.Text() == "reason" {
					return nil
				}
			}
		}
	}
	return ctx.Diagnostic(node.TextRange(), "The directive `@deprecated` should have a `reason` argument.").
		WithNote("Add a `reason` argument to the directive.").
		Signals()
}
