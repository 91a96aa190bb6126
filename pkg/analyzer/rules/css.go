package rules

import (
	"fmt"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang/css"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// NoDuplicatePropertiesRule disallows the same property twice in a block.
type NoDuplicatePropertiesRule struct {
	analyzer.BaseRule
}

// NewNoDuplicatePropertiesRule creates the CSS noDuplicateProperties rule.
func NewNoDuplicatePropertiesRule() *NoDuplicatePropertiesRule {
	return &NoDuplicatePropertiesRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noDuplicateProperties",
			Group:       analyzer.GroupSuspicious,
			Language:    "css",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Sources:     []analyzer.RuleSource{{Plugin: "stylelint", Name: "declaration-block-no-duplicate-properties"}},
			Description: "Disallow duplicate properties within declaration blocks.",
			Docs: "Disallow duplicate properties within declaration blocks.\n\n" +
				"Custom properties are compared case sensitively.\n\n" +
				"## Examples\n\n### Invalid\n\n```css\na { color: pink; color: orange; }\n```\n",
		}, analyzer.QueryKinds(syntax.CssDeclarationList)),
	}
}

// Run reports each declaration whose property already appeared in the block.
func (r *NoDuplicatePropertiesRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	seen := make(map[string]*syntax.Node)
	var signals []analyzer.Signal
	for decl := range node.ChildNodes() {
		if decl.Kind() != syntax.CssDeclaration {
			continue
		}
		name := css.PropertyName(decl)
		if name == "" {
			continue
		}
		prev, ok := seen[name]
		if !ok {
			seen[name] = decl
			continue
		}
		nameNode := decl.FindNode(syntax.CssPropertyName)
		signals = append(signals,
			ctx.Diagnostic(nameNode.TextRange(), "Duplicate properties can lead to unexpected behavior and may override previous declarations unintentionally.").
				WithLabel(prev.FindNode(syntax.CssPropertyName).TextRange(), fmt.Sprintf("%s is already defined here.", name)).
				WithNote("Remove or rename the duplicate property to ensure consistent styling.").
				Build())
	}
	return signals
}

// NoImportantInKeyframeRule disallows !important inside @keyframes.
type NoImportantInKeyframeRule struct {
	analyzer.BaseRule
}

// NewNoImportantInKeyframeRule creates the CSS noImportantInKeyframe rule.
func NewNoImportantInKeyframeRule() *NoImportantInKeyframeRule {
	return &NoImportantInKeyframeRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noImportantInKeyframe",
			Group:       analyzer.GroupSuspicious,
			Language:    "css",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Sources:     []analyzer.RuleSource{{Plugin: "stylelint", Name: "keyframe-declaration-no-important"}},
			Description: "Disallow invalid !important within keyframe declarations.",
			Docs: "Disallow invalid `!important` within keyframe declarations.\n\n" +
				"Browsers ignore declarations marked `!important` inside a keyframe.\n\n" +
				"## Examples\n\n### Invalid\n\n```css\n@keyframes foo {\n  from { opacity: 0 !important; }\n}\n```\n",
		}, analyzer.QueryKinds(syntax.CssImportant)),
	}
}

// Run reports the flag when an enclosing at-rule is @keyframes.
func (r *NoImportantInKeyframeRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	for n := range node.Ancestors() {
		if n.Kind() != syntax.CssAtRule {
			continue
		}
		if name := css.AtRuleName(n); name == "keyframes" || name == "-webkit-keyframes" {
			return ctx.Diagnostic(node.TextRange(), "Using !important within keyframes declaration is completely ignored in some browsers.").
				WithNote("Consider removing useless !important declaration.").
				Signals()
		}
	}
	return nil
}

// NoEmptyBlockRule disallows blocks without declarations or comments.
type NoEmptyBlockRule struct {
	analyzer.BaseRule
}

// NewNoEmptyBlockRule creates the CSS noEmptyBlock rule.
func NewNoEmptyBlockRule() *NoEmptyBlockRule {
	return &NoEmptyBlockRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noEmptyBlock",
			Group:       analyzer.GroupSuspicious,
			Language:    "css",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Sources:     []analyzer.RuleSource{{Plugin: "stylelint", Name: "block-no-empty"}},
			Description: "Disallow CSS empty blocks.",
			Docs: "Disallow CSS empty blocks.\n\n" +
				"A block containing only a comment is not reported.\n\n" +
				"## Examples\n\n### Invalid\n\n```css\np {}\n```\n\n### Valid\n\n```css\np {\n  /* empty */\n}\n```\n",
		}, analyzer.QueryKinds(syntax.CssDeclarationBlock)),
	}
}

// Run reports a block whose list is empty and whose braces hold no comment.
func (r *NoEmptyBlockRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	if list := node.FindNode(syntax.CssDeclarationList); list != nil && len(list.ChildNodeList()) > 0 {
		return nil
	}
	for tok := range node.Tokens() {
		leading := tok.Green().Leading()
		if tok.Kind() == syntax.LBrace {
			// Trivia before `{` belongs to the prelude.
			leading = nil
		}
		if hasComment(leading) || (tok.Kind() != syntax.RBrace && hasComment(tok.Green().Trailing())) {
			return nil
		}
	}
	return ctx.Diagnostic(node.TextRange(), "An empty block isn't allowed.").
		WithNote("Consider removing the empty block or adding styles inside it.").
		Signals()
}
