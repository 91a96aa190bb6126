package rules

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// UseAltTextRule requires alternative text on elements that display media.
type UseAltTextRule struct {
	analyzer.BaseRule
}

// NewUseAltTextRule creates the useAltText rule.
func NewUseAltTextRule() *UseAltTextRule {
	return &UseAltTextRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "useAltText",
			Group:       analyzer.GroupA11y,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Sources:     []analyzer.RuleSource{{Plugin: "jsx-a11y", Name: "alt-text"}},
			Description: "Enforce that all elements that require alternative text have meaningful information to relay back to the end user.",
			Docs: "Enforce that elements which require alternative text have it.\n\n" +
				"`img` and `area` need `alt`. `input type=\"image\"` and `object` need `alt`, `title`, " +
				"`aria-label` or `aria-labelledby`.\n\n" +
				"## Examples\n\n### Invalid\n\n```jsx\n<img src=\"image.png\" />\n```\n\n" +
				"### Valid\n\n```jsx\n<img src=\"image.png\" alt=\"A cat\" />\n```\n",
		}, analyzer.QueryKinds(syntax.JsxSelfClosingElement, syntax.JsxOpeningElement)),
	}
}

// Run reports the element when no accepted attribute is present.
func (r *UseAltTextRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	tag := js.JsxTagName(node)
	var accepted []string
	switch tag {
	case "img", "area":
		accepted = []string{"alt"}
	case "input":
		if jsxStringAttribute(node, "type") != "image" {
			return nil
		}
		accepted = []string{"alt", "aria-label", "aria-labelledby", "title"}
	case "object":
		accepted = []string{"title", "aria-label", "aria-labelledby"}
	default:
		return nil
	}

	for _, attr := range js.JsxAttributes(node) {
		if attr.Kind() == syntax.JsxSpreadAttribute {
			return nil
		}
	}
	if js.FindJsxAttribute(node, "aria-hidden") != nil {
		return nil
	}
	for _, name := range accepted {
		if attr := js.FindJsxAttribute(node, name); attr != nil && !isUndefinedValue(attr) {
			return nil
		}
	}

	msg := "Provide a text alternative through the alt attribute."
	if tag == "object" {
		msg = "Provide a text alternative through the title, aria-label or aria-labelledby attribute."
	}
	return ctx.Diagnostic(node.TextRange(), msg).
		WithNote("Meaningful alternative text on elements helps users relying on screen readers to understand content's purpose within a page.").
		Signals()
}

// jsxStringAttribute returns the literal value of a string attribute.
func jsxStringAttribute(element *syntax.Node, name string) string {
	attr := js.FindJsxAttribute(element, name)
	if attr == nil {
		return ""
	}
	value := attr.FindNode(syntax.JsxAttributeInitializerClause)
	if value == nil {
		return ""
	}
	if str := value.FindNode(syntax.JsxString); str != nil {
		return js.StringValue(str.TrimmedText())
	}
	return ""
}

// isUndefinedValue matches `name={undefined}`.
func isUndefinedValue(attr *syntax.Node) bool {
	value := attr.FindNode(syntax.JsxAttributeInitializerClause)
	if value == nil {
		return false
	}
	expr := value.FindNode(syntax.JsxExpressionAttributeValue)
	return expr != nil && strings.TrimSpace(strings.Trim(expr.TrimmedText(), "{}")) == "undefined"
}

// NoImgElementRule discourages raw <img> elements in Next.js projects.
type NoImgElementRule struct {
	analyzer.BaseRule
}

// NewNoImgElementRule creates the noImgElement rule.
func NewNoImgElementRule() *NoImgElementRule {
	return &NoImgElementRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noImgElement",
			Group:       analyzer.GroupNursery,
			Language:    "javascript",
			Severity:    diagnostic.SeverityWarning,
			Sources:     []analyzer.RuleSource{{Plugin: "@next", Name: "no-img-element"}},
			Description: "Prevent usage of <img> element in a Next.js project.",
			Docs: "Prevent usage of `<img>` element in a Next.js project.\n\n" +
				"The `next/image` component optimizes images automatically.\n\n" +
				"## Examples\n\n### Invalid\n\n```jsx\n<img alt=\"Foo\" />\n```\n",
		}, analyzer.QueryKinds(syntax.JsxSelfClosingElement, syntax.JsxOpeningElement)),
	}
}

// Run reports <img> outside of a <picture> element.
func (r *NoImgElementRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	if js.JsxTagName(node) != "img" {
		return nil
	}
	for n := range node.Ancestors() {
		if n.Kind() == syntax.JsxElement && js.JsxTagName(n) == "picture" {
			return nil
		}
	}
	return ctx.Diagnostic(node.TextRange(), "Don't use <img> element.").
		WithNote("Using the <img> can lead to slower LCP and higher bandwidth. Consider using <Image /> from next/image to automatically optimize images.").
		Signals()
}
