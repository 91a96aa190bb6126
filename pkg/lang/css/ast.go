package css

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/syntax"
)

// PropertyName returns the lower-cased property of a declaration node.
// Custom properties keep their case.
func PropertyName(decl *syntax.Node) string {
	name := decl.FindNode(syntax.CssPropertyName)
	if name == nil {
		return ""
	}
	text := name.TrimmedText()
	if strings.HasPrefix(text, "--") {
		return text
	}
	return strings.ToLower(text)
}

// IsImportant reports whether a declaration carries `!important`.
func IsImportant(decl *syntax.Node) bool {
	return decl.FindNode(syntax.CssImportant) != nil
}

// AtRuleName returns the at-keyword of an at-rule without the `@`.
func AtRuleName(rule *syntax.Node) string {
	tok := rule.FindToken(syntax.CssAtKeyword)
	if tok == nil {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(tok.Text(), "@"))
}

// Declarations returns the declarations directly inside a rule's block.
func Declarations(rule *syntax.Node) []*syntax.Node {
	block := rule.FindNode(syntax.CssDeclarationBlock)
	if block == nil {
		return nil
	}
	list := block.FindNode(syntax.CssDeclarationList)
	if list == nil {
		return nil
	}
	var out []*syntax.Node
	for child := range list.ChildNodes() {
		if child.Kind() == syntax.CssDeclaration {
			out = append(out, child)
		}
	}
	return out
}

// Selectors returns the trimmed text of each complex selector of a rule.
func Selectors(rule *syntax.Node) []string {
	list := rule.FindNode(syntax.CssSelectorList)
	if list == nil {
		return nil
	}
	var out []string
	for sel := range list.ChildNodes() {
		out = append(out, sel.TrimmedText())
	}
	return out
}
