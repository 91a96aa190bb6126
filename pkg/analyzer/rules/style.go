package rules

import (
	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/semantic"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// NoVarRule disallows `var` declarations.
type NoVarRule struct {
	analyzer.BaseRule
}

// NewNoVarRule creates the noVar rule.
func NewNoVarRule() *NoVarRule {
	return &NoVarRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noVar",
			Group:       analyzer.GroupStyle,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Fix:         analyzer.FixUnsafe,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "no-var"}},
			Description: "Disallow the use of var.",
			Docs: "Disallow the use of `var`.\n\n" +
				"`let` and `const` are block scoped and are not hoisted, which avoids a class of bugs.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\nvar foo = 1;\n```\n\n### Valid\n\n```js\nconst foo = 1;\nlet bar = 1;\n```\n",
		}, analyzer.QueryKinds(syntax.JsVariableDeclaration, syntax.JsForVariableDeclaration)),
	}
}

// Run reports `var` and replaces it with `const` when no binding is
// reassigned, `let` otherwise.
func (r *NoVarRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	kw := node.FindToken(syntax.VarKw)
	if kw == nil {
		return nil
	}

	b := ctx.Diagnostic(node.TextRange(), "Use let or const instead of var.").
		WithNote("A variable declared with var is accessible in the whole body of the function. " +
			"Thus, the variable can be accessed before its initialization and outside the block where it is declared.")
	if model := ctx.Model(); model != nil {
		batch := ctx.NewBatch()
		if canBeConst(model, node) {
			batch.ReplaceToken(kw, replaceKeyword(kw, syntax.ConstKw, "const"))
			b.WithAction("Use 'const' instead.", batch)
		} else {
			batch.ReplaceToken(kw, replaceKeyword(kw, syntax.LetKw, "let"))
			b.WithAction("Use 'let' instead.", batch)
		}
	}
	return b.Signals()
}

// UseConstRule requires const for bindings that are never reassigned.
type UseConstRule struct {
	analyzer.BaseRule
}

// NewUseConstRule creates the useConst rule.
func NewUseConstRule() *UseConstRule {
	return &UseConstRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "useConst",
			Group:       analyzer.GroupStyle,
			Language:    "javascript",
			Severity:    diagnostic.SeverityWarning,
			Fix:         analyzer.FixSafe,
			Semantic:    true,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "prefer-const"}},
			Description: "Require const declarations for variables that are only assigned once.",
			Docs: "Require `const` declarations for variables that are only assigned once.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\nlet a = 3;\nconsole.log(a);\n```\n\n" +
				"### Valid\n\n```js\nlet a = 2;\na = 3;\n```\n",
		}, analyzer.QueryKinds(syntax.JsVariableDeclaration, syntax.JsForVariableDeclaration)),
	}
}

// Run reports a `let` declaration whose bindings are all written once.
func (r *UseConstRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	kw := node.FindToken(syntax.LetKw)
	if kw == nil {
		return nil
	}
	model := ctx.Model()
	if model == nil || !canBeConst(model, node) {
		return nil
	}
	batch := ctx.NewBatch()
	batch.ReplaceToken(kw, replaceKeyword(kw, syntax.ConstKw, "const"))
	return ctx.Diagnostic(kw.TextRange(), "This let declares a variable that is only assigned once.").
		WithAction("Use const instead.", batch).
		Signals()
}

// canBeConst reports whether every declarator of a declaration is
// initialized and none of its bindings is written afterwards. A loop head
// declaration is const-able when the loop is for-in or for-of.
func canBeConst(model *semantic.Model, decl *syntax.Node) bool {
	declarators := js.Declarators(decl)
	if len(declarators) == 0 {
		return false
	}
	inForHead := decl.Kind() == syntax.JsForVariableDeclaration
	for _, d := range declarators {
		if !inForHead && d.Initializer() == nil {
			return false
		}
		for _, id := range identifierBindings(d.Binding()) {
			b, ok := model.BindingOf(id)
			if !ok || len(b.Writes()) > 0 || len(b.Redeclarations) > 0 {
				return false
			}
		}
	}
	return true
}
