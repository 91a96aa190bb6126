package rules

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/mutation"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// NoDebuggerRule disallows `debugger` statements.
type NoDebuggerRule struct {
	analyzer.BaseRule
}

// NewNoDebuggerRule creates the noDebugger rule.
func NewNoDebuggerRule() *NoDebuggerRule {
	return &NoDebuggerRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noDebugger",
			Group:       analyzer.GroupSuspicious,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Fix:         analyzer.FixUnsafe,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "no-debugger"}},
			Description: "Disallow the use of debugger.",
			Docs: "Disallow the use of `debugger`.\n\n" +
				"`debugger` statements pause execution when developer tools are open. " +
				"They are meant for local debugging and should not be committed.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\ndebugger;\n```\n\n### Valid\n\n```js\nconst test = { debugger: 1 };\n```\n",
		}, analyzer.QueryKinds(syntax.JsDebuggerStatement)),
	}
}

// Run reports the statement and offers its removal.
func (r *NoDebuggerRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	return ctx.Diagnostic(node.TextRange(), "This is an unexpected use of the debugger statement.").
		WithAction("Remove debugger statement", removeStatement(ctx, node)).
		Signals()
}

//nolint:gochecknoglobals // Static operator set
var comparisonOperators = syntax.KindSetOf(
	syntax.Lt, syntax.LtEq, syntax.Gt, syntax.GtEq, syntax.Eq2, syntax.Eq3, syntax.Neq, syntax.Neq2,
)

// NoCompareNegZeroRule disallows comparing against -0.
type NoCompareNegZeroRule struct {
	analyzer.BaseRule
}

// NewNoCompareNegZeroRule creates the noCompareNegZero rule.
func NewNoCompareNegZeroRule() *NoCompareNegZeroRule {
	return &NoCompareNegZeroRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noCompareNegZero",
			Group:       analyzer.GroupSuspicious,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Fix:         analyzer.FixSafe,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "no-compare-neg-zero"}},
			Description: "Disallow comparing against -0.",
			Docs: "Disallow comparing against `-0`.\n\n" +
				"Comparisons such as `x === -0` also match `+0`. Use `Object.is(x, -0)` to test for negative zero.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\n(1 >= -0)\n```\n\n### Valid\n\n```js\n(1 >= 0)\n```\n",
		}, analyzer.QueryKinds(syntax.JsBinaryExpression)),
	}
}

// Run reports each operand that is a negative zero literal.
func (r *NoCompareNegZeroRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	bin, ok := js.AsBinaryExpression(node)
	if !ok {
		return nil
	}
	op := bin.Operator()
	if op == nil || !comparisonOperators.Has(op.Kind()) {
		return nil
	}

	var signals []analyzer.Signal
	for _, operand := range []*syntax.Node{bin.Left(), bin.Right()} {
		zero, ok := negativeZero(operand)
		if !ok {
			continue
		}
		batch := ctx.NewBatch()
		minus := operand.FirstToken()
		literal := mutation.WithLeadingTrivia(mutation.Retext(zero.Green(), "0"), minus.Green())
		batch.ReplaceNode(operand, mutation.Node(syntax.JsNumberLiteralExpression, literal))

		msg := fmt.Sprintf("Do not use the %s operator to compare against -0.", op.Text())
		signals = append(signals,
			ctx.Diagnostic(node.TextRange(), msg).
				WithAction("Replace -0 with 0", batch).
				Build())
	}
	return signals
}

// negativeZero matches `-0` and returns the number token.
func negativeZero(n *syntax.Node) (*syntax.Token, bool) {
	if n == nil || n.Kind() != syntax.JsUnaryExpression {
		return nil, false
	}
	op := n.FirstToken()
	if op == nil || op.Kind() != syntax.Minus {
		return nil, false
	}
	operand := n.FindNode(syntax.JsNumberLiteralExpression)
	if operand == nil {
		return nil, false
	}
	tok := operand.FirstToken()
	value, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text(), "_", ""), 64)
	if err != nil || value != 0 {
		return nil, false
	}
	return tok, true
}

// NoDoubleEqualsRule requires strict equality operators.
type NoDoubleEqualsRule struct {
	analyzer.BaseRule
}

// NewNoDoubleEqualsRule creates the noDoubleEquals rule.
func NewNoDoubleEqualsRule() *NoDoubleEqualsRule {
	return &NoDoubleEqualsRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noDoubleEquals",
			Group:       analyzer.GroupSuspicious,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Fix:         analyzer.FixUnsafe,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "eqeqeq"}},
			Description: "Require the use of === and !==.",
			Docs: "Require the use of `===` and `!==`.\n\n" +
				"`==` and `!=` coerce their operands. Comparisons against `null` are allowed " +
				"unless the `ignoreNull` option is false.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\nfoo == bar\n```\n\n### Valid\n\n```js\nfoo === bar\nfoo == null\n```\n",
		}, analyzer.QueryKinds(syntax.JsBinaryExpression)),
	}
}

// Run reports loose equality and offers the strict operator.
func (r *NoDoubleEqualsRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	bin, ok := js.AsBinaryExpression(node)
	if !ok {
		return nil
	}
	op := bin.Operator()
	if op == nil || (op.Kind() != syntax.Eq2 && op.Kind() != syntax.Neq) {
		return nil
	}
	if ctx.OptionBool("ignoreNull", true) && (isNullLiteral(bin.Left()) || isNullLiteral(bin.Right())) {
		return nil
	}

	strict, kind := "===", syntax.Eq3
	if op.Kind() == syntax.Neq {
		strict, kind = "!==", syntax.Neq2
	}
	batch := ctx.NewBatch()
	batch.ReplaceToken(op, replaceKeyword(op, kind, strict))
	return ctx.Diagnostic(op.TextRange(), fmt.Sprintf("Use %s instead of %s.", strict, op.Text())).
		WithNote(fmt.Sprintf("%s is only allowed when comparing against null.", op.Text())).
		WithAction("Use "+strict, batch).
		Signals()
}

func isNullLiteral(n *syntax.Node) bool {
	n = js.Unparenthesize(n)
	return n != nil && n.Kind() == syntax.JsNullLiteralExpression
}

// NoExplicitAnyRule disallows the `any` type.
type NoExplicitAnyRule struct {
	analyzer.BaseRule
}

// NewNoExplicitAnyRule creates the noExplicitAny rule.
func NewNoExplicitAnyRule() *NoExplicitAnyRule {
	return &NoExplicitAnyRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noExplicitAny",
			Group:       analyzer.GroupSuspicious,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Sources:     []analyzer.RuleSource{{Plugin: "@typescript-eslint", Name: "no-explicit-any"}},
			Description: "Disallow the any type usage.",
			Docs: "Disallow the `any` type usage.\n\n" +
				"`any` turns off type checking for every value it touches. Prefer `unknown` " +
				"and narrow the value before use.\n\n" +
				"## Examples\n\n### Invalid\n\n```ts\nlet value: any;\n```\n\n### Valid\n\n```ts\nlet value: unknown;\n```\n",
		}, analyzer.QueryKinds(syntax.TsPredefinedType)),
	}
}

// Run reports `any` annotations.
func (r *NoExplicitAnyRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	if node.FindToken(syntax.AnyKw) == nil {
		return nil
	}
	return ctx.Diagnostic(node.TextRange(), "Unexpected any. Specify a different type.").
		WithNote("any disables many type checking rules. Its use should be avoided.").
		Signals()
}

// NoConsoleRule disallows calls to console methods.
type NoConsoleRule struct {
	analyzer.BaseRule
}

// NewNoConsoleRule creates the noConsole rule.
func NewNoConsoleRule() *NoConsoleRule {
	return &NoConsoleRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noConsole",
			Group:       analyzer.GroupSuspicious,
			Language:    "javascript",
			Severity:    diagnostic.SeverityWarning,
			Fix:         analyzer.FixUnsafe,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "no-console"}},
			Description: "Disallow the use of console.",
			Docs: "Disallow the use of `console`.\n\n" +
				"The `allow` option lists methods that remain permitted, for example `[\"error\", \"warn\"]`.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\nconsole.log(value);\n```\n",
		}, analyzer.QueryMeta(analyzer.AllCallExpressions)),
	}
}

// Run reports console calls whose method is not allowed.
func (r *NoConsoleRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	call, ok := js.AsCallExpression(node)
	if !ok || node.Kind() != syntax.JsCallExpression {
		return nil
	}
	object, method, found := strings.Cut(call.CalleeName(), ".")
	if !found || object != "console" || strings.Contains(method, ".") {
		return nil
	}
	if slices.Contains(ctx.OptionStringSlice("allow", nil), method) {
		return nil
	}
	if model := ctx.Model(); model != nil {
		callee := js.Unparenthesize(call.Callee())
		if ref, ok := model.ReferenceAt(callee.TextRange().Start); ok && ref.Resolved() {
			// A local binding named console shadows the global.
			return nil
		}
	}

	b := ctx.Diagnostic(node.TextRange(), "Don't use console.")
	if stmt := node.Parent(); stmt != nil && stmt.Kind() == syntax.JsExpressionStatement {
		b.WithAction("Remove console."+method, removeStatement(ctx, stmt))
	}
	return b.Signals()
}
