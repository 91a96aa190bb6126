package jsformat

import (
	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// binary prints a chain of binary-like expressions. Operands of the same
// precedence are flattened so that the chain breaks after each operator
// at one indentation level.
func (f *formatter) binary(n *syntax.Node) format.Element {
	parts := f.binaryParts(n)
	parent := effectiveParent(n)
	if parent == nil {
		return format.NewGroup(parts...)
	}

	switch parent.Kind() {
	case syntax.JsIfStatement, syntax.JsWhileStatement, syntax.JsDoWhileStatement, syntax.JsSwitchStatement:
		return format.Concat(parts...)
	}
	if p := n.Parent(); p.Kind() == syntax.JsParenthesizedExpression && needsParens(p, n) {
		if r := roleOf(p); r == roleObject || r == roleCallee || isUnaryParent(p.Parent().Kind()) {
			return format.NewGroup(format.Indent{Contents: format.Concat(format.SoftLine, format.List(parts))},
				format.SoftLine)
		}
	}

	inline := shouldInlineLogical(n)
	samePrecedenceLeft := false
	if b, ok := js.AsBinaryExpression(n); ok {
		if left := b.Left(); left != nil && isBinaryish(left.Kind()) && b.Operator() != nil {
			samePrecedenceLeft = shouldFlatten(b.Operator().Kind(), operator(left))
		}
	}
	switch {
	case parent.Kind() == syntax.JsReturnStatement, parent.Kind() == syntax.JsThrowStatement,
		parent.Kind() == syntax.JsArrowFunctionExpression,
		isBinaryish(parent.Kind()),
		inline && !samePrecedenceLeft,
		!inline && isAssignmentLike(parent.Kind()):
		return format.NewGroup(parts...)
	}
	return format.NewGroup(parts[0], format.Indent{Contents: format.Concat(parts[1:]...)})
}

// binaryParts returns the left-most operand followed by one part per
// operator and right operand.
func (f *formatter) binaryParts(n *syntax.Node) []format.Element {
	b, ok := js.AsBinaryExpression(n)
	if !ok {
		return []format.Element{f.node(n)}
	}
	left, op, right := b.Left(), b.Operator(), b.Right()
	if left == nil || op == nil || right == nil {
		return []format.Element{f.verbatim(n)}
	}

	var parts []format.Element
	if js.AnyBinaryLike.Has(left.Kind()) && shouldFlatten(op.Kind(), operator(left)) && !f.ctx.Suppressed(left) {
		parts = f.binaryParts(left)
	} else {
		parts = []format.Element{format.NewGroup(f.node(left))}
	}

	var line format.Element = format.SoftLineOrSpace
	if shouldInlineLogical(n) {
		line = format.Space{}
	}
	rhs := format.Concat(f.tok(op), line, f.node(right))

	parent := n.Parent()
	group := parent != nil && parent.Kind() != n.Kind() && left.Kind() != n.Kind() && right.Kind() != n.Kind()
	if group {
		return append(parts, format.Concat(format.Space{}, format.NewGroup(rhs)))
	}
	return append(parts, format.Concat(format.Space{}, rhs))
}

// shouldInlineLogical reports whether a logical expression keeps a
// non-empty object or array on the operator line.
func shouldInlineLogical(n *syntax.Node) bool {
	if n.Kind() != syntax.JsLogicalExpression {
		return false
	}
	b, _ := js.AsBinaryExpression(n)
	right := b.Right()
	if right == nil {
		return false
	}
	switch right.Kind() {
	case syntax.JsObjectExpression:
		return len(items(right.FindNode(syntax.JsObjectMemberList))) > 0
	case syntax.JsArrayExpression:
		return len(items(right.FindNode(syntax.JsArrayElementList))) > 0
	}
	return false
}

// effectiveParent returns the parent of n looking through parentheses
// that are printed away.
func effectiveParent(n *syntax.Node) *syntax.Node {
	parent := n.Parent()
	for parent != nil && parent.Kind() == syntax.JsParenthesizedExpression {
		parent = parent.Parent()
	}
	return parent
}

func isAssignmentLike(k syntax.Kind) bool {
	switch k {
	case syntax.JsAssignmentExpression, syntax.JsVariableDeclarator, syntax.JsInitializerClause,
		syntax.JsPropertyObjectMember, syntax.JsPropertyClassMember:
		return true
	}
	return false
}
