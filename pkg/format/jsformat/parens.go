package jsformat

import (
	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// parenthesized prints a parenthesized expression, dropping parentheses
// the grammar does not need. Parentheses carrying comments are kept.
func (f *formatter) parenthesized(n *syntax.Node) format.Element {
	inner := firstExpr(n)
	if inner == nil {
		return f.verbatim(n)
	}
	target := js.Unparenthesize(n)
	if !f.parenHasComments(n) && !needsParens(n, target) {
		return f.node(inner)
	}
	return format.Concat(f.tok(n.FindToken(syntax.LParen)), f.node(inner), f.tok(n.FindToken(syntax.RParen)))
}

func (f *formatter) parenHasComments(n *syntax.Node) bool {
	for cur := n; cur != nil && cur.Kind() == syntax.JsParenthesizedExpression; cur = firstExpr(cur) {
		if f.comments.TokenHasComments(cur.FindToken(syntax.LParen)) ||
			f.comments.TokenHasComments(cur.FindToken(syntax.RParen)) {
			return true
		}
	}
	return false
}

// Operator precedence of binary-like expressions, loosest first.
const (
	precNone = iota
	precCoalesce
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
)

func precedence(op syntax.Kind) int {
	switch op {
	case syntax.QuestionQuestion:
		return precCoalesce
	case syntax.Pipe2:
		return precLogicalOr
	case syntax.Amp2:
		return precLogicalAnd
	case syntax.Pipe:
		return precBitwiseOr
	case syntax.Caret:
		return precBitwiseXor
	case syntax.Amp:
		return precBitwiseAnd
	case syntax.Eq2, syntax.Neq, syntax.Eq3, syntax.Neq2:
		return precEquality
	case syntax.Lt, syntax.Gt, syntax.LtEq, syntax.GtEq, syntax.InKw, syntax.InstanceofKw, syntax.AsKw,
		syntax.SatisfiesKw:
		return precRelational
	case syntax.Shl, syntax.Shr, syntax.UShr:
		return precShift
	case syntax.Plus, syntax.Minus:
		return precAdditive
	case syntax.Star, syntax.Slash, syntax.Percent:
		return precMultiplicative
	case syntax.Star2:
		return precExponent
	}
	return precNone
}

// operator returns the first direct token of a binary-like node.
func operator(n *syntax.Node) syntax.Kind {
	for el := range n.Children() {
		if t, ok := el.(*syntax.Token); ok {
			return t.Kind()
		}
	}
	return syntax.Tombstone
}

func isBinaryish(k syntax.Kind) bool {
	return js.AnyBinaryLike.Has(k) || k == syntax.TsAsExpression || k == syntax.TsSatisfiesExpression
}

func isBitwise(op syntax.Kind) bool {
	switch op {
	case syntax.Pipe, syntax.Caret, syntax.Amp, syntax.Shl, syntax.Shr, syntax.UShr:
		return true
	}
	return false
}

func isMultiplicative(op syntax.Kind) bool {
	return op == syntax.Star || op == syntax.Slash || op == syntax.Percent
}

// shouldFlatten reports whether `a op1 b op2 c` can print without
// parentheses around `a op1 b`.
func shouldFlatten(parentOp, op syntax.Kind) bool {
	if precedence(parentOp) != precedence(op) {
		return false
	}
	switch {
	case parentOp == syntax.Star2:
		return false
	case precedence(op) == precEquality:
		return false
	case (op == syntax.Percent && isMultiplicative(parentOp)) || (parentOp == syntax.Percent && isMultiplicative(op)):
		return false
	case op != parentOp && isMultiplicative(op) && isMultiplicative(parentOp):
		return false
	case precedence(op) == precShift:
		return false
	}
	return true
}

// role is the position of an expression within its parent.
type role uint8

const (
	roleOther role = iota
	roleLeft
	roleRight
	roleObject
	roleCallee
	roleTest
)

func roleOf(child *syntax.Node) role {
	parent := child.Parent()
	if parent == nil {
		return roleOther
	}
	exprs := js.Expressions(parent)
	index := -1
	for i, e := range exprs {
		if sameNode(e, child) {
			index = i
			break
		}
	}
	switch parent.Kind() {
	case syntax.JsStaticMemberExpression, syntax.JsComputedMemberExpression, syntax.JsStaticMemberAssignment,
		syntax.JsComputedMemberAssignment, syntax.TsNonNullAssertionExpression:
		if index == 0 {
			return roleObject
		}
	case syntax.JsCallExpression, syntax.JsNewExpression:
		if index == 0 {
			return roleCallee
		}
	case syntax.JsTemplateExpression:
		if index == 0 && parent.FirstToken().Kind() != syntax.Backtick {
			return roleCallee
		}
	case syntax.JsConditionalExpression:
		if index == 0 {
			return roleTest
		}
	}
	if isBinaryish(parent.Kind()) {
		switch index {
		case 0:
			return roleLeft
		case 1:
			return roleRight
		}
	}
	return roleOther
}

// needsParens reports whether the parentheses p around e are required.
//
//nolint:gocyclo,cyclop,funlen // Grammar table
func needsParens(p, e *syntax.Node) bool {
	parent := p.Parent()
	if parent == nil {
		return false
	}
	pk := parent.Kind()
	if pk == syntax.JsParenthesizedExpression {
		return false
	}
	if inForHead(p) && (e.Kind() == syntax.JsInExpression || containsIn(e)) {
		return true
	}
	if pk == syntax.JsForInStatement || pk == syntax.JsForOfStatement {
		return true
	}
	if pk == syntax.JsExtendsClause {
		switch e.Kind() {
		case syntax.JsIdentifierExpression, syntax.JsStaticMemberExpression, syntax.JsComputedMemberExpression,
			syntax.JsCallExpression, syntax.JsThisExpression:
			return false
		}
		return true
	}

	switch statementPosition(p) {
	case positionStatement, positionExportDefault:
		switch leftmost(e).Kind() {
		case syntax.JsObjectExpression, syntax.JsFunctionExpression, syntax.JsClassExpression:
			return true
		}
	case positionArrowBody:
		if leftmost(e).Kind() == syntax.JsObjectExpression || e.Kind() == syntax.JsSequenceExpression {
			return true
		}
	}

	r := roleOf(p)
	switch k := e.Kind(); {
	case k == syntax.JsxTagExpression:
		return true
	case k == syntax.JsSequenceExpression:
		return pk != syntax.JsExpressionStatement
	case k == syntax.JsAwaitExpression || k == syntax.JsYieldExpression:
		return isUnaryParent(pk) || r == roleObject || r == roleCallee || r == roleTest ||
			isBinaryish(pk) || pk == syntax.JsSpread
	case k == syntax.JsArrowFunctionExpression || k == syntax.JsFunctionExpression || k == syntax.JsClassExpression:
		return r == roleObject || r == roleCallee || r == roleTest || isBinaryish(pk) || isUnaryParent(pk)
	case k == syntax.JsAssignmentExpression:
		switch {
		case pk == syntax.JsExpressionStatement:
			return false
		case pk == syntax.JsAssignmentExpression && sameNode(lastChildNode(parent), p):
			return false
		}
		return true
	case k == syntax.JsConditionalExpression:
		return isBinaryish(pk) || isUnaryParent(pk) || r == roleObject || r == roleCallee || r == roleTest ||
			pk == syntax.JsExtendsClause
	case isBinaryish(k):
		if isUnaryParent(pk) || r == roleObject || r == roleCallee {
			return true
		}
		if !isBinaryish(pk) {
			return false
		}
		if k == syntax.TsAsExpression || k == syntax.TsSatisfiesExpression || pk == syntax.TsAsExpression ||
			pk == syntax.TsSatisfiesExpression {
			return true
		}
		po, no := operator(parent), operator(e)
		pp, np := precedence(po), precedence(no)
		switch {
		case pp > np:
			return true
		case pp == np && r == roleRight:
			return true
		case pp == np && !shouldFlatten(po, no):
			return true
		case pp < np && no == syntax.Percent:
			return po == syntax.Plus || po == syntax.Minus
		case isBitwise(po):
			return true
		case isLogical(po) && isLogical(no) && po != no:
			return true
		}
		return false
	case k == syntax.JsUnaryExpression || k == syntax.JsPreUpdateExpression || k == syntax.JsPostUpdateExpression:
		if r == roleObject || r == roleCallee {
			return true
		}
		if isBinaryish(pk) && operator(parent) == syntax.Star2 && r == roleLeft {
			return true
		}
		if pk == syntax.JsUnaryExpression {
			first := e.FirstToken()
			return first != nil && sameSign(operator(parent), first.Kind())
		}
		return false
	case k == syntax.JsNumberLiteralExpression:
		return r == roleObject && pk == syntax.JsStaticMemberExpression
	case k == syntax.JsNewExpression:
		return (r == roleObject || r == roleCallee) && e.FindNode(syntax.JsCallArguments) == nil
	case k == syntax.JsCallExpression || k == syntax.JsStaticMemberExpression || k == syntax.JsComputedMemberExpression:
		if pk == syntax.JsNewExpression && r == roleCallee && containsCall(e) {
			return true
		}
		return (r == roleObject || r == roleCallee) && js.IsOptionalChain(e)
	case k == syntax.TsNonNullAssertionExpression:
		return false
	}
	return false
}

func isLogical(op syntax.Kind) bool {
	return op == syntax.Amp2 || op == syntax.Pipe2 || op == syntax.QuestionQuestion
}

func isUnaryParent(k syntax.Kind) bool {
	switch k {
	case syntax.JsUnaryExpression, syntax.JsAwaitExpression, syntax.JsPreUpdateExpression,
		syntax.JsPostUpdateExpression, syntax.TsNonNullAssertionExpression:
		return true
	}
	return false
}

func containsCall(n *syntax.Node) bool {
	for cur := n; cur != nil; cur = firstExpr(cur) {
		switch cur.Kind() {
		case syntax.JsCallExpression:
			return true
		case syntax.JsStaticMemberExpression, syntax.JsComputedMemberExpression, syntax.TsNonNullAssertionExpression:
		default:
			return false
		}
	}
	return false
}

func containsIn(n *syntax.Node) bool {
	for d := range n.Descendants() {
		switch d.Kind() {
		case syntax.JsInExpression:
			return true
		case syntax.JsFunctionBody, syntax.JsClassMemberList:
			return false
		}
	}
	return false
}

// inForHead reports whether n is part of the initializer of a classic
// for statement, where `in` would be read as a for-in loop.
func inForHead(n *syntax.Node) bool {
	for cur := n; cur.Parent() != nil; cur = cur.Parent() {
		parent := cur.Parent()
		switch parent.Kind() {
		case syntax.JsForStatement:
			return true
		case syntax.JsFunctionBody, syntax.JsBlockStatement, syntax.JsClassMemberList:
			return false
		}
		if isStatement(parent.Kind()) {
			return false
		}
	}
	return false
}

type position uint8

const (
	positionNone position = iota
	positionStatement
	positionExportDefault
	positionArrowBody
)

// statementPosition reports whether n starts an expression statement,
// an `export default` expression or an arrow function body, where a
// leading `{`, `function` or `class` would be misread.
func statementPosition(n *syntax.Node) position {
	first := n.FirstToken()
	if first == nil {
		return positionNone
	}
	for cur := n; cur.Parent() != nil; cur = cur.Parent() {
		parent := cur.Parent()
		switch parent.Kind() {
		case syntax.JsExpressionStatement:
			return positionStatement
		case syntax.JsExportDefaultExpressionClause:
			return positionExportDefault
		case syntax.JsArrowFunctionExpression:
			if body := (js.Function{Node: parent}).Body(); body != nil && sameNode(body, cur) {
				return positionArrowBody
			}
			return positionNone
		}
		pf := parent.FirstToken()
		if pf == nil || pf.TextRange() != first.TextRange() || pf.Kind() != first.Kind() {
			return positionNone
		}
	}
	return positionNone
}

// leftmost returns the innermost expression printed first within n,
// looking through parentheses.
func leftmost(n *syntax.Node) *syntax.Node {
	for {
		if n.Kind() == syntax.JsParenthesizedExpression {
			inner := firstExpr(n)
			if inner == nil {
				return n
			}
			n = inner
			continue
		}
		first := n.FirstToken()
		var next *syntax.Node
		for c := range n.ChildNodes() {
			next = c
			break
		}
		if next == nil || first == nil {
			return n
		}
		nf := next.FirstToken()
		if nf == nil || nf.TextRange() != first.TextRange() || nf.Kind() != first.Kind() {
			return n
		}
		n = next
	}
}

func lastChildNode(n *syntax.Node) *syntax.Node {
	var last *syntax.Node
	for c := range n.ChildNodes() {
		last = c
	}
	return last
}
