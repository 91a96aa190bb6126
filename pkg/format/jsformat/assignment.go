package jsformat

import (
	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// layout is how an assignment-like construct breaks.
type layout uint8

const (
	layoutOnlyLeft layout = iota
	layoutChain
	layoutChainTail
	layoutChainTailArrow
	layoutBreakLeft
	layoutBreakAfterOperator
	layoutNeverBreakAfterOperator
	layoutFluid
	layoutSuppressed
)

// assignmentLike prints variable declarators, assignment expressions and
// object properties.
func (f *formatter) assignmentLike(n *syntax.Node) format.Element {
	switch n.Kind() {
	case syntax.JsVariableDeclarator:
		d := js.VariableDeclarator{Node: n}
		left := format.Concat(f.node(d.Binding()), f.tok(n.FindToken(syntax.Bang)), f.typeAnnotation(d.TypeAnnotation()))
		var op *syntax.Token
		if init := d.Initializer(); init != nil {
			op = init.FindToken(syntax.Eq)
		}
		return f.assignment(n, left, op, d.InitializerExpression())
	case syntax.JsAssignmentExpression:
		var target *syntax.Node
		for c := range n.ChildNodes() {
			target = c
			break
		}
		var op *syntax.Token
		for el := range n.Children() {
			if t, ok := el.(*syntax.Token); ok {
				op = t
				break
			}
		}
		return f.assignment(n, f.node(target), op, lastChildNode(n))
	case syntax.JsPropertyObjectMember:
		var key *syntax.Node
		for c := range n.ChildNodes() {
			key = c
			break
		}
		return f.assignment(n, f.node(key), n.FindToken(syntax.Colon), lastChildNode(n))
	}
	return f.verbatim(n)
}

// assignment lays out `left op right`.
func (f *formatter) assignment(n *syntax.Node, left format.Element, op *syntax.Token, right *syntax.Node) format.Element {
	if op == nil || right == nil || sameNode(right, firstChildNode(n)) {
		return format.NewGroup(left)
	}
	opDoc := format.Concat(format.Space{}, f.tok(op))
	if op.Kind() == syntax.Colon {
		opDoc = format.Concat(f.tok(op))
	}

	leftDoc := format.NewGroup(left)
	switch f.chooseLayout(n, right) {
	case layoutChain:
		return format.Concat(leftDoc, opDoc, format.SoftLineOrSpace, f.node(right))
	case layoutChainTail:
		return format.Concat(leftDoc, opDoc, format.Indent{Contents: format.Concat(format.SoftLineOrSpace, f.node(right))})
	case layoutChainTailArrow:
		return format.Concat(leftDoc, opDoc, format.Space{}, format.NewGroup(f.node(right)))
	case layoutBreakLeft:
		return format.NewGroup(left, opDoc, format.Space{}, format.NewGroup(f.node(right)))
	case layoutBreakAfterOperator:
		return format.NewGroup(leftDoc, opDoc,
			format.NewGroup(format.Indent{Contents: format.Concat(format.SoftLineOrSpace, f.node(right))}))
	case layoutNeverBreakAfterOperator:
		return format.NewGroup(leftDoc, opDoc, format.Space{}, f.node(right))
	case layoutSuppressed:
		ownLine := len(f.comments.Trailing(op)) > 0
		for _, c := range f.comments.Leading(right.FirstToken()) {
			if c.IsLine() || c.LinesAfter > 0 {
				ownLine = true
			}
		}
		if ownLine {
			return format.Concat(leftDoc, opDoc, format.Indent{Contents: format.Concat(format.HardLine, f.node(right))})
		}
		return format.Concat(leftDoc, opDoc, format.Space{}, f.node(right))
	}

	id := f.ctx.IDs.New()
	return format.NewGroup(leftDoc, opDoc,
		&format.Group{Contents: format.List{format.Indent{Contents: format.List{format.SoftLineOrSpace}}}, ID: id},
		format.LineSuffixBoundary{},
		format.IndentIfGroupBreaks{Contents: format.Concat(f.node(right)), GroupID: id})
}

func firstChildNode(n *syntax.Node) *syntax.Node {
	for c := range n.ChildNodes() {
		return c
	}
	return nil
}

//nolint:gocyclo,cyclop // Layout table
func (f *formatter) chooseLayout(n, right *syntax.Node) layout {
	if f.ctx.Suppressed(right) {
		return layoutSuppressed
	}

	isTail := right.Kind() != syntax.JsAssignmentExpression
	if n.Kind() == syntax.JsAssignmentExpression {
		if owner := assignmentOwner(n); owner != nil {
			outer := owner.Parent()
			for outer != nil && outer.Kind() == syntax.JsVariableDeclaratorList {
				outer = outer.Parent()
			}
			statement := outer != nil &&
				(outer.Kind() == syntax.JsExpressionStatement || outer.Kind() == syntax.JsVariableDeclaration)
			if !isTail || !statement {
				switch {
				case !isTail:
					return layoutChain
				case right.Kind() == syntax.JsArrowFunctionExpression && isArrowChain(right):
					return layoutChainTailArrow
				}
				return layoutChainTail
			}
		}
	}

	if inner := lastChildNode(right); !isTail && inner != nil && inner.Kind() == syntax.JsAssignmentExpression {
		return layoutBreakAfterOperator
	}
	for _, c := range f.comments.Leading(right.FirstToken()) {
		if c.IsLine() || c.LinesAfter > 0 {
			return layoutBreakAfterOperator
		}
	}

	if right.Kind() == syntax.JsCallExpression {
		if callee := firstExpr(right); callee != nil && callee.Kind() == syntax.JsIdentifierExpression &&
			callee.FirstToken().Text() == "require" {
			return layoutNeverBreakAfterOperator
		}
	}
	if right.Kind() == syntax.JsImportCallExpression {
		return layoutNeverBreakAfterOperator
	}
	if n.Kind() == syntax.JsVariableDeclarator && isComplexDestructuring(js.VariableDeclarator{Node: n}.Binding()) {
		return layoutBreakLeft
	}
	if n.Kind() == syntax.JsAssignmentExpression && isComplexDestructuring(firstChildNode(n)) {
		return layoutBreakLeft
	}

	shortKey := f.hasShortKey(n)
	if f.shouldBreakAfterOperator(right, shortKey) {
		return layoutBreakAfterOperator
	}
	switch right.Kind() {
	case syntax.JsTemplateExpression, syntax.JsBooleanLiteralExpression, syntax.JsNumberLiteralExpression,
		syntax.JsBigintLiteralExpression, syntax.JsClassExpression:
		return layoutNeverBreakAfterOperator
	case syntax.JsArrowFunctionExpression:
		if isArrowChain(right) {
			return layoutChainTailArrow
		}
	}
	if shortKey {
		return layoutNeverBreakAfterOperator
	}
	return layoutFluid
}

// assignmentOwner returns the assignment or declarator whose right side
// is n, or nil.
func assignmentOwner(n *syntax.Node) *syntax.Node {
	parent := effectiveParent(n)
	if parent == nil {
		return nil
	}
	switch parent.Kind() {
	case syntax.JsAssignmentExpression:
		return parent
	case syntax.JsInitializerClause:
		if gp := parent.Parent(); gp != nil && gp.Kind() == syntax.JsVariableDeclarator {
			return gp
		}
	}
	return nil
}

func isArrowChain(n *syntax.Node) bool {
	body := js.Function{Node: n}.Body()
	return body != nil && body.Kind() == syntax.JsArrowFunctionExpression
}

// isComplexDestructuring reports an object pattern with more than two
// properties where some property has a default value.
func isComplexDestructuring(n *syntax.Node) bool {
	if n == nil {
		return false
	}
	var list *syntax.Node
	switch n.Kind() {
	case syntax.JsObjectBindingPattern:
		list = n.FindNode(syntax.JsObjectBindingPatternPropertyList)
	case syntax.JsObjectExpression:
		list = n.FindNode(syntax.JsObjectMemberList)
	default:
		return false
	}
	its := items(list)
	if len(its) <= 2 {
		return false
	}
	for _, it := range its {
		if it.node.FindNode(syntax.JsInitializerClause) != nil {
			return true
		}
		if it.node.Kind() == syntax.JsPropertyObjectMember {
			if v := lastChildNode(it.node); v != nil && v.Kind() == syntax.JsAssignmentExpression {
				return true
			}
		}
	}
	return false
}

// hasShortKey reports an object property whose key is narrower than one
// indentation level.
func (f *formatter) hasShortKey(n *syntax.Node) bool {
	if n.Kind() != syntax.JsPropertyObjectMember {
		return false
	}
	key := firstChildNode(n)
	if key == nil || key.Kind() != syntax.JsLiteralMemberName {
		return false
	}
	return len(key.TrimmedText()) < f.opts.IndentWidth
}

func (f *formatter) shouldBreakAfterOperator(right *syntax.Node, shortKey bool) bool {
	if isBinaryish(right.Kind()) && !shouldInlineLogical(right) {
		return true
	}
	switch right.Kind() {
	case syntax.JsSequenceExpression:
		return true
	case syntax.JsConditionalExpression:
		if test := firstExpr(right); test != nil && isBinaryish(test.Kind()) && !shouldInlineLogical(test) {
			return true
		}
	case syntax.JsClassExpression:
		return false
	}
	if shortKey {
		return false
	}
	node := right
	for node.Kind() == syntax.JsUnaryExpression || node.Kind() == syntax.TsNonNullAssertionExpression {
		next := firstExpr(node)
		if next == nil {
			break
		}
		node = next
	}
	return node.Kind() == syntax.JsStringLiteralExpression || isMemberChain(node)
}

// isMemberChain reports a chain of static member lookups ending in an
// identifier or `this`, such as `a.b.c`.
func isMemberChain(n *syntax.Node) bool {
	if n.Kind() != syntax.JsStaticMemberExpression {
		return false
	}
	for n.Kind() == syntax.JsStaticMemberExpression {
		n = firstExpr(n)
		if n == nil {
			return false
		}
	}
	return n.Kind() == syntax.JsIdentifierExpression || n.Kind() == syntax.JsThisExpression
}
