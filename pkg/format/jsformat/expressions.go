package jsformat

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func firstExpr(n *syntax.Node) *syntax.Node {
	if n == nil {
		return nil
	}
	if exprs := js.Expressions(n); len(exprs) > 0 {
		return exprs[0]
	}
	return nil
}

//nolint:gocyclo,cyclop,funlen // Node dispatch
func (f *formatter) expression(n *syntax.Node) format.Element {
	switch n.Kind() {
	case syntax.JsIdentifierExpression, syntax.JsReferenceIdentifier, syntax.JsIdentifierBinding, syntax.JsName,
		syntax.JsPrivateName, syntax.JsThisExpression, syntax.JsSuperExpression, syntax.JsNullLiteralExpression,
		syntax.JsBooleanLiteralExpression, syntax.JsRegexLiteralExpression, syntax.JsIdentifierAssignment,
		syntax.JsNewTargetExpression, syntax.JsImportMetaExpression, syntax.JsDefaultImportSpecifier:
		return f.tokens(n)
	case syntax.JsStringLiteralExpression, syntax.JsModuleSource:
		return f.stringToken(n.FirstToken())
	case syntax.JsNumberLiteralExpression:
		return f.numberToken(n.FirstToken(), isStaticMemberObject(n))
	case syntax.JsBigintLiteralExpression:
		t := n.FirstToken()
		return f.tokText(t, strings.ToLower(t.Text()))
	case syntax.JsLiteralMemberName:
		return f.memberName(n)
	case syntax.JsComputedMemberName:
		return format.Concat(f.tok(n.FindToken(syntax.LBrack)), f.node(firstExpr(n)), f.tok(n.FindToken(syntax.RBrack)))
	case syntax.JsParenthesizedExpression:
		return f.parenthesized(n)
	case syntax.JsArrayExpression, syntax.JsArrayBindingPattern:
		return f.array(n)
	case syntax.JsObjectExpression, syntax.JsObjectBindingPattern:
		return f.object(n)
	case syntax.JsPropertyObjectMember:
		return f.assignmentLike(n)
	case syntax.JsShorthandPropertyObjectMember, syntax.JsObjectBindingPatternShorthandProperty,
		syntax.JsArrayBindingPatternElement, syntax.JsObjectBindingPatternProperty:
		return f.bindingElement(n)
	case syntax.JsSpread, syntax.JsBindingPatternRest, syntax.JsRestParameter:
		return format.Concat(f.tok(n.FindToken(syntax.DotDotDot)), f.node(firstNodeAfter(n, syntax.DotDotDot)),
			f.typeAnnotation(n.FindNode(syntax.TsTypeAnnotation)))
	case syntax.JsArrayHole:
		return nil
	case syntax.JsFormalParameter:
		return f.parameter(n)
	case syntax.JsSequenceExpression:
		return f.sequence(n)
	case syntax.JsUnaryExpression:
		return f.unary(n)
	case syntax.JsPreUpdateExpression, syntax.JsPostUpdateExpression, syntax.TsNonNullAssertionExpression:
		return f.adjacent(n)
	case syntax.JsAwaitExpression, syntax.JsYieldExpression:
		return f.keywordExpression(n)
	case syntax.JsBinaryExpression, syntax.JsLogicalExpression, syntax.JsInExpression,
		syntax.JsInstanceofExpression:
		return f.binary(n)
	case syntax.TsAsExpression, syntax.TsSatisfiesExpression:
		return format.Concat(f.node(firstExpr(n)), format.Space{}, f.tok(n.FindToken(syntax.AsKw, syntax.SatisfiesKw)),
			format.Space{}, f.typeNode(n.FindNode(js.AnyType.Kinds()...)))
	case syntax.JsConditionalExpression:
		return f.conditional(n)
	case syntax.JsAssignmentExpression:
		return f.assignmentLike(n)
	case syntax.JsStaticMemberExpression, syntax.JsComputedMemberExpression, syntax.JsCallExpression,
		syntax.JsStaticMemberAssignment, syntax.JsComputedMemberAssignment:
		return f.chain(n)
	case syntax.JsNewExpression:
		return f.newExpression(n)
	case syntax.JsImportCallExpression:
		return format.Concat(f.tok(n.FindToken(syntax.ImportKw)), f.arguments(n.FindNode(syntax.JsCallArguments)))
	case syntax.JsFunctionExpression, syntax.JsMethodObjectMember, syntax.JsGetterObjectMember,
		syntax.JsSetterObjectMember, syntax.JsMethodClassMember, syntax.JsGetterClassMember,
		syntax.JsSetterClassMember, syntax.JsConstructorClassMember:
		return f.function(n)
	case syntax.JsArrowFunctionExpression:
		return f.arrow(n)
	case syntax.JsClassExpression:
		return f.class(n)
	case syntax.JsPropertyClassMember:
		return f.classProperty(n)
	case syntax.JsVariableDeclaration, syntax.JsForVariableDeclaration:
		return f.variableDeclaration(n)
	case syntax.JsVariableDeclarator:
		return f.assignmentLike(n)
	case syntax.TsTypeAnnotation, syntax.TsReturnTypeAnnotation:
		return f.typeAnnotation(n)
	case syntax.JsImportBareClause, syntax.JsImportDefaultClause, syntax.JsImportNamedClause,
		syntax.JsImportNamespaceClause, syntax.JsImportCombinedClause, syntax.JsExportFromClause,
		syntax.JsExportNamedClause, syntax.JsExportNamedFromClause, syntax.JsExportDefaultDeclarationClause,
		syntax.JsExportDefaultExpressionClause:
		return f.moduleClause(n)
	case syntax.JsNamedImportSpecifier, syntax.JsShorthandNamedImportSpecifier, syntax.JsNamespaceImportSpecifier,
		syntax.JsExportNamedSpecifier:
		return f.spaced(n)
	case syntax.JsxTagExpression:
		return f.jsxTag(n)
	case syntax.TsTypeArguments, syntax.TsTypeParameters:
		return f.typeList(n)
	}
	if js.AnyType.Has(n.Kind()) {
		return f.typeNode(n)
	}
	return f.verbatim(n)
}

// tokens prints the tokens of n without separators.
func (f *formatter) tokens(n *syntax.Node) format.Element {
	var out format.List
	for t := range n.Tokens() {
		out = append(out, f.tok(t))
	}
	return out
}

// adjacent prints the children of n with no space between them.
func (f *formatter) adjacent(n *syntax.Node) format.Element {
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			out = append(out, f.tok(c))
		case *syntax.Node:
			out = append(out, f.node(c))
		}
	}
	return out
}

func firstNodeAfter(n *syntax.Node, kind syntax.Kind) *syntax.Node {
	seen := false
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			if c.Kind() == kind {
				seen = true
			}
		case *syntax.Node:
			if seen {
				return c
			}
		}
	}
	return nil
}

func (f *formatter) quote() string {
	if f.opts.QuoteStyle == format.QuoteSingle {
		return "'"
	}
	return `"`
}

func (f *formatter) stringToken(t *syntax.Token) format.Element {
	if t == nil {
		return nil
	}
	return f.tokText(t, normalizeString(t.Text(), f.quote()[0]))
}

func (f *formatter) numberToken(t *syntax.Token, memberObject bool) format.Element {
	if t == nil {
		return nil
	}
	return f.tokText(t, normalizeNumber(t.Text(), memberObject))
}

func isStaticMemberObject(n *syntax.Node) bool {
	parent := n.Parent()
	return parent != nil && parent.Kind() == syntax.JsStaticMemberExpression && firstExpr(parent) != nil &&
		sameNode(firstExpr(parent), n)
}

func sameNode(a, b *syntax.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind() == b.Kind() && a.Range() == b.Range()
}

// normalizeString requotes a string literal with the preferred quote
// unless the content holds more of those quotes than of the other kind.
// Escapes of the quote not used as delimiter are dropped.
func normalizeString(raw string, preferred byte) string {
	return format.QuoteString(raw, preferred)
}

// normalizeNumber lowercases prefixes and exponents, adds a leading zero
// before a dot and drops redundant exponent signs and fraction zeros.
// Literals used as member objects keep their trailing dot.
func normalizeNumber(raw string, memberObject bool) string {
	lower := strings.ToLower(raw)
	if len(lower) > 1 && lower[0] == '0' && strings.ContainsRune("box", rune(lower[1])) {
		return lower[:2] + raw[2:]
	}
	if memberObject || strings.Contains(lower, "_") {
		return lower
	}

	mantissa, exponent, hasExp := strings.Cut(lower, "e")
	if hasExp {
		sign := ""
		switch {
		case strings.HasPrefix(exponent, "+"):
			exponent = exponent[1:]
		case strings.HasPrefix(exponent, "-"):
			sign, exponent = "-", exponent[1:]
		}
		exponent = strings.TrimLeft(exponent, "0")
		if exponent == "" {
			hasExp = false
		} else {
			exponent = sign + exponent
		}
	}
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if whole, frac, ok := strings.Cut(mantissa, "."); ok {
		if trimmed := strings.TrimRight(frac, "0"); trimmed != "" {
			frac = trimmed
		} else if len(frac) > 1 {
			frac = frac[:1]
		}
		mantissa = whole
		if frac != "" {
			mantissa += "." + frac
		}
	}
	if hasExp {
		return mantissa + "e" + exponent
	}
	return mantissa
}

// memberName prints a property key. Quoted keys lose their quotes when
// every quoted key of the enclosing object is a plain identifier.
func (f *formatter) memberName(n *syntax.Node) format.Element {
	t := n.FirstToken()
	switch t.Kind() {
	case syntax.StringLit:
		if obj := enclosingObject(n); obj != nil && canUnquoteKeys(obj) {
			return f.tokText(t, js.StringValue(t.Text()))
		}
		return f.stringToken(t)
	case syntax.NumberLit:
		return f.numberToken(t, false)
	}
	return f.tokens(n)
}

func enclosingObject(name *syntax.Node) *syntax.Node {
	member := name.Parent()
	if member == nil || member.Kind() != syntax.JsPropertyObjectMember {
		return nil
	}
	list := member.Parent()
	if list == nil {
		return nil
	}
	return list.Parent()
}

func canUnquoteKeys(obj *syntax.Node) bool {
	list := obj.FindNode(syntax.JsObjectMemberList)
	if list == nil {
		return false
	}
	quoted := false
	for _, member := range list.ChildNodeList() {
		if member.Kind() != syntax.JsPropertyObjectMember {
			continue
		}
		name := member.FindNode(syntax.JsLiteralMemberName)
		if name == nil {
			continue
		}
		t := name.FirstToken()
		if t.Kind() == syntax.NumberLit {
			return false
		}
		if t.Kind() != syntax.StringLit {
			continue
		}
		quoted = true
		if !isIdentifierName(js.StringValue(t.Text())) {
			return false
		}
	}
	return quoted
}

func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func (f *formatter) sequence(n *syntax.Node) format.Element {
	var parts []format.Element
	var walk func(*syntax.Node)
	walk = func(s *syntax.Node) {
		exprs := js.Expressions(s)
		if len(exprs) == 0 {
			return
		}
		left := exprs[0]
		if left.Kind() == syntax.JsSequenceExpression && !f.ctx.Suppressed(left) {
			walk(left)
		} else {
			parts = append(parts, f.node(left))
		}
		comma := s.FindToken(syntax.Comma)
		parts[len(parts)-1] = format.Concat(parts[len(parts)-1], f.tok(comma))
		if len(exprs) > 1 {
			parts = append(parts, f.node(exprs[1]))
		}
	}
	walk(n)
	if len(parts) == 0 {
		return nil
	}
	return format.NewGroup(parts[0], format.Indent{Contents: format.Concat(format.SoftLineOrSpace,
		format.Join(format.SoftLineOrSpace, parts[1:]))})
}

func (f *formatter) unary(n *syntax.Node) format.Element {
	var op *syntax.Token
	for el := range n.Children() {
		if t, ok := el.(*syntax.Token); ok {
			op = t
			break
		}
	}
	arg := firstExpr(n)
	out := format.Concat(f.tok(op))
	switch op.Kind() {
	case syntax.TypeofKw, syntax.VoidKw, syntax.DeleteKw:
		out = append(out, format.Space{})
	case syntax.Plus, syntax.Minus:
		if arg != nil {
			if first := arg.FirstToken(); first != nil && sameSign(op.Kind(), first.Kind()) {
				out = append(out, format.Space{})
			}
		}
	}
	return format.Concat(out, f.node(arg))
}

func sameSign(op, next syntax.Kind) bool {
	switch op {
	case syntax.Plus:
		return next == syntax.Plus || next == syntax.Plus2
	case syntax.Minus:
		return next == syntax.Minus || next == syntax.Minus2
	}
	return false
}

func (f *formatter) keywordExpression(n *syntax.Node) format.Element {
	out := format.Concat(f.tok(n.FindToken(syntax.AwaitKw, syntax.YieldKw)))
	if star := n.FindToken(syntax.Star); star != nil {
		out = append(out, f.tok(star))
	}
	if arg := firstExpr(n); arg != nil {
		out = append(out, format.Space{}, f.node(arg))
	}
	return out
}

func (f *formatter) conditional(n *syntax.Node) format.Element {
	exprs := js.Expressions(n)
	if len(exprs) != 3 {
		return f.verbatim(n)
	}
	return format.NewGroup(f.node(exprs[0]), format.Indent{Contents: format.Concat(
		format.SoftLineOrSpace, f.tok(n.FindToken(syntax.Question)), format.Space{}, f.node(exprs[1]),
		format.SoftLineOrSpace, f.tok(n.FindToken(syntax.Colon)), format.Space{}, f.node(exprs[2]),
	)})
}

func (f *formatter) newExpression(n *syntax.Node) format.Element {
	out := format.Concat(f.tok(n.FindToken(syntax.NewKw)), format.Space{}, f.node(firstExpr(n)))
	if targs := n.FindNode(syntax.TsTypeArguments); targs != nil {
		out = append(out, f.typeNode(targs))
	}
	if args := n.FindNode(syntax.JsCallArguments); args != nil {
		return format.Concat(out, f.arguments(args))
	}
	return format.Concat(out, format.Str("()"))
}

// array prints array literals and array patterns. Lists of numbers are
// filled; lists of several objects or arrays break one per line.
func (f *formatter) array(n *syntax.Node) format.Element {
	list := n.FindNode(syntax.JsArrayElementList, syntax.JsArrayBindingPatternElementList)
	its := items(list)
	printed := f.printItems(its, f.node)

	o := delimitedOptions{trailing: f.trailingComma(true)}
	if len(its) > 0 {
		last := its[len(its)-1].node.Kind()
		o.forceTrailing = last == syntax.JsArrayHole
		if last == syntax.JsBindingPatternRest {
			o.trailing = false
		}
	}
	o.fill = len(its) > 1 && allItems(its, isNumberElement)
	o.expand = len(its) > 1 && allItems(its, func(el *syntax.Node) bool {
		return el.Kind() == its[0].node.Kind() && isCollectionWithMany(el)
	})
	return f.delimited(n.FindToken(syntax.LBrack), printed, n.FindToken(syntax.RBrack), o)
}

func allItems(its []listItem, pred func(*syntax.Node) bool) bool {
	for _, it := range its {
		if !pred(it.node) {
			return false
		}
	}
	return true
}

func isNumberElement(n *syntax.Node) bool {
	switch n.Kind() {
	case syntax.JsNumberLiteralExpression:
		return true
	case syntax.JsUnaryExpression:
		arg := firstExpr(n)
		op := n.FirstToken().Kind()
		return arg != nil && arg.Kind() == syntax.JsNumberLiteralExpression && (op == syntax.Minus || op == syntax.Plus)
	}
	return false
}

func isCollectionWithMany(n *syntax.Node) bool {
	var list *syntax.Node
	switch n.Kind() {
	case syntax.JsObjectExpression:
		list = n.FindNode(syntax.JsObjectMemberList)
	case syntax.JsArrayExpression:
		list = n.FindNode(syntax.JsArrayElementList)
	default:
		return false
	}
	return len(items(list)) > 1
}

// object prints object literals and object patterns. A literal whose
// first member starts on a new line stays expanded.
func (f *formatter) object(n *syntax.Node) format.Element {
	list := n.FindNode(syntax.JsObjectMemberList, syntax.JsObjectBindingPatternPropertyList)
	its := items(list)
	printed := f.printItems(its, f.node)

	o := delimitedOptions{spaced: f.opts.BracketSpacing, trailing: f.trailingComma(true)}
	if len(its) > 0 {
		if its[len(its)-1].node.Kind() == syntax.JsBindingPatternRest {
			o.trailing = false
		}
		if n.Kind() == syntax.JsObjectExpression {
			if first := its[0].node.FirstToken(); first != nil && first.HasLeadingNewline() {
				o.expand = true
			}
		}
	}
	return f.delimited(n.FindToken(syntax.LBrace), printed, n.FindToken(syntax.RBrace), o)
}

// bindingElement prints `name`, `name = default`, `key: binding` and
// `key: binding = default`.
func (f *formatter) bindingElement(n *syntax.Node) format.Element {
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			out = append(out, f.tok(c))
			if c.Kind() == syntax.Colon {
				out = append(out, format.Space{})
			}
		case *syntax.Node:
			if c.Kind() == syntax.JsInitializerClause {
				out = append(out, format.Space{}, f.tok(c.FindToken(syntax.Eq)), format.Space{},
					f.node(firstExpr(c)))
				continue
			}
			out = append(out, f.node(c))
		}
	}
	return out
}

// parameter prints a formal parameter with its modifiers, optional
// marker, annotation and default.
func (f *formatter) parameter(n *syntax.Node) format.Element {
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			out = append(out, f.tok(c))
		case *syntax.Node:
			switch c.Kind() {
			case syntax.JsModifierList:
				for t := range c.Tokens() {
					out = append(out, f.tok(t), format.Space{})
				}
			case syntax.TsTypeAnnotation:
				out = append(out, f.typeAnnotation(c))
			case syntax.JsInitializerClause:
				out = append(out, format.Space{}, f.tok(c.FindToken(syntax.Eq)), format.Space{},
					f.node(firstExpr(c)))
			default:
				out = append(out, f.node(c))
			}
		}
	}
	return out
}

// parameters prints a parenthesized parameter list. A lone object
// pattern hugs the parentheses.
func (f *formatter) parameters(n *syntax.Node) format.Element {
	if n == nil {
		return format.Str("()")
	}
	its := items(n.FindNode(syntax.JsParameterList))
	printed := f.printItems(its, f.node)
	o := delimitedOptions{trailing: f.trailingComma(false)}
	if len(its) > 0 && its[len(its)-1].node.Kind() == syntax.JsRestParameter {
		o.trailing = false
	}
	open, close := n.FindToken(syntax.LParen), n.FindToken(syntax.RParen)
	if len(its) == 1 && shouldHugParameter(its[0].node) && !f.comments.HasComments(n) {
		return format.Concat(f.tok(open), printed[0], f.tok(close))
	}
	return f.delimited(open, printed, close, o)
}

func shouldHugParameter(p *syntax.Node) bool {
	if p.Kind() != syntax.JsFormalParameter {
		return false
	}
	binding := p.FindNode(js.AnyBinding.Kinds()...)
	if binding == nil || p.FindNode(syntax.JsInitializerClause) != nil {
		return false
	}
	return binding.Kind() == syntax.JsObjectBindingPattern
}
