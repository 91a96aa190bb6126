package js

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Kind sets for the union types of the JavaScript grammar.
//
//nolint:gochecknoglobals // Static kind sets
var (
	AnyExpression = syntax.KindSetOf(
		syntax.JsIdentifierExpression, syntax.JsNumberLiteralExpression, syntax.JsStringLiteralExpression,
		syntax.JsBooleanLiteralExpression, syntax.JsNullLiteralExpression, syntax.JsRegexLiteralExpression,
		syntax.JsBigintLiteralExpression, syntax.JsTemplateExpression, syntax.JsArrayExpression,
		syntax.JsObjectExpression, syntax.JsParenthesizedExpression, syntax.JsSequenceExpression,
		syntax.JsUnaryExpression, syntax.JsPreUpdateExpression, syntax.JsPostUpdateExpression,
		syntax.JsBinaryExpression, syntax.JsLogicalExpression, syntax.JsInExpression,
		syntax.JsInstanceofExpression, syntax.JsConditionalExpression, syntax.JsAssignmentExpression,
		syntax.JsCallExpression, syntax.JsNewExpression, syntax.JsStaticMemberExpression,
		syntax.JsComputedMemberExpression, syntax.JsThisExpression, syntax.JsSuperExpression,
		syntax.JsFunctionExpression, syntax.JsArrowFunctionExpression, syntax.JsClassExpression,
		syntax.JsAwaitExpression, syntax.JsYieldExpression, syntax.JsImportCallExpression,
		syntax.JsImportMetaExpression, syntax.JsNewTargetExpression, syntax.TsAsExpression,
		syntax.TsSatisfiesExpression, syntax.TsNonNullAssertionExpression, syntax.JsxTagExpression,
		syntax.JsPrivateName, syntax.JsBogusExpression,
	)

	AnyStatement = syntax.KindSetOf(
		syntax.JsExpressionStatement, syntax.JsVariableStatement, syntax.JsBlockStatement,
		syntax.JsEmptyStatement, syntax.JsIfStatement, syntax.JsForStatement, syntax.JsForInStatement,
		syntax.JsForOfStatement, syntax.JsWhileStatement, syntax.JsDoWhileStatement, syntax.JsSwitchStatement,
		syntax.JsTryStatement, syntax.JsReturnStatement, syntax.JsThrowStatement, syntax.JsBreakStatement,
		syntax.JsContinueStatement, syntax.JsLabeledStatement, syntax.JsDebuggerStatement,
		syntax.JsWithStatement, syntax.JsFunctionDeclaration, syntax.JsClassDeclaration,
		syntax.TsTypeAliasDeclaration, syntax.TsInterfaceDeclaration, syntax.TsEnumDeclaration,
		syntax.JsImport, syntax.JsExport, syntax.JsDirective, syntax.JsBogusStatement,
	)

	// AnyFunction covers every construct with its own parameters and body.
	AnyFunction = syntax.KindSetOf(
		syntax.JsFunctionDeclaration, syntax.JsFunctionExpression, syntax.JsArrowFunctionExpression,
		syntax.JsMethodClassMember, syntax.JsMethodObjectMember, syntax.JsGetterClassMember,
		syntax.JsSetterClassMember, syntax.JsGetterObjectMember, syntax.JsSetterObjectMember,
		syntax.JsConstructorClassMember,
	)

	AnyClass = syntax.KindSetOf(syntax.JsClassDeclaration, syntax.JsClassExpression)

	AnyClassMember = syntax.KindSetOf(
		syntax.JsConstructorClassMember, syntax.JsMethodClassMember, syntax.JsPropertyClassMember,
		syntax.JsGetterClassMember, syntax.JsSetterClassMember, syntax.JsEmptyClassMember,
		syntax.JsBogusMember,
	)

	AnyObjectMember = syntax.KindSetOf(
		syntax.JsPropertyObjectMember, syntax.JsShorthandPropertyObjectMember, syntax.JsMethodObjectMember,
		syntax.JsGetterObjectMember, syntax.JsSetterObjectMember, syntax.JsSpread, syntax.JsBogusMember,
	)

	AnyBinding = syntax.KindSetOf(
		syntax.JsIdentifierBinding, syntax.JsArrayBindingPattern, syntax.JsObjectBindingPattern,
		syntax.JsBogusBinding,
	)

	AnyAssignmentTarget = syntax.KindSetOf(
		syntax.JsIdentifierAssignment, syntax.JsStaticMemberAssignment, syntax.JsComputedMemberAssignment,
		syntax.JsArrayExpression, syntax.JsObjectExpression, syntax.JsParenthesizedExpression,
		syntax.JsBogusAssignment, syntax.TsNonNullAssertionExpression, syntax.TsAsExpression,
	)

	AnyMemberExpression = syntax.KindSetOf(syntax.JsStaticMemberExpression, syntax.JsComputedMemberExpression)

	AnyLiteral = syntax.KindSetOf(
		syntax.JsNumberLiteralExpression, syntax.JsStringLiteralExpression, syntax.JsBooleanLiteralExpression,
		syntax.JsNullLiteralExpression, syntax.JsRegexLiteralExpression, syntax.JsBigintLiteralExpression,
	)

	// AnyBinaryLike groups the nodes with a left operand, an operator token and a right operand.
	AnyBinaryLike = syntax.KindSetOf(
		syntax.JsBinaryExpression, syntax.JsLogicalExpression, syntax.JsInExpression,
		syntax.JsInstanceofExpression,
	)

	AnyType = syntax.KindSetOf(
		syntax.TsReferenceType, syntax.TsUnionType, syntax.TsIntersectionType, syntax.TsArrayType,
		syntax.TsPredefinedType, syntax.TsLiteralType, syntax.TsObjectType, syntax.TsParenthesizedType,
		syntax.TsFunctionType, syntax.TsTupleType, syntax.TsTypeofType, syntax.TsTypeOperatorType,
		syntax.TsIndexedAccessType, syntax.TsConditionalType, syntax.TsBogusType,
	)

	AnyJsxElement = syntax.KindSetOf(syntax.JsxElement, syntax.JsxSelfClosingElement, syntax.JsxFragment)

	// AnyDeclaration covers the statements that introduce a named declaration.
	AnyDeclaration = syntax.KindSetOf(
		syntax.JsVariableStatement, syntax.JsFunctionDeclaration, syntax.JsClassDeclaration,
		syntax.TsTypeAliasDeclaration, syntax.TsInterfaceDeclaration, syntax.TsEnumDeclaration,
	)
)

// nodeIn returns the first child node whose kind is in set.
func nodeIn(n *syntax.Node, set syntax.KindSet) *syntax.Node {
	if n == nil {
		return nil
	}
	for c := range n.ChildNodes() {
		if set.Has(c.Kind()) {
			return c
		}
	}
	return nil
}

// nodesIn returns the child nodes whose kind is in set.
func nodesIn(n *syntax.Node, set syntax.KindSet) []*syntax.Node {
	if n == nil {
		return nil
	}
	var out []*syntax.Node
	for c := range n.ChildNodes() {
		if set.Has(c.Kind()) {
			out = append(out, c)
		}
	}
	return out
}

// Expressions returns the expression children of n in source order.
func Expressions(n *syntax.Node) []*syntax.Node { return nodesIn(n, AnyExpression) }

// ListElements returns the non-separator nodes of a list node.
func ListElements(list *syntax.Node) []*syntax.Node {
	if list == nil {
		return nil
	}
	return list.ChildNodeList()
}

// Unparenthesize strips any number of enclosing parentheses.
func Unparenthesize(n *syntax.Node) *syntax.Node {
	for n != nil && n.Kind() == syntax.JsParenthesizedExpression {
		inner := nodeIn(n, AnyExpression)
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}

// IsOptionalChain reports whether a member or call expression is part of an
// optional chain, by walking the left spine until a `?.` is found or the
// chain ends.
func IsOptionalChain(n *syntax.Node) bool {
	for n != nil {
		switch n.Kind() {
		case syntax.JsStaticMemberExpression, syntax.JsComputedMemberExpression, syntax.JsCallExpression:
			if n.FindToken(syntax.QuestionDot) != nil {
				return true
			}
		case syntax.TsNonNullAssertionExpression:
		default:
			return false
		}
		n = nodeIn(n, AnyExpression)
	}
	return false
}

// IsOutermostOptionalChain reports whether n is an optional chain that is
// not itself the object or callee of a longer chain.
func IsOutermostOptionalChain(n *syntax.Node) bool {
	if !IsOptionalChain(n) {
		return false
	}
	parent := n.Parent()
	if parent == nil {
		return true
	}
	switch parent.Kind() {
	case syntax.JsStaticMemberExpression, syntax.JsComputedMemberExpression, syntax.JsCallExpression,
		syntax.TsNonNullAssertionExpression:
		return nodeIn(parent, AnyExpression) != n
	}
	return true
}

// Name returns the identifier text of a binding, reference, name or member
// name node.
func Name(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case syntax.JsIdentifierExpression, syntax.JsIdentifierAssignment:
		return Name(n.FindNode(syntax.JsReferenceIdentifier))
	case syntax.JsLiteralMemberName:
		tok := n.FirstToken()
		if tok == nil {
			return ""
		}
		if tok.Kind() == syntax.StringLit {
			return StringValue(tok.Text())
		}
		return tok.Text()
	case syntax.JsPrivateName:
		return "#" + tokenText(n.FindToken(syntax.Ident))
	}
	return tokenText(n.FirstToken())
}

func tokenText(t *syntax.Token) string {
	if t == nil {
		return ""
	}
	return t.Text()
}

// StringValue strips the quotes of a string literal. Escapes are kept.
func StringValue(lit string) string {
	if len(lit) >= 2 && (lit[0] == '"' || lit[0] == '\'') && lit[len(lit)-1] == lit[0] {
		return lit[1 : len(lit)-1]
	}
	return strings.Trim(lit, `"'`)
}

// BinaryExpression is a view over the binary-like expression kinds.
type BinaryExpression struct{ *syntax.Node }

// AsBinaryExpression casts n to a binary-like view.
func AsBinaryExpression(n *syntax.Node) (BinaryExpression, bool) {
	if n == nil || !AnyBinaryLike.Has(n.Kind()) {
		return BinaryExpression{}, false
	}
	return BinaryExpression{n}, true
}

// Left returns the left operand.
func (b BinaryExpression) Left() *syntax.Node {
	return nodeIn(b.Node, AnyExpression)
}

// Operator returns the operator token.
func (b BinaryExpression) Operator() *syntax.Token {
	for el := range b.Children() {
		if tok, ok := el.(*syntax.Token); ok {
			return tok
		}
	}
	return nil
}

// Right returns the right operand.
func (b BinaryExpression) Right() *syntax.Node {
	exprs := nodesIn(b.Node, AnyExpression)
	if len(exprs) < 2 {
		return nil
	}
	return exprs[1]
}

// CallExpression is a view over JsCallExpression and JsNewExpression.
type CallExpression struct{ *syntax.Node }

// AsCallExpression casts n to a call view.
func AsCallExpression(n *syntax.Node) (CallExpression, bool) {
	if n == nil || (n.Kind() != syntax.JsCallExpression && n.Kind() != syntax.JsNewExpression) {
		return CallExpression{}, false
	}
	return CallExpression{n}, true
}

// Callee returns the called expression.
func (c CallExpression) Callee() *syntax.Node { return nodeIn(c.Node, AnyExpression) }

// Arguments returns the argument nodes, spreads included.
func (c CallExpression) Arguments() []*syntax.Node {
	args := c.FindNode(syntax.JsCallArguments)
	if args == nil {
		return nil
	}
	return ListElements(args.FindNode(syntax.JsCallArgumentList))
}

// IsOptional reports whether the call itself uses `?.`.
func (c CallExpression) IsOptional() bool { return c.FindToken(syntax.QuestionDot) != nil }

// CalleeName renders a static callee such as `console.log` or `foo`; it is
// empty for computed or complex callees.
func (c CallExpression) CalleeName() string { return StaticName(c.Callee()) }

// StaticName renders an identifier or a chain of static member accesses.
func StaticName(n *syntax.Node) string {
	n = Unparenthesize(n)
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case syntax.JsIdentifierExpression:
		return Name(n)
	case syntax.JsThisExpression:
		return "this"
	case syntax.JsStaticMemberExpression:
		object := StaticName(nodeIn(n, AnyExpression))
		member := n.FindNode(syntax.JsName, syntax.JsPrivateName)
		if object == "" || member == nil {
			return ""
		}
		return object + "." + Name(member)
	}
	return ""
}

// MemberExpression is a view over static and computed member expressions.
type MemberExpression struct{ *syntax.Node }

// AsMemberExpression casts n to a member view.
func AsMemberExpression(n *syntax.Node) (MemberExpression, bool) {
	if n == nil || !AnyMemberExpression.Has(n.Kind()) {
		return MemberExpression{}, false
	}
	return MemberExpression{n}, true
}

// Object returns the accessed object.
func (m MemberExpression) Object() *syntax.Node { return nodeIn(m.Node, AnyExpression) }

// MemberName returns the static member name, or the string value of a
// computed string literal member.
func (m MemberExpression) MemberName() (string, bool) {
	if m.Kind() == syntax.JsStaticMemberExpression {
		name := m.FindNode(syntax.JsName, syntax.JsPrivateName)
		return Name(name), name != nil
	}
	exprs := nodesIn(m.Node, AnyExpression)
	if len(exprs) == 2 && exprs[1].Kind() == syntax.JsStringLiteralExpression {
		return StringValue(exprs[1].TrimmedText()), true
	}
	return "", false
}

// VariableDeclarator is a view over JsVariableDeclarator.
type VariableDeclarator struct{ *syntax.Node }

// Binding returns the declared pattern.
func (d VariableDeclarator) Binding() *syntax.Node { return nodeIn(d.Node, AnyBinding) }

// TypeAnnotation returns the TS annotation, if any.
func (d VariableDeclarator) TypeAnnotation() *syntax.Node { return d.FindNode(syntax.TsTypeAnnotation) }

// Initializer returns the initializer clause, if any.
func (d VariableDeclarator) Initializer() *syntax.Node { return d.FindNode(syntax.JsInitializerClause) }

// InitializerExpression returns the initializer expression, if any.
func (d VariableDeclarator) InitializerExpression() *syntax.Node {
	return nodeIn(d.Initializer(), AnyExpression)
}

// Declarators returns the declarators of a JsVariableDeclaration or
// JsVariableStatement.
func Declarators(n *syntax.Node) []VariableDeclarator {
	if n.Kind() == syntax.JsVariableStatement {
		n = n.FindNode(syntax.JsVariableDeclaration)
	}
	if n == nil {
		return nil
	}
	var out []VariableDeclarator
	if n.Kind() == syntax.JsForVariableDeclaration {
		if d := n.FindNode(syntax.JsVariableDeclarator); d != nil {
			out = append(out, VariableDeclarator{d})
		}
		return out
	}
	for _, d := range ListElements(n.FindNode(syntax.JsVariableDeclaratorList)) {
		if d.Kind() == syntax.JsVariableDeclarator {
			out = append(out, VariableDeclarator{d})
		}
	}
	return out
}

// DeclarationKind returns `var`, `let` or `const` for a variable declaration node.
func DeclarationKind(n *syntax.Node) string {
	if n.Kind() == syntax.JsVariableStatement {
		n = n.FindNode(syntax.JsVariableDeclaration)
	}
	if n == nil {
		return ""
	}
	if tok := n.FindToken(syntax.VarKw, syntax.LetKw, syntax.ConstKw); tok != nil {
		return tok.Text()
	}
	return ""
}

// Function is a view over AnyFunction.
type Function struct{ *syntax.Node }

// AsFunction casts n to a function view.
func AsFunction(n *syntax.Node) (Function, bool) {
	if n == nil || !AnyFunction.Has(n.Kind()) {
		return Function{}, false
	}
	return Function{n}, true
}

// Name returns the function name binding or member name, or nil.
func (f Function) Name() *syntax.Node {
	return f.FindNode(syntax.JsIdentifierBinding, syntax.JsLiteralMemberName, syntax.JsComputedMemberName,
		syntax.JsPrivateName)
}

// Parameters returns the parameter nodes; a simple arrow parameter is a
// single JsIdentifierBinding.
func (f Function) Parameters() []*syntax.Node {
	params := f.FindNode(syntax.JsParameters)
	if params == nil {
		if f.Kind() == syntax.JsArrowFunctionExpression {
			if b := f.FindNode(syntax.JsIdentifierBinding); b != nil {
				return []*syntax.Node{b}
			}
		}
		return nil
	}
	return ListElements(params.FindNode(syntax.JsParameterList))
}

// Body returns the function body, or the expression body of an arrow.
func (f Function) Body() *syntax.Node {
	if body := f.FindNode(syntax.JsFunctionBody); body != nil {
		return body
	}
	if f.Kind() == syntax.JsArrowFunctionExpression {
		return nodeIn(f.Node, AnyExpression)
	}
	return nil
}

// IsAsync reports an `async` modifier.
func (f Function) IsAsync() bool { return f.FindToken(syntax.AsyncKw) != nil }

// IsGenerator reports a generator star.
func (f Function) IsGenerator() bool { return f.FindToken(syntax.Star) != nil }

// Import is a view over JsImport.
type Import struct{ *syntax.Node }

// AsImport casts n to an import view.
func AsImport(n *syntax.Node) (Import, bool) {
	if n == nil || n.Kind() != syntax.JsImport {
		return Import{}, false
	}
	return Import{n}, true
}

// Clause returns the import clause node.
func (i Import) Clause() *syntax.Node {
	return i.FindNode(syntax.JsImportBareClause, syntax.JsImportDefaultClause, syntax.JsImportNamedClause,
		syntax.JsImportNamespaceClause, syntax.JsImportCombinedClause)
}

// Source returns the module specifier without quotes.
func (i Import) Source() string {
	clause := i.Clause()
	if clause == nil {
		return ""
	}
	src := clause.FindNode(syntax.JsModuleSource)
	if src == nil {
		return ""
	}
	return StringValue(src.TrimmedText())
}

// NamedSpecifiers returns the `{ ... }` specifier list, if any.
func (i Import) NamedSpecifiers() *syntax.Node {
	clause := i.Clause()
	if clause == nil {
		return nil
	}
	named := clause.FindNode(syntax.JsNamedImportSpecifiers)
	if named == nil {
		return nil
	}
	return named.FindNode(syntax.JsNamedImportSpecifierList)
}

// ImportedName returns the local binding name of an import specifier.
func ImportedName(spec *syntax.Node) string {
	if spec.Kind() == syntax.JsNamedImportSpecifier {
		return Name(spec.FindNode(syntax.JsLiteralMemberName))
	}
	return Name(spec.FindNode(syntax.JsIdentifierBinding))
}

// JsxTagName returns the element name of a JSX element, self-closing
// element or opening element.
func JsxTagName(n *syntax.Node) string {
	if n.Kind() == syntax.JsxElement {
		n = n.FindNode(syntax.JsxOpeningElement)
	}
	if n == nil {
		return ""
	}
	name := n.FindNode(syntax.JsxName, syntax.JsxMemberName)
	if name == nil {
		return ""
	}
	return name.TrimmedText()
}

// JsxAttributes returns the attribute nodes of a JSX element.
func JsxAttributes(n *syntax.Node) []*syntax.Node {
	if n.Kind() == syntax.JsxElement {
		n = n.FindNode(syntax.JsxOpeningElement)
	}
	if n == nil {
		return nil
	}
	return ListElements(n.FindNode(syntax.JsxAttributeList))
}

// JsxAttributeName returns the name of a JsxAttribute.
func JsxAttributeName(attr *syntax.Node) string {
	if attr.Kind() != syntax.JsxAttribute {
		return ""
	}
	if name := attr.FindNode(syntax.JsxName); name != nil {
		return name.TrimmedText()
	}
	return ""
}

// FindJsxAttribute returns the attribute named name, if present.
func FindJsxAttribute(element *syntax.Node, name string) *syntax.Node {
	for _, attr := range JsxAttributes(element) {
		if JsxAttributeName(attr) == name {
			return attr
		}
	}
	return nil
}
