package semantic

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

//nolint:gochecknoglobals // Static kind sets
var (
	// patternKinds are the nodes between a JsIdentifierBinding and the
	// construct that gives it its declaration kind.
	patternKinds = syntax.KindSetOf(
		syntax.JsArrayBindingPattern, syntax.JsArrayBindingPatternElementList,
		syntax.JsArrayBindingPatternElement, syntax.JsBindingPatternRest, syntax.JsObjectBindingPattern,
		syntax.JsObjectBindingPatternPropertyList, syntax.JsObjectBindingPatternProperty,
		syntax.JsObjectBindingPatternShorthandProperty, syntax.JsVariableDeclarator,
		syntax.JsVariableDeclaratorList,
	)

	// exportBoundary stops the search for an enclosing export.
	exportBoundary = syntax.KindSetOf(
		syntax.JsStatementList, syntax.JsModuleItemList, syntax.JsFunctionBody, syntax.JsClassMemberList,
		syntax.JsParameters, syntax.JsInitializerClause, syntax.JsBlockStatement,
	)

	// destructuringKinds are the expression nodes an assignment pattern is built from.
	destructuringKinds = syntax.KindSetOf(
		syntax.JsArrayElementList, syntax.JsArrayExpression, syntax.JsObjectMemberList,
		syntax.JsObjectExpression, syntax.JsPropertyObjectMember, syntax.JsShorthandPropertyObjectMember,
		syntax.JsSpread, syntax.JsParenthesizedExpression,
	)

	functionScopeKinds = syntax.KindSetOf(
		syntax.JsFunctionExpression, syntax.JsArrowFunctionExpression, syntax.JsMethodClassMember,
		syntax.JsMethodObjectMember, syntax.JsGetterClassMember, syntax.JsSetterClassMember,
		syntax.JsGetterObjectMember, syntax.JsSetterObjectMember, syntax.JsConstructorClassMember,
	)
)

type builder struct {
	m     *Model
	scope *Scope
	refs  []pendingRef
}

type pendingRef struct {
	ref *Reference
	// exports is set for names listed in `export { a }` or `export default a`.
	exports bool
}

// Build computes the semantic model of a JavaScript module or script root.
// Declarations are collected in a first traversal; uses are resolved in a
// second pass so that hoisted functions and `var` bindings are visible
// before their declaration.
func Build(root *syntax.Node) *Model {
	m := &Model{
		root:        root,
		scopeByNode: make(map[nodeKey]*Scope),
		declByStart: make(map[int]*Binding),
		refByStart:  make(map[int]*Reference),
	}
	b := &builder{m: m}
	b.scope = b.open(ScopeModule, root)
	b.visitChildren(root, nil)
	b.resolve()
	return m
}

func (b *builder) open(kind ScopeKind, n *syntax.Node) *Scope {
	s := &Scope{
		ID:       len(b.m.scopes),
		Parent:   b.scope,
		Kind:     kind,
		Node:     n,
		Range:    n.TextRange(),
		bindings: make(map[string]*Binding),
	}
	if b.scope != nil {
		b.scope.Children = append(b.scope.Children, s)
	}
	b.m.scopes = append(b.m.scopes, s)
	b.m.scopeByNode[keyOf(n)] = s
	return s
}

func (b *builder) withScope(kind ScopeKind, n *syntax.Node, skip *syntax.Node) {
	saved := b.scope
	b.scope = b.open(kind, n)
	b.visitChildren(n, skip)
	b.scope = saved
}

func (b *builder) visitChildren(n, skip *syntax.Node) {
	for c := range n.ChildNodes() {
		if skip != nil && c.Same(skip) {
			continue
		}
		b.visit(c)
	}
}

func (b *builder) visit(n *syntax.Node) {
	switch kind := n.Kind(); {
	case kind == syntax.JsFunctionDeclaration:
		name := n.FindNode(syntax.JsIdentifierBinding)
		b.declare(name, BindingFunction, b.scope.FunctionScope())
		b.withScope(ScopeFunction, n, name)
	case functionScopeKinds.Has(kind):
		b.withScope(ScopeFunction, n, nil)
	case kind == syntax.JsClassDeclaration:
		name := n.FindNode(syntax.JsIdentifierBinding)
		b.declare(name, BindingClass, b.scope)
		b.withScope(ScopeClass, n, name)
	case kind == syntax.JsClassExpression:
		b.withScope(ScopeClass, n, nil)
	case kind == syntax.TsTypeAliasDeclaration, kind == syntax.TsInterfaceDeclaration:
		name := n.FindNode(syntax.JsIdentifierBinding)
		bk := BindingTypeAlias
		if kind == syntax.TsInterfaceDeclaration {
			bk = BindingInterface
		}
		b.declare(name, bk, b.scope)
		b.withScope(ScopeType, n, name)
	case kind == syntax.TsFunctionType, kind == syntax.TsMethodSignatureTypeMember:
		b.withScope(ScopeType, n, nil)
	case kind == syntax.JsBlockStatement:
		if declaresLexically(n.FindNode(syntax.JsStatementList)) {
			b.withScope(ScopeBlock, n, nil)
		} else {
			b.visitChildren(n, nil)
		}
	case kind == syntax.JsCatchClause:
		b.withScope(ScopeCatch, n, nil)
	case kind == syntax.JsSwitchCaseList:
		b.withScope(ScopeSwitch, n, nil)
	case kind == syntax.JsForStatement, kind == syntax.JsForInStatement, kind == syntax.JsForOfStatement:
		head := n.FindNode(syntax.JsVariableDeclaration, syntax.JsForVariableDeclaration)
		if head != nil && js.DeclarationKind(head) != "var" {
			b.withScope(ScopeFor, n, nil)
		} else {
			b.visitChildren(n, nil)
		}
	case kind == syntax.JsIdentifierBinding:
		if bk, ok := classify(n); ok {
			target := b.scope
			if bk == BindingVar {
				target = b.scope.FunctionScope()
			}
			b.declare(n, bk, target)
		}
	case kind == syntax.JsReferenceIdentifier:
		b.reference(n)
	case kind == syntax.JsxOpeningElement, kind == syntax.JsxSelfClosingElement:
		b.jsxTag(n)
		b.visitChildren(n, nil)
	case kind == syntax.JsExportNamedFromClause, kind == syntax.JsExportFromClause:
		// Names re-exported from another module are not local uses.
	default:
		b.visitChildren(n, nil)
	}
}

func (b *builder) declare(decl *syntax.Node, kind BindingKind, scope *Scope) {
	if decl == nil {
		return
	}
	tok := decl.FirstToken()
	if tok == nil || tok.Text() == "" {
		return
	}
	name := tok.Text()
	start := tok.TextRange().Start
	if existing, ok := scope.bindings[name]; ok {
		existing.Redeclarations = append(existing.Redeclarations, decl)
		b.m.declByStart[start] = existing
		return
	}
	bd := &Binding{
		Name:     name,
		Kind:     kind,
		Decl:     decl,
		Scope:    scope,
		Exported: underExport(decl),
	}
	scope.bindings[name] = bd
	scope.order = append(scope.order, bd)
	b.m.bindings = append(b.m.bindings, bd)
	b.m.declByStart[start] = bd
}

// classify returns the declaration kind of a JsIdentifierBinding, or false
// for bindings that declare nothing, such as index signature parameters.
func classify(n *syntax.Node) (BindingKind, bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		kind := p.Kind()
		if patternKinds.Has(kind) {
			continue
		}
		switch kind {
		case syntax.JsVariableDeclaration, syntax.JsForVariableDeclaration:
			switch js.DeclarationKind(p) {
			case "let":
				return BindingLet, true
			case "const":
				return BindingConst, true
			default:
				return BindingVar, true
			}
		case syntax.JsFormalParameter, syntax.JsRestParameter, syntax.JsArrowFunctionExpression:
			return BindingParameter, true
		case syntax.JsCatchDeclaration:
			return BindingCatchParameter, true
		case syntax.JsDefaultImportSpecifier, syntax.JsNamespaceImportSpecifier,
			syntax.JsNamedImportSpecifier, syntax.JsShorthandNamedImportSpecifier:
			return BindingImport, true
		case syntax.JsFunctionDeclaration, syntax.JsFunctionExpression:
			return BindingFunction, true
		case syntax.JsClassDeclaration, syntax.JsClassExpression:
			return BindingClass, true
		case syntax.TsTypeAliasDeclaration:
			return BindingTypeAlias, true
		case syntax.TsInterfaceDeclaration:
			return BindingInterface, true
		case syntax.TsEnumDeclaration:
			return BindingEnum, true
		case syntax.TsTypeParameter:
			return BindingTypeParameter, true
		default:
			return 0, false
		}
	}
	return 0, false
}

func underExport(decl *syntax.Node) bool {
	for p := range decl.Ancestors() {
		if p.Kind() == syntax.JsExport {
			return true
		}
		if exportBoundary.Has(p.Kind()) {
			return false
		}
	}
	return false
}

// declaresLexically reports whether a statement list holds a block-scoped declaration.
func declaresLexically(list *syntax.Node) bool {
	if list == nil {
		return false
	}
	for c := range list.ChildNodes() {
		switch c.Kind() {
		case syntax.JsVariableStatement:
			if js.DeclarationKind(c) != "var" {
				return true
			}
		case syntax.JsClassDeclaration, syntax.TsEnumDeclaration, syntax.TsTypeAliasDeclaration,
			syntax.TsInterfaceDeclaration:
			return true
		}
	}
	return false
}

func (b *builder) reference(n *syntax.Node) {
	tok := n.FirstToken()
	if tok == nil || tok.Text() == "" {
		return
	}
	ref := &Reference{Token: tok, Scope: b.scope, IsRead: true}
	exports := false
	parent := n.Parent()
	if parent != nil {
		switch parent.Kind() {
		case syntax.JsIdentifierAssignment:
			ref.IsWrite = true
			ref.IsRead = readsTarget(parent)
		case syntax.JsIdentifierExpression:
			if isDestructuringTarget(parent) {
				ref.IsWrite, ref.IsRead = true, false
			}
			if gp := parent.Parent(); gp != nil && gp.Kind() == syntax.JsExportDefaultExpressionClause {
				exports = true
			}
		case syntax.JsShorthandPropertyObjectMember:
			if isDestructuringTarget(parent) {
				ref.IsWrite, ref.IsRead = true, false
			}
		case syntax.TsReferenceType, syntax.TsQualifiedName:
			ref.IsType = true
		case syntax.JsExportNamedSpecifier:
			exports = true
		}
	}
	b.addRef(ref, exports)
}

func (b *builder) addRef(ref *Reference, exports bool) {
	b.refs = append(b.refs, pendingRef{ref: ref, exports: exports})
	b.m.references = append(b.m.references, ref)
	b.m.refByStart[ref.Token.TextRange().Start] = ref
}

// readsTarget reports whether an assignment target is also read: compound
// assignments and updates read the old value.
func readsTarget(target *syntax.Node) bool {
	parent := target.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case syntax.JsPreUpdateExpression, syntax.JsPostUpdateExpression:
		return true
	case syntax.JsAssignmentExpression:
		for el := range parent.Children() {
			if tok, ok := el.(*syntax.Token); ok {
				return tok.Kind() != syntax.Eq
			}
		}
	}
	return false
}

// isDestructuringTarget reports whether n sits inside an array or object
// pattern on the left of an assignment or in a for-in/for-of head.
func isDestructuringTarget(n *syntax.Node) bool {
	cur := n
	parent := cur.Parent()
	for parent != nil && destructuringKinds.Has(parent.Kind()) {
		cur, parent = parent, parent.Parent()
	}
	if parent == nil || cur.Same(n) && n.Kind() == syntax.JsIdentifierExpression {
		return false
	}
	switch parent.Kind() {
	case syntax.JsAssignmentExpression, syntax.JsForInStatement, syntax.JsForOfStatement:
		first := parent.ChildNodeList()
		return len(first) > 0 && first[0].Same(cur)
	}
	return false
}

// jsxTag records a reference for a component tag. Lowercase tags name
// intrinsic elements.
func (b *builder) jsxTag(n *syntax.Node) {
	name := n.FindNode(syntax.JsxName, syntax.JsxMemberName)
	if name == nil {
		return
	}
	if name.Kind() == syntax.JsxMemberName {
		for name != nil && name.Kind() == syntax.JsxMemberName {
			name = name.FindNode(syntax.JsxName, syntax.JsxMemberName)
		}
		if name == nil {
			return
		}
	} else if r, _ := utf8.DecodeRuneInString(name.TrimmedText()); !unicode.IsUpper(r) {
		return
	}
	tok := name.FirstToken()
	if tok == nil || tok.Text() == "" {
		return
	}
	b.addRef(&Reference{Token: tok, Scope: b.scope, IsRead: true}, false)
}

func (b *builder) resolve() {
	for _, p := range b.refs {
		ref := p.ref
		name := ref.Token.Text()
		for s := ref.Scope; s != nil; s = s.Parent {
			bd, ok := s.bindings[name]
			if !ok || (!ref.IsType && bd.Kind.IsType()) {
				continue
			}
			ref.Binding = bd
			break
		}
		if ref.Binding == nil {
			b.m.unresolved = append(b.m.unresolved, ref)
			continue
		}
		bd := ref.Binding
		bd.References = append(bd.References, ref)
		if ref.Scope.FunctionScope() != bd.Scope.FunctionScope() {
			bd.Captured = true
		}
		if p.exports {
			bd.Exported = true
		}
	}
}
