// Package semantic computes the per-file semantic model of a JavaScript or
// TypeScript tree: a scope tree, the bindings declared in each scope, the
// resolution of every identifier use and per-function control-flow graphs.
package semantic

import (
	"iter"
	"sync"

	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// ScopeKind classifies a scope by the construct that opened it.
type ScopeKind uint8

// Scope kinds.
const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeCatch
	ScopeClass
	ScopeSwitch
	ScopeFor
	// ScopeType holds the type parameters of a type alias, an interface or a
	// function type.
	ScopeType
)

var scopeKindNames = [...]string{"module", "function", "block", "catch", "class", "switch", "for", "type"}

func (k ScopeKind) String() string {
	if int(k) < len(scopeKindNames) {
		return scopeKindNames[k]
	}
	return "unknown"
}

// BindingKind is the declaration form of a binding.
type BindingKind uint8

// Binding kinds.
const (
	BindingVar BindingKind = iota
	BindingLet
	BindingConst
	BindingFunction
	BindingClass
	BindingParameter
	BindingImport
	BindingCatchParameter
	BindingTypeAlias
	BindingInterface
	BindingEnum
	BindingTypeParameter
)

var bindingKindNames = [...]string{
	"var", "let", "const", "function", "class", "parameter", "import", "catch parameter",
	"type alias", "interface", "enum", "type parameter",
}

func (k BindingKind) String() string {
	if int(k) < len(bindingKindNames) {
		return bindingKindNames[k]
	}
	return "unknown"
}

// IsType reports whether the binding only exists in the type namespace.
func (k BindingKind) IsType() bool {
	return k == BindingTypeAlias || k == BindingInterface || k == BindingTypeParameter
}

// Scope is a lexical scope.
type Scope struct {
	ID       int
	Parent   *Scope
	Kind     ScopeKind
	Node     *syntax.Node
	Range    text.Range
	Children []*Scope

	bindings map[string]*Binding
	order    []*Binding
}

// Lookup returns the binding declared for name in this scope only.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Bindings returns the bindings declared in s in declaration order.
func (s *Scope) Bindings() []*Binding { return s.order }

// FunctionScope returns the nearest enclosing function or module scope.
func (s *Scope) FunctionScope() *Scope {
	cur := s
	for cur.Parent != nil && cur.Kind != ScopeFunction {
		cur = cur.Parent
	}
	return cur
}

// IsAncestorOf reports whether s encloses other or is other.
func (s *Scope) IsAncestorOf(other *Scope) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == s {
			return true
		}
	}
	return false
}

// Binding is a declared name.
type Binding struct {
	Name string
	Kind BindingKind
	// Decl is the JsIdentifierBinding node of the declaration.
	Decl  *syntax.Node
	Scope *Scope
	// Exported is set for bindings declared under an export or listed in a
	// local export clause.
	Exported bool
	// Captured is set when a reference comes from a nested function.
	Captured bool
	// Redeclarations holds later declarations of the same name in the same scope.
	Redeclarations []*syntax.Node
	References     []*Reference
}

// Token returns the identifier token of the declaration.
func (b *Binding) Token() *syntax.Token {
	return b.Decl.FirstToken()
}

// IsUnused reports a binding with no read references. Writes alone do not count.
func (b *Binding) IsUnused() bool {
	for _, r := range b.References {
		if r.IsRead {
			return false
		}
	}
	return true
}

// Writes returns the references that assign to the binding.
func (b *Binding) Writes() []*Reference {
	var out []*Reference
	for _, r := range b.References {
		if r.IsWrite {
			out = append(out, r)
		}
	}
	return out
}

// Reference is a use of an identifier.
type Reference struct {
	Token   *syntax.Token
	Scope   *Scope
	Binding *Binding
	IsRead  bool
	IsWrite bool
	// IsType marks uses in type position.
	IsType bool
}

// Resolved reports whether the reference names a declared binding.
func (r *Reference) Resolved() bool { return r.Binding != nil }

type nodeKey struct {
	start int
	kind  syntax.Kind
}

func keyOf(n *syntax.Node) nodeKey {
	return nodeKey{start: n.Offset(), kind: n.Kind()}
}

// Model is the semantic model of one file. It is immutable after Build except
// for the lazily built control-flow graphs.
type Model struct {
	root       *syntax.Node
	scopes     []*Scope
	bindings   []*Binding
	references []*Reference
	unresolved []*Reference

	scopeByNode map[nodeKey]*Scope
	declByStart map[int]*Binding
	refByStart  map[int]*Reference

	cfgMu sync.Mutex
	cfgs  map[nodeKey]*Graph
}

// Root returns the tree the model was built from.
func (m *Model) Root() *syntax.Node { return m.root }

// GlobalScope returns the file scope.
func (m *Model) GlobalScope() *Scope { return m.scopes[0] }

// Scopes returns every scope in creation order.
func (m *Model) Scopes() []*Scope { return m.scopes }

// Bindings returns every binding in declaration order.
func (m *Model) Bindings() []*Binding { return m.bindings }

// References returns every identifier use in source order.
func (m *Model) References() []*Reference { return m.references }

// Unresolved returns the uses that name no binding of this file.
func (m *Model) Unresolved() []*Reference { return m.unresolved }

// Resolve returns the binding an identifier token refers to. Declaration
// tokens resolve to their own binding.
func (m *Model) Resolve(tok *syntax.Token) (*Binding, bool) {
	if tok == nil {
		return nil, false
	}
	start := tok.TextRange().Start
	if ref, ok := m.refByStart[start]; ok {
		return ref.Binding, ref.Binding != nil
	}
	b, ok := m.declByStart[start]
	return b, ok
}

// ReferenceAt returns the reference whose token starts at offset.
func (m *Model) ReferenceAt(offset int) (*Reference, bool) {
	ref, ok := m.refByStart[offset]
	return ref, ok
}

// BindingOf returns the binding declared by a JsIdentifierBinding node.
func (m *Model) BindingOf(decl *syntax.Node) (*Binding, bool) {
	if decl == nil {
		return nil, false
	}
	b, ok := m.declByStart[decl.TextRange().Start]
	return b, ok
}

// BindingsInScope yields the bindings of s in declaration order.
func (m *Model) BindingsInScope(s *Scope) iter.Seq[*Binding] {
	return func(yield func(*Binding) bool) {
		for _, b := range s.order {
			if !yield(b) {
				return
			}
		}
	}
}

// IsExported reports whether b is visible to other modules.
func (m *Model) IsExported(b *Binding) bool { return b.Exported }

// AllReferences yields the uses of b in source order.
func (m *Model) AllReferences(b *Binding) iter.Seq[*Reference] {
	return func(yield func(*Reference) bool) {
		for _, r := range b.References {
			if !yield(r) {
				return
			}
		}
	}
}

// ScopeAt returns the innermost scope enclosing n.
func (m *Model) ScopeAt(n *syntax.Node) *Scope {
	for cur := n; cur != nil; cur = cur.Parent() {
		if s, ok := m.scopeByNode[keyOf(cur)]; ok {
			return s
		}
	}
	return m.GlobalScope()
}

// ScopeOf returns the scope opened by n, if any.
func (m *Model) ScopeOf(n *syntax.Node) (*Scope, bool) {
	s, ok := m.scopeByNode[keyOf(n)]
	return s, ok
}

// ControlFlowOf returns the control-flow graph of a function-like node or of
// the module root. Graphs are built on first request and cached.
func (m *Model) ControlFlowOf(fn *syntax.Node) *Graph {
	m.cfgMu.Lock()
	defer m.cfgMu.Unlock()
	if m.cfgs == nil {
		m.cfgs = make(map[nodeKey]*Graph)
	}
	key := keyOf(fn)
	if g, ok := m.cfgs[key]; ok {
		return g
	}
	g := BuildGraph(fn)
	m.cfgs[key] = g
	return g
}
