package analyzer

import "github.com/yaklabco/gobiome/pkg/syntax"

// Meta is a query that is not a plain list of kinds.
type Meta uint8

const (
	MetaNone Meta = iota
	// AllIdentifiers matches identifier references, bindings and assignments.
	AllIdentifiers
	// AllCallExpressions matches call and new expressions.
	AllCallExpressions
	// EveryNode matches every node.
	EveryNode
)

// Query selects the nodes a rule runs on.
type Query struct {
	Kinds syntax.KindSet
	Meta  Meta
}

//nolint:gochecknoglobals // Static kind sets
var (
	identifierKinds = syntax.KindSetOf(
		syntax.JsIdentifierExpression, syntax.JsIdentifierBinding, syntax.JsIdentifierAssignment,
	)
	callKinds = syntax.KindSetOf(syntax.JsCallExpression, syntax.JsNewExpression)
)

// QueryKinds returns a query matching the given kinds.
func QueryKinds(kinds ...syntax.Kind) Query {
	return Query{Kinds: syntax.KindSetOf(kinds...)}
}

// QueryMeta returns a meta query.
func QueryMeta(meta Meta) Query {
	return Query{Meta: meta}
}

// Matches reports whether n is selected.
func (q Query) Matches(n *syntax.Node) bool {
	return q.matchesKind(n.Kind())
}

func (q Query) matchesKind(k syntax.Kind) bool {
	switch q.Meta {
	case AllIdentifiers:
		return identifierKinds.Has(k)
	case AllCallExpressions:
		return callKinds.Has(k)
	case EveryNode:
		return true
	case MetaNone:
	}
	return q.Kinds.Has(k)
}
