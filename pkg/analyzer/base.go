package analyzer

// BaseRule provides Metadata and Query from fields.
// Embed this in rule implementations and add Run.
type BaseRule struct {
	meta  RuleMetadata
	query Query
}

// NewBaseRule creates a BaseRule with the given metadata and query.
func NewBaseRule(meta RuleMetadata, query Query) BaseRule {
	return BaseRule{meta: meta, query: query}
}

// Metadata returns the rule metadata.
func (r *BaseRule) Metadata() RuleMetadata {
	return r.meta
}

// Query returns the nodes the rule runs on.
func (r *BaseRule) Query() Query {
	return r.query
}
