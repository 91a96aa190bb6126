package syntax

// Builder assembles a green tree bottom-up from start/finish calls.
type Builder struct {
	cache    *NodeCache
	parents  []builderFrame
	children []GreenElement
}

type builderFrame struct {
	kind  Kind
	first int
}

// Checkpoint records a position in the child list for StartNodeAt.
type Checkpoint int

// NewBuilder creates a builder interning through cache. A nil cache disables interning.
func NewBuilder(cache *NodeCache) *Builder {
	return &Builder{cache: cache}
}

// StartNode opens a node.
func (b *Builder) StartNode(kind Kind) {
	b.parents = append(b.parents, builderFrame{kind: kind, first: len(b.children)})
}

// Checkpoint returns the current child position.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNodeAt opens a node that adopts every child added since cp.
func (b *Builder) StartNodeAt(cp Checkpoint, kind Kind) {
	b.parents = append(b.parents, builderFrame{kind: kind, first: int(cp)})
}

// Token appends a token to the open node.
func (b *Builder) Token(kind Kind, text string, leading, trailing []TriviaPiece) {
	b.children = append(b.children, b.cache.Token(kind, text, leading, trailing))
}

// Empty appends an empty slot.
func (b *Builder) Empty() {
	b.children = append(b.children, nil)
}

// Element appends a prebuilt green element.
func (b *Builder) Element(el GreenElement) {
	b.children = append(b.children, el)
}

// FinishNode closes the most recently opened node.
func (b *Builder) FinishNode() {
	frame := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	kids := make([]GreenElement, len(b.children)-frame.first)
	copy(kids, b.children[frame.first:])
	b.children = b.children[:frame.first]
	b.children = append(b.children, b.cache.Node(frame.kind, kids))
}

// Finish returns the single root node.
func (b *Builder) Finish() *GreenNode {
	if len(b.parents) != 0 || len(b.children) != 1 {
		panic("syntax: unbalanced builder")
	}
	root, ok := b.children[0].(*GreenNode)
	if !ok {
		panic("syntax: builder root is a token")
	}
	return root
}
