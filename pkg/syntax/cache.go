package syntax

import "sync"

// maxCachedChildren bounds the size of nodes the cache interns.
// Larger nodes are rarely identical so interning them only costs lookups.
const maxCachedChildren = 3

// NodeCache interns green tokens and small green nodes so that identical
// subtrees share memory. It is safe for concurrent use.
type NodeCache struct {
	mu     sync.Mutex
	tokens map[uint64][]*GreenToken
	nodes  map[uint64][]*GreenNode
}

// NewNodeCache creates an empty cache.
func NewNodeCache() *NodeCache {
	return &NodeCache{
		tokens: make(map[uint64][]*GreenToken),
		nodes:  make(map[uint64][]*GreenNode),
	}
}

//nolint:gochecknoglobals // Shared interner used when callers do not supply one
var (
	defaultCache     *NodeCache
	defaultCacheOnce sync.Once
)

// DefaultCache returns the process-wide cache.
func DefaultCache() *NodeCache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewNodeCache()
	})
	return defaultCache
}

// Token returns an interned token equal to the given one.
func (c *NodeCache) Token(kind Kind, text string, leading, trailing []TriviaPiece) *GreenToken {
	tok := NewGreenToken(kind, text, leading, trailing)
	if c == nil {
		return tok
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.tokens[tok.hash] {
		if existing.equal(tok) {
			return existing
		}
	}
	c.tokens[tok.hash] = append(c.tokens[tok.hash], tok)
	return tok
}

// Node returns an interned node for small child lists and a fresh node otherwise.
func (c *NodeCache) Node(kind Kind, children []GreenElement) *GreenNode {
	node := NewGreenNode(kind, children)
	if c == nil || len(children) > maxCachedChildren {
		return node
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.nodes[node.hash] {
		if sameNode(existing, node) {
			return existing
		}
	}
	c.nodes[node.hash] = append(c.nodes[node.hash], node)
	return node
}

// Len returns the number of interned entries.
func (c *NodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, v := range c.tokens {
		n += len(v)
	}
	for _, v := range c.nodes {
		n += len(v)
	}
	return n
}

// sameNode compares children by identity. Children are already interned or unique.
func sameNode(a, b *GreenNode) bool {
	if a.kind != b.kind || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if a.children[i] != b.children[i] {
			return false
		}
	}
	return true
}
