package mutation

import (
	"fmt"

	"github.com/yaklabco/gobiome/pkg/syntax"
)

// slotOps holds the pending changes to the slots of one parent node.
type slotOps struct {
	node    *syntax.Node
	depth   int
	replace map[int][]syntax.GreenElement
	remove  map[int]bool
	before  map[int][]syntax.GreenElement
	after   map[int][]syntax.GreenElement
}

func newSlotOps(n *syntax.Node, depth int) *slotOps {
	return &slotOps{
		node:    n,
		depth:   depth,
		replace: make(map[int][]syntax.GreenElement),
		remove:  make(map[int]bool),
		before:  make(map[int][]syntax.GreenElement),
		after:   make(map[int][]syntax.GreenElement),
	}
}

// path identifies a node by the slot indices leading to it from the root.
type path string

func pathOf(n *syntax.Node) (path, int) {
	var idx []byte
	depth := 0
	for cur := n; cur.Parent() != nil; cur = cur.Parent() {
		idx = fmt.Appendf(idx, "%d/", cur.Index())
		depth++
	}
	return path(idx), depth
}

// Commit applies every edit and returns the new green root. On conflict it
// returns a *ConflictError and no tree.
func (b *Batch) Commit() (*syntax.GreenNode, error) {
	if b.IsEmpty() {
		return b.root.Green(), nil
	}
	if conflicts := b.Conflicts(); len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	parents := make(map[path]*slotOps)
	opsFor := func(n *syntax.Node) *slotOps {
		key, depth := pathOf(n)
		ops, ok := parents[key]
		if !ok {
			ops = newSlotOps(n, depth)
			parents[key] = ops
		}
		return ops
	}

	for _, e := range b.edits {
		parent := e.Target.Parent()
		if parent == nil {
			if e.Op != OpReplace || len(parents) > 0 || len(b.edits) > 1 {
				return nil, fmt.Errorf("root edit %s must be the only edit: %w", e.Op, ErrForeignElement)
			}
			root, ok := e.Elements[0].(*syntax.GreenNode)
			if !ok {
				return nil, fmt.Errorf("root replacement is not a node: %w", ErrForeignElement)
			}
			return root, nil
		}
		if parent.Root().Green() != b.root.Green() {
			return nil, ErrForeignElement
		}
		ops := opsFor(parent)
		idx := e.Target.Index()
		switch e.Op {
		case OpReplace:
			ops.replace[idx] = e.Elements
		case OpRemove:
			ops.remove[idx] = true
		case OpInsertBefore, OpInsertAfter:
			if !parent.Kind().IsList() {
				return nil, fmt.Errorf("%s into %s: %w", e.Op, parent.Kind(), ErrNotAList)
			}
			if e.Op == OpInsertBefore {
				ops.before[idx] = append(ops.before[idx], e.Elements...)
			} else {
				ops.after[idx] = append(ops.after[idx], e.Elements...)
			}
		}
	}

	// Rebuild from the deepest parents up; each rebuilt node becomes a
	// replacement in its own parent, so unchanged siblings stay shared.
	for len(parents) > 0 {
		var key path
		var deepest *slotOps
		for k, ops := range parents {
			if deepest == nil || ops.depth > deepest.depth || (ops.depth == deepest.depth && k < key) {
				key, deepest = k, ops
			}
		}
		delete(parents, key)

		rebuilt := deepest.apply()
		up := deepest.node.Parent()
		if up == nil {
			return rebuilt, nil
		}
		ops := opsFor(up)
		ops.replace[deepest.node.Index()] = []syntax.GreenElement{rebuilt}
	}
	return b.root.Green(), nil
}

func (o *slotOps) apply() *syntax.GreenNode {
	green := o.node.Green()
	list := green.Kind().IsList()
	slots := green.Slots()
	children := make([]syntax.GreenElement, 0, len(slots))
	for i, child := range slots {
		children = append(children, o.before[i]...)
		switch {
		case o.remove[i] && list:
		case o.remove[i]:
			children = append(children, nil)
		case o.replace[i] != nil:
			children = append(children, o.replace[i]...)
		default:
			children = append(children, child)
		}
		children = append(children, o.after[i]...)
	}
	return green.WithSlots(children)
}
