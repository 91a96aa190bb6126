package syntax

// WalkAction controls a Walk.
type WalkAction int

// Walk actions.
const (
	WalkContinue WalkAction = iota
	// WalkSkip skips the children of the node just entered.
	WalkSkip
	WalkStop
)

// WalkEvent is delivered on entry to and exit from each node.
type WalkEvent struct {
	Node  *Node
	Leave bool
}

// Walk visits n and its descendants in preorder, reporting Enter and
// Leave events. The return value of a Leave callback is only checked for WalkStop.
func Walk(n *Node, fn func(WalkEvent) WalkAction) {
	walk(n, fn)
}

func walk(n *Node, fn func(WalkEvent) WalkAction) bool {
	switch fn(WalkEvent{Node: n}) {
	case WalkStop:
		return false
	case WalkSkip:
		return fn(WalkEvent{Node: n, Leave: true}) != WalkStop
	case WalkContinue:
	}
	for c := range n.ChildNodes() {
		if !walk(c, fn) {
			return false
		}
	}
	return fn(WalkEvent{Node: n, Leave: true}) != WalkStop
}

// ReplaceElement returns the green root of a new tree where el is replaced
// by replacement. A nil replacement empties the slot.
func ReplaceElement(el Element, replacement GreenElement) *GreenNode {
	parent := el.Parent()
	if parent == nil {
		node, _ := replacement.(*GreenNode)
		return node
	}
	updated := parent.green.ReplaceSlot(el.Index(), replacement)
	return ReplaceElement(parent, updated)
}
