package syntax

import (
	"fmt"
	"strings"
)

// Debug renders the tree as an indented outline, one element per line.
// Empty slots are shown as "(empty)". Useful in tests.
func Debug(n *Node) string {
	var sb strings.Builder
	debugNode(&sb, n, 0)
	return sb.String()
}

func debugNode(sb *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s@%s\n", indent, n.Kind(), n.Range())
	for i := range n.SlotCount() {
		switch c := n.Slot(i).(type) {
		case *Node:
			debugNode(sb, c, depth+1)
		case *Token:
			fmt.Fprintf(sb, "%s  %s@%s %q\n", indent, c.Kind(), c.TextRange(), c.Text())
		default:
			fmt.Fprintf(sb, "%s  (empty)\n", indent)
		}
	}
}
