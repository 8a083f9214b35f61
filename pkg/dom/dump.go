package dom

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the tree structure for debugging.
func (t *Tree) Dump() string {
	root, ok := t.Get(t.root)
	if !ok {
		return "(empty tree)"
	}
	printer := treeprint.NewWithRoot(nodeLabel(root))
	t.dumpChildren(root, printer)
	return printer.String()
}

func (t *Tree) dumpChildren(node *Node, branch treeprint.Tree) {
	for _, childID := range node.Children {
		child, ok := t.Get(childID)
		if !ok {
			continue
		}
		if len(child.Children) == 0 {
			branch.AddNode(nodeLabel(child))
			continue
		}
		t.dumpChildren(child, branch.AddBranch(nodeLabel(child)))
	}
}

func nodeLabel(n *Node) string {
	var b strings.Builder
	b.WriteString(n.Meta.Widget)
	if n.Meta.ID != "" {
		fmt.Fprintf(&b, "#%s", n.Meta.ID)
	}
	for _, class := range n.Meta.Classes {
		fmt.Fprintf(&b, ".%s", class)
	}
	var flags []string
	if n.State.Focused {
		flags = append(flags, "focused")
	}
	if n.State.Hovered {
		flags = append(flags, "hovered")
	}
	if n.State.Dirty {
		flags = append(flags, "dirty")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(flags, ","))
	}
	return b.String()
}
