package dom

import "sort"

// NodeID is an opaque handle identifying a node within one Tree. Handles are
// not reusable across trees and stay stable across incremental rebuilds as
// long as reconciliation matches the node.
type NodeID int

// InvalidNode is the zero-value handle returned by failed lookups.
const InvalidNode NodeID = -1

// IsValid reports whether the handle could reference a node.
func (id NodeID) IsValid() bool {
	return id >= 0
}

// Meta describes a node's identity as supplied by a view.
type Meta struct {
	// Widget is the widget type name, e.g. "Button".
	Widget string
	// ID is the optional element id, unique per tree by convention. It is
	// the primary reconciliation key.
	ID string
	// Classes are CSS classes. Order is irrelevant; they are used for
	// selector matching and reconciliation-triggered dirtying only.
	Classes []string
}

// HasClass reports whether the meta carries the given class.
func (m Meta) HasClass(class string) bool {
	for _, c := range m.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// ClassesEqual compares class sets ignoring order and duplicates.
func (m Meta) ClassesEqual(other Meta) bool {
	if len(m.Classes) != len(other.Classes) {
		return false
	}
	a := append([]string(nil), m.Classes...)
	b := append([]string(nil), other.Classes...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// State is the transient interaction state of a node. The style resolver
// consumes it; only the tree and renderer mutate it.
type State struct {
	// Dirty marks the node's style as needing recomputation.
	Dirty    bool
	Focused  bool
	Hovered  bool
	Disabled bool
}

// Node is a single widget node. Nodes are owned by their Tree; node-to-node
// references are by NodeID, never by pointer.
type Node struct {
	ID       NodeID
	Meta     Meta
	State    State
	Parent   NodeID
	Children []NodeID
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return !n.Parent.IsValid()
}
