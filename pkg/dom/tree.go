package dom

import "errors"

// ErrMissingParent is returned when a child is added under a handle that does
// not reference a live node. It indicates a bug in the view layer.
var ErrMissingParent = errors.New("dom: parent node does not exist")

// Tree is an arena-backed node store. The tree owns every node by value in an
// indexable slice; handles are indices into that slice and are never reused
// within the lifetime of a tree.
type Tree struct {
	nodes   []*Node
	count   int
	root    NodeID
	byElem  map[string]NodeID
	focused NodeID
	hovered NodeID
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		root:    InvalidNode,
		byElem:  make(map[string]NodeID),
		focused: InvalidNode,
		hovered: InvalidNode,
	}
}

// CreateRoot installs a new root node. Any previously created structure is
// abandoned; callers use this only on a fresh build.
func (t *Tree) CreateRoot(meta Meta) NodeID {
	if !t.IsEmpty() {
		t.reset()
	}
	id := t.alloc(meta, InvalidNode)
	t.root = id
	return id
}

// AddChild appends a new node as the last child of parent.
func (t *Tree) AddChild(parent NodeID, meta Meta) (NodeID, error) {
	p, ok := t.Get(parent)
	if !ok {
		return InvalidNode, ErrMissingParent
	}
	id := t.alloc(meta, parent)
	p.Children = append(p.Children, id)
	return id, nil
}

// Get returns the node for a handle. Lookups on stale handles return false.
func (t *Tree) Get(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id] == nil {
		return nil, false
	}
	return t.nodes[id], true
}

// GetByID returns the node carrying the given element id.
func (t *Tree) GetByID(elementID string) (*Node, bool) {
	id, ok := t.byElem[elementID]
	if !ok {
		return nil, false
	}
	return t.Get(id)
}

// Lookup is the ancestor-lookup capability handed to selector matching.
func (t *Tree) Lookup(id NodeID) (*Node, bool) {
	return t.Get(id)
}

// Remove deletes the node and, transitively, all of its descendants. The
// parent's children list and the element-id index are updated for every
// removed node. Removing a stale handle is a no-op.
//
// Removed returns the handles that were deleted so callers can purge any
// per-node caches of their own.
func (t *Tree) Remove(id NodeID) []NodeID {
	node, ok := t.Get(id)
	if !ok {
		return nil
	}
	if parent, ok := t.Get(node.Parent); ok {
		parent.Children = removeID(parent.Children, id)
	}
	removed := t.collectSubtree(id, nil)
	for _, rid := range removed {
		t.free(rid)
	}
	if id == t.root {
		t.root = InvalidNode
	}
	return removed
}

// SetFocused moves focus to the given node, clearing the previous holder.
// Passing InvalidNode clears focus entirely.
func (t *Tree) SetFocused(id NodeID) {
	if prev, ok := t.Get(t.focused); ok {
		prev.State.Focused = false
	}
	t.focused = InvalidNode
	if next, ok := t.Get(id); ok {
		next.State.Focused = true
		t.focused = id
	}
}

// SetHovered moves hover to the given node, clearing the previous holder.
func (t *Tree) SetHovered(id NodeID) {
	if prev, ok := t.Get(t.hovered); ok {
		prev.State.Hovered = false
	}
	t.hovered = InvalidNode
	if next, ok := t.Get(id); ok {
		next.State.Hovered = true
		t.hovered = id
	}
}

// Focused returns the handle of the focused node, if any.
func (t *Tree) Focused() NodeID {
	return t.focused
}

// Hovered returns the handle of the hovered node, if any.
func (t *Tree) Hovered() NodeID {
	return t.hovered
}

// ReplaceChildren installs a new ordered children list on parent. The caller
// is responsible for the listed nodes already being parented to parent; this
// only changes sibling order.
func (t *Tree) ReplaceChildren(parent NodeID, children []NodeID) {
	p, ok := t.Get(parent)
	if !ok {
		return
	}
	p.Children = append(p.Children[:0], children...)
}

// RootID returns the root handle, or InvalidNode for an empty tree.
func (t *Tree) RootID() NodeID {
	return t.root
}

// IsEmpty reports whether the tree holds no nodes.
func (t *Tree) IsEmpty() bool {
	return t.count == 0
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return t.count
}

// Nodes returns every live node in ascending handle order.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, 0, t.count)
	for _, n := range t.nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (t *Tree) alloc(meta Meta, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	node := &Node{
		ID:     id,
		Meta:   meta,
		State:  State{Dirty: true},
		Parent: parent,
	}
	t.nodes = append(t.nodes, node)
	t.count++
	if meta.ID != "" {
		t.byElem[meta.ID] = id
	}
	return id
}

func (t *Tree) free(id NodeID) {
	node, ok := t.Get(id)
	if !ok {
		return
	}
	if elem := node.Meta.ID; elem != "" && t.byElem[elem] == id {
		delete(t.byElem, elem)
	}
	if t.focused == id {
		t.focused = InvalidNode
	}
	if t.hovered == id {
		t.hovered = InvalidNode
	}
	t.nodes[id] = nil
	t.count--
}

func (t *Tree) collectSubtree(id NodeID, acc []NodeID) []NodeID {
	node, ok := t.Get(id)
	if !ok {
		return acc
	}
	acc = append(acc, id)
	for _, child := range node.Children {
		acc = t.collectSubtree(child, acc)
	}
	return acc
}

func (t *Tree) reset() {
	t.nodes = nil
	t.count = 0
	t.root = InvalidNode
	t.byElem = make(map[string]NodeID)
	t.focused = InvalidNode
	t.hovered = InvalidNode
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
