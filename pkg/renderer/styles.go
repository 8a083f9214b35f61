package renderer

import (
	"github.com/hawk90/revue/pkg/buffer"
	"github.com/hawk90/revue/pkg/dom"
	"github.com/hawk90/revue/pkg/style"
	"github.com/hawk90/revue/pkg/view"
)

// StyleFor returns the node's cascade result without inheritance, filling
// the cache lazily. The bool result is false only when the node does not
// exist.
func (r *Renderer) StyleFor(id dom.NodeID) (style.Style, bool) {
	if cached, ok := r.styles[id]; ok {
		return cached, true
	}
	node, ok := r.tree.Get(id)
	if !ok {
		return style.Style{}, false
	}
	resolved := r.resolver().ComputeStyle(node, r.tree.Lookup)
	r.styles[id] = resolved
	return resolved, true
}

// StyleForWithInheritance returns the node's cascade result with inherited
// properties merged from the parent chain. On a cache miss the parent's
// style is ensured first, so resolution is always root-to-leaf.
func (r *Renderer) StyleForWithInheritance(id dom.NodeID) (style.Style, bool) {
	if cached, ok := r.styles[id]; ok {
		return cached, true
	}
	node, ok := r.tree.Get(id)
	if !ok {
		return style.Style{}, false
	}
	var parent *style.Style
	if node.Parent.IsValid() {
		if parentStyle, ok := r.StyleForWithInheritance(node.Parent); ok {
			parent = &parentStyle
		}
	}
	resolved := r.resolver().ComputeStyleWithParent(node, parent, r.tree.Lookup)
	r.styles[id] = resolved
	node.State.Dirty = false
	return resolved, true
}

// ComputeStyles bulk-computes the cascade for every node without
// inheritance. Clean cached nodes are left alone.
func (r *Renderer) ComputeStyles() {
	resolver := r.resolver()
	for _, node := range r.tree.Nodes() {
		if _, cached := r.styles[node.ID]; cached && !node.State.Dirty {
			continue
		}
		r.styles[node.ID] = resolver.ComputeStyle(node, r.tree.Lookup)
		node.State.Dirty = false
	}
}

// ComputeStylesWithInheritance walks the tree root-to-leaf recomputing
// styles. A subtree is skipped entirely when its root node is clean and
// cached: the parent's style did not change, so no child's inherited input
// changed either. Any path that invalidates an individual node must also
// mark it dirty (invalidateNode does both), and evicted entries recompute
// lazily on access, which keeps the skip sound.
func (r *Renderer) ComputeStylesWithInheritance() {
	root := r.tree.RootID()
	if !root.IsValid() {
		return
	}
	r.computeSubtreeStyles(root, nil)
}

func (r *Renderer) computeSubtreeStyles(id dom.NodeID, parent *style.Style) {
	node, ok := r.tree.Get(id)
	if !ok {
		return
	}
	if _, cached := r.styles[id]; cached && !node.State.Dirty {
		return
	}
	resolved := r.resolver().ComputeStyleWithParent(node, parent, r.tree.Lookup)
	r.styles[id] = resolved
	node.State.Dirty = false
	for _, child := range node.Children {
		r.computeSubtreeStyles(child, &resolved)
	}
}

// Render refreshes every style and draws the root view into buf over area.
// The style pass always runs first; rendering never trusts an unrefreshed
// cache. With an empty tree the view still renders, with a bare context.
func (r *Renderer) Render(root view.View, buf *buffer.Buffer, area buffer.Rect) {
	r.ComputeStylesWithInheritance()

	rootID := r.tree.RootID()
	node, ok := r.tree.Get(rootID)
	if !ok {
		root.Render(view.NewContext(buf, area, nil, nil, dom.InvalidNode, nil))
		return
	}
	resolved, _ := r.StyleForWithInheritance(rootID)
	state := node.State
	root.Render(view.NewContext(buf, area, &resolved, &state, rootID, r))
}

// ChildContext implements view.StyleSource so container widgets can render
// children with the children's own resolved styles and states.
func (r *Renderer) ChildContext(id dom.NodeID, index int, buf *buffer.Buffer, area buffer.Rect) (*view.Context, bool) {
	node, ok := r.tree.Get(id)
	if !ok || index < 0 || index >= len(node.Children) {
		return nil, false
	}
	childID := node.Children[index]
	child, ok := r.tree.Get(childID)
	if !ok {
		return nil, false
	}
	resolved, ok := r.StyleForWithInheritance(childID)
	if !ok {
		return nil, false
	}
	state := child.State
	return view.NewContext(buf, area, &resolved, &state, childID, r), true
}
