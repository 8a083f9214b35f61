package renderer

import (
	"github.com/hawk90/revue/pkg/dom"
	"github.com/hawk90/revue/pkg/view"
)

// Build reconciles the view hierarchy into the retained tree. An empty tree
// gets a fresh top-down build. Otherwise nodes are reused where the view's
// identity matches: element id first, position plus widget type as the
// fallback. An irreconcilable root (type or id changed) falls back to a
// fresh build; that is a performance fallback, never an error.
func (r *Renderer) Build(root view.View) {
	if r.tree.IsEmpty() {
		r.freshBuild(root)
		return
	}

	rootID := r.tree.RootID()
	if !r.updateNodeMeta(rootID, root.Meta()) {
		r.log.Debug("root not reusable, rebuilding tree")
		r.Invalidate()
		r.freshBuild(root)
		return
	}
	r.updateChildren(rootID, root.Children())
}

func (r *Renderer) freshBuild(root view.View) {
	id := r.tree.CreateRoot(root.Meta())
	r.buildChildren(id, root.Children())
	r.log.WithFields(map[string]any{"nodes": r.tree.Len()}).Debug("fresh build")
}

func (r *Renderer) buildChildren(parent dom.NodeID, children []view.View) {
	for _, child := range children {
		id, err := r.tree.AddChild(parent, child.Meta())
		if err != nil {
			// Only possible if the view layer handed us a stale parent;
			// skip the subtree rather than corrupt the tree.
			r.log.Error(err, "skipping child subtree")
			continue
		}
		r.buildChildren(id, child.Children())
	}
}

// updateNodeMeta refreshes a retained node from new view metadata. A
// changed widget type or element id means the node cannot be reused. A
// changed class set keeps the node but dirties it and evicts its cached
// style, since different selectors may now match.
func (r *Renderer) updateNodeMeta(id dom.NodeID, meta dom.Meta) bool {
	node, ok := r.tree.Get(id)
	if !ok {
		return false
	}
	if node.Meta.Widget != meta.Widget || node.Meta.ID != meta.ID {
		return false
	}
	if !node.Meta.ClassesEqual(meta) {
		node.Meta.Classes = append([]string(nil), meta.Classes...)
		r.invalidateNode(id)
	}
	return true
}

// updateChildren diffs the new child views against the retained children of
// parent. Matching is two-tier: element id wins regardless of position;
// anonymous children match the retained child at the same position when the
// widget type agrees. Unmatched retained children are removed with their
// subtrees; the parent's children list is replaced with the new order, so
// reordering reuses nodes without dirtying them.
func (r *Renderer) updateChildren(parentID dom.NodeID, children []view.View) {
	parent, ok := r.tree.Get(parentID)
	if !ok {
		return
	}

	existing := append([]dom.NodeID(nil), parent.Children...)
	byElem := make(map[string]dom.NodeID)
	for _, cid := range existing {
		if node, ok := r.tree.Get(cid); ok && node.Meta.ID != "" {
			byElem[node.Meta.ID] = cid
		}
	}

	claimed := make(map[dom.NodeID]bool)
	order := make([]dom.NodeID, 0, len(children))

	for i, child := range children {
		meta := child.Meta()

		match := dom.InvalidNode
		if meta.ID != "" {
			if cid, ok := byElem[meta.ID]; ok && !claimed[cid] {
				match = cid
			}
		} else if i < len(existing) {
			cid := existing[i]
			if node, ok := r.tree.Get(cid); ok && !claimed[cid] && node.Meta.Widget == meta.Widget {
				match = cid
			}
		}

		if match.IsValid() {
			if r.updateNodeMeta(match, meta) {
				claimed[match] = true
				r.updateChildren(match, child.Children())
				order = append(order, match)
				continue
			}
			// The element id was reused for a different widget type; the
			// retained subtree cannot be reconciled.
			claimed[match] = true
			r.removeSubtree(match)
		}

		id, err := r.tree.AddChild(parentID, meta)
		if err != nil {
			r.log.Error(err, "skipping child subtree")
			continue
		}
		r.buildChildren(id, child.Children())
		order = append(order, id)
	}

	for _, cid := range existing {
		if claimed[cid] {
			continue
		}
		if _, ok := r.tree.Get(cid); !ok {
			continue
		}
		r.removeSubtree(cid)
	}

	r.tree.ReplaceChildren(parentID, order)
}
