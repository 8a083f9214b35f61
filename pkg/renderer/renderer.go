// Package renderer owns the retained widget tree, the style cache, and the
// incremental reconciliation that keeps both in sync with the view layer.
// One Renderer instance drives one render loop: build the view tree, compute
// styles top-down, draw. Callers serialize access; the renderer holds no
// locks.
package renderer

import (
	"github.com/hawk90/revue/internal/logger"
	"github.com/hawk90/revue/pkg/css"
	"github.com/hawk90/revue/pkg/dom"
	"github.com/hawk90/revue/pkg/style"
)

// Renderer is the DOM-aware incremental renderer. The tree, the style cache
// and the parsed-selector cache are exclusively owned by the instance.
type Renderer struct {
	tree      *dom.Tree
	sheet     *css.StyleSheet
	styles    map[dom.NodeID]style.Style
	selectors []style.CachedSelector
	compiled  bool
	log       *logger.Logger
}

// New creates a renderer over the given stylesheet. A nil sheet behaves as
// an empty one.
func New(sheet *css.StyleSheet) *Renderer {
	if sheet == nil {
		sheet = &css.StyleSheet{}
	}
	return &Renderer{
		tree:   dom.NewTree(),
		sheet:  sheet,
		styles: make(map[dom.NodeID]style.Style),
	}
}

// SetLogger attaches a logger for reconciliation and cascade diagnostics.
func (r *Renderer) SetLogger(log *logger.Logger) {
	r.log = log
}

// SetStylesheet replaces the stylesheet. Cascade results are no longer
// valid for any node, so the parsed-selector cache and the entire style
// cache are dropped.
func (r *Renderer) SetStylesheet(sheet *css.StyleSheet) {
	if sheet == nil {
		sheet = &css.StyleSheet{}
	}
	r.sheet = sheet
	r.selectors = nil
	r.compiled = false
	r.styles = make(map[dom.NodeID]style.Style)
}

// Invalidate discards the tree and the style cache unconditionally. The
// next Build is forced to be a fresh build even for a structurally
// identical view; callers use it to force a complete redraw.
func (r *Renderer) Invalidate() {
	r.tree = dom.NewTree()
	r.styles = make(map[dom.NodeID]style.Style)
	r.log.Debug("renderer invalidated")
}

// Tree exposes the retained tree for read-only inspection and debugging.
func (r *Renderer) Tree() *dom.Tree {
	return r.tree
}

// GetByID returns the live node carrying the element id.
func (r *Renderer) GetByID(elementID string) (*dom.Node, bool) {
	return r.tree.GetByID(elementID)
}

// SetFocus moves keyboard focus to the node with the given element id; an
// empty id clears focus. Both the previous and the new holder are marked
// dirty and have their style-cache entries evicted, since ":focus" rules
// can change either node's cascade.
func (r *Renderer) SetFocus(elementID string) {
	r.setInteractionState(elementID, r.tree.Focused(), r.tree.SetFocused)
}

// SetHover moves hover to the node with the given element id; an empty id
// clears hover. Eviction mirrors SetFocus for ":hover" rules.
func (r *Renderer) SetHover(elementID string) {
	r.setInteractionState(elementID, r.tree.Hovered(), r.tree.SetHovered)
}

// SetDisabled flips the disabled state of the node with the given element
// id. Disabled is per-node, not exclusive like focus and hover, but the
// cache treatment is the same: the holder is dirtied and evicted so
// ":disabled" rules take effect.
func (r *Renderer) SetDisabled(elementID string, disabled bool) {
	node, ok := r.tree.GetByID(elementID)
	if !ok || node.State.Disabled == disabled {
		return
	}
	node.State.Disabled = disabled
	r.invalidateNode(node.ID)
}

func (r *Renderer) setInteractionState(elementID string, prev dom.NodeID, apply func(dom.NodeID)) {
	next := dom.InvalidNode
	if elementID != "" {
		if node, ok := r.tree.GetByID(elementID); ok {
			next = node.ID
		}
	}
	if next == prev {
		return
	}
	apply(next)
	r.invalidateNode(prev)
	r.invalidateNode(next)
}

// invalidateNode marks a node dirty and evicts its style-cache entry. Every
// eviction path goes through here (or removes the node outright), which is
// what keeps the subtree short-circuit in the style pass sound.
func (r *Renderer) invalidateNode(id dom.NodeID) {
	node, ok := r.tree.Get(id)
	if !ok {
		return
	}
	node.State.Dirty = true
	delete(r.styles, id)
}

// removeSubtree drops a node with all descendants and purges their style
// cache entries.
func (r *Renderer) removeSubtree(id dom.NodeID) {
	for _, removed := range r.tree.Remove(id) {
		delete(r.styles, removed)
	}
}

// resolver returns a style resolver over the compiled selector cache,
// compiling it on first use after a stylesheet change. Selectors that fail
// to parse are dropped and logged; their rules never match.
func (r *Renderer) resolver() *style.Resolver {
	if !r.compiled {
		r.selectors = style.CompileSelectors(r.sheet)
		r.compiled = true
		if dropped := len(r.sheet.Rules) - len(r.selectors); dropped > 0 {
			r.log.WithFields(map[string]any{"dropped": dropped}).Warn("stylesheet rules with malformed selectors ignored")
		}
	}
	return style.NewResolverWithSelectors(r.sheet, r.selectors)
}
