// Package view defines the capability contract between widgets and the DOM
// renderer: a View describes itself through node metadata and children, and
// draws itself through a Context carrying its resolved style and state.
package view

import (
	"github.com/hawk90/revue/pkg/buffer"
	"github.com/hawk90/revue/pkg/dom"
	"github.com/hawk90/revue/pkg/style"
)

// View is any value that can describe itself as a widget node and render
// into a cell buffer. The renderer never inspects a view beyond this
// interface; concrete widget types are unbounded and supplied by the widget
// layer.
type View interface {
	// Meta describes the node's identity for tree reconciliation and
	// selector matching.
	Meta() dom.Meta
	// Children returns the ordered child views, nil for leaves.
	Children() []View
	// Render draws the view into the context's buffer area. Views must
	// tolerate a context without style or state (empty tree).
	Render(ctx *Context)
}

// StyleSource resolves child styles and states for container views. The
// renderer implements it; widgets reach it only through Context.
type StyleSource interface {
	// ChildContext returns a context for the index-th child of the given
	// node, drawing into buf over area. The bool result is false when the
	// node or child is unknown to the tree.
	ChildContext(id dom.NodeID, index int, buf *buffer.Buffer, area buffer.Rect) (*Context, bool)
}

// Context bundles everything a view needs to draw itself.
type Context struct {
	Buffer *buffer.Buffer
	Area   buffer.Rect
	// Style is the node's resolved cascade result; nil when rendering
	// without a DOM (empty tree).
	Style *style.Style
	// State is the node's interaction state; nil when rendering without a
	// DOM.
	State *dom.State

	node   dom.NodeID
	source StyleSource
}

// NewContext builds a render context. The renderer is the only caller that
// supplies a style source; tests may pass nil.
func NewContext(buf *buffer.Buffer, area buffer.Rect, st *style.Style, state *dom.State, node dom.NodeID, source StyleSource) *Context {
	return &Context{
		Buffer: buf,
		Area:   area,
		Style:  st,
		State:  state,
		node:   node,
		source: source,
	}
}

// Child returns a context for the index-th child view, restricted to area.
// Container widgets use it so each child renders with the child's own
// resolved style and state. Without a style source the child context
// carries the buffer and area only.
func (c *Context) Child(index int, area buffer.Rect) *Context {
	if c.source != nil {
		if child, ok := c.source.ChildContext(c.node, index, c.Buffer, area); ok {
			return child
		}
	}
	return &Context{Buffer: c.Buffer, Area: area}
}

// EffectiveStyle returns the context's style, falling back to the library
// default so leaf rendering code never branches on nil.
func (c *Context) EffectiveStyle() style.Style {
	if c.Style != nil {
		return *c.Style
	}
	return style.Default()
}

// Hidden reports whether the resolved style suppresses drawing.
func (c *Context) Hidden() bool {
	return c.Style != nil && c.Style.Hidden()
}

// Cell builds a template cell from the context's style, applying opacity by
// blending the foreground toward the background.
func (c *Context) Cell() buffer.Cell {
	st := c.EffectiveStyle()
	fg := st.Foreground
	if st.Opacity < 1 {
		fg = fg.Blend(st.Background, 1-st.Opacity)
	}
	return buffer.Cell{
		Rune:      ' ',
		Fg:        fg,
		Bg:        st.Background,
		Bold:      st.Bold,
		Faint:     st.Faint,
		Italic:    st.Italic,
		Underline: st.Underline,
	}
}
