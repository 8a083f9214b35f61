// Package widgets provides the basic widget set of the toolkit. Widgets are
// plain values implementing view.View; all visual styling comes from the
// cascade through view.Context, never from widget fields.
package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/hawk90/revue/pkg/buffer"
	"github.com/hawk90/revue/pkg/dom"
	"github.com/hawk90/revue/pkg/style"
	"github.com/hawk90/revue/pkg/view"
)

// Sizer is implemented by widgets that can report their preferred content
// size. Stack uses it to allot space; unknown views get a single cell row
// or column.
type Sizer interface {
	PreferredSize() (width, height int)
}

// frame paints background, border and spacing for a widget and returns the
// content area. Shared by every widget so they all honor the same style
// properties.
func frame(ctx *view.Context) buffer.Rect {
	st := ctx.EffectiveStyle()
	area := ctx.Area.Inset(st.Margin)
	if area.Empty() {
		return area
	}
	tmpl := ctx.Cell()
	if st.Background != "" {
		ctx.Buffer.Fill(area, tmpl)
	}
	if st.Border != style.BorderNone {
		borderCell := tmpl
		if st.BorderForeground != "" {
			borderCell.Fg = st.BorderForeground
		}
		ctx.Buffer.DrawBorder(area, st.Border.Lipgloss(), borderCell)
		area = area.Inset(style.Sides{Top: 1, Right: 1, Bottom: 1, Left: 1})
	}
	return area.Inset(st.Padding)
}

// chrome returns the extra cells a style adds around content on each axis.
func chrome(st style.Style) (width, height int) {
	width = st.Margin.Left + st.Margin.Right + st.Padding.Left + st.Padding.Right
	height = st.Margin.Top + st.Margin.Bottom + st.Padding.Top + st.Padding.Bottom
	if st.Border != style.BorderNone {
		width += 2
		height += 2
	}
	return width, height
}

// Text is a single-line text leaf.
type Text struct {
	ID      string
	Classes []string
	Content string
}

func (t Text) Meta() dom.Meta {
	return dom.Meta{Widget: "Text", ID: t.ID, Classes: t.Classes}
}

func (t Text) Children() []view.View { return nil }

func (t Text) PreferredSize() (int, int) {
	return runewidth.StringWidth(t.Content), 1
}

func (t Text) Render(ctx *view.Context) {
	if ctx.Hidden() {
		return
	}
	area := frame(ctx)
	if area.Empty() {
		return
	}
	ctx.Buffer.DrawText(area.X, area.Y, t.Content, ctx.Cell(), area.Width)
}

// Button is a focusable action leaf rendered as a bracketed label.
type Button struct {
	ID      string
	Classes []string
	Label   string
}

func (b Button) Meta() dom.Meta {
	return dom.Meta{Widget: "Button", ID: b.ID, Classes: b.Classes}
}

func (b Button) Children() []view.View { return nil }

func (b Button) PreferredSize() (int, int) {
	return runewidth.StringWidth(b.Label) + 4, 1
}

func (b Button) Render(ctx *view.Context) {
	if ctx.Hidden() {
		return
	}
	area := frame(ctx)
	if area.Empty() {
		return
	}
	ctx.Buffer.DrawText(area.X, area.Y, "[ "+b.Label+" ]", ctx.Cell(), area.Width)
}

// Checkbox is a toggle leaf. Checked is declared by the view; the rendered
// marker follows it directly.
type Checkbox struct {
	ID      string
	Classes []string
	Label   string
	Checked bool
}

func (c Checkbox) Meta() dom.Meta {
	return dom.Meta{Widget: "Checkbox", ID: c.ID, Classes: c.Classes}
}

func (c Checkbox) Children() []view.View { return nil }

func (c Checkbox) PreferredSize() (int, int) {
	return runewidth.StringWidth(c.Label) + 4, 1
}

func (c Checkbox) Render(ctx *view.Context) {
	if ctx.Hidden() {
		return
	}
	area := frame(ctx)
	if area.Empty() {
		return
	}
	marker := "[ ] "
	if c.Checked {
		marker = "[x] "
	}
	ctx.Buffer.DrawText(area.X, area.Y, marker+c.Label, ctx.Cell(), area.Width)
}

// Stack lays out its children along one axis, separated by the style's gap.
type Stack struct {
	ID         string
	Classes    []string
	Horizontal bool
	Items      []view.View
}

func (s Stack) Meta() dom.Meta {
	return dom.Meta{Widget: "Stack", ID: s.ID, Classes: s.Classes}
}

func (s Stack) Children() []view.View { return s.Items }

func (s Stack) PreferredSize() (int, int) {
	var width, height int
	for _, item := range s.Items {
		w, h := 1, 1
		if sizer, ok := item.(Sizer); ok {
			w, h = sizer.PreferredSize()
		}
		if s.Horizontal {
			width += w
			if h > height {
				height = h
			}
		} else {
			height += h
			if w > width {
				width = w
			}
		}
	}
	return width, height
}

func (s Stack) Render(ctx *view.Context) {
	if ctx.Hidden() {
		return
	}
	area := frame(ctx)
	if area.Empty() {
		return
	}
	gap := ctx.EffectiveStyle().Gap

	offset := 0
	for i, item := range s.Items {
		remaining := s.remaining(area, offset)
		if remaining.Empty() {
			return
		}
		childCtx := ctx.Child(i, remaining)
		extent := childExtent(item, childCtx, s.Horizontal)
		slot := s.slot(area, offset, extent)
		item.Render(ctx.Child(i, slot))
		offset += extent + gap
	}
}

func (s Stack) remaining(area buffer.Rect, offset int) buffer.Rect {
	if s.Horizontal {
		return buffer.Rect{X: area.X + offset, Y: area.Y, Width: area.Width - offset, Height: area.Height}
	}
	return buffer.Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: area.Height - offset}
}

func (s Stack) slot(area buffer.Rect, offset, extent int) buffer.Rect {
	slot := s.remaining(area, offset)
	if s.Horizontal {
		if extent < slot.Width {
			slot.Width = extent
		}
	} else if extent < slot.Height {
		slot.Height = extent
	}
	return slot
}

// childExtent decides how many cells along the stack axis a child gets: an
// explicit width/height from the cascade wins, then the widget's preferred
// size plus its style chrome, then a single cell.
func childExtent(item view.View, ctx *view.Context, horizontal bool) int {
	st := ctx.EffectiveStyle()
	if horizontal && st.IsSet(style.PropWidth) {
		return st.Width
	}
	if !horizontal && st.IsSet(style.PropHeight) {
		return st.Height
	}
	w, h := 1, 1
	if sizer, ok := item.(Sizer); ok {
		w, h = sizer.PreferredSize()
	}
	cw, ch := chrome(st)
	if horizontal {
		return w + cw
	}
	return h + ch
}
