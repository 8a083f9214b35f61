// Package buffer provides the character-cell drawing surface widgets render
// into. The renderer treats it as an opaque grid with per-cell styling; the
// bubbletea adapter turns it into an ANSI string once per frame.
package buffer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hawk90/revue/pkg/style"
)

// Rect is a rectangular region in buffer coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset shrinks the rect by the given sides, clamping at zero size.
func (r Rect) Inset(s style.Sides) Rect {
	out := Rect{
		X:      r.X + s.Left,
		Y:      r.Y + s.Top,
		Width:  r.Width - s.Left - s.Right,
		Height: r.Height - s.Top - s.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Cell is a single character cell. A zero Rune marks the continuation cell
// of a wide rune and is skipped when rendering.
type Cell struct {
	Rune      rune
	Fg        style.Color
	Bg        style.Color
	Bold      bool
	Faint     bool
	Italic    bool
	Underline bool
}

// Blank is the empty cell buffers are cleared with.
var Blank = Cell{Rune: ' '}

func (c Cell) sameAttrs(other Cell) bool {
	return c.Fg == other.Fg && c.Bg == other.Bg &&
		c.Bold == other.Bold && c.Faint == other.Faint &&
		c.Italic == other.Italic && c.Underline == other.Underline
}

// Buffer is a fixed-size grid of cells.
type Buffer struct {
	width  int
	height int
	cells  []Cell
}

// New allocates a cleared buffer.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{width: width, height: height, cells: make([]Cell, width*height)}
	b.Clear()
	return b
}

// Width returns the buffer width in cells.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in rows.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the full-buffer rect.
func (b *Buffer) Bounds() Rect {
	return Rect{Width: b.width, Height: b.height}
}

// Clear resets every cell to Blank.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Blank
	}
}

// Resize reallocates the grid and clears it.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b.width = width
	b.height = height
	b.cells = make([]Cell, width*height)
	b.Clear()
}

// Set writes one cell. Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, cell Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = cell
}

// At reads one cell.
func (b *Buffer) At(x, y int) (Cell, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Fill paints every cell of the rect with the template cell.
func (b *Buffer) Fill(r Rect, cell Cell) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			b.Set(x, y, cell)
		}
	}
}

// DrawText writes text starting at (x, y) using the template cell's
// attributes, clipped to maxWidth columns and the buffer edge. Wide runes
// occupy two cells; the continuation cell gets a zero rune. Returns the
// number of columns written.
func (b *Buffer) DrawText(x, y int, text string, tmpl Cell, maxWidth int) int {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxWidth {
			break
		}
		cell := tmpl
		cell.Rune = r
		b.Set(x+col, y, cell)
		if w == 2 {
			cont := tmpl
			cont.Rune = 0
			b.Set(x+col+1, y, cont)
		}
		col += w
	}
	return col
}

// DrawBorder draws a one-cell border just inside the rect.
func (b *Buffer) DrawBorder(r Rect, border lipgloss.Border, tmpl Cell) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right := r.X + r.Width - 1
	bottom := r.Y + r.Height - 1

	put := func(x, y int, s string) {
		for _, rn := range s {
			cell := tmpl
			cell.Rune = rn
			b.Set(x, y, cell)
			return
		}
	}

	put(r.X, r.Y, border.TopLeft)
	put(right, r.Y, border.TopRight)
	put(r.X, bottom, border.BottomLeft)
	put(right, bottom, border.BottomRight)
	for x := r.X + 1; x < right; x++ {
		put(x, r.Y, border.Top)
		put(x, bottom, border.Bottom)
	}
	for y := r.Y + 1; y < bottom; y++ {
		put(r.X, y, border.Left)
		put(right, y, border.Right)
	}
}

// Content returns the buffer text without styling, rows joined by newlines.
// Continuation cells of wide runes are skipped.
func (b *Buffer) Content() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			cell := b.cells[y*b.width+x]
			if cell.Rune == 0 {
				continue
			}
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}

// String renders the buffer as an ANSI-styled string, one line per row.
// Consecutive cells sharing attributes render as a single styled run.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < b.width {
			run := b.cells[y*b.width+x]
			var text strings.Builder
			end := x
			for end < b.width {
				cell := b.cells[y*b.width+end]
				if !cell.sameAttrs(run) {
					break
				}
				if cell.Rune != 0 {
					text.WriteRune(cell.Rune)
				}
				end++
			}
			sb.WriteString(runStyle(run).Render(text.String()))
			x = end
		}
	}
	return sb.String()
}

func runStyle(c Cell) lipgloss.Style {
	s := lipgloss.NewStyle().
		Bold(c.Bold).
		Faint(c.Faint).
		Italic(c.Italic).
		Underline(c.Underline)
	if c.Fg != "" {
		s = s.Foreground(lipgloss.Color(string(c.Fg)))
	}
	if c.Bg != "" {
		s = s.Background(lipgloss.Color(string(c.Bg)))
	}
	return s
}
