// Package style defines the resolved visual style of a widget node and the
// resolver that computes it from a stylesheet cascade.
package style

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hawk90/revue/pkg/css"
)

// Prop identifies a single style property.
type Prop uint8

const (
	// Inherited properties: when a node's rules leave one unset, the value
	// propagates from the parent's resolved style.
	PropForeground Prop = iota
	PropBold
	PropItalic
	PropUnderline
	PropFaint
	PropVisibility

	// Non-inherited properties: always the library default unless the
	// node's own rules set them.
	PropBackground
	PropBorder
	PropBorderForeground
	PropPadding
	PropMargin
	PropWidth
	PropHeight
	PropGap
	PropOpacity

	propCount
)

// Inherited reports whether the property propagates from parent to child.
func (p Prop) Inherited() bool {
	return p <= PropVisibility
}

// Visibility controls whether a node is drawn.
type Visibility uint8

const (
	VisibilityVisible Visibility = iota
	VisibilityHidden
)

// Border enumerates the supported border variants.
type Border uint8

const (
	BorderNone Border = iota
	BorderNormal
	BorderRounded
	BorderThick
	BorderDouble
)

// Sides holds per-edge spacing values.
type Sides struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Style is the result of cascade resolution for one node. It is produced
// only by the Resolver; widget code never hand-constructs one.
type Style struct {
	Foreground Color
	Bold       bool
	Italic     bool
	Underline  bool
	Faint      bool
	Visibility Visibility

	Background       Color
	Border           Border
	BorderForeground Color
	Padding          Sides
	Margin           Sides
	Width            int
	Height           int
	Gap              int
	Opacity          float64

	explicit uint16
}

// Default returns the library's hard-coded default style.
func Default() Style {
	return Style{Opacity: 1}
}

// IsSet reports whether a rule explicitly set the property on this node.
// Inherited values do not count as explicitly set, which keeps inheritance
// transitive through intermediate nodes.
func (s *Style) IsSet(p Prop) bool {
	return s.explicit&(1<<p) != 0
}

func (s *Style) markSet(p Prop) {
	s.explicit |= 1 << p
}

// Hidden reports whether the node should not be drawn.
func (s *Style) Hidden() bool {
	return s.Visibility == VisibilityHidden
}

// InheritFrom copies every inherited property this style did not set
// explicitly from the parent's resolved style. Non-inherited properties are
// never copied.
func (s *Style) InheritFrom(parent *Style) {
	if parent == nil {
		return
	}
	if !s.IsSet(PropForeground) {
		s.Foreground = parent.Foreground
	}
	if !s.IsSet(PropBold) {
		s.Bold = parent.Bold
	}
	if !s.IsSet(PropItalic) {
		s.Italic = parent.Italic
	}
	if !s.IsSet(PropUnderline) {
		s.Underline = parent.Underline
	}
	if !s.IsSet(PropFaint) {
		s.Faint = parent.Faint
	}
	if !s.IsSet(PropVisibility) {
		s.Visibility = parent.Visibility
	}
}

// Apply folds one declaration into the style. Unknown properties and
// malformed values are skipped; the cascade must always produce a usable
// style.
func (s *Style) Apply(decl css.Declaration) {
	value := strings.TrimSpace(decl.Value)
	switch strings.ToLower(decl.Property) {
	case "color":
		if c, ok := ParseColor(value); ok {
			s.Foreground = c
			s.markSet(PropForeground)
		}
	case "font-weight":
		if b, ok := parseOnOff(value, "bold", "normal"); ok {
			s.Bold = b
			s.markSet(PropBold)
		}
	case "font-style":
		if b, ok := parseOnOff(value, "italic", "normal"); ok {
			s.Italic = b
			s.markSet(PropItalic)
		}
	case "text-decoration":
		if b, ok := parseOnOff(value, "underline", "none"); ok {
			s.Underline = b
			s.markSet(PropUnderline)
		}
	case "faint":
		if b, ok := parseBool(value); ok {
			s.Faint = b
			s.markSet(PropFaint)
		}
	case "visibility":
		switch strings.ToLower(value) {
		case "visible":
			s.Visibility = VisibilityVisible
			s.markSet(PropVisibility)
		case "hidden":
			s.Visibility = VisibilityHidden
			s.markSet(PropVisibility)
		}
	case "background":
		if c, ok := ParseColor(value); ok {
			s.Background = c
			s.markSet(PropBackground)
		}
	case "border":
		if b, ok := parseBorder(value); ok {
			s.Border = b
			s.markSet(PropBorder)
		}
	case "border-color":
		if c, ok := ParseColor(value); ok {
			s.BorderForeground = c
			s.markSet(PropBorderForeground)
		}
	case "padding":
		if sides, ok := parseSides(value); ok {
			s.Padding = sides
			s.markSet(PropPadding)
		}
	case "margin":
		if sides, ok := parseSides(value); ok {
			s.Margin = sides
			s.markSet(PropMargin)
		}
	case "width":
		if n, ok := parseNonNegativeInt(value); ok {
			s.Width = n
			s.markSet(PropWidth)
		}
	case "height":
		if n, ok := parseNonNegativeInt(value); ok {
			s.Height = n
			s.markSet(PropHeight)
		}
	case "gap":
		if n, ok := parseNonNegativeInt(value); ok {
			s.Gap = n
			s.markSet(PropGap)
		}
	case "opacity":
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 && f <= 1 {
			s.Opacity = f
			s.markSet(PropOpacity)
		}
	}
}

// Lipgloss converts the resolved style for use with the widget layer's
// string rendering.
func (s *Style) Lipgloss() lipgloss.Style {
	out := lipgloss.NewStyle().
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		Faint(s.Faint)
	if s.Foreground != "" {
		out = out.Foreground(lipgloss.Color(string(s.Foreground)))
	}
	if s.Background != "" {
		out = out.Background(lipgloss.Color(string(s.Background)))
	}
	if s.Border != BorderNone {
		out = out.BorderStyle(s.Border.Lipgloss())
		if s.BorderForeground != "" {
			out = out.BorderForeground(lipgloss.Color(string(s.BorderForeground)))
		}
	}
	out = out.
		Padding(s.Padding.Top, s.Padding.Right, s.Padding.Bottom, s.Padding.Left).
		Margin(s.Margin.Top, s.Margin.Right, s.Margin.Bottom, s.Margin.Left)
	if s.Width > 0 {
		out = out.Width(s.Width)
	}
	if s.Height > 0 {
		out = out.Height(s.Height)
	}
	return out
}

// Lipgloss maps the border variant onto a lipgloss border definition.
func (b Border) Lipgloss() lipgloss.Border {
	switch b {
	case BorderNormal:
		return lipgloss.NormalBorder()
	case BorderRounded:
		return lipgloss.RoundedBorder()
	case BorderThick:
		return lipgloss.ThickBorder()
	case BorderDouble:
		return lipgloss.DoubleBorder()
	default:
		return lipgloss.Border{}
	}
}

func parseBorder(value string) (Border, bool) {
	switch strings.ToLower(value) {
	case "none":
		return BorderNone, true
	case "normal", "solid":
		return BorderNormal, true
	case "rounded":
		return BorderRounded, true
	case "thick":
		return BorderThick, true
	case "double":
		return BorderDouble, true
	default:
		return BorderNone, false
	}
}

func parseOnOff(value, on, off string) (bool, bool) {
	switch strings.ToLower(value) {
	case on:
		return true, true
	case off:
		return false, true
	default:
		return false, false
	}
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(value) {
	case "true", "yes":
		return true, true
	case "false", "no":
		return false, true
	default:
		return false, false
	}
}

func parseNonNegativeInt(value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseSides accepts CSS-style shorthand: one value for all edges, two for
// vertical/horizontal, or four for top/right/bottom/left.
func parseSides(value string) (Sides, bool) {
	fields := strings.Fields(value)
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, ok := parseNonNegativeInt(f)
		if !ok {
			return Sides{}, false
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 1:
		return Sides{Top: nums[0], Right: nums[0], Bottom: nums[0], Left: nums[0]}, true
	case 2:
		return Sides{Top: nums[0], Right: nums[1], Bottom: nums[0], Left: nums[1]}, true
	case 4:
		return Sides{Top: nums[0], Right: nums[1], Bottom: nums[2], Left: nums[3]}, true
	default:
		return Sides{}, false
	}
}
