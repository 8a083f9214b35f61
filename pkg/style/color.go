package style

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal color in normalized lowercase hex form, e.g.
// "#ff0000". The empty string means "terminal default".
type Color string

// Standard ANSI color names accepted in declarations alongside hex values.
var namedColors = map[string]string{
	"black":          "#000000",
	"red":            "#cd0000",
	"green":          "#00cd00",
	"yellow":         "#cdcd00",
	"blue":           "#0000ee",
	"magenta":        "#cd00cd",
	"cyan":           "#00cdcd",
	"white":          "#e5e5e5",
	"bright-black":   "#7f7f7f",
	"bright-red":     "#ff0000",
	"bright-green":   "#00ff00",
	"bright-yellow":  "#ffff00",
	"bright-blue":    "#5c5cff",
	"bright-magenta": "#ff00ff",
	"bright-cyan":    "#00ffff",
	"bright-white":   "#ffffff",
}

// ParseColor normalizes a color value. Hex values (#rgb or #rrggbb) and the
// standard ANSI color names are accepted.
func ParseColor(value string) (Color, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if len(v) == 4 && v[0] == '#' {
		// colorful only accepts the long form.
		v = "#" + strings.Repeat(string(v[1]), 2) + strings.Repeat(string(v[2]), 2) + strings.Repeat(string(v[3]), 2)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return "", false
	}
	return Color(strings.ToLower(c.Hex())), true
}

// Blend mixes the color toward other in RGB space. t=0 keeps the receiver,
// t=1 yields other. Blending with an unset color returns the receiver, so
// opacity against the terminal default background is a no-op.
func (c Color) Blend(other Color, t float64) Color {
	if c == "" || other == "" {
		return c
	}
	from, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	to, err := colorful.Hex(string(other))
	if err != nil {
		return c
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Color(strings.ToLower(from.BlendRgb(to, t).Hex()))
}
