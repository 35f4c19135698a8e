package lumen

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.25, 0.25, 0.25, 1}
	LightGray   = Color{0.75, 0.75, 0.75, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color { return Color{r, g, b, 1} }

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a float64) Color { return Color{r, g, b, a} }

// Hex parses colors like "#1e90ff". Alpha is always 1.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{c.R, c.G, c.B, 1}, nil
}

// MustHex is Hex for compile-time constants; it panics on a bad literal.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Blend interpolates toward o in RGB space. t=0 yields c, t=1 yields o.
func (c Color) Blend(o Color, t float64) Color {
	m := c.colorful().BlendRgb(o.colorful(), t)
	return Color{m.R, m.G, m.B, c.A + (o.A-c.A)*t}
}

// Lighten moves the color toward white in HSL space.
func (c Color) Lighten(amount float64) Color {
	h, s, l := c.colorful().Hsl()
	l += amount
	if l > 1 {
		l = 1
	}
	m := colorful.Hsl(h, s, l)
	return Color{m.R, m.G, m.B, c.A}
}

// Darken moves the color toward black in HSL space.
func (c Color) Darken(amount float64) Color {
	h, s, l := c.colorful().Hsl()
	l -= amount
	if l < 0 {
		l = 0
	}
	m := colorful.Hsl(h, s, l)
	return Color{m.R, m.G, m.B, c.A}
}

// WithAlpha returns the color with a replaced alpha channel.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA8 returns the color packed as 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A)
}

func (c Color) Hash(h *Hasher) {
	h.WriteFloat(c.R)
	h.WriteFloat(c.G)
	h.WriteFloat(c.B)
	h.WriteFloat(c.A)
}
