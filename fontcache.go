package lumen

import (
	"github.com/mattn/go-runewidth"
)

// DefaultFontSize is the text size assumed when a component doesn't set one.
const DefaultFontSize = 12.0

// FontCache measures and lays out text. The engine models glyph advances on
// a per-cell basis scaled by font size: a rune's advance is its terminal
// cell width (via go-runewidth) times CharAspect times the font size.
// Backends with real font metrics can substitute their own cache.
type FontCache struct {
	// CharAspect is the advance of a single-cell rune relative to the
	// font size.
	CharAspect float64
	// LineAspect is the line height relative to the font size.
	LineAspect float64
}

// NewFontCache returns a cache with typical monospace proportions.
func NewFontCache() *FontCache {
	return &FontCache{CharAspect: 0.6, LineAspect: 1.2}
}

func (fc *FontCache) advance(r rune, size float64) float64 {
	return float64(runewidth.RuneWidth(r)) * fc.CharAspect * size
}

// LineHeight returns the vertical advance for the given font size.
func (fc *FontCache) LineHeight(size float64) float64 {
	return fc.LineAspect * size
}

// MeasureText returns the bounds of s at the given size, wrapping at
// maxWidth when non-nil.
func (fc *FontCache) MeasureText(s string, size float64, maxWidth *float64) Scale {
	_, bounds := fc.LayoutText(s, size, maxWidth)
	return bounds
}

// LayoutText positions each rune of s, wrapping at word boundaries when a
// line would exceed maxWidth, and returns the glyphs plus total bounds.
func (fc *FontCache) LayoutText(s string, size float64, maxWidth *float64) ([]Glyph, Scale) {
	glyphs := make([]Glyph, 0, len(s))
	lineH := fc.LineHeight(size)
	var x, y, width float64
	lastSpace := -1 // index into glyphs of the last breakable rune on this line

	newline := func() {
		if x > width {
			width = x
		}
		x = 0
		y += lineH
		lastSpace = -1
	}

	for _, r := range s {
		if r == '\n' {
			newline()
			continue
		}
		adv := fc.advance(r, size)
		if maxWidth != nil && x+adv > *maxWidth && x > 0 {
			if lastSpace >= 0 && lastSpace < len(glyphs)-1 {
				// Re-flow the word in progress onto the next line.
				word := glyphs[lastSpace+1:]
				glyphs = glyphs[:lastSpace+1]
				newline()
				for i := range word {
					word[i].Pos = Point{X: x, Y: y}
					x += word[i].Width
				}
				glyphs = append(glyphs, word...)
			} else {
				newline()
			}
		}
		if r == ' ' && x == 0 {
			// Drop leading spaces after a wrap.
			continue
		}
		glyphs = append(glyphs, Glyph{Rune: r, Pos: Point{X: x, Y: y}, Width: adv})
		if r == ' ' {
			lastSpace = len(glyphs) - 1
		}
		x += adv
	}
	if x > width {
		width = x
	}
	height := y
	if len(glyphs) > 0 || s != "" {
		height += lineH
	}
	return glyphs, Scale{Width: width, Height: height}
}
