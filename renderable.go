package lumen

import "sync"

// Caches bundles the shared resources the draw worker writes and the paint
// worker reads: the glyph measurer, the geometry arena and the raster store.
// Lock is held by the draw worker for the duration of render-assembly and by
// the paint worker while submitting.
type Caches struct {
	Mu      sync.Mutex
	Font    *FontCache
	Buffers *BufferCache
	Rasters *RasterCache
}

// NewCaches returns a cache set with an empty arena and the default font
// metrics.
func NewCaches() *Caches {
	return &Caches{
		Font:    NewFontCache(),
		Buffers: NewBufferCache(),
		Rasters: NewRasterCache(),
	}
}

// Unmark starts a draw pass: every cached handle becomes a reclaim
// candidate until a kept renderable re-registers it.
func (c *Caches) Unmark() {
	c.Buffers.Unmark()
	c.Rasters.Unmark()
}

// Renderable is one paint primitive produced by a component's Render.
type Renderable interface {
	// Z is the primitive's z offset, added to the node's AABB z.
	Z() float64
	// Register marks the primitive's cache handles as live for this frame.
	Register(c *Caches)
}

// Rect is a solid rectangle.
type Rect struct {
	Pos    Pos
	Scale  Scale
	Color  Color
	Buffer BufferCacheId
}

// NewRect allocates or recycles the buffer handle of prev.
func NewRect(pos Pos, scale Scale, color Color, prev *Rect, c *Caches) *Rect {
	var prevID *BufferCacheId
	if prev != nil {
		prevID = &prev.Buffer
	}
	// 4 vertices, 6 indices per quad.
	id := c.Buffers.AllocOrReuse(prevID, 4, 6)
	c.Buffers.SetFilled(id, false)
	return &Rect{Pos: pos, Scale: scale, Color: color, Buffer: id}
}

func (r *Rect) Z() float64 { return r.Pos.Z }

func (r *Rect) Register(c *Caches) {
	c.Buffers.Register(r.Buffer)
}

// Shape is a filled and/or stroked polygon given as a tessellated outline.
type Shape struct {
	Path        []Point
	Pos         Pos
	Fill        *Color
	Stroke      *Color
	StrokeWidth float64
	Buffer      BufferCacheId
}

func NewShape(path []Point, pos Pos, fill, stroke *Color, strokeWidth float64, prev *Shape, c *Caches) *Shape {
	var prevID *BufferCacheId
	if prev != nil {
		prevID = &prev.Buffer
	}
	n := len(path)
	if n < 3 {
		n = 3
	}
	// Fan triangulation: n vertices, 3(n-2) indices.
	id := c.Buffers.AllocOrReuse(prevID, n, 3*(n-2))
	c.Buffers.SetFilled(id, false)
	return &Shape{
		Path:        path,
		Pos:         pos,
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: strokeWidth,
		Buffer:      id,
	}
}

func (s *Shape) Z() float64 { return s.Pos.Z }

func (s *Shape) Register(c *Caches) {
	c.Buffers.Register(s.Buffer)
}

// Glyph is one positioned rune of laid-out text.
type Glyph struct {
	Rune  rune
	Pos   Point
	Width float64
}

// Text is a laid-out glyph run.
type Text struct {
	Glyphs []Glyph
	Pos    Pos
	Color  Color
	Size   float64
	Bounds Scale
	Buffer BufferCacheId
}

// NewText lays s out against the font cache, wrapping at maxWidth when
// given, and allocates or recycles the buffer handle of prev.
func NewText(s string, pos Pos, color Color, size float64, maxWidth *float64, prev *Text, c *Caches) *Text {
	glyphs, bounds := c.Font.LayoutText(s, size, maxWidth)
	var prevID *BufferCacheId
	if prev != nil {
		prevID = &prev.Buffer
	}
	n := len(glyphs)
	if n < 1 {
		n = 1
	}
	id := c.Buffers.AllocOrReuse(prevID, 4*n, 6*n)
	c.Buffers.SetFilled(id, false)
	return &Text{
		Glyphs: glyphs,
		Pos:    pos,
		Color:  color,
		Size:   size,
		Bounds: bounds,
		Buffer: id,
	}
}

func (t *Text) Z() float64 { return t.Pos.Z }

func (t *Text) Register(c *Caches) {
	c.Buffers.Register(t.Buffer)
}

// String reassembles the text from its glyphs.
func (t *Text) String() string {
	rs := make([]rune, len(t.Glyphs))
	for i, g := range t.Glyphs {
		rs[i] = g.Rune
	}
	return string(rs)
}

// Raster is a block of pixels held in the raster cache.
type Raster struct {
	Pos    Pos
	Scale  Scale
	Data   RasterCacheId
	Buffer BufferCacheId
}

// NewRaster stores data (RGBA, 4 bytes per pixel) and recycles prev's
// handles when given.
func NewRaster(pos Pos, scale Scale, data []byte, size PixelSize, prev *Raster, c *Caches) *Raster {
	var prevRaster *RasterCacheId
	var prevBuf *BufferCacheId
	if prev != nil {
		prevRaster = &prev.Data
		prevBuf = &prev.Buffer
	}
	rid := c.Rasters.AllocOrReuse(prevRaster)
	if data != nil {
		c.Rasters.SetRaster(rid, data, size)
	}
	id := c.Buffers.AllocOrReuse(prevBuf, 4, 6)
	c.Buffers.SetFilled(id, false)
	return &Raster{Pos: pos, Scale: scale, Data: rid, Buffer: id}
}

func (r *Raster) Z() float64 { return r.Pos.Z }

func (r *Raster) Register(c *Caches) {
	c.Buffers.Register(r.Buffer)
	c.Rasters.Register(r.Data)
}
