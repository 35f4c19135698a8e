package term

import (
	"math"
	"sync"

	"lumen"
)

// Terminal cells are not square; these are the physical pixels one cell
// stands for. The analogous glyph metrics live in the engine's font cache.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Painter rasterizes paint runs onto a cell grid. The grid is presented by
// the backend's view loop.
type Painter struct {
	mu      sync.Mutex
	buf     *CellBuffer
	refresh func()
}

func NewPainter(cols, rows int, refresh func()) *Painter {
	return &Painter{buf: NewCellBuffer(cols, rows), refresh: refresh}
}

// Snapshot copies the current grid for rendering; the paint worker keeps
// writing while the view loop reads.
func (p *Painter) Snapshot() *CellBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := NewCellBuffer(p.buf.width, p.buf.height)
	copy(out.cells, p.buf.cells)
	return out
}

func (p *Painter) Paint(runs []lumen.PaintRun, caches *lumen.Caches, size lumen.Scale, scaleFactor float64) error {
	p.mu.Lock()
	p.buf.Clear()
	for _, run := range runs {
		clip := clipRect(run.Frames, size)
		for _, e := range run.Entries {
			p.paintEntry(e, clip, caches)
		}
	}
	p.mu.Unlock()
	if p.refresh != nil {
		p.refresh()
	}
	return nil
}

func (p *Painter) Resize(size lumen.Scale) {
	p.mu.Lock()
	p.buf.Resize(int(size.Width/CellWidth), int(size.Height/CellHeight))
	p.mu.Unlock()
}

func (p *Painter) Recreate() error { return nil }

func (p *Painter) Drop() {}

// clipRect intersects the frame chain down to one box; an empty chain
// clips to the surface.
func clipRect(frames []lumen.AABB, size lumen.Scale) lumen.AABB {
	clip := lumen.NewAABB(0, 0, size.Width, size.Height)
	for _, f := range frames {
		clip = clip.Intersection(f)
	}
	return clip
}

func (p *Painter) paintEntry(e lumen.RenderEntry, clip lumen.AABB, caches *lumen.Caches) {
	origin := e.AABB.Pos
	switch r := e.Renderable.(type) {
	case *lumen.Rect:
		p.fillRect(
			origin.X+r.Pos.X, origin.Y+r.Pos.Y,
			r.Scale.Width, r.Scale.Height, r.Color, clip)
	case *lumen.Shape:
		// Cell terminals cannot stroke arbitrary polygons; fill the
		// bounding box instead.
		if r.Fill != nil {
			minX, minY := math.Inf(1), math.Inf(1)
			maxX, maxY := math.Inf(-1), math.Inf(-1)
			for _, pt := range r.Path {
				minX = math.Min(minX, pt.X)
				minY = math.Min(minY, pt.Y)
				maxX = math.Max(maxX, pt.X)
				maxY = math.Max(maxY, pt.Y)
			}
			if maxX > minX && maxY > minY {
				p.fillRect(origin.X+r.Pos.X+minX, origin.Y+r.Pos.Y+minY,
					maxX-minX, maxY-minY, *r.Fill, clip)
			}
		}
	case *lumen.Text:
		for _, g := range r.Glyphs {
			x := origin.X + r.Pos.X + g.Pos.X
			y := origin.Y + r.Pos.Y + g.Pos.Y
			if !clip.IsUnder(lumen.Point{X: x, Y: y}) {
				continue
			}
			p.buf.SetRune(int(x/CellWidth), int(y/CellHeight), g.Rune, r.Color)
		}
	case *lumen.Raster:
		data, size := caches.Rasters.Raster(r.Data)
		if len(data) == 0 || size.Width == 0 || size.Height == 0 {
			return
		}
		p.fillRaster(origin.X+r.Pos.X, origin.Y+r.Pos.Y, r.Scale, data, size, clip)
	}
}

func (p *Painter) fillRect(x, y, w, h float64, color lumen.Color, clip lumen.AABB) {
	box := lumen.NewAABB(x, y, w, h).Intersection(clip)
	x0, y0 := int(box.Pos.X/CellWidth), int(box.Pos.Y/CellHeight)
	x1 := int(math.Ceil(box.BottomRight.X / CellWidth))
	y1 := int(math.Ceil(box.BottomRight.Y / CellHeight))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			p.buf.SetBg(cx, cy, color)
		}
	}
}

// fillRaster downsamples the pixel block to one sample per cell.
func (p *Painter) fillRaster(x, y float64, scale lumen.Scale, data []byte, size lumen.PixelSize, clip lumen.AABB) {
	box := lumen.NewAABB(x, y, scale.Width, scale.Height).Intersection(clip)
	x0, y0 := int(box.Pos.X/CellWidth), int(box.Pos.Y/CellHeight)
	x1 := int(math.Ceil(box.BottomRight.X / CellWidth))
	y1 := int(math.Ceil(box.BottomRight.Y / CellHeight))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			// Cell center back in raster space.
			u := ((float64(cx)+0.5)*CellWidth - x) / scale.Width
			v := ((float64(cy)+0.5)*CellHeight - y) / scale.Height
			px := int(u * float64(size.Width))
			py := int(v * float64(size.Height))
			if px < 0 || py < 0 || px >= int(size.Width) || py >= int(size.Height) {
				continue
			}
			i := (py*int(size.Width) + px) * 4
			if i+3 >= len(data) {
				continue
			}
			c := lumen.Color{
				R: float64(data[i]) / 255,
				G: float64(data[i+1]) / 255,
				B: float64(data[i+2]) / 255,
				A: float64(data[i+3]) / 255,
			}
			p.buf.SetBg(cx, cy, c)
		}
	}
}
