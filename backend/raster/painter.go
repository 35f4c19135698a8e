// Package raster paints lumen frames into an in-memory image. It backs
// offscreen rendering, golden-image tests and screenshots.
package raster

import (
	"image"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"lumen"
)

// Painter rasterizes paint runs with a 2D canvas. The latest frame is kept
// until the next Paint.
type Painter struct {
	mu     sync.Mutex
	img    *image.RGBA
	width  int
	height int
}

func NewPainter(width, height int) *Painter {
	return &Painter{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
}

// Image returns the last painted frame.
func (p *Painter) Image() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.img
}

func (p *Painter) Paint(runs []lumen.PaintRun, caches *lumen.Caches, size lumen.Scale, scaleFactor float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	dc := gg.NewContext(p.width, p.height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, run := range runs {
		dc.Push()
		for _, f := range run.Frames {
			dc.DrawRectangle(f.Pos.X, f.Pos.Y, f.Width(), f.Height())
			dc.Clip()
		}
		for _, e := range run.Entries {
			paintEntry(dc, e, caches)
		}
		dc.Pop()
		dc.ResetClip()
	}

	p.img = imageRGBA(dc.Image())
	return nil
}

func imageRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

func paintEntry(dc *gg.Context, e lumen.RenderEntry, caches *lumen.Caches) {
	ox, oy := e.AABB.Pos.X, e.AABB.Pos.Y
	switch r := e.Renderable.(type) {
	case *lumen.Rect:
		dc.SetRGBA(r.Color.R, r.Color.G, r.Color.B, r.Color.A)
		dc.DrawRectangle(ox+r.Pos.X, oy+r.Pos.Y, r.Scale.Width, r.Scale.Height)
		dc.Fill()
	case *lumen.Shape:
		if len(r.Path) == 0 {
			return
		}
		dc.MoveTo(ox+r.Pos.X+r.Path[0].X, oy+r.Pos.Y+r.Path[0].Y)
		for _, pt := range r.Path[1:] {
			dc.LineTo(ox+r.Pos.X+pt.X, oy+r.Pos.Y+pt.Y)
		}
		dc.ClosePath()
		if r.Fill != nil {
			dc.SetRGBA(r.Fill.R, r.Fill.G, r.Fill.B, r.Fill.A)
			dc.FillPreserve()
		}
		if r.Stroke != nil && r.StrokeWidth > 0 {
			dc.SetRGBA(r.Stroke.R, r.Stroke.G, r.Stroke.B, r.Stroke.A)
			dc.SetLineWidth(r.StrokeWidth)
			dc.Stroke()
		} else {
			dc.ClearPath()
		}
	case *lumen.Text:
		dc.SetRGBA(r.Color.R, r.Color.G, r.Color.B, r.Color.A)
		for _, g := range r.Glyphs {
			// Glyph positions are top-left; DrawString wants the baseline.
			dc.DrawString(string(g.Rune), ox+r.Pos.X+g.Pos.X, oy+r.Pos.Y+g.Pos.Y+r.Size)
		}
	case *lumen.Raster:
		data, size := caches.Rasters.Raster(r.Data)
		if len(data) == 0 || size.Width == 0 || size.Height == 0 {
			return
		}
		src := &image.RGBA{
			Pix:    data,
			Stride: int(size.Width) * 4,
			Rect:   image.Rect(0, 0, int(size.Width), int(size.Height)),
		}
		dc.Push()
		sx := r.Scale.Width / float64(size.Width)
		sy := r.Scale.Height / float64(size.Height)
		dc.Translate(ox+r.Pos.X, oy+r.Pos.Y)
		dc.Scale(sx, sy)
		dc.DrawImage(src, 0, 0)
		dc.Pop()
	}
}

func (p *Painter) Resize(size lumen.Scale) {
	p.mu.Lock()
	p.width = int(size.Width)
	p.height = int(size.Height)
	p.img = image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	p.mu.Unlock()
}

func (p *Painter) Recreate() error { return nil }

func (p *Painter) Drop() {}
