package raster

import (
	"image/color"
	"testing"

	"lumen"
)

func rectEntry(x, y, w, h float64, c lumen.Color, caches *lumen.Caches) lumen.RenderEntry {
	return lumen.RenderEntry{
		Renderable: lumen.NewRect(lumen.Pos{}, lumen.Scale{Width: w, Height: h}, c, nil, caches),
		AABB:       lumen.NewAABB(x, y, w, h),
	}
}

func pixel(t *testing.T, p *Painter, x, y int) color.RGBA {
	t.Helper()
	return p.Image().RGBAAt(x, y)
}

func TestPainterFillsRect(t *testing.T) {
	p := NewPainter(100, 100)
	caches := lumen.NewCaches()

	runs := []lumen.PaintRun{{
		Entries: []lumen.RenderEntry{rectEntry(10, 20, 30, 40, lumen.Red, caches)},
	}}
	if err := p.Paint(runs, caches, lumen.Scale{Width: 100, Height: 100}, 1); err != nil {
		t.Fatalf("unexpected paint error: %v", err)
	}

	if got := pixel(t, p, 25, 40); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("expected red inside the rect, got %+v", got)
	}
	if got := pixel(t, p, 5, 5); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("expected white background outside the rect, got %+v", got)
	}
}

func TestPainterClipsToFrames(t *testing.T) {
	p := NewPainter(100, 100)
	caches := lumen.NewCaches()

	runs := []lumen.PaintRun{{
		Frames:  []lumen.AABB{lumen.NewAABB(0, 0, 50, 50)},
		Entries: []lumen.RenderEntry{rectEntry(0, 0, 100, 100, lumen.Blue, caches)},
	}}
	if err := p.Paint(runs, caches, lumen.Scale{Width: 100, Height: 100}, 1); err != nil {
		t.Fatalf("unexpected paint error: %v", err)
	}

	if got := pixel(t, p, 25, 25); got.B != 255 || got.R != 0 {
		t.Errorf("expected blue inside the frame, got %+v", got)
	}
	if got := pixel(t, p, 75, 75); got.B == 255 && got.R == 0 {
		t.Errorf("expected fill clipped outside the frame, got %+v", got)
	}
}

func TestPainterOffsetsByNodeOrigin(t *testing.T) {
	p := NewPainter(100, 100)
	caches := lumen.NewCaches()

	// The renderable's own position adds to the node origin.
	r := lumen.NewRect(lumen.Pos{X: 10, Y: 10}, lumen.Scale{Width: 20, Height: 20}, lumen.Red, nil, caches)
	runs := []lumen.PaintRun{{
		Entries: []lumen.RenderEntry{{Renderable: r, AABB: lumen.NewAABB(30, 30, 40, 40)}},
	}}
	if err := p.Paint(runs, caches, lumen.Scale{Width: 100, Height: 100}, 1); err != nil {
		t.Fatalf("unexpected paint error: %v", err)
	}

	if got := pixel(t, p, 50, 50); got.R != 255 || got.G != 0 {
		t.Errorf("expected red at the offset position, got %+v", got)
	}
	if got := pixel(t, p, 35, 35); got.R != 255 || got.G != 255 {
		t.Errorf("expected white before the offset position, got %+v", got)
	}
}

func TestPainterDrawsShapeFill(t *testing.T) {
	p := NewPainter(100, 100)
	caches := lumen.NewCaches()

	fill := lumen.Blue
	shape := lumen.NewShape(
		[]lumen.Point{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 60, Y: 60}, {X: 0, Y: 60}},
		lumen.Pos{}, &fill, nil, 0, nil, caches)
	runs := []lumen.PaintRun{{
		Entries: []lumen.RenderEntry{{Renderable: shape, AABB: lumen.NewAABB(20, 20, 60, 60)}},
	}}
	if err := p.Paint(runs, caches, lumen.Scale{Width: 100, Height: 100}, 1); err != nil {
		t.Fatalf("unexpected paint error: %v", err)
	}

	if got := pixel(t, p, 50, 50); got.B != 255 {
		t.Errorf("expected blue inside the shape, got %+v", got)
	}
	if got := pixel(t, p, 10, 10); got.B != 255 && got.R == 0 {
		t.Errorf("expected background outside the shape, got %+v", got)
	}
}

func TestPainterDrawsRaster(t *testing.T) {
	p := NewPainter(100, 100)
	caches := lumen.NewCaches()

	// A 2x2 solid red source block scaled to 20x20.
	pix := make([]byte, 2*2*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 255
		pix[i+3] = 255
	}
	raster := lumen.NewRaster(lumen.Pos{}, lumen.Scale{Width: 20, Height: 20},
		pix, lumen.PixelSize{Width: 2, Height: 2}, nil, caches)
	runs := []lumen.PaintRun{{
		Entries: []lumen.RenderEntry{{Renderable: raster, AABB: lumen.NewAABB(40, 40, 20, 20)}},
	}}
	if err := p.Paint(runs, caches, lumen.Scale{Width: 100, Height: 100}, 1); err != nil {
		t.Fatalf("unexpected paint error: %v", err)
	}

	if got := pixel(t, p, 50, 50); got.R != 255 || got.G != 0 {
		t.Errorf("expected red raster pixels, got %+v", got)
	}
}

func TestPainterResizeReplacesImage(t *testing.T) {
	p := NewPainter(100, 100)
	p.Resize(lumen.Scale{Width: 200, Height: 50})

	b := p.Image().Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("expected 200x50 image after resize, got %dx%d", b.Dx(), b.Dy())
	}
}
