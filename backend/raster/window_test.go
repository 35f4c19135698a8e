package raster

import (
	"testing"
	"time"

	"lumen"
)

func TestWindowSizes(t *testing.T) {
	w := NewWindow(400, 300, 2)

	if got := w.LogicalSize(); got.Width != 400 || got.Height != 300 {
		t.Errorf("expected logical 400x300, got %+v", got)
	}
	if got := w.PhysicalSize(); got.Width != 800 || got.Height != 600 {
		t.Errorf("expected physical 800x600, got %+v", got)
	}
	if got := w.ScaleFactor(); got != 2 {
		t.Errorf("expected scale factor 2, got %v", got)
	}

	w.SetSize(100, 50)
	if got := w.LogicalSize(); got.Width != 100 || got.Height != 50 {
		t.Errorf("expected logical 100x50 after SetSize, got %+v", got)
	}
}

func TestWindowRedrawCounter(t *testing.T) {
	w := NewWindow(100, 100, 1)
	if w.Redraws() != 0 {
		t.Fatalf("expected 0 redraws, got %d", w.Redraws())
	}
	w.Redraw()
	w.Redraw()
	if w.Redraws() != 2 {
		t.Errorf("expected 2 redraws, got %d", w.Redraws())
	}
}

func TestWindowClipboardRoundTrip(t *testing.T) {
	w := NewWindow(100, 100, 1)
	w.PutOnClipboard(lumen.Data{String: "hello"})
	got := w.GetFromClipboard()
	if got == nil || got.String != "hello" {
		t.Errorf("expected clipboard to hold \"hello\", got %+v", got)
	}
}

func TestWindowHostsUI(t *testing.T) {
	w := NewWindow(120, 80, 1)
	p := NewPainter(120, 80)

	ui := lumen.New(w, p, func() lumen.Component {
		return &lumen.BaseComponent{}
	})
	defer lumen.SetCurrentWindow(nil)

	ui.Start()
	defer func() {
		ui.Exit()
		ui.Wait()
	}()

	// The first frame lands asynchronously; a fresh image has zero alpha
	// until the painter clears it.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p.Image().RGBAAt(60, 40).A != 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Error("expected the first frame to be painted")
}
