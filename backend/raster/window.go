package raster

import (
	"sync"

	"lumen"
)

// Window is an offscreen host surface with a fixed size and scale factor.
// Tests and screenshot tools drive it directly.
type Window struct {
	mu          sync.Mutex
	width       float64
	height      float64
	scaleFactor float64
	clipboard   lumen.Data
	redraws     int
}

func NewWindow(width, height, scaleFactor float64) *Window {
	return &Window{width: width, height: height, scaleFactor: scaleFactor}
}

func (w *Window) LogicalSize() lumen.Scale {
	w.mu.Lock()
	defer w.mu.Unlock()
	return lumen.Scale{Width: w.width, Height: w.height}
}

func (w *Window) PhysicalSize() lumen.Scale {
	w.mu.Lock()
	defer w.mu.Unlock()
	return lumen.Scale{Width: w.width * w.scaleFactor, Height: w.height * w.scaleFactor}
}

func (w *Window) ScaleFactor() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scaleFactor
}

// SetSize changes the logical size; callers follow up with a resize input.
func (w *Window) SetSize(width, height float64) {
	w.mu.Lock()
	w.width = width
	w.height = height
	w.mu.Unlock()
}

func (w *Window) Redraw() {
	w.mu.Lock()
	w.redraws++
	w.mu.Unlock()
}

// Redraws counts presentation requests; tests assert on it.
func (w *Window) Redraws() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.redraws
}

func (w *Window) SetCursor(c lumen.Cursor) {}

func (w *Window) UnsetCursor() {}

func (w *Window) PutOnClipboard(data lumen.Data) {
	w.mu.Lock()
	w.clipboard = data
	w.mu.Unlock()
}

func (w *Window) GetFromClipboard() *lumen.Data {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.clipboard
	return &d
}

func (w *Window) StartDrag(data lumen.Data) {}

func (w *Window) SetDropTargetValid(valid bool) {}
