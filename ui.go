package lumen

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Dirty levels. A render-only pass reuses the component tree and just
// relayouts and re-renders it; a full pass re-views from the root.
const (
	dirtyClean int32 = iota
	dirtyRender
	dirtyFull
)

// Painter presents a frame of render entries. Implementations own the
// surface; the UI owns the tree and the caches.
type Painter interface {
	// Paint draws one frame. The caches mutex is held by the caller.
	Paint(runs []PaintRun, caches *Caches, size Scale, scaleFactor float64) error
	// Resize reconfigures the surface for a new physical size.
	Resize(size Scale)
	// Recreate rebuilds the surface after a loss.
	Recreate() error
	Drop()
}

// Surface error taxonomy. Painters return these to drive recovery.
var (
	// ErrSurfaceLost means the surface must be recreated before the next
	// frame.
	ErrSurfaceLost = errors.New("surface lost")
	// ErrSurfaceOutdated means the surface no longer matches the window,
	// usually mid-resize.
	ErrSurfaceOutdated = errors.New("surface outdated")
	// ErrFrameTimeout means this frame should be skipped and retried.
	ErrFrameTimeout = errors.New("frame acquire timed out")
)

// PaintRun is a batch of entries sharing one clip chain, z-sorted within
// the run. Painters set the clip once per run.
type PaintRun struct {
	Frames  []AABB // outermost first, physical pixels
	Entries []RenderEntry
}

// UI drives one window: the event thread calls HandleInput and Draw
// requests, the draw worker rebuilds the tree, the paint worker presents
// it. The tree lock serializes the event thread and the draw worker; the
// paint worker only reads.
type UI struct {
	window  Window
	painter Painter
	rootFn  func() Component

	treeMu        sync.RWMutex
	root          *Node
	registrations *Registrations
	focusState    *FocusState
	caches        *Caches
	cache         *EventCache

	dirty       atomic.Int32
	frameDirty  atomic.Bool
	drawSignal  chan struct{}
	paintSignal chan struct{}
	done        chan struct{}
	closeOnce   sync.Once

	now func() time.Time

	wg sync.WaitGroup
}

// New creates a UI over a window and painter. rootFn builds the root
// component; it is called once and the instance is re-viewed every frame.
func New(window Window, painter Painter, rootFn func() Component) *UI {
	u := &UI{
		window:      window,
		painter:     painter,
		rootFn:      rootFn,
		caches:      NewCaches(),
		cache:       NewEventCache(window.ScaleFactor()),
		focusState:  NewFocusState(),
		drawSignal:  make(chan struct{}, 1),
		paintSignal: make(chan struct{}, 1),
		done:        make(chan struct{}),
		now:         time.Now,
	}
	SetCurrentWindow(window)
	return u
}

// Start launches the draw and paint workers and requests the first frame.
func (u *UI) Start() {
	u.wg.Add(2)
	go u.drawWorker()
	go u.paintWorker()
	u.markDirty(dirtyFull)
}

// Wait blocks until the UI has exited and both workers drained.
func (u *UI) Wait() {
	u.wg.Wait()
}

// Exit shuts the UI down. Safe to call more than once.
func (u *UI) Exit() {
	u.treeMu.Lock()
	u.exitLocked()
	u.treeMu.Unlock()
}

func (u *UI) exitLocked() {
	u.closeOnce.Do(func() {
		SetCurrentWindow(nil)
		close(u.done)
		u.painter.Drop()
	})
}

// Resize tells the UI the window size or scale factor changed.
func (u *UI) Resize() {
	u.treeMu.Lock()
	u.resizeLocked()
	u.treeMu.Unlock()
}

func (u *UI) resizeLocked() {
	u.cache.ScaleFactor = u.window.ScaleFactor()
	u.painter.Resize(u.window.PhysicalSize())
	u.markDirty(dirtyFull)
}

// markDirty raises the dirty level and pokes the draw worker. Raising is
// monotonic within a frame so a render-only request never downgrades a
// pending full one.
func (u *UI) markDirty(level int32) {
	for {
		cur := u.dirty.Load()
		if cur >= level {
			break
		}
		if u.dirty.CompareAndSwap(cur, level) {
			break
		}
	}
	signal(u.drawSignal)
}

// signal pokes a worker without blocking; a pending poke coalesces.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (u *UI) drawWorker() {
	defer u.wg.Done()
	for {
		select {
		case <-u.done:
			return
		case <-u.drawSignal:
		}
		level := u.dirty.Swap(dirtyClean)
		if level == dirtyClean {
			continue
		}
		u.treeMu.Lock()
		changed := u.draw(level == dirtyFull)
		u.treeMu.Unlock()
		if changed {
			u.frameDirty.Store(true)
			signal(u.paintSignal)
			u.window.Redraw()
		}
	}
}

func (u *UI) paintWorker() {
	defer u.wg.Done()
	for {
		select {
		case <-u.done:
			return
		case <-u.paintSignal:
		}
		if !u.frameDirty.Swap(false) {
			continue
		}
		if err := u.paint(); err != nil {
			switch {
			case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrSurfaceOutdated):
				if u.painter.Recreate() == nil {
					u.frameDirty.Store(true)
					signal(u.paintSignal)
				}
			case errors.Is(err, ErrFrameTimeout):
				// Skip; the next dirty frame repaints.
			}
		}
	}
}

// draw rebuilds the tree. With full set the root component is re-viewed
// and reconciled against the previous tree; otherwise the existing tree
// is relaid out and re-rendered in place (scroll moves, hover effects).
// Returns whether any renderable changed.
func (u *UI) draw(full bool) bool {
	logical := u.window.LogicalSize()
	scaleFactor := u.window.ScaleFactor()
	physical := u.window.PhysicalSize()

	if !full && u.root != nil {
		u.root.CalculateLayout(u.caches, scaleFactor)
		u.root.SetAABBs(Pos{}, 0, Point{}, AABB{BottomRight: Point{X: physical.Width, Y: physical.Height}}, scaleFactor)
		u.caches.Mu.Lock()
		u.caches.Unmark()
		changed := u.root.RenderAssembly(u.caches, nil, scaleFactor)
		u.caches.Mu.Unlock()
		return changed
	}

	newRoot := NewNode(u.rootComponent()).
		Width(logical.Width).
		Height(logical.Height)
	newRoot.ID = 1

	reg := NewRegistrations()
	newRoot.View(u.root, reg)

	focus := NewFocusState()
	focus.Tree = reg.Focus
	if id := TakeImmediateFocus(); id != 0 {
		focus.FocusNewNode(id)
	}
	allNew := map[uint64]bool{}
	newRoot.Visit(func(n *Node) bool {
		allNew[n.ID] = true
		return true
	})
	focus.InheritActive(u.focusState, allNew, newRoot.ID)

	newRoot.CalculateLayout(u.caches, scaleFactor)
	newRoot.SetAABBs(Pos{}, 0, Point{}, AABB{BottomRight: Point{X: physical.Width, Y: physical.Height}}, scaleFactor)

	u.caches.Mu.Lock()
	u.caches.Unmark()
	changed := newRoot.RenderAssembly(u.caches, u.root, scaleFactor)
	u.caches.Mu.Unlock()

	u.root = newRoot
	u.registrations = reg
	u.focusState = focus
	u.cache.Focus = focus.Active()
	return changed
}

// rootComponent memoizes the root so state survives re-views.
func (u *UI) rootComponent() Component {
	if u.root != nil {
		return u.root.Component
	}
	return u.rootFn()
}

func (u *UI) paint() error {
	// The walk must stay under the read lock: the draw worker relays out
	// and re-renders the tree in place. Only the painter call runs outside.
	u.treeMu.RLock()
	root := u.root
	scaleFactor := u.window.ScaleFactor()
	size := u.window.PhysicalSize()
	var runs []PaintRun
	if root != nil {
		var entries []RenderEntry
		root.CollectRenderables(nil, scaleFactor, &entries)
		runs = groupRuns(entries)
	}
	u.treeMu.RUnlock()
	if root == nil {
		return nil
	}

	u.caches.Mu.Lock()
	defer u.caches.Mu.Unlock()
	return u.painter.Paint(runs, u.caches, size, scaleFactor)
}

// groupRuns batches contiguous entries sharing a clip chain and z-sorts
// within each run, so painters change clip state as rarely as possible.
func groupRuns(entries []RenderEntry) []PaintRun {
	var runs []PaintRun
	for _, e := range entries {
		if len(runs) > 0 && sameFrames(runs[len(runs)-1].Frames, e.Frames) {
			run := &runs[len(runs)-1]
			run.Entries = append(run.Entries, e)
			continue
		}
		runs = append(runs, PaintRun{Frames: e.Frames, Entries: []RenderEntry{e}})
	}
	for i := range runs {
		sortEntriesByZ(runs[i].Entries)
	}
	return runs
}

func sameFrames(a, b []AABB) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sortEntriesByZ is a stable insertion sort; runs are short and mostly
// ordered already.
func sortEntriesByZ(entries []RenderEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Z < entries[j-1].Z; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}
