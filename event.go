package lumen

// Message is an opaque value emitted by a component handler and consumed by
// ancestor components' Update.
type Message = any

// Event payload types. A component receives these through its On* hooks.
type (
	MouseDown   struct{ Button MouseButton }
	MouseUp     struct{ Button MouseButton }
	MouseMotion struct{}
	MouseEnter  struct{}
	MouseLeave  struct{}
	Click       struct{ Button MouseButton }
	DoubleClick struct{}
	Scroll      struct{ X, Y float64 }
	KeyDown     struct{ Key Key }
	KeyUp       struct{ Key Key }
	KeyPress    struct{ Key Key }
	TextEntry   struct{ Text string }
	FocusGained struct{}
	Blur        struct{}
	Tick        struct{}
	MenuSelect  struct{ ID int }

	DragStart struct{ Button MouseButton }
	Drag      struct {
		Button   MouseButton
		StartPos Point
	}
	DragEnd struct {
		Button   MouseButton
		StartPos Point
	}
	DragTarget struct{}
	DragEnter  struct{ Data Data }
	DragLeave  struct{}
	DragDrop   struct{ Data Data }
)

// SignalKind tags a Signal.
type SignalKind uint8

const (
	SignalFocus SignalKind = iota
	SignalScrollTo
)

// Signal is a deferred request a handler may queue against another node:
// move focus to it, or scroll it into a given position. Signals resolve
// against the tree after the dispatch completes.
type Signal struct {
	Kind     SignalKind
	Target   uint64
	Position ScrollPosition
}

// Event wraps an input payload with dispatch state. Handlers mutate it to
// stop bubbling, mark the tree dirty, claim focus or emit messages.
type Event[T any] struct {
	Input         T
	Bubbles       bool
	Dirty         bool
	MousePosition Point // physical pixels
	ModifiersHeld ModifiersHeld
	ScaleFactor   float64

	// Dispatch-time fields, set before each handler runs.
	CurrentNodeID     uint64
	CurrentAABB       AABB
	CurrentInnerScale *Scale

	// Target is the node id the event resolved to, if any.
	Target *uint64

	Messages []Message
	Signals  []Signal

	// RenderDirty requests re-render without a re-view; hover effects
	// use this.
	RenderDirty bool

	focusSet bool
	focusTo  uint64 // 0 means blur
}

// MarkRenderDirty requests repositioning and re-render of the current tree
// without rebuilding it.
func (e *Event[T]) MarkRenderDirty() { e.RenderDirty = true }

// NewEvent builds an event around input, seeded from the cache snapshot.
func NewEvent[T any](input T, cache *EventCache) *Event[T] {
	return &Event[T]{
		Input:         input,
		Bubbles:       true,
		MousePosition: cache.MousePosition,
		ModifiersHeld: cache.Modifiers,
		ScaleFactor:   cache.ScaleFactor,
	}
}

// StopBubbling prevents ancestors from seeing the event.
func (e *Event[T]) StopBubbling() { e.Bubbles = false }

// MarkDirty requests a re-view of the tree after this dispatch.
func (e *Event[T]) MarkDirty() { e.Dirty = true }

// Focus claims focus for the node currently handling the event. Claiming
// focus implies the event is handled, so bubbling stops.
func (e *Event[T]) Focus() {
	e.focusSet = true
	e.focusTo = e.CurrentNodeID
	e.Bubbles = false
	e.Dirty = true
}

// Blur clears focus. Blurring always succeeds.
func (e *Event[T]) Blur() {
	e.focusSet = true
	e.focusTo = 0
	e.Dirty = true
}

// FocusRequest returns the requested focus change: the target id (0 for
// blur) and whether a change was requested at all.
func (e *Event[T]) FocusRequest() (uint64, bool) {
	return e.focusTo, e.focusSet
}

// Emit queues a message for the handling node's ancestors.
func (e *Event[T]) Emit(msg Message) {
	e.Messages = append(e.Messages, msg)
	e.Dirty = true
}

// SignalFocusNode queues a focus request for an arbitrary node.
func (e *Event[T]) SignalFocusNode(id uint64) {
	e.Signals = append(e.Signals, Signal{Kind: SignalFocus, Target: id})
	e.Dirty = true
}

// SignalScrollTo queues a scroll-to request for a scrollable node.
func (e *Event[T]) SignalScrollTo(id uint64, pos ScrollPosition) {
	e.Signals = append(e.Signals, Signal{Kind: SignalScrollTo, Target: id, Position: pos})
	e.Dirty = true
}

// PhysicalMousePosition is the pointer position in physical pixels.
func (e *Event[T]) PhysicalMousePosition() Point { return e.MousePosition }

// LogicalMousePosition is the pointer position divided by the scale factor.
func (e *Event[T]) LogicalMousePosition() Point {
	return e.MousePosition.Div(e.ScaleFactor)
}

// CurrentPhysicalAABB is the handling node's box in physical pixels.
func (e *Event[T]) CurrentPhysicalAABB() AABB { return e.CurrentAABB }

// CurrentLogicalAABB is the handling node's box in logical pixels.
func (e *Event[T]) CurrentLogicalAABB() AABB {
	return e.CurrentAABB.Mul(1 / e.ScaleFactor)
}

// CurrentPhysicalInnerScale is the handling node's content size, when it is
// a scroll container.
func (e *Event[T]) CurrentPhysicalInnerScale() *Scale { return e.CurrentInnerScale }

// RelativePhysicalPosition is the pointer position relative to the handling
// node's top-left corner.
func (e *Event[T]) RelativePhysicalPosition() Point {
	return e.MousePosition.Sub(e.CurrentAABB.Pos.Point())
}

// RelativeLogicalPosition is RelativePhysicalPosition in logical pixels.
func (e *Event[T]) RelativeLogicalPosition() Point {
	return e.RelativePhysicalPosition().Div(e.ScaleFactor)
}
