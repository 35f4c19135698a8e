package lumen

// State is the opaque per-component state moved between frames by
// reconciliation.
type State = any

// RenderContext is everything Render may draw against.
type RenderContext struct {
	AABB        AABB
	InnerScale  *Scale
	Caches      *Caches
	Prev        []Renderable // last frame's renderables, for handle reuse
	ScaleFactor float64
}

// PrevRect returns the i'th previous renderable as a Rect, if it is one.
func (ctx *RenderContext) PrevRect(i int) *Rect {
	if i < len(ctx.Prev) {
		if r, ok := ctx.Prev[i].(*Rect); ok {
			return r
		}
	}
	return nil
}

// PrevText returns the i'th previous renderable as a Text, if it is one.
func (ctx *RenderContext) PrevText(i int) *Text {
	if i < len(ctx.Prev) {
		if t, ok := ctx.Prev[i].(*Text); ok {
			return t
		}
	}
	return nil
}

// ChildConstraint hands a child's geometry to a full-control parent.
type ChildConstraint struct {
	AABB       *AABB
	InnerScale *Scale
	Focus      *Point
}

// KeyRegistration is a global shortcut a component asks for during View.
type KeyRegistration struct {
	Key       Key
	Modifiers ModifiersHeld
	Message   Message
}

// Component is the behavior object a Node wraps. Embed BaseComponent and
// override what you need; every method has a no-op default.
type Component interface {
	// Init runs once, the first time this identity appears in the tree.
	Init()
	// NewProps runs when the props hash changed from the previous frame.
	NewProps()
	// View returns the component's child subtree, or nil for a leaf.
	View() *Node
	// Update handles a message from a descendant and may emit messages
	// for its own ancestors.
	Update(msg Message) []Message
	// Render produces the component's paint primitives.
	Render(ctx RenderContext) []Renderable

	// PropsHash feeds the fields that should trigger NewProps.
	PropsHash(h *Hasher)
	// RenderHash feeds the state that should invalidate cached
	// renderables.
	RenderHash(h *Hasher)

	// TakeState removes and returns the component's state.
	TakeState() State
	// ReplaceState installs state taken from the previous frame.
	ReplaceState(s State)

	// FillBounds measures intrinsic content. Nil inputs are unknown
	// constraints; nil outputs leave the axis unresolved.
	FillBounds(width, height, maxWidth, maxHeight *float64, caches *Caches, scaleFactor float64) (*float64, *float64)

	// FullControl opts in to SetAABB after layout.
	FullControl() bool
	// Focus is the focal point handed to a full-control parent when this
	// component is one of its children.
	Focus() *Point
	// SetAABB lets a full-control component rewrite its own and its
	// children's boxes.
	SetAABB(aabb *AABB, parentAABB AABB, children []ChildConstraint, frame AABB, scaleFactor float64)

	// ScrollPosition returns the scroll offsets when the component is a
	// scroll container, else nil.
	ScrollPosition() *ScrollPosition
	// FrameBounds is the clip rectangle imposed on descendants.
	FrameBounds(aabb AABB, innerScale *Scale, scaleFactor float64) AABB

	// FocusPriority orders competing focus claims; see FocusState.
	FocusPriority() int
	// KeyRegistrations are global shortcuts collected during view.
	KeyRegistrations() []KeyRegistration

	// IsMouseOver decides whether the component claims the pointer.
	IsMouseOver(p Point, aabb AABB) bool
	// IsMouseMaybeOver prunes hit-testing; returning false skips the
	// whole subtree.
	IsMouseMaybeOver(p Point, aabb AABB) bool

	OnClick(e *Event[Click])
	OnDoubleClick(e *Event[DoubleClick])
	OnMouseDown(e *Event[MouseDown])
	OnMouseUp(e *Event[MouseUp])
	OnMouseMotion(e *Event[MouseMotion])
	OnMouseEnter(e *Event[MouseEnter])
	OnMouseLeave(e *Event[MouseLeave])
	OnScroll(e *Event[Scroll])
	OnKeyDown(e *Event[KeyDown])
	OnKeyUp(e *Event[KeyUp])
	OnKeyPress(e *Event[KeyPress])
	OnTextEntry(e *Event[TextEntry])
	OnFocus(e *Event[FocusGained])
	OnBlur(e *Event[Blur])
	OnTick(e *Event[Tick])
	OnDragStart(e *Event[DragStart])
	OnDrag(e *Event[Drag])
	OnDragEnd(e *Event[DragEnd])
	OnDragTarget(e *Event[DragTarget])
	OnDragEnter(e *Event[DragEnter])
	OnDragLeave(e *Event[DragLeave])
	OnDragDrop(e *Event[DragDrop])
	OnMenuSelect(e *Event[MenuSelect])
}

// BaseComponent provides the no-op defaults for Component.
type BaseComponent struct{}

func (BaseComponent) Init()                        {}
func (BaseComponent) NewProps()                    {}
func (BaseComponent) View() *Node                  { return nil }
func (BaseComponent) Update(msg Message) []Message { return nil }

func (BaseComponent) Render(ctx RenderContext) []Renderable { return nil }

func (BaseComponent) PropsHash(h *Hasher)  {}
func (BaseComponent) RenderHash(h *Hasher) {}

func (BaseComponent) TakeState() State     { return nil }
func (BaseComponent) ReplaceState(s State) {}

func (BaseComponent) FillBounds(width, height, maxWidth, maxHeight *float64, caches *Caches, scaleFactor float64) (*float64, *float64) {
	return nil, nil
}

func (BaseComponent) FullControl() bool { return false }
func (BaseComponent) Focus() *Point     { return nil }
func (BaseComponent) SetAABB(aabb *AABB, parentAABB AABB, children []ChildConstraint, frame AABB, scaleFactor float64) {
}

func (BaseComponent) ScrollPosition() *ScrollPosition { return nil }
func (BaseComponent) FrameBounds(aabb AABB, innerScale *Scale, scaleFactor float64) AABB {
	return aabb
}

func (BaseComponent) FocusPriority() int                  { return 0 }
func (BaseComponent) KeyRegistrations() []KeyRegistration { return nil }

func (BaseComponent) IsMouseOver(p Point, aabb AABB) bool      { return aabb.IsUnder(p) }
func (BaseComponent) IsMouseMaybeOver(p Point, aabb AABB) bool { return aabb.IsUnder(p) }

func (BaseComponent) OnClick(e *Event[Click])             {}
func (BaseComponent) OnDoubleClick(e *Event[DoubleClick]) {}
func (BaseComponent) OnMouseDown(e *Event[MouseDown])     {}
func (BaseComponent) OnMouseUp(e *Event[MouseUp])         {}
func (BaseComponent) OnMouseMotion(e *Event[MouseMotion]) {}
func (BaseComponent) OnMouseEnter(e *Event[MouseEnter])   {}
func (BaseComponent) OnMouseLeave(e *Event[MouseLeave])   {}
func (BaseComponent) OnScroll(e *Event[Scroll])           {}
func (BaseComponent) OnKeyDown(e *Event[KeyDown])         {}
func (BaseComponent) OnKeyUp(e *Event[KeyUp])             {}
func (BaseComponent) OnKeyPress(e *Event[KeyPress])       {}
func (BaseComponent) OnTextEntry(e *Event[TextEntry])     {}
func (BaseComponent) OnFocus(e *Event[FocusGained])       {}
func (BaseComponent) OnBlur(e *Event[Blur])               {}
func (BaseComponent) OnTick(e *Event[Tick])               {}
func (BaseComponent) OnDragStart(e *Event[DragStart])     {}
func (BaseComponent) OnDrag(e *Event[Drag])               {}
func (BaseComponent) OnDragEnd(e *Event[DragEnd])         {}
func (BaseComponent) OnDragTarget(e *Event[DragTarget])   {}
func (BaseComponent) OnDragEnter(e *Event[DragEnter])     {}
func (BaseComponent) OnDragLeave(e *Event[DragLeave])     {}
func (BaseComponent) OnDragDrop(e *Event[DragDrop])       {}
func (BaseComponent) OnMenuSelect(e *Event[MenuSelect])   {}
