package lumen

import "time"

// Event synthesis thresholds.
const (
	DoubleClickInterval = 500 * time.Millisecond
	// DoubleClickMaxDist is how far apart two clicks may land and still
	// count as a double click.
	DoubleClickMaxDist = 10.0
	// DragThreshold is the travel, with a button held, past which a drag
	// starts.
	DragThreshold = 15.0
	// DragClickMaxDist is the travel below which a mouse-up still counts
	// as a click.
	DragClickMaxDist = 30.0
	// TooltipDelay is how long the pointer must rest before a tooltip
	// may appear.
	TooltipDelay = 1000 * time.Millisecond
	// ScrollPointsPerLine converts line-based wheel input to points.
	ScrollPointsPerLine = 10.0
)

// ModifiersHeld is the snapshot of modifier keys.
type ModifiersHeld struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Any reports whether any modifier is held.
func (m ModifiersHeld) Any() bool { return m.Ctrl || m.Shift || m.Alt || m.Meta }

// MouseButtonsHeld tracks per-button pressed state.
type MouseButtonsHeld struct {
	Left   bool
	Right  bool
	Middle bool
	Aux1   bool
	Aux2   bool
}

func (m *MouseButtonsHeld) set(b MouseButton, v bool) {
	switch b {
	case MouseLeft:
		m.Left = v
	case MouseRight:
		m.Right = v
	case MouseMiddle:
		m.Middle = v
	case MouseAux1:
		m.Aux1 = v
	case MouseAux2:
		m.Aux2 = v
	}
}

// Held reports whether b is pressed.
func (m MouseButtonsHeld) Held(b MouseButton) bool {
	switch b {
	case MouseLeft:
		return m.Left
	case MouseRight:
		return m.Right
	case MouseMiddle:
		return m.Middle
	case MouseAux1:
		return m.Aux1
	case MouseAux2:
		return m.Aux2
	}
	return false
}

// EventCache is the per-UI mutable input state. It is owned by the event
// thread; nothing else touches it.
type EventCache struct {
	Focus             uint64
	KeysHeld          map[Key]bool
	Modifiers         ModifiersHeld
	MouseButtons      MouseButtonsHeld
	MousePosition     Point // physical
	MouseOver         *uint64
	MouseDownPosition Point
	LastClickTime     time.Time
	LastClickPosition Point
	DragStarted       bool
	DragButton        *MouseButton
	DragTarget        *uint64
	DragData          *Data
	ScaleFactor       float64
}

func NewEventCache(scaleFactor float64) *EventCache {
	return &EventCache{
		KeysHeld:    map[Key]bool{},
		ScaleFactor: scaleFactor,
	}
}

// KeyDown records a key press; modifier keys route to the modifier flags.
func (c *EventCache) KeyDown(k Key) {
	switch k {
	case KeyLCtrl, KeyRCtrl:
		c.Modifiers.Ctrl = true
	case KeyLShift, KeyRShift:
		c.Modifiers.Shift = true
	case KeyLAlt, KeyRAlt:
		c.Modifiers.Alt = true
	case KeyLMeta, KeyRMeta:
		c.Modifiers.Meta = true
	default:
		c.KeysHeld[k] = true
	}
}

// KeyUp records a key release and reports whether the key was held, which
// decides whether a KeyPress synthesizes.
func (c *EventCache) KeyUp(k Key) bool {
	switch k {
	case KeyLCtrl, KeyRCtrl:
		c.Modifiers.Ctrl = false
	case KeyLShift, KeyRShift:
		c.Modifiers.Shift = false
	case KeyLAlt, KeyRAlt:
		c.Modifiers.Alt = false
	case KeyLMeta, KeyRMeta:
		c.Modifiers.Meta = false
	default:
		held := c.KeysHeld[k]
		delete(c.KeysHeld, k)
		return held
	}
	return false
}

// MouseDown records a button press at the current pointer position.
func (c *EventCache) MouseDown(b MouseButton) {
	c.MouseButtons.set(b, true)
	c.MouseDownPosition = c.MousePosition
}

// MouseUp records a button release.
func (c *EventCache) MouseUp(b MouseButton) {
	c.MouseButtons.set(b, false)
}

// MouseButtonHeld returns the held button with the highest priority
// (left, right, middle, aux), or nil.
func (c *EventCache) MouseButtonHeld() *MouseButton {
	order := []MouseButton{MouseLeft, MouseRight, MouseMiddle, MouseAux1, MouseAux2}
	for _, b := range order {
		if c.MouseButtons.Held(b) {
			bb := b
			return &bb
		}
	}
	return nil
}

// ClearDrag resets in-flight drag bookkeeping.
func (c *EventCache) ClearDrag() {
	c.DragStarted = false
	c.DragButton = nil
	c.DragTarget = nil
	c.DragData = nil
}

// Clear drops all transient input state. Called when the window loses
// focus so stale holds don't leak into the next session.
func (c *EventCache) Clear() {
	c.KeysHeld = map[Key]bool{}
	c.Modifiers = ModifiersHeld{}
	c.MouseButtons = MouseButtonsHeld{}
	c.MouseOver = nil
	c.ClearDrag()
}
