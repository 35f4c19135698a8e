package lumen

import (
	"runtime"
	"time"
)

// invertScrollX flips horizontal wheel direction on hosts that report it
// pre-inverted.
var invertScrollX = runtime.GOOS == "darwin"

// HandleInput is the event thread entry point: it updates the event cache,
// synthesizes the higher-level events (clicks, double clicks, drags,
// enter/leave, key presses) and routes everything through the tree.
func (u *UI) HandleInput(input Input) {
	u.treeMu.Lock()
	defer u.treeMu.Unlock()

	if u.root == nil {
		switch input.Kind {
		case InputResize:
			u.resizeLocked()
		case InputExit:
			u.exitLocked()
		}
		return
	}

	switch input.Kind {
	case InputPress:
		if input.Button.IsMouse {
			u.mousePress(input.Button.Mouse)
		} else {
			u.keyPress(input.Button.Key)
		}
	case InputRelease:
		if input.Button.IsMouse {
			u.mouseRelease(input.Button.Mouse)
		} else {
			u.keyRelease(input.Button.Key)
		}
	case InputMotion:
		if input.Motion.Kind == MotionMouse {
			u.mouseMotion(Point{X: input.Motion.X, Y: input.Motion.Y})
		} else {
			u.scroll(input.Motion.X, input.Motion.Y)
		}
	case InputText:
		// Chord input isn't text.
		if u.cache.Modifiers.Alt || u.cache.Modifiers.Ctrl || u.cache.Modifiers.Meta {
			return
		}
		dispatch(u, u.focusStack(), TextEntry{Text: input.Text},
			func(c Component, e *Event[TextEntry]) { c.OnTextEntry(e) })
	case InputResize:
		u.resizeLocked()
	case InputFocus:
		if !input.Focused {
			u.cache.Clear()
		}
	case InputTimer:
		dispatch(u, u.focusStack(), Tick{},
			func(c Component, e *Event[Tick]) { c.OnTick(e) })
	case InputMenu:
		u.menuSelect(input.Menu)
	case InputMouseLeaveWindow:
		if u.cache.MouseOver != nil {
			dispatch(u, u.root.PathTo(*u.cache.MouseOver), MouseLeave{},
				func(c Component, e *Event[MouseLeave]) { c.OnMouseLeave(e) })
			u.cache.MouseOver = nil
		}
	case InputMouseEnterWindow:
		// The next motion event re-establishes hover state.
	case InputDrag:
		u.hostDrag(input.Drag)
	case InputExit:
		u.exitLocked()
	}
}

func (u *UI) mousePress(b MouseButton) {
	u.cache.MouseDown(b)
	stack := u.targetStack()
	dispatch(u, stack, MouseDown{Button: b},
		func(c Component, e *Event[MouseDown]) { c.OnMouseDown(e) })

	// Pressing outside the focused node blurs it.
	if u.cache.Focus != 0 && len(stack) > 0 {
		target := stack[len(stack)-1].ID
		if target != u.cache.Focus && !onStack(stack, u.cache.Focus) {
			u.applyFocusChange(0, stack)
		}
	}
}

func (u *UI) mouseRelease(b MouseButton) {
	u.cache.MouseUp(b)
	stack := u.targetStack()
	dispatch(u, stack, MouseUp{Button: b},
		func(c Component, e *Event[MouseUp]) { c.OnMouseUp(e) })

	travel := u.cache.MousePosition.Dist(u.cache.MouseDownPosition)

	if u.cache.DragStarted && u.cache.DragButton != nil && *u.cache.DragButton == b {
		dragStack := stack
		if u.cache.DragTarget != nil {
			dragStack = u.root.PathTo(*u.cache.DragTarget)
		}
		dispatch(u, dragStack, DragEnd{Button: b, StartPos: u.cache.MouseDownPosition},
			func(c Component, e *Event[DragEnd]) { c.OnDragEnd(e) })
		u.cache.ClearDrag()
	}

	// A short press-release still counts as a click, even after a drag.
	if travel < DragClickMaxDist {
		dispatch(u, stack, Click{Button: b},
			func(c Component, e *Event[Click]) { c.OnClick(e) })

		if b == MouseLeft {
			now := u.now()
			if !u.cache.LastClickTime.IsZero() &&
				now.Sub(u.cache.LastClickTime) < DoubleClickInterval &&
				u.cache.MousePosition.Dist(u.cache.LastClickPosition) < DoubleClickMaxDist {
				dispatch(u, stack, DoubleClick{},
					func(c Component, e *Event[DoubleClick]) { c.OnDoubleClick(e) })
				// A third click starts over.
				u.cache.LastClickTime = time.Time{}
			} else {
				u.cache.LastClickTime = now
				u.cache.LastClickPosition = u.cache.MousePosition
			}
		}
	}
}

func (u *UI) mouseMotion(logical Point) {
	u.cache.MousePosition = logical.Mul(u.cache.ScaleFactor)

	held := u.cache.MouseButtonHeld()

	if held != nil && !u.cache.DragStarted &&
		u.cache.MousePosition.Dist(u.cache.MouseDownPosition) > DragThreshold {
		stack := u.targetStackAt(u.cache.MouseDownPosition)
		if len(stack) > 0 {
			id := stack[len(stack)-1].ID
			u.cache.DragStarted = true
			u.cache.DragButton = held
			u.cache.DragTarget = &id
			dispatch(u, stack, DragStart{Button: *held},
				func(c Component, e *Event[DragStart]) { c.OnDragStart(e) })
		}
	}

	if u.cache.DragStarted {
		var stack []*Node
		if u.cache.DragTarget != nil {
			stack = u.root.PathTo(*u.cache.DragTarget)
		}
		btn := MouseLeft
		if u.cache.DragButton != nil {
			btn = *u.cache.DragButton
		}
		dispatch(u, stack, Drag{Button: btn, StartPos: u.cache.MouseDownPosition},
			func(c Component, e *Event[Drag]) { c.OnDrag(e) })
		u.updateMouseOver(true)
		return
	}

	dispatch(u, u.targetStack(), MouseMotion{},
		func(c Component, e *Event[MouseMotion]) { c.OnMouseMotion(e) })
	u.updateMouseOver(false)
}

// updateMouseOver synthesizes enter/leave pairs when the hover target
// changes; during a drag the pairs become drag-enter/drag-leave.
func (u *UI) updateMouseOver(dragging bool) {
	stack := u.targetStack()
	var newOver *uint64
	if len(stack) > 0 {
		id := stack[len(stack)-1].ID
		newOver = &id
	}

	oldOver := u.cache.MouseOver
	if (oldOver == nil) != (newOver == nil) || (oldOver != nil && *oldOver != *newOver) {
		if oldOver != nil {
			oldStack := u.root.PathTo(*oldOver)
			if dragging {
				dispatch(u, oldStack, DragLeave{},
					func(c Component, e *Event[DragLeave]) { c.OnDragLeave(e) })
			} else {
				dispatch(u, oldStack, MouseLeave{},
					func(c Component, e *Event[MouseLeave]) { c.OnMouseLeave(e) })
			}
		}
		if newOver != nil {
			if dragging {
				data := Data{}
				if u.cache.DragData != nil {
					data = *u.cache.DragData
				}
				dispatch(u, stack, DragEnter{Data: data},
					func(c Component, e *Event[DragEnter]) { c.OnDragEnter(e) })
				dispatch(u, stack, DragTarget{},
					func(c Component, e *Event[DragTarget]) { c.OnDragTarget(e) })
			} else {
				dispatch(u, stack, MouseEnter{},
					func(c Component, e *Event[MouseEnter]) { c.OnMouseEnter(e) })
			}
		}
		u.cache.MouseOver = newOver
	}
}

// scroll converts wheel input into a Scroll event. Content moves opposite
// to the wheel, so Y is inverted; X only inverts on hosts that report it
// flipped.
func (u *UI) scroll(x, y float64) {
	sx := x * u.cache.ScaleFactor
	if invertScrollX {
		sx = -sx
	}
	sy := -y * u.cache.ScaleFactor
	dispatch(u, u.targetStack(), Scroll{X: sx, Y: sy},
		func(c Component, e *Event[Scroll]) { c.OnScroll(e) })
}

func (u *UI) keyPress(k Key) {
	u.cache.KeyDown(k)
	if k.IsModifier() {
		return
	}
	dispatch(u, u.focusStack(), KeyDown{Key: k},
		func(c Component, e *Event[KeyDown]) { c.OnKeyDown(e) })
}

func (u *UI) keyRelease(k Key) {
	held := u.cache.KeyUp(k)
	if k.IsModifier() {
		return
	}
	dispatch(u, u.focusStack(), KeyUp{Key: k},
		func(c Component, e *Event[KeyUp]) { c.OnKeyUp(e) })
	if held {
		if msg := u.shortcutFor(k); msg != nil {
			u.root.Component.Update(msg)
			u.markDirty(dirtyFull)
		}
		dispatch(u, u.focusStack(), KeyPress{Key: k},
			func(c Component, e *Event[KeyPress]) { c.OnKeyPress(e) })
	}
}

// shortcutFor finds a global key registration matching the key and current
// modifiers.
func (u *UI) shortcutFor(k Key) Message {
	if u.registrations == nil {
		return nil
	}
	for _, r := range u.registrations.Keys {
		if r.Key == k && r.Modifiers == u.cache.Modifiers {
			return r.Message
		}
	}
	return nil
}

// menuSelect routes a native menu action: an immediate-focus target first,
// then the focused node, bubbling to the root.
func (u *UI) menuSelect(id int) {
	stack := u.focusStack()
	if imm := TakeImmediateFocus(); imm != 0 {
		if s := u.root.PathTo(imm); s != nil {
			stack = s
		}
	}
	if len(stack) == 0 {
		stack = []*Node{u.root}
	}
	dispatch(u, stack, MenuSelect{ID: id},
		func(c Component, e *Event[MenuSelect]) { c.OnMenuSelect(e) })
}

func (u *UI) hostDrag(d HostDrag) {
	switch d.Kind {
	case DragStartKind:
		data := d.Data
		u.cache.DragData = &data
		u.updateMouseOver(true)
	case DragDraggingKind:
		u.updateMouseOver(true)
	case DragEndKind:
		if u.cache.MouseOver != nil {
			dispatch(u, u.root.PathTo(*u.cache.MouseOver), DragLeave{},
				func(c Component, e *Event[DragLeave]) { c.OnDragLeave(e) })
		}
		u.cache.DragData = nil
	case DragDropKind:
		dispatch(u, u.targetStack(), DragDrop{Data: d.Data},
			func(c Component, e *Event[DragDrop]) { c.OnDragDrop(e) })
		u.cache.DragData = nil
	}
}

func onStack(stack []*Node, id uint64) bool {
	for _, n := range stack {
		if n.ID == id {
			return true
		}
	}
	return false
}

// dispatch runs one event through a node stack, then applies everything the
// handlers queued: message propagation, focus changes, signals and dirty
// flags.
func dispatch[T any](u *UI, stack []*Node, input T, hook func(Component, *Event[T])) {
	if len(stack) == 0 {
		return
	}
	e := NewEvent(input, u.cache)
	DispatchEvent(e, stack, hook)
	PropagateMessages(stack, e.Messages)
	if to, ok := e.FocusRequest(); ok {
		u.applyFocusChange(to, stack)
	}
	for _, sig := range e.Signals {
		u.applySignal(sig)
	}
	if e.Dirty {
		u.markDirty(dirtyFull)
	} else if e.RenderDirty {
		u.markDirty(dirtyRender)
	}
}

// plainDispatch runs an event without focus/signal post-processing; the
// synthesized focus/blur pairs use it to avoid recursion.
func plainDispatch[T any](u *UI, stack []*Node, input T, hook func(Component, *Event[T])) {
	if len(stack) == 0 {
		return
	}
	e := NewEvent(input, u.cache)
	DispatchEvent(e, stack, hook)
	PropagateMessages(stack, e.Messages)
	if e.Dirty {
		u.markDirty(dirtyFull)
	}
}

// applyFocusChange moves focus to `to` (0 blurs). A move is refused when
// the target's focus priority is lower than the holder's, unless the holder
// is an ancestor of the target. Blur always succeeds.
func (u *UI) applyFocusChange(to uint64, stack []*Node) {
	current := u.cache.Focus
	if to == current {
		return
	}
	if to != 0 && current != 0 {
		tree := u.focusState.Tree
		if !(tree.Priority(to) >= tree.Priority(current) || tree.IsAncestorOf(current, to)) {
			return
		}
	}

	if current != 0 {
		plainDispatch(u, u.root.PathTo(current), Blur{},
			func(c Component, e *Event[Blur]) { c.OnBlur(e) })
	}
	if to != 0 {
		plainDispatch(u, u.root.PathTo(to), FocusGained{},
			func(c Component, e *Event[FocusGained]) { c.OnFocus(e) })
	}

	var stackIDs []uint64
	for _, n := range stack {
		stackIDs = append(stackIDs, n.ID)
	}
	u.focusState.SetActive(to, stackIDs, u.root.ID)
	if to != 0 {
		u.focusState.TrySetActiveContext(u.focusState.MostSpecificFocusNode(append(stackIDs, to)))
	}
	u.cache.Focus = to
	u.markDirty(dirtyFull)
}

// applySignal resolves a deferred focus or scroll-to request against the
// tree.
func (u *UI) applySignal(sig Signal) {
	switch sig.Kind {
	case SignalFocus:
		u.applyFocusChange(sig.Target, u.root.PathTo(sig.Target))
	case SignalScrollTo:
		if node := u.root.FindNode(sig.Target); node != nil {
			if sp := node.Component.ScrollPosition(); sp != nil {
				if sig.Position.X != nil && sp.X != nil {
					*sp.X = *sig.Position.X
				}
				if sig.Position.Y != nil && sp.Y != nil {
					*sp.Y = *sig.Position.Y
				}
				u.markDirty(dirtyRender)
			}
		}
	}
}

func (u *UI) targetStack() []*Node {
	return u.targetStackAt(u.cache.MousePosition)
}

func (u *UI) targetStackAt(p Point) []*Node {
	if u.root == nil {
		return nil
	}
	return u.root.TargetStack(p)
}

// focusStack is the dispatch path for keyboard events: the path to the
// focused node, or the root when nothing holds focus.
func (u *UI) focusStack() []*Node {
	if u.cache.Focus != 0 {
		if stack := u.root.PathTo(u.cache.Focus); stack != nil {
			return stack
		}
	}
	return []*Node{u.root}
}
