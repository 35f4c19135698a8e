package lumen

import "sync"

// Cursor names a pointer shape the window host can display.
type Cursor string

const (
	CursorArrow        Cursor = "Arrow"
	CursorNone         Cursor = "None"
	CursorHidden       Cursor = "Hidden"
	CursorIbeam        Cursor = "Ibeam"
	CursorText         Cursor = "Text"
	CursorPointingHand Cursor = "PointingHand"
	CursorHand         Cursor = "Hand"
	CursorHandGrabbing Cursor = "HandGrabbing"
	CursorNoEntry      Cursor = "NoEntry"
	CursorCross        Cursor = "Cross"
	CursorSize         Cursor = "Size"
	CursorMove         Cursor = "Move"
	CursorSizeNWSE     Cursor = "SizeNWSE"
	CursorSizeNS       Cursor = "SizeNS"
	CursorSizeNESW     Cursor = "SizeNESW"
	CursorSizeWE       Cursor = "SizeWE"
)

// Window is the host surface the engine draws into. Backends implement it;
// the engine only ever calls these operations.
type Window interface {
	LogicalSize() Scale
	PhysicalSize() Scale
	ScaleFactor() float64
	// Redraw hints that a frame should be presented; hosts may coalesce.
	Redraw()
	SetCursor(c Cursor)
	UnsetCursor()
	PutOnClipboard(data Data)
	GetFromClipboard() *Data
	StartDrag(data Data)
	SetDropTargetValid(valid bool)
}

var (
	currentWindowMu sync.RWMutex
	currentWindow   Window

	immediateFocusMu sync.Mutex
	immediateFocus   uint64
)

// SetCurrentWindow installs the window for the event thread; pass nil on
// exit.
func SetCurrentWindow(w Window) {
	currentWindowMu.Lock()
	currentWindow = w
	currentWindowMu.Unlock()
}

// CurrentWindow returns the installed window, or nil after exit.
func CurrentWindow() Window {
	currentWindowMu.RLock()
	defer currentWindowMu.RUnlock()
	return currentWindow
}

// SetImmediateFocus asks the next menu dispatch to route to the given node
// before falling back to the focused node.
func SetImmediateFocus(id uint64) {
	immediateFocusMu.Lock()
	immediateFocus = id
	immediateFocusMu.Unlock()
}

// TakeImmediateFocus consumes the pending immediate-focus target.
func TakeImmediateFocus() uint64 {
	immediateFocusMu.Lock()
	defer immediateFocusMu.Unlock()
	id := immediateFocus
	immediateFocus = 0
	return id
}
