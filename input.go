package lumen

// Data is a drag-and-drop or clipboard payload.
type Data struct {
	String   string
	Filepath string
	Custom   []byte
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseAux1
	MouseAux2
)

// Key is a virtual key. Punctuation codes translate directly from backend
// keycodes; there is no remapping between them.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyEscape
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyComma
	KeyPeriod
	KeySlash
	KeyBackslash
	KeySemicolon
	KeyQuote
	KeyBacktick
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyExclaim
	KeyAt
	KeyHash
	KeyDollar
	KeyPercent
	KeyCaret
	KeyAmpersand
	KeyAsterisk
	KeyLeftParen
	KeyRightParen
	KeyUnderscore
	KeyPlus
	KeyLCtrl
	KeyRCtrl
	KeyLShift
	KeyRShift
	KeyLAlt
	KeyRAlt
	KeyLMeta
	KeyRMeta
)

// IsModifier reports whether the key is a modifier; modifier presses are
// recorded but never synthesize a KeyPress.
func (k Key) IsModifier() bool {
	switch k {
	case KeyLCtrl, KeyRCtrl, KeyLShift, KeyRShift, KeyLAlt, KeyRAlt, KeyLMeta, KeyRMeta:
		return true
	}
	return false
}

// Button is either a keyboard key or a mouse button.
type Button struct {
	Key   Key
	Mouse MouseButton
	// IsMouse distinguishes the two; the zero Button is a keyboard
	// KeyUnknown.
	IsMouse bool
}

func KeyButton(k Key) Button        { return Button{Key: k} }
func MouseBtn(b MouseButton) Button { return Button{Mouse: b, IsMouse: true} }

// MotionKind distinguishes pointer movement from wheel movement.
type MotionKind uint8

const (
	MotionMouse MotionKind = iota
	MotionScroll
)

// Motion is a pointer or wheel movement in logical coordinates.
type Motion struct {
	Kind MotionKind
	X    float64
	Y    float64
}

// DragKind enumerates host drag-and-drop phases.
type DragKind uint8

const (
	DragStartKind DragKind = iota
	DragDraggingKind
	DragEndKind
	DragDropKind
)

// HostDrag is a drag-and-drop notification from the windowing host.
type HostDrag struct {
	Kind DragKind
	Data Data
}

// InputKind tags an Input.
type InputKind uint8

const (
	InputPress InputKind = iota
	InputRelease
	InputMotion
	InputText
	InputResize
	InputFocus
	InputTimer
	InputMenu
	InputMouseLeaveWindow
	InputMouseEnterWindow
	InputDrag
	InputExit
)

// Input is a raw event pushed by the windowing backend. Exactly the fields
// implied by Kind are meaningful.
type Input struct {
	Kind    InputKind
	Button  Button
	Motion  Motion
	Text    string
	Focused bool
	Menu    int
	Drag    HostDrag
}

func PressInput(b Button) Input   { return Input{Kind: InputPress, Button: b} }
func ReleaseInput(b Button) Input { return Input{Kind: InputRelease, Button: b} }

func MouseMotionInput(x, y float64) Input {
	return Input{Kind: InputMotion, Motion: Motion{Kind: MotionMouse, X: x, Y: y}}
}

func ScrollInput(x, y float64) Input {
	return Input{Kind: InputMotion, Motion: Motion{Kind: MotionScroll, X: x, Y: y}}
}

func TextInput(s string) Input { return Input{Kind: InputText, Text: s} }
