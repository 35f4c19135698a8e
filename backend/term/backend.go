package term

import (
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	xterm "golang.org/x/term"

	"lumen"
)

// tickInterval drives the engine's Tick events (cursor blink and friends).
const tickInterval = 500 * time.Millisecond

// Backend hosts a lumen UI inside a terminal. It is the engine's Window
// and owns the bubbletea program that pumps input and presents frames.
type Backend struct {
	mu      sync.Mutex
	prog    *tea.Program
	painter *Painter
	cols    int
	rows    int

	clipboard lumen.Data
}

// NewBackend sizes itself from the controlling terminal, falling back to
// 80x24 when stdout isn't one.
func NewBackend() *Backend {
	cols, rows := 80, 24
	if w, h, err := xterm.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}
	b := &Backend{cols: cols, rows: rows}
	b.painter = NewPainter(cols, rows, b.Redraw)
	return b
}

// Painter returns the cell painter for wiring into lumen.New.
func (b *Backend) Painter() *Painter { return b.painter }

// Run builds the UI over this backend and blocks until the program exits.
func (b *Backend) Run(rootFn func() lumen.Component) error {
	ui := lumen.New(b, b.painter, rootFn)

	m := &model{backend: b, ui: ui}
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	b.mu.Lock()
	b.prog = prog
	b.mu.Unlock()

	ui.Start()
	_, err := prog.Run()
	ui.HandleInput(lumen.Input{Kind: lumen.InputExit})
	ui.Wait()
	return err
}

// Window implementation. A terminal has no DPI scaling, so logical and
// physical sizes coincide.

func (b *Backend) LogicalSize() lumen.Scale {
	b.mu.Lock()
	defer b.mu.Unlock()
	return lumen.Scale{Width: float64(b.cols) * CellWidth, Height: float64(b.rows) * CellHeight}
}

func (b *Backend) PhysicalSize() lumen.Scale { return b.LogicalSize() }

func (b *Backend) ScaleFactor() float64 { return 1 }

func (b *Backend) Redraw() {
	b.mu.Lock()
	prog := b.prog
	b.mu.Unlock()
	if prog != nil {
		prog.Send(frameMsg{})
	}
}

// Terminals have no pointer cursor to change.
func (b *Backend) SetCursor(c lumen.Cursor) {}

func (b *Backend) UnsetCursor() {}

func (b *Backend) PutOnClipboard(data lumen.Data) {
	b.mu.Lock()
	b.clipboard = data
	b.mu.Unlock()
}

func (b *Backend) GetFromClipboard() *lumen.Data {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.clipboard
	return &d
}

// Terminals cannot originate host drags.
func (b *Backend) StartDrag(data lumen.Data) {}

func (b *Backend) SetDropTargetValid(valid bool) {}

func (b *Backend) resize(cols, rows int) {
	b.mu.Lock()
	b.cols = cols
	b.rows = rows
	b.mu.Unlock()
	b.painter.Resize(lumen.Scale{
		Width:  float64(cols) * CellWidth,
		Height: float64(rows) * CellHeight,
	})
}

type frameMsg struct{}

type tickMsg time.Time

// model adapts bubbletea's update loop to the engine's input model.
type model struct {
	backend *Backend
	ui      *lumen.UI
}

func (m *model) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		for _, in := range translateKey(msg) {
			m.ui.HandleInput(in)
		}
	case tea.MouseMsg:
		for _, in := range translateMouse(msg) {
			m.ui.HandleInput(in)
		}
	case tea.WindowSizeMsg:
		m.backend.resize(msg.Width, msg.Height)
		m.ui.HandleInput(lumen.Input{Kind: lumen.InputResize})
	case tea.FocusMsg:
		m.ui.HandleInput(lumen.Input{Kind: lumen.InputFocus, Focused: true})
	case tea.BlurMsg:
		m.ui.HandleInput(lumen.Input{Kind: lumen.InputFocus, Focused: false})
	case tickMsg:
		m.ui.HandleInput(lumen.Input{Kind: lumen.InputTimer})
		return m, tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
	case frameMsg:
		// View reads the painter's latest grid.
	}
	return m, nil
}

// View renders the painted cell grid, batching per-row style runs so each
// row emits as few escape sequences as possible.
func (m *model) View() string {
	buf := m.backend.painter.Snapshot()
	var sb strings.Builder
	for y := 0; y < buf.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle Cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(styleFor(runStyle).Render(run.String()))
			run.Reset()
		}
		for x := 0; x < buf.Width(); x++ {
			c := buf.Get(x, y)
			if run.Len() > 0 && !sameStyle(c, runStyle) {
				flush()
			}
			if run.Len() == 0 {
				runStyle = c
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return sb.String()
}

func sameStyle(a, b Cell) bool {
	return a.FgSet == b.FgSet && a.BgSet == b.BgSet && a.Fg == b.Fg && a.Bg == b.Bg
}

func styleFor(c Cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.FgSet {
		s = s.Foreground(lipgloss.Color(hexColor(c.Fg)))
	}
	if c.BgSet {
		s = s.Background(lipgloss.Color(hexColor(c.Bg)))
	}
	return s
}

func hexColor(c lumen.Color) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// translateMouse converts a terminal mouse event, cell coordinates, into
// engine inputs in pixel coordinates. The pointer lands on cell centers.
func translateMouse(msg tea.MouseMsg) []lumen.Input {
	x := (float64(msg.X) + 0.5) * CellWidth
	y := (float64(msg.Y) + 0.5) * CellHeight

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return []lumen.Input{lumen.ScrollInput(0, lumen.ScrollPointsPerLine)}
	case tea.MouseButtonWheelDown:
		return []lumen.Input{lumen.ScrollInput(0, -lumen.ScrollPointsPerLine)}
	case tea.MouseButtonWheelLeft:
		return []lumen.Input{lumen.ScrollInput(lumen.ScrollPointsPerLine, 0)}
	case tea.MouseButtonWheelRight:
		return []lumen.Input{lumen.ScrollInput(-lumen.ScrollPointsPerLine, 0)}
	}

	// Every mouse event carries a position; report it first so presses
	// land on the right target.
	inputs := []lumen.Input{lumen.MouseMotionInput(x, y)}

	var btn lumen.MouseButton
	switch msg.Button {
	case tea.MouseButtonLeft:
		btn = lumen.MouseLeft
	case tea.MouseButtonRight:
		btn = lumen.MouseRight
	case tea.MouseButtonMiddle:
		btn = lumen.MouseMiddle
	default:
		return inputs
	}

	switch msg.Action {
	case tea.MouseActionPress:
		inputs = append(inputs, lumen.PressInput(lumen.MouseBtn(btn)))
	case tea.MouseActionRelease:
		inputs = append(inputs, lumen.ReleaseInput(lumen.MouseBtn(btn)))
	}
	return inputs
}

// translateKey converts a key event. Terminals report presses only, so a
// press/release pair is synthesized; text goes along for printable runes.
func translateKey(msg tea.KeyMsg) []lumen.Input {
	var inputs []lumen.Input

	press := func(k lumen.Key) {
		inputs = append(inputs,
			lumen.PressInput(lumen.KeyButton(k)),
			lumen.ReleaseInput(lumen.KeyButton(k)))
	}
	wrapAlt := func(body func()) {
		if msg.Alt {
			inputs = append(inputs, lumen.PressInput(lumen.KeyButton(lumen.KeyLAlt)))
		}
		body()
		if msg.Alt {
			inputs = append(inputs, lumen.ReleaseInput(lumen.KeyButton(lumen.KeyLAlt)))
		}
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		wrapAlt(func() {
			for _, r := range msg.Runes {
				k, shifted := runeKey(r)
				if shifted {
					inputs = append(inputs, lumen.PressInput(lumen.KeyButton(lumen.KeyLShift)))
				}
				inputs = append(inputs, lumen.PressInput(lumen.KeyButton(k)))
				if !msg.Alt {
					inputs = append(inputs, lumen.TextInput(string(r)))
				}
				inputs = append(inputs, lumen.ReleaseInput(lumen.KeyButton(k)))
				if shifted {
					inputs = append(inputs, lumen.ReleaseInput(lumen.KeyButton(lumen.KeyLShift)))
				}
			}
			if msg.Type == tea.KeySpace {
				inputs = append(inputs, lumen.PressInput(lumen.KeyButton(lumen.KeySpace)))
				if !msg.Alt {
					inputs = append(inputs, lumen.TextInput(" "))
				}
				inputs = append(inputs, lumen.ReleaseInput(lumen.KeyButton(lumen.KeySpace)))
			}
		})
		return inputs
	}

	if k, ok := specialKey(msg.Type); ok {
		wrapAlt(func() { press(k) })
	}
	return inputs
}

func specialKey(t tea.KeyType) (lumen.Key, bool) {
	switch t {
	case tea.KeyEnter:
		return lumen.KeyEnter, true
	case tea.KeyTab:
		return lumen.KeyTab, true
	case tea.KeyBackspace:
		return lumen.KeyBackspace, true
	case tea.KeyDelete:
		return lumen.KeyDelete, true
	case tea.KeyInsert:
		return lumen.KeyInsert, true
	case tea.KeyEsc:
		return lumen.KeyEscape, true
	case tea.KeyUp:
		return lumen.KeyArrowUp, true
	case tea.KeyDown:
		return lumen.KeyArrowDown, true
	case tea.KeyLeft:
		return lumen.KeyArrowLeft, true
	case tea.KeyRight:
		return lumen.KeyArrowRight, true
	case tea.KeyHome:
		return lumen.KeyHome, true
	case tea.KeyEnd:
		return lumen.KeyEnd, true
	case tea.KeyPgUp:
		return lumen.KeyPageUp, true
	case tea.KeyPgDown:
		return lumen.KeyPageDown, true
	case tea.KeyF1:
		return lumen.KeyF1, true
	case tea.KeyF2:
		return lumen.KeyF2, true
	case tea.KeyF3:
		return lumen.KeyF3, true
	case tea.KeyF4:
		return lumen.KeyF4, true
	case tea.KeyF5:
		return lumen.KeyF5, true
	case tea.KeyF6:
		return lumen.KeyF6, true
	case tea.KeyF7:
		return lumen.KeyF7, true
	case tea.KeyF8:
		return lumen.KeyF8, true
	case tea.KeyF9:
		return lumen.KeyF9, true
	case tea.KeyF10:
		return lumen.KeyF10, true
	case tea.KeyF11:
		return lumen.KeyF11, true
	case tea.KeyF12:
		return lumen.KeyF12, true
	}
	return lumen.KeyUnknown, false
}

// runeKey maps a printable rune to its key, reporting whether shift is
// implied.
func runeKey(r rune) (lumen.Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return lumen.KeyA + lumen.Key(r-'a'), false
	case r >= 'A' && r <= 'Z':
		return lumen.KeyA + lumen.Key(r-'A'), true
	case r >= '0' && r <= '9':
		return lumen.Key0 + lumen.Key(r-'0'), false
	}
	switch r {
	case ' ':
		return lumen.KeySpace, false
	case ',':
		return lumen.KeyComma, false
	case '.':
		return lumen.KeyPeriod, false
	case '/':
		return lumen.KeySlash, false
	case '\\':
		return lumen.KeyBackslash, false
	case ';':
		return lumen.KeySemicolon, false
	case '\'':
		return lumen.KeyQuote, false
	case '`':
		return lumen.KeyBacktick, false
	case '-':
		return lumen.KeyMinus, false
	case '=':
		return lumen.KeyEquals, false
	case '[':
		return lumen.KeyLeftBracket, false
	case ']':
		return lumen.KeyRightBracket, false
	case '!':
		return lumen.KeyExclaim, true
	case '@':
		return lumen.KeyAt, true
	case '#':
		return lumen.KeyHash, true
	case '$':
		return lumen.KeyDollar, true
	case '%':
		return lumen.KeyPercent, true
	case '^':
		return lumen.KeyCaret, true
	case '&':
		return lumen.KeyAmpersand, true
	case '*':
		return lumen.KeyAsterisk, true
	case '(':
		return lumen.KeyLeftParen, true
	case ')':
		return lumen.KeyRightParen, true
	case '_':
		return lumen.KeyUnderscore, true
	case '+':
		return lumen.KeyPlus, true
	}
	return lumen.KeyUnknown, false
}
