package term

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"lumen"
)

func assertInputs(t *testing.T, got, want []lumen.Input) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateMousePress(t *testing.T) {
	msg := tea.MouseMsg{X: 2, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	assertInputs(t, translateMouse(msg), []lumen.Input{
		lumen.MouseMotionInput(2.5*CellWidth, 1.5*CellHeight),
		lumen.PressInput(lumen.MouseBtn(lumen.MouseLeft)),
	})
}

func TestTranslateMouseRelease(t *testing.T) {
	msg := tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonRight, Action: tea.MouseActionRelease}
	assertInputs(t, translateMouse(msg), []lumen.Input{
		lumen.MouseMotionInput(0.5*CellWidth, 0.5*CellHeight),
		lumen.ReleaseInput(lumen.MouseBtn(lumen.MouseRight)),
	})
}

func TestTranslateMouseMotionOnly(t *testing.T) {
	msg := tea.MouseMsg{X: 4, Y: 3, Action: tea.MouseActionMotion}
	assertInputs(t, translateMouse(msg), []lumen.Input{
		lumen.MouseMotionInput(4.5*CellWidth, 3.5*CellHeight),
	})
}

func TestTranslateMouseWheel(t *testing.T) {
	cases := []struct {
		button tea.MouseButton
		x, y   float64
	}{
		{tea.MouseButtonWheelUp, 0, lumen.ScrollPointsPerLine},
		{tea.MouseButtonWheelDown, 0, -lumen.ScrollPointsPerLine},
		{tea.MouseButtonWheelLeft, lumen.ScrollPointsPerLine, 0},
		{tea.MouseButtonWheelRight, -lumen.ScrollPointsPerLine, 0},
	}
	for _, c := range cases {
		msg := tea.MouseMsg{X: 1, Y: 1, Button: c.button, Action: tea.MouseActionPress}
		assertInputs(t, translateMouse(msg), []lumen.Input{lumen.ScrollInput(c.x, c.y)})
	}
}

func TestTranslateKeyRune(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}
	assertInputs(t, translateKey(msg), []lumen.Input{
		lumen.PressInput(lumen.KeyButton(lumen.KeyA)),
		lumen.TextInput("a"),
		lumen.ReleaseInput(lumen.KeyButton(lumen.KeyA)),
	})
}

func TestTranslateKeyShiftedRune(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A")}
	assertInputs(t, translateKey(msg), []lumen.Input{
		lumen.PressInput(lumen.KeyButton(lumen.KeyLShift)),
		lumen.PressInput(lumen.KeyButton(lumen.KeyA)),
		lumen.TextInput("A"),
		lumen.ReleaseInput(lumen.KeyButton(lumen.KeyA)),
		lumen.ReleaseInput(lumen.KeyButton(lumen.KeyLShift)),
	})
}

func TestTranslateKeyAltSuppressesText(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}
	assertInputs(t, translateKey(msg), []lumen.Input{
		lumen.PressInput(lumen.KeyButton(lumen.KeyLAlt)),
		lumen.PressInput(lumen.KeyButton(lumen.KeyX)),
		lumen.ReleaseInput(lumen.KeyButton(lumen.KeyX)),
		lumen.ReleaseInput(lumen.KeyButton(lumen.KeyLAlt)),
	})
}

func TestTranslateKeySpace(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeySpace}
	assertInputs(t, translateKey(msg), []lumen.Input{
		lumen.PressInput(lumen.KeyButton(lumen.KeySpace)),
		lumen.TextInput(" "),
		lumen.ReleaseInput(lumen.KeyButton(lumen.KeySpace)),
	})
}

func TestTranslateKeySpecial(t *testing.T) {
	cases := []struct {
		teaKey tea.KeyType
		key    lumen.Key
	}{
		{tea.KeyEnter, lumen.KeyEnter},
		{tea.KeyEsc, lumen.KeyEscape},
		{tea.KeyUp, lumen.KeyArrowUp},
		{tea.KeyPgDown, lumen.KeyPageDown},
		{tea.KeyF5, lumen.KeyF5},
	}
	for _, c := range cases {
		msg := tea.KeyMsg{Type: c.teaKey}
		assertInputs(t, translateKey(msg), []lumen.Input{
			lumen.PressInput(lumen.KeyButton(c.key)),
			lumen.ReleaseInput(lumen.KeyButton(c.key)),
		})
	}
}

func TestTranslateKeyPunctuation(t *testing.T) {
	// Punctuation maps to its own keycode, shifted symbols imply shift.
	k, shifted := runeKey('.')
	if k != lumen.KeyPeriod || shifted {
		t.Errorf("expected '.' -> KeyPeriod unshifted, got %v shifted=%v", k, shifted)
	}
	k, shifted = runeKey('!')
	if k != lumen.KeyExclaim || !shifted {
		t.Errorf("expected '!' -> KeyExclaim shifted, got %v shifted=%v", k, shifted)
	}
	k, shifted = runeKey('9')
	if k != lumen.Key9 || shifted {
		t.Errorf("expected '9' -> Key9 unshifted, got %v shifted=%v", k, shifted)
	}
}

func TestTranslateKeyUnknownType(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyCtrlA}
	if got := translateKey(msg); len(got) != 0 {
		t.Errorf("expected no inputs for an unmapped key, got %+v", got)
	}
}
