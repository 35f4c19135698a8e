package lumen

import "math"

// minBarSize is the smallest a scroll bar thumb may shrink to.
const minBarSize = 10.0

// Default scroll bar styling, overridable through the style sheet under
// type "Div".
var (
	defaultBarWidth           = 12.0
	defaultBarColor           = Color{R: 0.6, G: 0.6, B: 0.6, A: 1}
	defaultBarHighlightColor  = Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	defaultBarActiveColor     = Color{R: 0.4, G: 0.4, B: 0.4, A: 1}
	defaultBarBackgroundColor = Color{R: 0.9, G: 0.9, B: 0.9, A: 0.8}
)

// DivState carries scroll offsets and bar interaction state across frames.
type DivState struct {
	scrollPosition    Point
	xScrollBar        *AABB
	yScrollBar        *AABB
	overYBar          bool
	yBarPressed       bool
	overXBar          bool
	xBarPressed       bool
	dragStartPosition Point
	scaledBarWidth    float64
}

// Div is the container widget: an optionally painted box that can scroll
// its overflow on either axis.
type Div struct {
	BaseComponent
	Styled

	Background  *Color
	BorderColor *Color
	BorderWidth float64

	scrollXOn bool
	scrollYOn bool
	state     *DivState
}

func NewDiv() *Div { return &Div{} }

// Bg sets the background fill.
func (d *Div) Bg(c Color) *Div {
	d.Background = &c
	return d
}

// Border sets the border color and width.
func (d *Div) Border(c Color, width float64) *Div {
	d.BorderColor = &c
	d.BorderWidth = width
	return d
}

// ScrollX enables horizontal scrolling.
func (d *Div) ScrollX() *Div {
	d.scrollXOn = true
	d.ensureState()
	return d
}

// ScrollY enables vertical scrolling.
func (d *Div) ScrollY() *Div {
	d.scrollYOn = true
	d.ensureState()
	return d
}

// Class narrows style lookups; chainable.
func (d *Div) Class(class string) *Div {
	d.WithClass(class)
	return d
}

func (d *Div) ensureState() {
	if d.state == nil {
		d.state = &DivState{}
	}
}

func (d *Div) scrollable() bool { return d.scrollXOn || d.scrollYOn }

func (d *Div) barWidth() float64 {
	if v, ok := d.StyleParam("Div", "bar_width"); ok {
		if f, ok := v.Float(); ok {
			return f
		}
	}
	return defaultBarWidth
}

func (d *Div) barColorFor(pressed, over bool) Color {
	param, fallback := "bar_color", defaultBarColor
	if pressed {
		param, fallback = "bar_active_color", defaultBarActiveColor
	} else if over {
		param, fallback = "bar_highlight_color", defaultBarHighlightColor
	}
	if v, ok := d.StyleParam("Div", param); ok {
		if c, ok := v.Color(); ok {
			return c
		}
	}
	return fallback
}

func (d *Div) barBackgroundColor() Color {
	if v, ok := d.StyleParam("Div", "bar_background_color"); ok {
		if c, ok := v.Color(); ok {
			return c
		}
	}
	return defaultBarBackgroundColor
}

func (d *Div) TakeState() State {
	s := d.state
	d.state = nil
	return s
}

func (d *Div) ReplaceState(s State) {
	if st, ok := s.(*DivState); ok && st != nil {
		d.state = st
	}
}

func (d *Div) PropsHash(h *Hasher) {
	if d.Background != nil {
		d.Background.Hash(h)
	}
	if d.BorderColor != nil {
		d.BorderColor.Hash(h)
	}
	h.WriteFloat(d.BorderWidth)
	h.WriteBool(d.scrollXOn)
	h.WriteBool(d.scrollYOn)
	d.HashStyle(h)
}

func (d *Div) RenderHash(h *Hasher) {
	if d.state != nil {
		d.state.scrollPosition.Hash(h)
		h.WriteBool(d.state.overYBar)
		h.WriteBool(d.state.overXBar)
		h.WriteBool(d.state.yBarPressed)
		h.WriteBool(d.state.xBarPressed)
	}
	if d.Background != nil {
		d.Background.Hash(h)
	}
	if d.BorderColor != nil {
		d.BorderColor.Hash(h)
	}
	h.WriteFloat(d.BorderWidth)
}

// ScrollPosition exposes the offsets layout translates children by. The
// pointers alias the state so scroll-to signals can write through them.
func (d *Div) ScrollPosition() *ScrollPosition {
	if !d.scrollable() || d.state == nil {
		return nil
	}
	sp := &ScrollPosition{}
	if d.scrollXOn {
		sp.X = &d.state.scrollPosition.X
	}
	if d.scrollYOn {
		sp.Y = &d.state.scrollPosition.Y
	}
	return sp
}

func (d *Div) OnScroll(e *Event[Scroll]) {
	if !d.scrollable() {
		return
	}
	pos := d.state.scrollPosition
	scrolled := false
	size := e.CurrentPhysicalAABB().Size()
	inner := e.CurrentPhysicalInnerScale()
	if inner == nil {
		return
	}

	if d.scrollYOn {
		if e.Input.Y > 0 {
			max := inner.Height - size.Height
			if pos.Y < max {
				pos.Y += e.Input.Y
				if pos.Y > max {
					pos.Y = max
				}
				scrolled = true
			}
		} else if e.Input.Y < 0 && pos.Y > 0 {
			if pos.Y+size.Height > inner.Height {
				pos.Y = inner.Height - size.Height
			}
			pos.Y += e.Input.Y
			if pos.Y < 0 {
				pos.Y = 0
			}
			scrolled = true
		}
	}

	if d.scrollXOn {
		if e.Input.X > 0 {
			max := inner.Width - size.Width
			if pos.X < max {
				pos.X += e.Input.X
				if pos.X > max {
					pos.X = max
				}
				scrolled = true
			}
		} else if e.Input.X < 0 && pos.X > 0 {
			if pos.X+size.Width > inner.Width {
				pos.X = inner.Width - size.Width
			}
			pos.X += e.Input.X
			if pos.X < 0 {
				pos.X = 0
			}
			scrolled = true
		}
	}

	if scrolled {
		d.state.scrollPosition = pos
		e.StopBubbling()
		e.MarkRenderDirty()
	}
}

func (d *Div) OnMouseMotion(e *Event[MouseMotion]) {
	if !d.scrollable() {
		return
	}
	p := e.RelativePhysicalPosition()
	overY := d.state.yScrollBar != nil && d.state.yScrollBar.IsUnder(p)
	overX := d.state.xScrollBar != nil && d.state.xScrollBar.IsUnder(p)
	if d.state.overYBar != overY || d.state.overXBar != overX {
		d.state.overYBar = overY
		d.state.overXBar = overX
		e.MarkRenderDirty()
	}
	e.StopBubbling()
}

func (d *Div) OnMouseLeave(e *Event[MouseLeave]) {
	if !d.scrollable() {
		return
	}
	if d.state.overYBar || d.state.overXBar {
		d.state.overYBar = false
		d.state.overXBar = false
		e.MarkRenderDirty()
	}
}

func (d *Div) OnDragStart(e *Event[DragStart]) {
	if !d.scrollable() {
		return
	}
	if d.state.overXBar || d.state.overYBar {
		d.state.xBarPressed = d.state.overXBar
		d.state.yBarPressed = d.state.overYBar
		d.state.dragStartPosition = d.state.scrollPosition
		e.StopBubbling()
	}
}

func (d *Div) OnDragEnd(e *Event[DragEnd]) {
	if !d.scrollable() {
		return
	}
	if d.state.xBarPressed || d.state.yBarPressed {
		d.state.xBarPressed = false
		d.state.yBarPressed = false
		e.MarkRenderDirty()
	}
}

// OnDrag converts bar travel back to content travel; a bar pixel is worth
// inner/size content pixels.
func (d *Div) OnDrag(e *Event[Drag]) {
	if !d.scrollable() || (!d.state.xBarPressed && !d.state.yBarPressed) {
		return
	}
	size := e.CurrentPhysicalAABB().Size()
	inner := e.CurrentPhysicalInnerScale()
	if inner == nil {
		return
	}
	start := d.state.dragStartPosition
	pos := d.state.scrollPosition
	delta := e.PhysicalMousePosition().Sub(e.Input.StartPos)

	if d.state.yBarPressed {
		moved := delta.Y * (inner.Height / size.Height)
		pos.Y = clamp(round(start.Y+moved), 0, inner.Height-size.Height)
	}
	if d.state.xBarPressed {
		moved := delta.X * (inner.Width / size.Width)
		pos.X = clamp(round(start.X+moved), 0, inner.Width-size.Width)
	}
	d.state.scrollPosition = pos
	e.StopBubbling()
	e.MarkRenderDirty()
}

// ScrollToVisible adjusts the scroll offsets so target becomes visible
// within this container, preferring the top/left edge when the target is
// larger than the frame. Reports whether anything moved.
func (d *Div) ScrollToVisible(target, aabb AABB, innerScale *Scale) bool {
	if !d.scrollable() {
		return false
	}
	frame := d.FrameBounds(aabb, innerScale, 1)
	scrolled := false

	if d.scrollYOn {
		switch {
		case target.Pos.Y < frame.Pos.Y:
			d.state.scrollPosition.Y += target.Pos.Y - frame.Pos.Y
			scrolled = true
		case target.Height() <= frame.Height() && target.BottomRight.Y > frame.BottomRight.Y:
			d.state.scrollPosition.Y += target.BottomRight.Y - frame.BottomRight.Y
			scrolled = true
		case target.Pos.Y > frame.BottomRight.Y:
			d.state.scrollPosition.Y += target.Pos.Y - frame.BottomRight.Y
			scrolled = true
		}
	}

	if d.scrollXOn {
		switch {
		case target.Pos.X < frame.Pos.X:
			d.state.scrollPosition.X += target.Pos.X - frame.Pos.X
			scrolled = true
		case target.Width() <= frame.Width() && target.BottomRight.X > frame.BottomRight.X:
			d.state.scrollPosition.X += target.BottomRight.X - frame.BottomRight.X
			scrolled = true
		case target.Pos.X > frame.BottomRight.X:
			d.state.scrollPosition.X += target.Pos.X - frame.BottomRight.X
			scrolled = true
		}
	}

	return scrolled
}

// FrameBounds shrinks the clip box by the bar gutters when the content
// actually overflows.
func (d *Div) FrameBounds(aabb AABB, innerScale *Scale, scaleFactor float64) AABB {
	if !d.scrollable() || innerScale == nil {
		return aabb
	}
	w := d.state.scaledBarWidth
	size := aabb.Size()
	if d.scrollYOn && innerScale.Height-size.Height > 0 {
		aabb.BottomRight.X -= w
	}
	if d.scrollXOn && innerScale.Width-size.Width > 0 {
		aabb.BottomRight.Y -= w
	}
	return aabb
}

func (d *Div) Render(ctx RenderContext) []Renderable {
	var rs []Renderable
	border := 0.0
	if d.BorderColor != nil {
		border = round(d.BorderWidth * ctx.ScaleFactor)
		if border < 0 {
			border = 0
		}
	}
	size := ctx.AABB.Size()

	if d.Background != nil {
		rs = append(rs, NewRect(
			Pos{X: border, Y: border, Z: 0.1},
			Scale{Width: size.Width - border*2, Height: size.Height - border*2},
			*d.Background, ctx.PrevRect(len(rs)), ctx.Caches))
	}
	if d.BorderColor != nil && border > 0 {
		rs = append(rs, NewRect(Pos{}, size, *d.BorderColor, ctx.PrevRect(len(rs)), ctx.Caches))
	}

	if !d.scrollable() || ctx.InnerScale == nil {
		return rs
	}

	pos := d.state.scrollPosition
	inner := *ctx.InnerScale
	scaledWidth := d.barWidth() * ctx.ScaleFactor
	d.state.scaledBarWidth = scaledWidth
	maxX := inner.Width - size.Width
	maxY := inner.Height - size.Height

	if d.scrollYOn {
		if maxY > 0 {
			x := size.Width - scaledWidth
			trackHeight := size.Height
			if d.scrollXOn && maxX > 0 {
				trackHeight -= scaledWidth
			}

			rs = append(rs, NewRect(
				Pos{X: x, Y: 0, Z: 0.1},
				Scale{Width: scaledWidth, Height: trackHeight},
				d.barBackgroundColor(), ctx.PrevRect(len(rs)), ctx.Caches))

			height := trackHeight * (size.Height / inner.Height)
			if height < minBarSize {
				height = minBarSize
			}
			y := (trackHeight - height) * (pos.Y / maxY)
			if y+height > trackHeight {
				y = trackHeight - height
			}

			bar := AABB{
				Pos:         Pos{X: x + 2, Y: y, Z: 0.2},
				BottomRight: Point{X: x + scaledWidth - 2, Y: y + height},
			}
			d.state.yScrollBar = &bar
			rs = append(rs, NewRect(bar.Pos, bar.Size(),
				d.barColorFor(d.state.yBarPressed, d.state.overYBar),
				ctx.PrevRect(len(rs)), ctx.Caches))
		} else {
			d.state.yScrollBar = nil
		}
	}

	if d.scrollXOn {
		if maxX > 0 {
			y := size.Height - scaledWidth
			trackWidth := size.Width
			if d.scrollYOn && maxY > 0 {
				trackWidth -= scaledWidth
			}

			rs = append(rs, NewRect(
				Pos{X: 0, Y: y, Z: 0.1},
				Scale{Width: trackWidth, Height: scaledWidth},
				d.barBackgroundColor(), ctx.PrevRect(len(rs)), ctx.Caches))

			width := trackWidth * (size.Width / inner.Width)
			if width < minBarSize {
				width = minBarSize
			}
			x := (trackWidth - width) * (pos.X / maxX)
			if x+width > trackWidth {
				x = trackWidth - width
			}

			bar := AABB{
				Pos:         Pos{X: x, Y: y + 2, Z: 0.2},
				BottomRight: Point{X: x + width, Y: y + scaledWidth - 2},
			}
			d.state.xScrollBar = &bar
			rs = append(rs, NewRect(bar.Pos, bar.Size(),
				d.barColorFor(d.state.xBarPressed, d.state.overXBar),
				ctx.PrevRect(len(rs)), ctx.Caches))
		} else {
			d.state.xScrollBar = nil
		}
	}

	return rs
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}

func round(v float64) float64 { return math.Round(v) }
