package lumen

// boundsCache memoizes one FillBounds measurement; layout asks twice per
// frame with the same constraints.
type boundsCache struct {
	width, height       *float64
	maxWidth, maxHeight *float64
	outW, outH          *float64
	valid               bool
}

func (c *boundsCache) matches(width, height, maxWidth, maxHeight *float64) bool {
	return c.valid &&
		eqPtr(c.width, width) && eqPtr(c.height, height) &&
		eqPtr(c.maxWidth, maxWidth) && eqPtr(c.maxHeight, maxHeight)
}

func eqPtr(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// LabelState survives reconciliation so remeasures only happen when the
// constraints move.
type LabelState struct {
	bounds boundsCache
}

// Label is the text leaf widget. Its size comes from measuring the text
// against the font cache unless the author pins one.
type Label struct {
	BaseComponent
	Styled

	Text string

	state *LabelState
}

func NewLabel(text string) *Label {
	return &Label{Text: text, state: &LabelState{}}
}

// Class narrows style lookups; chainable.
func (l *Label) Class(class string) *Label {
	l.WithClass(class)
	return l
}

// Color overrides the text color for this instance.
func (l *Label) Color(c Color) *Label {
	l.OverrideStyle("color", ColorVal(c))
	return l
}

// Size overrides the font size for this instance.
func (l *Label) Size(size float64) *Label {
	l.OverrideStyle("size", FloatVal(size))
	return l
}

func (l *Label) fontSize() float64 {
	if v, ok := l.StyleParam("Label", "size"); ok {
		if f, ok := v.Float(); ok {
			return f
		}
	}
	return DefaultFontSize
}

func (l *Label) textColor() Color {
	if v, ok := l.StyleParam("Label", "color"); ok {
		if c, ok := v.Color(); ok {
			return c
		}
	}
	return Black
}

// NewProps drops the measurement cache; new text means new bounds.
func (l *Label) NewProps() {
	l.state = &LabelState{}
}

func (l *Label) TakeState() State {
	s := l.state
	l.state = nil
	return s
}

func (l *Label) ReplaceState(s State) {
	if st, ok := s.(*LabelState); ok && st != nil {
		l.state = st
	}
}

func (l *Label) PropsHash(h *Hasher) {
	h.WriteString(l.Text)
	l.HashStyle(h)
}

func (l *Label) RenderHash(h *Hasher) {
	h.WriteString(l.Text)
	h.WriteFloat(l.fontSize())
	l.textColor().Hash(h)
}

func (l *Label) FillBounds(width, height, maxWidth, maxHeight *float64, caches *Caches, scaleFactor float64) (*float64, *float64) {
	if l.state == nil {
		l.state = &LabelState{}
	}
	if c := &l.state.bounds; c.matches(width, height, maxWidth, maxHeight) {
		return c.outW, c.outH
	}

	size := l.fontSize()

	var wrapAt *float64
	if width != nil {
		w := *width * scaleFactor
		wrapAt = &w
	} else if maxWidth != nil {
		w := *maxWidth * scaleFactor
		wrapAt = &w
	}

	var outW, outH *float64
	glyphs, bounds := caches.Font.LayoutText(l.Text, size*scaleFactor, wrapAt)
	if len(glyphs) > 0 {
		w := bounds.Width / scaleFactor
		h := bounds.Height / scaleFactor
		if width != nil {
			w = *width
		}
		if height != nil {
			h = *height
		}
		outW, outH = &w, &h
	}

	l.state.bounds = boundsCache{
		width: width, height: height,
		maxWidth: maxWidth, maxHeight: maxHeight,
		outW: outW, outH: outH,
		valid: true,
	}
	return outW, outH
}

func (l *Label) Render(ctx RenderContext) []Renderable {
	if l.Text == "" {
		return nil
	}
	w := ctx.AABB.Width()
	t := NewText(l.Text, Pos{}, l.textColor(), l.fontSize()*ctx.ScaleFactor, &w,
		ctx.PrevText(0), ctx.Caches)
	return []Renderable{t}
}
