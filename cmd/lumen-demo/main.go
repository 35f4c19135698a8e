// Command lumen-demo renders a small scrollable layout in the terminal:
// a header, a sidebar and a scrolling list, wired through the engine's
// flexbox layout and event routing.
package main

import (
	"fmt"
	"os"

	"lumen"
	"lumen/backend/term"
)

type app struct {
	lumen.BaseComponent
	clicks int
}

func (a *app) Update(msg lumen.Message) []lumen.Message {
	if _, ok := msg.(rowClicked); ok {
		a.clicks++
	}
	return nil
}

func (a *app) View() *lumen.Node {
	header := lumen.NewNode(lumen.NewDiv().Bg(lumen.Color{R: 0.2, G: 0.3, B: 0.6, A: 1})).
		HeightPct(10).
		WidthPct(100).
		Push(lumen.NewNode(lumen.NewLabel(fmt.Sprintf("lumen demo | clicks: %d", a.clicks)).
			Color(lumen.White)).Margin(4, 0, 0, 8))

	sidebar := lumen.NewNode(lumen.NewDiv().Bg(lumen.Color{R: 0.9, G: 0.9, B: 0.9, A: 1})).
		WidthPct(25).
		HeightPct(100).
		Col().
		Push(
			lumen.NewNode(lumen.NewLabel("navigation")).Margin(8, 8, 4, 8),
			lumen.NewNode(lumen.NewLabel("settings")).Margin(4, 8, 4, 8),
		)

	list := lumen.NewNode(lumen.NewDiv().ScrollY()).
		Grow(1).
		HeightPct(100).
		Col()
	for i := 0; i < 50; i++ {
		list.Push(lumen.NewNode(&row{index: i}).
			WidthPct(100).
			Height(24).
			WithKey(uint64(i)))
	}

	body := lumen.NewNode(lumen.NewDiv()).
		WidthPct(100).
		Grow(1).
		AxisAlign(lumen.Stretch).
		Push(sidebar, list)

	return lumen.NewNode(lumen.NewDiv()).
		WidthPct(100).
		HeightPct(100).
		Col().
		AxisAlign(lumen.Stretch).
		Push(header, body)
}

type rowClicked struct{ index int }

type row struct {
	lumen.BaseComponent
	index int
	over  bool
}

func (r *row) PropsHash(h *lumen.Hasher) {
	h.WriteInt(r.index)
}

func (r *row) RenderHash(h *lumen.Hasher) {
	h.WriteInt(r.index)
	h.WriteBool(r.over)
}

func (r *row) OnMouseEnter(e *lumen.Event[lumen.MouseEnter]) {
	r.over = true
	e.MarkRenderDirty()
}

func (r *row) OnMouseLeave(e *lumen.Event[lumen.MouseLeave]) {
	r.over = false
	e.MarkRenderDirty()
}

func (r *row) OnClick(e *lumen.Event[lumen.Click]) {
	e.Emit(rowClicked{index: r.index})
	e.MarkDirty()
}

func (r *row) Render(ctx lumen.RenderContext) []lumen.Renderable {
	bg := lumen.Color{R: 1, G: 1, B: 1, A: 1}
	if r.over {
		bg = lumen.Color{R: 0.85, G: 0.9, B: 1, A: 1}
	}
	size := ctx.AABB.Size()
	w := size.Width
	return []lumen.Renderable{
		lumen.NewRect(lumen.Pos{Z: 0.1}, size, bg, ctx.PrevRect(0), ctx.Caches),
		lumen.NewText(fmt.Sprintf("row %d", r.index),
			lumen.Pos{X: 8, Y: 4, Z: 0.2}, lumen.Black,
			lumen.DefaultFontSize*ctx.ScaleFactor, &w, ctx.PrevText(1), ctx.Caches),
	}
}

func main() {
	backend := term.NewBackend()
	if err := backend.Run(func() lumen.Component { return &app{} }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
