package lumen

import (
	"fmt"
	"math"
)

// Dimension is a length that may still be unresolved: Auto (take from
// children or intrinsic measurement), absolute pixels, or a percentage of a
// parent dimension. The zero value is Auto.
type Dimension struct {
	kind dimKind
	val  float64
}

type dimKind uint8

const (
	dimAuto dimKind = iota
	dimPx
	dimPct
)

// Px returns an absolute pixel dimension.
func Px(v float64) Dimension { return Dimension{dimPx, v} }

// Pct returns a percentage dimension; 100 means the full parent extent.
func Pct(v float64) Dimension { return Dimension{dimPct, v} }

// Auto is the unresolved dimension.
var Auto = Dimension{}

func (d Dimension) IsAuto() bool   { return d.kind == dimAuto }
func (d Dimension) IsPct() bool    { return d.kind == dimPct }
func (d Dimension) Resolved() bool { return d.kind == dimPx }

// Px returns the pixel value, or 0 when unresolved.
func (d Dimension) Px() float64 {
	if d.kind == dimPx {
		return d.val
	}
	return 0
}

// MaybePx returns the pixel value and whether the dimension is resolved.
func (d Dimension) MaybePx() (float64, bool) {
	return d.val, d.kind == dimPx
}

// Pct returns the percentage value, or 0 if the dimension isn't a percent.
func (d Dimension) PctVal() float64 {
	if d.kind == dimPct {
		return d.val
	}
	return 0
}

// MostSpecific picks the more resolved of two dimensions, preferring pixels
// over percent over auto, and d itself on ties.
func (d Dimension) MostSpecific(o Dimension) Dimension {
	switch {
	case d.kind == dimAuto:
		return o
	case o.kind == dimAuto:
		return d
	case d.kind == dimPx:
		return d
	case o.kind == dimPx:
		return o
	default:
		return d
	}
}

// MoreSpecific returns o only when d is Auto.
func (d Dimension) MoreSpecific(o Dimension) Dimension {
	if d.kind == dimAuto {
		return o
	}
	return d
}

// MaybeResolve converts a percent to pixels when relativeTo is resolved.
// Pixels and Auto pass through unchanged.
func (d Dimension) MaybeResolve(relativeTo Dimension) Dimension {
	if d.kind == dimPct && relativeTo.kind == dimPx {
		return Px(relativeTo.val * d.val / 100.0)
	}
	return d
}

// Min returns the smaller dimension; a resolved dimension always beats an
// unresolved one.
func (d Dimension) Min(o Dimension) Dimension {
	switch {
	case d.kind == dimPx && o.kind == dimPx:
		return Px(math.Min(d.val, o.val))
	case d.kind == dimPx:
		return d
	case o.kind == dimPx:
		return o
	default:
		return Auto
	}
}

// Max returns the larger dimension; a resolved dimension always beats an
// unresolved one.
func (d Dimension) Max(o Dimension) Dimension {
	switch {
	case d.kind == dimPx && o.kind == dimPx:
		return Px(math.Max(d.val, o.val))
	case d.kind == dimPx:
		return d
	case o.kind == dimPx:
		return o
	default:
		return Auto
	}
}

// Add combines like kinds; mismatched kinds leave d unchanged.
func (d Dimension) Add(o Dimension) Dimension {
	if d.kind == o.kind && d.kind != dimAuto {
		return Dimension{d.kind, d.val + o.val}
	}
	return d
}

// Sub subtracts like kinds; mismatched kinds leave d unchanged.
func (d Dimension) Sub(o Dimension) Dimension {
	if d.kind == o.kind && d.kind != dimAuto {
		return Dimension{d.kind, d.val - o.val}
	}
	return d
}

func (d Dimension) String() string {
	switch d.kind {
	case dimPx:
		return fmt.Sprintf("%g px", d.val)
	case dimPct:
		return fmt.Sprintf("%g %%", d.val)
	default:
		return "Auto"
	}
}

func (d Dimension) Hash(h *Hasher) {
	h.WriteUint64(uint64(d.kind))
	h.WriteFloat(d.val)
}

// Size is a width/height pair of Dimensions.
type Size struct {
	Width  Dimension
	Height Dimension
}

// SizePx builds a fully resolved size.
func SizePx(w, h float64) Size { return Size{Px(w), Px(h)} }

// SizeAuto is the unresolved size.
func SizeAuto() Size { return Size{} }

func (s Size) Resolved() bool {
	return s.Width.Resolved() && s.Height.Resolved()
}

func (s Size) MostSpecific(o Size) Size {
	return Size{s.Width.MostSpecific(o.Width), s.Height.MostSpecific(o.Height)}
}

func (s Size) MoreSpecific(o Size) Size {
	return Size{s.Width.MoreSpecific(o.Width), s.Height.MoreSpecific(o.Height)}
}

// Main returns the dimension along dir's main axis.
func (s Size) Main(dir Direction) Dimension {
	if dir == Row {
		return s.Width
	}
	return s.Height
}

// Cross returns the dimension across dir's main axis.
func (s Size) Cross(dir Direction) Dimension {
	if dir == Row {
		return s.Height
	}
	return s.Width
}

func (s *Size) SetMain(dir Direction, d Dimension) {
	if dir == Row {
		s.Width = d
	} else {
		s.Height = d
	}
}

func (s *Size) SetCross(dir Direction, d Dimension) {
	if dir == Row {
		s.Height = d
	} else {
		s.Width = d
	}
}

func (s Size) MaybeResolve(relativeTo Size) Size {
	return Size{
		s.Width.MaybeResolve(relativeTo.Width),
		s.Height.MaybeResolve(relativeTo.Height),
	}
}

// MinusEdges shrinks the size by the horizontal/vertical totals of e.
func (s Size) MinusEdges(e Edges) Size {
	return Size{
		s.Width.Sub(e.Left).Sub(e.Right),
		s.Height.Sub(e.Top).Sub(e.Bottom),
	}
}

// PlusEdges grows the size by the horizontal/vertical totals of e.
func (s Size) PlusEdges(e Edges) Size {
	return Size{
		s.Width.Add(e.Left).Add(e.Right),
		s.Height.Add(e.Top).Add(e.Bottom),
	}
}

func (s Size) Min(o Size) Size {
	return Size{s.Width.Min(o.Width), s.Height.Min(o.Height)}
}

func (s Size) Max(o Size) Size {
	return Size{s.Width.Max(o.Width), s.Height.Max(o.Height)}
}

// Scale converts a resolved size to pixels; unresolved axes become 0.
func (s Size) Scale() Scale {
	return Scale{s.Width.Px(), s.Height.Px()}
}

func (s Size) String() string {
	return fmt.Sprintf("Size[%v, %v]", s.Width, s.Height)
}

func (s Size) Hash(h *Hasher) {
	s.Width.Hash(h)
	s.Height.Hash(h)
}

// Edges holds one Dimension per box edge. It serves as margin, padding and
// the position bounds of a layout spec.
type Edges struct {
	Left   Dimension
	Right  Dimension
	Top    Dimension
	Bottom Dimension
}

// EdgesZero has every edge pinned to 0 px, as margins and paddings default.
var EdgesZero = Edges{Px(0), Px(0), Px(0), Px(0)}

// EdgesAll pins every edge to the same pixel value.
func EdgesAll(v float64) Edges { return Edges{Px(v), Px(v), Px(v), Px(v)} }

func (e Edges) MaybeResolve(relativeTo Size) Edges {
	return Edges{
		Left:   e.Left.MaybeResolve(relativeTo.Width),
		Right:  e.Right.MaybeResolve(relativeTo.Width),
		Top:    e.Top.MaybeResolve(relativeTo.Height),
		Bottom: e.Bottom.MaybeResolve(relativeTo.Height),
	}
}

func (e Edges) WidthTotal() Dimension  { return e.Left.Add(e.Right) }
func (e Edges) HeightTotal() Dimension { return e.Top.Add(e.Bottom) }

// Main returns the leading edge on dir's main axis; End alignment makes the
// trailing edge lead.
func (e Edges) Main(dir Direction, align Alignment) Dimension {
	switch {
	case dir == Row && align == End:
		return e.Right
	case dir == Row:
		return e.Left
	case align == End:
		return e.Bottom
	default:
		return e.Top
	}
}

// MainReverse returns the trailing edge on dir's main axis.
func (e Edges) MainReverse(dir Direction, align Alignment) Dimension {
	switch {
	case dir == Row && align == End:
		return e.Left
	case dir == Row:
		return e.Right
	case align == End:
		return e.Top
	default:
		return e.Bottom
	}
}

func (e Edges) MainTotal(dir Direction) Dimension {
	if dir == Row {
		return e.Left.Add(e.Right)
	}
	return e.Top.Add(e.Bottom)
}

// Cross returns the leading edge on dir's cross axis.
func (e Edges) Cross(dir Direction, align Alignment) Dimension {
	switch {
	case dir == Row && align == End:
		return e.Bottom
	case dir == Row:
		return e.Top
	case align == End:
		return e.Right
	default:
		return e.Left
	}
}

// CrossReverse returns the trailing edge on dir's cross axis.
func (e Edges) CrossReverse(dir Direction, align Alignment) Dimension {
	switch {
	case dir == Row && align == End:
		return e.Top
	case dir == Row:
		return e.Bottom
	case align == End:
		return e.Left
	default:
		return e.Right
	}
}

func (e *Edges) SetMain(dir Direction, align Alignment, d Dimension) {
	switch {
	case dir == Row && align == End:
		e.Right = d
	case dir == Row:
		e.Left = d
	case align == End:
		e.Bottom = d
	default:
		e.Top = d
	}
}

func (e *Edges) SetCross(dir Direction, align Alignment, d Dimension) {
	switch {
	case dir == Row && align == End:
		e.Bottom = d
	case dir == Row:
		e.Top = d
	case align == End:
		e.Right = d
	default:
		e.Left = d
	}
}

// MostSpecific merges positions edge-wise, never resolving both opposing
// edges from the other value.
func (e Edges) MostSpecific(o Edges) Edges {
	m := e
	if !e.Top.Resolved() && o.Top.Resolved() && !e.Bottom.Resolved() {
		m.Top = o.Top
	}
	if !e.Bottom.Resolved() && o.Bottom.Resolved() && !e.Top.Resolved() {
		m.Bottom = o.Bottom
	}
	if !e.Left.Resolved() && o.Left.Resolved() && !e.Right.Resolved() {
		m.Left = o.Left
	}
	if !e.Right.Resolved() && o.Right.Resolved() && !e.Left.Resolved() {
		m.Right = o.Right
	}
	return m
}

func (e Edges) Add(o Edges) Edges {
	return Edges{
		Left:   e.Left.Add(o.Left),
		Right:  e.Right.Add(o.Right),
		Top:    e.Top.Add(o.Top),
		Bottom: e.Bottom.Add(o.Bottom),
	}
}

func (e Edges) Hash(h *Hasher) {
	e.Left.Hash(h)
	e.Right.Hash(h)
	e.Top.Hash(h)
	e.Bottom.Hash(h)
}

// Direction is the main axis of a container.
type Direction uint8

const (
	Row Direction = iota
	Column
)

// Size builds a Size from main/cross extents in this direction.
func (d Direction) Size(main, cross Dimension) Size {
	if d == Row {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

// Edges builds a position from main/cross offsets, honoring End alignment.
func (d Direction) Edges(main, cross Dimension, axisAlign, crossAlign Alignment) Edges {
	var e Edges
	e.SetMain(d, axisAlign, main)
	e.SetCross(d, crossAlign, cross)
	return e
}

// Alignment positions children within a container.
type Alignment uint8

const (
	Start Alignment = iota
	End
	Center
	Stretch
)

// PositionType selects flow or absolute positioning.
type PositionType uint8

const (
	Relative PositionType = iota
	Absolute
)

// ScrollPosition is a per-axis scroll offset; an unset axis doesn't scroll.
type ScrollPosition struct {
	X *float64
	Y *float64
}

// Div divides both offsets by f, converting physical to logical pixels.
func (s ScrollPosition) Div(f float64) ScrollPosition {
	out := ScrollPosition{}
	if s.X != nil {
		x := *s.X / f
		out.X = &x
	}
	if s.Y != nil {
		y := *s.Y / f
		out.Y = &y
	}
	return out
}
