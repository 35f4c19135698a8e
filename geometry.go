package lumen

import "math"

// PixelSize is a size in whole physical pixels.
type PixelSize struct {
	Width  uint32
	Height uint32
}

// Point is a 2D position in pixel space.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Dist returns the euclidean distance to o.
func (p Point) Dist(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Mul scales both coordinates by f. Used to convert between logical and
// physical pixels via the window scale factor.
func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }

// Div unscales both coordinates by f.
func (p Point) Div(f float64) Point { return Point{p.X / f, p.Y / f} }

func (p Point) Hash(h *Hasher) {
	h.WriteFloat(p.X)
	h.WriteFloat(p.Y)
}

// Pos is a 3D position; Z carries the stacking order used by the painter.
type Pos struct {
	X float64
	Y float64
	Z float64
}

func (p Pos) Point() Point      { return Point{p.X, p.Y} }
func (p Pos) Add(o Point) Pos   { return Pos{p.X + o.X, p.Y + o.Y, p.Z} }
func (p Pos) Mul(f float64) Pos { return Pos{p.X * f, p.Y * f, p.Z} }

func (p Pos) Hash(h *Hasher) {
	h.WriteFloat(p.X)
	h.WriteFloat(p.Y)
	h.WriteFloat(p.Z)
}

// Scale is a width/height pair in pixels.
type Scale struct {
	Width  float64
	Height float64
}

func (s Scale) Mul(f float64) Scale { return Scale{s.Width * f, s.Height * f} }
func (s Scale) Div(f float64) Scale { return Scale{s.Width / f, s.Height / f} }

// Max returns the per-axis maximum of s and o.
func (s Scale) Max(o Scale) Scale {
	return Scale{math.Max(s.Width, o.Width), math.Max(s.Height, o.Height)}
}

func (s Scale) Hash(h *Hasher) {
	h.WriteFloat(s.Width)
	h.WriteFloat(s.Height)
}

// AABB is an axis-aligned bounding box: a top-left position (with z) and a
// bottom-right corner, in physical pixels once layout has run.
type AABB struct {
	Pos         Pos
	BottomRight Point
}

// NewAABB creates a box from a top-left corner and a size.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{Pos: Pos{X: x, Y: y}, BottomRight: Point{X: x + w, Y: y + h}}
}

func (a AABB) Width() float64  { return a.BottomRight.X - a.Pos.X }
func (a AABB) Height() float64 { return a.BottomRight.Y - a.Pos.Y }

func (a AABB) Size() Scale { return Scale{a.Width(), a.Height()} }

// IsUnder reports whether p falls inside the box. The right and bottom
// edges are exclusive so adjacent boxes don't both claim a point.
func (a AABB) IsUnder(p Point) bool {
	return p.X >= a.Pos.X && p.X < a.BottomRight.X &&
		p.Y >= a.Pos.Y && p.Y < a.BottomRight.Y
}

// Translate moves the box by (dx, dy).
func (a AABB) Translate(dx, dy float64) AABB {
	a.Pos.X += dx
	a.Pos.Y += dy
	a.BottomRight.X += dx
	a.BottomRight.Y += dy
	return a
}

// SetScale resizes the box in place around its top-left corner.
func (a AABB) SetScale(w, h float64) AABB {
	a.BottomRight.X = a.Pos.X + w
	a.BottomRight.Y = a.Pos.Y + h
	return a
}

// Mul scales both corners by the window scale factor.
func (a AABB) Mul(f float64) AABB {
	a.Pos = a.Pos.Mul(f)
	a.BottomRight = a.BottomRight.Mul(f)
	return a
}

// Round snaps both corners to whole pixels.
func (a AABB) Round() AABB {
	a.Pos.X = math.Round(a.Pos.X)
	a.Pos.Y = math.Round(a.Pos.Y)
	a.BottomRight.X = math.Round(a.BottomRight.X)
	a.BottomRight.Y = math.Round(a.BottomRight.Y)
	return a
}

// ToOrigin returns the box translated to (0, 0), keeping its size and z.
func (a AABB) ToOrigin() AABB {
	w, h := a.Width(), a.Height()
	return AABB{Pos: Pos{Z: a.Pos.Z}, BottomRight: Point{X: w, Y: h}}
}

// Intersects reports whether the two boxes overlap.
func (a AABB) Intersects(b AABB) bool {
	return a.Pos.X < b.BottomRight.X && b.Pos.X < a.BottomRight.X &&
		a.Pos.Y < b.BottomRight.Y && b.Pos.Y < a.BottomRight.Y
}

// Intersection clamps a to b. If they don't overlap the result is empty.
func (a AABB) Intersection(b AABB) AABB {
	a.Pos.X = math.Max(a.Pos.X, b.Pos.X)
	a.Pos.Y = math.Max(a.Pos.Y, b.Pos.Y)
	a.BottomRight.X = math.Max(a.Pos.X, math.Min(a.BottomRight.X, b.BottomRight.X))
	a.BottomRight.Y = math.Max(a.Pos.Y, math.Min(a.BottomRight.Y, b.BottomRight.Y))
	return a
}

func (a AABB) Hash(h *Hasher) {
	a.Pos.Hash(h)
	a.BottomRight.Hash(h)
}
