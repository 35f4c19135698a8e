package lumen

import "testing"

// box is a bare container used to build layout trees.
type box struct{ BaseComponent }

func boxNode() *Node { return NewNode(&box{}) }

// scrollBox scrolls on whichever axes have offsets.
type scrollBox struct {
	BaseComponent
	pos ScrollPosition
}

func (s *scrollBox) ScrollPosition() *ScrollPosition { return &s.pos }

func scrollYNode() *Node {
	y := 0.0
	return NewNode(&scrollBox{pos: ScrollPosition{Y: &y}})
}

func sizeOf(n *Node) (float64, float64) {
	return n.LayoutResult.Size.Width.Px(), n.LayoutResult.Size.Height.Px()
}

func posOf(n *Node) (float64, float64) {
	return n.LayoutResult.Position.Left.Px(), n.LayoutResult.Position.Top.Px()
}

func TestLayoutEmptyRoot(t *testing.T) {
	root := boxNode().Width(300).Height(300)
	root.CalculateLayout(NewCaches(), 1)

	if w, h := sizeOf(root); w != 300 || h != 300 {
		t.Errorf("root size should be 300x300, got %vx%v", w, h)
	}
	if x, y := posOf(root); x != 0 || y != 0 {
		t.Errorf("root position should be (0,0), got (%v,%v)", x, y)
	}
}

func TestLayoutRowWrap(t *testing.T) {
	root := boxNode().Width(300).Height(300).Wrapping().Push(
		boxNode().Width(150).Height(150),
		boxNode().Width(100).Height(100),
		boxNode().Width(200).Height(200),
	)
	root.CalculateLayout(NewCaches(), 1)

	if w, h := sizeOf(root); w != 300 || h != 300 {
		t.Errorf("parent size should stay 300x300, got %vx%v", w, h)
	}
	want := [][2]float64{{0, 0}, {150, 0}, {0, 150}}
	for i, c := range root.Children {
		x, y := posOf(c)
		if x != want[i][0] || y != want[i][1] {
			t.Errorf("child %d position should be (%v,%v), got (%v,%v)",
				i, want[i][0], want[i][1], x, y)
		}
	}
}

func TestLayoutFlexGrow(t *testing.T) {
	root := boxNode().Width(300).Height(400).Col().
		AxisAlign(Stretch).CrossAlign(Stretch).Push(
		boxNode().Width(100).Height(50),
		boxNode().Grow(1),
		boxNode().Grow(2),
		boxNode().Grow(1),
		boxNode().Width(90).Height(40).Margin(5, 5, 5, 5),
	)
	root.CalculateLayout(NewCaches(), 1)

	wantH := []float64{50, 75, 150, 75, 40}
	for i, c := range root.Children {
		_, h := sizeOf(c)
		if h != wantH[i] {
			t.Errorf("child %d height should be %v, got %v", i, wantH[i], h)
		}
	}
	for _, i := range []int{1, 2, 3} {
		w, _ := sizeOf(root.Children[i])
		if w != 300 {
			t.Errorf("grow child %d should span full width 300, got %v", i, w)
		}
	}
	if w, _ := sizeOf(root.Children[4]); w != 90 {
		t.Errorf("last child width should be 90, got %v", w)
	}
	// Margin offsets the last child past the grown children.
	if x, y := posOf(root.Children[4]); x != 5 || y != 355 {
		t.Errorf("last child position should be (5,355), got (%v,%v)", x, y)
	}
}

func TestLayoutPercentOfAutoSibling(t *testing.T) {
	parent := boxNode().Col().Push(
		boxNode().Width(50).Height(100),
		boxNode().WidthPct(100).Height(50),
	)
	root := boxNode().Width(300).Height(300).Push(parent)
	root.CalculateLayout(NewCaches(), 1)

	if w, h := sizeOf(parent); w != 50 || h != 150 {
		t.Errorf("parent should resolve to 50x150, got %vx%v", w, h)
	}
	if w, h := sizeOf(parent.Children[1]); w != 50 || h != 50 {
		t.Errorf("percent child should resolve to 50x50, got %vx%v", w, h)
	}
}

func TestLayoutScrollInnerScale(t *testing.T) {
	root := scrollYNode().Width(300).Height(300).Col().Push(
		boxNode().Height(150),
		boxNode().Height(100),
		boxNode().Height(200),
	)
	root.CalculateLayout(NewCaches(), 1)

	if w, h := sizeOf(root); w != 300 || h != 300 {
		t.Errorf("scroll parent size should be 300x300, got %vx%v", w, h)
	}
	if root.InnerScale == nil {
		t.Fatal("scroll parent should have an inner scale")
	}
	if root.InnerScale.Width != 300 || root.InnerScale.Height != 450 {
		t.Errorf("inner scale should be {300,450}, got {%v,%v}",
			root.InnerScale.Width, root.InnerScale.Height)
	}
	wantH := []float64{150, 100, 200}
	for i, c := range root.Children {
		if _, h := sizeOf(c); h != wantH[i] {
			t.Errorf("child %d should keep height %v, got %v", i, wantH[i], h)
		}
	}
}

func TestLayoutIdempotent(t *testing.T) {
	root := boxNode().Width(300).Height(400).Col().
		AxisAlign(Stretch).CrossAlign(Stretch).Push(
		boxNode().Width(100).Height(50),
		boxNode().Grow(1),
		boxNode().Grow(2).Push(
			boxNode().Width(40).Height(20),
			boxNode().HeightPct(50),
		),
		boxNode().Width(90).Height(40).Margin(5, 5, 5, 5),
	)
	caches := NewCaches()
	root.CalculateLayout(caches, 1)

	type snap struct {
		w, h, x, y float64
	}
	var first []snap
	root.Visit(func(n *Node) bool {
		w, h := sizeOf(n)
		x, y := posOf(n)
		first = append(first, snap{w, h, x, y})
		return true
	})

	root.CalculateLayout(caches, 1)
	i := 0
	root.Visit(func(n *Node) bool {
		w, h := sizeOf(n)
		x, y := posOf(n)
		got := snap{w, h, x, y}
		if got != first[i] {
			t.Errorf("node %d changed between layouts: first %+v, second %+v",
				i, first[i], got)
		}
		i++
		return true
	})
}

func TestLayoutMinMaxClamp(t *testing.T) {
	clamped := boxNode().MaxSize(Px(100), Px(100)).Push(
		boxNode().Width(150).Height(150),
	)
	grown := boxNode().MinSize(Px(200), Px(200)).Push(
		boxNode().Width(50).Height(50),
	)
	root := boxNode().Width(400).Height(400).Col().Push(clamped, grown)
	root.CalculateLayout(NewCaches(), 1)

	if w, h := sizeOf(clamped); w != 100 || h != 100 {
		t.Errorf("max size should clamp to 100x100, got %vx%v", w, h)
	}
	if w, h := sizeOf(grown); w != 200 || h != 200 {
		t.Errorf("min size should grow to 200x200, got %vx%v", w, h)
	}
}

func TestLayoutEmptyAutoFallsBackToMinDimension(t *testing.T) {
	child := boxNode()
	root := boxNode().Width(300).Height(300).Push(child)
	root.CalculateLayout(NewCaches(), 1)

	if w, h := sizeOf(child); w != 10 || h != 10 {
		t.Errorf("empty auto node should fall back to 10x10, got %vx%v", w, h)
	}
}

func TestLayoutAbsolutePosition(t *testing.T) {
	abs := boxNode().Width(50).Height(50).Absolute(Edges{Top: Px(20), Left: Px(30)})
	flow := boxNode().Width(100).Height(100)
	root := boxNode().Width(300).Height(300).Push(abs, flow)
	root.CalculateLayout(NewCaches(), 1)

	if x, y := posOf(abs); x != 30 || y != 20 {
		t.Errorf("absolute child should sit at (30,20), got (%v,%v)", x, y)
	}
	// Absolute children take no room in the flow.
	if x, y := posOf(flow); x != 0 || y != 0 {
		t.Errorf("flow child should sit at (0,0), got (%v,%v)", x, y)
	}
}

func TestLayoutEndAlignment(t *testing.T) {
	root := boxNode().Width(300).Height(100).AxisAlign(End).Push(
		boxNode().Width(80).Height(50),
		boxNode().Width(120).Height(50),
	)
	root.CalculateLayout(NewCaches(), 1)
	root.SetAABBs(Pos{}, 0, Point{}, AABB{BottomRight: Point{X: 300, Y: 100}}, 1)

	// End-aligned rows stack from the right edge.
	if x := root.Children[1].AABB.Pos.X; x != 180 {
		t.Errorf("last child should end at the right edge (x=180), got %v", x)
	}
	if x := root.Children[0].AABB.Pos.X; x != 100 {
		t.Errorf("first child should sit left of the second (x=100), got %v", x)
	}
}

// anchored reports a focal point for full-control parents.
type anchored struct {
	BaseComponent
	at Point
}

func (a *anchored) Focus() *Point { return &a.at }

// positioner takes over its children's boxes after layout.
type positioner struct {
	BaseComponent
	got []ChildConstraint
}

func (p *positioner) FullControl() bool { return true }

func (p *positioner) SetAABB(aabb *AABB, parentAABB AABB, children []ChildConstraint, frame AABB, scaleFactor float64) {
	p.got = children
}

func TestSetAABBsHandsFocusToFullControlParent(t *testing.T) {
	parent := &positioner{}
	root := NewNode(parent).Width(200).Height(200).Push(
		NewNode(&anchored{at: Point{X: 30, Y: 40}}).Width(50).Height(50),
		boxNode().Width(50).Height(50),
	)
	root.CalculateLayout(NewCaches(), 1)
	root.SetAABBs(Pos{}, 0, Point{}, AABB{BottomRight: Point{X: 200, Y: 200}}, 1)

	if len(parent.got) != 2 {
		t.Fatalf("the parent should see 2 child constraints, got %d", len(parent.got))
	}
	f := parent.got[0].Focus
	if f == nil || f.X != 30 || f.Y != 40 {
		t.Errorf("the first child's focal point should be (30,40), got %v", f)
	}
	if parent.got[1].Focus != nil {
		t.Errorf("a child without a focal point should pass nil, got %v", parent.got[1].Focus)
	}
	if parent.got[0].AABB == nil || parent.got[0].AABB.Width() != 50 {
		t.Errorf("constraints should carry the child's box, got %+v", parent.got[0].AABB)
	}
}

func TestSetAABBsAppliesScaleAndScroll(t *testing.T) {
	y := 40.0
	inner := NewNode(&scrollBox{pos: ScrollPosition{Y: &y}}).
		Width(100).Height(100).Col().Push(
		boxNode().Height(80),
		boxNode().Height(80),
	)
	root := boxNode().Width(300).Height(300).Push(inner)
	root.CalculateLayout(NewCaches(), 2)
	root.SetAABBs(Pos{}, 0, Point{}, AABB{BottomRight: Point{X: 600, Y: 600}}, 2)

	if w := inner.AABB.Width(); w != 200 {
		t.Errorf("scale factor 2 should double the box to 200, got %v", w)
	}
	// Scroll offset shifts children up in physical pixels.
	if got := inner.Children[0].AABB.Pos.Y; got != -40 {
		t.Errorf("first child should be scrolled to y=-40, got %v", got)
	}
	if got := inner.Children[1].AABB.Pos.Y; got != 120 {
		t.Errorf("second child should sit at y=120, got %v", got)
	}
}
