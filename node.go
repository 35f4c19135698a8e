package lumen

import (
	"reflect"
	"sort"
)

// Node is one cell of the component tree: a Component, its layout spec, its
// resolved geometry, its children, and the renderables cached from the last
// render pass.
type Node struct {
	Component    Component
	Layout       Layout
	LayoutResult LayoutResult
	AABB         AABB
	InnerScale   *Scale
	Children     []*Node

	// ID is the structural identity hash; stable across frames for a
	// node at the same position with the same component type and key.
	ID  uint64
	Key uint64

	propsHash   uint64
	renderHash  uint64
	hasRendered bool
	Renderables []Renderable

	viewed bool
}

// NewNode wraps a component with the default layout spec.
func NewNode(c Component) *Node {
	return &Node{Component: c, Layout: DefaultLayout()}
}

// Push appends child nodes and returns the node for chaining.
func (n *Node) Push(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// WithKey sets the explicit reconciliation key.
func (n *Node) WithKey(k uint64) *Node {
	n.Key = k
	return n
}

// WithLayout replaces the whole layout spec.
func (n *Node) WithLayout(l Layout) *Node {
	n.Layout = l
	return n
}

// Chainable layout modifiers.

func (n *Node) Width(px float64) *Node {
	n.Layout.Size.Width = Px(px)
	return n
}

func (n *Node) Height(px float64) *Node {
	n.Layout.Size.Height = Px(px)
	return n
}

func (n *Node) WidthPct(pct float64) *Node {
	n.Layout.Size.Width = Pct(pct)
	return n
}

func (n *Node) HeightPct(pct float64) *Node {
	n.Layout.Size.Height = Pct(pct)
	return n
}

func (n *Node) SizeOf(w, h Dimension) *Node {
	n.Layout.Size = Size{w, h}
	return n
}

func (n *Node) MinSize(w, h Dimension) *Node {
	n.Layout.MinSize = Size{w, h}
	return n
}

func (n *Node) MaxSize(w, h Dimension) *Node {
	n.Layout.MaxSize = Size{w, h}
	return n
}

func (n *Node) Dir(d Direction) *Node {
	n.Layout.Direction = d
	return n
}

func (n *Node) Col() *Node { return n.Dir(Column) }

func (n *Node) Wrapping() *Node {
	n.Layout.Wrap = true
	return n
}

func (n *Node) Grow(f float64) *Node {
	n.Layout.FlexGrow = f
	return n
}

func (n *Node) AxisAlign(a Alignment) *Node {
	n.Layout.AxisAlignment = a
	return n
}

func (n *Node) CrossAlign(a Alignment) *Node {
	n.Layout.CrossAlignment = a
	return n
}

// Margin sets all four margins in CSS order.
func (n *Node) Margin(top, right, bottom, left float64) *Node {
	n.Layout.Margin = Edges{Top: Px(top), Right: Px(right), Bottom: Px(bottom), Left: Px(left)}
	return n
}

// Pad sets a uniform padding.
func (n *Node) Pad(v float64) *Node {
	n.Layout.Padding = EdgesAll(v)
	return n
}

func (n *Node) Padding(top, right, bottom, left float64) *Node {
	n.Layout.Padding = Edges{Top: Px(top), Right: Px(right), Bottom: Px(bottom), Left: Px(left)}
	return n
}

// Absolute pins the node at an explicit position.
func (n *Node) Absolute(pos Edges) *Node {
	n.Layout.PositionType = Absolute
	n.Layout.Position = pos
	return n
}

func (n *Node) ZIndex(z float64) *Node {
	n.Layout.ZIndex = &z
	return n
}

func (n *Node) ZIncrement(z float64) *Node {
	n.Layout.ZIndexIncrement = z
	return n
}

// DebugLabel names the node in layout traces.
func (n *Node) DebugLabel(s string) *Node {
	n.Layout.Debug = s
	return n
}

func (n *Node) scrollX() *float64 {
	if sp := n.Component.ScrollPosition(); sp != nil {
		return sp.X
	}
	return nil
}

func (n *Node) scrollY() *float64 {
	if sp := n.Component.ScrollPosition(); sp != nil {
		return sp.Y
	}
	return nil
}

func (n *Node) scrollable() bool {
	return n.scrollX() != nil || n.scrollY() != nil
}

func (n *Node) typeTag() string {
	return reflect.TypeOf(n.Component).String()
}

// sameIdentity implements the reconciliation identity rule: matching
// component types and equal (possibly absent) keys.
func (n *Node) sameIdentity(o *Node) bool {
	return n.Key == o.Key && reflect.TypeOf(n.Component) == reflect.TypeOf(o.Component)
}

func childID(parentID uint64, index int, typeTag string, key uint64) uint64 {
	h := NewHasher()
	h.WriteUint64(parentID)
	h.WriteInt(index)
	h.WriteString(typeTag)
	h.WriteUint64(key)
	id := h.Sum()
	if id == 0 {
		id = 1
	}
	return id
}

// View reconciles this node against its previous-frame counterpart: state
// moves across by identity, Init/NewProps fire per the props hash, the
// component's own View output joins the children, and the walk recurses.
// Key registrations and focus registrations are collected into reg.
func (n *Node) View(old *Node, reg *Registrations) {
	if n.viewed {
		return
	}
	n.viewed = true
	if n.ID == 0 {
		n.ID = childID(0, 0, n.typeTag(), n.Key)
	}

	matched := old != nil && n.sameIdentity(old)
	if matched {
		n.Component.ReplaceState(old.Component.TakeState())
	}

	h := NewHasher()
	n.Component.PropsHash(h)
	n.propsHash = h.Sum()

	if !matched {
		n.Component.Init()
	} else if n.propsHash != old.propsHash {
		n.Component.NewProps()
	}

	if v := n.Component.View(); v != nil {
		n.Children = append(n.Children, v)
	}

	if reg != nil {
		reg.Keys = append(reg.Keys, n.Component.KeyRegistrations()...)
	}

	for i, child := range n.Children {
		child.ID = childID(n.ID, i, child.typeTag(), child.Key)
		if reg != nil {
			reg.Focus.Register(child.ID, n.ID, child.Component.FocusPriority())
		}
		var oldChild *Node
		if matched && i < len(old.Children) {
			c := old.Children[i]
			if child.sameIdentity(c) {
				oldChild = c
			}
		}
		child.View(oldChild, reg)
	}
}

// Registrations collects side outputs of the view walk.
type Registrations struct {
	Keys  []KeyRegistration
	Focus *FocusTree
}

func NewRegistrations() *Registrations {
	return &Registrations{Focus: NewFocusTree()}
}

// SetAABBs assigns physical-pixel boxes from layout results, top down.
// Children of scroll containers are translated against the scroll offset;
// full-control components get the final say over their subtree.
func (n *Node) SetAABBs(parentPos Pos, parentZ float64, scrollOffset Point, frame AABB, scaleFactor float64) {
	z := parentZ
	if n.Layout.ZIndex != nil {
		z = *n.Layout.ZIndex
	}
	z += n.Layout.ZIndexIncrement

	x := parentPos.X + n.LayoutResult.Position.Left.Px()*scaleFactor - scrollOffset.X
	y := parentPos.Y + n.LayoutResult.Position.Top.Px()*scaleFactor - scrollOffset.Y
	size := n.LayoutResult.Size.Scale().Mul(scaleFactor)
	n.AABB = NewAABB(x, y, size.Width, size.Height)
	n.AABB.Pos.Z = z

	if n.InnerScale != nil {
		s := n.InnerScale.Mul(scaleFactor)
		n.InnerScale = &s
	}

	childScroll := Point{}
	if sp := n.Component.ScrollPosition(); sp != nil {
		if sp.X != nil {
			childScroll.X = *sp.X
		}
		if sp.Y != nil {
			childScroll.Y = *sp.Y
		}
	}

	childFrame := frame
	if n.scrollable() {
		childFrame = n.Component.FrameBounds(n.AABB, n.InnerScale, scaleFactor)
	}

	for _, c := range n.Children {
		c.SetAABBs(n.AABB.Pos, z, childScroll, childFrame, scaleFactor)
	}

	if n.Component.FullControl() {
		constraints := make([]ChildConstraint, len(n.Children))
		for i, c := range n.Children {
			constraints[i] = ChildConstraint{
				AABB:       &c.AABB,
				InnerScale: c.InnerScale,
				Focus:      c.Component.Focus(),
			}
		}
		parentAABB := AABB{Pos: parentPos}
		n.Component.SetAABB(&n.AABB, parentAABB, constraints, frame, scaleFactor)
	}
}

// RenderAssembly walks bottom-up producing renderables, reusing the cached
// list when the render hash, box and scale are unchanged from the old tree.
// When old is the node itself (render-only redraws re-render the live tree
// in place) the node's own stored hash serves as the baseline. It reports
// whether anything changed, which drives the frame-dirty flag.
func (n *Node) RenderAssembly(caches *Caches, old *Node, scaleFactor float64) bool {
	changed := false

	if old == nil && n.hasRendered {
		old = n
	}
	matched := old != nil && n.sameIdentity(old)

	for i, child := range n.Children {
		var oldChild *Node
		if matched && old != n && i < len(old.Children) && child.sameIdentity(old.Children[i]) {
			oldChild = old.Children[i]
		}
		if child.RenderAssembly(caches, oldChild, scaleFactor) {
			changed = true
		}
	}

	h := NewHasher()
	h.WriteUint64(n.propsHash)
	n.Component.RenderHash(h)
	n.AABB.Hash(h)
	if n.InnerScale != nil {
		n.InnerScale.Hash(h)
	}
	h.WriteFloat(scaleFactor)
	sum := h.Sum()

	if matched && old.hasRendered && old.renderHash == sum {
		n.Renderables = old.Renderables
		n.renderHash = sum
		n.hasRendered = true
		for _, r := range n.Renderables {
			r.Register(caches)
		}
		return changed
	}

	var prev []Renderable
	if matched {
		prev = old.Renderables
	}
	n.Renderables = n.Component.Render(RenderContext{
		AABB:        n.AABB,
		InnerScale:  n.InnerScale,
		Caches:      caches,
		Prev:        prev,
		ScaleFactor: scaleFactor,
	})
	n.renderHash = sum
	n.hasRendered = true
	return true
}

// zSortedChildren returns children in descending z for hit testing, ties
// broken by reverse tree order so later siblings win.
func (n *Node) zSortedChildren() []*Node {
	out := make([]*Node, len(n.Children))
	for i := range n.Children {
		out[i] = n.Children[len(n.Children)-1-i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AABB.Pos.Z > out[j].AABB.Pos.Z
	})
	return out
}

// TargetStack hit-tests p and returns the path from this node down to the
// deepest node claiming the point, or nil when nothing claims it.
func (n *Node) TargetStack(p Point) []*Node {
	if !n.Component.IsMouseMaybeOver(p, n.AABB) {
		return nil
	}
	for _, c := range n.zSortedChildren() {
		if stack := c.TargetStack(p); stack != nil {
			return append([]*Node{n}, stack...)
		}
	}
	if n.Component.IsMouseOver(p, n.AABB) {
		return []*Node{n}
	}
	return nil
}

// PathTo returns the path from this node to the node with the given id,
// inclusive, or nil if the id isn't in the subtree.
func (n *Node) PathTo(id uint64) []*Node {
	if n.ID == id {
		return []*Node{n}
	}
	for _, c := range n.Children {
		if path := c.PathTo(id); path != nil {
			return append([]*Node{n}, path...)
		}
	}
	return nil
}

// FindNode returns the node with the given id, or nil.
func (n *Node) FindNode(id uint64) *Node {
	path := n.PathTo(id)
	if path == nil {
		return nil
	}
	return path[len(path)-1]
}

// RenderEntry pairs a renderable with its node geometry and the chain of
// enclosing scroll frames, for the paint worker.
type RenderEntry struct {
	Renderable Renderable
	AABB       AABB
	Frames     []AABB // outermost first
	Z          float64
}

// CollectRenderables flattens the tree in paint order. Scroll containers
// push their frame bounds onto the clip chain of their descendants.
func (n *Node) CollectRenderables(frames []AABB, scaleFactor float64, out *[]RenderEntry) {
	for _, r := range n.Renderables {
		*out = append(*out, RenderEntry{
			Renderable: r,
			AABB:       n.AABB,
			Frames:     frames,
			Z:          n.AABB.Pos.Z + r.Z(),
		})
	}
	childFrames := frames
	if n.scrollable() {
		f := n.Component.FrameBounds(n.AABB, n.InnerScale, scaleFactor)
		childFrames = make([]AABB, len(frames), len(frames)+1)
		copy(childFrames, frames)
		childFrames = append(childFrames, f)
	}
	for _, c := range n.Children {
		c.CollectRenderables(childFrames, scaleFactor, out)
	}
}

// Visit walks the subtree depth-first.
func (n *Node) Visit(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Visit(fn)
	}
}

// DispatchEvent bubbles e along stack, deepest node first, through hook.
// Each node on the path is visited at most once; bubbling stops when a
// handler claims the event.
func DispatchEvent[T any](e *Event[T], stack []*Node, hook func(Component, *Event[T])) {
	if len(stack) == 0 {
		return
	}
	target := stack[len(stack)-1].ID
	e.Target = &target
	for i := len(stack) - 1; i >= 0 && e.Bubbles; i-- {
		node := stack[i]
		e.CurrentNodeID = node.ID
		e.CurrentAABB = node.AABB
		e.CurrentInnerScale = node.InnerScale
		hook(node.Component, e)
	}
}

// PropagateMessages walks emitted messages up through ancestor Updates,
// starting at the target's parent.
func PropagateMessages(stack []*Node, msgs []Message) {
	for i := len(stack) - 2; i >= 0 && len(msgs) > 0; i-- {
		var next []Message
		for _, m := range msgs {
			next = append(next, stack[i].Component.Update(m)...)
		}
		msgs = next
	}
}
