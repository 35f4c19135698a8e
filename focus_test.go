package lumen

import "testing"

func TestFocusTreePriorityInheritance(t *testing.T) {
	tree := NewFocusTree()
	tree.Register(2, 1, 0)
	tree.Register(3, 2, 5)
	tree.Register(4, 3, 2)

	if got := tree.Priority(3); got != 5 {
		t.Errorf("priority should be own plus parent, got %d", got)
	}
	if got := tree.Priority(4); got != 7 {
		t.Errorf("nested priority should accumulate to 7, got %d", got)
	}
	if !tree.IsAncestorOf(2, 4) {
		t.Error("2 should be an ancestor of 4")
	}
	if !tree.IsAncestorOf(4, 4) {
		t.Error("a node is its own ancestor")
	}
	if tree.IsAncestorOf(4, 2) {
		t.Error("4 should not be an ancestor of 2")
	}
}

func TestFocusTreePathTo(t *testing.T) {
	tree := NewFocusTree()
	tree.Register(2, 1, 0)
	tree.Register(3, 2, 0)

	path := tree.PathTo(3)
	want := []uint64{2, 3}
	if len(path) != len(want) {
		t.Fatalf("path should have %d entries, got %v", len(want), path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] should be %d, got %d", i, want[i], path[i])
		}
	}
}

func TestFocusStateSetActive(t *testing.T) {
	s := NewFocusState()
	s.Tree.Register(2, 1, 0)
	s.Tree.Register(3, 2, 0)

	s.SetActive(3, []uint64{1, 2, 3}, 1)
	if s.Active() != 3 {
		t.Errorf("registered id should become active, got %d", s.Active())
	}

	// Blur falls back to the most specific registered context on the stack.
	s.SetActive(0, []uint64{1, 2, 3}, 1)
	if s.Active() != 3 {
		t.Errorf("blur should fall back to the deepest context, got %d", s.Active())
	}

	// An unregistered explicit id still sticks, appended to the context
	// stack.
	s.SetActive(99, []uint64{1, 2}, 1)
	if s.Active() != 99 {
		t.Errorf("explicit unregistered id should stick, got %d", s.Active())
	}
	stack := s.Stack()
	if stack[len(stack)-1] != 99 {
		t.Errorf("stack should end at the explicit id, got %v", stack)
	}
}

func TestTrySetActiveContextPriority(t *testing.T) {
	s := NewFocusState()
	s.Tree.Register(2, 1, 5)
	s.Tree.Register(3, 1, 1)
	s.Tree.Register(4, 2, 0)

	s.TrySetActiveContext(2)
	// A lower-priority sibling cannot steal the context.
	s.TrySetActiveContext(3)
	if s.activeFocusContext != 2 {
		t.Errorf("low-priority context should be refused, got %d", s.activeFocusContext)
	}
	// A descendant of the holder may take it regardless of priority.
	s.TrySetActiveContext(4)
	if s.activeFocusContext != 4 {
		t.Errorf("descendant should take the context, got %d", s.activeFocusContext)
	}
}

func TestInheritActiveTrimsDeadNodes(t *testing.T) {
	old := NewFocusState()
	old.Tree.Register(2, 1, 0)
	old.Tree.Register(3, 2, 0)
	old.SetActive(3, []uint64{1, 2, 3}, 1)

	// Node 3 disappeared this frame.
	next := NewFocusState()
	next.Tree.Register(2, 1, 0)
	next.InheritActive(old, map[uint64]bool{1: true, 2: true}, 1)

	if next.Active() != 2 {
		t.Errorf("focus should fall back to the surviving ancestor, got %d", next.Active())
	}
}

func TestInheritActivePrefersNewNodeRequest(t *testing.T) {
	old := NewFocusState()
	old.Tree.Register(2, 1, 0)
	old.SetActive(2, []uint64{1, 2}, 1)

	next := NewFocusState()
	next.Tree.Register(2, 1, 0)
	next.Tree.Register(5, 1, 0)
	next.FocusNewNode(5)
	next.InheritActive(old, map[uint64]bool{1: true, 2: true, 5: true}, 1)

	if next.Active() != 5 {
		t.Errorf("a new node's focus request should win, got %d", next.Active())
	}
}

// focusable claims focus on click; blurrer clears it.
type focusable struct {
	BaseComponent
	priority int
	gained   int
	lost     int
}

func (f *focusable) FocusPriority() int            { return f.priority }
func (f *focusable) OnClick(e *Event[Click])       { e.Focus() }
func (f *focusable) OnFocus(e *Event[FocusGained]) { f.gained++ }
func (f *focusable) OnBlur(e *Event[Blur])         { f.lost++ }

type focusPair struct {
	BaseComponent
	high, low *focusable
}

func (p *focusPair) View() *Node {
	return NewNode(&box{}).Push(
		NewNode(p.high).Width(100).Height(100),
		NewNode(p.low).Width(100).Height(100),
	)
}

func TestFocusChangeRespectsPriority(t *testing.T) {
	high := &focusable{priority: 5}
	low := &focusable{priority: 1}
	u, _ := newTestUI(t, func() Component { return &focusPair{high: high, low: low} })

	clickAt(u, 50, 50)
	if high.gained != 1 {
		t.Fatalf("clicking the high-priority node should focus it, got %d", high.gained)
	}

	var lowID uint64
	u.root.Visit(func(n *Node) bool {
		if n.Component == Component(low) {
			lowID = n.ID
		}
		return true
	})

	// A direct focus request from a lower-priority node is refused while
	// the holder keeps focus.
	u.applyFocusChange(lowID, u.root.PathTo(lowID))
	if low.gained != 0 {
		t.Errorf("low-priority node should be refused focus, got %d gains", low.gained)
	}
	if high.lost != 0 {
		t.Errorf("refused focus change should not blur the holder, got %d", high.lost)
	}

	// Blur always succeeds, and afterwards the low node may take focus.
	u.applyFocusChange(0, nil)
	if high.lost != 1 {
		t.Fatalf("blur should always land, got %d", high.lost)
	}
	u.applyFocusChange(lowID, u.root.PathTo(lowID))
	if low.gained != 1 {
		t.Errorf("low node should focus once the holder blurred, got %d", low.gained)
	}
}

func TestClickOutsideBlurs(t *testing.T) {
	high := &focusable{priority: 5}
	low := &focusable{priority: 1}
	u, _ := newTestUI(t, func() Component { return &focusPair{high: high, low: low} })

	clickAt(u, 50, 50)
	if u.cache.Focus == 0 {
		t.Fatal("click should have focused the high node")
	}

	// Clicking empty space outside the focused node blurs it.
	clickAt(u, 250, 250)
	if high.lost != 1 {
		t.Errorf("clicking outside should blur the holder, got %d blurs", high.lost)
	}
	if u.cache.Focus != 0 {
		t.Errorf("focus should be cleared, got %d", u.cache.Focus)
	}
}

// keyTarget records key events and claims focus on click.
type keyTarget struct {
	recorder
}

func (k *keyTarget) OnClick(e *Event[Click]) { e.Focus() }

type keyPairRoot struct {
	BaseComponent
	a, b *keyTarget
}

func (p *keyPairRoot) View() *Node {
	return NewNode(&box{}).Push(
		NewNode(p.a).Width(100).Height(100),
		NewNode(p.b).Width(100).Height(100),
	)
}

func TestKeyEventsRouteToFocusedNode(t *testing.T) {
	var aLog, bLog []string
	a := &keyTarget{recorder{log: &aLog}}
	b := &keyTarget{recorder{log: &bLog}}
	u, _ := newTestUI(t, func() Component { return &keyPairRoot{a: a, b: b} })

	// With nothing focused, keys route to the root path and miss both.
	u.HandleInput(PressInput(KeyButton(KeyA)))
	u.HandleInput(ReleaseInput(KeyButton(KeyA)))
	if len(aLog) != 0 || len(bLog) != 0 {
		t.Fatalf("unfocused keys should miss leaf nodes, got %v / %v", aLog, bLog)
	}

	clickAt(u, 50, 50)
	aLog, bLog = nil, nil

	u.HandleInput(PressInput(KeyButton(KeyA)))
	u.HandleInput(ReleaseInput(KeyButton(KeyA)))
	if !eventsEqual(aLog, []string{"keydown", "keyup", "keypress"}) {
		t.Errorf("keys should land on the focused node, got %v", aLog)
	}
	if len(bLog) != 0 {
		t.Errorf("unfocused sibling should see no keys, got %v", bLog)
	}
}

// arrowTarget records which keycodes its key events carry.
type arrowTarget struct {
	BaseComponent
	downs, ups []Key
}

func (a *arrowTarget) OnClick(e *Event[Click]) { e.Focus() }
func (a *arrowTarget) OnKeyDown(e *Event[KeyDown]) {
	a.downs = append(a.downs, e.Input.Key)
}
func (a *arrowTarget) OnKeyUp(e *Event[KeyUp]) {
	a.ups = append(a.ups, e.Input.Key)
}

type arrowRoot struct {
	BaseComponent
	target *arrowTarget
}

func (r *arrowRoot) View() *Node {
	return NewNode(&box{}).Push(NewNode(r.target).Width(100).Height(100))
}

func TestArrowKeysCarryTheirKeycodes(t *testing.T) {
	target := &arrowTarget{}
	u, _ := newTestUI(t, func() Component { return &arrowRoot{target: target} })

	clickAt(u, 50, 50)

	u.HandleInput(PressInput(KeyButton(KeyArrowDown)))
	u.HandleInput(ReleaseInput(KeyButton(KeyArrowDown)))
	u.HandleInput(PressInput(KeyButton(KeyArrowUp)))
	u.HandleInput(ReleaseInput(KeyButton(KeyArrowUp)))

	wantDowns := []Key{KeyArrowDown, KeyArrowUp}
	if len(target.downs) != 2 || target.downs[0] != wantDowns[0] || target.downs[1] != wantDowns[1] {
		t.Errorf("key-down events should carry the arrow keycodes %v, got %v", wantDowns, target.downs)
	}
	if len(target.ups) != 2 || target.ups[0] != KeyArrowDown || target.ups[1] != KeyArrowUp {
		t.Errorf("key-up events should carry the arrow keycodes, got %v", target.ups)
	}
}
