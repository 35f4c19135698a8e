package lumen

// FocusTree tracks focus contexts and their parent relationships. It is
// rebuilt on every view phase.
type FocusTree struct {
	// parents maps node id -> nearest ancestor focus context.
	parents map[uint64]uint64
	// priorities maps node id -> effective priority (own + inherited).
	priorities map[uint64]int
}

func NewFocusTree() *FocusTree {
	return &FocusTree{
		parents:    map[uint64]uint64{},
		priorities: map[uint64]int{},
	}
}

// Register records a node during the view walk. Priority is inherited from
// the parent context, plus the node's own.
func (t *FocusTree) Register(id, parentID uint64, priority int) {
	t.parents[id] = parentID
	t.priorities[id] = priority + t.priorities[parentID]
}

func (t *FocusTree) Contains(id uint64) bool {
	_, ok := t.parents[id]
	return ok
}

func (t *FocusTree) Priority(id uint64) int {
	return t.priorities[id]
}

// IsAncestorOf reports whether ancestor lies on descendant's parent chain
// (a node is its own ancestor).
func (t *FocusTree) IsAncestorOf(ancestor, descendant uint64) bool {
	current := descendant
	for {
		if current == ancestor {
			return true
		}
		parent, ok := t.parents[current]
		if !ok || parent == current {
			return false
		}
		current = parent
	}
}

// PathTo returns the focus-context path from the root to id, root first.
func (t *FocusTree) PathTo(id uint64) []uint64 {
	var path []uint64
	current := id
	for {
		path = append(path, current)
		parent, ok := t.parents[current]
		// A parent outside the tree is a plain node, not a context.
		if !ok || parent == current || parent == 0 || !t.Contains(parent) {
			break
		}
		current = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FocusState is the complete focus bookkeeping: the context tree, the
// active node, and the cached root-to-leaf stack.
type FocusState struct {
	Tree *FocusTree

	active             uint64
	activeFocusContext uint64
	focusFromNewNode   uint64
	focusFromEvent     uint64
	stack              []uint64
}

func NewFocusState() *FocusState {
	return &FocusState{Tree: NewFocusTree()}
}

// Active returns the currently focused node id.
func (s *FocusState) Active() uint64 { return s.active }

// Stack returns the focus stack, root first.
func (s *FocusState) Stack() []uint64 { return s.stack }

// FocusNewNode requests focus for a node that appeared this frame.
func (s *FocusState) FocusNewNode(id uint64) {
	s.focusFromNewNode = id
}

// SetActive sets the active focus from an event dispatch. When id is 0 the
// focus falls back to the most specific registered context on the event
// stack; explicit ids stick even when unregistered.
func (s *FocusState) SetActive(id uint64, eventStack []uint64, rootID uint64) {
	if id != 0 && s.Tree.Contains(id) {
		s.stack = s.Tree.PathTo(id)
		s.active = id
		s.focusFromEvent = id
		return
	}
	if len(eventStack) == 0 {
		eventStack = []uint64{rootID}
	}
	base := s.MostSpecificFocusNode(eventStack)
	stack := s.Tree.PathTo(base)
	if id != 0 {
		stack = append(stack, id)
		s.stack = stack
		s.active = id
		s.focusFromEvent = id
		return
	}
	if len(stack) == 0 {
		stack = append(stack, rootID)
	}
	s.active = stack[len(stack)-1]
	s.stack = stack
	s.focusFromEvent = 0
}

// TrySetActiveContext moves the active focus context to newNode if allowed:
// the new context's priority must be at least the current one's, or the
// current context must be an ancestor of the new one.
func (s *FocusState) TrySetActiveContext(newNode uint64) {
	current := s.activeFocusContext
	if current == 0 {
		s.activeFocusContext = newNode
		return
	}
	if newNode == current {
		return
	}
	allow := s.Tree.Priority(newNode) >= s.Tree.Priority(current) ||
		s.Tree.IsAncestorOf(current, newNode)
	if allow {
		s.activeFocusContext = newNode
	}
}

// InheritActive carries focus across frames. Precedence: a new node that
// requested focus, then a surviving event focus, then a changed active
// context, then the previous state.
func (s *FocusState) InheritActive(old *FocusState, allNewNodes map[uint64]bool, rootID uint64) {
	switch {
	case s.focusFromNewNode != 0:
		s.active = s.focusFromNewNode
		s.stack = s.Tree.PathTo(s.focusFromNewNode)
	case old.focusFromEvent != 0 && allNewNodes[old.focusFromEvent]:
		if s.inheritActive(old, allNewNodes, rootID) {
			s.focusFromEvent = 0
		} else {
			s.focusFromEvent = s.active
		}
	case s.activeFocusContext != 0 &&
		(s.activeFocusContext != old.activeFocusContext || !allNewNodes[old.active]):
		s.active = s.activeFocusContext
		s.stack = s.Tree.PathTo(s.activeFocusContext)
	default:
		s.inheritActive(old, allNewNodes, rootID)
	}
}

// inheritActive copies the old stack, trims nodes that no longer exist, and
// reports whether the active node had to change.
func (s *FocusState) inheritActive(old *FocusState, allNewNodes map[uint64]bool, rootID uint64) bool {
	s.stack = append([]uint64(nil), old.stack...)
	s.active = old.active
	remove := 0
	for i := len(s.stack) - 1; i >= 0; i-- {
		if !allNewNodes[s.stack[i]] {
			remove++
		}
	}
	s.stack = s.stack[:len(s.stack)-remove]
	if len(s.stack) == 0 {
		s.stack = []uint64{rootID}
	}
	if !allNewNodes[s.active] {
		s.active = s.stack[len(s.stack)-1]
		return true
	}
	return false
}

// MostSpecificFocusNode finds the deepest node on the event stack that is a
// registered focus context, falling back to the stack's root.
func (s *FocusState) MostSpecificFocusNode(eventStack []uint64) uint64 {
	for i := len(eventStack) - 1; i >= 0; i-- {
		if s.Tree.Contains(eventStack[i]) {
			return eventStack[i]
		}
	}
	return eventStack[0]
}
