package chart

// Phase is the lifecycle position of a selection.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Committed
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	default:
		return "idle"
	}
}

// Selection is the marquee state machine. P is a data point for curve
// charts and a cell for grid charts. Corners are kept as given; readers
// normalize.
type Selection[P any] struct {
	phase   Phase
	origin  P
	current P
}

// Begin anchors a new selection at p. A drag that never ended, or a
// committed selection, is replaced.
func (s *Selection[P]) Begin(p P) {
	s.phase = Dragging
	s.origin = p
	s.current = p
}

// Update moves the free corner. It reports false when no drag is active.
func (s *Selection[P]) Update(p P) bool {
	if s.phase != Dragging {
		return false
	}
	s.current = p
	return true
}

// End commits the active drag and keeps the rectangle visible.
func (s *Selection[P]) End() bool {
	if s.phase != Dragging {
		return false
	}
	s.phase = Committed
	return true
}

// Commit installs a committed selection directly, as on restore.
func (s *Selection[P]) Commit(a, b P) {
	s.phase = Committed
	s.origin = a
	s.current = b
}

func (s *Selection[P]) Clear() {
	*s = Selection[P]{}
}

func (s Selection[P]) Phase() Phase { return s.phase }

// Corners returns the anchor and free corner. ok is false while idle.
func (s Selection[P]) Corners() (origin, current P, ok bool) {
	return s.origin, s.current, s.phase != Idle
}
