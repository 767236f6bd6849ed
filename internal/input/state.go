package input

import "github.com/san-kum/forestfire/internal/forest"

// State is the last known pointer position plus the two button latches.
type State struct {
	x, y  int
	hover bool
	left  bool
	right bool
}

// Move records a pointer-move report.
func (s *State) Move(x, y int) {
	s.x, s.y = x, y
	s.hover = true
}

// Press latches b as held. Press events carry a position too, so they also
// move the pointer.
func (s *State) Press(b Button, x, y int) {
	s.Move(x, y)
	switch b {
	case ButtonLeft:
		s.left = true
	case ButtonRight:
		s.right = true
	}
}

// Refresh re-polls latched buttons and clears those no longer held. Unlatched
// buttons are never set by a poll, only by Press.
func (s *State) Refresh(p Poller) {
	if p == nil {
		return
	}
	if s.left {
		s.left = p.Held(ButtonLeft)
	}
	if s.right {
		s.right = p.Held(ButtonRight)
	}
}

func (s *State) Latched(b Button) bool {
	switch b {
	case ButtonLeft:
		return s.left
	case ButtonRight:
		return s.right
	}
	return false
}

// Pointer returns the last pointer position; ok is false until the first move.
func (s *State) Pointer() (x, y int, ok bool) {
	return s.x, s.y, s.hover
}

// Snapshot freezes the state for one sweep.
func (s *State) Snapshot() forest.Interaction {
	return forest.Interaction{
		X:     s.x,
		Y:     s.y,
		Hover: s.hover,
		Left:  s.left,
		Right: s.right,
	}
}
