package forest

// Interaction is the pointer state a sweep reads. Hover is false until the
// pointer has been seen over the surface at least once.
type Interaction struct {
	X, Y  int
	Hover bool
	Left  bool
	Right bool
}

// Over reports whether the pointer is over (x, y).
func (in Interaction) Over(x, y int) bool {
	return in.Hover && in.X == x && in.Y == y
}

// ForcingAt filters the interaction down to the cell at (x, y).
func (in Interaction) ForcingAt(x, y int) Forcing {
	if !in.Over(x, y) {
		return Forcing{}
	}
	return Forcing{Plant: in.Left, Ignite: in.Right}
}
