package input

// Tracker rebuilds physical button state from a driver's mouse reports, for
// drivers that have no direct "is it down" query. Reports are best effort; a
// missing release leaves the button held until a later report says otherwise.
type Tracker struct {
	held [2]bool
}

// Down marks b as physically held.
func (t *Tracker) Down(b Button) {
	if b == ButtonLeft || b == ButtonRight {
		t.held[b] = true
	}
}

// Up marks b as released.
func (t *Tracker) Up(b Button) {
	if b == ButtonLeft || b == ButtonRight {
		t.held[b] = false
	}
}

// Observe replaces the whole button mask, for reports that carry it.
func (t *Tracker) Observe(left, right bool) {
	t.held[ButtonLeft] = left
	t.held[ButtonRight] = right
}

func (t *Tracker) Held(b Button) bool {
	if b != ButtonLeft && b != ButtonRight {
		return false
	}
	return t.held[b]
}
