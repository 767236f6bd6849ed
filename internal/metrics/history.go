package metrics

// History keeps the most recent censuses, oldest first.
type History struct {
	capacity int
	entries  []Census
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{capacity: capacity, entries: make([]Census, 0, capacity)}
}

func (h *History) Add(c Census) {
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, c)
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Entries() []Census { return h.entries }

// Last returns the newest census; ok is false when empty.
func (h *History) Last() (Census, bool) {
	if len(h.entries) == 0 {
		return Census{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) Reset() { h.entries = h.entries[:0] }

func (h *History) Trees() []float64 {
	return h.series(func(c Census) int { return c.Trees })
}

func (h *History) Burning() []float64 {
	return h.series(func(c Census) int { return c.Burning })
}

func (h *History) series(f func(Census) int) []float64 {
	out := make([]float64, len(h.entries))
	for i, c := range h.entries {
		out[i] = float64(f(c))
	}
	return out
}
