package forest

const (
	DefaultWidth  = 140
	DefaultHeight = 50
)

// Source supplies uniform draws in [0, 1).
type Source interface {
	Uniform01() float64
}

// Grid holds the current and next generation of the world.
type Grid struct {
	w, h  int
	cur   []Cell
	nxt   []Cell
	rules Rules
	src   Source
	gen   uint64
}

// NewGrid allocates an all-empty w×h world.
func NewGrid(w, h int, rules Rules, src Source) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{
		w:     w,
		h:     h,
		cur:   make([]Cell, w*h),
		nxt:   make([]Cell, w*h),
		rules: rules,
		src:   src,
	}
}

func (g *Grid) Width() int         { return g.w }
func (g *Grid) Height() int        { return g.h }
func (g *Grid) Rules() Rules       { return g.rules }
func (g *Grid) Generation() uint64 { return g.gen }

// Cells exposes the current generation in row-major order. Callers must not
// retain it across Step.
func (g *Grid) Cells() []Cell { return g.cur }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// At returns the current state at (x, y); off-grid locations read as Empty.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cur[y*g.w+x]
}

// Set writes c into the current generation. Off-grid writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if g.InBounds(x, y) && c.Valid() {
		g.cur[y*g.w+x] = c
	}
}

// Neighbors summarises the 4-neighbourhood of (x, y) in the current
// generation. The world does not wrap.
func (g *Grid) Neighbors(x, y int) Neighborhood {
	var n Neighborhood
	n.Observe(g.At(x-1, y))
	n.Observe(g.At(x+1, y))
	n.Observe(g.At(x, y-1))
	n.Observe(g.At(x, y+1))
	return n
}

// Step sweeps every cell through the rules and commits the result. Exactly one
// draw is consumed per cell, in row-major order.
func (g *Grid) Step(in Interaction) {
	for y := 0; y < g.h; y++ {
		row := y * g.w
		for x := 0; x < g.w; x++ {
			draw := g.src.Uniform01()
			g.nxt[row+x] = g.rules.Next(g.cur[row+x], g.Neighbors(x, y), draw, in.ForcingAt(x, y))
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
	g.gen++
}

// Plant turns an empty cell into a sapling immediately. It reports whether the
// cell changed.
func (g *Grid) Plant(x, y int) bool {
	if !g.InBounds(x, y) || g.At(x, y) != Empty {
		return false
	}
	g.cur[y*g.w+x] = Sapling1
	return true
}

// Ignite sets a tree smouldering immediately. It reports whether the cell
// changed.
func (g *Grid) Ignite(x, y int) bool {
	if !g.InBounds(x, y) || g.At(x, y) != Tree {
		return false
	}
	g.cur[y*g.w+x] = Smoldering
	return true
}

// Reset clears the world back to generation zero.
func (g *Grid) Reset() {
	for i := range g.cur {
		g.cur[i] = Empty
		g.nxt[i] = Empty
	}
	g.gen = 0
}
