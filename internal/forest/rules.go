package forest

import "fmt"

const (
	DefaultSaplingProb = 0.000003
	DefaultSpreadProb  = 0.005
	DefaultFireProb    = 0.000025
)

// Rules holds the three transition probabilities.
type Rules struct {
	// SaplingProb is the chance an empty cell with no tree neighbour sprouts.
	SaplingProb float64
	// SpreadProb is the chance an empty cell next to a tree sprouts.
	SpreadProb float64
	// FireProb is the chance a tree ignites on its own.
	FireProb float64
}

func DefaultRules() Rules {
	return Rules{
		SaplingProb: DefaultSaplingProb,
		SpreadProb:  DefaultSpreadProb,
		FireProb:    DefaultFireProb,
	}
}

func (r Rules) Validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"sapling", r.SaplingProb},
		{"spread", r.SpreadProb},
		{"fire", r.FireProb},
	} {
		if !(p.v >= 0 && p.v <= 1) {
			return fmt.Errorf("%w: %s=%v", ErrProbability, p.name, p.v)
		}
	}
	return nil
}

// Neighborhood summarises the four axis-aligned neighbours of a cell.
type Neighborhood struct {
	Trees   int
	Burning int
}

// Observe adds one neighbour to the summary.
func (n *Neighborhood) Observe(c Cell) {
	if c == Tree {
		n.Trees++
	}
	if c.IsBurning() {
		n.Burning++
	}
}

// Forcing is pointer intent filtered to a single cell.
type Forcing struct {
	Plant  bool
	Ignite bool
}

// Next computes the next state of c. It is pure given the draw r in [0, 1).
func (r Rules) Next(c Cell, n Neighborhood, draw float64, f Forcing) Cell {
	switch c {
	case Empty:
		p := r.SaplingProb
		if n.Trees > 0 {
			p = r.SpreadProb
		}
		if draw < p || f.Plant {
			return Sapling1
		}
		return Empty
	case Tree:
		if n.Burning > 0 || draw < r.FireProb || f.Ignite {
			return Smoldering
		}
		return Tree
	default:
		return c.Next()
	}
}
