package metrics

import "github.com/san-kum/forestfire/internal/forest"

// Census counts cells by category for one generation.
type Census struct {
	Generation uint64 `json:"generation"`
	Empty      int    `json:"empty"`
	Saplings   int    `json:"saplings"`
	Trees      int    `json:"trees"`
	Burning    int    `json:"burning"`
	Ash        int    `json:"ash"`
}

// Take counts the current generation of g. Burning covers the whole aflame
// stretch of the chain, not only open flame.
func Take(g *forest.Grid) Census {
	c := Census{Generation: g.Generation()}
	for _, cell := range g.Cells() {
		switch {
		case cell == forest.Empty:
			c.Empty++
		case cell.IsSapling():
			c.Saplings++
		case cell == forest.Tree:
			c.Trees++
		case cell.IsAflame():
			c.Burning++
		case cell.IsAsh():
			c.Ash++
		}
	}
	return c
}

func (c Census) Total() int {
	return c.Empty + c.Saplings + c.Trees + c.Burning + c.Ash
}

type Metric interface {
	Name() string
	Observe(c Census)
	Value() float64
	Reset()
}

func Defaults() []Metric {
	return []Metric{NewPeakFire(), NewCoverage(), NewCalm()}
}
