package forest

import "fmt"

// Cell is the state of one grid location.
type Cell uint8

const (
	Empty Cell = iota
	Sapling1
	Sapling2
	Sapling3
	Sapling4
	Sapling5
	Tree
	Smoldering
	Hot
	Burning1
	Burning2
	Burning3
	Burning4
	Burning5
	Burning6
	Burning7
	Burning8
	Burning9
	HotEmber
	Burnt
	Collapsed

	// NumCells is the number of valid states.
	NumCells = int(Collapsed) + 1
)

// successor is the aging chain. Empty and Tree branch through Rules and map
// to themselves here; Collapsed is terminal.
var successor = [NumCells]Cell{
	Empty:      Empty,
	Sapling1:   Sapling2,
	Sapling2:   Sapling3,
	Sapling3:   Sapling4,
	Sapling4:   Sapling5,
	Sapling5:   Tree,
	Tree:       Tree,
	Smoldering: Hot,
	Hot:        Burning1,
	Burning1:   Burning2,
	Burning2:   Burning3,
	Burning3:   Burning4,
	Burning4:   Burning5,
	Burning5:   Burning6,
	Burning6:   Burning7,
	Burning7:   Burning8,
	Burning8:   Burning9,
	Burning9:   HotEmber,
	HotEmber:   Burnt,
	Burnt:      Collapsed,
	Collapsed:  Collapsed,
}

var names = [NumCells]string{
	"empty",
	"sapling1", "sapling2", "sapling3", "sapling4", "sapling5",
	"tree",
	"smoldering", "hot",
	"burning1", "burning2", "burning3", "burning4", "burning5",
	"burning6", "burning7", "burning8", "burning9",
	"hot_ember", "burnt", "collapsed",
}

// Next ages c by one step along its chain.
func (c Cell) Next() Cell {
	if !c.Valid() {
		return Collapsed
	}
	return successor[c]
}

// Valid reports whether c is one of the enumerated states.
func (c Cell) Valid() bool { return int(c) < NumCells }

// IsBranching reports whether c only leaves its state through a probabilistic
// or forced transition.
func (c Cell) IsBranching() bool { return c == Empty || c == Tree }

// IsTerminal reports whether c is the fixed point of the decay chain.
func (c Cell) IsTerminal() bool { return c == Collapsed }

func (c Cell) IsSapling() bool { return c >= Sapling1 && c <= Sapling5 }

// IsBurning reports whether c is one of the nine open-flame stages. Only these
// stages ignite neighbouring trees.
func (c Cell) IsBurning() bool { return c >= Burning1 && c <= Burning9 }

// IsAflame covers the whole combustion stretch of the chain, from the first
// smoulder to the hot ember.
func (c Cell) IsAflame() bool { return c >= Smoldering && c <= HotEmber }

// IsAsh reports whether c is burnt out.
func (c Cell) IsAsh() bool { return c == Burnt || c == Collapsed }

func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
	return names[c]
}
