// Package forest implements the forest growth and fire spread automaton.
//
// The package defines the cell state machine and the world that advances it:
//
//   - [Cell]: closed enum of growth, combustion and decay states
//   - [Rules]: pure transition function over a cell and its 4-neighbourhood
//   - [Grid]: two generations of cells swept once per timestep
//   - [Interaction]: pointer snapshot that forces planting or ignition
//
// # Example
//
//	g := forest.NewGrid(140, 50, forest.DefaultRules(), rng.New(seed))
//	g.Plant(10, 10)
//	g.Step(forest.Interaction{})
//
// # Thread Safety
//
// Grid is NOT thread-safe. One goroutine owns the grid and its random source.
package forest
