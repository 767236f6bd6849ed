// Package tui is the default terminal driver, built on Bubble Tea.
//
// The forest is drawn at the top-left corner of the terminal so mouse
// coordinates map straight onto grid cells; a statistics panel sits to the
// right of it.
//
// # Key Bindings
//
//	Esc/Q   - Quit
//	Space   - Pause/Resume simulation
//	R       - Clear the forest
//	?       - Toggle help
//
// # Mouse
//
//	Left    - Plant saplings (hold and drag to paint)
//	Right   - Set trees on fire (hold and drag)
//
// Terminals do not always report a button release, so the held state is
// rebuilt from every mouse report (see [input.Tracker]).
package tui
