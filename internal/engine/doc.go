// Package engine owns one simulation session and runs its frame loop.
//
// Each frame runs, in order:
//
//  1. refresh button latches from the poller
//  2. sweep the grid once
//  3. project the grid into a frame
//  4. hand the frame to the surface
//  5. drain pending input events (clicks, moves, quit)
//  6. sleep until the next frame
//
// # Thread Safety
//
// A Session is NOT thread-safe. Drivers call it from a single goroutine; the
// tea driver uses bubbletea's update loop, the tcell driver uses [Run].
package engine
