package engine

import (
	"errors"
	"fmt"
)

// Boundary failures. The simulation itself cannot fail.
var (
	// ErrSurface indicates the output surface could not display a frame.
	ErrSurface = errors.New("engine: surface failure")

	// ErrInput indicates the input source could not be read.
	ErrInput = errors.New("engine: input failure")
)

// FrameError wraps a boundary failure with the frame it happened on.
type FrameError struct {
	Frame   uint64
	Op      string
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %s: %v", e.Frame, e.Op, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
