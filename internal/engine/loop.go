package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/san-kum/forestfire/internal/input"
	"github.com/san-kum/forestfire/internal/render"
)

// DefaultInterval paces the loop to roughly 60 frames per second.
const DefaultInterval = 16 * time.Millisecond

// Surface displays one full frame.
type Surface interface {
	Present(f *render.Frame) error
}

// Source is the input side of a driver. Drain returns every event queued since
// the last call without blocking.
type Source interface {
	input.Poller
	Drain() ([]input.Event, error)
}

// Run drives s until a quit event arrives or ctx is cancelled. KeyPause
// toggles stepping (clicks and hover still show while paused) and KeyReset
// clears the world. A surface or input failure stops the loop and is returned
// as a *FrameError.
func Run(ctx context.Context, s *Session, surf Surface, src Source, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	paused := false
	for frame := uint64(0); ; frame++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var f *render.Frame
		if paused {
			f = s.Refresh()
		} else {
			f = s.Advance(src)
		}

		if err := surf.Present(f); err != nil {
			return &FrameError{Frame: frame, Op: "present", Wrapped: fmt.Errorf("%w: %w", ErrSurface, err)}
		}

		events, err := src.Drain()
		if err != nil {
			return &FrameError{Frame: frame, Op: "drain", Wrapped: fmt.Errorf("%w: %w", ErrInput, err)}
		}
		for _, ev := range events {
			if k, ok := ev.(input.KeyDown); ok {
				switch k.Key {
				case input.KeyPause:
					paused = !paused
					continue
				case input.KeyReset:
					s.Reset()
					continue
				}
			}
			if s.Handle(ev) {
				log.Printf("quit requested at generation %d", s.Generation())
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunHeadless advances s for the given number of steps with no surface and no
// input, for batch statistics.
func RunHeadless(ctx context.Context, s *Session, steps int) error {
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Advance(nil)
	}
	return nil
}
