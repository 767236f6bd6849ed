// Package rng provides the deterministic random stream that drives stochastic
// cell transitions.
//
// The generator is a 32-bit xorshift (shift 13, 17, 5). It is not safe for
// concurrent use; a single simulation step owns it.
package rng

import "time"

// Xorshift32 is a 32-bit xorshift generator. The zero value is not usable,
// construct one with New.
type Xorshift32 struct {
	state uint32
}

// New returns a generator seeded with seed. Xorshift is stuck at zero, so the
// low bit is always forced on.
func New(seed uint32) *Xorshift32 {
	return &Xorshift32{state: seed | 1}
}

// SeedFromTime derives a startup seed from wall-clock seconds.
func SeedFromTime(t time.Time) uint32 {
	return uint32(t.Unix())
}

// Next returns the next 32-bit word of the stream.
func (r *Xorshift32) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Uniform01 returns a draw in [0, 1).
func (r *Xorshift32) Uniform01() float64 {
	return float64(r.Next()) / (1 << 32)
}

// State exposes the current internal word, mainly for golden-run tests.
func (r *Xorshift32) State() uint32 { return r.state }
