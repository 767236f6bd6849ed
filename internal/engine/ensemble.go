package engine

import (
	"context"
	"runtime"

	"github.com/san-kum/forestfire/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// Summary is what a finished headless session reports.
type Summary struct {
	Seed        uint32
	Generations uint64
	Final       metrics.Census
	Metrics     map[string]float64
}

func (s *Session) Summary() Summary {
	final, _ := s.history.Last()
	values := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		values[m.Name()] = m.Value()
	}
	return Summary{
		Seed:        s.opts.Seed,
		Generations: s.grid.Generation(),
		Final:       final,
		Metrics:     values,
	}
}

// Ensemble runs independent headless sessions that differ only in seed.
// Each session stays single-threaded; only whole sessions run side by side.
type Ensemble struct {
	base    Options
	runs    int
	workers int
}

func NewEnsemble(base Options, runs int) *Ensemble {
	return &Ensemble{base: base, runs: runs, workers: runtime.GOMAXPROCS(0)}
}

// SetWorkers caps how many sessions run at once.
func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

// Seed returns the seed of run i. Seeds step by two because the generator
// forces the low bit on.
func (e *Ensemble) Seed(i int) uint32 {
	return e.base.Seed + uint32(2*i)
}

// Run advances every session by steps generations. Results are in run order.
func (e *Ensemble) Run(ctx context.Context, steps int) ([]Summary, error) {
	results := make([]Summary, e.runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < e.runs; i++ {
		g.Go(func() error {
			opts := e.base
			opts.Seed = e.Seed(i)
			opts.History = 1

			s := NewSession(opts)
			if err := RunHeadless(ctx, s, steps); err != nil {
				return err
			}
			results[i] = s.Summary()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
