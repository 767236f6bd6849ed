package engine

import (
	"github.com/san-kum/forestfire/internal/forest"
	"github.com/san-kum/forestfire/internal/input"
	"github.com/san-kum/forestfire/internal/metrics"
	"github.com/san-kum/forestfire/internal/render"
	"github.com/san-kum/forestfire/internal/rng"
)

const historyCapacity = 600

type Options struct {
	Width, Height int
	Rules         forest.Rules
	Seed          uint32

	// History is how many censuses to keep; zero means the last 600.
	History int
}

func DefaultOptions() Options {
	return Options{
		Width:  forest.DefaultWidth,
		Height: forest.DefaultHeight,
		Rules:  forest.DefaultRules(),
		Seed:   1,
	}
}

// Session is the whole simulation context: world, random stream, pointer
// state and the reusable frame.
type Session struct {
	opts    Options
	rng     *rng.Xorshift32
	grid    *forest.Grid
	input   input.State
	table   render.Table
	frame   *render.Frame
	history *metrics.History
	metrics []metrics.Metric
}

func NewSession(opts Options) *Session {
	if opts.History <= 0 {
		opts.History = historyCapacity
	}
	r := rng.New(opts.Seed)
	g := forest.NewGrid(opts.Width, opts.Height, opts.Rules, r)
	s := &Session{
		opts:    opts,
		rng:     r,
		grid:    g,
		table:   render.DefaultTable(),
		frame:   render.NewFrame(g.Width(), g.Height()),
		history: metrics.NewHistory(opts.History),
		metrics: metrics.Defaults(),
	}
	s.project()
	return s
}

func (s *Session) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }

func (s *Session) Grid() *forest.Grid        { return s.grid }
func (s *Session) Input() *input.State       { return &s.input }
func (s *Session) Frame() *render.Frame      { return s.frame }
func (s *Session) History() *metrics.History { return s.history }
func (s *Session) Metrics() []metrics.Metric { return s.metrics }
func (s *Session) Seed() uint32              { return s.opts.Seed }
func (s *Session) Rules() forest.Rules       { return s.opts.Rules }
func (s *Session) Generation() uint64        { return s.grid.Generation() }

// Advance runs one simulation frame: refresh latches, sweep, project.
func (s *Session) Advance(p input.Poller) *render.Frame {
	s.input.Refresh(p)
	s.grid.Step(s.input.Snapshot())

	c := metrics.Take(s.grid)
	s.history.Add(c)
	for _, m := range s.metrics {
		m.Observe(c)
	}

	s.project()
	return s.frame
}

// Handle applies one input event. It reports true when the event asks to quit.
func (s *Session) Handle(ev input.Event) bool {
	switch ev := ev.(type) {
	case input.KeyDown:
		return ev.Key == input.KeyEscape || ev.Key == input.KeyQuit
	case input.PointerMoved:
		s.input.Move(ev.X, ev.Y)
	case input.PointerButtonDown:
		s.input.Press(ev.Button, ev.X, ev.Y)
		switch ev.Button {
		case input.ButtonLeft:
			s.grid.Plant(ev.X, ev.Y)
		case input.ButtonRight:
			s.grid.Ignite(ev.X, ev.Y)
		}
	}
	return false
}

// Refresh re-projects without stepping, so direct edits and hover changes show
// up while the simulation is paused.
func (s *Session) Refresh() *render.Frame {
	s.project()
	return s.frame
}

// Reset clears the world and statistics but keeps the random stream going.
func (s *Session) Reset() {
	s.grid.Reset()
	s.history.Reset()
	for _, m := range s.metrics {
		m.Reset()
	}
	s.project()
}

func (s *Session) project() {
	render.Project(s.frame, &s.table, s.grid, s.input.Snapshot())
}
