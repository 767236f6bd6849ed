// Package automation scripts headless runs: scenario files that plant and
// ignite at fixed generations, and sweeps over one rule probability.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/san-kum/forestfire/internal/config"
	"github.com/san-kum/forestfire/internal/engine"
	"github.com/san-kum/forestfire/internal/forest"
	"gopkg.in/yaml.v3"
)

var (
	ErrAction   = errors.New("automation: unknown action")
	ErrSteps    = errors.New("automation: steps must be positive")
	ErrParam    = errors.New("automation: unknown rule parameter")
	ErrSweepLen = errors.New("automation: sweep needs at least two points")
)

// Scenario is a scripted headless run.
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Seed        uint32             `yaml:"seed"`
	Preset      string             `yaml:"preset"`
	Rules       config.RulesConfig `yaml:"rules"`
	Steps       int                `yaml:"steps"`
	Actions     []Action           `yaml:"actions"`
}

// Action edits a rectangle of cells just before generation At is computed.
// W and H default to one cell.
type Action struct {
	At uint64 `yaml:"at"`
	Do string `yaml:"do"`
	X  int    `yaml:"x"`
	Y  int    `yaml:"y"`
	W  int    `yaml:"w"`
	H  int    `yaml:"h"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var header struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}

	// Keys missing from the rules block keep the preset's (or default) value.
	scenario := Scenario{Rules: config.DefaultConfig().Rules}
	if p := config.GetPreset(header.Preset); p != nil {
		scenario.Rules = *p
	}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (sc *Scenario) Validate() error {
	if sc.Steps <= 0 {
		return fmt.Errorf("%w, got %d", ErrSteps, sc.Steps)
	}
	if sc.Preset != "" && config.GetPreset(sc.Preset) == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", sc.Preset, config.ListPresets())
	}
	for i, a := range sc.Actions {
		if a.Do != "plant" && a.Do != "ignite" {
			return fmt.Errorf("action %d: %w: %q", i+1, ErrAction, a.Do)
		}
	}
	return sc.ForestRules().Validate()
}

func (sc *Scenario) ForestRules() forest.Rules {
	return forest.Rules{SaplingProb: sc.Rules.SaplingProb, SpreadProb: sc.Rules.SpreadProb, FireProb: sc.Rules.FireProb}
}

// Apply performs the action on g and returns how many cells changed.
func (a Action) Apply(g *forest.Grid) int {
	w, h := max(a.W, 1), max(a.H, 1)
	changed := 0
	for y := a.Y; y < a.Y+h; y++ {
		for x := a.X; x < a.X+w; x++ {
			var ok bool
			if a.Do == "ignite" {
				ok = g.Ignite(x, y)
			} else {
				ok = g.Plant(x, y)
			}
			if ok {
				changed++
			}
		}
	}
	return changed
}

// RunScenario advances s through the scenario, applying each action when the
// grid reaches its generation.
func RunScenario(ctx context.Context, s *engine.Session, sc *Scenario) error {
	actions := append([]Action(nil), sc.Actions...)
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].At < actions[j].At })

	next := 0
	for i := 0; i < sc.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		gen := s.Generation()
		for next < len(actions) && actions[next].At <= gen {
			n := actions[next].Apply(s.Grid())
			log.Printf("scenario %q: %s at (%d,%d) gen %d changed %d cells", sc.Name, actions[next].Do, actions[next].X, actions[next].Y, gen, n)
			next++
		}
		s.Advance(nil)
	}
	return nil
}

// Sweep varies one rule probability across evenly spaced points, running the
// same seed at each.
type Sweep struct {
	Base   engine.Options
	Param  string
	Min    float64
	Max    float64
	Points int
	Steps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	Value float64
	engine.Summary
}

var Params = []string{"sapling_prob", "spread_prob", "fire_prob"}

func setParam(r *forest.Rules, name string, v float64) error {
	switch name {
	case "sapling_prob":
		r.SaplingProb = v
	case "spread_prob":
		r.SpreadProb = v
	case "fire_prob":
		r.FireProb = v
	default:
		return fmt.Errorf("%w: %q (available: %v)", ErrParam, name, Params)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *Sweep) ([]SweepResult, error) {
	if sweep.Points < 2 {
		return nil, ErrSweepLen
	}
	if sweep.Steps <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrSteps, sweep.Steps)
	}

	results := make([]SweepResult, 0, sweep.Points)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.Points-1)

	for i := 0; i < sweep.Points; i++ {
		value := sweep.Min + float64(i)*paramStep

		opts := sweep.Base
		opts.History = 1
		if err := setParam(&opts.Rules, sweep.Param, value); err != nil {
			return nil, err
		}
		if err := opts.Rules.Validate(); err != nil {
			return nil, err
		}

		s := engine.NewSession(opts)
		if err := engine.RunHeadless(ctx, s, sweep.Steps); err != nil {
			return nil, err
		}

		results = append(results, SweepResult{Value: value, Summary: s.Summary()})
		log.Printf("sweep %d/%d: %s=%.6f", i+1, sweep.Points, sweep.Param, value)
	}

	return results, nil
}
