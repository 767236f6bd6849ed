package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/forestfire/internal/forest"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS     = 60
	DefaultDriver  = "tea"
	DefaultDataDir = ".forestfire"
)

var Drivers = []string{"tea", "tcell"}

var (
	ErrFPS    = errors.New("config: fps must be between 1 and 240")
	ErrDriver = errors.New("config: unknown driver")
)

type Config struct {
	Seed    uint32      `yaml:"seed"`
	FPS     int         `yaml:"fps"`
	Driver  string      `yaml:"driver"`
	DataDir string      `yaml:"data_dir"`
	Rules   RulesConfig `yaml:"rules"`
}

type RulesConfig struct {
	SaplingProb float64 `yaml:"sapling_prob"`
	SpreadProb  float64 `yaml:"spread_prob"`
	FireProb    float64 `yaml:"fire_prob"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:     DefaultFPS,
		Driver:  DefaultDriver,
		DataDir: DefaultDataDir,
		Rules: RulesConfig{
			SaplingProb: forest.DefaultSaplingProb,
			SpreadProb:  forest.DefaultSpreadProb,
			FireProb:    forest.DefaultFireProb,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads path on top of a copy of base; keys absent from the file
// keep base's values.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w, got %d", ErrFPS, c.FPS)
	}
	known := false
	for _, d := range Drivers {
		if c.Driver == d {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q (available: %v)", ErrDriver, c.Driver, Drivers)
	}
	return c.ForestRules().Validate()
}

func (c *Config) ForestRules() forest.Rules {
	return forest.Rules{
		SaplingProb: c.Rules.SaplingProb,
		SpreadProb:  c.Rules.SpreadProb,
		FireProb:    c.Rules.FireProb,
	}
}

// Interval is the frame period for the configured frame rate.
func (c *Config) Interval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// ResolveSeed returns the configured seed, or one derived from now when the
// seed is zero.
func (c *Config) ResolveSeed(now func() time.Time) uint32 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint32(now().Unix())
}
