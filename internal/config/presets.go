package config

import (
	"sort"

	"github.com/san-kum/forestfire/internal/forest"
)

var Presets = map[string]RulesConfig{
	"classic": {
		SaplingProb: forest.DefaultSaplingProb,
		SpreadProb:  forest.DefaultSpreadProb,
		FireProb:    forest.DefaultFireProb,
	},
	"tinderbox": {
		SaplingProb: 0.00001,
		SpreadProb:  0.02,
		FireProb:    0.0002,
	},
	"nursery": {
		SaplingProb: 0.0001,
		SpreadProb:  0.01,
		FireProb:    0.000002,
	},
	"still": {},
}

func GetPreset(name string) *RulesConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
