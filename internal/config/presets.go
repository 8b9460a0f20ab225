package config

import (
	"sort"
)

const (
	CircleGlob       = "num-robots-*-seed-*.json"
	CircleKeyPattern = `^num-robots-(\d+)-seed-(\d+)\.json$`

	JunctionGlob       = "qin-*.json"
	JunctionKeyPattern = `^qin-([^-]+?)(?:-.*)?\.json$`
)

var Presets = map[string]map[string]*Config{
	"circle": {
		"default": preset(func(c *Config) {
			c.Scenario = ScenarioConfig{Name: "circle", Glob: CircleGlob, KeyPattern: CircleKeyPattern}
		}),
		"lenient": preset(func(c *Config) {
			c.Scenario = ScenarioConfig{Name: "circle", Glob: CircleGlob, KeyPattern: CircleKeyPattern}
			c.SkipFailures = true
		}),
		"report": preset(func(c *Config) {
			c.Scenario = ScenarioConfig{Name: "circle", Glob: CircleGlob, KeyPattern: CircleKeyPattern}
			c.PlotFormats = []string{"svg", "html", "ascii"}
		}),
	},
	"junction": {
		"default": preset(func(c *Config) {
			c.Scenario = ScenarioConfig{Name: "junction", Glob: JunctionGlob, KeyPattern: JunctionKeyPattern}
		}),
		"full": preset(func(c *Config) {
			c.Scenario = ScenarioConfig{Name: "junction", Glob: JunctionGlob, KeyPattern: JunctionKeyPattern}
			c.Window = WindowConfig{Start: 0}
		}),
		"steady": preset(func(c *Config) {
			c.Scenario = ScenarioConfig{Name: "junction", Glob: JunctionGlob, KeyPattern: JunctionKeyPattern}
			c.Window = WindowConfig{Start: DefaultWindowStart, Horizon: 50}
		}),
	},
}

func preset(apply func(*Config)) *Config {
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, name string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[name]
	if !ok {
		return nil
	}
	out := *cfg
	out.PlotFormats = append([]string(nil), cfg.PlotFormats...)
	return &out
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Scenarios() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
