package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/robometrics/internal/batch"
	"github.com/san-kum/robometrics/internal/metrics"
)

// EnvPrefix prefixes every environment override, e.g. ROBOMETRICS_WORKERS.
const EnvPrefix = "robometrics"

const (
	DefaultFallbackDistance = metrics.DefaultFallbackDistance
	DefaultWindowStart      = batch.DefaultWindowStart
	DefaultOutputDir        = "results"
	DefaultTheme            = "mocha"
	DefaultLogLevel         = "info"
)

type Config struct {
	// Workers bounds concurrent file extraction. Zero uses every CPU.
	Workers          int            `yaml:"workers" validate:"gte=0"`
	FallbackDistance float64        `yaml:"fallback_distance" split_words:"true" validate:"gt=0"`
	Window           WindowConfig   `yaml:"window"`
	Scenario         ScenarioConfig `yaml:"scenario"`
	SkipFailures     bool           `yaml:"skip_failures" split_words:"true"`
	OutputDir        string         `yaml:"output_dir" split_words:"true" validate:"required"`
	PlotFormats      []string       `yaml:"plot_formats" split_words:"true" validate:"dive,oneof=svg html ascii"`
	Theme            string         `yaml:"theme" validate:"oneof=mocha latte ocean minimal"`
	LogLevel         string         `yaml:"log_level" split_words:"true" validate:"oneof=trace debug info warn error disabled"`
	LogFile          string         `yaml:"log_file" split_words:"true"`
}

// WindowConfig is the throughput observation window in seconds.
type WindowConfig struct {
	Start   float64 `yaml:"start" validate:"gte=0"`
	Horizon float64 `yaml:"horizon" validate:"gte=0"`
}

// ScenarioConfig selects the export files of a batch and how they are keyed.
type ScenarioConfig struct {
	Name       string `yaml:"name"`
	Glob       string `yaml:"glob"`
	KeyPattern string `yaml:"key_pattern" split_words:"true"`
}

func DefaultConfig() *Config {
	w := batch.DefaultWindow()
	return &Config{
		FallbackDistance: DefaultFallbackDistance,
		Window: WindowConfig{
			Start:   w.Start,
			Horizon: w.Horizon,
		},
		OutputDir:   DefaultOutputDir,
		PlotFormats: []string{"svg"},
		Theme:       DefaultTheme,
		LogLevel:    DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve layers defaults, the optional YAML file at path and the environment,
// then validates the result.
func Resolve(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from ROBOMETRICS_* variables. Unset variables
// leave the current value alone.
func (c *Config) ApplyEnv() error {
	return envconfig.Process(EnvPrefix, c)
}

var validate = validator.New()

func (c *Config) Validate() error {
	return validate.Struct(c)
}
