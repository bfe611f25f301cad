package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/phasesync/internal/experiment"
	"github.com/san-kum/phasesync/internal/sim"
)

const (
	DefaultUnits              = 7
	DefaultSeed               = 10
	DefaultDt                 = 0.01
	DefaultDuration           = 12.0
	DefaultSyncTolerance      = 1e-2
	DefaultStabilityThreshold = 2 * math.Pi
	DefaultPlotWidth          = 80
	DefaultPlotHeight         = 16
)

// DefaultTheta is the per-unit damping of the reference run.
var DefaultTheta = []float64{0.2, 0.5, 0.9, 0.4, 0.7, 0.3, 0.6}

type Config struct {
	Units         int            `yaml:"units"`
	Theta         []float64      `yaml:"theta"`
	Phi0          []float64      `yaml:"phi0,omitempty"`
	Seed          int64          `yaml:"seed"`
	Interval      IntervalConfig `yaml:"interval"`
	Dt            float64        `yaml:"dt"`
	Duration      float64        `yaml:"t_max"`
	ValidateState bool           `yaml:"validate_state"`
	Analysis      AnalysisConfig `yaml:"analysis"`
	Render        RenderConfig   `yaml:"render"`
}

// IntervalConfig bounds the uniform draw of initial phases when Phi0 is empty.
type IntervalConfig struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

type AnalysisConfig struct {
	SyncTolerance      float64 `yaml:"sync_tolerance"`
	StabilityThreshold float64 `yaml:"stability_threshold"`
}

type RenderConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func DefaultConfig() *Config {
	theta := make([]float64, len(DefaultTheta))
	copy(theta, DefaultTheta)
	return &Config{
		Units:    DefaultUnits,
		Theta:    theta,
		Seed:     DefaultSeed,
		Interval: IntervalConfig{Lo: -math.Pi, Hi: math.Pi},
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Analysis: AnalysisConfig{
			SyncTolerance:      DefaultSyncTolerance,
			StabilityThreshold: DefaultStabilityThreshold,
		},
		Render: RenderConfig{
			Title:  "Asymmetric Rhythm Synchronization",
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
	}
}

// Load reads a YAML config over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads a YAML config over base, which is left untouched.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Overlay(base, data)
}

func Parse(data []byte) (*Config, error) {
	return Overlay(DefaultConfig(), data)
}

// Overlay applies the fields present in data on top of a copy of base.
// A document giving theta without units takes the unit count from theta.
func Overlay(base *Config, data []byte) (*Config, error) {
	cfg := base.Clone()
	cfg.Units = 0
	cfg.Theta = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	fromFile := cfg.Theta != nil
	if !fromFile {
		cfg.Theta = append([]float64(nil), base.Theta...)
	}
	if cfg.Units == 0 {
		if fromFile {
			cfg.Units = len(cfg.Theta)
		} else {
			cfg.Units = base.Units
		}
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

// Validate reports the first offending parameter.
func (c *Config) Validate() error {
	if c.Units <= 0 {
		return sim.InvalidParam("units", c.Units)
	}
	if len(c.Theta) != c.Units {
		return sim.MismatchParam("theta", len(c.Theta), c.Units)
	}
	if len(c.Phi0) > 0 && len(c.Phi0) != c.Units {
		return sim.MismatchParam("phi0", len(c.Phi0), c.Units)
	}
	if len(c.Phi0) == 0 && !(c.Interval.Lo < c.Interval.Hi) {
		return sim.InvalidParam("interval", [2]float64{c.Interval.Lo, c.Interval.Hi})
	}
	if _, err := sim.Steps(c.Dt, c.Duration); err != nil {
		return err
	}
	if c.Analysis.SyncTolerance < 0 {
		return sim.InvalidParam("sync_tolerance", c.Analysis.SyncTolerance)
	}
	return nil
}

// ToExperiment flattens the config into the run parameters.
func (c *Config) ToExperiment() experiment.Config {
	cfg := experiment.Config{
		Units:              c.Units,
		Theta:              append([]float64(nil), c.Theta...),
		Seed:               c.Seed,
		Lo:                 c.Interval.Lo,
		Hi:                 c.Interval.Hi,
		Dt:                 c.Dt,
		Duration:           c.Duration,
		ValidateState:      c.ValidateState,
		SyncTolerance:      c.Analysis.SyncTolerance,
		StabilityThreshold: c.Analysis.StabilityThreshold,
	}
	if len(c.Phi0) > 0 {
		cfg.Phi0 = append([]float64(nil), c.Phi0...)
	}
	return cfg
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Theta = append([]float64(nil), c.Theta...)
	if c.Phi0 != nil {
		cp.Phi0 = append([]float64(nil), c.Phi0...)
	}
	return &cp
}
