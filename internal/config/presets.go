package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"uniform": withParams(func(c *Config) {
		c.Theta = []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	}),
	"undamped": withParams(func(c *Config) {
		c.Theta = make([]float64, DefaultUnits)
	}),
	"pair": withParams(func(c *Config) {
		c.Units = 2
		c.Theta = []float64{0.1, 0.6}
		c.Duration = 10
	}),
	"large": withParams(func(c *Config) {
		c.Units = 24
		c.Theta = make([]float64, c.Units)
		for i := range c.Theta {
			c.Theta[i] = DefaultTheta[i%len(DefaultTheta)]
		}
		c.Duration = 30
	}),
	// coarse sits just past the forward Euler stability limit of the
	// reference ring and diverges.
	"coarse": withParams(func(c *Config) {
		c.Dt = 0.5
		c.Duration = 20
	}),
}

func withParams(fn func(*Config)) *Config {
	cfg := DefaultConfig()
	fn(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
