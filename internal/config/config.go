// Package config loads the TOML scene description used by the gimbal command.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type Config struct {
	Logging    LoggingConfig    `toml:"logging"`
	Simulation SimulationConfig `toml:"simulation"`
	Nodes      []NodeConfig     `toml:"nodes"`
	Tweens     []TweenConfig    `toml:"tweens"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type SimulationConfig struct {
	Ticks int     `toml:"ticks"`
	Delta float32 `toml:"delta"` // seconds per tick
}

// NodeConfig describes one node. Nodes are created in file order, so a
// parent must be listed before its children.
type NodeConfig struct {
	Name     string     `toml:"name"`
	Parent   string     `toml:"parent"`
	Relocate bool       `toml:"relocate"` // keep the world pose given below when attaching
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"` // Euler degrees, X then Y then Z
	Scale    [3]float32 `toml:"scale"`
}

type TweenConfig struct {
	Node        string     `toml:"node"`
	Field       string     `toml:"field"` // position, rotation (Euler degrees) or scale
	To          [3]float32 `toml:"to"`
	Duration    float32    `toml:"duration"`
	Ease        string     `toml:"ease"`
	FromCurrent bool       `toml:"from_current"`
}

// Load reads and parses the file at path, filling unset values with
// defaults. It does not validate; call Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.Errorf("parse config: unknown keys %v", keys)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Validate reports every problem in cfg at once.
func (c *Config) Validate() error {
	var err error
	if c.Simulation.Ticks < 0 {
		err = multierr.Append(err, errors.Errorf("simulation.ticks must be >= 0, got %d", c.Simulation.Ticks))
	}
	if c.Simulation.Delta <= 0 {
		err = multierr.Append(err, errors.Errorf("simulation.delta must be > 0, got %v", c.Simulation.Delta))
	}

	seen := make(map[string]bool, len(c.Nodes))
	for i, n := range c.Nodes {
		switch {
		case n.Name == "":
			err = multierr.Append(err, errors.Errorf("nodes[%d]: name is required", i))
		case seen[n.Name]:
			err = multierr.Append(err, errors.Errorf("nodes[%d]: duplicate name %q", i, n.Name))
		}
		if n.Parent != "" && !seen[n.Parent] {
			err = multierr.Append(err, errors.Errorf("nodes[%d] %q: parent %q is not defined before it", i, n.Name, n.Parent))
		}
		seen[n.Name] = true
	}

	for i, t := range c.Tweens {
		if !seen[t.Node] {
			err = multierr.Append(err, errors.Errorf("tweens[%d]: unknown node %q", i, t.Node))
		}
		switch t.Field {
		case "position", "rotation", "scale":
		default:
			err = multierr.Append(err, errors.Errorf("tweens[%d]: unknown field %q", i, t.Field))
		}
		if t.Duration <= 0 {
			err = multierr.Append(err, errors.Errorf("tweens[%d]: duration must be > 0", i))
		}
	}
	return err
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Simulation: SimulationConfig{
			Ticks: 60,
			Delta: 1.0 / 60.0,
		},
	}
}

// applyDefaults gives nodes without a scale a unit scale and tweens without
// an ease a linear one.
func applyDefaults(cfg *Config) {
	for i := range cfg.Nodes {
		if cfg.Nodes[i].Scale == ([3]float32{}) {
			cfg.Nodes[i].Scale = [3]float32{1, 1, 1}
		}
	}
	for i := range cfg.Tweens {
		if cfg.Tweens[i].Ease == "" {
			cfg.Tweens[i].Ease = "linear"
		}
	}
}
