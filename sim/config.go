package sim

import (
	"errors"
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Defaults used when a config file leaves a field unset.
const (
	DefaultQuantum     = 2
	DefaultLevels      = 5
	DefaultAgingFactor = 2
)

var (
	ErrInvalidQuantum     = errors.New("time quantum must be positive")
	ErrInvalidLevels      = errors.New("number of queue levels must be at least 1")
	ErrInvalidAgingFactor = errors.New("aging factor must be at least 1")
)

// Config mirrors the engine section of a config YAML file.
type Config struct {
	Quantum     int64 `yaml:"quantum" json:"quantum"`           // base slice for rr, feedback and aging
	Levels      int   `yaml:"levels" json:"levels"`             // number of ready queues for feedback and aging
	AgingFactor int64 `yaml:"aging_factor" json:"aging_factor"` // starvation threshold in quanta for aging
}

// DefaultConfig returns the engine defaults: quantum 2, five levels, aging after two quanta.
func DefaultConfig() Config {
	return Config{
		Quantum:     DefaultQuantum,
		Levels:      DefaultLevels,
		AgingFactor: DefaultAgingFactor,
	}
}

// LoadConfig reads YAML and overrides defaults; empty path = defaults only.
func LoadConfig(path string) (Config, error) {
	return MergeConfigFile(DefaultConfig(), path)
}

// MergeConfigFile reads YAML and overrides base with every field the file sets.
// Fields left at zero keep the base value. Explicitly negative values are kept
// so that Validate reports them. Empty path returns base unchanged.
func MergeConfigFile(base Config, path string) (Config, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading engine config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("parsing engine config: %w", err)
	}
	return base.Merge(file), nil
}

// Merge returns c with every non-zero field of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.Quantum != 0 {
		c.Quantum = o.Quantum
	}
	if o.Levels != 0 {
		c.Levels = o.Levels
	}
	if o.AgingFactor != 0 {
		c.AgingFactor = o.AgingFactor
	}
	return c
}

// Validate checks the parameters the named policy depends on.
// Policies without a quantum accept any config.
func (c Config) Validate(policy string) error {
	if !PolicyNeedsQuantum(policy) {
		return nil
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: policy %q got %d", ErrInvalidQuantum, policy, c.Quantum)
	}
	switch policy {
	case PolicyFeedback, PolicyAging:
		if c.Levels < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidLevels, c.Levels)
		}
	}
	if policy == PolicyAging && c.AgingFactor < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidAgingFactor, c.AgingFactor)
	}
	return nil
}
