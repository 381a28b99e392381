package workload

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusim/sim"
)

// ErrNoSource is returned when a spec lists neither processes nor a generator.
var ErrNoSource = errors.New("workload needs either processes or a generate section")

// WorkloadSpec is the top-level workload file.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version   string            `yaml:"version"`
	Seed      int64             `yaml:"seed"`
	Processes []sim.ProcessSpec `yaml:"processes,omitempty"`
	Generate  *GeneratorSpec    `yaml:"generate,omitempty"`
}

// GeneratorSpec parameterizes a seeded random process list.
type GeneratorSpec struct {
	Count         int   `yaml:"count"`
	MaxArrivalGap int64 `yaml:"max_arrival_gap"` // inter-arrival gap drawn uniformly from [0, max]
	BurstMin      int64 `yaml:"burst_min"`
	BurstMax      int64 `yaml:"burst_max"`
	PriorityMin   int   `yaml:"priority_min"`
	PriorityMax   int   `yaml:"priority_max"`
}

var validVersions = map[string]bool{"": true, "1": true}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that the spec names exactly one process source and that it is usable.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unsupported workload version %q; valid: 1", s.Version)
	}
	switch {
	case len(s.Processes) == 0 && s.Generate == nil:
		return ErrNoSource
	case len(s.Processes) > 0 && s.Generate != nil:
		return fmt.Errorf("processes and generate are mutually exclusive")
	case s.Generate != nil:
		return s.Generate.Validate()
	default:
		return sim.ValidateSpecs(s.Processes)
	}
}

// Validate checks the generator ranges.
func (g *GeneratorSpec) Validate() error {
	if g.Count <= 0 {
		return fmt.Errorf("generate.count must be positive, got %d", g.Count)
	}
	if g.MaxArrivalGap < 0 {
		return fmt.Errorf("generate.max_arrival_gap must be non-negative, got %d", g.MaxArrivalGap)
	}
	if g.BurstMin < 1 {
		return fmt.Errorf("generate.burst_min must be at least 1, got %d", g.BurstMin)
	}
	if g.BurstMax < g.BurstMin {
		return fmt.Errorf("generate.burst_max (%d) must be >= burst_min (%d)", g.BurstMax, g.BurstMin)
	}
	if g.PriorityMax < g.PriorityMin {
		return fmt.Errorf("generate.priority_max (%d) must be >= priority_min (%d)", g.PriorityMax, g.PriorityMin)
	}
	return nil
}

// Specs resolves the workload into process inputs, generating them when the
// spec has a generate section.
func (s *WorkloadSpec) Specs() ([]sim.ProcessSpec, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Generate != nil {
		return Generate(s.Generate, s.Seed)
	}
	out := make([]sim.ProcessSpec, len(s.Processes))
	copy(out, s.Processes)
	return out, nil
}
