package cmd

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusim/sim"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

// Defaults represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Defaults struct {
	Version   string            `yaml:"version"`
	Engine    sim.Config        `yaml:"engine"`
	Processes []sim.ProcessSpec `yaml:"processes"`
}

// loadDefaults parses the defaults file at path, or the built-in copy when path is empty.
func loadDefaults(path string) (*Defaults, error) {
	data := embeddedDefaults
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading defaults file: %w", err)
		}
	}
	return parseDefaults(data)
}

// parseDefaults decodes defaults YAML with strict field checking: typos must cause errors.
func parseDefaults(data []byte) (*Defaults, error) {
	var d Defaults
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil {
		return nil, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	if len(d.Processes) > 0 {
		if err := sim.ValidateSpecs(d.Processes); err != nil {
			return nil, fmt.Errorf("defaults processes: %w", err)
		}
	}
	return &d, nil
}
