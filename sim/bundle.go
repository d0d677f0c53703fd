package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario holds a full run configuration, loadable from a YAML file.
// It bundles model parameters, time grid bounds, and run settings so a
// simulation can be reproduced from one document.
type Scenario struct {
	Name            string  `yaml:"name"`
	Population      int64   `yaml:"population"`
	InitialInfected int64   `yaml:"initial_infected"`
	Beta            float64 `yaml:"beta"`
	Gamma           float64 `yaml:"gamma"`
	Dt              float64 `yaml:"dt"`
	Start           int64   `yaml:"start"`
	End             int64   `yaml:"end"`
	Replicates      int     `yaml:"replicates"`
	Seed            int64   `yaml:"seed"`
	Workers         int     `yaml:"workers,omitempty"` // 0 = sequential
}

// LoadScenario reads and parses a YAML scenario file.
// Parsing is strict: unknown fields (typos) cause errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Parameters extracts the model parameters from the scenario.
func (sc *Scenario) Parameters() Parameters {
	return Parameters{
		Population:      sc.Population,
		InitialInfected: sc.InitialInfected,
		Beta:            sc.Beta,
		Gamma:           sc.Gamma,
		Dt:              sc.Dt,
	}
}

// Validate checks all parameter ranges and grid bounds in the scenario.
func (sc *Scenario) Validate() error {
	if err := sc.Parameters().Validate(); err != nil {
		return err
	}
	if sc.End < sc.Start {
		return fmt.Errorf("%w: end %d precedes start %d", ErrInvalidConfig, sc.End, sc.Start)
	}
	if sc.Replicates < 1 {
		return fmt.Errorf("%w: replicates must be at least 1, got %d", ErrInvalidConfig, sc.Replicates)
	}
	if sc.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, sc.Workers)
	}
	return nil
}

// Simulator builds a ready-to-run Simulator from the scenario.
func (sc *Scenario) Simulator() (*Simulator, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewTimeGrid(sc.Start, sc.End)
	if err != nil {
		return nil, err
	}
	s, err := NewSimulator(sc.Parameters(), grid, sc.Replicates, sc.Seed)
	if err != nil {
		return nil, err
	}
	s.Workers = sc.Workers
	return s, nil
}
