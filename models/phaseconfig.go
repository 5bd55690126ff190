package models

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// PhaseConfiguration declares the valid (phase, phase_stage) combinations of
// a project. Stages holds the number of stages per phase; a phase absent from
// the map is not part of the project's workflow.
type PhaseConfiguration struct {
	Stages map[Phase]int `yaml:"phases"`
}

// DefaultPhaseConfiguration covers the common single-stage workflow.
func DefaultPhaseConfiguration() PhaseConfiguration {
	return PhaseConfiguration{Stages: map[Phase]int{
		PhaseAnnotation: 1,
		PhaseInspection: 1,
		PhaseAcceptance: 1,
	}}
}

// LoadPhaseConfiguration parses a YAML phase configuration document.
func LoadPhaseConfiguration(data []byte) (PhaseConfiguration, error) {
	var cfg PhaseConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PhaseConfiguration{}, fmt.Errorf("parse phase configuration: %w", err)
	}
	if len(cfg.Stages) == 0 {
		return PhaseConfiguration{}, fmt.Errorf("phase configuration declares no phases")
	}
	for phase, stages := range cfg.Stages {
		if phase.Order() < 0 {
			return PhaseConfiguration{}, fmt.Errorf("phase configuration declares unknown phase %q", phase)
		}
		if stages < 1 {
			return PhaseConfiguration{}, fmt.Errorf("phase %s declares %d stages, want >= 1", phase, stages)
		}
	}
	return cfg, nil
}

// Valid reports whether the (phase, stage) combination is declared.
func (c PhaseConfiguration) Valid(phase Phase, stage int) bool {
	n, ok := c.Stages[phase]
	return ok && stage >= 1 && stage <= n
}
