// Package automation loads scripted launch scenarios for headless runs.
package automation

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/san-kum/orrery/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a YAML description of a headless run.
//
//	name: mars-shot
//	preset: inner
//	steps: 2160
//	sample_every: 24
//	launches:
//	  - step: 0
//	    angle: 45
type Scenario struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Preset      string           `yaml:"preset"`
	Steps       int              `yaml:"steps"`
	SampleEvery int              `yaml:"sample_every"`
	Launches    []ScenarioLaunch `yaml:"launches"`
}

// ScenarioLaunch fires the rocket before Step. Angle is in degrees.
type ScenarioLaunch struct {
	Step  int     `yaml:"step"`
	Angle float64 `yaml:"angle"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if scenario.Name == "" {
		scenario.Name = path
	}

	return &scenario, nil
}

// SimConfig converts the scenario, falling back to defaultSteps when the
// scenario does not set steps. Launches come out ordered by step.
func (s *Scenario) SimConfig(defaultSteps int) sim.Config {
	cfg := sim.Config{Steps: s.Steps, SampleEvery: s.SampleEvery}
	if cfg.Steps <= 0 {
		cfg.Steps = defaultSteps
	}
	for _, l := range s.Launches {
		cfg.Launches = append(cfg.Launches, sim.Launch{Step: l.Step, Angle: l.Angle * math.Pi / 180})
	}
	sort.SliceStable(cfg.Launches, func(i, j int) bool { return cfg.Launches[i].Step < cfg.Launches[j].Step })
	return cfg
}
