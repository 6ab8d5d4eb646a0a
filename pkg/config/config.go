// Package config loads scenario files. Anything a file leaves out keeps the
// value from Default, which reproduces the reference scenario.
package config

import (
	"fmt"
	"os"

	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/1F47E/go-bombsight/pkg/physics"
	"github.com/1F47E/go-bombsight/pkg/planner"
	"gopkg.in/yaml.v3"
)

type Simulation struct {
	TimeSlice float64 `yaml:"time_slice"`
	MaxSteps  int     `yaml:"max_steps"`
	// CacheSize enables the time-to-impact cache when positive.
	CacheSize int `yaml:"cache_size"`
	Workers   int `yaml:"workers"`
}

type Scenario struct {
	Name           string          `yaml:"name"`
	AltitudeFeet   float64         `yaml:"altitude_ft"`
	GroundSpeedMPH float64         `yaml:"ground_speed_mph"`
	Current        models.GeoPoint `yaml:"current"`
	Target         models.GeoPoint `yaml:"target"`
	// TargetID, when set, takes the target position from the catalog.
	TargetID string `yaml:"target_id"`
}

type Batch struct {
	AltitudesFeet []float64          `yaml:"altitudes_ft"`
	Object        planner.FallObject `yaml:"object"`
}

// Config is the full contents of a scenario file
type Config struct {
	Constants  physics.Constants `yaml:"constants"`
	Simulation Simulation        `yaml:"simulation"`
	Scenario   Scenario          `yaml:"scenario"`
	Batch      Batch             `yaml:"batch"`
	Targets    []models.Target   `yaml:"targets"`
}

// Default returns the reference configuration
func Default() Config {
	targetCenter := models.GeoPoint{Lat: 48.160464, Lon: -122.166409}
	runwayNumber := models.GeoPoint{Lat: 48.155973, Lon: -122.157582}

	return Config{
		Constants: physics.DefaultConstants(),
		Simulation: Simulation{
			TimeSlice: physics.DefaultTimeSlice,
			MaxSteps:  physics.DefaultMaxSteps,
		},
		Scenario: Scenario{
			Name:           "Reference scenario",
			AltitudeFeet:   200,
			GroundSpeedMPH: 60,
			Current:        targetCenter,
			Target:         runwayNumber,
		},
		Batch: Batch{
			AltitudesFeet: append([]float64(nil), planner.DefaultTestAltitudes...),
			Object:        planner.FlourSack,
		},
		Targets: []models.Target{
			{ID: "target-center", Location: targetCenter},
			{ID: "runway-number", Location: runwayNumber},
		},
	}
}

// Load reads a YAML scenario file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks everything that can be checked before running a scenario.
// Per-object physics problems such as a zero mass surface later as domain
// errors on the affected rows.
func (c Config) Validate() error {
	const op = "config"
	if err := c.Constants.Validate(); err != nil {
		return err
	}
	if !(c.Simulation.TimeSlice > 0) {
		return physics.ConfigError(op, "simulation.time_slice must be positive, got %v", c.Simulation.TimeSlice)
	}
	if c.Simulation.MaxSteps <= 0 {
		return physics.ConfigError(op, "simulation.max_steps must be positive, got %d", c.Simulation.MaxSteps)
	}
	if c.Simulation.CacheSize < 0 {
		return physics.ConfigError(op, "simulation.cache_size must not be negative, got %d", c.Simulation.CacheSize)
	}
	if c.Simulation.Workers < 0 {
		return physics.ConfigError(op, "simulation.workers must not be negative, got %d", c.Simulation.Workers)
	}
	if len(c.Batch.AltitudesFeet) == 0 {
		return physics.ConfigError(op, "batch.altitudes_ft is empty")
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if t.ID == "" {
			return physics.ConfigError(op, "target at %v has no id", t.Location)
		}
		if seen[t.ID] {
			return physics.ConfigError(op, "duplicate target id %q", t.ID)
		}
		seen[t.ID] = true
	}
	if id := c.Scenario.TargetID; id != "" && !seen[id] {
		return physics.ConfigError(op, "scenario.target_id %q is not in targets", id)
	}
	return nil
}

// SimulatorOptions returns the simulator settings from the file
func (c Config) SimulatorOptions() []physics.SimulatorOption {
	return []physics.SimulatorOption{
		physics.WithTimeSlice(c.Simulation.TimeSlice),
		physics.WithMaxSteps(c.Simulation.MaxSteps),
	}
}
