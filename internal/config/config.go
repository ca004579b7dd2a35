// Package config loads YAML scenario files. A scenario bundles the model
// parameters with run and serve options; every key is optional and absent
// keys keep the defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

// File is one scenario.
type File struct {
	Model ModelConfig `yaml:"model"`
	Run   RunConfig   `yaml:"run"`
	Serve ServeConfig `yaml:"serve"`
}

// ModelConfig mirrors sim.Parameters with yaml keys.
type ModelConfig struct {
	PopulationDensity         float64 `yaml:"population_density"`
	DeathRate                 float64 `yaml:"death_rate"`
	TransferRate              float64 `yaml:"transfer_rate"`
	InitialInfectionRate      float64 `yaml:"initial_infection_rate"`
	Width                     int     `yaml:"width"`
	Height                    int     `yaml:"height"`
	GovernmentStringency      float64 `yaml:"government_stringency"`
	GovernmentActionThreshold float64 `yaml:"government_action_threshold"`
	GlobalAspiration          float64 `yaml:"global_aspiration"`
	RecoveryDays              int     `yaml:"recovery_days"`
	Habituation               float64 `yaml:"habituation"`
	LearningRate              float64 `yaml:"learning_rate"`
	QuarantineProb            float64 `yaml:"quarantine_prob"`
	Seed                      int64   `yaml:"seed"`
}

// RunConfig controls a headless run and its file outputs. Empty paths
// disable the corresponding export.
type RunConfig struct {
	MaxSteps      int    `yaml:"max_steps"`
	CSV           string `yaml:"csv"`
	TickLog       string `yaml:"tick_log"`
	EpidemicChart string `yaml:"epidemic_chart"`
	BehaviorChart string `yaml:"behavior_chart"`
	GIF           string `yaml:"gif"`
	AVI           string `yaml:"avi"`
	FrameEvery    int    `yaml:"frame_every"`
	CellSize      int    `yaml:"cell_size"`
	GIFDelay      int    `yaml:"gif_delay"`
	FPS           int    `yaml:"fps"`
}

// ServeConfig controls the observer server.
type ServeConfig struct {
	Addr   string `yaml:"addr"`
	TickMS int    `yaml:"tick_ms"`
}

// Default returns the scenario used when no file is given: the original
// slider defaults, a 200-step cap, and the original server port.
func Default() File {
	p := sim.DefaultParameters()
	return File{
		Model: ModelConfig{
			PopulationDensity:         p.PopulationDensity,
			DeathRate:                 p.DeathRate,
			TransferRate:              p.TransferRate,
			InitialInfectionRate:      p.InitialInfectionRate,
			Width:                     p.Width,
			Height:                    p.Height,
			GovernmentStringency:      p.GovernmentStringency,
			GovernmentActionThreshold: p.GovernmentActionThreshold,
			GlobalAspiration:          p.GlobalAspiration,
			RecoveryDays:              p.RecoveryDays,
			Habituation:               p.Habituation,
			LearningRate:              p.LearningRate,
			QuarantineProb:            p.QuarantineProb,
			Seed:                      p.Seed,
		},
		Run: RunConfig{
			MaxSteps:   200,
			FrameEvery: 2,
			CellSize:   10,
			GIFDelay:   5,
			FPS:        10,
		},
		Serve: ServeConfig{
			Addr:   ":8521",
			TickMS: 200,
		},
	}
}

// Load reads a scenario file over the defaults. Unknown keys are an error so
// typos do not silently fall back to defaults.
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return parse(b)
}

func parse(b []byte) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks the run/serve options and the model parameters.
func (f File) Validate() error {
	if f.Run.MaxSteps <= 0 {
		return fmt.Errorf("run.max_steps %d must be positive", f.Run.MaxSteps)
	}
	if f.Run.FrameEvery <= 0 {
		return fmt.Errorf("run.frame_every %d must be positive", f.Run.FrameEvery)
	}
	if f.Run.CellSize <= 0 {
		return fmt.Errorf("run.cell_size %d must be positive", f.Run.CellSize)
	}
	if f.Serve.TickMS <= 0 {
		return fmt.Errorf("serve.tick_ms %d must be positive", f.Serve.TickMS)
	}
	return f.Parameters().Validate()
}

// Parameters converts the model section into sim parameters.
func (f File) Parameters() sim.Parameters {
	return sim.Parameters{
		PopulationDensity:         f.Model.PopulationDensity,
		DeathRate:                 f.Model.DeathRate,
		TransferRate:              f.Model.TransferRate,
		InitialInfectionRate:      f.Model.InitialInfectionRate,
		Width:                     f.Model.Width,
		Height:                    f.Model.Height,
		GovernmentStringency:      f.Model.GovernmentStringency,
		GovernmentActionThreshold: f.Model.GovernmentActionThreshold,
		GlobalAspiration:          f.Model.GlobalAspiration,
		RecoveryDays:              f.Model.RecoveryDays,
		Habituation:               f.Model.Habituation,
		LearningRate:              f.Model.LearningRate,
		QuarantineProb:            f.Model.QuarantineProb,
		Seed:                      f.Model.Seed,
	}
}
