package sim

import "fmt"

// Parameters holds every knob of a run. All values are fixed at model
// construction; nothing here changes mid-run.
type Parameters struct {
	// PopulationDensity is the Bernoulli probability that a grid cell is
	// occupied by an agent at initialization.
	PopulationDensity float64
	// DeathRate is the probability that an agent due for recovery dies
	// instead.
	DeathRate float64
	// TransferRate scales the per-action infection risk into an actual
	// transmission probability.
	TransferRate float64
	// InitialInfectionRate is the Bernoulli probability that a placed agent
	// starts out Infected.
	InitialInfectionRate float64

	// Width and Height are the grid dimensions in cells.
	Width  int
	Height int

	// GovernmentStringency is subtracted from the stimulus of every go-out
	// action while the lockdown is active.
	GovernmentStringency float64
	// GovernmentActionThreshold is the infected fraction above which the
	// lockdown is imposed. Once imposed it never lifts.
	GovernmentActionThreshold float64

	// GlobalAspiration seeds every agent's aspiration and anchors the
	// deprivation term of the stimulus.
	GlobalAspiration float64

	// RecoveryDays is how many ticks an infection lasts before it resolves
	// into recovery or death.
	RecoveryDays int
	// Habituation controls how fast action probabilities shift on
	// reward/penalty. Zero freezes the action distribution.
	Habituation float64
	// LearningRate controls how fast the aspiration tracks realized stimuli.
	LearningRate float64
	// QuarantineProb is the chance a freshly infected agent self-quarantines.
	QuarantineProb float64

	// Seed initializes the single random source owned by the model. The same
	// seed reproduces a run exactly.
	Seed int64
}

// DefaultParameters mirrors the original interface defaults: the slider
// midpoints plus the fixed recovery and learning constants.
func DefaultParameters() Parameters {
	return Parameters{
		PopulationDensity:         0.5,
		DeathRate:                 0.02,
		TransferRate:              0.3,
		InitialInfectionRate:      0.02,
		Width:                     40,
		Height:                    40,
		GovernmentStringency:      0.5,
		GovernmentActionThreshold: 0.3,
		GlobalAspiration:          0.3,
		RecoveryDays:              11,
		Habituation:               0.1,
		LearningRate:              0.1,
		QuarantineProb:            0.3,
		Seed:                      1,
	}
}

// Validate rejects out-of-range parameters. Construction is the only place
// errors can surface; a validated model never fails mid-run.
func (p Parameters) Validate() error {
	probs := []struct {
		name  string
		value float64
	}{
		{"population density", p.PopulationDensity},
		{"death rate", p.DeathRate},
		{"transfer rate", p.TransferRate},
		{"initial infection rate", p.InitialInfectionRate},
		{"government stringency", p.GovernmentStringency},
		{"government action threshold", p.GovernmentActionThreshold},
		{"global aspiration", p.GlobalAspiration},
		{"habituation", p.Habituation},
		{"learning rate", p.LearningRate},
		{"quarantine probability", p.QuarantineProb},
	}
	for _, pr := range probs {
		if !validProb(pr.value) {
			return fmt.Errorf("%s %v out of range [0,1]", pr.name, pr.value)
		}
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("grid dimensions %dx%d must be positive", p.Width, p.Height)
	}
	if p.RecoveryDays <= 0 {
		return fmt.Errorf("recovery days %d must be positive", p.RecoveryDays)
	}
	return nil
}
