package sim

import "math/rand"

// Model is the simulation controller: it owns the parameters, the grid, the
// schedule and the single seeded random source every stochastic draw comes
// from. One Model is one run; there is no restart.
type Model struct {
	params Parameters
	rng    *rand.Rand

	grid     *Grid
	schedule *RandomActivation

	stepCounter     int
	deadAgents      int
	totalPopulation int
	lockdown        bool
	running         bool

	observer func(*Model)
}

// Params returns the run parameters.
func (m *Model) Params() Parameters { return m.params }

// StepCount returns the current tick index. It is 0 before the first step.
func (m *Model) StepCount() int { return m.stepCounter }

// TotalPopulation returns the number of agents placed at initialization.
// It never changes: dead agents are counted for the rest of the run.
func (m *Model) TotalPopulation() int { return m.totalPopulation }

// Lockdown reports whether the government has imposed the lockdown. The flag
// is sticky: once true it stays true.
func (m *Model) Lockdown() bool { return m.lockdown }

// Running reports whether the run is still going. It flips false exactly once,
// on the tick the virus is eradicated.
func (m *Model) Running() bool { return m.running }

// Grid exposes the spatial grid for read-only observation.
func (m *Model) Grid() *Grid { return m.grid }

// Agents returns every agent in the schedule, dead ones included.
func (m *Model) Agents() []*Agent { return m.schedule.Agents() }

// SetObserver installs the metric-collection hook. It runs at the start of
// every step, before any agent acts, mirroring how reporting sampled the
// population in the original model.
func (m *Model) SetObserver(fn func(*Model)) {
	m.observer = fn
}

// Step advances the simulation by one tick: collect metrics, activate every
// agent once in random order, then apply the lockdown and termination checks.
// It reports whether the run is still going; stepping a halted model is a
// no-op.
func (m *Model) Step() bool {
	if !m.running {
		return false
	}
	m.stepCounter++

	if m.observer != nil {
		m.observer(m)
	}

	m.schedule.Step(m.rng)

	// Impose the lockdown once the infected fraction breaches the threshold.
	if !m.lockdown && m.totalPopulation > 0 {
		frac := float64(m.InfectionNumber()) / float64(m.totalPopulation)
		if frac > m.params.GovernmentActionThreshold {
			m.lockdown = true
		}
	}

	// The virus is eradicated once nobody is Infected anymore.
	if m.RecoveredNumber()+m.DeadNumber()+m.SusceptibleNumber() == m.totalPopulation {
		m.running = false
	}
	return m.running
}
