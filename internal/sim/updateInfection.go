package sim

import "math/rand"

// updateInfection runs the epidemic dynamics for one agent after its behavior
// step. Transmission needs three things at once: the agent went out, the
// agent is Clean, and an infected agent sits in the Moore neighborhood. The
// infection then lands with probability actionInfectionProb * TransferRate.
// An Infected agent whose infection has run its course resolves into Dead
// with probability DeathRate, otherwise Recovered; both are terminal.
func (m *Model) updateInfection(ag *Agent, action Action, rng *rand.Rand) {
	switch ag.infection {
	case Clean:
		if action == StayIn {
			return
		}
		if !m.grid.HasInfectedNeighbor(ag.pos) {
			return
		}
		if rng.Float64() < actionInfectionProb[action]*m.params.TransferRate {
			ag.infection = Infected
			ag.infectedTime = m.stepCounter
			if rng.Float64() < m.params.QuarantineProb {
				ag.quarantine = Quarantine
			} else {
				ag.quarantine = Free
			}
		}

	case Infected:
		if m.stepCounter-ag.infectedTime < m.params.RecoveryDays {
			return
		}
		if rng.Float64() < m.params.DeathRate {
			ag.infection = Dead
			m.deadAgents++
		} else {
			ag.infection = Recovered
		}
	}
	// Recovered and Dead are contagion-inert sinks; nothing to do.
}
