package sim

import "math/rand"

// aspirationPull weights the deprivation term of the stimulus: agents whose
// satisfaction sits below the shared global aspiration feel an extra push to
// act, agents above it are satiated.
const aspirationPull = 0.1

// Step runs one full activation of the agent: pick an action, judge its
// payoff against the aspiration, adapt the action distribution and the
// aspiration, then run the infection dynamics for the chosen action.
// Dead agents are inert.
func (ag *Agent) Step(rng *rand.Rand) {
	if ag.infection == Dead {
		return
	}

	action := ag.chooseAction(rng)
	ag.actionHistory = append(ag.actionHistory, action)

	stimulus := ag.model.stimulus(ag, action)
	ag.reinforce(action, stimulus)
	ag.aspiration += ag.model.params.LearningRate * (stimulus - ag.aspiration)

	ag.model.updateInfection(ag, action, rng)
}

// chooseAction draws one action from the agent's categorical distribution.
func (ag *Agent) chooseAction(rng *rand.Rand) Action {
	r := rng.Float64()
	acc := 0.0
	last := StayIn
	for i, p := range ag.actionProb {
		if p <= 0 {
			continue
		}
		acc += p
		last = Action(i)
		if r < acc {
			return last
		}
	}
	// Floating-point shortfall: the draw landed inside the rounding gap at the
	// top of the distribution.
	return last
}

// stimulus is the realized payoff of an action this tick. Contact-heavy
// actions pay more (that is the dilemma), lockdown stringency taxes every
// go-out action, and the deprivation term pulls payoffs up for agents short
// of the shared aspiration target. The result is clamped to [-1, 1], which
// also bounds the aspiration it feeds.
func (m *Model) stimulus(ag *Agent, action Action) float64 {
	s := actionInfectionProb[action]
	if m.lockdown && action != StayIn {
		s -= m.params.GovernmentStringency
	}
	s += aspirationPull * (m.params.GlobalAspiration - ag.aspiration)
	return clamp(s, -1, 1)
}

// reinforce applies the Bush-Mosteller update for the chosen action. A payoff
// at or above the aspiration rewards the action; a payoff below it penalizes
// the action. The remaining probability mass is redistributed proportionally
// so the distribution keeps summing to 1, then clamped and renormalized
// defensively.
func (ag *Agent) reinforce(action Action, stimulus float64) {
	h := ag.model.params.Habituation
	p := ag.actionProb[action]
	rest := 1 - p

	if stimulus >= ag.aspiration {
		ag.actionProb[action] = p + h*rest
		// Others shrink by the factor that keeps the total at 1.
		for i := range ag.actionProb {
			if Action(i) != action {
				ag.actionProb[i] *= 1 - h
			}
		}
	} else {
		freed := h * p
		ag.actionProb[action] = p - freed
		if rest > 0 {
			scale := 1 + freed/rest
			for i := range ag.actionProb {
				if Action(i) != action {
					ag.actionProb[i] *= scale
				}
			}
		} else {
			// The chosen action held all the mass; proportional shares are
			// undefined, so split the freed mass evenly.
			share := freed / float64(ActionCount-1)
			for i := range ag.actionProb {
				if Action(i) != action {
					ag.actionProb[i] += share
				}
			}
		}
	}

	normalizeProbs(&ag.actionProb)
}
