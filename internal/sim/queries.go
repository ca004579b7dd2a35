package sim

// Aggregate queries for the observation layer. Every query is a full
// population scan computed on demand; at this scale that is cheaper than
// keeping counters coherent. With an empty population every query returns 0
// rather than failing.

// SusceptibleNumber counts agents that have never been infected.
func (m *Model) SusceptibleNumber() int {
	n := 0
	for _, ag := range m.schedule.agents {
		if ag.infection == Clean {
			n++
		}
	}
	return n
}

// InfectionNumber counts currently infected agents.
func (m *Model) InfectionNumber() int {
	n := 0
	for _, ag := range m.schedule.agents {
		if ag.infection == Infected {
			n++
		}
	}
	return n
}

// RecoveredNumber counts recovered agents.
func (m *Model) RecoveredNumber() int {
	n := 0
	for _, ag := range m.schedule.agents {
		if ag.infection == Recovered {
			n++
		}
	}
	return n
}

// DeadNumber returns the running death toll. It is a counter rather than a
// scan so it is trivially monotonic.
func (m *Model) DeadNumber() int { return m.deadAgents }

// StayInNumber counts agents whose latest action was Stay In. Before the
// first step nobody has acted and the count is 0.
func (m *Model) StayInNumber() int {
	n := 0
	for _, ag := range m.schedule.agents {
		if a, ok := ag.LastAction(); ok && a == StayIn {
			n++
		}
	}
	return n
}

// StayOutNumber counts agents whose latest action was anything but Stay In.
func (m *Model) StayOutNumber() int {
	n := 0
	for _, ag := range m.schedule.agents {
		if a, ok := ag.LastAction(); ok && a != StayIn {
			n++
		}
	}
	return n
}

// AverageAspiration returns the mean aspiration over the whole population,
// dead agents included, or 0 for an empty population.
func (m *Model) AverageAspiration() float64 {
	if len(m.schedule.agents) == 0 {
		return 0
	}
	total := 0.0
	for _, ag := range m.schedule.agents {
		total += ag.aspiration
	}
	return total / float64(len(m.schedule.agents))
}

// AverageStayInProbability returns the population mean of the Stay In
// probability, or 0 for an empty population.
func (m *Model) AverageStayInProbability() float64 {
	if len(m.schedule.agents) == 0 {
		return 0
	}
	total := 0.0
	for _, ag := range m.schedule.agents {
		total += ag.actionProb[StayIn]
	}
	return total / float64(len(m.schedule.agents))
}

// AverageGoOutProbability returns the population mean of the combined
// probability of the three go-out actions, or 0 for an empty population.
func (m *Model) AverageGoOutProbability() float64 {
	if len(m.schedule.agents) == 0 {
		return 0
	}
	total := 0.0
	for _, ag := range m.schedule.agents {
		total += ag.actionProb[Party] + ag.actionProb[BuyGrocery] + ag.actionProb[HelpElderly]
	}
	return total / float64(len(m.schedule.agents))
}
