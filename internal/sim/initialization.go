package sim

import "math/rand"

// NewModel validates the parameters, builds the grid and places the
// population. Each cell is occupied with probability PopulationDensity; each
// placed agent starts Infected with probability InitialInfectionRate.
// Initially seeded infections begin at time 0 and are not quarantined.
func NewModel(params Parameters) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		params:   params,
		rng:      rand.New(rand.NewSource(params.Seed)),
		grid:     NewGrid(params.Width, params.Height),
		schedule: NewRandomActivation(),
		running:  true,
	}

	id := 0
	for y := 0; y < params.Height; y++ {
		for x := 0; x < params.Width; x++ {
			if m.rng.Float64() >= params.PopulationDensity {
				continue
			}
			ag := newAgent(id, m, Position{X: x, Y: y})
			if m.rng.Float64() < params.InitialInfectionRate {
				ag.infection = Infected
				ag.quarantine = Free
				ag.infectedTime = 0
			}
			if err := m.grid.Place(ag, ag.pos); err != nil {
				return nil, err
			}
			m.schedule.Add(ag)
			id++
		}
	}
	m.totalPopulation = id

	return m, nil
}

// newAgent builds a Clean, free agent with the shared aspiration baseline and
// a uniform action distribution.
func newAgent(id int, m *Model, pos Position) *Agent {
	ag := &Agent{
		id:         id,
		model:      m,
		pos:        pos,
		infection:  Clean,
		quarantine: Free,
		aspiration: m.params.GlobalAspiration,
	}
	for i := range ag.actionProb {
		ag.actionProb[i] = 1.0 / ActionCount
	}
	return ag
}
