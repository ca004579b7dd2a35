package sim

import "math/rand"

// RandomActivation activates every scheduled agent exactly once per tick, in
// a freshly shuffled uniform random order. Activations are fully synchronous:
// one agent's behavior and infection updates finish before the next agent
// starts. Dead agents stay scheduled forever; their activation is a no-op.
type RandomActivation struct {
	agents []*Agent
}

// NewRandomActivation creates an empty scheduler.
func NewRandomActivation() *RandomActivation {
	return &RandomActivation{}
}

// Add appends an agent to the schedule.
func (s *RandomActivation) Add(ag *Agent) {
	s.agents = append(s.agents, ag)
}

// Agents returns the scheduled agents in insertion order.
func (s *RandomActivation) Agents() []*Agent {
	return s.agents
}

// Step runs one activation pass. The shuffle draws from the model-owned
// random source so a seeded run replays the same activation orders.
func (s *RandomActivation) Step(rng *rand.Rand) {
	order := make([]*Agent, len(s.agents))
	copy(order, s.agents)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	for _, ag := range order {
		ag.Step(rng)
	}
}
