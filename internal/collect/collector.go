// Package collect gathers per-tick aggregates from a running model, the way
// the original model's data collector sampled the population at the start of
// every step, and exports them for reporting.
package collect

import (
	"github.com/google/uuid"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

// Snapshot is one tick's worth of aggregates, taken before the agents act.
type Snapshot struct {
	Step          int     `json:"step"`
	Susceptible   int     `json:"susceptible"`
	Infected      int     `json:"infected"`
	Recovered     int     `json:"recovered"`
	Dead          int     `json:"dead"`
	StayIn        int     `json:"stay_in"`
	GoOut         int     `json:"go_out"`
	AvgAspiration float64 `json:"avg_aspiration"`
	AvgStayInProb float64 `json:"avg_stay_in_prob"`
	AvgGoOutProb  float64 `json:"avg_go_out_prob"`
	Lockdown      bool    `json:"lockdown"`
}

// Take samples every aggregate query of the model once.
func Take(m *sim.Model) Snapshot {
	return Snapshot{
		Step:          m.StepCount(),
		Susceptible:   m.SusceptibleNumber(),
		Infected:      m.InfectionNumber(),
		Recovered:     m.RecoveredNumber(),
		Dead:          m.DeadNumber(),
		StayIn:        m.StayInNumber(),
		GoOut:         m.StayOutNumber(),
		AvgAspiration: m.AverageAspiration(),
		AvgStayInProb: m.AverageStayInProbability(),
		AvgGoOutProb:  m.AverageGoOutProbability(),
		Lockdown:      m.Lockdown(),
	}
}

// Collector accumulates one Snapshot per tick. Install Collect as the model
// observer so sampling happens at the start of every step.
type Collector struct {
	runID  string
	series []Snapshot
}

// New creates a collector tagged with a fresh run ID.
func New() *Collector {
	return &Collector{runID: uuid.NewString()}
}

// RunID identifies this run in exported artifacts.
func (c *Collector) RunID() string { return c.runID }

// Collect samples the model and appends the snapshot to the series.
func (c *Collector) Collect(m *sim.Model) {
	c.series = append(c.series, Take(m))
}

// Series returns the collected snapshots in tick order.
func (c *Collector) Series() []Snapshot { return c.series }

// Last returns the most recent snapshot, or a zero snapshot before any
// collection happened.
func (c *Collector) Last() Snapshot {
	if len(c.series) == 0 {
		return Snapshot{}
	}
	return c.series[len(c.series)-1]
}
