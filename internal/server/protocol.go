package server

import (
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/collect"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

// ProtocolVersion is bumped on any breaking change to the observer messages.
// The JSON Schemas under schemas/ document the wire format.
const ProtocolVersion = "1.0"

// Message types.
const (
	TypeBootstrap = "BOOTSTRAP"
	TypeTick      = "TICK"
)

// ParamsPayload is the wire form of the run parameters.
type ParamsPayload struct {
	PopulationDensity         float64 `json:"population_density"`
	DeathRate                 float64 `json:"death_rate"`
	TransferRate              float64 `json:"transfer_rate"`
	InitialInfectionRate      float64 `json:"initial_infection_rate"`
	Width                     int     `json:"width"`
	Height                    int     `json:"height"`
	GovernmentStringency      float64 `json:"government_stringency"`
	GovernmentActionThreshold float64 `json:"government_action_threshold"`
	GlobalAspiration          float64 `json:"global_aspiration"`
	RecoveryDays              int     `json:"recovery_days"`
	Habituation               float64 `json:"habituation"`
	LearningRate              float64 `json:"learning_rate"`
	QuarantineProb            float64 `json:"quarantine_prob"`
	Seed                      int64   `json:"seed"`
}

func paramsPayload(p sim.Parameters) ParamsPayload {
	return ParamsPayload{
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
	}
}

// BootstrapMsg is sent once per websocket connection (and served on
// /api/bootstrap) so a client can size its canvas before the first tick.
type BootstrapMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	RunID           string        `json:"run_id"`
	TotalPopulation int           `json:"total_population"`
	Params          ParamsPayload `json:"params"`
}

// CellState is one occupied cell, enough to color a canvas square.
type CellState struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Infection  string `json:"infection"`
	Quarantine string `json:"quarantine"`
}

// TickMsg streams one simulation tick: the aggregate snapshot plus the
// per-cell states.
type TickMsg struct {
	Type            string           `json:"type"`
	ProtocolVersion string           `json:"protocol_version"`
	RunID           string           `json:"run_id"`
	Running         bool             `json:"running"`
	Snapshot        collect.Snapshot `json:"snapshot"`
	Cells           []CellState      `json:"cells"`
}

func cellStates(m *sim.Model) []CellState {
	agents := m.Agents()
	cells := make([]CellState, 0, len(agents))
	for _, ag := range agents {
		cells = append(cells, CellState{
			X:          ag.Position().X,
			Y:          ag.Position().Y,
			Infection:  ag.InfectionState().String(),
			Quarantine: ag.QuarantineState().String(),
		})
	}
	return cells
}
