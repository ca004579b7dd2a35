package sim

// InfectionState tracks the progression of the virus in one agent.
// The progression is strictly monotonic:
//
//	Clean -> Infected -> {Recovered, Dead}
//
// Recovered and Dead are terminal sinks. A Dead agent stays in the schedule
// forever but is inert: it is skipped by every later activation.
type InfectionState int

const (
	Clean InfectionState = iota
	Infected
	Recovered
	Dead
)

func (s InfectionState) String() string {
	switch s {
	case Clean:
		return "Clean"
	case Infected:
		return "Infected"
	case Recovered:
		return "Recovered"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// QuarantineState is a side attribute orthogonal to the infection state.
// It is drawn once at infection onset and never changes afterwards; it is
// only meaningful while the agent is Infected.
type QuarantineState int

const (
	Free QuarantineState = iota
	Quarantine
)

func (s QuarantineState) String() string {
	if s == Quarantine {
		return "Quarantine"
	}
	return "Free"
}

// Action is one of the four behaviors an agent can pick each tick.
type Action int

const (
	StayIn Action = iota
	Party
	BuyGrocery
	HelpElderly
)

// ActionCount is the size of the action set.
const ActionCount = 4

var actionNames = [ActionCount]string{"Stay In", "Party", "Buy grocery", "Help elderly"}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// actionInfectionProb is the infection risk each action carries. Contact-heavy
// actions are riskier. These are fixed properties of the model, not parameters.
var actionInfectionProb = [ActionCount]float64{
	StayIn:      0.1,
	Party:       0.7,
	BuyGrocery:  0.5,
	HelpElderly: 0.5,
}

// ActionInfectionProb returns the infection risk of an action.
func ActionInfectionProb(a Action) float64 {
	return actionInfectionProb[a]
}

// Position addresses one cell of the grid.
type Position struct {
	X int
	Y int
}

// Agent is one individual living on a single grid cell. All mutation happens
// inside its own activation; other code only reads it through the accessors.
type Agent struct {
	id    int
	model *Model
	pos   Position

	infection    InfectionState
	quarantine   QuarantineState
	infectedTime int

	aspiration    float64
	actionProb    [ActionCount]float64
	actionHistory []Action
}

// ID returns the agent's schedule-unique identifier.
func (ag *Agent) ID() int { return ag.id }

// Position returns the agent's fixed grid cell.
func (ag *Agent) Position() Position { return ag.pos }

// InfectionState returns the agent's current infection state.
func (ag *Agent) InfectionState() InfectionState { return ag.infection }

// QuarantineState returns the agent's quarantine attribute.
func (ag *Agent) QuarantineState() QuarantineState { return ag.quarantine }

// Aspiration returns the agent's current satisfaction baseline.
func (ag *Agent) Aspiration() float64 { return ag.aspiration }

// ActionProbabilities returns a copy of the agent's categorical action
// distribution, indexed by Action.
func (ag *Agent) ActionProbabilities() [ActionCount]float64 { return ag.actionProb }

// LastAction returns the most recent action taken, if any. Before the first
// activation the history is empty and ok is false.
func (ag *Agent) LastAction() (Action, bool) {
	if len(ag.actionHistory) == 0 {
		return StayIn, false
	}
	return ag.actionHistory[len(ag.actionHistory)-1], true
}

// ActionHistoryLen reports how many ticks this agent has acted in.
func (ag *Agent) ActionHistoryLen() int { return len(ag.actionHistory) }
