package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestFullyInfectedPopulationRecoversAndHalts(t *testing.T) {
	params := DefaultParameters()
	params.Width = 2
	params.Height = 2
	params.PopulationDensity = 1.0
	params.InitialInfectionRate = 1.0
	params.DeathRate = 0
	params.RecoveryDays = 1
	m, err := NewModel(params)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	if got := m.TotalPopulation(); got != 4 {
		t.Fatalf("TotalPopulation = %d, want 4", got)
	}
	if got := m.InfectionNumber(); got != 4 {
		t.Fatalf("tick 0: InfectionNumber = %d, want 4", got)
	}
	for _, ag := range m.Agents() {
		if ag.QuarantineState() != Free {
			t.Errorf("seeded infection must start Free, got %v", ag.QuarantineState())
		}
	}

	if m.Step() {
		t.Fatal("run should halt on the tick everyone recovers")
	}
	if got := m.RecoveredNumber(); got != 4 {
		t.Fatalf("RecoveredNumber = %d, want 4", got)
	}
	if m.DeadNumber() != 0 {
		t.Fatalf("DeadNumber = %d, want 0", m.DeadNumber())
	}
	if m.Running() {
		t.Fatal("Running should be false after eradication")
	}

	// Stepping a halted model is a no-op.
	steps := m.StepCount()
	if m.Step() {
		t.Fatal("halted model must stay halted")
	}
	if m.StepCount() != steps {
		t.Fatalf("halted model advanced from %d to %d", steps, m.StepCount())
	}
}

func TestEmptyPopulation(t *testing.T) {
	params := DefaultParameters()
	params.Width = 5
	params.Height = 5
	params.PopulationDensity = 0
	m, err := NewModel(params)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	if m.TotalPopulation() != 0 {
		t.Fatalf("TotalPopulation = %d, want 0", m.TotalPopulation())
	}
	if m.SusceptibleNumber() != 0 || m.InfectionNumber() != 0 ||
		m.RecoveredNumber() != 0 || m.DeadNumber() != 0 ||
		m.StayInNumber() != 0 || m.StayOutNumber() != 0 {
		t.Fatal("all counts must be 0 for an empty population")
	}
	if m.AverageAspiration() != 0 || m.AverageStayInProbability() != 0 || m.AverageGoOutProbability() != 0 {
		t.Fatal("all averages must be 0 for an empty population")
	}

	// The termination identity 0+0+0 == 0 holds immediately.
	if m.Step() {
		t.Fatal("empty run should halt on the first step")
	}
}

func TestRunInvariants(t *testing.T) {
	params := DefaultParameters()
	params.Width = 15
	params.Height = 15
	params.PopulationDensity = 0.8
	params.InitialInfectionRate = 0.2
	params.TransferRate = 0.6
	params.DeathRate = 0.3
	params.RecoveryDays = 3
	params.Seed = 99
	m, err := NewModel(params)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	prevStates := make(map[int]InfectionState)
	for _, ag := range m.Agents() {
		prevStates[ag.ID()] = ag.InfectionState()
	}
	prevDead := 0
	sawLockdown := false

	for tick := 0; tick < 500 && m.Running(); tick++ {
		m.Step()

		for _, ag := range m.Agents() {
			sum := probSum(ag.ActionProbabilities())
			if math.Abs(sum-1) > 1e-6 {
				t.Fatalf("tick %d agent %d: probabilities sum to %v", tick, ag.ID(), sum)
			}
			prev := prevStates[ag.ID()]
			cur := ag.InfectionState()
			if (prev == Dead || prev == Recovered) && cur != prev {
				t.Fatalf("tick %d agent %d: terminal state %v changed to %v", tick, ag.ID(), prev, cur)
			}
			if prev == Infected && cur == Clean {
				t.Fatalf("tick %d agent %d: infection reverted to Clean", tick, ag.ID())
			}
			prevStates[ag.ID()] = cur
		}

		if m.DeadNumber() < prevDead {
			t.Fatalf("tick %d: dead count decreased %d -> %d", tick, prevDead, m.DeadNumber())
		}
		prevDead = m.DeadNumber()

		if sawLockdown && !m.Lockdown() {
			t.Fatalf("tick %d: lockdown flag reset", tick)
		}
		sawLockdown = sawLockdown || m.Lockdown()

		acted := 0
		for _, ag := range m.Agents() {
			if _, ok := ag.LastAction(); ok {
				acted++
			}
		}
		if got := m.StayInNumber() + m.StayOutNumber(); got != acted {
			t.Fatalf("tick %d: stay-in %d + stay-out %d != agents with actions %d",
				tick, m.StayInNumber(), m.StayOutNumber(), acted)
		}
	}

	if m.Running() {
		t.Fatal("run did not terminate within 500 ticks")
	}
	if got := m.RecoveredNumber() + m.DeadNumber() + m.SusceptibleNumber(); got != m.TotalPopulation() {
		t.Fatalf("termination identity broken: %d != %d", got, m.TotalPopulation())
	}
	// Terminal: the flag never comes back.
	m.Step()
	if m.Running() {
		t.Fatal("Running came back after termination")
	}
}

func TestLockdownIsSticky(t *testing.T) {
	params := DefaultParameters()
	params.Width = 6
	params.Height = 6
	params.PopulationDensity = 1.0
	params.InitialInfectionRate = 1.0
	params.GovernmentActionThreshold = 0.1
	params.RecoveryDays = 50
	params.Seed = 5
	m, err := NewModel(params)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	m.Step()
	if !m.Lockdown() {
		t.Fatal("lockdown should trigger with everyone infected")
	}
	for i := 0; i < 10; i++ {
		m.Step()
		if !m.Lockdown() {
			t.Fatalf("lockdown lifted on tick %d", m.StepCount())
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	params := DefaultParameters()
	params.Width = 12
	params.Height = 12
	params.Seed = 2024
	params.InitialInfectionRate = 0.1

	run := func() []int {
		m, err := NewModel(params)
		if err != nil {
			t.Fatalf("NewModel: %v", err)
		}
		var series []int
		for i := 0; i < 60 && m.Running(); i++ {
			m.Step()
			series = append(series,
				m.SusceptibleNumber(), m.InfectionNumber(),
				m.RecoveredNumber(), m.DeadNumber(),
				m.StayInNumber())
		}
		return series
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("replays diverged in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("replays diverged at index %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestTransmissionMechanics(t *testing.T) {
	params := DefaultParameters()
	params.Width = 2
	params.Height = 1
	params.PopulationDensity = 1.0
	params.InitialInfectionRate = 0
	params.TransferRate = 1.0
	params.QuarantineProb = 1.0
	m, err := NewModel(params)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	agents := m.Agents()
	if len(agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(agents))
	}
	source, target := agents[0], agents[1]
	rng := rand.New(rand.NewSource(11))

	t.Run("no infected neighbor means no infection", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			m.updateInfection(target, Party, rng)
		}
		if target.InfectionState() != Clean {
			t.Fatal("agent infected without any infected neighbor")
		}
	})

	source.infection = Infected

	t.Run("staying in never infects", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			m.updateInfection(target, StayIn, rng)
		}
		if target.InfectionState() != Clean {
			t.Fatal("Stay In transmitted the infection")
		}
	})

	t.Run("going out next to an infected agent infects", func(t *testing.T) {
		for i := 0; i < 100 && target.InfectionState() == Clean; i++ {
			m.updateInfection(target, Party, rng)
		}
		if target.InfectionState() != Infected {
			t.Fatal("agent never caught the infection at p=0.7")
		}
		if target.QuarantineState() != Quarantine {
			t.Fatal("QuarantineProb=1 must quarantine on onset")
		}
		if target.infectedTime != m.StepCount() {
			t.Fatalf("infectedTime = %d, want %d", target.infectedTime, m.StepCount())
		}
	})

	t.Run("progression resolves after recovery days", func(t *testing.T) {
		m.stepCounter = target.infectedTime + params.RecoveryDays
		m.params.DeathRate = 1.0
		m.updateInfection(target, StayIn, rng)
		if target.InfectionState() != Dead {
			t.Fatal("DeathRate=1 must kill at resolution")
		}
		if m.DeadNumber() != 1 {
			t.Fatalf("DeadNumber = %d, want 1", m.DeadNumber())
		}
	})
}
