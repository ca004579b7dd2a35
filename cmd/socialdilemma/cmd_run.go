package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/chart"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/collect"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/config"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/render"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation headless",
		Long: `Run steps the simulation until every infection has resolved or the step
cap is reached, then writes the requested outputs.`,
		RunE: runSimulation,
	}

	addModelFlags(cmd)
	cmd.Flags().Int("steps", 0, "Maximum number of steps")
	cmd.Flags().String("csv", "", "Write the per-tick statistics to a CSV file")
	cmd.Flags().String("tick-log", "", "Append per-tick snapshots to a compressed JSONL file")
	cmd.Flags().String("epidemic-chart", "", "Write the infection curves to a PNG file")
	cmd.Flags().String("behavior-chart", "", "Write the behavior curves to a PNG file")
	cmd.Flags().String("gif", "", "Write the grid animation to a GIF file")
	cmd.Flags().String("avi", "", "Write the grid animation to an MJPEG AVI file")
	cmd.Flags().Int("frame-every", 0, "Capture an animation frame every N steps")
	cmd.Flags().Int("cell-size", 0, "Animation cell size in pixels")
	return cmd
}

// addModelFlags registers the parameter overrides shared by run and serve.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("density", 0, "Population density")
	cmd.Flags().Float64("death-rate", 0, "Probability that a resolving infection is fatal")
	cmd.Flags().Float64("transfer-rate", 0, "Infection transfer rate")
	cmd.Flags().Float64("initial-infection-rate", 0, "Fraction of agents infected at start")
	cmd.Flags().Int("width", 0, "Grid width in cells")
	cmd.Flags().Int("height", 0, "Grid height in cells")
	cmd.Flags().Float64("stringency", 0, "Government stringency during lockdown")
	cmd.Flags().Float64("threshold", 0, "Infected fraction that triggers the lockdown")
	cmd.Flags().Float64("global-aspiration", 0, "Initial and global aspiration level")
	cmd.Flags().Int("recovery-days", 0, "Infection duration in steps")
	cmd.Flags().Int64("seed", 0, "Random seed")
}

// applyModelFlags copies changed flags over the scenario.
func applyModelFlags(cmd *cobra.Command, cfg *config.File) {
	set := map[string]func(){
		"density": func() {
			cfg.Model.PopulationDensity, _ = cmd.Flags().GetFloat64("density")
		},
		"death-rate": func() {
			cfg.Model.DeathRate, _ = cmd.Flags().GetFloat64("death-rate")
		},
		"transfer-rate": func() {
			cfg.Model.TransferRate, _ = cmd.Flags().GetFloat64("transfer-rate")
		},
		"initial-infection-rate": func() {
			cfg.Model.InitialInfectionRate, _ = cmd.Flags().GetFloat64("initial-infection-rate")
		},
		"width": func() {
			cfg.Model.Width, _ = cmd.Flags().GetInt("width")
		},
		"height": func() {
			cfg.Model.Height, _ = cmd.Flags().GetInt("height")
		},
		"stringency": func() {
			cfg.Model.GovernmentStringency, _ = cmd.Flags().GetFloat64("stringency")
		},
		"threshold": func() {
			cfg.Model.GovernmentActionThreshold, _ = cmd.Flags().GetFloat64("threshold")
		},
		"global-aspiration": func() {
			cfg.Model.GlobalAspiration, _ = cmd.Flags().GetFloat64("global-aspiration")
		},
		"recovery-days": func() {
			cfg.Model.RecoveryDays, _ = cmd.Flags().GetInt("recovery-days")
		},
		"seed": func() {
			cfg.Model.Seed, _ = cmd.Flags().GetInt64("seed")
		},
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	applyModelFlags(cmd, &cfg)
	if cmd.Flags().Changed("steps") {
		cfg.Run.MaxSteps, _ = cmd.Flags().GetInt("steps")
	}
	if cmd.Flags().Changed("frame-every") {
		cfg.Run.FrameEvery, _ = cmd.Flags().GetInt("frame-every")
	}
	if cmd.Flags().Changed("cell-size") {
		cfg.Run.CellSize, _ = cmd.Flags().GetInt("cell-size")
	}
	for flag, dst := range map[string]*string{
		"csv":            &cfg.Run.CSV,
		"tick-log":       &cfg.Run.TickLog,
		"epidemic-chart": &cfg.Run.EpidemicChart,
		"behavior-chart": &cfg.Run.BehaviorChart,
		"gif":            &cfg.Run.GIF,
		"avi":            &cfg.Run.AVI,
	} {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := sim.NewModel(cfg.Parameters())
	if err != nil {
		return err
	}

	coll := collect.New()
	var tlog *collect.TickLogger
	if cfg.Run.TickLog != "" {
		tlog, err = collect.NewTickLogger(cfg.Run.TickLog, coll.RunID())
		if err != nil {
			return fmt.Errorf("open tick log: %w", err)
		}
		defer tlog.Close()
	}

	var observeErr error
	m.SetObserver(func(m *sim.Model) {
		coll.Collect(m)
		if tlog != nil {
			if err := tlog.Append(coll.Last()); err != nil && observeErr == nil {
				observeErr = err
			}
		}
	})

	animate := cfg.Run.GIF != "" || cfg.Run.AVI != ""
	var frames []image.Image
	capture := func() error {
		if !animate {
			return nil
		}
		frame, err := render.Frame(m, cfg.Run.CellSize)
		if err != nil {
			return err
		}
		frames = append(frames, frame)
		return nil
	}
	if err := capture(); err != nil {
		return err
	}

	logger.Info("run started",
		"run_id", coll.RunID(),
		"population", m.TotalPopulation(),
		"grid", fmt.Sprintf("%dx%d", m.Grid().Width(), m.Grid().Height()),
		"seed", cfg.Model.Seed,
		"max_steps", cfg.Run.MaxSteps)

	for step := 0; step < cfg.Run.MaxSteps && m.Running(); step++ {
		m.Step()
		logger.Debug("step",
			"step", m.StepCount(),
			"susceptible", m.SusceptibleNumber(),
			"infected", m.InfectionNumber(),
			"recovered", m.RecoveredNumber(),
			"dead", m.DeadNumber(),
			"stay_in", m.StayInNumber(),
			"lockdown", m.Lockdown())
		if m.StepCount()%cfg.Run.FrameEvery == 0 {
			if err := capture(); err != nil {
				return err
			}
		}
	}
	if observeErr != nil {
		return fmt.Errorf("write tick log: %w", observeErr)
	}

	logger.Info("run finished",
		"steps", m.StepCount(),
		"infected", m.InfectionNumber(),
		"recovered", m.RecoveredNumber(),
		"dead", m.DeadNumber(),
		"lockdown", m.Lockdown(),
		"halted", !m.Running())

	if cfg.Run.CSV != "" {
		if err := coll.SaveCSV(cfg.Run.CSV); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		logger.Info("wrote csv", "path", cfg.Run.CSV)
	}
	if cfg.Run.EpidemicChart != "" {
		if err := chart.SaveEpidemic(cfg.Run.EpidemicChart, coll.Series()); err != nil {
			return fmt.Errorf("write epidemic chart: %w", err)
		}
		logger.Info("wrote epidemic chart", "path", cfg.Run.EpidemicChart)
	}
	if cfg.Run.BehaviorChart != "" {
		if err := chart.SaveBehavior(cfg.Run.BehaviorChart, coll.Series()); err != nil {
			return fmt.Errorf("write behavior chart: %w", err)
		}
		logger.Info("wrote behavior chart", "path", cfg.Run.BehaviorChart)
	}
	if cfg.Run.GIF != "" {
		if err := render.SaveGIF(cfg.Run.GIF, frames, cfg.Run.GIFDelay); err != nil {
			return fmt.Errorf("write gif: %w", err)
		}
		logger.Info("wrote gif", "path", cfg.Run.GIF, "frames", len(frames))
	}
	if cfg.Run.AVI != "" {
		if err := render.SaveAVI(cfg.Run.AVI, frames, cfg.Run.FPS); err != nil {
			return fmt.Errorf("write avi: %w", err)
		}
		logger.Info("wrote avi", "path", cfg.Run.AVI, "frames", len(frames))
	}
	return nil
}
