package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/server"
	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live observer over HTTP and websocket",
		Long: `Serve advances the simulation on a fixed wall-clock interval and exposes
it to observers: bootstrap and stats over HTTP, per-tick grid updates
over websocket.`,
		RunE: serveSimulation,
	}

	addModelFlags(cmd)
	cmd.Flags().String("addr", "", "Listen address")
	cmd.Flags().Int("tick-ms", 0, "Wall-clock milliseconds per simulation step")
	return cmd
}

func serveSimulation(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	applyModelFlags(cmd, &cfg)
	if cmd.Flags().Changed("addr") {
		cfg.Serve.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("tick-ms") {
		cfg.Serve.TickMS, _ = cmd.Flags().GetInt("tick-ms")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := sim.NewModel(cfg.Parameters())
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	interval := time.Duration(cfg.Serve.TickMS) * time.Millisecond
	srv := server.New(m, runID, interval, logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go srv.Run(ctx)

	logger.Info("observer server listening",
		"addr", cfg.Serve.Addr,
		"run_id", runID,
		"population", m.TotalPopulation(),
		"tick_ms", cfg.Serve.TickMS)
	return http.ListenAndServe(cfg.Serve.Addr, srv.Routes())
}
