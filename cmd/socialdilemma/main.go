package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/config"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "socialdilemma",
		Short: "Agent-based model of the social dilemma during COVID-19",
		Long: `socialdilemma runs an agent-based epidemic simulation in which agents
learn whether to stay in or go out through aspiration-based reinforcement.

Run it headless to produce CSV, chart and animation outputs, or serve a
live observer over HTTP and websocket.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML scenario file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("socialdilemma version %s\n", version)
		},
	}
}

// newLogger builds the process logger. Debug level only with --verbose.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadScenario resolves the scenario: the --config file if given, defaults
// otherwise.
func loadScenario(cmd *cobra.Command) (config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	f, err := config.Load(path)
	if err != nil {
		return config.File{}, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return f, nil
}
