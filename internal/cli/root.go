// Package cli wires configuration, storage and the timer engine into the
// pomodoro command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pomodoro/focus/internal/config"
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "pomodoro",
		Short: "Pomodoro timer server with daily session tracking",
		Long: `pomodoro runs a work/break timer behind a small HTTP API and keeps
one history entry per day with completed work sessions and minutes.

Configuration comes from pomodoro.yaml (or CONFIG_FILE) and environment
variables. Running without a subcommand starts the server.`,
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(passphraseCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
