package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomodoro/focus/internal/config"
	"pomodoro/focus/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().Bool("dry-run", false, "List pending migrations without applying them")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cfg.StoreDriver != config.DriverSQLite {
		fmt.Fprintf(out, "store driver %s has no migrations\n", cfg.StoreDriver)
		return nil
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	migrationsFS := db.MigrationsFS(cfg.MigrationsDir)
	var names []string
	if dryRun {
		names, err = db.PendingMigrations(database, migrationsFS)
	} else {
		names, err = db.ApplyMigrations(database, migrationsFS)
	}
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Fprintln(out, "database is up to date")
		return nil
	}
	verb := "applied"
	if dryRun {
		verb = "pending"
	}
	for _, name := range names {
		fmt.Fprintf(out, "  %s %s\n", verb, name)
	}
	return nil
}
