package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pomodoro/focus/internal/report"
	"pomodoro/focus/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a time tracking PDF for a date range",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().String("from", "", "First day to include (YYYY-MM-DD)")
	reportCmd.Flags().String("to", "", "Last day to include (YYYY-MM-DD)")
	reportCmd.Flags().String("out", "time-tracking.pdf", "Output file")
}

func runReport(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	out, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	summary, apiErr := service.NewHistoryService(backend).Summary(cmd.Context(), from, to)
	if apiErr != nil {
		return apiErr
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.WritePDF(file, *summary); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d days)\n", out, summary.Totals.Days)
	return nil
}
