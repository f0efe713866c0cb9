package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomodoro/focus/internal/report"
	"pomodoro/focus/internal/service"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear daily session history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded days",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded days",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyListCmd.Flags().String("from", "", "First day to include (YYYY-MM-DD)")
	historyListCmd.Flags().String("to", "", "Last day to include (YYYY-MM-DD)")
	historyClearCmd.Flags().Bool("yes", false, "Confirm deletion")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

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

	out := cmd.OutOrStdout()
	if len(summary.Entries) == 0 {
		fmt.Fprintln(out, "No session history found.")
		return nil
	}

	for _, entry := range summary.Entries {
		fmt.Fprintf(out, "  %s  %-16s  %3d sessions  work %-8s  break %s\n",
			entry.Day,
			entry.DateKey,
			entry.Sessions,
			report.FormatMinutes(entry.WorkTime),
			report.FormatMinutes(entry.BreakTime))
	}
	fmt.Fprintf(out, "\nTotal: %d days, %d sessions, work %s, break %s\n",
		summary.Totals.Days,
		summary.Totals.Sessions,
		report.FormatMinutes(summary.Totals.WorkTime),
		report.FormatMinutes(summary.Totals.BreakTime))
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		return fmt.Errorf("refusing to clear history without --yes")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	if apiErr := service.NewHistoryService(backend).Clear(cmd.Context()); apiErr != nil {
		return apiErr
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Session history cleared.")
	return nil
}
