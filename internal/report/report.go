// Package report summarizes session history over a date range and renders it
// as a PDF.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-pdf/fpdf"

	"pomodoro/focus/internal/model"
)

type Summary struct {
	From    string                      `json:"from,omitempty"`
	To      string                      `json:"to,omitempty"`
	Entries []model.SessionHistoryEntry `json:"entries"`
	Totals  model.HistoryTotals         `json:"totals"`
}

// Summarize sums the entries and orders them by day. Each entry is already a
// per-day snapshot so no day is counted twice.
func Summarize(from, to string, entries []model.SessionHistoryEntry) Summary {
	sorted := make([]model.SessionHistoryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Day < sorted[j].Day
	})

	summary := Summary{From: from, To: to, Entries: sorted}
	for _, entry := range sorted {
		summary.Totals.WorkTime += entry.WorkTime
		summary.Totals.BreakTime += entry.BreakTime
		summary.Totals.Sessions += entry.Sessions
		summary.Totals.Days++
	}
	return summary
}

// FormatMinutes renders a minute count as "1h 05m" or "45m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func rangeLabel(from, to string) string {
	switch {
	case from == "" && to == "":
		return "All time"
	case from == "":
		return "Until " + to
	case to == "":
		return "Since " + from
	case from == to:
		return from
	default:
		return from + " to " + to
	}
}

// WritePDF renders the summary as a one-table A4 report.
func WritePDF(w io.Writer, summary Summary) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Time Tracking Report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Time Tracking Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, rangeLabel(summary.From, summary.To))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Day", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Sessions", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Work", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Break", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	if len(summary.Entries) == 0 {
		pdf.CellFormat(190, 8, "No sessions recorded.", "1", 1, "C", false, 0, "")
	}
	for _, entry := range summary.Entries {
		pdf.CellFormat(70, 8, entry.DateKey, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", entry.Sessions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, FormatMinutes(entry.WorkTime), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, FormatMinutes(entry.BreakTime), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, fmt.Sprintf("Total (%d days)", summary.Totals.Days), "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%d", summary.Totals.Sessions), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, FormatMinutes(summary.Totals.WorkTime), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, FormatMinutes(summary.Totals.BreakTime), "1", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
