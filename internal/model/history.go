package model

import "time"

// SessionHistoryEntry is the stored snapshot of one calendar day. There is at
// most one entry per DateKey; later writes replace earlier ones.
type SessionHistoryEntry struct {
	DateKey   string    `json:"date" yaml:"date"`
	Day       string    `json:"day" yaml:"day"`
	WorkTime  int       `json:"workTime" yaml:"work_time"`
	BreakTime int       `json:"breakTime" yaml:"break_time"`
	Sessions  int       `json:"sessions" yaml:"sessions"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// DailyAccumulator holds today's running totals.
type DailyAccumulator struct {
	DateKey      string `json:"dateKey"`
	SessionCount int    `json:"sessionCount"`
	WorkMinutes  int    `json:"todayWorkMinutes"`
	BreakMinutes int    `json:"todayBreakMinutes"`
}

// Entry converts the accumulator into the history row for its day.
func (a DailyAccumulator) Entry(now time.Time) SessionHistoryEntry {
	return SessionHistoryEntry{
		DateKey:   a.DateKey,
		Day:       ISODate(now),
		WorkTime:  a.WorkMinutes,
		BreakTime: a.BreakMinutes,
		Sessions:  a.SessionCount,
		UpdatedAt: now.UTC(),
	}
}

type HistoryTotals struct {
	WorkTime  int `json:"workTime"`
	BreakTime int `json:"breakTime"`
	Sessions  int `json:"sessions"`
	Days      int `json:"days"`
}
