package timer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pomodoro/focus/internal/model"
	"pomodoro/focus/internal/storage"
)

// Accountant owns the daily accumulator. It is not safe for concurrent use;
// the Engine serializes access.
type Accountant struct {
	acc     model.DailyAccumulator
	history storage.HistoryStore
}

func NewAccountant(history storage.HistoryStore, initial model.DailyAccumulator) *Accountant {
	return &Accountant{
		acc:     initial,
		history: history,
	}
}

func (a *Accountant) Snapshot() model.DailyAccumulator {
	return a.acc
}

// Rollover zeroes the counters when now falls on a different day than the
// accumulator. It reports whether a reset happened.
func (a *Accountant) Rollover(now time.Time) bool {
	today := model.DayKey(now)
	if a.acc.DateKey == today {
		return false
	}
	a.acc = model.DailyAccumulator{DateKey: today}
	return true
}

// Restore performs the mount-time rollover and seeds today's counters from
// an already stored history entry for today.
func (a *Accountant) Restore(ctx context.Context, now time.Time) error {
	a.Rollover(now)
	if a.history == nil {
		return nil
	}

	entry, err := a.history.GetDay(ctx, a.acc.DateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore today's totals: %w", err)
	}

	a.acc.SessionCount = entry.Sessions
	a.acc.WorkMinutes = entry.WorkTime
	a.acc.BreakMinutes = entry.BreakTime
	return nil
}

// Record applies one completion of the ending phase, then writes today's
// snapshot through to the history store. The accumulator is updated even
// when the write fails.
func (a *Accountant) Record(ctx context.Context, ended model.Phase, settings model.Settings, now time.Time) error {
	a.Rollover(now)

	switch ended {
	case model.PhaseWork:
		a.acc.SessionCount++
		a.acc.WorkMinutes += settings.WorkMinutes
	case model.PhaseBreak:
		a.acc.BreakMinutes += settings.BreakMinutes
	}

	return a.WriteThrough(ctx, now)
}

// WriteThrough upserts the current snapshot for today once at least one work
// session has been completed.
func (a *Accountant) WriteThrough(ctx context.Context, now time.Time) error {
	if a.history == nil {
		return nil
	}
	if a.acc.SessionCount <= 0 || a.acc.WorkMinutes <= 0 {
		return nil
	}
	if err := a.history.UpsertDay(ctx, a.acc.Entry(now)); err != nil {
		return fmt.Errorf("write history for %s: %w", a.acc.DateKey, err)
	}
	return nil
}
