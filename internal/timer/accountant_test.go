package timer

import (
	"context"
	"testing"
	"time"

	"pomodoro/focus/internal/model"
)

func TestAccountantRuleTable(t *testing.T) {
	now := time.Date(2026, 10, 18, 11, 0, 0, 0, time.Local)
	settings := model.Settings{WorkMinutes: 30, BreakMinutes: 7}

	tests := []struct {
		name      string
		ended     model.Phase
		wantCount int
		wantWork  int
		wantBreak int
	}{
		{name: "work", ended: model.PhaseWork, wantCount: 1, wantWork: 30},
		{name: "break", ended: model.PhaseBreak, wantBreak: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountant := NewAccountant(nil, model.DailyAccumulator{DateKey: model.DayKey(now)})
			if err := accountant.Record(context.Background(), tt.ended, settings, now); err != nil {
				t.Fatalf("record: %v", err)
			}
			got := accountant.Snapshot()
			if got.SessionCount != tt.wantCount || got.WorkMinutes != tt.wantWork || got.BreakMinutes != tt.wantBreak {
				t.Fatalf("expected (%d, %d, %d), got %+v", tt.wantCount, tt.wantWork, tt.wantBreak, got)
			}
		})
	}
}

func TestAccountantResetsOnNewDayBeforeApplying(t *testing.T) {
	today := time.Date(2026, 10, 18, 0, 5, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)
	store := newMemStore()

	accountant := NewAccountant(store, model.DailyAccumulator{
		DateKey:      model.DayKey(yesterday),
		SessionCount: 5,
		WorkMinutes:  125,
		BreakMinutes: 25,
	})

	if err := accountant.Record(context.Background(), model.PhaseWork, model.DefaultSettings(), today); err != nil {
		t.Fatalf("record: %v", err)
	}

	got := accountant.Snapshot()
	if got.DateKey != model.DayKey(today) {
		t.Fatalf("expected date key %q, got %q", model.DayKey(today), got.DateKey)
	}
	if got.SessionCount != 1 || got.WorkMinutes != 25 || got.BreakMinutes != 0 {
		t.Fatalf("expected fresh day totals (1, 25, 0), got %+v", got)
	}
	if _, ok := store.history[model.DayKey(yesterday)]; ok {
		t.Fatal("yesterday must not be rewritten by today's completion")
	}
}

func TestAccountantWriteThroughReplacesSameDay(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 0, 0, 0, time.Local)
	store := newMemStore()
	key := model.DayKey(now)

	first := NewAccountant(store, model.DailyAccumulator{DateKey: key, SessionCount: 2, WorkMinutes: 50, BreakMinutes: 10})
	if err := first.WriteThrough(context.Background(), now); err != nil {
		t.Fatalf("first write: %v", err)
	}
	second := NewAccountant(store, model.DailyAccumulator{DateKey: key, SessionCount: 3, WorkMinutes: 75, BreakMinutes: 10})
	if err := second.WriteThrough(context.Background(), now.Add(time.Minute)); err != nil {
		t.Fatalf("second write: %v", err)
	}

	if len(store.history) != 1 {
		t.Fatalf("expected one entry, got %d", len(store.history))
	}
	entry := store.history[key]
	if entry.Sessions != 3 || entry.WorkTime != 75 || entry.BreakTime != 10 {
		t.Fatalf("expected (3, 75, 10), got (%d, %d, %d)", entry.Sessions, entry.WorkTime, entry.BreakTime)
	}
}

func TestAccountantRestoreIgnoresOtherDays(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.Local)
	store := newMemStore()
	yesterday := model.DayKey(now.AddDate(0, 0, -1))
	store.history[yesterday] = model.SessionHistoryEntry{DateKey: yesterday, Sessions: 9, WorkTime: 225}

	accountant := NewAccountant(store, model.DailyAccumulator{})
	if err := accountant.Restore(context.Background(), now); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := accountant.Snapshot()
	if got.SessionCount != 0 || got.DateKey != model.DayKey(now) {
		t.Fatalf("expected empty accumulator for today, got %+v", got)
	}
}
