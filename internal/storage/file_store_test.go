package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomodoro/focus/internal/model"
	"pomodoro/focus/internal/storage"
)

func TestFileStoreKeyValueRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.yaml")

	store, err := storage.OpenFileStore(path)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Save(ctx, model.SettingsWorkKey, "30"); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := storage.OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen file store: %v", err)
	}
	value, err := reopened.Load(ctx, model.SettingsWorkKey)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if value != "30" {
		t.Fatalf("expected 30, got %q", value)
	}

	if err := reopened.Remove(ctx, model.SettingsWorkKey); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := reopened.Load(ctx, model.SettingsWorkKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yaml")
	if err := os.WriteFile(path, []byte("values: [unterminated"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store, err := storage.OpenFileStore(path)
	if err != nil {
		t.Fatalf("open corrupt store: %v", err)
	}
	if _, err := store.Load(context.Background(), "anything"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected empty store, got %v", err)
	}
}

func TestFileStoreUpsertDayReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := storage.OpenFileStore(filepath.Join(t.TempDir(), "store.yaml"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)
	first := model.SessionHistoryEntry{DateKey: model.DayKey(now), Day: model.ISODate(now), WorkTime: 50, BreakTime: 10, Sessions: 2}
	second := model.SessionHistoryEntry{DateKey: model.DayKey(now), Day: model.ISODate(now), WorkTime: 75, BreakTime: 10, Sessions: 3}

	if err := store.UpsertDay(ctx, first); err != nil {
		t.Fatalf("upsert first: %v", err)
	}
	if err := store.UpsertDay(ctx, second); err != nil {
		t.Fatalf("upsert second: %v", err)
	}

	entries, err := store.ListHistory(ctx, "", "")
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].Sessions != 3 || entries[0].WorkTime != 75 || entries[0].BreakTime != 10 {
		t.Fatalf("expected latest snapshot, got %+v", entries[0])
	}
}

func TestFileStoreTasks(t *testing.T) {
	ctx := context.Background()
	store, err := storage.OpenFileStore(filepath.Join(t.TempDir(), "store.yaml"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}

	day := "Sun Oct 18 2026"
	for _, task := range []model.Task{
		{ID: "a", DateKey: day, Text: "write report"},
		{ID: "b", DateKey: day, Text: "review"},
		{ID: "c", DateKey: "Mon Oct 19 2026", Text: "tomorrow"},
	} {
		if err := store.AddTask(ctx, task); err != nil {
			t.Fatalf("add task %s: %v", task.ID, err)
		}
	}

	toggled, err := store.ToggleTask(ctx, "b")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("expected task b to be completed")
	}
	if err := store.DeleteTask(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteTask(ctx, "a"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}

	tasks, err := store.ListTasks(ctx, day)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "b" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}
