// Package storage defines the persistence contracts used by the timer engine
// and the services, plus a YAML file backend.
package storage

import (
	"context"
	"errors"

	"pomodoro/focus/internal/model"
)

var ErrNotFound = errors.New("not found")

// Store is a text key/value store. Load returns ErrNotFound for absent keys.
type Store interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// HistoryStore keeps one SessionHistoryEntry per day. UpsertDay replaces any
// existing entry with the same DateKey.
type HistoryStore interface {
	UpsertDay(ctx context.Context, entry model.SessionHistoryEntry) error
	GetDay(ctx context.Context, dateKey string) (*model.SessionHistoryEntry, error)
	ListHistory(ctx context.Context, from, to string) ([]model.SessionHistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

// TaskStore keeps the ordered task list of each day.
type TaskStore interface {
	ListTasks(ctx context.Context, dateKey string) ([]model.Task, error)
	AddTask(ctx context.Context, task model.Task) error
	ToggleTask(ctx context.Context, id string) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Backend bundles the three stores served by one physical store.
type Backend interface {
	Store
	HistoryStore
	TaskStore
}

// InRange reports whether the ISO day lies within [from, to]. Empty bounds
// are open.
func InRange(day, from, to string) bool {
	if from != "" && day < from {
		return false
	}
	if to != "" && day > to {
		return false
	}
	return true
}
