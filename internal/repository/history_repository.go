package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pomodoro/focus/internal/model"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// UpsertDay stores the entry, replacing the totals of an existing row for the
// same day rather than adding to them.
func (r *HistoryRepository) UpsertDay(ctx context.Context, entry model.SessionHistoryEntry) error {
	updatedAt := entry.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO session_history (
			date_key, day, work_minutes, break_minutes, sessions, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date_key) DO UPDATE SET
			day = excluded.day,
			work_minutes = excluded.work_minutes,
			break_minutes = excluded.break_minutes,
			sessions = excluded.sessions,
			updated_at = excluded.updated_at`,
		entry.DateKey,
		entry.Day,
		entry.WorkTime,
		entry.BreakTime,
		entry.Sessions,
		formatTime(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert history day: %w", err)
	}
	return nil
}

func (r *HistoryRepository) GetDay(ctx context.Context, dateKey string) (*model.SessionHistoryEntry, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT date_key, day, work_minutes, break_minutes, sessions, updated_at
		 FROM session_history
		 WHERE date_key = ?`,
		dateKey,
	)
	return scanHistoryEntry(row)
}

// ListHistory returns entries whose ISO day lies in [from, to], oldest first.
// Empty bounds are open.
func (r *HistoryRepository) ListHistory(ctx context.Context, from, to string) ([]model.SessionHistoryEntry, error) {
	if from == "" {
		from = "0000-01-01"
	}
	if to == "" {
		to = "9999-12-31"
	}

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT date_key, day, work_minutes, break_minutes, sessions, updated_at
		 FROM session_history
		 WHERE day >= ? AND day <= ?
		 ORDER BY day ASC`,
		from,
		to,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := make([]model.SessionHistoryEntry, 0)
	for rows.Next() {
		entry, scanErr := scanHistoryEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

func (r *HistoryRepository) ClearHistory(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHistoryEntry(s scanner) (*model.SessionHistoryEntry, error) {
	entry := model.SessionHistoryEntry{}
	var updatedAt string
	err := s.Scan(
		&entry.DateKey,
		&entry.Day,
		&entry.WorkTime,
		&entry.BreakTime,
		&entry.Sessions,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan history entry: %w", err)
	}

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse history updated_at: %w", err)
	}
	entry.UpdatedAt = parsedUpdatedAt
	return &entry, nil
}
