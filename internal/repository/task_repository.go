package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pomodoro/focus/internal/model"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *TaskRepository) ListTasks(ctx context.Context, dateKey string) ([]model.Task, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, date_key, text, completed, created_at
		 FROM tasks
		 WHERE date_key = ?
		 ORDER BY position ASC`,
		dateKey,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// AddTask appends the task to the end of its day's list.
func (r *TaskRepository) AddTask(ctx context.Context, task model.Task) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var position int
	if err := tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM tasks WHERE date_key = ?`,
		task.DateKey,
	).Scan(&position); err != nil {
		return fmt.Errorf("next task position: %w", err)
	}

	createdAt := task.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO tasks (id, date_key, text, completed, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.DateKey,
		task.Text,
		task.Completed,
		position,
		formatTime(createdAt),
	); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ToggleTask(ctx context.Context, id string) (*model.Task, error) {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(
		ctx,
		`UPDATE tasks SET completed = 1 - completed WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}

	row := tx.QueryRowContext(
		ctx,
		`SELECT id, date_key, text, completed, created_at FROM tasks WHERE id = ?`,
		id,
	)
	task, err := scanTask(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit task toggle: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(s scanner) (*model.Task, error) {
	task := model.Task{}
	var createdAt string
	err := s.Scan(
		&task.ID,
		&task.DateKey,
		&task.Text,
		&task.Completed,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse task created_at: %w", err)
	}
	task.CreatedAt = parsedCreatedAt
	return &task, nil
}
