package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "pomodoro/focus/internal/errors"
	"pomodoro/focus/internal/model"
	"pomodoro/focus/internal/storage"
)

const maxTaskLength = 500

type TaskService struct {
	store storage.TaskStore
	now   func() time.Time
}

func NewTaskService(store storage.TaskStore, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{store: store, now: now}
}

// List returns the tasks of the given day (YYYY-MM-DD), today when empty.
func (s *TaskService) List(ctx context.Context, date string) ([]model.Task, *apperrors.APIError) {
	dateKey, apiErr := s.dayKey(date)
	if apiErr != nil {
		return nil, apiErr
	}

	tasks, err := s.store.ListTasks(ctx, dateKey)
	if err != nil {
		return nil, apperrors.Internal("failed to list tasks")
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Add(ctx context.Context, date, text string) (*model.Task, *apperrors.APIError) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.BadRequest("invalid_task", "task text is required")
	}
	if len(text) > maxTaskLength {
		return nil, apperrors.BadRequest("invalid_task", "task text is too long")
	}

	dateKey, apiErr := s.dayKey(date)
	if apiErr != nil {
		return nil, apiErr
	}

	task := model.Task{
		ID:        uuid.NewString(),
		DateKey:   dateKey,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.AddTask(ctx, task); err != nil {
		return nil, apperrors.Internal("failed to add task")
	}
	return &task, nil
}

func (s *TaskService) Toggle(ctx context.Context, id string) (*model.Task, *apperrors.APIError) {
	task, err := s.store.ToggleTask(ctx, id)
	if err != nil {
		return nil, apperrors.FromStore(err, "task_not_found", "toggle task")
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) *apperrors.APIError {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return apperrors.FromStore(err, "task_not_found", "delete task")
	}
	return nil
}

func (s *TaskService) dayKey(date string) (string, *apperrors.APIError) {
	if date == "" {
		return model.DayKey(s.now()), nil
	}
	dateKey, err := model.DayKeyFromISO(date)
	if err != nil {
		return "", apperrors.BadRequest("invalid_date", "date must use YYYY-MM-DD")
	}
	return dateKey, nil
}
