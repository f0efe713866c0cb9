package service

import (
	"context"

	apperrors "pomodoro/focus/internal/errors"
	"pomodoro/focus/internal/model"
	"pomodoro/focus/internal/report"
	"pomodoro/focus/internal/storage"
)

type HistoryService struct {
	store storage.HistoryStore
}

func NewHistoryService(store storage.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns the stored days between from and to (YYYY-MM-DD, inclusive).
// Empty bounds are open.
func (s *HistoryService) List(ctx context.Context, from, to string) ([]model.SessionHistoryEntry, *apperrors.APIError) {
	if apiErr := validateRange(from, to); apiErr != nil {
		return nil, apiErr
	}

	entries, err := s.store.ListHistory(ctx, from, to)
	if err != nil {
		return nil, apperrors.Internal("failed to list history")
	}
	if entries == nil {
		entries = []model.SessionHistoryEntry{}
	}
	return entries, nil
}

func (s *HistoryService) Summary(ctx context.Context, from, to string) (*report.Summary, *apperrors.APIError) {
	entries, apiErr := s.List(ctx, from, to)
	if apiErr != nil {
		return nil, apiErr
	}
	summary := report.Summarize(from, to, entries)
	return &summary, nil
}

// Clear removes all stored days. Today's running counters stay in the engine
// and are written again on the next completed work session.
func (s *HistoryService) Clear(ctx context.Context) *apperrors.APIError {
	if err := s.store.ClearHistory(ctx); err != nil {
		return apperrors.Internal("failed to clear history")
	}
	return nil
}

func validateRange(from, to string) *apperrors.APIError {
	for _, raw := range []string{from, to} {
		if raw == "" {
			continue
		}
		if _, err := model.ParseISODate(raw); err != nil {
			return apperrors.BadRequest("invalid_date", "dates must use YYYY-MM-DD")
		}
	}
	if from != "" && to != "" && from > to {
		return apperrors.BadRequest("invalid_range", "from must not be after to")
	}
	return nil
}
