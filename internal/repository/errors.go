package repository

import "pomodoro/focus/internal/storage"

var ErrNotFound = storage.ErrNotFound
