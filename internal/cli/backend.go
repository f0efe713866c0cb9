package cli

import (
	"fmt"

	"pomodoro/focus/internal/config"
	"pomodoro/focus/internal/db"
	"pomodoro/focus/internal/repository"
	"pomodoro/focus/internal/storage"
)

// openBackend opens the configured store. The returned func releases it.
func openBackend(cfg config.Config) (storage.Backend, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverYAML:
		store, err := storage.OpenFileStore(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	case config.DriverSQLite:
		database, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(database, db.MigrationsFS(cfg.MigrationsDir)); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return repository.NewSQLiteBackend(database), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
