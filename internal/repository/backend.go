package repository

import "database/sql"

// SQLiteBackend serves the key/value, history and task stores from one
// database.
type SQLiteBackend struct {
	*KVRepository
	*HistoryRepository
	*TaskRepository
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{
		KVRepository:      NewKVRepository(db),
		HistoryRepository: NewHistoryRepository(db),
		TaskRepository:    NewTaskRepository(db),
	}
}
