package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"pomodoro/focus/internal/model"
)

type fileDocument struct {
	Values  map[string]string           `yaml:"values"`
	History []model.SessionHistoryEntry `yaml:"history"`
	Tasks   []model.Task                `yaml:"tasks"`
}

// FileStore keeps every record in a single YAML document. Each write
// rewrites the whole file through a temp file and rename.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  fileDocument
}

// OpenFileStore loads path. A missing file starts empty; an unreadable or
// corrupt file is logged and also starts empty.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	store := &FileStore{path: path}
	rawData, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if err == nil {
		if parseErr := yaml.Unmarshal(rawData, &store.doc); parseErr != nil {
			log.Printf("store file %s is corrupt, starting empty: %v", path, parseErr)
			store.doc = fileDocument{}
		}
	}
	if store.doc.Values == nil {
		store.doc.Values = make(map[string]string)
	}
	return store, nil
}

func (s *FileStore) Load(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.doc.Values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *FileStore) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Values[key] = value
	return s.flushLocked()
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.Values[key]; !ok {
		return nil
	}
	delete(s.doc.Values, key)
	return s.flushLocked()
}

func (s *FileStore) UpsertDay(_ context.Context, entry model.SessionHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.History {
		if s.doc.History[i].DateKey == entry.DateKey {
			s.doc.History[i] = entry
			return s.flushLocked()
		}
	}
	s.doc.History = append(s.doc.History, entry)
	return s.flushLocked()
}

func (s *FileStore) GetDay(_ context.Context, dateKey string) (*model.SessionHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.doc.History {
		if entry.DateKey == dateKey {
			found := entry
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) ListHistory(_ context.Context, from, to string) ([]model.SessionHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]model.SessionHistoryEntry, 0, len(s.doc.History))
	for _, entry := range s.doc.History {
		if InRange(entry.Day, from, to) {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Day < entries[j].Day
	})
	return entries, nil
}

func (s *FileStore) ClearHistory(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.History = nil
	return s.flushLocked()
}

func (s *FileStore) ListTasks(_ context.Context, dateKey string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]model.Task, 0)
	for _, task := range s.doc.Tasks {
		if task.DateKey == dateKey {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *FileStore) AddTask(_ context.Context, task model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Tasks = append(s.doc.Tasks, task)
	return s.flushLocked()
}

func (s *FileStore) ToggleTask(_ context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Tasks {
		if s.doc.Tasks[i].ID == id {
			s.doc.Tasks[i].Completed = !s.doc.Tasks[i].Completed
			if err := s.flushLocked(); err != nil {
				return nil, err
			}
			toggled := s.doc.Tasks[i]
			return &toggled, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Tasks {
		if s.doc.Tasks[i].ID == id {
			s.doc.Tasks = append(s.doc.Tasks[:i], s.doc.Tasks[i+1:]...)
			return s.flushLocked()
		}
	}
	return ErrNotFound
}

func (s *FileStore) flushLocked() error {
	serialized, err := yaml.Marshal(&s.doc)
	if err != nil {
		return fmt.Errorf("marshal store yaml: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
