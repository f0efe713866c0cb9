package timer

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"pomodoro/focus/internal/model"
	"pomodoro/focus/internal/storage"
)

var errStoreDown = errors.New("store down")

type memStore struct {
	mu        sync.Mutex
	values    map[string]string
	history   map[string]model.SessionHistoryEntry
	upserts   int
	failSave  bool
	failWrite bool
}

func newMemStore() *memStore {
	return &memStore{
		values:  make(map[string]string),
		history: make(map[string]model.SessionHistoryEntry),
	}
}

func (m *memStore) Load(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (m *memStore) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errStoreDown
	}
	m.values[key] = value
	return nil
}

func (m *memStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStore) UpsertDay(_ context.Context, entry model.SessionHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return errStoreDown
	}
	m.upserts++
	m.history[entry.DateKey] = entry
	return nil
}

func (m *memStore) GetDay(_ context.Context, dateKey string) (*model.SessionHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.history[dateKey]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &entry, nil
}

func (m *memStore) ListHistory(_ context.Context, from, to string) ([]model.SessionHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]model.SessionHistoryEntry, 0, len(m.history))
	for _, entry := range m.history {
		if storage.InRange(entry.Day, from, to) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *memStore) ClearHistory(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = make(map[string]model.SessionHistoryEntry)
	return nil
}

type countingTone struct {
	mu    sync.Mutex
	plays int
	err   error
	panic bool
}

func (c *countingTone) Play() error {
	c.mu.Lock()
	c.plays++
	c.mu.Unlock()
	if c.panic {
		panic("audio device exploded")
	}
	return c.err
}

func (c *countingTone) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plays
}

type closingTone struct {
	countingTone
	closes int
}

func (c *closingTone) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func newTestLogger() (*log.Logger, *syncBuffer) {
	out := &syncBuffer{}
	return log.New(out, "", 0), out
}
