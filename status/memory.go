package status

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and single-run deployments
// that do not need records to survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Create(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("status: record %s already exists", rec.ID)
	}
	cp := *rec
	if cp.State == "" {
		cp.State = StateProcessing
	}
	if cp.StartedAt.IsZero() {
		cp.StartedAt = time.Now()
	}
	s.records[rec.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) SetProgress(id, progress string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if rec.Terminal() {
		return ErrTerminal
	}
	rec.Progress = progress
	return nil
}

func (s *MemoryStore) Complete(id string, result json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if rec.Terminal() {
		return ErrTerminal
	}
	now := time.Now()
	rec.State = StateCompleted
	rec.Result = result
	rec.CompletedAt = &now
	return nil
}

func (s *MemoryStore) Fail(id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if rec.Terminal() {
		return ErrTerminal
	}
	now := time.Now()
	rec.State = StateFailed
	rec.Error = message
	rec.CompletedAt = &now
	return nil
}

func (s *MemoryStore) List() ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}
