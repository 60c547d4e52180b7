package db

import (
	"context"
	"sort"
	"sync"

	"poolcost/core/pricing"
	"poolcost/internal/errors"
)

// MemoryStore keeps rate tables in process. Contents are lost on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	index map[string]map[string]pricing.Record // franchise -> id -> record
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]map[string]pricing.Record)}
}

// Close is a no-op
func (s *MemoryStore) Close() error { return nil }

// List returns a franchise's tables, default first then newest
func (s *MemoryStore) List(_ context.Context, franchiseID string) ([]pricing.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pricing.Record, 0, len(s.index[franchiseID]))
	for _, rec := range s.index[franchiseID] {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns one table
func (s *MemoryStore) Get(_ context.Context, franchiseID, id string) (*pricing.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.index[franchiseID][id]
	if !ok {
		return nil, errors.NotFound("rate table", id)
	}
	out := copyRecord(rec)
	return &out, nil
}

// GetDefault returns the flagged default, or the newest table when none
// is flagged
func (s *MemoryStore) GetDefault(ctx context.Context, franchiseID string) (*pricing.Record, error) {
	records, _ := s.List(ctx, franchiseID)
	if len(records) == 0 {
		return nil, errors.NotFound("default rate table", franchiseID)
	}
	return &records[0], nil
}

// Save inserts or replaces a table. Saving a default clears the flag on
// the franchise's other tables.
func (s *MemoryStore) Save(_ context.Context, rec *pricing.Record) error {
	prepare(rec)

	s.mu.Lock()
	defer s.mu.Unlock()

	tables, ok := s.index[rec.FranchiseID]
	if !ok {
		tables = make(map[string]pricing.Record)
		s.index[rec.FranchiseID] = tables
	}
	if rec.IsDefault {
		for id, other := range tables {
			other.IsDefault = false
			tables[id] = other
		}
	}
	tables[rec.ID] = copyRecord(*rec)
	return nil
}

// Delete removes a table
func (s *MemoryStore) Delete(_ context.Context, franchiseID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[franchiseID][id]; !ok {
		return errors.NotFound("rate table", id)
	}
	delete(s.index[franchiseID], id)
	return nil
}

func copyRecord(rec pricing.Record) pricing.Record {
	rec.Document = append([]byte(nil), rec.Document...)
	return rec
}

var _ pricing.Store = (*MemoryStore)(nil)
