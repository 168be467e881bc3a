// Package memory is the in-process record store used by tests and local
// development.
package memory

import (
	"context"
	"sync"

	"despesabot/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.ExpenseRecord
}

func New() *Store {
	return &Store{}
}

// Append stores the record in insertion order.
func (s *Store) Append(_ context.Context, rec core.ExpenseRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, rec)
	return nil
}

// Scan returns a copy of all records so callers cannot mutate the store.
func (s *Store) Scan(_ context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ExpenseRecord, len(s.items))
	copy(out, s.items)
	return out, nil
}
