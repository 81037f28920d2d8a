// Package alertstate persists the engine's per-task alert-level aggregate.
// The aggregate is one logical document: read whole, written whole, with the
// engine as its only writer.
package alertstate

import (
	"context"
	"sync"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

type Store interface {
	Get(ctx context.Context) (model.AlertStates, error)
	Set(ctx context.Context, states model.AlertStates) error
}

type MemoryStore struct {
	mu     sync.RWMutex
	states model.AlertStates
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: model.AlertStates{}}
}

func (s *MemoryStore) Get(ctx context.Context) (model.AlertStates, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states.Clone(), nil
}

func (s *MemoryStore) Set(ctx context.Context, states model.AlertStates) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = states.Clone()
	return nil
}
