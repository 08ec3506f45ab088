package store

import (
	"context"
	"sync"

	"github.com/ahrav/go-featurize/internal/domain"
)

// InMemoryStore holds the encoded state in memory. Suitable for tests and
// single-process development; production deployments use the file, bolt,
// or redis backends. It round-trips through the same envelope encoding as
// the durable backends so serialization bugs surface in tests too.
type InMemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore { return &InMemoryStore{} }

// Save replaces the held state wholesale.
func (s *InMemoryStore) Save(_ context.Context, state *domain.FittedState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Load decodes the held state.
func (s *InMemoryStore) Load(_ context.Context) (*domain.FittedState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, domain.ErrStateNotFound
	}
	return decodeState(s.data)
}
