// Package memory provides an in-memory IntentRepository, suitable for a
// single-process deployment and for tests.
package memory

import (
	"context"
	"sync"

	"github.com/railpath-hq/railrouter/pkg/models"
	"github.com/railpath-hq/railrouter/pkg/storage"
)

// Store is a mutex-guarded map of intents. Values are cloned on the way in
// and out so callers never alias stored state.
type Store struct {
	mu      sync.Mutex
	intents map[string]*models.Intent
}

var _ storage.IntentRepository = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		intents: make(map[string]*models.Intent),
	}
}

// Save stores a copy of the intent, replacing any previous record.
func (s *Store) Save(_ context.Context, intent *models.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.intents[intent.ID] = intent.Clone()
	return nil
}

// Get returns a copy of the intent, or false if it does not exist.
func (s *Store) Get(_ context.Context, id string) (*models.Intent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[id]
	if !ok {
		return nil, false, nil
	}
	return intent.Clone(), true, nil
}

// Len returns the number of stored intents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.intents)
}
