// Package memory provides an in-process session store. Suitable for a
// single-instance deployment and for tests.
package memory

import (
	"context"
	"sync"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// Store keeps flow state and credentials in memory, keyed by session id.
type Store struct {
	mu          sync.Mutex
	flows       map[string]domain.FlowState
	credentials map[string]domain.Credentials
}

// NewStore creates a new in-memory session store.
func NewStore() *Store {
	return &Store{
		flows:       make(map[string]domain.FlowState),
		credentials: make(map[string]domain.Credentials),
	}
}

// SaveFlowState stores the pending flow for a session, replacing any
// previous one.
func (s *Store) SaveFlowState(_ context.Context, state domain.FlowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[state.SessionID] = state
	return nil
}

// ConsumeFlowState returns and removes the pending flow for a session.
func (s *Store) ConsumeFlowState(_ context.Context, sessionID string) (*domain.FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.flows[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.flows, sessionID)

	if state.IsExpired() {
		return nil, domain.ErrNotFound
	}
	return &state, nil
}

// SaveCredentials stores the credentials for a session.
func (s *Store) SaveCredentials(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[creds.SessionID] = creds
	return nil
}

// GetCredentials returns the credentials for a session.
func (s *Store) GetCredentials(_ context.Context, sessionID string) (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, ok := s.credentials[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &creds, nil
}

// DeleteCredentials removes the credentials for a session.
func (s *Store) DeleteCredentials(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.credentials, sessionID)
	return nil
}
