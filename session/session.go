// Package session holds the current credential and resolved role, and persists them
// in durable client-side storage under fixed keys.
package session

import (
	"sync"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// State is a copy of the session contents
type State struct {
	Token string
	Role  models.Role
	Email string
}

// Authenticated reports whether a credential is present
func (s State) Authenticated() bool {
	return s.Token != ""
}

// Session is the single process-wide holder of the bearer credential and role.
// It is passed explicitly to every component that needs it.
type Session struct {
	mu    sync.RWMutex
	state State
}

// New creates an empty, unauthenticated session
func New() *Session {
	return &Session{}
}

// Token returns the bearer credential, or "" when logged out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Role returns the resolved role, or models.RoleUnresolved
func (s *Session) Role() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Role
}

// State returns a copy of the current contents
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the session contents, as done once per login
func (s *Session) Set(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Clear drops the credential and role, as done at logout
func (s *Session) Clear() {
	s.Set(State{})
}
