// Package memory provides an in-memory rule store, primarily for
// testing and for callers that manage persistence themselves.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cyp0633/librecur/recurrence"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no rule carries the requested UID.
var ErrNotFound = errors.New("rule not found")

// Store maps UIDs to recurrence rules behind a read-write mutex. Rules
// are cloned on the way in and out, so callers never share state with
// the store.
type Store struct {
	mu    sync.RWMutex
	rules map[string]*recurrence.Rule
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{rules: make(map[string]*recurrence.Rule)}
}

// Put stores a clone of the rule under uid, generating a UID when uid
// is empty, and returns the UID used.
func (s *Store) Put(_ context.Context, uid string, r *recurrence.Rule) string {
	if uid == "" {
		uid = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[uid] = r.Clone()
	return uid
}

// Get returns a clone of the rule stored under uid.
func (s *Store) Get(_ context.Context, uid string) (*recurrence.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return r.Clone(), nil
}

// Delete removes the rule stored under uid.
func (s *Store) Delete(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[uid]; !ok {
		return ErrNotFound
	}
	delete(s.rules, uid)
	return nil
}

// List returns all stored UIDs in ascending order.
func (s *Store) List(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uids := make([]string, 0, len(s.rules))
	for uid := range s.rules {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids
}
