// Package memstore is the in-memory store.Store implementation.
package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/hornet/pkg/hornet/proof"
	"github.com/cognicore/hornet/pkg/hornet/store"
	"github.com/cognicore/hornet/pkg/hornet/term"
)

// Store keeps rules and derivations in memory.
type Store struct {
	mu          sync.RWMutex
	rules       []term.Rule
	ruleKeys    map[string]bool
	derivations []proof.Derivation
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{ruleKeys: make(map[string]bool)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AppendRule stores a rule unless an identical one is present.
func (s *Store) AppendRule(ctx context.Context, r term.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.String()
	if s.ruleKeys[key] {
		return nil
	}
	s.ruleKeys[key] = true
	s.rules = append(s.rules, r)
	return nil
}

// Rules returns all stored rules in insertion order.
func (s *Store) Rules(ctx context.Context) ([]term.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]term.Rule, len(s.rules))
	copy(out, s.rules)
	return out, nil
}

// AppendDerivation stores one derivation record.
func (s *Store) AppendDerivation(ctx context.Context, d proof.Derivation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.derivations = append(s.derivations, d)
	return nil
}

// Derivations returns up to limit records, oldest first. limit <= 0
// means all.
func (s *Store) Derivations(ctx context.Context, limit int) ([]proof.Derivation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.derivations)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]proof.Derivation, n)
	copy(out, s.derivations[:n])
	return out, nil
}
