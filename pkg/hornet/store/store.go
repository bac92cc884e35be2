// Package store defines persistence for rulebases and derivation
// logs. Implementations: store/sqlite (durable) and store/memstore
// (in-memory, used by tests and the default engine).
package store

import (
	"context"

	"github.com/cognicore/hornet/pkg/hornet/proof"
	"github.com/cognicore/hornet/pkg/hornet/term"
)

// Store persists rules and derivations. Rules keep insertion order;
// appending a rule already present is a no-op, matching the KB's
// monotone, duplicate-free growth.
type Store interface {
	Close() error

	// Rules
	AppendRule(ctx context.Context, r term.Rule) error
	Rules(ctx context.Context) ([]term.Rule, error)

	// Derivation log
	AppendDerivation(ctx context.Context, d proof.Derivation) error
	Derivations(ctx context.Context, limit int) ([]proof.Derivation, error)
}
