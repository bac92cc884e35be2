// Package sqlite is the durable store.Store implementation, backed by
// modernc.org/sqlite via database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/hornet/pkg/hornet/parse"
	"github.com/cognicore/hornet/pkg/hornet/proof"
	"github.com/cognicore/hornet/pkg/hornet/store"
	"github.com/cognicore/hornet/pkg/hornet/term"
)

// sqliteStore implements store.Store. Rules are persisted in their
// rule-file text form and re-parsed on load, so the database stays
// readable with plain SQL tooling.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite rulebase with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS rules (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	rule_text TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS derivations (
	id TEXT PRIMARY KEY,
	rule_text TEXT NOT NULL,
	premises TEXT NOT NULL,
	conclusion TEXT NOT NULL,
	pass INTEGER NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AppendRule stores a rule in text form; an identical rule already
// present is ignored.
func (s *sqliteStore) AppendRule(ctx context.Context, r term.Rule) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO rules (rule_text) VALUES (?)", r.String())
	return err
}

// Rules loads and re-parses every stored rule in insertion order.
func (s *sqliteStore) Rules(ctx context.Context) ([]term.Rule, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT rule_text FROM rules ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []term.Rule
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		r, err := parse.Rule(text)
		if err != nil {
			return nil, fmt.Errorf("stored rule %q: %w", text, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AppendDerivation stores a derivation record; premises are kept as a
// JSON array of literal texts.
func (s *sqliteStore) AppendDerivation(ctx context.Context, d proof.Derivation) error {
	premises := make([]string, len(d.Premises))
	for i, p := range d.Premises {
		premises[i] = p.String()
	}
	blob, err := json.Marshal(premises)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO derivations (id, rule_text, premises, conclusion, pass) VALUES (?, ?, ?, ?, ?)",
		d.ID, d.Rule, string(blob), d.Conclusion.String(), d.Pass)
	return err
}

// Derivations returns up to limit records ordered by ULID, which
// sorts oldest first. limit <= 0 means all.
func (s *sqliteStore) Derivations(ctx context.Context, limit int) ([]proof.Derivation, error) {
	q := "SELECT id, rule_text, premises, conclusion, pass FROM derivations ORDER BY id"
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, q+" LIMIT ?", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []proof.Derivation
	for rows.Next() {
		var d proof.Derivation
		var premisesBlob, conclusion string
		if err := rows.Scan(&d.ID, &d.Rule, &premisesBlob, &conclusion, &d.Pass); err != nil {
			return nil, err
		}

		var premiseTexts []string
		if err := json.Unmarshal([]byte(premisesBlob), &premiseTexts); err != nil {
			return nil, fmt.Errorf("derivation %s premises: %w", d.ID, err)
		}
		for _, text := range premiseTexts {
			lit, err := parse.Literal(text)
			if err != nil {
				return nil, fmt.Errorf("derivation %s premise %q: %w", d.ID, text, err)
			}
			d.Premises = append(d.Premises, lit)
		}

		c, err := parse.Literal(conclusion)
		if err != nil {
			return nil, fmt.Errorf("derivation %s conclusion %q: %w", d.ID, conclusion, err)
		}
		d.Conclusion = c

		out = append(out, d)
	}
	return out, rows.Err()
}
