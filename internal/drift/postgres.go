package drift

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresStore persists drift records in the odds_snapshots table. Upsert
// preserves the opening price on conflict so drift is always measured from
// the first observation.
type PostgresStore struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sqlx.DB, timeout time.Duration) *PostgresStore {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PostgresStore{db: db, timeout: timeout}
}

// OpenPostgresStore dials the DSN and verifies connectivity.
func OpenPostgresStore(dsn string, timeout time.Duration) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect drift store: %w", err)
	}
	return NewPostgresStore(db, timeout), nil
}

// DB exposes the pool so other read-only collaborators can share it.
func (s *PostgresStore) DB() *sqlx.DB { return s.db }

func (s *PostgresStore) Get(ctx context.Context, fixtureID int64, marketKey, bookmaker string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `
		SELECT fixture_id, market_key, bookmaker, open_odds, last_odds, drift_pct, updated_at
		FROM odds_snapshots
		WHERE fixture_id = $1 AND market_key = $2 AND bookmaker = $3`

	var rec Record
	err := s.db.QueryRowxContext(ctx, query, fixtureID, marketKey, bookmaker).StructScan(&rec)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read drift record: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `
		INSERT INTO odds_snapshots
		(fixture_id, market_key, bookmaker, open_odds, last_odds, drift_pct, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (fixture_id, market_key, bookmaker) DO UPDATE SET
			last_odds = EXCLUDED.last_odds,
			drift_pct = (EXCLUDED.last_odds - odds_snapshots.open_odds) / odds_snapshots.open_odds,
			updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query,
		rec.FixtureID, rec.MarketKey, rec.Bookmaker,
		rec.OpenOdds, rec.LastOdds, rec.DriftPct, rec.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert drift record: %w", err)
	}
	return nil
}
