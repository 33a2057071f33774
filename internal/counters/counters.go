// Package counters reads the advisory daily pick counters owned by the
// external persistence layer. The pipeline consumes them read-only; when
// the backend is unavailable every count degrades to zero.
package counters

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Reader fetches already-placed-today counts per product.
type Reader interface {
	PlacedToday(ctx context.Context, day time.Time) (map[string]int, error)
}

// PostgresReader queries the picks table maintained outside this core.
type PostgresReader struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewPostgresReader(db *sqlx.DB, timeout time.Duration) *PostgresReader {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PostgresReader{db: db, timeout: timeout}
}

func (r *PostgresReader) PlacedToday(ctx context.Context, day time.Time) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT product, COUNT(*) AS n
		FROM picks
		WHERE placed_at >= $1 AND placed_at < $2
		GROUP BY product`

	start := day.Truncate(24 * time.Hour)
	rows, err := r.db.QueryxContext(ctx, query, start, start.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var product string
		var n int
		if err := rows.Scan(&product, &n); err != nil {
			return nil, err
		}
		out[product] = n
	}
	return out, rows.Err()
}

// Fetch wraps a Reader with the documented degradation: unavailable backend
// means zero counts, logged, cycle continues.
func Fetch(ctx context.Context, r Reader, day time.Time) map[string]int {
	if r == nil {
		return map[string]int{}
	}
	counts, err := r.PlacedToday(ctx, day)
	if err != nil {
		log.Warn().Err(err).Msg("daily counters unavailable, assuming zero placed")
		return map[string]int{}
	}
	return counts
}
