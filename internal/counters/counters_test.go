package counters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacedToday(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"product", "n"}).
		AddRow("TOTALS", 4).
		AddRow("CARDS_MATCH", 2)
	mock.ExpectQuery("SELECT product, COUNT").WillReturnRows(rows)

	r := NewPostgresReader(sqlx.NewDb(db, "postgres"), time.Second)
	counts, err := r.PlacedToday(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"TOTALS": 4, "CARDS_MATCH": 2}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingReader struct{}

func (failingReader) PlacedToday(context.Context, time.Time) (map[string]int, error) {
	return nil, errors.New("backend down")
}

func TestFetchDegradesToZero(t *testing.T) {
	counts := Fetch(context.Background(), failingReader{}, time.Now())
	assert.Empty(t, counts)

	counts = Fetch(context.Background(), nil, time.Now())
	assert.Empty(t, counts)
}
