package drift

import (
	"context"

	"github.com/sony/gobreaker"
)

// BreakerStore wraps a Store in a circuit breaker. Once the store starts
// failing repeatedly, further calls short-circuit and the tracker falls
// back to neutral drift instead of hammering a dead backend mid-cycle.
type BreakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker
}

func NewBreakerStore(inner Store, consecutiveFailures uint32) *BreakerStore {
	if consecutiveFailures == 0 {
		consecutiveFailures = 5
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "drift-store",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= consecutiveFailures
		},
	})
	return &BreakerStore{inner: inner, cb: cb}
}

func (s *BreakerStore) Get(ctx context.Context, fixtureID int64, marketKey, bookmaker string) (*Record, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.inner.Get(ctx, fixtureID, marketKey, bookmaker)
	})
	if err != nil {
		return nil, err
	}
	rec, _ := res.(*Record)
	return rec, nil
}

func (s *BreakerStore) Upsert(ctx context.Context, rec Record) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.inner.Upsert(ctx, rec)
	})
	return err
}
