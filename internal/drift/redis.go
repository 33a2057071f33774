package drift

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisStore keeps drift records in Redis with a bounded TTL, for
// deployments without a Postgres drift table. Records expire a couple of
// days after the last observation, which outlives any fixture's market.
type RedisStore struct {
	r       *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		r:       redis.NewClient(&redis.Options{Addr: addr}),
		ttl:     48 * time.Hour,
		timeout: 500 * time.Millisecond,
	}
}

func (s *RedisStore) key(fixtureID int64, marketKey, bookmaker string) string {
	return fmt.Sprintf("drift:%d:%s:%s", fixtureID, marketKey, bookmaker)
}

func (s *RedisStore) Get(ctx context.Context, fixtureID int64, marketKey, bookmaker string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b, err := s.r.Get(ctx, s.key(fixtureID, marketKey, bookmaker)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read drift record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode drift record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Upsert(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode drift record: %w", err)
	}
	if err := s.r.Set(ctx, s.key(rec.FixtureID, rec.MarketKey, rec.Bookmaker), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write drift record: %w", err)
	}
	return nil
}
