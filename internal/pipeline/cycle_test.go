package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/drift"
	"github.com/pitchedge/pitchedge/internal/metrics"
)

func fp(v float64) *float64 { return &v }

func testFixture(id int64, home, away string) domain.FixtureRecord {
	return domain.FixtureRecord{
		Context: domain.MatchContext{
			FixtureID: id, HomeTeam: home, AwayTeam: away, League: "PL",
			Kickoff: time.Now().Add(6 * time.Hour),
		},
		HomeStats: &domain.TeamStatSnapshot{
			CornersPG: fp(6.2), CardsPG: fp(2.5), ShotsPG: fp(14.0), ShotsOnTargetPG: fp(5.0),
		},
		AwayStats: &domain.TeamStatSnapshot{
			CornersPG: fp(4.8), CardsPG: fp(2.2), ShotsPG: fp(11.5), ShotsOnTargetPG: fp(4.2),
		},
		HomeXG: fp(1.7),
		AwayXG: fp(1.1),
		Odds: domain.OddsSnapshot{
			"corners_over_9.5":         2.05,
			"corners_under_9.5":        1.80,
			"home_corners_over_4.5":    1.90,
			"cards_over_3.5":           2.10,
			"booking_points_over_40.5": 1.95,
			"home_cards_over_1.5":      1.85,
			"home_shots_over_11.5":     1.90,
			"goals_over_2.5":           2.00,
			"btts_yes":                 1.85,
			"ml_home":                  2.10,
		},
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Simulation.Samples = 3000
	cfg.MaxWorkers = 2
	return cfg
}

func TestRunProducesCard(t *testing.T) {
	fixtures := []domain.FixtureRecord{
		testFixture(1, "Home A", "Away A"),
		testFixture(2, "Home B", "Away B"),
		testFixture(3, "Home C", "Away C"),
	}
	cfg := testConfig()
	res, err := Run(context.Background(), Options{
		Fixtures: fixtures,
		Config:   cfg,
		Bankroll: 10000,
		Profile:  "balanced",
		Seed:     42,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Card)

	assert.Greater(t, res.Priced, 0)
	assert.NotEmpty(t, res.CycleID)

	singles := res.Card.Singles()
	assert.LessOrEqual(t, len(singles), cfg.Router.GlobalDailyMaxPicks)
	for product, n := range res.Card.Routing.ByProduct {
		assert.LessOrEqual(t, n, cfg.Router.ProductCap(product))
	}

	// no (fixture, market) pair twice on the card
	type pair struct {
		fixture int64
		market  string
	}
	seen := map[pair]bool{}
	for _, p := range singles {
		key := pair{p.FixtureID, p.MarketKey}
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestRunReproducibleWithSeed(t *testing.T) {
	fixtures := []domain.FixtureRecord{
		testFixture(1, "Home A", "Away A"),
		testFixture(2, "Home B", "Away B"),
	}
	cfg := testConfig()

	a, err := Run(context.Background(), Options{Fixtures: fixtures, Config: cfg, Bankroll: 10000, Seed: 7})
	require.NoError(t, err)
	b, err := Run(context.Background(), Options{Fixtures: fixtures, Config: cfg, Bankroll: 10000, Seed: 7})
	require.NoError(t, err)

	require.Equal(t, len(a.Card.Singles()), len(b.Card.Singles()))
	for i, pa := range a.Card.Singles() {
		pb := b.Card.Singles()[i]
		assert.Equal(t, pa.MarketKey, pb.MarketKey)
		assert.Equal(t, pa.FixtureID, pb.FixtureID)
		assert.Equal(t, pa.EV, pb.EV)
	}
}

func TestRunEmptyFixtureList(t *testing.T) {
	res, err := Run(context.Background(), Options{Config: testConfig(), Bankroll: 10000})
	require.NoError(t, err)
	assert.Empty(t, res.Card.Singles())
	assert.Empty(t, res.Card.Parlays)
	assert.Zero(t, res.Card.Summary.TotalSingles)
	assert.Zero(t, res.Priced)
}

func TestRunDriftVetoBlocksL1(t *testing.T) {
	fx := testFixture(1, "Home A", "Away A")
	store := drift.NewMemoryStore()
	cfg := testConfig()

	// seed the store with opening prices, then lengthen everything sharply
	// so candidates with an edge land in MARKET_DISAGREES with score -2
	ctx := context.Background()
	for market, odds := range fx.Odds {
		_ = store.Upsert(ctx, drift.Record{
			FixtureID: 1, MarketKey: market, Bookmaker: cfg.Drift.Bookmaker,
			OpenOdds: odds / 1.5, LastOdds: odds / 1.5, UpdatedAt: time.Now(),
		})
	}

	res, err := Run(ctx, Options{
		Fixtures: []domain.FixtureRecord{fx},
		Config:   cfg,
		Store:    store,
		Bankroll: 10000,
		Seed:     42,
	})
	require.NoError(t, err)

	for _, p := range res.Card.Singles() {
		if p.Tier == domain.TierL1 || p.Tier == domain.TierL2 {
			assert.GreaterOrEqual(t, p.Source.DriftScore, -1.0,
				"vetoed high-trust candidates never reach the card")
		}
	}
}

func TestRunWithMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	_, err := Run(context.Background(), Options{
		Fixtures: []domain.FixtureRecord{testFixture(1, "A", "B")},
		Config:   testConfig(),
		Metrics:  reg,
		Bankroll: 10000,
		Seed:     42,
	})
	require.NoError(t, err)
}
