package router

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
)

func mkCandidate(fixture int64, product domain.ProductCategory, market, bucket string, tier domain.TrustTier, ev float64) Candidate {
	return Candidate{
		FixtureID:  fixture,
		Product:    product,
		MarketKey:  market,
		Bucket:     bucket,
		Tier:       tier,
		EV:         ev,
		Odds:       2.0,
		Confidence: 0.55,
	}
}

func TestRoutePicksBucketCap(t *testing.T) {
	// 20 qualifying candidates in one bucket with a cap of 3
	var pool []Candidate
	for i := 0; i < 20; i++ {
		pool = append(pool, mkCandidate(int64(i), domain.ProductTotals,
			"goals_over_2.5", "OVER_2_5", domain.TierL1, 0.10))
	}
	cfg := config.DefaultRouterConfig()
	res := RoutePicks(Input{Candidates: pool, DisableSecondPass: true}, cfg)

	assert.Len(t, res.Selected, 3, "pass 1 honors the bucket cap")
}

func TestRoutePicksGlobalAndProductCaps(t *testing.T) {
	var pool []Candidate
	for p, product := range []domain.ProductCategory{
		domain.ProductTotals, domain.ProductMLAH, domain.ProductCardsMatch,
		domain.ProductCornersMatch, domain.ProductShotsTeam, domain.ProductBTTS,
	} {
		for i := 0; i < 20; i++ {
			pool = append(pool, mkCandidate(int64(p*100+i), product,
				fmt.Sprintf("m_%d_%d", p, i), fmt.Sprintf("B_%d", i), domain.TierL2, 0.05))
		}
	}
	cfg := config.DefaultRouterConfig()
	res := RoutePicks(Input{Candidates: pool}, cfg)

	assert.LessOrEqual(t, len(res.Selected), cfg.GlobalDailyMaxPicks)
	for product, n := range res.Stats.ByProduct {
		assert.LessOrEqual(t, n, cfg.ProductCap(product), "product %s", product)
	}
}

func TestRoutePicksDeduplicates(t *testing.T) {
	pool := []Candidate{
		mkCandidate(1, domain.ProductTotals, "goals_over_2.5", "OVER_2_5", domain.TierL1, 0.10),
		mkCandidate(1, domain.ProductTotals, "goals_over_2.5", "OVER_2_5", domain.TierL2, 0.08),
		mkCandidate(1, domain.ProductTotals, "goals_over_3.5", "OVER_3_5", domain.TierL2, 0.06),
	}
	res := RoutePicks(Input{Candidates: pool}, config.DefaultRouterConfig())

	seen := map[string]bool{}
	for _, c := range res.Selected {
		key := fmt.Sprintf("%d:%s", c.FixtureID, c.MarketKey)
		assert.False(t, seen[key], "duplicate (fixture, market) pair %s", key)
		seen[key] = true
	}
	assert.Len(t, res.Selected, 2)
}

// Disabling pass 2 can only reduce or preserve the selected count.
func TestSecondPassMonotonicity(t *testing.T) {
	var pool []Candidate
	for i := 0; i < 15; i++ {
		pool = append(pool, mkCandidate(int64(i), domain.ProductTotals,
			"goals_over_2.5", "OVER_2_5", domain.TierL1, 0.10))
	}
	cfg := config.DefaultRouterConfig()

	with := RoutePicks(Input{Candidates: pool}, cfg)
	without := RoutePicks(Input{Candidates: pool, DisableSecondPass: true}, cfg)

	assert.GreaterOrEqual(t, len(with.Selected), len(without.Selected))
	assert.Len(t, without.Selected, 3)
	assert.Len(t, with.Selected, cfg.ProductCap("TOTALS"), "pass 2 fills to the product cap")
}

func TestRoutePicksOrderingDeterministic(t *testing.T) {
	pool := []Candidate{
		mkCandidate(5, domain.ProductTotals, "goals_over_2.5", "OVER_2_5", domain.TierL2, 0.05),
		mkCandidate(3, domain.ProductTotals, "goals_over_2.5", "OVER_2_5", domain.TierL2, 0.05),
		mkCandidate(3, domain.ProductTotals, "goals_over_3.5", "OVER_3_5", domain.TierL2, 0.05),
		mkCandidate(1, domain.ProductTotals, "goals_under_2.5", "UNDER_2_5", domain.TierL1, 0.02),
	}
	res := RoutePicks(Input{Candidates: pool}, config.DefaultRouterConfig())
	require.Len(t, res.Selected, 4)

	// L1 first, then ties broken by (fixture id, market key)
	assert.Equal(t, int64(1), res.Selected[0].FixtureID)
	assert.Equal(t, int64(3), res.Selected[1].FixtureID)
	assert.Equal(t, "goals_over_2.5", res.Selected[1].MarketKey)
	assert.Equal(t, "goals_over_3.5", res.Selected[2].MarketKey)
	assert.Equal(t, int64(5), res.Selected[3].FixtureID)
}

func TestRoutePicksSkipsUnknownProduct(t *testing.T) {
	pool := []Candidate{
		mkCandidate(1, domain.ProductCategory("MYSTERY"), "m", "B", domain.TierL1, 0.10),
		mkCandidate(2, domain.ProductTotals, "goals_over_2.5", "OVER_2_5", domain.TierL2, 0.05),
	}
	res := RoutePicks(Input{Candidates: pool}, config.DefaultRouterConfig())
	assert.Equal(t, 1, res.SkippedUnknown)
	assert.Len(t, res.Selected, 1)
}

func TestRoutePicksAdvisoryCounters(t *testing.T) {
	var pool []Candidate
	for i := 0; i < 10; i++ {
		pool = append(pool, mkCandidate(int64(i), domain.ProductCornersMatch,
			fmt.Sprintf("corners_over_9.5_%d", i), fmt.Sprintf("B_%d", i), domain.TierL2, 0.05))
	}
	cfg := config.DefaultRouterConfig()
	res := RoutePicks(Input{
		Candidates:  pool,
		PlacedToday: map[string]int{"CORNERS_MATCH": 4},
	}, cfg)

	assert.Len(t, res.Selected, cfg.ProductCap("CORNERS_MATCH")-4,
		"already placed picks shrink the effective product cap")
}

func TestRoutePicksProductMaxPerDay(t *testing.T) {
	var pool []Candidate
	for i := 0; i < 5; i++ {
		pool = append(pool, mkCandidate(int64(i), domain.ProductTotals,
			fmt.Sprintf("goals_over_2.5_%d", i), fmt.Sprintf("B_%d", i), domain.TierL1, 0.10))
	}
	cfg := config.DefaultRouterConfig()

	res := RoutePicks(Input{
		Candidates: pool,
		MaxPerDay:  map[string]int{"TOTALS": 1},
	}, cfg)
	assert.Len(t, res.Selected, 1, "product max_per_day binds below the router cap")

	res = RoutePicks(Input{
		Candidates: pool,
		MaxPerDay:  map[string]int{"TOTALS": 99},
	}, cfg)
	assert.Len(t, res.Selected, 5, "a loose max_per_day leaves the cap table in charge")
}

func TestRoutePicksEmptyPool(t *testing.T) {
	res := RoutePicks(Input{}, config.DefaultRouterConfig())
	assert.Empty(t, res.Selected)
	assert.Zero(t, res.Stats.TotalSelected)
	assert.Zero(t, res.Stats.BalanceScore)
}
