package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pitchedge/pitchedge/internal/domain"
)

func TestBalanceScore(t *testing.T) {
	assert.Equal(t, 0.0, balanceScore(map[string]int{}))
	assert.Equal(t, 10.0, balanceScore(map[string]int{"TOTALS": 5}))

	// even split across four products: no variance penalty
	even := balanceScore(map[string]int{"A": 3, "B": 3, "C": 3, "D": 3})
	assert.Equal(t, 90.0, even)

	// same products, lopsided counts score lower
	lopsided := balanceScore(map[string]int{"A": 11, "B": 1, "C": 1, "D": 1})
	assert.Less(t, lopsided, even)

	// score is always within [0, 100]
	extreme := balanceScore(map[string]int{"A": 25, "B": 1})
	assert.GreaterOrEqual(t, extreme, 0.0)
	assert.LessOrEqual(t, extreme, 100.0)
}

func TestComputeStats(t *testing.T) {
	selected := []Candidate{
		mkCandidate(1, domain.ProductTotals, "goals_over_2.5", "OVER_2_5", domain.TierL1, 0.10),
		mkCandidate(2, domain.ProductTotals, "goals_over_2.5", "OVER_2_5", domain.TierL2, 0.06),
		mkCandidate(3, domain.ProductCardsMatch, "cards_over_3.5", "OVER_3_5", domain.TierL2, 0.02),
	}
	s := computeStats(selected)

	assert.Equal(t, 3, s.TotalSelected)
	assert.Equal(t, 2, s.ByProduct["TOTALS"])
	assert.Equal(t, 1, s.ByProduct["CARDS_MATCH"])
	assert.Equal(t, 2, s.ByTier["L2"])
	assert.Equal(t, 2, s.MarketDiversity)
	assert.InDelta(t, 6.0, s.AvgEVPct, 1e-9, "average EV reported in percent")
}
