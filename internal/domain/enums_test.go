package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierWeightOrdering(t *testing.T) {
	assert.Greater(t, TierL1.Weight(), TierL2.Weight())
	assert.Greater(t, TierL2.Weight(), TierL3.Weight())
	assert.Greater(t, TierL3.Weight(), TierRejected.Weight())
}

func TestNormalizeProduct(t *testing.T) {
	tests := []struct {
		raw  string
		want ProductCategory
		ok   bool
	}{
		{"TOTALS", ProductTotals, true},
		{"corners match", ProductCornersMatch, true},
		{"CORNER_HANDICAPS", ProductCornersHandicap, true},
		{"team cards", ProductCardsTeam, true},
		{"booking points", ProductCardsMatch, true},
		{"SHOTS", ProductShotsTeam, true},
		{"value_singles", ProductValueSingles, true},
		{"moneyline", ProductMLAH, true},
		{"both_teams_to_score", ProductBTTS, true},
		{"xyzzy", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeProduct(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.raw)
		}
	}
}
