package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/features"
	"github.com/pitchedge/pitchedge/internal/sim"
)

func fp(v float64) *float64 { return &v }

func testFixture() domain.FixtureRecord {
	return domain.FixtureRecord{
		Context: domain.MatchContext{
			FixtureID: 101, HomeTeam: "Home FC", AwayTeam: "Away FC", League: "PL",
		},
		HomeStats: &domain.TeamStatSnapshot{
			CornersPG: fp(6.0), CardsPG: fp(2.4), ShotsPG: fp(14.0), ShotsOnTargetPG: fp(5.0),
		},
		AwayStats: &domain.TeamStatSnapshot{
			CornersPG: fp(4.5), CardsPG: fp(2.0), ShotsPG: fp(11.0), ShotsOnTargetPG: fp(4.0),
		},
		HomeXG: fp(1.6),
		AwayXG: fp(1.2),
		Odds: domain.OddsSnapshot{
			"corners_over_9.5":           2.00,
			"corners_under_9.5":          1.85,
			"home_corners_over_4.5":      1.95,
			"corners_handicap_home_-1.5": 2.10,
			"cards_over_3.5":             2.00,
			"booking_points_over_40.5":   1.90,
			"home_cards_over_1.5":        1.80,
			"home_shots_over_11.5":       1.85,
			"home_sot_over_4.5":          2.00,
			"goals_over_2.5":             1.95,
			"btts_yes":                   1.80,
			"ml_home":                    2.05,
		},
	}
}

func buildFeatures(t *testing.T, fx domain.FixtureRecord) features.Features {
	t.Helper()
	return features.NewBuilder(config.DefaultFeatureDefaults()).Build(fx)
}

func TestCornersEnginePricesQuotedMarkets(t *testing.T) {
	cfg := config.DefaultConfig()
	fx := testFixture()
	f := buildFeatures(t, fx)
	out := NewCornersEngine(cfg).Price(fx, f, sim.NewSampler(5000, 42))

	require.NotEmpty(t, out)
	byKey := map[string]domain.MarketCandidate{}
	for _, c := range out {
		byKey[c.MarketKey] = c
		assert.Contains(t, fx.Odds, c.MarketKey, "only quoted markets are emitted")
		assert.Greater(t, c.Probability, 0.0)
		assert.LessOrEqual(t, c.Probability, 1.0)
		assert.GreaterOrEqual(t, c.Factors.Combined, 0.75)
		assert.LessOrEqual(t, c.Factors.Combined, 1.30)
	}

	over, okOver := byKey["corners_over_9.5"]
	under, okUnder := byKey["corners_under_9.5"]
	require.True(t, okOver)
	require.True(t, okUnder)
	assert.InDelta(t, 1.0, over.Probability+under.Probability, 1e-9,
		"half lines have no push mass")
	assert.Equal(t, domain.ProductCornersMatch, over.Product)

	if hc, ok := byKey["corners_handicap_home_-1.5"]; ok {
		assert.Equal(t, domain.ProductCornersHandicap, hc.Product)
		assert.Equal(t, domain.SideHome, hc.Side)
	}
}

func TestCardsEngineBookingPoints(t *testing.T) {
	cfg := config.DefaultConfig()
	fx := testFixture()
	f := buildFeatures(t, fx)
	out := NewCardsEngine(cfg).Price(fx, f, sim.NewSampler(5000, 42))

	var sawBookingPoints, sawTeamCards bool
	for _, c := range out {
		switch c.MarketKey {
		case "booking_points_over_40.5":
			sawBookingPoints = true
			assert.Equal(t, domain.ProductCardsMatch, c.Product)
			assert.Greater(t, c.Sim.Mean, 30.0, "points scale at 10 per yellow")
		case "home_cards_over_1.5":
			sawTeamCards = true
			assert.Equal(t, domain.ProductCardsTeam, c.Product)
		}
	}
	assert.True(t, sawBookingPoints)
	assert.True(t, sawTeamCards)
}

func TestShotsEngineSides(t *testing.T) {
	cfg := config.DefaultConfig()
	fx := testFixture()
	f := buildFeatures(t, fx)
	out := NewShotsEngine(cfg).Price(fx, f, sim.NewSampler(5000, 42))

	for _, c := range out {
		assert.Equal(t, domain.ProductShotsTeam, c.Product)
		assert.Contains(t, fx.Odds, c.MarketKey)
	}
}

func TestGoalsEngineMoneylineAndBTTS(t *testing.T) {
	cfg := config.DefaultConfig()
	fx := testFixture()
	f := buildFeatures(t, fx)
	out := NewGoalsEngine(cfg).Price(fx, f, sim.NewSampler(5000, 42))

	byKey := map[string]domain.MarketCandidate{}
	for _, c := range out {
		byKey[c.MarketKey] = c
	}
	if ml, ok := byKey["ml_home"]; ok {
		assert.Equal(t, domain.ProductMLAH, ml.Product)
		assert.Greater(t, ml.Probability, 0.3, "home side carries the higher xG")
		assert.Greater(t, ml.PushProb, 0.0, "draw mass reported as push")
	}
	if btts, ok := byKey["btts_yes"]; ok {
		assert.Equal(t, domain.ProductBTTS, btts.Product)
	}
}

func TestEngineDeterministicWithSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	fx := testFixture()
	f := buildFeatures(t, fx)

	a := NewCornersEngine(cfg).Price(fx, f, sim.NewSampler(5000, 7))
	b := NewCornersEngine(cfg).Price(fx, f, sim.NewSampler(5000, 7))
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].MarketKey, b[i].MarketKey)
		assert.Equal(t, a[i].Probability, b[i].Probability)
	}
}

func TestEngineRespectsOddsWindow(t *testing.T) {
	cfg := config.DefaultConfig()
	fx := testFixture()
	fx.Odds["corners_over_9.5"] = 12.0 // far outside the product window
	f := buildFeatures(t, fx)
	out := NewCornersEngine(cfg).Price(fx, f, sim.NewSampler(5000, 42))

	for _, c := range out {
		assert.NotEqual(t, "corners_over_9.5", c.MarketKey)
	}
}
