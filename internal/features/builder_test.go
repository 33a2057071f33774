package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }
func sp(v string) *string   { return &v }

func TestBuildAllMissingUsesDefaults(t *testing.T) {
	b := NewBuilder(config.DefaultFeatureDefaults())
	f := b.Build(domain.FixtureRecord{})

	assert.InDelta(t, 1.0, f.Home.Aggression, 1e-9)
	assert.InDelta(t, 1.0, f.Home.Pressing, 1e-9)
	assert.InDelta(t, 1.0, f.Home.Tempo, 1e-9)
	assert.InDelta(t, 1.0, f.Home.WingPlay, 1e-9)
	assert.InDelta(t, 1.0, f.RivalryIndex, 1e-9)
	assert.InDelta(t, 1.0, f.WeatherModifier, 1e-9)
	assert.Equal(t, 1.0, f.HomeFormationFactor)
	assert.Equal(t, config.DefaultFeatureDefaults().Team.CornersPG, f.Home.CornersPG)
}

func TestAggressionClampBounds(t *testing.T) {
	b := NewBuilder(config.DefaultFeatureDefaults())
	hot := &domain.TeamStatSnapshot{
		FoulsPG: fp(100), CardsPG: fp(50), TacklesPG: fp(90), DuelsPG: fp(300),
	}
	cold := &domain.TeamStatSnapshot{
		FoulsPG: fp(0.1), CardsPG: fp(0.1), TacklesPG: fp(0.1), DuelsPG: fp(0.1),
	}
	f := b.Build(domain.FixtureRecord{HomeStats: hot, AwayStats: cold})
	assert.InDelta(t, 1.15, f.Home.Aggression, 1e-9)
	assert.InDelta(t, 0.85, f.Away.Aggression, 1e-9)
}

func TestRefereeIndexClamp(t *testing.T) {
	b := NewBuilder(config.DefaultFeatureDefaults())

	cardHappy := &domain.RefereeProfile{
		CardsPerMatch:        fp(9.0),
		FoulToCardConversion: fp(0.50),
		EarlyCardRate:        fp(0.6),
		BigMatchIntensity:    fp(1.3),
	}
	f := b.Build(domain.FixtureRecord{
		Referee: cardHappy,
		Context: domain.MatchContext{IsKnockout: true},
	})
	assert.Equal(t, 1.35, f.RefereeIndex)

	lenient := &domain.RefereeProfile{
		CardsPerMatch:        fp(0.5),
		FoulToCardConversion: fp(0.02),
	}
	f = b.Build(domain.FixtureRecord{Referee: lenient})
	assert.GreaterOrEqual(t, f.RefereeIndex, 0.75)
	assert.LessOrEqual(t, f.RefereeIndex, 1.0)
}

func TestRefereeIndexFoulsNearBox(t *testing.T) {
	b := NewBuilder(config.DefaultFeatureDefaults())

	neutral := b.Build(domain.FixtureRecord{})
	assert.InDelta(t, 1.0, neutral.RefereeIndex, 1e-9)

	// double the near-box foul rate, everything else at baseline
	busy := &domain.RefereeProfile{FoulsNearBoxPerMatch: fp(7.0)}
	f := b.Build(domain.FixtureRecord{Referee: busy})
	assert.InDelta(t, 1.2, f.RefereeIndex, 1e-9)
}

func TestRivalryIndex(t *testing.T) {
	b := NewBuilder(config.DefaultFeatureDefaults())

	derby := b.Build(domain.FixtureRecord{Context: domain.MatchContext{
		HomeTeam: "Tottenham", AwayTeam: "Arsenal",
	}})
	assert.InDelta(t, 1.15, derby.RivalryIndex, 1e-9, "derby pairs are unordered")

	heated := b.Build(domain.FixtureRecord{
		Context: domain.MatchContext{
			HomeTeam: "Celtic", AwayTeam: "Rangers",
			IsKnockout: true, IsRelegation: true, IsTitleRace: true,
		},
		HeadToHead: &domain.HeadToHeadSnapshot{
			Meetings: 10, AvgCards: fp(7.0), AvgGoals: fp(4.0),
		},
	})
	assert.Equal(t, 1.40, heated.RivalryIndex, "clamped at upper bound")

	neutral := b.Build(domain.FixtureRecord{Context: domain.MatchContext{
		HomeTeam: "Brentford", AwayTeam: "Fulham",
	}})
	assert.InDelta(t, 1.0, neutral.RivalryIndex, 1e-9)
}

func TestWeatherModifier(t *testing.T) {
	b := NewBuilder(config.DefaultFeatureDefaults())

	storm := b.Build(domain.FixtureRecord{Weather: &domain.WeatherSnapshot{
		WindSpeed: fp(35), IsRain: bp(true), PitchCondition: sp("Waterlogged"),
	}})
	assert.GreaterOrEqual(t, storm.WeatherModifier, 0.85)
	assert.LessOrEqual(t, storm.WeatherModifier, 1.12)

	calm := b.Build(domain.FixtureRecord{Weather: &domain.WeatherSnapshot{WindSpeed: fp(5)}})
	assert.InDelta(t, 1.0, calm.WeatherModifier, 1e-9)
}

func TestFormationAggression(t *testing.T) {
	b := NewBuilder(config.DefaultFeatureDefaults())
	tests := []struct {
		formation string
		want      float64
	}{
		{"3-4-3", 1.10},
		{" 3-4-3 ", 1.10},
		{"5-4-1", 0.88},
		{"4-3-3 (attacking)", 1.05},
		{"", 1.0},
		{"9-0-1", 1.0},
	}
	for _, tt := range tests {
		f := b.Build(domain.FixtureRecord{HomeFormation: tt.formation})
		assert.Equal(t, tt.want, f.HomeFormationFactor, "formation %q", tt.formation)
	}
}
