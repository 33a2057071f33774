package engine

import (
	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/features"
	"github.com/pitchedge/pitchedge/internal/sim"
)

// CardsEngine prices match card totals, booking points and team cards. Red
// cards are simulated as a separate Bernoulli overlay per side so the
// booking-points composite can weight them differently.
type CardsEngine struct {
	match config.ProductConfig
	team  config.ProductConfig

	baseRedProb float64
}

func NewCardsEngine(cfg *config.Config) *CardsEngine {
	return &CardsEngine{
		match:       cfg.Products[string(domain.ProductCardsMatch)],
		team:        cfg.Products[string(domain.ProductCardsTeam)],
		baseRedProb: 0.11,
	}
}

func (e *CardsEngine) Name() string { return "cards" }

func (e *CardsEngine) Price(fx domain.FixtureRecord, f features.Features, s *sim.Sampler) []domain.MarketCandidate {
	factors := sim.CombineFactors([]sim.WeightedFactor{
		{Name: "referee", Value: f.RefereeIndex, Weight: 0.35},
		{Name: "aggression", Value: (f.Home.Aggression + f.Away.Aggression) / 2, Weight: 0.25},
		{Name: "rivalry", Value: f.RivalryIndex, Weight: 0.20},
		{Name: "pressing", Value: (f.Home.Pressing + f.Away.Pressing) / 2, Weight: 0.10},
		{Name: "weather", Value: f.WeatherModifier, Weight: 0.10},
	}, 0.70, 1.40)

	homeYellow := f.Home.CardsPG * factors.Combined
	awayYellow := f.Away.CardsPG * factors.Combined
	redProb := sim.Clamp(e.baseRedProb*f.RivalryIndex*f.RefereeIndex, 0.02, 0.35)
	if fx.HeadToHead != nil && fx.HeadToHead.RedCardRate != nil {
		redProb = sim.Clamp((redProb+*fx.HeadToHead.RedCardRate)/2, 0.02, 0.40)
	}

	homeY := s.Poisson(homeYellow)
	awayY := s.Poisson(awayYellow)
	homeR := s.Bernoulli(redProb / 2)
	awayR := s.Bernoulli(redProb / 2)

	homeCards := sim.Sum(homeY, homeR)
	awayCards := sim.Sum(awayY, awayR)
	totalCards := sim.SumN(homeY, awayY, homeR, awayR)
	points := sim.WeightedSum(
		[]float64{YellowPoints, YellowPoints, RedPoints, RedPoints},
		homeY, awayY, homeR, awayR,
	)

	em := newEmitter(fx, domain.ProductCardsMatch, e.match, factors)
	for _, line := range MatchCardLines {
		em.emitOverUnder("cards", totalCards, line)
	}
	for _, line := range BookingPointLines {
		em.emitOverUnder("booking_points", points, line)
	}

	em.product, em.pcfg = domain.ProductCardsTeam, e.team
	for _, line := range TeamCardLines {
		em.emitOverUnder("home_cards", homeCards, line)
		em.emitOverUnder("away_cards", awayCards, line)
	}

	return em.out
}
