package engine

import (
	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/features"
	"github.com/pitchedge/pitchedge/internal/sim"
)

// CornersEngine prices match totals, team totals and corner handicaps.
type CornersEngine struct {
	match    config.ProductConfig
	team     config.ProductConfig
	handicap config.ProductConfig
}

func NewCornersEngine(cfg *config.Config) *CornersEngine {
	return &CornersEngine{
		match:    cfg.Products[string(domain.ProductCornersMatch)],
		team:     cfg.Products[string(domain.ProductCornersTeam)],
		handicap: cfg.Products[string(domain.ProductCornersHandicap)],
	}
}

func (e *CornersEngine) Name() string { return "corners" }

// Price adjusts each side's corner rate by the combined factor, simulates
// side counts and prices every configured line.
func (e *CornersEngine) Price(fx domain.FixtureRecord, f features.Features, s *sim.Sampler) []domain.MarketCandidate {
	factors := sim.CombineFactors([]sim.WeightedFactor{
		{Name: "wing_play", Value: (f.Home.WingPlay + f.Away.WingPlay) / 2, Weight: 0.30},
		{Name: "tempo", Value: (f.Home.Tempo + f.Away.Tempo) / 2, Weight: 0.20},
		{Name: "formation", Value: (f.HomeFormationFactor + f.AwayFormationFactor) / 2, Weight: 0.15},
		{Name: "referee", Value: f.RefereeCornerIndex, Weight: 0.15},
		{Name: "weather", Value: f.WeatherModifier, Weight: 0.10},
		{Name: "rivalry", Value: f.RivalryIndex, Weight: 0.10},
	}, 0.75, 1.30)

	// Blend a side's own rate with the opponent's concession rate, then a
	// small home lift.
	homeLambda := (f.Home.CornersPG + f.Away.CornersAgainstPG) / 2 * factors.Combined * 1.04
	awayLambda := (f.Away.CornersPG + f.Home.CornersAgainstPG) / 2 * factors.Combined * 0.96

	homeSamples := s.Poisson(homeLambda)
	awaySamples := s.Poisson(awayLambda)
	total := sim.Sum(homeSamples, awaySamples)
	diff := sim.Diff(homeSamples, awaySamples)
	homeDist := sim.FromSamples(homeSamples)
	awayDist := sim.FromSamples(awaySamples)

	em := newEmitter(fx, domain.ProductCornersMatch, e.match, factors)
	for _, line := range MatchCornerLines {
		em.emitOverUnder("corners", total, line)
	}

	em.product, em.pcfg = domain.ProductCornersTeam, e.team
	for _, line := range TeamCornerLines {
		em.emitOverUnder("home_corners", homeDist, line)
		em.emitOverUnder("away_corners", awayDist, line)
	}

	// Home covers handicap l when diff + l > 0, i.e. diff beyond -l.
	em.product, em.pcfg = domain.ProductCornersHandicap, e.handicap
	for _, line := range CornerHandicapLines {
		price := diff.PriceLine(-line)
		em.emit(handicapKey("corners", domain.SideHome, line), line, domain.SideHome, price, price.Over, diff.Summary())
		em.emit(handicapKey("corners", domain.SideAway, line), line, domain.SideAway, price, price.Under, diff.Summary())
	}

	return em.out
}
