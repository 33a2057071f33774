package engine

import (
	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/features"
	"github.com/pitchedge/pitchedge/internal/sim"
)

// ShotsEngine prices team shot totals and shots-on-target totals.
type ShotsEngine struct {
	team config.ProductConfig
}

func NewShotsEngine(cfg *config.Config) *ShotsEngine {
	return &ShotsEngine{team: cfg.Products[string(domain.ProductShotsTeam)]}
}

func (e *ShotsEngine) Name() string { return "shots" }

func (e *ShotsEngine) Price(fx domain.FixtureRecord, f features.Features, s *sim.Sampler) []domain.MarketCandidate {
	factors := sim.CombineFactors([]sim.WeightedFactor{
		{Name: "tempo", Value: (f.Home.Tempo + f.Away.Tempo) / 2, Weight: 0.35},
		{Name: "attack", Value: (f.Home.XG + f.Away.XG) / 2.7, Weight: 0.30},
		{Name: "pressing", Value: (f.Home.Pressing + f.Away.Pressing) / 2, Weight: 0.20},
		{Name: "weather", Value: f.WeatherModifier, Weight: 0.15},
	}, 0.80, 1.25)

	em := newEmitter(fx, domain.ProductShotsTeam, e.team, factors)
	sides := []struct {
		name string
		sf   features.SideFeatures
	}{{"home", f.Home}, {"away", f.Away}}
	for _, s2 := range sides {
		side, sf := s2.name, s2.sf
		shots := sim.FromSamples(s.Poisson(sf.ShotsPG * factors.Combined))
		sot := sim.FromSamples(s.Poisson(sf.ShotsOnTargetPG * factors.Combined))
		for _, line := range TeamShotLines {
			em.emitOverUnder(side+"_shots", shots, line)
		}
		for _, line := range TeamSOTLines {
			em.emitOverUnder(side+"_sot", sot, line)
		}
	}
	return em.out
}
