package engine

import (
	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/features"
	"github.com/pitchedge/pitchedge/internal/sim"
)

// GoalsEngine prices goal totals, both-teams-to-score and the moneyline off
// the xG baselines. It feeds the TOTALS, BTTS and ML_AH products plus the
// value-singles pool.
type GoalsEngine struct {
	totals config.ProductConfig
	btts   config.ProductConfig
	mlah   config.ProductConfig
}

func NewGoalsEngine(cfg *config.Config) *GoalsEngine {
	return &GoalsEngine{
		totals: cfg.Products[string(domain.ProductTotals)],
		btts:   cfg.Products[string(domain.ProductBTTS)],
		mlah:   cfg.Products[string(domain.ProductMLAH)],
	}
}

func (e *GoalsEngine) Name() string { return "goals" }

func (e *GoalsEngine) Price(fx domain.FixtureRecord, f features.Features, s *sim.Sampler) []domain.MarketCandidate {
	factors := sim.CombineFactors([]sim.WeightedFactor{
		{Name: "tempo", Value: (f.Home.Tempo + f.Away.Tempo) / 2, Weight: 0.40},
		{Name: "weather", Value: f.WeatherModifier, Weight: 0.30},
		{Name: "rivalry", Value: f.RivalryIndex, Weight: 0.30},
	}, 0.85, 1.20)

	homeGoals := s.Poisson(f.Home.XG * factors.Combined)
	awayGoals := s.Poisson(f.Away.XG * factors.Combined)
	total := sim.Sum(homeGoals, awayGoals)
	diff := sim.Diff(homeGoals, awayGoals)

	em := newEmitter(fx, domain.ProductTotals, e.totals, factors)
	for _, line := range GoalLines {
		em.emitOverUnder("goals", total, line)
	}

	// BTTS is counted directly from the joint samples.
	n := len(homeGoals)
	var both int
	for i := 0; i < n; i++ {
		if homeGoals[i] > 0 && awayGoals[i] > 0 {
			both++
		}
	}
	pBoth := float64(both) / float64(n)
	em.product, em.pcfg = domain.ProductBTTS, e.btts
	em.emit("btts_yes", 0, domain.SideOver, sim.LinePrice{Over: pBoth, Under: 1 - pBoth}, pBoth, total.Summary())
	em.emit("btts_no", 0, domain.SideUnder, sim.LinePrice{Over: pBoth, Under: 1 - pBoth}, 1-pBoth, total.Summary())

	// Moneyline prices exclude the draw, which is the push mass at diff 0.
	em.product, em.pcfg = domain.ProductMLAH, e.mlah
	ml := diff.PriceLine(0)
	em.emit("ml_home", 0, domain.SideHome, ml, ml.Over, diff.Summary())
	em.emit("ml_away", 0, domain.SideAway, ml, ml.Under, diff.Summary())

	return em.out
}
