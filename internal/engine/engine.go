// Package engine prices market candidates per family via Monte-Carlo
// simulation of side counts.
package engine

import (
	"fmt"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/features"
	"github.com/pitchedge/pitchedge/internal/sim"
)

// Engine is one market family's pricer. Engines are stateless across
// fixtures; the sampler is supplied per call so fixtures can run in
// parallel.
type Engine interface {
	Name() string
	Price(fx domain.FixtureRecord, f features.Features, s *sim.Sampler) []domain.MarketCandidate
}

// Default line tables per family.
var (
	MatchCornerLines    = []float64{8.5, 9.5, 10.5, 11.5}
	TeamCornerLines     = []float64{3.5, 4.5, 5.5}
	CornerHandicapLines = []float64{-2.5, -1.5, -0.5, 0.5, 1.5, 2.5}

	MatchCardLines    = []float64{2.5, 3.5, 4.5, 5.5, 6.5}
	BookingPointLines = []float64{30.5, 40.5, 50.5, 60.5}
	TeamCardLines     = []float64{0.5, 1.5, 2.5, 3.5}

	TeamShotLines = []float64{9.5, 11.5, 13.5}
	TeamSOTLines  = []float64{3.5, 4.5, 5.5}

	GoalLines = []float64{1.5, 2.5, 3.5}
)

// Booking point weights.
const (
	YellowPoints = 10.0
	RedPoints    = 25.0
)

// marketKey renders the odds-snapshot key for a totals line, e.g.
// "corners_over_9.5" or "home_cards_under_1.5".
func marketKey(prefix string, side domain.Side, line float64) string {
	return fmt.Sprintf("%s_%s_%.1f", prefix, side, line)
}

// handicapKey renders e.g. "corners_handicap_home_-1.5".
func handicapKey(prefix string, side domain.Side, line float64) string {
	return fmt.Sprintf("%s_handicap_%s_%.1f", prefix, side, line)
}

type emitter struct {
	fx       domain.FixtureRecord
	product  domain.ProductCategory
	pcfg     config.ProductConfig
	factors  domain.FactorSet
	out      []domain.MarketCandidate
}

func newEmitter(fx domain.FixtureRecord, product domain.ProductCategory, pcfg config.ProductConfig, factors domain.FactorSet) *emitter {
	return &emitter{fx: fx, product: product, pcfg: pcfg, factors: factors}
}

// emit appends one candidate when the book quotes the market inside the
// product's odds window. Probability zero or missing odds drop silently.
func (e *emitter) emit(key string, line float64, side domain.Side, price sim.LinePrice, prob float64, summary domain.SimSummary) {
	odds, ok := e.fx.Odds[key]
	if !ok || prob <= 0 {
		return
	}
	if odds < e.pcfg.MinOdds || odds > e.pcfg.MaxOdds {
		return
	}
	e.out = append(e.out, domain.MarketCandidate{
		FixtureID:   e.fx.Context.FixtureID,
		HomeTeam:    e.fx.Context.HomeTeam,
		AwayTeam:    e.fx.Context.AwayTeam,
		League:      e.fx.Context.League,
		Kickoff:     e.fx.Context.Kickoff,
		Product:     e.product,
		MarketKey:   key,
		Line:        line,
		Side:        side,
		Probability: prob,
		PushProb:    price.Push,
		Odds:        odds,
		Confidence:  prob,
		Factors:     e.factors,
		Sim:         summary,
	})
}

// emitOverUnder prices both directions of a totals line.
func (e *emitter) emitOverUnder(prefix string, dist sim.Distribution, line float64) {
	price := dist.PriceLine(line)
	summary := dist.Summary()
	e.emit(marketKey(prefix, domain.SideOver, line), line, domain.SideOver, price, price.Over, summary)
	e.emit(marketKey(prefix, domain.SideUnder, line), line, domain.SideUnder, price, price.Under, summary)
}
