// Package stake sizes approved candidates with fractional Kelly.
package stake

import (
	"math"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
)

// Not-recommended reason codes.
const (
	ReasonInvalidProbability = "invalid_probability"
	ReasonOddsOutOfRange     = "odds_out_of_range"
	ReasonEdgeBelowMinimum   = "edge_below_minimum"
	ReasonNoLegs             = "no_legs"
)

// Sizer converts edges into bounded stake recommendations. All methods
// return a zero-stake recommendation with a reason code instead of failing.
type Sizer struct {
	cfg config.StakingConfig
}

func NewSizer(cfg config.StakingConfig) *Sizer {
	return &Sizer{cfg: cfg}
}

// SuggestSingle sizes a single bet: full Kelly scaled by the risk profile's
// fraction, clamped to the max bankroll fraction and the unit ceiling, then
// floored at the minimum stake.
func (s *Sizer) SuggestSingle(prob, odds, bankroll float64, profile string) domain.StakeRecommendation {
	if prob <= 0 || prob >= 1 {
		return domain.StakeRecommendation{Reason: ReasonInvalidProbability}
	}
	if odds < s.cfg.MinOdds || odds > s.cfg.MaxOdds {
		return domain.StakeRecommendation{Reason: ReasonOddsOutOfRange}
	}
	edge := prob*odds - 1
	if edge < s.cfg.MinEdge {
		return domain.StakeRecommendation{Reason: ReasonEdgeBelowMinimum}
	}

	b := odds - 1
	full := (b*prob - (1 - prob)) / b
	if full <= 0 {
		return domain.StakeRecommendation{Reason: ReasonEdgeBelowMinimum}
	}

	frac := full * s.cfg.ProfileFraction(profile)
	frac = math.Min(frac, s.cfg.MaxBankrollFraction)
	frac = math.Min(frac, s.cfg.MaxUnitsPerBet*s.cfg.UnitFraction)
	frac = math.Max(frac, s.cfg.MinBankrollFraction)

	return domain.StakeRecommendation{
		Fraction:   frac,
		Units:      frac / s.cfg.UnitFraction,
		Amount:     math.Round(frac*bankroll*100) / 100,
		KellyFull:  full,
		RiskRating: s.riskRating(frac),
	}
}

// SuggestParlay sizes a multi-leg bet. Kelly over-bets multi-leg variance,
// so the stake scales with edge and is tempered by the inverse square root
// of the combined odds, under the parlay's own caps.
func (s *Sizer) SuggestParlay(legProbs []float64, totalOdds, bankroll float64) domain.StakeRecommendation {
	if len(legProbs) == 0 {
		return domain.StakeRecommendation{Reason: ReasonNoLegs}
	}
	prob := 1.0
	for _, p := range legProbs {
		if p <= 0 || p >= 1 {
			return domain.StakeRecommendation{Reason: ReasonInvalidProbability}
		}
		prob *= p
	}
	if totalOdds <= 1 {
		return domain.StakeRecommendation{Reason: ReasonOddsOutOfRange}
	}
	edge := prob*totalOdds - 1
	if edge < s.cfg.MinEdge {
		return domain.StakeRecommendation{Reason: ReasonEdgeBelowMinimum}
	}

	frac := s.cfg.ParlayEdgeScale * edge / math.Sqrt(totalOdds)
	frac = math.Min(frac, s.cfg.ParlayMaxFraction)
	frac = math.Max(frac, s.cfg.ParlayMinFraction)

	return domain.StakeRecommendation{
		Fraction:   frac,
		Units:      frac / s.cfg.UnitFraction,
		Amount:     math.Round(frac*bankroll*100) / 100,
		RiskRating: s.riskRating(frac),
	}
}

// ScalePortfolio proportionally scales a set of recommendations down when
// their summed fractions exceed the max portfolio exposure. Recommendations
// are returned in input order.
func (s *Sizer) ScalePortfolio(recs []domain.StakeRecommendation, bankroll float64) []domain.StakeRecommendation {
	var total float64
	for _, r := range recs {
		total += r.Fraction
	}
	if total <= s.cfg.MaxPortfolioExposure || total == 0 {
		return recs
	}
	scale := s.cfg.MaxPortfolioExposure / total
	out := make([]domain.StakeRecommendation, len(recs))
	for i, r := range recs {
		r.Fraction *= scale
		r.Units = r.Fraction / s.cfg.UnitFraction
		r.Amount = math.Round(r.Fraction*bankroll*100) / 100
		r.RiskRating = s.riskRating(r.Fraction)
		out[i] = r
	}
	return out
}

func (s *Sizer) riskRating(frac float64) string {
	switch {
	case frac < 0.01:
		return "LOW"
	case frac < 0.025:
		return "MEDIUM"
	case frac < 0.04:
		return "HIGH"
	default:
		return "VERY_HIGH"
	}
}
