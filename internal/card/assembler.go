package card

import (
	"sort"
	"time"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/router"
	"github.com/pitchedge/pitchedge/internal/stake"
)

// Assembler partitions routed candidates into the card's semantic buckets
// and sizes each entry.
type Assembler struct {
	sizer    *stake.Sizer
	targets  map[string]config.DailyTarget
	bankroll float64
	profile  string
}

func NewAssembler(sizer *stake.Sizer, targets map[string]config.DailyTarget, bankroll float64, profile string) *Assembler {
	return &Assembler{sizer: sizer, targets: targets, bankroll: bankroll, profile: profile}
}

// Assemble builds the card from a routing result. Picks whose sizing comes
// back not-recommended keep their zero-stake recommendation on the card;
// filtering them is a presentation decision, not ours.
func (a *Assembler) Assemble(cycleID string, date time.Time, routed router.Result) *DailyCard {
	c := &DailyCard{Date: date, CycleID: cycleID, Routing: routed.Stats}

	picks := make([]Pick, 0, len(routed.Selected))
	recs := make([]domain.StakeRecommendation, 0, len(routed.Selected))
	for _, rc := range routed.Selected {
		rec := a.sizer.SuggestSingle(rc.Confidence, rc.Odds, a.bankroll, a.profile)
		picks = append(picks, Pick{Candidate: rc, Stake: rec})
		recs = append(recs, rec)
	}
	// Keep total exposure bounded across the whole card.
	recs = a.sizer.ScalePortfolio(recs, a.bankroll)
	for i := range picks {
		picks[i].Stake = recs[i]
	}

	mlPool := make([]router.Candidate, 0)
	for _, p := range picks {
		switch p.Product {
		case domain.ProductValueSingles:
			c.ValueSingles = append(c.ValueSingles, p)
		case domain.ProductTotals:
			c.Totals = append(c.Totals, p)
		case domain.ProductBTTS:
			c.BTTS = append(c.BTTS, p)
		case domain.ProductMLAH:
			c.ValueSingles = append(c.ValueSingles, p)
			mlPool = append(mlPool, p.Candidate)
		case domain.ProductCornersMatch:
			c.CornersMatch = append(c.CornersMatch, p)
		case domain.ProductCornersTeam:
			c.CornersTeam = append(c.CornersTeam, p)
		case domain.ProductCornersHandicap:
			c.CornersHandicap = append(c.CornersHandicap, p)
		case domain.ProductCardsMatch:
			c.CardsMatch = append(c.CardsMatch, p)
		case domain.ProductCardsTeam:
			c.CardsTeam = append(c.CardsTeam, p)
		case domain.ProductShotsTeam:
			c.Shots = append(c.Shots, p)
		}
	}

	if parlay, ok := a.buildParlay(mlPool); ok {
		c.Parlays = append(c.Parlays, parlay)
	}

	c.computeSummary()
	return c
}

// buildParlay combines the strongest moneyline picks from distinct fixtures
// into one multi-match parlay, at most three legs, tier L2 or better.
func (a *Assembler) buildParlay(pool []router.Candidate) (Parlay, bool) {
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Tier.Weight() != pool[j].Tier.Weight() {
			return pool[i].Tier.Weight() > pool[j].Tier.Weight()
		}
		return pool[i].EV > pool[j].EV
	})

	var legs []router.Candidate
	var probs []float64
	seen := make(map[int64]bool)
	totalOdds := 1.0
	for _, c := range pool {
		if c.Tier.Weight() < domain.TierL2.Weight() || seen[c.FixtureID] {
			continue
		}
		legs = append(legs, c)
		probs = append(probs, c.Confidence)
		totalOdds *= c.Odds
		seen[c.FixtureID] = true
		if len(legs) == 3 {
			break
		}
	}
	if len(legs) < 2 {
		return Parlay{}, false
	}
	rec := a.sizer.SuggestParlay(probs, totalOdds, a.bankroll)
	if !rec.Recommended() {
		return Parlay{}, false
	}
	return Parlay{Legs: legs, TotalOdds: totalOdds, Stake: rec}, true
}

// AssembleLegacy is the non-routed path: candidates arrive grouped per
// product and each product is filtered against its daily target instead of
// the router's cap hierarchy. Kept for callers that still feed per-engine
// pools directly.
func (a *Assembler) AssembleLegacy(cycleID string, date time.Time, byProduct map[string][]router.Candidate) *DailyCard {
	var selected []router.Candidate
	for product, cands := range byProduct {
		target, ok := a.targets[product]
		if !ok {
			continue
		}
		selected = append(selected, FilterProduct(cands, target)...)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Tier.Weight() != selected[j].Tier.Weight() {
			return selected[i].Tier.Weight() > selected[j].Tier.Weight()
		}
		return selected[i].EV > selected[j].EV
	})
	return a.Assemble(cycleID, date, router.Result{Selected: selected})
}

// FilterProduct is the legacy non-routed daily filter: up to three L1 picks
// first, then L2, then L3 only as top-up toward the product's minimum.
func FilterProduct(cands []router.Candidate, target config.DailyTarget) []router.Candidate {
	byTier := map[domain.TrustTier][]router.Candidate{}
	for _, c := range cands {
		byTier[c.Tier] = append(byTier[c.Tier], c)
	}
	for _, tier := range []domain.TrustTier{domain.TierL1, domain.TierL2, domain.TierL3} {
		sort.SliceStable(byTier[tier], func(i, j int) bool {
			return byTier[tier][i].EV > byTier[tier][j].EV
		})
	}

	out := take(byTier[domain.TierL1], 3)
	out = append(out, take(byTier[domain.TierL2], target.Max-len(out))...)
	if len(out) < target.Min {
		out = append(out, take(byTier[domain.TierL3], target.Min-len(out))...)
	}
	if len(out) > target.Max {
		out = out[:target.Max]
	}
	return out
}

func take(cs []router.Candidate, n int) []router.Candidate {
	if n <= 0 {
		return nil
	}
	if len(cs) < n {
		n = len(cs)
	}
	return cs[:n]
}
