// Package ev computes expected value and assigns trust tiers.
package ev

import (
	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
)

// Sentinel returned when probability or odds are out of domain. Callers
// filter on it; EV never raises.
const Invalid = -1.0

// EV returns p*o - 1, or Invalid when p is outside (0,1] or o <= 1.
func EV(p, o float64) float64 {
	if p <= 0 || p > 1 || o <= 1 {
		return Invalid
	}
	return p*o - 1
}

// ImpliedProb converts decimal odds to the book's implied probability, zero
// for out-of-domain odds.
func ImpliedProb(o float64) float64 {
	if o <= 1 {
		return 0
	}
	return 1 / o
}

// ClassifyTier assigns the trust tier for one candidate under a product's
// threshold table. Tiers are tested highest first; L1 and L2 additionally
// require the simulation approval gate, L3 does not. Thresholds are nested,
// so qualifying for L1 implies the numeric bounds of L2 and L3.
func ClassifyTier(evValue, confidence float64, simApproved bool, p config.ProductConfig) domain.TrustTier {
	if evValue == Invalid {
		return domain.TierRejected
	}
	if simApproved && evValue >= p.L1.MinEV && confidence >= p.L1.MinConfidence {
		return domain.TierL1
	}
	if simApproved && evValue >= p.L2.MinEV && confidence >= p.L2.MinConfidence {
		return domain.TierL2
	}
	if evValue >= p.L3.MinEV && confidence >= p.L3.MinConfidence {
		return domain.TierL3
	}
	return domain.TierRejected
}

// Admissible applies the product's hard pre-filters: odds window and floor
// EV. Tier classification only runs on admissible candidates.
func Admissible(evValue, odds float64, p config.ProductConfig) bool {
	if evValue == Invalid || evValue < p.MinEV {
		return false
	}
	return odds >= p.MinOdds && odds <= p.MaxOdds
}
