package sim

import (
	"math"

	"github.com/pitchedge/pitchedge/internal/domain"
)

// WeightedFactor is one named factor with its geometric weight.
type WeightedFactor struct {
	Name   string
	Value  float64
	Weight float64
}

// CombineFactors reduces a factor list to a single bounded multiplier via a
// weighted geometric mean, then clamps to [lo, hi]. Geometric weighting
// keeps a neutral factor from swinging the result while still letting
// several mildly elevated factors compound.
func CombineFactors(factors []WeightedFactor, lo, hi float64) domain.FactorSet {
	set := domain.FactorSet{Factors: make(map[string]float64, len(factors))}
	var totalW, logSum float64
	for _, f := range factors {
		set.Factors[f.Name] = f.Value
		if f.Value <= 0 || f.Weight <= 0 {
			continue
		}
		totalW += f.Weight
		logSum += f.Weight * math.Log(f.Value)
	}
	combined := 1.0
	if totalW > 0 {
		combined = math.Exp(logSum / totalW)
	}
	set.Combined = Clamp(combined, lo, hi)
	return set
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
