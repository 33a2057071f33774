package sim

import (
	"math"

	"github.com/pitchedge/pitchedge/internal/domain"
)

// Distribution is an empirical sample set for one composite statistic.
// Samples are discarded once probabilities have been extracted.
type Distribution struct {
	samples []float64
}

// FromSamples wraps an existing sample slice.
func FromSamples(samples []float64) Distribution {
	return Distribution{samples: samples}
}

// Sum combines two side sample sets elementwise. Composite markets have no
// tractable closed form once sides are combined, so everything downstream
// counts samples instead.
func Sum(a, b []float64) Distribution {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return Distribution{samples: out}
}

// SumN combines any number of sample sets elementwise.
func SumN(sets ...[]float64) Distribution {
	if len(sets) == 0 {
		return Distribution{}
	}
	out := make([]float64, len(sets[0]))
	for _, set := range sets {
		for i := range set {
			out[i] += set[i]
		}
	}
	return Distribution{samples: out}
}

// Diff combines two side sample sets as a - b, for handicap markets.
func Diff(a, b []float64) Distribution {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return Distribution{samples: out}
}

// WeightedSum combines sample sets with per-set weights, for markets like
// booking points where event types carry different point values.
func WeightedSum(weights []float64, sets ...[]float64) Distribution {
	if len(sets) == 0 {
		return Distribution{}
	}
	out := make([]float64, len(sets[0]))
	for si, set := range sets {
		w := weights[si]
		for i := range set {
			out[i] += w * set[i]
		}
	}
	return Distribution{samples: out}
}

// LinePrice is the empirical pricing of one line: strictly-over, strictly-
// under and exactly-on-the-line fractions. Over+Under+Push sums to 1.
type LinePrice struct {
	Over  float64
	Under float64
	Push  float64
}

// PriceLine counts the sample fractions strictly beyond the line on each
// side. Ties only occur on integer lines and are reported as push, excluded
// from both directions.
func (d Distribution) PriceLine(line float64) LinePrice {
	if len(d.samples) == 0 {
		return LinePrice{}
	}
	var over, under, push int
	for _, v := range d.samples {
		switch {
		case v > line:
			over++
		case v < line:
			under++
		default:
			push++
		}
	}
	n := float64(len(d.samples))
	return LinePrice{
		Over:  float64(over) / n,
		Under: float64(under) / n,
		Push:  float64(push) / n,
	}
}

// Summary computes the retained distribution stats.
func (d Distribution) Summary() domain.SimSummary {
	n := len(d.samples)
	if n == 0 {
		return domain.SimSummary{}
	}
	var sum float64
	for _, v := range d.samples {
		sum += v
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range d.samples {
		dv := v - mean
		ss += dv * dv
	}
	return domain.SimSummary{
		Samples: n,
		Mean:    mean,
		StdDev:  math.Sqrt(ss / float64(n)),
	}
}

// Mean is a convenience accessor over Summary.
func (d Distribution) Mean() float64 { return d.Summary().Mean }
