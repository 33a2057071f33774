package sim

import (
	"math"
	"math/rand"
)

// Sampler draws the per-side count samples for a market family. A fresh
// Sampler per fixture keeps the per-fixture stage free of shared state.
type Sampler struct {
	rng *rand.Rand
	n   int
}

// NewSampler returns a sampler producing n draws per call. seed 0 picks a
// nondeterministic stream; tests pass a fixed seed.
func NewSampler(n int, seed int64) *Sampler {
	if n <= 0 {
		n = 10000
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed)), n: n}
}

// Size reports the number of draws per sample set.
func (s *Sampler) Size() int { return s.n }

// Poisson draws n independent Poisson(lambda) samples. Knuth's product
// method is fine at football count rates; lambda is floored at a small
// positive value so a degenerate input still yields a valid stream.
func (s *Sampler) Poisson(lambda float64) []float64 {
	if lambda < 0.01 {
		lambda = 0.01
	}
	out := make([]float64, s.n)
	limit := math.Exp(-lambda)
	for i := range out {
		k := 0
		p := 1.0
		for {
			p *= s.rng.Float64()
			if p <= limit {
				break
			}
			k++
		}
		out[i] = float64(k)
	}
	return out
}

// Bernoulli draws n {0,1} samples with success probability p.
func (s *Sampler) Bernoulli(p float64) []float64 {
	out := make([]float64, s.n)
	for i := range out {
		if s.rng.Float64() < p {
			out[i] = 1
		}
	}
	return out
}
