package router

import "math"

// Stats are the routing diagnostics emitted with every allocation.
type Stats struct {
	TotalSelected   int            `json:"total_selected"`
	ByProduct       map[string]int `json:"by_product"`
	ByBucket        map[string]int `json:"by_bucket"`
	ByTier          map[string]int `json:"by_tier"`
	AvgEVPct        float64        `json:"avg_ev_pct"`
	MarketDiversity int            `json:"market_diversity"`
	BalanceScore    float64        `json:"balance_score"`
}

func computeStats(selected []Candidate) Stats {
	s := Stats{
		TotalSelected: len(selected),
		ByProduct:     make(map[string]int),
		ByBucket:      make(map[string]int),
		ByTier:        make(map[string]int),
	}
	var evSum float64
	for _, c := range selected {
		s.ByProduct[string(c.Product)]++
		s.ByBucket[c.Bucket]++
		s.ByTier[c.Tier.String()]++
		evSum += c.EV
	}
	if len(selected) > 0 {
		s.AvgEVPct = math.Round(evSum/float64(len(selected))*100*100) / 100
	}
	s.MarketDiversity = len(s.ByBucket)
	s.BalanceScore = balanceScore(s.ByProduct)
	return s
}

// balanceScore rewards the number of products represented and penalizes
// uneven per-product counts. Empty selection scores 0, a single product 10.
func balanceScore(byProduct map[string]int) float64 {
	n := len(byProduct)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return 10
	}
	var sum float64
	for _, c := range byProduct {
		sum += float64(c)
	}
	mean := sum / float64(n)
	var variance float64
	for _, c := range byProduct {
		d := float64(c) - mean
		variance += d * d
	}
	variance /= float64(n)

	score := 50 + math.Min(10*float64(n), 40) - math.Min(2*variance, 50)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
