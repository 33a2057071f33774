package router

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/pitchedge/pitchedge/internal/config"
)

// Input is one routing request. PlacedToday carries the advisory per-product
// counters from external persistence and MaxPerDay the per-product daily
// maxima from product config; both shrink the effective product caps for
// this cycle and are never mutated here.
type Input struct {
	Candidates        []Candidate
	PlacedToday       map[string]int
	MaxPerDay         map[string]int
	DisableSecondPass bool
}

// Result is the allocation outcome plus diagnostics.
type Result struct {
	Selected       []Candidate
	Stats          Stats
	SkippedUnknown int
}

// RoutePicks performs the two-pass greedy allocation under the nested cap
// hierarchy. cfg is taken by value and never mutated.
func RoutePicks(in Input, cfg config.RouterConfig) Result {
	pool := make([]Candidate, 0, len(in.Candidates))
	skipped := 0
	for _, c := range in.Candidates {
		if cfg.ProductCap(string(c.Product)) <= 0 {
			log.Warn().Str("product", string(c.Product)).Str("market", c.MarketKey).
				Msg("unknown product reached router, skipping")
			skipped++
			continue
		}
		pool = append(pool, c)
	}
	sortCandidates(pool)

	type pairKey struct {
		fixture int64
		market  string
	}
	selected := make([]Candidate, 0, cfg.GlobalDailyMaxPicks)
	seen := make(map[pairKey]bool)
	byProduct := make(map[string]int)
	byBucket := make(map[string]map[string]int)

	productCap := func(p string) int {
		cap := cfg.ProductCap(p)
		if m, ok := in.MaxPerDay[p]; ok && m > 0 && m < cap {
			cap = m
		}
		if placed := in.PlacedToday[p]; placed > 0 {
			cap -= placed
			if cap < 0 {
				cap = 0
			}
		}
		return cap
	}

	admit := func(c Candidate, enforceBucket bool) bool {
		if len(selected) >= cfg.GlobalDailyMaxPicks {
			return false
		}
		p := string(c.Product)
		if byProduct[p] >= productCap(p) {
			return false
		}
		if seen[pairKey{c.FixtureID, c.MarketKey}] {
			return false
		}
		if enforceBucket {
			if byBucket[p][c.Bucket] >= cfg.BucketCap(p, c.Bucket) {
				return false
			}
		}
		selected = append(selected, c)
		seen[pairKey{c.FixtureID, c.MarketKey}] = true
		byProduct[p]++
		if byBucket[p] == nil {
			byBucket[p] = make(map[string]int)
		}
		byBucket[p][c.Bucket]++
		return true
	}

	// Pass 1: all three cap levels plus de-duplication.
	admitted := make(map[pairKey]bool, len(pool))
	for _, c := range pool {
		if admit(c, true) {
			admitted[pairKey{c.FixtureID, c.MarketKey}] = true
		}
	}

	// Pass 2: bucket diversity is a soft preference; with global slots left
	// over, surplus depth in one bucket may fill them.
	if !in.DisableSecondPass && len(selected) < cfg.GlobalDailyMaxPicks {
		for _, c := range pool {
			if len(selected) >= cfg.GlobalDailyMaxPicks {
				break
			}
			if admitted[pairKey{c.FixtureID, c.MarketKey}] {
				continue
			}
			admit(c, false)
		}
	}

	log.Info().Int("pool", len(pool)).Int("selected", len(selected)).
		Int("skipped_unknown", skipped).Msg("routing complete")

	return Result{
		Selected:       selected,
		Stats:          computeStats(selected),
		SkippedUnknown: skipped,
	}
}

// sortCandidates orders by tier weight then EV descending, with the
// deterministic (fixture id, market key) tie-break that makes allocation
// reproducible.
func sortCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Tier.Weight() != b.Tier.Weight() {
			return a.Tier.Weight() > b.Tier.Weight()
		}
		if a.EV != b.EV {
			return a.EV > b.EV
		}
		if a.FixtureID != b.FixtureID {
			return a.FixtureID < b.FixtureID
		}
		return a.MarketKey < b.MarketKey
	})
}
