// Package pipeline orchestrates one daily card cycle.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pitchedge/pitchedge/internal/card"
	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/counters"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/drift"
	"github.com/pitchedge/pitchedge/internal/engine"
	"github.com/pitchedge/pitchedge/internal/ev"
	"github.com/pitchedge/pitchedge/internal/features"
	"github.com/pitchedge/pitchedge/internal/metrics"
	"github.com/pitchedge/pitchedge/internal/router"
	"github.com/pitchedge/pitchedge/internal/sim"
	"github.com/pitchedge/pitchedge/internal/stake"
)

// Options configures one cycle run. Store and Counters are optional; a nil
// Store falls back to in-memory drift tracking for the run.
type Options struct {
	Fixtures []domain.FixtureRecord
	Config   *config.Config
	Store    drift.Store
	Counters counters.Reader
	Metrics  *metrics.Registry
	Bankroll float64
	Profile  string
	Seed     int64
	Date     time.Time
}

// Result is the cycle artifact plus run diagnostics.
type Result struct {
	CycleID      string          `json:"cycle_id"`
	Card         *card.DailyCard `json:"card"`
	Priced       int             `json:"priced"`
	Classified   int             `json:"classified"`
	DriftBlocked int             `json:"drift_blocked"`
	Elapsed      time.Duration   `json:"elapsed"`
}

// Run executes the full chain: features, simulation, classification, drift
// veto, normalization, routing, assembly, sizing. Fixtures price in
// parallel; routing onward is single-threaded over the joined pool.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	store := opts.Store
	if store == nil {
		store = drift.NewMemoryStore()
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now().UTC()
	}

	cycleID := uuid.New().String()
	log.Info().Str("cycle", cycleID).Int("fixtures", len(opts.Fixtures)).Msg("cycle started")

	tracker := drift.NewTracker(store, cfg.Drift)
	recorder := drift.NewRecorder(tracker, cfg.Drift.WritesPerSecond)
	driftRecs := recorder.RecordBatch(ctx, opts.Fixtures)

	engines := []engine.Engine{
		engine.NewGoalsEngine(cfg),
		engine.NewCornersEngine(cfg),
		engine.NewCardsEngine(cfg),
		engine.NewShotsEngine(cfg),
	}
	builder := features.NewBuilder(cfg.Features)

	priced := priceFixtures(opts, cfg, builder, engines)
	classified := classify(priced, cfg)
	kept, blocked := applyDriftVeto(classified, tracker, driftRecs)

	if opts.Metrics != nil {
		for _, c := range priced {
			opts.Metrics.CandidatesPriced.WithLabelValues(string(c.Product)).Inc()
		}
		for _, c := range blocked {
			opts.Metrics.DriftBlocked.WithLabelValues(c.Tier.String()).Inc()
		}
	}

	normalized := make([]router.Candidate, 0, len(kept))
	for _, c := range kept {
		normalized = append(normalized, router.FromMarketCandidate(c))
	}

	placed := counters.Fetch(ctx, opts.Counters, opts.Date)
	maxPerDay := make(map[string]int, len(cfg.Products))
	for name, p := range cfg.Products {
		maxPerDay[name] = p.MaxPerDay
	}
	routed := router.RoutePicks(router.Input{
		Candidates:  normalized,
		PlacedToday: placed,
		MaxPerDay:   maxPerDay,
	}, cfg.Router)

	sizer := stake.NewSizer(cfg.Staking)
	assembler := card.NewAssembler(sizer, cfg.DailyTargets, opts.Bankroll, opts.Profile)
	dailyCard := assembler.Assemble(cycleID, opts.Date, routed)

	if opts.Metrics != nil {
		for _, c := range routed.Selected {
			opts.Metrics.CandidatesAdmitted.WithLabelValues(string(c.Product), c.Tier.String()).Inc()
		}
		opts.Metrics.BalanceScore.Set(routed.Stats.BalanceScore)
		opts.Metrics.CardSize.Set(float64(dailyCard.Summary.TotalSingles))
		opts.Metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}

	res := &Result{
		CycleID:      cycleID,
		Card:         dailyCard,
		Priced:       len(priced),
		Classified:   len(classified),
		DriftBlocked: len(blocked),
		Elapsed:      time.Since(start),
	}
	log.Info().Str("cycle", cycleID).
		Int("priced", res.Priced).
		Int("classified", res.Classified).
		Int("drift_blocked", res.DriftBlocked).
		Int("selected", dailyCard.Summary.TotalSingles).
		Float64("balance", routed.Stats.BalanceScore).
		Dur("elapsed", res.Elapsed).
		Msg("cycle complete")
	return res, nil
}

// priceFixtures runs the per-fixture stage across a bounded worker pool.
// Fixtures are independent; the pool joins before any aggregation step.
func priceFixtures(opts Options, cfg *config.Config, builder *features.Builder, engines []engine.Engine) []domain.MarketCandidate {
	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = 4
	}
	type job struct{ fx domain.FixtureRecord }
	jobs := make(chan job)
	results := make(chan []domain.MarketCandidate, len(opts.Fixtures))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				f := builder.Build(j.fx)
				// Seeding off the fixture id keeps a run reproducible
				// regardless of worker scheduling.
				var seed int64
				if opts.Seed != 0 {
					seed = opts.Seed + j.fx.Context.FixtureID
				}
				var out []domain.MarketCandidate
				for _, e := range engines {
					s := sim.NewSampler(cfg.Simulation.Samples, seed)
					out = append(out, e.Price(j.fx, f, s)...)
				}
				results <- out
			}
		}()
	}
	go func() {
		for _, fx := range opts.Fixtures {
			jobs <- job{fx: fx}
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var all []domain.MarketCandidate
	for batch := range results {
		all = append(all, batch...)
	}
	return all
}

// classify computes EV, the simulation approval gate and the trust tier,
// dropping rejected and inadmissible candidates.
func classify(cands []domain.MarketCandidate, cfg *config.Config) []domain.MarketCandidate {
	out := make([]domain.MarketCandidate, 0, len(cands))
	for _, c := range cands {
		pcfg, ok := cfg.Products[string(c.Product)]
		if !ok {
			log.Warn().Str("product", string(c.Product)).Msg("no product config, skipping candidate")
			continue
		}
		c.EV = ev.EV(c.Probability, c.Odds)
		if !ev.Admissible(c.EV, c.Odds, pcfg) {
			continue
		}
		c.SimApproved = c.EV >= cfg.Simulation.SimApprovalMinEV
		c.Tier = ev.ClassifyTier(c.EV, c.Confidence, c.SimApproved, pcfg)
		if c.Tier == domain.TierRejected {
			continue
		}
		out = append(out, c)
	}
	return out
}

// applyDriftVeto scores each candidate's drift and blocks vetoed L1/L2
// picks. L3 picks are never blocked, only flagged.
func applyDriftVeto(cands []domain.MarketCandidate, tracker *drift.Tracker, recs map[int64]map[string]drift.Record) (kept, blocked []domain.MarketCandidate) {
	for _, c := range cands {
		rec, ok := recs[c.FixtureID][c.MarketKey]
		if !ok {
			kept = append(kept, c)
			continue
		}
		a := tracker.Assess(rec, c.Probability)
		c.DriftScore = a.Score
		c.DriftRegime = a.Regime
		if tracker.ShouldBlockBet(c.Tier, a.Score) {
			log.Debug().Int64("fixture", c.FixtureID).Str("market", c.MarketKey).
				Str("tier", c.Tier.String()).Float64("score", a.Score).
				Msg("candidate blocked by drift veto")
			blocked = append(blocked, c)
			continue
		}
		if a.Regime == drift.RegimeMarketDisagrees {
			c.MarketDisagrees = true
		}
		kept = append(kept, c)
	}
	return kept, blocked
}
