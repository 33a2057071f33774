// Package drift tracks market price movement per (fixture, market,
// bookmaker) and vetoes high-trust picks the market is moving against.
package drift

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/ev"
)

// Record is one market's price history at a bookmaker.
type Record struct {
	FixtureID int64     `db:"fixture_id" json:"fixture_id"`
	MarketKey string    `db:"market_key" json:"market_key"`
	Bookmaker string    `db:"bookmaker" json:"bookmaker"`
	OpenOdds  float64   `db:"open_odds" json:"open_odds"`
	LastOdds  float64   `db:"last_odds" json:"last_odds"`
	DriftPct  float64   `db:"drift_pct" json:"drift_pct"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Store persists drift records. Implementations are expected to make Upsert
// transactional per key; the tracker never locks in-process.
type Store interface {
	Get(ctx context.Context, fixtureID int64, marketKey, bookmaker string) (*Record, error)
	Upsert(ctx context.Context, rec Record) error
}

// Drift regimes.
const (
	RegimeStable          = "STABLE"
	RegimeFavorable       = "FAVORABLE"
	RegimeUnfavorable     = "UNFAVORABLE"
	RegimeMarketDisagrees = "MARKET_DISAGREES"
	RegimeCorrecting      = "CORRECTING"
)

// Assessment is the tracker's verdict for one candidate.
type Assessment struct {
	DriftPct float64 `json:"drift_pct"`
	Score    float64 `json:"score"`
	Regime   string  `json:"regime"`
}

// Tracker scores market drift against the model's edge.
type Tracker struct {
	store Store
	cfg   config.DriftConfig
}

func NewTracker(store Store, cfg config.DriftConfig) *Tracker {
	return &Tracker{store: store, cfg: cfg}
}

// Observe records the current price for a market and returns its updated
// record. A store failure degrades to a neutral zero-drift record so the
// cycle continues.
func (t *Tracker) Observe(ctx context.Context, fixtureID int64, marketKey string, odds float64) Record {
	neutral := Record{
		FixtureID: fixtureID,
		MarketKey: marketKey,
		Bookmaker: t.cfg.Bookmaker,
		OpenOdds:  odds,
		LastOdds:  odds,
		UpdatedAt: time.Now().UTC(),
	}
	rec, err := t.store.Get(ctx, fixtureID, marketKey, t.cfg.Bookmaker)
	if err != nil {
		log.Warn().Err(err).Int64("fixture", fixtureID).Str("market", marketKey).
			Msg("drift store read failed, using neutral drift")
		return neutral
	}
	if rec == nil {
		rec = &neutral
	} else {
		rec.LastOdds = odds
		if rec.OpenOdds > 0 {
			rec.DriftPct = (rec.LastOdds - rec.OpenOdds) / rec.OpenOdds
		}
		rec.UpdatedAt = time.Now().UTC()
	}
	if err := t.store.Upsert(ctx, *rec); err != nil {
		log.Warn().Err(err).Int64("fixture", fixtureID).Str("market", marketKey).
			Msg("drift store write failed")
	}
	return *rec
}

// Assess converts a drift record plus the model's edge into a signed score
// in [-2, 2] and a named regime. Negative drift means the price shortened
// (the market is backing this side); positive means it lengthened.
func (t *Tracker) Assess(rec Record, modelProb float64) Assessment {
	edge := modelProb - ev.ImpliedProb(rec.LastOdds)
	d := rec.DriftPct

	a := Assessment{DriftPct: d, Regime: RegimeStable}
	switch {
	case math.Abs(d) < t.cfg.StableBand:
		// stable, score stays zero
	case d < 0 && edge > 0:
		a.Regime = RegimeFavorable
		a.Score = math.Abs(d) * 10
	case d < 0:
		a.Regime = RegimeUnfavorable
		a.Score = d * 10
	case edge > 0:
		a.Regime = RegimeMarketDisagrees
		a.Score = -math.Abs(d) * 10
	default:
		a.Regime = RegimeCorrecting
		a.Score = math.Abs(d) * 5
	}
	a.Score = clamp(a.Score, -2, 2)
	return a
}

// ShouldBlockBet applies the tier-specific veto: L1 blocks below -0.5,
// L2 below -1.0, L3 is never blocked (only flagged upstream).
func (t *Tracker) ShouldBlockBet(tier domain.TrustTier, score float64) bool {
	switch tier {
	case domain.TierL1:
		return score < t.cfg.L1BlockBelow
	case domain.TierL2:
		return score < t.cfg.L2BlockBelow
	default:
		return false
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
