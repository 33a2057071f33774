package drift

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/pitchedge/pitchedge/internal/domain"
)

// Recorder batch-records an odds snapshot for a whole fixture list, rate
// limiting store writes so a large card does not saturate the backend.
type Recorder struct {
	tracker *Tracker
	limiter *rate.Limiter
}

func NewRecorder(tracker *Tracker, writesPerSecond float64) *Recorder {
	if writesPerSecond <= 0 {
		writesPerSecond = 50
	}
	return &Recorder{
		tracker: tracker,
		limiter: rate.NewLimiter(rate.Limit(writesPerSecond), int(writesPerSecond)),
	}
}

// RecordBatch observes every market in every fixture's odds snapshot and
// returns the updated records keyed by (fixture, market). Quotes at or below
// 1.0 carry no price information and are skipped, so a junk quote can never
// become a market's opening price. Failed writes are already logged by the
// tracker; the batch always completes.
func (r *Recorder) RecordBatch(ctx context.Context, fixtures []domain.FixtureRecord) map[int64]map[string]Record {
	start := time.Now()
	out := make(map[int64]map[string]Record, len(fixtures))
	var n int
	for _, fx := range fixtures {
		if len(fx.Odds) == 0 {
			continue
		}
		recs := make(map[string]Record, len(fx.Odds))
		for market, odds := range fx.Odds {
			if odds <= 1 {
				continue
			}
			if err := r.limiter.Wait(ctx); err != nil {
				log.Warn().Err(err).Msg("drift batch interrupted")
				out[fx.Context.FixtureID] = recs
				return out
			}
			recs[market] = r.tracker.Observe(ctx, fx.Context.FixtureID, market, odds)
			n++
		}
		out[fx.Context.FixtureID] = recs
	}
	log.Debug().Int("markets", n).Dur("elapsed", time.Since(start)).Msg("odds batch recorded")
	return out
}
