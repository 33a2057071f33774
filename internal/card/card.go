// Package card assembles the final daily artifact from routed candidates.
package card

import (
	"math"
	"time"

	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/router"
)

// Pick is one sized single.
type Pick struct {
	router.Candidate
	Stake domain.StakeRecommendation `json:"stake"`
}

// Parlay is one sized multi-leg bet.
type Parlay struct {
	Legs      []router.Candidate         `json:"legs"`
	TotalOdds float64                    `json:"total_odds"`
	Stake     domain.StakeRecommendation `json:"stake"`
}

// DailyCard is the sole externally consumed output of a cycle.
type DailyCard struct {
	Date       time.Time    `json:"date"`
	CycleID    string       `json:"cycle_id"`
	Routing    router.Stats `json:"routing"`

	ValueSingles    []Pick `json:"value_singles"`
	Totals          []Pick `json:"totals"`
	BTTS            []Pick `json:"btts"`
	CornersMatch    []Pick `json:"corners_match"`
	CornersTeam     []Pick `json:"corners_team"`
	CornersHandicap []Pick `json:"corners_handicap"`
	CardsMatch      []Pick `json:"cards_match"`
	CardsTeam       []Pick `json:"cards_team"`
	Shots           []Pick `json:"shots"`

	Parlays []Parlay `json:"parlays"`

	Summary Summary `json:"summary"`
}

// Summary aggregates the card for reporting.
type Summary struct {
	TotalSingles int            `json:"total_singles"`
	TotalParlays int            `json:"total_parlays"`
	ByTier       map[string]int `json:"by_tier"`
	ByProduct    map[string]int `json:"by_product"`
	ByBucket     map[string]int `json:"by_bucket"`
	AvgEV        float64        `json:"avg_ev"`
}

// Singles returns every single on the card in bucket order.
func (c *DailyCard) Singles() []Pick {
	out := make([]Pick, 0,
		len(c.ValueSingles)+len(c.Totals)+len(c.BTTS)+
			len(c.CornersMatch)+len(c.CornersTeam)+len(c.CornersHandicap)+
			len(c.CardsMatch)+len(c.CardsTeam)+len(c.Shots))
	for _, b := range [][]Pick{
		c.ValueSingles, c.Totals, c.BTTS,
		c.CornersMatch, c.CornersTeam, c.CornersHandicap,
		c.CardsMatch, c.CardsTeam, c.Shots,
	} {
		out = append(out, b...)
	}
	return out
}

func (c *DailyCard) computeSummary() {
	s := Summary{
		ByTier:    make(map[string]int),
		ByProduct: make(map[string]int),
		ByBucket:  make(map[string]int),
	}
	var evSum float64
	singles := c.Singles()
	for _, p := range singles {
		s.ByTier[p.Tier.String()]++
		s.ByProduct[string(p.Product)]++
		s.ByBucket[p.Bucket]++
		evSum += p.EV
	}
	s.TotalSingles = len(singles)
	s.TotalParlays = len(c.Parlays)
	if len(singles) > 0 {
		s.AvgEV = math.Round(evSum/float64(len(singles))*10000) / 10000
	}
	c.Summary = s
}
