// Package router normalizes engine output and allocates the daily pick set
// under the nested cap hierarchy.
package router

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pitchedge/pitchedge/internal/domain"
)

// Candidate is the canonical routed form. Every engine shape is adapted to
// it before allocation; the router itself never inspects source shapes.
type Candidate struct {
	FixtureID  int64                   `json:"fixture_id"`
	HomeTeam   string                  `json:"home_team"`
	AwayTeam   string                  `json:"away_team"`
	Kickoff    time.Time               `json:"kickoff"`
	Product    domain.ProductCategory  `json:"product"`
	Bucket     string                  `json:"bucket"`
	MarketKey  string                  `json:"market_key"`
	Line       float64                 `json:"line"`
	Side       domain.Side             `json:"side"`
	Tier       domain.TrustTier        `json:"tier"`
	EV         float64                 `json:"ev"`
	Confidence float64                 `json:"confidence"`
	Odds       float64                 `json:"odds"`
	Source     *domain.MarketCandidate `json:"-"`
}

// FromMarketCandidate adapts the typed engine shape.
func FromMarketCandidate(mc domain.MarketCandidate) Candidate {
	c := mc
	return Candidate{
		FixtureID:  mc.FixtureID,
		HomeTeam:   mc.HomeTeam,
		AwayTeam:   mc.AwayTeam,
		Kickoff:    mc.Kickoff,
		Product:    mc.Product,
		Bucket:     BucketKey(mc.Product, mc.MarketKey, mc.Line, mc.Side),
		MarketKey:  mc.MarketKey,
		Line:       mc.Line,
		Side:       mc.Side,
		Tier:       mc.Tier,
		EV:         mc.EV,
		Confidence: mc.Confidence,
		Odds:       mc.Odds,
		Source:     &c,
	}
}

// FromLegacyMap adapts the loose map shape older engines emit: EV under
// several names and possibly as a percentage, tier as a free-form token.
// Unknown products are an error; the caller skips and logs.
func FromLegacyMap(m map[string]interface{}) (Candidate, error) {
	product, ok := domain.NormalizeProduct(str(m, "product", "product_name", "category"))
	if !ok {
		return Candidate{}, fmt.Errorf("unknown product %q", str(m, "product", "product_name", "category"))
	}
	marketKey := str(m, "market_key", "market", "selection")
	if marketKey == "" {
		return Candidate{}, fmt.Errorf("candidate missing market key")
	}
	line := num(m, "line", "handicap")
	side := domain.Side(strings.ToLower(str(m, "side", "direction")))

	c := Candidate{
		FixtureID:  int64(num(m, "fixture_id", "fixture")),
		HomeTeam:   str(m, "home_team", "home"),
		AwayTeam:   str(m, "away_team", "away"),
		Product:    product,
		Bucket:     BucketKey(product, marketKey, line, side),
		MarketKey:  marketKey,
		Line:       line,
		Side:       side,
		Tier:       domain.ParseTrustTier(str(m, "tier", "trust_tier", "trust")),
		EV:         normalizeFraction(num(m, "ev", "expected_value", "ev_pct")),
		Confidence: normalizeFraction(num(m, "confidence", "model_confidence")),
		Odds:       num(m, "odds", "price", "decimal_odds"),
	}
	return c, nil
}

// normalizeFraction treats values above 1 as percentages.
func normalizeFraction(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

func str(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			switch s := v.(type) {
			case string:
				return strings.TrimSpace(s)
			case fmt.Stringer:
				return s.String()
			}
		}
	}
	return ""
}

func num(m map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int64:
			return float64(n)
		case string:
			s := strings.TrimSuffix(strings.TrimSpace(n), "%")
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// BucketKey derives the cap-table bucket for a candidate, e.g. OVER_2_5,
// BTTS_YES, BOOKING_POINTS, ML, AH.
func BucketKey(product domain.ProductCategory, marketKey string, line float64, side domain.Side) string {
	key := strings.ToLower(marketKey)
	switch product {
	case domain.ProductBTTS:
		if strings.Contains(key, "no") || side == domain.SideUnder {
			return "BTTS_NO"
		}
		return "BTTS_YES"
	case domain.ProductMLAH:
		if strings.Contains(key, "handicap") || strings.Contains(key, "ah") {
			return "AH"
		}
		return "ML"
	case domain.ProductCornersHandicap:
		return fmt.Sprintf("%s_%s", strings.ToUpper(string(side)), lineToken(line))
	}
	if strings.Contains(key, "booking_points") {
		return "BOOKING_POINTS"
	}
	dir := "OVER"
	if side == domain.SideUnder {
		dir = "UNDER"
	}
	return fmt.Sprintf("%s_%s", dir, lineToken(line))
}

func lineToken(line float64) string {
	s := strconv.FormatFloat(line, 'f', 1, 64)
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, "-", "MINUS_")
	return s
}
