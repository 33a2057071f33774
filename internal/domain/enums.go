package domain

import "strings"

// TrustTier is the discrete confidence classification attached to a priced
// candidate. L1 is the highest tier; Rejected candidates never reach the
// router.
type TrustTier int

const (
	TierRejected TrustTier = iota
	TierL3
	TierL2
	TierL1
)

func (t TrustTier) String() string {
	switch t {
	case TierL1:
		return "L1"
	case TierL2:
		return "L2"
	case TierL3:
		return "L3"
	default:
		return "REJECTED"
	}
}

// Weight orders tiers for routing: higher trust is routed first.
func (t TrustTier) Weight() int {
	switch t {
	case TierL1:
		return 3
	case TierL2:
		return 2
	case TierL3:
		return 1
	default:
		return 0
	}
}

// ParseTrustTier matches tier tokens by substring so legacy shapes like
// "tier_l1" or "L2 (sim)" still resolve. Unrecognized tokens default to L3,
// never to Rejected: rejection is a classification outcome, not a parsing one.
func ParseTrustTier(s string) TrustTier {
	u := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.Contains(u, "L1"):
		return TierL1
	case strings.Contains(u, "L2"):
		return TierL2
	case strings.Contains(u, "REJECT"):
		return TierRejected
	default:
		return TierL3
	}
}

// ProductCategory is the closed set of routing products. Every candidate maps
// to exactly one category before it reaches the router.
type ProductCategory string

const (
	ProductTotals          ProductCategory = "TOTALS"
	ProductBTTS            ProductCategory = "BTTS"
	ProductMLAH            ProductCategory = "ML_AH"
	ProductCornersMatch    ProductCategory = "CORNERS_MATCH"
	ProductCornersTeam     ProductCategory = "CORNERS_TEAM"
	ProductCornersHandicap ProductCategory = "CORNERS_HANDICAP"
	ProductCardsMatch      ProductCategory = "CARDS_MATCH"
	ProductCardsTeam       ProductCategory = "CARDS_TEAM"
	ProductShotsTeam       ProductCategory = "SHOTS_TEAM"
	ProductValueSingles    ProductCategory = "VALUE_SINGLES"
)

// Categories lists every routable product, in cap-table order.
func Categories() []ProductCategory {
	return []ProductCategory{
		ProductTotals, ProductBTTS, ProductMLAH,
		ProductCornersMatch, ProductCornersTeam, ProductCornersHandicap,
		ProductCardsMatch, ProductCardsTeam, ProductShotsTeam,
		ProductValueSingles,
	}
}

// NormalizeProduct maps raw engine product labels onto the closed category
// set. Legacy engines emit names like "SHOTS" or "value_singles"; the
// substring fallbacks absorb those shapes here so nothing downstream has to.
func NormalizeProduct(raw string) (ProductCategory, bool) {
	u := strings.ToUpper(strings.TrimSpace(raw))
	u = strings.ReplaceAll(u, " ", "_")
	switch ProductCategory(u) {
	case ProductTotals, ProductBTTS, ProductMLAH,
		ProductCornersMatch, ProductCornersTeam, ProductCornersHandicap,
		ProductCardsMatch, ProductCardsTeam, ProductShotsTeam,
		ProductValueSingles:
		return ProductCategory(u), true
	}
	switch {
	case strings.Contains(u, "VALUE"):
		return ProductValueSingles, true
	case strings.Contains(u, "BTTS"), strings.Contains(u, "BOTH_TEAMS"):
		return ProductBTTS, true
	case strings.Contains(u, "HANDICAP") && strings.Contains(u, "CORNER"):
		return ProductCornersHandicap, true
	case strings.Contains(u, "CORNER") && strings.Contains(u, "TEAM"):
		return ProductCornersTeam, true
	case strings.Contains(u, "CORNER"):
		return ProductCornersMatch, true
	case strings.Contains(u, "CARD") && strings.Contains(u, "TEAM"):
		return ProductCardsTeam, true
	case strings.Contains(u, "CARD"), strings.Contains(u, "BOOKING"):
		return ProductCardsMatch, true
	case strings.Contains(u, "SHOT"), strings.Contains(u, "SOT"):
		return ProductShotsTeam, true
	case strings.Contains(u, "TOTAL"), strings.Contains(u, "OVER"), strings.Contains(u, "UNDER"):
		return ProductTotals, true
	case strings.Contains(u, "ML"), strings.Contains(u, "MONEYLINE"), strings.Contains(u, "AH"):
		return ProductMLAH, true
	}
	return "", false
}

// Side is the direction of a priced line.
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
	SideHome  Side = "home"
	SideAway  Side = "away"
)
