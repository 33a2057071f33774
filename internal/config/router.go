package config

// RouterConfig is the nested cap hierarchy for the allocation pass. It is
// passed by value into the router; the router never mutates it.
type RouterConfig struct {
	GlobalDailyMaxPicks int                       `yaml:"global_daily_max_picks"`
	ProductCaps         map[string]int            `yaml:"product_caps"`
	BucketCaps          map[string]map[string]int `yaml:"bucket_caps"`
	DefaultBucketCap    int                       `yaml:"default_bucket_cap"`
}

// DefaultRouterConfig returns the standard daily cap tables.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		GlobalDailyMaxPicks: 25,
		ProductCaps: map[string]int{
			"TOTALS":           10,
			"BTTS":             8,
			"ML_AH":            15,
			"CORNERS_MATCH":    6,
			"CORNERS_TEAM":     4,
			"CORNERS_HANDICAP": 6,
			"CARDS_MATCH":      6,
			"CARDS_TEAM":       4,
			"SHOTS_TEAM":       6,
			"VALUE_SINGLES":    15,
		},
		BucketCaps: map[string]map[string]int{
			"TOTALS": {
				"OVER_2_5":  3,
				"UNDER_2_5": 3,
				"OVER_3_5":  3,
				"UNDER_3_5": 2,
			},
			"BTTS": {
				"BTTS_YES": 5,
				"BTTS_NO":  3,
			},
			"ML_AH": {
				"ML": 8,
				"AH": 7,
			},
			"CORNERS_MATCH": {
				"OVER_8_5":  2,
				"OVER_9_5":  2,
				"OVER_10_5": 2,
				"OVER_11_5": 1,
			},
			"CARDS_MATCH": {
				"OVER_3_5":       2,
				"OVER_4_5":       2,
				"BOOKING_POINTS": 2,
			},
		},
		DefaultBucketCap: 3,
	}
}

// ProductCap returns the per-product daily cap, zero when the product is
// unknown (the router skips such candidates).
func (r RouterConfig) ProductCap(product string) int {
	return r.ProductCaps[product]
}

// BucketCap returns the per-bucket cap within a product, falling back to the
// default bucket cap when no explicit entry exists.
func (r RouterConfig) BucketCap(product, bucket string) int {
	if caps, ok := r.BucketCaps[product]; ok {
		if cap, ok := caps[bucket]; ok {
			return cap
		}
	}
	return r.DefaultBucketCap
}
