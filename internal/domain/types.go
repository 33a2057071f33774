package domain

import "time"

// MatchContext carries fixture identity plus the importance signals that
// modulate rivalry and intensity indices. Built once per cycle per fixture
// and treated as read-only inside the pipeline.
type MatchContext struct {
	FixtureID    int64     `yaml:"fixture_id" json:"fixture_id"`
	HomeTeam     string    `yaml:"home_team" json:"home_team"`
	AwayTeam     string    `yaml:"away_team" json:"away_team"`
	League       string    `yaml:"league" json:"league"`
	Kickoff      time.Time `yaml:"commence_time" json:"commence_time"`
	Importance   float64   `yaml:"importance" json:"importance"`
	IsKnockout   bool      `yaml:"is_knockout" json:"is_knockout"`
	IsRelegation bool      `yaml:"is_relegation" json:"is_relegation"`
	IsTitleRace  bool      `yaml:"is_title_race" json:"is_title_race"`
}

// TeamStatSnapshot is one side's raw counting stats. Every field is a
// pointer: absent means "use the configured default", and the zero value of
// a stat is a legitimate observation.
type TeamStatSnapshot struct {
	FoulsPG          *float64 `yaml:"fouls_pg" json:"fouls_pg"`
	CardsPG          *float64 `yaml:"cards_pg" json:"cards_pg"`
	TacklesPG        *float64 `yaml:"tackles_pg" json:"tackles_pg"`
	DuelsPG          *float64 `yaml:"duels_pg" json:"duels_pg"`
	PPDA             *float64 `yaml:"ppda" json:"ppda"`
	InterceptionsPG  *float64 `yaml:"interceptions_pg" json:"interceptions_pg"`
	PassesPerMinute  *float64 `yaml:"passes_per_minute" json:"passes_per_minute"`
	AttacksPer90     *float64 `yaml:"attacks_per_90" json:"attacks_per_90"`
	CrossesPer90     *float64 `yaml:"crosses_per_90" json:"crosses_per_90"`
	WideZoneTouches  *float64 `yaml:"wide_zone_touches" json:"wide_zone_touches"`
	FlankAttackPct   *float64 `yaml:"flank_attack_pct" json:"flank_attack_pct"`
	CornersPG        *float64 `yaml:"corners_pg" json:"corners_pg"`
	CornersAgainstPG *float64 `yaml:"corners_against_pg" json:"corners_against_pg"`
	ShotsPG          *float64 `yaml:"shots_pg" json:"shots_pg"`
	ShotsOnTargetPG  *float64 `yaml:"shots_on_target_pg" json:"shots_on_target_pg"`
	XGPG             *float64 `yaml:"xg_pg" json:"xg_pg"`
}

// RefereeProfile is the official's tendency snapshot, nullable field-by-field.
type RefereeProfile struct {
	Name                 string   `yaml:"name" json:"name"`
	CardsPerMatch        *float64 `yaml:"cards_per_match" json:"cards_per_match"`
	FoulToCardConversion *float64 `yaml:"foul_to_card_conversion" json:"foul_to_card_conversion"`
	EarlyCardRate        *float64 `yaml:"early_card_rate" json:"early_card_rate"`
	BigMatchIntensity    *float64 `yaml:"big_match_intensity" json:"big_match_intensity"`
	CornersPerMatch      *float64 `yaml:"corners_per_match" json:"corners_per_match"`
	FoulsNearBoxPerMatch *float64 `yaml:"fouls_near_box_per_match" json:"fouls_near_box_per_match"`
}

// WeatherSnapshot is the forecast at kickoff.
type WeatherSnapshot struct {
	WindSpeed      *float64 `yaml:"wind_speed" json:"wind_speed"`
	IsRain         *bool    `yaml:"is_rain" json:"is_rain"`
	PitchCondition *string  `yaml:"pitch_condition" json:"pitch_condition"`
}

// HeadToHeadSnapshot aggregates recent meetings between the two sides.
type HeadToHeadSnapshot struct {
	Meetings    int      `yaml:"meetings" json:"meetings"`
	AvgCards    *float64 `yaml:"avg_cards" json:"avg_cards"`
	AvgGoals    *float64 `yaml:"avg_goals" json:"avg_goals"`
	AvgCorners  *float64 `yaml:"avg_corners" json:"avg_corners"`
	RedCardRate *float64 `yaml:"red_card_rate" json:"red_card_rate"`
}

// FixtureRecord is the external per-fixture input bundle handed to a cycle.
type FixtureRecord struct {
	Context       MatchContext        `yaml:"context" json:"context"`
	HomeStats     *TeamStatSnapshot   `yaml:"home_stats" json:"home_stats"`
	AwayStats     *TeamStatSnapshot   `yaml:"away_stats" json:"away_stats"`
	Referee       *RefereeProfile     `yaml:"referee" json:"referee"`
	Weather       *WeatherSnapshot    `yaml:"weather" json:"weather"`
	HeadToHead    *HeadToHeadSnapshot `yaml:"head_to_head" json:"head_to_head"`
	HomeFormation string              `yaml:"home_formation" json:"home_formation"`
	AwayFormation string              `yaml:"away_formation" json:"away_formation"`
	HomeXG        *float64            `yaml:"home_xg" json:"home_xg"`
	AwayXG        *float64            `yaml:"away_xg" json:"away_xg"`
	Odds          OddsSnapshot        `yaml:"odds" json:"odds"`
}

// OddsSnapshot maps a market key to its current decimal price.
type OddsSnapshot map[string]float64

// FactorSet holds a family's named multiplicative factors and the bounded
// combined factor derived from them.
type FactorSet struct {
	Factors  map[string]float64 `json:"factors"`
	Combined float64            `json:"combined"`
}

// SimSummary is the retained summary of a simulated distribution; the raw
// samples themselves are discarded after pricing.
type SimSummary struct {
	Samples  int     `json:"samples"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	HomeMean float64 `json:"home_mean,omitempty"`
	AwayMean float64 `json:"away_mean,omitempty"`
}

// MarketCandidate is one priced (fixture, market_key, line, side) tuple. The
// simulator creates it, the classifier and drift tracker enrich it, the
// router consumes it.
type MarketCandidate struct {
	FixtureID int64           `json:"fixture_id"`
	HomeTeam  string          `json:"home_team"`
	AwayTeam  string          `json:"away_team"`
	League    string          `json:"league"`
	Kickoff   time.Time       `json:"kickoff"`
	Product   ProductCategory `json:"product"`
	MarketKey string          `json:"market_key"`
	Line      float64         `json:"line"`
	Side      Side            `json:"side"`

	Probability float64 `json:"probability"`
	PushProb    float64 `json:"push_prob"`
	Odds        float64 `json:"odds"`
	EV          float64 `json:"ev"`
	Confidence  float64 `json:"confidence"`

	Tier        TrustTier `json:"tier"`
	SimApproved bool      `json:"sim_approved"`

	DriftScore      float64 `json:"drift_score"`
	DriftRegime     string  `json:"drift_regime,omitempty"`
	MarketDisagrees bool    `json:"market_disagrees,omitempty"`

	Factors FactorSet  `json:"factors"`
	Sim     SimSummary `json:"sim"`
}

// StakeRecommendation is the sized output for one candidate. A zero Fraction
// with a non-empty Reason means the bet is not recommended.
type StakeRecommendation struct {
	Fraction   float64 `json:"fraction"`
	Units      float64 `json:"units"`
	Amount     float64 `json:"amount"`
	KellyFull  float64 `json:"kelly_full"`
	RiskRating string  `json:"risk_rating,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// Recommended reports whether the sizer produced a positive stake.
func (s StakeRecommendation) Recommended() bool { return s.Fraction > 0 }
