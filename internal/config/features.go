package config

// FeatureDefaults centralizes every fallback value the feature builder
// substitutes for missing inputs, so market families never drift apart on
// the same underlying stat.
type FeatureDefaults struct {
	Team                       TeamStatDefaults   `yaml:"team"`
	Referee                    RefereeDefaults    `yaml:"referee"`
	Weather                    WeatherDefaults    `yaml:"weather"`
	Derbies                    [][2]string        `yaml:"derbies"`
	Formations                 map[string]float64 `yaml:"formations"`
	DefaultFormationAggression float64            `yaml:"default_formation_aggression"`
}

// TeamStatDefaults are league-average baselines, doubling as the divisors
// for the ratio indices.
type TeamStatDefaults struct {
	FoulsPG          float64 `yaml:"fouls_pg"`
	CardsPG          float64 `yaml:"cards_pg"`
	TacklesPG        float64 `yaml:"tackles_pg"`
	DuelsPG          float64 `yaml:"duels_pg"`
	PPDA             float64 `yaml:"ppda"`
	InterceptionsPG  float64 `yaml:"interceptions_pg"`
	PassesPerMinute  float64 `yaml:"passes_per_minute"`
	AttacksPer90     float64 `yaml:"attacks_per_90"`
	CrossesPer90     float64 `yaml:"crosses_per_90"`
	WideZoneTouches  float64 `yaml:"wide_zone_touches"`
	FlankAttackPct   float64 `yaml:"flank_attack_pct"`
	CornersPG        float64 `yaml:"corners_pg"`
	CornersAgainstPG float64 `yaml:"corners_against_pg"`
	ShotsPG          float64 `yaml:"shots_pg"`
	ShotsOnTargetPG  float64 `yaml:"shots_on_target_pg"`
	XGPG             float64 `yaml:"xg_pg"`
}

// RefereeDefaults are the neutral official's tendencies.
type RefereeDefaults struct {
	CardsPerMatch        float64 `yaml:"cards_per_match"`
	FoulToCardConversion float64 `yaml:"foul_to_card_conversion"`
	EarlyCardRate        float64 `yaml:"early_card_rate"`
	BigMatchIntensity    float64 `yaml:"big_match_intensity"`
	CornersPerMatch      float64 `yaml:"corners_per_match"`
	FoulsNearBoxPerMatch float64 `yaml:"fouls_near_box_per_match"`
}

// WeatherDefaults describe a calm, dry evening.
type WeatherDefaults struct {
	WindSpeed float64 `yaml:"wind_speed"`
}

// DefaultFeatureDefaults returns the league-average tables used when a
// fixture is missing a stat.
func DefaultFeatureDefaults() FeatureDefaults {
	return FeatureDefaults{
		Team: TeamStatDefaults{
			FoulsPG:          11.5,
			CardsPG:          2.1,
			TacklesPG:        17.0,
			DuelsPG:          50.0,
			PPDA:             11.0,
			InterceptionsPG:  9.5,
			PassesPerMinute:  8.5,
			AttacksPer90:     48.0,
			CrossesPer90:     17.0,
			WideZoneTouches:  140.0,
			FlankAttackPct:   0.36,
			CornersPG:        5.2,
			CornersAgainstPG: 5.2,
			ShotsPG:          12.5,
			ShotsOnTargetPG:  4.3,
			XGPG:             1.35,
		},
		Referee: RefereeDefaults{
			CardsPerMatch:        4.2,
			FoulToCardConversion: 0.18,
			EarlyCardRate:        0.25,
			BigMatchIntensity:    1.0,
			CornersPerMatch:      10.4,
			FoulsNearBoxPerMatch: 3.5,
		},
		Weather: WeatherDefaults{WindSpeed: 8.0},
		Derbies: [][2]string{
			{"Arsenal", "Tottenham"},
			{"Liverpool", "Everton"},
			{"Manchester United", "Manchester City"},
			{"Manchester United", "Liverpool"},
			{"Real Madrid", "Barcelona"},
			{"Real Madrid", "Atletico Madrid"},
			{"Inter", "AC Milan"},
			{"Roma", "Lazio"},
			{"Juventus", "Inter"},
			{"Borussia Dortmund", "Schalke 04"},
			{"Bayern Munich", "Borussia Dortmund"},
			{"Celtic", "Rangers"},
			{"Boca Juniors", "River Plate"},
			{"Fenerbahce", "Galatasaray"},
			{"Ajax", "Feyenoord"},
			{"Benfica", "Porto"},
			{"Olympiacos", "Panathinaikos"},
			{"Sevilla", "Real Betis"},
			{"Atalanta", "Brescia"},
			{"Nice", "Monaco"},
			{"Marseille", "Paris Saint-Germain"},
		},
		Formations: map[string]float64{
			"4-4-2":   1.00,
			"4-3-3":   1.05,
			"4-2-3-1": 1.00,
			"3-5-2":   1.08,
			"3-4-3":   1.10,
			"5-3-2":   0.92,
			"5-4-1":   0.88,
			"4-5-1":   0.94,
			"4-1-4-1": 0.96,
			"4-4-1-1": 0.98,
			"3-4-2-1": 1.06,
		},
		DefaultFormationAggression: 1.0,
	}
}
