package config

// StakingConfig controls the Kelly sizer for singles and the tempered
// formula for parlays.
type StakingConfig struct {
	Profiles             map[string]float64 `yaml:"profiles"`
	DefaultProfile       string             `yaml:"default_profile"`
	MinEdge              float64            `yaml:"min_edge"`
	MaxBankrollFraction  float64            `yaml:"max_bankroll_fraction"`
	MinBankrollFraction  float64            `yaml:"min_bankroll_fraction"`
	MaxUnitsPerBet       float64            `yaml:"max_units_per_bet"`
	UnitFraction         float64            `yaml:"unit_fraction"`
	MinOdds              float64            `yaml:"min_odds"`
	MaxOdds              float64            `yaml:"max_odds"`
	ParlayMaxFraction    float64            `yaml:"parlay_max_fraction"`
	ParlayMinFraction    float64            `yaml:"parlay_min_fraction"`
	ParlayEdgeScale      float64            `yaml:"parlay_edge_scale"`
	MaxPortfolioExposure float64            `yaml:"max_portfolio_exposure"`
}

// DefaultStakingConfig returns the standard risk-profile table. Profile
// values are fractions of full Kelly.
func DefaultStakingConfig() StakingConfig {
	return StakingConfig{
		Profiles: map[string]float64{
			"conservative": 0.125,
			"balanced":     0.25,
			"aggressive":   0.5,
		},
		DefaultProfile:       "balanced",
		MinEdge:              0.02,
		MaxBankrollFraction:  0.05,
		MinBankrollFraction:  0.005,
		MaxUnitsPerBet:       3.0,
		UnitFraction:         0.01,
		MinOdds:              1.20,
		MaxOdds:              15.0,
		ParlayMaxFraction:    0.02,
		ParlayMinFraction:    0.0025,
		ParlayEdgeScale:      0.5,
		MaxPortfolioExposure: 0.25,
	}
}

// ProfileFraction resolves a risk profile name to its Kelly fraction,
// falling back to the default profile for unknown names.
func (s StakingConfig) ProfileFraction(profile string) float64 {
	if f, ok := s.Profiles[profile]; ok {
		return f
	}
	return s.Profiles[s.DefaultProfile]
}
