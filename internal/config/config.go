package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/pitchedge/pitchedge/internal/domain"
)

// TierThreshold is one tier's admission bound.
type TierThreshold struct {
	MinEV         float64 `yaml:"min_ev"`
	MinConfidence float64 `yaml:"min_confidence"`
}

// ProductConfig holds one product's pricing and classification thresholds.
type ProductConfig struct {
	MinEV         float64       `yaml:"min_ev"`
	MinOdds       float64       `yaml:"min_odds"`
	MaxOdds       float64       `yaml:"max_odds"`
	MinConfidence float64       `yaml:"min_confidence"`
	MaxPerDay     int           `yaml:"max_per_day"`
	L1            TierThreshold `yaml:"l1"`
	L2            TierThreshold `yaml:"l2"`
	L3            TierThreshold `yaml:"l3"`
}

// DailyTarget is the legacy per-product fill target used by the non-routed
// card path: at least Min picks when supply allows, never more than Max.
type DailyTarget struct {
	Min    int `yaml:"min"`
	Target int `yaml:"target"`
	Max    int `yaml:"max"`
}

// SimulationConfig controls the Monte-Carlo pricer.
type SimulationConfig struct {
	Samples          int     `yaml:"samples"`
	Seed             int64   `yaml:"seed"`
	SimApprovalMinEV float64 `yaml:"sim_approval_min_ev"`
}

// DriftConfig controls the drift tracker and its store.
type DriftConfig struct {
	Bookmaker        string  `yaml:"bookmaker"`
	L1BlockBelow     float64 `yaml:"l1_block_below"`
	L2BlockBelow     float64 `yaml:"l2_block_below"`
	StableBand       float64 `yaml:"stable_band"`
	WritesPerSecond  float64 `yaml:"writes_per_second"`
	PostgresDSN      string  `yaml:"postgres_dsn"`
	RedisAddr        string  `yaml:"redis_addr"`
	BreakerThreshold uint32  `yaml:"breaker_threshold"`
}

// Config is the full configuration surface for a cycle.
type Config struct {
	Products     map[string]ProductConfig `yaml:"products"`
	DailyTargets map[string]DailyTarget   `yaml:"daily_targets"`
	Router       RouterConfig             `yaml:"router"`
	Simulation   SimulationConfig         `yaml:"simulation"`
	Staking      StakingConfig            `yaml:"staking"`
	Drift        DriftConfig              `yaml:"drift"`
	Features     FeatureDefaults          `yaml:"features"`
	MaxWorkers   int                      `yaml:"max_workers"`
}

// DefaultProductConfig returns the baseline thresholds shared by most
// products. L1 requires 5% EV at 55% confidence, L2 2% at 52%, L3 any
// non-negative EV at 50%; nesting is preserved by construction.
func DefaultProductConfig() ProductConfig {
	return ProductConfig{
		MinEV:         0.02,
		MinOdds:       1.50,
		MaxOdds:       2.80,
		MinConfidence: 0.52,
		MaxPerDay:     6,
		L1:            TierThreshold{MinEV: 0.05, MinConfidence: 0.55},
		L2:            TierThreshold{MinEV: 0.02, MinConfidence: 0.52},
		L3:            TierThreshold{MinEV: 0.00, MinConfidence: 0.50},
	}
}

// DefaultConfig returns the full default configuration.
func DefaultConfig() *Config {
	base := DefaultProductConfig()
	wide := base
	wide.MaxOdds = 3.50
	wide.MaxPerDay = 15

	products := map[string]ProductConfig{
		"TOTALS":           base,
		"BTTS":             base,
		"ML_AH":            wide,
		"CORNERS_MATCH":    base,
		"CORNERS_TEAM":     base,
		"CORNERS_HANDICAP": base,
		"CARDS_MATCH":      base,
		"CARDS_TEAM":       base,
		"SHOTS_TEAM":       base,
		"VALUE_SINGLES":    wide,
	}
	products["CORNERS_TEAM"] = withMax(base, 4)
	products["CARDS_TEAM"] = withMax(base, 4)

	return &Config{
		Products: products,
		DailyTargets: map[string]DailyTarget{
			"TOTALS":           {Min: 2, Target: 4, Max: 10},
			"BTTS":             {Min: 1, Target: 3, Max: 8},
			"ML_AH":            {Min: 2, Target: 5, Max: 15},
			"CORNERS_MATCH":    {Min: 1, Target: 3, Max: 6},
			"CORNERS_TEAM":     {Min: 0, Target: 2, Max: 4},
			"CORNERS_HANDICAP": {Min: 0, Target: 2, Max: 6},
			"CARDS_MATCH":      {Min: 1, Target: 3, Max: 6},
			"CARDS_TEAM":       {Min: 0, Target: 2, Max: 4},
			"SHOTS_TEAM":       {Min: 1, Target: 3, Max: 6},
			"VALUE_SINGLES":    {Min: 2, Target: 5, Max: 15},
		},
		Router: DefaultRouterConfig(),
		Simulation: SimulationConfig{
			Samples:          10000,
			SimApprovalMinEV: 0.03,
		},
		Staking: DefaultStakingConfig(),
		Drift: DriftConfig{
			Bookmaker:        "consensus",
			L1BlockBelow:     -0.5,
			L2BlockBelow:     -1.0,
			StableBand:       0.005,
			WritesPerSecond:  50,
			BreakerThreshold: 5,
		},
		Features:   DefaultFeatureDefaults(),
		MaxWorkers: 4,
	}
}

func withMax(p ProductConfig, max int) ProductConfig {
	p.MaxPerDay = max
	return p
}

// Load reads a YAML config file over the defaults, so partial files only
// override what they mention.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", errs[0])
	}
	return cfg, nil
}

// Validate checks threshold sanity, the tier nesting invariant, and that
// every configured product key is a routable category.
func (c *Config) Validate() []string {
	var errs []string
	known := make(map[string]bool)
	for _, cat := range domain.Categories() {
		known[string(cat)] = true
	}
	for name, t := range c.DailyTargets {
		if !known[name] {
			errs = append(errs, fmt.Sprintf("daily target %s: not a routable category", name))
		}
		if t.Min > t.Target || t.Target > t.Max {
			errs = append(errs, fmt.Sprintf("daily target %s: must satisfy min <= target <= max", name))
		}
	}
	for name, p := range c.Products {
		if !known[name] {
			errs = append(errs, fmt.Sprintf("product %s: not a routable category", name))
		}
		if p.MinOdds <= 1.0 {
			errs = append(errs, fmt.Sprintf("product %s: min_odds %.2f must exceed 1.0", name, p.MinOdds))
		}
		if p.MaxOdds < p.MinOdds {
			errs = append(errs, fmt.Sprintf("product %s: max_odds %.2f below min_odds %.2f", name, p.MaxOdds, p.MinOdds))
		}
		if p.L1.MinEV < p.L2.MinEV || p.L2.MinEV < p.L3.MinEV {
			errs = append(errs, fmt.Sprintf("product %s: tier EV thresholds must be nested L1>=L2>=L3", name))
		}
		if p.L1.MinConfidence < p.L2.MinConfidence || p.L2.MinConfidence < p.L3.MinConfidence {
			errs = append(errs, fmt.Sprintf("product %s: tier confidence thresholds must be nested L1>=L2>=L3", name))
		}
	}
	if c.Router.GlobalDailyMaxPicks <= 0 {
		errs = append(errs, "router: global_daily_max_picks must be positive")
	}
	if c.Simulation.Samples <= 0 {
		errs = append(errs, "simulation: samples must be positive")
	}
	return errs
}
