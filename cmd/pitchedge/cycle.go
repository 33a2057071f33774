package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/counters"
	"github.com/pitchedge/pitchedge/internal/drift"
	"github.com/pitchedge/pitchedge/internal/metrics"
	"github.com/pitchedge/pitchedge/internal/pipeline"
)

func newCycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Run one daily card cycle",
		Long:  "Prices every fixture in the input file, routes picks under the daily caps and prints the assembled card as JSON",
		RunE:  runCycle,
	}
	registerCycleFlags(cmd.Flags())
	return cmd
}

func registerCycleFlags(fs *pflag.FlagSet) {
	fs.String("fixtures", "", "Path to fixtures YAML file (required)")
	fs.String("config", "", "Path to config YAML file (defaults apply when omitted)")
	fs.Float64("bankroll", 10000, "Bankroll for stake sizing")
	fs.String("profile", "balanced", "Risk profile (conservative|balanced|aggressive)")
	fs.Int64("seed", 0, "Simulation seed, 0 for nondeterministic")
	fs.String("out", "", "Write the card JSON to this path instead of stdout")
	fs.String("metrics-addr", "", "Serve /metrics and /health on this address during the run")
}

func runCycle(cmd *cobra.Command, _ []string) error {
	fixturesPath, _ := cmd.Flags().GetString("fixtures")
	if fixturesPath == "" {
		return fmt.Errorf("--fixtures is required")
	}
	configPath, _ := cmd.Flags().GetString("config")
	bankroll, _ := cmd.Flags().GetFloat64("bankroll")
	profile, _ := cmd.Flags().GetString("profile")
	seed, _ := cmd.Flags().GetInt64("seed")
	outPath, _ := cmd.Flags().GetString("out")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	fixtures, err := loadFixtures(fixturesPath)
	if err != nil {
		return err
	}
	log.Info().Int("fixtures", len(fixtures)).Str("file", fixturesPath).Msg("fixtures loaded")

	var reg *metrics.Registry
	if metricsAddr != "" {
		reg = metrics.NewRegistry()
		go func() {
			if err := http.ListenAndServe(metricsAddr, reg.Handler()); err != nil {
				log.Warn().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	store, ctrs := openBackends(cfg)

	res, err := pipeline.Run(context.Background(), pipeline.Options{
		Fixtures: fixtures,
		Config:   cfg,
		Store:    store,
		Counters: ctrs,
		Metrics:  reg,
		Bankroll: bankroll,
		Profile:  profile,
		Seed:     seed,
		Date:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res.Card, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode card: %w", err)
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, out, 0644); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
		log.Info().Str("path", outPath).Msg("card written")
		return nil
	}
	fmt.Println(string(out))
	return nil
}

// openBackends picks the drift store and counters reader from config:
// Postgres when a DSN is set, Redis when an address is set, otherwise
// in-memory. The store is always breaker-wrapped.
func openBackends(cfg *config.Config) (drift.Store, counters.Reader) {
	var store drift.Store
	var ctrs counters.Reader
	switch {
	case cfg.Drift.PostgresDSN != "":
		pg, err := drift.OpenPostgresStore(cfg.Drift.PostgresDSN, 3*time.Second)
		if err != nil {
			log.Warn().Err(err).Msg("postgres drift store unavailable, using memory store")
			store = drift.NewMemoryStore()
			break
		}
		store = pg
		ctrs = counters.NewPostgresReader(pg.DB(), 3*time.Second)
	case cfg.Drift.RedisAddr != "":
		store = drift.NewRedisStore(cfg.Drift.RedisAddr)
	default:
		store = drift.NewMemoryStore()
	}
	return drift.NewBreakerStore(store, cfg.Drift.BreakerThreshold), ctrs
}
