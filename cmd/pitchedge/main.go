package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "pitchedge"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Daily betting card construction pipeline",
		Version: version,
		Long: `pitchedge turns per-fixture statistical signals into a capped,
diversified, risk-sized daily betting card.

Feed it a fixtures file with stats and odds; it simulates every market
family, classifies trust tiers, applies the odds-drift veto, routes picks
under the nested cap hierarchy and sizes stakes with fractional Kelly.`,
	}

	rootCmd.AddCommand(newCycleCmd())
	rootCmd.AddCommand(newStakeCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
