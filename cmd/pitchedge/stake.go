package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/stake"
)

func newStakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Suggest a stake for one bet",
		Long:  "One-off fractional Kelly sizing for a single bet given probability, odds and bankroll",
		RunE:  runStake,
	}
	cmd.Flags().Float64("prob", 0, "Model probability (required)")
	cmd.Flags().Float64("odds", 0, "Decimal odds (required)")
	cmd.Flags().Float64("bankroll", 10000, "Bankroll")
	cmd.Flags().String("profile", "balanced", "Risk profile (conservative|balanced|aggressive)")
	return cmd
}

func runStake(cmd *cobra.Command, _ []string) error {
	prob, _ := cmd.Flags().GetFloat64("prob")
	odds, _ := cmd.Flags().GetFloat64("odds")
	bankroll, _ := cmd.Flags().GetFloat64("bankroll")
	profile, _ := cmd.Flags().GetString("profile")

	sizer := stake.NewSizer(config.DefaultStakingConfig())
	rec := sizer.SuggestSingle(prob, odds, bankroll, profile)
	if !rec.Recommended() {
		fmt.Printf("not recommended: %s\n", rec.Reason)
		return nil
	}
	fmt.Printf("fraction: %.4f  units: %.2f  amount: %.2f  full-kelly: %.4f  risk: %s\n",
		rec.Fraction, rec.Units, rec.Amount, rec.KellyFull, rec.RiskRating)
	return nil
}
