package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medsig/engine/cmd/medsig/internal/config"
)

// cliState holds what PersistentPreRunE resolves once per invocation:
// the loaded configuration and a logger built from its level.
type cliState struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	var configFile string
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:   "medsig",
		Short: "medsig - medication signature and days-supply engine",
		Long: `medsig builds structured medication administration instructions
(FHIR R4 Dosage) and computes days-supply from a medication profile,
dose, timing, and route.

It provides:
  - A Strategy Dispatcher and Builder family for signature construction
  - A Days-Supply Engine for tablet, liquid, and titration schedules
  - A Route Validator with canonical SNOMED route metadata
  - Dispatch tracing and performance introspection`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			state.cfg = cfg

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			state.logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file (env vars prefixed MEDSIG_ also apply)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSignCmd(state))
	rootCmd.AddCommand(newDaysSupplyCmd(state))
	rootCmd.AddCommand(newRouteCmd())
	rootCmd.AddCommand(newStrategyCmd(state))

	return rootCmd
}
