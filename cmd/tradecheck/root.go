package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tradecheck/internal/config"
)

var (
	configPath string
	verbose    bool
)

// Execute runs the tradecheck CLI.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "tradecheck",
		Short: "Trading-account compliance rule engine",
		Long: `tradecheck normalizes broker trade exports and evaluates them against
the account compliance rule set, producing a per-rule and overall verdict.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults to the embedded configuration)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	root.AddCommand(validateCmd())
	root.AddCommand(reportCmd())

	return root.ExecuteContext(ctx)
}

// loadConfig resolves the configuration from --config or the embedded default.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Debug().Str("path", configPath).Msg("loaded config file")
	return cfg, nil
}
