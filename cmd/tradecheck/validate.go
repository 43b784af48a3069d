package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tradecheck/internal/normalization"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <export.csv> [more.csv...]",
		Short: "Check trade exports against the input contract without evaluating rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			normalizer := normalization.NewNormalizer().
				WithMinValidPercent(cfg.Quality.MinValidPercent)

			failed := 0
			for _, path := range args {
				if err := validateFile(normalizer, path); err != nil {
					failed++
					fmt.Printf("%s: FAILED\n", path)
					fmt.Printf("  %v\n", err)
					continue
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

func validateFile(normalizer *normalization.Normalizer, path string) error {
	header, rows, err := normalization.ReadCSVFile(path)
	if err != nil {
		return err
	}

	result, err := normalizer.Normalize(header, rows)
	if err != nil {
		var qualityErr *normalization.QualityError
		if errors.As(err, &qualityErr) {
			for _, re := range qualityErr.RowErrors {
				log.Warn().Str("file", path).Int("row", re.Row).Str("reason", re.Reason).Msg("rejected row")
			}
		}
		return err
	}

	fmt.Printf("%s: OK\n", path)
	fmt.Printf("  trades: %d, dropped rows: %d, swapped timestamps: %d\n",
		len(result.Trades), len(result.Dropped), result.SwappedRows)
	for _, re := range result.Dropped {
		log.Warn().Str("file", path).Int("row", re.Row).Str("reason", re.Reason).Msg("dropped row")
	}
	return nil
}
