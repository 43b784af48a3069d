package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tradecheck/internal/config"
	"tradecheck/internal/domain"
	"tradecheck/internal/engine"
	"tradecheck/internal/news"
	"tradecheck/internal/normalization"
	"tradecheck/internal/observability"
	"tradecheck/internal/reporting"
	"tradecheck/internal/storage/clickhouse"
	"tradecheck/internal/storage/migrations"
	"tradecheck/internal/storage/postgres"
)

func reportCmd() *cobra.Command {
	var (
		accountType   string
		equity        float64
		phaseFlags    []string
		newsPath      string
		newsAddon     bool
		weekendAddon  bool
		outputDir     string
		postgresDSN   string
		clickhouseDSN string
		metricsAddr   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Evaluate trade exports against the rule set and report the verdict",
		Long: `report normalizes one trade export per phase, runs every compliance rule
and prints the overall verdict. Phases are given as label=path pairs, e.g.

  tradecheck report --equity 10000 --account-type "Funded Phase" \
      --phase "2-Step Phase 1=phase1.csv" --phase "Funded Phase=funded.csv"

A single unlabeled export can be passed with --phase path; it is labeled
with the account type.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(phaseFlags) == 0 {
				return fmt.Errorf("at least one --phase is required")
			}
			if equity <= 0 {
				return fmt.Errorf("--equity must be positive")
			}

			if metricsAddr != "" {
				go serveMetrics(metricsAddr)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			account, err := cfg.AccountConfig(accountType)
			if err != nil {
				return err
			}

			phases, dropped, swapped, err := loadPhases(cfg, phaseFlags, accountType)
			if err != nil {
				return err
			}

			events, err := loadNewsEvents(cmd.Context(), newsPath, phases)
			if err != nil {
				return err
			}

			runner := engine.NewRunner(engine.Options{
				Account: account,
				Params: domain.EvaluationParams{
					Equity:              equity,
					NewsAddonEnabled:    newsAddon,
					WeekendAddonEnabled: weekendAddon,
				},
				Catalog:    cfg.Catalog(),
				NewsEvents: events,
				Logger:     log.Logger,
			})

			result, err := runner.Run(cmd.Context(), phases)
			if err != nil {
				return err
			}

			printSummary(result)

			if outputDir != "" {
				report := reporting.NewGenerator().Generate(result, account, equity, phases)
				report.Input.DroppedRows = dropped
				report.Input.SwappedRows = swapped
				if err := writeReports(outputDir, report); err != nil {
					return err
				}
			}

			if postgresDSN != "" {
				if err := persistRun(cmd.Context(), postgresDSN, result, accountType, equity); err != nil {
					return err
				}
			}
			if clickhouseDSN != "" {
				if err := archiveTrades(cmd.Context(), clickhouseDSN, result.RunID, phases); err != nil {
					return err
				}
			}

			if result.Summary.OverallStatus == domain.StatusViolated {
				// Nonzero exit so pipelines can gate on the verdict.
				os.Exit(2)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "account-type", domain.AccountTypeFunded, "account type label")
	cmd.Flags().Float64Var(&equity, "equity", 0, "account equity in dollars")
	cmd.Flags().StringArrayVar(&phaseFlags, "phase", nil, "phase export as label=path (repeatable)")
	cmd.Flags().StringVar(&newsPath, "news", "", "path to a JSON news calendar")
	cmd.Flags().BoolVar(&newsAddon, "news-addon", false, "account purchased the news trading add-on")
	cmd.Flags().BoolVar(&weekendAddon, "weekend-addon", false, "account purchased the weekend holding add-on")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "write REPORT.md and results.csv to this directory")
	cmd.Flags().StringVar(&postgresDSN, "postgres-dsn", "", "persist the run summary and rule results to PostgreSQL")
	cmd.Flags().StringVar(&clickhouseDSN, "clickhouse-dsn", "", "archive the normalized trades to ClickHouse")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running (empty to disable)")

	return cmd
}

// serveMetrics exposes /metrics and /health for scraping during long runs.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	log.Info().Str("addr", addr).Msg("metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics server failed")
	}
}

// loadPhases normalizes one export per --phase flag. Returns the phases plus
// total dropped and swapped row counts across all files.
func loadPhases(cfg *config.Config, flags []string, defaultLabel string) ([]*domain.Phase, int, int, error) {
	normalizer := normalization.NewNormalizer().
		WithMinValidPercent(cfg.Quality.MinValidPercent)

	var (
		phases  []*domain.Phase
		dropped int
		swapped int
	)
	for _, f := range flags {
		label, path := defaultLabel, f
		if i := strings.Index(f, "="); i >= 0 {
			label, path = f[:i], f[i+1:]
		}

		header, rows, err := normalization.ReadCSVFile(path)
		if err != nil {
			return nil, 0, 0, err
		}
		result, err := normalizer.Normalize(header, rows)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("normalize %s: %w", path, err)
		}

		log.Info().
			Str("phase", label).
			Str("file", path).
			Int("trades", len(result.Trades)).
			Int("dropped", len(result.Dropped)).
			Int("swapped", result.SwappedRows).
			Msg("phase loaded")

		dropped += len(result.Dropped)
		swapped += result.SwappedRows
		phases = append(phases, &domain.Phase{Label: label, Trades: result.Trades})
	}
	return phases, dropped, swapped, nil
}

// loadNewsEvents reads the calendar and returns the events spanning the
// trading history, padded by a day on each side.
func loadNewsEvents(ctx context.Context, path string, phases []*domain.Phase) ([]domain.NewsEvent, error) {
	if path == "" {
		return nil, nil
	}

	provider, err := news.NewFile(path)
	if err != nil {
		return nil, err
	}

	var first, last time.Time
	for _, p := range phases {
		for _, t := range p.Trades {
			if first.IsZero() || t.OpenTime.Before(first) {
				first = t.OpenTime
			}
			if t.CloseTime.After(last) {
				last = t.CloseTime
			}
		}
	}
	if first.IsZero() {
		return nil, nil
	}

	return provider.Events(ctx, first.Add(-24*time.Hour), last.Add(24*time.Hour))
}

func printSummary(result *engine.RunResult) {
	fmt.Printf("Run %s: %s\n", result.RunID, result.Summary.OverallStatus)
	fmt.Printf("  passed: %d, violated: %d, not testable: %d, errored: %d\n",
		result.Summary.Passed, result.Summary.Violated,
		result.Summary.NotTestable, result.Summary.Errored)
	for _, r := range result.Results {
		if r.Status != domain.StatusViolated {
			continue
		}
		fmt.Printf("  rule %d (%s): %d violation(s) - %s\n",
			r.RuleNumber, r.RuleName, r.ViolationCount(), r.Message)
	}
}

func writeReports(dir string, report *reporting.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	mdPath := filepath.Join(dir, "REPORT.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	csvPath := filepath.Join(dir, "results.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report)), 0o644); err != nil {
		return fmt.Errorf("write csv report: %w", err)
	}

	fmt.Printf("Reports written:\n  - %s\n  - %s\n", mdPath, csvPath)
	return nil
}

func persistRun(ctx context.Context, dsn string, result *engine.RunResult, accountType string, equity float64) error {
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		return err
	}

	store := postgres.NewEvaluationRunStore(pool)
	run := result.Run(accountType, equity)
	if err := store.InsertRun(ctx, &run); err != nil {
		return fmt.Errorf("persist run: %w", err)
	}
	if err := store.InsertResults(ctx, result.RunID, result.Results); err != nil {
		return fmt.Errorf("persist rule results: %w", err)
	}

	log.Info().Str("run_id", result.RunID).Msg("run persisted to postgres")
	return nil
}

func archiveTrades(ctx context.Context, dsn, runID string, phases []*domain.Phase) error {
	conn, err := migrations.RunClickhouseMigrations(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to clickhouse: %w", err)
	}
	defer conn.Close()

	var trades []*domain.Trade
	for _, p := range phases {
		trades = append(trades, p.Trades...)
	}

	store := clickhouse.NewTradeArchiveStore(conn)
	if err := store.InsertBatch(ctx, runID, trades); err != nil {
		return fmt.Errorf("archive trades: %w", err)
	}

	log.Info().Str("run_id", runID).Int("trades", len(trades)).Msg("trades archived to clickhouse")
	return nil
}
