// Command seed precomputes a span of Jewish years into the SQLite cache.
//
// Usage:
//
//	go run ./cmd/seed -db data/luach.db -from 5780 -to 5800
//
// This tool:
// 1. Creates/opens the SQLite database
// 2. Runs migrations to ensure schema is current
// 3. Computes every year in the span for each requested calendar variant
// 4. Stores them all in a single transaction
//
// Seeding is idempotent: a year already cached is replaced with a fresh
// computation.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/database"
	"github.com/zapponejosh/luach-api/internal/observance"
)

// Options selects what to seed.
type Options struct {
	DBPath string
	From   int
	To     int
	// Each variant flag adds the matching calendar alongside the default
	// diaspora one.
	Israel    bool
	Modern    bool
	Proleptic bool
}

func main() {
	var opts Options
	flag.StringVar(&opts.DBPath, "db", "data/luach.db", "Path to SQLite database")
	flag.IntVar(&opts.From, "from", 0, "First Jewish year (default: current year)")
	flag.IntVar(&opts.To, "to", 0, "Last Jewish year (default: from + 10)")
	flag.BoolVar(&opts.Israel, "israel", false, "Also seed the Israel calendar")
	flag.BoolVar(&opts.Modern, "modern", false, "Also seed with the modern Israeli holidays")
	flag.BoolVar(&opts.Proleptic, "proleptic", false, "Also seed proleptic Gregorian civil dates")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if opts.From == 0 {
		opts.From = calendar.Today().JewishYear()
	}
	if opts.To == 0 {
		opts.To = opts.From + 10
	}

	if err := run(context.Background(), opts, logger, os.Stdout); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed complete")
}

// SeedStats tracks seed statistics.
type SeedStats struct {
	Years int
	Days  int
}

// keys lists every cache key the options cover, one variant per year.
func (o Options) keys() []database.YearKey {
	israel := []bool{false}
	if o.Israel {
		israel = append(israel, true)
	}
	modern := []bool{false}
	if o.Modern {
		modern = append(modern, true)
	}
	modes := []calendar.Mode{calendar.ModeHistorical}
	if o.Proleptic {
		modes = append(modes, calendar.ModeProleptic)
	}

	var keys []database.YearKey
	for year := o.From; year <= o.To; year++ {
		for _, i := range israel {
			for _, m := range modern {
				for _, mode := range modes {
					keys = append(keys, database.YearKey{Year: year, InIsrael: i, Modern: m, Mode: mode})
				}
			}
		}
	}
	return keys
}

func run(ctx context.Context, opts Options, logger *slog.Logger, out io.Writer) error {
	startTime := time.Now()

	if opts.To < opts.From {
		return fmt.Errorf("%w: years %d..%d", calendar.ErrInvalidArgument, opts.From, opts.To)
	}
	if err := calendar.CheckJewishYear(opts.From); err != nil {
		return err
	}
	if err := calendar.CheckJewishYear(opts.To); err != nil {
		return err
	}

	// =========================================================================
	// Step 1: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", opts.DBPath))

	db, err := database.Open(database.DefaultConfig(opts.DBPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 2: Compute and store in a transaction
	// =========================================================================
	keys := opts.keys()
	logger.Info("starting seed",
		slog.Int("from", opts.From),
		slog.Int("to", opts.To),
		slog.Int("variants", len(keys)),
	)

	var stats SeedStats
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return seedYears(ctx, tx, keys, logger, &stats)
	})
	if err != nil {
		return fmt.Errorf("seed years: %w", err)
	}

	// =========================================================================
	// Step 3: Verify
	// =========================================================================
	cache, err := db.CacheStats(ctx)
	if err != nil {
		return fmt.Errorf("cache stats: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("seed verified",
		slog.Int("cached_years", cache.Years),
		slog.Int("cached_days", cache.Days),
		slog.Int64("payload_bytes", cache.PayloadBytes),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Seed Summary ===")
	fmt.Fprintf(out, "Years seeded:        %d\n", stats.Years)
	fmt.Fprintf(out, "Notable days:        %d\n", stats.Days)
	fmt.Fprintf(out, "Cache years total:   %d\n", cache.Years)
	fmt.Fprintf(out, "Cache payload:       %d bytes\n", cache.PayloadBytes)
	fmt.Fprintf(out, "Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// seedYears computes and stores each key.
func seedYears(ctx context.Context, tx *database.Tx, keys []database.YearKey, logger *slog.Logger, stats *SeedStats) error {
	for i, key := range keys {
		days, err := observance.YearObservances(key.Year, key.Options()...)
		if err != nil {
			return fmt.Errorf("compute %s: %w", key, err)
		}

		if err := tx.UpsertYear(ctx, &database.ObservanceYear{Key: key, Days: days}); err != nil {
			return fmt.Errorf("store %s: %w", key, err)
		}

		stats.Years++
		stats.Days += len(days)

		// Progress logging every 50 years
		if (i+1)%50 == 0 {
			logger.Debug("seed progress",
				slog.Int("year", i+1),
				slog.Int("total", len(keys)),
			)
		}
	}

	return nil
}
