package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/luach-api/internal/database"
	"github.com/zapponejosh/luach-api/internal/luach"
	"github.com/zapponejosh/luach-api/internal/observance"
)

func newYearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "year YEAR",
		Short: "List the notable days of a Jewish year",
		Long: `Lists every day of the Jewish year from Rosh Hashana to the end of Elul
that is more than an ordinary weekday.

With --db, the year is read through the same SQLite cache the API uses.`,
		Example: `  luach year 5785
  luach year 5785 --israel --modern
  luach year 5785 --db ./data/luach.db`,
		Args: cobra.ExactArgs(1),
		RunE: runYear,
	}
	cmd.Flags().String("db", "", "SQLite cache to read through")
	return cmd
}

func runYear(cmd *cobra.Command, args []string) error {
	flags, err := flagsFrom(cmd)
	if err != nil {
		return err
	}
	year, err := parseYear(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var store luach.Store
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		db, err := database.Open(database.DefaultConfig(path), quiet)
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := db.Migrate(ctx); err != nil {
			return err
		}
		store = db
	}

	y, err := luach.NewService(store, flags).Year(ctx, year, flags)
	if err != nil {
		return err
	}

	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), y.Days)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tWEEKDAY\tJEWISH DATE\tOBSERVANCE")
	for _, d := range y.Days {
		fmt.Fprintf(tw, "%s\t%s\t%d %s\t%s\n", d.Date, d.Weekday, d.JewishDay, d.MonthName, describe(d))
	}
	return tw.Flush()
}

// describe summarizes a notable day in one cell.
func describe(d observance.Observance) string {
	var parts []string
	if d.SignificantDay != observance.None {
		parts = append(parts, d.SignificantDay.String())
	}
	if d.SignificantShabbos != observance.NoSignificantShabbos {
		parts = append(parts, d.SignificantShabbos.String())
	}
	if d.RoshChodesh {
		parts = append(parts, "rosh_chodesh")
	}
	if d.ShabbosMevorchim {
		parts = append(parts, "shabbos_mevorchim")
	}
	if d.DayOfChanukah != 0 {
		parts = append(parts, fmt.Sprintf("chanukah %d", d.DayOfChanukah))
	}
	if d.DayOfOmer != 0 {
		parts = append(parts, fmt.Sprintf("omer %d", d.DayOfOmer))
	}
	if d.CandleLighting {
		parts = append(parts, "candles")
	}
	return strings.Join(parts, ", ")
}
