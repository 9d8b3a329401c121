package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/observance"
)

type moladOutput struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"month_name"`
	Date      string    `json:"date"`
	Weekday   string    `json:"weekday"`
	Hours     int       `json:"hours"`
	Minutes   int       `json:"minutes"`
	Chalakim  int       `json:"chalakim"`
	UTC       time.Time `json:"utc"`

	Earliest3Days       time.Time `json:"earliest_3_days"`
	Earliest7Days       time.Time `json:"earliest_7_days"`
	LatestBetweenMoldos time.Time `json:"latest_between_moldos"`
	Latest15Days        time.Time `json:"latest_15_days"`
}

func newMoladCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "molad YEAR MONTH",
		Short: "Show the molad of a month and the kiddush levana window",
		Example: `  luach molad 5778 tishrei
  luach molad 5784 13 --json`,
		Args: cobra.ExactArgs(2),
		RunE: runMolad,
	}
}

func runMolad(cmd *cobra.Command, args []string) error {
	flags, err := flagsFrom(cmd)
	if err != nil {
		return err
	}
	year, err := parseYear(args[0])
	if err != nil {
		return err
	}
	month, err := calendar.ParseMonth(args[1])
	if err != nil {
		return err
	}
	if int(month) > calendar.MonthsInYear(year) {
		return fmt.Errorf("%w: %d has no month %d", calendar.ErrInvalidArgument, year, month)
	}

	c, err := observance.New(year, month, 1, flags.Options()...)
	if err != nil {
		return err
	}
	m := c.Molad()
	out := moladOutput{
		Year:      year,
		Month:     int(month),
		MonthName: c.MonthName(),
		Date:      m.CivilString(),
		Weekday:   m.Weekday().String(),
		Hours:     m.MoladHours(),
		Minutes:   m.MoladMinutes(),
		Chalakim:  m.MoladChalakim(),
		UTC:       c.MoladAsUTC(),

		Earliest3Days:       c.TchilasZmanKidushLevana3Days(),
		Earliest7Days:       c.TchilasZmanKidushLevana7Days(),
		LatestBetweenMoldos: c.SofZmanKidushLevanaBetweenMoldos(),
		Latest15Days:        c.SofZmanKidushLevana15Days(),
	}

	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Molad %s %d: %s %s, %dh %dm %d chalakim\n",
		out.MonthName, out.Year, out.Weekday, out.Date, out.Hours, out.Minutes, out.Chalakim)
	fmt.Fprintf(w, "  utc:                      %s\n", out.UTC.Format(time.RFC3339))
	fmt.Fprintf(w, "  kiddush levana from:      %s (3 days), %s (7 days)\n",
		out.Earliest3Days.Format(time.RFC3339), out.Earliest7Days.Format(time.RFC3339))
	fmt.Fprintf(w, "  kiddush levana until:     %s (between moldos), %s (15 days)\n",
		out.LatestBetweenMoldos.Format(time.RFC3339), out.Latest15Days.Format(time.RFC3339))
	return nil
}
