package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/observance"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event NAME",
		Short: "Find the date of a holiday, fast or monthly event",
		Long: `Finds an event relative to a reference day (today unless --from is given).

Without --year or --upcoming, the occurrence in the reference day's year is
returned. --upcoming returns the next occurrence on or after the reference
day. Monthly events are rosh_chodesh and shabbos_mevorchim.`,
		Example: `  luach event pesach --year 5779
  luach event chanukah --upcoming --from 2017-09-21
  luach event rosh_chodesh --upcoming`,
		Args: cobra.ExactArgs(1),
		RunE: runEvent,
	}
	cmd.Flags().Int("year", 0, "Jewish year to search")
	cmd.Flags().Bool("upcoming", false, "next occurrence on or after the reference day")
	cmd.Flags().String("from", "", "reference civil date, YYYY-MM-DD")
	return cmd
}

func runEvent(cmd *cobra.Command, args []string) error {
	flags, err := flagsFrom(cmd)
	if err != nil {
		return err
	}
	ev, err := observance.EventByName(args[0])
	if err != nil {
		return err
	}

	var year *int
	if cmd.Flags().Changed("year") {
		y, _ := cmd.Flags().GetInt("year")
		year = &y
	}
	upcoming, _ := cmd.Flags().GetBool("upcoming")
	occ, err := observance.ParseOccurrence(year, upcoming)
	if err != nil {
		return err
	}

	ref := observance.Today(flags.Options()...)
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return fmt.Errorf("%w: from %q, use YYYY-MM-DD", calendar.ErrInvalidArgument, from)
		}
		if ref, err = observance.FromGregorian(t.Year(), t.Month(), t.Day(), flags.Options()...); err != nil {
			return err
		}
	}

	found, err := ref.Find(ev, occ)
	if err != nil {
		return err
	}
	o := found.Observance(observance.TefilahOptions{})

	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), struct {
			Event      string                `json:"event"`
			Occurrence string                `json:"occurrence"`
			Day        observance.Observance `json:"day"`
		}{ev.Name, occ.String(), o})
	}
	printDay(cmd.OutOrStdout(), found, o)
	return nil
}
