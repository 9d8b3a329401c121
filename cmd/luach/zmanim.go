package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/luach-api/internal/zmanim"
)

func newZmanimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zmanim [YYYY-MM-DD | YEAR MONTH DAY]",
		Short: "Show sunrise, sunset, alos, tzeis and candle lighting for a day",
		Example: `  luach zmanim 2017-09-15 --lat 31.778 --lon 35.2354 --tz Asia/Jerusalem
  luach zmanim 5778 7 1 --offset 40m`,
		Args: cobra.RangeArgs(0, 3),
		RunE: runZmanim,
	}
	cmd.Flags().Float64("lat", 31.778, "latitude")
	cmd.Flags().Float64("lon", 35.2354, "longitude")
	cmd.Flags().String("tz", "Asia/Jerusalem", "IANA time zone")
	cmd.Flags().Duration("offset", 18*time.Minute, "candle lighting before sunset")
	return cmd
}

func runZmanim(cmd *cobra.Command, args []string) error {
	flags, err := flagsFrom(cmd)
	if err != nil {
		return err
	}
	c, err := parseDay(args, flags.Options())
	if err != nil {
		return err
	}

	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	tz, _ := cmd.Flags().GetString("tz")
	offset, _ := cmd.Flags().GetDuration("offset")
	loc, err := zmanim.NewLocation(tz, lat, lon, tz)
	if err != nil {
		return err
	}

	day := zmanim.ForDay(c, loc, offset)
	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), day)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s at %.4f, %.4f (%s)\n", day.Date, lat, lon, tz)
	for _, row := range []struct {
		name string
		t    *time.Time
	}{
		{"alos", day.Alos},
		{"sunrise", day.Sunrise},
		{"sunset", day.Sunset},
		{"tzeis", day.Tzeis},
		{"candle lighting", day.CandleLighting},
	} {
		if row.t == nil {
			continue
		}
		fmt.Fprintf(w, "  %-16s %s\n", row.name, row.t.Format("15:04:05"))
	}
	return nil
}
