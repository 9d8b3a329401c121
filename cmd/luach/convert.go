package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/luach-api/internal/observance"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [YYYY-MM-DD | YEAR MONTH DAY]",
		Short: "Convert between civil and Jewish dates and classify the day",
		Long: `Converts a civil date to the Jewish calendar, or a Jewish date to the
civil calendar, and prints what the day is.

With no arguments, converts today.`,
		Example: `  luach convert 2017-09-30
  luach convert 5778 tishrei 10
  luach convert --israel 5778 7 23`,
		Args: cobra.RangeArgs(0, 3),
		RunE: runConvert,
	}
	cmd.Flags().String("nusach", "", "prayer rite: ashkenaz or sefard")
	cmd.Flags().Bool("walled", false, "a walled city, which keeps Shushan Purim")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	flags, err := flagsFrom(cmd)
	if err != nil {
		return err
	}
	c, err := parseDay(args, flags.Options())
	if err != nil {
		return err
	}

	nusachStr, _ := cmd.Flags().GetString("nusach")
	nusach, err := observance.ParseNusach(nusachStr)
	if err != nil {
		return err
	}
	walled, _ := cmd.Flags().GetBool("walled")
	o := c.Observance(observance.TefilahOptions{Nusach: nusach, WalledCity: walled})

	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), o)
	}
	printDay(cmd.OutOrStdout(), c, o)
	return nil
}

// printDay writes a short human description of one day.
func printDay(w io.Writer, c observance.Calendar, o observance.Observance) {
	fmt.Fprintf(w, "%s, %d %s %d  (%s)\n", o.Weekday, o.JewishDay, o.MonthName, o.JewishYear, o.Date)
	if o.SignificantDay != observance.None {
		fmt.Fprintf(w, "  day:       %s\n", o.SignificantDay)
	}
	if o.SignificantShabbos != observance.NoSignificantShabbos {
		fmt.Fprintf(w, "  shabbos:   %s\n", o.SignificantShabbos)
	}
	if n, ok := c.DayOfChanukah(); ok {
		fmt.Fprintf(w, "  chanukah:  day %d\n", n)
	}
	if n, ok := c.DayOfOmer(); ok {
		fmt.Fprintf(w, "  omer:      day %d\n", n)
	}
	if tags := dayTags(o); len(tags) > 0 {
		fmt.Fprintf(w, "  flags:     %s\n", strings.Join(tags, ", "))
	}
	if len(o.Tefilah) > 0 {
		names := make([]string, len(o.Tefilah))
		for i, t := range o.Tefilah {
			names[i] = t.String()
		}
		fmt.Fprintf(w, "  tefilah:   %s\n", strings.Join(names, ", "))
	}
}

func dayTags(o observance.Observance) []string {
	var tags []string
	add := func(ok bool, tag string) {
		if ok {
			tags = append(tags, tag)
		}
	}
	add(o.YomTov, "yom_tov")
	add(o.AssurBemelacha, "assur_bemelacha")
	add(o.CandleLighting, "candle_lighting")
	add(o.DelayedCandleLighting, "delayed_candle_lighting")
	add(o.ErevYomTov, "erev_yom_tov")
	add(o.YomTovSheni, "yom_tov_sheni")
	add(o.CholHamoed, "chol_hamoed")
	add(o.Taanis, "taanis")
	add(o.RoshChodesh, "rosh_chodesh")
	add(o.ErevRoshChodesh, "erev_rosh_chodesh")
	add(o.ShabbosMevorchim, "shabbos_mevorchim")
	return tags
}
