// Command luach answers calendar questions from the command line: date
// conversion, a year's observances, the molad, event search and zmanim.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/luach"
	"github.com/zapponejosh/luach-api/internal/observance"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "luach",
		Short:         "Jewish calendar conversions and observances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// .env supplies defaults for flags read from the environment
			_ = godotenv.Load()
		},
	}

	root.PersistentFlags().Bool("israel", false, "use the calendar of Israel (env IN_ISRAEL)")
	root.PersistentFlags().Bool("modern", false, "include the modern Israeli holidays (env MODERN_HOLIDAYS)")
	root.PersistentFlags().String("mode", "", "civil calendar: historical or proleptic (env CALENDAR_MODE)")
	root.PersistentFlags().Bool("json", false, "print JSON")

	root.AddCommand(
		newConvertCmd(),
		newYearCmd(),
		newMoladCmd(),
		newEventCmd(),
		newZmanimCmd(),
	)
	return root
}

// flagsFrom reads the calendar flags, falling back to the environment for
// any flag not given on the command line.
func flagsFrom(cmd *cobra.Command) (luach.Flags, error) {
	var f luach.Flags
	var err error

	if f.InIsrael, err = boolFlag(cmd, "israel", "IN_ISRAEL"); err != nil {
		return f, err
	}
	if f.Modern, err = boolFlag(cmd, "modern", "MODERN_HOLIDAYS"); err != nil {
		return f, err
	}

	mode, _ := cmd.Flags().GetString("mode")
	if !cmd.Flags().Changed("mode") {
		mode = os.Getenv("CALENDAR_MODE")
	}
	if f.Mode, err = calendar.ParseMode(mode); err != nil {
		return f, err
	}
	return f, nil
}

func boolFlag(cmd *cobra.Command, name, env string) (bool, error) {
	if cmd.Flags().Changed(name) {
		return cmd.Flags().GetBool(name)
	}
	if v := os.Getenv(env); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%s: %w", env, err)
		}
		return b, nil
	}
	return false, nil
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDay reads either one civil date (YYYY-MM-DD) or a Jewish year,
// month and day. No arguments means today.
func parseDay(args []string, opts []observance.Option) (observance.Calendar, error) {
	switch len(args) {
	case 0:
		return observance.Today(opts...), nil
	case 1:
		t, err := time.Parse(time.DateOnly, args[0])
		if err != nil {
			return observance.Calendar{}, fmt.Errorf("%w: date %q, use YYYY-MM-DD", calendar.ErrInvalidArgument, args[0])
		}
		return observance.FromGregorian(t.Year(), t.Month(), t.Day(), opts...)
	case 3:
		year, err := parseYear(args[0])
		if err != nil {
			return observance.Calendar{}, err
		}
		month, err := calendar.ParseMonth(args[1])
		if err != nil {
			return observance.Calendar{}, err
		}
		day, err := strconv.Atoi(args[2])
		if err != nil {
			return observance.Calendar{}, fmt.Errorf("%w: day %q", calendar.ErrInvalidArgument, args[2])
		}
		return observance.New(year, month, day, opts...)
	}
	return observance.Calendar{}, fmt.Errorf("expected YYYY-MM-DD or YEAR MONTH DAY, got %d arguments", len(args))
}

// parseYear reads a Jewish year argument.
func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: year %q", calendar.ErrInvalidArgument, s)
	}
	if err := calendar.CheckJewishYear(year); err != nil {
		return 0, err
	}
	return year, nil
}
