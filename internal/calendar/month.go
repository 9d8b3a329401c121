// Package calendar provides Hebrew calendar arithmetic: conversion between
// absolute day numbers, Jewish dates and civil dates, month and year lengths,
// and molad computation.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Month is a Jewish month numbered from Nissan, the way the calendar counts
// months for the festival cycle. Chronologically a year runs from Tishrei (7)
// through Adar or Adar II and then Nissan (1) through Elul (6).
type Month int

const (
	Nissan Month = iota + 1
	Iyar
	Sivan
	Tammuz
	Av
	Elul
	Tishrei
	Cheshvan
	Kislev
	Teves
	Shevat
	Adar   // Adar I in a leap year
	AdarII // leap years only
)

var monthNames = [...]string{
	Nissan:   "Nissan",
	Iyar:     "Iyar",
	Sivan:    "Sivan",
	Tammuz:   "Tammuz",
	Av:       "Av",
	Elul:     "Elul",
	Tishrei:  "Tishrei",
	Cheshvan: "Cheshvan",
	Kislev:   "Kislev",
	Teves:    "Teves",
	Shevat:   "Shevat",
	Adar:     "Adar",
	AdarII:   "Adar II",
}

// Valid reports whether m is one of the thirteen month numbers.
func (m Month) Valid() bool {
	return m >= Nissan && m <= AdarII
}

func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}

// MonthName returns the display name of month in year, distinguishing
// Adar I from a plain Adar.
func MonthName(year int, month Month) string {
	if month == Adar && IsLeapYear(year) {
		return "Adar I"
	}
	return month.String()
}

// MonthFromName looks up a month by name. Matching ignores case, spaces,
// dashes and underscores, and accepts the common alternate spellings.
func MonthFromName(name string) (Month, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "nissan", "nisan":
		return Nissan, nil
	case "iyar", "iyyar":
		return Iyar, nil
	case "sivan":
		return Sivan, nil
	case "tammuz", "tamuz":
		return Tammuz, nil
	case "av":
		return Av, nil
	case "elul":
		return Elul, nil
	case "tishrei", "tishri":
		return Tishrei, nil
	case "cheshvan", "marcheshvan", "heshvan":
		return Cheshvan, nil
	case "kislev":
		return Kislev, nil
	case "teves", "tevet":
		return Teves, nil
	case "shevat", "shvat":
		return Shevat, nil
	case "adar", "adari", "adar1":
		return Adar, nil
	case "adarii", "adar2", "adarbeis", "adarsheni":
		return AdarII, nil
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidArgument, name)
}

// ParseMonth accepts a month number, Nissan = 1, or a name.
func ParseMonth(s string) (Month, error) {
	if n, err := strconv.Atoi(s); err == nil {
		m := Month(n)
		if !m.Valid() {
			return 0, fmt.Errorf("%w: month %d", ErrInvalidArgument, n)
		}
		return m, nil
	}
	return MonthFromName(s)
}

// Weekday is a day of the week with Sunday = 1 and Shabbos = 7.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Shabbos
)

var weekdayNames = [...]string{"", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Shabbos"}

func (w Weekday) String() string {
	if w < Sunday || w > Shabbos {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// WeekdayOf returns the day of week of an absolute day number.
// Absolute day 1 (0001-01-01 proleptic Gregorian) was a Monday.
func WeekdayOf(abs int) Weekday {
	return Weekday(floorMod(abs, 7) + 1)
}

// Kviah describes the lengths of Cheshvan and Kislev in a year.
type Kviah int

const (
	Chaseirim Kviah = iota // both 29 days
	Kesidran               // Cheshvan 29, Kislev 30
	Shelaimim              // both 30 days
)

func (k Kviah) String() string {
	switch k {
	case Chaseirim:
		return "chaseirim"
	case Kesidran:
		return "kesidran"
	case Shelaimim:
		return "shelaimim"
	}
	return fmt.Sprintf("Kviah(%d)", int(k))
}
