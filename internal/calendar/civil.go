package calendar

import (
	"fmt"
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
)

// Mode selects how civil dates are expressed.
type Mode int

const (
	// ModeHistorical uses the Julian calendar before the Gregorian reform of
	// 1582-10-15 and the Gregorian calendar from then on.
	ModeHistorical Mode = iota
	// ModeProleptic uses the Gregorian calendar for all dates.
	ModeProleptic
)

func (m Mode) String() string {
	switch m {
	case ModeHistorical:
		return "historical"
	case ModeProleptic:
		return "proleptic"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "historical" or "proleptic". An empty string selects
// ModeHistorical.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "historical":
		return ModeHistorical, nil
	case "proleptic", "gregorian":
		return ModeProleptic, nil
	}
	return 0, fmt.Errorf("%w: unknown calendar mode %q", ErrInvalidArgument, s)
}

const (
	// GregorianReform is the absolute day of 1582-10-15, the first Gregorian
	// date in historical mode.
	GregorianReform = 577736

	// MinGregorianYear is the earliest civil year accepted as input, the
	// year of the Jewish epoch.
	MinGregorianYear = -3760

	unixEpochAbs   = 719163 // 1970-01-01
	secondsPerDay  = 86400
	rataDieJDN     = 1721425
	rataDieJDDelta = 1721424.5
)

// GregorianLeapYear reports whether year is a leap year in the proleptic
// Gregorian calendar.
func GregorianLeapYear(year int) bool {
	return floorMod(year, 4) == 0 && (floorMod(year, 100) != 0 || floorMod(year, 400) == 0)
}

// DaysInGregorianYear returns 365 or 366.
func DaysInGregorianYear(year int) int {
	if GregorianLeapYear(year) {
		return 366
	}
	return 365
}

var civilMonthDays = [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInGregorianMonth returns the length of month in the proleptic
// Gregorian calendar.
func DaysInGregorianMonth(year int, month time.Month) int {
	if month == time.February && GregorianLeapYear(year) {
		return 29
	}
	return civilMonthDays[month]
}

// DaysInJulianMonth returns the length of month in the Julian calendar.
func DaysInJulianMonth(year int, month time.Month) int {
	if month == time.February && julian.LeapYearJulian(year) {
		return 29
	}
	return civilMonthDays[month]
}

// GregorianToAbsolute returns the absolute day of a proleptic Gregorian date.
// Absolute day 1 is 0001-01-01.
func GregorianToAbsolute(year int, month time.Month, day int) int {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return int(floorDiv64(t.Unix(), secondsPerDay)) + unixEpochAbs
}

// AbsoluteToGregorian returns the proleptic Gregorian date of an absolute day.
func AbsoluteToGregorian(abs int) (year int, month time.Month, day int) {
	return absoluteToTime(abs).Date()
}

func absoluteToTime(abs int) time.Time {
	return time.Unix(int64(abs-unixEpochAbs)*secondsPerDay, 0).UTC()
}

// JulianToAbsolute returns the absolute day of a Julian calendar date.
func JulianToAbsolute(year int, month time.Month, day int) int {
	jd := julian.CalendarJulianToJD(year, int(month), float64(day))
	return int(math.Floor(jd - rataDieJDDelta))
}

// AbsoluteToJulian returns the Julian calendar date of an absolute day.
func AbsoluteToJulian(abs int) (year int, month time.Month, day int) {
	c := abs + rataDieJDN + 32082
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)
	day = e - floorDiv(153*m+2, 5) + 1
	month = time.Month(m + 3 - 12*(m/10))
	year = d - 4800 + m/10
	return year, month, day
}

// civilToAbsolute converts a civil date in the given mode. The caller has
// already range checked the fields.
func civilToAbsolute(mode Mode, year int, month time.Month, day int) (int, error) {
	if mode == ModeProleptic {
		return GregorianToAbsolute(year, month, day), nil
	}
	switch {
	case year < 1582 || (year == 1582 && (month < time.October || (month == time.October && day < 5))):
		return JulianToAbsolute(year, month, day), nil
	case year == 1582 && month == time.October && day < 15:
		return 0, fmt.Errorf("%w: 1582-10-%02d does not exist in the historical calendar", ErrInvalidArgument, day)
	}
	return GregorianToAbsolute(year, month, day), nil
}

func absoluteToCivil(mode Mode, abs int) (int, time.Month, int) {
	if mode == ModeHistorical && abs < GregorianReform {
		return AbsoluteToJulian(abs)
	}
	return AbsoluteToGregorian(abs)
}

func daysInCivilMonth(mode Mode, year int, month time.Month) int {
	if mode == ModeHistorical && (year < 1582 || (year == 1582 && month < time.October)) {
		return DaysInJulianMonth(year, month)
	}
	return DaysInGregorianMonth(year, month)
}
