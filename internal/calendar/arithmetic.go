package calendar

import "math"

// Time units. The calendar measures time in chalakim (parts), 1080 to the hour.
const (
	ChalakimPerMinute = 18
	ChalakimPerHour   = 1080
	ChalakimPerDay    = 25920

	// ChalakimPerMonth is the mean synodic month: 29 days, 12 hours, 793 parts.
	ChalakimPerMonth int64 = 29*ChalakimPerDay + 12*ChalakimPerHour + 793

	// ChalakimMoladTohu is the molad of Tishrei of year 1 (BaHaRaD):
	// day 2, 5 hours, 204 parts.
	ChalakimMoladTohu int64 = ChalakimPerDay + 5*ChalakimPerHour + 204

	// JewishEpoch is the absolute day preceding 1 Tishrei of year 1, offset
	// so that YearStart(1) lands on the correct weekday.
	JewishEpoch = -1373429

	// MaxJewishYear is the last year accepted as input. The package functions
	// below stay exact far past it, but molad chalakim leave int64 near
	// year 10^11.
	MaxJewishYear = 1_000_000
)

// meanYearDays is the mean length of a Jewish year: 235 months per 19 years.
const meanYearDays = float64(monthsPerCycle*ChalakimPerMonth) / (19 * ChalakimPerDay)

// Dechiyot thresholds, in chalakim past the start of the molad day.
const (
	moladZaken     = 18 * ChalakimPerHour // 18 hours
	gatarad        = 9*ChalakimPerHour + 204
	betutakpat     = 15*ChalakimPerHour + 589
	monthsPerCycle = 235
)

// floorDiv and floorMod round toward negative infinity so that the
// arithmetic below is valid for years and days before the epoch.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod64(a, b int64) int64 {
	return a - floorDiv64(a, b)*b
}

// IsLeapYear reports whether year has thirteen months. Seven years of every
// nineteen-year cycle are leap years.
func IsLeapYear(year int) bool {
	return floorMod(7*year+1, 19) < 7
}

// MonthsInYear returns 13 for a leap year and 12 otherwise.
func MonthsInYear(year int) int {
	if IsLeapYear(year) {
		return 13
	}
	return 12
}

// LastMonth returns the final month of the festival year, Adar or Adar II.
func LastMonth(year int) Month {
	return Month(MonthsInYear(year))
}

// NextMonth returns the month following month in chronological order.
// Elul is followed by Tishrei of the next year.
func NextMonth(year int, month Month) (int, Month) {
	switch month {
	case Elul:
		return year + 1, Tishrei
	case LastMonth(year):
		return year, Nissan
	}
	return year, month + 1
}

// monthOfYear re-indexes a Nissan-based month to its position counted from
// Tishrei = 1.
func monthOfYear(year int, month Month) int {
	if IsLeapYear(year) {
		return 1 + (int(month)+6)%13
	}
	return 1 + (int(month)+5)%12
}

// ChalakimSinceMoladTohu returns the chalakim elapsed from the molad tohu to
// the molad of the given month.
func ChalakimSinceMoladTohu(year int, month Month) int64 {
	prev := int64(year - 1)
	cycles := floorDiv64(prev, 19)
	r := floorMod64(prev, 19)
	months := int64(monthOfYear(year, month)-1) +
		monthsPerCycle*cycles +
		12*r +
		(7*r+1)/19
	return ChalakimMoladTohu + months*ChalakimPerMonth
}

// ElapsedDays returns the number of days from the epoch to Rosh Hashana of
// year, after applying the postponement rules.
func ElapsedDays(year int) int {
	ch := ChalakimSinceMoladTohu(year, Tishrei)
	days := int(floorDiv64(ch, ChalakimPerDay))
	parts := int(floorMod64(ch, ChalakimPerDay))
	return days + postponement(year, days, parts)
}

// postponement returns how many days Rosh Hashana is pushed off its molad
// day. roshHashana is the weekday index, 0 = Shabbos.
func postponement(year, moladDay, parts int) int {
	roshHashana := floorMod(moladDay+1, 7)
	count := 0
	if parts >= moladZaken ||
		(roshHashana == 3 && parts >= gatarad && !IsLeapYear(year)) ||
		(roshHashana == 2 && parts >= betutakpat && IsLeapYear(year-1)) {
		count++
	}
	// lo ADU rosh: never Sunday, Wednesday or Friday
	switch (roshHashana + count) % 7 {
	case 1, 4, 6:
		count++
	}
	return count
}

// YearStart returns the absolute day of 1 Tishrei of year.
func YearStart(year int) int {
	return ElapsedDays(year) + JewishEpoch + 1
}

// DaysInYear returns the length of year: 353, 354 or 355 days for a regular
// year and 383, 384 or 385 for a leap year.
func DaysInYear(year int) int {
	return ElapsedDays(year+1) - ElapsedDays(year)
}

// CheshvanLong reports whether Cheshvan has 30 days in year.
func CheshvanLong(year int) bool {
	return DaysInYear(year)%10 == 5
}

// CheshvanShort reports whether Cheshvan has 29 days in year.
func CheshvanShort(year int) bool {
	return !CheshvanLong(year)
}

// KislevShort reports whether Kislev has 29 days in year.
func KislevShort(year int) bool {
	return DaysInYear(year)%10 == 3
}

// KislevLong reports whether Kislev has 30 days in year.
func KislevLong(year int) bool {
	return !KislevShort(year)
}

// CheshvanKislevKviah classifies the year by its Cheshvan and Kislev lengths.
func CheshvanKislevKviah(year int) Kviah {
	switch DaysInYear(year) % 10 {
	case 3:
		return Chaseirim
	case 5:
		return Shelaimim
	default:
		return Kesidran
	}
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month Month) int {
	return daysInMonth(month, IsLeapYear(year), CheshvanLong(year), KislevShort(year))
}

func daysInMonth(month Month, leap, cheshvanLong, kislevShort bool) int {
	switch month {
	case Iyar, Tammuz, Elul, Teves, AdarII:
		return 29
	case Cheshvan:
		if !cheshvanLong {
			return 29
		}
	case Kislev:
		if kislevShort {
			return 29
		}
	case Adar:
		if !leap {
			return 29
		}
	}
	return 30
}

// SortedMonths returns the months of year in chronological order, starting
// with Tishrei.
func SortedMonths(year int) []Month {
	n := MonthsInYear(year)
	months := make([]Month, 0, n)
	for m := Tishrei; int(m) <= n; m++ {
		months = append(months, m)
	}
	for m := Nissan; m <= Elul; m++ {
		months = append(months, m)
	}
	return months
}

// monthTable holds the month lengths of a single year, indexed by Month.
type monthTable [AdarII + 1]int

func newMonthTable(year int) monthTable {
	var t monthTable
	leap := IsLeapYear(year)
	cheshvanLong := CheshvanLong(year)
	kislevShort := KislevShort(year)
	for m := Nissan; m <= AdarII; m++ {
		if m == AdarII && !leap {
			continue
		}
		t[m] = daysInMonth(m, leap, cheshvanLong, kislevShort)
	}
	return t
}

// SortedMonthLengths returns the length of each month of year in
// chronological order, matching SortedMonths.
func SortedMonthLengths(year int) []int {
	t := newMonthTable(year)
	months := SortedMonths(year)
	lengths := make([]int, len(months))
	for i, m := range months {
		lengths[i] = t[m]
	}
	return lengths
}

// DayOfYear returns the 1-based position of the given day counted from
// 1 Tishrei.
func DayOfYear(year int, month Month, day int) int {
	t := newMonthTable(year)
	n := day
	for _, m := range SortedMonths(year) {
		if m == month {
			break
		}
		n += t[m]
	}
	return n
}

// JewishToAbsolute returns the absolute day number of a Jewish date.
func JewishToAbsolute(year int, month Month, day int) int {
	return DayOfYear(year, month, day) + YearStart(year) - 1
}

// AbsoluteToJewish returns the Jewish date of an absolute day number.
func AbsoluteToJewish(abs int) (year int, month Month, day int) {
	// The mean year length puts the estimate within a year of the answer.
	year = int(math.Floor(float64(abs-JewishEpoch)/meanYearDays)) + 1
	for YearStart(year) > abs {
		year--
	}
	for YearStart(year+1) <= abs {
		year++
	}

	remaining := abs - YearStart(year)
	t := newMonthTable(year)
	for _, m := range SortedMonths(year) {
		if remaining < t[m] {
			return year, m, remaining + 1
		}
		remaining -= t[m]
	}
	// unreachable: the month lengths sum to DaysInYear(year)
	panic("calendar: day beyond end of year")
}
