package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument is returned when a date component is outside the range
// the calendar can represent.
var ErrInvalidArgument = errors.New("invalid argument")

// directThreshold is the step size above which Forward and Back recompute
// the date from the absolute day instead of walking month boundaries.
const directThreshold = 500

// JewishDate is a single calendar day indexed both as a Jewish date and as a
// civil date. The zero value is not a valid date; use one of the
// constructors.
//
// JewishDate is a value type. Assigning it copies it, so a copy handed to
// another goroutine is unaffected by later calls to the setters on the
// original.
type JewishDate struct {
	year  int
	month Month
	day   int

	civilYear  int
	civilMonth time.Month
	civilDay   int

	abs     int
	weekday Weekday
	mode    Mode

	moladHours    int
	moladMinutes  int
	moladChalakim int
}

// Option configures a JewishDate at construction.
type Option func(*JewishDate)

// WithMode selects the civil calendar mode.
func WithMode(mode Mode) Option {
	return func(d *JewishDate) {
		d.mode = mode
	}
}

func newDate(opts []Option) JewishDate {
	var d JewishDate
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Today returns the current civil date.
func Today(opts ...Option) JewishDate {
	d := newDate(opts)
	d.setAbsolute(GregorianToAbsolute(time.Now().Date()))
	return d
}

// FromTime returns the date of t's year, month and day, read in t's own
// location and interpreted as a proleptic Gregorian date.
func FromTime(t time.Time, opts ...Option) (JewishDate, error) {
	d := newDate(opts)
	if err := d.SetTime(t); err != nil {
		return JewishDate{}, err
	}
	return d, nil
}

// FromAbsolute returns the date of an absolute day number. Days outside
// Jewish years 1 through MaxJewishYear are rejected.
func FromAbsolute(abs int, opts ...Option) (JewishDate, error) {
	d := newDate(opts)
	if err := d.SetAbsolute(abs); err != nil {
		return JewishDate{}, err
	}
	return d, nil
}

// CheckJewishYear reports an ErrInvalidArgument for years outside
// 1..MaxJewishYear.
func CheckJewishYear(year int) error {
	if year < 1 || year > MaxJewishYear {
		return fmt.Errorf("%w: jewish year %d is outside 1..%d", ErrInvalidArgument, year, MaxJewishYear)
	}
	return nil
}

var (
	minAbsolute = YearStart(1)
	maxAbsolute = YearStart(MaxJewishYear+1) - 1
)

func checkAbsolute(abs int) error {
	if abs < minAbsolute || abs > maxAbsolute {
		return fmt.Errorf("%w: day %d is outside jewish years 1..%d", ErrInvalidArgument, abs, MaxJewishYear)
	}
	return nil
}

// New returns the Jewish date year/month/day. A month or day past the end of
// the year or month is clamped to the last valid value.
func New(year int, month Month, day int, opts ...Option) (JewishDate, error) {
	return NewWithMolad(year, month, day, 0, 0, 0, opts...)
}

// NewWithMolad is like New but also records molad components.
func NewWithMolad(year int, month Month, day, hours, minutes, chalakim int, opts ...Option) (JewishDate, error) {
	d := newDate(opts)
	if err := d.SetJewishDateMolad(year, month, day, hours, minutes, chalakim); err != nil {
		return JewishDate{}, err
	}
	return d, nil
}

// FromGregorian returns the date of a civil year/month/day, read according
// to the selected Mode. A day past the end of the month is clamped.
func FromGregorian(year int, month time.Month, day int, opts ...Option) (JewishDate, error) {
	d := newDate(opts)
	if err := d.SetGregorianDate(year, month, day); err != nil {
		return JewishDate{}, err
	}
	return d, nil
}

// FromMolad returns the date on which the molad at chalakim since the molad
// tohu falls, with the molad time of day recorded. A molad at or after 6pm
// belongs to the following day, since the Jewish day starts at nightfall.
func FromMolad(chalakim int64, opts ...Option) JewishDate {
	d := newDate(opts)
	d.setMolad(chalakim)
	return d
}

// MoladFor returns the molad of month in year. year should be within
// 1..MaxJewishYear.
func MoladFor(year int, month Month, opts ...Option) JewishDate {
	return FromMolad(ChalakimSinceMoladTohu(year, month), opts...)
}

func (d *JewishDate) setMolad(chalakim int64) {
	abs := int(floorDiv64(chalakim, ChalakimPerDay)) + JewishEpoch
	parts := int(floorMod64(chalakim, ChalakimPerDay))
	hours := parts / ChalakimPerHour
	if hours >= 6 {
		abs++
	}
	d.setAbsolute(abs)

	rem := parts % ChalakimPerHour
	// molad hours are counted from 6pm of the previous evening
	d.moladHours = (hours + 18) % 24
	d.moladMinutes = rem / ChalakimPerMinute
	d.moladChalakim = rem % ChalakimPerMinute
}

// setAbsolute points d at abs and derives every other field from it.
func (d *JewishDate) setAbsolute(abs int) {
	d.abs = abs
	d.weekday = WeekdayOf(abs)
	d.year, d.month, d.day = AbsoluteToJewish(abs)
	d.civilYear, d.civilMonth, d.civilDay = absoluteToCivil(d.mode, abs)
	d.clearMolad()
}

func (d *JewishDate) clearMolad() {
	d.moladHours, d.moladMinutes, d.moladChalakim = 0, 0, 0
}

// ---------------------------------------------------------------------------
// Setters
// ---------------------------------------------------------------------------

// SetTime moves d to the proleptic Gregorian date of t.
func (d *JewishDate) SetTime(t time.Time) error {
	y, m, day := t.Date()
	if y > MaxJewishYear {
		return fmt.Errorf("%w: civil year %d", ErrInvalidArgument, y)
	}
	return d.SetAbsolute(GregorianToAbsolute(y, m, day))
}

// SetAbsolute moves d to an absolute day number.
func (d *JewishDate) SetAbsolute(abs int) error {
	if err := checkAbsolute(abs); err != nil {
		return err
	}
	d.setAbsolute(abs)
	return nil
}

// Reset moves d to today.
func (d *JewishDate) Reset() {
	d.setAbsolute(GregorianToAbsolute(time.Now().Date()))
}

// SetGregorianDate moves d to a civil date read in d's Mode. Dates outside
// Jewish years 1..MaxJewishYear and months or days outside 1..12 and 1..31
// are rejected; a day beyond the end of the month is clamped to the last
// day.
func (d *JewishDate) SetGregorianDate(year int, month time.Month, day int) error {
	if year < MinGregorianYear || year > MaxJewishYear {
		return fmt.Errorf("%w: civil year %d", ErrInvalidArgument, year)
	}
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: civil month %d", ErrInvalidArgument, int(month))
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: civil day %d", ErrInvalidArgument, day)
	}
	if last := daysInCivilMonth(d.mode, year, month); day > last {
		day = last
	}
	abs, err := civilToAbsolute(d.mode, year, month, day)
	if err != nil {
		return err
	}
	if err := checkAbsolute(abs); err != nil {
		return err
	}
	d.setAbsolute(abs)
	return nil
}

// SetGregorianYear changes the civil year, keeping month and day.
func (d *JewishDate) SetGregorianYear(year int) error {
	return d.SetGregorianDate(year, d.civilMonth, d.civilDay)
}

// SetGregorianMonth changes the civil month, keeping year and day.
func (d *JewishDate) SetGregorianMonth(month time.Month) error {
	return d.SetGregorianDate(d.civilYear, month, d.civilDay)
}

// SetGregorianDay changes the civil day of month.
func (d *JewishDate) SetGregorianDay(day int) error {
	return d.SetGregorianDate(d.civilYear, d.civilMonth, day)
}

// SetJewishDate moves d to a Jewish date. Out of range components are
// rejected; a month 13 in a regular year becomes Adar, and a day beyond the
// end of the month is clamped to the last day.
func (d *JewishDate) SetJewishDate(year int, month Month, day int) error {
	return d.SetJewishDateMolad(year, month, day, 0, 0, 0)
}

// SetJewishDateMolad is SetJewishDate with molad components.
func (d *JewishDate) SetJewishDateMolad(year int, month Month, day, hours, minutes, chalakim int) error {
	if err := CheckJewishYear(year); err != nil {
		return err
	}
	switch {
	case !month.Valid():
		return fmt.Errorf("%w: jewish month %d", ErrInvalidArgument, int(month))
	case day < 1 || day > 30:
		return fmt.Errorf("%w: jewish day %d", ErrInvalidArgument, day)
	case hours < 0 || hours > 23:
		return fmt.Errorf("%w: molad hours %d", ErrInvalidArgument, hours)
	case minutes < 0 || minutes > 59:
		return fmt.Errorf("%w: molad minutes %d", ErrInvalidArgument, minutes)
	case chalakim < 0 || chalakim >= ChalakimPerMinute:
		return fmt.Errorf("%w: molad chalakim %d", ErrInvalidArgument, chalakim)
	}

	if last := LastMonth(year); month > last {
		month = last
	}
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	d.setAbsolute(JewishToAbsolute(year, month, day))
	d.moladHours, d.moladMinutes, d.moladChalakim = hours, minutes, chalakim
	return nil
}

// SetJewishYear changes the Jewish year, keeping month and day.
func (d *JewishDate) SetJewishYear(year int) error {
	return d.SetJewishDate(year, d.month, d.day)
}

// SetJewishMonth changes the Jewish month, keeping year and day.
func (d *JewishDate) SetJewishMonth(month Month) error {
	return d.SetJewishDate(d.year, month, d.day)
}

// SetJewishDay changes the Jewish day of month.
func (d *JewishDate) SetJewishDay(day int) error {
	return d.SetJewishDate(d.year, d.month, day)
}

// ---------------------------------------------------------------------------
// Stepping
// ---------------------------------------------------------------------------

// Forward moves d n days ahead. A negative n moves back.
func (d *JewishDate) Forward(n int) {
	switch {
	case n < 0:
		d.Back(-n)
		return
	case n == 0:
		return
	case n > directThreshold:
		d.setAbsolute(d.abs + n)
		return
	}

	lengths := newMonthTable(d.year)
	for i := 0; i < n; i++ {
		if d.day < lengths[d.month] {
			d.day++
			continue
		}
		d.day = 1
		switch {
		case d.month == Elul:
			d.year++
			d.month = Tishrei
			lengths = newMonthTable(d.year)
		case d.month == LastMonth(d.year):
			d.month = Nissan
		default:
			d.month++
		}
	}
	d.stepped(n)
}

// Back moves d n days earlier. A negative n moves ahead.
func (d *JewishDate) Back(n int) {
	switch {
	case n < 0:
		d.Forward(-n)
		return
	case n == 0:
		return
	case n > directThreshold:
		d.setAbsolute(d.abs - n)
		return
	}

	lengths := newMonthTable(d.year)
	for i := 0; i < n; i++ {
		if d.day > 1 {
			d.day--
			continue
		}
		switch {
		case d.month == Tishrei:
			d.year--
			d.month = Elul
			lengths = newMonthTable(d.year)
		case d.month == Nissan:
			d.month = LastMonth(d.year)
		default:
			d.month--
		}
		d.day = lengths[d.month]
	}
	d.stepped(-n)
}

// stepped finishes a month walk of n days: the Jewish fields are already
// updated, the rest follow.
func (d *JewishDate) stepped(n int) {
	d.abs += n
	d.weekday = Weekday(floorMod(int(d.weekday)-1+n, 7) + 1)
	d.civilYear, d.civilMonth, d.civilDay = absoluteToCivil(d.mode, d.abs)
	d.clearMolad()
}

// Add returns a copy of d moved n days.
func (d JewishDate) Add(n int) JewishDate {
	d.Forward(n)
	return d
}

// Sub returns the number of days from other to d.
func (d JewishDate) Sub(other JewishDate) int {
	return d.abs - other.abs
}

// Compare returns -1, 0 or +1 as d is before, the same day as, or after
// other.
func (d JewishDate) Compare(other JewishDate) int {
	switch {
	case d.abs < other.abs:
		return -1
	case d.abs > other.abs:
		return 1
	}
	return 0
}

// Before reports whether d is earlier than other.
func (d JewishDate) Before(other JewishDate) bool { return d.abs < other.abs }

// After reports whether d is later than other.
func (d JewishDate) After(other JewishDate) bool { return d.abs > other.abs }

// Equal reports whether d and other are the same day.
func (d JewishDate) Equal(other JewishDate) bool { return d.abs == other.abs }

// Between reports whether d falls within [start, end].
func (d JewishDate) Between(start, end JewishDate) bool {
	return d.abs >= start.abs && d.abs <= end.abs
}

// EndOfWeek returns the Shabbos ending d's week.
func (d JewishDate) EndOfWeek() JewishDate {
	return d.Add(int(Shabbos - d.weekday))
}

// Molad returns the molad of d's month.
func (d JewishDate) Molad() JewishDate {
	return MoladFor(d.year, d.month, WithMode(d.mode))
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// JewishYear returns the Jewish year.
func (d JewishDate) JewishYear() int { return d.year }

// JewishMonth returns the Nissan-numbered Jewish month.
func (d JewishDate) JewishMonth() Month { return d.month }

// JewishDay returns the day of the Jewish month.
func (d JewishDate) JewishDay() int { return d.day }

// Weekday returns the day of week, Sunday = 1.
func (d JewishDate) Weekday() Weekday { return d.weekday }

// Absolute returns the absolute day number.
func (d JewishDate) Absolute() int { return d.abs }

func (d JewishDate) Mode() Mode { return d.mode }

// MoladHours, MoladMinutes and MoladChalakim are zero unless d was built
// from a molad.
func (d JewishDate) MoladHours() int    { return d.moladHours }
func (d JewishDate) MoladMinutes() int  { return d.moladMinutes }
func (d JewishDate) MoladChalakim() int { return d.moladChalakim }

// GregorianYear, GregorianMonth and GregorianDay return the civil date in
// d's Mode. In ModeHistorical dates before the reform are Julian.
func (d JewishDate) GregorianYear() int         { return d.civilYear }
func (d JewishDate) GregorianMonth() time.Month { return d.civilMonth }
func (d JewishDate) GregorianDay() int          { return d.civilDay }

func (d JewishDate) IsLeapYear() bool   { return IsLeapYear(d.year) }
func (d JewishDate) DaysInYear() int    { return DaysInYear(d.year) }
func (d JewishDate) DaysInMonth() int   { return DaysInMonth(d.year, d.month) }
func (d JewishDate) MonthsInYear() int  { return MonthsInYear(d.year) }
func (d JewishDate) KislevShort() bool  { return KislevShort(d.year) }
func (d JewishDate) CheshvanLong() bool { return CheshvanLong(d.year) }
func (d JewishDate) Kviah() Kviah       { return CheshvanKislevKviah(d.year) }
func (d JewishDate) DayOfYear() int     { return DayOfYear(d.year, d.month, d.day) }
func (d JewishDate) MonthName() string  { return MonthName(d.year, d.month) }

// Time returns midnight UTC of d as a proleptic Gregorian time.Time,
// whatever d's Mode.
func (d JewishDate) Time() time.Time {
	return absoluteToTime(d.abs)
}

// String formats d as the Jewish date followed by the civil date, for
// example "5778-08-06 (2017-10-26)".
func (d JewishDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d (%s)", d.year, int(d.month), d.day, d.CivilString())
}

// CivilString formats the civil date as YYYY-MM-DD, using astronomical year
// numbering for years before 1.
func (d JewishDate) CivilString() string {
	if d.civilYear < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -d.civilYear, int(d.civilMonth), d.civilDay)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.civilYear, int(d.civilMonth), d.civilDay)
}
