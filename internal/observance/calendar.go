// Package observance classifies Jewish dates: holidays and fasts, the
// liturgical insertions of the day, the significant Shabbosos and the molad
// based times. It builds on the date arithmetic of package calendar and does
// no I/O.
package observance

import (
	"errors"
	"time"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

var (
	// ErrConflictingOptions is returned when an event search is given both an
	// explicit year and the upcoming flag.
	ErrConflictingOptions = errors.New("conflicting options")

	// ErrUnknownEvent is returned for an event name with no rule.
	ErrUnknownEvent = errors.New("unknown event")
)

// Calendar is a JewishDate together with the settings that affect how the
// day is observed. All JewishDate methods are available on it.
type Calendar struct {
	calendar.JewishDate

	// InIsrael selects the single festival days of Eretz Yisrael.
	InIsrael bool
	// UseModernHolidays enables Yom Hashoah, Yom Hazikaron, Yom Haatzmaut
	// and Yom Yerushalayim.
	UseModernHolidays bool
	// Reference is the location whose mean time the molad is expressed in.
	Reference Reference
}

type options struct {
	inIsrael bool
	modern   bool
	mode     calendar.Mode
	ref      Reference
}

// Option configures a Calendar at construction.
type Option func(*options)

// WithInIsrael sets Calendar.InIsrael.
func WithInIsrael(v bool) Option {
	return func(o *options) { o.inIsrael = v }
}

// WithModernHolidays sets Calendar.UseModernHolidays.
func WithModernHolidays(v bool) Option {
	return func(o *options) { o.modern = v }
}

// WithMode selects the civil calendar mode of the underlying date.
func WithMode(mode calendar.Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithReference replaces the Jerusalem reference used for molad times.
func WithReference(ref Reference) Option {
	return func(o *options) { o.ref = ref }
}

func buildOptions(opts []Option) options {
	o := options{ref: Jerusalem}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) wrap(d calendar.JewishDate) Calendar {
	return Calendar{
		JewishDate:        d,
		InIsrael:          o.inIsrael,
		UseModernHolidays: o.modern,
		Reference:         o.ref,
	}
}

// FromDate wraps an existing date. The date keeps its own mode.
func FromDate(d calendar.JewishDate, opts ...Option) Calendar {
	return buildOptions(opts).wrap(d)
}

// New returns the calendar for a Jewish date. Overflowing months and days
// are clamped as in calendar.New.
func New(year int, month calendar.Month, day int, opts ...Option) (Calendar, error) {
	o := buildOptions(opts)
	d, err := calendar.New(year, month, day, calendar.WithMode(o.mode))
	if err != nil {
		return Calendar{}, err
	}
	return o.wrap(d), nil
}

// FromGregorian returns the calendar for a civil date.
func FromGregorian(year int, month time.Month, day int, opts ...Option) (Calendar, error) {
	o := buildOptions(opts)
	d, err := calendar.FromGregorian(year, month, day, calendar.WithMode(o.mode))
	if err != nil {
		return Calendar{}, err
	}
	return o.wrap(d), nil
}

// FromTime returns the calendar for the civil date of t.
func FromTime(t time.Time, opts ...Option) (Calendar, error) {
	o := buildOptions(opts)
	d, err := calendar.FromTime(t, calendar.WithMode(o.mode))
	if err != nil {
		return Calendar{}, err
	}
	return o.wrap(d), nil
}

// Today returns the calendar for the current civil date.
func Today(opts ...Option) Calendar {
	o := buildOptions(opts)
	return o.wrap(calendar.Today(calendar.WithMode(o.mode)))
}

// Add returns a copy of c moved n days.
func (c Calendar) Add(n int) Calendar {
	c.Forward(n)
	return c
}

// EndOfWeek returns the Shabbos ending c's week.
func (c Calendar) EndOfWeek() Calendar {
	return c.Add(int(calendar.Shabbos - c.Weekday()))
}

// at returns a calendar with c's settings on another Jewish date. A month
// or day past the end of the year or month is clamped. Any year is accepted,
// so a date near year 1 can look back across the epoch.
func (c Calendar) at(year int, month calendar.Month, day int) Calendar {
	month = min(month, calendar.LastMonth(year))
	day = min(day, calendar.DaysInMonth(year, month))
	return c.Add(calendar.JewishToAbsolute(year, month, day) - c.Absolute())
}

// ---------------------------------------------------------------------------
// Predicates
// ---------------------------------------------------------------------------

// IsYomTov reports whether the day is a festival or commemoration. Eves and
// fasts other than Yom Kippur are excluded.
func (c Calendar) IsYomTov() bool {
	sd := c.SignificantDay()
	if sd == None || sd.IsErev() {
		return false
	}
	return !sd.IsTaanis() || sd == YomKippur
}

// IsYomTovAssurBemelacha reports whether the day is a festival on which
// work is forbidden.
func (c Calendar) IsYomTovAssurBemelacha() bool {
	return c.SignificantDay().IsAssurBemelacha()
}

// IsAssurBemelacha reports whether work is forbidden, on Shabbos or a
// festival.
func (c Calendar) IsAssurBemelacha() bool {
	return c.Weekday() == calendar.Shabbos || c.IsYomTovAssurBemelacha()
}

// IsTomorrowAssurBemelacha reports whether work is forbidden the next day.
func (c Calendar) IsTomorrowAssurBemelacha() bool {
	return c.Weekday() == calendar.Friday || c.IsErevYomTov() || c.IsErevYomTovSheni()
}

// IsCandleLighting reports whether candles are lit this evening.
func (c Calendar) IsCandleLighting() bool {
	return c.IsTomorrowAssurBemelacha()
}

// IsDelayedCandleLighting reports whether candles are lit this evening but
// only after nightfall, because today is itself a day of rest.
func (c Calendar) IsDelayedCandleLighting() bool {
	return c.Weekday() != calendar.Friday && c.IsCandleLighting() && c.IsAssurBemelacha()
}

// IsErevYomTov reports whether a festival begins this evening.
func (c Calendar) IsErevYomTov() bool {
	sd := c.SignificantDay()
	return sd.IsErev() || sd == HoshanaRabbah ||
		(sd == CholHamoedPesach && c.JewishDay() == 20)
}

// IsYomTovSheni reports whether the day is the second day of a festival.
// Rosh Hashana has two days everywhere.
func (c Calendar) IsYomTovSheni() bool {
	m, d := c.JewishMonth(), c.JewishDay()
	if m == calendar.Tishrei && d == 2 {
		return true
	}
	if c.InIsrael {
		return false
	}
	switch m {
	case calendar.Tishrei:
		return d == 16 || d == 23
	case calendar.Nissan:
		return d == 16 || d == 22
	case calendar.Sivan:
		return d == 7
	}
	return false
}

// IsErevYomTovSheni reports whether the second day of a festival begins
// this evening.
func (c Calendar) IsErevYomTovSheni() bool {
	m, d := c.JewishMonth(), c.JewishDay()
	if m == calendar.Tishrei && d == 1 {
		return true
	}
	if c.InIsrael {
		return false
	}
	switch m {
	case calendar.Tishrei:
		return d == 15 || d == 22
	case calendar.Nissan:
		return d == 15 || d == 21
	case calendar.Sivan:
		return d == 6
	}
	return false
}

// IsCholHamoed reports whether the day is an intermediate festival day,
// counting Hoshana Rabbah.
func (c Calendar) IsCholHamoed() bool {
	sd := c.SignificantDay()
	return sd.IsCholHamoed() || sd == HoshanaRabbah
}

// IsTaanis reports whether the day is a fast.
func (c Calendar) IsTaanis() bool {
	return c.SignificantDay().IsTaanis()
}

// IsRoshChodesh reports whether the day is Rosh Chodesh. 1 Tishrei is Rosh
// Hashana instead.
func (c Calendar) IsRoshChodesh() bool {
	d := c.JewishDay()
	return d == 30 || (d == 1 && c.JewishMonth() != calendar.Tishrei)
}

// IsErevRoshChodesh reports whether Rosh Chodesh begins tomorrow.
func (c Calendar) IsErevRoshChodesh() bool {
	return c.JewishDay() == 29 && c.JewishMonth() != calendar.Elul
}

// IsChanukah reports whether the day is one of the eight days of Chanukah.
func (c Calendar) IsChanukah() bool {
	return c.SignificantDay() == Chanukah
}

// DayOfChanukah returns the day of Chanukah, 1 to 8.
func (c Calendar) DayOfChanukah() (int, bool) {
	if !c.IsChanukah() {
		return 0, false
	}
	if c.JewishMonth() == calendar.Kislev {
		return c.JewishDay() - 24, true
	}
	if c.KislevShort() {
		return c.JewishDay() + 5, true
	}
	return c.JewishDay() + 6, true
}

// DayOfOmer returns the day of the omer count, 1 to 49.
func (c Calendar) DayOfOmer() (int, bool) {
	d := c.JewishDay()
	switch c.JewishMonth() {
	case calendar.Nissan:
		if d > 15 {
			return d - 15, true
		}
	case calendar.Iyar:
		return d + 15, true
	case calendar.Sivan:
		if d < 6 {
			return d + 44, true
		}
	}
	return 0, false
}

// IsShabbosMevorchim reports whether the day is the Shabbos on which the
// coming month is blessed. There is none before Tishrei.
func (c Calendar) IsShabbosMevorchim() bool {
	d := c.JewishDay()
	return c.Weekday() == calendar.Shabbos &&
		c.JewishMonth() != calendar.Elul &&
		d >= 23 && d <= 29
}
