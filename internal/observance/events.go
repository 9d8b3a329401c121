package observance

import (
	"fmt"
	"sort"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

type occurrenceKind int

const (
	occurCurrent occurrenceKind = iota
	occurFor
	occurUpcoming
)

// Occurrence selects which instance of a recurring event a search returns.
// The zero value is Current.
type Occurrence struct {
	kind  occurrenceKind
	year  int
	month calendar.Month
}

// Current selects the instance in the reference date's year, or month for
// monthly events, whether or not it has passed.
func Current() Occurrence { return Occurrence{} }

// ForYear selects the instance in a given Jewish year.
func ForYear(year int) Occurrence { return Occurrence{kind: occurFor, year: year} }

// ForMonth selects the instance of a monthly event in a given month. For a
// monthly event ForYear means the first month of the year that has one.
func ForMonth(year int, month calendar.Month) Occurrence {
	return Occurrence{kind: occurFor, year: year, month: month}
}

// Upcoming selects the next instance on or after the reference date.
func Upcoming() Occurrence { return Occurrence{kind: occurUpcoming} }

// ParseOccurrence builds an Occurrence from optional request parameters.
// An explicit year together with upcoming is rejected.
func ParseOccurrence(year *int, upcoming bool) (Occurrence, error) {
	switch {
	case year != nil && upcoming:
		return Occurrence{}, fmt.Errorf("%w: year %d and upcoming", ErrConflictingOptions, *year)
	case year != nil:
		return ForYear(*year), nil
	case upcoming:
		return Upcoming(), nil
	}
	return Current(), nil
}

func (o Occurrence) String() string {
	switch o.kind {
	case occurFor:
		if o.month != 0 {
			return fmt.Sprintf("month %d-%02d", o.year, int(o.month))
		}
		return fmt.Sprintf("year %d", o.year)
	case occurUpcoming:
		return "upcoming"
	}
	return "current"
}

// AnnualRule builds the date of a yearly event.
type AnnualRule struct {
	Day SignificantDay
	// Month returns the event's month in a given year.
	Month func(year int) calendar.Month
	Date  int
	// IsraelDate, when set, replaces Date in Israel.
	IsraelDate int
	// ShabbosBump is added to the date when it would fall on Shabbos.
	ShabbosBump int
}

func fixedMonth(m calendar.Month) func(int) calendar.Month {
	return func(int) calendar.Month { return m }
}

// lastAdar is Adar II in a leap year and Adar otherwise.
func lastAdar(year int) calendar.Month {
	return calendar.LastMonth(year)
}

// annualRules are the yearly events a search can find, keyed by the day
// they produce. Multi-day festivals are found by their first day.
var annualRules = map[SignificantDay]AnnualRule{
	RoshHashana:       {Month: fixedMonth(calendar.Tishrei), Date: 1},
	TzomGedalyah:      {Month: fixedMonth(calendar.Tishrei), Date: 3, ShabbosBump: 1},
	YomKippur:         {Month: fixedMonth(calendar.Tishrei), Date: 10},
	Succos:            {Month: fixedMonth(calendar.Tishrei), Date: 15},
	HoshanaRabbah:     {Month: fixedMonth(calendar.Tishrei), Date: 21},
	SheminiAtzeres:    {Month: fixedMonth(calendar.Tishrei), Date: 22},
	SimchasTorah:      {Month: fixedMonth(calendar.Tishrei), Date: 23, IsraelDate: 22},
	Chanukah:          {Month: fixedMonth(calendar.Kislev), Date: 25},
	TenthOfTeves:      {Month: fixedMonth(calendar.Teves), Date: 10},
	TuBeshvat:         {Month: fixedMonth(calendar.Shevat), Date: 15},
	TaanisEsther:      {Month: lastAdar, Date: 13, ShabbosBump: -2},
	Purim:             {Month: lastAdar, Date: 14},
	ShushanPurim:      {Month: lastAdar, Date: 15},
	Pesach:            {Month: fixedMonth(calendar.Nissan), Date: 15},
	PesachSheni:       {Month: fixedMonth(calendar.Iyar), Date: 14},
	Shavuos:           {Month: fixedMonth(calendar.Sivan), Date: 6},
	SeventeenOfTammuz: {Month: fixedMonth(calendar.Tammuz), Date: 17, ShabbosBump: 1},
	TishaBeav:         {Month: fixedMonth(calendar.Av), Date: 9, ShabbosBump: 1},
	TuBeav:            {Month: fixedMonth(calendar.Av), Date: 15},
}

func init() {
	for sd, r := range annualRules {
		r.Day = sd
		annualRules[sd] = r
	}
}

// AnnualRuleFor returns the rule for a significant day.
func AnnualRuleFor(day SignificantDay) (AnnualRule, bool) {
	r, ok := annualRules[day]
	return r, ok
}

// AnnualEvents lists the days that have an annual rule, in calendar order
// from Tishrei.
func AnnualEvents() []SignificantDay {
	out := make([]SignificantDay, 0, len(annualRules))
	for sd := range annualRules {
		out = append(out, sd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// in returns the event's date in year, with c's settings.
func (r AnnualRule) in(c Calendar, year int) Calendar {
	date := r.Date
	if c.InIsrael && r.IsraelDate != 0 {
		date = r.IsraelDate
	}
	e := c.at(year, r.Month(year), date)
	if r.ShabbosBump != 0 && e.Weekday() == calendar.Shabbos {
		e = e.Add(r.ShabbosBump)
	}
	return e
}

// FindAnnual returns the instance of a yearly event selected by occ,
// relative to c.
func (c Calendar) FindAnnual(rule AnnualRule, occ Occurrence) (Calendar, error) {
	switch occ.kind {
	case occurFor:
		if err := calendar.CheckJewishYear(occ.year); err != nil {
			return Calendar{}, err
		}
		return rule.in(c, occ.year), nil
	case occurUpcoming:
		e := rule.in(c, c.JewishYear())
		if e.Before(c.JewishDate) {
			e = rule.in(c, c.JewishYear()+1)
		}
		return e, nil
	}
	return rule.in(c, c.JewishYear()), nil
}

// FindEvent is FindAnnual for a named significant day.
func (c Calendar) FindEvent(day SignificantDay, occ Occurrence) (Calendar, error) {
	rule, ok := annualRules[day]
	if !ok {
		return Calendar{}, fmt.Errorf("%w: %s", ErrUnknownEvent, day)
	}
	return c.FindAnnual(rule, occ)
}

// MonthlyRule builds the date of a monthly event from a year and month.
type MonthlyRule struct {
	Name string
	// Date returns the event's date in a month; ok is false for months
	// without one.
	Date func(c Calendar, year int, month calendar.Month) (Calendar, bool)
}

// RoshChodesh finds the first day of Rosh Chodesh, the 30th of the
// previous month when that month is full. Tishrei has none.
var RoshChodesh = MonthlyRule{
	Name: "rosh_chodesh",
	Date: func(c Calendar, year int, month calendar.Month) (Calendar, bool) {
		if month == calendar.Tishrei {
			return Calendar{}, false
		}
		first := c.at(year, month, 1)
		if prev := first.Add(-1); prev.JewishDay() == 30 {
			return prev, true
		}
		return first, true
	},
}

// ShabbosMevorchim finds the Shabbos on which a month is blessed, the
// last Shabbos from the 23rd to the 29th of the month before. Tishrei is
// not blessed.
var ShabbosMevorchim = MonthlyRule{
	Name: "shabbos_mevorchim",
	Date: func(c Calendar, year int, month calendar.Month) (Calendar, bool) {
		if month == calendar.Tishrei {
			return Calendar{}, false
		}
		e := c.at(year, month, 1).Add(-1)
		if e.JewishDay() == 30 {
			e = e.Add(-1)
		}
		return e.Add(-daysSinceShabbos(e.Weekday())), true
	},
}

// daysSinceShabbos is zero on Shabbos, one on Sunday and so on.
func daysSinceShabbos(w calendar.Weekday) int {
	return int(w) % 7
}

// FindMonthly returns the instance of a monthly event selected by occ,
// relative to c. Months without an instance are skipped.
func (c Calendar) FindMonthly(rule MonthlyRule, occ Occurrence) (Calendar, error) {
	year, month := c.JewishYear(), c.JewishMonth()
	switch occ.kind {
	case occurFor:
		year, month = occ.year, occ.month
		if month == 0 {
			month = calendar.Tishrei
		}
		if err := calendar.CheckJewishYear(year); err != nil {
			return Calendar{}, err
		}
		if !month.Valid() {
			return Calendar{}, fmt.Errorf("%w: month %d-%d", calendar.ErrInvalidArgument, year, int(month))
		}
		if month > calendar.LastMonth(year) {
			month = calendar.LastMonth(year)
		}
	case occurUpcoming:
		// an event is at most two months ahead
		for i := 0; i < 3; i++ {
			if e, ok := rule.Date(c, year, month); ok && !e.Before(c.JewishDate) {
				return e, nil
			}
			year, month = calendar.NextMonth(year, month)
		}
		return Calendar{}, fmt.Errorf("%w: no upcoming %s", ErrUnknownEvent, rule.Name)
	}
	for i := 0; i < 2; i++ {
		if e, ok := rule.Date(c, year, month); ok {
			return e, nil
		}
		year, month = calendar.NextMonth(year, month)
	}
	return Calendar{}, fmt.Errorf("%w: no %s", ErrUnknownEvent, rule.Name)
}

// Event is a recurring event that can be looked up by name. Exactly one of
// Annual and Monthly is set.
type Event struct {
	Name    string
	Annual  *AnnualRule
	Monthly *MonthlyRule
}

// EventByName resolves a significant day name, "rosh_chodesh" or
// "shabbos_mevorchim".
func EventByName(name string) (Event, error) {
	switch name {
	case RoshChodesh.Name:
		return Event{Name: name, Monthly: &RoshChodesh}, nil
	case ShabbosMevorchim.Name:
		return Event{Name: name, Monthly: &ShabbosMevorchim}, nil
	}
	sd, err := ParseSignificantDay(name)
	if err != nil {
		return Event{}, err
	}
	rule, ok := annualRules[sd]
	if !ok {
		return Event{}, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	return Event{Name: name, Annual: &rule}, nil
}

// Find returns the instance of ev selected by occ, relative to c.
func (c Calendar) Find(ev Event, occ Occurrence) (Calendar, error) {
	switch {
	case ev.Annual != nil:
		return c.FindAnnual(*ev.Annual, occ)
	case ev.Monthly != nil:
		return c.FindMonthly(*ev.Monthly, occ)
	}
	return Calendar{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Name)
}
