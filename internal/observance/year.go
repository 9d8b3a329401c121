package observance

import (
	"github.com/zapponejosh/luach-api/internal/calendar"
)

// Observance is the classification of a single day, flattened for
// serialization.
type Observance struct {
	Date        string         `json:"date" msgpack:"date"`
	Absolute    int            `json:"-" msgpack:"abs"`
	JewishYear  int            `json:"jewish_year" msgpack:"y"`
	JewishMonth calendar.Month `json:"jewish_month" msgpack:"m"`
	JewishDay   int            `json:"jewish_day" msgpack:"d"`
	MonthName   string         `json:"month_name" msgpack:"mn"`
	Weekday     string         `json:"weekday" msgpack:"wd"`

	SignificantDay     SignificantDay     `json:"significant_day,omitempty" msgpack:"sd,omitempty"`
	SignificantShabbos SignificantShabbos `json:"significant_shabbos,omitempty" msgpack:"ss,omitempty"`
	DayOfChanukah      int                `json:"day_of_chanukah,omitempty" msgpack:"chanukah,omitempty"`
	DayOfOmer          int                `json:"day_of_omer,omitempty" msgpack:"omer,omitempty"`

	YomTov                bool `json:"yom_tov" msgpack:"yt"`
	AssurBemelacha        bool `json:"assur_bemelacha" msgpack:"assur"`
	CandleLighting        bool `json:"candle_lighting" msgpack:"candles"`
	DelayedCandleLighting bool `json:"delayed_candle_lighting" msgpack:"delayed"`
	ErevYomTov            bool `json:"erev_yom_tov" msgpack:"erev"`
	YomTovSheni           bool `json:"yom_tov_sheni" msgpack:"sheni"`
	CholHamoed            bool `json:"chol_hamoed" msgpack:"ch"`
	Taanis                bool `json:"taanis" msgpack:"taanis"`
	RoshChodesh           bool `json:"rosh_chodesh" msgpack:"rc"`
	ErevRoshChodesh       bool `json:"erev_rosh_chodesh" msgpack:"erc"`
	ShabbosMevorchim      bool `json:"shabbos_mevorchim" msgpack:"mevorchim"`

	Tefilah []Tefilah `json:"tefilah" msgpack:"tefilah"`
}

// Notable reports whether the day has anything beyond an ordinary weekday
// or Shabbos.
func (o Observance) Notable() bool {
	return o.SignificantDay != None ||
		o.SignificantShabbos != NoSignificantShabbos ||
		o.RoshChodesh || o.ShabbosMevorchim ||
		o.DayOfOmer != 0 || o.DayOfChanukah != 0 ||
		o.CandleLighting
}

// Observance classifies c.
func (c Calendar) Observance(opts TefilahOptions) Observance {
	o := Observance{
		Date:        c.CivilString(),
		Absolute:    c.Absolute(),
		JewishYear:  c.JewishYear(),
		JewishMonth: c.JewishMonth(),
		JewishDay:   c.JewishDay(),
		MonthName:   c.MonthName(),
		Weekday:     c.Weekday().String(),

		SignificantDay:     c.SignificantDay(),
		SignificantShabbos: c.SignificantShabbos(),

		YomTov:                c.IsYomTov(),
		AssurBemelacha:        c.IsAssurBemelacha(),
		CandleLighting:        c.IsCandleLighting(),
		DelayedCandleLighting: c.IsDelayedCandleLighting(),
		ErevYomTov:            c.IsErevYomTov(),
		YomTovSheni:           c.IsYomTovSheni(),
		CholHamoed:            c.IsCholHamoed(),
		Taanis:                c.IsTaanis(),
		RoshChodesh:           c.IsRoshChodesh(),
		ErevRoshChodesh:       c.IsErevRoshChodesh(),
		ShabbosMevorchim:      c.IsShabbosMevorchim(),

		Tefilah: c.TefilahAdditions(opts),
	}
	if n, ok := c.DayOfChanukah(); ok {
		o.DayOfChanukah = n
	}
	if n, ok := c.DayOfOmer(); ok {
		o.DayOfOmer = n
	}
	return o
}

// YearObservances lists the notable days of a Jewish year from 1 Tishrei
// to the end of Elul.
func YearObservances(year int, opts ...Option) ([]Observance, error) {
	c, err := New(year, calendar.Tishrei, 1, opts...)
	if err != nil {
		return nil, err
	}
	return c.notableDays(c.DaysInYear(), TefilahOptions{}), nil
}

// Range lists every day from c through end inclusive.
func (c Calendar) Range(end calendar.JewishDate, opts TefilahOptions) []Observance {
	n := end.Sub(c.JewishDate) + 1
	if n <= 0 {
		return nil
	}
	out := make([]Observance, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.Observance(opts))
		c.Forward(1)
	}
	return out
}

func (c Calendar) notableDays(n int, opts TefilahOptions) []Observance {
	var out []Observance
	for i := 0; i < n; i++ {
		if o := c.Observance(opts); o.Notable() {
			out = append(out, o)
		}
		c.Forward(1)
	}
	return out
}
