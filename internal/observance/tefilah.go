package observance

import (
	"fmt"
	"time"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

// Tefilah is an insertion into the day's prayers.
type Tefilah int

const (
	YaalehVeyavo Tefilah = iota + 1
	AlHanissim
	BeginMashivHaruach
	EndMashivHaruach
	MashivHaruach
	BeginMoridHatal
	MoridHatal
	VeseinTalUmatar
	VeseinBeracha
	AtahYatzarta
	BorchiNafshi
)

var tefilahNames = [...]string{
	YaalehVeyavo:       "yaaleh_veyavo",
	AlHanissim:         "al_hanissim",
	BeginMashivHaruach: "begin_mashiv_haruach",
	EndMashivHaruach:   "end_mashiv_haruach",
	MashivHaruach:      "mashiv_haruach",
	BeginMoridHatal:    "begin_morid_hatal",
	MoridHatal:         "morid_hatal",
	VeseinTalUmatar:    "vesein_tal_umatar",
	VeseinBeracha:      "vesein_beracha",
	AtahYatzarta:       "atah_yatzarta",
	BorchiNafshi:       "borchi_nafshi",
}

func (t Tefilah) String() string {
	if t < YaalehVeyavo || int(t) >= len(tefilahNames) {
		return fmt.Sprintf("Tefilah(%d)", int(t))
	}
	return tefilahNames[t]
}

func (t Tefilah) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tefilah) UnmarshalText(text []byte) error {
	for i, n := range tefilahNames {
		if i > 0 && n == string(text) {
			*t = Tefilah(i)
			return nil
		}
	}
	return fmt.Errorf("%w: tefilah %q", calendar.ErrInvalidArgument, text)
}

// Nusach is a prayer rite.
type Nusach string

const (
	Ashkenaz Nusach = "ashkenaz"
	Sefard   Nusach = "sefard"
)

// ParseNusach accepts "ashkenaz", "sefard" or an empty string for Ashkenaz.
func ParseNusach(s string) (Nusach, error) {
	switch Nusach(s) {
	case "", Ashkenaz:
		return Ashkenaz, nil
	case Sefard:
		return Sefard, nil
	}
	return "", fmt.Errorf("%w: nusach %q", calendar.ErrInvalidArgument, s)
}

// TefilahOptions selects the community whose prayers are described.
type TefilahOptions struct {
	// WalledCity observes Shushan Purim instead of Purim.
	WalledCity bool
	Nusach     Nusach
}

// TefilahAdditions lists the day's insertions in the order they occur.
func (c Calendar) TefilahAdditions(opts TefilahOptions) []Tefilah {
	var out []Tefilah
	switch {
	case c.IsMashivHaruachStarts():
		out = append(out, BeginMashivHaruach)
	case c.IsMashivHaruachEnds():
		if opts.Nusach == Sefard {
			out = append(out, BeginMoridHatal)
		} else {
			out = append(out, EndMashivHaruach)
		}
	default:
		if c.IsMashivHaruach() {
			out = append(out, MashivHaruach)
		}
		if opts.Nusach == Sefard && c.IsMoridHatal() {
			out = append(out, MoridHatal)
		}
	}
	if c.IsVeseinBeracha() {
		out = append(out, VeseinBeracha)
	}
	if c.IsVeseinTalUmatar() {
		out = append(out, VeseinTalUmatar)
	}
	if c.Weekday() == calendar.Shabbos && c.IsRoshChodesh() {
		out = append(out, AtahYatzarta)
	}
	if c.IsYaalehVeyavo() {
		out = append(out, YaalehVeyavo)
	}
	if c.IsAlHanissim(opts.WalledCity) {
		out = append(out, AlHanissim)
	}
	if c.IsRoshChodesh() {
		out = append(out, BorchiNafshi)
	}
	return out
}

// IsMashivHaruachStarts reports whether the day is Shemini Atzeres, when
// the praise of rain is first said.
func (c Calendar) IsMashivHaruachStarts() bool {
	return c.JewishMonth() == calendar.Tishrei && c.JewishDay() == 22
}

// IsMashivHaruachEnds reports whether the day is the first day of Pesach,
// when the praise of rain is last said.
func (c Calendar) IsMashivHaruachEnds() bool {
	return c.JewishMonth() == calendar.Nissan && c.JewishDay() == 15
}

// IsMashivHaruach reports whether the praise of rain is said, from 22
// Tishrei through 15 Nissan.
func (c Calendar) IsMashivHaruach() bool {
	start := c.at(c.JewishYear(), calendar.Tishrei, 22)
	end := c.at(c.JewishYear(), calendar.Nissan, 15)
	return c.Between(start.JewishDate, end.JewishDate)
}

// IsMoridHatal reports whether the praise of dew is said. Both are said on
// the days of transition.
func (c Calendar) IsMoridHatal() bool {
	return !c.IsMashivHaruach() || c.IsMashivHaruachStarts() || c.IsMashivHaruachEnds()
}

// IsVeseinTalUmatar reports whether the request for rain is said. It is
// omitted on Shabbos and festivals.
func (c Calendar) IsVeseinTalUmatar() bool {
	if c.Weekday() == calendar.Shabbos || c.IsYomTovAssurBemelacha() {
		return false
	}
	end := c.at(c.JewishYear(), calendar.Nissan, 15)
	return c.Between(c.veseinTalUmatarStart(), end.JewishDate)
}

// IsVeseinTalUmatarStartsTonight reports whether the request for rain is
// first said at maariv tonight. When the start falls on Shabbos the first
// maariv is Motzei Shabbos, never Friday night.
func (c Calendar) IsVeseinTalUmatarStartsTonight() bool {
	if c.Weekday() == calendar.Friday {
		return false
	}
	start := c.veseinTalUmatarStart()
	return (c.Weekday() == calendar.Shabbos && c.Equal(start)) || c.Equal(start.Add(-1))
}

// IsVeseinBeracha reports whether the summer form of the blessing of the
// years is said.
func (c Calendar) IsVeseinBeracha() bool {
	if c.Weekday() == calendar.Shabbos || c.IsYomTovAssurBemelacha() {
		return false
	}
	return !c.IsVeseinTalUmatar()
}

// IsYaalehVeyavo reports whether yaaleh veyavo is said.
func (c Calendar) IsYaalehVeyavo() bool {
	return c.IsRoshChodesh() || c.IsCholHamoed() || c.IsYomTovAssurBemelacha()
}

// IsAlHanissim reports whether al hanissim is said. Walled cities say it
// on Shushan Purim instead of Purim.
func (c Calendar) IsAlHanissim(walledCity bool) bool {
	purim := Purim
	if walledCity {
		purim = ShushanPurim
	}
	sd := c.SignificantDay()
	return sd == Chanukah || sd == purim
}

// veseinTalUmatarStart is the first day on which the request for rain is
// said. In Israel that is 7 Cheshvan. Elsewhere it is the day after the
// sixtieth day of the tekufah, which falls on December 5, or December 6
// before a Gregorian leap year. The dates hold for the 20th and 21st
// centuries. The December date is always proleptic Gregorian, whatever the
// calendar's Mode.
func (c Calendar) veseinTalUmatarStart() calendar.JewishDate {
	start := c.at(c.JewishYear(), calendar.Cheshvan, 7)
	if c.InIsrael {
		return start.JewishDate
	}
	y := start.Time().Year()
	day := 5
	if calendar.GregorianLeapYear(y + 1) {
		day = 6
	}
	return start.Add(calendar.GregorianToAbsolute(y, time.December, day) - start.Absolute()).JewishDate
}
