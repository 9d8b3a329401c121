package observance

import (
	"fmt"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

// SignificantShabbos identifies a Shabbos with a special name or reading.
type SignificantShabbos int

const (
	NoSignificantShabbos SignificantShabbos = iota
	ParshasShekalim
	ParshasZachor
	ParshasParah
	ParshasHachodesh
	ShabbosHagadol
	ShabbosShuva
)

var significantShabbosNames = [...]string{
	NoSignificantShabbos: "none",
	ParshasShekalim:      "parshas_shekalim",
	ParshasZachor:        "parshas_zachor",
	ParshasParah:         "parshas_parah",
	ParshasHachodesh:     "parshas_hachodesh",
	ShabbosHagadol:       "shabbos_hagadol",
	ShabbosShuva:         "shabbos_shuva",
}

func (s SignificantShabbos) String() string {
	if s < NoSignificantShabbos || int(s) >= len(significantShabbosNames) {
		return fmt.Sprintf("SignificantShabbos(%d)", int(s))
	}
	return significantShabbosNames[s]
}

func (s SignificantShabbos) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SignificantShabbos) UnmarshalText(text []byte) error {
	for i, n := range significantShabbosNames {
		if n == string(text) {
			*s = SignificantShabbos(i)
			return nil
		}
	}
	return fmt.Errorf("%w: significant shabbos %q", calendar.ErrInvalidArgument, text)
}

// SignificantShabbos classifies a Shabbos. Shekalim is read on the Shabbos
// on or before Rosh Chodesh of the last Adar.
func (c Calendar) SignificantShabbos() SignificantShabbos {
	if c.Weekday() != calendar.Shabbos {
		return NoSignificantShabbos
	}
	day := c.JewishDay()
	month := int(c.JewishMonth())
	last := c.MonthsInYear()

	switch {
	case month == int(calendar.Nissan):
		switch {
		case day == 1:
			return ParshasHachodesh
		case day >= 8 && day <= 14:
			return ShabbosHagadol
		}
	case month == int(calendar.Tishrei):
		if day >= 3 && day <= 9 {
			return ShabbosShuva
		}
	case month == last-1:
		if day >= 25 && day <= 30 {
			return ParshasShekalim
		}
	case month == last:
		switch {
		case day == 1:
			return ParshasShekalim
		case day >= 7 && day <= 13:
			return ParshasZachor
		case day >= 17 && day <= 23:
			return ParshasParah
		case day >= 24 && day <= 29:
			return ParshasHachodesh
		}
	}
	return NoSignificantShabbos
}
