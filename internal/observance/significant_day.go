package observance

import (
	"fmt"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

// SignificantDay identifies a holiday, fast or commemoration. None marks an
// ordinary day.
type SignificantDay int

const (
	None SignificantDay = iota
	ErevRoshHashana
	RoshHashana
	TzomGedalyah
	ErevYomKippur
	YomKippur
	ErevSuccos
	Succos
	CholHamoedSuccos
	HoshanaRabbah
	SheminiAtzeres
	SimchasTorah
	Chanukah
	TenthOfTeves
	TuBeshvat
	TaanisEsther
	Purim
	ShushanPurim
	PurimKatan
	ShushanPurimKatan
	ErevPesach
	Pesach
	CholHamoedPesach
	PesachSheni
	ErevShavuos
	Shavuos
	SeventeenOfTammuz
	TishaBeav
	TuBeav
	YomHashoah
	YomHazikaron
	YomHaatzmaut
	YomYerushalayim
)

var significantDayNames = [...]string{
	None:              "none",
	ErevRoshHashana:   "erev_rosh_hashana",
	RoshHashana:       "rosh_hashana",
	TzomGedalyah:      "tzom_gedalyah",
	ErevYomKippur:     "erev_yom_kippur",
	YomKippur:         "yom_kippur",
	ErevSuccos:        "erev_succos",
	Succos:            "succos",
	CholHamoedSuccos:  "chol_hamoed_succos",
	HoshanaRabbah:     "hoshana_rabbah",
	SheminiAtzeres:    "shemini_atzeres",
	SimchasTorah:      "simchas_torah",
	Chanukah:          "chanukah",
	TenthOfTeves:      "tenth_of_teves",
	TuBeshvat:         "tu_beshvat",
	TaanisEsther:      "taanis_esther",
	Purim:             "purim",
	ShushanPurim:      "shushan_purim",
	PurimKatan:        "purim_katan",
	ShushanPurimKatan: "shushan_purim_katan",
	ErevPesach:        "erev_pesach",
	Pesach:            "pesach",
	CholHamoedPesach:  "chol_hamoed_pesach",
	PesachSheni:       "pesach_sheni",
	ErevShavuos:       "erev_shavuos",
	Shavuos:           "shavuos",
	SeventeenOfTammuz: "seventeen_of_tammuz",
	TishaBeav:         "tisha_beav",
	TuBeav:            "tu_beav",
	YomHashoah:        "yom_hashoah",
	YomHazikaron:      "yom_hazikaron",
	YomHaatzmaut:      "yom_haatzmaut",
	YomYerushalayim:   "yom_yerushalayim",
}

func (s SignificantDay) String() string {
	if s < None || int(s) >= len(significantDayNames) {
		return fmt.Sprintf("SignificantDay(%d)", int(s))
	}
	return significantDayNames[s]
}

// MarshalText encodes the day by name so JSON output is readable.
func (s SignificantDay) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (s *SignificantDay) UnmarshalText(text []byte) error {
	v, err := ParseSignificantDay(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSignificantDay looks up a significant day by its snake_case name.
func ParseSignificantDay(name string) (SignificantDay, error) {
	for i, n := range significantDayNames {
		if n == name {
			return SignificantDay(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// IsErev reports whether s is the eve of a festival.
func (s SignificantDay) IsErev() bool {
	switch s {
	case ErevRoshHashana, ErevYomKippur, ErevSuccos, ErevPesach, ErevShavuos:
		return true
	}
	return false
}

// IsCholHamoed reports whether s is one of the intermediate festival days.
func (s SignificantDay) IsCholHamoed() bool {
	return s == CholHamoedSuccos || s == CholHamoedPesach
}

// IsTaanis reports whether s is a fast day.
func (s SignificantDay) IsTaanis() bool {
	switch s {
	case SeventeenOfTammuz, TishaBeav, TzomGedalyah, YomKippur, TenthOfTeves, TaanisEsther:
		return true
	}
	return false
}

// IsAssurBemelacha reports whether work is forbidden on s.
func (s SignificantDay) IsAssurBemelacha() bool {
	switch s {
	case Pesach, Shavuos, RoshHashana, YomKippur, Succos, SheminiAtzeres, SimchasTorah:
		return true
	}
	return false
}

// IsModern reports whether s is one of the post-1948 commemorations.
func (s SignificantDay) IsModern() bool {
	switch s {
	case YomHashoah, YomHazikaron, YomHaatzmaut, YomYerushalayim:
		return true
	}
	return false
}

// SignificantDay classifies the current date.
func (c Calendar) SignificantDay() SignificantDay {
	day := c.JewishDay()
	dow := c.Weekday()

	switch c.JewishMonth() {
	case calendar.Nissan:
		return c.nissanDay(day, dow)
	case calendar.Iyar:
		return c.iyarDay(day, dow)
	case calendar.Sivan:
		switch {
		case day == 5:
			return ErevShavuos
		case day == 6 || (day == 7 && !c.InIsrael):
			return Shavuos
		}
	case calendar.Tammuz:
		if deferredFast(day, 17, dow) {
			return SeventeenOfTammuz
		}
	case calendar.Av:
		switch {
		case deferredFast(day, 9, dow):
			return TishaBeav
		case day == 15:
			return TuBeav
		}
	case calendar.Elul:
		if day == 29 {
			return ErevRoshHashana
		}
	case calendar.Tishrei:
		return c.tishreiDay(day, dow)
	case calendar.Cheshvan:
		return None
	case calendar.Kislev:
		if day >= 25 {
			return Chanukah
		}
	case calendar.Teves:
		switch {
		case day == 1 || day == 2 || (day == 3 && c.KislevShort()):
			return Chanukah
		case day == 10:
			return TenthOfTeves
		}
	case calendar.Shevat:
		if day == 15 {
			return TuBeshvat
		}
	case calendar.Adar:
		if !c.IsLeapYear() {
			return purimDay(day, dow)
		}
		switch day {
		case 14:
			return PurimKatan
		case 15:
			return ShushanPurimKatan
		}
	case calendar.AdarII:
		return purimDay(day, dow)
	}
	return None
}

// deferredFast reports whether day is a fast that falls on nominal, or on
// the Sunday after when nominal is Shabbos.
func deferredFast(day, nominal int, dow calendar.Weekday) bool {
	return (day == nominal && dow != calendar.Shabbos) ||
		(day == nominal+1 && dow == calendar.Sunday)
}

func (c Calendar) nissanDay(day int, dow calendar.Weekday) SignificantDay {
	switch {
	case day == 14:
		return ErevPesach
	case day == 15 || day == 21 || (!c.InIsrael && (day == 16 || day == 22)):
		return Pesach
	case day >= 16 && day <= 20:
		return CholHamoedPesach
	case !c.UseModernHolidays:
		return None
	case (day == 26 && dow == calendar.Thursday) ||
		(day == 27 && dow != calendar.Sunday && dow != calendar.Friday) ||
		(day == 28 && dow == calendar.Monday):
		return YomHashoah
	}
	return None
}

// iyarDay follows the rules for the modern commemorations as revised in
// 5764; earlier years may not match what was observed at the time.
func (c Calendar) iyarDay(day int, dow calendar.Weekday) SignificantDay {
	switch {
	case day == 14:
		return PesachSheni
	case !c.UseModernHolidays:
		return None
	case ((day == 2 || day == 3) && dow == calendar.Wednesday) ||
		(day == 4 && dow == calendar.Tuesday) ||
		(day == 5 && dow == calendar.Monday):
		return YomHazikaron
	case ((day == 3 || day == 4) && dow == calendar.Thursday) ||
		(day == 5 && dow == calendar.Wednesday) ||
		(day == 6 && dow == calendar.Tuesday):
		return YomHaatzmaut
	case day == 28:
		return YomYerushalayim
	}
	return None
}

func (c Calendar) tishreiDay(day int, dow calendar.Weekday) SignificantDay {
	switch {
	case day == 1 || day == 2:
		return RoshHashana
	case deferredFast(day, 3, dow):
		return TzomGedalyah
	case day == 9:
		return ErevYomKippur
	case day == 10:
		return YomKippur
	case day == 14:
		return ErevSuccos
	case day == 15 || (day == 16 && !c.InIsrael):
		return Succos
	case day >= 16 && day <= 20:
		return CholHamoedSuccos
	case day == 21:
		return HoshanaRabbah
	case day == 22:
		return SheminiAtzeres
	case day == 23 && !c.InIsrael:
		return SimchasTorah
	}
	return None
}

// purimDay classifies the Adar that holds Purim. Taanis Esther moves back to
// Thursday when the 13th is Shabbos.
func purimDay(day int, dow calendar.Weekday) SignificantDay {
	switch {
	case (day == 13 && dow != calendar.Shabbos) || (day == 11 && dow == calendar.Thursday):
		return TaanisEsther
	case day == 14:
		return Purim
	case day == 15:
		return ShushanPurim
	}
	return None
}
