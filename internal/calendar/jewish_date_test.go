package calendar

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertJewish(t *testing.T, d JewishDate, year int, month Month, day int) {
	t.Helper()
	assert.Equal(t, []int{year, int(month), day}, []int{d.JewishYear(), int(d.JewishMonth()), d.JewishDay()}, "jewish date")
}

func assertCivil(t *testing.T, d JewishDate, year int, month time.Month, day int) {
	t.Helper()
	assert.Equal(t, []int{year, int(month), day}, []int{d.GregorianYear(), int(d.GregorianMonth()), d.GregorianDay()}, "civil date")
}

func mustJewish(t *testing.T, year int, month Month, day int, opts ...Option) JewishDate {
	t.Helper()
	d, err := New(year, month, day, opts...)
	require.NoError(t, err)
	return d
}

func mustGregorian(t *testing.T, year int, month time.Month, day int, opts ...Option) JewishDate {
	t.Helper()
	d, err := FromGregorian(year, month, day, opts...)
	require.NoError(t, err)
	return d
}

func TestFromGregorian_Modern(t *testing.T) {
	for _, mode := range []Mode{ModeHistorical, ModeProleptic} {
		d := mustGregorian(t, 2017, time.October, 26, WithMode(mode))
		assertJewish(t, d, 5778, Cheshvan, 6)
		assert.Equal(t, 736628, d.Absolute())
		assert.Equal(t, Thursday, d.Weekday())
	}
}

func TestFromGregorian_BeforeReform(t *testing.T) {
	t.Run("proleptic", func(t *testing.T) {
		d := mustGregorian(t, 1550, time.October, 1, WithMode(ModeProleptic))
		assertJewish(t, d, 5311, Tishrei, 11)
		assertCivil(t, d, 1550, time.October, 1)
	})
	t.Run("historical reads julian", func(t *testing.T) {
		d := mustGregorian(t, 1550, time.October, 1)
		assert.Equal(t, 566044, d.Absolute())
		assertJewish(t, d, 5311, Tishrei, 21)
		assertCivil(t, d, 1550, time.October, 1)

		y, m, day := d.Time().Date()
		assert.Equal(t, []int{1550, 10, 11}, []int{y, int(m), day})
	})
}

func TestFromGregorian_BCE(t *testing.T) {
	d := mustGregorian(t, -100, time.May, 5, WithMode(ModeProleptic))
	assertJewish(t, d, 3660, Iyar, 19)
	assert.Equal(t, "-0100-05-05", d.CivilString())

	j := mustGregorian(t, -100, time.May, 5)
	assertJewish(t, j, 3660, Iyar, 17)
	assert.Equal(t, 2, d.Sub(j))
}

func TestFromGregorian_ReformGap(t *testing.T) {
	for day := 5; day <= 14; day++ {
		_, err := FromGregorian(1582, time.October, day)
		assert.ErrorIs(t, err, ErrInvalidArgument, "1582-10-%02d", day)
	}

	last := mustGregorian(t, 1582, time.October, 4)
	first := mustGregorian(t, 1582, time.October, 15)
	assert.Equal(t, 1, first.Sub(last))
	assert.Equal(t, GregorianReform, first.Absolute())

	// the same days exist in proleptic mode
	_, err := FromGregorian(1582, time.October, 10, WithMode(ModeProleptic))
	assert.NoError(t, err)
}

func TestFromJewish(t *testing.T) {
	d := mustJewish(t, 5778, Tishrei, 1)
	assertCivil(t, d, 2017, time.September, 21)

	d = mustJewish(t, 5311, Tishrei, 11, WithMode(ModeProleptic))
	assertCivil(t, d, 1550, time.October, 1)

	d = mustJewish(t, 3660, Iyar, 19, WithMode(ModeProleptic))
	assertCivil(t, d, -100, time.May, 5)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name                  string
		year                  int
		month                 Month
		day, hours, mins, chl int
	}{
		{"year zero", 0, Nissan, 1, 0, 0, 0},
		{"year past max", MaxJewishYear + 1, Tishrei, 1, 0, 0, 0},
		{"huge year", 1_000_000_000_000_000, Tishrei, 1, 0, 0, 0},
		{"month zero", 5778, 0, 1, 0, 0, 0},
		{"month fourteen", 5778, 14, 1, 0, 0, 0},
		{"day zero", 5778, Nissan, 0, 0, 0, 0},
		{"day thirty one", 5778, Nissan, 31, 0, 0, 0},
		{"hours", 5778, Nissan, 1, 24, 0, 0},
		{"negative minutes", 5778, Nissan, 1, 0, -1, 0},
		{"minutes", 5778, Nissan, 1, 0, 60, 0},
		{"chalakim", 5778, Nissan, 1, 0, 0, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWithMolad(tt.year, tt.month, tt.day, tt.hours, tt.mins, tt.chl)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestSetJewishDate_Clamps(t *testing.T) {
	d := mustJewish(t, 5778, Tishrei, 1)

	require.NoError(t, d.SetJewishDate(5778, AdarII, 5))
	assertJewish(t, d, 5778, Adar, 5)

	require.NoError(t, d.SetJewishDate(5778, Cheshvan, 30))
	assertJewish(t, d, 5778, Cheshvan, 29)

	require.NoError(t, d.SetJewishDate(5778, Adar, 30))
	assertJewish(t, d, 5778, Adar, 29)
}

func TestSetJewishDate_FailureLeavesDate(t *testing.T) {
	d := mustJewish(t, 5778, Tishrei, 1)
	before := d
	assert.Error(t, d.SetJewishDate(5778, Nissan, 31))
	assert.Equal(t, before, d)
}

func TestJewishYearRange(t *testing.T) {
	first := mustJewish(t, 1, Tishrei, 1)
	assert.Equal(t, YearStart(1), first.Absolute())
	_, err := FromAbsolute(first.Absolute() - 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// before 1 Tishrei of year 1
	_, err = FromGregorian(-3760, time.January, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = FromGregorian(-3760, time.January, 1, WithMode(ModeProleptic))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	last := mustJewish(t, MaxJewishYear, Elul, 29)
	assert.Equal(t, YearStart(MaxJewishYear+1)-1, last.Absolute())
	got, err := FromAbsolute(last.Absolute())
	require.NoError(t, err)
	assertJewish(t, got, MaxJewishYear, Elul, 29)

	_, err = FromAbsolute(last.Absolute() + 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = FromGregorian(MaxJewishYear+1, time.January, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = FromTime(time.Date(MaxJewishYear, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	d := mustJewish(t, 5778, Tishrei, 1)
	before := d
	assert.ErrorIs(t, d.SetAbsolute(last.Absolute()+1), ErrInvalidArgument)
	assert.Equal(t, before, d)

	assert.NoError(t, CheckJewishYear(1))
	assert.NoError(t, CheckJewishYear(MaxJewishYear))
	assert.ErrorIs(t, CheckJewishYear(0), ErrInvalidArgument)
	assert.ErrorIs(t, CheckJewishYear(MaxJewishYear+1), ErrInvalidArgument)
}

func TestSetGregorianDate(t *testing.T) {
	d := mustJewish(t, 5778, Tishrei, 1)

	assert.ErrorIs(t, d.SetGregorianDate(2000, 13, 5), ErrInvalidArgument)
	assert.ErrorIs(t, d.SetGregorianDate(2000, 11, 50), ErrInvalidArgument)
	assert.ErrorIs(t, d.SetGregorianDate(-3761, 11, 5), ErrInvalidArgument)

	require.NoError(t, d.SetGregorianDate(2000, time.November, 31))
	assert.Equal(t, 30, d.GregorianDay())

	require.NoError(t, d.SetGregorianDate(2001, time.February, 29))
	assert.Equal(t, 28, d.GregorianDay())

	// 1500 is a Julian leap year
	require.NoError(t, d.SetGregorianDate(1500, time.February, 29))
	assert.Equal(t, 29, d.GregorianDay())
}

func TestGregorianFieldSetters(t *testing.T) {
	base := mustGregorian(t, 2017, time.June, 7)
	assertJewish(t, base, 5777, Sivan, 13)

	d := base
	require.NoError(t, d.SetGregorianYear(2016))
	assertJewish(t, d, 5776, Sivan, 1)

	d = base
	require.NoError(t, d.SetGregorianMonth(time.October))
	assertJewish(t, d, 5778, Tishrei, 17)

	d = base
	require.NoError(t, d.SetGregorianDay(30))
	assertJewish(t, d, 5777, Tammuz, 6)
}

func TestJewishFieldSetters(t *testing.T) {
	base := mustJewish(t, 5777, Sivan, 13)

	d := base
	require.NoError(t, d.SetJewishYear(5776))
	assertJewish(t, d, 5776, Sivan, 13)
	assertCivil(t, d, 2016, time.June, 19)

	d = base
	require.NoError(t, d.SetJewishMonth(Tishrei))
	assertJewish(t, d, 5777, Tishrei, 13)
	assertCivil(t, d, 2016, time.October, 15)

	d = base
	require.NoError(t, d.SetJewishDay(6))
	assertJewish(t, d, 5777, Sivan, 6)
	assertCivil(t, d, 2017, time.May, 31)
}

func TestLeapAdar(t *testing.T) {
	adar1 := mustJewish(t, 5776, Adar, 5)
	adar2 := mustJewish(t, 5776, AdarII, 5)
	assert.False(t, adar1.Equal(adar2))
	assert.Equal(t, 30, adar2.Sub(adar1))
	assert.Equal(t, "Adar I", adar1.MonthName())
	assert.Equal(t, "Adar II", adar2.MonthName())
}

func TestFromMolad(t *testing.T) {
	tests := []struct {
		name     string
		chalakim int64
		civil    [3]int
		jewish   [3]int
		molad    [3]int
	}{
		{"before midnight", 54700170003, [3]int{2018, 8, 11}, [3]int{5778, 5, 30}, [3]int{19, 33, 9}},
		{"after midnight", 54692515673, [3]int{2017, 10, 20}, [3]int{5778, 7, 30}, [3]int{12, 12, 17}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromMolad(tt.chalakim)
			assertCivil(t, d, tt.civil[0], time.Month(tt.civil[1]), tt.civil[2])
			assertJewish(t, d, tt.jewish[0], Month(tt.jewish[1]), tt.jewish[2])
			assert.Equal(t, tt.molad, [3]int{d.MoladHours(), d.MoladMinutes(), d.MoladChalakim()})
		})
	}
}

func TestMolad(t *testing.T) {
	d := mustJewish(t, 5778, Av, 15)
	m := d.Molad()
	assertJewish(t, m, 5778, Av, 1)
	assert.Equal(t, [3]int{6, 49, 8}, [3]int{m.MoladHours(), m.MoladMinutes(), m.MoladChalakim()})

	m = MoladFor(5778, Av)
	assertJewish(t, m, 5778, Av, 1)
}

func TestMolad_ResetOnMutation(t *testing.T) {
	d := FromMolad(54692515673)
	require.NoError(t, d.SetGregorianDate(2017, time.October, 26))
	assert.Zero(t, d.MoladHours())
	assert.Zero(t, d.MoladMinutes())
	assert.Zero(t, d.MoladChalakim())

	d, err := NewWithMolad(5778, Tishrei, 1, 4, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, [3]int{4, 5, 6}, [3]int{d.MoladHours(), d.MoladMinutes(), d.MoladChalakim()})
	d.Forward(1)
	assert.Zero(t, d.MoladHours())
}

func TestForwardBack_Small(t *testing.T) {
	d := mustGregorian(t, 2017, time.October, 26)
	d.Forward(1)
	assertCivil(t, d, 2017, time.October, 27)
	assertJewish(t, d, 5778, Cheshvan, 7)
	assert.Equal(t, Friday, d.Weekday())

	d.Back(2)
	assertCivil(t, d, 2017, time.October, 25)
	assert.Equal(t, Wednesday, d.Weekday())

	// across Elul into Tishrei
	d = mustJewish(t, 5777, Elul, 28)
	d.Forward(3)
	assertJewish(t, d, 5778, Tishrei, 2)
	d.Back(3)
	assertJewish(t, d, 5777, Elul, 28)

	// across Adar II into Nissan
	d = mustJewish(t, 5776, AdarII, 29)
	d.Forward(1)
	assertJewish(t, d, 5776, Nissan, 1)
	d.Back(1)
	assertJewish(t, d, 5776, AdarII, 29)
}

func TestForwardBack_Consistency(t *testing.T) {
	rng := rand.New(rand.NewSource(5778))
	for i := 0; i < 400; i++ {
		abs := GregorianToAbsolute(-3000, 1, 1) + rng.Intn(2_500_000)
		n := rng.Intn(1400) - 700
		d, err := FromAbsolute(abs, WithMode(ModeProleptic))
		require.NoError(t, err)

		moved := d
		moved.Forward(n)
		want, err := FromAbsolute(abs+n, WithMode(ModeProleptic))
		require.NoError(t, err)
		require.Equal(t, want, moved, "abs %d forward %d", abs, n)
		assert.Equal(t, Weekday(floorMod(int(d.Weekday())-1+n, 7)+1), moved.Weekday())
		assert.Equal(t, WeekdayOf(moved.Absolute()), moved.Weekday())

		moved.Back(n)
		require.Equal(t, d, moved, "abs %d back %d", abs, n)

		assert.Equal(t, want, d.Add(n))
		assert.Equal(t, n, d.Add(n).Sub(d))
	}
}

func TestGregorian_RoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeProleptic, ModeHistorical} {
		for _, year := range []int{-3760, -100, 0, 1, 1500, 1582, 1583, 2000, 2017, 2100} {
			for m := time.January; m <= time.December; m++ {
				for day := 1; day <= daysInCivilMonth(mode, year, m); day++ {
					d, err := FromGregorian(year, m, day, WithMode(mode))
					if mode == ModeHistorical && year == 1582 && m == time.October && day >= 5 && day <= 14 {
						require.Error(t, err)
						continue
					}
					if abs, _ := civilToAbsolute(mode, year, m, day); abs < YearStart(1) {
						require.ErrorIs(t, err, ErrInvalidArgument)
						continue
					}
					require.NoError(t, err)
					y, mm, dd := d.GregorianYear(), d.GregorianMonth(), d.GregorianDay()
					if y != year || mm != m || dd != day {
						t.Fatalf("%s round trip %d-%02d-%02d gave %d-%02d-%02d", mode, year, m, day, y, mm, dd)
					}
					back := mustJewish(t, d.JewishYear(), d.JewishMonth(), d.JewishDay(), WithMode(mode))
					require.Equal(t, d.Absolute(), back.Absolute())
				}
			}
		}
	}
}

func TestCompare(t *testing.T) {
	a := mustJewish(t, 5778, Nissan, 14)
	b := mustJewish(t, 5778, Nissan, 15)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Between(a, b))
	assert.False(t, b.Add(1).Between(a, b))
}

func TestEndOfWeek(t *testing.T) {
	d := mustGregorian(t, 2018, time.September, 13) // Thursday
	assertCivil(t, d.EndOfWeek(), 2018, time.September, 15)

	d = mustGregorian(t, 2018, time.September, 15) // Shabbos
	assertCivil(t, d.EndOfWeek(), 2018, time.September, 15)
}

func TestFromTime(t *testing.T) {
	loc := time.FixedZone("IST", 2*60*60)
	d, err := FromTime(time.Date(2017, time.October, 26, 23, 30, 0, 0, loc))
	require.NoError(t, err)
	assertJewish(t, d, 5778, Cheshvan, 6)
	assert.True(t, d.Time().Equal(time.Date(2017, time.October, 26, 0, 0, 0, 0, time.UTC)))
}
