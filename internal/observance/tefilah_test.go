package observance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

func additionsOn(t *testing.T, month calendar.Month, day int, opts TefilahOptions) []Tefilah {
	t.Helper()
	c, err := New(standardMondayChaseir, month, day)
	require.NoError(t, err)
	return c.TefilahAdditions(opts)
}

func TestTefilahAdditions(t *testing.T) {
	ashkenaz := TefilahOptions{}
	sefard := TefilahOptions{Nusach: Sefard}
	walled := TefilahOptions{WalledCity: true}

	tests := []struct {
		name     string
		month    calendar.Month
		day      int
		opts     TefilahOptions
		includes []Tefilah
		excludes []Tefilah
	}{
		{"regular day", calendar.Iyar, 5, ashkenaz, nil, []Tefilah{AtahYatzarta, YaalehVeyavo, AlHanissim, BorchiNafshi}},
		{"chol hamoed", calendar.Tishrei, 17, ashkenaz, []Tefilah{YaalehVeyavo}, nil},
		{"regular shabbos", calendar.Nissan, 5, ashkenaz, nil, []Tefilah{AtahYatzarta}},
		{"rosh chodesh", calendar.Nissan, 1, ashkenaz, []Tefilah{BorchiNafshi}, []Tefilah{AtahYatzarta}},
		{"rosh chodesh on shabbos", calendar.Shevat, 1, ashkenaz, []Tefilah{AtahYatzarta, BorchiNafshi}, nil},
		{"purim", calendar.Adar, 14, ashkenaz, []Tefilah{AlHanissim}, nil},
		{"shushan purim", calendar.Adar, 15, ashkenaz, nil, []Tefilah{AlHanissim}},
		{"walled city shushan purim", calendar.Adar, 15, walled, []Tefilah{AlHanissim}, nil},
		{"walled city purim", calendar.Adar, 14, walled, nil, []Tefilah{AlHanissim}},

		{"ashkenaz summer", calendar.Iyar, 5, ashkenaz, []Tefilah{VeseinBeracha}, []Tefilah{MashivHaruach, MoridHatal, VeseinTalUmatar}},
		{"ashkenaz winter", calendar.Teves, 5, ashkenaz, []Tefilah{MashivHaruach, VeseinTalUmatar}, []Tefilah{MoridHatal, VeseinBeracha}},
		{"ashkenaz start of winter", calendar.Tishrei, 22, ashkenaz, []Tefilah{BeginMashivHaruach}, []Tefilah{MashivHaruach, MoridHatal}},
		{"ashkenaz end of winter", calendar.Nissan, 15, ashkenaz, []Tefilah{EndMashivHaruach}, []Tefilah{BeginMoridHatal, MashivHaruach, MoridHatal}},

		{"sefard summer", calendar.Iyar, 5, sefard, []Tefilah{MoridHatal, VeseinBeracha}, []Tefilah{MashivHaruach, VeseinTalUmatar}},
		{"sefard winter", calendar.Teves, 5, sefard, []Tefilah{MashivHaruach, VeseinTalUmatar}, []Tefilah{MoridHatal, VeseinBeracha}},
		{"sefard start of winter", calendar.Tishrei, 22, sefard, []Tefilah{BeginMashivHaruach}, []Tefilah{MashivHaruach, MoridHatal}},
		{"sefard end of winter", calendar.Nissan, 15, sefard, []Tefilah{BeginMoridHatal}, []Tefilah{EndMashivHaruach, MashivHaruach, MoridHatal}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := additionsOn(t, tt.month, tt.day, tt.opts)
			for _, want := range tt.includes {
				assert.Contains(t, got, want)
			}
			for _, not := range tt.excludes {
				assert.NotContains(t, got, not)
			}
		})
	}
}

func TestTefilahAdditions_Order(t *testing.T) {
	// Rosh Chodesh Shevat 5777 is Shabbos
	got := additionsOn(t, calendar.Shevat, 1, TefilahOptions{})
	assert.Equal(t, []Tefilah{MashivHaruach, AtahYatzarta, YaalehVeyavo, BorchiNafshi}, got)
}

func TestRoshChodeshShabbos(t *testing.T) {
	c, err := New(standardMondayChaseir, calendar.Nissan, 5)
	require.NoError(t, err)
	assert.Equal(t, calendar.Shabbos, c.Weekday())

	c, err = New(standardMondayChaseir, calendar.Nissan, 1)
	require.NoError(t, err)
	assert.NotEqual(t, calendar.Shabbos, c.Weekday())
}

func TestMashivHaruach(t *testing.T) {
	assert.Equal(t, []string{"7-22"}, daysMatching(t, standardMondayChaseir, Calendar.IsMashivHaruachStarts))
	assert.Equal(t, []string{"1-15"}, daysMatching(t, standardMondayChaseir, Calendar.IsMashivHaruachEnds))

	got := daysMatching(t, standardMondayChaseir, Calendar.IsMashivHaruach)
	assert.Subset(t, got, []string{"7-22", "7-23", "1-14", "1-15", "11-25", "1-5"})
	for _, d := range []string{"7-21", "1-16", "3-7"} {
		assert.NotContains(t, got, d)
	}

	got = daysMatching(t, standardMondayChaseir, Calendar.IsMoridHatal)
	assert.Subset(t, got, []string{"7-21", "7-22", "1-15", "1-16", "3-7", "7-6"})
	for _, d := range []string{"7-23", "1-14", "11-25"} {
		assert.NotContains(t, got, d)
	}
}

func TestVeseinTalUmatar(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		opts     []Option
		includes []string
		excludes []string
	}{
		// 9-5 is December 5; 1-5 is Shabbos
		{"outside israel", 5777, nil, []string{"9-5", "11-25", "1-13", "1-14"}, []string{"9-4", "1-17", "3-8", "1-5"}},
		// 9-10 is December 6
		{"before a gregorian leap year", 5772, nil, []string{"9-10", "11-24", "1-13", "1-14"}, []string{"9-9", "1-17", "3-8"}},
		{"in israel", 5777, []Option{WithInIsrael(true)}, []string{"8-7", "11-25", "1-13", "1-14"}, []string{"8-6", "1-16", "3-8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := daysMatching(t, tt.year, Calendar.IsVeseinTalUmatar, tt.opts...)
			assert.Subset(t, got, tt.includes)
			for _, d := range tt.excludes {
				assert.NotContains(t, got, d)
			}
		})
	}
}

func TestVeseinTalUmatarStartsTonight(t *testing.T) {
	tests := []struct {
		name string
		year int
		opts []Option
		want []string
	}{
		{"december 4 midweek", 5779, nil, []string{"9-26"}},
		{"december 4 on friday", 5770, nil, []string{"9-18"}},
		{"december 5 midweek before a leap year", 5776, nil, []string{"9-23"}},
		{"december 5 on friday before a leap year", 5764, nil, []string{"9-11"}},
		{"in israel", 5777, []Option{WithInIsrael(true)}, []string{"8-6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daysMatching(t, tt.year, Calendar.IsVeseinTalUmatarStartsTonight, tt.opts...))
		})
	}
}

func TestVeseinTalUmatarStartsTonight_FridayDefers(t *testing.T) {
	// December 4 2009 was a Friday; the request starts Motzei Shabbos
	friday, err := FromGregorian(2009, 12, 4)
	require.NoError(t, err)
	require.Equal(t, calendar.Friday, friday.Weekday())
	assert.False(t, friday.IsVeseinTalUmatarStartsTonight())

	shabbos := friday.Add(1)
	assert.True(t, shabbos.IsVeseinTalUmatarStartsTonight())
	assert.False(t, shabbos.IsVeseinTalUmatar())
	assert.True(t, shabbos.Add(1).IsVeseinTalUmatar())
}

func TestVeseinBeracha(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		opts     []Option
		includes []string
		excludes []string
	}{
		{"outside israel", 5777, nil, []string{"9-4", "1-17", "3-8", "7-7"}, []string{"9-5", "11-25", "1-13", "1-14", "7-6"}},
		{"before a gregorian leap year", 5772, nil, []string{"9-9", "1-17", "3-8"}, []string{"9-10", "11-24", "1-13", "1-14"}},
		{"in israel", 5777, []Option{WithInIsrael(true)}, []string{"8-6", "1-16", "3-7"}, []string{"8-7", "11-24", "1-13", "1-14"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := daysMatching(t, tt.year, Calendar.IsVeseinBeracha, tt.opts...)
			assert.Subset(t, got, tt.includes)
			for _, d := range tt.excludes {
				assert.NotContains(t, got, d)
			}
		})
	}
}

func TestYaalehVeyavo(t *testing.T) {
	assert.Equal(t, []string{"7-1", "7-2", "7-10", "7-15", "7-16", "7-17", "7-18", "7-19", "7-20", "7-21", "7-22", "7-23", "7-30",
		"8-1", "9-1", "10-1", "11-1", "11-30", "12-1", "1-1",
		"1-15", "1-16", "1-17", "1-18", "1-19", "1-20", "1-21", "1-22", "1-30", "2-1", "3-1",
		"3-6", "3-7", "3-30", "4-1", "5-1", "5-30", "6-1"},
		daysMatching(t, standardMondayChaseir, Calendar.IsYaalehVeyavo))

	assert.Equal(t, []string{"7-1", "7-2", "7-10", "7-15", "7-16", "7-17", "7-18", "7-19", "7-20", "7-21", "7-22", "7-30",
		"8-1", "9-1", "10-1", "11-1", "11-30", "12-1", "1-1",
		"1-15", "1-16", "1-17", "1-18", "1-19", "1-20", "1-21", "1-30", "2-1", "3-1",
		"3-6", "3-30", "4-1", "5-1", "5-30", "6-1"},
		daysMatching(t, standardMondayChaseir, Calendar.IsYaalehVeyavo, WithInIsrael(true)))
}

func TestAlHanissim(t *testing.T) {
	got := daysMatching(t, standardMondayChaseir, func(c Calendar) bool { return c.IsAlHanissim(false) })
	assert.Equal(t, append(append([]string(nil), chanukahForChaseir...), "12-14"), got)

	got = daysMatching(t, standardMondayChaseir, func(c Calendar) bool { return c.IsAlHanissim(true) })
	assert.Equal(t, append(append([]string(nil), chanukahForChaseir...), "12-15"), got)
}

func TestTefilah_Text(t *testing.T) {
	assert.Equal(t, "vesein_tal_umatar", VeseinTalUmatar.String())

	var tf Tefilah
	require.NoError(t, tf.UnmarshalText([]byte("borchi_nafshi")))
	assert.Equal(t, BorchiNafshi, tf)
	assert.ErrorIs(t, tf.UnmarshalText([]byte("hallel")), calendar.ErrInvalidArgument)

	n, err := ParseNusach("")
	require.NoError(t, err)
	assert.Equal(t, Ashkenaz, n)
	_, err = ParseNusach("teimani")
	assert.ErrorIs(t, err, calendar.ErrInvalidArgument)
}

func TestVeseinTalUmatar_ProlepticAnchor(t *testing.T) {
	// December 6 1539 proleptic Gregorian is 15 Kislev 5300, ten days
	// before December 6 Julian.
	for _, mode := range []calendar.Mode{calendar.ModeHistorical, calendar.ModeProleptic} {
		c := mustCalendar(t, 5300, calendar.Tishrei, 1, WithMode(mode))
		start := c.veseinTalUmatarStart()
		assert.Equal(t, 562082, start.Absolute(), mode.String())
		assert.Equal(t, calendar.Kislev, start.JewishMonth())
		assert.Equal(t, 15, start.JewishDay())
	}

	historical := daysMatching(t, 5300, Calendar.IsVeseinTalUmatar, WithMode(calendar.ModeHistorical))
	proleptic := daysMatching(t, 5300, Calendar.IsVeseinTalUmatar, WithMode(calendar.ModeProleptic))
	assert.Equal(t, proleptic, historical)
	assert.Contains(t, historical, "9-15")
	assert.NotContains(t, historical, "9-14")
}
