package observance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignificantShabbos_5778(t *testing.T) {
	tests := []struct {
		date string
		want SignificantShabbos
	}{
		{"2017-09-23", ShabbosShuva},
		{"2017-09-30", NoSignificantShabbos},
		{"2018-02-10", ParshasShekalim},
		{"2018-02-24", ParshasZachor},
		{"2018-03-03", NoSignificantShabbos},
		{"2018-03-10", ParshasParah},
		{"2018-03-17", ParshasHachodesh},
		{"2018-03-24", ShabbosHagadol},
		{"2018-03-22", NoSignificantShabbos}, // a Thursday
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse(time.DateOnly, tt.date)
			require.NoError(t, err)
			c, err := FromGregorian(d.Year(), d.Month(), d.Day())
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.SignificantShabbos())
		})
	}
}

func TestSignificantShabbos_OncePerYear(t *testing.T) {
	years := []int{
		standardMondayChaseir, standardTuesdayKesidran, standardThursdayShaleim,
		standardShabbosChaseir, leapMondayShaleim, leapTuesdayKesidran,
		leapThursdayChaseir, leapShabbosShaleim,
	}
	for _, year := range years {
		counts := make(map[SignificantShabbos]int)
		walkYear(t, year, nil, func(c Calendar) {
			if s := c.SignificantShabbos(); s != NoSignificantShabbos {
				counts[s]++
			}
		})
		for _, s := range []SignificantShabbos{
			ShabbosShuva, ParshasShekalim, ParshasZachor,
			ParshasParah, ParshasHachodesh, ShabbosHagadol,
		} {
			assert.Equal(t, 1, counts[s], "%d %s", year, s)
		}
	}
}

func TestSignificantShabbos_Text(t *testing.T) {
	b, err := ParshasZachor.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "parshas_zachor", string(b))

	var s SignificantShabbos
	require.NoError(t, s.UnmarshalText([]byte("shabbos_hagadol")))
	assert.Equal(t, ShabbosHagadol, s)

	assert.Error(t, s.UnmarshalText([]byte("shabbos_chazon")))
}
