package observance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

func TestYearObservances(t *testing.T) {
	days, err := YearObservances(5778)
	require.NoError(t, err)
	require.NotEmpty(t, days)

	first := days[0]
	assert.Equal(t, "2017-09-21", first.Date)
	assert.Equal(t, RoshHashana, first.SignificantDay)
	assert.True(t, first.YomTov)

	var yomKippur, omer, chanukah int
	for i, d := range days {
		assert.True(t, d.Notable(), d.Date)
		if i > 0 {
			assert.Greater(t, d.Absolute, days[i-1].Absolute)
		}
		if d.SignificantDay == YomKippur {
			yomKippur++
			assert.Equal(t, "2017-09-30", d.Date)
			assert.True(t, d.Taanis)
		}
		if d.DayOfOmer != 0 {
			omer++
		}
		if d.DayOfChanukah != 0 {
			chanukah++
		}
	}
	assert.Equal(t, 1, yomKippur)
	assert.Equal(t, 49, omer)
	assert.Equal(t, 8, chanukah)

	last := days[len(days)-1]
	assert.Equal(t, calendar.Elul, last.JewishMonth)
	assert.Equal(t, 29, last.JewishDay)
	assert.Equal(t, ErevRoshHashana, last.SignificantDay)
}

func TestYearObservances_Israel(t *testing.T) {
	days, err := YearObservances(5778, WithInIsrael(true))
	require.NoError(t, err)
	for _, d := range days {
		assert.NotEqual(t, SimchasTorah, d.SignificantDay, d.Date)
		assert.False(t, d.YomTovSheni && d.JewishMonth != calendar.Tishrei, d.Date)
	}
}

func TestYearObservances_InvalidYear(t *testing.T) {
	_, err := YearObservances(0)
	assert.ErrorIs(t, err, calendar.ErrInvalidArgument)
}

func TestRange(t *testing.T) {
	start := mustCalendar(t, 5778, calendar.Tishrei, 1)
	end := start.Add(9)

	days := start.Range(end.JewishDate, TefilahOptions{})
	require.Len(t, days, 10)
	assert.Equal(t, RoshHashana, days[0].SignificantDay)
	assert.Equal(t, YomKippur, days[9].SignificantDay)

	assert.Empty(t, end.Range(start.JewishDate, TefilahOptions{}))
}

func TestObservance_JSON(t *testing.T) {
	c := mustCalendar(t, 5777, calendar.Shevat, 1)
	raw, err := json.Marshal(c.Observance(TefilahOptions{}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Shabbos", got["weekday"])
	assert.Equal(t, "Shevat", got["month_name"])
	assert.Equal(t, true, got["rosh_chodesh"])
	assert.Equal(t, []any{"mashiv_haruach", "atah_yatzarta", "yaaleh_veyavo", "borchi_nafshi"}, got["tefilah"])
	assert.NotContains(t, got, "significant_day")
	assert.NotContains(t, got, "Absolute")
}
