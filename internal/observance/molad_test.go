package observance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

// UTC is 2:20:56.496 behind Jerusalem local mean time.
const jerusalemLMT = 2*time.Hour + 20*time.Minute + 56*time.Second + 496*time.Millisecond

func TestReference_LocalMeanTimeOffset(t *testing.T) {
	want := 20*time.Minute + 56*time.Second + 496*time.Millisecond
	assert.InDelta(t, float64(want), float64(Jerusalem.LocalMeanTimeOffset()), float64(time.Microsecond))
}

func TestMoladAsUTC(t *testing.T) {
	c, err := New(5776, calendar.Cheshvan, 1)
	require.NoError(t, err)

	// molad Cheshvan 5776: 5:51 and 10 chalakim on 2015-10-13
	local := time.Date(2015, 10, 13, 5, 51, 0, 0, time.UTC).Add(10 * 10 * time.Second / 3)
	want := local.Add(-jerusalemLMT)

	got := c.MoladAsUTC()
	assert.Equal(t, time.UTC, got.Location())
	assert.WithinDuration(t, want, got, time.Millisecond)
}

func TestMoladAsUTC_IgnoresMode(t *testing.T) {
	historical, err := New(5311, calendar.Tishrei, 1)
	require.NoError(t, err)
	proleptic, err := New(5311, calendar.Tishrei, 1, WithMode(calendar.ModeProleptic))
	require.NoError(t, err)
	assert.True(t, historical.MoladAsUTC().Equal(proleptic.MoladAsUTC()))
}

func TestKidushLevana(t *testing.T) {
	c, err := New(5776, calendar.Cheshvan, 1)
	require.NoError(t, err)
	molad := c.MoladAsUTC()

	assert.True(t, molad.Add(3*24*time.Hour).Equal(c.TchilasZmanKidushLevana3Days()))
	assert.True(t, molad.Add(7*24*time.Hour).Equal(c.TchilasZmanKidushLevana7Days()))
	assert.True(t, molad.Add(15*24*time.Hour).Equal(c.SofZmanKidushLevana15Days()))

	next, err := New(5776, calendar.Kislev, 1)
	require.NoError(t, err)
	half := next.MoladAsUTC().Sub(molad) / 2
	assert.WithinDuration(t, molad.Add(half), c.SofZmanKidushLevanaBetweenMoldos(), time.Microsecond)
}

func TestMoladAsUTC_ConsecutiveMonths(t *testing.T) {
	c, err := New(5778, calendar.Tishrei, 1)
	require.NoError(t, err)
	month := chalakimDuration(calendar.ChalakimPerMonth)

	year, m := 5778, calendar.Tishrei
	prev := c.MoladAsUTCFor(year, m)
	for i := 0; i < 30; i++ {
		year, m = calendar.NextMonth(year, m)
		cur := c.MoladAsUTCFor(year, m)
		assert.WithinDuration(t, prev.Add(month), cur, time.Millisecond, "%d-%d", year, m)
		prev = cur
	}
}

func TestMoladAsUTC_Reference(t *testing.T) {
	greenwich := Reference{Name: "Greenwich"}
	c, err := New(5776, calendar.Cheshvan, 1, WithReference(greenwich))
	require.NoError(t, err)

	want := time.Date(2015, 10, 13, 5, 51, 0, 0, time.UTC).Add(10 * 10 * time.Second / 3)
	assert.WithinDuration(t, want, c.MoladAsUTC(), time.Millisecond)
}
