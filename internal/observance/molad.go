package observance

import (
	"time"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

// Reference is the location the molad is calculated for. The molad is in
// local mean time there; StandardOffset is the location's fixed legal
// offset from UTC.
type Reference struct {
	Name           string
	Latitude       float64
	Longitude      float64
	StandardOffset time.Duration
}

// Jerusalem is the traditional reference, at Har Habayis.
var Jerusalem = Reference{
	Name:           "Jerusalem",
	Latitude:       31.778,
	Longitude:      35.2354,
	StandardOffset: 2 * time.Hour,
}

// LocalMeanTimeOffset is how far local mean time runs ahead of standard
// time: four minutes per degree of longitude, less the standard offset.
func (r Reference) LocalMeanTimeOffset() time.Duration {
	return time.Duration(r.Longitude*4*float64(time.Minute)) - r.StandardOffset
}

// chalakimDuration converts chalakim to a duration. One chelek is 10/3
// seconds.
func chalakimDuration(n int64) time.Duration {
	return time.Duration(n) * 10 * time.Second / 3
}

// MoladAsUTC returns the molad of c's month as an instant.
func (c Calendar) MoladAsUTC() time.Time {
	return c.moladAt(c.JewishYear(), c.JewishMonth())
}

// MoladAsUTCFor returns the molad of another month as an instant, using
// c's reference location.
func (c Calendar) MoladAsUTCFor(year int, month calendar.Month) time.Time {
	return c.moladAt(year, month)
}

func (c Calendar) moladAt(year int, month calendar.Month) time.Time {
	m := calendar.MoladFor(year, month)
	ref := c.Reference
	zone := time.FixedZone(ref.Name, int(ref.StandardOffset/time.Second))

	y, mo, d := m.Time().Date()
	local := time.Date(y, mo, d, m.MoladHours(), m.MoladMinutes(), 0, 0, zone).
		Add(chalakimDuration(int64(m.MoladChalakim())))
	return local.Add(-ref.LocalMeanTimeOffset()).UTC()
}

// TchilasZmanKidushLevana3Days returns the earliest time for kiddush
// levana, three days after the molad.
func (c Calendar) TchilasZmanKidushLevana3Days() time.Time {
	return c.MoladAsUTC().AddDate(0, 0, 3)
}

// TchilasZmanKidushLevana7Days returns the earliest time for kiddush
// levana according to the opinion of seven days.
func (c Calendar) TchilasZmanKidushLevana7Days() time.Time {
	return c.MoladAsUTC().AddDate(0, 0, 7)
}

// SofZmanKidushLevanaBetweenMoldos returns the latest time for kiddush
// levana, halfway to the next molad.
func (c Calendar) SofZmanKidushLevanaBetweenMoldos() time.Time {
	return c.MoladAsUTC().Add(chalakimDuration(calendar.ChalakimPerMonth) / 2)
}

// SofZmanKidushLevana15Days returns the latest time for kiddush levana
// according to the opinion of fifteen days.
func (c Calendar) SofZmanKidushLevana15Days() time.Time {
	return c.MoladAsUTC().AddDate(0, 0, 15)
}
