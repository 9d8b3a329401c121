// Package zmanim turns a calendar day and a place into the solar times that
// observances are tied to. It reads only the civil date from the calendar.
package zmanim

import (
	"errors"
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/observance"
)

// Solar depression angles, in degrees below the horizon.
const (
	AlosElevation  = -16.1
	TzeisElevation = -8.5
)

// ErrNoEvent means the sun does not reach the requested elevation that day,
// as in polar summer or winter.
var ErrNoEvent = errors.New("no solar event on this day")

// Location is a place on earth with the zone its clocks are read in.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	TimeZone  *time.Location
}

// NewLocation validates coordinates and loads the named time zone.
func NewLocation(name string, lat, lon float64, tz string) (Location, error) {
	if lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("%w: latitude %g", calendar.ErrInvalidArgument, lat)
	}
	if lon < -180 || lon > 180 {
		return Location{}, fmt.Errorf("%w: longitude %g", calendar.ErrInvalidArgument, lon)
	}
	zone, err := time.LoadLocation(tz)
	if err != nil {
		return Location{}, fmt.Errorf("%w: time zone %q", calendar.ErrInvalidArgument, tz)
	}
	return Location{Name: name, Latitude: lat, Longitude: lon, TimeZone: zone}, nil
}

func (l Location) zone() *time.Location {
	if l.TimeZone == nil {
		return time.UTC
	}
	return l.TimeZone
}

// civilDay is the proleptic Gregorian date the solar tables expect.
func civilDay(d calendar.JewishDate) (int, time.Month, int) {
	return d.Time().Date()
}

// SunTimes returns sunrise and sunset on d's civil day at loc, in loc's
// zone. ErrNoEvent is returned when the sun does not rise or set.
func SunTimes(d calendar.JewishDate, loc Location) (rise, set time.Time, err error) {
	y, m, day := civilDay(d)
	rise, set = sunrise.SunriseSunset(loc.Latitude, loc.Longitude, y, m, day)
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, ErrNoEvent
	}
	return rise.In(loc.zone()), set.In(loc.zone()), nil
}

// Elevation returns the morning and evening times the sun crosses elevation
// degrees on d's civil day.
func Elevation(d calendar.JewishDate, loc Location, elevation float64) (morning, evening time.Time, err error) {
	y, m, day := civilDay(d)
	morning, evening = sunrise.TimeOfElevation(loc.Latitude, loc.Longitude, elevation, y, m, day)
	if morning.IsZero() || evening.IsZero() {
		return time.Time{}, time.Time{}, ErrNoEvent
	}
	return morning.In(loc.zone()), evening.In(loc.zone()), nil
}

// CandleLighting returns when candles are lit on the evening of c, or false
// when they are not. Candles are lit offset before sunset, except where
// the observance layer delays lighting until after nightfall.
func CandleLighting(c observance.Calendar, loc Location, offset time.Duration) (time.Time, bool, error) {
	if !c.IsCandleLighting() {
		return time.Time{}, false, nil
	}
	if c.IsDelayedCandleLighting() {
		_, tzeis, err := Elevation(c.JewishDate, loc, TzeisElevation)
		if err != nil {
			return time.Time{}, false, err
		}
		return tzeis, true, nil
	}
	_, set, err := SunTimes(c.JewishDate, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return set.Add(-offset), true, nil
}

// Day is the solar schedule of one day at one place. Times the sun never
// reaches are nil.
type Day struct {
	Date           string     `json:"date"`
	Location       string     `json:"location,omitempty"`
	Alos           *time.Time `json:"alos,omitempty"`
	Sunrise        *time.Time `json:"sunrise,omitempty"`
	Sunset         *time.Time `json:"sunset,omitempty"`
	Tzeis          *time.Time `json:"tzeis,omitempty"`
	CandleLighting *time.Time `json:"candle_lighting,omitempty"`
}

// ForDay collects every time for c at loc. Polar days leave fields nil
// rather than failing.
func ForDay(c observance.Calendar, loc Location, offset time.Duration) Day {
	out := Day{Date: c.CivilString(), Location: loc.Name}

	if rise, set, err := SunTimes(c.JewishDate, loc); err == nil {
		out.Sunrise, out.Sunset = &rise, &set
	}
	if alos, _, err := Elevation(c.JewishDate, loc, AlosElevation); err == nil {
		out.Alos = &alos
	}
	if _, tzeis, err := Elevation(c.JewishDate, loc, TzeisElevation); err == nil {
		out.Tzeis = &tzeis
	}
	if t, ok, err := CandleLighting(c, loc, offset); err == nil && ok {
		out.CandleLighting = &t
	}
	return out
}
