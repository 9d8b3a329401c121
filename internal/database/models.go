package database

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/observance"
)

// YearKey identifies a cached year. The same Jewish year computed inside
// and outside Israel, or with and without the modern holidays, is a
// different row.
type YearKey struct {
	Year     int           `json:"year"`
	InIsrael bool          `json:"in_israel"`
	Modern   bool          `json:"modern"`
	Mode     calendar.Mode `json:"mode"`
}

func (k YearKey) String() string {
	return fmt.Sprintf("%d/israel=%t/modern=%t/%s", k.Year, k.InIsrael, k.Modern, k.Mode)
}

// Options returns the observance options that produce this key's year.
func (k YearKey) Options() []observance.Option {
	return []observance.Option{
		observance.WithInIsrael(k.InIsrael),
		observance.WithModernHolidays(k.Modern),
		observance.WithMode(k.Mode),
	}
}

// ObservanceYear is a cached year with its decoded days.
type ObservanceYear struct {
	ID         int64                   `json:"id"`
	Key        YearKey                 `json:"key"`
	Days       []observance.Observance `json:"days"`
	ComputedAt time.Time               `json:"computed_at"`
}

// YearSummary is a cached year without its payload.
type YearSummary struct {
	Key        YearKey   `json:"key"`
	DayCount   int       `json:"day_count"`
	Bytes      int       `json:"bytes"`
	ComputedAt time.Time `json:"computed_at"`
}

// CacheStats summarizes the cache for the health and admin endpoints.
type CacheStats struct {
	Years        int        `json:"years"`
	Days         int        `json:"days"`
	PayloadBytes int64      `json:"payload_bytes"`
	Oldest       *time.Time `json:"oldest,omitempty"`
	Newest       *time.Time `json:"newest,omitempty"`
}

// EncodeDays serializes a year's days for the payload column.
func EncodeDays(days []observance.Observance) ([]byte, error) {
	b, err := msgpack.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encode days: %w", err)
	}
	return b, nil
}

// DecodeDays reverses EncodeDays.
func DecodeDays(b []byte) ([]observance.Observance, error) {
	var days []observance.Observance
	if err := msgpack.Unmarshal(b, &days); err != nil {
		return nil, fmt.Errorf("decode days: %w", err)
	}
	return days, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
