// Package luach serves computed observance years, reading through the
// SQLite cache.
package luach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/database"
	"github.com/zapponejosh/luach-api/internal/logger"
	"github.com/zapponejosh/luach-api/internal/observance"
)

// Store is the part of the database the service needs.
type Store interface {
	GetYear(ctx context.Context, key database.YearKey) (*database.ObservanceYear, error)
	UpsertYear(ctx context.Context, y *database.ObservanceYear) error
	WithTx(ctx context.Context, fn func(*database.Tx) error) error
}

// Flags are the calendar options a request can set.
type Flags struct {
	InIsrael bool
	Modern   bool
	Mode     calendar.Mode
}

// Options converts f to observance options.
func (f Flags) Options() []observance.Option {
	return f.key(0).Options()
}

func (f Flags) key(year int) database.YearKey {
	return database.YearKey{Year: year, InIsrael: f.InIsrael, Modern: f.Modern, Mode: f.Mode}
}

// Service computes observance years and caches them. A nil store disables
// caching.
type Service struct {
	store    Store
	defaults Flags
	now      func() time.Time
	group    singleflight.Group
}

// NewService builds a service. defaults are what Today and Warm use.
func NewService(store Store, defaults Flags) *Service {
	return &Service{
		store:    store,
		defaults: defaults,
		now:      time.Now,
	}
}

// Defaults returns the configured flags.
func (s *Service) Defaults() Flags { return s.defaults }

// Today returns today's calendar under the default flags.
func (s *Service) Today() observance.Calendar {
	c, err := observance.FromTime(s.now(), s.defaults.Options()...)
	if err != nil {
		return observance.Today(s.defaults.Options()...)
	}
	return c
}

// Year returns the notable days of a Jewish year, from the cache when
// present. A cache miss computes the year and stores it; a failed store is
// logged and the computed year still returned.
func (s *Service) Year(ctx context.Context, year int, flags Flags) (*database.ObservanceYear, error) {
	if err := calendar.CheckJewishYear(year); err != nil {
		return nil, err
	}
	key := flags.key(year)

	if s.store != nil {
		y, err := s.store.GetYear(ctx, key)
		if err == nil {
			logger.Debug(ctx, "year cache hit", slog.String("key", key.String()))
			return y, nil
		}
		if !database.IsNotFound(err) {
			logger.Error(ctx, "year cache read failed", err, slog.String("key", key.String()))
		}
	}

	// Concurrent misses on one key share a single computation.
	v, err, _ := s.group.Do(key.String(), func() (any, error) {
		y, err := s.compute(key)
		if err != nil {
			return nil, err
		}
		if s.store != nil {
			if err := s.store.UpsertYear(ctx, y); err != nil {
				logger.Error(ctx, "year cache write failed", err, slog.String("key", key.String()))
			} else {
				logger.Info(ctx, "year computed",
					slog.String("key", key.String()),
					slog.Int("days", len(y.Days)),
				)
			}
		}
		return y, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*database.ObservanceYear), nil
}

func (s *Service) compute(key database.YearKey) (*database.ObservanceYear, error) {
	days, err := observance.YearObservances(key.Year, key.Options()...)
	if err != nil {
		return nil, err
	}
	return &database.ObservanceYear{Key: key, Days: days, ComputedAt: s.now().UTC()}, nil
}

// Warm recomputes years under the default flags and stores them in one
// transaction, replacing whatever was cached.
func (s *Service) Warm(ctx context.Context, years ...int) error {
	if s.store == nil {
		return errors.New("warm: no cache configured")
	}

	computed := make([]*database.ObservanceYear, len(years))
	var g errgroup.Group
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			y, err := s.compute(s.defaults.key(year))
			if err != nil {
				return fmt.Errorf("warm year %d: %w", year, err)
			}
			computed[i] = y
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	err := s.store.WithTx(ctx, func(tx *database.Tx) error {
		for _, y := range computed {
			if err := tx.UpsertYear(ctx, y); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("warm: %w", err)
	}

	logger.Info(ctx, "cache warmed", slog.Any("years", years))
	return nil
}

// CurrentYears returns this Jewish year and the next, the years Warm is
// usually asked for.
func (s *Service) CurrentYears() []int {
	y := s.Today().JewishYear()
	return []int{y, y + 1}
}
