package luach

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/database"
	"github.com/zapponejosh/luach-api/internal/observance"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(database.DefaultConfig(":memory:"), nil)
	require.NoError(t, err)
	_, err = db.Migrate(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// countingStore records calls and can be made to fail.
type countingStore struct {
	Store
	gets, upserts atomic.Int32
	failWrites    bool
}

func (c *countingStore) GetYear(ctx context.Context, key database.YearKey) (*database.ObservanceYear, error) {
	c.gets.Add(1)
	return c.Store.GetYear(ctx, key)
}

func (c *countingStore) UpsertYear(ctx context.Context, y *database.ObservanceYear) error {
	c.upserts.Add(1)
	if c.failWrites {
		return errors.New("disk full")
	}
	return c.Store.UpsertYear(ctx, y)
}

func TestYear_CachesOnMiss(t *testing.T) {
	db := testDB(t)
	store := &countingStore{Store: db}
	svc := NewService(store, Flags{})
	ctx := context.Background()

	first, err := svc.Year(ctx, 5785, Flags{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, store.upserts.Load())
	assert.NotZero(t, first.ID)

	second, err := svc.Year(ctx, 5785, Flags{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, store.upserts.Load(), "second call is served from cache")
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.Days, len(first.Days))

	// different flags are a different cache row
	_, err = svc.Year(ctx, 5785, Flags{InIsrael: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, store.upserts.Load())
}

func TestYear_MatchesDirectComputation(t *testing.T) {
	svc := NewService(testDB(t), Flags{})
	flags := Flags{InIsrael: true, Modern: true}

	y, err := svc.Year(context.Background(), 5778, flags)
	require.NoError(t, err)

	want, err := observance.YearObservances(5778, flags.Options()...)
	require.NoError(t, err)
	require.Len(t, y.Days, len(want))
	for i := range want {
		assert.Equal(t, want[i].Date, y.Days[i].Date)
		assert.Equal(t, want[i].SignificantDay, y.Days[i].SignificantDay)
	}
}

func TestYear_InvalidYear(t *testing.T) {
	svc := NewService(nil, Flags{})
	_, err := svc.Year(context.Background(), 0, Flags{})
	assert.ErrorIs(t, err, calendar.ErrInvalidArgument)
}

func TestYear_NoStore(t *testing.T) {
	svc := NewService(nil, Flags{})
	y, err := svc.Year(context.Background(), 5785, Flags{})
	require.NoError(t, err)
	assert.Zero(t, y.ID)
	assert.Equal(t, observance.RoshHashana, y.Days[0].SignificantDay)
}

func TestYear_WriteFailureStillServes(t *testing.T) {
	store := &countingStore{Store: testDB(t), failWrites: true}
	svc := NewService(store, Flags{})

	y, err := svc.Year(context.Background(), 5785, Flags{})
	require.NoError(t, err)
	assert.NotEmpty(t, y.Days)
}

func TestYear_Concurrent(t *testing.T) {
	store := &countingStore{Store: testDB(t)}
	svc := NewService(store, Flags{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Year(context.Background(), 5790, Flags{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Store.GetYear(context.Background(), database.YearKey{Year: 5790})
	require.NoError(t, err)
	assert.NotEmpty(t, got.Days)
}

func TestWarm(t *testing.T) {
	db := testDB(t)
	defaults := Flags{InIsrael: true}
	svc := NewService(db, defaults)
	ctx := context.Background()

	require.NoError(t, svc.Warm(ctx, 5785, 5786))

	years, err := db.ListYears(ctx)
	require.NoError(t, err)
	require.Len(t, years, 2)
	for _, y := range years {
		assert.True(t, y.Key.InIsrael)
	}

	assert.Error(t, NewService(nil, defaults).Warm(ctx, 5785))
	assert.ErrorIs(t, svc.Warm(ctx, 0), calendar.ErrInvalidArgument)
}

func TestToday_CurrentYears(t *testing.T) {
	svc := NewService(nil, Flags{})
	svc.now = func() time.Time { return time.Date(2017, time.September, 21, 12, 0, 0, 0, time.UTC) }

	today := svc.Today()
	assert.Equal(t, 5778, today.JewishYear())
	assert.Equal(t, observance.RoshHashana, today.SignificantDay())
	assert.Equal(t, []int{5778, 5779}, svc.CurrentYears())
}
