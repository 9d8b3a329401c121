package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zapponejosh/luach-api/internal/calendar"
)

// =============================================================================
// Helper Functions
// =============================================================================

// timestampLayout is fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Returns the zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	// SQLite datetime('now') format
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func nullTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t := parseTimestamp(ns.String)
	if t.IsZero() {
		return nil
	}
	return &t
}

// querier is satisfied by both *DB and *Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanMode(s string) (calendar.Mode, error) {
	mode, err := calendar.ParseMode(s)
	if err != nil {
		return mode, fmt.Errorf("stored mode: %w", err)
	}
	return mode, nil
}

// =============================================================================
// Observance Year Queries
// =============================================================================

// GetYear retrieves and decodes a cached year.
// Returns ErrNotFound if the year has not been computed under key.
func (db *DB) GetYear(ctx context.Context, key YearKey) (*ObservanceYear, error) {
	query := `
		SELECT id, payload, computed_at
		FROM observance_years
		WHERE year = ? AND in_israel = ? AND modern = ? AND mode = ?
	`

	var (
		y          ObservanceYear
		payload    []byte
		computedAt string
	)
	err := db.QueryRowContext(ctx, query,
		key.Year, boolInt(key.InIsrael), boolInt(key.Modern), key.Mode.String(),
	).Scan(&y.ID, &payload, &computedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query year %s: %w", key, err)
	}

	y.Days, err = DecodeDays(payload)
	if err != nil {
		return nil, fmt.Errorf("year %s: %w", key, err)
	}
	y.Key = key
	y.ComputedAt = parseTimestamp(computedAt)

	return &y, nil
}

// UpsertYear stores a computed year, replacing any earlier computation under
// the same key. y.ID is set from the stored row and a zero ComputedAt is
// set to now.
func (db *DB) UpsertYear(ctx context.Context, y *ObservanceYear) error {
	return upsertYear(ctx, db, y)
}

// UpsertYear is DB.UpsertYear inside the transaction.
func (tx *Tx) UpsertYear(ctx context.Context, y *ObservanceYear) error {
	return upsertYear(ctx, tx, y)
}

func upsertYear(ctx context.Context, q querier, y *ObservanceYear) error {
	payload, err := EncodeDays(y.Days)
	if err != nil {
		return err
	}
	if y.ComputedAt.IsZero() {
		y.ComputedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO observance_years (
			year, in_israel, modern, mode, payload, day_count, computed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year, in_israel, modern, mode) DO UPDATE SET
			payload = excluded.payload,
			day_count = excluded.day_count,
			computed_at = excluded.computed_at
		RETURNING id
	`

	err = q.QueryRowContext(ctx, query,
		y.Key.Year,
		boolInt(y.Key.InIsrael),
		boolInt(y.Key.Modern),
		y.Key.Mode.String(),
		payload,
		len(y.Days),
		y.ComputedAt.UTC().Format(timestampLayout),
	).Scan(&y.ID)
	if err != nil {
		return fmt.Errorf("upsert year %s: %w", y.Key, err)
	}

	return nil
}

// DeleteYear removes every cached variant of a Jewish year and reports how
// many rows went. Returns ErrNotFound if nothing was cached.
func (db *DB) DeleteYear(ctx context.Context, year int) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM observance_years WHERE year = ?`, year)
	if err != nil {
		return 0, fmt.Errorf("delete year %d: %w", year, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return 0, ErrNotFound
	}

	return rows, nil
}

// ListYears returns a summary of every cached row, by year then key.
func (db *DB) ListYears(ctx context.Context) ([]YearSummary, error) {
	query := `
		SELECT year, in_israel, modern, mode, day_count, length(payload), computed_at
		FROM observance_years
		ORDER BY year, in_israel, modern, mode
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query years: %w", err)
	}
	defer rows.Close()

	var out []YearSummary
	for rows.Next() {
		var (
			s                YearSummary
			mode, computedAt string
		)
		if err := rows.Scan(
			&s.Key.Year,
			&s.Key.InIsrael,
			&s.Key.Modern,
			&mode,
			&s.DayCount,
			&s.Bytes,
			&computedAt,
		); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		if s.Key.Mode, err = scanMode(mode); err != nil {
			return nil, err
		}
		s.ComputedAt = parseTimestamp(computedAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate years: %w", err)
	}

	return out, nil
}

// CacheStats returns counts and age bounds for the cache.
func (db *DB) CacheStats(ctx context.Context) (*CacheStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(day_count), 0),
			COALESCE(SUM(length(payload)), 0),
			MIN(computed_at),
			MAX(computed_at)
		FROM observance_years
	`

	var (
		stats          CacheStats
		oldest, newest sql.NullString
	)
	err := db.QueryRowContext(ctx, query).Scan(
		&stats.Years,
		&stats.Days,
		&stats.PayloadBytes,
		&oldest,
		&newest,
	)
	if err != nil {
		return nil, fmt.Errorf("query cache stats: %w", err)
	}

	stats.Oldest = nullTimestamp(oldest)
	stats.Newest = nullTimestamp(newest)

	return &stats, nil
}
