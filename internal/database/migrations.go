package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1ObservanceYears,
	2: migrationV2ComputedAtIndex,
}

// migrationV1ObservanceYears creates the year cache.
//
// A row is one Jewish year computed under one set of calendar options. The
// payload is the msgpack encoding of the year's notable days; day_count is
// stored alongside so stats never decode payloads.
const migrationV1ObservanceYears = `
CREATE TABLE IF NOT EXISTS observance_years (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    year INTEGER NOT NULL CHECK (year >= 1),
    in_israel INTEGER NOT NULL DEFAULT 0 CHECK (in_israel IN (0, 1)),
    modern INTEGER NOT NULL DEFAULT 0 CHECK (modern IN (0, 1)),
    mode TEXT NOT NULL CHECK (mode IN ('historical', 'proleptic')),

    payload BLOB NOT NULL,
    day_count INTEGER NOT NULL,

    computed_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (year, in_israel, modern, mode)
);

CREATE INDEX IF NOT EXISTS idx_observance_years_year
    ON observance_years(year);
`

// migrationV2ComputedAtIndex supports the oldest/newest lookups in stats.
const migrationV2ComputedAtIndex = `
CREATE INDEX IF NOT EXISTS idx_observance_years_computed
    ON observance_years(computed_at);
`
