// Package store persists solved solar-term instants in a local SQLite file
// so later runs skip the root finder.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/powerman/structlog"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/solarterm"
)

var log = structlog.New(structlog.KeyUnit, "store")

// opTimeout bounds each cache read or write issued through the
// solarterm.Cache interface, which carries no context.
const opTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS term_instants (
    method    TEXT    NOT NULL,
    year      INTEGER NOT NULL,
    term      INTEGER NOT NULL,
    jd        REAL    NOT NULL,
    solved_at TEXT    NOT NULL,
    PRIMARY KEY (method, year, term)
);
`

// Row is one persisted term instant.
type Row struct {
	Method string  `db:"method" json:"method" yaml:"method"`
	Year   int     `db:"year" json:"year" yaml:"year"`
	Term   int     `db:"term" json:"term" yaml:"term"`
	JD     float64 `db:"jd" json:"jd" yaml:"jd"`
	// SolvedAt is RFC 3339 UTC.
	SolvedAt string `db:"solved_at" json:"solved_at" yaml:"solved_at"`
}

// Solved parses SolvedAt.
func (r Row) Solved() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.SolvedAt)
}

// SQLiteCache implements solarterm.Cache on a SQLite database in WAL mode.
// Store failures are logged and reported as misses.
type SQLiteCache struct {
	db *sqlx.DB
}

var _ solarterm.Cache = (*SQLiteCache)(nil)

// Open opens (or creates) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*SQLiteCache, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// One writer at a time; pooled connections would each need the PRAGMAs.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// Close closes the database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Get implements solarterm.Cache.
func (c *SQLiteCache) Get(k solarterm.Key) (julian.JD, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	jd, err := c.Lookup(ctx, k)
	if errors.Is(err, ErrNotFound) {
		return 0, false
	}
	if err != nil {
		log.PrintErr("cache read failed", "year", k.Year, "term", k.Term, "err", err)
		return 0, false
	}
	return jd, true
}

// Put implements solarterm.Cache.
func (c *SQLiteCache) Put(k solarterm.Key, jd julian.JD) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.Save(ctx, k, jd); err != nil {
		log.PrintErr("cache write failed", "year", k.Year, "term", k.Term, "err", err)
	}
}

// Lookup returns the stored instant for k, or ErrNotFound.
func (c *SQLiteCache) Lookup(ctx context.Context, k solarterm.Key) (julian.JD, error) {
	const q = `SELECT jd FROM term_instants WHERE method = ? AND year = ? AND term = ?`
	var jd float64
	err := c.db.GetContext(ctx, &jd, q, k.Method.String(), k.Year, k.Term)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("store: lookup %d/%d: %w", k.Year, k.Term, err)
	}
	return julian.JD(jd), nil
}

// Save upserts the instant for k.
func (c *SQLiteCache) Save(ctx context.Context, k solarterm.Key, jd julian.JD) error {
	const q = `
		INSERT INTO term_instants (method, year, term, jd, solved_at)
		VALUES (:method, :year, :term, :jd, :solved_at)
		ON CONFLICT(method, year, term) DO UPDATE SET jd = excluded.jd, solved_at = excluded.solved_at`
	row := Row{
		Method:   k.Method.String(),
		Year:     k.Year,
		Term:     k.Term,
		JD:       float64(jd),
		SolvedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if _, err := c.db.NamedExecContext(ctx, q, row); err != nil {
		return fmt.Errorf("store: save %d/%d: %w", k.Year, k.Term, err)
	}
	return nil
}

// Year returns the stored rows of one method and year in term order.
func (c *SQLiteCache) Year(ctx context.Context, m solarterm.Method, year int) ([]Row, error) {
	const q = `
		SELECT method, year, term, jd, solved_at FROM term_instants
		WHERE method = ? AND year = ? ORDER BY term`
	var rows []Row
	if err := c.db.SelectContext(ctx, &rows, q, m.String(), year); err != nil {
		return nil, fmt.Errorf("store: year %d: %w", year, err)
	}
	return rows, nil
}

// Count returns the number of stored instants.
func (c *SQLiteCache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM term_instants`); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Warm solves every term of years [from, to] through calc, which should
// carry this cache, and returns how many occurrences it visited.
func Warm(ctx context.Context, calc *solarterm.Calculator, from, to int) (int, error) {
	n := 0
	for y := from; y <= to; y++ {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		terms, err := calc.YearTerms(y)
		if err != nil {
			return n, fmt.Errorf("store: warm %d: %w", y, err)
		}
		n += len(terms)
		log.Debug("terms warmed", "year", y, "method", calc.Method())
	}
	return n, nil
}
