package roster

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/kilianp07/solarsim/core/model"
	coreroster "github.com/kilianp07/solarsim/core/roster"
)

// Dialect selects the SQL driver and the statements that differ between
// databases.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQLConfig configures a SQL backed roster store.
type SQLConfig struct {
	DSN string `json:"dsn"`
}

// SQLStore persists the roster in the power_plant table. Replacing the
// roster marks the current rows as no longer operational and inserts the
// new ones in the same transaction, so previous rosters are kept as
// history.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	now     coreroster.Clock
}

// NewSQLStore opens the database and ensures the schema exists. A nil clock
// defaults to time.Now.
func NewSQLStore(dialect Dialect, dsn string, clock coreroster.Clock) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s store: dsn is required", dialect)
	}
	driver, schema, err := dialect.driver()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		// a single connection keeps :memory: databases shared and
		// serialises writers
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if clock == nil {
		clock = time.Now
	}
	return &SQLStore{db: db, dialect: dialect, now: clock}, nil
}

func (d Dialect) driver() (string, string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite", `CREATE TABLE IF NOT EXISTS power_plant (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        setup_on INTEGER NOT NULL,
        operational BOOLEAN NOT NULL,
        position INTEGER NOT NULL
    );`, nil
	case DialectPostgres:
		return "postgres", `CREATE TABLE IF NOT EXISTS power_plant (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        setup_on BIGINT NOT NULL,
        operational BOOLEAN NOT NULL,
        position INTEGER NOT NULL
    );`, nil
	default:
		return "", "", fmt.Errorf("unknown sql dialect %q", d)
	}
}

// rebind rewrites ? placeholders to the dialect's syntax.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Replace retires the operational roster and inserts plants in one transaction.
func (s *SQLStore) Replace(ctx context.Context, plants []model.PowerPlant) (err error) {
	if err = coreroster.CheckAges(plants); err != nil {
		return err
	}
	now := s.now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		s.dialect.rebind(`UPDATE power_plant SET operational = ? WHERE operational = ?`),
		false, true); err != nil {
		return fmt.Errorf("retire roster: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, s.dialect.rebind(
		`INSERT INTO power_plant (name, setup_on, operational, position) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()
	for i, p := range plants {
		setup := coreroster.SetupDate(now, p.Age)
		if _, err = stmt.ExecContext(ctx, p.Name, setup.Unix(), true, i); err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns the operational roster in load order.
func (s *SQLStore) List(ctx context.Context) ([]model.PowerPlant, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(
		`SELECT name, setup_on FROM power_plant WHERE operational = ? ORDER BY position, id`), true)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	now := s.now()
	res := []model.PowerPlant{}
	for rows.Next() {
		var (
			name  string
			setup int64
		)
		if err := rows.Scan(&name, &setup); err != nil {
			return nil, err
		}
		res = append(res, model.PowerPlant{Name: name, Age: coreroster.AgeOn(now, time.Unix(setup, 0))})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error { return s.db.Close() }
