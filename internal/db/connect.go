package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:quizdrill.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/quizdrill?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS transcript_log (
  id INTEGER PRIMARY KEY AUTOINCREMENT,  -- BIGSERIAL in Postgres
  log_id TEXT NOT NULL,                  -- session-scoped transcript key
  ts TEXT NOT NULL,                      -- RFC3339
  deck_index INTEGER NOT NULL,
  question TEXT NOT NULL,
  user_answer TEXT NOT NULL,
  feedback TEXT NOT NULL                 -- raw Markdown as returned by the evaluator
);

CREATE INDEX IF NOT EXISTS idx_transcript_log_log_id ON transcript_log(log_id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS transcript_log (
  id BIGSERIAL PRIMARY KEY,
  log_id TEXT NOT NULL,
  ts TEXT NOT NULL,
  deck_index INTEGER NOT NULL,
  question TEXT NOT NULL,
  user_answer TEXT NOT NULL,
  feedback TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transcript_log_log_id ON transcript_log(log_id);
`
