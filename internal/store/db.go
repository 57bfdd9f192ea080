package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	Pool *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite wants a single writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	if err := migrate(pool); err != nil {
		_ = pool.Close()
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  site_id TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  company_url TEXT NOT NULL DEFAULT '',
  job_url TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  remote INTEGER NOT NULL DEFAULT 0,
  posted_at TEXT,
  comp_min REAL,
  comp_max REAL,
  currency TEXT NOT NULL DEFAULT '',
  apply_method TEXT NOT NULL DEFAULT 'unknown',
  direct_url TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL DEFAULT '',
  job_level TEXT NOT NULL DEFAULT '',
  job_function TEXT NOT NULL DEFAULT '',
  industry TEXT NOT NULL DEFAULT '',
  logo_url TEXT NOT NULL DEFAULT '',
  detail_error TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_first_seen ON jobs(first_seen DESC);
`)
	return err
}
