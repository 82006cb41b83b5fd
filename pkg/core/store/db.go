// Package store persists the appraisal artifacts. Each artifact kind is a
// whole JSONB document keyed by lead, fully overwritten on every run —
// stages recompute from scratch, so there is nothing to append.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS appraisal_documents (
	lead_id       TEXT NOT NULL,
	kind          TEXT NOT NULL,
	customer_name TEXT NOT NULL DEFAULT '',
	doc           JSONB NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (lead_id, kind)
);`

// Connect opens a pgx pool against databaseURL and ensures the documents
// table exists.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL not set")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return pool, nil
}
