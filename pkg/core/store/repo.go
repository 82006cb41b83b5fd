package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Artifact kinds, matching the document names the pipeline emits.
const (
	KindExtractedValues = "extracted_values"
	KindRatios          = "ratios"
	KindRiskRating      = "risk_rating"
	KindSummaries       = "summaries"
)

// ErrNotFound reports a missing prerequisite artifact.
var ErrNotFound = errors.New("artifact not found")

// PostgresRepo stores appraisal documents in Postgres.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo wraps an existing pool.
func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

// SaveDocument upserts one artifact for a lead, replacing any prior run's
// document wholesale.
func (r *PostgresRepo) SaveDocument(ctx context.Context, leadID, customerName, kind string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	const query = `
		INSERT INTO appraisal_documents (lead_id, kind, customer_name, doc, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (lead_id, kind)
		DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at;`
	if _, err := r.pool.Exec(ctx, query, leadID, kind, customerName, data, time.Now()); err != nil {
		return fmt.Errorf("save %s for lead %s: %w", kind, leadID, err)
	}
	return nil
}

// LoadDocument reads one artifact into out. Returns ErrNotFound when the
// lead has no document of that kind.
func (r *PostgresRepo) LoadDocument(ctx context.Context, leadID, kind string, out interface{}) error {
	const query = `SELECT doc FROM appraisal_documents WHERE lead_id = $1 AND kind = $2`
	var data []byte
	err := r.pool.QueryRow(ctx, query, leadID, kind).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s for lead %s", ErrNotFound, kind, leadID)
		}
		return fmt.Errorf("load %s for lead %s: %w", kind, leadID, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s for lead %s: %w", kind, leadID, err)
	}
	return nil
}
