package repository

import (
	"context"
	"fmt"

	"zipcode-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the lookup history table. It is safe to run repeatedly.
const Schema = `
	CREATE TABLE IF NOT EXISTS lookup_history (
		id BIGSERIAL PRIMARY KEY,
		zipcode VARCHAR(32) NOT NULL,
		outcome VARCHAR(32) NOT NULL,
		status_code INTEGER NOT NULL DEFAULT 0,
		address_1 VARCHAR(255),
		address_2 VARCHAR(255),
		address_3 VARCHAR(255),
		kana_1 VARCHAR(255),
		kana_2 VARCHAR(255),
		kana_3 VARCHAR(255),
		prefcode VARCHAR(8),
		result_zipcode VARCHAR(16),
		looked_up_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS lookup_history_zipcode_idx ON lookup_history (zipcode, looked_up_at DESC);
	CREATE INDEX IF NOT EXISTS lookup_history_looked_up_at_idx ON lookup_history (looked_up_at DESC);
`

// Repository stores lookup history in PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the lookup_history table and its indexes if missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// RecordLookup appends one lookup to the history
func (r *Repository) RecordLookup(ctx context.Context, record models.LookupRecord) error {
	sql := `
		INSERT INTO lookup_history (
			zipcode,
			outcome,
			status_code,
			address_1,
			address_2,
			address_3,
			kana_1,
			kana_2,
			kana_3,
			prefcode,
			result_zipcode,
			looked_up_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var a1, a2, a3, k1, k2, k3, pref, zip *string
	if addr := record.Address; addr != nil {
		a1, a2, a3 = &addr.Address1, &addr.Address2, &addr.Address3
		k1, k2, k3 = &addr.Kana1, &addr.Kana2, &addr.Kana3
		pref, zip = &addr.PrefCode, &addr.ZipCode
	}

	_, err := r.db.Exec(ctx, sql,
		record.ZipCode,
		string(record.Outcome),
		record.StatusCode,
		a1, a2, a3,
		k1, k2, k3,
		pref, zip,
		record.LookedUpAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert lookup: %w", err)
	}

	return nil
}

// ListRecentLookups returns up to limit lookups, newest first. An empty zipcode matches all.
func (r *Repository) ListRecentLookups(ctx context.Context, zipcode string, limit int) ([]models.LookupRecord, error) {
	sql := `
		SELECT
			id,
			zipcode,
			outcome,
			status_code,
			address_1,
			address_2,
			address_3,
			kana_1,
			kana_2,
			kana_3,
			prefcode,
			result_zipcode,
			looked_up_at
		FROM lookup_history
		WHERE $1::text = '' OR zipcode = $1::text
		ORDER BY looked_up_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, sql, zipcode, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute history query: %w", err)
	}

	records, err := pgx.CollectRows(rows, scanLookupRecord)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to scan lookup: %w", err)
	}

	return records, nil
}

func scanLookupRecord(row pgx.CollectableRow) (models.LookupRecord, error) {
	var (
		rec                              models.LookupRecord
		outcome                          string
		a1, a2, a3, k1, k2, k3, pref, zp *string
	)
	err := row.Scan(
		&rec.ID,
		&rec.ZipCode,
		&outcome,
		&rec.StatusCode,
		&a1, &a2, &a3,
		&k1, &k2, &k3,
		&pref, &zp,
		&rec.LookedUpAt,
	)
	if err != nil {
		return rec, err
	}

	rec.Outcome = models.Outcome(outcome)
	if zp != nil {
		rec.Address = &models.Address{
			Address1: deref(a1),
			Address2: deref(a2),
			Address3: deref(a3),
			Kana1:    deref(k1),
			Kana2:    deref(k2),
			Kana3:    deref(k3),
			PrefCode: deref(pref),
			ZipCode:  *zp,
		}
	}

	return rec, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
