package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/civiq/internal/model"
)

const zipSchema = `
	CREATE TABLE IF NOT EXISTS zip_districts (
		zip         CHAR(5)     NOT NULL,
		state       CHAR(2)     NOT NULL,
		district    CHAR(2)     NOT NULL,
		imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (zip, state, district)
	)
`

// ZipStore handles database operations for the ZIP to district table
type ZipStore struct {
	db *sql.DB
}

// NewZipStore creates a new ZipStore
func NewZipStore(db *sql.DB) *ZipStore {
	return &ZipStore{db: db}
}

// EnsureSchema creates the zip_districts table if it does not exist
func (s *ZipStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, zipSchema); err != nil {
		return fmt.Errorf("failed to create zip_districts: %w", err)
	}
	return nil
}

// Truncate removes every row
func (s *ZipStore) Truncate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE zip_districts`); err != nil {
		return fmt.Errorf("failed to truncate zip_districts: %w", err)
	}
	return nil
}

// SaveBatch inserts rows in one transaction and returns how many were new
func (s *ZipStore) SaveBatch(ctx context.Context, rows []model.ZipDistrict) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO zip_districts (zip, state, district)
		VALUES ($1, $2, $3)
		ON CONFLICT (zip, state, district) DO UPDATE SET
			imported_at = NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, r := range rows {
		res, err := stmt.ExecContext(ctx, r.Zip, r.State, r.District)
		if err != nil {
			return 0, fmt.Errorf("failed to insert zip %s (%s): %w", r.Zip, r.DistrictID(), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			saved += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return saved, nil
}

// LookupZip returns every district a ZIP code overlaps, ordered by state
// and district
func (s *ZipStore) LookupZip(ctx context.Context, zip string) ([]model.ZipDistrict, error) {
	query := `
		SELECT zip, state, district
		FROM zip_districts
		WHERE zip = $1
		ORDER BY state, district
	`

	rows, err := s.db.QueryContext(ctx, query, zip)
	if err != nil {
		return nil, fmt.Errorf("failed to query zip %s: %w", zip, err)
	}
	defer rows.Close()

	var districts []model.ZipDistrict
	for rows.Next() {
		var d model.ZipDistrict
		if err := rows.Scan(&d.Zip, &d.State, &d.District); err != nil {
			return nil, fmt.Errorf("failed to scan zip district: %w", err)
		}
		districts = append(districts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read zip districts: %w", err)
	}

	return districts, nil
}

// Count returns the number of ZIP to district rows
func (s *ZipStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM zip_districts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count zip districts: %w", err)
	}
	return n, nil
}
