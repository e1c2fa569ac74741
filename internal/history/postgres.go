package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/preventive-care-server/internal/domain"

	_ "github.com/lib/pq"
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL assessment store.
// It expects the database and schema to already exist (created via migrations).
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Save stores a completed assessment.
func (s *PostgresStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return fmt.Errorf("assessment ID is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	recordJSON, err := json.Marshal(rec.Record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	resultsJSON, err := json.Marshal(rec.Results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, patient_id, record_json, results_json, narrative, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		rec.ID,
		rec.PatientID,
		string(recordJSON),
		string(resultsJSON),
		rec.Narrative,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// Get retrieves an assessment by ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, patient_id, record_json, results_json, narrative, created_at
		FROM assessments WHERE id = $1
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return rec, nil
}

// List returns stored assessments, newest first.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, record_json, results_json, narrative, created_at
		FROM assessments ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListByPatient returns a patient's assessments, newest first.
func (s *PostgresStore) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, record_json, results_json, narrative, created_at
		FROM assessments WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient assessments: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Count returns the total number of stored assessments.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assessments").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return count, nil
}

// Delete removes an assessment by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM assessments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExportJSON writes all stored assessments to a JSON writer.
func (s *PostgresStore) ExportJSON(ctx context.Context, w io.Writer) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, record_json, results_json, narrative, created_at
		FROM assessments ORDER BY created_at DESC
	`)
	if err != nil {
		return fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
