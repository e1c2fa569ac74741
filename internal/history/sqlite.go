package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/preventive-care-server/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite assessment store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL,
		record_json TEXT NOT NULL,
		results_json TEXT NOT NULL,
		narrative TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_assessments_patient_id ON assessments(patient_id);
	CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord scans a row into a Record, decoding the JSON documents.
func scanRecord(s scanner) (*Record, error) {
	rec := &Record{}
	var recordJSON, resultsJSON string

	err := s.Scan(&rec.ID, &rec.PatientID, &recordJSON, &resultsJSON, &rec.Narrative, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(recordJSON), &rec.Record); err != nil {
		return nil, fmt.Errorf("failed to decode stored record: %w", err)
	}
	if err := json.Unmarshal([]byte(resultsJSON), &rec.Results); err != nil {
		return nil, fmt.Errorf("failed to decode stored results: %w", err)
	}

	return rec, nil
}

// Save stores a completed assessment.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
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
		VALUES (?, ?, ?, ?, ?, ?)
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
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, patient_id, record_json, results_json, narrative, created_at
		FROM assessments WHERE id = ?
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
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, record_json, results_json, narrative, created_at
		FROM assessments ORDER BY created_at DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListByPatient returns a patient's assessments, newest first.
func (s *SQLiteStore) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, record_json, results_json, narrative, created_at
		FROM assessments WHERE patient_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?
	`, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient assessments: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the total number of stored assessments.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assessments").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return count, nil
}

// Delete removes an assessment by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM assessments WHERE id = ?", id)
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
func (s *SQLiteStore) ExportJSON(ctx context.Context, w io.Writer) error {
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
