// Package history provides persistent storage for completed assessments so
// earlier runs can be retrieved and re-rendered. Storage is append-oriented:
// a stored assessment is never recomputed or mutated, only re-read.
package history

import (
	"context"
	"io"
	"time"

	"github.com/preventive-care-server/internal/domain"
)

// Record is one persisted assessment: the input record, the full result
// set and the narrative, serialized as JSON documents.
type Record struct {
	ID        string               `json:"id"`
	PatientID string               `json:"patient_id"`
	Record    domain.PatientRecord `json:"record"`
	Results   domain.RiskResultSet `json:"results"`
	Narrative string               `json:"narrative,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// Store defines the interface for assessment storage operations.
type Store interface {
	// Save stores a completed assessment.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves an assessment by its ID. Returns domain.ErrNotFound
	// if no assessment matches.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns stored assessments, newest first, with pagination.
	List(ctx context.Context, limit, offset int) ([]*Record, error)

	// ListByPatient returns a patient's assessments, newest first.
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*Record, error)

	// Count returns the total number of stored assessments.
	Count(ctx context.Context) (int64, error)

	// Delete removes an assessment by ID.
	Delete(ctx context.Context, id string) error

	// ExportJSON writes all stored assessments to a JSON writer.
	ExportJSON(ctx context.Context, w io.Writer) error

	// Close releases the underlying database resources.
	Close() error
}
