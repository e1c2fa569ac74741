package history

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preventive-care-server/internal/domain"
)

func TestNewSQLiteStore(t *testing.T) {
	// Create temp directory
	tmpDir, err := os.MkdirTemp("", "history-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	// Act
	store, err := NewSQLiteStore(dbPath)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// Verify database file was created
	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
}

func TestSQLiteStore_Save(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	rec := testAssessment("a-1", "p-1")

	// Act
	err := store.Save(ctx, rec)

	// Assert
	require.NoError(t, err)
	assert.False(t, rec.CreatedAt.IsZero(), "CreatedAt should be set")
}

func TestSQLiteStore_Save_RequiresID(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	rec := testAssessment("", "p-1")

	err := store.Save(context.Background(), rec)
	assert.Error(t, err)
}

func TestSQLiteStore_Get(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	rec := testAssessment("a-1", "p-1")
	require.NoError(t, store.Save(ctx, rec))

	// Act
	retrieved, err := store.Get(ctx, "a-1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, rec.PatientID, retrieved.PatientID)
	assert.Equal(t, rec.Narrative, retrieved.Narrative)
	assert.Equal(t, rec.Record.Age, retrieved.Record.Age)
	assert.Equal(t, rec.Record.Gender, retrieved.Record.Gender)

	require.Contains(t, retrieved.Results, domain.HYPERTENSION)
	assert.InDelta(t,
		rec.Results[domain.HYPERTENSION].RiskPercentage,
		retrieved.Results[domain.HYPERTENSION].RiskPercentage, 1e-9)
	assert.Equal(t,
		rec.Results[domain.HYPERTENSION].KeyFactors,
		retrieved.Results[domain.HYPERTENSION].KeyFactors)
}

func TestSQLiteStore_Get_NotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	// Act
	retrieved, err := store.Get(context.Background(), "missing")

	// Assert
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, retrieved)
}

func TestSQLiteStore_List(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		rec := testAssessment(fmt.Sprintf("a-%d", i), "p-1")
		require.NoError(t, store.Save(ctx, rec))
	}

	// Act
	list, err := store.List(ctx, 10, 0)

	// Assert
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestSQLiteStore_List_Pagination(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	// Save 5 entries with distinct timestamps so ordering is stable
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := testAssessment(fmt.Sprintf("a-%d", i), "p-1")
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Save(ctx, rec))
	}

	// Act - get first page
	page1, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "a-4", page1[0].ID, "Newest first")

	// Act - get second page
	page2, err := store.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	// Act - get third page
	page3, err := store.List(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestSQLiteStore_ListByPatient(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testAssessment("a-1", "p-1")))
	require.NoError(t, store.Save(ctx, testAssessment("a-2", "p-2")))
	require.NoError(t, store.Save(ctx, testAssessment("a-3", "p-1")))

	// Act
	list, err := store.ListByPatient(ctx, "p-1", 10, 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, rec := range list {
		assert.Equal(t, "p-1", rec.PatientID)
	}
}

func TestSQLiteStore_Count(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, testAssessment(fmt.Sprintf("a-%d", i), "p-1")))
	}

	// Act
	count, err := store.Count(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testAssessment("a-1", "p-1")))

	// Act
	err := store.Delete(ctx, "a-1")

	// Assert
	require.NoError(t, err)

	// Verify deletion
	_, err = store.Get(ctx, "a-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_Delete_NotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	err := store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_ExportJSON(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	rec := testAssessment("a-1", "p-1")
	require.NoError(t, store.Save(ctx, rec))

	// Act
	var buf bytes.Buffer
	err := store.ExportJSON(ctx, &buf)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"a-1"`)
	assert.Contains(t, buf.String(), `"risk_percentage"`)
	assert.Contains(t, buf.String(), rec.Narrative)
}

// Helper function to create a test store
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "history-test-*")
	require.NoError(t, err)

	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	return store
}

// testAssessment builds a stored assessment with a plausible record and a
// partial result set. Stores persist whatever they are given and never
// recompute, so the numbers need not be formula-accurate.
func testAssessment(id, patientID string) *Record {
	return &Record{
		ID:        id,
		PatientID: patientID,
		Record: domain.PatientRecord{
			PatientID:        patientID,
			Name:             "Test Patient",
			Age:              50,
			Gender:           domain.FEMALE,
			HeightCM:         165,
			WeightKG:         70,
			Smoking:          domain.SmokingNever,
			Alcohol:          domain.AlcoholOccasional,
			Exercise:         domain.ExerciseModerate,
			Diet:             domain.DietStandard,
			SystolicBP:       128,
			DiastolicBP:      82,
			HeartRate:        72,
			FastingGlucose:   95,
			HbA1c:            5.6,
			TotalCholesterol: 190,
			LDLCholesterol:   110,
			HDLCholesterol:   55,
		},
		Results: domain.RiskResultSet{
			domain.HYPERTENSION: {
				RiskPercentage:  14.135,
				RiskLevel:       domain.LOW,
				KeyFactors:      []string{"Overweight BMI", "Age factor"},
				Recommendations: []string{"Reduce sodium intake"},
			},
			domain.DIABETES: {
				RiskPercentage:  26.347,
				RiskLevel:       domain.LOW,
				KeyFactors:      []string{"BMI"},
				Recommendations: []string{"Maintain healthy weight"},
			},
		},
		Narrative: "Overall risk profile is low across assessed conditions.",
	}
}
