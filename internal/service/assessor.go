package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/preventive-care-server/internal/domain"
	"github.com/preventive-care-server/internal/history"
)

// narrativeUnavailable is stored when the insight service cannot produce a
// narrative. Scores are already final at that point and are returned as-is.
const narrativeUnavailable = "AI analysis temporarily unavailable."

// AssessmentService runs the complete assessment workflow: score all five
// conditions, generate the clinical narrative, persist the assessment.
type AssessmentService struct {
	logger   *logrus.Logger
	engine   domain.RiskCalculator
	insights domain.InsightGenerator
	store    history.Store
}

// NewAssessmentService creates the assessment workflow service. insights and
// store may be nil; the corresponding steps are skipped.
func NewAssessmentService(
	logger *logrus.Logger,
	engine domain.RiskCalculator,
	insights domain.InsightGenerator,
	store history.Store,
) *AssessmentService {
	return &AssessmentService{
		logger:   logger,
		engine:   engine,
		insights: insights,
		store:    store,
	}
}

// Assess performs the full workflow for one patient record.
func (s *AssessmentService) Assess(ctx context.Context, rec *domain.PatientRecord) (*domain.Assessment, error) {
	startTime := time.Now()

	s.logger.WithFields(logrus.Fields{
		"patient_id": rec.PatientID,
		"age":        rec.Age,
	}).Info("Starting risk assessment")

	// Step 1: Score every condition. Any calculator failure fails the
	// whole assessment; partial result sets are never returned.
	results, err := s.engine.CalculateAllRisks(rec)
	if err != nil {
		return nil, fmt.Errorf("risk assessment failed: %w", err)
	}

	assessment := &domain.Assessment{
		ID:        uuid.New().String(),
		Record:    *rec,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	}

	// Step 2: Generate the narrative. This boundary is isolated: a
	// failure degrades to a placeholder and never touches the scores.
	assessment.Narrative = s.generateNarrative(ctx, rec, results)

	// Step 3: Persist. Storage failure is reported; the caller already
	// holds the computed assessment.
	if s.store != nil {
		if err := s.store.Save(ctx, &history.Record{
			ID:        assessment.ID,
			PatientID: rec.PatientID,
			Record:    assessment.Record,
			Results:   assessment.Results,
			Narrative: assessment.Narrative,
			CreatedAt: assessment.CreatedAt,
		}); err != nil {
			return nil, fmt.Errorf("failed to save assessment: %w", err)
		}
	}

	topCond, top := results.HighestRisk()
	s.logger.WithFields(logrus.Fields{
		"assessment_id":   assessment.ID,
		"patient_id":      rec.PatientID,
		"highest_risk":    fmt.Sprintf("%s %.1f%%", topCond, top.RiskPercentage),
		"processing_time": time.Since(startTime),
	}).Info("Risk assessment completed")

	return assessment, nil
}

// Get retrieves a stored assessment by ID.
func (s *AssessmentService) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.Assessment{
		ID:        rec.ID,
		Record:    rec.Record,
		Results:   rec.Results,
		Narrative: rec.Narrative,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// List returns stored assessments, newest first.
func (s *AssessmentService) List(ctx context.Context, limit, offset int) ([]*history.Record, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, limit, offset)
}

func (s *AssessmentService) generateNarrative(ctx context.Context, rec *domain.PatientRecord, results domain.RiskResultSet) string {
	if s.insights == nil {
		return narrativeUnavailable
	}

	narrative, err := s.insights.GenerateInsights(ctx, rec, results)
	if err != nil {
		s.logger.WithError(err).Warn("Narrative generation failed, continuing with computed scores")
		return narrativeUnavailable
	}
	return narrative
}
