package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/preventive-care-server/internal/domain"
	"github.com/preventive-care-server/internal/service"
)

// AssessmentRequest is the payload for creating an assessment. Numeric
// ranges are enforced here, at the validation boundary; the engine re-checks
// them as a fail-fast guard.
type AssessmentRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	Name      string `json:"name"`

	Age    int    `json:"age" binding:"required,gte=18,lte=100"`
	Gender string `json:"gender" binding:"required"`

	HeightCM float64 `json:"height_cm" binding:"required,gte=100,lte=250"`
	WeightKG float64 `json:"weight_kg" binding:"required,gte=30,lte=200"`

	Smoking  string `json:"smoking"`
	Alcohol  string `json:"alcohol"`
	Exercise string `json:"exercise"`
	Diet     string `json:"diet"`

	GestationalDiabetes bool `json:"gestational_diabetes"`
	DepressionHistory   bool `json:"depression_history"`

	FamilyDiabetes     bool   `json:"family_diabetes"`
	FamilyHypertension bool   `json:"family_hypertension"`
	FamilyCancer       string `json:"family_cancer"`

	SystolicBP  int `json:"systolic_bp" binding:"required,gte=70,lte=200"`
	DiastolicBP int `json:"diastolic_bp" binding:"required,gte=40,lte=120"`
	HeartRate   int `json:"heart_rate" binding:"required,gte=40,lte=150"`

	FastingGlucose   float64 `json:"fasting_glucose" binding:"required,gte=50,lte=300"`
	HbA1c            float64 `json:"hba1c" binding:"required,gte=3,lte=15"`
	TotalCholesterol float64 `json:"total_cholesterol" binding:"required,gte=100,lte=400"`
	LDLCholesterol   float64 `json:"ldl_cholesterol" binding:"required,gte=50,lte=300"`
	HDLCholesterol   float64 `json:"hdl_cholesterol" binding:"required,gte=20,lte=100"`
}

func (r *AssessmentRequest) toRecord() domain.PatientRecord {
	return domain.PatientRecord{
		PatientID:           r.PatientID,
		Name:                r.Name,
		Age:                 r.Age,
		Gender:              domain.Gender(r.Gender),
		HeightCM:            r.HeightCM,
		WeightKG:            r.WeightKG,
		Smoking:             domain.SmokingStatus(r.Smoking),
		Alcohol:             domain.AlcoholUse(r.Alcohol),
		Exercise:            domain.ExerciseLevel(r.Exercise),
		Diet:                domain.DietPattern(r.Diet),
		GestationalDiabetes: r.GestationalDiabetes,
		DepressionHistory:   r.DepressionHistory,
		FamilyDiabetes:      r.FamilyDiabetes,
		FamilyHypertension:  r.FamilyHypertension,
		FamilyCancer:        domain.FamilyCancerHistory(r.FamilyCancer),
		SystolicBP:          r.SystolicBP,
		DiastolicBP:         r.DiastolicBP,
		HeartRate:           r.HeartRate,
		FastingGlucose:      r.FastingGlucose,
		HbA1c:               r.HbA1c,
		TotalCholesterol:    r.TotalCholesterol,
		LDLCholesterol:      r.LDLCholesterol,
		HDLCholesterol:      r.HDLCholesterol,
	}
}

// handleCreateAssessment runs the full assessment workflow for one record.
func (s *Server) handleCreateAssessment(c *gin.Context) {
	requestID := c.GetString("request_id")

	var req AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, "invalid assessment request", err.Error(), requestID))
		return
	}

	rec := req.toRecord()
	if !rec.Gender.IsValid() {
		c.JSON(http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, "invalid assessment request",
			"gender must be Female, Male or Other", requestID))
		return
	}

	assessment, err := s.service.Assess(c.Request.Context(), &rec)
	if err != nil {
		if domain.IsFieldError(err) {
			c.JSON(http.StatusBadRequest, domain.NewAPIError(
				domain.ErrInvalidRecord, "record failed validation", err.Error(), requestID))
			return
		}
		s.logger.WithError(err).Error("Assessment failed")
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrInternalServer, "assessment failed", err.Error(), requestID))
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// handleGetAssessment retrieves a stored assessment.
func (s *Server) handleGetAssessment(c *gin.Context) {
	requestID := c.GetString("request_id")
	id := c.Param("id")

	assessment, err := s.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, domain.NewAPIError(
				domain.ErrNotFoundCode, "assessment not found", id, requestID))
			return
		}
		s.logger.WithError(err).Error("Assessment lookup failed")
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrStorage, "failed to load assessment", err.Error(), requestID))
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// handleListAssessments returns stored assessments, newest first.
func (s *Server) handleListAssessments(c *gin.Context) {
	requestID := c.GetString("request_id")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	records, err := s.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Assessment listing failed")
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrStorage, "failed to list assessments", err.Error(), requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": records,
		"count":       len(records),
		"limit":       limit,
		"offset":      offset,
	})
}

// handleGetPreventionPlan derives the prevention program for a stored
// assessment's record.
func (s *Server) handleGetPreventionPlan(c *gin.Context) {
	requestID := c.GetString("request_id")
	id := c.Param("id")

	assessment, err := s.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, domain.NewAPIError(
				domain.ErrNotFoundCode, "assessment not found", id, requestID))
			return
		}
		s.logger.WithError(err).Error("Assessment lookup failed")
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrStorage, "failed to load assessment", err.Error(), requestID))
		return
	}

	now := time.Now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"assessment_id":  assessment.ID,
		"investigations": service.RecommendedInvestigations(&assessment.Record),
		"plan":           service.BuildPreventionPlan(&assessment.Record, now),
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	}

	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Health(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["storage"] = err.Error()
		} else {
			body["storage"] = "ok"
		}
	}

	c.JSON(status, body)
}
