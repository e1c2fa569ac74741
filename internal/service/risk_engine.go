package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/preventive-care-server/internal/domain"
)

// RiskEngine computes the full five-condition risk result set from one
// patient record. All calculators are pure functions of the record (and,
// for kidney disease, of previously computed results within the same run);
// the engine holds no mutable state and never memoizes across calls.
type RiskEngine struct {
	logger *logrus.Logger
	models *ModelRegistry
	stages []pipelineStage
}

var _ domain.RiskCalculator = (*RiskEngine)(nil)

// pipelineStage is one node of the ordered dependency graph. Stages run in
// declaration order; dependsOn makes the "dependencies computed before
// dependents" invariant explicit and checkable at run time.
type pipelineStage struct {
	condition domain.Condition
	dependsOn []domain.Condition
	run       func(rec *domain.PatientRecord, computed domain.RiskResultSet) (*domain.RiskResult, error)
}

// NewRiskEngine creates a risk engine with the built-in condition models.
func NewRiskEngine(logger *logrus.Logger) *RiskEngine {
	e := &RiskEngine{
		logger: logger,
		models: NewModelRegistry(),
	}

	e.stages = []pipelineStage{
		{
			condition: domain.HYPERTENSION,
			run: func(rec *domain.PatientRecord, _ domain.RiskResultSet) (*domain.RiskResult, error) {
				return e.calculateHypertensionRisk(rec)
			},
		},
		{
			condition: domain.DIABETES,
			run: func(rec *domain.PatientRecord, _ domain.RiskResultSet) (*domain.RiskResult, error) {
				return e.calculateDiabetesRisk(rec)
			},
		},
		{
			condition: domain.KIDNEY_DISEASE,
			dependsOn: []domain.Condition{domain.DIABETES, domain.HYPERTENSION},
			run:       e.calculateKidneyDiseaseRisk,
		},
		{
			condition: domain.STROKE,
			run: func(rec *domain.PatientRecord, _ domain.RiskResultSet) (*domain.RiskResult, error) {
				return e.calculateStrokeRisk(rec)
			},
		},
		{
			condition: domain.HEART_DISEASE,
			run: func(rec *domain.PatientRecord, _ domain.RiskResultSet) (*domain.RiskResult, error) {
				return e.calculateHeartDiseaseRisk(rec)
			},
		},
	}

	return e
}

// CalculateAllRisks runs every condition calculator in dependency order and
// returns the complete result set. A single calculator failure fails the
// whole aggregation; partial sets are never returned.
func (e *RiskEngine) CalculateAllRisks(rec *domain.PatientRecord) (domain.RiskResultSet, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("record precondition failed: %w", err)
	}

	results := make(domain.RiskResultSet, len(e.stages))
	for _, stage := range e.stages {
		for _, dep := range stage.dependsOn {
			if results[dep] == nil {
				return nil, fmt.Errorf("pipeline ordering violated: %s requires %s", stage.condition, dep)
			}
		}

		result, err := stage.run(rec, results)
		if err != nil {
			return nil, fmt.Errorf("%s risk calculation failed: %w", stage.condition, err)
		}
		results[stage.condition] = result
	}

	e.logger.WithFields(logrus.Fields{
		"patient_id":   rec.PatientID,
		"hypertension": results[domain.HYPERTENSION].RiskPercentage,
		"diabetes":     results[domain.DIABETES].RiskPercentage,
		"kidney":       results[domain.KIDNEY_DISEASE].RiskPercentage,
		"stroke":       results[domain.STROKE].RiskPercentage,
		"heart":        results[domain.HEART_DISEASE].RiskPercentage,
	}).Debug("Completed risk aggregation")

	return results, nil
}

// riskAccumulator is the shared contribution primitive: starting from a
// condition's base risk, it sums flat weights gated on predicates and linear
// excess-over-threshold terms. No term ever subtracts; risk only accumulates
// upward from the base.
type riskAccumulator struct {
	risk float64
}

func newAccumulator(baseRisk float64) *riskAccumulator {
	return &riskAccumulator{risk: baseRisk}
}

// add contributes a flat weight when the predicate holds.
func (a *riskAccumulator) add(when bool, weight float64) {
	if when {
		a.risk += weight
	}
}

// addExcess contributes (value - threshold) * weight when value exceeds the
// threshold. At value == threshold the contribution is zero, so inclusive
// and exclusive gates are numerically identical for these terms.
func (a *riskAccumulator) addExcess(value, threshold, weight float64) {
	if value > threshold {
		a.risk += (value - threshold) * weight
	}
}

// percentage converts the accumulated fraction to a percentage clamped to
// the condition cap. Overflow is an engine invariant, not an error.
func (a *riskAccumulator) percentage(cap float64) float64 {
	pct := a.risk * 100
	if pct > cap {
		return cap
	}
	return pct
}

// calculateHypertensionRisk scores hypertension from the registered model:
// base 0.10, age over 45, BMI over 25, family history, systolic BP over 120.
func (e *RiskEngine) calculateHypertensionRisk(rec *domain.PatientRecord) (*domain.RiskResult, error) {
	model, ok := e.models.Model(domain.HYPERTENSION)
	if !ok {
		return nil, fmt.Errorf("no model registered for %s", domain.HYPERTENSION)
	}

	acc := newAccumulator(model.BaseRisk)
	acc.addExcess(float64(rec.Age), 45, model.Weights[WeightAge])
	acc.addExcess(rec.BMI(), 25, model.Weights[WeightBMI])
	acc.add(rec.FamilyHypertension, model.Weights[WeightFamilyHistory])
	acc.addExcess(float64(rec.SystolicBP), 120, model.Weights[WeightBloodPressure])

	pct := acc.percentage(hypertensionCap)
	return &domain.RiskResult{
		RiskPercentage:  pct,
		RiskLevel:       domain.RiskLevelFor(pct),
		KeyFactors:      hypertensionKeyFactors(rec),
		Recommendations: recommendationsFor(domain.HYPERTENSION),
	}, nil
}

// calculateDiabetesRisk scores type 2 diabetes from the registered model:
// base 0.08, age over 40, BMI over 23, family history, gestational diabetes
// history, HbA1c at or above 5.7.
func (e *RiskEngine) calculateDiabetesRisk(rec *domain.PatientRecord) (*domain.RiskResult, error) {
	model, ok := e.models.Model(domain.DIABETES)
	if !ok {
		return nil, fmt.Errorf("no model registered for %s", domain.DIABETES)
	}

	acc := newAccumulator(model.BaseRisk)
	acc.addExcess(float64(rec.Age), 40, model.Weights[WeightAge])
	acc.addExcess(rec.BMI(), 23, model.Weights[WeightBMI])
	acc.add(rec.FamilyDiabetes, model.Weights[WeightFamilyHistory])
	acc.add(rec.GestationalDiabetes, model.Weights[WeightGestationalDiabetes])
	acc.addExcess(rec.HbA1c, 5.7, model.Weights[WeightHbA1c])

	pct := acc.percentage(diabetesCap)
	return &domain.RiskResult{
		RiskPercentage:  pct,
		RiskLevel:       domain.RiskLevelFor(pct),
		KeyFactors:      diabetesKeyFactors(rec),
		Recommendations: recommendationsFor(domain.DIABETES),
	}, nil
}

// calculateKidneyDiseaseRisk scores chronic kidney disease from the diabetes
// and hypertension results already computed in this run. It must reuse those
// exact results rather than recompute them, so the pipeline guarantees both
// are present before this stage.
func (e *RiskEngine) calculateKidneyDiseaseRisk(rec *domain.PatientRecord, computed domain.RiskResultSet) (*domain.RiskResult, error) {
	diabetesFraction := computed[domain.DIABETES].RiskPercentage / 100
	hypertensionFraction := computed[domain.HYPERTENSION].RiskPercentage / 100

	acc := newAccumulator(0.05)
	acc.add(true, diabetesFraction*0.3)
	acc.add(true, hypertensionFraction*0.2)
	acc.addExcess(float64(rec.Age), 50, 0.01)

	pct := acc.percentage(kidneyDiseaseCap)
	return &domain.RiskResult{
		RiskPercentage: pct,
		RiskLevel:      domain.RiskLevelFor(pct),
		// Fixed list regardless of which contributions fired.
		KeyFactors:      copyStrings(kidneyDiseaseKeyFactors),
		Recommendations: recommendationsFor(domain.KIDNEY_DISEASE),
	}, nil
}

// calculateStrokeRisk scores stroke with staged rules. The blood pressure
// and HbA1c bands are mutually exclusive: exactly one term fires per band.
func (e *RiskEngine) calculateStrokeRisk(rec *domain.PatientRecord) (*domain.RiskResult, error) {
	acc := newAccumulator(0.03)
	acc.addExcess(float64(rec.Age), 45, 0.015)

	switch {
	case rec.SystolicBP > 140:
		acc.add(true, 0.25)
	case rec.SystolicBP > 120:
		acc.add(true, 0.10)
	}

	switch {
	case rec.HbA1c >= 6.5:
		acc.add(true, 0.20)
	case rec.HbA1c >= 5.7:
		acc.add(true, 0.10)
	}

	acc.add(rec.LDLCholesterol > 130, 0.08)
	acc.add(rec.Gender == domain.FEMALE && rec.Age > 45, 0.05)

	pct := acc.percentage(strokeCap)
	return &domain.RiskResult{
		RiskPercentage:  pct,
		RiskLevel:       domain.RiskLevelFor(pct),
		KeyFactors:      strokeKeyFactors(rec),
		Recommendations: recommendationsFor(domain.STROKE),
	}, nil
}

// calculateHeartDiseaseRisk scores ischemic heart disease. The age term is
// gender-branched and the cholesterol-ratio, blood pressure and HbA1c bands
// are each mutually exclusive. An HDL value of zero would make the ratio
// undefined; the calculator fails with a field error rather than score it.
func (e *RiskEngine) calculateHeartDiseaseRisk(rec *domain.PatientRecord) (*domain.RiskResult, error) {
	if rec.HDLCholesterol <= 0 {
		return nil, domain.NewFieldError("hdl_cholesterol", "must be positive to compute cholesterol ratio", rec.HDLCholesterol)
	}

	acc := newAccumulator(0.04)

	if rec.Gender == domain.FEMALE {
		acc.addExcess(float64(rec.Age), 45, 0.012)
	} else {
		acc.addExcess(float64(rec.Age), 35, 0.015)
	}

	ratio := rec.TotalCholesterol / rec.HDLCholesterol
	switch {
	case ratio > 5:
		acc.add(true, 0.15)
	case ratio > 4:
		acc.add(true, 0.08)
	}

	switch {
	case rec.SystolicBP > 140:
		acc.add(true, 0.20)
	case rec.SystolicBP > 130:
		acc.add(true, 0.10)
	}

	switch {
	case rec.HbA1c >= 6.5:
		acc.add(true, 0.25)
	case rec.HbA1c >= 5.7:
		acc.add(true, 0.12)
	}

	pct := acc.percentage(heartDiseaseCap)
	return &domain.RiskResult{
		RiskPercentage:  pct,
		RiskLevel:       domain.RiskLevelFor(pct),
		KeyFactors:      heartDiseaseKeyFactors(rec),
		Recommendations: recommendationsFor(domain.HEART_DISEASE),
	}, nil
}
