package service

import (
	"github.com/preventive-care-server/internal/domain"
)

// ConditionModel is a named, immutable coefficient bundle: a base risk
// fraction plus per-factor weights. Only Hypertension and Diabetes use this
// pattern; the remaining calculators carry their staged rules inline, and
// that asymmetry is preserved deliberately rather than force-unified.
type ConditionModel struct {
	BaseRisk float64
	Weights  map[string]float64
}

// Weight names for the registry models.
const (
	WeightAge                 = "age"
	WeightBMI                 = "bmi"
	WeightFamilyHistory       = "family_history"
	WeightBloodPressure       = "blood_pressure"
	WeightGestationalDiabetes = "gestational_diabetes"
	WeightHbA1c               = "hba1c"
)

// ModelRegistry holds the named coefficient sets per condition.
type ModelRegistry struct {
	models map[domain.Condition]ConditionModel
}

// NewModelRegistry loads the risk models and coefficients.
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{
		models: map[domain.Condition]ConditionModel{
			domain.HYPERTENSION: {
				BaseRisk: 0.10,
				Weights: map[string]float64{
					WeightAge:           0.02,
					WeightBMI:           0.03,
					WeightFamilyHistory: 0.15,
					WeightBloodPressure: 0.0025,
				},
			},
			domain.DIABETES: {
				BaseRisk: 0.08,
				Weights: map[string]float64{
					WeightAge:                 0.015,
					WeightBMI:                 0.04,
					WeightFamilyHistory:       0.20,
					WeightGestationalDiabetes: 0.30,
					WeightHbA1c:               0.35,
				},
			},
		},
	}
}

// Model returns the coefficient bundle for a condition, if one is registered.
func (r *ModelRegistry) Model(c domain.Condition) (ConditionModel, bool) {
	m, ok := r.models[c]
	return m, ok
}

// Per-condition risk percentage caps. Scores above the cap are clamped.
const (
	hypertensionCap  = 95.0
	diabetesCap      = 95.0
	kidneyDiseaseCap = 80.0
	strokeCap        = 90.0
	heartDiseaseCap  = 90.0
)

// recommendationsByCondition holds the fixed, condition-keyed prevention
// lists. They are identical for every patient with that condition and are
// not personalized by risk level or fired factors.
var recommendationsByCondition = map[domain.Condition][]string{
	domain.HYPERTENSION: {
		"DASH diet implementation",
		"Regular aerobic exercise",
		"Weight management",
		"Sodium restriction",
		"Stress management",
	},
	domain.DIABETES: {
		"Structured meal planning",
		"Regular glucose monitoring",
		"Weight loss program",
		"Diabetes prevention program",
		"Regular physical activity",
	},
	domain.KIDNEY_DISEASE: {
		"Blood pressure control",
		"Diabetes prevention",
		"Annual kidney function tests",
		"Adequate hydration",
		"Avoid nephrotoxic medications",
	},
	domain.STROKE: {
		"Blood pressure management",
		"Cholesterol control",
		"Regular cardio exercise",
		"Antiplatelet therapy consideration",
		"Stroke symptom education",
	},
	domain.HEART_DISEASE: {
		"Cardiac risk factor modification",
		"Regular exercise program",
		"Heart-healthy diet",
		"Cholesterol management",
		"Regular cardiac screening",
	},
}

// kidneyDiseaseKeyFactors is the fixed factor list reported for kidney
// disease regardless of which contributions actually fired. Preserved as
// observed source behavior; unifying with the other calculators would
// change displayed factors without changing any score.
var kidneyDiseaseKeyFactors = []string{
	"Diabetes risk",
	"Hypertension risk",
	"Age",
}

// recommendationsFor returns a copy of the fixed list so callers cannot
// mutate the registry data.
func recommendationsFor(c domain.Condition) []string {
	return copyStrings(recommendationsByCondition[c])
}

func copyStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
