// Package domain contains core business entities and types for multi-condition
// preventive-care risk assessment.
//
// The scoring model is a deterministic linear rule engine: every risk score is
// reproducible from the patient record alone, with no randomness or external state.
// It is an explainable categorization tool, not a clinically validated predictor.
package domain

// Condition identifies one of the assessed health conditions.
type Condition string

const (
	HYPERTENSION   Condition = "hypertension"
	DIABETES       Condition = "diabetes"
	KIDNEY_DISEASE Condition = "kidney_disease"
	STROKE         Condition = "stroke"
	HEART_DISEASE  Condition = "heart_disease"
)

// AllConditions lists every assessed condition in presentation order.
// A complete assessment always carries a result for each of these.
var AllConditions = []Condition{
	HYPERTENSION,
	DIABETES,
	KIDNEY_DISEASE,
	STROKE,
	HEART_DISEASE,
}

// RiskLevel represents the categorical risk band derived from a risk percentage.
type RiskLevel string

const (
	LOW      RiskLevel = "LOW"
	MODERATE RiskLevel = "MODERATE"
	HIGH     RiskLevel = "HIGH"
)

// Risk band cut points, inclusive on the lower edge of each band.
const (
	ModerateRiskThreshold = 30.0
	HighRiskThreshold     = 60.0
)

// RiskLevelFor maps a risk percentage to its categorical band. This is the single
// categorization authority shared by every calculator and downstream consumer.
func RiskLevelFor(riskPercentage float64) RiskLevel {
	switch {
	case riskPercentage >= HighRiskThreshold:
		return HIGH
	case riskPercentage >= ModerateRiskThreshold:
		return MODERATE
	default:
		return LOW
	}
}

// Gender represents the patient's recorded gender.
type Gender string

const (
	FEMALE Gender = "Female"
	MALE   Gender = "Male"
	OTHER  Gender = "Other"
)

// SmokingStatus represents smoking history. Accepted on the record but not
// consumed by any current scoring formula.
type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "Never"
	SmokingFormer  SmokingStatus = "Former"
	SmokingCurrent SmokingStatus = "Current"
)

// AlcoholUse represents alcohol consumption level (recorded, not scored).
type AlcoholUse string

const (
	AlcoholNone       AlcoholUse = "None"
	AlcoholOccasional AlcoholUse = "Occasional"
	AlcoholModerate   AlcoholUse = "Moderate"
	AlcoholHeavy      AlcoholUse = "Heavy"
)

// ExerciseLevel represents habitual activity level (recorded, not scored).
type ExerciseLevel string

const (
	ExerciseSedentary  ExerciseLevel = "Sedentary"
	ExerciseLight      ExerciseLevel = "Light"
	ExerciseModerate   ExerciseLevel = "Moderate"
	ExerciseActive     ExerciseLevel = "Active"
	ExerciseVeryActive ExerciseLevel = "Very Active"
)

// DietPattern represents the reported diet pattern (recorded, not scored).
type DietPattern string

const (
	DietStandard      DietPattern = "Standard"
	DietMediterranean DietPattern = "Mediterranean"
	DietPlantBased    DietPattern = "Plant-based"
	DietLowCarb       DietPattern = "Low-carb"
	DietOther         DietPattern = "Other"
)

// FamilyCancerHistory represents reported family cancer history. Informational
// only; it feeds screening suggestions, never a risk score.
type FamilyCancerHistory string

const (
	FamilyCancerNone       FamilyCancerHistory = "None"
	FamilyCancerBreast     FamilyCancerHistory = "Breast"
	FamilyCancerProstate   FamilyCancerHistory = "Prostate"
	FamilyCancerLung       FamilyCancerHistory = "Lung"
	FamilyCancerColorectal FamilyCancerHistory = "Colorectal"
	FamilyCancerOther      FamilyCancerHistory = "Other"
)

// IsValid reports whether the condition is one of the assessed conditions.
func (c Condition) IsValid() bool {
	switch c {
	case HYPERTENSION, DIABETES, KIDNEY_DISEASE, STROKE, HEART_DISEASE:
		return true
	default:
		return false
	}
}

// String returns the condition identifier used as the result-set key.
func (c Condition) String() string {
	return string(c)
}

// DisplayName returns the human-readable condition name for reports.
func (c Condition) DisplayName() string {
	switch c {
	case HYPERTENSION:
		return "Hypertension"
	case DIABETES:
		return "Type 2 Diabetes"
	case KIDNEY_DISEASE:
		return "Chronic Kidney Disease"
	case STROKE:
		return "Stroke"
	case HEART_DISEASE:
		return "Ischemic Heart Disease"
	default:
		return string(c)
	}
}

// IsValid reports whether the risk level is a known band.
func (l RiskLevel) IsValid() bool {
	switch l {
	case LOW, MODERATE, HIGH:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level.
func (l RiskLevel) String() string {
	return string(l)
}

// RequiresFollowUp reports whether the band warrants clinical follow-up
// prioritization in the presentation layer.
func (l RiskLevel) RequiresFollowUp() bool {
	return l == MODERATE || l == HIGH
}

// IsValid reports whether the gender value is one of the accepted options.
func (g Gender) IsValid() bool {
	switch g {
	case FEMALE, MALE, OTHER:
		return true
	default:
		return false
	}
}
