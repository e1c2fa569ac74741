package domain

import "fmt"

// PatientRecord is the validated, immutable input for one assessment run.
// Range enforcement is the responsibility of the upstream validator (the API
// binding layer); Validate exists as a fail-fast guard so a record that slips
// past it produces a descriptive error instead of a silently wrong score.
type PatientRecord struct {
	// Identity, carried through but never scored.
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`

	// Demographics.
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`

	// Anthropometrics. BMI is derived once via BMI() and reused by every
	// calculator so all conditions score against the same value.
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`

	// Lifestyle, recorded but not consumed by any current scoring formula.
	Smoking  SmokingStatus `json:"smoking"`
	Alcohol  AlcoholUse    `json:"alcohol"`
	Exercise ExerciseLevel `json:"exercise"`
	Diet     DietPattern   `json:"diet"`

	// Personal history.
	GestationalDiabetes bool `json:"gestational_diabetes"`
	DepressionHistory   bool `json:"depression_history"`

	// Family history. FamilyCancer is informational only.
	FamilyDiabetes     bool                `json:"family_diabetes"`
	FamilyHypertension bool                `json:"family_hypertension"`
	FamilyCancer       FamilyCancerHistory `json:"family_cancer"`

	// Vitals.
	SystolicBP  int `json:"systolic_bp"`
	DiastolicBP int `json:"diastolic_bp"`
	HeartRate   int `json:"heart_rate"`

	// Labs.
	FastingGlucose   float64 `json:"fasting_glucose"`
	HbA1c            float64 `json:"hba1c"`
	TotalCholesterol float64 `json:"total_cholesterol"`
	LDLCholesterol   float64 `json:"ldl_cholesterol"`
	HDLCholesterol   float64 `json:"hdl_cholesterol"`
}

// BMI returns weight_kg / (height_cm/100)^2.
func (r *PatientRecord) BMI() float64 {
	heightM := r.HeightCM / 100
	return r.WeightKG / (heightM * heightM)
}

// Validate checks that every field used by the calculators is within its
// documented range. A failure here is a defect of the upstream validator, so
// the error names the offending field for diagnosis.
func (r *PatientRecord) Validate() error {
	if r.Age < 18 || r.Age > 100 {
		return NewFieldError("age", "must be between 18 and 100", r.Age)
	}
	if !r.Gender.IsValid() {
		return NewFieldError("gender", "must be Female, Male or Other", r.Gender)
	}
	if r.HeightCM < 100 || r.HeightCM > 250 {
		return NewFieldError("height_cm", "must be between 100 and 250", r.HeightCM)
	}
	if r.WeightKG < 30 || r.WeightKG > 200 {
		return NewFieldError("weight_kg", "must be between 30 and 200", r.WeightKG)
	}
	if r.SystolicBP < 70 || r.SystolicBP > 200 {
		return NewFieldError("systolic_bp", "must be between 70 and 200", r.SystolicBP)
	}
	if r.DiastolicBP < 40 || r.DiastolicBP > 120 {
		return NewFieldError("diastolic_bp", "must be between 40 and 120", r.DiastolicBP)
	}
	if r.HeartRate < 40 || r.HeartRate > 150 {
		return NewFieldError("heart_rate", "must be between 40 and 150", r.HeartRate)
	}
	if r.FastingGlucose < 50 || r.FastingGlucose > 300 {
		return NewFieldError("fasting_glucose", "must be between 50 and 300", r.FastingGlucose)
	}
	if r.HbA1c < 3.0 || r.HbA1c > 15.0 {
		return NewFieldError("hba1c", "must be between 3.0 and 15.0", r.HbA1c)
	}
	if r.TotalCholesterol < 100 || r.TotalCholesterol > 400 {
		return NewFieldError("total_cholesterol", "must be between 100 and 400", r.TotalCholesterol)
	}
	if r.LDLCholesterol < 50 || r.LDLCholesterol > 300 {
		return NewFieldError("ldl_cholesterol", "must be between 50 and 300", r.LDLCholesterol)
	}
	if r.HDLCholesterol < 20 || r.HDLCholesterol > 100 {
		return NewFieldError("hdl_cholesterol", "must be between 20 and 100", r.HDLCholesterol)
	}
	return nil
}

// Summary returns a short description for log lines, without exposing labs.
func (r *PatientRecord) Summary() string {
	return fmt.Sprintf("patient %s (age %d, %s)", r.PatientID, r.Age, r.Gender)
}
