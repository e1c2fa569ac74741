package service

import (
	"github.com/preventive-care-server/internal/domain"
)

// Factor attribution re-checks each condition's display thresholds against
// the record and returns the names that fired, in declaration order. The
// display thresholds intentionally differ from some scoring thresholds
// (e.g. hypertension scores systolic BP above 120 but only lists it as a
// key factor above 130); the mismatch is observed source behavior and is
// preserved rather than unified, since unifying would change the displayed
// factors without changing any score.

func hypertensionKeyFactors(rec *domain.PatientRecord) []string {
	var factors []string
	if rec.SystolicBP > 130 {
		factors = append(factors, "Elevated blood pressure")
	}
	if rec.BMI() > 25 {
		factors = append(factors, "Overweight BMI")
	}
	if rec.FamilyHypertension {
		factors = append(factors, "Family history")
	}
	if rec.Age > 45 {
		factors = append(factors, "Age factor")
	}
	return factors
}

func diabetesKeyFactors(rec *domain.PatientRecord) []string {
	var factors []string
	if rec.HbA1c >= 5.7 {
		factors = append(factors, "Prediabetic HbA1c")
	}
	if rec.GestationalDiabetes {
		factors = append(factors, "Gestational diabetes history")
	}
	if rec.FamilyDiabetes {
		factors = append(factors, "Family history")
	}
	if rec.BMI() > 25 {
		factors = append(factors, "BMI")
	}
	return factors
}

func strokeKeyFactors(rec *domain.PatientRecord) []string {
	var factors []string
	if rec.SystolicBP > 130 {
		factors = append(factors, "Blood pressure")
	}
	if rec.HbA1c >= 5.7 {
		factors = append(factors, "Glucose control")
	}
	if rec.LDLCholesterol > 100 {
		factors = append(factors, "Cholesterol")
	}
	if rec.Age > 45 {
		factors = append(factors, "Age")
	}
	return factors
}

// heartDiseaseKeyFactors assumes HDL has already been guarded positive by
// the calculator.
func heartDiseaseKeyFactors(rec *domain.PatientRecord) []string {
	var factors []string
	if rec.TotalCholesterol/rec.HDLCholesterol > 4 {
		factors = append(factors, "Cholesterol ratio")
	}
	if rec.SystolicBP > 130 {
		factors = append(factors, "Blood pressure")
	}
	if rec.HbA1c >= 5.7 {
		factors = append(factors, "Glucose levels")
	}
	return factors
}
