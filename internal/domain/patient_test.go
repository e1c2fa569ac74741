package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() PatientRecord {
	return PatientRecord{
		PatientID:        "78901",
		Name:             "Sarah Johnson",
		Age:              45,
		Gender:           FEMALE,
		HeightCM:         165,
		WeightKG:         70,
		Smoking:          SmokingNever,
		Alcohol:          AlcoholOccasional,
		Exercise:         ExerciseModerate,
		Diet:             DietStandard,
		FamilyCancer:     FamilyCancerNone,
		SystolicBP:       128,
		DiastolicBP:      82,
		HeartRate:        72,
		FastingGlucose:   97,
		HbA1c:            5.7,
		TotalCholesterol: 201,
		LDLCholesterol:   120,
		HDLCholesterol:   54,
	}
}

func TestPatientRecordBMI(t *testing.T) {
	rec := validRecord()
	// 70 / 1.65^2
	assert.InDelta(t, 25.71, rec.BMI(), 0.01)
}

func TestPatientRecordValidate(t *testing.T) {
	rec := validRecord()
	require.NoError(t, rec.Validate())
}

func TestPatientRecordValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PatientRecord)
		field  string
	}{
		{"age too low", func(r *PatientRecord) { r.Age = 17 }, "age"},
		{"age too high", func(r *PatientRecord) { r.Age = 101 }, "age"},
		{"bad gender", func(r *PatientRecord) { r.Gender = "X" }, "gender"},
		{"height too low", func(r *PatientRecord) { r.HeightCM = 90 }, "height_cm"},
		{"weight too high", func(r *PatientRecord) { r.WeightKG = 250 }, "weight_kg"},
		{"systolic out of range", func(r *PatientRecord) { r.SystolicBP = 210 }, "systolic_bp"},
		{"diastolic out of range", func(r *PatientRecord) { r.DiastolicBP = 20 }, "diastolic_bp"},
		{"heart rate out of range", func(r *PatientRecord) { r.HeartRate = 30 }, "heart_rate"},
		{"glucose out of range", func(r *PatientRecord) { r.FastingGlucose = 400 }, "fasting_glucose"},
		{"hba1c out of range", func(r *PatientRecord) { r.HbA1c = 2.0 }, "hba1c"},
		{"total cholesterol out of range", func(r *PatientRecord) { r.TotalCholesterol = 50 }, "total_cholesterol"},
		{"ldl out of range", func(r *PatientRecord) { r.LDLCholesterol = 400 }, "ldl_cholesterol"},
		{"hdl zero", func(r *PatientRecord) { r.HDLCholesterol = 0 }, "hdl_cholesterol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			err := rec.Validate()
			require.Error(t, err)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr), "expected a FieldError")
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}
