package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preventive-care-server/internal/domain"
)

func TestRecommendedInvestigations_AllTriggers(t *testing.T) {
	rec := testRecord()
	rec.HbA1c = 6.0
	rec.SystolicBP = 135
	rec.Age = 50
	rec.FamilyCancer = domain.FamilyCancerBreast

	inv := RecommendedInvestigations(&rec)

	assert.Equal(t, []string{
		"Oral Glucose Tolerance Test", "Fasting Insulin",
		"24-hour BP monitoring", "ECG",
		"Lipid Profile", "Kidney Function Tests",
	}, inv.Immediate)

	assert.Equal(t, []string{
		"BRCA Gene Testing", "Enhanced MRI Screening",
		"Annual HbA1c monitoring",
		"Cardiovascular risk assessment",
		"Cancer screening as per guidelines",
	}, inv.FollowUp)
}

func TestRecommendedInvestigations_NoTriggers(t *testing.T) {
	rec := testRecord()
	rec.HbA1c = 5.2
	rec.SystolicBP = 118
	rec.Age = 30
	rec.FamilyCancer = domain.FamilyCancerNone

	inv := RecommendedInvestigations(&rec)

	assert.Empty(t, inv.Immediate)
	assert.Equal(t, []string{
		"Annual HbA1c monitoring",
		"Cardiovascular risk assessment",
		"Cancer screening as per guidelines",
	}, inv.FollowUp, "Standing follow-up set always applies")
}

func TestRecommendedInvestigations_BoundaryValues(t *testing.T) {
	rec := testRecord()
	rec.HbA1c = 5.7
	rec.SystolicBP = 130
	rec.Age = 45

	inv := RecommendedInvestigations(&rec)

	assert.Contains(t, inv.Immediate, "Oral Glucose Tolerance Test", "5.7 is inclusive")
	assert.Contains(t, inv.Immediate, "24-hour BP monitoring", "130 is inclusive")
	assert.Contains(t, inv.Immediate, "Lipid Profile", "45 is inclusive")
}

func TestBuildPreventionPlan_StandingContent(t *testing.T) {
	rec := testRecord()
	plan := BuildPreventionPlan(&rec, time.Now())

	assert.Len(t, plan.Lifestyle.Exercise, 4)
	assert.Len(t, plan.Lifestyle.Diet, 5)
	assert.Len(t, plan.Lifestyle.Stress, 4)
	assert.Len(t, plan.Medical, 5)
	assert.Len(t, plan.FollowUp, 5)
	assert.Contains(t, plan.Medical, "Monitor blood pressure regularly")
}

func TestBuildPreventionPlan_ScreeningSchedule(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rec := testRecord() // 45-year-old female, HbA1c 5.7
	plan := BuildPreventionPlan(&rec, now)

	var tests []string
	for _, item := range plan.Screening {
		tests = append(tests, item.Test)
	}
	assert.Equal(t, []string{"Blood Pressure", "Lipid Profile", "HbA1c", "Mammography", "Colonoscopy"}, tests)

	for _, item := range plan.Screening {
		switch item.Test {
		case "Blood Pressure":
			assert.Equal(t, now.AddDate(0, 1, 0), item.NextDue)
		case "HbA1c":
			require.Equal(t, "6 months", item.Frequency, "Prediabetic reading shortens the interval")
			assert.Equal(t, now.AddDate(0, 6, 0), item.NextDue)
		case "Colonoscopy":
			assert.Equal(t, now.AddDate(10, 0, 0), item.NextDue)
		}
	}
}

func TestBuildPreventionPlan_ScreeningGates(t *testing.T) {
	now := time.Now()

	rec := testRecord()
	rec.Gender = domain.MALE
	rec.Age = 30
	rec.HbA1c = 5.0

	plan := BuildPreventionPlan(&rec, now)

	var tests []string
	for _, item := range plan.Screening {
		tests = append(tests, item.Test)
	}
	assert.NotContains(t, tests, "Mammography")
	assert.NotContains(t, tests, "Colonoscopy")
	assert.Contains(t, tests, "Blood Pressure")

	for _, item := range plan.Screening {
		if item.Test == "HbA1c" {
			assert.Equal(t, "Annual", item.Frequency)
		}
	}
}

func TestBuildPreventionPlan_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := testRecord()

	first := BuildPreventionPlan(&rec, now)
	second := BuildPreventionPlan(&rec, now)

	assert.Equal(t, first, second)
}
