package service

import (
	"time"

	"github.com/preventive-care-server/internal/domain"
)

// Investigations groups recommended diagnostic tests by urgency.
type Investigations struct {
	Immediate []string `json:"immediate"`
	FollowUp  []string `json:"followup"`
}

// LifestylePlan holds the lifestyle arm of a prevention plan.
type LifestylePlan struct {
	Exercise []string `json:"exercise"`
	Diet     []string `json:"diet"`
	Stress   []string `json:"stress"`
}

// ScreeningItem is one scheduled screening test.
type ScreeningItem struct {
	Test      string    `json:"test"`
	Frequency string    `json:"frequency"`
	NextDue   time.Time `json:"next_due"`
}

// PreventionPlan is the full prevention program for a patient.
type PreventionPlan struct {
	Lifestyle LifestylePlan   `json:"lifestyle"`
	Medical   []string        `json:"medical"`
	Screening []ScreeningItem `json:"screening"`
	FollowUp  []string        `json:"followup"`
}

// RecommendedInvestigations derives the diagnostic workup from the record.
// Immediate tests trigger on the same vitals and labs the calculators score;
// follow-up always includes the standing annual monitoring set.
func RecommendedInvestigations(rec *domain.PatientRecord) Investigations {
	inv := Investigations{
		Immediate: []string{},
		FollowUp:  []string{},
	}

	if rec.HbA1c >= 5.7 {
		inv.Immediate = append(inv.Immediate, "Oral Glucose Tolerance Test", "Fasting Insulin")
	}
	if rec.SystolicBP >= 130 {
		inv.Immediate = append(inv.Immediate, "24-hour BP monitoring", "ECG")
	}
	if rec.Age >= 45 {
		inv.Immediate = append(inv.Immediate, "Lipid Profile", "Kidney Function Tests")
	}

	if rec.FamilyCancer == domain.FamilyCancerBreast {
		inv.FollowUp = append(inv.FollowUp, "BRCA Gene Testing", "Enhanced MRI Screening")
	}

	inv.FollowUp = append(inv.FollowUp,
		"Annual HbA1c monitoring",
		"Cardiovascular risk assessment",
		"Cancer screening as per guidelines",
	)

	return inv
}

// BuildPreventionPlan assembles the prevention program for a record. The
// lifestyle, medical and follow-up arms are standing content; the screening
// schedule is gated on age and gender with due dates computed from now.
func BuildPreventionPlan(rec *domain.PatientRecord, now time.Time) PreventionPlan {
	return PreventionPlan{
		Lifestyle: LifestylePlan{
			Exercise: []string{
				"Increase to 150 minutes moderate aerobic activity per week",
				"Add 2 days of strength training",
				"Continue yoga practice for stress management",
				"Include high-intensity interval training once weekly",
			},
			Diet: []string{
				"Implement structured meal timing",
				"Follow Mediterranean or DASH diet pattern",
				"Reduce sodium intake to <2300mg/day",
				"Increase fiber intake to 25-30g/day",
				"Limit processed foods and added sugars",
			},
			Stress: []string{
				"Continue regular yoga practice",
				"Consider mindfulness meditation",
				"Ensure 7-8 hours quality sleep",
				"Work-life balance strategies",
			},
		},
		Medical: []string{
			"Consider low-dose aspirin for cardiovascular prevention",
			"Monitor blood pressure regularly",
			"Vitamin D supplementation assessment",
			"Annual flu vaccination",
			"Consider statin therapy evaluation",
		},
		Screening: screeningSchedule(rec, now),
		FollowUp: []string{
			"Primary care follow-up in 3 months",
			"Endocrinologist consultation for diabetes prevention",
			"Nutritionist consultation for meal planning",
			"Annual comprehensive physical examination",
			"Quarterly lifestyle progress review",
		},
	}
}

// screeningSchedule builds the screening table. Blood pressure and lipid
// checks apply to everyone; mammography is gated on gender and age 40,
// colonoscopy on age 45, HbA1c rechecks on a prediabetic reading.
func screeningSchedule(rec *domain.PatientRecord, now time.Time) []ScreeningItem {
	items := []ScreeningItem{
		{Test: "Blood Pressure", Frequency: "Monthly", NextDue: now.AddDate(0, 1, 0)},
		{Test: "Lipid Profile", Frequency: "Annual", NextDue: now.AddDate(1, 0, 0)},
	}

	if rec.HbA1c >= 5.7 {
		items = append(items, ScreeningItem{
			Test: "HbA1c", Frequency: "6 months", NextDue: now.AddDate(0, 6, 0),
		})
	} else {
		items = append(items, ScreeningItem{
			Test: "HbA1c", Frequency: "Annual", NextDue: now.AddDate(1, 0, 0),
		})
	}

	if rec.Gender == domain.FEMALE && rec.Age >= 40 {
		items = append(items, ScreeningItem{
			Test: "Mammography", Frequency: "Annual", NextDue: now.AddDate(1, 0, 0),
		})
	}

	if rec.Age >= 45 {
		items = append(items, ScreeningItem{
			Test: "Colonoscopy", Frequency: "10 years", NextDue: now.AddDate(10, 0, 0),
		})
	}

	return items
}
