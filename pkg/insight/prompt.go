package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/preventive-care-server/internal/domain"
)

// buildAnalysisPrompt renders the clinical analysis request sent to the
// language model. The numbers come straight from the computed result set so
// the narrative can never contradict the scores.
func buildAnalysisPrompt(rec *domain.PatientRecord, results domain.RiskResultSet) string {
	var b strings.Builder

	b.WriteString("As a preventive care specialist, analyze this patient's risk profile and provide clinical insights:\n\n")

	b.WriteString("Patient Profile:\n")
	fmt.Fprintf(&b, "- Age: %d, Gender: %s\n", rec.Age, rec.Gender)
	fmt.Fprintf(&b, "- BMI: %.1f\n", rec.BMI())
	fmt.Fprintf(&b, "- BP: %d/%d mmHg\n", rec.SystolicBP, rec.DiastolicBP)
	fmt.Fprintf(&b, "- HbA1c: %.1f%%\n", rec.HbA1c)
	fmt.Fprintf(&b, "- Total Cholesterol: %.0f mg/dL\n", rec.TotalCholesterol)
	fmt.Fprintf(&b, "- LDL: %.0f mg/dL\n", rec.LDLCholesterol)
	fmt.Fprintf(&b, "- Family History: Diabetes=%t, Hypertension=%t\n", rec.FamilyDiabetes, rec.FamilyHypertension)
	fmt.Fprintf(&b, "- Personal History: Gestational Diabetes=%t\n", rec.GestationalDiabetes)

	b.WriteString("\nRisk Assessment Results:\n")
	for _, cond := range domain.AllConditions {
		if res, ok := results[cond]; ok {
			fmt.Fprintf(&b, "- %s: %.1f%%\n", cond.DisplayName(), res.RiskPercentage)
		}
	}

	b.WriteString(`
Please provide:
1. Key clinical insights about interconnected risks
2. Priority interventions based on risk profile
3. Specific recommendations for this patient
4. Timeline for reassessment

Focus on evidence-based recommendations and explain the rationale.
`)

	return b.String()
}

// buildConditionPrompt renders the single-condition advice request.
func buildConditionPrompt(rec *domain.PatientRecord, condition domain.Condition) string {
	profile, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		profile = []byte(rec.Summary())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Provide personalized prevention recommendations for %s based on this patient profile:\n\n",
		condition.DisplayName())
	b.Write(profile)
	b.WriteString(`

Include specific, actionable recommendations for:
1. Lifestyle modifications
2. Monitoring parameters
3. When to seek medical attention
4. Evidence-based preventive measures
`)

	return b.String()
}
