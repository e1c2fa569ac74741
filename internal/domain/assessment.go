package domain

import (
	"time"
)

// RiskResult is the output of one condition calculator.
type RiskResult struct {
	// RiskPercentage lies in [0, cap] for the condition; scores above the
	// cap are clamped, never rejected.
	RiskPercentage float64 `json:"risk_percentage"`

	RiskLevel RiskLevel `json:"risk_level"`

	// KeyFactors lists the contributing-factor names that fired for this
	// record, in declaration order. No severity ranking.
	KeyFactors []string `json:"key_factors"`

	// Recommendations is the fixed prevention list for the condition,
	// identical for every patient assessed for it.
	Recommendations []string `json:"recommendations"`
}

// RiskResultSet maps each condition identifier to its risk result. It is
// produced fresh per assessment run and never mutated after construction.
type RiskResultSet map[Condition]*RiskResult

// Complete reports whether the set carries a result for every assessed
// condition. The aggregator always returns a complete set or an error.
func (s RiskResultSet) Complete() bool {
	for _, c := range AllConditions {
		if s[c] == nil {
			return false
		}
	}
	return true
}

// HighestRisk returns the condition with the largest risk percentage.
// Presentation-layer convenience; ties resolve to the earlier condition
// in presentation order.
func (s RiskResultSet) HighestRisk() (Condition, *RiskResult) {
	var topCond Condition
	var top *RiskResult
	for _, c := range AllConditions {
		r := s[c]
		if r == nil {
			continue
		}
		if top == nil || r.RiskPercentage > top.RiskPercentage {
			topCond, top = c, r
		}
	}
	return topCond, top
}

// Assessment is one completed assessment run: the record it was computed
// from, the full result set, and the narrative produced by the insight
// generator (placeholder text when that call failed).
type Assessment struct {
	ID        string        `json:"id"`
	Record    PatientRecord `json:"record"`
	Results   RiskResultSet `json:"results"`
	Narrative string        `json:"narrative,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
