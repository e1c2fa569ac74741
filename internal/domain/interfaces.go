package domain

import "context"

// RiskCalculator is the engine's sole entry point: one validated record in,
// the complete five-condition result set out. Implementations are pure and
// deterministic; two calls with an identical record yield identical sets.
type RiskCalculator interface {
	CalculateAllRisks(record *PatientRecord) (RiskResultSet, error)
}

// InsightGenerator produces a free-text clinical narrative from a completed
// result set. It is invoked only after the set is complete, and its failure
// must degrade to an absent narrative without touching the scores.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, record *PatientRecord, results RiskResultSet) (string, error)
}
