package scorer

import (
	"math"

	"github.com/retentionai/retention-cli/internal/model"
)

// Impact weights over the normalized calculation attributes.
const (
	weightPerformance = 0.35
	weightExperience  = 0.25
	weightTenure      = 0.25
	weightIncome      = 0.15
)

// Impact category boundaries, closed above.
const (
	criticalImpactThreshold  = 70.0
	importantImpactThreshold = 40.0
)

var impactExplanations = map[string]string{
	model.ImpactCritical:  "High value due to strong performance and extensive institutional knowledge.",
	model.ImpactImportant: "Valuable contributor with significant experience.",
	model.ImpactStandard:  "Standard business impact role.",
}

// ScoreImpact computes the 0-100 business-impact score for one employee,
// normalizing each calculation attribute against the dataset maxima.
// Ratios are capped at 1.0; negative raw values are passed through and may
// depress the score.
func ScoreImpact(row model.Row, maxima model.Maxima) model.ImpactAssessment {
	normPerf := math.Min(row.Float(model.FieldPerformanceRating, 1)/maxima.PerformanceRating, 1.0)
	normExp := math.Min(row.Float(model.FieldTotalWorkingYears, 0)/maxima.TotalWorkingYears, 1.0)
	normTenure := math.Min(row.Float(model.FieldYearsAtCompany, 0)/maxima.YearsAtCompany, 1.0)
	normIncome := math.Min(row.Float(model.FieldMonthlyIncome, 0)/maxima.MonthlyIncome, 1.0)

	raw := normPerf*weightPerformance +
		normExp*weightExperience +
		normTenure*weightTenure +
		normIncome*weightIncome

	score := Round1(raw * 100)

	category := model.ImpactStandard
	switch {
	case score >= criticalImpactThreshold:
		category = model.ImpactCritical
	case score >= importantImpactThreshold:
		category = model.ImpactImportant
	}

	return model.ImpactAssessment{
		Score:       score,
		Category:    category,
		Explanation: impactExplanations[category],
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
