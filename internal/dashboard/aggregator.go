// Package dashboard aggregates ranked employee results into the summary the
// dashboard renders.
package dashboard

import (
	"fmt"
	"sort"

	"github.com/retentionai/retention-cli/internal/model"
)

const (
	maxTopFactors = 5
	maxInsights   = 3
)

// EmptySummary is returned before any dataset has been processed.
func EmptySummary() model.Summary {
	return model.Summary{
		RiskBreakdown:  model.RiskBreakdown{},
		DepartmentRisk: map[string]int{},
		TopRiskFactors: []model.FactorCount{},
		Insights:       []string{"Please upload a dataset to generate insights."},
	}
}

// Summarize computes the dashboard summary over the current result list.
func Summarize(results []model.EmployeeResult) model.Summary {
	if len(results) == 0 {
		return EmptySummary()
	}

	summary := model.Summary{
		TotalEmployees: len(results),
		DepartmentRisk: map[string]int{},
	}

	factorCounts := map[string]int{}
	var factorOrder []string

	for _, r := range results {
		switch r.Risk.Label {
		case model.RiskHigh:
			summary.RiskBreakdown.High++
			summary.DepartmentRisk[r.Department]++
		case model.RiskMedium:
			summary.RiskBreakdown.Medium++
		case model.RiskLow:
			summary.RiskBreakdown.Low++
		}

		if r.Impact.Category == model.ImpactCritical {
			summary.CriticalTalent++
		}

		// Systemic factors are counted across at-risk employees only.
		if r.Risk.Label == model.RiskHigh || r.Risk.Label == model.RiskMedium {
			for _, f := range r.KeyFactors {
				if _, seen := factorCounts[f]; !seen {
					factorOrder = append(factorOrder, f)
				}
				factorCounts[f]++
			}
		}
	}

	summary.TopRiskFactors = topFactors(factorCounts, factorOrder)
	summary.Insights = insights(results)

	return summary
}

// topFactors returns the five most frequent factors, counts descending,
// ties in first-seen order.
func topFactors(counts map[string]int, order []string) []model.FactorCount {
	out := make([]model.FactorCount, 0, len(order))
	for _, f := range order {
		out = append(out, model.FactorCount{Factor: f, Count: counts[f]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > maxTopFactors {
		out = out[:maxTopFactors]
	}
	return out
}

// insights generates up to three narrative insights in fixed priority order.
func insights(results []model.EmployeeResult) []string {
	var out []string

	var highRisk []model.EmployeeResult
	for _, r := range results {
		if r.Risk.Label == model.RiskHigh {
			highRisk = append(highRisk, r)
		}
	}

	if len(highRisk) > 0 {
		// Truncated, not rounded.
		pct := int(float64(len(highRisk)) / float64(len(results)) * 100)
		out = append(out, fmt.Sprintf("%d employees (%d%%) are identified as High Risk.", len(highRisk), pct))
	}

	criticalAtRisk := 0
	for _, r := range highRisk {
		if r.Impact.Category == model.ImpactCritical {
			criticalAtRisk++
		}
	}
	if criticalAtRisk > 0 {
		out = append(out, fmt.Sprintf("URGENT: %d Critical Impact employees are at High Risk of leaving.", criticalAtRisk))
	}

	if factor := topHighRiskFactor(highRisk); factor != "" {
		out = append(out, fmt.Sprintf("Primary attrition driver appears to be: %s.", factor))
	}

	if len(out) == 0 {
		out = append(out, "Workforce stability looks good. Validated against current model.")
	}
	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

// topHighRiskFactor returns the single most frequent key factor across High
// Risk employees, counting repeats. Empty when none exist.
func topHighRiskFactor(highRisk []model.EmployeeResult) string {
	counts := map[string]int{}
	best := ""
	bestCount := 0
	for _, r := range highRisk {
		for _, f := range r.KeyFactors {
			counts[f]++
			if counts[f] > bestCount {
				best, bestCount = f, counts[f]
			}
		}
	}
	return best
}
