package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retentionai/retention-cli/internal/model"
)

func result(id, dept, riskLabel, impactCat string, factors ...string) model.EmployeeResult {
	return model.EmployeeResult{
		EmployeeID: id,
		Department: dept,
		Risk:       model.RiskAssessment{Label: riskLabel},
		Impact:     model.ImpactAssessment{Category: impactCat},
		KeyFactors: factors,
	}
}

func TestEmptySummary(t *testing.T) {
	s := EmptySummary()

	assert.Zero(t, s.TotalEmployees)
	assert.NotNil(t, s.DepartmentRisk)
	assert.NotNil(t, s.TopRiskFactors)
	assert.Equal(t, []string{"Please upload a dataset to generate insights."}, s.Insights)
}

func TestSummarizeNoResults(t *testing.T) {
	assert.Equal(t, EmptySummary(), Summarize(nil))
}

func TestSummarizeCounts(t *testing.T) {
	results := []model.EmployeeResult{
		result("1", "Sales", model.RiskHigh, model.ImpactCritical, "Excessive overtime"),
		result("2", "Sales", model.RiskHigh, model.ImpactStandard, "Excessive overtime"),
		result("3", "R&D", model.RiskMedium, model.ImpactCritical, "Compensation level"),
		result("4", "R&D", model.RiskLow, model.ImpactImportant, "Long commute time."),
	}

	s := Summarize(results)

	assert.Equal(t, 4, s.TotalEmployees)
	assert.Equal(t, 2, s.RiskBreakdown.High)
	assert.Equal(t, 1, s.RiskBreakdown.Medium)
	assert.Equal(t, 1, s.RiskBreakdown.Low)
	assert.Equal(t, 2, s.CriticalTalent)
	assert.Equal(t, map[string]int{"Sales": 2}, s.DepartmentRisk)
}

func TestSummarizeFactorsExcludeLowRisk(t *testing.T) {
	results := []model.EmployeeResult{
		result("1", "Sales", model.RiskHigh, model.ImpactStandard, "Excessive overtime"),
		result("2", "Sales", model.RiskMedium, model.ImpactStandard, "Compensation level"),
		result("3", "R&D", model.RiskLow, model.ImpactStandard, "Long commute time."),
	}

	s := Summarize(results)

	factors := make([]string, 0, len(s.TopRiskFactors))
	for _, f := range s.TopRiskFactors {
		factors = append(factors, f.Factor)
	}
	assert.ElementsMatch(t, []string{"Excessive overtime", "Compensation level"}, factors)
}

func TestTopFactorsOrderAndTruncation(t *testing.T) {
	var results []model.EmployeeResult
	// Factor frequencies: f1 x3, f2 x2, f3..f6 x1 each.
	results = append(results,
		result("1", "A", model.RiskHigh, model.ImpactStandard, "f1", "f2", "f3"),
		result("2", "A", model.RiskHigh, model.ImpactStandard, "f1", "f2", "f4"),
		result("3", "A", model.RiskMedium, model.ImpactStandard, "f1", "f5", "f6"),
	)

	s := Summarize(results)

	require.Len(t, s.TopRiskFactors, 5)
	assert.Equal(t, model.FactorCount{Factor: "f1", Count: 3}, s.TopRiskFactors[0])
	assert.Equal(t, model.FactorCount{Factor: "f2", Count: 2}, s.TopRiskFactors[1])
	// Singleton ties keep first-seen order.
	assert.Equal(t, "f3", s.TopRiskFactors[2].Factor)
	assert.Equal(t, "f4", s.TopRiskFactors[3].Factor)
	assert.Equal(t, "f5", s.TopRiskFactors[4].Factor)
}

func TestInsightsAllBranches(t *testing.T) {
	results := []model.EmployeeResult{
		result("1", "Sales", model.RiskHigh, model.ImpactCritical, "Excessive overtime"),
		result("2", "Sales", model.RiskHigh, model.ImpactStandard, "Excessive overtime"),
		result("3", "R&D", model.RiskLow, model.ImpactStandard),
	}

	s := Summarize(results)

	// 2/3 = 66.66..%, truncated to 66.
	require.Len(t, s.Insights, 3)
	assert.Equal(t, "2 employees (66%) are identified as High Risk.", s.Insights[0])
	assert.Equal(t, "URGENT: 1 Critical Impact employees are at High Risk of leaving.", s.Insights[1])
	assert.Equal(t, "Primary attrition driver appears to be: Excessive overtime.", s.Insights[2])
}

func TestInsightsStableWorkforce(t *testing.T) {
	results := []model.EmployeeResult{
		result("1", "Sales", model.RiskLow, model.ImpactStandard),
		result("2", "R&D", model.RiskLow, model.ImpactImportant),
	}

	s := Summarize(results)

	assert.Equal(t, []string{"Workforce stability looks good. Validated against current model."}, s.Insights)
}

func TestInsightsHighRiskWithoutCritical(t *testing.T) {
	results := []model.EmployeeResult{
		result("1", "Sales", model.RiskHigh, model.ImpactStandard, "Compensation level"),
		result("2", "Sales", model.RiskLow, model.ImpactStandard),
	}

	s := Summarize(results)

	require.Len(t, s.Insights, 2)
	assert.Equal(t, "1 employees (50%) are identified as High Risk.", s.Insights[0])
	assert.Equal(t, "Primary attrition driver appears to be: Compensation level.", s.Insights[1])
}

func TestInsightsHighRiskNoFactors(t *testing.T) {
	results := []model.EmployeeResult{
		result("1", "Sales", model.RiskHigh, model.ImpactStandard),
	}

	s := Summarize(results)

	require.Len(t, s.Insights, 1)
	assert.Equal(t, "1 employees (100%) are identified as High Risk.", s.Insights[0])
}
