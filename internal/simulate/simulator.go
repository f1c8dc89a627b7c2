// Package simulate recomputes an employee's attrition risk under proposed
// retention interventions.
package simulate

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/retentionai/retention-cli/internal/model"
	"github.com/retentionai/retention-cli/internal/scorer"
)

// Retention effect multipliers on the attrition probability.
const (
	promotionMultiplier  = 0.70
	remoteWorkMultiplier = 0.60
	trainingMultiplier   = 0.75

	// Each 10% raise shaves ~15% off the probability, floored at a 50%
	// multiplier.
	salaryEffectPerPct = 0.005
	salaryFloor        = 0.5
)

// Simulation-specific label thresholds. Deliberately kept distinct from the
// primary scorer's 0.7/0.4 closed-above set; these are open below.
const (
	simHighThreshold   = 0.6
	simMediumThreshold = 0.35
)

// Result is the outcome of one what-if simulation. Error is set instead of
// the projection fields when the simulation could not run; a Result never
// accompanies a Go error.
type Result struct {
	OriginalRisk        string         `json:"original_risk"`
	OriginalProbability float64        `json:"original_probability"`
	NewRisk             string         `json:"new_risk"`
	NewProbability      float64        `json:"new_probability"`
	ChangesApplied      map[string]any `json:"changes_applied"`
	FactorsConsidered   []string       `json:"factors_considered"`
	Error               string         `json:"error,omitempty"`
}

// Simulator recomputes risk projections using the primary risk scorer plus
// deterministic retention heuristics.
type Simulator struct {
	risk *scorer.RiskScorer
}

// New creates a Simulator.
func New(risk *scorer.RiskScorer) *Simulator {
	return &Simulator{risk: risk}
}

// Run applies the change-set to one scored employee and returns the adjusted
// projection. Recognized changes: MonthlyIncome (number), Promotion,
// RemoteWork, Training (booleans). Unrecognized keys are ignored. All
// failures surface in Result.Error, never as a Go error.
func (s *Simulator) Run(ctx context.Context, emp model.EmployeeResult, changes map[string]any) Result {
	raw := emp.RawData
	if len(raw) == 0 {
		return Result{Error: "Raw data not available for simulation."}
	}

	ch := model.Row(changes)
	originalIncome := raw.Float(model.FieldMonthlyIncome, 5000)

	// Income overrides feed the classifier directly, so any income
	// sensitivity the model learned is captured before the heuristics.
	simRow := raw.Clone()
	if _, ok := changes[model.FieldMonthlyIncome]; ok {
		simRow[model.FieldMonthlyIncome] = ch.Float(model.FieldMonthlyIncome, originalIncome)
	}

	base, err := s.risk.ScoreOne(ctx, simRow)
	if err != nil {
		zap.L().Error("simulate: base prediction failed",
			zap.String("employee_id", emp.EmployeeID),
			zap.Error(err),
		)
		return Result{Error: err.Error()}
	}

	prob := base.Probability
	factors := []string{}

	newIncome := ch.Float(model.FieldMonthlyIncome, originalIncome)
	var salaryIncreasePct float64
	if originalIncome > 0 {
		salaryIncreasePct = (newIncome - originalIncome) / originalIncome * 100
	}

	if salaryIncreasePct > 0 {
		prob *= math.Max(salaryFloor, 1-salaryIncreasePct*salaryEffectPerPct)
		factors = append(factors, fmt.Sprintf("Salary +%.0f%%", salaryIncreasePct))
	}
	if ch.Truthy("Promotion") {
		prob *= promotionMultiplier
		factors = append(factors, "Promotion")
	}
	if ch.Truthy("RemoteWork") {
		prob *= remoteWorkMultiplier
		factors = append(factors, "Remote Work")
	}
	if ch.Truthy("Training") {
		prob *= trainingMultiplier
		factors = append(factors, "Training")
	}

	prob = math.Max(0.01, math.Min(0.99, prob))

	zap.L().Info("simulate: projection complete",
		zap.String("employee_id", emp.EmployeeID),
		zap.Float64("original_probability", emp.Risk.Probability),
		zap.Float64("new_probability", prob),
		zap.Strings("factors", factors),
	)

	return Result{
		OriginalRisk:        emp.Risk.Label,
		OriginalProbability: emp.Risk.Probability,
		NewRisk:             label(prob),
		NewProbability:      prob,
		ChangesApplied:      changes,
		FactorsConsidered:   factors,
	}
}

func label(prob float64) string {
	switch {
	case prob > simHighThreshold:
		return model.RiskHigh
	case prob > simMediumThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
