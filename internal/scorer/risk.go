// Package scorer turns employee rows into risk and business-impact
// assessments.
package scorer

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/retentionai/retention-cli/internal/model"
	"github.com/retentionai/retention-cli/pkg/modelserver"
)

// Risk label thresholds, closed above: a probability of exactly 0.7 is High,
// exactly 0.4 is Medium.
const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4
)

// RiskScorer wraps the classifier behind the model server handle and maps
// probabilities to risk labels.
type RiskScorer struct {
	models *modelserver.Handle
}

// NewRiskScorer creates a RiskScorer backed by the given model handle.
func NewRiskScorer(models *modelserver.Handle) *RiskScorer {
	return &RiskScorer{models: models}
}

// ScoreBatch classifies the whole dataset in one call. If the classifier is
// unavailable the error propagates (check with modelserver.ErrUnavailable);
// there are no partial results.
func (s *RiskScorer) ScoreBatch(ctx context.Context, rows []model.Row) ([]model.RiskAssessment, error) {
	client, err := s.models.Get(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "scorer: classifier")
	}

	probs, err := client.PredictProbabilities(ctx, toPayload(rows))
	if err != nil {
		return nil, eris.Wrap(err, "scorer: predict batch")
	}

	out := make([]model.RiskAssessment, len(probs))
	for i, p := range probs {
		out[i] = model.RiskAssessment{Probability: p, Label: RiskLabel(p)}
	}

	zap.L().Debug("scorer: batch scored", zap.Int("rows", len(rows)))
	return out, nil
}

// ScoreOne classifies a single row. Used by the simulator to re-predict a
// modified record.
func (s *RiskScorer) ScoreOne(ctx context.Context, row model.Row) (model.RiskAssessment, error) {
	res, err := s.ScoreBatch(ctx, []model.Row{row})
	if err != nil {
		return model.RiskAssessment{}, err
	}
	return res[0], nil
}

// RiskLabel maps an attrition probability to its risk tier.
func RiskLabel(p float64) string {
	switch {
	case p >= highRiskThreshold:
		return model.RiskHigh
	case p >= mediumRiskThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func toPayload(rows []model.Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = map[string]any(r)
	}
	return out
}
