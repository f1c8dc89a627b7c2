// Package explain produces up to three ranked human-readable risk drivers
// per employee, preferring the classifier's native attribution and falling
// back to fixed heuristics.
package explain

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/retentionai/retention-cli/internal/model"
	"github.com/retentionai/retention-cli/pkg/modelserver"
)

const maxFactors = 3

// genericFactor is the last-resort explanation when no source produces one.
const genericFactor = "Review generic risk factors."

// Source is one stage of the factor chain. A stage may return an error or an
// empty list; either way the adapter moves on to the next stage.
type Source interface {
	Factors(ctx context.Context, rows []model.Row, rowIndex int) ([]string, error)
}

// Adapter walks an ordered chain of factor sources. It never fails and never
// returns an empty list.
type Adapter struct {
	sources []Source
}

// New builds the production chain: native model attribution, then heuristic
// rules.
func New(models *modelserver.Handle, labels *Labels) *Adapter {
	if labels == nil {
		labels = DefaultLabels()
	}
	return &Adapter{
		sources: []Source{
			&nativeSource{models: models, labels: labels},
			heuristicSource{},
		},
	}
}

// NewWithSources builds an adapter over an explicit chain. Used in tests.
func NewWithSources(sources ...Source) *Adapter {
	return &Adapter{sources: sources}
}

// KeyFactors returns the top risk drivers for one row, at most three, always
// at least one.
func (a *Adapter) KeyFactors(ctx context.Context, rows []model.Row, rowIndex int) []string {
	for _, src := range a.sources {
		factors, err := src.Factors(ctx, rows, rowIndex)
		if err != nil {
			zap.L().Debug("explain: source failed, trying next",
				zap.Int("row", rowIndex),
				zap.Error(err),
			)
			continue
		}
		if len(factors) == 0 {
			continue
		}
		if len(factors) > maxFactors {
			factors = factors[:maxFactors]
		}
		return factors
	}
	return []string{genericFactor}
}

// nativeSource asks the model server for per-feature attributions and keeps
// the strongest positive (risk-increasing) ones.
type nativeSource struct {
	models *modelserver.Handle
	labels *Labels
}

func (s *nativeSource) Factors(ctx context.Context, rows []model.Row, rowIndex int) ([]string, error) {
	client, err := s.models.Get(ctx)
	if err != nil {
		return nil, err
	}

	payload := make([]map[string]any, len(rows))
	for i, r := range rows {
		payload[i] = map[string]any(r)
	}

	attrs, err := client.Attributions(ctx, payload, rowIndex)
	if err != nil {
		return nil, err
	}

	positive := make([]modelserver.Attribution, 0, len(attrs))
	for _, a := range attrs {
		if a.Value > 0 {
			positive = append(positive, a)
		}
	}
	sort.Slice(positive, func(i, j int) bool { return positive[i].Value > positive[j].Value })
	if len(positive) > maxFactors {
		positive = positive[:maxFactors]
	}

	factors := make([]string, len(positive))
	for i, a := range positive {
		factors[i] = s.labels.Resolve(a.Feature) + " is a contributing factor."
	}
	return factors, nil
}

// heuristicSource applies a fixed ordered rule list against the row's raw
// values. Rules fire independently; the adapter truncates to three.
type heuristicSource struct{}

func (heuristicSource) Factors(_ context.Context, rows []model.Row, rowIndex int) ([]string, error) {
	if rowIndex < 0 || rowIndex >= len(rows) {
		return nil, nil
	}
	row := rows[rowIndex]

	var factors []string
	if row.Truthy("OverTime") {
		factors = append(factors, "Working overtime may lead to burnout.")
	}
	if row.Float(model.FieldMonthlyIncome, 5000) < 3000 {
		factors = append(factors, "Compensation is lower than market benchmark.")
	}
	if row.Float(model.FieldYearsAtCompany, 5) < 2 {
		factors = append(factors, "New hires are statistically more volatile.")
	}
	if row.Float("DistanceFromHome", 0) > 20 {
		factors = append(factors, "Long commute time.")
	}
	if row.Float("WorkLifeBalance", 3) == 1 {
		factors = append(factors, "Poor work-life balance reported.")
	}

	if len(factors) == 0 {
		factors = append(factors, "Combination of tenure and role factors.")
	}
	return factors, nil
}
