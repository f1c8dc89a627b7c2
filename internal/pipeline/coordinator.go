// Package pipeline drives the scoring pass: batch risk prediction, per-row
// impact/priority/explanation assembly, and ranking.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/retentionai/retention-cli/internal/explain"
	"github.com/retentionai/retention-cli/internal/model"
	"github.com/retentionai/retention-cli/internal/scorer"
)

// Priority blend weights: risk dominates impact.
const (
	priorityRiskWeight   = 0.6
	priorityImpactWeight = 0.4
)

// RowError records one skipped row.
type RowError struct {
	Index int
	Err   error
}

// Coordinator produces the ranked employee result list for a dataset.
type Coordinator struct {
	risk        *scorer.RiskScorer
	explainer   *explain.Adapter
	concurrency int
}

// New creates a Coordinator. Concurrency bounds the per-row workers; values
// below 1 mean sequential processing.
func New(risk *scorer.RiskScorer, explainer *explain.Adapter, concurrency int) *Coordinator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Coordinator{risk: risk, explainer: explainer, concurrency: concurrency}
}

// Process scores the whole dataset and returns results ranked by priority,
// plus the log of skipped rows. A classifier failure aborts the pass with no
// results; per-row failures only skip that row.
func (c *Coordinator) Process(ctx context.Context, rows []model.Row) ([]model.EmployeeResult, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, eris.New("pipeline: empty dataset")
	}

	maxima := model.ComputeMaxima(rows)

	risks, err := c.risk.ScoreBatch(ctx, rows)
	if err != nil {
		return nil, nil, eris.Wrap(err, "pipeline: batch prediction")
	}

	var (
		mu      sync.Mutex
		results []model.EmployeeResult
		skipped []RowError
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range rows {
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}

			res, err := c.processRow(gCtx, rows, risks, maxima, i)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				zap.L().Error("pipeline: row skipped",
					zap.Int("row", i),
					zap.Error(err),
				)
				skipped = append(skipped, RowError{Index: i, Err: err})
				return nil
			}
			results = append(results, res)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, eris.Wrap(err, "pipeline: process rows")
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].PriorityScore > results[j].PriorityScore
	})

	zap.L().Info("pipeline: dataset processed",
		zap.Int("input_rows", len(rows)),
		zap.Int("results", len(results)),
		zap.Int("skipped", len(skipped)),
	)

	return results, skipped, nil
}

func (c *Coordinator) processRow(ctx context.Context, rows []model.Row, risks []model.RiskAssessment, maxima model.Maxima, i int) (model.EmployeeResult, error) {
	if i >= len(risks) {
		return model.EmployeeResult{}, eris.Errorf("pipeline: no risk assessment for row %d", i)
	}

	row := rows[i]
	risk := risks[i]
	impact := scorer.ScoreImpact(row, maxima)

	priority := scorer.Round1((risk.Probability*priorityRiskWeight + impact.Score/100*priorityImpactWeight) * 100)

	id := row.Str("EmployeeID", strconv.Itoa(i))
	return model.EmployeeResult{
		EmployeeID:         id,
		Name:               row.Str("Name", fmt.Sprintf("Employee %s", id)),
		Department:         row.Str("Department", "Unknown"),
		Risk:               risk,
		Impact:             impact,
		PriorityScore:      priority,
		KeyFactors:         c.explainer.KeyFactors(ctx, rows, i),
		RecommendedActions: RecommendActions(risk.Label, impact.Category),
		RawData:            row.Clone(),
	}, nil
}
