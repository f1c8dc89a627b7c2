package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/retentionai/retention-cli/internal/assistant"
	"github.com/retentionai/retention-cli/internal/config"
	"github.com/retentionai/retention-cli/internal/explain"
	"github.com/retentionai/retention-cli/internal/pipeline"
	"github.com/retentionai/retention-cli/internal/resilience"
	"github.com/retentionai/retention-cli/internal/scorer"
	"github.com/retentionai/retention-cli/internal/simulate"
	"github.com/retentionai/retention-cli/internal/store"
	"github.com/retentionai/retention-cli/pkg/modelserver"
)

// appEnv bundles the wired components shared by the serve and score
// commands.
type appEnv struct {
	Store       *store.Store
	Coordinator *pipeline.Coordinator
	Simulator   *simulate.Simulator
	Assistant   *assistant.Assistant
}

// initEnv wires the application from configuration.
func initEnv(cfg *config.Config) (*appEnv, error) {
	retryCfg := resilience.DefaultRetryConfig()
	if cfg.Model.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.Model.MaxRetries
	}

	client := modelserver.NewClient(
		modelserver.WithBaseURL(cfg.Model.BaseURL),
		modelserver.WithRateLimit(cfg.Model.RequestsPerSec),
		modelserver.WithHTTPClient(httpClientFor(cfg.Model)),
		modelserver.WithRetry(retryCfg),
	)
	handle := modelserver.NewHandle(client)

	risk := scorer.NewRiskScorer(handle)

	labels, err := explain.LoadLabels(cfg.Explain.LabelsPath)
	if err != nil {
		return nil, eris.Wrap(err, "init: explain labels")
	}
	explainer := explain.New(handle, labels)

	return &appEnv{
		Store:       store.New(),
		Coordinator: pipeline.New(risk, explainer, cfg.Pipeline.Concurrency),
		Simulator:   simulate.New(risk),
		Assistant:   assistant.New(cfg.Anthropic),
	}, nil
}

func httpClientFor(cfg config.ModelConfig) *http.Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
