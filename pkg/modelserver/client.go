// Package modelserver is the HTTP client for the attrition model server
// sidecar, which hosts the trained ensemble classifier and its native
// feature-attribution explainer.
package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/retentionai/retention-cli/internal/resilience"
)

const defaultBaseURL = "http://localhost:8500"

// ErrUnavailable indicates the classifier could not be reached or has not
// finished loading. Callers distinguish it with eris.Is.
var ErrUnavailable = eris.New("modelserver: model unavailable")

// Attribution is one feature's contribution to a prediction. Positive values
// push attrition risk up.
type Attribution struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

// Client defines the model server operations used by the scoring pipeline.
type Client interface {
	// PredictProbabilities returns the attrition probability for each row,
	// in row order.
	PredictProbabilities(ctx context.Context, rows []map[string]any) ([]float64, error)
	// Attributions returns per-feature attribution values for one row of
	// the dataset.
	Attributions(ctx context.Context, rows []map[string]any, rowIndex int) ([]Attribution, error)
	// Health checks that the model is loaded and ready.
	Health(ctx context.Context) error
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default sidecar base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithRetry overrides the default retry configuration.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewClient creates a model server client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(20), 1),
		retry:   resilience.DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type predictRequest struct {
	Rows []map[string]any `json:"rows"`
}

type predictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

type explainRequest struct {
	Rows     []map[string]any `json:"rows"`
	RowIndex int              `json:"row_index"`
}

type explainResponse struct {
	Attributions []Attribution `json:"attributions"`
}

func (c *httpClient) PredictProbabilities(ctx context.Context, rows []map[string]any) ([]float64, error) {
	var out predictResponse
	err := c.post(ctx, "/predict", predictRequest{Rows: rows}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Probabilities) != len(rows) {
		return nil, eris.Errorf("modelserver: got %d probabilities for %d rows", len(out.Probabilities), len(rows))
	}
	return out.Probabilities, nil
}

func (c *httpClient) Attributions(ctx context.Context, rows []map[string]any, rowIndex int) ([]Attribution, error) {
	var out explainResponse
	err := c.post(ctx, "/explain", explainRequest{Rows: rows, RowIndex: rowIndex}, &out)
	if err != nil {
		return nil, err
	}
	return out.Attributions, nil
}

func (c *httpClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return eris.Wrap(err, "modelserver: create health request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return eris.Wrapf(ErrUnavailable, "health returned %d", resp.StatusCode)
	}
	return nil
}

// post marshals body, sends it with rate limiting and retry, and decodes the
// JSON response into out. Connection failures and 5xx responses map to
// ErrUnavailable once retries are exhausted.
func (c *httpClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "modelserver: marshal request")
	}

	raw, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrap(err, "modelserver: rate limit wait")
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, eris.Wrap(err, "modelserver: create request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(ErrUnavailable, "%s: %s", path, err.Error())
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "modelserver: read response")
		}

		if resp.StatusCode >= 500 {
			unavail := eris.Wrapf(ErrUnavailable, "%s returned %d", path, resp.StatusCode)
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(unavail, resp.StatusCode)
			}
			return nil, unavail
		}
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("modelserver: %s returned %d: %s", path, resp.StatusCode, string(data))
		}

		return data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrap(err, "modelserver: decode response")
	}
	return nil
}
