package modelserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retentionai/retention-cli/internal/resilience"
)

// noRetry keeps unit tests fast: one attempt, no backoff.
func noRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 1}
}

func testClient(ts *httptest.Server) Client {
	return NewClient(
		WithBaseURL(ts.URL),
		WithHTTPClient(ts.Client()),
		WithRetry(noRetry()),
	)
}

func sampleRows() []map[string]any {
	return []map[string]any{
		{"EmployeeID": "1", "MonthlyIncome": 5000.0},
		{"EmployeeID": "2", "MonthlyIncome": 2800.0},
	}
}

func TestPredictProbabilities(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Rows []map[string]any `json:"rows"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Rows, 2)

		json.NewEncoder(w).Encode(map[string]any{"probabilities": []float64{0.82, 0.31}})
	}))
	defer ts.Close()

	probs, err := testClient(ts).PredictProbabilities(context.Background(), sampleRows())
	require.NoError(t, err)
	assert.Equal(t, []float64{0.82, 0.31}, probs)
}

func TestPredictLengthMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"probabilities": []float64{0.82}})
	}))
	defer ts.Close()

	_, err := testClient(ts).PredictProbabilities(context.Background(), sampleRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 1 probabilities for 2 rows")
}

func TestPredictServerErrorMapsToUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := testClient(ts).PredictProbabilities(context.Background(), sampleRows())
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnavailable))
}

func TestPredictConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // nothing is listening anymore

	c := NewClient(WithBaseURL(ts.URL), WithRetry(noRetry()))

	_, err := c.PredictProbabilities(context.Background(), sampleRows())
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnavailable))
}

func TestPredictRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"probabilities": []float64{0.5, 0.5}})
	}))
	defer ts.Close()

	c := NewClient(
		WithBaseURL(ts.URL),
		WithHTTPClient(ts.Client()),
		WithRetry(resilience.RetryConfig{
			MaxAttempts:    2,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     time.Millisecond,
		}),
	)

	probs, err := c.PredictProbabilities(context.Background(), sampleRows())
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, probs)
	assert.EqualValues(t, 2, calls.Load())
}

func TestAttributions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/explain", r.URL.Path)

		var req struct {
			Rows     []map[string]any `json:"rows"`
			RowIndex int              `json:"row_index"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 1, req.RowIndex)

		json.NewEncoder(w).Encode(map[string]any{"attributions": []Attribution{
			{Feature: "OverTime", Value: 0.4},
			{Feature: "MonthlyIncome", Value: -0.1},
		}})
	}))
	defer ts.Close()

	attrs, err := testClient(ts).Attributions(context.Background(), sampleRows(), 1)
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, Attribution{Feature: "OverTime", Value: 0.4}, attrs[0])
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"healthy", http.StatusOK, false},
		{"loading", http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			err := testClient(ts).Health(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, eris.Is(err, ErrUnavailable))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHandleRetriesOnNextAccess(t *testing.T) {
	var healthy atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" && !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	h := NewHandle(testClient(ts))

	// Sidecar still loading: access fails but does not poison the handle.
	_, err := h.Get(context.Background())
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnavailable))

	healthy.Store(true)

	c, err := h.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c)

	// Readiness is cached: a later sidecar hiccup does not re-probe.
	healthy.Store(false)
	c, err = h.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c)
}
