package modelserver

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Handle owns the process-wide model server client with lazy, lock-guarded
// initialization. The first access health-checks the sidecar; success is
// cached for the process lifetime, failure is returned to the caller and the
// check is retried on the next access. A model that is briefly missing at
// startup therefore never permanently disables scoring.
type Handle struct {
	mu     sync.Mutex
	client Client
	ready  bool
}

// NewHandle wraps an existing client in a Handle.
func NewHandle(client Client) *Handle {
	return &Handle{client: client}
}

// Get returns the client once the sidecar has reported healthy. Before the
// first successful health check it returns ErrUnavailable (wrapped) and will
// re-probe on the next call.
func (h *Handle) Get(ctx context.Context) (Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ready {
		return h.client, nil
	}

	if err := h.client.Health(ctx); err != nil {
		zap.L().Warn("modelserver: not ready, will retry on next access", zap.Error(err))
		return nil, err
	}

	h.ready = true
	zap.L().Info("modelserver: classifier ready")
	return h.client, nil
}
