package resilience

import (
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"wrapped transient", NewTransientError(eris.New("503"), 503), true},
		{"nested transient", eris.Wrap(NewTransientError(eris.New("503"), 503), "outer"), true},
		{"plain error", eris.New("bad input"), false},
		{"conn reset syscall", syscall.ECONNRESET, true},
		{"conn aborted syscall", syscall.ECONNABORTED, true},
		// Refused connections are deliberately not transient: a down
		// sidecar should surface immediately, not after a retry loop.
		{"conn refused syscall", syscall.ECONNREFUSED, false},
		{"reset string heuristic", eris.New("read tcp: connection reset by peer"), true},
		{"io timeout string", eris.New("dial tcp: i/o timeout"), true},
		{"broken pipe string", eris.New("write: broken pipe"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 201, 400, 401, 403, 404, 422, 501} {
		assert.False(t, IsTransientHTTPStatus(code), "status %d", code)
	}
}
