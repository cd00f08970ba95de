package natsutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

func TestIsConnectivityError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", nats.ErrTimeout, true},
		{"wrapped timeout", fmt.Errorf("request: %w", nats.ErrTimeout), true},
		{"no servers", nats.ErrNoServers, true},
		{"closed", nats.ErrConnectionClosed, true},
		{"refused text", errors.New("dial tcp: connection refused"), true},
		{"no responders", nats.ErrNoResponders, false},
		{"other", errors.New("bad request"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsConnectivityError(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	require.True(t, IsRetryable(nats.ErrNoResponders))
	require.True(t, IsRetryable(nats.ErrTimeout))
	require.False(t, IsRetryable(errors.New("bad request")))
	require.False(t, IsRetryable(nil))
}
