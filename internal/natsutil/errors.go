// Package natsutil classifies NATS client errors.
package natsutil

import (
	"errors"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// IsConnectivityError reports whether err comes from the connection rather
// than from the request itself: timeouts, missing servers, disconnects and
// unreachable JetStream.
//
// Parameters:
//   - err: Error to classify
//
// Returns:
//   - bool: true for connectivity failures
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}

// IsRetryable reports whether a request that failed with err may succeed when
// sent again: connectivity failures plus a missing responder, which happens
// while service replicas restart.
func IsRetryable(err error) bool {
	return IsConnectivityError(err) || errors.Is(err, nats.ErrNoResponders)
}
