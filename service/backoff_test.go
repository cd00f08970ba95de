package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJitterBackoff_Bounds(t *testing.T) {
	base := 50 * time.Millisecond
	capDur := 500 * time.Millisecond
	rng := newRetryRNG(42)

	require.Equal(t, base, jitterBackoff(0, base, 2, capDur, rng))

	prev := time.Duration(0)
	for range 20 {
		next := jitterBackoff(prev, base, 2, capDur, rng)
		require.GreaterOrEqual(t, next, base)
		require.LessOrEqual(t, next, capDur)
		prev = next
	}
}

func TestJitterBackoff_CapBelowBase(t *testing.T) {
	rng := newRetryRNG(1)

	require.Equal(t, 10*time.Millisecond, jitterBackoff(0, time.Second, 2, 10*time.Millisecond, rng))
	require.Equal(t, 10*time.Millisecond, jitterBackoff(time.Second, time.Second, 2, 10*time.Millisecond, rng))
}

func TestJitterBackoff_Defaults(t *testing.T) {
	require.Equal(t, 50*time.Millisecond, jitterBackoff(0, 0, 0, 0, nil))

	// No growth when mult < 1: prev*1 - base <= 0 falls back to a base-wide span.
	next := jitterBackoff(50*time.Millisecond, 50*time.Millisecond, 0.5, 0, nil)
	require.GreaterOrEqual(t, next, 50*time.Millisecond)
	require.Less(t, next, 100*time.Millisecond)
}

func TestNewRetryRNG(t *testing.T) {
	require.Nil(t, newRetryRNG(0))

	a, b := newRetryRNG(9), newRetryRNG(9)
	for range 5 {
		require.Equal(t, a.Int64(), b.Int64())
	}
}
