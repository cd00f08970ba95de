package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsistentHash_Assign(t *testing.T) {
	t.Run("assigns all candidates to single worker", func(t *testing.T) {
		assignments, err := NewConsistentHash().Assign([]string{"worker-0"}, candidates(5))

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		require.Len(t, assignments["worker-0"], 5)
	})

	t.Run("assignment is deterministic", func(t *testing.T) {
		s := NewConsistentHash(WithHashSeed(9))
		workers := []string{"worker-0", "worker-1", "worker-2"}

		a1, err1 := s.Assign(workers, candidates(40))
		a2, err2 := s.Assign(workers, candidates(40))

		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, a1, a2)
	})

	t.Run("keeps candidate order within a worker", func(t *testing.T) {
		assignments, err := NewConsistentHash().Assign([]string{"worker-0", "worker-1"}, candidates(50))
		require.NoError(t, err)

		for _, owned := range assignments {
			for i := 1; i < len(owned); i++ {
				require.Less(t, owned[i-1].Index, owned[i].Index)
			}
		}
	})

	t.Run("preserves placement when adding a worker", func(t *testing.T) {
		s := NewConsistentHash()
		before, err := s.Assign([]string{"worker-0", "worker-1"}, candidates(200))
		require.NoError(t, err)
		after, err := s.Assign([]string{"worker-0", "worker-1", "worker-2"}, candidates(200))
		require.NoError(t, err)

		prev := make(map[int]string)
		for w, owned := range before {
			for _, c := range owned {
				prev[c.Index] = w
			}
		}

		// A candidate either stays or moves to the new worker.
		for w, owned := range after {
			for _, c := range owned {
				if w != "worker-2" {
					require.Equal(t, prev[c.Index], w, "candidate %d moved between old workers", c.Index)
				}
			}
		}
	})

	t.Run("returns error when no workers available", func(t *testing.T) {
		_, err := NewConsistentHash().Assign(nil, candidates(3))

		require.ErrorIs(t, err, ErrNoWorkers)
	})

	t.Run("non-positive virtual nodes fall back to default", func(t *testing.T) {
		s := NewConsistentHash(WithVirtualNodes(0), nil)

		require.Equal(t, defaultVirtualNodes, s.virtualNodes)
	})
}
