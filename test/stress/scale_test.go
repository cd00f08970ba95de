package stress_test

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/feasible"
	"github.com/arloliu/feasible/strategy"
)

// TestScale_ParallelMatchesSequential enumerates large problems with growing
// worker counts and checks that every run agrees with the sequential result.
func TestScale_ParallelMatchesSequential(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping scale test in short mode")
	}
	requireStressEnabled(t)

	ctx := context.Background()
	sets := wideProblem(1, 6, 12)
	const threshold = 25

	seq, err := feasible.NewEnumerator(nil)
	require.NoError(t, err)

	start := time.Now()
	want, err := seq.Enumerate(ctx, sets, threshold)
	require.NoError(t, err)
	t.Logf("sequential: %d combinations, %d visited in %v",
		len(want.Combinations), want.Stats.Visited, time.Since(start))

	strategies := map[string]feasible.ShardStrategy{
		"round-robin":     strategy.NewRoundRobin(),
		"contiguous":      strategy.NewContiguous(),
		"consistent-hash": strategy.NewConsistentHash(),
	}

	for name, strat := range strategies {
		for _, workers := range []int{2, 4, 8, 12} {
			t.Run(fmt.Sprintf("%s/%dw", name, workers), func(t *testing.T) {
				cfg := feasible.DefaultConfig()
				cfg.Workers = workers
				e, err := feasible.NewEnumerator(&cfg, feasible.WithStrategy(strat))
				require.NoError(t, err)

				start := time.Now()
				got, err := e.Enumerate(ctx, sets, threshold)
				require.NoError(t, err)
				t.Logf("%d workers: %v", workers, time.Since(start))

				require.Equal(t, want.Combinations, got.Combinations)
				require.Equal(t, want.Stats.Visited, got.Stats.Visited)
			})
		}
	}
}

// TestScale_CancellationReleasesWorkers cancels large parallel enumerations
// and checks that no worker goroutine outlives the call.
func TestScale_CancellationReleasesWorkers(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping scale test in short mode")
	}
	requireStressEnabled(t)

	baseline := runtime.NumGoroutine()
	sets := wideProblem(2, 12, 10)

	cfg := feasible.DefaultConfig()
	cfg.Workers = 8
	cfg.Budget.Timeout = 50 * time.Millisecond
	e, err := feasible.NewEnumerator(&cfg)
	require.NoError(t, err)

	for range 20 {
		_, err := e.Enumerate(context.Background(), sets, 1e9)
		require.ErrorIs(t, err, feasible.ErrContextCanceled)
	}

	waitForGoroutines(t, baseline+2, 5*time.Second)
}

// TestScale_NodeBudgetBoundsWork checks that the shared node budget stops
// every worker close to the limit.
func TestScale_NodeBudgetBoundsWork(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping scale test in short mode")
	}
	requireStressEnabled(t)

	sets := wideProblem(3, 10, 10)

	for _, workers := range []int{1, 4, 10} {
		t.Run(fmt.Sprintf("%dw", workers), func(t *testing.T) {
			cfg := feasible.DefaultConfig()
			cfg.Workers = workers
			cfg.Budget.MaxNodes = 1_000_000
			e, err := feasible.NewEnumerator(&cfg)
			require.NoError(t, err)

			start := time.Now()
			_, err = e.Enumerate(context.Background(), sets, 1e9)
			require.ErrorIs(t, err, feasible.ErrBudgetExceeded)
			t.Logf("budget hit after %v", time.Since(start))
		})
	}
}
