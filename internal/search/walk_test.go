package search

import (
	"context"
	"errors"
	"testing"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/feasible/types"
)

func collect(t *testing.T, sets []types.Set, threshold float64, opts Options) ([]types.Combination, Stats, error) {
	t.Helper()

	var out []types.Combination
	stats, err := Walk(context.Background(), sets, threshold, opts, func(c types.Combination) error {
		out = append(out, c)
		return nil
	})

	return out, stats, err
}

func TestWalk_Scenarios(t *testing.T) {
	t.Run("single set filter", func(t *testing.T) {
		got, stats, err := collect(t, []types.Set{{1, 5, 10}}, 5, Options{})

		require.NoError(t, err)
		require.Equal(t, []types.Combination{{1}, {5}}, got)
		require.Equal(t, Stats{Visited: 3, Pruned: 1, Emitted: 2}, stats)
	})

	t.Run("two sets", func(t *testing.T) {
		got, _, err := collect(t, []types.Set{{1, 5}, {2, 3}}, 4, Options{})

		require.NoError(t, err)
		require.Equal(t, []types.Combination{{1, 2}, {1, 3}}, got)
	})

	t.Run("nothing survives", func(t *testing.T) {
		got, stats, err := collect(t, []types.Set{{10, 20}}, 5, Options{})

		require.NoError(t, err)
		require.Empty(t, got)
		require.Equal(t, int64(2), stats.Pruned)
	})

	t.Run("no sets", func(t *testing.T) {
		got, stats, err := collect(t, []types.Set{}, 5, Options{})

		require.NoError(t, err)
		require.Empty(t, got)
		require.Zero(t, stats.Visited)
	})

	t.Run("empty inner set", func(t *testing.T) {
		got, _, err := collect(t, []types.Set{{1, 2}, {}, {1}}, 10, Options{})

		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("depth-first order follows input order", func(t *testing.T) {
		got, _, err := collect(t, []types.Set{{2, 1}, {1, 0}}, 3, Options{})

		require.NoError(t, err)
		require.Equal(t, []types.Combination{{2, 1}, {2, 0}, {1, 1}, {1, 0}}, got)
	})

	t.Run("negative values recover running sum", func(t *testing.T) {
		got, _, err := collect(t, []types.Set{{-3, 2}, {5}}, 3, Options{})

		require.NoError(t, err)
		require.Equal(t, []types.Combination{{-3, 5}}, got)
	})

	t.Run("negative threshold with non-negative values", func(t *testing.T) {
		got, _, err := collect(t, []types.Set{{0, 1}, {0}}, -1, Options{})

		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		got, _, err := collect(t, []types.Set{{1, 1}}, 1, Options{})

		require.NoError(t, err)
		require.Equal(t, []types.Combination{{1}, {1}}, got)
	})
}

func TestWalk_Invariants(t *testing.T) {
	sets := []types.Set{{0, 1, 2, 3}, {3, 1, 4}, {1, 5, 9, 2}, {6, 5, 3}}
	const threshold = 12

	got, _, err := collect(t, sets, threshold, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for _, c := range got {
		require.Len(t, c, len(sets))
		require.True(t, c.Feasible(threshold), "combination %v violates a prefix", c)
	}

	again, _, err := collect(t, sets, threshold, Options{})
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestWalk_DoesNotAliasOutput(t *testing.T) {
	sets := []types.Set{{1, 2}, {1, 2}}
	got, _, err := collect(t, sets, 10, Options{})

	require.NoError(t, err)
	require.Len(t, got, 4)
	got[0][0] = 99
	require.Equal(t, types.Combination{1, 2}, got[1])
	require.Equal(t, types.Set{1, 2}, sets[0])
}

func TestWalkFrom_Subset(t *testing.T) {
	sets := []types.Set{{1, 2, 3}, {1, 2}}
	first := []types.Candidate{{Index: 2, Value: 3}, {Index: 0, Value: 1}}

	var got []types.Combination
	_, err := WalkFrom(context.Background(), sets, 4, first, Options{}, func(c types.Combination) error {
		got = append(got, c)
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, []types.Combination{{3, 1}, {1, 1}, {1, 2}}, got)
}

func TestWalk_NodeBudget(t *testing.T) {
	sets := []types.Set{{1, 1, 1}, {1, 1, 1}}

	t.Run("exceeded", func(t *testing.T) {
		_, stats, err := collect(t, sets, 10, Options{MaxNodes: 5})

		require.ErrorIs(t, err, types.ErrBudgetExceeded)
		require.Equal(t, int64(6), stats.Visited)
	})

	t.Run("exact budget is enough", func(t *testing.T) {
		// 3 first-level visits + 3*3 second-level visits
		got, _, err := collect(t, sets, 10, Options{MaxNodes: 12})

		require.NoError(t, err)
		require.Len(t, got, 9)
	})

	t.Run("shared counter spans walks", func(t *testing.T) {
		nodes := xsync.NewCounter()
		nodes.Add(10)

		_, _, err := collect(t, sets, 10, Options{MaxNodes: 12, Nodes: nodes})

		require.ErrorIs(t, err, types.ErrBudgetExceeded)
	})
}

func TestWalk_ResultBudget(t *testing.T) {
	sets := []types.Set{{1, 2, 3}}

	got, _, err := collect(t, sets, 10, Options{MaxResults: 2})

	require.ErrorIs(t, err, types.ErrBudgetExceeded)
	require.Len(t, got, 2)

	got, _, err = collect(t, sets, 10, Options{MaxResults: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestWalk_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Walk(ctx, []types.Set{{1, 2}, {1, 2}}, 10, Options{CheckInterval: 1}, func(types.Combination) error {
		return nil
	})

	require.ErrorIs(t, err, types.ErrContextCanceled)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWalk_EmitErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0

	_, err := Walk(context.Background(), []types.Set{{1, 2, 3}}, 10, Options{}, func(types.Combination) error {
		calls++
		return stop
	})

	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}

func TestWalk_FlushesNodeCounter(t *testing.T) {
	nodes := xsync.NewCounter()

	_, stats, err := collect(t, []types.Set{{1, 2}, {3, 4}}, 10, Options{Nodes: nodes})

	require.NoError(t, err)
	require.Equal(t, stats.Visited, nodes.Value())
}

func TestCandidates(t *testing.T) {
	require.Nil(t, Candidates(nil))
	require.Equal(t,
		[]types.Candidate{{Index: 0, Value: 4}, {Index: 1, Value: 2}},
		Candidates([]types.Set{{4, 2}, {1}}),
	)
}

func TestStatsAdd(t *testing.T) {
	s := Stats{Visited: 1, Pruned: 2, Emitted: 3}
	s.Add(Stats{Visited: 10, Pruned: 20, Emitted: 30})

	require.Equal(t, Stats{Visited: 11, Pruned: 22, Emitted: 33}, s)
}
