package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/feasible/types"
)

func TestStatic_LoadProblem(t *testing.T) {
	t.Run("returns the problem", func(t *testing.T) {
		problem := types.Problem{Sets: []types.Set{{1, 5}, {2, 3}}, Threshold: 4}
		src := NewStatic(problem)

		got, err := src.LoadProblem(context.Background())

		require.NoError(t, err)
		require.Equal(t, problem, *got)
	})

	t.Run("keeps nil collection nil", func(t *testing.T) {
		src := NewStatic(types.Problem{Threshold: 1})

		got, err := src.LoadProblem(context.Background())

		require.NoError(t, err)
		require.Nil(t, got.Sets)
	})

	t.Run("does not share storage with caller", func(t *testing.T) {
		sets := []types.Set{{1, 2}}
		src := NewStatic(types.Problem{Sets: sets, Threshold: 3})
		sets[0][0] = 100

		got, err := src.LoadProblem(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1.0, got.Sets[0][0])

		got.Sets[0][1] = 999
		again, _ := src.LoadProblem(context.Background())
		require.Equal(t, 2.0, again.Sets[0][1])
	})
}

func TestStatic_Update(t *testing.T) {
	src := NewStatic(types.Problem{Sets: []types.Set{{1}}, Threshold: 1})

	src.Update(types.Problem{Sets: []types.Set{{7, 8}}, Threshold: 9})

	got, err := src.LoadProblem(context.Background())
	require.NoError(t, err)
	require.Equal(t, []types.Set{{7, 8}}, got.Sets)
	require.Equal(t, 9.0, got.Threshold)
}
