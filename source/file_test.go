package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/feasible/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFile_LoadProblem(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "problem.yaml", `
threshold: 4
sets:
  - [1, 5]
  - [2, 3]
`)
		src := NewFile(path)

		got, err := src.LoadProblem(context.Background())

		require.NoError(t, err)
		require.Equal(t, path, src.Path())
		require.Equal(t, 4.0, got.Threshold)
		require.Equal(t, []types.Set{{1, 5}, {2, 3}}, got.Sets)
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "problem.json", `{"threshold": 5, "sets": [[1, 5, 10]]}`)

		got, err := NewFile(path).LoadProblem(context.Background())

		require.NoError(t, err)
		require.Equal(t, []types.Set{{1, 5, 10}}, got.Sets)
	})

	t.Run("empty sets list", func(t *testing.T) {
		path := writeFile(t, "empty.yaml", "threshold: 3\nsets: []\n")

		got, err := NewFile(path).LoadProblem(context.Background())

		require.NoError(t, err)
		require.NotNil(t, got.Sets)
		require.Empty(t, got.Sets)
	})

	t.Run("missing sets key", func(t *testing.T) {
		path := writeFile(t, "nosets.yaml", "threshold: 3\n")

		got, err := NewFile(path).LoadProblem(context.Background())

		require.NoError(t, err)
		require.Nil(t, got.Sets)
		require.ErrorIs(t, got.Validate(), types.ErrInvalidArgument)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFile(filepath.Join(t.TempDir(), "nope.yaml")).LoadProblem(context.Background())

		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "threshold: 3\nsets:\n  - [1, abc]\n")

		_, err := NewFile(path).LoadProblem(context.Background())

		require.Error(t, err)
		require.Contains(t, err.Error(), "parse problem")
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFile("unused").LoadProblem(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}
