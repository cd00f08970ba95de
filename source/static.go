package source

import (
	"context"
	"sync"

	"github.com/arloliu/feasible/types"
)

// Static serves a fixed in-memory problem.
type Static struct {
	mu      sync.RWMutex
	problem types.Problem
}

var _ types.SetSource = (*Static)(nil)

// NewStatic creates a source that always returns a copy of problem.
//
// Example:
//
//	src := source.NewStatic(types.Problem{
//	    Sets:      []types.Set{{1, 5}, {2, 3}},
//	    Threshold: 4,
//	})
//	res, err := enumerator.EnumerateSource(ctx, src)
func NewStatic(problem types.Problem) *Static {
	return &Static{problem: cloneProblem(problem)}
}

// LoadProblem returns a deep copy of the stored problem.
//
// Returns:
//   - *types.Problem: Copy owned by the caller
//   - error: Always nil
func (s *Static) LoadProblem(_ context.Context) (*types.Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := cloneProblem(s.problem)

	return &p, nil
}

// Update replaces the stored problem.
func (s *Static) Update(problem types.Problem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.problem = cloneProblem(problem)
}

func cloneProblem(p types.Problem) types.Problem {
	out := types.Problem{Threshold: p.Threshold}
	if p.Sets == nil {
		return out
	}

	out.Sets = make([]types.Set, len(p.Sets))
	for i, set := range p.Sets {
		out.Sets[i] = set.Clone()
	}

	return out
}
