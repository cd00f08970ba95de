package strategy

import "github.com/arloliu/feasible/types"

// Contiguous splits candidates into one consecutive block per worker.
//
// Block sizes differ by at most one; earlier workers take the extra candidate.
type Contiguous struct{}

var _ types.ShardStrategy = (*Contiguous)(nil)

// NewContiguous creates a new contiguous block strategy.
func NewContiguous() *Contiguous {
	return &Contiguous{}
}

// Assign gives each worker a consecutive run of candidates, in worker order.
func (c *Contiguous) Assign(workers []string, candidates []types.Candidate) (map[string][]types.Candidate, error) {
	if len(workers) == 0 {
		return nil, ErrNoWorkers
	}

	assignments := emptyAssignments(workers)
	base := len(candidates) / len(workers)
	extra := len(candidates) % len(workers)

	start := 0
	for i, w := range workers {
		size := base
		if i < extra {
			size++
		}
		assignments[w] = append(assignments[w], candidates[start:start+size]...)
		start += size
	}

	return assignments, nil
}
