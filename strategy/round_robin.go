package strategy

import "github.com/arloliu/feasible/types"

// RoundRobin deals candidates to workers in turn.
//
// Adjacent candidates always land on different workers when n > 1.
type RoundRobin struct{}

var _ types.ShardStrategy = (*RoundRobin)(nil)

// NewRoundRobin creates a new round-robin strategy.
//
// Example:
//
//	e, err := feasible.NewEnumerator(&cfg, feasible.WithStrategy(strategy.NewRoundRobin()))
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Assign gives candidate i to workers[i % len(workers)].
//
// Returns:
//   - map[string][]types.Candidate: Every worker present, possibly with no candidates
//   - error: ErrNoWorkers if workers is empty
func (rr *RoundRobin) Assign(workers []string, candidates []types.Candidate) (map[string][]types.Candidate, error) {
	if len(workers) == 0 {
		return nil, ErrNoWorkers
	}

	assignments := emptyAssignments(workers)
	for i, c := range candidates {
		w := workers[i%len(workers)]
		assignments[w] = append(assignments[w], c)
	}

	return assignments, nil
}

func emptyAssignments(workers []string) map[string][]types.Candidate {
	assignments := make(map[string][]types.Candidate, len(workers))
	for _, w := range workers {
		assignments[w] = []types.Candidate{}
	}

	return assignments
}
