package strategy

import (
	"errors"

	"github.com/arloliu/feasible/internal/hash"
	"github.com/arloliu/feasible/types"
)

const defaultVirtualNodes = 150

// ConsistentHash places candidates on an xxh3 hash ring with virtual nodes.
//
// Placement depends on the candidate index only, so a candidate keeps its
// worker when the worker count changes unless its ring segment moves.
type ConsistentHash struct {
	virtualNodes int
	hashSeed     uint64
}

var _ types.ShardStrategy = (*ConsistentHash)(nil)

// ConsistentHashOption configures a ConsistentHash strategy.
type ConsistentHashOption func(*ConsistentHash)

// NewConsistentHash creates a new consistent hash strategy.
//
// Parameters:
//   - opts: Optional configuration (WithVirtualNodes, WithHashSeed)
//
// Returns:
//   - *ConsistentHash: Initialized consistent hash strategy
//
// Example:
//
//	s := strategy.NewConsistentHash(strategy.WithVirtualNodes(300))
//	e, err := feasible.NewEnumerator(&cfg, feasible.WithStrategy(s))
func NewConsistentHash(opts ...ConsistentHashOption) *ConsistentHash {
	ch := &ConsistentHash{virtualNodes: defaultVirtualNodes}

	for _, opt := range opts {
		if opt != nil {
			opt(ch)
		}
	}
	if ch.virtualNodes <= 0 {
		ch.virtualNodes = defaultVirtualNodes
	}

	return ch
}

// WithVirtualNodes sets the number of virtual nodes per worker (default: 150).
func WithVirtualNodes(nodes int) ConsistentHashOption {
	return func(ch *ConsistentHash) {
		ch.virtualNodes = nodes
	}
}

// WithHashSeed sets a custom hash seed.
func WithHashSeed(seed uint64) ConsistentHashOption {
	return func(ch *ConsistentHash) {
		ch.hashSeed = seed
	}
}

// Assign maps each candidate to the worker owning its ring position.
//
// Candidates keep their relative order within each worker's slice.
func (ch *ConsistentHash) Assign(workers []string, candidates []types.Candidate) (map[string][]types.Candidate, error) {
	if len(workers) == 0 {
		return nil, ErrNoWorkers
	}

	ring := hash.NewRing(workers, ch.virtualNodes, ch.hashSeed)
	assignments := emptyAssignments(workers)

	for _, c := range candidates {
		w := ring.NodeForCandidate(c)
		if w == "" {
			return nil, errors.New("consistent hash returned empty worker")
		}
		assignments[w] = append(assignments[w], c)
	}

	return assignments, nil
}
