// Package hash provides a consistent hash ring for sharding candidates across workers.
package hash

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/feasible/types"
)

// Ring maps keys to workers using consistent hashing with virtual nodes.
type Ring struct {
	// nodes is sorted by hash
	nodes   []virtualNode
	workers []string
	seed    uint64
}

type virtualNode struct {
	hash      uint64
	workerIdx int
}

// NewRing builds a ring from the given workers.
//
// Duplicate worker IDs are collapsed, keeping first-seen order.
//
// Parameters:
//   - workers: Worker IDs to place on the ring
//   - virtualNodesPerWorker: Virtual nodes per worker (higher = smoother distribution)
//   - seed: Hash seed (0 = unseeded)
//
// Returns:
//   - *Ring: Initialized ring
//
// Example:
//
//	ring := hash.NewRing([]string{"worker-0", "worker-1"}, 64, 0)
//	owner := ring.NodeForCandidate(types.Candidate{Index: 3})
func NewRing(workers []string, virtualNodesPerWorker int, seed uint64) *Ring {
	if virtualNodesPerWorker <= 0 {
		virtualNodesPerWorker = 1
	}

	seen := make(map[string]struct{}, len(workers))
	uniq := make([]string, 0, len(workers))
	for _, w := range workers {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
	}

	ring := &Ring{
		nodes:   make([]virtualNode, 0, len(uniq)*virtualNodesPerWorker),
		workers: uniq,
		seed:    seed,
	}

	for i, w := range ring.workers {
		ring.addWorker(w, i, virtualNodesPerWorker)
	}

	slices.SortFunc(ring.nodes, func(a, b virtualNode) int {
		if c := cmp.Compare(a.hash, b.hash); c != 0 {
			return c
		}
		// tie-break on worker order so equal hashes stay deterministic
		return cmp.Compare(a.workerIdx, b.workerIdx)
	})

	return ring
}

// GetNode returns the worker owning an arbitrary string key, or "" for an empty ring.
func (r *Ring) GetNode(key string) string {
	if len(r.nodes) == 0 {
		return ""
	}

	return r.workers[r.indexByHash(r.hashString(key))]
}

// NodeForCandidate returns the worker owning the candidate, or "" for an empty ring.
func (r *Ring) NodeForCandidate(c types.Candidate) string {
	idx := r.NodeIndexForCandidate(c)
	if idx < 0 {
		return ""
	}

	return r.workers[idx]
}

// NodeIndexForCandidate returns the index into Workers() of the candidate's owner,
// or -1 for an empty ring.
func (r *Ring) NodeIndexForCandidate(c types.Candidate) int {
	if len(r.nodes) == 0 {
		return -1
	}

	return r.indexByHash(c.HashSeed(r.seed))
}

// Workers returns a copy of the unique workers on the ring.
func (r *Ring) Workers() []string {
	return append([]string(nil), r.workers...)
}

// Size returns the total number of virtual nodes.
func (r *Ring) Size() int {
	return len(r.nodes)
}

func (r *Ring) addWorker(workerID string, workerIdx int, virtualNodes int) {
	base := r.hashString(workerID)

	var ib [8]byte
	for i := range virtualNodes {
		binary.LittleEndian.PutUint64(ib[:], uint64(i)) //nolint:gosec
		r.nodes = append(r.nodes, virtualNode{
			hash:      xxh3.HashSeed(ib[:], base),
			workerIdx: workerIdx,
		})
	}
}

func (r *Ring) hashString(key string) uint64 {
	if r.seed != 0 {
		return xxh3.HashStringSeed(key, r.seed)
	}

	return xxh3.HashString(key)
}

// indexByHash finds the first virtual node at or after target, wrapping to the start.
func (r *Ring) indexByHash(target uint64) int {
	idx, _ := slices.BinarySearchFunc(r.nodes, target, func(n virtualNode, t uint64) int {
		return cmp.Compare(n.hash, t)
	})
	if idx >= len(r.nodes) {
		idx = 0
	}

	return r.nodes[idx].workerIdx
}
