package types

// ShardStrategy assigns first-level candidates to workers.
//
// The enumerator calls Assign once per parallel enumeration. Because results
// are merged by candidate index, a strategy only affects load distribution,
// never the order or content of the result.
//
// Strategy implementations should:
//   - Be deterministic (same input → same output)
//   - Assign every candidate to exactly one worker
//   - Return an entry for every worker, possibly empty
//   - Be stateless (no side effects)
type ShardStrategy interface {
	// Assign distributes candidates across the given workers.
	//
	// Parameters:
	//   - workers: Worker IDs to assign candidates to
	//   - candidates: First-level candidates in first-set order
	//
	// Returns:
	//   - map[string][]Candidate: Map from worker ID to owned candidates
	//   - error: Assignment error (e.g., no workers)
	Assign(workers []string, candidates []Candidate) (map[string][]Candidate, error)
}
