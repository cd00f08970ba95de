package feasible

// FindFeasibleSumSubsets is the legacy single-set filter entry point.
//
// Behavior:
//   - no sets (or nil): empty result
//   - one set: each element <= theta, wrapped as a singleton, in input order
//   - more than one set: empty result
//
// The multi-set case is a known gap of the legacy routine, not a valid
// empty answer. New callers should use Enumerate, which agrees with this
// function whenever exactly one set is given.
func FindFeasibleSumSubsets(sets [][]float64, theta int) [][]float64 {
	out := [][]float64{}
	if len(sets) != 1 {
		return out
	}

	limit := float64(theta)
	for _, v := range sets[0] {
		if v <= limit {
			out = append(out, []float64{v})
		}
	}

	return out
}
