// Package feasible enumerates bounded multi-set subset-sum combinations.
//
// Given an ordered collection of numeric sets and a threshold, feasible
// produces every combination that takes one value from each set, in set
// order, such that every prefix sum stays within the threshold. Candidates
// that would push the running sum over the threshold are pruned before the
// walk descends, so the search only visits feasible prefixes.
//
// # Quick Start
//
//	combs, err := feasible.Enumerate([][]float64{{1, 5}, {2, 3}}, 4)
//	// combs == [][]float64{{1, 2}, {1, 3}}
//
// # Enumerator
//
// The Enumerator adds configuration, budgets, parallel workers, logging,
// metrics and hooks:
//
//	cfg := feasible.DefaultConfig()
//	cfg.Workers = 4
//	cfg.Budget.MaxNodes = 10_000_000
//	cfg.Budget.Timeout = 5 * time.Second
//
//	e, err := feasible.NewEnumerator(&cfg,
//	    feasible.WithStrategy(strategy.NewConsistentHash()),
//	    feasible.WithLogger(feasible.NewSlogLogger(slog.Default())),
//	)
//	if err != nil {
//	    return err
//	}
//
//	res, err := e.Enumerate(ctx, []feasible.Set{{1, 5}, {2, 3}}, 4)
//
// With Workers > 1 the first set's candidates are sharded across goroutines
// by a ShardStrategy. Results are merged by candidate index, so the output
// is identical to a sequential run.
//
// # Errors
//
// A nil set collection or a NaN/infinite value fails with ErrInvalidArgument.
// An empty collection or an empty inner set is not an error: the result is
// simply empty. Budgets fail with ErrBudgetExceeded and cancellation with
// ErrContextCanceled.
//
// # Compatibility
//
// FindFeasibleSumSubsets keeps the behavior of the legacy single-set
// filter, including its empty answer for multi-set input. Config.Mode =
// ModeStub applies the same rule inside an Enumerator.
package feasible
