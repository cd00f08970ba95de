package feasible

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/feasible/internal/hooks"
	"github.com/arloliu/feasible/internal/logging"
	"github.com/arloliu/feasible/internal/metrics"
	"github.com/arloliu/feasible/internal/search"
	"github.com/arloliu/feasible/strategy"
	"github.com/arloliu/feasible/types"
)

// Enumerator finds every combination, one value per set in set order, whose
// prefix sums all stay within a threshold.
//
// An Enumerator holds only configuration and collaborators; each call builds
// and discards its own state, so one Enumerator is safe for concurrent use.
type Enumerator struct {
	cfg      Config
	logger   Logger
	metrics  MetricsCollector
	hooks    Hooks
	strategy ShardStrategy
}

// NewEnumerator creates an Enumerator.
//
// Parameters:
//   - cfg: Configuration (nil uses DefaultConfig); zero fields receive defaults
//   - opts: Optional logger, metrics, hooks and shard strategy
//
// Returns:
//   - *Enumerator: Ready-to-use enumerator
//   - error: ErrInvalidConfig if the configuration is invalid
//
// Example:
//
//	cfg := feasible.DefaultConfig()
//	cfg.Workers = 4
//	e, err := feasible.NewEnumerator(&cfg)
//	if err != nil {
//	    return err
//	}
//	res, err := e.Enumerate(ctx, []feasible.Set{{1, 5}, {2, 3}}, 4)
func NewEnumerator(cfg *Config, opts ...Option) (*Enumerator, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	ApplyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	o := enumeratorOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	e := &Enumerator{
		cfg:      c,
		logger:   o.logger,
		metrics:  o.metrics,
		hooks:    hooks.WithDefaults(o.hooks),
		strategy: o.strategy,
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.metrics == nil {
		e.metrics = metrics.NewNop()
	}
	if e.strategy == nil {
		e.strategy = strategy.NewRoundRobin()
	}

	e.cfg.ValidateWithWarnings(e.logger)

	return e, nil
}

// Config returns a copy of the effective configuration.
func (e *Enumerator) Config() Config {
	return e.cfg
}

// Enumerate returns every feasible combination of sets under threshold.
//
// Behavior:
//   - sets == nil: ErrInvalidArgument
//   - NaN/Inf value or NaN threshold: ErrInvalidArgument
//   - no sets, or any empty set: empty result
//   - otherwise: depth-first order, candidates tried in input order
//
// The result order does not depend on Workers or the shard strategy.
//
// Returns:
//   - *Result: Combinations and search statistics (nil on error)
//   - error: ErrInvalidArgument, ErrBudgetExceeded, ErrContextCanceled, or a hook error
func (e *Enumerator) Enumerate(ctx context.Context, sets []Set, threshold float64) (*Result, error) {
	start := time.Now()

	res, err := e.enumerate(ctx, sets, threshold)
	elapsed := time.Since(start)

	if err != nil {
		e.metrics.RecordEnumeration(elapsed.Seconds(), 0, false)
		e.logger.Debug("enumeration failed", "sets", len(sets), "threshold", threshold, "error", err)
		if herr := e.hooks.OnError(ctx, err); herr != nil {
			e.logger.Warn("OnError hook failed", "error", herr)
		}

		return nil, err
	}

	res.Stats.Duration = elapsed
	e.metrics.RecordEnumeration(elapsed.Seconds(), len(res.Combinations), true)
	e.metrics.RecordNodes(res.Stats.Visited, res.Stats.Pruned)
	e.logger.Debug("enumeration finished",
		"sets", len(sets),
		"threshold", threshold,
		"emitted", res.Stats.Emitted,
		"visited", res.Stats.Visited,
		"pruned", res.Stats.Pruned,
		"workers", res.Stats.Workers,
		"duration", elapsed,
	)

	return res, nil
}

// EnumerateProblem enumerates a Problem.
func (e *Enumerator) EnumerateProblem(ctx context.Context, p *Problem) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: problem is nil", ErrInvalidArgument)
	}

	return e.Enumerate(ctx, p.Sets, p.Threshold)
}

// EnumerateSource loads a problem from src and enumerates it.
func (e *Enumerator) EnumerateSource(ctx context.Context, src SetSource) (*Result, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}

	p, err := src.LoadProblem(ctx)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}

	return e.EnumerateProblem(ctx, p)
}

func (e *Enumerator) enumerate(ctx context.Context, sets []Set, threshold float64) (*Result, error) {
	if err := types.ValidateInput(sets, threshold); err != nil {
		return nil, err
	}

	if e.cfg.Budget.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Budget.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContextCanceled, err)
	}

	res := &Result{Combinations: []Combination{}}

	if e.cfg.Mode == ModeStub && len(sets) > 1 {
		e.logger.Warn("stub mode returns no combinations for multi-set input", "sets", len(sets))
		return res, nil
	}

	if len(sets) == 0 {
		return res, nil
	}
	for i, set := range sets {
		if len(set) == 0 {
			e.logger.Debug("empty set, no combination can be completed", "set", i)
			return res, nil
		}
	}

	candidates := search.Candidates(sets)
	opts := search.Options{
		MaxNodes:      e.cfg.Budget.MaxNodes,
		MaxResults:    e.cfg.Budget.MaxResults,
		CheckInterval: e.cfg.CheckInterval,
		Nodes:         xsync.NewCounter(),
		Results:       xsync.NewCounter(),
	}

	var (
		stats search.Stats
		err   error
	)
	feasible := feasibleCount(candidates, threshold)
	if e.cfg.Workers <= 1 || feasible < 2 {
		res.Stats.Workers = 1
		stats, err = search.WalkFrom(ctx, sets, threshold, candidates, opts, func(c types.Combination) error {
			res.Combinations = append(res.Combinations, c)
			return nil
		})
	} else {
		res.Stats.Workers = min(e.cfg.Workers, feasible)
		res.Combinations, stats, err = e.enumerateParallel(ctx, sets, threshold, candidates, res.Stats.Workers, opts)
	}
	if err != nil {
		return nil, err
	}

	res.Stats.Visited = stats.Visited
	res.Stats.Pruned = stats.Pruned
	res.Stats.Emitted = stats.Emitted

	for _, c := range res.Combinations {
		if err := e.hooks.OnCombination(ctx, c); err != nil {
			return nil, fmt.Errorf("OnCombination hook: %w", err)
		}
	}

	return res, nil
}

// enumerateParallel shards the feasible first-level candidates across workers
// and merges their results by candidate index, reproducing the sequential order.
// Infeasible candidates are visited and pruned on the calling goroutine.
func (e *Enumerator) enumerateParallel(
	ctx context.Context,
	sets []Set,
	threshold float64,
	candidates []Candidate,
	n int,
	opts search.Options,
) ([]Combination, search.Stats, error) {
	workers := make([]string, n)
	for i := range workers {
		workers[i] = e.cfg.WorkerIDPrefix + "-" + strconv.Itoa(i)
	}

	shardable := make([]Candidate, 0, len(candidates))
	var pruned []Candidate
	for _, c := range candidates {
		if c.Value > threshold {
			pruned = append(pruned, c)
			continue
		}
		shardable = append(shardable, c)
	}

	assignments, err := e.strategy.Assign(workers, shardable)
	if err != nil {
		return nil, search.Stats{}, fmt.Errorf("assign candidates: %w", err)
	}
	if err := checkAssignments(workers, shardable, assignments); err != nil {
		return nil, search.Stats{}, fmt.Errorf("assign candidates: %w", err)
	}

	rootStats, err := search.WalkFrom(ctx, sets, threshold, pruned, opts, func(types.Combination) error {
		return nil
	})
	if err != nil {
		return nil, rootStats, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	byIndex := xsync.NewMap[int, []Combination]()
	errs := make([]error, n)
	stats := make([]search.Stats, n)

	var wg sync.WaitGroup
	for i, id := range workers {
		owned := assignments[id]
		if len(owned) == 0 {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			started := time.Now()
			emitted := 0
			for _, c := range owned {
				var found []Combination
				st, err := search.WalkFrom(ctx, sets, threshold, []Candidate{c}, opts, func(comb types.Combination) error {
					found = append(found, comb)
					return nil
				})
				stats[i].Add(st)
				if err != nil {
					errs[i] = err
					cancel()

					break
				}
				if len(found) > 0 {
					byIndex.Store(c.Index, found)
					emitted += len(found)
				}
			}

			e.metrics.RecordWorkerRun(id, len(owned), time.Since(started).Seconds())
			if herr := e.hooks.OnWorkerDone(ctx, id, emitted); herr != nil && errs[i] == nil {
				errs[i] = fmt.Errorf("OnWorkerDone hook: %w", herr)
				cancel()
			}
		}()
	}
	wg.Wait()

	total := rootStats
	for _, st := range stats {
		total.Add(st)
	}

	if err := firstCause(errs); err != nil {
		return nil, total, err
	}

	out := make([]Combination, 0, total.Emitted)
	for _, c := range candidates {
		if found, ok := byIndex.Load(c.Index); ok {
			out = append(out, found...)
		}
	}

	return out, total, nil
}

// feasibleCount returns how many first-level candidates fit under threshold.
func feasibleCount(candidates []Candidate, threshold float64) int {
	n := 0
	for _, c := range candidates {
		if c.Value <= threshold {
			n++
		}
	}

	return n
}

// checkAssignments verifies that a strategy placed every candidate exactly
// once and only on known workers.
func checkAssignments(workers []string, candidates []Candidate, assignments map[string][]Candidate) error {
	known := make(map[string]struct{}, len(workers))
	for _, w := range workers {
		known[w] = struct{}{}
	}

	want := make(map[int]float64, len(candidates))
	for _, c := range candidates {
		want[c.Index] = c.Value
	}

	seen := make(map[int]struct{}, len(candidates))
	for id, owned := range assignments {
		if len(owned) == 0 {
			continue
		}
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: unknown worker %q", ErrInvalidAssignment, id)
		}
		for _, c := range owned {
			v, ok := want[c.Index]
			if !ok || v != c.Value {
				return fmt.Errorf("%w: unexpected candidate %d", ErrInvalidAssignment, c.Index)
			}
			if _, dup := seen[c.Index]; dup {
				return fmt.Errorf("%w: candidate %d assigned twice", ErrInvalidAssignment, c.Index)
			}
			seen[c.Index] = struct{}{}
		}
	}

	if len(seen) != len(candidates) {
		return fmt.Errorf("%w: %d of %d candidates unassigned", ErrInvalidAssignment, len(candidates)-len(seen), len(candidates))
	}

	return nil
}

// firstCause picks the error that stopped the enumeration. Workers canceled
// because a sibling failed report ErrContextCanceled, so any other error wins.
func firstCause(errs []error) error {
	var canceled error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrContextCanceled) {
			return err
		}
		if canceled == nil {
			canceled = err
		}
	}

	return canceled
}

// Enumerate runs a sequential enumeration with the default configuration.
//
// It is the plain-slice entry point for callers that bridge from other
// environments: a nil collection fails with ErrInvalidArgument, and the
// result is never nil.
//
// Example:
//
//	combs, err := feasible.Enumerate([][]float64{{1, 5}, {2, 3}}, 4)
//	// combs == [][]float64{{1, 2}, {1, 3}}
func Enumerate(sets [][]float64, threshold float64) ([][]float64, error) {
	var in []Set
	if sets != nil {
		in = make([]Set, len(sets))
		for i, s := range sets {
			in[i] = Set(s)
		}
	}

	e, err := NewEnumerator(nil)
	if err != nil {
		return nil, err
	}

	res, err := e.Enumerate(context.Background(), in, threshold)
	if err != nil {
		return nil, err
	}

	return res.Values(), nil
}
