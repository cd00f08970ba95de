// Package search implements the depth-first walk behind the enumerator.
//
// A walk extends a partial combination one set at a time. A candidate whose
// addition would push the running sum above the threshold is pruned without
// descending, so every emitted combination has all prefix sums <= threshold.
// Pruning is per candidate; sets are never sorted, which keeps negative
// values correct and the emission order equal to the input order.
package search

import (
	"context"
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/feasible/types"
)

// DefaultCheckInterval is how many visited nodes pass between context checks.
const DefaultCheckInterval = 1024

// EmitFunc receives each completed combination. The slice is owned by the callee.
// A non-nil error stops the walk and is returned unchanged.
type EmitFunc func(c types.Combination) error

// Options bounds a walk.
//
// Nodes and Results may be shared by concurrent walks so that budgets apply
// to the enumeration as a whole; nil counters are created per walk.
type Options struct {
	// MaxNodes caps visited candidates across all walks sharing Nodes (0 = unlimited).
	MaxNodes int64

	// MaxResults caps emitted combinations across all walks sharing Results (0 = unlimited).
	MaxResults int64

	// CheckInterval is the number of visits between context checks.
	CheckInterval int64

	// Nodes is the shared visited-node counter.
	Nodes *xsync.Counter

	// Results is the shared emitted-combination counter.
	Results *xsync.Counter
}

// Stats counts the work of a single walk.
type Stats struct {
	Visited int64
	Pruned  int64
	Emitted int64
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Visited += other.Visited
	s.Pruned += other.Pruned
	s.Emitted += other.Emitted
}

type walker struct {
	ctx       context.Context
	sets      []types.Set
	threshold float64
	opts      Options
	emit      EmitFunc

	prefix  []float64
	pending int64
	stats   Stats
}

// Candidates returns every value of the first set as a candidate, in order.
func Candidates(sets []types.Set) []types.Candidate {
	if len(sets) == 0 {
		return nil
	}

	out := make([]types.Candidate, len(sets[0]))
	for i, v := range sets[0] {
		out[i] = types.Candidate{Index: i, Value: v}
	}

	return out
}

// Walk enumerates every feasible combination of sets in depth-first order.
//
// Parameters:
//   - ctx: Context checked every opts.CheckInterval visits
//   - sets: Set collection (not modified)
//   - threshold: Upper bound on every prefix sum
//   - opts: Budgets and shared counters
//   - emit: Receives each combination
//
// Returns:
//   - Stats: Work done by this walk, also when an error stops it
//   - error: ErrBudgetExceeded, ErrContextCanceled, or an emit error
func Walk(ctx context.Context, sets []types.Set, threshold float64, opts Options, emit EmitFunc) (Stats, error) {
	return WalkFrom(ctx, sets, threshold, Candidates(sets), opts, emit)
}

// WalkFrom enumerates only the subtrees rooted at the given first-level candidates.
//
// Candidates are explored in the order given. Walking the full candidate list
// is equivalent to Walk.
func WalkFrom(
	ctx context.Context,
	sets []types.Set,
	threshold float64,
	first []types.Candidate,
	opts Options,
	emit EmitFunc,
) (Stats, error) {
	if len(sets) == 0 || len(first) == 0 {
		return Stats{}, nil
	}

	if opts.CheckInterval <= 0 {
		opts.CheckInterval = DefaultCheckInterval
	}
	if opts.Nodes == nil {
		opts.Nodes = xsync.NewCounter()
	}
	if opts.Results == nil {
		opts.Results = xsync.NewCounter()
	}

	w := &walker{
		ctx:       ctx,
		sets:      sets,
		threshold: threshold,
		opts:      opts,
		emit:      emit,
		prefix:    make([]float64, len(sets)),
	}
	defer w.flush()

	for _, c := range first {
		if err := w.visit(); err != nil {
			return w.stats, err
		}
		if c.Value > threshold {
			w.stats.Pruned++
			continue
		}

		w.prefix[0] = c.Value
		if err := w.descend(1, c.Value); err != nil {
			return w.stats, err
		}
	}

	return w.stats, nil
}

func (w *walker) descend(depth int, running float64) error {
	if depth == len(w.sets) {
		return w.complete()
	}

	for _, v := range w.sets[depth] {
		if err := w.visit(); err != nil {
			return err
		}

		next := running + v
		if next > w.threshold {
			w.stats.Pruned++
			continue
		}

		w.prefix[depth] = v
		if err := w.descend(depth+1, next); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) complete() error {
	w.opts.Results.Inc()
	if w.opts.MaxResults > 0 && w.opts.Results.Value() > w.opts.MaxResults {
		return fmt.Errorf("%w: more than %d combinations", types.ErrBudgetExceeded, w.opts.MaxResults)
	}

	c := make(types.Combination, len(w.prefix))
	copy(c, w.prefix)
	w.stats.Emitted++

	return w.emit(c)
}

func (w *walker) visit() error {
	w.stats.Visited++
	w.pending++

	if w.opts.MaxNodes > 0 {
		w.flush()
		if w.opts.Nodes.Value() > w.opts.MaxNodes {
			return fmt.Errorf("%w: more than %d nodes visited", types.ErrBudgetExceeded, w.opts.MaxNodes)
		}
	} else if w.pending >= w.opts.CheckInterval {
		w.flush()
	}

	if w.stats.Visited%w.opts.CheckInterval == 0 {
		if err := w.ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", types.ErrContextCanceled, err)
		}
	}

	return nil
}

func (w *walker) flush() {
	if w.pending > 0 {
		w.opts.Nodes.Add(w.pending)
		w.pending = 0
	}
}
