package types

import "context"

// Hooks defines callbacks for enumeration events.
//
// All hooks are optional. Unlike metrics, hooks run synchronously on the
// enumerating goroutine and a non-nil error from OnCombination aborts the
// enumeration.
//
// Example:
//
//	hooks := &feasible.Hooks{
//	    OnCombination: func(ctx context.Context, c feasible.Combination) error {
//	        return writer.Write(c)
//	    },
//	}
type Hooks struct {
	// OnCombination is called for each emitted combination, in result order.
	OnCombination func(ctx context.Context, c Combination) error

	// OnWorkerDone is called after a parallel worker finishes its candidates.
	OnWorkerDone func(ctx context.Context, workerID string, emitted int) error

	// OnError is called when an enumeration fails.
	OnError func(ctx context.Context, err error) error
}
