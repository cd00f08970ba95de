package feasible

import "github.com/arloliu/feasible/types"

// Sentinel errors returned by the Enumerator. See the types package for details.
var (
	// ErrInvalidArgument is returned for a nil set collection or non-numeric values.
	ErrInvalidArgument = types.ErrInvalidArgument

	// ErrNilSets is wrapped by ErrInvalidArgument when the set collection is nil.
	ErrNilSets = types.ErrNilSets

	// ErrNonNumeric is wrapped by ErrInvalidArgument for NaN or infinite values.
	ErrNonNumeric = types.ErrNonNumeric

	// ErrBudgetExceeded is returned when the node or result budget runs out.
	ErrBudgetExceeded = types.ErrBudgetExceeded

	// ErrContextCanceled is returned when the context is canceled or times out.
	ErrContextCanceled = types.ErrContextCanceled

	// ErrInvalidAssignment is returned when a shard strategy does not place
	// every candidate exactly once on a known worker.
	ErrInvalidAssignment = types.ErrInvalidAssignment

	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrSourceRequired is returned when EnumerateSource is given a nil source.
	ErrSourceRequired = types.ErrSourceRequired
)
