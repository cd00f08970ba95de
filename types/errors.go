package types

import "errors"

// Sentinel errors for the feasible library.
//
// Callers check them with errors.Is. Components wrap the sentinel with
// context using fmt.Errorf("%w: ...", ErrX).

// Input errors - malformed arguments to an enumeration.
var (
	// ErrInvalidArgument is returned for malformed input: a missing set
	// collection or non-numeric values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilSets is wrapped by ErrInvalidArgument when the set collection is nil.
	ErrNilSets = errors.New("set collection is nil")

	// ErrNonNumeric is wrapped by ErrInvalidArgument when a value is NaN or infinite.
	ErrNonNumeric = errors.New("non-numeric value")
)

// Search errors - conditions that stop an enumeration early.
var (
	// ErrBudgetExceeded is returned when the node or result budget runs out.
	ErrBudgetExceeded = errors.New("search budget exceeded")

	// ErrContextCanceled is returned when the enumeration is canceled by context.
	ErrContextCanceled = errors.New("operation canceled by context")

	// ErrInvalidAssignment is returned when a shard strategy drops, duplicates
	// or misplaces a candidate.
	ErrInvalidAssignment = errors.New("invalid candidate assignment")
)

// Configuration errors.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceRequired is returned when a set source is nil.
	ErrSourceRequired = errors.New("set source is required")
)

// Service errors - NATS adapter lifecycle.
var (
	// ErrEnumeratorRequired is returned when a service is built without an enumerator.
	ErrEnumeratorRequired = errors.New("enumerator is required")

	// ErrConnectionRequired is returned when a NATS connection is nil.
	ErrConnectionRequired = errors.New("NATS connection is required")

	// ErrAlreadyStarted is returned when Start is called on a running service.
	ErrAlreadyStarted = errors.New("service already started")

	// ErrNotStarted is returned when Stop is called on a service that hasn't been started.
	ErrNotStarted = errors.New("service not started")
)

// IsInvalidArgument reports whether err stems from malformed input.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
