package types

import "context"

// SetSource supplies the problem to enumerate.
//
// Implementations may read from memory, files or remote stores. The returned
// problem must be owned by the caller.
type SetSource interface {
	// LoadProblem returns the set collection and threshold.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//
	// Returns:
	//   - *Problem: Problem owned by the caller
	//   - error: Load or parse error
	LoadProblem(ctx context.Context) (*Problem, error)
}
