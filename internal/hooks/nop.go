// Package hooks provides default hook implementations.
package hooks

import (
	"context"

	"github.com/arloliu/feasible/types"
)

// NopHooks implements every hook as a no-op.
//
// It is used to fill in callbacks the caller left nil, so the enumerator can
// invoke hooks without nil checks.
type NopHooks struct{}

var (
	_ func(context.Context, types.Combination) error = (*NopHooks)(nil).OnCombination
	_ func(context.Context, string, int) error        = (*NopHooks)(nil).OnWorkerDone
	_ func(context.Context, error) error              = (*NopHooks)(nil).OnError
)

// NewNop creates hooks whose callbacks all do nothing.
func NewNop() types.Hooks {
	h := &NopHooks{}

	return types.Hooks{
		OnCombination: h.OnCombination,
		OnWorkerDone:  h.OnWorkerDone,
		OnError:       h.OnError,
	}
}

// WithDefaults returns a copy of h where every nil callback is a no-op.
//
// Parameters:
//   - h: Caller hooks (may be nil)
//
// Returns:
//   - types.Hooks: Hooks safe to invoke without nil checks
func WithDefaults(h *types.Hooks) types.Hooks {
	out := NewNop()
	if h == nil {
		return out
	}

	if h.OnCombination != nil {
		out.OnCombination = h.OnCombination
	}
	if h.OnWorkerDone != nil {
		out.OnWorkerDone = h.OnWorkerDone
	}
	if h.OnError != nil {
		out.OnError = h.OnError
	}

	return out
}

// OnCombination is a no-op implementation.
func (h *NopHooks) OnCombination(_ context.Context, _ types.Combination) error {
	return nil
}

// OnWorkerDone is a no-op implementation.
func (h *NopHooks) OnWorkerDone(_ context.Context, _ string, _ int) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
