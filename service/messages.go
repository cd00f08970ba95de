package service

import (
	"errors"
	"fmt"

	"github.com/arloliu/feasible/types"
)

// ErrRemote is returned by Client when the service reports a failure that
// has no local sentinel.
var ErrRemote = errors.New("remote enumeration failed")

// HeaderRequestID carries the request correlation ID. The service echoes it
// in the reply header and body.
const HeaderRequestID = "Feasible-Request-Id"

// Error codes carried in Reply.Code.
const (
	CodeInvalidArgument = "invalid_argument"
	CodeBudgetExceeded  = "budget_exceeded"
	CodeCanceled        = "canceled"
	CodeInternal        = "internal"
)

// FilterRequest is the body of a filter request.
type FilterRequest struct {
	Sets  [][]float64 `json:"sets"`
	Theta int         `json:"theta"`
}

// Reply is the body of every service response.
type Reply struct {
	// Combinations is never null on success.
	Combinations [][]float64 `json:"combinations"`

	// Stats describes the search; absent for filter replies.
	Stats *types.Stats `json:"stats,omitempty"`

	// Cached is set when the reply came from the result cache.
	Cached bool `json:"cached,omitempty"`

	// RequestID echoes the request's HeaderRequestID, if any.
	RequestID string `json:"requestId,omitempty"`

	// Error and Code describe a failure.
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Err converts a failed reply back into an error matching the local
// sentinels, or nil for a successful reply.
func (r *Reply) Err() error {
	if r.Code == "" && r.Error == "" {
		return nil
	}

	var sentinel error
	switch r.Code {
	case CodeInvalidArgument:
		sentinel = types.ErrInvalidArgument
	case CodeBudgetExceeded:
		sentinel = types.ErrBudgetExceeded
	case CodeCanceled:
		sentinel = types.ErrContextCanceled
	default:
		sentinel = ErrRemote
	}

	return fmt.Errorf("%w: %s", sentinel, r.Error)
}

// Result converts a successful reply into a Result.
func (r *Reply) Result() *types.Result {
	res := &types.Result{Combinations: make([]types.Combination, len(r.Combinations))}
	for i, c := range r.Combinations {
		res.Combinations[i] = types.Combination(c)
	}
	if r.Stats != nil {
		res.Stats = *r.Stats
	}

	return res
}

func errorReply(err error) Reply {
	return Reply{Error: err.Error(), Code: errorCode(err)}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, types.ErrBudgetExceeded):
		return CodeBudgetExceeded
	case errors.Is(err, types.ErrContextCanceled):
		return CodeCanceled
	default:
		return CodeInternal
	}
}
