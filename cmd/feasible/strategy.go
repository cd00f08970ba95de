package main

import (
	"fmt"
	"strings"

	"github.com/arloliu/feasible/strategy"
	"github.com/arloliu/feasible/types"
)

const (
	strategyRoundRobin     = "round-robin"
	strategyContiguous     = "contiguous"
	strategyConsistentHash = "consistent-hash"
)

func newStrategy(name string) (types.ShardStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", strategyRoundRobin:
		return strategy.NewRoundRobin(), nil
	case strategyContiguous:
		return strategy.NewContiguous(), nil
	case strategyConsistentHash:
		return strategy.NewConsistentHash(), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", types.ErrInvalidConfig, name)
	}
}
