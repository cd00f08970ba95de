// Package strategy provides built-in shard strategy implementations.
//
// A shard strategy decides which worker explores the subtree under each
// first-level candidate of a parallel enumeration. The enumerator merges
// worker results by candidate index, so the choice of strategy changes only
// how work is spread, never the result.
//
//   - RoundRobin: candidate i goes to worker i mod n (default)
//   - Contiguous: each worker owns one consecutive block of candidates
//   - ConsistentHash: xxh3 hash ring with virtual nodes, stable when the worker count changes
//
// Custom strategies can be implemented by satisfying the types.ShardStrategy interface.
package strategy
