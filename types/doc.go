// Package types provides core type definitions and interfaces for the feasible library.
//
// The types live in their own package so that internal implementations
// (search, strategy, metrics) can share them without importing the root
// feasible package.
//
// Key types:
//   - Set: One input set of numeric values
//   - Combination: One value drawn from each set, in set order
//   - Candidate: A first-level choice, the unit of work sharded across workers
//   - Problem: A set collection plus threshold
//   - Result: Combinations plus search statistics
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
