// Package source provides built-in set source implementations.
//
// Set sources supply the problem (set collection and threshold) to enumerate.
// The package includes:
//
//   - Static: A fixed in-memory problem
//   - File: A problem read from a YAML or JSON file
//
// Custom sources can be implemented by satisfying the types.SetSource interface.
package source
