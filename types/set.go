package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
)

// Set is an ordered sequence of numeric values.
//
// Duplicates are permitted. Order is preserved for indexing and determines
// the order in which candidates are tried, but it carries no other meaning.
type Set []float64

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}

	out := make(Set, len(s))
	copy(out, s)

	return out
}

// Combination is an ordered sequence of values, one drawn from each input set.
type Combination []float64

// Sum returns the total of all values in the combination.
func (c Combination) Sum() float64 {
	var total float64
	for _, v := range c {
		total += v
	}

	return total
}

// Feasible reports whether every prefix sum of the combination is <= threshold.
//
// An empty combination is trivially feasible.
func (c Combination) Feasible(threshold float64) bool {
	var running float64
	for _, v := range c {
		running += v
		if running > threshold {
			return false
		}
	}

	return true
}

// Candidate is a value chosen from the first set together with its position.
//
// Candidates are the unit of work handed to workers: each worker explores the
// subtrees rooted at the candidates it owns.
type Candidate struct {
	// Index is the position of the value within the first set.
	Index int `json:"index"`

	// Value is the candidate value itself.
	Value float64 `json:"value"`
}

// Key returns a stable identifier for the candidate ("c-<index>").
func (c Candidate) Key() string {
	return "c-" + strconv.Itoa(c.Index)
}

// HashSeed folds the candidate index into a 64-bit xxh3 hash.
//
// Only the index participates, so duplicate values at different positions
// land on independent ring positions.
func (c Candidate) HashSeed(seed uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(c.Index)) //nolint:gosec // index is never negative

	if seed == 0 {
		return xxh3.Hash(b[:])
	}

	return xxh3.HashSeed(b[:], seed)
}

// Problem bundles the inputs of one enumeration.
type Problem struct {
	// Sets is the ordered set collection. A nil collection is invalid.
	Sets []Set `json:"sets" yaml:"sets"`

	// Threshold bounds every prefix sum of an emitted combination.
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// problemJSON is the wire shape of Problem. Infinite thresholds, which JSON
// numbers cannot carry, travel as the strings "+Inf" and "-Inf".
type problemJSON struct {
	Sets      []Set           `json:"sets"`
	Threshold json.RawMessage `json:"threshold,omitempty"`
}

// MarshalJSON encodes p, writing an infinite threshold as "+Inf" or "-Inf".
func (p Problem) MarshalJSON() ([]byte, error) {
	var threshold []byte
	switch {
	case math.IsInf(p.Threshold, 1):
		threshold = []byte(`"+Inf"`)
	case math.IsInf(p.Threshold, -1):
		threshold = []byte(`"-Inf"`)
	default:
		var err error
		if threshold, err = json.Marshal(p.Threshold); err != nil {
			return nil, err
		}
	}

	return json.Marshal(problemJSON{Sets: p.Sets, Threshold: threshold})
}

// UnmarshalJSON decodes a threshold given as a number or as "+Inf"/"-Inf".
func (p *Problem) UnmarshalJSON(data []byte) error {
	var raw problemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Sets = raw.Sets
	p.Threshold = 0
	if len(raw.Threshold) == 0 || string(raw.Threshold) == "null" {
		return nil
	}

	if raw.Threshold[0] != '"' {
		return json.Unmarshal(raw.Threshold, &p.Threshold)
	}

	var text string
	if err := json.Unmarshal(raw.Threshold, &text); err != nil {
		return err
	}
	switch text {
	case "+Inf", "Inf":
		p.Threshold = math.Inf(1)
	case "-Inf":
		p.Threshold = math.Inf(-1)
	default:
		return fmt.Errorf("threshold %q is neither a number nor an infinity", text)
	}

	return nil
}

// Validate checks that the problem can be enumerated.
//
// Returns:
//   - error: ErrInvalidArgument (wrapping ErrNilSets or ErrNonNumeric), nil if valid
func (p *Problem) Validate() error {
	return ValidateInput(p.Sets, p.Threshold)
}

// ValidateInput checks a set collection and threshold for malformed values.
//
// A nil collection and any NaN or infinite value are rejected. Empty inner
// sets and negative values are legal.
//
// Parameters:
//   - sets: Set collection to check
//   - threshold: Upper bound on prefix sums
//
// Returns:
//   - error: ErrInvalidArgument wrapping the specific cause, nil if valid
func ValidateInput(sets []Set, threshold float64) error {
	if sets == nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrNilSets)
	}
	if math.IsNaN(threshold) {
		return fmt.Errorf("%w: %w: threshold is NaN", ErrInvalidArgument, ErrNonNumeric)
	}

	for i, set := range sets {
		for j, v := range set {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %w: set %d element %d is %v", ErrInvalidArgument, ErrNonNumeric, i, j, v)
			}
		}
	}

	return nil
}

// Stats summarizes the work done by one enumeration.
type Stats struct {
	// Visited counts candidate values examined across all depths.
	Visited int64 `json:"visited"`

	// Pruned counts candidates skipped because they would exceed the threshold.
	Pruned int64 `json:"pruned"`

	// Emitted counts completed combinations.
	Emitted int64 `json:"emitted"`

	// Workers is the number of workers that took part.
	Workers int `json:"workers"`

	// Duration is the wall-clock time of the enumeration.
	Duration time.Duration `json:"duration"`
}

// Result is the outcome of one enumeration.
type Result struct {
	// Combinations holds every feasible combination in depth-first order.
	Combinations []Combination `json:"combinations"`

	// Stats describes the search.
	Stats Stats `json:"stats"`
}

// Values returns the combinations as plain nested slices.
func (r *Result) Values() [][]float64 {
	out := make([][]float64, len(r.Combinations))
	for i, c := range r.Combinations {
		out[i] = []float64(c)
	}

	return out
}
