package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/feasible/types"
)

// File reads a problem from a YAML or JSON file on every load.
//
// JSON is a subset of YAML, so both formats go through the same decoder.
//
// Example file:
//
//	threshold: 4
//	sets:
//	  - [1, 5]
//	  - [2, 3]
type File struct {
	path string
}

var _ types.SetSource = (*File)(nil)

// NewFile creates a source backed by the file at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// LoadProblem reads and decodes the file.
//
// A file without a "sets" key decodes to a nil collection, which the
// enumerator rejects as ErrInvalidArgument.
//
// Returns:
//   - *types.Problem: Decoded problem
//   - error: Read or parse error
func (f *File) LoadProblem(ctx context.Context) (*types.Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read problem file: %w", err)
	}

	return Decode(data)
}

// Decode parses a YAML or JSON problem document.
func Decode(data []byte) (*types.Problem, error) {
	var p types.Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse problem: %w", err)
	}

	return &p, nil
}
