package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/feasible/types"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type jsonOutput struct {
	Combinations [][]float64  `json:"combinations"`
	Stats        *types.Stats `json:"stats,omitempty"`
}

// writeCombinations renders combinations as JSON or as one space-separated
// line per combination.
func writeCombinations(w io.Writer, format string, combs [][]float64, stats *types.Stats) error {
	if combs == nil {
		combs = [][]float64{}
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(jsonOutput{Combinations: combs, Stats: stats})
	case formatText:
		for _, c := range combs {
			fields := make([]string, len(c))
			for i, v := range c {
				fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
				return err
			}
		}
		if stats != nil {
			_, err := fmt.Fprintf(w, "# emitted=%d visited=%d pruned=%d workers=%d duration=%s\n",
				stats.Emitted, stats.Visited, stats.Pruned, stats.Workers, stats.Duration)
			return err
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q", types.ErrInvalidConfig, format)
	}
}
