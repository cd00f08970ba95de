package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/feasible/source"
	"github.com/arloliu/feasible/types"
)

// parseSets parses the --sets syntax: sets separated by ';', values by ','.
// "1,5;2,3" is two sets, "1,2;;3" has an empty middle set and "" has no sets.
func parseSets(s string) ([]types.Set, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []types.Set{}, nil
	}

	parts := strings.Split(s, ";")
	sets := make([]types.Set, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		sets[i] = types.Set{}
		if part == "" {
			continue
		}

		for j, field := range strings.Split(part, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: set %d value %d: %q is not a number", types.ErrInvalidArgument, i, j, field)
			}
			sets[i] = append(sets[i], v)
		}
	}

	return sets, nil
}

// problemSource builds the set source named by --file or --sets. thresholdFlag
// names the flag that overrides the file's threshold.
func problemSource(cmd *cobra.Command, thresholdFlag string) (types.SetSource, error) {
	flags := cmd.Flags()
	file, _ := flags.GetString("file")
	hasSets := flags.Changed("sets")

	switch {
	case file != "" && hasSets:
		return nil, fmt.Errorf("%w: --file and --sets are mutually exclusive", types.ErrInvalidArgument)
	case file != "":
		src := source.NewFile(file)
		if !flags.Changed(thresholdFlag) {
			return src, nil
		}

		p, err := src.LoadProblem(cmd.Context())
		if err != nil {
			return nil, err
		}
		p.Threshold, err = thresholdValue(cmd, thresholdFlag)
		if err != nil {
			return nil, err
		}

		return source.NewStatic(*p), nil
	case hasSets:
		raw, _ := flags.GetString("sets")
		sets, err := parseSets(raw)
		if err != nil {
			return nil, err
		}
		threshold, err := thresholdValue(cmd, thresholdFlag)
		if err != nil {
			return nil, err
		}

		return source.NewStatic(types.Problem{Sets: sets, Threshold: threshold}), nil
	default:
		return nil, fmt.Errorf("%w: one of --file or --sets is required", types.ErrInvalidArgument)
	}
}

func thresholdValue(cmd *cobra.Command, name string) (float64, error) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Value.Type() == "int" {
		v, err := cmd.Flags().GetInt(name)
		return float64(v), err
	}

	return cmd.Flags().GetFloat64(name)
}
