package main

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/feasible"
)

func filterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Run the single-set filter: values <= theta as singletons, nothing for multi-set input",
		Example: `  feasible filter --sets "1,5,10" --theta 5
  feasible filter --file problem.yaml --theta 5 --format text`,
		Args: cobra.NoArgs,
		RunE: runFilter,
	}

	flags := cmd.Flags()
	flags.String("file", "", "YAML or JSON problem file")
	flags.String("sets", "", `Sets inline: values separated by ',', sets by ';'`)
	flags.Int("theta", 0, "Integer threshold")
	flags.String("format", formatJSON, "Output format: json or text")
	_ = cmd.MarkFlagRequired("theta")

	return cmd
}

func runFilter(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	theta, _ := cmd.Flags().GetInt("theta")

	src, err := problemSource(cmd, "theta")
	if err != nil {
		return err
	}

	p, err := src.LoadProblem(cmd.Context())
	if err != nil {
		return err
	}

	sets := make([][]float64, len(p.Sets))
	for i, set := range p.Sets {
		sets[i] = set
	}

	return writeCombinations(cmd.OutOrStdout(), format, feasible.FindFeasibleSumSubsets(sets, theta), nil)
}
