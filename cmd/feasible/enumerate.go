package main

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/arloliu/feasible/service"
	"github.com/arloliu/feasible/types"
)

func enumerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Enumerate every combination whose prefix sums stay within the threshold",
		Example: `  feasible enumerate --sets "1,5;2,3" --threshold 4
  feasible enumerate --file problem.yaml --workers 4 --format text --stats
  feasible enumerate --sets "1,5;2,3" --threshold 4 --remote nats://127.0.0.1:4222`,
		Args: cobra.NoArgs,
		RunE: runEnumerate,
	}

	flags := cmd.Flags()
	flags.String("file", "", "YAML or JSON problem file")
	flags.String("sets", "", `Sets inline: values separated by ',', sets by ';' (e.g. "1,5;2,3")`)
	flags.Float64("threshold", 0, "Upper bound on every prefix sum (overrides the file)")
	flags.String("format", formatJSON, "Output format: json or text")
	flags.Bool("stats", false, "Include search statistics")
	flags.String("remote", "", "NATS URL of a running feasible service; enumerate remotely")
	flags.String("subject-prefix", service.DefaultSubjectPrefix, "Subject prefix of the remote service")
	addEnumeratorFlags(cmd)

	return cmd
}

func runEnumerate(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := s.logger(cmd)

	format, _ := cmd.Flags().GetString("format")
	showStats, _ := cmd.Flags().GetBool("stats")
	remote, _ := cmd.Flags().GetString("remote")

	src, err := problemSource(cmd, "threshold")
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var res *types.Result
	if remote != "" {
		res, err = enumerateRemote(cmd, &s, remote, src)
	} else {
		e, eerr := s.newEnumerator(logger)
		if eerr != nil {
			return eerr
		}
		res, err = e.EnumerateSource(ctx, src)
	}
	if err != nil {
		return err
	}

	var stats *types.Stats
	if showStats {
		stats = &res.Stats
	}

	return writeCombinations(cmd.OutOrStdout(), format, res.Values(), stats)
}

func enumerateRemote(cmd *cobra.Command, s *settings, url string, src types.SetSource) (*types.Result, error) {
	ctx := cmd.Context()

	p, err := src.LoadProblem(ctx)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}

	nc, err := nats.Connect(url, nats.Name("feasible-cli"))
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	defer nc.Close()

	client, err := service.NewClient(nc,
		service.WithSubjectPrefix(s.Service.SubjectPrefix),
		service.WithRequestTimeout(requestTimeout),
		service.WithRetries(3),
	)
	if err != nil {
		return nil, err
	}

	return client.EnumerateProblem(ctx, p)
}
