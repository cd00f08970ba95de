// Command feasible enumerates feasible combinations from the command line and
// serves the enumerator over NATS.
//
// Usage:
//
//	feasible enumerate --sets "1,5;2,3" --threshold 4
//	feasible enumerate --file problem.yaml --workers 4 --format text
//	feasible filter --sets "1,5,10" --theta 5
//	feasible serve --nats-url nats://127.0.0.1:4222 --cache --metrics-addr :9090
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "feasible",
		Short:         "Enumerate combinations whose prefix sums stay within a threshold",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env FEASIBLE_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		enumerateCmd(),
		filterCmd(),
		serveCmd(),
	)

	return rootCmd
}
