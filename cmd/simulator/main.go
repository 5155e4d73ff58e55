package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "simulator",
		Short: "Session-migration policy simulator for nomadic computing",
		Long: `simulator replays a scripted day-in-the-life scenario against
session-migration policies and compares what the user experienced:
how long the device handover took, how much power the day cost, and
how much data was moved speculatively.

Policies: Reactive (migrate only when the user asks), Myopic (adapt
to the current network but never look ahead), and PASS (predict the
switch and migrate in the background).`,
	}

	rootCmd.PersistentFlags().String("scenario", "", "Path to a YAML scenario file (default: built-in reference scenario)")
	rootCmd.PersistentFlags().String("out", "", "Write summaries and step logs as JSON to this file")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus /metrics on this address until interrupted (e.g. :9090)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newCompareCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("simulator version %s\n", version)
		},
	}
}
