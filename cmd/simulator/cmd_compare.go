package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/pass-simulator/core"
	"github.com/signalsfoundry/pass-simulator/internal/logging"
	"github.com/signalsfoundry/pass-simulator/internal/observability"
	"github.com/signalsfoundry/pass-simulator/internal/report"
	"github.com/signalsfoundry/pass-simulator/results"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run all three agents over the same scenario and compare them",
		Long: `Runs Reactive, Myopic, and PASS over the identical scripted
scenario and prints a side-by-side comparison of handover latency,
total power, Kleinrock power, and proactive data moved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			showSteps, _ := cmd.Flags().GetBool("steps")
			verbose, _ := cmd.Flags().GetBool("verbose")
			scenarioPath, _ := cmd.Flags().GetString("scenario")
			outPath, _ := cmd.Flags().GetString("out")
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

			log := logging.NewFromEnv()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}
			defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

			cfg, script, err := loadScenario(scenarioPath)
			if err != nil {
				return err
			}

			agents := make([]core.Agent, 0, 3)
			for _, name := range []string{"reactive", "myopic", "pass"} {
				a, err := newAgent(name)
				if err != nil {
					return err
				}
				agents = append(agents, a)
			}

			collector, err := observability.NewSimCollector(nil)
			if err != nil {
				return fmt.Errorf("init metrics collector: %w", err)
			}
			metricsSrv := serveMetrics(metricsAddr, collector, log)

			store := results.NewStore()
			if err := runAgents(ctx, cfg, script, agents, store, collector, log); err != nil {
				return err
			}

			if showSteps || verbose {
				for _, rec := range store.ListRuns() {
					report.StepTable(cmd.OutOrStdout(), rec, verbose)
				}
			}
			if err := writeOutputs(cmd, store, outPath); err != nil {
				return err
			}

			if metricsSrv != nil {
				log.Info(ctx, "comparison complete; metrics still serving, interrupt to exit")
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = metricsSrv.Shutdown(shutdownCtx)
			}
			return nil
		},
	}

	cmd.Flags().Bool("steps", false, "Print each agent's per-step table")
	cmd.Flags().Bool("verbose", false, "Print every step, not just eventful ones")

	return cmd
}
