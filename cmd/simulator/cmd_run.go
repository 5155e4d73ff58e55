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
	"github.com/signalsfoundry/pass-simulator/model"
	"github.com/signalsfoundry/pass-simulator/replay"
	"github.com/signalsfoundry/pass-simulator/results"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single agent over the scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			agentName, _ := cmd.Flags().GetString("agent")
			showSteps, _ := cmd.Flags().GetBool("steps")
			verbose, _ := cmd.Flags().GetBool("verbose")
			replayTick, _ := cmd.Flags().GetDuration("replay")
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
			a, err := newAgent(agentName)
			if err != nil {
				return err
			}

			collector, err := observability.NewSimCollector(nil)
			if err != nil {
				return fmt.Errorf("init metrics collector: %w", err)
			}
			metricsSrv := serveMetrics(metricsAddr, collector, log)

			store := results.NewStore()
			if err := runAgents(ctx, cfg, script, []core.Agent{a}, store, collector, log); err != nil {
				return err
			}

			rec := store.GetRun(a.Name())
			if replayTick > 0 {
				replayRun(cmd, rec, replayTick)
			}
			if showSteps || verbose {
				report.StepTable(cmd.OutOrStdout(), rec, verbose)
			}
			if err := writeOutputs(cmd, store, outPath); err != nil {
				return err
			}

			if metricsSrv != nil {
				log.Info(ctx, "run complete; metrics still serving, interrupt to exit")
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = metricsSrv.Shutdown(shutdownCtx)
			}
			return nil
		},
	}

	cmd.Flags().String("agent", "pass", "Agent to run: reactive, myopic, or pass")
	cmd.Flags().Bool("steps", false, "Print the per-step table for the run")
	cmd.Flags().Bool("verbose", false, "Print every step, not just eventful ones")
	cmd.Flags().Duration("replay", 0, "Replay the run log at this pace per step (0 = off)")

	return cmd
}

// replayRun paces the recorded log through a Player, printing each entry
// as it fires.
func replayRun(cmd *cobra.Command, rec *results.RunRecord, tick time.Duration) {
	player := replay.NewPlayer(tick)
	player.AddListener(func(e model.LogEntry) {
		marker := ""
		if e.Event != nil {
			marker = " <- " + e.Event.Kind.String()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "t=%03d %-9s %-6s device=%-6s session=%-6s %-10s qos=%-8s%s\n",
			e.Step, e.Location, e.Network.Type, e.ActiveDevice, e.SessionLocation,
			e.MigrationStatus, e.QoS, marker)
	})
	<-player.Play(rec.Entries)
}
