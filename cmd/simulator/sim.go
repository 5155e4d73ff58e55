package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/pass-simulator/agent"
	"github.com/signalsfoundry/pass-simulator/core"
	"github.com/signalsfoundry/pass-simulator/internal/logging"
	"github.com/signalsfoundry/pass-simulator/internal/observability"
	"github.com/signalsfoundry/pass-simulator/internal/report"
	"github.com/signalsfoundry/pass-simulator/results"
)

// loadScenario reads the --scenario file, or falls back to the built-in
// reference scenario when no path is given.
func loadScenario(path string) (core.Config, *core.ScenarioScript, error) {
	if path == "" {
		cfg := core.DefaultConfig()
		script, err := core.ReferenceScript(cfg)
		if err != nil {
			return core.Config{}, nil, err
		}
		return cfg, script, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return core.Config{}, nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	sf, err := core.LoadScenario(f)
	if err != nil {
		return core.Config{}, nil, err
	}
	return sf.Config, sf.Script, nil
}

func newAgent(name string) (core.Agent, error) {
	switch name {
	case "reactive":
		return agent.NewReactive(), nil
	case "myopic":
		return agent.NewMyopic(), nil
	case "pass":
		return agent.NewPASS(nil), nil
	default:
		return nil, fmt.Errorf("unknown agent %q (want reactive, myopic, or pass)", name)
	}
}

// runAgents executes each agent against the shared script and records the
// completed runs in the store. Each agent gets a fresh world; a failure in
// one run aborts the whole command rather than reporting partial results.
func runAgents(ctx context.Context, cfg core.Config, script *core.ScenarioScript, agents []core.Agent,
	store *results.Store, collector *observability.SimCollector, log logging.Logger) error {

	opts := []core.RunnerOption{core.WithLogger(log)}
	if collector != nil {
		opts = append(opts, core.WithMetricsRecorder(collector))
	}
	runner, err := core.NewSimulationRunner(cfg, script, opts...)
	if err != nil {
		return err
	}

	for _, a := range agents {
		entries, err := runner.Run(ctx, a)
		if err != nil {
			return fmt.Errorf("run %s: %w", a.Name(), err)
		}
		summary, err := core.Summarize(a.Name(), entries, cfg)
		if err != nil {
			return fmt.Errorf("summarize %s: %w", a.Name(), err)
		}
		if collector != nil {
			collector.RecordSummary(summary)
		}
		if err := store.AddRun(&results.RunRecord{
			Agent:   a.Name(),
			Summary: summary,
			Entries: entries,
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeOutputs prints the comparison table and optionally exports JSON.
func writeOutputs(cmd *cobra.Command, store *results.Store, outPath string) error {
	report.SummaryTable(cmd.OutOrStdout(), store.ListRuns())

	if outPath == "" {
		return nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	return report.WriteJSON(f, store.ListRuns())
}

func serveMetrics(addr string, collector *observability.SimCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
