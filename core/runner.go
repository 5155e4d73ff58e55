package core

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/pass-simulator/internal/logging"
	"github.com/signalsfoundry/pass-simulator/model"
)

// MetricsRecorder receives per-step observations. The Prometheus
// collector in internal/observability implements it; a nil recorder
// disables recording.
type MetricsRecorder interface {
	RecordStep(agent string, entry model.LogEntry)
}

// RunnerOption customizes a SimulationRunner.
type RunnerOption func(*SimulationRunner)

// WithLogger attaches a structured logger; defaults to Noop.
func WithLogger(log logging.Logger) RunnerOption {
	return func(r *SimulationRunner) { r.log = log }
}

// WithMetricsRecorder attaches a per-step metrics sink.
func WithMetricsRecorder(rec MetricsRecorder) RunnerOption {
	return func(r *SimulationRunner) { r.recorder = rec }
}

// SimulationRunner drives one agent over the fixed horizon. The runner
// is single-threaded and synchronous: background migration is modeled as
// deterministic step-counted progress, never real parallelism, so no
// locking is needed around WorldState.
type SimulationRunner struct {
	cfg      Config
	script   *ScenarioScript
	power    *PowerModel
	log      logging.Logger
	recorder MetricsRecorder
	tracer   trace.Tracer
}

// NewSimulationRunner validates the configuration and wires the runner.
func NewSimulationRunner(cfg Config, script *ScenarioScript, opts ...RunnerOption) (*SimulationRunner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if script == nil {
		return nil, fmt.Errorf("runner: scenario script is required")
	}
	r := &SimulationRunner{
		cfg:    cfg,
		script: script,
		power:  NewPowerModel(cfg.Power),
		log:    logging.Noop(),
		tracer: otel.Tracer("pass-simulator/core"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes exactly cfg.HorizonSteps steps for one agent against a
// fresh WorldState and returns the completed log. Running the same agent
// twice yields an identical log; a fault aborts only this run and can
// never corrupt another agent's independent run.
func (r *SimulationRunner) Run(ctx context.Context, agent Agent) ([]model.LogEntry, error) {
	if agent == nil {
		return nil, fmt.Errorf("runner: agent is required")
	}

	ctx, span := r.tracer.Start(ctx, "sim.run",
		trace.WithAttributes(
			attribute.String("sim.agent", agent.Name()),
			attribute.Int("sim.horizon_steps", r.cfg.HorizonSteps),
		))
	defer span.End()

	ctx, log := logging.WithRunLogger(ctx, r.log)
	log = log.With(logging.String("agent", agent.Name()))
	log.Info(ctx, "starting simulation run",
		logging.Int("horizon_steps", r.cfg.HorizonSteps),
		logging.Int("scripted_events", r.script.Len()),
	)

	world, err := NewWorldState(r.cfg)
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}

	entries := make([]model.LogEntry, 0, r.cfg.HorizonSteps)
	for step := 0; step < r.cfg.HorizonSteps; step++ {
		ev := r.script.EventAt(step)
		action := agent.Decide(world, ev)

		if err := r.applyAction(ctx, log, world, action); err != nil {
			return nil, fmt.Errorf("runner: step %d: %w", step, err)
		}

		transferred, background := world.ProgressMigration()

		if err := world.ApplyEvent(ev); err != nil {
			return nil, fmt.Errorf("runner: step %d: %w", step, err)
		}
		if ev != nil {
			log.Info(ctx, "scripted event applied",
				logging.Int("step", step),
				logging.String("event", ev.Kind.String()),
			)
		}

		activity := r.classify(world, action, transferred, background)
		draw := r.power.Charge(activity)
		world.AccumulatePower(draw)

		entry := world.Snapshot(ev, action.Kind.String(), activity.Class, transferred, draw)
		entries = append(entries, entry)
		if r.recorder != nil {
			r.recorder.RecordStep(agent.Name(), entry)
		}

		world.AdvanceTime()
	}

	log.Info(ctx, "simulation run complete",
		logging.Int("entries", len(entries)),
		logging.Any("total_power_units", world.CumulativePowerUnits),
	)
	return entries, nil
}

// applyAction mutates the world as the agent directed. Unknown or
// inapplicable actions degrade to no-ops: policy blindness is modeled
// behavior, not an error.
func (r *SimulationRunner) applyAction(ctx context.Context, log logging.Logger, world *WorldState, action Action) error {
	switch action.Kind {
	case ActionNone:
		return nil
	case ActionBeginMigration:
		if world.MigrationStatus == model.MigrationInProgress {
			return nil
		}
		if err := world.BeginMigration(action.TargetDevice, action.Background); err != nil {
			return err
		}
		log.Info(ctx, "migration started",
			logging.Int("step", world.TimeStep),
			logging.String("target", string(action.TargetDevice)),
			logging.Any("background", action.Background),
		)
		return nil
	case ActionAdaptQoS:
		world.AdaptQoS(action.QoS)
		log.Info(ctx, "qos adapted",
			logging.Int("step", world.TimeStep),
			logging.String("level", string(action.QoS)),
		)
		return nil
	case ActionCompleteMigration:
		if world.CompleteHandover(action.TargetDevice) {
			log.Info(ctx, "fast-path handover",
				logging.Int("step", world.TimeStep),
				logging.String("target", string(action.TargetDevice)),
			)
		}
		return nil
	default:
		return nil
	}
}

// classify resolves the step's power activity from what actually
// happened: transfers dominate, then adaptation/handover work, then
// plain active use.
func (r *SimulationRunner) classify(world *WorldState, action Action, transferredMB float64, background bool) Activity {
	if transferredMB > 0 {
		return Activity{
			Class:      model.ActivityTransmit,
			Device:     world.ActiveDevice,
			QoS:        world.QoS,
			Network:    world.MigrationNetwork(),
			PayloadMB:  transferredMB,
			Background: background,
		}
	}
	if action.Kind == ActionAdaptQoS || action.Kind == ActionCompleteMigration {
		return Activity{
			Class:  model.ActivityCPUBurst,
			Device: world.ActiveDevice,
			QoS:    world.QoS,
		}
	}
	return Activity{
		Class:  model.ActivityActiveUse,
		Device: world.ActiveDevice,
		QoS:    world.QoS,
	}
}
