package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/pass-simulator/model"
)

// ErrZeroDenominator is returned when a metrics division would be
// undefined. The reference constants make this unreachable, but a future
// configuration change must fail loudly rather than emit infinity.
var ErrZeroDenominator = errors.New("metrics: zero denominator")

// ErrEmptyLog is returned when asked to summarize a run that produced
// no entries.
var ErrEmptyLog = errors.New("metrics: empty run log")

// Summarize reduces one agent's completed log into the summary record.
// Pure function of the log and configuration: no mutation, no I/O.
//
// Handover latency counts the consecutive steps from the device-switch
// intent until the session is usable on the target (active device equals
// the target and the migration is complete), minimum 1 for the step the
// switch is perceived. A run whose switch never completes reports the
// remaining horizon.
//
// Kleinrock's power is the throughput proxy γ divided by the latency,
// with γ = gamma_scale × session_size / migration_steps; higher is
// better. Runs that never migrated report 0.
func Summarize(agent string, entries []model.LogEntry, cfg Config) (model.Summary, error) {
	if len(entries) == 0 {
		return model.Summary{}, ErrEmptyLog
	}
	if err := cfg.Validate(); err != nil {
		return model.Summary{}, err
	}

	last := entries[len(entries)-1]
	summary := model.Summary{
		Agent:           agent,
		TotalPowerUnits: last.CumulativePowerUnits,
		ProactiveDataMB: last.ProactiveDataMB,
	}

	intentStep, target, ok := switchIntent(entries)
	if ok {
		summary.HandoverLatencySteps = handoverLatency(entries, intentStep, target)
	}

	migrationSteps := 0
	for _, e := range entries {
		if e.TransferredMB > 0 {
			migrationSteps++
		}
	}
	if migrationSteps > 0 && summary.HandoverLatencySteps > 0 {
		gamma := cfg.GammaScale * cfg.SessionSizeMB / float64(migrationSteps)
		kleinrock, err := safeDiv(gamma, float64(summary.HandoverLatencySteps))
		if err != nil {
			return model.Summary{}, fmt.Errorf("kleinrock power for %q: %w", agent, err)
		}
		summary.KleinrockPower = kleinrock
	}

	return summary, nil
}

// switchIntent finds the scripted device-switch event in the log.
func switchIntent(entries []model.LogEntry) (step int, target model.DeviceKind, ok bool) {
	for _, e := range entries {
		if e.Event != nil && e.Event.Kind == model.EventDeviceSwitchIntent {
			return e.Step, e.Event.NewDevice, true
		}
	}
	return 0, "", false
}

// handoverLatency counts steps from the intent (inclusive) to the first
// entry where the session is usable on the target.
func handoverLatency(entries []model.LogEntry, intentStep int, target model.DeviceKind) int {
	for _, e := range entries {
		if e.Step < intentStep {
			continue
		}
		if e.ActiveDevice == target && e.MigrationStatus == model.MigrationComplete {
			latency := e.Step - intentStep + 1
			if latency < 1 {
				latency = 1
			}
			return latency
		}
	}
	// Never completed: the user waited out the rest of the run.
	lastStep := entries[len(entries)-1].Step
	latency := lastStep - intentStep + 1
	if latency < 1 {
		latency = 1
	}
	return latency
}

func safeDiv(num, den float64) (float64, error) {
	if den == 0 {
		return 0, ErrZeroDenominator
	}
	return num / den, nil
}
