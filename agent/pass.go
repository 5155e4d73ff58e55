package agent

import (
	"github.com/signalsfoundry/pass-simulator/core"
	"github.com/signalsfoundry/pass-simulator/model"
)

// PASS is the proactive policy. When its predictor signals an upcoming
// switch it starts a background migration immediately, so the session
// state is already on the target when the user acts and the handover is
// a one-step fast path. If the prediction arrives too late to finish, it
// falls back to the same blocking transfer as the baseline.
type PASS struct {
	predictor IntentPredictor
}

// NewPASS wires the policy with the given predictor; nil selects the
// stock WalkingHandoffPredictor.
func NewPASS(p IntentPredictor) *PASS {
	if p == nil {
		p = WalkingHandoffPredictor{}
	}
	return &PASS{predictor: p}
}

// Name implements core.Agent.
func (*PASS) Name() string { return "PASS" }

// Decide implements core.Agent.
func (a *PASS) Decide(state *core.WorldState, ev *model.Event) core.Action {
	if target, ok := a.predictor.Predict(state, ev); ok {
		if state.MigrationStatus == model.MigrationIdle && state.SessionLocation != target {
			return core.Action{
				Kind:         core.ActionBeginMigration,
				TargetDevice: target,
				Background:   true,
			}
		}
	}

	if ev != nil && ev.Kind == model.EventDeviceSwitchIntent && state.ActiveDevice != ev.NewDevice {
		switch state.MigrationStatus {
		case model.MigrationComplete:
			if state.SessionLocation == ev.NewDevice {
				return core.Action{
					Kind:         core.ActionCompleteMigration,
					TargetDevice: ev.NewDevice,
				}
			}
		case model.MigrationInProgress:
			// Prediction fired but the transfer is still draining; the
			// switch stays pending until it completes.
			return core.None()
		case model.MigrationIdle:
			// Prediction never fired: slow path, same as the baseline.
			return core.Action{
				Kind:         core.ActionBeginMigration,
				TargetDevice: ev.NewDevice,
			}
		}
	}

	return core.None()
}
