package agent

import (
	"github.com/signalsfoundry/pass-simulator/core"
	"github.com/signalsfoundry/pass-simulator/model"
)

// Reactive is the passive baseline: it ignores every event except the
// user's device-switch intent, then performs a blocking foreground
// migration during which the session is unusable.
type Reactive struct{}

// NewReactive returns the baseline policy.
func NewReactive() *Reactive { return &Reactive{} }

// Name implements core.Agent.
func (*Reactive) Name() string { return "Reactive" }

// Decide implements core.Agent. Context changes are not modeled; the
// default action for them is None.
func (*Reactive) Decide(state *core.WorldState, ev *model.Event) core.Action {
	if ev == nil || ev.Kind != model.EventDeviceSwitchIntent {
		return core.None()
	}
	if state.ActiveDevice == ev.NewDevice || state.MigrationStatus == model.MigrationInProgress {
		return core.None()
	}
	return core.Action{
		Kind:         core.ActionBeginMigration,
		TargetDevice: ev.NewDevice,
	}
}
