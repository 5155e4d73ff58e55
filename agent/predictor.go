// Package agent implements the three session-migration policies driven
// by the simulation runner: a passive reactive baseline, a myopic
// adapter, and the proactive PASS policy.
package agent

import (
	"github.com/signalsfoundry/pass-simulator/core"
	"github.com/signalsfoundry/pass-simulator/model"
)

// IntentPredictor forecasts an upcoming device switch from the current
// world and scripted event. It returns the predicted target device and
// whether a switch is anticipated. The stock implementation is a
// deterministic stand-in; a trained model can be substituted without
// touching the agent or runner contracts.
type IntentPredictor interface {
	Predict(state *core.WorldState, ev *model.Event) (model.DeviceKind, bool)
}

// WalkingHandoffPredictor anticipates a laptop-to-phone switch when the
// user starts walking onto a cellular network, the single trigger the
// reference scenario defines.
type WalkingHandoffPredictor struct{}

// Predict implements IntentPredictor.
func (WalkingHandoffPredictor) Predict(state *core.WorldState, ev *model.Event) (model.DeviceKind, bool) {
	if ev == nil || ev.Kind != model.EventContextChange {
		return "", false
	}
	if ev.NewLocation != model.LocationWalking || ev.NewNetwork.Type != model.Network5G {
		return "", false
	}
	if state.ActiveDevice != model.DeviceLaptop {
		return "", false
	}
	return model.DevicePhone, true
}
