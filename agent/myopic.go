package agent

import (
	"github.com/signalsfoundry/pass-simulator/core"
	"github.com/signalsfoundry/pass-simulator/model"
)

// Myopic adapts to the current context, downgrading QoS when the
// network narrows, but has no model of upcoming device intent. A device
// switch therefore costs it the same blocking transfer as the reactive
// baseline.
type Myopic struct{}

// NewMyopic returns the adaptive-but-unpredictive policy.
func NewMyopic() *Myopic { return &Myopic{} }

// Name implements core.Agent.
func (*Myopic) Name() string { return "Myopic" }

// Decide implements core.Agent.
func (*Myopic) Decide(state *core.WorldState, ev *model.Event) core.Action {
	if ev == nil {
		return core.None()
	}
	switch ev.Kind {
	case model.EventContextChange:
		// Downgrade once when moving onto a narrower link.
		if ev.NewNetwork.BandwidthMBps < state.Network.BandwidthMBps && state.QoS == model.QoSHigh {
			return core.Action{
				Kind: core.ActionAdaptQoS,
				QoS:  model.QoSStandard,
			}
		}
		return core.None()
	case model.EventDeviceSwitchIntent:
		if state.ActiveDevice == ev.NewDevice || state.MigrationStatus == model.MigrationInProgress {
			return core.None()
		}
		return core.Action{
			Kind:         core.ActionBeginMigration,
			TargetDevice: ev.NewDevice,
		}
	default:
		return core.None()
	}
}
