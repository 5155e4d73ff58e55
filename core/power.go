package core

import "github.com/signalsfoundry/pass-simulator/model"

// Activity is the power-relevant description of one step, as resolved by
// the runner after the agent's action and any migration progress.
type Activity struct {
	Class   model.ActivityClass
	Device  model.DeviceKind
	QoS     model.QoSLevel
	Network model.NetworkType
	// PayloadMB is the session state moved this step (transmit only).
	PayloadMB float64
	// Background marks a transfer running behind uninterrupted use.
	Background bool
}

// PowerModel computes the incremental draw for one step. Deterministic
// given its inputs: no randomness, so identical runs charge identically.
// It never mutates anything; the caller owns the accumulator.
type PowerModel struct {
	cfg PowerConfig
}

// NewPowerModel builds a model over the calibrated constants.
func NewPowerModel(cfg PowerConfig) *PowerModel {
	return &PowerModel{cfg: cfg}
}

// Charge prices one step.
//
//   - Idle: flat minimum draw.
//   - ActiveUse: per-device draw at the session's QoS tier.
//   - CPUBurst: active use plus the adaptation/decision surcharge.
//   - Transmit foreground: payload-proportional radio draw replacing
//     active use; the session is unusable while a blocking sync runs.
//   - Transmit background: active use plus a payload-proportional
//     surcharge; the user keeps working during a predictive transfer.
func (p *PowerModel) Charge(a Activity) float64 {
	switch a.Class {
	case model.ActivityIdle:
		return p.cfg.IdleDraw
	case model.ActivityActiveUse:
		return p.activeDraw(a.Device, a.QoS)
	case model.ActivityCPUBurst:
		return p.activeDraw(a.Device, a.QoS) + p.cfg.CPUBurstDraw
	case model.ActivityTransmit:
		if a.Background {
			return p.activeDraw(a.Device, a.QoS) + a.PayloadMB*p.txPerMB(a.Network, true)
		}
		return a.PayloadMB * p.txPerMB(a.Network, false)
	default:
		return p.cfg.IdleDraw
	}
}

func (p *PowerModel) activeDraw(device model.DeviceKind, qos model.QoSLevel) float64 {
	std := qos == model.QoSStandard
	switch device {
	case model.DevicePhone:
		if std {
			return p.cfg.PhoneActiveStd
		}
		return p.cfg.PhoneActiveHigh
	default:
		if std {
			return p.cfg.LaptopActiveStd
		}
		return p.cfg.LaptopActiveHigh
	}
}

func (p *PowerModel) txPerMB(net model.NetworkType, background bool) float64 {
	switch net {
	case model.Network5G:
		if background {
			return p.cfg.TxBackground5GPerMB
		}
		return p.cfg.TxForeground5GPerMB
	default:
		if background {
			return p.cfg.TxBackgroundWiFiPerMB
		}
		return p.cfg.TxForegroundWiFiPerMB
	}
}
