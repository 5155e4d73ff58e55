package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/pass-simulator/model"
)

// ErrZeroBandwidth is returned when a migration would start on a link
// with no usable bandwidth. Bandwidths are positive by construction, but
// a future configuration change must fail loudly here rather than divide
// by zero later.
var ErrZeroBandwidth = errors.New("migration: zero per-step transfer rate")

// migration is the in-flight transfer. Rate and network type are
// snapshotted when the migration begins; a context change mid-transfer
// does not retune an ongoing sync.
type migration struct {
	Target        model.DeviceKind
	RemainingMB   float64
	RateMBPerStep float64
	Network       model.NetworkType
	Background    bool
	StartStep     int
	Steps         int
}

// WorldState is the mutable simulation context for a single run. The
// runner is its sole owner for the run's duration; it is constructed
// fresh per run and discarded once the aggregator has consumed the log,
// so no state leaks between agent runs.
type WorldState struct {
	cfg Config

	TimeStep        int
	Location        model.Location
	Network         model.Network
	ActiveDevice    model.DeviceKind
	SessionLocation model.DeviceKind
	MigrationStatus model.MigrationStatus
	QoS             model.QoSLevel

	SessionSizeMB        float64
	CumulativePowerUnits float64
	ProactiveDataMB      float64

	mig           *migration
	pendingSwitch *model.DeviceKind
}

// NewWorldState constructs the initial state for one run: session idle on
// the initial device, high QoS, on Wi-Fi.
func NewWorldState(cfg Config) (*WorldState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	wifi, err := cfg.NetworkFor(model.NetworkWiFi)
	if err != nil {
		return nil, err
	}
	return &WorldState{
		cfg:             cfg,
		Location:        cfg.InitialLocation,
		Network:         wifi,
		ActiveDevice:    cfg.InitialDevice,
		SessionLocation: cfg.InitialDevice,
		MigrationStatus: model.MigrationIdle,
		QoS:             model.QoSHigh,
		SessionSizeMB:   cfg.SessionSizeMB,
	}, nil
}

// AdvanceTime increments the step counter. Never reset mid-run.
func (w *WorldState) AdvanceTime() { w.TimeStep++ }

// Migrating reports whether a transfer is in flight.
func (w *WorldState) Migrating() bool { return w.mig != nil }

// MigrationTarget returns the in-flight or completed migration target and
// whether one exists.
func (w *WorldState) MigrationTarget() (model.DeviceKind, bool) {
	if w.mig == nil {
		return "", false
	}
	return w.mig.Target, true
}

// MigrationSteps returns how many steps the current or finished migration
// has transferred data for.
func (w *WorldState) MigrationSteps() int {
	if w.mig == nil {
		return 0
	}
	return w.mig.Steps
}

// BeginMigration starts moving the session to target. The per-step rate
// and pricing network are snapshotted from the current network. A second
// begin while one is in flight is rejected; callers treat that as a
// no-op decision, not a fault.
func (w *WorldState) BeginMigration(target model.DeviceKind, background bool) error {
	if w.mig != nil && w.MigrationStatus == model.MigrationInProgress {
		return fmt.Errorf("migration to %q already in progress", w.mig.Target)
	}
	rate := w.Network.BandwidthMBps * w.cfg.TransferSharePerStep
	if rate <= 0 {
		return fmt.Errorf("%w: network %q bandwidth %v MBps share %v",
			ErrZeroBandwidth, w.Network.Type, w.Network.BandwidthMBps, w.cfg.TransferSharePerStep)
	}
	w.mig = &migration{
		Target:        target,
		RemainingMB:   w.SessionSizeMB,
		RateMBPerStep: rate,
		Network:       w.Network.Type,
		Background:    background,
		StartStep:     w.TimeStep,
	}
	w.MigrationStatus = model.MigrationInProgress
	return nil
}

// ProgressMigration transfers one step's worth of session state and
// returns the amount moved. On the step the transfer drains, the session
// location flips to the target, QoS resets to the target's fresh session
// profile, status becomes Complete, and a pending user switch (if any)
// takes effect.
func (w *WorldState) ProgressMigration() (transferredMB float64, background bool) {
	if w.mig == nil || w.MigrationStatus != model.MigrationInProgress {
		return 0, false
	}
	m := w.mig
	transferredMB = m.RateMBPerStep
	if m.RemainingMB < transferredMB {
		transferredMB = m.RemainingMB
	}
	m.RemainingMB -= transferredMB
	m.Steps++
	if m.Background {
		w.ProactiveDataMB += transferredMB
	}
	if m.RemainingMB <= 1e-9 {
		w.MigrationStatus = model.MigrationComplete
		w.SessionLocation = m.Target
		w.QoS = model.QoSHigh
		if w.pendingSwitch != nil && *w.pendingSwitch == m.Target {
			w.ActiveDevice = m.Target
			w.pendingSwitch = nil
		}
	}
	return transferredMB, m.Background
}

// MigrationNetwork returns the network type the in-flight migration was
// priced at.
func (w *WorldState) MigrationNetwork() model.NetworkType {
	if w.mig == nil {
		return w.Network.Type
	}
	return w.mig.Network
}

// AdaptQoS switches the session's quality tier, effective this step.
func (w *WorldState) AdaptQoS(level model.QoSLevel) {
	w.QoS = level
}

// CompleteHandover flips the active device to target when the session
// state already resides there (fast-path switch after a finished
// background migration). Returns false when the precondition does not
// hold; the caller treats that as a no-op decision.
func (w *WorldState) CompleteHandover(target model.DeviceKind) bool {
	if w.MigrationStatus != model.MigrationComplete || w.SessionLocation != target {
		return false
	}
	w.ActiveDevice = target
	w.pendingSwitch = nil
	return true
}

// ApplyEvent mutates the world for a scripted event. Events take effect
// at the end of the step: the agent has already observed the event and
// acted this step, so a migration it started is priced at the
// pre-event network.
func (w *WorldState) ApplyEvent(ev *model.Event) error {
	if ev == nil {
		return nil
	}
	switch ev.Kind {
	case model.EventContextChange:
		net, err := w.cfg.NetworkFor(ev.NewNetwork.Type)
		if err != nil {
			return err
		}
		w.Location = ev.NewLocation
		w.Network = net
	case model.EventDeviceSwitchIntent:
		if w.ActiveDevice == ev.NewDevice {
			return nil
		}
		// The switch completes when the session state is on the target;
		// until then the user is waiting.
		target := ev.NewDevice
		w.pendingSwitch = &target
	default:
		// Unmodeled event kinds are ignored, matching the agents'
		// default-None contract.
	}
	return nil
}

// AccumulatePower adds a step's charge to the monotone accumulator.
func (w *WorldState) AccumulatePower(units float64) {
	w.CumulativePowerUnits += units
}

// Snapshot captures the fields of one log entry. The event pointer is
// copied so later mutation of the script or state cannot alter appended
// entries.
func (w *WorldState) Snapshot(ev *model.Event, action string, activity model.ActivityClass, transferredMB, draw float64) model.LogEntry {
	var evCopy *model.Event
	if ev != nil {
		c := *ev
		evCopy = &c
	}
	return model.LogEntry{
		Step:                 w.TimeStep,
		Location:             w.Location,
		Network:              w.Network,
		ActiveDevice:         w.ActiveDevice,
		SessionLocation:      w.SessionLocation,
		MigrationStatus:      w.MigrationStatus,
		QoS:                  w.QoS,
		Event:                evCopy,
		Action:               action,
		Activity:             activity,
		TransferredMB:        transferredMB,
		PowerDraw:            draw,
		CumulativePowerUnits: w.CumulativePowerUnits,
		ProactiveDataMB:      w.ProactiveDataMB,
	}
}
