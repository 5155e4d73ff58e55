package model

// MigrationStatus tracks the session-migration state machine:
// Idle → InProgress → Complete. Complete is terminal for the remainder
// of a run once no further switch is scripted.
type MigrationStatus int

const (
	MigrationIdle MigrationStatus = iota
	MigrationInProgress
	MigrationComplete
)

// String returns a stable name for logs and serialized entries.
func (s MigrationStatus) String() string {
	switch s {
	case MigrationIdle:
		return "idle"
	case MigrationInProgress:
		return "in_progress"
	case MigrationComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ActivityClass is the power-relevant classification of a simulation step.
type ActivityClass int

const (
	// ActivityIdle is the lowest constant draw (device on, session
	// inactive). The reference scenario never produces it, but the
	// power model prices it.
	ActivityIdle ActivityClass = iota
	// ActivityActiveUse is the baseline draw of normal session use.
	ActivityActiveUse
	// ActivityCPUBurst is on-device decision/adaptation work on top of
	// active use.
	ActivityCPUBurst
	// ActivityTransmit is session-state transfer. Foreground transfer
	// replaces active use (the session is unusable while it runs);
	// background transfer is a surcharge on top of it.
	ActivityTransmit
)

// String returns a stable name for logs and serialized entries.
func (c ActivityClass) String() string {
	switch c {
	case ActivityIdle:
		return "idle"
	case ActivityActiveUse:
		return "active_use"
	case ActivityCPUBurst:
		return "cpu_burst"
	case ActivityTransmit:
		return "transmit"
	default:
		return "unknown"
	}
}
