package core

import "github.com/signalsfoundry/pass-simulator/model"

// ActionKind enumerates what an agent can do in one step.
type ActionKind int

const (
	// ActionNone leaves the world untouched. It is also the mandated
	// default for event kinds a policy does not model.
	ActionNone ActionKind = iota
	// ActionBeginMigration starts moving the session to TargetDevice,
	// blocking (foreground) or predictive (background).
	ActionBeginMigration
	// ActionAdaptQoS switches the session to the given quality tier and
	// pays a CPU burst for the on-device adaptation work.
	ActionAdaptQoS
	// ActionCompleteMigration performs the fast-path switch onto a
	// device the session was already prepared on.
	ActionCompleteMigration
)

// String returns a stable name for logs and serialized entries.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionBeginMigration:
		return "begin_migration"
	case ActionAdaptQoS:
		return "adapt_qos"
	case ActionCompleteMigration:
		return "complete_migration"
	default:
		return "unknown"
	}
}

// Action is an agent's decision for one step.
type Action struct {
	Kind         ActionKind
	TargetDevice model.DeviceKind
	QoS          model.QoSLevel
	Background   bool
}

// None is the zero action.
func None() Action { return Action{Kind: ActionNone} }

// Agent is the policy capability the runner drives. Decide observes the
// world and the step's scripted event (nil when none is scheduled) and
// returns this step's action. Implementations must be deterministic and
// must return None, not fail, for event kinds they do not model.
type Agent interface {
	Name() string
	Decide(state *WorldState, ev *model.Event) Action
}
