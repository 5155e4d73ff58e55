package model

// EventKind indicates what kind of exogenous scenario event fired.
type EventKind int

const (
	EventUnknown EventKind = iota
	// EventContextChange moves the user to a new location and access
	// network (both applied atomically).
	EventContextChange
	// EventDeviceSwitchIntent is the user deciding to continue the
	// session on another device.
	EventDeviceSwitchIntent
)

// String returns a stable name for logs and serialized entries.
func (k EventKind) String() string {
	switch k {
	case EventContextChange:
		return "context_change"
	case EventDeviceSwitchIntent:
		return "device_switch_intent"
	default:
		return "unknown"
	}
}

// Event is a single scripted scenario event. Fields beyond Kind are
// populated depending on the kind: NewLocation/NewNetwork for a context
// change, NewDevice for a device-switch intent.
type Event struct {
	Step        int        `json:"step"`
	Kind        EventKind  `json:"kind"`
	NewLocation Location   `json:"new_location,omitempty"`
	NewNetwork  Network    `json:"new_network,omitempty"`
	NewDevice   DeviceKind `json:"new_device,omitempty"`
}
