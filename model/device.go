package model

// DeviceKind identifies one of the user's devices. The nomadic scenario
// models a two-device ecosystem, but nothing in the engine assumes only
// two kinds exist.
type DeviceKind string

const (
	DeviceLaptop DeviceKind = "Laptop"
	DevicePhone  DeviceKind = "Phone"
)

// QoSLevel is the session's current quality-of-service tier. Adaptive
// agents may downgrade it when the network context degrades.
type QoSLevel string

const (
	QoSHigh     QoSLevel = "High"
	QoSStandard QoSLevel = "Standard"
)
