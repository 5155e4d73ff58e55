package model

// Location is the user's coarse physical context. It only ever changes
// through a scripted ContextChange event.
type Location string

const (
	LocationAtOffice Location = "AtOffice"
	LocationWalking  Location = "Walking"
	LocationAtHome   Location = "AtHome"
)

// NetworkType classifies the access network the session is currently on.
type NetworkType string

const (
	NetworkWiFi NetworkType = "Wi-Fi"
	Network5G   NetworkType = "5G"
)

// Network pairs an access-network type with its nominal bandwidth.
// The two fields change together, atomically, at a context change;
// representing them as one value makes a half-applied change impossible.
type Network struct {
	Type          NetworkType `json:"type"`
	BandwidthMBps float64     `json:"bandwidth_mbps"`
}
