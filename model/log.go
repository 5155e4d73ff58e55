package model

// LogEntry is the per-step snapshot appended by the runner. The completed
// sequence (one entry per step) is the only artifact handed to the
// aggregator and to the external collaborators (console logger, table
// printer, chart renderer).
type LogEntry struct {
	Step            int             `json:"step"`
	Location        Location        `json:"location"`
	Network         Network         `json:"network"`
	ActiveDevice    DeviceKind      `json:"active_device"`
	SessionLocation DeviceKind      `json:"session_location"`
	MigrationStatus MigrationStatus `json:"migration_status"`
	QoS             QoSLevel        `json:"qos"`

	// Event is the scripted event delivered this step, if any.
	Event *Event `json:"event,omitempty"`
	// Action is the kind of action the agent took this step.
	Action string `json:"action"`
	// Activity is the power classification the step resolved to.
	Activity ActivityClass `json:"activity"`

	// TransferredMB is the session state moved this step (0 outside
	// migrations).
	TransferredMB float64 `json:"transferred_mb"`
	// PowerDraw is this step's charge; CumulativePowerUnits is the
	// running total after the charge.
	PowerDraw            float64 `json:"power_draw"`
	CumulativePowerUnits float64 `json:"cumulative_power_units"`
	// ProactiveDataMB is the running total of session state moved by
	// background (predictive) transfer.
	ProactiveDataMB float64 `json:"proactive_data_mb"`
}

// Summary is the per-run record produced by the metrics aggregator.
// Field set is fixed by the external interface: latency in steps, total
// power, Kleinrock's power, proactive data volume.
type Summary struct {
	Agent                string  `json:"agent"`
	HandoverLatencySteps int     `json:"handover_latency_steps"`
	TotalPowerUnits      float64 `json:"total_power_units"`
	KleinrockPower       float64 `json:"kleinrock_power"`
	ProactiveDataMB      float64 `json:"proactive_data_mb"`
}
