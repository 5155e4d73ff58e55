package core

import (
	"fmt"

	"github.com/signalsfoundry/pass-simulator/model"
)

// PowerConfig holds the calibrated per-step draws (arbitrary power units).
// Transmit draws are per MB moved; CPUBurstDraw is a surcharge on top of
// the active draw. Background transfer is priced lower per MB than a
// blocking foreground sync (low-priority bulk radio), and 5G is priced at
// twice Wi-Fi for equal payload.
type PowerConfig struct {
	IdleDraw float64 `yaml:"idle_draw"`

	LaptopActiveHigh float64 `yaml:"laptop_active_high"`
	LaptopActiveStd  float64 `yaml:"laptop_active_std"`
	PhoneActiveHigh  float64 `yaml:"phone_active_high"`
	PhoneActiveStd   float64 `yaml:"phone_active_std"`

	CPUBurstDraw float64 `yaml:"cpu_burst_draw"`

	TxForegroundWiFiPerMB float64 `yaml:"tx_foreground_wifi_per_mb"`
	TxForeground5GPerMB   float64 `yaml:"tx_foreground_5g_per_mb"`
	TxBackgroundWiFiPerMB float64 `yaml:"tx_background_wifi_per_mb"`
	TxBackground5GPerMB   float64 `yaml:"tx_background_5g_per_mb"`
}

// Config is the immutable run configuration. One value is built up front
// and passed into the script, runner, and aggregator, so the three agent
// runs are provably isolated (no module-level mutable globals).
type Config struct {
	HorizonSteps  int     `yaml:"horizon_steps"`
	SessionSizeMB float64 `yaml:"session_size_mb"`

	WiFiBandwidthMBps  float64 `yaml:"wifi_bandwidth_mbps"`
	FiveGBandwidthMBps float64 `yaml:"5g_bandwidth_mbps"`

	// TransferSharePerStep is the fraction of nominal link bandwidth a
	// one-step sync window actually moves. With the default 0.125, a
	// 25 MBps 5G link moves 3.125 MB of session state per step.
	TransferSharePerStep float64 `yaml:"transfer_share_per_step"`

	// GammaScale scales the throughput proxy in Kleinrock's power.
	GammaScale float64 `yaml:"gamma_scale"`

	InitialLocation model.Location   `yaml:"initial_location"`
	InitialDevice   model.DeviceKind `yaml:"initial_device"`

	Power PowerConfig `yaml:"power"`
}

// DefaultConfig returns the reference scenario constants: 100 steps,
// 100 MB session, Wi-Fi 50 MBps, 5G 25 MBps.
func DefaultConfig() Config {
	return Config{
		HorizonSteps:         100,
		SessionSizeMB:        100.0,
		WiFiBandwidthMBps:    50.0,
		FiveGBandwidthMBps:   25.0,
		TransferSharePerStep: 0.125,
		GammaScale:           1.0,
		InitialLocation:      model.LocationAtOffice,
		InitialDevice:        model.DeviceLaptop,
		Power: PowerConfig{
			IdleDraw:              0.05,
			LaptopActiveHigh:      0.225,
			LaptopActiveStd:       0.215,
			PhoneActiveHigh:       0.175,
			PhoneActiveStd:        0.165,
			CPUBurstDraw:          0.30,
			TxForegroundWiFiPerMB: 0.06,
			TxForeground5GPerMB:   0.12,
			TxBackgroundWiFiPerMB: 0.036,
			TxBackground5GPerMB:   0.072,
		},
	}
}

// Validate rejects configurations that would make the run degenerate or
// introduce silent division by zero downstream.
func (c Config) Validate() error {
	if c.HorizonSteps <= 0 {
		return fmt.Errorf("config: horizon_steps must be positive, got %d", c.HorizonSteps)
	}
	if c.SessionSizeMB <= 0 {
		return fmt.Errorf("config: session_size_mb must be positive, got %v", c.SessionSizeMB)
	}
	if c.WiFiBandwidthMBps <= 0 || c.FiveGBandwidthMBps <= 0 {
		return fmt.Errorf("config: bandwidths must be positive, got wifi=%v 5g=%v",
			c.WiFiBandwidthMBps, c.FiveGBandwidthMBps)
	}
	if c.TransferSharePerStep <= 0 || c.TransferSharePerStep > 1 {
		return fmt.Errorf("config: transfer_share_per_step must be in (0, 1], got %v", c.TransferSharePerStep)
	}
	if c.GammaScale <= 0 {
		return fmt.Errorf("config: gamma_scale must be positive, got %v", c.GammaScale)
	}
	if c.InitialDevice == "" {
		return fmt.Errorf("config: initial_device is required")
	}
	p := c.Power
	for name, v := range map[string]float64{
		"idle_draw":                 p.IdleDraw,
		"laptop_active_high":        p.LaptopActiveHigh,
		"laptop_active_std":         p.LaptopActiveStd,
		"phone_active_high":         p.PhoneActiveHigh,
		"phone_active_std":          p.PhoneActiveStd,
		"cpu_burst_draw":            p.CPUBurstDraw,
		"tx_foreground_wifi_per_mb": p.TxForegroundWiFiPerMB,
		"tx_foreground_5g_per_mb":   p.TxForeground5GPerMB,
		"tx_background_wifi_per_mb": p.TxBackgroundWiFiPerMB,
		"tx_background_5g_per_mb":   p.TxBackground5GPerMB,
	} {
		if v <= 0 {
			return fmt.Errorf("config: power.%s must be positive, got %v", name, v)
		}
	}
	if p.TxForeground5GPerMB < p.TxForegroundWiFiPerMB || p.TxBackground5GPerMB < p.TxBackgroundWiFiPerMB {
		return fmt.Errorf("config: 5G transmit draw must not undercut Wi-Fi for equal payload")
	}
	return nil
}

// NetworkFor builds the Network value for a given type from the
// configured bandwidths.
func (c Config) NetworkFor(t model.NetworkType) (model.Network, error) {
	switch t {
	case model.NetworkWiFi:
		return model.Network{Type: t, BandwidthMBps: c.WiFiBandwidthMBps}, nil
	case model.Network5G:
		return model.Network{Type: t, BandwidthMBps: c.FiveGBandwidthMBps}, nil
	default:
		return model.Network{}, fmt.Errorf("config: unknown network type %q", t)
	}
}
