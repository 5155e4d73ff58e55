package core

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/pass-simulator/model"
)

// ScenarioFile is a small summary of what was loaded. Mainly useful for
// logging from main().
type ScenarioFile struct {
	Config Config
	Script *ScenarioScript
	Events int
}

// internal YAML shapes, kept unexported so the file format can evolve
// independently of the engine types.
type scenarioYAML struct {
	HorizonSteps       int          `yaml:"horizon_steps"`
	SessionSizeMB      float64      `yaml:"session_size_mb"`
	WiFiBandwidthMBps  float64      `yaml:"wifi_bandwidth_mbps"`
	FiveGBandwidthMBps float64      `yaml:"5g_bandwidth_mbps"`
	TransferShare      float64      `yaml:"transfer_share_per_step"`
	GammaScale         float64      `yaml:"gamma_scale"`
	InitialLocation    string       `yaml:"initial_location"`
	InitialDevice      string       `yaml:"initial_device"`
	Power              *PowerConfig `yaml:"power"`

	Events []eventYAML `yaml:"events"`
}

type eventYAML struct {
	Step     int    `yaml:"step"`
	Kind     string `yaml:"kind"`     // "context_change" | "device_switch"
	Location string `yaml:"location"` // context_change only
	Network  string `yaml:"network"`  // context_change only
	Device   string `yaml:"device"`   // device_switch only
}

// LoadScenario reads a YAML scenario from r and returns the merged
// configuration plus the compiled script. Unset scalar fields keep the
// reference defaults, so a file listing only events is valid. Structural
// and enum errors fail loudly; there is no partial load.
func LoadScenario(r io.Reader) (*ScenarioFile, error) {
	var payload scenarioYAML
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	cfg := DefaultConfig()
	if payload.HorizonSteps > 0 {
		cfg.HorizonSteps = payload.HorizonSteps
	}
	if payload.SessionSizeMB > 0 {
		cfg.SessionSizeMB = payload.SessionSizeMB
	}
	if payload.WiFiBandwidthMBps > 0 {
		cfg.WiFiBandwidthMBps = payload.WiFiBandwidthMBps
	}
	if payload.FiveGBandwidthMBps > 0 {
		cfg.FiveGBandwidthMBps = payload.FiveGBandwidthMBps
	}
	if payload.TransferShare > 0 {
		cfg.TransferSharePerStep = payload.TransferShare
	}
	if payload.GammaScale > 0 {
		cfg.GammaScale = payload.GammaScale
	}
	if payload.InitialLocation != "" {
		cfg.InitialLocation = model.Location(payload.InitialLocation)
	}
	if payload.InitialDevice != "" {
		dev, err := deviceFromString(payload.InitialDevice)
		if err != nil {
			return nil, fmt.Errorf("LoadScenario: initial_device: %w", err)
		}
		cfg.InitialDevice = dev
	}
	if payload.Power != nil {
		cfg.Power = *payload.Power
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LoadScenario: %w", err)
	}

	events := make([]model.Event, 0, len(payload.Events))
	for i, ey := range payload.Events {
		ev, err := eventFromYAML(cfg, ey)
		if err != nil {
			return nil, fmt.Errorf("LoadScenario: events[%d]: %w", i, err)
		}
		events = append(events, ev)
	}

	script, err := NewScenarioScript(cfg, events)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: %w", err)
	}

	return &ScenarioFile{Config: cfg, Script: script, Events: script.Len()}, nil
}

func eventFromYAML(cfg Config, ey eventYAML) (model.Event, error) {
	switch strings.ToLower(strings.TrimSpace(ey.Kind)) {
	case "context_change":
		net, err := networkFromString(ey.Network)
		if err != nil {
			return model.Event{}, err
		}
		full, err := cfg.NetworkFor(net)
		if err != nil {
			return model.Event{}, err
		}
		if ey.Location == "" {
			return model.Event{}, fmt.Errorf("context_change at step %d missing location", ey.Step)
		}
		return model.Event{
			Step:        ey.Step,
			Kind:        model.EventContextChange,
			NewLocation: model.Location(ey.Location),
			NewNetwork:  full,
		}, nil
	case "device_switch":
		dev, err := deviceFromString(ey.Device)
		if err != nil {
			return model.Event{}, err
		}
		return model.Event{
			Step:      ey.Step,
			Kind:      model.EventDeviceSwitchIntent,
			NewDevice: dev,
		}, nil
	default:
		return model.Event{}, fmt.Errorf("unknown event kind %q", ey.Kind)
	}
}

// networkFromString maps the YAML "network" string to a NetworkType.
// Tolerant of common spellings; unknown values are an error rather than
// a silent default, since bandwidth depends on the answer.
func networkFromString(s string) (model.NetworkType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wifi", "wi-fi", "wlan":
		return model.NetworkWiFi, nil
	case "5g", "cellular", "nr":
		return model.Network5G, nil
	default:
		return "", fmt.Errorf("unknown network %q", s)
	}
}

func deviceFromString(s string) (model.DeviceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "laptop":
		return model.DeviceLaptop, nil
	case "phone":
		return model.DevicePhone, nil
	default:
		return "", fmt.Errorf("unknown device %q", s)
	}
}
