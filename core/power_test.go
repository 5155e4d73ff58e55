package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/pass-simulator/model"
)

func TestChargeByActivityClass(t *testing.T) {
	cfg := DefaultConfig().Power
	pm := NewPowerModel(cfg)

	cases := []struct {
		name string
		in   Activity
		want float64
	}{
		{
			name: "idle",
			in:   Activity{Class: model.ActivityIdle},
			want: cfg.IdleDraw,
		},
		{
			name: "laptop active high",
			in:   Activity{Class: model.ActivityActiveUse, Device: model.DeviceLaptop, QoS: model.QoSHigh},
			want: cfg.LaptopActiveHigh,
		},
		{
			name: "laptop active standard",
			in:   Activity{Class: model.ActivityActiveUse, Device: model.DeviceLaptop, QoS: model.QoSStandard},
			want: cfg.LaptopActiveStd,
		},
		{
			name: "phone active high",
			in:   Activity{Class: model.ActivityActiveUse, Device: model.DevicePhone, QoS: model.QoSHigh},
			want: cfg.PhoneActiveHigh,
		},
		{
			name: "cpu burst is a surcharge on active use",
			in:   Activity{Class: model.ActivityCPUBurst, Device: model.DevicePhone, QoS: model.QoSHigh},
			want: cfg.PhoneActiveHigh + cfg.CPUBurstDraw,
		},
		{
			name: "foreground transmit replaces active draw",
			in: Activity{
				Class: model.ActivityTransmit, Device: model.DeviceLaptop, QoS: model.QoSHigh,
				Network: model.Network5G, PayloadMB: 3.125,
			},
			want: 3.125 * cfg.TxForeground5GPerMB,
		},
		{
			name: "background transmit adds to active draw",
			in: Activity{
				Class: model.ActivityTransmit, Device: model.DeviceLaptop, QoS: model.QoSHigh,
				Network: model.NetworkWiFi, PayloadMB: 6.25, Background: true,
			},
			want: cfg.LaptopActiveHigh + 6.25*cfg.TxBackgroundWiFiPerMB,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pm.Charge(tc.in)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("Charge(%+v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFiveGCostsMoreThanWiFiPerMB(t *testing.T) {
	pm := NewPowerModel(DefaultConfig().Power)

	payload := 10.0
	wifi := pm.Charge(Activity{Class: model.ActivityTransmit, Network: model.NetworkWiFi, PayloadMB: payload})
	fiveG := pm.Charge(Activity{Class: model.ActivityTransmit, Network: model.Network5G, PayloadMB: payload})
	if fiveG <= wifi {
		t.Fatalf("5G foreground charge %v not above Wi-Fi %v for equal payload", fiveG, wifi)
	}
}

func TestChargeIsDeterministic(t *testing.T) {
	pm := NewPowerModel(DefaultConfig().Power)
	in := Activity{
		Class: model.ActivityTransmit, Device: model.DeviceLaptop, QoS: model.QoSStandard,
		Network: model.Network5G, PayloadMB: 3.125, Background: true,
	}
	first := pm.Charge(in)
	for range 10 {
		if got := pm.Charge(in); got != first {
			t.Fatalf("Charge varied across calls: %v then %v", first, got)
		}
	}
}
