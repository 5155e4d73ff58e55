package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/pass-simulator/model"
)

// SimCollector bundles Prometheus metrics for simulation runs and exposes
// them over an HTTP /metrics handler. It implements core.MetricsRecorder.
type SimCollector struct {
	gatherer prometheus.Gatherer

	StepsTotal         *prometheus.CounterVec
	PowerUnitsTotal    *prometheus.CounterVec
	TransferredMBTotal *prometheus.CounterVec

	HandoverLatencySteps *prometheus.GaugeVec
	TotalPowerUnits      *prometheus.GaugeVec
	KleinrockPower       *prometheus.GaugeVec
	ProactiveDataMB      *prometheus.GaugeVec
}

// NewSimCollector registers simulation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	steps, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_steps_total",
		Help: "Total simulated steps executed, labeled by agent.",
	}, []string{"agent"}), "sim_steps_total")
	if err != nil {
		return nil, err
	}

	power, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_power_units_total",
		Help: "Total power units consumed across steps, labeled by agent.",
	}, []string{"agent"}), "sim_power_units_total")
	if err != nil {
		return nil, err
	}

	transferred, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_transferred_mb_total",
		Help: "Total session megabytes moved during migrations, labeled by agent.",
	}, []string{"agent"}), "sim_transferred_mb_total")
	if err != nil {
		return nil, err
	}

	latency, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_handover_latency_steps",
		Help: "Steps from device-switch intent to a usable session on the target device.",
	}, []string{"agent"}), "sim_handover_latency_steps")
	if err != nil {
		return nil, err
	}

	totalPower, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_total_power_units",
		Help: "Final cumulative power units for a completed run.",
	}, []string{"agent"}), "sim_total_power_units")
	if err != nil {
		return nil, err
	}

	kleinrock, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_kleinrock_power",
		Help: "Kleinrock power ratio (throughput over latency) for a completed run.",
	}, []string{"agent"}), "sim_kleinrock_power")
	if err != nil {
		return nil, err
	}

	proactive, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_proactive_data_mb",
		Help: "Megabytes moved speculatively before the user acted.",
	}, []string{"agent"}), "sim_proactive_data_mb")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:             gatherer,
		StepsTotal:           steps,
		PowerUnitsTotal:      power,
		TransferredMBTotal:   transferred,
		HandoverLatencySteps: latency,
		TotalPowerUnits:      totalPower,
		KleinrockPower:       kleinrock,
		ProactiveDataMB:      proactive,
	}, nil
}

// RecordStep satisfies core.MetricsRecorder so the runner can drive the
// counters directly from its step loop.
func (c *SimCollector) RecordStep(agent string, entry model.LogEntry) {
	if c == nil {
		return
	}
	if c.StepsTotal != nil {
		c.StepsTotal.WithLabelValues(agent).Inc()
	}
	if c.PowerUnitsTotal != nil {
		c.PowerUnitsTotal.WithLabelValues(agent).Add(entry.PowerDraw)
	}
	if c.TransferredMBTotal != nil && entry.TransferredMB > 0 {
		c.TransferredMBTotal.WithLabelValues(agent).Add(entry.TransferredMB)
	}
}

// RecordSummary publishes a completed run's aggregate metrics.
func (c *SimCollector) RecordSummary(s model.Summary) {
	if c == nil {
		return
	}
	if c.HandoverLatencySteps != nil {
		c.HandoverLatencySteps.WithLabelValues(s.Agent).Set(float64(s.HandoverLatencySteps))
	}
	if c.TotalPowerUnits != nil {
		c.TotalPowerUnits.WithLabelValues(s.Agent).Set(s.TotalPowerUnits)
	}
	if c.KleinrockPower != nil {
		c.KleinrockPower.WithLabelValues(s.Agent).Set(s.KleinrockPower)
	}
	if c.ProactiveDataMB != nil {
		c.ProactiveDataMB.WithLabelValues(s.Agent).Set(s.ProactiveDataMB)
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
