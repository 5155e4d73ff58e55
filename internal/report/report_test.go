package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/signalsfoundry/pass-simulator/model"
	"github.com/signalsfoundry/pass-simulator/results"
)

func sampleRuns() []*results.RunRecord {
	return []*results.RunRecord{
		{
			Agent: "Reactive",
			Summary: model.Summary{
				Agent:                "Reactive",
				HandoverLatencySteps: 32,
				TotalPowerUnits:      26.90,
				KleinrockPower:       0.0977,
			},
			Entries: []model.LogEntry{
				{Step: 0, ActiveDevice: model.DeviceLaptop},
				{Step: 1, ActiveDevice: model.DeviceLaptop},
			},
		},
		{
			Agent: "PASS",
			Summary: model.Summary{
				Agent:                "PASS",
				HandoverLatencySteps: 1,
				TotalPowerUnits:      24.40,
				KleinrockPower:       6.25,
				ProactiveDataMB:      100,
			},
			Entries: []model.LogEntry{
				{Step: 0, ActiveDevice: model.DeviceLaptop, TransferredMB: 6.25},
			},
		},
	}
}

func TestSummaryTableListsAgentsAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	SummaryTable(&buf, sampleRuns())

	out := buf.String()
	for _, want := range []string{
		"Reactive", "PASS",
		"Handover Latency (steps)", "Total Power (units)",
		"Kleinrock Power", "Proactive Data (MB)",
		"32", "26.90", "6.2500", "100.0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary table missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryTableKeepsAgentNameCase(t *testing.T) {
	var buf bytes.Buffer
	SummaryTable(&buf, sampleRuns())

	out := buf.String()
	if !strings.Contains(out, "Reactive") {
		t.Fatalf("header does not show agent name as recorded:\n%s", out)
	}
	if strings.Contains(out, "REACTIVE") {
		t.Fatalf("header uppercased the agent name:\n%s", out)
	}
}

func TestStepTableElidesQuietSteps(t *testing.T) {
	rec := &results.RunRecord{
		Agent: "Reactive",
		Entries: []model.LogEntry{
			{Step: 0, ActiveDevice: model.DeviceLaptop},
			{Step: 1, ActiveDevice: model.DeviceLaptop},
			{Step: 2, ActiveDevice: model.DeviceLaptop, TransferredMB: 6.25},
			{Step: 3, ActiveDevice: model.DeviceLaptop},
		},
	}

	var compact bytes.Buffer
	StepTable(&compact, rec, false)
	if strings.Count(compact.String(), "\n") >= 10 {
		t.Fatalf("compact table did not elide quiet steps:\n%s", compact.String())
	}

	var verbose bytes.Buffer
	StepTable(&verbose, rec, true)
	if len(verbose.String()) <= len(compact.String()) {
		t.Fatalf("verbose table not longer than compact table")
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRuns()); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var doc Export
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(doc.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(doc.Runs))
	}
	if doc.Runs[1].Agent != "PASS" || doc.Runs[1].Summary.ProactiveDataMB != 100 {
		t.Fatalf("PASS run = %+v, want proactive 100", doc.Runs[1])
	}
	if len(doc.Runs[0].Entries) != 2 {
		t.Fatalf("Reactive entries = %d, want 2", len(doc.Runs[0].Entries))
	}
	if doc.GeneratedAt.IsZero() {
		t.Fatalf("generated_at missing")
	}
}
