// Package report renders completed runs for humans (comparison tables on
// the terminal) and for tooling (JSON exports).
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/signalsfoundry/pass-simulator/results"
)

// SummaryTable renders the final comparison: one column per agent, one
// row per metric, in the order the runs were recorded.
func SummaryTable(w io.Writer, runs []*results.RunRecord) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	// Agent names are data, not decoration; keep their recorded case
	// instead of the style's default header uppercasing.
	tw.Style().Format.Header = text.FormatDefault

	header := table.Row{"Metric"}
	for _, r := range runs {
		header = append(header, r.Agent)
	}
	tw.AppendHeader(header)

	latency := table.Row{"Handover Latency (steps)"}
	power := table.Row{"Total Power (units)"}
	kleinrock := table.Row{"Kleinrock Power"}
	proactive := table.Row{"Proactive Data (MB)"}
	for _, r := range runs {
		latency = append(latency, fmt.Sprintf("%d", r.Summary.HandoverLatencySteps))
		power = append(power, fmt.Sprintf("%.2f", r.Summary.TotalPowerUnits))
		kleinrock = append(kleinrock, fmt.Sprintf("%.4f", r.Summary.KleinrockPower))
		proactive = append(proactive, fmt.Sprintf("%.1f", r.Summary.ProactiveDataMB))
	}
	tw.AppendRow(latency)
	tw.AppendRow(power)
	tw.AppendRow(kleinrock)
	tw.AppendRow(proactive)

	cfgs := []table.ColumnConfig{{Number: 1, Align: text.AlignLeft}}
	for i := range runs {
		cfgs = append(cfgs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(cfgs)

	tw.Render()
}

// StepTable renders one agent's per-step log. Rows without an event or a
// transfer are elided unless verbose is set; the first and last steps are
// always shown so the horizon stays visible.
func StepTable(w io.Writer, rec *results.RunRecord, verbose bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(rec.Agent)

	tw.AppendHeader(table.Row{
		"Step", "Location", "Network", "Device", "Session", "Migration", "QoS", "Activity", "MB", "Power",
	})

	last := len(rec.Entries) - 1
	for i, e := range rec.Entries {
		interesting := e.Event != nil || e.TransferredMB > 0 || i == 0 || i == last
		if !verbose && !interesting {
			continue
		}
		tw.AppendRow(table.Row{
			e.Step,
			string(e.Location),
			string(e.Network.Type),
			string(e.ActiveDevice),
			string(e.SessionLocation),
			e.MigrationStatus.String(),
			string(e.QoS),
			e.Activity.String(),
			fmt.Sprintf("%.2f", e.TransferredMB),
			fmt.Sprintf("%.3f", e.PowerDraw),
		})
	}

	tw.Render()
}
