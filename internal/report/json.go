package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/signalsfoundry/pass-simulator/model"
	"github.com/signalsfoundry/pass-simulator/results"
)

// Export is the JSON document written by WriteJSON.
type Export struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Runs        []ExportRun `json:"runs"`
}

// ExportRun carries one agent's summary and full step log.
type ExportRun struct {
	Agent   string           `json:"agent"`
	Summary model.Summary    `json:"summary"`
	Entries []model.LogEntry `json:"entries"`
}

// WriteJSON serializes all recorded runs as an indented JSON document.
func WriteJSON(w io.Writer, runs []*results.RunRecord) error {
	doc := Export{
		GeneratedAt: time.Now().UTC(),
		Runs:        make([]ExportRun, 0, len(runs)),
	}
	for _, r := range runs {
		doc.Runs = append(doc.Runs, ExportRun{
			Agent:   r.Agent,
			Summary: r.Summary,
			Entries: r.Entries,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("report: encode runs: %w", err)
	}
	return nil
}
