// Package results keeps completed simulation runs in memory so reports,
// metrics exporters, and replay can read them after the runner finishes.
package results

import (
	"fmt"
	"sync"

	"github.com/signalsfoundry/pass-simulator/model"
)

// EventType indicates what kind of change happened in the store.
type EventType int

const (
	EventRunCompleted EventType = iota
)

// Event is emitted to subscribers when something interesting happens.
type Event struct {
	Type    EventType
	Summary model.Summary
}

// RunRecord holds one agent's completed run: its per-step log plus the
// aggregated summary.
type RunRecord struct {
	Agent   string
	Summary model.Summary
	Entries []model.LogEntry
}

// Store is an in-memory, thread-safe store for completed runs.
type Store struct {
	mu sync.RWMutex

	runs  map[string]*RunRecord
	order []string

	subs []func(Event)
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		runs: make(map[string]*RunRecord),
	}
}

// AddRun records a completed run and notifies subscribers. It returns an
// error if a run for the agent already exists.
func (s *Store) AddRun(rec *RunRecord) error {
	s.mu.Lock()
	if _, exists := s.runs[rec.Agent]; exists {
		s.mu.Unlock()
		return fmt.Errorf("run for agent %q already recorded", rec.Agent)
	}
	s.runs[rec.Agent] = rec
	s.order = append(s.order, rec.Agent)
	event := Event{
		Type:    EventRunCompleted,
		Summary: rec.Summary, // copy for safety
	}
	subs := append([]func(Event){}, s.subs...)
	s.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// GetRun returns the run for the given agent, or nil if not found.
func (s *Store) GetRun(agent string) *RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[agent]
}

// ListRuns returns all runs in the order they were recorded.
func (s *Store) ListRuns() []*RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*RunRecord, 0, len(s.order))
	for _, agent := range s.order {
		res = append(res, s.runs[agent])
	}
	return res
}

// Subscribe registers a callback for store events. It returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < 0 || idx >= len(s.subs) {
			return
		}
		s.subs = append(s.subs[:idx], s.subs[idx+1:]...)
		idx = -1
	}
}
