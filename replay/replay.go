// Package replay plays a completed run log back at a configurable pace,
// one entry per tick, so a run can be watched rather than just summarized.
package replay

import (
	"sync"
	"time"

	"github.com/signalsfoundry/pass-simulator/model"
)

// Player paces a recorded log through registered listeners. The listener
// callbacks run on the player goroutine, in step order.
type Player struct {
	mu   sync.RWMutex
	Tick time.Duration

	current int

	listeners []func(model.LogEntry)
}

// NewPlayer constructs a player emitting one log entry per tick.
func NewPlayer(tick time.Duration) *Player {
	return &Player{Tick: tick, current: -1}
}

// Current returns the index of the last emitted entry, or -1 before
// playback starts.
func (p *Player) Current() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// AddListener registers a callback invoked for every replayed entry.
func (p *Player) AddListener(fn func(model.LogEntry)) {
	p.listeners = append(p.listeners, fn)
}

// Play replays the entries in a separate goroutine. It returns a channel
// that is closed when playback finishes.
func (p *Player) Play(entries []model.LogEntry) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		if len(entries) == 0 {
			return
		}

		ticker := time.NewTicker(p.Tick)
		defer ticker.Stop()

		for i, entry := range entries {
			<-ticker.C

			p.mu.Lock()
			p.current = i
			p.mu.Unlock()

			for _, fn := range p.listeners {
				fn(entry)
			}
		}
	}()
	return done
}
