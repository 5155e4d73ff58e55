package core

import (
	"fmt"
	"sort"

	"github.com/signalsfoundry/pass-simulator/model"
)

// ScenarioScript is an ordered, immutable mapping from time step to a
// scripted exogenous event. The same script instance is shared across
// agent runs; EventAt hands out copies so one run can never mutate what
// another run observes.
type ScenarioScript struct {
	events map[int]model.Event
	steps  []int
}

// NewScenarioScript builds a script from explicit events, validating
// against the given horizon. Duplicate steps are rejected: the reference
// model fires at most one event per step.
func NewScenarioScript(cfg Config, events []model.Event) (*ScenarioScript, error) {
	byStep := make(map[int]model.Event, len(events))
	steps := make([]int, 0, len(events))
	for _, ev := range events {
		if ev.Step < 0 || ev.Step >= cfg.HorizonSteps {
			return nil, fmt.Errorf("scenario: event step %d outside horizon [0, %d)", ev.Step, cfg.HorizonSteps)
		}
		if _, dup := byStep[ev.Step]; dup {
			return nil, fmt.Errorf("scenario: duplicate event at step %d", ev.Step)
		}
		switch ev.Kind {
		case model.EventContextChange:
			if _, err := cfg.NetworkFor(ev.NewNetwork.Type); err != nil {
				return nil, fmt.Errorf("scenario: event at step %d: %w", ev.Step, err)
			}
		case model.EventDeviceSwitchIntent:
			if ev.NewDevice == "" {
				return nil, fmt.Errorf("scenario: device-switch event at step %d missing device", ev.Step)
			}
		default:
			return nil, fmt.Errorf("scenario: event at step %d has unknown kind", ev.Step)
		}
		byStep[ev.Step] = ev
		steps = append(steps, ev.Step)
	}
	sort.Ints(steps)
	return &ScenarioScript{events: byStep, steps: steps}, nil
}

// ReferenceScript returns the fixed reference scenario: the user starts
// walking at t=30 (Wi-Fi → 5G) and switches from laptop to phone at t=60.
func ReferenceScript(cfg Config) (*ScenarioScript, error) {
	fiveG, err := cfg.NetworkFor(model.Network5G)
	if err != nil {
		return nil, err
	}
	return NewScenarioScript(cfg, []model.Event{
		{
			Step:        30,
			Kind:        model.EventContextChange,
			NewLocation: model.LocationWalking,
			NewNetwork:  fiveG,
		},
		{
			Step:      60,
			Kind:      model.EventDeviceSwitchIntent,
			NewDevice: model.DevicePhone,
		},
	})
}

// EventAt returns a copy of the event scripted for step t, or nil when
// nothing is scheduled. Pure lookup, no side effects.
func (s *ScenarioScript) EventAt(t int) *model.Event {
	ev, ok := s.events[t]
	if !ok {
		return nil
	}
	return &ev
}

// Steps returns the sorted steps that carry events.
func (s *ScenarioScript) Steps() []int {
	out := make([]int, len(s.steps))
	copy(out, s.steps)
	return out
}

// Len returns the number of scripted events.
func (s *ScenarioScript) Len() int { return len(s.events) }
