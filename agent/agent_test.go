package agent

import (
	"testing"

	"github.com/signalsfoundry/pass-simulator/core"
	"github.com/signalsfoundry/pass-simulator/model"
)

func newWorld(t *testing.T) *core.WorldState {
	t.Helper()
	w, err := core.NewWorldState(core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorldState error: %v", err)
	}
	return w
}

func walkingEvent(t *testing.T) *model.Event {
	t.Helper()
	fiveG, err := core.DefaultConfig().NetworkFor(model.Network5G)
	if err != nil {
		t.Fatalf("NetworkFor error: %v", err)
	}
	return &model.Event{
		Step:        30,
		Kind:        model.EventContextChange,
		NewLocation: model.LocationWalking,
		NewNetwork:  fiveG,
	}
}

func switchEvent() *model.Event {
	return &model.Event{
		Step:      60,
		Kind:      model.EventDeviceSwitchIntent,
		NewDevice: model.DevicePhone,
	}
}

func TestReactiveIgnoresContextChange(t *testing.T) {
	w := newWorld(t)
	if got := NewReactive().Decide(w, walkingEvent(t)); got.Kind != core.ActionNone {
		t.Fatalf("Decide = %+v, want None for a context change", got)
	}
	if got := NewReactive().Decide(w, nil); got.Kind != core.ActionNone {
		t.Fatalf("Decide = %+v, want None for a quiet step", got)
	}
}

func TestReactiveMigratesOnIntent(t *testing.T) {
	w := newWorld(t)
	got := NewReactive().Decide(w, switchEvent())
	if got.Kind != core.ActionBeginMigration || got.TargetDevice != model.DevicePhone {
		t.Fatalf("Decide = %+v, want foreground migration to phone", got)
	}
	if got.Background {
		t.Fatalf("Decide = %+v, want a foreground (blocking) migration", got)
	}
}

func TestReactiveIgnoresSwitchToActiveDevice(t *testing.T) {
	w := newWorld(t)
	ev := &model.Event{Kind: model.EventDeviceSwitchIntent, NewDevice: model.DeviceLaptop}
	if got := NewReactive().Decide(w, ev); got.Kind != core.ActionNone {
		t.Fatalf("Decide = %+v, want None when already on the target", got)
	}
}

func TestMyopicDowngradesOnNarrowerLink(t *testing.T) {
	w := newWorld(t)
	got := NewMyopic().Decide(w, walkingEvent(t))
	if got.Kind != core.ActionAdaptQoS || got.QoS != model.QoSStandard {
		t.Fatalf("Decide = %+v, want QoS downgrade to Standard", got)
	}

	// Already downgraded: a repeat event is a no-op.
	w.AdaptQoS(model.QoSStandard)
	if got := NewMyopic().Decide(w, walkingEvent(t)); got.Kind != core.ActionNone {
		t.Fatalf("Decide = %+v, want None when already Standard", got)
	}
}

func TestMyopicIgnoresWiderLink(t *testing.T) {
	w := newWorld(t)
	wifi, err := core.DefaultConfig().NetworkFor(model.NetworkWiFi)
	if err != nil {
		t.Fatalf("NetworkFor error: %v", err)
	}
	home := &model.Event{
		Kind:        model.EventContextChange,
		NewLocation: model.LocationAtHome,
		NewNetwork:  wifi,
	}
	if got := NewMyopic().Decide(w, home); got.Kind != core.ActionNone {
		t.Fatalf("Decide = %+v, want None when bandwidth does not drop", got)
	}
}

func TestMyopicMigratesOnIntentLikeBaseline(t *testing.T) {
	w := newWorld(t)
	got := NewMyopic().Decide(w, switchEvent())
	if got.Kind != core.ActionBeginMigration || got.Background {
		t.Fatalf("Decide = %+v, want a blocking foreground migration", got)
	}
}

func TestPASSStartsBackgroundMigrationOnPrediction(t *testing.T) {
	w := newWorld(t)
	got := NewPASS(nil).Decide(w, walkingEvent(t))
	if got.Kind != core.ActionBeginMigration || !got.Background {
		t.Fatalf("Decide = %+v, want a background migration", got)
	}
	if got.TargetDevice != model.DevicePhone {
		t.Fatalf("Decide = %+v, want target phone", got)
	}
}

func TestPASSDoesNotRestartFinishedMigration(t *testing.T) {
	w := newWorld(t)
	if err := w.BeginMigration(model.DevicePhone, true); err != nil {
		t.Fatalf("BeginMigration error: %v", err)
	}
	for w.MigrationStatus == model.MigrationInProgress {
		w.ProgressMigration()
	}
	if got := NewPASS(nil).Decide(w, walkingEvent(t)); got.Kind != core.ActionNone {
		t.Fatalf("Decide = %+v, want None when the session already moved", got)
	}
}

func TestPASSFastPathOnIntentAfterCompletion(t *testing.T) {
	w := newWorld(t)
	if err := w.BeginMigration(model.DevicePhone, true); err != nil {
		t.Fatalf("BeginMigration error: %v", err)
	}
	for w.MigrationStatus == model.MigrationInProgress {
		w.ProgressMigration()
	}

	got := NewPASS(nil).Decide(w, switchEvent())
	if got.Kind != core.ActionCompleteMigration || got.TargetDevice != model.DevicePhone {
		t.Fatalf("Decide = %+v, want fast-path completion", got)
	}
}

func TestPASSWaitsWhileTransferDrains(t *testing.T) {
	w := newWorld(t)
	if err := w.BeginMigration(model.DevicePhone, true); err != nil {
		t.Fatalf("BeginMigration error: %v", err)
	}
	w.ProgressMigration()

	if got := NewPASS(nil).Decide(w, switchEvent()); got.Kind != core.ActionNone {
		t.Fatalf("Decide = %+v, want None while the transfer drains", got)
	}
}

func TestPASSFallsBackToForegroundWithoutPrediction(t *testing.T) {
	w := newWorld(t)
	got := NewPASS(nil).Decide(w, switchEvent())
	if got.Kind != core.ActionBeginMigration || got.Background {
		t.Fatalf("Decide = %+v, want slow-path foreground migration", got)
	}
}

func TestAgentsIgnoreUnknownEvents(t *testing.T) {
	w := newWorld(t)
	unknown := &model.Event{Kind: model.EventUnknown}
	for _, a := range []core.Agent{NewReactive(), NewMyopic(), NewPASS(nil)} {
		if got := a.Decide(w, unknown); got.Kind != core.ActionNone {
			t.Fatalf("%s.Decide = %+v, want None for an unmodeled event", a.Name(), got)
		}
	}
}

func TestWalkingHandoffPredictorTriggers(t *testing.T) {
	w := newWorld(t)
	p := WalkingHandoffPredictor{}

	if target, ok := p.Predict(w, walkingEvent(t)); !ok || target != model.DevicePhone {
		t.Fatalf("Predict = %q/%v, want phone/true", target, ok)
	}
	if _, ok := p.Predict(w, nil); ok {
		t.Fatalf("Predict fired on a quiet step")
	}
	if _, ok := p.Predict(w, switchEvent()); ok {
		t.Fatalf("Predict fired on a device switch event")
	}

	// No prediction once the user is already on the phone.
	if err := w.BeginMigration(model.DevicePhone, true); err != nil {
		t.Fatalf("BeginMigration error: %v", err)
	}
	for w.MigrationStatus == model.MigrationInProgress {
		w.ProgressMigration()
	}
	w.CompleteHandover(model.DevicePhone)
	if _, ok := p.Predict(w, walkingEvent(t)); ok {
		t.Fatalf("Predict fired with the phone already active")
	}
}
