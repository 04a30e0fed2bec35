package supervisor

import (
	"reflect"
	"testing"
)

type fakeInterpreter struct {
	received []Event
	snap     Snapshot
}

func (f *fakeInterpreter) Send(ev Event) (Snapshot, bool) {
	f.received = append(f.received, ev)
	if ev.Type == "NOOP" {
		return f.snap, false
	}
	f.snap = Snapshot{State: "seen:" + ev.Type, Value: ev.Value}
	return f.snap, true
}

func (f *fakeInterpreter) Snapshot() Snapshot { return f.snap }
func (f *fakeInterpreter) Stop() error        { return nil }

func registryWith(stations ...*Station) *Registry {
	reg := NewRegistry()
	for _, st := range stations {
		reg = Apply(reg, Register{Station: st})
	}
	return reg
}

func TestUnknownTargetReturnsSameRegistry(t *testing.T) {
	reg := registryWith(NewStation("name", nil, Snapshot{}))
	next := Apply(reg, Deliver{Event: Event{Type: "CHANGE"}, Targets: []string{"ghost"}})
	if next != reg {
		t.Fatalf("delivery to unknown target must return the registry unchanged by reference")
	}
}

func TestQueuePreservesArrivalOrder(t *testing.T) {
	reg := registryWith(NewStation("city", nil, Snapshot{}))
	events := []Event{
		{Type: "CHANGE", Value: "a"},
		{Type: "CHANGE", Value: "ab"},
		{Type: "RESET"},
	}
	for _, ev := range events {
		reg = Apply(reg, Deliver{Event: ev, Targets: []string{"city"}})
	}
	st, _ := reg.Station("city")
	if !reflect.DeepEqual(st.Queue, events) {
		t.Fatalf("queue = %v, want %v", st.Queue, events)
	}
}

func TestBatchExpansionMatchesSingleTargetCopies(t *testing.T) {
	targets := []string{"state", "province", "city"}
	ev := Event{Type: "CHANGE", Value: ""}

	multi := registryWith(
		NewStation("state", nil, Snapshot{}),
		NewStation("province", nil, Snapshot{}),
		NewStation("city", nil, Snapshot{}),
	)
	multi = Apply(multi, Deliver{Event: ev, Targets: targets})

	singles := registryWith(
		NewStation("state", nil, Snapshot{}),
		NewStation("province", nil, Snapshot{}),
		NewStation("city", nil, Snapshot{}),
	)
	for _, id := range targets {
		singles = Apply(singles, Deliver{Event: ev, Targets: []string{id}})
	}

	for _, id := range targets {
		a, _ := multi.Station(id)
		b, _ := singles.Station(id)
		if !reflect.DeepEqual(a.Queue, b.Queue) {
			t.Fatalf("station %s: multi-target queue %v differs from single-target %v", id, a.Queue, b.Queue)
		}
	}
}

func TestBatchFoldsLeftToRight(t *testing.T) {
	live := &fakeInterpreter{}
	reg := registryWith(NewStation("country", nil, Snapshot{}))
	reg = Apply(reg, Attach{ID: "country", Interpreter: live})

	batch := Batch{Actions: []Action{
		Deliver{Event: Event{Type: "CHANGE", Value: "c"}, Targets: []string{"country"}},
		Deliver{Event: Event{Type: "CHANGE", Value: "ca"}, Targets: []string{"country"}},
		Deliver{Event: Event{Type: "BLUR"}, Targets: []string{"country"}},
	}}
	reg = Apply(reg, batch)

	want := []Event{{Type: "CHANGE", Value: "c"}, {Type: "CHANGE", Value: "ca"}, {Type: "BLUR"}}
	if !reflect.DeepEqual(live.received, want) {
		t.Fatalf("interpreter received %v, want %v", live.received, want)
	}
	st, _ := reg.Station("country")
	if st.Last.State != "seen:BLUR" {
		t.Fatalf("last state = %q after fold, want seen:BLUR", st.Last.State)
	}
}

func TestLiveDeliveryBypassesQueue(t *testing.T) {
	live := &fakeInterpreter{}
	reg := registryWith(NewStation("country", nil, Snapshot{}))
	reg = Apply(reg, Attach{ID: "country", Interpreter: live})
	reg = Apply(reg, Deliver{Event: Event{Type: "CHANGE", Value: "x"}, Targets: []string{"country"}})

	st, _ := reg.Station("country")
	if len(st.Queue) != 0 {
		t.Fatalf("live station must not queue, got %v", st.Queue)
	}
	if len(live.received) != 1 {
		t.Fatalf("interpreter received %d events, want 1", len(live.received))
	}
}

func TestUnchangedDeliveryKeepsStationByReference(t *testing.T) {
	live := &fakeInterpreter{}
	reg := registryWith(NewStation("country", nil, Snapshot{}))
	reg = Apply(reg, Attach{ID: "country", Interpreter: live})

	before, _ := reg.Station("country")
	next := Apply(reg, Deliver{Event: Event{Type: "NOOP"}, Targets: []string{"country"}})
	if next != reg {
		t.Fatalf("unchanged delivery must return the same registry")
	}
	after, _ := next.Station("country")
	if after != before {
		t.Fatalf("unchanged delivery must return the same station")
	}
}

func TestRegisterOverwritesExistingEntry(t *testing.T) {
	first := NewStation("country", nil, Snapshot{Value: "old"})
	second := NewStation("country", nil, Snapshot{Value: "new"})
	other := NewStation("city", nil, Snapshot{})

	reg := registryWith(first, other)
	reg = Apply(reg, Register{Station: second})

	st, _ := reg.Station("country")
	if st != second {
		t.Fatalf("register must overwrite the existing entry")
	}
	kept, _ := reg.Station("city")
	if kept != other {
		t.Fatalf("register must leave other entries untouched")
	}
}

func TestDrainDeliversQueueExactlyOnce(t *testing.T) {
	reg := registryWith(NewStation("billing_city", nil, Snapshot{}))
	reg = Apply(reg, Deliver{Event: Event{Type: "X"}, Targets: []string{"billing_city"}})

	st, _ := reg.Station("billing_city")
	if len(st.Queue) != 1 || st.Queue[0].Type != "X" {
		t.Fatalf("queue = %v, want single X event", st.Queue)
	}

	live := &fakeInterpreter{}
	reg = Apply(reg, Attach{ID: "billing_city", Interpreter: live})
	reg = Apply(reg, Drain{ID: "billing_city"})

	st, _ = reg.Station("billing_city")
	if len(st.Queue) != 0 {
		t.Fatalf("queue must be empty after drain, got %v", st.Queue)
	}
	if len(live.received) != 1 || live.received[0].Type != "X" {
		t.Fatalf("interpreter received %v, want exactly one X", live.received)
	}

	again := Apply(reg, Drain{ID: "billing_city"})
	if again != reg {
		t.Fatalf("second drain must be a no-op")
	}
	if len(live.received) != 1 {
		t.Fatalf("second drain must not redeliver, interpreter saw %d events", len(live.received))
	}
}

func TestDrainReplayMatchesDirectDelivery(t *testing.T) {
	events := []Event{
		{Type: "CHANGE", Value: "on"},
		{Type: "NOOP"},
		{Type: "CHANGE", Value: "ont"},
		{Type: "BLUR"},
	}

	queued := registryWith(NewStation("region", nil, Snapshot{}))
	for _, ev := range events {
		queued = Apply(queued, Deliver{Event: ev, Targets: []string{"region"}})
	}
	replayed := &fakeInterpreter{}
	queued = Apply(queued, Attach{ID: "region", Interpreter: replayed})
	queued = Apply(queued, Drain{ID: "region"})

	direct := &fakeInterpreter{}
	for _, ev := range events {
		direct.Send(ev)
	}

	st, _ := queued.Station("region")
	if st.Last != direct.Snapshot() {
		t.Fatalf("drained state %+v differs from direct replay %+v", st.Last, direct.Snapshot())
	}
}

func TestDetachKeepsLastSnapshot(t *testing.T) {
	live := &fakeInterpreter{}
	reg := registryWith(NewStation("country", nil, Snapshot{}))
	reg = Apply(reg, Attach{ID: "country", Interpreter: live})
	reg = Apply(reg, Deliver{Event: Event{Type: "CHANGE", Value: "Canada"}, Targets: []string{"country"}})
	reg = Apply(reg, Detach{ID: "country"})

	st, _ := reg.Station("country")
	if st.Live != nil {
		t.Fatalf("detach must clear the live interpreter")
	}
	if st.Last.Value != "Canada" {
		t.Fatalf("detach must keep the last snapshot, got %+v", st.Last)
	}

	// Events after detach queue again.
	reg = Apply(reg, Deliver{Event: Event{Type: "RESET"}, Targets: []string{"country"}})
	st, _ = reg.Station("country")
	if len(st.Queue) != 1 {
		t.Fatalf("post-detach events must queue, got %v", st.Queue)
	}
}

func TestAttachToUnknownStationIsNoOp(t *testing.T) {
	reg := NewRegistry()
	next := Apply(reg, Attach{ID: "ghost", Interpreter: &fakeInterpreter{}})
	if next != reg {
		t.Fatalf("attach to unknown station must be a no-op")
	}
}
