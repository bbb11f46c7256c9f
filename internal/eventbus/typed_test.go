package eventbus

import (
	"testing"

	"github.com/kilianp07/solarsim/core/events"
)

func TestTypedBusPublishSubscribe(t *testing.T) {
	bus := NewTyped[events.RosterLoaded]()
	ch := bus.Subscribe()
	bus.Publish(events.RosterLoaded{LoadID: "l1", Plants: 2})
	v := <-ch
	if v.LoadID != "l1" || v.Plants != 2 {
		t.Fatalf("unexpected event %#v", v)
	}
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after unsubscribe")
	}
}

func TestTypedBusClose(t *testing.T) {
	bus := NewTyped[int]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatalf("expected closed channel from closed bus")
	}
	bus.Publish(1)
}

func TestTypedBusUnsubscribeAfterClose(t *testing.T) {
	bus := NewTyped[float64]()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestTypedBusDropsWhenFull(t *testing.T) {
	bus := NewTypedWithBuffer[int](1)
	ch := bus.Subscribe()
	bus.Publish(1)
	bus.Publish(2)
	if got := <-ch; got != 1 {
		t.Fatalf("expected first event, got %d", got)
	}
	if bus.Dropped() != 1 {
		t.Fatalf("expected 1 dropped event, got %d", bus.Dropped())
	}
}

func TestUntypedBusCarriesEvents(t *testing.T) {
	var bus EventBus = New()
	ch := bus.Subscribe()
	bus.Publish(events.NetworkSimulated{Kind: events.KindNetworkOutput, Days: 5})
	ev := <-ch
	if e, ok := ev.(events.NetworkSimulated); !ok || e.Days != 5 {
		t.Fatalf("unexpected event %#v", ev)
	}
	bus.Close()
}

func TestNopBus(t *testing.T) {
	var bus EventBus = Nop{}
	bus.Publish("ignored")
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatalf("nop subscription must be closed")
	}
}
