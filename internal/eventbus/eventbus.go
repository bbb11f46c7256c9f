package eventbus

// Event represents an arbitrary event passed on the bus.
type Event = any

// EventBus is the untyped bus shared by the simulator and its observers.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// New creates the default EventBus.
func New() *TypedBus[Event] { return NewTyped[Event]() }

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(Event) {}

func (Nop) Subscribe() <-chan Event {
	ch := make(chan Event)
	close(ch)
	return ch
}

func (Nop) Unsubscribe(<-chan Event) {}
func (Nop) Close()                   {}
