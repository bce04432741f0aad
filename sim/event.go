package sim

import "fmt"

// EventKind tags what an Event means to the simulation loop.
// The set is closed: SEND, ARRIVE and DEPART are the only kinds.
type EventKind int

const (
	// EventSend is a client handing a message to the network.
	EventSend EventKind = iota
	// EventArrive is a message reaching its gateway.
	EventArrive
	// EventDepart is a message finishing service at a gateway server.
	EventDepart
)

var eventKindNames = [...]string{
	EventSend:   "SEND",
	EventArrive: "ARRIVE",
	EventDepart: "DEPART",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// Valid reports whether k is one of the three defined kinds.
func (k EventKind) Valid() bool {
	return k >= EventSend && k <= EventDepart
}

// Event is an immutable scheduled occurrence: something of a given kind
// happens to a message at a logical time.
type Event struct {
	id      uint64
	time    float64 // simulated seconds
	kind    EventKind
	message *Message
}

// NewEvent creates an event. Panics on a negative time or an unknown kind,
// both of which indicate a scheduling bug.
func NewEvent(id uint64, time float64, kind EventKind, msg *Message) *Event {
	if time < 0 {
		panic(fmt.Sprintf("NewEvent: negative event time %f", time))
	}
	if !kind.Valid() {
		panic(fmt.Sprintf("NewEvent: unknown event kind %d", int(kind)))
	}
	return &Event{id: id, time: time, kind: kind, message: msg}
}

// ID returns the event identifier.
func (e *Event) ID() uint64 { return e.id }

// Time returns the scheduled logical time.
func (e *Event) Time() float64 { return e.time }

// Kind returns the event kind.
func (e *Event) Kind() EventKind { return e.kind }

// Message returns the message the event concerns.
func (e *Event) Message() *Message { return e.message }

func (e *Event) String() string {
	return fmt.Sprintf("Event: (ID: %d, Time: %.6f, Kind: %s, Message: %d)", e.id, e.time, e.kind, e.message.ID())
}
