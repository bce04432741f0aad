// Defines the Message struct that models a single unit of work travelling
// from a client through a gateway.

package sim

import "fmt"

// Message is an immutable work item. It is created once by a Client and is
// shared read-only by every Event that refers to it (SEND, ARRIVE, DEPART).
type Message struct {
	id          uint64
	source      string
	destination string
	payload     any
	createdAt   float64 // logical send time in simulated seconds
}

// NewMessage creates a message stamped with the given logical creation time.
func NewMessage(id uint64, source, destination string, payload any, createdAt float64) *Message {
	return &Message{
		id:          id,
		source:      source,
		destination: destination,
		payload:     payload,
		createdAt:   createdAt,
	}
}

// ID returns the message identifier.
func (m *Message) ID() uint64 { return m.id }

// Source returns the identifier of the client that produced the message.
func (m *Message) Source() string { return m.source }

// Destination returns the label of the gateway the message is addressed to.
func (m *Message) Destination() string { return m.destination }

// Payload returns the optional payload, or nil.
func (m *Message) Payload() any { return m.payload }

// CreatedAt returns the logical creation time.
func (m *Message) CreatedAt() float64 { return m.createdAt }

func (m *Message) String() string {
	return fmt.Sprintf("Message: (ID: %d, Source: %s, Destination: %s, Payload: %v, CreatedAt: %.6f)",
		m.id, m.source, m.destination, m.payload, m.createdAt)
}
