package sim

import (
	"fmt"
	"math/rand"
)

// Client is an independent Poisson arrival source. Every message it emits
// carries its id as the source field.
type Client struct {
	id     string
	lambda float64 // arrivals per simulated second

	rng *rand.Rand
	ids *IDAllocator
}

// NewClient creates a client with arrival rate lambda. Panics on lambda <= 0.
func NewClient(id string, lambda float64, rng *rand.Rand, ids *IDAllocator) *Client {
	if !(lambda > 0) {
		panic(fmt.Sprintf("NewClient: arrival rate must be > 0, got %f", lambda))
	}
	return &Client{id: id, lambda: lambda, rng: rng, ids: ids}
}

// ID returns the client identifier.
func (c *Client) ID() string { return c.id }

// Lambda returns the arrival rate.
func (c *Client) Lambda() float64 { return c.lambda }

// Generate draws an exponential inter-arrival interval and returns the SEND
// event of a new message stamped at now+interval, together with the interval.
func (c *Client) Generate(destination string, now float64) (*Event, float64) {
	interval := sampleExp(c.rng, c.lambda)
	at := now + interval
	msg := NewMessage(c.ids.NextMessageID(), c.id, destination, nil, at)
	return NewEvent(c.ids.NextEventID(), at, EventSend, msg), interval
}

// Start produces the first SEND event of the client, measured from time 0.
func (c *Client) Start(destination string) *Event {
	ev, _ := c.Generate(destination, 0)
	return ev
}
