package sim

import (
	"fmt"
	"math/rand"
)

// Server is a single-channel service unit with an exponential service time.
// It only knows whether it is busy; deciding what to serve next belongs to the
// Gateway that owns it.
type Server struct {
	index   int
	rate    float64 // μ, services per simulated second
	busy    bool
	current *Message // message in service, nil when idle

	rng *rand.Rand
	ids *IDAllocator
}

// NewServer creates an idle server with service rate mu. Panics on mu <= 0.
func NewServer(index int, mu float64, rng *rand.Rand, ids *IDAllocator) *Server {
	if !(mu > 0) {
		panic(fmt.Sprintf("NewServer: service rate must be > 0, got %f", mu))
	}
	return &Server{index: index, rate: mu, rng: rng, ids: ids}
}

// Index returns the position of the server within its gateway.
func (s *Server) Index() int { return s.index }

// Rate returns the service rate μ.
func (s *Server) Rate() float64 { return s.rate }

// IsBusy reports whether the server is serving a message.
func (s *Server) IsBusy() bool { return s.busy }

// Current returns the message in service, or nil when idle.
func (s *Server) Current() *Message { return s.current }

// BeginService starts serving msg at time now and returns the DEPART event
// for it, scheduled at now plus an exponential service duration.
// Panics if the server is already busy: admission is the gateway's job.
func (s *Server) BeginService(msg *Message, now float64) *Event {
	if s.busy {
		panic(fmt.Sprintf("BeginService: server %d is busy with message %d, cannot serve message %d",
			s.index, s.current.ID(), msg.ID()))
	}
	duration := sampleExp(s.rng, s.rate)
	s.busy = true
	s.current = msg
	return NewEvent(s.ids.NextEventID(), now+duration, EventDepart, msg)
}

// CompleteService returns the server to idle. It does not look for new work.
func (s *Server) CompleteService() {
	s.busy = false
	s.current = nil
}
