package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrUntrackedDeparture is returned by Gateway.Depart when the departing
// message was never put in service by that gateway.
var ErrUntrackedDeparture = errors.New("departure for message without a service record")

// Admission is the outcome of Gateway.Receive for one message.
type Admission int

const (
	// AdmittedToService means an idle server took the message immediately.
	AdmittedToService Admission = iota
	// Queued means every server was busy and the message is waiting.
	Queued
	// Dropped means servers and queue were full; the message is gone.
	Dropped
)

func (a Admission) String() string {
	switch a {
	case AdmittedToService:
		return "admitted"
	case Queued:
		return "queued"
	case Dropped:
		return "dropped"
	default:
		return fmt.Sprintf("Admission(%d)", int(a))
	}
}

// Gateway is a queueing facility: a pool of single-channel servers sharing
// one bounded FIFO queue. All mutation of the servers and the queue goes
// through Receive and Depart.
//
// At most len(servers)+queue capacity messages are in flight; everything
// beyond that is dropped and counted.
type Gateway struct {
	destination string
	servers     []*Server
	queue       *BoundedQueue

	// per in-flight message bookkeeping, keyed by message id
	serving      map[uint64]*Server
	queueEntry   map[uint64]float64
	serviceStart map[uint64]float64

	received         int
	served           int
	dropped          int
	totalQueueDelay  float64
	totalServerDelay float64
}

// NewGateway creates a gateway for destination with one server per entry of
// serviceRates and a queue of the given capacity. Server i draws its service
// times from the RNG stream SubsystemServer(destination, i).
func NewGateway(destination string, serviceRates []float64, queueCapacity int, rng *PartitionedRNG, ids *IDAllocator) *Gateway {
	if len(serviceRates) == 0 {
		panic("NewGateway: at least one server is required")
	}
	servers := make([]*Server, len(serviceRates))
	for i, mu := range serviceRates {
		servers[i] = NewServer(i, mu, rng.ForSubsystem(SubsystemServer(destination, i)), ids)
	}
	return &Gateway{
		destination:  destination,
		servers:      servers,
		queue:        NewBoundedQueue(queueCapacity),
		serving:      make(map[uint64]*Server),
		queueEntry:   make(map[uint64]float64),
		serviceStart: make(map[uint64]float64),
	}
}

// Destination returns the label this gateway serves.
func (g *Gateway) Destination() string { return g.destination }

// Receive admits msg at time now: straight to an idle server if there is
// one, otherwise into the queue, otherwise it is dropped. The DEPART event is
// non-nil only when the message entered service.
func (g *Gateway) Receive(msg *Message, now float64) (*Event, Admission) {
	g.received++
	for _, srv := range g.servers {
		if srv.IsBusy() {
			continue
		}
		return g.startService(srv, msg, now), AdmittedToService
	}
	if !g.queue.Full() {
		g.queue.Enqueue(msg)
		g.queueEntry[msg.ID()] = now
		return nil, Queued
	}
	g.dropped++
	logrus.Debugf("[gateway %s] dropped message %d at %.6f (queue %d/%d)",
		g.destination, msg.ID(), now, g.queue.Len(), g.queue.Capacity())
	return nil, Dropped
}

// Depart finalizes msg leaving service at time now, frees the server that
// served it and, if anything is waiting, starts the next queued message on
// that server. The returned event is the new DEPART, or nil.
//
// A message with no service record is not counted as served and
// ErrUntrackedDeparture is returned so the caller can stop. A message that is
// still waiting stays in the queue and no server is touched; for a message the
// gateway has never seen, a busy server is freed so capacity does not leak.
func (g *Gateway) Depart(msg *Message, now float64) (*Event, error) {
	id := msg.ID()
	srv, tracked := g.serving[id]
	if !tracked {
		untracked := fmt.Errorf("%w: message %d at gateway %s", ErrUntrackedDeparture, id, g.destination)
		if _, waiting := g.queueEntry[id]; waiting {
			logrus.Warnf("[gateway %s] queued message %d departed at %.6f before service", g.destination, id, now)
			return nil, untracked
		}
		srv = g.firstBusy()
		logrus.Warnf("[gateway %s] message %d departed at %.6f without a service record", g.destination, id, now)
		var next *Event
		if srv != nil {
			if cur := srv.Current(); cur != nil {
				delete(g.serving, cur.ID())
				delete(g.serviceStart, cur.ID())
			}
			srv.CompleteService()
			next = g.dispatchNext(srv, now)
		}
		return next, untracked
	}
	if srv.Current() != msg {
		panic(fmt.Sprintf("Depart: server %d of gateway %s holds message %v, not %d",
			srv.Index(), g.destination, srv.Current(), id))
	}

	start := g.serviceStart[id]
	g.totalServerDelay += now - start
	if entered, waited := g.queueEntry[id]; waited {
		g.totalQueueDelay += start - entered
		delete(g.queueEntry, id)
	}
	delete(g.serviceStart, id)
	delete(g.serving, id)
	g.served++

	srv.CompleteService()
	return g.dispatchNext(srv, now), nil
}

// dispatchNext starts the oldest queued message on srv, if any.
func (g *Gateway) dispatchNext(srv *Server, now float64) *Event {
	next, ok := g.queue.Dequeue()
	if !ok {
		return nil
	}
	return g.startService(srv, next, now)
}

func (g *Gateway) startService(srv *Server, msg *Message, now float64) *Event {
	ev := srv.BeginService(msg, now)
	g.serving[msg.ID()] = srv
	g.serviceStart[msg.ID()] = now
	return ev
}

func (g *Gateway) firstBusy() *Server {
	for _, srv := range g.servers {
		if srv.IsBusy() {
			return srv
		}
	}
	return nil
}

// NumServers returns the size of the server pool.
func (g *Gateway) NumServers() int { return len(g.servers) }

// Busy returns the number of servers currently serving.
func (g *Gateway) Busy() int {
	n := 0
	for _, srv := range g.servers {
		if srv.IsBusy() {
			n++
		}
	}
	return n
}

// QueueLen returns the number of waiting messages.
func (g *Gateway) QueueLen() int { return g.queue.Len() }

// InFlight returns the number of messages in service or waiting.
func (g *Gateway) InFlight() int { return g.Busy() + g.queue.Len() }

// Received returns the number of Receive calls.
func (g *Gateway) Received() int { return g.received }

// Served returns the number of completed services.
func (g *Gateway) Served() int { return g.served }

// Dropped returns the number of messages discarded at admission.
func (g *Gateway) Dropped() int { return g.dropped }

// AverageQueueDelay returns total queue delay over served messages, 0 before
// the first departure. Messages that never waited contribute 0.
func (g *Gateway) AverageQueueDelay() float64 {
	if g.served == 0 {
		return 0
	}
	return g.totalQueueDelay / float64(g.served)
}

// AverageServerDelay returns total service time over served messages.
func (g *Gateway) AverageServerDelay() float64 {
	if g.served == 0 {
		return 0
	}
	return g.totalServerDelay / float64(g.served)
}

// Metrics returns a read-only snapshot of the gateway counters.
func (g *Gateway) Metrics() GatewayMetrics {
	m := GatewayMetrics{
		Destination:      g.destination,
		NumServers:       len(g.servers),
		Busy:             g.Busy(),
		Queued:           g.queue.Len(),
		QueueCapacity:    g.queue.Capacity(),
		Received:         g.received,
		Served:           g.served,
		Dropped:          g.dropped,
		TotalQueueDelay:  g.totalQueueDelay,
		TotalServerDelay: g.totalServerDelay,
		AvgQueueDelay:    g.AverageQueueDelay(),
		AvgServerDelay:   g.AverageServerDelay(),
	}
	m.InFlight = m.Busy + m.Queued
	if g.received > 0 {
		m.DropRate = float64(g.dropped) / float64(g.received)
	}
	return m
}
