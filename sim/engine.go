package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Engine is the core object that holds simulation time, the scheduler, the
// arrival sources and the gateways, and runs the event loop.
//
// One Engine is one run: it is single-threaded and owns every piece of
// mutable state it touches, including its id allocator and RNG streams.
type Engine struct {
	Clock   float64
	Horizon float64

	cfg          Config
	scheduler    *Scheduler
	ids          *IDAllocator
	rng          *PartitionedRNG
	router       *rand.Rand
	clients      []*Client
	clientsByID  map[string]*Client
	destinations []string
	gateways     map[string]*Gateway
	sink         TraceSink
	runID        string

	messagesSent    int
	eventsProcessed int
	ran             bool
}

// NewEngine validates cfg and builds the clients and gateways it describes.
// A nil sink is replaced by NopTraceSink.
func NewEngine(cfg Config, sink TraceSink) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if sink == nil {
		sink = NopTraceSink{}
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	runID, err := uuid.NewRandomFromReader(rng.ForSubsystem(SubsystemRunID))
	if err != nil {
		return nil, fmt.Errorf("drawing run id: %w", err)
	}

	e := &Engine{
		Horizon:      cfg.Horizon,
		cfg:          cfg,
		scheduler:    NewScheduler(),
		ids:          NewIDAllocator(),
		rng:          rng,
		router:       rng.ForSubsystem(SubsystemRouter),
		clientsByID:  make(map[string]*Client, cfg.NumClients),
		destinations: append([]string(nil), cfg.Destinations...),
		gateways:     make(map[string]*Gateway, len(cfg.Destinations)),
		sink:         sink,
		runID:        runID.String(),
	}
	rates := cfg.Rates()
	for _, dest := range e.destinations {
		e.gateways[dest] = NewGateway(dest, rates, cfg.QueueCapacity, rng, e.ids)
	}
	// client ids start at "1"
	for i := 1; i <= cfg.NumClients; i++ {
		id := strconv.Itoa(i)
		c := NewClient(id, cfg.ArrivalRate, rng.ForSubsystem(SubsystemClient(id)), e.ids)
		e.clients = append(e.clients, c)
		e.clientsByID[id] = c
	}
	return e, nil
}

// RunID returns the identifier of this run, derived from the seed.
func (e *Engine) RunID() string { return e.runID }

// Gateway returns the gateway serving dest, or nil.
func (e *Engine) Gateway(dest string) *Gateway { return e.gateways[dest] }

// Clients returns the arrival sources in id order.
func (e *Engine) Clients() []*Client { return e.clients }

// Pending returns the number of events still scheduled.
func (e *Engine) Pending() int { return e.scheduler.Len() }

// schedule inserts ev, refusing anything earlier than the current clock.
func (e *Engine) schedule(ev *Event) {
	if ev.Time() < e.Clock {
		panic(fmt.Sprintf("schedule: event %d at %.6f is earlier than clock %.6f", ev.ID(), ev.Time(), e.Clock))
	}
	e.scheduler.Insert(ev)
}

func (e *Engine) pickDestination() string {
	return e.destinations[e.router.Intn(len(e.destinations))]
}

// bootstrap asks every client for its first SEND event.
func (e *Engine) bootstrap() {
	for _, c := range e.clients {
		e.schedule(c.Start(e.pickDestination()))
	}
}

// Run drives the simulation until the scheduler is empty or the next event
// lies beyond the horizon. An Engine can only be run once.
func (e *Engine) Run() (*Result, error) {
	if e.ran {
		return nil, errors.New("engine has already run")
	}
	e.ran = true
	e.bootstrap()
	offered := 0.0
	for _, c := range e.clients {
		offered += c.Lambda()
	}
	logrus.Infof("Starting simulation run %s: %d clients (%.3f msg/s), %d gateways, horizon=%.3fs",
		e.runID, len(e.clients), offered, len(e.destinations), e.Horizon)

	for {
		next, ok := e.scheduler.PeekTime()
		if !ok || next > e.Horizon {
			break
		}
		ev, _ := e.scheduler.PopEarliest()

		// advance the clock; processed time never goes backwards
		if ev.Time() < e.Clock {
			panic(fmt.Sprintf("Clock went backwards: %.6f < %.6f", ev.Time(), e.Clock))
		}
		e.Clock = ev.Time()
		logrus.Debugf("[t %.6f] Executing %s event %d for message %d", e.Clock, ev.Kind(), ev.ID(), ev.Message().ID())

		e.sink.Record(ev.ID(), ev.Message(), ev.Time(), ev.Kind())
		e.eventsProcessed++
		if err := e.dispatch(ev); err != nil {
			return nil, fmt.Errorf("processing %s event %d at %.6f: %w", ev.Kind(), ev.ID(), ev.Time(), err)
		}
	}

	logrus.Infof("[t %.6f] Simulation ended with %d events pending", e.Clock, e.scheduler.Len())
	return e.Result(), nil
}

func (e *Engine) dispatch(ev *Event) error {
	msg := ev.Message()
	switch ev.Kind() {
	case EventSend:
		e.messagesSent++
		// transmission takes no simulated time
		e.schedule(NewEvent(e.ids.NextEventID(), ev.Time(), EventArrive, msg))
		client, ok := e.clientsByID[msg.Source()]
		if !ok {
			return fmt.Errorf("unknown source %q", msg.Source())
		}
		next, _ := client.Generate(e.pickDestination(), ev.Time())
		e.schedule(next)
		return nil

	case EventArrive:
		gw, ok := e.gateways[msg.Destination()]
		if !ok {
			return fmt.Errorf("unknown destination %q", msg.Destination())
		}
		if dep, _ := gw.Receive(msg, e.Clock); dep != nil {
			e.schedule(dep)
		}
		return nil

	case EventDepart:
		gw, ok := e.gateways[msg.Destination()]
		if !ok {
			return fmt.Errorf("unknown destination %q", msg.Destination())
		}
		next, err := gw.Depart(msg, e.Clock)
		if next != nil {
			e.schedule(next)
		}
		return err

	default:
		panic(fmt.Sprintf("dispatch: unhandled event kind %s", ev.Kind()))
	}
}

// Result returns the current metrics of the run.
func (e *Engine) Result() *Result {
	r := &Result{
		RunID:           e.runID,
		Seed:            e.cfg.Seed,
		Horizon:         e.Horizon,
		Clock:           e.Clock,
		MessagesSent:    e.messagesSent,
		EventsProcessed: e.eventsProcessed,
		Gateways:        make([]GatewayMetrics, 0, len(e.destinations)),
	}
	for _, dest := range e.destinations {
		r.Gateways = append(r.Gateways, e.gateways[dest].Metrics())
	}
	return r
}
