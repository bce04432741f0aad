// Package sim provides the discrete-event simulation engine for a stochastic
// queueing network: Poisson clients send messages to gateways, each a pool of
// exponential servers in front of one bounded FIFO queue.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: Message lifecycle as SEND → ARRIVE → DEPART events
//   - gateway.go: admission (serve, queue or drop) and re-dispatch on departure
//   - engine.go: the event loop and the horizon check
//
// # Ordering and determinism
//
// The Scheduler pops events by ascending time and breaks ties by insertion
// order. Every random draw comes from a PartitionedRNG stream named after the
// client or server that uses it, and ids come from an IDAllocator owned by the
// Engine. The same Config therefore yields the same trace, bit for bit.
//
// # Sub-packages
//   - sim/trace/: event trace records, JSON Lines export, table rendering
//   - sim/analytic/: closed-form M/M/c/K predictions
//   - sim/replicate/: parallel independent replications and their statistics
package sim
