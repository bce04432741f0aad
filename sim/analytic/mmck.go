// Package analytic computes steady-state predictions for the M/M/c/K queue,
// the model a gateway with c identical servers and a queue of K-c slots fed by
// Poisson traffic follows in the long run.
package analytic

import (
	"fmt"
	"math"
)

// MMcK holds the stationary distribution of an M/M/c/K system.
type MMcK struct {
	Lambda   float64 // total arrival rate
	Mu       float64 // per-server service rate
	Servers  int     // c
	Capacity int     // K = c + queue slots
	probs    []float64
}

// MaxStates is the largest K the solver accepts. Deeper queues behave like
// an unbounded queue when ρ < 1 and are always full when ρ > 1.
const MaxStates = 1 << 20

// NewMMcK solves the system for c servers and a queue of queueCapacity slots.
func NewMMcK(lambda, mu float64, servers, queueCapacity int) (*MMcK, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return nil, fmt.Errorf("lambda must be a finite positive number, got %f", lambda)
	}
	if !(mu > 0) || math.IsInf(mu, 0) {
		return nil, fmt.Errorf("mu must be a finite positive number, got %f", mu)
	}
	if servers < 1 {
		return nil, fmt.Errorf("servers must be >= 1, got %d", servers)
	}
	if queueCapacity < 0 {
		return nil, fmt.Errorf("queue capacity must be >= 0, got %d", queueCapacity)
	}
	if servers > MaxStates || queueCapacity > MaxStates-servers {
		return nil, fmt.Errorf("system of %d servers and %d queue slots exceeds %d states", servers, queueCapacity, MaxStates)
	}
	m := &MMcK{Lambda: lambda, Mu: mu, Servers: servers, Capacity: servers + queueCapacity}
	m.solve()
	return m, nil
}

// solve fills probs with p_n, n = 0..K, using the birth-death recurrence
// p_n = p_{n-1} * λ / (min(n, c) μ). The recurrence runs in log space and is
// shifted by its maximum before normalizing, so an overloaded system with a
// deep queue neither overflows nor underflows to NaN.
func (m *MMcK) solve() {
	m.probs = make([]float64, m.Capacity+1)
	logP := 0.0
	maxLog := 0.0
	for n := 1; n <= m.Capacity; n++ {
		logP += math.Log(m.Lambda) - math.Log(float64(min(n, m.Servers))*m.Mu)
		m.probs[n] = logP
		maxLog = math.Max(maxLog, logP)
	}
	sum := 0.0
	for n := range m.probs {
		m.probs[n] = math.Exp(m.probs[n] - maxLog)
		sum += m.probs[n]
	}
	for n := range m.probs {
		m.probs[n] /= sum
	}
}

// Prob returns the stationary probability of n messages in the system.
func (m *MMcK) Prob(n int) float64 {
	if n < 0 || n >= len(m.probs) {
		return 0
	}
	return m.probs[n]
}

// BlockingProbability is the fraction of arrivals that find the system full.
func (m *MMcK) BlockingProbability() float64 {
	return m.probs[m.Capacity]
}

// Throughput is the effective arrival rate λ(1 - P_K).
func (m *MMcK) Throughput() float64 {
	return m.Lambda * (1 - m.BlockingProbability())
}

// Utilization is the mean fraction of busy servers.
func (m *MMcK) Utilization() float64 {
	return m.Throughput() / (float64(m.Servers) * m.Mu)
}

// MeanQueueLength is the expected number of waiting messages.
func (m *MMcK) MeanQueueLength() float64 {
	lq := 0.0
	for n := m.Servers + 1; n <= m.Capacity; n++ {
		lq += float64(n-m.Servers) * m.probs[n]
	}
	return lq
}

// MeanInSystem is the expected number of messages waiting or in service.
func (m *MMcK) MeanInSystem() float64 {
	l := 0.0
	for n, p := range m.probs {
		l += float64(n) * p
	}
	return l
}

// MeanQueueWait is the expected queue delay of an admitted message.
func (m *MMcK) MeanQueueWait() float64 {
	return m.MeanQueueLength() / m.Throughput()
}

// MeanSojourn is the expected queue plus service time of an admitted message.
func (m *MMcK) MeanSojourn() float64 {
	return m.MeanInSystem() / m.Throughput()
}
