package sim

// testConfig returns a small valid config with one destination.
func testConfig() Config {
	return Config{
		Seed:          7,
		Horizon:       5.0,
		NumClients:    1,
		ArrivalRate:   4.0,
		NumServers:    1,
		ServiceRate:   8.0,
		QueueCapacity: 0,
		Destinations:  []string{"1"},
	}
}

// newTestGateway builds a gateway for destination "A" with a fixed seed.
func newTestGateway(rates []float64, capacity int) (*Gateway, *IDAllocator) {
	ids := NewIDAllocator()
	return NewGateway("A", rates, capacity, NewPartitionedRNG(NewSimulationKey(1)), ids), ids
}

func newTestMessage(ids *IDAllocator, source string) *Message {
	return NewMessage(ids.NextMessageID(), source, "A", nil, 0)
}

// runWithTrace runs cfg to completion and returns the result and trace.
func runWithTrace(cfg Config) (*Result, *TraceRecorder, error) {
	rec := NewTraceRecorder()
	eng, err := NewEngine(cfg, rec)
	if err != nil {
		return nil, nil, err
	}
	res, err := eng.Run()
	return res, rec, err
}
