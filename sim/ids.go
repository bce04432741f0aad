package sim

// IDAllocator hands out message and event identifiers for one simulation.
// Each Engine owns its own allocator, so ids restart at 0 for every run and
// nothing leaks between simulations that share a process.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type IDAllocator struct {
	nextMessageID uint64
	nextEventID   uint64
}

// NewIDAllocator creates an allocator whose first ids are 0.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// NextMessageID returns the next message id.
func (a *IDAllocator) NextMessageID() uint64 {
	id := a.nextMessageID
	a.nextMessageID++
	return id
}

// NextEventID returns the next event id.
func (a *IDAllocator) NextEventID() uint64 {
	id := a.nextEventID
	a.nextEventID++
	return id
}
