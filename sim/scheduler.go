package sim

import "container/heap"

// scheduledEntry wraps an Event with a sequence number so that events sharing
// a timestamp pop in the order they were inserted.
type scheduledEntry struct {
	event *Event
	seqID uint64
}

// eventQueue is a min-heap ordered by (Time, seqID).
// Implements heap.Interface.
type eventQueue []scheduledEntry

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].event.Time() != q[j].event.Time() {
		return q[i].event.Time() < q[j].event.Time()
	}
	return q[i].seqID < q[j].seqID
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(scheduledEntry))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = scheduledEntry{}
	*q = old[:n-1]
	return item
}

// Scheduler holds every not-yet-processed Event and decides what happens next.
// Insert and PopEarliest are O(log n).
//
// Ties on event time are broken by insertion order (first inserted, first
// popped). Traces are only reproducible for a seed because of this rule.
type Scheduler struct {
	events  eventQueue
	nextSeq uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	s := &Scheduler{events: make(eventQueue, 0)}
	heap.Init(&s.events)
	return s
}

// Insert adds an event.
func (s *Scheduler) Insert(e *Event) {
	if e == nil {
		panic("Scheduler.Insert: event must not be nil")
	}
	heap.Push(&s.events, scheduledEntry{event: e, seqID: s.nextSeq})
	s.nextSeq++
}

// PopEarliest removes and returns the event with the smallest time.
// Returns false when the scheduler is empty.
func (s *Scheduler) PopEarliest() (*Event, bool) {
	if len(s.events) == 0 {
		return nil, false
	}
	return heap.Pop(&s.events).(scheduledEntry).event, true
}

// PeekTime returns the time of the next event without removing it.
// Returns false when the scheduler is empty.
func (s *Scheduler) PeekTime() (float64, bool) {
	if len(s.events) == 0 {
		return 0, false
	}
	return s.events[0].event.Time(), true
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.events)
}
