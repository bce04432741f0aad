// Implements the BoundedQueue, which holds messages waiting for a free server.
// Messages are enqueued on arrival when every server of the gateway is busy.

package sim

import (
	"fmt"
	"strings"
)

// initialQueueSlots bounds the up-front reservation; the queue grows on demand.
const initialQueueSlots = 64

// BoundedQueue is a fixed-capacity FIFO of messages.
// Len() <= Capacity() holds at all times; a capacity of 0 admits nothing.
type BoundedQueue struct {
	capacity int
	queue    []*Message
}

// NewBoundedQueue creates an empty queue. Panics on a negative capacity.
func NewBoundedQueue(capacity int) *BoundedQueue {
	if capacity < 0 {
		panic(fmt.Sprintf("NewBoundedQueue: capacity must be >= 0, got %d", capacity))
	}
	return &BoundedQueue{
		capacity: capacity,
		queue:    make([]*Message, 0, min(capacity, initialQueueSlots)),
	}
}

// Enqueue appends m to the back of the queue. Returns false, leaving the queue
// untouched, when it is already full; callers treat that as a drop.
func (q *BoundedQueue) Enqueue(m *Message) bool {
	if m == nil {
		panic("Enqueue: message must not be nil")
	}
	if len(q.queue) >= q.capacity {
		return false
	}
	q.queue = append(q.queue, m)
	return true
}

// Dequeue removes and returns the oldest message.
// Returns false if the queue is empty.
func (q *BoundedQueue) Dequeue() (*Message, bool) {
	if len(q.queue) == 0 {
		return nil, false
	}
	m := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return m, true
}

// Len returns the number of queued messages.
func (q *BoundedQueue) Len() int {
	return len(q.queue)
}

// Capacity returns the fixed capacity.
func (q *BoundedQueue) Capacity() int {
	return q.capacity
}

// Full reports whether another Enqueue would fail.
func (q *BoundedQueue) Full() bool {
	return len(q.queue) >= q.capacity
}

func (q *BoundedQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, m := range q.queue {
		sb.WriteString(fmt.Sprint(m.ID()))
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
