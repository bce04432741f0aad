package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedEvent(id uint64, t float64) *Event {
	return NewEvent(id, t, EventSend, NewMessage(id, "1", "1", nil, t))
}

// TestScheduler_TimestampOrdering tests that events are popped in time order
func TestScheduler_TimestampOrdering(t *testing.T) {
	s := NewScheduler()

	// Add events with different times in random order
	s.Insert(schedEvent(1, 1.0))
	s.Insert(schedEvent(2, 0.5))
	s.Insert(schedEvent(3, 1.5))

	// Should be popped in time order: 0.5, 1.0, 1.5
	for _, want := range []float64{0.5, 1.0, 1.5} {
		ev, ok := s.PopEarliest()
		require.True(t, ok)
		assert.Equal(t, want, ev.Time())
	}
	assert.Equal(t, 0, s.Len())
}

// TestScheduler_EqualTimes_PopInInsertionOrder tests the tie-break rule
func TestScheduler_EqualTimes_PopInInsertionOrder(t *testing.T) {
	s := NewScheduler()

	// Insert with ids that do not follow insertion order
	s.Insert(schedEvent(30, 2.0))
	s.Insert(schedEvent(10, 2.0))
	s.Insert(schedEvent(20, 2.0))
	s.Insert(schedEvent(5, 1.0))

	var got []uint64
	for s.Len() > 0 {
		ev, _ := s.PopEarliest()
		got = append(got, ev.ID())
	}
	assert.Equal(t, []uint64{5, 30, 10, 20}, got)
}

func TestScheduler_Empty_SignalsNoValue(t *testing.T) {
	s := NewScheduler()

	ev, ok := s.PopEarliest()
	assert.False(t, ok)
	assert.Nil(t, ev)

	_, ok = s.PeekTime()
	assert.False(t, ok)
}

func TestScheduler_PeekTime_DoesNotRemove(t *testing.T) {
	s := NewScheduler()
	s.Insert(schedEvent(1, 3.0))
	s.Insert(schedEvent(2, 0.25))

	tm, ok := s.PeekTime()
	require.True(t, ok)
	assert.Equal(t, 0.25, tm)
	assert.Equal(t, 2, s.Len())
}

func TestScheduler_InsertNil_Panics(t *testing.T) {
	assert.Panics(t, func() { NewScheduler().Insert(nil) })
}

// TestScheduler_RandomInsertions_NonDecreasingWithStableTies checks the
// ordering property over many interleaved inserts and pops.
func TestScheduler_RandomInsertions_NonDecreasingWithStableTies(t *testing.T) {
	rng := rand.New(rand.NewSource(100))
	s := NewScheduler()

	// ids follow insertion order, times come from a small set to force ties
	var nextID uint64
	insert := func() {
		s.Insert(schedEvent(nextID, float64(rng.Intn(20))))
		nextID++
	}
	for i := 0; i < 200; i++ {
		insert()
	}

	var lastTime float64 = -1
	var lastID uint64
	for s.Len() > 0 {
		ev, _ := s.PopEarliest()
		require.GreaterOrEqual(t, ev.Time(), lastTime, "times must be non-decreasing")
		if ev.Time() == lastTime {
			require.Greater(t, ev.ID(), lastID, "equal times must pop in insertion order")
		}
		lastTime, lastID = ev.Time(), ev.ID()
	}
}
