package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "SEND", EventSend.String())
	assert.Equal(t, "ARRIVE", EventArrive.String())
	assert.Equal(t, "DEPART", EventDepart.String())
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}

func TestNewEvent_CarriesMessageUnchanged(t *testing.T) {
	msg := NewMessage(3, "1", "2", "payload", 0.5)

	ev := NewEvent(11, 0.75, EventDepart, msg)

	assert.Equal(t, uint64(11), ev.ID())
	assert.Equal(t, 0.75, ev.Time())
	assert.Equal(t, EventDepart, ev.Kind())
	assert.Same(t, msg, ev.Message())
	assert.Equal(t, "payload", ev.Message().Payload())
	assert.Equal(t, 0.5, ev.Message().CreatedAt())
}

func TestNewEvent_NegativeTime_Panics(t *testing.T) {
	msg := NewMessage(0, "1", "2", nil, 0)
	assert.Panics(t, func() { NewEvent(0, -0.1, EventSend, msg) })
}

func TestNewEvent_UnknownKind_Panics(t *testing.T) {
	msg := NewMessage(0, "1", "2", nil, 0)
	assert.Panics(t, func() { NewEvent(0, 1, EventKind(3), msg) })
}
