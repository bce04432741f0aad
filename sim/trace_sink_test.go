package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuesim/queuesim/sim/trace"
)

func TestTraceRecorder_FlattensEvent(t *testing.T) {
	rec := NewTraceRecorder()
	msg := NewMessage(4, "2", "east", nil, 1.25)

	rec.Record(9, msg, 1.25, EventArrive)

	require.Len(t, rec.Trace.Events, 1)
	assert.Equal(t, trace.EventRecord{
		EventID:     9,
		MessageID:   4,
		Time:        1.25,
		Kind:        "ARRIVE",
		Source:      "2",
		Destination: "east",
	}, rec.Trace.Events[0])
}

func TestMultiTraceSink_ForwardsToAll(t *testing.T) {
	a, b := NewTraceRecorder(), NewTraceRecorder()
	sink := MultiTraceSink{a, NopTraceSink{}, b}
	msg := NewMessage(1, "1", "1", nil, 0)

	sink.Record(1, msg, 0, EventSend)
	sink.Record(2, msg, 0, EventArrive)

	assert.Equal(t, a.Trace.Events, b.Trace.Events)
	assert.Len(t, a.Trace.Events, 2)
}

// TestJSONLTraceSink_MatchesRecorder verifies a streamed trace reads back as the in-memory one.
func TestJSONLTraceSink_MatchesRecorder(t *testing.T) {
	// GIVEN a run recorded to memory and to JSON Lines at once
	var buf bytes.Buffer
	w := trace.NewJSONLWriter(&buf)
	rec := NewTraceRecorder()
	eng, err := NewEngine(testConfig(), MultiTraceSink{rec, JSONLTraceSink{W: w}})
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader(trace.Header{RunID: eng.RunID(), Seed: 7}))

	// WHEN the run completes and the writer is flushed
	_, err = eng.Run()
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	// THEN the file holds the header and the same records
	h, records, err := trace.ReadJSONL(&buf)
	require.NoError(t, err)
	assert.Equal(t, eng.RunID(), h.RunID)
	assert.Equal(t, rec.Trace.Events, records)
}
