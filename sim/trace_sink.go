package sim

import (
	"github.com/queuesim/queuesim/sim/trace"
)

// TraceSink is a passive recorder of processed events. The engine calls
// Record for every event before dispatching it and never reads it back.
type TraceSink interface {
	Record(eventID uint64, msg *Message, eventTime float64, kind EventKind)
}

// NopTraceSink discards every record.
type NopTraceSink struct{}

func (NopTraceSink) Record(uint64, *Message, float64, EventKind) {}

// toRecord flattens an event into the pure-data trace representation.
func toRecord(eventID uint64, msg *Message, eventTime float64, kind EventKind) trace.EventRecord {
	return trace.EventRecord{
		EventID:     eventID,
		MessageID:   msg.ID(),
		Time:        eventTime,
		Kind:        kind.String(),
		Source:      msg.Source(),
		Destination: msg.Destination(),
	}
}

// TraceRecorder keeps every record in a trace.SimulationTrace.
type TraceRecorder struct {
	Trace *trace.SimulationTrace
}

// NewTraceRecorder creates a recorder with an empty trace.
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{Trace: trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})}
}

func (r *TraceRecorder) Record(eventID uint64, msg *Message, eventTime float64, kind EventKind) {
	r.Trace.RecordEvent(toRecord(eventID, msg, eventTime, kind))
}

// JSONLTraceSink streams records through a trace.JSONLWriter. Write errors
// are sticky inside the writer and surface from its Flush.
type JSONLTraceSink struct {
	W *trace.JSONLWriter
}

func (s JSONLTraceSink) Record(eventID uint64, msg *Message, eventTime float64, kind EventKind) {
	_ = s.W.RecordEvent(toRecord(eventID, msg, eventTime, kind))
}

// MultiTraceSink forwards each record to every sink in order.
type MultiTraceSink []TraceSink

func (m MultiTraceSink) Record(eventID uint64, msg *Message, eventTime float64, kind EventKind) {
	for _, s := range m {
		s.Record(eventID, msg, eventTime, kind)
	}
}
