// Package trace provides event-trace recording for simulation runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventRecord captures one processed event together with the message fields
// needed to reproduce the trace table.
type EventRecord struct {
	EventID     uint64  `json:"event_id"`
	MessageID   uint64  `json:"message_id"`
	Time        float64 `json:"time"`
	Kind        string  `json:"kind"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
}
