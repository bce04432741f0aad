// Read-only counters exposed to the reporting layer.

package sim

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// GatewayMetrics is a snapshot of one gateway's service-level counters.
type GatewayMetrics struct {
	Destination      string  `json:"destination"`
	NumServers       int     `json:"num_servers"`
	Busy             int     `json:"busy"`
	Queued           int     `json:"queued"`
	QueueCapacity    int     `json:"queue_capacity"`
	InFlight         int     `json:"in_flight"`
	Received         int     `json:"received"`
	Served           int     `json:"served"`
	Dropped          int     `json:"dropped"`
	DropRate         float64 `json:"drop_rate"`
	TotalQueueDelay  float64 `json:"total_queue_delay"`
	TotalServerDelay float64 `json:"total_server_delay"`
	AvgQueueDelay    float64 `json:"avg_queue_delay"`
	AvgServerDelay   float64 `json:"avg_server_delay"`
}

// Result summarizes a finished run.
type Result struct {
	RunID           string           `json:"run_id"`
	Seed            int64            `json:"seed"`
	Horizon         float64          `json:"horizon"`
	Clock           float64          `json:"clock"`
	MessagesSent    int              `json:"messages_sent"`
	EventsProcessed int              `json:"events_processed"`
	Gateways        []GatewayMetrics `json:"gateways"`
}

// Totals folds every gateway into a single snapshot with Destination "*".
func (r *Result) Totals() GatewayMetrics {
	t := GatewayMetrics{Destination: "*"}
	for _, g := range r.Gateways {
		t.NumServers += g.NumServers
		t.Busy += g.Busy
		t.Queued += g.Queued
		t.QueueCapacity += g.QueueCapacity
		t.InFlight += g.InFlight
		t.Received += g.Received
		t.Served += g.Served
		t.Dropped += g.Dropped
		t.TotalQueueDelay += g.TotalQueueDelay
		t.TotalServerDelay += g.TotalServerDelay
	}
	if t.Served > 0 {
		t.AvgQueueDelay = t.TotalQueueDelay / float64(t.Served)
		t.AvgServerDelay = t.TotalServerDelay / float64(t.Served)
	}
	if t.Received > 0 {
		t.DropRate = float64(t.Dropped) / float64(t.Received)
	}
	return t
}

// Print writes a human-readable report of the run.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Run ID               : %s\n", r.RunID)
	fmt.Fprintf(w, "Seed                 : %d\n", r.Seed)
	fmt.Fprintf(w, "Simulated Time       : %.6f s (horizon %.6f s)\n", r.Clock, r.Horizon)
	fmt.Fprintf(w, "Messages Sent        : %d\n", r.MessagesSent)
	fmt.Fprintf(w, "Events Processed     : %d\n", r.EventsProcessed)
	for _, g := range r.Gateways {
		fmt.Fprintf(w, "--- Gateway %s ---\n", g.Destination)
		fmt.Fprintf(w, "Servers              : %d (busy %d)\n", g.NumServers, g.Busy)
		fmt.Fprintf(w, "Queue                : %d/%d\n", g.Queued, g.QueueCapacity)
		fmt.Fprintf(w, "Received             : %d\n", g.Received)
		fmt.Fprintf(w, "Served               : %d\n", g.Served)
		fmt.Fprintf(w, "Dropped              : %d (%.2f%%)\n", g.Dropped, 100*g.DropRate)
		fmt.Fprintf(w, "In Flight            : %d\n", g.InFlight)
		fmt.Fprintf(w, "Average Queue Delay  : %.6f s\n", g.AvgQueueDelay)
		fmt.Fprintf(w, "Average Server Delay : %.6f s\n", g.AvgServerDelay)
	}
}

// SaveJSON writes the result as indented JSON to path.
func (r *Result) SaveJSON(path string) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
