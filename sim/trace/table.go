package trace

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable renders records as a "Time (s) | Type | Source | Destination" table.
func WriteTable(w io.Writer, records []EventRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.Debug)
	fmt.Fprintln(tw, "Time (s)\tType\tSource\tDestination\t")
	for _, r := range records {
		fmt.Fprintf(tw, "%.6f\t%s\t%s\t%s\t\n", r.Time, r.Kind, r.Source, r.Destination)
	}
	return tw.Flush()
}
