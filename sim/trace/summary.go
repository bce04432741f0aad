package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents  int
	ByKind       map[string]int // event kind → count
	BySource     map[string]int // client id → count of SEND events
	FirstTime    float64
	LastTime     float64
	UniqueSource int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ByKind:   make(map[string]int),
		BySource: make(map[string]int),
	}
	if st == nil || len(st.Events) == 0 {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	summary.FirstTime = st.Events[0].Time
	summary.LastTime = st.Events[len(st.Events)-1].Time
	for _, e := range st.Events {
		summary.ByKind[e.Kind]++
		if e.Kind == "SEND" {
			summary.BySource[e.Source]++
		}
	}
	summary.UniqueSource = len(summary.BySource)

	return summary
}
