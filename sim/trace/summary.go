package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Dispatches      int   // number of recorded slices
	ContextSwitches int   // consecutive Gantt bars belonging to different processes
	BusyTime        int64 // ticks spent running a process
	IdleTime        int64 // ticks with no runnable process
	Makespan        int64 // end of the last slice
	Utilization     float64
	Promotions      int
	SlicesPerProc   map[int]int // process ID → number of slices
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		SlicesPerProc: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.Dispatches = len(st.Slices)
	summary.Promotions = len(st.Promotions)
	for _, s := range st.Slices {
		summary.BusyTime += s.Duration()
		summary.SlicesPerProc[s.ProcessID]++
		if s.End > summary.Makespan {
			summary.Makespan = s.End
		}
	}
	for _, idle := range st.Idles {
		summary.IdleTime += idle.End - idle.Start
	}

	gantt := st.Gantt()
	for i := 1; i < len(gantt); i++ {
		if gantt[i].ProcessID != gantt[i-1].ProcessID {
			summary.ContextSwitches++
		}
	}
	if summary.Makespan > 0 {
		summary.Utilization = float64(summary.BusyTime) / float64(summary.Makespan)
	}
	return summary
}
