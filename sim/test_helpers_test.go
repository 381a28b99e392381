package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusim/sim/trace"
)

// specs builds ProcessSpecs from (id, arrival, burst) triples with priority 0.
func specs(rows ...[3]int64) []ProcessSpec {
	out := make([]ProcessSpec, len(rows))
	for i, r := range rows {
		out[i] = ProcessSpec{ID: int(r[0]), ArrivalTime: r[1], BurstTime: r[2]}
	}
	return out
}

// seedSpecs is the five-process demonstration dataset.
func seedSpecs() []ProcessSpec {
	return []ProcessSpec{
		{ID: 1, ArrivalTime: 0, BurstTime: 10, Priority: 3},
		{ID: 2, ArrivalTime: 1, BurstTime: 5, Priority: 1},
		{ID: 3, ArrivalTime: 2, BurstTime: 8, Priority: 2},
		{ID: 4, ArrivalTime: 3, BurstTime: 2, Priority: 4},
		{ID: 5, ArrivalTime: 4, BurstTime: 7, Priority: 5},
	}
}

func mustRun(t *testing.T, in []ProcessSpec, policy string, cfg Config) *Result {
	t.Helper()
	res, err := Run(in, policy, cfg)
	require.NoError(t, err)
	return res
}

func waitingTimes(procs []*Process) []int64 {
	out := make([]int64, len(procs))
	for i, p := range procs {
		out[i] = p.WaitingTime
	}
	return out
}

func turnaroundTimes(procs []*Process) []int64 {
	out := make([]int64, len(procs))
	for i, p := range procs {
		out[i] = p.TurnaroundTime
	}
	return out
}

func responseTimes(procs []*Process) []int64 {
	out := make([]int64, len(procs))
	for i, p := range procs {
		out[i] = p.ResponseTime
	}
	return out
}

func completionTimes(procs []*Process) []int64 {
	out := make([]int64, len(procs))
	for i, p := range procs {
		out[i] = p.CompletionTime
	}
	return out
}

// ganttRows flattens merged bars to (id, start, end) triples.
func ganttRows(st *trace.SimulationTrace) [][3]int64 {
	bars := st.Gantt()
	out := make([][3]int64, len(bars))
	for i, b := range bars {
		out[i] = [3]int64{int64(b.ProcessID), b.Start, b.End}
	}
	return out
}
