// Aggregates per-process scheduling metrics into run-level statistics and
// renders them as tables for the CLI.

package sim

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/cpusim/sim/trace"
)

// Summary holds the aggregated statistics of one scheduling run.
type Summary struct {
	Policy        string  `json:"policy,omitempty"`
	Processes     int     `json:"processes"`
	AvgWaiting    float64 `json:"avg_waiting"`
	AvgTurnaround float64 `json:"avg_turnaround"`
	AvgResponse   float64 `json:"avg_response"`
	P95Waiting    float64 `json:"p95_waiting"`
	MaxWaiting    int64   `json:"max_waiting"`

	Makespan    int64   `json:"makespan"`    // latest completion time
	Throughput  float64 `json:"throughput"`  // processes completed per tick of makespan
	Utilization float64 `json:"utilization"` // busy ticks / makespan

	// Filled from the dispatch trace by SummarizeResult.
	ContextSwitches int `json:"context_switches"`
	Promotions      int `json:"promotions"`
}

// Aggregate computes means and totals over a completed process list.
// Returns ErrNoProcesses when procs is empty.
func Aggregate(procs []*Process) (*Summary, error) {
	if len(procs) == 0 {
		return nil, ErrNoProcesses
	}
	waits := make([]int64, len(procs))
	tats := make([]int64, len(procs))
	resps := make([]int64, len(procs))
	s := &Summary{Processes: len(procs)}
	var busy int64
	for i, p := range procs {
		waits[i] = p.WaitingTime
		tats[i] = p.TurnaroundTime
		resps[i] = p.ResponseTime
		busy += p.TotalBurst
		s.Makespan = max(s.Makespan, p.CompletionTime)
		s.MaxWaiting = max(s.MaxWaiting, p.WaitingTime)
	}
	s.AvgWaiting = CalculateMean(waits)
	s.AvgTurnaround = CalculateMean(tats)
	s.AvgResponse = CalculateMean(resps)
	s.P95Waiting = CalculatePercentile(sortedCopy(waits), 95)
	if s.Makespan > 0 {
		s.Throughput = float64(len(procs)) / float64(s.Makespan)
		s.Utilization = float64(busy) / float64(s.Makespan)
	}
	return s, nil
}

// SummarizeResult aggregates a Result and adds the trace-derived counters.
func SummarizeResult(res *Result) (*Summary, error) {
	s, err := Aggregate(res.Processes)
	if err != nil {
		return nil, err
	}
	s.Policy = res.Policy
	ts := trace.Summarize(res.Trace)
	s.ContextSwitches = ts.ContextSwitches
	s.Promotions = ts.Promotions
	return s, nil
}

// Print displays the aggregated metrics.
func (s *Summary) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "=== Scheduling Metrics ===")
	if s.Policy != "" {
		_, _ = fmt.Fprintf(w, "Policy               : %s\n", s.Policy)
	}
	_, _ = fmt.Fprintf(w, "Processes            : %d\n", s.Processes)
	_, _ = fmt.Fprintf(w, "Average Waiting      : %.2f ticks\n", s.AvgWaiting)
	_, _ = fmt.Fprintf(w, "Average Turnaround   : %.2f ticks\n", s.AvgTurnaround)
	_, _ = fmt.Fprintf(w, "Average Response     : %.2f ticks\n", s.AvgResponse)
	_, _ = fmt.Fprintf(w, "P95 Waiting          : %.2f ticks\n", s.P95Waiting)
	_, _ = fmt.Fprintf(w, "Makespan             : %d ticks\n", s.Makespan)
	_, _ = fmt.Fprintf(w, "Throughput           : %.3f procs/tick\n", s.Throughput)
	_, _ = fmt.Fprintf(w, "CPU Utilization      : %.2f%%\n", s.Utilization*100)
	_, _ = fmt.Fprintf(w, "Context Switches     : %d\n", s.ContextSwitches)
	if s.Promotions > 0 {
		_, _ = fmt.Fprintf(w, "Aging Promotions     : %d\n", s.Promotions)
	}
}

// PrintProcessTable renders one row per process in input order with the
// averages in the footer.
func PrintProcessTable(w io.Writer, res *Result, s *Summary) {
	rows := make([][]string, 0, len(res.Processes))
	for _, p := range res.Processes {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.TotalBurst),
			fmt.Sprint(p.WaitingTime),
			fmt.Sprint(p.TurnaroundTime),
			fmt.Sprint(p.ResponseTime),
			fmt.Sprint(p.CompletionTime),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Arrival", "Burst", "Waiting", "Turnaround", "Response", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", s.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", s.AvgTurnaround),
		fmt.Sprintf("Average\n%.2f", s.AvgResponse),
		fmt.Sprintf("Throughput\n%.3f/t", s.Throughput)})
	table.Render()
}

// PrintComparison renders one summary row per policy.
func PrintComparison(w io.Writer, summaries []*Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Avg Waiting", "Avg Turnaround", "Avg Response", "Makespan", "Switches", "Utilization"})
	for _, s := range summaries {
		table.Append([]string{
			s.Policy,
			fmt.Sprintf("%.2f", s.AvgWaiting),
			fmt.Sprintf("%.2f", s.AvgTurnaround),
			fmt.Sprintf("%.2f", s.AvgResponse),
			fmt.Sprint(s.Makespan),
			fmt.Sprint(s.ContextSwitches),
			fmt.Sprintf("%.1f%%", s.Utilization*100),
		})
	}
	table.Render()
}

// PrintGantt writes the merged dispatch bars as a one-line chart with the
// boundary ticks underneath. Idle gaps show as "-".
func PrintGantt(w io.Writer, st *trace.SimulationTrace) {
	bars := st.Gantt()
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(bars) == 0 {
		_, _ = fmt.Fprintln(w, "(empty)")
		return
	}
	var top, bottom strings.Builder
	top.WriteString("|")
	var clock int64
	cell := func(label string, start int64) {
		padding := strings.Repeat(" ", max(0, (6-len(label))/2))
		fmt.Fprint(&top, padding, label, padding, "|")
		fmt.Fprintf(&bottom, "%-*d", len(padding)*2+len(label)+1, start)
	}
	for _, b := range bars {
		if b.Start > clock {
			cell("-", clock)
		}
		cell(fmt.Sprintf("P%d", b.ProcessID), b.Start)
		clock = b.End
	}
	fmt.Fprint(&bottom, clock)
	_, _ = fmt.Fprintln(w, top.String())
	_, _ = fmt.Fprintln(w, bottom.String())
}
