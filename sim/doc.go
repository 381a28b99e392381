// Package sim provides the discrete-time CPU scheduling simulator.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - process.go: ProcessSpec inputs and the per-run Process record
//   - simulator.go: the clock, dispatch (Execute) and completion bookkeeping
//   - policy.go: the Policy interface and the NewPolicy factory
//
// # Policies
//
// Each policy drives the Simulator from time 0 until every process completes:
//   - fcfs.go: First-Come First-Served, non-preemptive
//   - round_robin.go: Round Robin over one FIFO ready queue
//   - spn.go: Shortest Process Next, non-preemptive
//   - srt.go: Shortest Remaining Time, re-decided every tick
//   - hrrn.go: Highest Response Ratio Next, non-preemptive
//   - feedback.go: multilevel feedback with demotion
//   - aging.go: priority levels with promotion of starved processes
//
// Ready queues live in queue.go (single FIFO) and multilevel.go (one FIFO per
// level with exact membership). A process is in at most one queue at a time.
//
// # Sub-packages
//   - sim/trace/: dispatch slices, idle stretches and promotions (Gantt data)
//   - sim/workload/: YAML and CSV workload loading and seeded generation
//   - sim/store/: SQLite persistence of run results
//
// Every run builds fresh Process records from the specs, so running several
// policies on the same input never leaks state between them.
package sim
