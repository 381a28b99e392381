// sim/simulator.go
package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim/trace"
)

// Simulator is the core object that holds simulation time and the process
// records of one scheduling run. It exclusively owns those records: they are
// built fresh from the specs in NewSimulator and are never shared with another run.
type Simulator struct {
	Clock int64
	// Processes holds the run-state records in input order.
	Processes []*Process
	// Trace records every dispatch slice, idle stretch and promotion.
	Trace *trace.SimulationTrace

	// order is the arrival-ordered view (stable on input order) that every
	// policy scans; "lowest index" tie-breaks refer to positions in it.
	order     []*Process
	completed int
	ran       bool
}

// Result is the outcome of one scheduling run.
type Result struct {
	Policy    string
	Config    Config
	Processes []*Process // input order, metrics populated
	EndTime   int64      // clock when the last process completed
	Trace     *trace.SimulationTrace
}

// NewSimulator validates the specs and builds fresh run-state records for them.
func NewSimulator(specs []ProcessSpec) (*Simulator, error) {
	if err := ValidateSpecs(specs); err != nil {
		return nil, err
	}
	procs := NewProcesses(specs)
	order := make([]*Process, len(procs))
	copy(order, procs)
	// Ties keep input order.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].ArrivalTime < order[j].ArrivalTime
	})
	for i, p := range order {
		p.idx = i
	}
	return &Simulator{
		Processes: procs,
		Trace:     trace.NewSimulationTrace(),
		order:     order,
	}, nil
}

// Run schedules every process to completion with the given policy.
// A Simulator can run once; build a new one to compare policies.
func (sim *Simulator) Run(policy Policy, cfg Config) *Result {
	if sim.ran {
		panic("Run: simulator already used; create a new one per run")
	}
	sim.ran = true

	logrus.Infof("[tick %07d] Starting %s with %d processes", sim.Clock, policy.Name(), len(sim.order))
	policy.Schedule(sim)
	if !sim.Done() {
		panic(fmt.Sprintf("Run: policy %s returned with %d of %d processes completed", policy.Name(), sim.completed, len(sim.order)))
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)

	return &Result{
		Policy:    policy.Name(),
		Config:    cfg,
		Processes: sim.Processes,
		EndTime:   sim.Clock,
		Trace:     sim.Trace,
	}
}

// Run builds a fresh Simulator from specs and schedules it with the named policy.
func Run(specs []ProcessSpec, policyName string, cfg Config) (*Result, error) {
	if !IsValidPolicy(policyName) {
		return nil, fmt.Errorf("unknown policy %q", policyName)
	}
	policy, err := NewPolicy(policyName, cfg)
	if err != nil {
		return nil, err
	}
	sim, err := NewSimulator(specs)
	if err != nil {
		return nil, err
	}
	return sim.Run(policy, cfg), nil
}

// RunAll runs every policy on the same specs, each on its own Simulator,
// in PolicyNames order.
func RunAll(specs []ProcessSpec, cfg Config) ([]*Result, error) {
	results := make([]*Result, 0, len(PolicyNames()))
	for _, name := range PolicyNames() {
		res, err := Run(specs, name, cfg)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Order returns the arrival-ordered view of the processes.
func (sim *Simulator) Order() []*Process {
	return sim.order
}

// Done reports whether every process has completed.
func (sim *Simulator) Done() bool {
	return sim.completed == len(sim.order)
}

// Arrived reports whether p has arrived by the current clock.
func (sim *Simulator) Arrived(p *Process) bool {
	return p.ArrivalTime <= sim.Clock
}

// Eligible reports whether p has arrived and still needs CPU time.
func (sim *Simulator) Eligible(p *Process) bool {
	return sim.Arrived(p) && p.RemainingBurst > 0
}

// Advance moves the clock forward by d ticks.
// Every loop iteration must strictly advance time; d <= 0 is a liveness defect.
func (sim *Simulator) Advance(d int64) {
	if d <= 0 {
		panic(fmt.Sprintf("Advance: clock must strictly increase, got delta %d at tick %d", d, sim.Clock))
	}
	sim.Clock += d
}

// IdleTick advances the clock by one tick with no process running.
func (sim *Simulator) IdleTick() {
	start := sim.Clock
	sim.Advance(1)
	sim.Trace.RecordIdle(start, sim.Clock)
}

// IdleUntil jumps the clock forward to t when the CPU has nothing to run.
// No-op if t is not in the future.
func (sim *Simulator) IdleUntil(t int64) {
	if t <= sim.Clock {
		return
	}
	start := sim.Clock
	sim.Advance(t - start)
	sim.Trace.RecordIdle(start, sim.Clock)
}

// Execute runs p for min(d, p.RemainingBurst) ticks from the current clock,
// writing the response time on first dispatch. level is the ready-queue level
// p was taken from, recorded in the trace. Returns the ticks actually run.
func (sim *Simulator) Execute(p *Process, d int64, level int) int64 {
	if p.RemainingBurst <= 0 {
		panic(fmt.Sprintf("Execute: process %d dispatched with remaining burst %d", p.ID, p.RemainingBurst))
	}
	if !sim.Arrived(p) {
		panic(fmt.Sprintf("Execute: process %d dispatched at tick %d before arrival %d", p.ID, sim.Clock, p.ArrivalTime))
	}
	run := min(d, p.RemainingBurst)
	if !p.Started {
		p.ResponseTime = sim.Clock - p.ArrivalTime
		p.Started = true
	}
	start := sim.Clock
	p.RemainingBurst -= run
	sim.Advance(run)
	sim.Trace.RecordSlice(trace.SliceRecord{ProcessID: p.ID, Start: start, End: sim.Clock, Level: level})
	logrus.Debugf("[tick %07d] Ran process %d for %d ticks (level %d, remaining %d)", start, p.ID, run, level, p.RemainingBurst)
	return run
}

// Complete records the completion of p at the current clock.
// Waiting time is derived as turnaround minus burst.
func (sim *Simulator) Complete(p *Process) {
	sim.finish(p)
	p.WaitingTime = p.TurnaroundTime - p.TotalBurst
}

// CompleteAccumulated records the completion of p for policies that accumulate
// waiting time tick by tick; the accumulated value must match turnaround minus burst.
func (sim *Simulator) CompleteAccumulated(p *Process) {
	sim.finish(p)
	if p.WaitingTime != p.TurnaroundTime-p.TotalBurst {
		panic(fmt.Sprintf("CompleteAccumulated: process %d waited %d ticks but turnaround %d - burst %d = %d",
			p.ID, p.WaitingTime, p.TurnaroundTime, p.TotalBurst, p.TurnaroundTime-p.TotalBurst))
	}
}

func (sim *Simulator) finish(p *Process) {
	if p.RemainingBurst != 0 {
		panic(fmt.Sprintf("Complete: process %d has %d ticks remaining", p.ID, p.RemainingBurst))
	}
	if p.CompletionTime != UnsetTime {
		panic(fmt.Sprintf("Complete: process %d completed twice", p.ID))
	}
	p.CompletionTime = sim.Clock
	p.TurnaroundTime = sim.Clock - p.ArrivalTime
	sim.completed++
	logrus.Debugf("[tick %07d] Process %d completed (turnaround %d)", sim.Clock, p.ID, p.TurnaroundTime)
}
