// Defines the Process record that models a single simulated job.
// Tracks the immutable timing inputs and the per-run scheduling outputs.

package sim

import (
	"errors"
	"fmt"
)

// UnsetTime marks a timing field that has not been written yet in the current run.
const UnsetTime int64 = -1

var (
	// ErrNoProcesses is returned when a run or an aggregation is asked to work on zero processes.
	ErrNoProcesses = errors.New("no processes")
	// ErrInvalidProcess is returned by ValidateSpecs for out-of-range inputs.
	ErrInvalidProcess = errors.New("invalid process")
)

// ProcessSpec is the immutable input describing one job.
type ProcessSpec struct {
	ID          int   `json:"id" yaml:"id"`
	ArrivalTime int64 `json:"arrival" yaml:"arrival"`
	BurstTime   int64 `json:"burst" yaml:"burst"`
	Priority    int   `json:"priority" yaml:"priority"`
}

// Process is the run-state record of one job.
// Each run builds fresh Process values from the specs, so nothing leaks between runs.
type Process struct {
	ID          int   // copied from ProcessSpec, never reused
	ArrivalTime int64 // tick at which the process becomes runnable
	TotalBurst  int64 // total CPU ticks required
	Priority    int   // static priority; higher means more important (Aging only)

	RemainingBurst int64 // ticks still to run; only decreases, reaches exactly 0

	WaitingTime    int64 // ticks spent runnable but not running
	TurnaroundTime int64 // CompletionTime - ArrivalTime
	ResponseTime   int64 // first dispatch - ArrivalTime; UnsetTime until first dispatch
	CompletionTime int64 // clock at completion; UnsetTime until completion
	Started        bool  // set at first dispatch, gates the ResponseTime write

	// Multilevel scheduling state, meaningless for single-queue policies.
	QueueLevel  int
	LastRunTime int64

	idx int // position in the simulator's arrival order
}

// NewProcess creates a run-state record from a spec with all outputs cleared.
func NewProcess(spec ProcessSpec) *Process {
	p := &Process{
		ID:          spec.ID,
		ArrivalTime: spec.ArrivalTime,
		TotalBurst:  spec.BurstTime,
		Priority:    spec.Priority,
	}
	p.Reset()
	return p
}

// NewProcesses creates fresh run-state records, preserving input order.
func NewProcesses(specs []ProcessSpec) []*Process {
	procs := make([]*Process, len(specs))
	for i, spec := range specs {
		procs[i] = NewProcess(spec)
	}
	return procs
}

// Reset restores every mutable field to its pre-run value.
func (p *Process) Reset() {
	p.RemainingBurst = p.TotalBurst
	p.WaitingTime = 0
	p.TurnaroundTime = 0
	p.ResponseTime = UnsetTime
	p.CompletionTime = UnsetTime
	p.Started = false
	p.QueueLevel = 0
	p.LastRunTime = UnsetTime
}

// ResetProcesses resets a list of records in place so that policies can be
// compared on identical input when a caller reuses its own records.
func ResetProcesses(procs []*Process) {
	for _, p := range procs {
		p.Reset()
	}
}

// Spec returns the immutable inputs of the process.
func (p *Process) Spec() ProcessSpec {
	return ProcessSpec{ID: p.ID, ArrivalTime: p.ArrivalTime, BurstTime: p.TotalBurst, Priority: p.Priority}
}

// Completed reports whether the process has run its full burst.
func (p *Process) Completed() bool {
	return p.RemainingBurst == 0
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, Arrival: %d, Burst: %d, Remaining: %d)", p.ID, p.ArrivalTime, p.TotalBurst, p.RemainingBurst)
}

// ValidateSpecs checks that a process list can be simulated: at least one
// process, unique IDs, non-negative arrivals and positive bursts.
func ValidateSpecs(specs []ProcessSpec) error {
	if len(specs) == 0 {
		return ErrNoProcesses
	}
	seen := make(map[int]bool, len(specs))
	for i, s := range specs {
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate id %d at position %d", ErrInvalidProcess, s.ID, i)
		}
		seen[s.ID] = true
		if s.ArrivalTime < 0 {
			return fmt.Errorf("%w: process %d has negative arrival time %d", ErrInvalidProcess, s.ID, s.ArrivalTime)
		}
		if s.BurstTime <= 0 {
			return fmt.Errorf("%w: process %d has non-positive burst time %d", ErrInvalidProcess, s.ID, s.BurstTime)
		}
	}
	return nil
}
