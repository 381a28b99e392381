package sim

import "github.com/sirupsen/logrus"

// RoundRobin serves a single FIFO ready queue, giving each dispatch at most Quantum ticks.
// Processes that arrive during a slice are queued ahead of the preempted process.
type RoundRobin struct {
	Quantum int64
}

func (rr *RoundRobin) Name() string { return PolicyRR }

func (rr *RoundRobin) Schedule(sim *Simulator) {
	ready := NewReadyQueue()
	admit := func(running *Process) {
		for _, p := range sim.Order() {
			if p != running && !ready.Contains(p) && sim.Eligible(p) {
				ready.Enqueue(p)
			}
		}
	}

	admit(nil)
	for !sim.Done() {
		if ready.Len() == 0 {
			sim.IdleTick()
			admit(nil)
			continue
		}

		p := ready.Dequeue()
		sim.Execute(p, rr.Quantum, 0)
		admit(p)

		if p.RemainingBurst > 0 {
			ready.Enqueue(p)
			logrus.Debugf("[tick %07d] Process %d preempted, ready queue %v", sim.Clock, p.ID, ready)
		} else {
			sim.Complete(p)
		}
	}
}
