package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim/trace"
)

// Aging is priority scheduling over Levels ready queues, level 0 served first.
// A process enters at level (Levels-1) - Priority, clamped to the valid range,
// so a larger Priority value means more urgent. Every dispatch runs for up to
// Quantum ticks and a preempted process returns to the level it ran from.
//
// After each slice, any queued process that has not run for AgingFactor*Quantum
// ticks moves up one level and its aging timer restarts. Time spent waiting
// before the first dispatch counts from arrival.
type Aging struct {
	Quantum     int64
	Levels      int
	AgingFactor int64
}

func (a *Aging) Name() string { return PolicyAging }

// InitialLevel returns the level a process with the given priority enters at.
func (a *Aging) InitialLevel(priority int) int {
	return min(max((a.Levels-1)-priority, 0), a.Levels-1)
}

func (a *Aging) Schedule(sim *Simulator) {
	mq := NewMultilevelQueue(a.Levels)
	threshold := a.AgingFactor * a.Quantum
	admit := func(running *Process) {
		for _, p := range sim.Order() {
			if p != running && !mq.Contains(p) && sim.Eligible(p) {
				p.LastRunTime = p.ArrivalTime
				mq.Push(p, a.InitialLevel(p.Priority))
			}
		}
	}

	admit(nil)
	for !sim.Done() {
		p, level, ok := mq.PopHighest()
		if !ok {
			sim.IdleTick()
			admit(nil)
			continue
		}

		sim.Execute(p, a.Quantum, level)
		p.LastRunTime = sim.Clock
		a.promote(sim, mq, threshold)
		admit(p)

		if p.RemainingBurst > 0 {
			mq.Push(p, level)
		} else {
			sim.Complete(p)
		}
	}
}

// promote raises every queued process that has waited at least threshold ticks
// since it last ran (or was last promoted) by one level.
func (a *Aging) promote(sim *Simulator, mq *MultilevelQueue, threshold int64) {
	for _, p := range sim.Order() {
		from := mq.LevelOf(p)
		if from <= 0 || sim.Clock-p.LastRunTime < threshold {
			continue
		}
		mq.Move(p, from-1)
		p.LastRunTime = sim.Clock
		sim.Trace.RecordPromotion(trace.PromotionRecord{ProcessID: p.ID, Clock: sim.Clock, From: from, To: from - 1})
		logrus.Debugf("[tick %07d] Process %d aged from level %d to %d", sim.Clock, p.ID, from, from-1)
	}
}
