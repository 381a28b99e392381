package sim

import "github.com/sirupsen/logrus"

// Feedback is a multilevel feedback queue. New arrivals enter level 0; a process
// dispatched from level L runs for up to BaseQuantum*(L+1) ticks and, if still
// unfinished, is demoted one level (the last level keeps it). Processes that
// arrive during a slice are queued before the preempted process is re-queued.
type Feedback struct {
	BaseQuantum int64
	Levels      int
}

func (f *Feedback) Name() string { return PolicyFeedback }

// LevelQuantum returns the slice length granted at the given level.
func (f *Feedback) LevelQuantum(level int) int64 {
	return f.BaseQuantum * int64(level+1)
}

func (f *Feedback) Schedule(sim *Simulator) {
	mq := NewMultilevelQueue(f.Levels)
	admit := func(running *Process) {
		for _, p := range sim.Order() {
			if p != running && !mq.Contains(p) && sim.Eligible(p) {
				mq.Push(p, 0)
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

		sim.Execute(p, f.LevelQuantum(level), level)
		admit(p)

		if p.RemainingBurst > 0 {
			next := min(level+1, f.Levels-1)
			mq.Push(p, next)
			logrus.Debugf("[tick %07d] Process %d demoted to level %d: %v", sim.Clock, p.ID, next, mq)
		} else {
			sim.Complete(p)
		}
	}
}
