package sim

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// SRT (Shortest Remaining Time) re-decides every tick: the eligible process
// with the least remaining burst runs for one tick, and every other eligible
// process accrues one tick of waiting time. Ties go to the earliest process in
// arrival order. Waiting time is accumulated per tick rather than derived.
type SRT struct{}

func (s *SRT) Name() string { return PolicySRT }

func (s *SRT) Schedule(sim *Simulator) {
	// eligible processes keyed by (remaining, index)
	runnable := redblacktree.NewWith(cmpRemaining)
	order := sim.Order()
	next := 0

	for !sim.Done() {
		for next < len(order) && sim.Arrived(order[next]) {
			p := order[next]
			runnable.Put(remainingKey{p.RemainingBurst, p.idx}, p)
			next++
		}

		node := runnable.Left()
		if node == nil {
			sim.IdleTick()
			continue
		}
		key := node.Key.(remainingKey)
		p := node.Value.(*Process)
		runnable.Remove(key)

		for _, v := range runnable.Values() {
			v.(*Process).WaitingTime++
		}

		sim.Execute(p, 1, 0)
		if p.RemainingBurst == 0 {
			sim.CompleteAccumulated(p)
			continue
		}
		runnable.Put(remainingKey{p.RemainingBurst, p.idx}, p)
	}
}

// remainingKey is used as a key in the red-black tree.
type remainingKey struct {
	remaining int64
	idx       int
}

// cmpRemaining implements the Comparator for remainingKey ordering.
func cmpRemaining(a, b interface{}) int {
	ka, kb := a.(remainingKey), b.(remainingKey)
	switch {
	case ka.remaining < kb.remaining:
		return -1
	case ka.remaining > kb.remaining:
		return 1
	case ka.idx < kb.idx:
		return -1
	case ka.idx > kb.idx:
		return 1
	default:
		return 0
	}
}
