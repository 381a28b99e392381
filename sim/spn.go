package sim

import (
	"github.com/emirpasic/gods/trees/binaryheap"
)

// SPN (Shortest Process Next) runs, at each decision point, the arrived process
// with the smallest total burst to completion. Ties go to the earliest process
// in arrival order.
type SPN struct{}

func (s *SPN) Name() string { return PolicySPN }

func (s *SPN) Schedule(sim *Simulator) {
	candidates := binaryheap.NewWith(shortestBurstFirst)
	order := sim.Order()
	next := 0 // first process in order not yet pushed

	for !sim.Done() {
		for next < len(order) && sim.Arrived(order[next]) {
			candidates.Push(order[next])
			next++
		}

		v, ok := candidates.Pop()
		if !ok {
			sim.IdleTick()
			continue
		}
		p := v.(*Process)
		sim.Execute(p, p.RemainingBurst, 0)
		sim.Complete(p)
	}
}

// shortestBurstFirst orders processes by total burst, then by arrival-order index.
func shortestBurstFirst(a, b interface{}) int {
	pa, pb := a.(*Process), b.(*Process)
	switch {
	case pa.TotalBurst < pb.TotalBurst:
		return -1
	case pa.TotalBurst > pb.TotalBurst:
		return 1
	case pa.idx < pb.idx:
		return -1
	case pa.idx > pb.idx:
		return 1
	default:
		return 0
	}
}
