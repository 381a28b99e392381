package sim

// HRRN (Highest Response Ratio Next) runs, at each decision point, the arrived
// process with the highest (waited + burst) / burst to completion. The first
// process in arrival order wins ties.
type HRRN struct{}

func (h *HRRN) Name() string { return PolicyHRRN }

func (h *HRRN) Schedule(sim *Simulator) {
	for !sim.Done() {
		var best *Process
		bestRatio := -1.0
		for _, p := range sim.Order() {
			if !sim.Eligible(p) {
				continue
			}
			if ratio := ResponseRatio(p, sim.Clock); ratio > bestRatio {
				best, bestRatio = p, ratio
			}
		}

		if best == nil {
			sim.IdleTick()
			continue
		}
		sim.Execute(best, best.RemainingBurst, 0)
		sim.Complete(best)
	}
}

// ResponseRatio returns (clock - arrival + burst) / burst for a process at the given clock.
func ResponseRatio(p *Process, clock int64) float64 {
	return float64(clock-p.ArrivalTime+p.TotalBurst) / float64(p.TotalBurst)
}
