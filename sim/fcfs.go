package sim

// FCFS runs processes to completion in arrival order.
// Processes with equal arrival times keep their input order (stable sort),
// so the tie-break depends on how the caller ordered the list.
type FCFS struct{}

func (f *FCFS) Name() string { return PolicyFCFS }

func (f *FCFS) Schedule(sim *Simulator) {
	for _, p := range sim.Order() {
		sim.IdleUntil(p.ArrivalTime)
		sim.Execute(p, p.RemainingBurst, 0)
		sim.Complete(p)
	}
}
